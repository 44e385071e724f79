package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"speech-kit/internal/api/errors"
)

// BindForm binds a multipart or urlencoded form into req and reports
// validation failures as a bad request.
func BindForm(c *gin.Context, req interface{}) error {
	if err := c.ShouldBind(req); err != nil {
		return errors.NewBadRequestError(describeBindError(err))
	}
	return nil
}

func describeBindError(err error) string {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		if err == http.ErrNotMultipart || err == http.ErrMissingBoundary {
			return "Request must be multipart/form-data."
		}
		return fmt.Sprintf("Invalid form data: %v", err)
	}

	msgs := make([]string, 0, len(validationErrs))
	for _, fieldError := range validationErrs {
		field := strings.ToLower(fieldError.Field())
		switch fieldError.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("Field '%s' is required.", field))
		default:
			msgs = append(msgs, fmt.Sprintf("Field '%s' is invalid.", field))
		}
	}
	return strings.Join(msgs, " ")
}
