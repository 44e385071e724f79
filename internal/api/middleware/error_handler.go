package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"speech-kit/internal/api/errors"
)

// ErrorHandler recovers panics and turns them into JSON error bodies
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		requestID := c.GetString(RequestIDKey)

		var apiErr *errors.APIError

		switch err := recovered.(type) {
		case *errors.APIError:
			apiErr = err
		case error:
			logger.Error("Internal server error",
				zap.Error(err),
				zap.String("request_id", requestID),
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
			)
			apiErr = errors.NewInternalError("Internal server error")
		default:
			logger.Error("Unknown panic occurred",
				zap.Any("recovered", recovered),
				zap.String("request_id", requestID),
			)
			apiErr = errors.NewInternalError("Internal server error")
		}

		apiErr.RequestID = requestID
		c.AbortWithStatusJSON(apiErr.HTTPStatus(), apiErr)
	})
}

// HandleError writes err as a JSON error body. Errors that are not
// *errors.APIError become a generic internal error.
func HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)

	apiErr, ok := err.(*errors.APIError)
	if !ok {
		apiErr = errors.NewInternalError("Internal server error")
	}

	body := *apiErr
	body.RequestID = c.GetString(RequestIDKey)
	c.AbortWithStatusJSON(body.HTTPStatus(), &body)
}
