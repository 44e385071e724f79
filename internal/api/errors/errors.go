package errors

import (
	"net/http"
)

// ErrorKind represents the class of an API error
type ErrorKind string

const (
	KindBadRequest ErrorKind = "bad_request"
	KindInternal   ErrorKind = "internal"
)

// APIError is the JSON error body returned to clients
type APIError struct {
	Detail    string    `json:"detail"`
	Kind      ErrorKind `json:"kind"`
	RequestID string    `json:"request_id,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Detail
}

// HTTPStatus returns the HTTP status code for the error kind
func (e *APIError) HTTPStatus() int {
	switch e.Kind {
	case KindBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// NewBadRequestError creates a 400 error
func NewBadRequestError(detail string) *APIError {
	return &APIError{
		Kind:   KindBadRequest,
		Detail: detail,
	}
}

// NewInternalError creates a 500 error
func NewInternalError(detail string) *APIError {
	return &APIError{
		Kind:   KindInternal,
		Detail: detail,
	}
}
