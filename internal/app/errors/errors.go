package errors

import (
	"fmt"
)

// Common error types
var (
	// Environment errors, fatal before any work starts
	ErrFFmpegNotFound = New("ffmpeg is not installed or not in PATH")

	// Input validation errors
	ErrFileNotFound       = New("file not found")
	ErrUnsupportedFormat  = New("unsupported audio format")
	ErrInvalidTarget      = New("not a valid file or folder")
	ErrEmptyAudio         = New("audio payload is empty")
	ErrFormatMismatch     = New("output does not match target format")
	ErrMissingConfig      = New("configuration is required")
	ErrInvalidConfig      = New("invalid configuration")
	ErrRecognizerNotFound = New("recognizer not found")

	// External call errors
	ErrEncoderFailed     = New("ffmpeg error")
	ErrRecognitionFailed = New("speech recognition error")
)

// Error represents a standardized error
type Error struct {
	message string
	cause   error
	kind    *Error
}

// New creates a new error
func New(message string) *Error {
	return &Error{message: message}
}

// Newf creates a new formatted error
func Newf(format string, args ...interface{}) *Error {
	return &Error{message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: message,
		cause:   err,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: fmt.Sprintf(format, args...),
		cause:   err,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// Is checks if the error matches target
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if e.kind != nil && e.kind.Is(t) {
		return true
	}
	return e.message == t.message
}

// Message returns the error text without its cause.
func (e *Error) Message() string {
	return e.message
}

// WithDetail returns an error that matches sentinel under errors.Is but
// reports the formatted detail as its message.
func WithDetail(sentinel *Error, format string, args ...interface{}) error {
	return &Error{
		message: fmt.Sprintf(format, args...),
		kind:    sentinel,
	}
}

// WrapKind is WithDetail plus an underlying cause.
func WrapKind(sentinel *Error, err error, format string, args ...interface{}) error {
	return &Error{
		message: fmt.Sprintf(format, args...),
		cause:   err,
		kind:    sentinel,
	}
}

// NotFound returns an error for files that were not found
func NotFound(path string) error {
	return WithDetail(ErrFileNotFound, "file not found: %s", path)
}

// Unsupported returns an error for inputs with the wrong extension
func Unsupported(expected string, path string) error {
	return WithDetail(ErrUnsupportedFormat, "expected an %s file, got: %s", expected, path)
}
