package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a structured failure rendered to callable clients as
// {"error": {"status": Code, "message": Message}}.
type AppError struct {
	Code       string `json:"status"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e == nil {
		return "<nil>"
	}

	if e.Internal != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Internal)
	}

	return e.Message
}

// Unwrap exposes the internal error for errors.Is / errors.As compatibility.
func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Internal
}

// WithInternal returns a copy of the AppError with an attached internal error.
func (e *AppError) WithInternal(err error) *AppError {
	if e == nil {
		return nil
	}

	cpy := *e
	cpy.Internal = err
	return &cpy
}

// WithMessage returns a copy of the AppError carrying a different message.
func (e *AppError) WithMessage(message string) *AppError {
	if e == nil {
		return nil
	}

	cpy := *e
	cpy.Message = message
	return &cpy
}

// Status codes follow the callable protocol of the mobile client SDK.
const (
	CodeInvalidArgument  = "INVALID_ARGUMENT"
	CodeUnauthenticated  = "UNAUTHENTICATED"
	CodePermissionDenied = "PERMISSION_DENIED"
	CodeNotFound         = "NOT_FOUND"
	CodeInternal         = "INTERNAL"
)

var (
	ErrInvalidArgument = &AppError{
		Code:       CodeInvalidArgument,
		Message:    "Invalid argument",
		StatusCode: http.StatusBadRequest,
	}

	ErrUnauthenticated = &AppError{
		Code:       CodeUnauthenticated,
		Message:    "Authentication required",
		StatusCode: http.StatusUnauthorized,
	}

	ErrPermissionDenied = &AppError{
		Code:       CodePermissionDenied,
		Message:    "Permission denied",
		StatusCode: http.StatusForbidden,
	}

	ErrNotFound = &AppError{
		Code:       CodeNotFound,
		Message:    "Resource not found",
		StatusCode: http.StatusNotFound,
	}

	ErrInternal = &AppError{
		Code:       CodeInternal,
		Message:    "Internal error",
		StatusCode: http.StatusInternalServerError,
	}
)

// New builds a new application error with the provided metadata.
func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// InvalidArgument builds an INVALID_ARGUMENT failure with a caller-facing message.
func InvalidArgument(message string) *AppError {
	return ErrInvalidArgument.WithMessage(message)
}

// Internal wraps err into an INTERNAL failure, keeping err for logging.
func Internal(err error, message string) *AppError {
	return ErrInternal.WithMessage(message).WithInternal(err)
}

// FromError converts a generic error into an AppError, defaulting to ErrInternal.
func FromError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	return ErrInternal.WithInternal(err)
}
