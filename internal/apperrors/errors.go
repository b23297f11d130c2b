package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested aggregate or child record could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks (malformed value object,
// rejected attribute value, bad request shape).
var ErrValidation = errors.New("validation error")

// ErrConflict indicates a uniqueness violation such as a duplicate identity, role, holder or email.
var ErrConflict = errors.New("resource conflict")

// ErrInvalidOperation indicates an operation that is not permitted in the aggregate's current state.
var ErrInvalidOperation = errors.New("invalid aggregate operation")

// ErrGone indicates that a child record the caller referenced has already been removed.
var ErrGone = errors.New("resource deleted")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates that the caller is authenticated but not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrInternal indicates an unexpected infrastructure failure.
var ErrInternal = errors.New("internal error")

// AppError wraps an infrastructure error with an HTTP-ish status code and a safe message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError. err may be nil.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error so errors.Is keeps working through the wrapper.
func (e *AppError) Unwrap() error {
	return e.Err
}
