package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the caller is not allowed to act on the resource.
var ErrForbidden = errors.New("access to resource forbidden")

// ErrConflict indicates the resource is in a state that rejects the operation,
// e.g. confirming an already confirmed snapshot.
var ErrConflict = errors.New("resource state conflict")

// ErrTransientFetch indicates the POS API was unreachable or returned a non-2xx
// response. The batch is safe to retry later for the same date range.
var ErrTransientFetch = errors.New("transient fetch error")

// ErrDataShape indicates the fetched POS payload was not in the expected array form.
var ErrDataShape = errors.New("unexpected data shape")

// AppError wraps an underlying error with an HTTP-ish code and a message suitable
// for batch error records and API responses.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates a 404 AppError that matches errors.Is(_, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
