// Package errors carries HTTP-mappable application errors across layers.
package errors

import (
	"errors"
	"net/http"
)

// AppError is an error with an HTTP status and a stable machine-readable
// code. The cause, when set, is available through Unwrap.
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"error"`
	cause   error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.cause
}

// New creates an AppError with an explicit status.
func New(status int, code, message string) *AppError {
	return &AppError{Status: status, Code: code, Message: message}
}

// Wrap attaches a status and code to an underlying error, keeping it
// reachable for errors.Is/As.
func Wrap(err error, status int, code, message string) *AppError {
	return &AppError{Status: status, Code: code, Message: message, cause: err}
}

// BadRequest is a 400 error.
func BadRequest(code, message string) *AppError {
	return New(http.StatusBadRequest, code, message)
}

// Forbidden is a 403 error.
func Forbidden(code, message string) *AppError {
	return New(http.StatusForbidden, code, message)
}

// NotFound is a 404 error.
func NotFound(code, message string) *AppError {
	return New(http.StatusNotFound, code, message)
}

// Unprocessable is a 422 error.
func Unprocessable(code, message string) *AppError {
	return New(http.StatusUnprocessableEntity, code, message)
}

// Internal wraps an unexpected error as a 500 without leaking its text.
func Internal(err error, message string) *AppError {
	return Wrap(err, http.StatusInternalServerError, "internal", message)
}

// StatusOf extracts the HTTP status from an error chain, 500 when the
// chain carries no AppError.
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}
