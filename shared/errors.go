package shared

import (
	"errors"
	"net/http"
)

// AppError carries the HTTP status and the public message for an error.
// Anything that is not an AppError is reported to the caller as a generic
// internal error, so wrapped storage details never leak.
type AppError struct {
	StatusCode int
	Message    string
	RetryAfter int
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(statusCode int, err error, message string) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Err: err}
}

func NewBadRequestError(err error, message string) *AppError {
	return NewAppError(http.StatusBadRequest, err, message)
}

func NewUnauthorizedError(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, nil, message)
}

func NewForbiddenError(message string) *AppError {
	return NewAppError(http.StatusForbidden, nil, message)
}

func NewNotFoundError(message string) *AppError {
	return NewAppError(http.StatusNotFound, nil, message)
}

func NewTooManyRequestsError(message string, retryAfter int) *AppError {
	return &AppError{
		StatusCode: http.StatusTooManyRequests,
		Message:    message,
		RetryAfter: retryAfter,
	}
}

func NewInternalError(err error, message string) *AppError {
	return NewAppError(http.StatusInternalServerError, err, message)
}

func GetAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
