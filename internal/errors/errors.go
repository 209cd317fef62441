package errors

import (
	"fmt"
	"net/http"
)

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

// Check if err is instance of T for custom error types
func Is[T error](err error) bool {
	if _, ok := err.(T); ok {
		return true
	}
	return false
}

// Failure taxonomy. Every error leaving a service resolves to one of these
// so handlers can surface a user-facing message with the right status.

func RateLimited(action string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{
		Message:    fmt.Sprintf("Too many %s attempts, try again later", action),
		StatusCode: http.StatusTooManyRequests,
	}
}

func Validation(message string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusBadRequest}
}

func NotFound(what string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: what + " not found", StatusCode: http.StatusNotFound}
}

func Unauthorized(message string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusUnauthorized}
}

func Forbidden(message string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusForbidden}
}

// Downstream hides the store error behind a generic retry-later message.
// The original error should be logged before wrapping.
func Downstream() *ErrorWithStatusCode {
	return &ErrorWithStatusCode{
		Message:    "Service temporarily unavailable, please try again later",
		StatusCode: http.StatusServiceUnavailable,
	}
}
