package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrAborted is returned when the caller's context was cancelled. It wraps
	// context.Canceled so either sentinel matches.
	ErrAborted = fmt.Errorf("request aborted: %w", context.Canceled)

	// ErrInvalidResponse reports a 2xx response whose envelope does not match
	// the expected {status, <array>} shape.
	ErrInvalidResponse = errors.New("invalid response structure")

	ErrUnauthorized = errors.New("admin api: unauthorized")
	ErrForbidden    = errors.New("admin api: forbidden")
	ErrNotFound     = errors.New("admin api: not found")
	ErrServerError  = errors.New("admin api: server error")
)

// HTTPError is a non-2xx answer from the admin API, either as the transport
// status or as the numeric status inside a JSON envelope.
//
// Error returns the message alone so it can be shown to the operator as is.
type HTTPError struct {
	StatusCode int
	Message    string
}

func newHTTPError(status int, message string) *HTTPError {
	if message == "" {
		message = fmt.Sprintf("HTTP error %d", status)
	}
	return &HTTPError{StatusCode: status, Message: message}
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is maps well-known status codes to the package sentinels.
func (e *HTTPError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrForbidden:
		return e.StatusCode == http.StatusForbidden
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrServerError:
		return e.StatusCode >= http.StatusInternalServerError && e.StatusCode <= 599
	}
	return false
}

func isSuccess(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}
