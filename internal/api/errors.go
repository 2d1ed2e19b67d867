package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnavailable indicates the API could not be reached
	ErrUnavailable = errors.New("api: service unavailable")
	// ErrUnauthorized indicates the session was rejected (HTTP 401)
	ErrUnauthorized = errors.New("api: unauthorized")
	// ErrInvalidResponse indicates the API returned an unparseable body
	ErrInvalidResponse = errors.New("api: invalid response")
)

// Error is a failed API call: the HTTP status and the server's error message
type Error struct {
	StatusCode int
	Message    string
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("api: HTTP %d", e.StatusCode)
}

// IsNotFound reports whether err is an API error with HTTP 404
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
