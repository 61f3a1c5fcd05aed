package apiclient

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const maxErrorBodyBytes = 512

// RequestError is returned by every failed Get/Post. Cause is the transport
// error, a *StatusError, or an encode/decode error.
type RequestError struct {
	Method     string
	Path       string
	StatusCode int
	Cause      error
}

func (e *RequestError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Cause)
}

func (e *RequestError) Unwrap() error { return e.Cause }

// AsRequestError extracts *RequestError.
func AsRequestError(err error) (*RequestError, bool) {
	var re *RequestError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}

// StatusError reports a non-2xx response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	text := http.StatusText(e.StatusCode)
	if e.Body == "" {
		return fmt.Sprintf("http status %d %s", e.StatusCode, text)
	}
	return fmt.Sprintf("http status %d %s: %s", e.StatusCode, text, e.Body)
}

// IsNotFound checks if the error indicates a not found response
func (e *StatusError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *StatusError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsStatus reports whether err carries a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}

func bodySnippet(body []byte) string {
	if len(body) > maxErrorBodyBytes {
		body = body[:maxErrorBodyBytes]
	}
	return strings.TrimSpace(string(body))
}
