package triage

import (
	"errors"
	"fmt"
	"net/http"
)

// ServerError is a well-formed API error response on a JSON call. Kind is
// the machine-readable error code, Message the human-readable detail.
type ServerError struct {
	Status  int    `json:"-"`
	Kind    string `json:"error"`
	Message string `json:"message"`
}

// Error implements the error interface with the fixed service rendering.
func (e *ServerError) Error() string {
	return fmt.Sprintf("triage: %d %s: %s", e.Status, e.Kind, e.Message)
}

// Static errors for err113 compliance.
var (
	// ErrNoMoreItems is returned by Paginator.Next once the sequence is
	// exhausted.
	ErrNoMoreItems = errors.New("no more items")

	// ErrEndOfStream is returned by a stream's Next when the server emits
	// the blank-line terminator. It is a sentinel, not a failure.
	ErrEndOfStream = errors.New("end of stream")

	// ErrTaskNotFound is returned by KernelReport when the overview report
	// has no task with the requested name.
	ErrTaskNotFound = errors.New("task does not exist")

	// ErrUnsupportedPlatform is returned by KernelReport for task platforms
	// without a kernel log endpoint.
	ErrUnsupportedPlatform = errors.New("platform not supported")

	// ErrUnexpectedStatus is returned by raw-byte calls on a non-2xx
	// response; raw endpoints are not guaranteed to return JSON errors.
	ErrUnexpectedStatus = errors.New("unexpected response status")

	// ErrTokenRequired is returned when a client is constructed without an
	// API token.
	ErrTokenRequired = errors.New("API token is required")
)

// IsNotFound reports whether err is a server-side 404.
func IsNotFound(err error) bool {
	serverErr := &ServerError{}
	if errors.As(err, &serverErr) {
		return serverErr.Status == http.StatusNotFound
	}

	return false
}

// IsUnauthorized reports whether err is a server-side 401.
func IsUnauthorized(err error) bool {
	serverErr := &ServerError{}
	if errors.As(err, &serverErr) {
		return serverErr.Status == http.StatusUnauthorized
	}

	return false
}
