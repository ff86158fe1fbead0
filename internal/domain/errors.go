package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrNetwork indicates the backend is unreachable (transport or timeout)
	ErrNetwork = errors.New("backend is unreachable")

	// ErrAuthFailed indicates credentials or token were rejected
	ErrAuthFailed = errors.New("authentication failed")

	// ErrNotFound indicates the requested resource does not exist
	ErrNotFound = errors.New("resource not found")
)

// HTTPError is a non-2xx response from the backend.
type HTTPError struct {
	Status int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("backend returned status %d", e.Status)
}

// DecodeError is a response body that did not match the expected shape.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("malformed backend response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsNetworkError reports whether err is a transport-level failure
func IsNetworkError(err error) bool {
	return errors.Is(err, ErrNetwork)
}

// IsHTTPError reports whether err is a non-2xx backend response,
// returning the status when it is
func IsHTTPError(err error) (int, bool) {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.Status, true
	}
	return 0, false
}

// IsDecodeError reports whether err is a malformed-response failure
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}
