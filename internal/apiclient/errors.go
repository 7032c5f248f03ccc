package apiclient

import "errors"

var (
	// ErrUnavailable indicates the backend could not be reached.
	ErrUnavailable = errors.New("study backend unavailable")

	// ErrTimeout indicates a request exceeded the configured timeout.
	ErrTimeout = errors.New("study backend request timed out")

	// ErrUnauthorized indicates the bearer token was missing or rejected.
	ErrUnauthorized = errors.New("not authorized")

	// ErrBadResponse indicates a body that is not the expected envelope.
	ErrBadResponse = errors.New("malformed backend response")

	// ErrStatus is wrapped by every non-2xx response.
	ErrStatus = errors.New("unexpected status")
)
