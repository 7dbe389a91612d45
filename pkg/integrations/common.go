package integrations

import (
	"errors"
	"net/http"
	"time"
)

// Platform APIs create boards and task structures, which can take a
// while server-side; the timeout is sized for writes, not just reads.
const httpTimeout = 30 * time.Second

var (
	// ErrNotFound is returned when a board, space, or other resource
	// doesn't exist on the platform.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection
	// errors, 5xx responses).
	ErrNetwork = errors.New("network error")

	// ErrUnauthorized is returned when the platform rejects the API
	// token (401) or denies access to the resource (403).
	ErrUnauthorized = errors.New("authentication failed")

	// ErrRateLimited is returned for 429 responses. It is wrapped as
	// retryable, so cached fetches back off and try again.
	ErrRateLimited = errors.New("rate limited")
)

// NewHTTPClient creates an HTTP client with the standard timeout for
// platform requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}
