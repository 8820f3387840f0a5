// Package clients provides the outbound HTTP client used to talk to a
// running quote store.
package clients

import (
	"errors"
	"fmt"
)

// Transport-level failures. Callers translate these to domain errors.
var (
	// ErrCircuitOpen is returned without a network call while the breaker is open.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrMaxRetriesExceeded wraps the last error once every GET attempt failed.
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
)

// StatusError reports a 5xx response, which the client treats as a failed attempt.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server error: HTTP %d", e.StatusCode)
}
