package acl

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jsamuelsen/quote-store/internal/adapters/clients"
	"github.com/jsamuelsen/quote-store/internal/domain"
)

// maxErrorBody bounds how much of an error body is read into a message.
const maxErrorBody = 512

// MapHTTPError translates a failed exchange with the quote store into a
// domain error. clientErr takes precedence; otherwise the response status
// decides:
//
//	404 -> domain NotFound for entityID
//	400 -> domain Validation carrying the server's message
//	5xx and anything else -> domain Unavailable
func MapHTTPError(resp *http.Response, clientErr error, serviceName, entityID string) error {
	if clientErr != nil {
		return mapClientError(clientErr, serviceName)
	}

	if resp == nil {
		return domain.NewUnavailableError(serviceName, "no response received")
	}

	return mapStatusCode(resp.StatusCode, readMessage(resp.Body), serviceName, entityID)
}

func mapClientError(err error, serviceName string) error {
	switch {
	case errors.Is(err, clients.ErrCircuitOpen):
		return domain.NewUnavailableError(serviceName, "circuit breaker open, try again shortly")
	case errors.Is(err, clients.ErrMaxRetriesExceeded):
		return domain.NewUnavailableError(serviceName, err.Error())
	default:
		return domain.NewUnavailableError(serviceName, fmt.Sprintf("request failed: %v", err))
	}
}

func mapStatusCode(status int, message, serviceName, entityID string) error {
	switch {
	case status == http.StatusNotFound:
		return domain.NewNotFoundError(domain.EntityQuote, entityID)
	case status == http.StatusBadRequest:
		return domain.NewValidationError("", message)
	case status >= http.StatusInternalServerError:
		return domain.NewUnavailableError(serviceName, fmt.Sprintf("HTTP %d: %s", status, message))
	default:
		return domain.NewUnavailableError(serviceName, fmt.Sprintf("unexpected HTTP %d", status))
	}
}

// readMessage returns the trimmed plain-text error body, if any.
func readMessage(body io.Reader) string {
	if body == nil {
		return ""
	}

	b, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil {
		return ""
	}

	return strings.TrimSpace(string(b))
}
