// Package dto provides Data Transfer Objects for HTTP request/response handling.
package dto

import "net/http"

// Plain-text error bodies. Clients match on these strings, so they are part
// of the wire contract.
const (
	MessageNotFound   = "Error 404: No quote found"
	MessageBadRequest = "Error 400: Post syntax incorrect."
	MessageInternal   = "Error 500: Internal server error"
)

// ErrorMessage returns the body written for an error status.
func ErrorMessage(status int) string {
	switch status {
	case http.StatusNotFound:
		return MessageNotFound
	case http.StatusBadRequest:
		return MessageBadRequest
	default:
		return MessageInternal
	}
}
