package dto

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-store/internal/domain"
	"github.com/jsamuelsen/quote-store/internal/platform/logging"
)

// MapDomainError maps a domain error to an HTTP status and plain-text body.
// Unknown errors become a generic 500 so internals are not leaked.
func MapDomainError(err error) (int, string) {
	var status int

	switch {
	case err == nil:
		return http.StatusOK, ""
	case domain.IsNotFound(err):
		status = http.StatusNotFound
	case domain.IsValidation(err):
		status = http.StatusBadRequest
	default:
		status = http.StatusInternalServerError
	}

	return status, ErrorMessage(status)
}

// HandleError writes the mapped status and body for err.
// 5xx responses are logged with the underlying error.
func HandleError(c *gin.Context, err error) {
	status, body := MapDomainError(err)

	if status >= http.StatusInternalServerError {
		ctx := c.Request.Context()
		logging.FromContext(ctx).ErrorContext(ctx, "request failed",
			slog.Int("status", status),
			slog.Any("error", err),
		)
	}

	c.String(status, body)
}

// AbortWithError writes the mapped response and stops the handler chain.
func AbortWithError(c *gin.Context, err error) {
	HandleError(c, err)
	c.Abort()
}
