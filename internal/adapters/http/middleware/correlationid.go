package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-store/internal/platform/logging"
)

const (
	// HeaderCorrelationID ties together every request of one client
	// operation, e.g. a quotectl invocation and its retries.
	HeaderCorrelationID = "X-Correlation-ID"

	// ContextKeyCorrelationID is the gin.Context key holding the correlation ID.
	ContextKeyCorrelationID = "correlation_id"
)

// CorrelationID returns middleware that propagates or starts X-Correlation-ID.
func CorrelationID() gin.HandlerFunc {
	return createIDMiddleware(idMiddlewareConfig{
		headerName: HeaderCorrelationID,
		ginKey:     ContextKeyCorrelationID,
		store:      ContextWithCorrelationID,
		enrichLog:  logging.WithCorrelationID,
	})
}

// GetCorrelationID returns the correlation ID set by CorrelationID, or "".
func GetCorrelationID(c *gin.Context) string {
	return getIDFromContext(c, ContextKeyCorrelationID)
}
