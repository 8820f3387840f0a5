package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxIDLength caps caller-supplied ids; longer values are replaced.
const maxIDLength = 128

type idMiddlewareConfig struct {
	headerName string
	ginKey     string
	store      func(ctx context.Context, id string) context.Context
	enrichLog  func(ctx context.Context, id string) context.Context
}

// createIDMiddleware reuses the caller's id header or mints a UUID, then
// echoes it in the response and stores it in both the gin and request
// contexts, and on the request-scoped logger.
func createIDMiddleware(cfg idMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(cfg.headerName)
		if id == "" || len(id) > maxIDLength {
			id = uuid.NewString()
		}

		c.Set(cfg.ginKey, id)
		c.Header(cfg.headerName, id)

		ctx := cfg.store(c.Request.Context(), id)
		ctx = cfg.enrichLog(ctx, id)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func getIDFromContext(c *gin.Context, key string) string {
	return c.GetString(key)
}
