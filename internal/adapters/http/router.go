package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-store/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quote-store/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quote-store/internal/platform/config"
	"github.com/jsamuelsen/quote-store/internal/platform/telemetry"
)

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger is the base logger seeded into every request context.
	Logger *slog.Logger

	// AppConfig names the service for tracing.
	AppConfig *config.AppConfig

	// HealthHandler serves the /-/ probe endpoints. Optional.
	HealthHandler *handlers.HealthHandler

	// QuoteHandler serves the quote API. Optional.
	QuoteHandler *handlers.QuoteHandler

	// Timeout is the deadline applied to quote requests. Zero disables it.
	Timeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery - catch panics first
//  2. Context logger - seed the request logger
//  3. Request ID and Correlation ID
//  4. OpenTelemetry - tracing and metrics
//  5. Logging - request logging (skips health endpoints)
//
// Route groups:
//   - /-/ (internal): health, build info and metrics, no timeout
//   - / (public): quote endpoints with the request deadline
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(),
		middleware.ContextLogger(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
	)
	engine.Use(telemetry.Middleware(serviceName(cfg.AppConfig))...)
	engine.Use(middleware.Logging())

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	if cfg.QuoteHandler != nil {
		api := engine.Group("")
		if cfg.Timeout > 0 {
			api.Use(middleware.SimpleTimeout(cfg.Timeout))
		}

		cfg.QuoteHandler.RegisterQuoteRoutes(api)
	}
}

// NewDefaultRouterConfig builds a RouterConfig from loaded configuration.
func NewDefaultRouterConfig(
	logger *slog.Logger,
	cfg *config.Config,
	healthHandler *handlers.HealthHandler,
	quoteHandler *handlers.QuoteHandler,
) RouterConfig {
	return RouterConfig{
		Logger:        logger,
		AppConfig:     &cfg.App,
		HealthHandler: healthHandler,
		QuoteHandler:  quoteHandler,
		Timeout:       cfg.Server.RequestTimeout,
	}
}

func serviceName(app *config.AppConfig) string {
	if app == nil || app.Name == "" {
		return "quote-store"
	}

	return app.Name
}
