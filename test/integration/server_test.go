//go:build integration

package integration

import (
	"io"
	"log/slog"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-store/internal/adapters/clients"
	"github.com/jsamuelsen/quote-store/internal/adapters/clients/acl"
	httpadapter "github.com/jsamuelsen/quote-store/internal/adapters/http"
	"github.com/jsamuelsen/quote-store/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quote-store/internal/adapters/memory"
	"github.com/jsamuelsen/quote-store/internal/app"
	"github.com/jsamuelsen/quote-store/internal/platform/config"
	"github.com/jsamuelsen/quote-store/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startServer runs the full router over store on a random local port.
// The caller closes the returned server.
func startServer(store *memory.QuoteStore) *httptest.Server {
	logger := discardLogger()

	registry := ports.NewHealthRegistry()
	_ = registry.Register(store)

	engine := gin.New()
	httpadapter.SetupRouter(engine, httpadapter.RouterConfig{
		Logger:        logger,
		AppConfig:     &config.AppConfig{Name: "quote-store"},
		HealthHandler: handlers.NewHealthHandler(registry, handlers.NewBuildInfo("integration", "", "")),
		QuoteHandler: handlers.NewQuoteHandler(app.NewQuoteService(app.QuoteServiceConfig{
			Repository: store,
			Logger:     logger,
		})),
		Timeout: 5 * time.Second,
	})

	return httptest.NewServer(engine)
}

// testClientConfig returns a fast-failing client configuration.
func testClientConfig(baseURL string) *clients.Config {
	return &clients.Config{
		ServiceName: "quote-store",
		BaseURL:     baseURL,
		Timeout:     5 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     3,
			InitialInterval: 5 * time.Millisecond,
			MaxInterval:     20 * time.Millisecond,
			Multiplier:      2.0,
			JitterFactor:    0.1,
		},
		Circuit: config.CircuitBreakerConfig{
			MaxFailures:   5,
			Timeout:       100 * time.Millisecond,
			HalfOpenLimit: 1,
		},
		Logger: discardLogger(),
	}
}

func newQuoteClient(cfg *clients.Config) (*acl.QuoteClient, error) {
	client, err := clients.New(cfg)
	if err != nil {
		return nil, err
	}

	return acl.NewQuoteClient(acl.QuoteClientConfig{Client: client, Logger: discardLogger()}), nil
}
