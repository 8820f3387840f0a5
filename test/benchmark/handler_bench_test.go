package benchmark

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	httpadapter "github.com/jsamuelsen/quote-store/internal/adapters/http"
	"github.com/jsamuelsen/quote-store/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quote-store/internal/adapters/memory"
	"github.com/jsamuelsen/quote-store/internal/app"
	"github.com/jsamuelsen/quote-store/internal/domain"
	"github.com/jsamuelsen/quote-store/internal/ports"
)

func init() {
	gin.SetMode(gin.ReleaseMode)
}

// newRouter builds the production middleware chain over store.
func newRouter(store *memory.QuoteStore) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	registry := ports.NewHealthRegistry()
	_ = registry.Register(store)

	engine := gin.New()
	httpadapter.SetupRouter(engine, httpadapter.RouterConfig{
		Logger:        logger,
		HealthHandler: handlers.NewHealthHandler(registry, handlers.NewBuildInfo("1.0.0", "abc123", "2024-01-01T00:00:00Z")),
		QuoteHandler: handlers.NewQuoteHandler(app.NewQuoteService(app.QuoteServiceConfig{
			Repository: store,
			Logger:     logger,
		})),
		Timeout: 30 * time.Second,
	})

	return engine
}

func storeOf(n int) *memory.QuoteStore {
	quotes := make([]domain.Quote, n)
	for i := range quotes {
		quotes[i] = domain.Quote{Author: fmt.Sprintf("author %d", i), Text: "some quoted text"}
	}

	return memory.NewQuoteStore(memory.WithQuotes(quotes))
}

func serve(b *testing.B, router http.Handler, method, path, body string) {
	b.Helper()
	b.ReportAllocs()

	for b.Loop() {
		var r io.Reader = http.NoBody
		if body != "" {
			r = strings.NewReader(body)
		}

		req := httptest.NewRequest(method, path, r)
		if body != "" {
			req.Header.Set("Content-Type", "application/json")
		}

		router.ServeHTTP(httptest.NewRecorder(), req)
	}
}

// BenchmarkLiveness is the probe hot path.
func BenchmarkLiveness(b *testing.B) {
	serve(b, newRouter(memory.NewSeededQuoteStore()), http.MethodGet, "/-/live", "")
}

func BenchmarkReadiness(b *testing.B) {
	serve(b, newRouter(memory.NewSeededQuoteStore()), http.MethodGet, "/-/ready", "")
}

func BenchmarkListQuotes(b *testing.B) {
	for _, n := range []int{4, 100, 1000} {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			serve(b, newRouter(storeOf(n)), http.MethodGet, "/", "")
		})
	}
}

func BenchmarkRandomQuote(b *testing.B) {
	serve(b, newRouter(memory.NewSeededQuoteStore()), http.MethodGet, "/quote/random", "")
}

func BenchmarkGetQuote(b *testing.B) {
	serve(b, newRouter(memory.NewSeededQuoteStore()), http.MethodGet, "/quote/2", "")
}

func BenchmarkGetQuote_NotFound(b *testing.B) {
	serve(b, newRouter(memory.NewSeededQuoteStore()), http.MethodGet, "/quote/abc", "")
}

// BenchmarkCreateQuote grows the store by one quote per iteration.
func BenchmarkCreateQuote(b *testing.B) {
	serve(b, newRouter(memory.NewSeededQuoteStore()), http.MethodPost, "/quote", `{"author":"bench","text":"quote"}`)
}

// BenchmarkParallelRandom measures read contention on the store lock.
func BenchmarkParallelRandom(b *testing.B) {
	router := newRouter(storeOf(100))

	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/quote/random", http.NoBody))
		}
	})
}
