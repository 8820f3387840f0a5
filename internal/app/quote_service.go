// Package app contains application services that orchestrate use cases.
// This is the application layer: it coordinates domain rules and the
// repository port, and owns logging, tracing and metrics for each use case.
// HTTP specifics belong to adapters.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quote-store/internal/domain"
	"github.com/jsamuelsen/quote-store/internal/platform/logging"
	"github.com/jsamuelsen/quote-store/internal/ports"
)

const instrumentationName = "github.com/jsamuelsen/quote-store/internal/app"

// QuoteService orchestrates quote use cases over a positional repository.
// It depends on the port interface, not the concrete store.
type QuoteService struct {
	repo   ports.QuoteRepository
	logger *slog.Logger
	tracer trace.Tracer
}

// QuoteServiceConfig contains dependencies for the quote service.
type QuoteServiceConfig struct {
	Repository ports.QuoteRepository
	Logger     *slog.Logger
}

// NewQuoteService creates a new quote service with the provided dependencies.
// Panics if Repository is nil. Defaults logger to slog.Default() if nil.
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	if cfg.Repository == nil {
		panic("QuoteService: Repository is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	svc := &QuoteService{
		repo:   cfg.Repository,
		logger: logger.With(slog.String("component", "app.QuoteService")),
		tracer: otel.Tracer(instrumentationName),
	}

	if n, err := cfg.Repository.Len(context.Background()); err == nil {
		quoteStoreSize.Set(float64(n))
	}

	return svc
}

// ListQuotes returns every quote in current order.
func (s *QuoteService) ListQuotes(ctx context.Context) ([]domain.Quote, error) {
	ctx, span := s.tracer.Start(ctx, "QuoteService.ListQuotes")
	defer span.End()

	quotes, err := s.repo.List(ctx)
	s.finish(ctx, span, OpList, err)
	if err != nil {
		return nil, fmt.Errorf("listing quotes: %w", err)
	}

	span.SetAttributes(attribute.Int("quote.count", len(quotes)))
	s.loggerFor(ctx).DebugContext(ctx, "listed quotes", slog.Int("count", len(quotes)))

	return quotes, nil
}

// RandomQuote returns a uniformly chosen quote.
// An empty store yields a domain NotFound error.
func (s *QuoteService) RandomQuote(ctx context.Context) (domain.Quote, error) {
	ctx, span := s.tracer.Start(ctx, "QuoteService.RandomQuote")
	defer span.End()

	quote, err := s.repo.Random(ctx)
	s.finish(ctx, span, OpRandom, err)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("picking random quote: %w", err)
	}

	s.loggerFor(ctx).DebugContext(ctx, "picked random quote", slog.String("author", quote.Author))

	return quote, nil
}

// GetQuote returns the quote at the position named by rawID.
// Unparsable, negative and out-of-range ids are all NotFound.
func (s *QuoteService) GetQuote(ctx context.Context, rawID string) (domain.Quote, error) {
	ctx, span := s.tracer.Start(ctx, "QuoteService.GetQuote",
		trace.WithAttributes(attribute.String("quote.id", rawID)),
	)
	defer span.End()

	pos, err := domain.ParsePosition(rawID)
	if err == nil {
		var quote domain.Quote

		quote, err = s.repo.Get(ctx, pos)
		if err == nil {
			s.finish(ctx, span, OpGet, nil)
			return quote, nil
		}
	}

	s.finish(ctx, span, OpGet, err)

	return domain.Quote{}, fmt.Errorf("getting quote: %w", err)
}

// CreateQuote appends q and returns its position.
func (s *QuoteService) CreateQuote(ctx context.Context, q domain.Quote) (int, error) {
	ctx, span := s.tracer.Start(ctx, "QuoteService.CreateQuote")
	defer span.End()

	pos, err := s.repo.Append(ctx, q)
	s.finish(ctx, span, OpCreate, err)
	if err != nil {
		return 0, fmt.Errorf("creating quote: %w", err)
	}

	span.SetAttributes(attribute.Int("quote.position", pos))
	s.loggerFor(ctx).InfoContext(ctx, "created quote",
		slog.Int("position", pos),
		slog.String("author", q.Author),
	)

	return pos, nil
}

// DeleteQuote removes the quote at the position named by rawID.
// Validation is the same as GetQuote, including the negative-id check.
func (s *QuoteService) DeleteQuote(ctx context.Context, rawID string) error {
	ctx, span := s.tracer.Start(ctx, "QuoteService.DeleteQuote",
		trace.WithAttributes(attribute.String("quote.id", rawID)),
	)
	defer span.End()

	pos, err := domain.ParsePosition(rawID)
	if err == nil {
		err = s.repo.Remove(ctx, pos)
	}

	s.finish(ctx, span, OpDelete, err)
	if err != nil {
		return fmt.Errorf("deleting quote: %w", err)
	}

	s.loggerFor(ctx).InfoContext(ctx, "deleted quote", slog.Int("position", pos))

	return nil
}

// finish records the outcome of op on the span and in metrics, and
// refreshes the size gauge after mutations.
func (s *QuoteService) finish(ctx context.Context, span trace.Span, op string, err error) {
	observe(op, err)

	if err != nil {
		span.SetStatus(codes.Error, err.Error())

		level := slog.LevelWarn
		if outcomeOf(err) == outcomeError {
			level = slog.LevelError
		}

		s.loggerFor(ctx).Log(ctx, level, "quote operation failed",
			slog.String("operation", op),
			slog.Any("error", err),
		)

		return
	}

	if op == OpCreate || op == OpDelete {
		if n, lenErr := s.repo.Len(ctx); lenErr == nil {
			quoteStoreSize.Set(float64(n))
		}
	}
}

// loggerFor prefers the request-scoped logger carried in ctx.
func (s *QuoteService) loggerFor(ctx context.Context) *slog.Logger {
	if logger, ok := logging.Lookup(ctx); ok {
		return logger
	}

	return s.logger
}
