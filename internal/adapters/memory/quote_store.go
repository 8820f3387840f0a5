// Package memory provides process-local repository adapters.
package memory

import (
	"context"
	"math/rand/v2"
	"sync"

	"github.com/jsamuelsen/quote-store/internal/domain"
)

// healthCheckName is the name the store reports under /-/ready.
const healthCheckName = "quote-store"

// QuoteStore is an ordered, in-memory quote sequence.
// It is safe for concurrent use; each method holds the lock for its whole
// duration so positions are never resolved against a stale length.
type QuoteStore struct {
	mu     sync.RWMutex
	quotes []domain.Quote

	// intn picks an index in [0, n). Overridable for testing.
	intn func(n int) int
}

// Option configures a QuoteStore.
type Option func(*QuoteStore)

// WithQuotes starts the store with a copy of quotes.
func WithQuotes(quotes []domain.Quote) Option {
	return func(s *QuoteStore) {
		s.quotes = append(make([]domain.Quote, 0, len(quotes)), quotes...)
	}
}

// WithRandSource replaces the index picker used by Random.
func WithRandSource(src rand.Source) Option {
	r := rand.New(src) //nolint:gosec // quote selection needs no crypto-grade randomness
	return func(s *QuoteStore) {
		s.intn = r.IntN
	}
}

// NewQuoteStore constructs a ready-to-use, empty-unless-seeded QuoteStore.
func NewQuoteStore(opts ...Option) *QuoteStore {
	s := &QuoteStore{
		quotes: make([]domain.Quote, 0),
		intn:   rand.IntN, //nolint:gosec // see WithRandSource
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// NewSeededQuoteStore returns a store holding the four seed quotes.
func NewSeededQuoteStore(opts ...Option) *QuoteStore {
	return NewQuoteStore(append([]Option{WithQuotes(domain.SeedQuotes())}, opts...)...)
}

// List returns a copy of all quotes in order.
func (s *QuoteStore) List(_ context.Context) ([]domain.Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Quote, len(s.quotes))
	copy(out, s.quotes)

	return out, nil
}

// Random returns a uniformly chosen quote.
func (s *QuoteStore) Random(_ context.Context) (domain.Quote, error) {
	// Write lock: intn may be a non-thread-safe *rand.Rand.
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.quotes) == 0 {
		return domain.Quote{}, domain.NewNotFoundError(domain.EntityQuote, "random")
	}

	return s.quotes[s.intn(len(s.quotes))], nil
}

// Get returns the quote at pos.
func (s *QuoteStore) Get(_ context.Context, pos int) (domain.Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if pos < 0 || pos >= len(s.quotes) {
		return domain.Quote{}, domain.NewPositionNotFoundError(pos)
	}

	return s.quotes[pos], nil
}

// Append adds q to the end of the sequence and returns its position.
func (s *QuoteStore) Append(_ context.Context, q domain.Quote) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.quotes = append(s.quotes, q)

	return len(s.quotes) - 1, nil
}

// Remove deletes the quote at pos. Later quotes move one position down.
func (s *QuoteStore) Remove(_ context.Context, pos int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if pos < 0 || pos >= len(s.quotes) {
		return domain.NewPositionNotFoundError(pos)
	}

	copy(s.quotes[pos:], s.quotes[pos+1:])
	s.quotes[len(s.quotes)-1] = domain.Quote{}
	s.quotes = s.quotes[:len(s.quotes)-1]

	return nil
}

// Len returns the number of stored quotes.
func (s *QuoteStore) Len(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.quotes), nil
}

// Name implements ports.HealthChecker.
func (s *QuoteStore) Name() string {
	return healthCheckName
}

// Check implements ports.HealthChecker. The store lives in process memory,
// so it is healthy whenever its lock can be taken before ctx expires.
func (s *QuoteStore) Check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	s.mu.RUnlock() //nolint:staticcheck // empty critical section proves the lock is not wedged

	return nil
}
