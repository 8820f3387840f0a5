//go:build integration

package integration

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-store/internal/adapters/memory"
	"github.com/jsamuelsen/quote-store/internal/domain"
)

// TestConcurrent_Creates verifies that concurrent POSTs through the client
// each append exactly one quote.
func TestConcurrent_Creates(t *testing.T) {
	store := memory.NewSeededQuoteStore()
	server := startServer(store)
	defer server.Close()

	quotes, err := newQuoteClient(testClientConfig(server.URL))
	require.NoError(t, err)

	const workers = 50

	var (
		wg       sync.WaitGroup
		failures atomic.Int32
	)

	for i := range workers {
		wg.Go(func() {
			q := domain.Quote{Author: fmt.Sprintf("author-%d", i), Text: "text"}
			if err := quotes.Create(context.Background(), q); err != nil {
				failures.Add(1)
			}
		})
	}

	wg.Wait()

	assert.Zero(t, failures.Load())

	n, err := store.Len(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4+workers, n)

	list, err := quotes.List(context.Background())
	require.NoError(t, err)

	seen := make(map[string]bool, len(list))
	for _, q := range list {
		assert.False(t, seen[q.Author], "duplicate quote by %s", q.Author)
		seen[q.Author] = true
	}
}

// TestConcurrent_DeleteHead drains a store by repeatedly deleting position 0
// from many goroutines. Exactly one delete succeeds per quote and the rest
// see NotFound once the store is empty.
func TestConcurrent_DeleteHead(t *testing.T) {
	const size = 30

	initial := make([]domain.Quote, size)
	for i := range initial {
		initial[i] = domain.Quote{Author: fmt.Sprintf("a%d", i), Text: "t"}
	}

	store := memory.NewQuoteStore(memory.WithQuotes(initial))
	server := startServer(store)
	defer server.Close()

	quotes, err := newQuoteClient(testClientConfig(server.URL))
	require.NoError(t, err)

	const workers = 60

	var (
		wg        sync.WaitGroup
		deleted   atomic.Int32
		notFound  atomic.Int32
		unexpected atomic.Int32
	)

	for range workers {
		wg.Go(func() {
			err := quotes.Delete(context.Background(), "0")
			switch {
			case err == nil:
				deleted.Add(1)
			case domain.IsNotFound(err):
				notFound.Add(1)
			default:
				unexpected.Add(1)
			}
		})
	}

	wg.Wait()

	assert.Equal(t, int32(size), deleted.Load())
	assert.Equal(t, int32(workers-size), notFound.Load())
	assert.Zero(t, unexpected.Load())

	n, err := store.Len(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

// TestConcurrent_ReadsDuringWrites mixes readers and writers and checks
// that reads never observe a torn quote.
func TestConcurrent_ReadsDuringWrites(t *testing.T) {
	store := memory.NewSeededQuoteStore()
	server := startServer(store)
	defer server.Close()

	quotes, err := newQuoteClient(testClientConfig(server.URL))
	require.NoError(t, err)

	ctx := context.Background()

	var wg sync.WaitGroup

	for i := range 10 {
		wg.Go(func() {
			for j := range 10 {
				q := domain.Quote{Author: fmt.Sprintf("w%d-%d", i, j), Text: "body"}
				assert.NoError(t, quotes.Create(ctx, q))
			}
		})
	}

	for range 10 {
		wg.Go(func() {
			for range 10 {
				q, err := quotes.Random(ctx)
				if assert.NoError(t, err) {
					assert.NotEmpty(t, q.Author)
					assert.NotEmpty(t, q.Text)
				}
			}
		})
	}

	wg.Wait()

	n, err := store.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4+100, n)
}

// TestConcurrent_CircuitStateIsConsistent hammers a stopped server and
// checks that the breaker opens and stays open without racing.
func TestConcurrent_CircuitStateIsConsistent(t *testing.T) {
	server := startServer(memory.NewSeededQuoteStore())
	url := server.URL
	server.Close()

	cfg := testClientConfig(url)
	cfg.Retry.MaxAttempts = 1
	cfg.Circuit.MaxFailures = 3

	quotes, err := newQuoteClient(cfg)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 20 {
		wg.Go(func() {
			_, err := quotes.List(context.Background())
			assert.True(t, domain.IsUnavailable(err), "got %v", err)
		})
	}

	wg.Wait()
}
