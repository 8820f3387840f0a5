package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-store/internal/adapters/memory"
	"github.com/jsamuelsen/quote-store/internal/domain"
	"github.com/jsamuelsen/quote-store/internal/mocks"
	"github.com/jsamuelsen/quote-store/internal/platform/logging"
)

// discardLogger returns a logger that discards all output.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newServiceWithMock builds a service over a mock repository. The Len call
// made during construction and after mutations is allowed but not required.
func newServiceWithMock(t *testing.T, setup func(*mocks.MockQuoteRepository)) *QuoteService {
	t.Helper()

	repo := mocks.NewMockQuoteRepository(t)
	repo.EXPECT().Len(mock.Anything).Return(0, nil).Maybe()

	if setup != nil {
		setup(repo)
	}

	return NewQuoteService(QuoteServiceConfig{Repository: repo, Logger: discardLogger()})
}

func TestNewQuoteService_PanicsWithoutRepository(t *testing.T) {
	assert.Panics(t, func() {
		NewQuoteService(QuoteServiceConfig{Logger: discardLogger()})
	})
}

func TestNewQuoteService_DefaultsLogger(t *testing.T) {
	svc := NewQuoteService(QuoteServiceConfig{Repository: memory.NewQuoteStore()})

	require.NotNil(t, svc)
	assert.NotNil(t, svc.logger)
}

func TestQuoteService_ListQuotes(t *testing.T) {
	boom := errors.New("store offline")

	tests := []struct {
		name      string
		setupMock func(*mocks.MockQuoteRepository)
		want      []domain.Quote
		wantErr   error
	}{
		{
			name: "returns quotes in order",
			setupMock: func(m *mocks.MockQuoteRepository) {
				m.EXPECT().List(mock.Anything).Return(domain.SeedQuotes(), nil)
			},
			want: domain.SeedQuotes(),
		},
		{
			name: "empty store",
			setupMock: func(m *mocks.MockQuoteRepository) {
				m.EXPECT().List(mock.Anything).Return([]domain.Quote{}, nil)
			},
			want: []domain.Quote{},
		},
		{
			name: "repository failure is wrapped",
			setupMock: func(m *mocks.MockQuoteRepository) {
				m.EXPECT().List(mock.Anything).Return(nil, boom)
			},
			wantErr: boom,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newServiceWithMock(t, tt.setupMock)

			got, err := svc.ListQuotes(context.Background())

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQuoteService_RandomQuote(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(*mocks.MockQuoteRepository)
		want      domain.Quote
		errCheck  func(error) bool
	}{
		{
			name: "success",
			setupMock: func(m *mocks.MockQuoteRepository) {
				m.EXPECT().Random(mock.Anything).Return(domain.Quote{Author: "A", Text: "B"}, nil)
			},
			want: domain.Quote{Author: "A", Text: "B"},
		},
		{
			name: "empty store is not found",
			setupMock: func(m *mocks.MockQuoteRepository) {
				m.EXPECT().Random(mock.Anything).
					Return(domain.Quote{}, domain.NewNotFoundError(domain.EntityQuote, "random"))
			},
			errCheck: domain.IsNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newServiceWithMock(t, tt.setupMock)

			got, err := svc.RandomQuote(context.Background())

			if tt.errCheck != nil {
				require.Error(t, err)
				assert.True(t, tt.errCheck(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQuoteService_GetQuote(t *testing.T) {
	tests := []struct {
		name      string
		rawID     string
		setupMock func(*mocks.MockQuoteRepository)
		want      domain.Quote
		wantErr   bool
	}{
		{
			name:  "valid position",
			rawID: "2",
			setupMock: func(m *mocks.MockQuoteRepository) {
				m.EXPECT().Get(mock.Anything, 2).Return(domain.SeedQuotes()[2], nil)
			},
			want: domain.SeedQuotes()[2],
		},
		{
			name:  "out of range",
			rawID: "10",
			setupMock: func(m *mocks.MockQuoteRepository) {
				m.EXPECT().Get(mock.Anything, 10).Return(domain.Quote{}, domain.NewPositionNotFoundError(10))
			},
			wantErr: true,
		},
		{name: "negative id never reaches repository", rawID: "-1", wantErr: true},
		{name: "non-numeric id never reaches repository", rawID: "abc", wantErr: true},
		{name: "empty id", rawID: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newServiceWithMock(t, tt.setupMock)

			got, err := svc.GetQuote(context.Background(), tt.rawID)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, domain.IsNotFound(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQuoteService_CreateQuote(t *testing.T) {
	q := domain.Quote{Author: "Ada", Text: "Hello"}

	svc := newServiceWithMock(t, func(m *mocks.MockQuoteRepository) {
		m.EXPECT().Append(mock.Anything, q).Return(4, nil).Once()
	})

	pos, err := svc.CreateQuote(context.Background(), q)

	require.NoError(t, err)
	assert.Equal(t, 4, pos)
}

func TestQuoteService_CreateQuote_RepositoryFailure(t *testing.T) {
	boom := errors.New("disk full")

	svc := newServiceWithMock(t, func(m *mocks.MockQuoteRepository) {
		m.EXPECT().Append(mock.Anything, mock.Anything).Return(0, boom)
	})

	_, err := svc.CreateQuote(context.Background(), domain.Quote{})

	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "creating quote")
}

func TestQuoteService_DeleteQuote(t *testing.T) {
	tests := []struct {
		name      string
		rawID     string
		setupMock func(*mocks.MockQuoteRepository)
		wantErr   bool
	}{
		{
			name:  "valid position",
			rawID: "0",
			setupMock: func(m *mocks.MockQuoteRepository) {
				m.EXPECT().Remove(mock.Anything, 0).Return(nil).Once()
			},
		},
		{
			name:  "out of range",
			rawID: "7",
			setupMock: func(m *mocks.MockQuoteRepository) {
				m.EXPECT().Remove(mock.Anything, 7).Return(domain.NewPositionNotFoundError(7))
			},
			wantErr: true,
		},
		{name: "negative id is rejected before the repository", rawID: "-3", wantErr: true},
		{name: "non-numeric id", rawID: "x1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newServiceWithMock(t, tt.setupMock)

			err := svc.DeleteQuote(context.Background(), tt.rawID)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, domain.IsNotFound(err))
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestQuoteService_EndToEndOverMemoryStore(t *testing.T) {
	ctx := context.Background()
	svc := NewQuoteService(QuoteServiceConfig{
		Repository: memory.NewSeededQuoteStore(),
		Logger:     discardLogger(),
	})

	pos, err := svc.CreateQuote(ctx, domain.Quote{Author: "A", Text: "B"})
	require.NoError(t, err)
	assert.Equal(t, 4, pos)
	assert.InDelta(t, 5, testutil.ToFloat64(quoteStoreSize), 0)

	require.NoError(t, svc.DeleteQuote(ctx, "0"))
	assert.InDelta(t, 4, testutil.ToFloat64(quoteStoreSize), 0)

	first, err := svc.GetQuote(ctx, "0")
	require.NoError(t, err)
	assert.Equal(t, domain.SeedQuotes()[1], first)

	last, err := svc.GetQuote(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, domain.Quote{Author: "A", Text: "B"}, last)
}

func TestQuoteService_RecordsOutcomeMetrics(t *testing.T) {
	svc := NewQuoteService(QuoteServiceConfig{
		Repository: memory.NewSeededQuoteStore(),
		Logger:     discardLogger(),
	})
	ctx := context.Background()

	okBefore := testutil.ToFloat64(quoteOperations.WithLabelValues(OpGet, outcomeOK))
	missBefore := testutil.ToFloat64(quoteOperations.WithLabelValues(OpGet, outcomeNotFound))

	_, _ = svc.GetQuote(ctx, "1")
	_, _ = svc.GetQuote(ctx, "99")
	_, _ = svc.GetQuote(ctx, "nope")

	assert.InDelta(t, okBefore+1, testutil.ToFloat64(quoteOperations.WithLabelValues(OpGet, outcomeOK)), 0)
	assert.InDelta(t, missBefore+2, testutil.ToFloat64(quoteOperations.WithLabelValues(OpGet, outcomeNotFound)), 0)
}

func TestQuoteService_UsesRequestScopedLogger(t *testing.T) {
	var buf bytes.Buffer

	svc := NewQuoteService(QuoteServiceConfig{
		Repository: memory.NewQuoteStore(),
		Logger:     discardLogger(),
	})

	ctx := logging.WithContext(context.Background(), slog.New(slog.NewJSONHandler(&buf, nil)))
	ctx = logging.WithRequestID(ctx, "req-9")

	_, err := svc.RandomQuote(ctx)
	require.Error(t, err)

	assert.Contains(t, buf.String(), "quote operation failed")
	assert.Contains(t, buf.String(), `"request_id":"req-9"`)
	assert.Contains(t, buf.String(), `"operation":"random"`)
}

func TestOutcomeOf(t *testing.T) {
	assert.Equal(t, outcomeOK, outcomeOf(nil))
	assert.Equal(t, outcomeNotFound, outcomeOf(domain.NewPositionNotFoundError(3)))
	assert.Equal(t, outcomeInvalid, outcomeOf(domain.NewValidationError("author", "required")))
	assert.Equal(t, outcomeError, outcomeOf(errors.New("boom")))
}
