// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use domain error types (ErrNotFound, ErrValidation, ...)
package ports

import (
	"context"

	"github.com/jsamuelsen/quote-store/internal/domain"
)

// QuoteRepository is the single owner of the ordered quote sequence.
//
// Quotes are addressed by position. Every method is one atomic step with
// respect to every other method: an index is always resolved against the
// length observed in the same step.
type QuoteRepository interface {
	// List returns a copy of all quotes in current order.
	// An empty repository yields an empty, non-nil slice.
	List(ctx context.Context) ([]domain.Quote, error)

	// Random returns a uniformly chosen quote.
	// Returns domain.ErrNotFound if the repository is empty.
	Random(ctx context.Context) (domain.Quote, error)

	// Get returns the quote at pos.
	// Returns domain.ErrNotFound if pos is outside [0, Len).
	Get(ctx context.Context, pos int) (domain.Quote, error)

	// Append adds q to the end and returns its position.
	Append(ctx context.Context, q domain.Quote) (int, error)

	// Remove deletes the quote at pos, shifting later quotes down by one.
	// Returns domain.ErrNotFound if pos is outside [0, Len).
	Remove(ctx context.Context, pos int) error

	// Len returns the current number of quotes.
	Len(ctx context.Context) (int, error)
}
