package acl

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/jsamuelsen/quote-store/internal/domain"
)

// quoteWire is the JSON shape the quote store reads and writes.
// It never leaves this package.
type quoteWire struct {
	Author string `json:"author"`
	Text   string `json:"text"`
}

func (w quoteWire) toDomain() domain.Quote {
	return domain.Quote{Author: w.Author, Text: w.Text}
}

func wireFromDomain(q domain.Quote) quoteWire {
	return quoteWire{Author: q.Author, Text: q.Text}
}

// DecodeResponse decodes a JSON body into T and closes it.
func DecodeResponse[T any](body io.ReadCloser) (T, error) {
	var result T

	if body == nil {
		return result, errors.New("response body is nil")
	}
	defer func() { _ = body.Close() }()

	if err := json.NewDecoder(body).Decode(&result); err != nil {
		return result, fmt.Errorf("decoding response: %w", err)
	}

	return result, nil
}

// TranslateSlice maps items with translate. The result is never nil.
func TranslateSlice[E, D any](items []E, translate func(E) D) []D {
	out := make([]D, 0, len(items))
	for _, item := range items {
		out = append(out, translate(item))
	}

	return out
}
