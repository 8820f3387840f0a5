package dto

import (
	"bytes"
	"encoding/json"

	"github.com/jsamuelsen/quote-store/internal/domain"
)

// QuoteResponse is the wire form of a quote.
type QuoteResponse struct {
	Author string `json:"author"`
	Text   string `json:"text"`
}

// FromDomain converts a domain quote to its response form.
func FromDomain(q domain.Quote) QuoteResponse {
	return QuoteResponse{Author: q.Author, Text: q.Text}
}

// FromDomainList converts quotes in order. The result is never nil so an
// empty store encodes as [] rather than null.
func FromDomainList(quotes []domain.Quote) []QuoteResponse {
	out := make([]QuoteResponse, len(quotes))
	for i, q := range quotes {
		out[i] = FromDomain(q)
	}

	return out
}

// CreateQuoteRequest is the POST /quote body. Only key presence is checked:
// an empty string, a number or null are all accepted.
type CreateQuoteRequest struct {
	Author json.RawMessage `json:"author" validate:"required"`
	Text   json.RawMessage `json:"text"   validate:"required"`
}

// ToDomain converts a bound request to a quote.
func (r *CreateQuoteRequest) ToDomain() domain.Quote {
	return domain.Quote{
		Author: rawToString(r.Author),
		Text:   rawToString(r.Text),
	}
}

// rawToString stores strings verbatim, null as "", and any other JSON value
// as its compact JSON text.
func rawToString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)

	switch {
	case len(raw) == 0, bytes.Equal(raw, []byte("null")):
		return ""
	case raw[0] == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}

	return buf.String()
}
