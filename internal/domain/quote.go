// Package domain contains core business entities and rules.
package domain

import (
	"strconv"
)

// EntityQuote is the entity name used in domain errors for quotes.
const EntityQuote = "quote"

// Quote represents a quotation with its author.
// A quote carries no identifier: its id is its current position in the
// store, and that position shifts when earlier quotes are removed.
type Quote struct {
	// Author is who said or wrote the quote.
	Author string

	// Text is the quotation itself.
	Text string
}

// SeedQuotes returns the quotes the store starts with.
// A fresh slice is returned on every call.
func SeedQuotes() []Quote {
	return []Quote{
		{
			Author: "Audrey Hepburn",
			Text:   "Nothing is impossible, the word itself says 'I'm possible'!",
		},
		{
			Author: "Walt Disney",
			Text:   "You may not realize it when it happens, but a kick in the teeth may be the best thing in the world for you",
		},
		{
			Author: "Unknown",
			Text:   "Even the greatest was once a beginner. Don’t be afraid to take that first step.",
		},
		{
			Author: "Neale Donald Walsch",
			Text:   "You are afraid to die, and you’re afraid to live. What a way to exist.",
		},
	}
}

// ParsePosition converts a raw positional id into an index.
// Anything that is not a base-10 integer, or is negative, is reported as
// a NotFoundError so callers treat it exactly like an out-of-range id.
// The upper bound depends on the current store length and is checked there.
func ParsePosition(raw string) (int, error) {
	pos, err := strconv.Atoi(raw)
	if err != nil || pos < 0 {
		return 0, NewNotFoundError(EntityQuote, raw)
	}

	return pos, nil
}
