package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/jsamuelsen/quote-store/internal/domain"
)

// wireQuote keeps --json output identical to the server's.
type wireQuote struct {
	Author string `json:"author"`
	Text   string `json:"text"`
}

func printJSON(w io.Writer, v any) error {
	switch q := v.(type) {
	case domain.Quote:
		v = wireQuote(q)
	case []domain.Quote:
		out := make([]wireQuote, len(q))
		for i := range q {
			out[i] = wireQuote(q[i])
		}
		v = out
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

func printTable(w io.Writer, quotes []domain.Quote) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Author", "Text"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)

	for i, q := range quotes {
		table.Append([]string{strconv.Itoa(i), q.Author, q.Text})
	}

	table.Render()
}

func printQuote(opts *rootOptions, q domain.Quote) error {
	if opts.json {
		return printJSON(opts.out, q)
	}

	fmt.Fprintf(opts.out, "%q\n  - %s\n", q.Text, color.New(color.Bold).Sprint(q.Author))

	return nil
}
