package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/quote-store/internal/domain"
)

func newAddCmd(opts *rootOptions) *cobra.Command {
	var q domain.Quote

	cmd := &cobra.Command{
		Use:   "add",
		Short: "append a quote",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.quotes.Create(cmd.Context(), q); err != nil {
				return err
			}

			fmt.Fprintln(opts.out, "added")

			return nil
		},
	}

	cmd.Flags().StringVar(&q.Author, "author", "", "quote author")
	cmd.Flags().StringVar(&q.Text, "text", "", "quote text")
	_ = cmd.MarkFlagRequired("author")
	_ = cmd.MarkFlagRequired("text")

	return cmd
}
