package main

import (
	"github.com/spf13/cobra"
)

func newGetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "show the quote at a position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := opts.quotes.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return printQuote(opts, q)
		},
	}
}

func newRandomCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "random",
		Short: "show a random quote",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := opts.quotes.Random(cmd.Context())
			if err != nil {
				return err
			}

			return printQuote(opts, q)
		},
	}
}
