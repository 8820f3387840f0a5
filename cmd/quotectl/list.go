package main

import (
	"github.com/spf13/cobra"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list every quote with its id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			quotes, err := opts.quotes.List(cmd.Context())
			if err != nil {
				return err
			}

			if opts.json {
				return printJSON(opts.out, quotes)
			}

			printTable(opts.out, quotes)

			return nil
		},
	}
}
