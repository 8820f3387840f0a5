package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "delete the quote at a position; later ids shift down by one",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.quotes.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Fprintf(opts.out, "deleted %s\n", args[0])

			return nil
		},
	}
}

func newPingCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "check that the quote store is ready",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.quotes.Check(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintf(opts.out, "%s is ready\n", opts.quotes.Name())

			return nil
		},
	}
}
