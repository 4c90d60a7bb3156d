package main

import (
	"github.com/spf13/cobra"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.newApp(cmd.Context(), true)
			if err != nil {
				return err
			}
			return a.Run(cmd.Context())
		},
	}
}
