package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/traduckxion/transcribe/transcription"
)

func newSelectCommand(ctx *commandContext) *cobra.Command {
	var (
		language string
		sector   string
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "select",
		Short: "Show the engine chosen for a language and sector",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := ctx.catalog()
			if err != nil {
				return err
			}
			e, err := catalog.SelectBestEngine(language, transcription.Sector(sector).OrGeneral())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, e)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) accuracy %.0f, speed %.2f, score %.1f\n",
				e.Name, e.ID, e.Accuracy, e.Speed, e.Score())
			return nil
		},
	}
	cmd.Flags().StringVarP(&language, "language", "l", "", "Language code (fr, en, ...)")
	cmd.Flags().StringVarP(&sector, "sector", "s", "", "Sector (general, medical, legal, education, business, media)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	_ = cmd.MarkFlagRequired("language")
	return cmd
}
