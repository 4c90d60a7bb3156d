package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/traduckxion/transcribe/transcription"
)

func newCorrectCommand(ctx *commandContext) *cobra.Command {
	var (
		language string
		sector   string
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "correct [text]",
		Short: "Apply sector glossary corrections to text (stdin when no argument)",
		RunE: func(cmd *cobra.Command, args []string) error {
			input := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				input = strings.TrimRight(string(data), "\n")
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			catalog, err := cfg.Catalog()
			if err != nil {
				return err
			}
			corrector := transcription.NewCorrector(catalog.SectorDictionaries(), cfg.Transcription.CorrectionThreshold)
			out, applied := corrector.Apply(input, transcription.Sector(sector), language)

			if asJSON {
				return writeJSON(cmd, map[string]any{"text": out, "corrections": applied})
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			for _, c := range applied {
				warnf(cmd, "%s -> %s (%.2f)", c.Original, c.Term, c.Similarity)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&language, "language", "l", "fr", "Language code")
	cmd.Flags().StringVarP(&sector, "sector", "s", "", "Sector glossary to apply")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	_ = cmd.MarkFlagRequired("sector")
	return cmd
}
