package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/traduckxion/transcribe/transcription"
)

func newEnginesCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "engines",
		Short: "List transcription engines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := ctx.catalog()
			if err != nil {
				return err
			}
			engines := catalog.Engines()
			if asJSON {
				return writeJSON(cmd, engines)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderEngines(engines))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func renderEngines(engines []transcription.Engine) string {
	rows := make([][]string, 0, len(engines))
	for _, e := range engines {
		sectors := make([]string, len(e.Specialization))
		for i, s := range e.Specialization {
			sectors[i] = string(s)
		}
		rows = append(rows, []string{
			e.ID,
			e.Name,
			e.Provider,
			strings.Join(e.Languages, ","),
			strconv.FormatFloat(e.Accuracy, 'f', -1, 64),
			strconv.FormatFloat(e.Speed, 'f', -1, 64),
			strconv.FormatFloat(e.CostPerMinute, 'f', 4, 64),
			strings.Join(sectors, ","),
		})
	}
	return renderTable(
		[]string{"ID", "Name", "Provider", "Languages", "Accuracy", "Speed", "$/min", "Sectors"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft},
	)
}
