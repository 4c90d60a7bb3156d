package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	return newIndentEncoder(cmd.OutOrStdout()).Encode(v)
}

func newIndentEncoder(w io.Writer) *json.Encoder {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc
}

func shouldColorize(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// warnf prints a warning line to stderr, yellow on a terminal.
func warnf(cmd *cobra.Command, format string, args ...any) {
	w := cmd.ErrOrStderr()
	msg := fmt.Sprintf(format, args...)
	if shouldColorize(w) {
		msg = text.Colors{text.FgYellow}.Sprint(msg)
	}
	fmt.Fprintln(w, msg)
}
