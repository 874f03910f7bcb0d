package app

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to format output as JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func printTable(w io.Writer, header []string, rows [][]string) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No entries found")
		return err
	}

	table := tablewriter.NewWriter(w)
	headers := make([]any, len(header))
	for i, h := range header {
		headers[i] = h
	}
	table.Header(headers...)
	if err := table.Bulk(rows); err != nil {
		return fmt.Errorf("failed to build table: %w", err)
	}
	return table.Render()
}

// printOK reports a successful change
func printOK(w io.Writer, format string, args ...any) {
	_, _ = color.New(color.FgGreen).Fprintf(w, "✓ "+format+"\n", args...)
}
