package main

import (
	"fmt"
	"io"

	"github.com/ruminaider/listfilter/cmd/listfilter/tui"
	"github.com/ruminaider/listfilter/internal/config"
	"github.com/ruminaider/listfilter/internal/filters"
	"github.com/spf13/cobra"
)

const (
	outputTable = "table"
	outputYAML  = "yaml"
)

var (
	queryString string
	queryOutput string
)

var queryCmd = &cobra.Command{
	Use:   "query [dataset]",
	Short: "Print the rows matching a query string",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(args)
		if err != nil {
			return err
		}
		return printRows(cmd.OutOrStdout(), ds, queryString, queryOutput)
	},
}

func init() {
	queryCmd.Flags().StringVarP(&queryString, "query", "q", "", "query string, e.g. '?status__in=A,B'")
	queryCmd.Flags().StringVarP(&queryOutput, "output", "o", outputTable, "output format: table or yaml")
}

// printRows filters ds by raw and writes the result in the given format.
func printRows(w io.Writer, ds config.Dataset, raw, format string) error {
	fs, err := filters.Load(ds, raw)
	if err != nil {
		return fmt.Errorf("reading query: %w", err)
	}
	rows := filters.Apply(ds.Rows, fs)

	switch format {
	case outputTable:
		fmt.Fprintln(w, tui.RenderTable(tui.Columns(ds), rows, 0))
		fmt.Fprintf(w, "%d/%d rows\n", len(rows), len(ds.Rows))
	case outputYAML:
		out := ds
		out.Rows = rows
		data, err := config.Marshal(out)
		if err != nil {
			return err
		}
		fmt.Fprint(w, string(data))
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	return nil
}
