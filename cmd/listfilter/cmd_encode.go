package main

import (
	"fmt"

	"github.com/ruminaider/listfilter/internal/query"
	"github.com/spf13/cobra"
)

var (
	encodeTotal  int
	encodeBase   string
	encodeNone   string
	encodeLookup string
	encodeFill   bool
)

var encodeCmd = &cobra.Command{
	Use:   "encode [codes...]",
	Short: "Print the navigation query for a selection",
	Long: "Encodes the selected codes out of --total items. Selecting every item yields " +
		"the base query, selecting none yields the none query, and anything else appends " +
		"lookup=<codes> to the base query.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if encodeTotal < len(args) {
			return fmt.Errorf("--total %d is smaller than the %d selected codes", encodeTotal, len(args))
		}
		t := query.Encode(args, encodeTotal, encodeBase, encodeNone, encodeLookup)
		if encodeFill {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", t.Fill, t.Query)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), t.Query)
		return nil
	},
}

func init() {
	encodeCmd.Flags().IntVar(&encodeTotal, "total", 0, "number of items in the widget")
	encodeCmd.Flags().StringVar(&encodeBase, "base", query.Marker, "query without this filter's parameters")
	encodeCmd.Flags().StringVar(&encodeNone, "none", query.Marker, "query used when nothing is selected")
	encodeCmd.Flags().StringVar(&encodeLookup, "lookup", "", "parameter name for a partial selection")
	encodeCmd.Flags().BoolVar(&encodeFill, "fill", false, "also print the fill state")
	_ = encodeCmd.MarkFlagRequired("total")
	_ = encodeCmd.MarkFlagRequired("lookup")
}
