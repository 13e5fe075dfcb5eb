package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

var (
	logDebug bool
	logFile  string
)

var rootCmd = &cobra.Command{
	Use:   "listfilter",
	Short: "Browse tabular datasets through query-string filters",
	Long: "listfilter renders a dataset as a table with multi-select and range filters above it. " +
		"Every applied filter becomes a query string, and the page is reloaded from that query.",
	SilenceUsage: true,
	Args:         cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: open the viewer
		return viewCmd.RunE(cmd, args)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "listfilter %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&logDebug, "debug", false, "log at debug level")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "log file (default ~/.listfilter/listfilter.log)")

	// The root runs view, so it takes view's flags too.
	rootCmd.Flags().StringVar(&viewQuery, "query", "", "initial query string, e.g. '?status__in=A,B'")
	rootCmd.Flags().StringVar(&viewVariant, "variant", "buttons", "dropdown variant: buttons, click or input")
	rootCmd.Flags().BoolVar(&viewNoNone, "no-none", false, "do not apply an empty selection")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(pickCmd)
	rootCmd.AddCommand(rangeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
