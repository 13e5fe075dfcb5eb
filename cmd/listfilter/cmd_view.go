package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/ruminaider/listfilter/cmd/listfilter/tui"
	"github.com/ruminaider/listfilter/internal/dropdown"
	"github.com/spf13/cobra"
)

var (
	viewQuery   string
	viewVariant string
	viewNoNone  bool
)

// stdinIsTerminal is replaced in tests.
var stdinIsTerminal = func() bool { return term.IsTerminal(os.Stdin.Fd()) }

var viewCmd = &cobra.Command{
	Use:   "view [dataset]",
	Short: "Browse a dataset with interactive filters",
	Long: "Opens the dataset as a table with one filter widget per configured filter. " +
		"Prints the final location on exit.",
	Args: cobra.MaximumNArgs(1),
	RunE: runView,
}

func init() {
	viewCmd.Flags().StringVar(&viewQuery, "query", "", "initial query string, e.g. '?status__in=A,B'")
	viewCmd.Flags().StringVar(&viewVariant, "variant", "buttons", "dropdown variant: buttons, click or input")
	viewCmd.Flags().BoolVar(&viewNoNone, "no-none", false, "do not apply an empty selection")
}

func runView(cmd *cobra.Command, args []string) error {
	// TTY guard: fall back to query when stdin is not a terminal
	// (piping, CI, scripts, etc.)
	if !stdinIsTerminal() {
		ds, err := loadDataset(args)
		if err != nil {
			return err
		}
		return printRows(cmd.OutOrStdout(), ds, viewQuery, outputTable)
	}

	variant, err := dropdown.ParseVariant(viewVariant)
	if err != nil {
		return err
	}
	ds, err := loadDataset(args)
	if err != nil {
		return err
	}
	logger, closeLog, err := openLog()
	if err != nil {
		return err
	}
	defer closeLog()

	logger.Info("view started", "dataset", ds.Title, "query", viewQuery, "variant", variant)
	page := tui.NewPage(ds, viewQuery, tui.Options{
		Variant:   variant,
		AllowNone: !viewNoNone,
		Logger:    logger,
	})
	final, err := tea.NewProgram(page, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), final.(tui.Page).Location())
	return nil
}
