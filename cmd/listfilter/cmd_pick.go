package main

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/ruminaider/listfilter/internal/filters"
	"github.com/ruminaider/listfilter/internal/selection"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var (
	pickFilter string
	pickQuery  string
	pickNoNone bool
)

var pickCmd = &cobra.Command{
	Use:   "pick [dataset]",
	Short: "Choose codes for a choices filter and print the navigation target",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(args)
		if err != nil {
			return err
		}
		f, err := findFilter[*filters.ChoicesFilter](ds, pickQuery, pickFilter, "choices")
		if err != nil {
			return err
		}

		codes := f.Selected()
		options := lo.Map(f.Choices, func(it selection.Item, _ int) huh.Option[string] {
			return huh.NewOption(it.Label, it.Code).Selected(lo.Contains(codes, it.Code))
		})
		err = huh.NewForm(
			huh.NewGroup(
				huh.NewMultiSelect[string]().
					Title(f.Spec.Heading()).
					Description("Space to toggle, Enter to confirm").
					Options(options...).
					Value(&codes),
			),
		).Run()
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Fprintln(cmd.ErrOrStderr(), "Cancelled.")
			return nil
		}
		if err != nil {
			return err
		}

		target, ok := pickTarget(f, ds.Path, codes, !pickNoNone)
		if !ok {
			fmt.Fprintln(cmd.ErrOrStderr(), "Nothing selected; filter not applied.")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), target)
		return nil
	},
}

func init() {
	pickCmd.Flags().StringVarP(&pickFilter, "filter", "f", "", "choices filter name (its field)")
	pickCmd.Flags().StringVarP(&pickQuery, "query", "q", "", "current query string")
	pickCmd.Flags().BoolVar(&pickNoNone, "no-none", false, "do not apply an empty selection")
	_ = pickCmd.MarkFlagRequired("filter")
}

// pickTarget commits codes against the filter's choices and returns the
// navigation target. Unknown codes are dropped and the rest are put in
// choice order. ok is false for an empty selection when allowNone is off.
func pickTarget(f *filters.ChoicesFilter, path string, codes []string, allowNone bool) (string, bool) {
	m := selection.New(f.Choices, codes)
	committed := m.CommittedCodes()
	if len(committed) == 0 && !allowNone {
		return "", false
	}
	return f.Binding(path).Target(committed, m.Len()), true
}
