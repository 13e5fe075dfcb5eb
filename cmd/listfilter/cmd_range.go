package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/ruminaider/listfilter/internal/filters"
	"github.com/spf13/cobra"
)

var (
	rangeName  string
	rangeQuery string
	rangeGte   string
	rangeLte   string
	rangeReset bool
)

var rangeCmd = &cobra.Command{
	Use:   "range [dataset]",
	Short: "Prompt for range bounds and print the navigation target",
	Long: "Prompts for the lower and upper bound of a range filter, prefilled from --query. " +
		"Passing --gte or --lte skips the prompt.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(args)
		if err != nil {
			return err
		}
		f, err := findFilter[*filters.RangeFilter](ds, rangeQuery, rangeName, "range")
		if err != nil {
			return err
		}
		b := f.Binding(ds.Path)

		if rangeReset {
			fmt.Fprintln(cmd.OutOrStdout(), b.ResetTarget())
			return nil
		}

		gte, lte := f.Bounds()
		if cmd.Flags().Changed("gte") || cmd.Flags().Changed("lte") {
			gte, lte = rangeGte, rangeLte
			for _, v := range []string{gte, lte} {
				if err := validateNumber(v); err != nil {
					return err
				}
			}
		} else {
			err := huh.NewForm(
				huh.NewGroup(
					huh.NewInput().
						Title(f.Spec.Heading()+" at least").
						Placeholder("any").
						Value(&gte).
						Validate(validateNumber),
					huh.NewInput().
						Title(f.Spec.Heading()+" at most").
						Placeholder("any").
						Value(&lte).
						Validate(validateNumber),
				),
			).Run()
			if errors.Is(err, huh.ErrUserAborted) {
				fmt.Fprintln(cmd.ErrOrStderr(), "Cancelled.")
				return nil
			}
			if err != nil {
				return err
			}
		}

		fmt.Fprintln(cmd.OutOrStdout(), b.RangeTarget(f.Range(strings.TrimSpace(gte), strings.TrimSpace(lte))))
		return nil
	},
}

func init() {
	rangeCmd.Flags().StringVarP(&rangeName, "filter", "f", "", "range filter name (its gte field)")
	rangeCmd.Flags().StringVarP(&rangeQuery, "query", "q", "", "current query string")
	rangeCmd.Flags().StringVar(&rangeGte, "gte", "", "lower bound, skips the prompt")
	rangeCmd.Flags().StringVar(&rangeLte, "lte", "", "upper bound, skips the prompt")
	rangeCmd.Flags().BoolVar(&rangeReset, "reset", false, "print the target that clears the filter")
	_ = rangeCmd.MarkFlagRequired("filter")
}

// validateNumber accepts an empty bound or a number.
func validateNumber(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return fmt.Errorf("not a number: %q", s)
	}
	return nil
}
