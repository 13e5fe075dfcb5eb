// Package filters reads filter state back out of a query string and applies
// it to dataset rows. It is the host-side counterpart of the query encoder.
package filters

import (
	"errors"
	"fmt"

	"github.com/ruminaider/listfilter/internal/config"
	"github.com/samber/lo"
)

// ErrIncorrectLookup is wrapped when a query parameter cannot be applied.
var ErrIncorrectLookup = errors.New("incorrect lookup parameters")

// Filter is a row predicate built from query parameters.
type Filter interface {
	ExpectedParameters() []string
	BaseQuery() string
	Active() bool
	Matches(row config.Row) bool
}

// Build creates one filter per dataset filter spec, in spec order. Choices
// filters without configured choices derive them from the rows.
func Build(ds config.Dataset, params Params) ([]Filter, error) {
	out := make([]Filter, 0, len(ds.Filters))
	for _, spec := range ds.Filters {
		switch spec.Kind {
		case config.KindChoices:
			choices := spec.Choices
			if len(choices) == 0 {
				choices = ChoicesFromRows(ds.Rows, spec.Field)
			}
			f, err := NewChoicesFilter(spec, choices, params)
			if err != nil {
				return nil, err
			}
			out = append(out, f)
		case config.KindRange:
			f, err := NewRangeFilter(spec, params)
			if err != nil {
				return nil, err
			}
			out = append(out, f)
		default:
			return nil, fmt.Errorf("%w: unknown filter kind %q", ErrIncorrectLookup, spec.Kind)
		}
	}
	return out, nil
}

// Apply returns the rows matching every filter, in their original order.
func Apply(rows []config.Row, fs []Filter) []config.Row {
	return lo.Filter(rows, func(r config.Row, _ int) bool {
		for _, f := range fs {
			if !f.Matches(r) {
				return false
			}
		}
		return true
	})
}

// Load parses rawQuery and builds the dataset's filters from it.
func Load(ds config.Dataset, rawQuery string) ([]Filter, error) {
	params, err := ParseQuery(rawQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIncorrectLookup, err)
	}
	return Build(ds, params)
}
