package filters

import (
	"fmt"
	"strconv"

	"github.com/ruminaider/listfilter/internal/config"
	"github.com/ruminaider/listfilter/internal/query"
)

// RangeFilter keeps rows whose lower field is >= the gte bound and whose upper
// field is <= the lte bound. Unset bounds are ignored.
type RangeFilter struct {
	Spec      config.FilterSpec
	LookupGte string
	LookupLte string

	params Params
	gte    *float64
	lte    *float64
	rawGte string
	rawLte string
}

// NewRangeFilter reads the filter's bounds from params.
func NewRangeFilter(spec config.FilterSpec, params Params) (*RangeFilter, error) {
	f := &RangeFilter{
		Spec:      spec,
		LookupGte: spec.Gte + "__range__gte",
		LookupLte: spec.Lte + "__range__lte",
		params:    params,
	}
	var err error
	if f.rawGte, f.gte, err = bound(params, f.LookupGte); err != nil {
		return nil, err
	}
	if f.rawLte, f.lte, err = bound(params, f.LookupLte); err != nil {
		return nil, err
	}
	return f, nil
}

func bound(params Params, key string) (string, *float64, error) {
	raw, ok := params.Get(key)
	if !ok || raw == "" {
		return "", nil, nil
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %s=%q", ErrIncorrectLookup, key, raw)
	}
	return raw, &n, nil
}

// ExpectedParameters lists the query keys this filter consumes.
func (f *RangeFilter) ExpectedParameters() []string {
	return []string{f.LookupGte, f.LookupLte}
}

// Bounds returns the raw bound values from the query, empty when unset.
func (f *RangeFilter) Bounds() (gte, lte string) {
	return f.rawGte, f.rawLte
}

// BaseQuery is the current query without this filter's parameters.
func (f *RangeFilter) BaseQuery() string {
	return f.params.Without(f.ExpectedParameters()...).Encode()
}

// Binding returns the navigation binding handed to the range widget.
func (f *RangeFilter) Binding(path string) query.Binding {
	return query.Binding{Path: path, BaseQuery: f.BaseQuery()}
}

// Range builds the encoder input for the given bounds.
func (f *RangeFilter) Range(gte, lte string) query.Range {
	return query.Range{LookupGte: f.LookupGte, Gte: gte, LookupLte: f.LookupLte, Lte: lte}
}

// Active reports whether the filter restricts rows.
func (f *RangeFilter) Active() bool {
	return f.gte != nil || f.lte != nil
}

// Matches reports whether row falls inside the bounds. A null or non-numeric
// value never satisfies a set bound.
func (f *RangeFilter) Matches(row config.Row) bool {
	if f.gte != nil {
		v, ok := number(row, f.Spec.Gte)
		if !ok || v < *f.gte {
			return false
		}
	}
	if f.lte != nil {
		v, ok := number(row, f.Spec.Lte)
		if !ok || v > *f.lte {
			return false
		}
	}
	return true
}

func number(row config.Row, field string) (float64, bool) {
	switch v := row[field].(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float64:
		return v, true
	case string:
		n, err := strconv.ParseFloat(v, 64)
		return n, err == nil
	}
	return 0, false
}
