package filters

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ruminaider/listfilter/internal/config"
	"github.com/ruminaider/listfilter/internal/query"
	"github.com/ruminaider/listfilter/internal/selection"
	"github.com/samber/lo"
)

// ListSeparator joins codes inside a list lookup value.
const ListSeparator = ","

// ChoicesFilter keeps rows whose field matches any of the selected codes. It
// reads two parameters: <field>__in (a code list) and <field>__isnull.
type ChoicesFilter struct {
	Spec         config.FilterSpec
	Choices      []selection.Item
	LookupIn     string
	LookupIsNull string

	params   Params
	in       []string
	inSet    bool
	isNull   bool
	isNullOK bool
}

// NewChoicesFilter reads the filter's parameters from params. Choice codes
// are quoted with QuoteCode, so the widget and the query only ever carry
// codes without separators in them.
func NewChoicesFilter(spec config.FilterSpec, choices []selection.Item, params Params) (*ChoicesFilter, error) {
	f := &ChoicesFilter{
		Spec: spec,
		Choices: lo.Map(choices, func(it selection.Item, _ int) selection.Item {
			return selection.Item{Code: QuoteCode(it.Code), Label: it.Label}
		}),
		LookupIn:     spec.Field + "__in",
		LookupIsNull: spec.Field + "__isnull",
		params:       params,
	}
	if v, ok := params.Get(f.LookupIn); ok {
		f.inSet = true
		f.in = lo.Filter(strings.Split(v, ListSeparator), func(s string, _ int) bool { return s != "" })
	}
	if v, ok := params.Get(f.LookupIsNull); ok {
		b, err := parseBool(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%q", ErrIncorrectLookup, f.LookupIsNull, v)
		}
		f.isNull, f.isNullOK = b, true
	}
	return f, nil
}

// ExpectedParameters lists the query keys this filter consumes.
func (f *ChoicesFilter) ExpectedParameters() []string {
	return []string{f.LookupIn, f.LookupIsNull}
}

// Selected returns the codes the widget should start with, in choice order.
// A null filter selects nothing, and no __in parameter selects everything.
func (f *ChoicesFilter) Selected() []string {
	if f.isNullOK && f.isNull {
		return []string{}
	}
	codes := lo.Map(f.Choices, func(it selection.Item, _ int) string { return it.Code })
	if !f.inSet {
		return codes
	}
	return lo.Filter(codes, func(c string, _ int) bool { return lo.Contains(f.in, c) })
}

// BaseQuery is the current query without this filter's parameters.
func (f *ChoicesFilter) BaseQuery() string {
	return f.params.Without(f.ExpectedParameters()...).Encode()
}

// NullQuery is the current query filtered to rows where the field is null.
func (f *ChoicesFilter) NullQuery() string {
	return f.params.Without(f.LookupIn).With(f.LookupIsNull, "True").Encode()
}

// Binding returns the navigation binding handed to the dropdown widget.
func (f *ChoicesFilter) Binding(path string) query.Binding {
	return query.Binding{
		Path:      path,
		BaseQuery: f.BaseQuery(),
		NoneQuery: f.NullQuery(),
		Lookup:    f.LookupIn,
	}
}

// Active reports whether the filter restricts rows.
func (f *ChoicesFilter) Active() bool {
	return f.inSet || f.isNullOK
}

// Matches applies both lookups to row.
func (f *ChoicesFilter) Matches(row config.Row) bool {
	v, null := value(row, f.Spec.Field)
	if f.inSet && (null || !lo.Contains(f.in, QuoteCode(v))) {
		return false
	}
	if f.isNullOK && f.isNull != null {
		return false
	}
	return true
}

// ChoicesFromRows derives choices from the distinct non-null values of field,
// in order of first appearance.
func ChoicesFromRows(rows []config.Row, field string) []selection.Item {
	var vals []string
	for _, r := range rows {
		if v, null := value(r, field); !null {
			vals = append(vals, v)
		}
	}
	return lo.Map(lo.Uniq(vals), func(v string, _ int) selection.Item {
		return selection.Item{Code: v, Label: v}
	})
}

// QuoteCode percent-encodes a raw value for use as a choice code. The result
// holds no "&", "=", "+" or "," and decodes back with url.QueryUnescape.
func QuoteCode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func value(row config.Row, field string) (string, bool) {
	v, ok := row[field]
	if !ok || v == nil {
		return "", true
	}
	s := fmt.Sprint(v)
	return s, s == ""
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "1", "true":
		return true, nil
	case "0", "false":
		return false, nil
	}
	return false, fmt.Errorf("not a boolean: %q", s)
}
