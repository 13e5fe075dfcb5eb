package query

import (
	"net/url"
	"strings"

	"github.com/ruminaider/listfilter/internal/selection"
	"github.com/samber/lo"
)

// Marker is the bare query string the host uses when no parameters are set.
const Marker = "?"

// Target is the result of encoding a selection. Fill records which branch
// produced Query.
type Target struct {
	Fill  selection.Fill
	Query string
}

// Encode maps a committed selection to a navigation query. Exactly one branch
// applies:
//
//   - every item selected: baseQuery unchanged (no filter)
//   - nothing selected: noneQuery unchanged
//   - otherwise: baseQuery with lookup=<comma-joined codes> appended
func Encode(selected []string, total int, baseQuery, noneQuery, lookup string) Target {
	fill := selection.Classify(len(selected), total)
	switch fill {
	case selection.FillFull:
		return Target{Fill: fill, Query: baseQuery}
	case selection.FillEmpty:
		return Target{Fill: fill, Query: noneQuery}
	default:
		return Target{Fill: fill, Query: Join(baseQuery, lookup+"="+strings.Join(selected, ","))}
	}
}

// Join appends param to query. No separator is added when query already ends
// with the "?" marker, so the result never contains "?&".
func Join(query, param string) string {
	switch {
	case query == "":
		return Marker + param
	case strings.HasSuffix(query, Marker):
		return query + param
	default:
		return query + "&" + param
	}
}

// Range holds the two bounds of a numeric range filter. Empty bounds are
// omitted from the encoded query.
type Range struct {
	LookupGte string
	Gte       string
	LookupLte string
	Lte       string
}

// EncodeRange appends the non-empty bounds of r to baseQuery. Bound values
// are query-escaped, so "1e+1" is not read back as "1e 1".
func EncodeRange(baseQuery string, r Range) string {
	qs := baseQuery
	if r.Gte != "" {
		qs = Join(qs, r.LookupGte+"="+url.QueryEscape(r.Gte))
	}
	if r.Lte != "" {
		qs = Join(qs, r.LookupLte+"="+url.QueryEscape(r.Lte))
	}
	return qs
}

// Binding ties a widget to the page it navigates: the page path and the
// queries the host prepared for it.
type Binding struct {
	Path      string
	BaseQuery string
	NoneQuery string
	Lookup    string
}

// Target returns the full navigation target (path plus query) for codes
// selected out of total. Each code is query-escaped before Encode joins them;
// the "," between codes stays literal.
func (b Binding) Target(codes []string, total int) string {
	escaped := lo.Map(codes, func(c string, _ int) string { return url.QueryEscape(c) })
	return b.Path + Encode(escaped, total, b.BaseQuery, b.NoneQuery, b.Lookup).Query
}

// RangeTarget returns the full navigation target for a submitted range.
func (b Binding) RangeTarget(r Range) string {
	return b.Path + EncodeRange(b.BaseQuery, r)
}

// ResetTarget returns the target that clears the binding's parameters.
func (b Binding) ResetTarget() string {
	return b.Path + b.BaseQuery
}
