package selection

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
)

// ErrUnknownCode is returned when an operation names a code that is not in the
// item list.
var ErrUnknownCode = errors.New("unknown item code")

// Item is a single selectable value. Code is its identity; Label is what the
// user sees.
type Item struct {
	Code  string `yaml:"code" toml:"code"`
	Label string `yaml:"label" toml:"label"`
}

// Entry holds the two selection flags for one item. Committed is the state in
// effect while the widget is closed; Pending is the in-progress state while it
// is open.
type Entry struct {
	Committed bool
	Pending   bool
}

// Fill classifies a selection count relative to the item total.
type Fill int

const (
	FillPartial Fill = iota // some but not all items
	FillEmpty               // no items
	FillFull                // every item
)

// String returns a short name for the fill state.
func (f Fill) String() string {
	switch f {
	case FillEmpty:
		return "empty"
	case FillFull:
		return "full"
	default:
		return "partial"
	}
}

// Classify returns the fill state for n selected out of total. Full is checked
// before empty, so an empty item list counts as fully selected. The query
// encoder uses the same order.
func Classify(n, total int) Fill {
	switch {
	case n == total:
		return FillFull
	case n == 0:
		return FillEmpty
	default:
		return FillPartial
	}
}

// Model owns the item list and one Entry per item.
type Model struct {
	items   []Item
	entries map[string]*Entry
}

// New builds a Model from the items in display order. Codes in initial that do
// not match an item are ignored. When a code repeats in items, the first
// occurrence wins.
func New(items []Item, initial []string) *Model {
	want := make(map[string]bool, len(initial))
	for _, code := range initial {
		want[code] = true
	}

	m := &Model{
		items:   make([]Item, 0, len(items)),
		entries: make(map[string]*Entry, len(items)),
	}
	for _, it := range items {
		if _, dup := m.entries[it.Code]; dup {
			continue
		}
		m.items = append(m.items, it)
		sel := want[it.Code]
		m.entries[it.Code] = &Entry{Committed: sel, Pending: sel}
	}
	return m
}

// Items returns a copy of the items in display order.
func (m *Model) Items() []Item {
	out := make([]Item, len(m.items))
	copy(out, m.items)
	return out
}

// Len returns the number of items.
func (m *Model) Len() int {
	return len(m.items)
}

// Entry returns the flags for code.
func (m *Model) Entry(code string) (Entry, bool) {
	e, ok := m.entries[code]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Toggle flips the pending flag for code.
func (m *Model) Toggle(code string) error {
	e, ok := m.entries[code]
	if !ok {
		return fmt.Errorf("toggle %q: %w", code, ErrUnknownCode)
	}
	e.Pending = !e.Pending
	return nil
}

// SetAll sets the pending flag of every entry.
func (m *Model) SetAll(state bool) {
	for _, e := range m.entries {
		e.Pending = state
	}
}

// Commit copies pending to committed for every entry.
func (m *Model) Commit() {
	for _, e := range m.entries {
		e.Committed = e.Pending
	}
}

// Revert copies committed back to pending for every entry.
func (m *Model) Revert() {
	for _, e := range m.entries {
		e.Pending = e.Committed
	}
}

// Dirty reports whether any entry has pending != committed.
func (m *Model) Dirty() bool {
	for _, e := range m.entries {
		if e.Pending != e.Committed {
			return true
		}
	}
	return false
}

// CommittedCodes returns the committed codes in display order.
func (m *Model) CommittedCodes() []string {
	return m.codes(func(e *Entry) bool { return e.Committed })
}

// PendingCodes returns the pending codes in display order.
func (m *Model) PendingCodes() []string {
	return m.codes(func(e *Entry) bool { return e.Pending })
}

func (m *Model) codes(flag func(*Entry) bool) []string {
	return lo.FilterMap(m.items, func(it Item, _ int) (string, bool) {
		return it.Code, flag(m.entries[it.Code])
	})
}

// Count returns how many entries are selected. While open it counts pending
// flags, otherwise committed ones.
func (m *Model) Count(open bool) int {
	return lo.CountBy(lo.Values(m.entries), func(e *Entry) bool {
		if open {
			return e.Pending
		}
		return e.Committed
	})
}

// Fill classifies the current count against the item total.
func (m *Model) Fill(open bool) Fill {
	return Classify(m.Count(open), len(m.items))
}

// IsFullySelected reports whether every item is selected.
func (m *Model) IsFullySelected(open bool) bool {
	return m.Fill(open) == FillFull
}

// IsEmptySelected reports whether no item is selected. It is never true at the
// same time as IsFullySelected.
func (m *Model) IsEmptySelected(open bool) bool {
	return m.Fill(open) == FillEmpty
}
