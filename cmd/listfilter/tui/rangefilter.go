package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ruminaider/listfilter/internal/query"
)

// RangeFilter is the two-bound numeric filter widget.
type RangeFilter struct {
	title   string
	lookups query.Range
	binding query.Binding
	inputs  [2]textinput.Model // 0 = gte, 1 = lte
	active  int
	focused bool
	err     string
	keys    RangeKeys
}

// NewRangeFilter creates the widget. lookups carries the parameter names and
// the current bounds, which prefill the inputs.
func NewRangeFilter(title string, lookups query.Range, binding query.Binding) RangeFilter {
	r := RangeFilter{
		title:   title,
		lookups: lookups,
		binding: binding,
		keys:    rangeKeys,
	}
	for i, v := range []string{lookups.Gte, lookups.Lte} {
		ti := textinput.New()
		ti.CharLimit = 24
		ti.Width = WidgetWidth/2 - 4
		ti.Prompt = ""
		ti.Placeholder = "any"
		ti.Cursor.SetMode(cursor.CursorStatic)
		ti.SetValue(v)
		r.inputs[i] = ti
	}
	return r
}

// Title returns the widget heading.
func (r RangeFilter) Title() string { return r.title }

// Capturing reports whether the widget wants every key. A focused range
// filter always does, since its inputs take text.
func (r RangeFilter) Capturing() bool { return r.focused }

// Focused reports whether the widget has page focus.
func (r RangeFilter) Focused() bool { return r.focused }

// Values returns the raw contents of the gte and lte inputs.
func (r RangeFilter) Values() (gte, lte string) {
	return strings.TrimSpace(r.inputs[0].Value()), strings.TrimSpace(r.inputs[1].Value())
}

// Err returns the inline validation error, if any.
func (r RangeFilter) Err() string { return r.err }

// Release is a no-op. The range widget schedules no deferred work.
func (r RangeFilter) Release() {}

// SetFocused moves page focus onto or off the widget. Focus enters on the
// gte input, or on the lte input when coming back with shift+tab.
func (r *RangeFilter) SetFocused(f bool, fromEnd bool) tea.Cmd {
	r.focused = f
	r.inputs[0].Blur()
	r.inputs[1].Blur()
	if !f {
		return nil
	}
	r.active = 0
	if fromEnd {
		r.active = 1
	}
	return r.inputs[r.active].Focus()
}

// Update handles submit, reset and field switching, and passes other keys
// to the active input.
func (r RangeFilter) Update(msg tea.Msg) (RangeFilter, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if !r.focused {
			return r, nil
		}
		switch {
		case key.Matches(msg, r.keys.Submit):
			return r.submit()
		case key.Matches(msg, r.keys.Reset):
			r.err = ""
			return r, navigate(r.binding.ResetTarget())
		case key.Matches(msg, r.keys.Next):
			if r.active == 0 {
				return r, r.switchTo(1)
			}
			return r, focusNext(false)
		case key.Matches(msg, r.keys.Prev):
			if r.active == 1 {
				return r, r.switchTo(0)
			}
			return r, focusNext(true)
		}
		r.err = ""
	}

	var cmds []tea.Cmd
	for i := range r.inputs {
		var cmd tea.Cmd
		r.inputs[i], cmd = r.inputs[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return r, tea.Batch(cmds...)
}

func (r *RangeFilter) switchTo(i int) tea.Cmd {
	r.inputs[r.active].Blur()
	r.active = i
	return r.inputs[i].Focus()
}

func (r RangeFilter) submit() (RangeFilter, tea.Cmd) {
	gte, lte := r.Values()
	for _, v := range []string{gte, lte} {
		if v == "" {
			continue
		}
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			r.err = "not a number: " + v
			return r, nil
		}
	}
	r.err = ""
	rng := r.lookups
	rng.Gte, rng.Lte = gte, lte
	return r, navigate(r.binding.RangeTarget(rng))
}

// View renders the heading and both inputs side by side.
func (r RangeFilter) View() string {
	titleStyle := WidgetTitleStyle
	box := TriggerStyle.Width(WidgetWidth/2 - 2)
	if r.focused {
		titleStyle = WidgetTitleFocusedStyle
	}

	var fields []string
	for i, label := range []string{"≥", "≤"} {
		b := box
		if r.focused && r.active == i {
			b = TriggerFocusedStyle.Width(WidgetWidth/2 - 2)
		}
		fields = append(fields, b.Render(HintStyle.Render(label)+" "+r.inputs[i].View()))
	}

	parts := []string{titleStyle.Render(r.title), lipgloss.JoinHorizontal(lipgloss.Top, fields...)}
	if r.err != "" {
		parts = append(parts, ErrorStyle.Render(r.err))
	} else if r.focused {
		parts = append(parts, HintStyle.Render("enter: filter  ctrl+r: reset"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
