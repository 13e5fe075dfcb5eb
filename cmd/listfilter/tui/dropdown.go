package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/ruminaider/listfilter/internal/dropdown"
	"github.com/ruminaider/listfilter/internal/query"
	"github.com/ruminaider/listfilter/internal/selection"
	"github.com/samber/lo"
)

// Dropdown is the multi-select filter widget. The interaction rules live in
// dropdown.Controller; this type maps keys to gestures and renders the result.
type Dropdown struct {
	id      int
	title   string
	ctrl    *dropdown.Controller
	binding query.Binding
	trigger textinput.Model
	cursor  int
	focused bool
	keys    DropdownKeys
}

// NewDropdown creates a closed dropdown over items with the initial committed
// codes. binding is used to build the navigation target on confirm.
func NewDropdown(title string, items []selection.Item, initial []string, binding query.Binding, opts dropdown.Options) Dropdown {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 256
	ti.Width = WidgetWidth - 6
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Blur()

	d := Dropdown{
		id:      nextID(),
		title:   title,
		ctrl:    dropdown.New(items, initial, opts),
		binding: binding,
		trigger: ti,
		keys:    dropdownKeys,
	}
	d.syncTrigger()
	return d
}

// Title returns the widget heading.
func (d Dropdown) Title() string { return d.title }

// Controller exposes the interaction state for the page and tests.
func (d Dropdown) Controller() *dropdown.Controller { return d.ctrl }

// Capturing reports whether the widget wants every key. An open dropdown
// keeps the keyboard until it closes.
func (d Dropdown) Capturing() bool { return d.ctrl.State() == dropdown.Open }

// Focused reports whether the widget has page focus.
func (d Dropdown) Focused() bool { return d.focused }

// TriggerFocused reports whether the trigger input holds the cursor.
func (d Dropdown) TriggerFocused() bool { return d.trigger.Focused() }

// SetFocused moves page focus onto or off the widget.
func (d *Dropdown) SetFocused(f bool) { d.focused = f }

// Release cancels deferred work before the widget is discarded.
func (d Dropdown) Release() { d.ctrl.Release() }

// Summary is the trigger text: "All", "None", or the selected labels.
func (d Dropdown) Summary() string {
	switch d.ctrl.Fill() {
	case selection.FillFull:
		return "All"
	case selection.FillEmpty:
		return "None"
	}
	labels := lo.FilterMap(d.ctrl.Items(), func(it selection.Item, _ int) (string, bool) {
		return it.Label, d.ctrl.Selected(it.Code)
	})
	return strings.Join(labels, ", ")
}

func (d *Dropdown) syncTrigger() {
	d.trigger.SetValue(ansi.Truncate(d.Summary(), d.trigger.Width, "…"))
}

// Update maps keys to gestures. Keys are only handled while the widget has
// page focus; refocus and cursor blink messages are always handled.
func (d Dropdown) Update(msg tea.Msg) (Dropdown, tea.Cmd) {
	switch msg := msg.(type) {
	case refocusMsg:
		if msg.id != d.id {
			return d, nil
		}
		if d.ctrl.Refocus(msg.token) {
			return d, d.trigger.Focus()
		}
		return d, nil
	case tea.KeyMsg:
		if !d.focused {
			return d, nil
		}
		if d.ctrl.State() == dropdown.Closed {
			if key.Matches(msg, d.keys.Open) {
				return d.dispatch(dropdown.GestureOpen, "")
			}
			return d, nil
		}
		return d.updateOpen(msg)
	}

	// Only non-key messages reach the trigger input.
	var cmd tea.Cmd
	d.trigger, cmd = d.trigger.Update(msg)
	return d, cmd
}

func (d Dropdown) updateOpen(msg tea.KeyMsg) (Dropdown, tea.Cmd) {
	items := d.ctrl.Items()
	clickToClose := d.ctrl.Variant() == dropdown.VariantClickToClose

	switch {
	case key.Matches(msg, d.keys.Up):
		if d.cursor > 0 {
			d.cursor--
		}
	case key.Matches(msg, d.keys.Down):
		if d.cursor < len(items)-1 {
			d.cursor++
		}
	case key.Matches(msg, d.keys.Toggle):
		if d.cursor < len(items) {
			return d.dispatch(dropdown.GestureItem, items[d.cursor].Code)
		}
	case key.Matches(msg, d.keys.All):
		return d.dispatch(dropdown.GestureSelectAll, "")
	case key.Matches(msg, d.keys.None):
		return d.dispatch(dropdown.GestureSelectNone, "")
	case key.Matches(msg, d.keys.OK):
		if clickToClose {
			return d.dispatch(dropdown.GestureDismiss, "")
		}
		return d.dispatch(dropdown.GestureConfirm, "")
	case key.Matches(msg, d.keys.Cancel):
		if clickToClose {
			return d.dispatch(dropdown.GestureDismiss, "")
		}
		return d.dispatch(dropdown.GestureCancel, "")
	case key.Matches(msg, d.keys.Trigger):
		// Same as activating the trigger of an open widget.
		return d.dispatch(dropdown.GestureOpen, "")
	case key.Matches(msg, d.keys.Blur):
		var cmd tea.Cmd
		d, cmd = d.dispatch(dropdown.GestureBlur, "")
		if d.ctrl.State() == dropdown.Closed {
			return d, tea.Batch(cmd, focusNext(msg.String() == "shift+tab"))
		}
		return d, cmd
	}
	return d, nil
}

// dispatch runs one gesture through the controller and turns the outcome
// into commands.
func (d Dropdown) dispatch(g dropdown.Gesture, code string) (Dropdown, tea.Cmd) {
	out := d.ctrl.Dispatch(dropdown.Event{Gesture: g, Code: code})

	var cmds []tea.Cmd
	if out.Focus {
		cmds = append(cmds, d.trigger.Focus())
	}
	if out.Refocus != 0 {
		d.trigger.Blur()
		id, token := d.id, out.Refocus
		cmds = append(cmds, func() tea.Msg { return refocusMsg{id: id, token: token} })
	}
	if out.Closed() {
		d.trigger.Blur()
		d.cursor = 0
		switch {
		case out.Navigate:
			cmds = append(cmds, navigate(d.binding.Target(out.Codes, d.ctrl.Total())))
		case out.Committed:
			title, codes, err := d.title, out.Codes, out.Err
			cmds = append(cmds, func() tea.Msg { return DeclinedMsg{Title: title, Codes: codes, Err: err} })
		}
	}
	d.syncTrigger()
	return d, tea.Batch(cmds...)
}

// View renders the heading, the trigger and, while open, the panel.
func (d Dropdown) View() string {
	titleStyle := WidgetTitleStyle
	box := TriggerStyle
	if d.focused {
		titleStyle = WidgetTitleFocusedStyle
		box = TriggerFocusedStyle
	}
	head := titleStyle.Render(d.title) + " " +
		HintStyle.Render(fmt.Sprintf("%d/%d", d.ctrl.Count(), d.ctrl.Total()))

	arrow := "▾"
	if d.ctrl.State() == dropdown.Open {
		arrow = "▴"
	}
	var text string
	if d.ctrl.Variant() == dropdown.VariantInput {
		text = d.trigger.View()
	} else {
		text = FillStyle(d.ctrl.Fill()).Render(d.trigger.Value())
	}
	gap := WidgetWidth - 4 - ansi.StringWidth(text) - 1
	if gap < 1 {
		gap = 1
	}
	trigger := box.Render(text + strings.Repeat(" ", gap) + arrow)

	if d.ctrl.State() == dropdown.Closed {
		return lipgloss.JoinVertical(lipgloss.Left, head, trigger)
	}
	return lipgloss.JoinVertical(lipgloss.Left, head, trigger, PanelStyle.Render(d.viewPanel()))
}

func (d Dropdown) viewPanel() string {
	var b strings.Builder
	b.WriteString(ButtonStyle.Render("a All") + " " + ButtonStyle.Render("n None"))
	b.WriteString("\n")

	items := d.ctrl.Items()
	if len(items) == 0 {
		b.WriteString(HintStyle.Render("(no choices)"))
		b.WriteString("\n")
	}
	for i, it := range items {
		icon := UncheckedStyle.Render("✘")
		if d.ctrl.Selected(it.Code) {
			icon = CheckedStyle.Render("✔")
		}
		label := it.Label
		if i == d.cursor {
			b.WriteString(CursorStyle.Render("> ") + icon + " " + CursorStyle.Render(label))
		} else {
			b.WriteString("  " + icon + " " + label)
		}
		b.WriteString("\n")
	}

	if d.ctrl.Variant() == dropdown.VariantClickToClose {
		b.WriteString(HintStyle.Render("enter/esc: close"))
	} else {
		b.WriteString(ButtonStyle.Render("esc Cancel") + " " + ButtonPrimaryStyle.Render("enter OK"))
	}
	return b.String()
}
