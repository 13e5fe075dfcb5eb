package tui

import "github.com/charmbracelet/bubbles/key"

// PageKeys are the bindings handled by the page when no widget captures the
// key.
type PageKeys struct {
	Next     key.Binding
	Prev     key.Binding
	Back     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Copy     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// DropdownKeys are the bindings of a dropdown widget.
type DropdownKeys struct {
	Open    key.Binding
	Trigger key.Binding
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	All     key.Binding
	None    key.Binding
	OK      key.Binding
	Cancel  key.Binding
	Blur    key.Binding
}

// RangeKeys are the bindings of a range widget.
type RangeKeys struct {
	Submit key.Binding
	Reset  key.Binding
	Next   key.Binding
	Prev   key.Binding
}

var pageKeys = PageKeys{
	Next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next filter")),
	Prev:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous filter")),
	Back:     key.NewBinding(key.WithKeys("backspace", "b"), key.WithHelp("b/backspace", "previous page")),
	PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "scroll up")),
	PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "scroll down")),
	Copy:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy location")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

var dropdownKeys = DropdownKeys{
	Open:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter/space", "open")),
	Trigger: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "back to input")),
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
	All:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select all")),
	None:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "select none")),
	OK:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "ok")),
	Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Blur:    key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "leave")),
}

var rangeKeys = RangeKeys{
	Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "filter")),
	Reset:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reset")),
	Next:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
	Prev:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous field")),
}

// helpKeys adapts every binding to help.KeyMap for the help overlay.
type helpKeys struct{}

func (helpKeys) ShortHelp() []key.Binding {
	return []key.Binding{pageKeys.Next, dropdownKeys.Open, pageKeys.Back, pageKeys.Help, pageKeys.Quit}
}

func (helpKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{pageKeys.Next, pageKeys.Prev, pageKeys.Back, pageKeys.PageUp, pageKeys.PageDown, pageKeys.Copy, pageKeys.Help, pageKeys.Quit},
		{dropdownKeys.Open, dropdownKeys.Up, dropdownKeys.Down, dropdownKeys.Toggle, dropdownKeys.All, dropdownKeys.None, dropdownKeys.OK, dropdownKeys.Cancel, dropdownKeys.Trigger},
		{rangeKeys.Submit, rangeKeys.Reset, rangeKeys.Next, rangeKeys.Prev},
	}
}
