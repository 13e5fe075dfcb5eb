package tui

import (
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
)

// --- Inter-component messages ---

// NavigateMsg asks the page to load a new location (path plus query).
type NavigateMsg struct{ Target string }

// FocusNextMsg asks the page to move focus to the next widget, or the
// previous one when Reverse is set.
type FocusNextMsg struct{ Reverse bool }

// DeclinedMsg is sent when a dropdown closed after a confirm but the host
// did not navigate. Err is set when the callback failed.
type DeclinedMsg struct {
	Title string
	Codes []string
	Err   error
}

// refocusMsg is the deferred refocus of an input-variant dropdown. It is
// delivered on a later turn of the event loop.
type refocusMsg struct {
	id    int
	token uint64
}

var lastID atomic.Int64

// nextID hands out widget ids so deferred messages reach the right widget.
func nextID() int {
	return int(lastID.Add(1))
}

func navigate(target string) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Target: target} }
}

func focusNext(reverse bool) tea.Cmd {
	return func() tea.Msg { return FocusNextMsg{Reverse: reverse} }
}
