package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/x/ansi"
)

// StatusBar renders the bottom row with row counts, a transient note and the
// short key help.
type StatusBar struct {
	shown  int
	total  int
	active int
	note   string
	width  int
	help   help.Model
}

// NewStatusBar creates an empty status bar.
func NewStatusBar() StatusBar {
	h := help.New()
	h.ShortSeparator = " · "
	h.Styles.ShortKey = StatusBarKeyStyle
	h.Styles.ShortDesc = StatusBarStyle.Padding(0)
	h.Styles.ShortSeparator = StatusBarStyle.Padding(0)
	return StatusBar{help: h}
}

// SetWidth sets the available width for rendering.
func (s *StatusBar) SetWidth(w int) {
	s.width = w
}

// Update refreshes the row counts and the number of active filters.
func (s *StatusBar) Update(shown, total, active int) {
	s.shown = shown
	s.total = total
	s.active = active
}

// SetNote replaces the transient note. An empty note clears it.
func (s *StatusBar) SetNote(note string) {
	s.note = note
}

// Note returns the transient note.
func (s StatusBar) Note() string { return s.note }

// View renders the status bar.
func (s StatusBar) View() string {
	left := fmt.Sprintf("%d/%d rows", s.shown, s.total)
	if s.active > 0 {
		left += fmt.Sprintf(" · %d filtered", s.active)
	}
	if s.note != "" {
		left += " · " + StatusBarNoteStyle.Render(s.note)
	}

	right := s.help.ShortHelpView(helpKeys{}.ShortHelp())

	leftWidth := ansi.StringWidth(left)
	rightWidth := ansi.StringWidth(right)
	gap := s.width - 2 - leftWidth - rightWidth
	if gap < 1 {
		gap = 1
	}
	return StatusBarStyle.Width(s.width).Render(left + strings.Repeat(" ", gap) + right)
}
