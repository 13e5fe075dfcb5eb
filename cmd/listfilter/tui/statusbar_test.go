package tui

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestStatusBar_View(t *testing.T) {
	s := NewStatusBar()
	s.SetWidth(100)
	s.Update(2, 4, 1)

	view := ansi.Strip(s.View())
	assert.Contains(t, view, "2/4 rows")
	assert.Contains(t, view, "1 filtered")
	assert.Contains(t, view, "quit")
}

func TestStatusBar_NoFilterCount(t *testing.T) {
	s := NewStatusBar()
	s.SetWidth(100)
	s.Update(4, 4, 0)
	assert.NotContains(t, ansi.Strip(s.View()), "filtered")
}

func TestStatusBar_Note(t *testing.T) {
	s := NewStatusBar()
	s.SetWidth(100)
	s.SetNote("bad query")
	assert.Contains(t, ansi.Strip(s.View()), "bad query")

	s.SetNote("")
	assert.Empty(t, s.Note())
}
