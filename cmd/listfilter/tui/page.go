package tui

import (
	"fmt"
	"log/slog"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ruminaider/listfilter/internal/config"
	"github.com/ruminaider/listfilter/internal/dropdown"
	"github.com/ruminaider/listfilter/internal/filters"
	"github.com/ruminaider/listfilter/internal/query"
	"github.com/samber/lo"
)

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.WriteAll

// Widget is a filter control in the filter bar.
type Widget interface {
	Title() string
	View() string
	Capturing() bool
	Release()
}

// Options configures a Page.
type Options struct {
	// Variant is used by choices filters that do not set their own.
	Variant dropdown.Variant
	// AllowNone lets an empty selection navigate to the null query. When it
	// is false an empty confirm closes the dropdown without navigating.
	AllowNone bool
	Logger    *slog.Logger
}

// Page is the host page: a filter bar over a filtered table. Every
// navigation rebuilds the filters and widgets from the new query.
type Page struct {
	Path  string
	Query string

	dataset config.Dataset
	columns []config.Column
	opts    Options
	logger  *slog.Logger

	rows    []config.Row
	widgets []Widget
	focus   int
	history []string
	err     error

	table   viewport.Model
	status  StatusBar
	help    HelpOverlay
	width   int
	height  int
	initCmd tea.Cmd

	Quitting bool
}

// NewPage creates a page for ds at target (a path, a query, or both).
func NewPage(ds config.Dataset, target string, opts Options) Page {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	m := Page{
		Path:    ds.Path,
		dataset: ds,
		columns: Columns(ds),
		opts:    opts,
		logger:  logger,
		table:   viewport.New(80, 20),
		status:  NewStatusBar(),
		help:    NewHelpOverlay(),
	}
	m.initCmd = m.load(target)
	return m
}

// Init implements tea.Model.
func (m Page) Init() tea.Cmd {
	return m.initCmd
}

// Location returns the current path and query.
func (m Page) Location() string {
	return m.Path + m.Query
}

// Rows returns the rows matching the current query.
func (m Page) Rows() []config.Row { return m.rows }

// Widgets returns the filter widgets in display order.
func (m Page) Widgets() []Widget { return m.widgets }

// Focus returns the index of the focused widget.
func (m Page) Focus() int { return m.focus }

// History returns the previously visited locations, oldest first.
func (m Page) History() []string { return m.history }

// Err returns the error from reading the current query, if any.
func (m Page) Err() error { return m.err }

// Navigate records the current location in the history and loads target.
func (m *Page) Navigate(target string) tea.Cmd {
	m.history = append(m.history, m.Location())
	return m.load(target)
}

// Back loads the previous location. It reports false when the history is
// empty.
func (m *Page) Back() (tea.Cmd, bool) {
	if len(m.history) == 0 {
		return nil, false
	}
	prev := m.history[len(m.history)-1]
	m.history = m.history[:len(m.history)-1]
	return m.load(prev), true
}

// load is the full page reload. The old widgets are released and new ones
// are built from the query.
func (m *Page) load(target string) tea.Cmd {
	for _, w := range m.widgets {
		w.Release()
	}

	path, raw := filters.SplitTarget(target)
	if path != "" {
		m.Path = path
	}
	m.Query = raw

	fs, err := filters.Load(m.dataset, raw)
	m.err = err
	if err != nil {
		m.logger.Warn("query rejected", "query", raw, "err", err)
		fs, _ = filters.Load(m.dataset, query.Marker)
		m.rows = m.dataset.Rows
	} else {
		m.rows = filters.Apply(m.dataset.Rows, fs)
	}
	m.widgets = m.buildWidgets(fs)

	active := lo.CountBy(fs, func(f filters.Filter) bool { return f.Active() })
	m.status.Update(len(m.rows), len(m.dataset.Rows), active)
	m.status.SetNote("")
	if err != nil {
		m.status.SetNote(err.Error())
	}

	m.refreshTable()
	m.table.GotoTop()

	if len(m.widgets) == 0 {
		m.focus = 0
		return nil
	}
	m.focus = min(m.focus, len(m.widgets)-1)
	return m.setFocus(m.focus, true, false)
}

func (m *Page) buildWidgets(fs []filters.Filter) []Widget {
	out := make([]Widget, 0, len(fs))
	for _, f := range fs {
		switch f := f.(type) {
		case *filters.ChoicesFilter:
			variant := m.opts.Variant
			if f.Spec.Variant != "" {
				v, err := dropdown.ParseVariant(f.Spec.Variant)
				if err != nil {
					m.logger.Warn("filter variant ignored", "filter", f.Spec.Name(), "err", err)
				} else {
					variant = v
				}
			}
			logger := m.logger.With("filter", f.Spec.Name())
			out = append(out, NewDropdown(f.Spec.Heading(), f.Choices, f.Selected(), f.Binding(m.Path), dropdown.Options{
				Variant:  variant,
				OnSelect: hostCallback(m.opts.AllowNone, logger),
				Logger:   logger,
			}))
		case *filters.RangeFilter:
			gte, lte := f.Bounds()
			out = append(out, NewRangeFilter(f.Spec.Heading(), f.Range(gte, lte), f.Binding(m.Path)))
		}
	}
	return out
}

// hostCallback approves every confirmed selection except an empty one when
// allowNone is off.
func hostCallback(allowNone bool, logger *slog.Logger) dropdown.SelectFunc {
	return func(codes []string) (bool, error) {
		if len(codes) == 0 && !allowNone {
			logger.Info("empty selection not applied")
			return false, nil
		}
		logger.Debug("selection applied", "codes", codes)
		return true, nil
	}
}

func (m *Page) setFocus(i int, on, fromEnd bool) tea.Cmd {
	var cmd tea.Cmd
	switch w := m.widgets[i].(type) {
	case Dropdown:
		w.SetFocused(on)
		m.widgets[i] = w
	case RangeFilter:
		cmd = w.SetFocused(on, fromEnd)
		m.widgets[i] = w
	}
	return cmd
}

func (m *Page) moveFocus(reverse bool) tea.Cmd {
	n := len(m.widgets)
	if n == 0 {
		return nil
	}
	m.setFocus(m.focus, false, false)
	if reverse {
		m.focus = (m.focus - 1 + n) % n
	} else {
		m.focus = (m.focus + 1) % n
	}
	return m.setFocus(m.focus, true, reverse)
}

func (m *Page) updateWidget(i int, msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch w := m.widgets[i].(type) {
	case Dropdown:
		m.widgets[i], cmd = w.Update(msg)
	case RangeFilter:
		m.widgets[i], cmd = w.Update(msg)
	}
	return cmd
}

func (m Page) focused() Widget {
	if m.focus < len(m.widgets) {
		return m.widgets[m.focus]
	}
	return nil
}

// Update implements tea.Model.
func (m Page) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	m.layout()
	return m, cmd
}

func (m *Page) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.status.SetWidth(msg.Width)
		m.refreshTable()
		return nil

	case NavigateMsg:
		m.logger.Info("navigate", "from", m.Location(), "to", msg.Target)
		return m.Navigate(msg.Target)

	case FocusNextMsg:
		return m.moveFocus(msg.Reverse)

	case DeclinedMsg:
		switch {
		case msg.Err != nil:
			m.status.SetNote(fmt.Sprintf("%s: %v", msg.Title, msg.Err))
		case len(msg.Codes) == 0:
			m.status.SetNote(msg.Title + ": selecting none is disabled")
		}
		return nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	// Blink and refocus messages go to every widget; each one checks the id.
	var cmds []tea.Cmd
	for i := range m.widgets {
		cmds = append(cmds, m.updateWidget(i, msg))
	}
	return tea.Batch(cmds...)
}

func (m *Page) updateKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		m.Quitting = true
		return tea.Quit
	}

	if m.help.Active() {
		if key.Matches(msg, pageKeys.Help) || msg.String() == "esc" {
			m.help.Hide()
		}
		return nil
	}

	if key.Matches(msg, pageKeys.PageUp, pageKeys.PageDown) {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return cmd
	}

	if w := m.focused(); w != nil && w.Capturing() {
		return m.updateWidget(m.focus, msg)
	}

	switch {
	case key.Matches(msg, pageKeys.Help):
		m.help.Toggle()
	case key.Matches(msg, pageKeys.Quit):
		m.Quitting = true
		return tea.Quit
	case key.Matches(msg, pageKeys.Next):
		return m.moveFocus(false)
	case key.Matches(msg, pageKeys.Prev):
		return m.moveFocus(true)
	case key.Matches(msg, pageKeys.Copy):
		if err := copyToClipboard(m.Location()); err != nil {
			m.logger.Warn("copy to clipboard failed", "err", err)
			m.status.SetNote("copy failed: " + err.Error())
		} else {
			m.status.SetNote("copied " + m.Location())
		}
	case key.Matches(msg, pageKeys.Back):
		cmd, ok := m.Back()
		if !ok {
			m.status.SetNote("no previous page")
		}
		return cmd
	default:
		if m.focused() != nil {
			return m.updateWidget(m.focus, msg)
		}
	}
	return nil
}

func (m *Page) refreshTable() {
	m.table.SetContent(RenderTable(m.columns, m.rows, m.width))
}

// layout gives the table whatever height the header, filter bar and status
// bar leave over.
func (m *Page) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	used := lipgloss.Height(m.viewHeader()) + lipgloss.Height(m.viewFilterBar()) + 1
	m.table.Width = m.width
	m.table.Height = max(m.height-used, 1)
}

func (m Page) viewHeader() string {
	title := m.dataset.Title
	if title == "" {
		title = "listfilter"
	}
	header := TitleStyle.Render(title) + "  " + LocationStyle.Render(m.Location())
	if m.err != nil {
		header += "\n" + ErrorStyle.Render("Ignoring query: "+m.err.Error())
	}
	return header
}

func (m Page) viewFilterBar() string {
	if len(m.widgets) == 0 {
		return ""
	}
	views := make([]string, 0, len(m.widgets)*2)
	for i, w := range m.widgets {
		if i > 0 {
			views = append(views, "  ")
		}
		views = append(views, w.View())
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, views...)
}

// View implements tea.Model.
func (m Page) View() string {
	if m.Quitting {
		return ""
	}
	parts := []string{m.viewHeader()}
	if bar := m.viewFilterBar(); bar != "" {
		parts = append(parts, bar)
	}
	parts = append(parts, m.table.View(), m.status.View())
	frame := lipgloss.JoinVertical(lipgloss.Left, parts...)

	if m.help.Active() {
		return Composite(frame, m.help.View(), m.width, m.height)
	}
	return frame
}
