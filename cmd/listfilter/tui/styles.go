package tui

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
	"github.com/ruminaider/listfilter/internal/selection"
)

// WidgetWidth is the fixed width of a filter widget in the filter bar.
const WidgetWidth = 28

// Catppuccin Mocha palette.
var flavor = catppuccin.Mocha

var (
	colorBase     = lipgloss.Color(flavor.Base().Hex)
	colorMantle   = lipgloss.Color(flavor.Mantle().Hex)
	colorSurface0 = lipgloss.Color(flavor.Surface0().Hex)
	colorSurface1 = lipgloss.Color(flavor.Surface1().Hex)
	colorText     = lipgloss.Color(flavor.Text().Hex)
	colorSubtext0 = lipgloss.Color(flavor.Subtext0().Hex)
	colorBlue     = lipgloss.Color(flavor.Blue().Hex)
	colorGreen    = lipgloss.Color(flavor.Green().Hex)
	colorRed      = lipgloss.Color(flavor.Red().Hex)
	colorYellow   = lipgloss.Color(flavor.Yellow().Hex)
	colorPeach    = lipgloss.Color(flavor.Peach().Hex)
	colorMauve    = lipgloss.Color(flavor.Mauve().Hex)
	colorOverlay0 = lipgloss.Color(flavor.Overlay0().Hex)
)

// Page header styles.
var (
	// TitleStyle is the dataset title at the top of the page.
	TitleStyle = lipgloss.NewStyle().
			Foreground(colorMauve).
			Bold(true)

	// LocationStyle renders the current path and query next to the title.
	LocationStyle = lipgloss.NewStyle().
			Foreground(colorOverlay0)

	// ErrorStyle renders a rejected query.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)
)

// Filter widget styles.
var (
	// WidgetTitleStyle is the heading above an unfocused widget.
	WidgetTitleStyle = lipgloss.NewStyle().
				Foreground(colorSubtext0)

	// WidgetTitleFocusedStyle is the heading above the focused widget.
	WidgetTitleFocusedStyle = lipgloss.NewStyle().
				Foreground(colorBlue).
				Bold(true)

	// TriggerStyle wraps the closed dropdown trigger.
	TriggerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface1).
			Padding(0, 1).
			Width(WidgetWidth - 2)

	// TriggerFocusedStyle wraps the trigger of the focused widget.
	TriggerFocusedStyle = TriggerStyle.
				BorderForeground(colorBlue)

	// PanelStyle wraps the open dropdown panel.
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBlue).
			Background(colorMantle).
			Padding(0, 1).
			Width(WidgetWidth - 2)

	// CheckedStyle is used for selected items.
	CheckedStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	// UncheckedStyle is used for unselected items.
	UncheckedStyle = lipgloss.NewStyle().
			Foreground(colorOverlay0)

	// CursorStyle highlights the item under the cursor.
	CursorStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true)

	// ButtonStyle is used for the panel buttons.
	ButtonStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorSurface1).
			Padding(0, 1)

	// ButtonPrimaryStyle is used for the OK button.
	ButtonPrimaryStyle = lipgloss.NewStyle().
				Foreground(colorBase).
				Background(colorBlue).
				Padding(0, 1)

	// HintStyle is used for dim key hints inside widgets.
	HintStyle = lipgloss.NewStyle().
			Foreground(colorOverlay0)
)

// fillStyles colors the trigger summary by fill state.
var fillStyles = map[selection.Fill]lipgloss.Style{
	selection.FillFull:    lipgloss.NewStyle().Foreground(colorText),
	selection.FillEmpty:   lipgloss.NewStyle().Foreground(colorPeach).Italic(true),
	selection.FillPartial: lipgloss.NewStyle().Foreground(colorYellow).Bold(true),
}

// FillStyle returns the trigger text style for a fill state.
func FillStyle(f selection.Fill) lipgloss.Style {
	return fillStyles[f]
}

// Table styles.
var (
	// TableHeaderStyle is used for column headers.
	TableHeaderStyle = lipgloss.NewStyle().
				Foreground(colorBlue).
				Bold(true).
				Padding(0, 1)

	// TableCellStyle is used for body cells.
	TableCellStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Padding(0, 1)

	// TableNullStyle is used for null cells.
	TableNullStyle = lipgloss.NewStyle().
			Foreground(colorOverlay0).
			Padding(0, 1)

	// TableBorderStyle colors the table border.
	TableBorderStyle = lipgloss.NewStyle().
				Foreground(colorSurface1)
)

// Status bar styles.
var (
	// StatusBarStyle is the base style for the bottom status bar.
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0).
			Background(colorSurface0).
			Padding(0, 1)

	// StatusBarKeyStyle highlights keyboard shortcuts in the status bar.
	StatusBarKeyStyle = lipgloss.NewStyle().
				Foreground(colorYellow).
				Background(colorSurface0).
				Bold(true)

	// StatusBarNoteStyle is used for transient notes.
	StatusBarNoteStyle = lipgloss.NewStyle().
				Foreground(colorPeach).
				Background(colorSurface0)
)

// Overlay styles.
var (
	// OverlayStyle is the border and background for the help overlay.
	OverlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBlue).
			Background(colorMantle).
			Foreground(colorText).
			Padding(1, 2)

	// OverlayTitleStyle is used for the overlay title.
	OverlayTitleStyle = lipgloss.NewStyle().
				Foreground(colorBlue).
				Bold(true)
)
