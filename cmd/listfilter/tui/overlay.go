package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/x/ansi"
)

// HelpOverlay is the modal key reference toggled with "?".
type HelpOverlay struct {
	help   help.Model
	active bool
}

// NewHelpOverlay creates a hidden overlay.
func NewHelpOverlay() HelpOverlay {
	h := help.New()
	h.ShowAll = true
	h.Styles.FullKey = StatusBarKeyStyle.Background(colorMantle)
	h.Styles.FullDesc = HintStyle.Background(colorMantle)
	return HelpOverlay{help: h}
}

// Active returns whether the overlay is shown.
func (o HelpOverlay) Active() bool { return o.active }

// Toggle shows or hides the overlay.
func (o *HelpOverlay) Toggle() { o.active = !o.active }

// Hide hides the overlay.
func (o *HelpOverlay) Hide() { o.active = false }

// View renders the overlay box. Compositing it over the page is the
// caller's job, using Composite.
func (o HelpOverlay) View() string {
	if !o.active {
		return ""
	}
	var b strings.Builder
	b.WriteString(OverlayTitleStyle.Render("Keys"))
	b.WriteString("\n\n")
	b.WriteString(o.help.FullHelpView(helpKeys{}.FullHelp()))
	b.WriteString("\n\n")
	b.WriteString(HintStyle.Render("?/esc: close"))
	return OverlayStyle.Render(b.String())
}

// Composite places the overlay box centered on top of the background string.
// The background is expected to be a fully rendered terminal frame.
func Composite(background string, overlay string, totalWidth, totalHeight int) string {
	if overlay == "" {
		return background
	}

	bgLines := strings.Split(background, "\n")
	for len(bgLines) < totalHeight {
		bgLines = append(bgLines, "")
	}

	overlayLines := strings.Split(overlay, "\n")
	overlayWidth := 0
	for _, line := range overlayLines {
		overlayWidth = max(overlayWidth, ansi.StringWidth(line))
	}

	startRow := max((totalHeight-len(overlayLines))/2, 0)
	startCol := max((totalWidth-overlayWidth)/2, 0)

	for i, overlayLine := range overlayLines {
		row := startRow + i
		if row >= len(bgLines) {
			break
		}
		bgLine := bgLines[row]
		bgWidth := ansi.StringWidth(bgLine)

		// Cut the background by display cells so styled lines stay intact.
		left := ansi.Truncate(bgLine, startCol, "")
		if w := ansi.StringWidth(left); w < startCol {
			left += strings.Repeat(" ", startCol-w)
		}
		right := ""
		if end := startCol + ansi.StringWidth(overlayLine); end < bgWidth {
			right = ansi.TruncateLeft(bgLine, end, "")
		}
		bgLines[row] = left + overlayLine + right
	}

	if totalHeight > 0 && totalHeight < len(bgLines) {
		bgLines = bgLines[:totalHeight]
	}
	return strings.Join(bgLines, "\n")
}
