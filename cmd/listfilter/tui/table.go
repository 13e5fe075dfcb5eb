package tui

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/ruminaider/listfilter/internal/config"
	"github.com/samber/lo"
)

// nullCell is shown for missing and nil values.
const nullCell = "—"

// Columns returns the dataset columns. A dataset without a column list shows
// every key found in its rows, sorted by name.
func Columns(ds config.Dataset) []config.Column {
	if len(ds.Columns) > 0 {
		return ds.Columns
	}
	var names []string
	for _, r := range ds.Rows {
		names = append(names, lo.Keys(r)...)
	}
	names = lo.Uniq(names)
	sort.Strings(names)
	return lo.Map(names, func(n string, _ int) config.Column { return config.Column{Name: n} })
}

// RenderTable renders rows as a bordered table. A width of zero lets the
// table size itself to its content.
func RenderTable(cols []config.Column, rows []config.Row, width int) string {
	headers := lo.Map(cols, func(c config.Column, _ int) string { return c.Header() })

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(TableBorderStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return TableHeaderStyle
			case row < len(rows) && col < len(cols) && rows[row][cols[col].Name] == nil:
				return TableNullStyle
			default:
				return TableCellStyle
			}
		})
	for _, r := range rows {
		t.Row(lo.Map(cols, func(c config.Column, _ int) string { return cell(r[c.Name]) })...)
	}
	if width > 0 {
		t.Width(width)
	}

	out := t.String()
	if len(rows) == 0 {
		out += "\n" + HintStyle.Render("No rows match the current filters.")
	}
	return out
}

func cell(v any) string {
	if v == nil {
		return nullCell
	}
	return fmt.Sprint(v)
}
