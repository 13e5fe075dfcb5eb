package tui

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/ruminaider/listfilter/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestColumns_Configured(t *testing.T) {
	ds := testDataset()
	assert.Equal(t, ds.Columns, Columns(ds))
}

func TestColumns_DerivedFromRows(t *testing.T) {
	ds := config.Dataset{Rows: []config.Row{
		{"name": "Ann", "age": 3},
		{"name": "Bob", "city": "Oslo"},
	}}
	cols := Columns(ds)
	var names []string
	for _, c := range cols {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"age", "city", "name"}, names)
}

func TestRenderTable(t *testing.T) {
	ds := testDataset()
	out := ansi.Strip(RenderTable(ds.Columns, ds.Rows, 0))

	assert.Contains(t, out, "Name")
	assert.Contains(t, out, "status")
	assert.Contains(t, out, "Cid")
	assert.Contains(t, out, nullCell)
}

func TestRenderTable_NoRows(t *testing.T) {
	ds := testDataset()
	out := ansi.Strip(RenderTable(ds.Columns, nil, 0))
	assert.Contains(t, out, "No rows match")
}
