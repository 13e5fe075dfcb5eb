package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/ruminaider/listfilter/internal/selection"
	"go.yaml.in/yaml/v3"
)

// DefaultPath is the page path used when a dataset does not set one.
const DefaultPath = "/"

// ErrInvalidDataset is wrapped by every validation failure.
var ErrInvalidDataset = errors.New("invalid dataset")

// Dataset represents a table definition file: its columns, the filters offered
// above it, and the rows.
type Dataset struct {
	Title   string       `yaml:"title" toml:"title"`
	Path    string       `yaml:"path,omitempty" toml:"path,omitempty"`
	Columns []Column     `yaml:"columns" toml:"columns"`
	Filters []FilterSpec `yaml:"filters,omitempty" toml:"filters,omitempty"`
	Rows    []Row        `yaml:"rows" toml:"rows"`
}

// Column is one table column.
type Column struct {
	Name  string `yaml:"name" toml:"name"`
	Label string `yaml:"label,omitempty" toml:"label,omitempty"`
}

// Header returns the column label, falling back to its name.
func (c Column) Header() string {
	if c.Label != "" {
		return c.Label
	}
	return c.Name
}

// FilterKind names the filter widget type.
type FilterKind string

const (
	KindChoices FilterKind = "choices" // multi-select over discrete values
	KindRange   FilterKind = "range"   // numeric lower/upper bound
)

// FilterSpec describes one filter above the table.
type FilterSpec struct {
	Kind  FilterKind `yaml:"kind" toml:"kind"`
	Title string     `yaml:"title,omitempty" toml:"title,omitempty"`

	// Choices filters.
	Field   string           `yaml:"field,omitempty" toml:"field,omitempty"`
	Choices []selection.Item `yaml:"choices,omitempty" toml:"choices,omitempty"`
	Variant string           `yaml:"variant,omitempty" toml:"variant,omitempty"`

	// Range filters: the row must have Gte >= lower bound and Lte <= upper
	// bound. Both may name the same field.
	Gte string `yaml:"gte,omitempty" toml:"gte,omitempty"`
	Lte string `yaml:"lte,omitempty" toml:"lte,omitempty"`
}

// Name identifies the filter on the command line.
func (f FilterSpec) Name() string {
	if f.Kind == KindRange {
		return f.Gte
	}
	return f.Field
}

// Heading returns the title shown above the widget.
func (f FilterSpec) Heading() string {
	if f.Title != "" {
		return f.Title
	}
	return f.Name()
}

// Row is one table row keyed by column name. A missing key or nil value is
// treated as null.
type Row map[string]any

// Parse parses YAML dataset bytes.
func Parse(data []byte) (Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return Dataset{}, fmt.Errorf("parsing dataset: %w", err)
	}
	return ds.normalize()
}

// ParseTOML parses TOML dataset bytes.
func ParseTOML(data []byte) (Dataset, error) {
	var ds Dataset
	if err := toml.Unmarshal(data, &ds); err != nil {
		return Dataset{}, fmt.Errorf("parsing dataset: %w", err)
	}
	return ds.normalize()
}

// Marshal serializes a Dataset to YAML bytes.
func Marshal(ds Dataset) ([]byte, error) {
	return yaml.Marshal(ds)
}

// Load reads a dataset file. Files ending in .toml are parsed as TOML,
// everything else as YAML.
func Load(path string) (Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("reading dataset: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return ParseTOML(data)
	}
	return Parse(data)
}

// Filter returns the filter with the given name.
func (d Dataset) Filter(name string) (FilterSpec, bool) {
	for _, f := range d.Filters {
		if f.Name() == name {
			return f, true
		}
	}
	return FilterSpec{}, false
}

func (d Dataset) normalize() (Dataset, error) {
	if d.Path == "" {
		d.Path = DefaultPath
	}
	if err := d.Validate(); err != nil {
		return Dataset{}, err
	}
	return d, nil
}

// Validate checks the filter definitions. Item codes are not validated.
func (d Dataset) Validate() error {
	if strings.Contains(d.Path, "?") {
		return fmt.Errorf("%w: path %q must not contain a query", ErrInvalidDataset, d.Path)
	}
	for i, f := range d.Filters {
		switch f.Kind {
		case KindChoices:
			if f.Field == "" {
				return fmt.Errorf("%w: filter %d: choices filter needs a field", ErrInvalidDataset, i)
			}
		case KindRange:
			if f.Gte == "" || f.Lte == "" {
				return fmt.Errorf("%w: filter %d: range filter needs gte and lte fields", ErrInvalidDataset, i)
			}
		default:
			return fmt.Errorf("%w: filter %d: unknown kind %q", ErrInvalidDataset, i, f.Kind)
		}
	}
	return nil
}
