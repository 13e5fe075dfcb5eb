package main

import (
	"fmt"

	"github.com/ruminaider/listfilter/internal/config"
	"github.com/ruminaider/listfilter/internal/filters"
	"github.com/ruminaider/listfilter/internal/paths"
)

// loadDataset reads the dataset named by the first argument, or the default
// dataset file when there is none.
func loadDataset(args []string) (config.Dataset, error) {
	path := paths.DatasetFile()
	if len(args) > 0 {
		path = args[0]
	}
	ds, err := config.Load(path)
	if err != nil {
		return config.Dataset{}, fmt.Errorf("loading dataset %s: %w", path, err)
	}
	return ds, nil
}

// findFilter reads raw against ds and returns the filter called name, which
// must be of type T. kind names T in the error message.
func findFilter[T filters.Filter](ds config.Dataset, raw, name, kind string) (T, error) {
	var zero T
	fs, err := filters.Load(ds, raw)
	if err != nil {
		return zero, fmt.Errorf("reading query: %w", err)
	}
	for i, f := range fs {
		if ds.Filters[i].Name() != name {
			continue
		}
		if t, ok := f.(T); ok {
			return t, nil
		}
	}
	return zero, fmt.Errorf("no %s filter named %q", kind, name)
}
