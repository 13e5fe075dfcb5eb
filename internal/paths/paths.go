package paths

import (
	"os"
	"path/filepath"
)

func home() string {
	h, _ := os.UserHomeDir()
	return h
}

// DataDir returns ~/.listfilter.
func DataDir() string {
	return filepath.Join(home(), ".listfilter")
}

// DatasetFile returns ~/.listfilter/dataset.yaml, used when no dataset
// argument is given.
func DatasetFile() string {
	return filepath.Join(DataDir(), "dataset.yaml")
}

// LogFile returns ~/.listfilter/listfilter.log.
func LogFile() string {
	return filepath.Join(DataDir(), "listfilter.log")
}
