package paths_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ruminaider/listfilter/internal/paths"
	"github.com/stretchr/testify/assert"
)

func TestDataDir(t *testing.T) {
	home, _ := os.UserHomeDir()
	assert.True(t, strings.HasPrefix(paths.DataDir(), home))
	assert.True(t, strings.HasSuffix(paths.DataDir(), ".listfilter"))
}

func TestDatasetFile(t *testing.T) {
	assert.Equal(t, paths.DataDir(), filepath.Dir(paths.DatasetFile()))
	assert.True(t, strings.HasSuffix(paths.DatasetFile(), "dataset.yaml"))
}

func TestLogFile(t *testing.T) {
	assert.Equal(t, paths.DataDir(), filepath.Dir(paths.LogFile()))
	assert.True(t, strings.HasSuffix(paths.LogFile(), "listfilter.log"))
}
