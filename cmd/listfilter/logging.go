package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ruminaider/listfilter/internal/paths"
)

// openLog returns a logger writing to the log file. The TUI owns the
// terminal, so nothing is logged to stdout or stderr.
func openLog() (*slog.Logger, func(), error) {
	path := logFile
	if path == "" {
		path = paths.LogFile()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	level := slog.LevelInfo
	if logDebug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, func() { f.Close() }, nil
}
