// Package logging builds the worker's single structured logger.
//
// Verbosity is a repeatable CLI counter (-v, -vv, ...) rather than a named
// level, matching the argparse `action='count'` flag the worker has always
// taken: 0 is info, 1 is debug, 2 or more is debug with source locations.
package logging

import (
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
)

// FromVerbosity builds a console logger at the level implied by count
// (the number of times -v was passed).
func FromVerbosity(count int) *slog.Logger {
	level := slog.LevelInfo
	addSource := false

	switch {
	case count >= 2:
		level = slog.LevelDebug
		addSource = true
	case count == 1:
		level = slog.LevelDebug
	}

	handler := tint.NewHandler(os.Stdout, &tint.Options{
		Level:     level,
		AddSource: addSource,
		NoColor:   !isTerminal(),
	})

	return slog.New(handler)
}

// isTerminal reports whether stdout looks like an interactive terminal.
// tint colors unconditionally otherwise, which is noisy when output is
// redirected to a file or piped into another process.
func isTerminal() bool {
	info, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
