// Package logging builds the application's zerolog logger. The terminal
// belongs to the TUI, so logs only ever go to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger is a zerolog logger plus the file it writes to.
type Logger struct {
	zerolog.Logger
	file *os.File
}

// ParseLevel parses level, falling back to info.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// New returns a logger writing JSON lines to path at level. An empty path
// returns a disabled logger.
func New(path, level string) (*Logger, error) {
	if strings.TrimSpace(path) == "" {
		return &Logger{Logger: zerolog.Nop()}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return &Logger{Logger: build(f, level), file: f}, nil
}

func build(w io.Writer, level string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	return zerolog.New(w).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// Component returns a child logger tagged with component.
func (l *Logger) Component(name string) *zerolog.Logger {
	child := l.With().Str("component", name).Logger()
	return &child
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
