// Package logger builds the process-wide slog logger.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// New returns a JSON logger on stdout. When file is set, records are also
// appended to it. The returned close func releases the file.
func New(level, file string) (*slog.Logger, func() error, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}
	if file == "" {
		return NewWithWriters(lvl, os.Stdout), func() error { return nil }, nil
	}

	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return NewWithWriters(lvl, os.Stdout, f), f.Close, nil
}

// NewWithWriters fans JSON records out to every writer.
func NewWithWriters(level slog.Level, writers ...io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if len(writers) == 1 {
		return slog.New(slog.NewJSONHandler(writers[0], opts))
	}
	handlers := make([]slog.Handler, 0, len(writers))
	for _, w := range writers {
		handlers = append(handlers, slog.NewJSONHandler(w, opts))
	}
	return slog.New(slogmulti.Fanout(handlers...))
}

// ParseLevel accepts debug, info, warn and error. Empty means info.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}
