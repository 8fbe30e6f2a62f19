// Package logging provides centralized logger creation for the extswap application.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"
)

// Format selects the slog handler used for log output.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	// FormatAuto uses text on an interactive terminal and JSON otherwise.
	FormatAuto Format = "auto"
)

// Config holds logger configuration.
type Config struct {
	Level  slog.Level
	Format Format
	Output io.Writer
}

// DefaultConfig returns a default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  slog.LevelInfo,
		Format: FormatAuto,
		Output: os.Stderr,
	}
}

// NewLogger creates a structured logger from the given configuration.
func NewLogger(cfg Config) *slog.Logger {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level: cfg.Level,
	}

	var handler slog.Handler
	if resolveFormat(cfg.Format, output) == FormatJSON {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}

	return slog.New(handler)
}

// NewTestLogger creates a silent logger for tests.
func NewTestLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelError + 1, // Higher than any real level = silent
	}
	return slog.New(slog.NewTextHandler(io.Discard, opts))
}

// ParseLevel converts a level name (debug, info, warn, error) to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

// ParseFormat converts a format name to a Format.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return FormatAuto, fmt.Errorf("unknown log format %q", name)
	}
}

// WithRoot adds root-directory fields to the logger.
func WithRoot(logger *slog.Logger, root string) *slog.Logger {
	return logger.With("root", root)
}

// WithFile adds file-related fields to the logger.
func WithFile(logger *slog.Logger, path string) *slog.Logger {
	return logger.With("path", path)
}

func resolveFormat(format Format, output io.Writer) Format {
	if format != FormatAuto && format != "" {
		return format
	}
	if f, ok := output.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return FormatText
	}
	return FormatJSON
}
