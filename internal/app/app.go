package app

import (
	"context"
	"io"
	"log/slog"
	"os"

	"extswap/internal/domain"
	"extswap/internal/logging"
)

// App contains all application dependencies.
type App struct {
	// Core configuration dependencies (always needed)
	ConfigRepo     domain.ConfigRepository
	ConfigProvider domain.ConfigProvider

	// File operations
	FileSystem domain.FileSystemAdapter

	// Stdout carries the per-file notices and nothing else.
	Stdout io.Writer

	// Logging
	Logger *slog.Logger

	// Configuration
	Config *Config
}

// Config holds application configuration.
type Config struct {
	LogLevel   slog.Level
	LogFormat  logging.Format
	LogOutput  io.Writer
	Verbose    bool
	ConfigPath string
	FileSystem domain.FileSystemAdapter
	Stdout     io.Writer
}

// Option is a functional option for configuring the App.
type Option func(*Config)

// WithLogLevel sets the logging level.
func WithLogLevel(level slog.Level) Option {
	return func(cfg *Config) {
		cfg.LogLevel = level
	}
}

// WithLogFormat sets the log output format.
func WithLogFormat(format logging.Format) Option {
	return func(cfg *Config) {
		cfg.LogFormat = format
	}
}

// WithLogOutput sets the writer logs are sent to.
func WithLogOutput(w io.Writer) Option {
	return func(cfg *Config) {
		cfg.LogOutput = w
	}
}

// WithVerbose enables verbose logging.
func WithVerbose(verbose bool) Option {
	return func(cfg *Config) {
		cfg.Verbose = verbose
		if verbose {
			cfg.LogLevel = slog.LevelDebug
		}
	}
}

// WithConfigPath sets an explicit configuration file path.
func WithConfigPath(path string) Option {
	return func(cfg *Config) {
		cfg.ConfigPath = path
	}
}

// WithFileSystem replaces the operating-system filesystem.
func WithFileSystem(fs domain.FileSystemAdapter) Option {
	return func(cfg *Config) {
		cfg.FileSystem = fs
	}
}

// WithStdout sets the writer for per-file notices.
func WithStdout(w io.Writer) Option {
	return func(cfg *Config) {
		cfg.Stdout = w
	}
}

// NewApp creates a new App with the given options.
func NewApp(ctx context.Context, opts ...Option) (*App, error) {
	cfg := &Config{
		LogLevel:  slog.LevelWarn,
		LogFormat: logging.FormatAuto,
		LogOutput: os.Stderr,
		Stdout:    os.Stdout,
		Verbose:   false,
	}

	// Apply options.
	for _, opt := range opts {
		opt(cfg)
	}

	return NewAppWithConfig(ctx, cfg)
}
