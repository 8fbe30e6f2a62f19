package app

import (
	"context"

	"extswap/internal/adapters/filesystem"
	"extswap/internal/logging"
	"extswap/internal/services/config"
)

// NewAppWithConfig creates a new App with the given configuration, wiring all dependencies.
func NewAppWithConfig(ctx context.Context, cfg *Config) (*App, error) {
	// Create logger.
	logger := logging.NewLogger(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: cfg.LogOutput,
	})

	// Create filesystem adapter.
	fs := cfg.FileSystem
	if fs == nil {
		fs = filesystem.New()
	}

	// Create config services.
	configProvider := config.NewProvider(cfg.ConfigPath)
	configPath, err := configProvider.GetConfigPath()
	if err != nil {
		return nil, err
	}
	configRepo := config.NewRepository(fs, configPath, logger,
		config.WithRequired(configProvider.IsExplicit()))

	logger.DebugContext(ctx, "Initializing extswap with configuration",
		"logLevel", cfg.LogLevel.String(),
		"verbose", cfg.Verbose,
		"configPath", configPath)

	return &App{
		ConfigRepo:     configRepo,
		ConfigProvider: configProvider,
		FileSystem:     fs,
		Stdout:         cfg.Stdout,
		Logger:         logger,
		Config:         cfg,
	}, nil
}
