package commands

import (
	"context"
	"fmt"
	"log/slog"

	"extswap/internal/domain"
	"extswap/internal/errors"
)

// InitCommand writes a configuration file.
type InitCommand struct {
	configRepo domain.ConfigRepository
	fileSystem domain.FileSystemAdapter
	logger     *slog.Logger
}

// NewInitCommand creates a new init command.
func NewInitCommand(
	configRepo domain.ConfigRepository,
	fileSystem domain.FileSystemAdapter,
	logger *slog.Logger,
) *InitCommand {
	return &InitCommand{
		configRepo: configRepo,
		fileSystem: fileSystem,
		logger:     logger,
	}
}

// InitRequest contains the parameters for the init command.
type InitRequest struct {
	// Force rewrites an existing file in the current format, keeping its settings.
	Force bool
}

// InitResult contains the result of the init command.
type InitResult struct {
	Path     string
	Upgraded bool
}

// Execute writes the default configuration, or re-saves an existing one when
// forced.
func (c *InitCommand) Execute(ctx context.Context, req InitRequest) (*InitResult, error) {
	path := c.configRepo.ConfigPath()

	exists := true
	if _, err := c.fileSystem.Stat(path); err != nil {
		if !errors.IsNotFound(err) {
			return nil, errors.NewFileError(errors.OpStat, path, err)
		}
		exists = false
	}

	cfg := domain.DefaultRewriteConfig("")
	if exists {
		if !req.Force {
			return nil, errors.NewValidationError("config_path", path, "exists",
				fmt.Sprintf("configuration file %s already exists (use --force to rewrite it)", path))
		}
		loaded, err := c.configRepo.LoadConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load existing configuration: %w", err)
		}
		cfg = loaded
	}

	if err := c.configRepo.SaveConfig(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to save configuration: %w", err)
	}

	c.logger.InfoContext(ctx, "Configuration written", "path", path, "upgraded", exists)
	return &InitResult{Path: path, Upgraded: exists}, nil
}
