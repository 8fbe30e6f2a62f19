package config

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"extswap/internal/domain"
	"extswap/internal/errors"
	"extswap/internal/migrations"
	"extswap/internal/services/rewrite"
)

const (
	dirPermissions  = 0o755
	filePermissions = 0o644
	configVersion   = "2.0" // Current configuration version
)

// Repository handles configuration persistence.
type Repository struct {
	fs         domain.FileSystemAdapter
	configPath string
	required   bool
	migrator   migrations.ConfigMigrator
	logger     *slog.Logger
}

// Option configures a Repository.
type Option func(*Repository)

// WithRequired makes a missing configuration file an error instead of
// falling back to defaults.
func WithRequired(required bool) Option {
	return func(r *Repository) {
		r.required = required
	}
}

// NewRepository creates a new configuration repository.
func NewRepository(
	fs domain.FileSystemAdapter,
	configPath string,
	logger *slog.Logger,
	opts ...Option,
) *Repository {
	repo := &Repository{
		fs:         fs,
		configPath: configPath,
		migrator:   migrations.NewMigrator(logger),
		logger:     logger,
	}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

// ConfigPath returns the path the repository reads from and writes to.
func (r *Repository) ConfigPath() string {
	return r.configPath
}

// LoadConfig loads the configuration from disk. A missing or empty file
// yields the default configuration.
func (r *Repository) LoadConfig(ctx context.Context) (*domain.RewriteConfig, error) {
	data, err := r.fs.ReadFile(r.configPath)
	if err != nil {
		if errors.IsNotFound(err) && !r.required {
			r.logger.DebugContext(ctx, "Configuration file does not exist, using defaults", "path", r.configPath)
			return domain.DefaultRewriteConfig(configVersion), nil
		}
		return nil, errors.NewConfigurationError("config_path", r.configPath, "failed to read configuration file", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		r.logger.DebugContext(ctx, "Configuration file is empty, using defaults", "path", r.configPath)
		return domain.DefaultRewriteConfig(configVersion), nil
	}

	cfg, migrated, err := r.migrator.Migrate(ctx, data, configVersion)
	if err != nil {
		return nil, errors.NewConfigurationError("version", r.configPath, "failed to migrate configuration", err)
	}
	if migrated {
		r.logger.InfoContext(ctx, "Configuration uses a legacy format; run 'extswap init --force' to upgrade it",
			"path", r.configPath)
	} else {
		cfg, err = decode(data)
		if err != nil {
			return nil, err
		}
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	r.logger.DebugContext(ctx, "Configuration loaded",
		"path", r.configPath,
		"version", cfg.Version,
		"roots", len(cfg.Roots),
		"rules", len(cfg.Rules))
	return cfg, nil
}

// SaveConfig writes the configuration to disk.
func (r *Repository) SaveConfig(ctx context.Context, cfg *domain.RewriteConfig) error {
	if err := Validate(cfg); err != nil {
		return err
	}

	if cfg.Version == "" {
		cfg.Version = configVersion
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(cfg); err != nil {
		return errors.NewConfigurationError("config_format", "yaml", "failed to marshal configuration", err)
	}
	if err := encoder.Close(); err != nil {
		return errors.NewConfigurationError("config_format", "yaml", "failed to marshal configuration", err)
	}

	if dir := filepath.Dir(r.configPath); dir != "." {
		if err := r.fs.MkdirAll(dir, dirPermissions); err != nil {
			return errors.NewConfigurationError("config_directory", dir, "failed to create configuration directory", err)
		}
	}

	if err := r.fs.WriteFile(r.configPath, buf.Bytes(), filePermissions); err != nil {
		return errors.NewConfigurationError("config_path", r.configPath, "failed to write configuration file", err)
	}

	r.logger.DebugContext(ctx, "Configuration saved", "path", r.configPath)
	return nil
}

// decode parses a current-version document, keeping defaults for omitted
// fields and rejecting unknown ones.
func decode(data []byte) (*domain.RewriteConfig, error) {
	cfg := domain.DefaultRewriteConfig(configVersion)

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !stderrors.Is(err, io.EOF) {
		return nil, errors.NewConfigurationError("config_format", "yaml", "failed to parse configuration", err)
	}

	if cfg.Version == "" {
		cfg.Version = configVersion
	}
	return cfg, nil
}

// Validate checks a configuration for structural problems.
func Validate(cfg *domain.RewriteConfig) error {
	if cfg == nil {
		return errors.NewConfigurationError("", "", "configuration is missing", nil)
	}
	if len(cfg.Roots) == 0 {
		return errors.NewValidationError("roots", "", "required", "at least one root directory is required")
	}
	for i, root := range cfg.Roots {
		if root == "" {
			return errors.NewValidationError(fmt.Sprintf("roots[%d]", i), root, "required", "root directory must not be empty")
		}
	}
	if len(cfg.Suffixes) == 0 {
		return errors.NewValidationError("suffixes", "", "required", "at least one file suffix is required")
	}
	if len(cfg.Rules) == 0 {
		return errors.NewValidationError("rules", "", "required", "at least one rewrite rule is required")
	}
	for i, rule := range cfg.Rules {
		if err := rewrite.ValidateRule(i, rule); err != nil {
			return err
		}
	}
	return nil
}
