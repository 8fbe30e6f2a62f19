package migrations

import (
	"context"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"

	"extswap/internal/domain"
)

// ConfigMigrator handles configuration migrations between versions.
type ConfigMigrator interface {
	Migrate(ctx context.Context, data []byte, currentVersion string) (*domain.RewriteConfig, bool, error)
}

// Migrator implements configuration migration logic.
type Migrator struct {
	logger *slog.Logger
}

// NewMigrator creates a new configuration migrator.
func NewMigrator(logger *slog.Logger) *Migrator {
	return &Migrator{
		logger: logger,
	}
}

// Migrate attempts to migrate configuration data to the current version.
// Returns: config, wasMigrated, error. A nil config with wasMigrated false
// means the data is already in the current format.
func (m *Migrator) Migrate(
	ctx context.Context,
	data []byte,
	currentVersion string,
) (*domain.RewriteConfig, bool, error) {
	version, err := m.detectVersion(data, currentVersion)
	if err != nil {
		return nil, false, fmt.Errorf("failed to detect config version: %w", err)
	}

	m.logger.DebugContext(ctx, "Detected configuration version", "version", version, "current", currentVersion)

	if version == currentVersion {
		return nil, false, nil
	}

	switch version {
	case "1.0":
		return m.migrateFromV1(ctx, data, currentVersion)
	default:
		return nil, false, fmt.Errorf("unsupported configuration version: %s", version)
	}
}

// detectVersion attempts to detect the configuration version. Files without
// a version field are v1 unless they already carry a rule table.
func (m *Migrator) detectVersion(data []byte, currentVersion string) (string, error) {
	var versionCheck struct {
		Version string    `yaml:"version"`
		Rules   yaml.Node `yaml:"rules"`
	}

	if err := yaml.Unmarshal(data, &versionCheck); err != nil {
		return "", err
	}

	if versionCheck.Version == "" {
		if versionCheck.Rules.Kind != 0 {
			return currentVersion, nil
		}
		return "1.0", nil
	}

	return versionCheck.Version, nil
}

// migrateFromV1 handles migration from v1.x to the current version.
func (m *Migrator) migrateFromV1(
	ctx context.Context,
	data []byte,
	currentVersion string,
) (*domain.RewriteConfig, bool, error) {
	cfg, err := migrateFromV1(data, currentVersion)
	if err != nil {
		return nil, false, fmt.Errorf("failed to migrate from v1: %w", err)
	}

	m.logger.InfoContext(ctx, "Migrated configuration from v1.x",
		"rules", len(cfg.Rules),
		"roots", len(cfg.Roots))
	return cfg, true, nil
}
