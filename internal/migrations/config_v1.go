// Package migrations handles configuration migrations between versions.
package migrations

import (
	"gopkg.in/yaml.v3"

	"extswap/internal/domain"
)

// V1Config represents the old v1.x configuration structure, which described
// a single alias and extension pair instead of a rule table.
type V1Config struct {
	Version  string   `yaml:"version"`
	Alias    string   `yaml:"alias"`
	From     string   `yaml:"from"`
	To       string   `yaml:"to"`
	Roots    []string `yaml:"roots"`
	Suffixes []string `yaml:"suffixes"`
	Exclude  []string `yaml:"exclude"`
}

// migrateFromV1 converts v1 configuration to the current format, filling
// omitted fields with defaults.
func migrateFromV1(data []byte, currentVersion string) (*domain.RewriteConfig, error) {
	v1Config := V1Config{
		Alias:    domain.DefaultAlias,
		From:     domain.DefaultFromExt,
		To:       domain.DefaultToExt,
		Roots:    domain.DefaultRoots(),
		Suffixes: domain.DefaultSuffixes(),
	}
	if err := yaml.Unmarshal(data, &v1Config); err != nil {
		return nil, err
	}

	return &domain.RewriteConfig{
		Version:  currentVersion,
		Roots:    v1Config.Roots,
		Suffixes: v1Config.Suffixes,
		Exclude:  v1Config.Exclude,
		Rules:    domain.DefaultRules(v1Config.Alias, v1Config.From, v1Config.To),
	}, nil
}
