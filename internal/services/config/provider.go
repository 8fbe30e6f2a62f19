package config

import (
	"os"
	"path/filepath"
)

// DefaultConfigFile is the configuration file looked up in the working
// directory when no explicit path is given.
const DefaultConfigFile = ".extswap.yaml"

// Provider provides configuration paths.
type Provider struct {
	explicitPath string
}

// NewProvider creates a new configuration provider. An empty explicitPath
// selects DefaultConfigFile in the working directory.
func NewProvider(explicitPath string) *Provider {
	return &Provider{
		explicitPath: explicitPath,
	}
}

// GetConfigPath returns the path to the extswap configuration file.
func (p *Provider) GetConfigPath() (string, error) {
	if p.explicitPath != "" {
		return filepath.Clean(p.explicitPath), nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return DefaultConfigFile, nil //nolint:nilerr // fall back to a relative path
	}
	return filepath.Join(wd, DefaultConfigFile), nil
}

// IsExplicit reports whether the configuration path was given by the user.
func (p *Provider) IsExplicit() bool {
	return p.explicitPath != ""
}
