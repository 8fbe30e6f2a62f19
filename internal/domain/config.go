package domain

import (
	"context"
	"fmt"
)

// PathKind distinguishes aliased specifiers from relative ones.
type PathKind string

const (
	PathKindAlias    PathKind = "alias"
	PathKindRelative PathKind = "relative"
)

// QuoteKind is the delimiter used around an import specifier.
type QuoteKind string

const (
	QuoteDouble QuoteKind = "double"
	QuoteSingle QuoteKind = "single"
)

// Char returns the quote character.
func (q QuoteKind) Char() string {
	if q == QuoteSingle {
		return "'"
	}
	return `"`
}

// Default values used when no configuration file is present.
const (
	DefaultAlias   = "$lib"
	DefaultFromExt = "js"
	DefaultToExt   = "ts"
)

// DefaultRoots returns the candidate root directories, checked in order.
func DefaultRoots() []string {
	return []string{"src/lib", "frontend/src/lib"}
}

// DefaultSuffixes returns the eligible file-name suffixes.
func DefaultSuffixes() []string {
	return []string{".svelte", ".ts"}
}

// Rule describes one import-specifier substitution class.
type Rule struct {
	Name  string    `yaml:"name,omitempty"`
	Kind  PathKind  `yaml:"kind"`
	Quote QuoteKind `yaml:"quote"`
	Alias string    `yaml:"alias,omitempty"`
	From  string    `yaml:"from"`
	To    string    `yaml:"to"`
}

// DefaultRules builds the ordered rule table: aliased double and single
// quoted specifiers, then relative double and single quoted specifiers.
func DefaultRules(alias, from, to string) []Rule {
	rules := make([]Rule, 0, 4)
	for _, kind := range []PathKind{PathKindAlias, PathKindRelative} {
		for _, quote := range []QuoteKind{QuoteDouble, QuoteSingle} {
			rule := Rule{
				Name:  fmt.Sprintf("%s-%s", kind, quote),
				Kind:  kind,
				Quote: quote,
				From:  from,
				To:    to,
			}
			if kind == PathKindAlias {
				rule.Alias = alias
			}
			rules = append(rules, rule)
		}
	}
	return rules
}

// RewriteConfig is the complete configuration of a rewrite run.
type RewriteConfig struct {
	Version  string   `yaml:"version"`
	Roots    []string `yaml:"roots"`
	Suffixes []string `yaml:"suffixes"`
	Exclude  []string `yaml:"exclude,omitempty"`
	Rules    []Rule   `yaml:"rules"`
}

// DefaultRewriteConfig returns the configuration equivalent to running with
// no configuration file.
func DefaultRewriteConfig(version string) *RewriteConfig {
	return &RewriteConfig{
		Version:  version,
		Roots:    DefaultRoots(),
		Suffixes: DefaultSuffixes(),
		Rules:    DefaultRules(DefaultAlias, DefaultFromExt, DefaultToExt),
	}
}

// ConfigRepository loads and persists the rewrite configuration.
type ConfigRepository interface {
	LoadConfig(ctx context.Context) (*RewriteConfig, error)
	SaveConfig(ctx context.Context, cfg *RewriteConfig) error
	ConfigPath() string
}

// ConfigProvider resolves configuration locations.
type ConfigProvider interface {
	GetConfigPath() (string, error)
}
