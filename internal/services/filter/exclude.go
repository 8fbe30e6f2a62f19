package filter

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"

	"extswap/internal/domain"
)

// ExcludeFilter filters paths based on exclude regex patterns.
type ExcludeFilter struct {
	patterns []*regexp.Regexp
	logger   *slog.Logger
}

// NewExcludeFilter creates a new exclude filter with the given patterns.
func NewExcludeFilter(patterns []string, logger *slog.Logger) (*ExcludeFilter, error) {
	if len(patterns) == 0 {
		return nil, errors.New("no patterns provided for exclude filter")
	}

	compiledPatterns := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		compiled, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid regex pattern %q: %w", pattern, err)
		}
		compiledPatterns = append(compiledPatterns, compiled)
	}

	return &ExcludeFilter{
		patterns: compiledPatterns,
		logger:   logger,
	}, nil
}

// ShouldExclude returns true if the root-relative path matches any exclude
// pattern. Paths are matched in slash-separated form on every platform.
func (f *ExcludeFilter) ShouldExclude(relPath string) bool {
	path := filepath.ToSlash(relPath)
	for _, pattern := range f.patterns {
		if pattern.MatchString(path) {
			f.logger.Debug("Path excluded",
				"path", path,
				"matched_pattern", pattern.String())
			return true
		}
	}
	return false
}

// New returns an ExcludeFilter for the patterns, or a NoOpFilter when there
// are none.
func New(patterns []string, logger *slog.Logger) (domain.PathFilter, error) {
	if len(patterns) == 0 {
		return NewNoOpFilter(), nil
	}
	f, err := NewExcludeFilter(patterns, logger)
	if err != nil {
		return nil, err
	}
	return f, nil
}
