// Package walker enumerates files eligible for import rewriting.
package walker

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"extswap/internal/domain"
	"extswap/internal/errors"
)

// Walker finds files whose names end in one of the configured suffixes.
type Walker struct {
	fs       domain.FileSystemAdapter
	suffixes []string
	filter   domain.PathFilter
	logger   *slog.Logger
}

// NewWalker creates a new tree walker.
func NewWalker(
	fileSystem domain.FileSystemAdapter,
	suffixes []string,
	filter domain.PathFilter,
	logger *slog.Logger,
) (*Walker, error) {
	if len(suffixes) == 0 {
		return nil, errors.NewValidationError("suffixes", "", "required", "at least one file suffix is required")
	}
	for i, suffix := range suffixes {
		if suffix == "" {
			return nil, errors.NewValidationError(fmt.Sprintf("suffixes[%d]", i), suffix, "required",
				"file suffix must not be empty")
		}
	}

	return &Walker{
		fs:       fileSystem,
		suffixes: suffixes,
		filter:   filter,
		logger:   logger,
	}, nil
}

// Walk returns every eligible file below root in lexical order.
//
// A root that does not exist is skipped silently. A root that is a symbolic
// link to a directory is followed; links below it are not. Entries that cannot be read
// are skipped with a warning and returned together in the error; the paths
// found elsewhere are still returned.
func (w *Walker) Walk(ctx context.Context, root string) ([]string, error) {
	info, err := w.fs.Stat(root)
	if err != nil {
		if errors.IsNotFound(err) {
			w.logger.DebugContext(ctx, "Root directory does not exist, skipping", "root", root)
			return nil, nil
		}
		return nil, errors.NewFileError(errors.OpStat, root, err)
	}
	if !info.IsDir() {
		w.logger.WarnContext(ctx, "Root is not a directory, skipping", "root", root)
		return nil, nil
	}

	// A symlinked root is descended; the trailing separator makes the walk
	// resolve it while reported paths keep the given prefix.
	walkRoot := root
	if linfo, lerr := w.fs.Lstat(root); lerr == nil && linfo.Mode()&os.ModeSymlink != 0 {
		w.logger.DebugContext(ctx, "Root is a symbolic link, following it", "root", root)
		walkRoot = root + string(filepath.Separator)
	}

	var files []string
	var failures []error

	walkErr := w.fs.Walk(walkRoot, func(path string, info os.FileInfo, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err != nil {
			w.logger.WarnContext(ctx, "Skipping unreadable path", "path", path, "error", err)
			failures = append(failures, errors.NewFileError(errors.OpWalk, path, err))
			return nil
		}

		if path == walkRoot {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}

		if info.IsDir() {
			if w.filter.ShouldExclude(rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if !w.eligible(info.Name()) || w.filter.ShouldExclude(rel) {
			return nil
		}

		if info.Mode()&os.ModeSymlink != 0 {
			// Links to directories are not descended and are not files.
			if target, statErr := w.fs.Stat(path); statErr == nil && target.IsDir() {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})
	if walkErr != nil {
		return files, fmt.Errorf("failed to walk %s: %w", root, walkErr)
	}

	w.logger.DebugContext(ctx, "Walked root directory", "root", root, "files", len(files))
	return files, errors.Join(failures...)
}

func (w *Walker) eligible(name string) bool {
	for _, suffix := range w.suffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}
