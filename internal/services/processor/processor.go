// Package processor drives a rewrite run: walk each root, rewrite each
// eligible file and write back the files that changed.
package processor

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/pmezard/go-difflib/difflib"

	"extswap/internal/domain"
	"extswap/internal/errors"
	"extswap/internal/logging"
)

// diffContextLines is the number of unchanged lines shown around each hunk.
const diffContextLines = 3

// Options controls how changed files are handled.
type Options struct {
	// DryRun computes changes without writing any file.
	DryRun bool
	// Diff prints a unified diff for every changed file.
	Diff bool
}

// Processor rewrites files found by a TreeWalker.
type Processor struct {
	fs       domain.FileSystemAdapter
	walker   domain.TreeWalker
	rewriter domain.ImportRewriter
	out      io.Writer
	logger   *slog.Logger
	opts     Options
}

// NewProcessor creates a new processor. Notices about changed files are
// written to out.
func NewProcessor(
	fileSystem domain.FileSystemAdapter,
	walker domain.TreeWalker,
	rewriter domain.ImportRewriter,
	out io.Writer,
	logger *slog.Logger,
	opts Options,
) *Processor {
	return &Processor{
		fs:       fileSystem,
		walker:   walker,
		rewriter: rewriter,
		out:      out,
		logger:   logger,
		opts:     opts,
	}
}

// ProcessRoots processes every root in order. Per-file failures do not stop
// the run; they are collected in the report and returned joined as the error.
// Only context cancellation aborts early.
func (p *Processor) ProcessRoots(ctx context.Context, roots []string) (*domain.Report, error) {
	report := &domain.Report{
		Roots:   roots,
		Changed: []string{},
		DryRun:  p.opts.DryRun,
	}

	for _, root := range roots {
		rootLogger := logging.WithRoot(p.logger, root)

		files, walkErr := p.walker.Walk(ctx, root)
		if walkErr != nil {
			if isCancellation(walkErr) {
				return report, walkErr
			}
			p.recordWalkFailure(report, root, walkErr)
		}

		rootLogger.DebugContext(ctx, "Processing root", "files", len(files))

		for _, path := range files {
			if err := ctx.Err(); err != nil {
				return report, err
			}

			report.Scanned++
			changed, replacements, err := p.ProcessFile(ctx, path)
			if changed {
				report.Changed = append(report.Changed, path)
				report.Replacements += replacements
			}
			if err != nil {
				logging.WithFile(rootLogger, path).WarnContext(ctx, "Failed to process file", "error", err)
				report.Failures = append(report.Failures, domain.FileFailure{Path: path, Err: err})
			}
		}
	}

	p.logger.InfoContext(ctx, "Rewrite completed",
		"roots", len(roots),
		"scanned", report.Scanned,
		"changed", len(report.Changed),
		"replacements", report.Replacements,
		"failures", len(report.Failures),
		"dry_run", p.opts.DryRun)

	return report, failuresError(report.Failures)
}

// ProcessFile rewrites a single file. The file is written only when its
// content changed, keeping its permission bits.
func (p *Processor) ProcessFile(ctx context.Context, path string) (bool, int, error) {
	data, err := p.fs.ReadFile(path)
	if err != nil {
		return false, 0, errors.NewFileError(errors.OpRead, path, err)
	}

	original := string(data)
	result := p.rewriter.Rewrite(original)
	if !result.Changed {
		return false, 0, nil
	}

	fileLogger := logging.WithFile(p.logger, path)

	if p.opts.DryRun {
		fileLogger.DebugContext(ctx, "Would rewrite file", "replacements", result.Replacements)
		fmt.Fprintf(p.out, "Would update %s\n", path)
		return true, result.Replacements, p.printDiff(path, original, result.Content)
	}

	info, err := p.fs.Stat(path)
	if err != nil {
		return false, 0, errors.NewFileError(errors.OpStat, path, err)
	}

	if err := p.fs.WriteFile(path, []byte(result.Content), info.Mode().Perm()); err != nil {
		return false, 0, errors.NewFileError(errors.OpWrite, path, err)
	}

	fileLogger.DebugContext(ctx, "Rewrote file", "replacements", result.Replacements)
	fmt.Fprintf(p.out, "Updating %s\n", path)
	return true, result.Replacements, p.printDiff(path, original, result.Content)
}

func (p *Processor) printDiff(path, before, after string) error {
	if !p.opts.Diff {
		return nil
	}

	name := filepath.ToSlash(path)
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "a/" + name,
		ToFile:   "b/" + name,
		Context:  diffContextLines,
	})
	if err != nil {
		return fmt.Errorf("failed to render diff for %s: %w", path, err)
	}

	_, err = io.WriteString(p.out, diff)
	return err
}

func (p *Processor) recordWalkFailure(report *domain.Report, root string, err error) {
	var multiErr *errors.MultiError
	errs := []error{err}
	if stderrors.As(err, &multiErr) {
		errs = multiErr.Errors
	}

	for _, e := range errs {
		path := root
		var fileErr *errors.FileError
		if stderrors.As(e, &fileErr) {
			path = fileErr.Path
		}
		report.Failures = append(report.Failures, domain.FileFailure{Path: path, Err: e})
	}
}

func failuresError(failures []domain.FileFailure) error {
	if len(failures) == 0 {
		return nil
	}
	errs := make([]error, 0, len(failures))
	for _, f := range failures {
		errs = append(errs, f.Err)
	}
	return errors.Join(errs...)
}

func isCancellation(err error) bool {
	return stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded)
}
