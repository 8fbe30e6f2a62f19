package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"extswap/internal/domain"
	"extswap/internal/services/filter"
	"extswap/internal/services/processor"
	"extswap/internal/services/rewrite"
	"extswap/internal/services/walker"
)

// RewriteCommand handles rewriting import extensions below the configured roots.
type RewriteCommand struct {
	configRepo domain.ConfigRepository
	fileSystem domain.FileSystemAdapter
	stdout     io.Writer
	logger     *slog.Logger
}

// NewRewriteCommand creates a new rewrite command.
func NewRewriteCommand(
	configRepo domain.ConfigRepository,
	fileSystem domain.FileSystemAdapter,
	stdout io.Writer,
	logger *slog.Logger,
) *RewriteCommand {
	return &RewriteCommand{
		configRepo: configRepo,
		fileSystem: fileSystem,
		stdout:     stdout,
		logger:     logger,
	}
}

// RewriteRequest contains the parameters for the rewrite command.
type RewriteRequest struct {
	// Roots replaces the configured roots when non-empty.
	Roots []string
	// ExcludePatterns are added to the configured exclude patterns.
	ExcludePatterns []string
	DryRun          bool
	Diff            bool
}

// Execute runs the rewrite command. The report is returned even when some
// files failed.
func (c *RewriteCommand) Execute(ctx context.Context, req RewriteRequest) (*domain.Report, error) {
	cfg, err := c.configRepo.LoadConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	roots := cfg.Roots
	if len(req.Roots) > 0 {
		roots = req.Roots
	}

	excludes := make([]string, 0, len(cfg.Exclude)+len(req.ExcludePatterns))
	excludes = append(excludes, cfg.Exclude...)
	excludes = append(excludes, req.ExcludePatterns...)

	pathFilter, err := filter.New(excludes, c.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create exclude filter: %w", err)
	}

	treeWalker, err := walker.NewWalker(c.fileSystem, cfg.Suffixes, pathFilter, c.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create walker: %w", err)
	}

	rewriter, err := rewrite.NewRewriter(cfg.Rules)
	if err != nil {
		return nil, fmt.Errorf("failed to build rewrite rules: %w", err)
	}

	c.logger.DebugContext(ctx, "Starting rewrite",
		"roots", roots,
		"suffixes", cfg.Suffixes,
		"rules", len(cfg.Rules),
		"exclude", excludes,
		"dry_run", req.DryRun)

	proc := processor.NewProcessor(c.fileSystem, treeWalker, rewriter, c.stdout, c.logger, processor.Options{
		DryRun: req.DryRun,
		Diff:   req.Diff,
	})

	return proc.ProcessRoots(ctx, roots)
}
