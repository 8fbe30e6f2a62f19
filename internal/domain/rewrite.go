package domain

import "context"

// RewriteResult is the outcome of rewriting one file's content.
type RewriteResult struct {
	Content      string
	Changed      bool
	Replacements int
}

// ImportRewriter transforms file content without touching the filesystem.
type ImportRewriter interface {
	Rewrite(content string) RewriteResult
}

// PathFilter decides whether a path below a root is skipped.
type PathFilter interface {
	ShouldExclude(relPath string) bool
}

// TreeWalker enumerates eligible files below a root.
type TreeWalker interface {
	// Walk returns eligible file paths. A missing root yields no paths and
	// no error. Subtrees that could not be read are skipped and reported
	// through the returned error alongside the paths that were found.
	Walk(ctx context.Context, root string) ([]string, error)
}

// FileFailure records an I/O failure for a single path.
type FileFailure struct {
	Path string
	Err  error
}

// Report summarizes a processing run.
type Report struct {
	Roots        []string
	Scanned      int
	Changed      []string
	Replacements int
	Failures     []FileFailure
	DryRun       bool
}
