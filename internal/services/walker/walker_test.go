package walker

import (
	"context"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"extswap/internal/adapters/filesystem"
	"extswap/internal/domain"
	"extswap/internal/errors"
	"extswap/internal/services/filter"
	"extswap/internal/testutil"
)

func newTestWalker(t *testing.T, fileSystem domain.FileSystemAdapter, patterns ...string) *Walker {
	t.Helper()
	pathFilter, err := filter.New(patterns, testutil.Logger())
	require.NoError(t, err)

	w, err := NewWalker(fileSystem, domain.DefaultSuffixes(), pathFilter, testutil.Logger())
	require.NoError(t, err)
	return w
}

func slashPaths(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.ToSlash(p)
	}
	return out
}

func TestWalker_Walk_FiltersBySuffix(t *testing.T) {
	fs := testutil.MemoryTree(t, map[string]string{
		"src/lib/index.ts":                           "",
		"src/lib/utils.js":                           "",
		"src/lib/README.md":                          "",
		"src/lib/components/ui/DataTable.svelte":     "",
		"src/lib/components/ui/DataTableTypes.ts":    "",
		"src/lib/components/ui/datatable.svelte.bak": "",
		"src/lib/types.d.ts":                         "",
		"src/lib/ts":                                 "",
	})

	files, err := newTestWalker(t, fs).Walk(context.Background(), "src/lib")

	require.NoError(t, err)
	assert.Equal(t, []string{
		"src/lib/components/ui/DataTable.svelte",
		"src/lib/components/ui/DataTableTypes.ts",
		"src/lib/index.ts",
		"src/lib/types.d.ts",
	}, slashPaths(files))
}

func TestWalker_Walk_MissingRoot(t *testing.T) {
	fs := testutil.MemoryTree(t, map[string]string{"src/lib/a.ts": ""})

	files, err := newTestWalker(t, fs).Walk(context.Background(), "frontend/src/lib")

	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestWalker_Walk_RootIsFile(t *testing.T) {
	fs := testutil.MemoryTree(t, map[string]string{"src/lib": "not a directory"})

	files, err := newTestWalker(t, fs).Walk(context.Background(), "src/lib")

	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestWalker_Walk_EmptyRoot(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, fs.MkdirAll("src/lib", 0o755))

	files, err := newTestWalker(t, fs).Walk(context.Background(), "src/lib")

	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestWalker_Walk_ExcludePatterns(t *testing.T) {
	fs := testutil.MemoryTree(t, map[string]string{
		"src/lib/a.ts":               "",
		"src/lib/mocks/sveltekit.ts": "",
		"src/lib/mocks/deep/x.ts":    "",
		"src/lib/ui/types.d.ts":      "",
		"src/lib/ui/Grid.svelte":     "",
	})

	files, err := newTestWalker(t, fs, "^mocks$", `\.d\.ts$`).Walk(context.Background(), "src/lib")

	require.NoError(t, err)
	assert.Equal(t, []string{"src/lib/a.ts", "src/lib/ui/Grid.svelte"}, slashPaths(files))
}

func TestWalker_Walk_CancelledContext(t *testing.T) {
	fs := testutil.MemoryTree(t, map[string]string{"src/lib/a.ts": ""})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestWalker(t, fs).Walk(ctx, "src/lib")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

// failingOpenFs refuses to open one directory, as a permission error would.
type failingOpenFs struct {
	afero.Fs
	fail string
}

func (f failingOpenFs) Open(name string) (afero.File, error) {
	if filepath.ToSlash(name) == f.fail {
		return nil, &os.PathError{Op: "open", Path: name, Err: fs.ErrPermission}
	}
	return f.Fs.Open(name)
}

func TestWalker_Walk_UnreadableSubdirectory(t *testing.T) {
	base := afero.NewMemMapFs()
	for _, p := range []string{"src/lib/a.ts", "src/lib/locked/b.ts", "src/lib/open/c.ts"} {
		require.NoError(t, afero.WriteFile(base, p, nil, 0o644))
	}
	adapter := filesystem.NewWithFs(failingOpenFs{Fs: base, fail: "src/lib/locked"})

	files, err := newTestWalker(t, adapter).Walk(context.Background(), "src/lib")

	require.Error(t, err)
	assert.True(t, errors.IsFileIO(err))
	assert.ErrorIs(t, err, fs.ErrPermission)

	var fileErr *errors.FileError
	require.True(t, stderrors.As(err, &fileErr))
	assert.Equal(t, "src/lib/locked", filepath.ToSlash(fileErr.Path))
	assert.Equal(t, errors.OpWalk, fileErr.Op)

	assert.Equal(t, []string{"src/lib/a.ts", "src/lib/open/c.ts"}, slashPaths(files))
}

func TestWalker_Walk_SymlinkToDirectorySkipped(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "lib")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "real.ts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "real.ts", "inner.ts"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "file.ts"), nil, 0o644))
	if err := os.Symlink(filepath.Join(root, "real.ts"), filepath.Join(root, "link.ts")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	if err := os.Symlink(filepath.Join(root, "file.ts"), filepath.Join(root, "alias.ts")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	files, err := newTestWalker(t, filesystem.New()).Walk(context.Background(), root)

	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "alias.ts"),
		filepath.Join(root, "file.ts"),
		filepath.Join(root, "real.ts", "inner.ts"),
	}, files)
}

func TestWalker_Walk_SymlinkedRootFollowed(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "real")
	require.NoError(t, os.MkdirAll(filepath.Join(target, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "a.ts"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(target, "nested", "b.svelte"), nil, 0o644))
	outside := filepath.Join(dir, "outside")
	require.NoError(t, os.MkdirAll(outside, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(outside, "c.ts"), nil, 0o644))

	root := filepath.Join(dir, "lib")
	if err := os.Symlink(target, root); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	// Directory links below the root are still not descended.
	require.NoError(t, os.Symlink(outside, filepath.Join(target, "linked")))

	files, err := newTestWalker(t, filesystem.New()).Walk(context.Background(), root)

	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.ts"),
		filepath.Join(root, "nested", "b.svelte"),
	}, files)
}

func TestNewWalker_Validation(t *testing.T) {
	fs := filesystem.NewMemory()

	_, err := NewWalker(fs, nil, filter.NewNoOpFilter(), testutil.Logger())
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))

	_, err = NewWalker(fs, []string{".ts", ""}, filter.NewNoOpFilter(), testutil.Logger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "suffixes[1]")
}
