package filesystem

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Adapter provides file system operations on top of an afero.Fs.
type Adapter struct {
	fs afero.Fs
}

// New creates a new filesystem adapter backed by the operating system.
func New() *Adapter {
	return NewWithFs(afero.NewOsFs())
}

// NewMemory creates a filesystem adapter backed by an in-memory filesystem.
func NewMemory() *Adapter {
	return NewWithFs(afero.NewMemMapFs())
}

// NewWithFs creates a filesystem adapter over an arbitrary afero.Fs.
func NewWithFs(fs afero.Fs) *Adapter {
	return &Adapter{fs: fs}
}

// Fs returns the underlying afero filesystem.
func (a *Adapter) Fs() afero.Fs {
	return a.fs
}

// ReadFile reads a file from disk.
func (a *Adapter) ReadFile(path string) ([]byte, error) {
	return afero.ReadFile(a.fs, path)
}

// WriteFile writes data to a file, truncating it first.
func (a *Adapter) WriteFile(path string, data []byte, perm os.FileMode) error {
	return afero.WriteFile(a.fs, path, data, perm)
}

// MkdirAll creates a directory and all necessary parents.
func (a *Adapter) MkdirAll(path string, perm os.FileMode) error {
	return a.fs.MkdirAll(path, perm)
}

// Stat returns file info, following symbolic links.
func (a *Adapter) Stat(path string) (os.FileInfo, error) {
	return a.fs.Stat(path)
}

// Lstat returns file info without following a final symbolic link. It falls
// back to Stat on filesystems without symlink support.
func (a *Adapter) Lstat(path string) (os.FileInfo, error) {
	if lstater, ok := a.fs.(afero.Lstater); ok {
		info, _, err := lstater.LstatIfPossible(path)
		return info, err
	}
	return a.fs.Stat(path)
}

// Walk walks the file tree rooted at root in lexical order.
func (a *Adapter) Walk(root string, walkFn filepath.WalkFunc) error {
	return afero.Walk(a.fs, root, walkFn)
}
