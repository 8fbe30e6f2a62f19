package domain

import (
	"os"
	"path/filepath"
)

// FileSystemAdapter defines the interface for file operations.
type FileSystemAdapter interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm os.FileMode) error
	MkdirAll(path string, perm os.FileMode) error
	Stat(path string) (os.FileInfo, error)
	// Lstat is Stat without following a final symbolic link, where the
	// underlying filesystem supports it.
	Lstat(path string) (os.FileInfo, error)
	// Walk visits root and everything below it in lexical order without
	// following symbolic links.
	Walk(root string, walkFn filepath.WalkFunc) error
}
