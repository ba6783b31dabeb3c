// Package osfs implements ports.FileSystem on the host operating system.
// Enumeration is shared by every platform; only directory identity differs
// (see identity_unix.go and identity_other.go).
package osfs

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/corey/ctags/internal/ports"
)

// FS is the host filesystem.
type FS struct{}

// New returns the host filesystem.
func New() FS { return FS{} }

// Describe lstats path and, for symbolic links, stats the target.
// A dangling link is reported as a link that is neither a directory nor a
// regular file, without error.
func (FS) Describe(path string) (ports.DirEntry, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return ports.DirEntry{}, err
	}
	return describe(path, filepath.Base(path), info.Mode()), nil
}

// ReadDir lists dir in the order the operating system returns entries.
// If enumeration fails partway, the entries read so far come back with the
// error.
func (FS) ReadDir(dir string) ([]ports.DirEntry, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dirents, err := f.ReadDir(-1)
	out := make([]ports.DirEntry, 0, len(dirents))
	for _, d := range dirents {
		out = append(out, describe(filepath.Join(dir, d.Name()), d.Name(), d.Type()))
	}
	return out, err
}

// Identity resolves dir through every symbolic link.
func (FS) Identity(dir string) (ports.Identity, error) {
	return identity(dir)
}

// Open opens path for reading.
func (FS) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

func describe(path, name string, mode fs.FileMode) ports.DirEntry {
	e := ports.DirEntry{Name: name}
	if mode&fs.ModeSymlink != 0 {
		e.IsSymlink = true
		target, err := os.Stat(path)
		if err != nil {
			return e
		}
		mode = target.Mode()
	}
	e.IsDir = mode.IsDir()
	e.IsRegular = mode.IsRegular()
	return e
}
