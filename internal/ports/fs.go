package ports

import "io"

// DirEntry describes one filesystem entry. IsDir and IsRegular describe the
// link target when IsSymlink is set; a dangling link has neither.
type DirEntry struct {
	Name      string
	IsDir     bool
	IsRegular bool
	IsSymlink bool
}

// Identity is the resolved identity of a directory. Two paths that reach the
// same directory (through symbolic links or otherwise) have equal identities.
// POSIX adapters fill Device/Inode; others fall back to the resolved Path.
type Identity struct {
	Device uint64
	Inode  uint64
	Path   string
}

// FileSystem is the platform layer the walker enumerates input through.
// The concrete implementation lives in internal/adapters/osfs.
type FileSystem interface {
	// Describe reports what path is. Name is the base name of path.
	Describe(path string) (DirEntry, error)

	// ReadDir lists the entries of dir in enumeration order. The "." and
	// ".." pseudo-entries may or may not be present; callers skip them.
	// An error may accompany the entries read before enumeration failed.
	ReadDir(dir string) ([]DirEntry, error)

	// Identity resolves the real identity of dir for cycle detection.
	Identity(dir string) (Identity, error)

	// Open opens a regular file for reading.
	Open(path string) (io.ReadCloser, error)
}

// Excluder reports whether a path is excluded from tagging by user patterns.
type Excluder interface {
	Excluded(path string, isDir bool) bool
}
