// Package ports defines the interfaces (contracts) that adapters must implement.
// These are the boundaries of the hexagonal architecture. Domain logic depends
// only on these interfaces, never on concrete implementations.
package ports

// TagStore persists tags in a durable, queryable database.
// Tags are grouped per source file so a single file can be re-tagged without
// touching the rest. Concurrent reads are safe; writes are serialized by the adapter.
//
// Crash safety: ReplaceFile and DeleteFile must be transactional.
// A crash mid-write must not corrupt previously committed data.
type TagStore interface {
	// ReplaceFile stores tags as the complete tag set of file, discarding
	// whatever was stored for it before. An empty slice leaves the file
	// recorded with no tags.
	ReplaceFile(file string, tags []Tag) error

	// DeleteFile removes file and its tags.
	// Idempotent: deleting an unknown file is not an error.
	DeleteFile(file string) error

	// Find returns every stored tag named name, ordered by file then line.
	Find(name string) ([]Tag, error)

	// Count returns the number of stored tags across all files.
	Count() (int, error)

	// Files returns the stored file paths in byte order.
	Files() ([]string, error)

	// Reset removes every file and tag.
	Reset() error
}
