// Package bbolt implements the ports.TagStore interface using bbolt (embedded B+ tree).
// A single "files" bucket maps each source path to the gob-encoded tags found
// in it. Writes are transactional; a crash mid-write cannot corrupt
// previously committed data.
package bbolt

import (
	"fmt"
	"sort"
	"time"

	"github.com/corey/ctags/internal/ports"
	bolt "go.etcd.io/bbolt"
)

var bucketFiles = []byte("files")

// Store implements ports.TagStore backed by bbolt.
type Store struct {
	db *bolt.DB
}

// NewStore opens (or creates) a bbolt database at the given path.
func NewStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

// ReplaceFile stores tags as the complete tag set of file.
func (s *Store) ReplaceFile(file string, tags []ports.Tag) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return putFile(tx, file, tags)
	})
}

func putFile(tx *bolt.Tx, file string, tags []ports.Tag) error {
	b, err := tx.CreateBucketIfNotExists(bucketFiles)
	if err != nil {
		return err
	}
	data, err := encodeGob(toStored(tags))
	if err != nil {
		return fmt.Errorf("encode tags for %s: %w", file, err)
	}
	return b.Put([]byte(file), data)
}

// DeleteFile removes file and its tags.
// Idempotent: deleting an unknown file is not an error.
func (s *Store) DeleteFile(file string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketFiles)
		if b == nil {
			return nil
		}
		return b.Delete([]byte(file))
	})
}

// Find returns every tag named name, ordered by file then line.
func (s *Store) Find(name string) ([]ports.Tag, error) {
	var out []ports.Tag
	err := s.forEachFile(func(file string, tags []ports.Tag) error {
		for _, t := range tags {
			if t.Name == name {
				out = append(out, t)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].File != out[j].File {
			return out[i].File < out[j].File
		}
		return out[i].Line < out[j].Line
	})
	return out, nil
}

// Count returns the number of stored tags across all files.
func (s *Store) Count() (int, error) {
	n := 0
	err := s.forEachFile(func(_ string, tags []ports.Tag) error {
		n += len(tags)
		return nil
	})
	return n, err
}

// Files returns the stored file paths in byte order.
func (s *Store) Files() ([]string, error) {
	var out []string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketFiles)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, _ []byte) error {
			out = append(out, string(k))
			return nil
		})
	})
	return out, err
}

// Reset removes every file and tag.
func (s *Store) Reset() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketFiles); err != nil && err != bolt.ErrBucketNotFound {
			return err
		}
		return nil
	})
}

// forEachFile decodes every file's tags inside one read transaction.
// Decoding copies out of the mmap, so fn may keep what it is given.
func (s *Store) forEachFile(fn func(file string, tags []ports.Tag) error) error {
	return s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketFiles)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			var st []storedTag
			if err := decodeGob(v, &st); err != nil {
				return fmt.Errorf("decode tags for %s: %w", k, err)
			}
			return fn(string(k), fromStored(string(k), st))
		})
	})
}

var _ ports.TagStore = (*Store)(nil)
