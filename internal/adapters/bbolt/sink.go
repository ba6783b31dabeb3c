package bbolt

import (
	"fmt"

	"github.com/corey/ctags/internal/ports"
	bolt "go.etcd.io/bbolt"
)

// Sink adapts a Store to ports.TagSink. Tags are grouped per file in memory
// and committed in a single transaction on Close, so an interrupted run
// leaves the store as it was.
type Sink struct {
	store      *Store
	appendMode bool
	prior      int
	order      []string
	pending    map[string][]ports.Tag
	closed     bool
}

// NewSink starts a run against store. Without appendMode the commit
// replaces the whole store; with it, only the files tagged in this run.
func (s *Store) NewSink(appendMode bool) (*Sink, error) {
	sink := &Sink{
		store:      s,
		appendMode: appendMode,
		pending:    make(map[string][]ports.Tag),
	}
	if appendMode {
		n, err := s.Count()
		if err != nil {
			return nil, fmt.Errorf("count stored tags: %w", err)
		}
		sink.prior = n
	}
	return sink, nil
}

// Put buffers tag under its file.
func (k *Sink) Put(tag ports.Tag) error {
	if k.closed {
		return fmt.Errorf("tag store: put after close")
	}
	if _, ok := k.pending[tag.File]; !ok {
		k.order = append(k.order, tag.File)
	}
	k.pending[tag.File] = append(k.pending[tag.File], tag)
	return nil
}

// Prior is the number of tags stored before the run in append mode.
func (k *Sink) Prior() int { return k.prior }

// Close commits the buffered tags. It does not close the Store.
func (k *Sink) Close() error {
	if k.closed {
		return nil
	}
	k.closed = true

	return k.store.db.Update(func(tx *bolt.Tx) error {
		if !k.appendMode {
			if err := tx.DeleteBucket(bucketFiles); err != nil && err != bolt.ErrBucketNotFound {
				return err
			}
		}
		for _, file := range k.order {
			if err := putFile(tx, file, k.pending[file]); err != nil {
				return err
			}
		}
		return nil
	})
}

var (
	_ ports.TagSink      = (*Sink)(nil)
	_ ports.PriorCounter = (*Sink)(nil)
)
