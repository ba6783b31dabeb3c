package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/corey/ctags/internal/domain/emit"
	"github.com/corey/ctags/internal/domain/stats"
	"github.com/corey/ctags/internal/domain/walker"
	"github.com/corey/ctags/internal/ports"
)

// DefaultWatchCacheSize bounds the number of files whose last tagged
// size and modification time are remembered.
const DefaultWatchCacheSize = 4096

// stamp identifies one version of a file well enough to skip duplicate
// change events.
type stamp struct {
	size    int64
	modTime time.Time
}

// WatchConfig holds the collaborators of a Watch.
type WatchConfig struct {
	Root      string // tree to watch; stored paths are relative to it as given
	Store     ports.TagStore
	Watcher   ports.Watcher
	CacheSize int // default: DefaultWatchCacheSize
}

// Watch re-tags changed files into a tag store.
type Watch struct {
	tagger  *Tagger
	root    string
	absRoot string
	store   ports.TagStore
	watcher ports.Watcher
	opts    walker.Options
	seen    *lru.Cache[string, stamp]
	totals  stats.Totals

	mu sync.Mutex // serializes Retag
}

// NewWatch prepares a Watch over cfg.Root. Recursion is implied; the watcher
// reports single files.
func (t *Tagger) NewWatch(cfg WatchConfig, opts Options) (*Watch, error) {
	if cfg.Root == "" {
		cfg.Root = "."
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = DefaultWatchCacheSize
	}
	abs, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("watch root: %w", err)
	}
	wo, err := t.walkOptions(opts)
	if err != nil {
		return nil, err
	}
	seen, err := lru.New[string, stamp](cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("watch cache: %w", err)
	}
	return &Watch{
		tagger:  t,
		root:    cfg.Root,
		absRoot: abs,
		store:   cfg.Store,
		watcher: cfg.Watcher,
		opts:    wo,
		seen:    seen,
	}, nil
}

// Start begins watching. Change events arrive one at a time from the
// watcher's goroutines.
func (w *Watch) Start() error {
	return w.watcher.Watch(w.root, func(path string) {
		if err := w.Retag(path); err != nil {
			w.tagger.log.Warn("re-tag failed", "path", path, "err", err)
		}
	})
}

// Stop ends watching. The store stays open.
func (w *Watch) Stop() error {
	return w.watcher.Stop()
}

// Totals reports the files, lines and bytes scanned since the Watch started.
func (w *Watch) Totals() stats.Counts {
	return w.totals.Snapshot()
}

// Retag brings the stored tags of path in line with the file on disk:
// a removed file loses its tags, a changed file has them replaced, and an
// unchanged, excluded or unrecognized file is left alone.
func (w *Watch) Retag(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	key := w.storeKey(path)

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		w.seen.Remove(key)
		if err := w.store.DeleteFile(key); err != nil {
			return fmt.Errorf("drop tags: %w", err)
		}
		w.tagger.log.Info("dropped tags", "path", key)
		return nil
	}
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return nil
	}

	if w.excluded(key) {
		return nil
	}
	if w.opts.Force == nil {
		if _, ok := w.tagger.parsers.Resolve(key); !ok {
			return nil
		}
	}

	st := stamp{size: info.Size(), modTime: info.ModTime()}
	if prev, ok := w.seen.Get(key); ok && prev.size == st.size && prev.modTime.Equal(st.modTime) {
		return nil
	}

	var sink collector
	wk := walker.New(w.tagger.fs, w.tagger.parsers, emit.New(&sink), &w.totals, w.tagger.log, w.opts)
	wk.Walk(key)

	if err := w.store.ReplaceFile(key, sink.tags); err != nil {
		return fmt.Errorf("store tags: %w", err)
	}
	w.seen.Add(key, st)
	w.tagger.log.Info("re-tagged", "path", key, "tags", len(sink.tags))
	return nil
}

// excluded reports whether key or any directory between it and the root
// matches an exclude pattern. A full run never descends into an excluded
// directory, so its files must not be tagged here either.
func (w *Watch) excluded(key string) bool {
	ex := w.opts.Exclude
	if ex == nil {
		return false
	}
	if ex.Excluded(key, false) {
		return true
	}
	for dir := filepath.Dir(key); dir != "." && dir != w.root; {
		if ex.Excluded(dir, true) {
			return true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return false
}

// storeKey maps an event path to the name a full run over root would
// have given it.
func (w *Watch) storeKey(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(w.absRoot, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return filepath.Join(w.root, rel)
}
