// Package fsnotify implements the ports.Watcher interface using github.com/fsnotify/fsnotify.
// It recursively watches a source tree, skips version-control metadata, editor
// droppings and excluded paths, and debounces rapid events (editors often
// trigger multiple writes per save). A path is reported once its events
// have been quiet for the debounce interval, so the last change always wins.
package fsnotify

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/corey/ctags/internal/ports"
	"github.com/fsnotify/fsnotify"
)

// Directories never watched. Matches the version-control directories a
// recursive tag run skips, plus the tool's own state directory.
var ignoreDirs = map[string]bool{
	".git":   true,
	".hg":    true,
	".svn":   true,
	".bzr":   true,
	"_darcs": true,
	"CVS":    true,
	"RCS":    true,
	"SCCS":   true,
	".ctags": true,
}

// File names and suffixes that never trigger a re-tag.
var ignoreSuffixes = []string{
	".DS_Store",
	".swp",
	".swx",
	"~",
	".tmp",
}

const debounceInterval = 50 * time.Millisecond

// Watcher implements ports.Watcher using fsnotify.
type Watcher struct {
	fw      *fsnotify.Watcher
	exclude ports.Excluder
	done    chan struct{}
	stopped bool
	pending map[string]*time.Timer // one trailing timer per path with unreported events
	mu      sync.Mutex

	cbMu sync.Mutex // serializes onChange
}

// NewWatcher creates a new file system watcher. exclude may be nil.
func NewWatcher(exclude ports.Excluder) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fw:      fw,
		exclude: exclude,
		done:    make(chan struct{}),
		pending: make(map[string]*time.Timer),
	}, nil
}

// Watch starts monitoring root recursively.
// onChange is called with the absolute path of each changed file.
func (w *Watcher) Watch(root string, onChange func(filePath string)) error {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return err
	}
	if _, err := os.Stat(absRoot); err != nil {
		return err
	}

	if err := w.addTree(absRoot); err != nil {
		return err
	}

	go func() {
		for {
			select {
			case event, ok := <-w.fw.Events:
				if !ok {
					return
				}
				path := event.Name

				// New directories join the watch list along with their subtrees.
				if event.Has(fsnotify.Create) {
					if info, err := os.Stat(path); err == nil && info.IsDir() {
						if !w.skipDir(path) {
							w.addTree(path)
						}
						continue
					}
				}

				if w.skipFile(path) {
					continue
				}

				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
					event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
					if w.isStopped() {
						return
					}
					w.schedule(path, onChange)
				}

			case _, ok := <-w.fw.Errors:
				if !ok {
					return
				}
				// fsnotify recovers on its own; a missed event is picked up
				// by the next full run.

			case <-w.done:
				return
			}
		}
	}()

	return nil
}

// Stop ends monitoring and releases all resources.
// Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
	close(w.done)
	err := w.fw.Close()
	w.mu.Unlock()

	// Wait out a report already in flight.
	w.cbMu.Lock()
	w.cbMu.Unlock()
	return err
}

// schedule (re)arms the trailing timer for path. Each event pushes the
// report back by debounceInterval; the timer removes its own entry when it
// fires.
func (w *Watcher) schedule(path string, onChange func(string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	if t, ok := w.pending[path]; ok && t.Stop() {
		t.Reset(debounceInterval)
		return
	}

	var t *time.Timer
	t = time.AfterFunc(debounceInterval, func() {
		w.mu.Lock()
		if w.pending[path] == t {
			delete(w.pending, path)
		}
		stopped := w.stopped
		w.mu.Unlock()
		if stopped {
			return
		}

		w.cbMu.Lock()
		defer w.cbMu.Unlock()
		if !w.isStopped() {
			onChange(path)
		}
	})
	w.pending[path] = t
}

func (w *Watcher) isStopped() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stopped
}

// addTree watches dir and every directory below it that is not skipped.
// Symbolic links are not followed.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // skip inaccessible paths
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && w.skipDir(path) {
			return filepath.SkipDir
		}
		return w.fw.Add(path)
	})
}

func (w *Watcher) skipDir(path string) bool {
	if ignoreDirs[filepath.Base(path)] {
		return true
	}
	return w.exclude != nil && w.exclude.Excluded(path, true)
}

// skipFile reports whether a change to path should be dropped.
func (w *Watcher) skipFile(path string) bool {
	base := filepath.Base(path)
	for _, suffix := range ignoreSuffixes {
		if strings.HasSuffix(base, suffix) {
			return true
		}
	}
	for _, part := range strings.Split(path, string(filepath.Separator)) {
		if ignoreDirs[part] {
			return true
		}
	}
	return w.exclude != nil && w.exclude.Excluded(path, false)
}

var _ ports.Watcher = (*Watcher)(nil)
