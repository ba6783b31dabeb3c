// Package walker discovers input files under a path and tags each one with
// the parser its name resolves to. Traversal is depth-first and synchronous;
// directories reachable through a symbolic-link cycle are entered once.
package walker

import (
	"log/slog"
	"path/filepath"

	"github.com/corey/ctags/internal/domain/emit"
	"github.com/corey/ctags/internal/domain/lines"
	"github.com/corey/ctags/internal/domain/stats"
	"github.com/corey/ctags/internal/ports"
)

// Resolver maps a file name to its parser. *registry.Registry satisfies it.
type Resolver interface {
	Resolve(fileName string) (ports.ParserDefinition, bool)
}

// Options are the traversal policies of one run.
type Options struct {
	Recurse     bool
	FollowLinks bool

	// Force, when set, scans every regular file with this parser instead of
	// resolving by name.
	Force *ports.ParserDefinition

	// Exclude may be nil.
	Exclude ports.Excluder
}

// Walker tags files found under the paths it is given.
type Walker struct {
	fs      ports.FileSystem
	parsers Resolver
	emitter *emit.Emitter
	totals  *stats.Totals
	log     *slog.Logger
	opts    Options
}

// New creates a Walker. Advisories are logged at Info, recoverable failures
// at Warn; neither stops the walk.
func New(fs ports.FileSystem, parsers Resolver, emitter *emit.Emitter, totals *stats.Totals, log *slog.Logger, opts Options) *Walker {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Walker{
		fs:      fs,
		parsers: parsers,
		emitter: emitter,
		totals:  totals,
		log:     log,
		opts:    opts,
	}
}

// Walk tags path, recursing into directories when allowed. The result is
// advisory: true when some file produced a tag record longer than any
// emitted before it.
func (w *Walker) Walk(path string) bool {
	entry, err := w.fs.Describe(path)
	if err != nil {
		w.log.Warn("cannot open input", "path", path, "err", err)
		return false
	}
	return w.walkEntry(path, entry, newTraversalState(w.opts.Recurse))
}

func (w *Walker) walkEntry(path string, entry ports.DirEntry, st *traversalState) bool {
	if w.opts.Exclude != nil && w.opts.Exclude.Excluded(path, entry.IsDir) {
		w.advise(path, "exclude option")
		return false
	}
	if entry.IsSymlink && !w.opts.FollowLinks {
		w.advise(path, "symbolic link")
		return false
	}

	switch {
	case entry.IsDir:
		return w.walkDir(path, st)
	case entry.IsRegular:
		return w.tagFile(path)
	case entry.IsSymlink:
		w.log.Warn("cannot open input", "path", path, "err", "dangling symbolic link")
	default:
		w.advise(path, "not a regular file")
	}
	return false
}

func (w *Walker) walkDir(dir string, st *traversalState) bool {
	if !st.recurse {
		w.advise(dir, "directory")
		return false
	}

	id, err := w.fs.Identity(dir)
	if err != nil {
		w.log.Warn("cannot recurse into directory", "path", dir, "err", err)
		return false
	}
	if st.visiting(id) {
		w.advise(dir, "recursive link")
		return false
	}

	entries, err := w.fs.ReadDir(dir)
	if err != nil {
		if len(entries) == 0 {
			w.log.Warn("cannot recurse into directory", "path", dir, "err", err)
			return false
		}
		w.log.Warn("directory only partly read", "path", dir, "err", err)
	}

	w.log.Debug("recursing into directory", "path", dir)
	st.push(id)
	defer st.pop(id)

	resized := false
	for _, e := range entries {
		if e.Name == "." || e.Name == ".." {
			continue
		}
		if w.walkEntry(filepath.Join(dir, e.Name), e, st) {
			resized = true
		}
	}
	return resized
}

func (w *Walker) tagFile(path string) bool {
	def, ok := w.parserFor(path)
	if !ok {
		return false
	}

	f, err := w.fs.Open(path)
	if err != nil {
		w.log.Warn("cannot open input", "path", path, "err", err)
		return false
	}
	defer f.Close()

	sc := lines.NewScanner(path, f)
	resized := false
	def.Scan(sc, func(name string, kind int) {
		grew, err := w.emitter.Emit(name, kind, def.Kinds, def.Name, path, sc.LineNumber())
		if err != nil {
			w.log.Warn("dropped tag", "path", path, "line", sc.LineNumber(), "err", err)
			return
		}
		if grew {
			resized = true
		}
	})
	sc.Drain()

	if err := sc.Err(); err != nil {
		w.log.Warn("read error", "path", path, "line", sc.LineNumber(), "err", err)
	}
	w.totals.Add(1, sc.Lines(), sc.Bytes())
	return resized
}

func (w *Walker) parserFor(path string) (ports.ParserDefinition, bool) {
	if w.opts.Force != nil {
		return *w.opts.Force, true
	}
	return w.parsers.Resolve(path)
}

func (w *Walker) advise(path, reason string) {
	w.log.Info("ignoring", "path", path, "reason", reason)
}
