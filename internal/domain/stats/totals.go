// Package stats accumulates per-file counts for a run and formats the
// end-of-run summary.
package stats

import "sync"

// Counts is a snapshot of Totals.
type Counts struct {
	Files int64
	Lines int64
	Bytes int64
}

// Totals accumulates files, lines and bytes scanned. Updates are additive
// and serialized, so a watch loop and a run may share one Totals.
type Totals struct {
	mu sync.Mutex
	c  Counts
}

// Add records one finished file, or several when files > 1.
func (t *Totals) Add(files, lines, bytes int64) {
	t.mu.Lock()
	t.c.Files += files
	t.c.Lines += lines
	t.c.Bytes += bytes
	t.mu.Unlock()
}

// Snapshot returns the current counts.
func (t *Totals) Snapshot() Counts {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.c
}
