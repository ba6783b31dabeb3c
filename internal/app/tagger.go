package app

import (
	"context"
	"fmt"

	"github.com/corey/ctags/internal/domain/emit"
	"github.com/corey/ctags/internal/domain/stats"
	"github.com/corey/ctags/internal/domain/walker"
	"github.com/corey/ctags/internal/ports"
)

// Report describes a finished run.
type Report struct {
	Counts  stats.Counts
	Samples [3]ports.Ticks
	Added   int
	Prior   int
	Append  bool
	Sorted  bool

	// Resized is set when some file raised the longest tag record.
	Resized bool
}

// Summary formats the run statistics.
func (r *Report) Summary() string {
	return stats.Summarize(stats.Input{
		Counts:  r.Counts,
		Samples: r.Samples,
		Added:   r.Added,
		Prior:   r.Prior,
		Append:  r.Append,
		Sorted:  r.Sorted,
	})
}

// Run tags every path into sink and closes it. Options are checked before
// the sink is used; when they are invalid the sink is neither written nor
// closed.
//
// Cancellation is observed between paths only. A cancelled run skips the
// sort, still closes the sink and returns the partial report with ctx.Err().
func (t *Tagger) Run(ctx context.Context, sink ports.TagSink, paths []string, opts Options) (*Report, error) {
	wo, err := t.walkOptions(opts)
	if err != nil {
		return nil, err
	}

	var totals stats.Totals
	emitter := emit.New(sink)
	w := walker.New(t.fs, t.parsers, emitter, &totals, t.log, wo)

	rep := &Report{Append: opts.Append}
	if pc, ok := sink.(ports.PriorCounter); ok && opts.Append {
		rep.Prior = pc.Prior()
	}

	rep.Samples[stats.SampleStart] = t.clock.Now()
	var runErr error
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}
		if w.Walk(p) {
			rep.Resized = true
		}
	}
	rep.Samples[stats.SampleScanned] = t.clock.Now()

	if runErr == nil && opts.Sorted {
		if s, ok := sink.(ports.Sorter); ok {
			if err := s.Sort(); err != nil {
				runErr = fmt.Errorf("sort tags: %w", err)
			} else {
				rep.Sorted = true
			}
		}
	}
	rep.Samples[stats.SampleSorted] = t.clock.Now()

	if err := sink.Close(); err != nil && runErr == nil {
		runErr = fmt.Errorf("close tag sink: %w", err)
	}

	rep.Counts = totals.Snapshot()
	rep.Added = emitter.Added()
	return rep, runErr
}
