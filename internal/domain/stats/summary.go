package stats

import (
	"fmt"
	"strings"

	"github.com/corey/ctags/internal/ports"
)

// Checkpoints index a run's clock samples.
const (
	SampleStart = iota
	SampleScanned
	SampleSorted
)

// Input is everything a summary needs.
type Input struct {
	Counts  Counts
	Samples [3]ports.Ticks

	Added  int  // tags added by this run
	Prior  int  // tags the sink held before the run (append mode)
	Append bool // report the combined total
	Sorted bool // a sort was performed between SampleScanned and SampleSorted
}

// Seconds converts the distance between two samples to seconds.
func Seconds(from, to ports.Ticks) float64 {
	return float64(to-from) / float64(ports.TicksPerSecond)
}

// Summarize formats the run summary, one statement per line:
//
//	3 files, 120 lines (4 kB) scanned in 0.2 seconds (20 kB/s)
//	7 tags added to tag file (now 19 tags)
//	19 tags sorted in 0.00 seconds
//
// The throughput figure is omitted when no time elapsed, and the sort line
// only appears when a sort was performed on a non-empty tag set.
func Summarize(in Input) string {
	var sb strings.Builder
	c := in.Counts

	fmt.Fprintf(&sb, "%d file%s, %d line%s (%d kB) scanned",
		c.Files, plural(c.Files), c.Lines, plural(c.Lines), c.Bytes/1024)

	interval := Seconds(in.Samples[SampleStart], in.Samples[SampleScanned])
	fmt.Fprintf(&sb, " in %.01f seconds", interval)
	if interval != 0 {
		fmt.Fprintf(&sb, " (%d kB/s)", int64(float64(c.Bytes)/interval)/1024)
	}
	sb.WriteByte('\n')

	total := in.Added + in.Prior
	fmt.Fprintf(&sb, "%d tag%s added to tag file", in.Added, plural(int64(in.Added)))
	if in.Append {
		fmt.Fprintf(&sb, " (now %d tags)", total)
	}
	sb.WriteByte('\n')

	if total > 0 && in.Sorted {
		fmt.Fprintf(&sb, "%d tag%s sorted in %.02f seconds\n",
			total, plural(int64(total)), Seconds(in.Samples[SampleScanned], in.Samples[SampleSorted]))
	}
	return sb.String()
}

func plural(n int64) string {
	if n == 1 {
		return ""
	}
	return "s"
}
