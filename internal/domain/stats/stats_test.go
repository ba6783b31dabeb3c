package stats

import (
	"strings"
	"sync"
	"testing"

	"github.com/corey/ctags/internal/ports"
	"github.com/stretchr/testify/assert"
)

func TestTotals_Add(t *testing.T) {
	var tot Totals
	tot.Add(1, 10, 100)
	tot.Add(1, 5, 50)
	assert.Equal(t, Counts{Files: 2, Lines: 15, Bytes: 150}, tot.Snapshot())
}

func TestTotals_ConcurrentAdd(t *testing.T) {
	var tot Totals
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tot.Add(1, 2, 3)
		}()
	}
	wg.Wait()
	assert.Equal(t, Counts{Files: 50, Lines: 100, Bytes: 150}, tot.Snapshot())
}

func TestSummarize_Full(t *testing.T) {
	ps := ports.TicksPerSecond
	out := Summarize(Input{
		Counts:  Counts{Files: 3, Lines: 120, Bytes: 40 * 1024},
		Samples: [3]ports.Ticks{0, 2 * ps, 2*ps + ps/4},
		Added:   7,
		Prior:   12,
		Append:  true,
		Sorted:  true,
	})

	assert.Equal(t,
		"3 files, 120 lines (40 kB) scanned in 2.0 seconds (20 kB/s)\n"+
			"7 tags added to tag file (now 19 tags)\n"+
			"19 tags sorted in 0.25 seconds\n",
		out)
}

func TestSummarize_ZeroElapsedHasNoThroughput(t *testing.T) {
	out := Summarize(Input{
		Counts:  Counts{Files: 1, Lines: 1, Bytes: 2048},
		Samples: [3]ports.Ticks{500, 500, 500},
		Added:   1,
	})

	first := strings.SplitN(out, "\n", 2)[0]
	assert.Equal(t, "1 file, 1 line (2 kB) scanned in 0.0 seconds", first)
	assert.NotContains(t, out, "kB/s")
	assert.Contains(t, out, "1 tag added to tag file\n")
}

func TestSummarize_SortLine(t *testing.T) {
	tests := []struct {
		name   string
		in     Input
		wantIn bool
	}{
		{"sorted with tags", Input{Added: 2, Sorted: true}, true},
		{"not sorted", Input{Added: 2}, false},
		{"sorted but empty", Input{Sorted: true}, false},
		{"sorted prior only", Input{Prior: 4, Append: true, Sorted: true}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Summarize(tt.in)
			assert.Equal(t, tt.wantIn, strings.Contains(out, "sorted in"))
		})
	}
}

func TestSummarize_NoAppendTotal(t *testing.T) {
	out := Summarize(Input{Added: 5, Prior: 9})
	assert.NotContains(t, out, "now")
}

func TestSeconds(t *testing.T) {
	assert.InDelta(t, 1.5, Seconds(ports.TicksPerSecond, ports.TicksPerSecond*5/2), 1e-9)
	assert.Zero(t, Seconds(7, 7))
}
