package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/corey/ctags/internal/adapters/bbolt"
	"github.com/corey/ctags/internal/adapters/clock"
	"github.com/corey/ctags/internal/adapters/tagfile"
	"github.com/corey/ctags/internal/domain/registry"
	"github.com/corey/ctags/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree creates files relative to dir.
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, body := range files {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0644))
	}
}

func newTestTagger(t *testing.T, clk ports.Clock) *Tagger {
	t.Helper()
	tg, err := New(Config{Clock: clk})
	require.NoError(t, err)
	return tg
}

func recordLines(buf *bytes.Buffer) []string {
	out := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(out) == 1 && out[0] == "" {
		return nil
	}
	return out
}

var sampleTree = map[string]string{
	"build.sh":        "setup() {\n  :\n}\nfunction deploy {\n}\n",
	"lib/util.bash":   "# helpers\nlog () {\n}\n",
	"lib/notes.txt":   "not_a_tag() {\n",
	"scripts/run.zsh": "main() {\n}\n",
}

func TestRun_RecursiveTree(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, sampleTree)
	t.Chdir(dir)

	var buf bytes.Buffer
	tg := newTestTagger(t, &clock.Manual{Step: time.Second})
	opts := DefaultOptions()
	opts.Recurse = true

	rep, err := tg.Run(context.Background(), tagfile.NewWriter(&buf), []string{"."}, opts)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"deploy\tbuild.sh\t4;\"\tf",
		"log\tlib/util.bash\t2;\"\tf",
		"main\tscripts/run.zsh\t1;\"\tf",
		"setup\tbuild.sh\t1;\"\tf",
	}, recordLines(&buf))

	assert.Equal(t, int64(3), rep.Counts.Files, "notes.txt has no parser and is not counted")
	assert.Equal(t, int64(5+3+2), rep.Counts.Lines)
	wantBytes := len(sampleTree["build.sh"]) + len(sampleTree["lib/util.bash"]) + len(sampleTree["scripts/run.zsh"])
	assert.Equal(t, int64(wantBytes), rep.Counts.Bytes)
	assert.Equal(t, 4, rep.Added)
	assert.True(t, rep.Sorted)
	assert.True(t, rep.Resized)
}

func TestRun_WithoutRecurseSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, sampleTree)
	t.Chdir(dir)

	var buf bytes.Buffer
	tg := newTestTagger(t, &clock.Manual{Step: time.Second})
	rep, err := tg.Run(context.Background(), tagfile.NewWriter(&buf), []string{"build.sh", "lib"}, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, int64(1), rep.Counts.Files)
	assert.Len(t, recordLines(&buf), 2)
}

func TestRun_SymlinkCycleTerminates(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a/one.sh":   "one() {\n}\n",
		"a/b/two.sh": "two() {\n}\n",
	})
	require.NoError(t, os.Symlink("..", filepath.Join(dir, "a", "b", "up")))
	require.NoError(t, os.Symlink(".", filepath.Join(dir, "a", "self")))
	t.Chdir(dir)

	var buf bytes.Buffer
	tg := newTestTagger(t, &clock.Manual{Step: time.Second})
	opts := DefaultOptions()
	opts.Recurse = true
	rep, err := tg.Run(context.Background(), tagfile.NewWriter(&buf), []string{"a"}, opts)
	require.NoError(t, err)

	assert.Equal(t, int64(2), rep.Counts.Files)
	assert.Equal(t, []string{
		"one\ta/one.sh\t1;\"\tf",
		"two\ta/b/two.sh\t1;\"\tf",
	}, recordLines(&buf))
}

func TestRun_RepeatIsIdentical(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, sampleTree)
	t.Chdir(dir)

	tg := newTestTagger(t, &clock.Manual{})
	opts := DefaultOptions()
	opts.Recurse = true

	var first, second bytes.Buffer
	rep1, err := tg.Run(context.Background(), tagfile.NewWriter(&first), []string{"."}, opts)
	require.NoError(t, err)
	rep2, err := tg.Run(context.Background(), tagfile.NewWriter(&second), []string{"."}, opts)
	require.NoError(t, err)

	assert.Equal(t, first.String(), second.String())
	assert.Equal(t, rep1.Counts, rep2.Counts)
	assert.Equal(t, rep1.Summary(), rep2.Summary())
}

func TestRun_UnsortedKeepsWalkOrderPerFile(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"x.sh": "zeta() {\n}\nalpha() {\n}\n"})
	t.Chdir(dir)

	var buf bytes.Buffer
	tg := newTestTagger(t, &clock.Manual{Step: time.Second})
	opts := DefaultOptions()
	opts.Sorted = false
	rep, err := tg.Run(context.Background(), tagfile.NewWriter(&buf), []string{"x.sh"}, opts)
	require.NoError(t, err)

	assert.False(t, rep.Sorted)
	assert.Equal(t, []string{"zeta\tx.sh\t1;\"\tf", "alpha\tx.sh\t3;\"\tf"}, recordLines(&buf))
	assert.NotContains(t, rep.Summary(), "sorted")
}

func TestRun_SummaryThroughput(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"x.sh": "f() {\n}\n"})
	t.Chdir(dir)

	var buf bytes.Buffer
	rep, err := newTestTagger(t, &clock.Manual{Step: time.Second}).Run(context.Background(), tagfile.NewWriter(&buf), []string{"x.sh"}, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t,
		"1 file, 2 lines (0 kB) scanned in 1.0 seconds (0 kB/s)\n"+
			"1 tag added to tag file\n"+
			"1 tag sorted in 1.00 seconds\n",
		rep.Summary())

	buf.Reset()
	rep, err = newTestTagger(t, &clock.Manual{}).Run(context.Background(), tagfile.NewWriter(&buf), []string{"x.sh"}, DefaultOptions())
	require.NoError(t, err)
	assert.NotContains(t, rep.Summary(), "kB/s", "no throughput when no time elapsed")
}

func TestRun_AppendReportsCombinedTotal(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"x.sh": "f() {\n}\n"})
	tags := filepath.Join(dir, "tags")
	require.NoError(t, os.WriteFile(tags, []byte("old\ty.sh\t1;\"\tf\n"), 0644))
	t.Chdir(dir)

	w, err := tagfile.Open(tags, true)
	require.NoError(t, err)
	opts := DefaultOptions()
	opts.Append = true
	rep, err := newTestTagger(t, &clock.Manual{}).Run(context.Background(), w, []string{"x.sh"}, opts)
	require.NoError(t, err)

	assert.Equal(t, 1, rep.Prior)
	assert.Contains(t, rep.Summary(), "1 tag added to tag file (now 2 tags)")
	assert.Contains(t, rep.Summary(), "2 tags sorted")

	data, err := os.ReadFile(tags)
	require.NoError(t, err)
	assert.Equal(t, "f\tx.sh\t1;\"\tf\nold\ty.sh\t1;\"\tf\n", string(data))
}

func TestRun_ExcludePatterns(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, sampleTree)
	writeTree(t, dir, map[string]string{"exclude.lst": "# skip these\nscripts/\n"})
	t.Chdir(dir)

	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Recurse = true
	opts.Exclude = []string{"*.bash", "@exclude.lst"}
	rep, err := newTestTagger(t, &clock.Manual{}).Run(context.Background(), tagfile.NewWriter(&buf), []string{"."}, opts)
	require.NoError(t, err)

	assert.Equal(t, int64(1), rep.Counts.Files)
	assert.Equal(t, []string{"deploy\tbuild.sh\t4;\"\tf", "setup\tbuild.sh\t1;\"\tf"}, recordLines(&buf))
}

func TestRun_ForceLanguage(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"configure": "main() {\n}\nhelper() {\n}\n"})
	t.Chdir(dir)

	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.ForceLanguage = "sh"
	rep, err := newTestTagger(t, &clock.Manual{}).Run(context.Background(), tagfile.NewWriter(&buf), []string{"configure"}, opts)
	require.NoError(t, err)

	assert.Equal(t, int64(1), rep.Counts.Files)
	assert.Equal(t, []string{"helper\tconfigure\t3;\"\tf"}, recordLines(&buf), "main is suppressed in configure scripts")
}

func TestRun_InvalidOptionsLeaveSinkAlone(t *testing.T) {
	tg := newTestTagger(t, &clock.Manual{})
	sink := &recordingSink{}

	opts := DefaultOptions()
	opts.ForceLanguage = "cobol"
	_, err := tg.Run(context.Background(), sink, []string{"."}, opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, registry.ErrUnknownLanguage)
	assert.False(t, sink.closed)

	opts = DefaultOptions()
	opts.Exclude = []string{"@" + filepath.Join(t.TempDir(), "missing.lst")}
	assert.Error(t, tg.Validate(opts))
}

func TestRun_CancelledBeforeWalking(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, sampleTree)
	t.Chdir(dir)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sink := &recordingSink{}
	rep, err := newTestTagger(t, &clock.Manual{}).Run(ctx, sink, []string{"build.sh"}, DefaultOptions())
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, rep)
	assert.Equal(t, int64(0), rep.Counts.Files)
	assert.False(t, sink.sorted)
	assert.True(t, sink.closed)
}

func TestRun_IntoTagStore(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, sampleTree)
	t.Chdir(dir)

	store, err := bbolt.NewStore(filepath.Join(t.TempDir(), "tags.db"))
	require.NoError(t, err)
	defer store.Close()

	sink, err := store.NewSink(false)
	require.NoError(t, err)
	opts := DefaultOptions()
	opts.Recurse = true
	rep, err := newTestTagger(t, &clock.Manual{}).Run(context.Background(), sink, []string{"."}, opts)
	require.NoError(t, err)
	assert.False(t, rep.Sorted, "the store is not a Sorter")
	assert.Equal(t, 4, rep.Added)

	files, err := store.Files()
	require.NoError(t, err)
	sort.Strings(files)
	assert.Equal(t, []string{"build.sh", "lib/util.bash", "scripts/run.zsh"}, files)

	got, err := store.Find("deploy")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 4, got[0].Line)
}

// recordingSink records calls for assertions.
type recordingSink struct {
	tags   []ports.Tag
	sorted bool
	closed bool
}

func (s *recordingSink) Put(tag ports.Tag) error {
	s.tags = append(s.tags, tag)
	return nil
}

func (s *recordingSink) Sort() error {
	s.sorted = true
	return nil
}

func (s *recordingSink) Close() error {
	s.closed = true
	return nil
}
