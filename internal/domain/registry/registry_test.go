package registry

import (
	"testing"

	"github.com/corey/ctags/internal/domain/shell"
	"github.com/corey/ctags/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopScan(ports.LineReader, ports.EmitFunc) {}

func mockDef(name string, exts ...string) ports.ParserDefinition {
	return ports.ParserDefinition{
		Name:       name,
		Extensions: exts,
		Kinds:      []ports.KindOption{{Enabled: true, Letter: 'x', Name: "thing", Description: "things"}},
		Scan:       noopScan,
	}
}

func TestResolve(t *testing.T) {
	r, err := New(shell.Definition(), mockDef("Mock", "mock"))
	require.NoError(t, err)

	tests := []struct {
		file string
		want string
	}{
		{"run.sh", "Sh"},
		{"dir/build.bash", "Sh"},
		{"BUILD.SH", "Sh"},
		{"deep/path/x.mock", "Mock"},
		{"x.Sh", ""},   // case-sensitive
		{"x.MOCK", ""}, // case-sensitive
		{"configure", ""},
		{"sh", ""},
		{"archive.sh.bak", ""},
		{"dir.sh/readme", ""},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			def, ok := r.Resolve(tt.file)
			if tt.want == "" {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.want, def.Name)
		})
	}
}

func TestResolve_FirstRegisteredWins(t *testing.T) {
	r, err := New(mockDef("First", "x"), mockDef("Second", "x", "y"))
	require.NoError(t, err)

	def, ok := r.Resolve("a.x")
	require.True(t, ok)
	assert.Equal(t, "First", def.Name)

	def, ok = r.Resolve("a.y")
	require.True(t, ok)
	assert.Equal(t, "Second", def.Name)
}

func TestLookup(t *testing.T) {
	r, err := New(shell.Definition())
	require.NoError(t, err)

	def, err := r.Lookup("sh")
	require.NoError(t, err)
	assert.Equal(t, "Sh", def.Name)

	_, err = r.Lookup("cobol")
	assert.ErrorIs(t, err, ErrUnknownLanguage)
}

func TestNew_Validation(t *testing.T) {
	noKinds := mockDef("NoKinds", "nk")
	noKinds.Kinds = nil
	noScan := mockDef("NoScan", "ns")
	noScan.Scan = nil

	_, err := New(mockDef("", "x"))
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = New(mockDef("Dup", "a"), mockDef("dup", "b"))
	assert.ErrorIs(t, err, ErrDuplicateName)

	_, err = New(noKinds)
	assert.ErrorIs(t, err, ErrNoKinds)

	_, err = New(noScan)
	assert.ErrorIs(t, err, ErrNoScanFunc)
}

func TestRegistry_IsolatedFromCallerSlices(t *testing.T) {
	def := mockDef("Mock", "mock")
	r, err := New(def)
	require.NoError(t, err)

	def.Extensions[0] = "changed"
	_, ok := r.Resolve("a.mock")
	assert.True(t, ok)

	parsers := r.Parsers()
	parsers[0].Name = "Other"
	assert.Equal(t, "Mock", r.Parsers()[0].Name)
}
