package app

import (
	"fmt"
	"strings"

	"github.com/corey/ctags/internal/adapters/ignore"
	"github.com/corey/ctags/internal/domain/walker"
	"github.com/corey/ctags/internal/ports"
)

// Options are the policies of one run, built once and passed explicitly.
type Options struct {
	Recurse     bool
	Sorted      bool
	Append      bool
	FollowLinks bool

	// Exclude holds gitignore-style patterns. An entry "@file" is replaced
	// by the patterns listed in file.
	Exclude []string

	// ForceLanguage scans every file with the named parser.
	ForceLanguage string
}

// DefaultOptions mirrors the command-line defaults.
func DefaultOptions() Options {
	return Options{Sorted: true, FollowLinks: true}
}

// Validate resolves everything in opts that can fail, without touching
// the file system beyond exclude files.
func (t *Tagger) Validate(opts Options) error {
	_, err := t.walkOptions(opts)
	return err
}

// Excluder compiles the exclude patterns of opts. It returns nil when there
// are none.
func (t *Tagger) Excluder(opts Options) (ports.Excluder, error) {
	wo, err := t.walkOptions(opts)
	if err != nil {
		return nil, err
	}
	return wo.Exclude, nil
}

func (t *Tagger) walkOptions(opts Options) (walker.Options, error) {
	wo := walker.Options{
		Recurse:     opts.Recurse,
		FollowLinks: opts.FollowLinks,
	}

	if opts.ForceLanguage != "" {
		def, err := t.parsers.Lookup(opts.ForceLanguage)
		if err != nil {
			return wo, fmt.Errorf("--language-force: %w", err)
		}
		wo.Force = &def
	}

	patterns, err := expandExcludes(opts.Exclude)
	if err != nil {
		return wo, err
	}
	m, err := ignore.NewMatcher(t.excludeBase, patterns)
	if err != nil {
		return wo, err
	}
	if m != nil {
		wo.Exclude = m
	}
	return wo, nil
}

func expandExcludes(in []string) ([]string, error) {
	var out []string
	for _, p := range in {
		file, ok := strings.CutPrefix(p, "@")
		if !ok {
			out = append(out, p)
			continue
		}
		loaded, err := ignore.LoadPatterns(file)
		if err != nil {
			return nil, fmt.Errorf("exclude file %s: %w", file, err)
		}
		out = append(out, loaded...)
	}
	return out, nil
}
