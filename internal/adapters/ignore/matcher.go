// Package ignore implements ports.Excluder with gitignore pattern syntax,
// using github.com/monochromegane/go-gitignore.
package ignore

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/monochromegane/go-gitignore"
)

// Matcher excludes paths matching any of its patterns. Patterns are anchored
// at base: "*.bak" excludes at any depth, "/build" only directly under base,
// "vendor/" only directories.
type Matcher struct {
	base string
	m    gitignore.IgnoreMatcher
}

// NewMatcher compiles patterns relative to base. Blank patterns are ignored.
// A nil *Matcher excludes nothing.
func NewMatcher(base string, patterns []string) (*Matcher, error) {
	var kept []string
	for _, p := range patterns {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return nil, nil
	}

	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("exclude base %s: %w", base, err)
	}
	m := gitignore.NewGitIgnoreFromReader(abs, strings.NewReader(strings.Join(kept, "\n")))
	return &Matcher{base: abs, m: m}, nil
}

// LoadPatterns reads one pattern per line from file, skipping blank lines
// and "#" comments. It backs "--exclude=@file".
func LoadPatterns(file string) ([]string, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, sc.Err()
}

// Excluded reports whether path matches. Paths outside base never match.
func (m *Matcher) Excluded(path string, isDir bool) bool {
	if m == nil {
		return false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(m.base, abs)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return false
	}
	return m.m.Match(abs, isDir)
}
