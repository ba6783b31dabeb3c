// Package registry resolves file names to language parser definitions.
// The table is built once at startup and is read-only afterwards.
package registry

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/corey/ctags/internal/ports"
)

var (
	ErrEmptyName       = errors.New("parser has no name")
	ErrDuplicateName   = errors.New("duplicate parser name")
	ErrNoScanFunc      = errors.New("parser has no scan function")
	ErrNoKinds         = errors.New("parser has no kinds")
	ErrUnknownLanguage = errors.New("unknown language")
)

// Registry is an immutable, ordered table of parser definitions.
// Safe for concurrent use.
type Registry struct {
	defs []ports.ParserDefinition
}

// New validates defs and builds a registry that preserves their order.
func New(defs ...ports.ParserDefinition) (*Registry, error) {
	seen := make(map[string]bool, len(defs))
	r := &Registry{defs: make([]ports.ParserDefinition, 0, len(defs))}

	for _, def := range defs {
		key := strings.ToLower(def.Name)
		switch {
		case def.Name == "":
			return nil, ErrEmptyName
		case seen[key]:
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, def.Name)
		case def.Scan == nil:
			return nil, fmt.Errorf("%w: %s", ErrNoScanFunc, def.Name)
		case len(def.Kinds) == 0:
			return nil, fmt.Errorf("%w: %s", ErrNoKinds, def.Name)
		}
		seen[key] = true

		// Private copies so later edits to the caller's slices can't leak in.
		def.Extensions = append([]string(nil), def.Extensions...)
		def.Kinds = append([]ports.KindOption(nil), def.Kinds...)
		r.defs = append(r.defs, def)
	}
	return r, nil
}

// Resolve returns the first registered parser whose extension list contains
// a case-sensitive suffix of fileName. Files without a match are not scanned.
func (r *Registry) Resolve(fileName string) (ports.ParserDefinition, bool) {
	base := filepath.Base(fileName)
	for _, def := range r.defs {
		for _, ext := range def.Extensions {
			if strings.HasSuffix(base, "."+ext) {
				return def, true
			}
		}
	}
	return ports.ParserDefinition{}, false
}

// Lookup finds a parser by name, ignoring case.
func (r *Registry) Lookup(name string) (ports.ParserDefinition, error) {
	for _, def := range r.defs {
		if strings.EqualFold(def.Name, name) {
			return def, nil
		}
	}
	return ports.ParserDefinition{}, fmt.Errorf("%w: %q", ErrUnknownLanguage, name)
}

// Parsers returns the table in registration order.
func (r *Registry) Parsers() []ports.ParserDefinition {
	return append([]ports.ParserDefinition(nil), r.defs...)
}
