// Package app wires the domain packages to their adapters. A Tagger performs
// one tag run over a set of paths; a Watch keeps the tag store current as
// files change.
package app

import (
	"fmt"
	"log/slog"

	"github.com/corey/ctags/internal/adapters/clock"
	"github.com/corey/ctags/internal/adapters/osfs"
	"github.com/corey/ctags/internal/domain/registry"
	"github.com/corey/ctags/internal/domain/shell"
	"github.com/corey/ctags/internal/ports"
)

// Config holds the collaborators of a Tagger. Zero fields get defaults.
type Config struct {
	FS      ports.FileSystem   // default: osfs
	Parsers *registry.Registry // default: DefaultRegistry
	Clock   ports.Clock        // default: monotonic process clock
	Log     *slog.Logger       // default: discard

	// ExcludeBase anchors exclude patterns (default: ".").
	ExcludeBase string
}

// DefaultRegistry returns the built-in parser table.
func DefaultRegistry() (*registry.Registry, error) {
	return registry.New(shell.Definition())
}

// Tagger runs tag extraction with a fixed set of collaborators.
type Tagger struct {
	fs          ports.FileSystem
	parsers     *registry.Registry
	clock       ports.Clock
	log         *slog.Logger
	excludeBase string
}

// New creates a Tagger with all dependencies wired.
func New(cfg Config) (*Tagger, error) {
	if cfg.FS == nil {
		cfg.FS = osfs.New()
	}
	if cfg.Parsers == nil {
		reg, err := DefaultRegistry()
		if err != nil {
			return nil, fmt.Errorf("parser registry: %w", err)
		}
		cfg.Parsers = reg
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.NewMonotonic()
	}
	if cfg.Log == nil {
		cfg.Log = slog.New(slog.DiscardHandler)
	}
	if cfg.ExcludeBase == "" {
		cfg.ExcludeBase = "."
	}
	return &Tagger{
		fs:          cfg.FS,
		parsers:     cfg.Parsers,
		clock:       cfg.Clock,
		log:         cfg.Log,
		excludeBase: cfg.ExcludeBase,
	}, nil
}

// Parsers returns the registry the Tagger dispatches through.
func (t *Tagger) Parsers() *registry.Registry { return t.parsers }
