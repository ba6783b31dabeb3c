// Package emit turns recognized symbols into tags and forwards them to the
// output sink.
package emit

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/corey/ctags/internal/ports"
)

// ErrKindOutOfRange reports a scan operation that named a kind its parser
// does not declare.
var ErrKindOutOfRange = errors.New("kind index out of range")

// Emitter forwards tags to a sink without merging or deduplicating them.
type Emitter struct {
	sink    ports.TagSink
	added   int
	longest int
}

// New creates an Emitter writing to sink.
func New(sink ports.TagSink) *Emitter {
	return &Emitter{sink: sink}
}

// Emit builds one tag and forwards it. Tags of disabled kinds and tags with
// an empty name are dropped silently. grew reports whether this tag is the
// longest record seen so far.
func (e *Emitter) Emit(name string, kind int, kinds []ports.KindOption, language, file string, line int) (grew bool, err error) {
	if kind < 0 || kind >= len(kinds) {
		return false, fmt.Errorf("%w: %s kind %d (have %d)", ErrKindOutOfRange, language, kind, len(kinds))
	}
	if name == "" || !kinds[kind].Enabled {
		return false, nil
	}

	tag := ports.Tag{
		Name:     name,
		Kind:     kind,
		File:     file,
		Line:     line,
		Language: language,
		KindInfo: kinds[kind],
	}
	if err := e.sink.Put(tag); err != nil {
		return false, fmt.Errorf("put tag %s: %w", name, err)
	}
	e.added++

	// name<TAB>file<TAB>line
	if n := len(name) + len(file) + len(strconv.Itoa(line)) + 2; n > e.longest {
		e.longest = n
		grew = true
	}
	return grew, nil
}

// Added is the number of tags forwarded so far.
func (e *Emitter) Added() int { return e.added }

// Longest is the length of the longest record forwarded so far.
func (e *Emitter) Longest() int { return e.longest }
