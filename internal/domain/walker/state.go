package walker

import "github.com/corey/ctags/internal/ports"

// traversalState tracks the directory identities on the current recursion
// path. A directory whose identity is already on the path is reachable
// through a symbolic-link cycle.
type traversalState struct {
	recurse bool
	onPath  map[ports.Identity]struct{}
}

func newTraversalState(recurse bool) *traversalState {
	return &traversalState{
		recurse: recurse,
		onPath:  make(map[ports.Identity]struct{}),
	}
}

func (s *traversalState) visiting(id ports.Identity) bool {
	_, ok := s.onPath[id]
	return ok
}

func (s *traversalState) push(id ports.Identity) { s.onPath[id] = struct{}{} }

func (s *traversalState) pop(id ports.Identity) { delete(s.onPath, id) }
