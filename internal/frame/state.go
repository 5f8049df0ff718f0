package frame

import "sync"

// Snapshot is a consistent copy of Params taken at the start of a frame.
type Snapshot struct {
	Params
	// Revision increases with every change to the shared state.
	Revision uint64
}

// State is the shared, mutable Params. Input handlers and loaders write to it
// between frames; the frame loop reads it once per frame via Snapshot.
type State struct {
	mu  sync.Mutex
	p   Params
	rev uint64
}

// NewState returns a State holding p at revision 1.
func NewState(p Params) *State {
	return &State{p: p, rev: 1}
}

// Snapshot returns a copy of the current parameters.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Params: s.p, Revision: s.rev}
}

// Update applies fn under the lock so related fields change together.
func (s *State) Update(fn func(p *Params)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.p)
	s.rev++
}

// Set replaces all parameters.
func (s *State) Set(p Params) {
	s.Update(func(dst *Params) { *dst = p })
}
