package visual

import (
	"fmt"
	"sync"
)

// View is a read-only sample of a State. Values and Highlights are copies.
type View struct {
	Label      string
	Values     []int
	Highlights Highlights
	Complete   bool
	Err        error
	Generation uint64
	Publishes  uint64
}

// Failed reports whether the slot finished with a worker fault.
func (v View) Failed() bool { return v.Err != nil }

// State is the visualization record of one roster slot.
type State struct {
	label string

	mu         sync.RWMutex
	generation uint64
	values     []int
	highlights Highlights
	complete   bool
	err        error
	publishes  uint64
}

func NewState(label string) *State {
	return &State{
		label:      label,
		values:     []int{},
		highlights: Highlights{},
	}
}

func (s *State) Label() string { return s.label }

// Reset moves the slot to generation gen with a copy of values, no highlights
// and complete=false. Writers bound to older generations become stale.
func (s *State) Reset(gen uint64, values []int) {
	v := make([]int, len(values))
	copy(v, values)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation = gen
	s.values = v
	s.highlights = Highlights{}
	s.complete = false
	s.err = nil
	s.publishes = 0
}

// Generation returns the generation the slot was last reset to.
func (s *State) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// Snapshot copies the current record for rendering.
func (s *State) Snapshot() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v := make([]int, len(s.values))
	copy(v, s.values)
	return View{
		Label:      s.label,
		Values:     v,
		Highlights: s.highlights.clone(),
		Complete:   s.complete,
		Err:        s.err,
		Generation: s.generation,
		Publishes:  s.publishes,
	}
}

// Writer returns a handle that only applies writes while the slot is still on gen.
func (s *State) Writer(gen uint64) *Writer {
	return &Writer{state: s, gen: gen}
}

// Writer publishes into a State on behalf of one worker generation.
type Writer struct {
	state *State
	gen   uint64
}

func (w *Writer) Generation() uint64 { return w.gen }

// Publish replaces values and highlights as one visual step. values is copied.
func (w *Writer) Publish(values []int, highlights Highlights) error {
	for idx := range highlights {
		if idx < 0 || idx >= len(values) {
			return fmt.Errorf("%w: %d not in [0,%d)", ErrHighlightRange, idx, len(values))
		}
	}
	v := make([]int, len(values))
	copy(v, values)
	h := highlights.clone()

	s := w.state
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != w.gen {
		return ErrStale
	}
	if s.complete {
		return nil
	}
	s.values = v
	s.highlights = h
	s.publishes++
	return nil
}

// MarkComplete sets complete and clears highlights.
func (w *Writer) MarkComplete() error {
	s := w.state
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != w.gen {
		return ErrStale
	}
	s.complete = true
	s.highlights = Highlights{}
	return nil
}

// MarkFailed completes the slot with err and flags every position with ColorError.
func (w *Writer) MarkFailed(err error) error {
	s := w.state
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != w.gen {
		return ErrStale
	}
	h := make(Highlights, len(s.values))
	for i := range s.values {
		h[i] = ColorError
	}
	s.highlights = h
	s.complete = true
	s.err = err
	return nil
}
