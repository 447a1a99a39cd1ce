// Package frames turns a step list and loader into a lazy, forward-only
// sequence of renderable frames.
package frames

import "github.com/san-kum/fieldviz/internal/field"

// Frame is one masked, combined field ready for rendering.
type Frame struct {
	Step int
	Data field.Field
}

// Source iterates frames in step order, loading each step fresh on
// Next. It follows the bufio.Scanner protocol: Next advances, Frame
// returns the current element, Err reports what stopped a short
// iteration. A Source is single-use; restarting requires a new one.
type Source struct {
	steps []int
	load  func(step int) (field.Field, error)
	pos   int
	cur   Frame
	err   error
}

// New returns a Source over the given steps. Callers hand it the same
// loader the range scan used, so both passes see identical data.
func New(steps []int, load func(step int) (field.Field, error)) *Source {
	return &Source{steps: steps, load: load}
}

// Next loads the next frame, returning false when the sequence is
// exhausted or a step fails. After false, Err distinguishes the two.
func (s *Source) Next() bool {
	if s.err != nil || s.pos >= len(s.steps) {
		return false
	}
	step := s.steps[s.pos]
	f, err := s.load(step)
	if err != nil {
		s.err = err
		return false
	}
	s.pos++
	s.cur = Frame{Step: step, Data: f}
	return true
}

// Frame returns the element produced by the last successful Next.
func (s *Source) Frame() Frame {
	return s.cur
}

// Err returns the first error encountered, or nil after a clean run.
func (s *Source) Err() error {
	return s.err
}

// Len returns the total number of steps in the sequence.
func (s *Source) Len() int {
	return len(s.steps)
}
