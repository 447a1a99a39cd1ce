package series

import (
	"errors"
	"fmt"

	"github.com/san-kum/fieldviz/internal/field"
)

// Loader produces the combined, masked field for one step. Both the
// range scan and the frame pass call through the same Loader, so every
// artifact sees one combinator and one mask.
type Loader func(step int) (field.Field, error)

// StepError adds step context to a failure while loading one step of a
// series. Unwrap exposes the cause, so errors.As still reaches the
// underlying taxonomy type.
type StepError struct {
	Step int
	Path string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("series: step %d: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// NewLoader returns a Loader over a single series: load the step's
// snapshot, then apply the shared mask.
func NewLoader(s Series, m field.Mask) Loader {
	return func(step int) (field.Field, error) {
		path := s.SnapshotPath(step)
		snap, err := field.Load(path)
		if err != nil {
			return field.Field{}, &StepError{Step: step, Path: path, Err: err}
		}
		masked, err := m.Apply(snap)
		if err != nil {
			var sme *field.ShapeMismatchError
			if errors.As(err, &sme) {
				sme.Path = path
			}
			return field.Field{}, &StepError{Step: step, Path: path, Err: err}
		}
		return masked, nil
	}
}

// NewDiffLoader returns a Loader over two series in difference mode:
// the masked elementwise squared difference (a-b)^2 of the two
// same-step snapshots.
func NewDiffLoader(a, b Series, m field.Mask) Loader {
	return func(step int) (field.Field, error) {
		pathA := a.SnapshotPath(step)
		fa, err := field.Load(pathA)
		if err != nil {
			return field.Field{}, &StepError{Step: step, Path: pathA, Err: err}
		}
		pathB := b.SnapshotPath(step)
		fb, err := field.Load(pathB)
		if err != nil {
			return field.Field{}, &StepError{Step: step, Path: pathB, Err: err}
		}
		diff, err := field.SquaredDiff(fa, fb)
		if err != nil {
			var sme *field.ShapeMismatchError
			if errors.As(err, &sme) {
				sme.Path = pathB
			}
			return field.Field{}, &StepError{Step: step, Path: pathB, Err: err}
		}
		masked, err := m.Apply(diff)
		if err != nil {
			var sme *field.ShapeMismatchError
			if errors.As(err, &sme) {
				sme.Path = pathA
			}
			return field.Field{}, &StepError{Step: step, Path: pathA, Err: err}
		}
		return masked, nil
	}
}
