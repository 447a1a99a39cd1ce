// Package scan computes the fixed global value range an artifact's
// color scale is built from, plus per-step summary statistics.
//
// The scan is the first of the pipeline's two passes: it must complete
// before any frame is rendered, because every frame shares the color
// scale the scan fixes.
package scan

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/fieldviz/internal/field"
)

// Range is the global (min, max) over every valid point of every step
// of one artifact. Once computed it never changes mid-render.
type Range struct {
	Min, Max float64
}

func (r Range) String() string {
	return fmt.Sprintf("[%.6g, %.6g]", r.Min, r.Max)
}

// EmptyMaskError reports a step whose valid-value set is empty. A range
// cannot be derived from zero points, so the scan aborts instead of
// returning an infinite or NaN pair.
type EmptyMaskError struct {
	Step int
}

func (e *EmptyMaskError) Error() string {
	return fmt.Sprintf("scan: step %d: mask selects zero points", e.Step)
}

// Scan streams once over the step list, folding each step's local
// min/max into a single global range. The fold is commutative and
// associative, so the result does not depend on traversal order. Any
// missing or malformed step aborts the scan; steps are never skipped or
// interpolated.
func Scan(steps []int, load func(step int) (field.Field, error)) (Range, error) {
	if len(steps) == 0 {
		return Range{}, errors.New("scan: empty step list")
	}
	r := Range{Min: math.Inf(1), Max: math.Inf(-1)}
	for _, step := range steps {
		f, err := load(step)
		if err != nil {
			return Range{}, err
		}
		vals := f.Valid()
		if len(vals) == 0 {
			return Range{}, &EmptyMaskError{Step: step}
		}
		r.Min = math.Min(r.Min, floats.Min(vals))
		r.Max = math.Max(r.Max, floats.Max(vals))
	}
	return r, nil
}

// StepStats summarizes the valid values of one step.
type StepStats struct {
	Step   int
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
	Count  int
}

// Profile runs the same streaming pass as Scan but records per-step
// statistics for diagnostics and reports. Error contract matches Scan.
func Profile(steps []int, load func(step int) (field.Field, error)) ([]StepStats, error) {
	if len(steps) == 0 {
		return nil, errors.New("scan: empty step list")
	}
	out := make([]StepStats, 0, len(steps))
	for _, step := range steps {
		f, err := load(step)
		if err != nil {
			return nil, err
		}
		vals := f.Valid()
		if len(vals) == 0 {
			return nil, &EmptyMaskError{Step: step}
		}
		st := StepStats{
			Step:  step,
			Min:   floats.Min(vals),
			Max:   floats.Max(vals),
			Mean:  stat.Mean(vals, nil),
			Count: len(vals),
		}
		if len(vals) > 1 {
			st.StdDev = stat.StdDev(vals, nil)
		}
		out = append(out, st)
	}
	return out, nil
}
