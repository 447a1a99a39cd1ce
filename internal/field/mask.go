package field

import (
	"fmt"
	"math"
)

// Mask marks which grid points belong to the domain of interest. It is
// derived once per dataset and shared by every pass over a series, so
// all frames of one artifact see identical validity.
type Mask struct {
	Nx, Ny int
	on     []bool
}

// DeriveMask builds the validity mask from grid metadata: a point is
// inside the domain iff its metadata value is positive. The solver
// writes region codes (0 exterior, 1 interior, 2+ boundary kinds); the
// predicate is strictly value > 0 with no special cases.
func DeriveMask(meta Field) Mask {
	m := Mask{Nx: meta.Nx, Ny: meta.Ny, on: make([]bool, meta.Nx*meta.Ny)}
	for idx, v := range meta.data {
		m.on[idx] = v > 0
	}
	return m
}

// In reports whether (i, j) is inside the domain.
func (m Mask) In(i, j int) bool {
	if i < 0 || i >= m.Nx || j < 0 || j >= m.Ny {
		panic(fmt.Sprintf("field: mask index (%d,%d) outside %dx%d grid", i, j, m.Nx, m.Ny))
	}
	return m.on[i*m.Ny+j]
}

// Count returns the number of points inside the domain.
func (m Mask) Count() int {
	n := 0
	for _, on := range m.on {
		if on {
			n++
		}
	}
	return n
}

// Exclude removes the given (i, j) cells from the domain. Callers use
// this for known singular cells; points are never excluded implicitly.
// An out-of-bounds point is an error, not a no-op.
func (m Mask) Exclude(points ...[2]int) error {
	for _, p := range points {
		i, j := p[0], p[1]
		if i < 0 || i >= m.Nx || j < 0 || j >= m.Ny {
			return fmt.Errorf("field: exclude point (%d,%d) outside %dx%d grid", i, j, m.Nx, m.Ny)
		}
		m.on[i*m.Ny+j] = false
	}
	return nil
}

// Apply returns a copy of f where every point outside the mask is
// replaced by the NaN no-data sentinel and every point inside passes
// through unchanged. Returns *ShapeMismatchError when f and the mask
// disagree in dimensions.
func (m Mask) Apply(f Field) (Field, error) {
	if f.Nx != m.Nx || f.Ny != m.Ny {
		return Field{}, &ShapeMismatchError{
			Nx: f.Nx, Ny: f.Ny,
			WantNx: m.Nx, WantNy: m.Ny,
		}
	}
	out := Field{Nx: f.Nx, Ny: f.Ny, data: make([]float64, len(f.data))}
	for idx, v := range f.data {
		if m.on[idx] {
			out.data[idx] = v
		} else {
			out.data[idx] = math.NaN()
		}
	}
	return out, nil
}
