package field

import (
	"fmt"
	"math"
)

// Field is a dense nx-by-ny grid of scalar values. Row index i is the
// x index, column index j the y index. The zero value is an empty field.
type Field struct {
	Nx, Ny int
	data   []float64
}

// New returns a zero-filled field of the given dimensions.
func New(nx, ny int) Field {
	if nx < 0 || ny < 0 {
		panic(fmt.Sprintf("field: negative dimensions %dx%d", nx, ny))
	}
	return Field{Nx: nx, Ny: ny, data: make([]float64, nx*ny)}
}

func (f Field) index(i, j int) int {
	if i < 0 || i >= f.Nx || j < 0 || j >= f.Ny {
		panic(fmt.Sprintf("field: index (%d,%d) outside %dx%d grid", i, j, f.Nx, f.Ny))
	}
	return i*f.Ny + j
}

// At returns the value at (i, j).
func (f Field) At(i, j int) float64 {
	return f.data[f.index(i, j)]
}

// Set stores v at (i, j).
func (f Field) Set(i, j int, v float64) {
	f.data[f.index(i, j)] = v
}

// Clone returns a copy of f with independent backing storage.
func (f Field) Clone() Field {
	c := Field{Nx: f.Nx, Ny: f.Ny, data: make([]float64, len(f.data))}
	copy(c.data, f.data)
	return c
}

// SameShape reports whether f and g have identical dimensions.
func (f Field) SameShape(g Field) bool {
	return f.Nx == g.Nx && f.Ny == g.Ny
}

// Valid returns the non-NaN values of f in row-major order. Masked
// fields use NaN as the no-data sentinel, so this is the set a range
// scan folds over.
func (f Field) Valid() []float64 {
	vals := make([]float64, 0, len(f.data))
	for _, v := range f.data {
		if !math.IsNaN(v) {
			vals = append(vals, v)
		}
	}
	return vals
}

// SquaredDiff returns the elementwise squared difference (a-b)^2 of two
// same-shaped fields. The result is symmetric in a and b. Returns
// *ShapeMismatchError when shapes disagree.
func SquaredDiff(a, b Field) (Field, error) {
	if !a.SameShape(b) {
		return Field{}, &ShapeMismatchError{
			Nx: b.Nx, Ny: b.Ny,
			WantNx: a.Nx, WantNy: a.Ny,
		}
	}
	out := Field{Nx: a.Nx, Ny: a.Ny, data: make([]float64, len(a.data))}
	for idx := range a.data {
		d := a.data[idx] - b.data[idx]
		out.data[idx] = d * d
	}
	return out, nil
}
