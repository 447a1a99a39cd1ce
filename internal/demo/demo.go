// Package demo writes a small synthetic dataset in the same on-disk
// layout the solvers produce, so the pipeline can be tried end to end
// without any solver output.
package demo

import (
	"math"
	"os"

	"github.com/san-kum/fieldviz/internal/field"
	"github.com/san-kum/fieldviz/internal/series"
)

const (
	defaultNx = 41
	defaultNy = 81

	diskRadius = 0.95
	ringWidth  = 0.12
)

// Options shape the generated dataset. Zero values pick defaults.
type Options struct {
	Dir   string
	Nx    int
	Ny    int
	Steps []int
	Noise float64 // amplitude of the "solution" series' drift
}

// Generate writes grid metadata plus an "exact" and a "solution"
// snapshot series into the directory, and returns the steps it wrote.
// The two series differ by a slowly growing drift, so difference mode
// has something to show.
func Generate(opts Options) ([]int, error) {
	if opts.Nx <= 0 {
		opts.Nx = defaultNx
	}
	if opts.Ny <= 0 {
		opts.Ny = defaultNy
	}
	if opts.Noise == 0 {
		opts.Noise = 0.02
	}
	if len(opts.Steps) == 0 {
		var err error
		opts.Steps, err = series.Steps(20, 400, 20)
		if err != nil {
			return nil, err
		}
	}
	if err := series.CheckSteps(opts.Steps); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, err
	}

	meta := field.New(opts.Nx, opts.Ny)
	for i := 0; i < opts.Nx; i++ {
		for j := 0; j < opts.Ny; j++ {
			meta.Set(i, j, regionCode(coord(i, opts.Nx, 0, 2), coord(j, opts.Ny, -2, 2)))
		}
	}
	if err := field.Save(series.GridPath(opts.Dir), meta); err != nil {
		return nil, err
	}

	exact := series.Series{Dir: opts.Dir, Prefix: "exact"}
	numeric := series.Series{Dir: opts.Dir, Prefix: "solution"}
	maxStep := opts.Steps[len(opts.Steps)-1]
	for _, step := range opts.Steps {
		frac := float64(step) / float64(maxStep)
		fe := field.New(opts.Nx, opts.Ny)
		fn := field.New(opts.Nx, opts.Ny)
		for i := 0; i < opts.Nx; i++ {
			for j := 0; j < opts.Ny; j++ {
				x := coord(i, opts.Nx, 0, 2)
				y := coord(j, opts.Ny, -2, 2)
				if regionCode(x, y) <= 0 {
					continue
				}
				u := pulse(x, y, frac)
				fe.Set(i, j, u)
				fn.Set(i, j, u+opts.Noise*frac*drift(x, y))
			}
		}
		if err := field.Save(exact.SnapshotPath(step), fe); err != nil {
			return nil, err
		}
		if err := field.Save(numeric.SnapshotPath(step), fn); err != nil {
			return nil, err
		}
	}
	return opts.Steps, nil
}

// coord maps grid index i in [0, n) onto [lo, hi].
func coord(i, n int, lo, hi float64) float64 {
	if n == 1 {
		return lo
	}
	return lo + (hi-lo)*float64(i)/float64(n-1)
}

// regionCode mirrors the solver metadata convention: 1 inside the
// disk, 2 on the boundary ring, 0 outside.
func regionCode(x, y float64) float64 {
	r := math.Hypot(x-1, y)
	switch {
	case r < diskRadius:
		return 1
	case r < diskRadius+ringWidth:
		return 2
	default:
		return 0
	}
}

// pulse is a decaying, sign-flipping bump centered on the domain.
func pulse(x, y, frac float64) float64 {
	r2 := (x-1)*(x-1) + y*y
	return math.Exp(-2*frac) * math.Cos(2*math.Pi*frac) * math.Exp(-r2/0.25)
}

// drift imitates discretization error accumulating over time.
func drift(x, y float64) float64 {
	return math.Sin(4*math.Pi*x) * math.Sin(2*math.Pi*y)
}
