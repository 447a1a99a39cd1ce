// Package pipeline runs a visualization job end to end.
//
// A run follows a fixed order: derive the domain mask from the grid
// metadata once, scan every requested step for the global value range,
// then stream the same steps a second time into the encoder. The two
// passes share one loader, so they see identical masked data, and the
// encoder never starts before the range is known.
package pipeline

import (
	"github.com/san-kum/fieldviz/internal/anim"
	"github.com/san-kum/fieldviz/internal/config"
	"github.com/san-kum/fieldviz/internal/field"
	"github.com/san-kum/fieldviz/internal/frames"
	"github.com/san-kum/fieldviz/internal/render"
	"github.com/san-kum/fieldviz/internal/scan"
	"github.com/san-kum/fieldviz/internal/series"
)

// Result summarizes a completed run.
type Result struct {
	Steps  []int
	Range  scan.Range
	Active int // grid points inside the domain after exclusions
	Output string
}

// Progress receives run milestones. Any field may be nil.
type Progress struct {
	OnRange func(r scan.Range)
	OnFrame func(done, total, step int)
}

// Run is a prepared job: mask derived, steps resolved, loader built.
type Run struct {
	job   *config.Job
	steps []int
	mask  field.Mask
	load  series.Loader
}

// New validates the job, loads the grid metadata, and builds the
// loader both passes will share. Jobs with an output extension no
// encoder supports are rejected here, before any snapshot is read.
func New(job *config.Job) (*Run, error) {
	if err := job.Validate(); err != nil {
		return nil, err
	}
	if err := anim.CheckFormat(job.Output); err != nil {
		return nil, err
	}
	steps, err := job.Steps.Resolve()
	if err != nil {
		return nil, err
	}

	meta, err := field.Load(series.GridPath(job.DataDir))
	if err != nil {
		return nil, err
	}
	mask := field.DeriveMask(meta)
	if err := mask.Exclude(job.Exclude...); err != nil {
		return nil, err
	}

	main := series.Series{Dir: job.DataDir, Prefix: job.Prefix}
	var load series.Loader
	if job.Mode == config.ModeDifference {
		ref := series.Series{Dir: job.DataDir, Prefix: job.RefPrefix}
		load = series.NewDiffLoader(main, ref, mask)
	} else {
		load = series.NewLoader(main, mask)
	}
	return &Run{job: job, steps: steps, mask: mask, load: load}, nil
}

// Steps returns the resolved step list.
func (r *Run) Steps() []int {
	return r.steps
}

// Active returns the number of grid points the mask keeps.
func (r *Run) Active() int {
	return r.mask.Count()
}

// Loader exposes the run's combined loader for interactive consumers.
func (r *Run) Loader() series.Loader {
	return r.load
}

// ScanRange streams every step once and folds the global value range.
func (r *Run) ScanRange() (scan.Range, error) {
	return scan.Scan(r.steps, r.load)
}

// Stats streams every step once and profiles it.
func (r *Run) Stats() ([]scan.StepStats, error) {
	return scan.Profile(r.steps, r.load)
}

// Animate performs both passes and writes the job's artifact.
func (r *Run) Animate(p Progress) (*Result, error) {
	rng, err := r.ScanRange()
	if err != nil {
		return nil, err
	}
	if p.OnRange != nil {
		p.OnRange(rng)
	}
	return r.encode(r.job.Output, r.steps, rng, p)
}

// RenderStep writes a single-step still. The color scale spans just
// that step, the way a one-off figure is usually read.
func (r *Run) RenderStep(step int, output string, p Progress) (*Result, error) {
	if err := anim.CheckFormat(output); err != nil {
		return nil, err
	}
	steps := []int{step}
	rng, err := scan.Scan(steps, r.load)
	if err != nil {
		return nil, err
	}
	if p.OnRange != nil {
		p.OnRange(rng)
	}
	return r.encode(output, steps, rng, p)
}

func (r *Run) encode(output string, steps []int, rng scan.Range, p Progress) (*Result, error) {
	cm, err := render.GetColormap(r.job.Colormap)
	if err != nil {
		return nil, err
	}
	src := frames.New(steps, r.load)
	err = anim.Animate(output, src, rng, anim.Options{
		Title:    r.job.Title,
		Colormap: cm,
		Interval: r.job.Interval(),
		Scale:    r.job.Scale,
		Extent: render.Extent{
			X0: r.job.Extent.X0, X1: r.job.Extent.X1,
			Y0: r.job.Extent.Y0, Y1: r.job.Extent.Y1,
		},
		OnFrame: p.OnFrame,
	})
	if err != nil {
		return nil, err
	}
	return &Result{Steps: steps, Range: rng, Active: r.mask.Count(), Output: output}, nil
}
