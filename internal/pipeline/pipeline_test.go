package pipeline

import (
	"errors"
	"image/gif"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/fieldviz/internal/config"
	"github.com/san-kum/fieldviz/internal/field"
	"github.com/san-kum/fieldviz/internal/scan"
	"github.com/san-kum/fieldviz/internal/series"
)

// writeGrid stores a 3x3 metadata grid where only the center point is
// inside the domain.
func writeGrid(t *testing.T, dir string) {
	t.Helper()
	meta := field.New(3, 3)
	meta.Set(1, 1, 1)
	if err := field.Save(series.GridPath(dir), meta); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// writeSnapshot stores a snapshot whose center holds v and whose
// outside points hold noise the mask must hide.
func writeSnapshot(t *testing.T, dir, prefix string, step int, v float64) {
	t.Helper()
	f := field.New(3, 3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			f.Set(i, j, 1e6)
		}
	}
	f.Set(1, 1, v)
	s := series.Series{Dir: dir, Prefix: prefix}
	if err := field.Save(s.SnapshotPath(step), f); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func testJob(dir string, steps ...int) *config.Job {
	job := config.DefaultJob()
	job.DataDir = dir
	job.Steps = config.StepRange{List: steps}
	job.Output = filepath.Join(dir, "out", "run.gif")
	job.Scale = 1
	return job
}

func TestAnimateEndToEnd(t *testing.T) {
	dir := t.TempDir()
	writeGrid(t, dir)
	writeSnapshot(t, dir, "solution", 10, 5)
	writeSnapshot(t, dir, "solution", 20, 7)

	run, err := New(testJob(dir, 10, 20))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if run.Active() != 1 {
		t.Fatalf("expected 1 active point, got %d", run.Active())
	}

	var seen scan.Range
	res, err := run.Animate(Progress{OnRange: func(r scan.Range) { seen = r }})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Range.Min != 5 || res.Range.Max != 7 {
		t.Fatalf("expected range (5, 7), got (%g, %g)", res.Range.Min, res.Range.Max)
	}
	if seen != res.Range {
		t.Fatalf("expected progress range %v, got %v", res.Range, seen)
	}

	fh, err := os.Open(res.Output)
	if err != nil {
		t.Fatalf("expected artifact on disk: %v", err)
	}
	defer fh.Close()
	g, err := gif.DecodeAll(fh)
	if err != nil {
		t.Fatalf("expected valid gif, got %v", err)
	}
	if len(g.Image) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(g.Image))
	}
}

func TestAnimateMissingStep(t *testing.T) {
	dir := t.TempDir()
	writeGrid(t, dir)
	writeSnapshot(t, dir, "solution", 10, 5)
	writeSnapshot(t, dir, "solution", 20, 7)

	run, err := New(testJob(dir, 10, 20, 30))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = run.Animate(Progress{})
	var se *series.StepError
	if !errors.As(err, &se) {
		t.Fatalf("expected StepError, got %v", err)
	}
	if se.Step != 30 {
		t.Fatalf("expected failing step 30, got %d", se.Step)
	}
	var mfe *field.MissingFileError
	if !errors.As(err, &mfe) {
		t.Fatalf("expected wrapped MissingFileError, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "out")); !os.IsNotExist(err) {
		t.Fatal("expected no artifact after scan failure")
	}
}

func TestAnimateDifference(t *testing.T) {
	dir := t.TempDir()
	writeGrid(t, dir)
	writeSnapshot(t, dir, "exact", 10, 3)
	writeSnapshot(t, dir, "solution", 10, 1)

	job := testJob(dir, 10)
	job.Mode = config.ModeDifference
	job.Prefix = "exact"
	job.RefPrefix = "solution"
	job.Title = "Error"

	run, err := New(job)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res, err := run.Animate(Progress{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Range.Min != 4 || res.Range.Max != 4 {
		t.Fatalf("expected squared difference range (4, 4), got (%g, %g)", res.Range.Min, res.Range.Max)
	}
}

func TestAnimateEmptyMask(t *testing.T) {
	dir := t.TempDir()
	meta := field.New(3, 3) // nothing positive
	if err := field.Save(series.GridPath(dir), meta); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	writeSnapshot(t, dir, "solution", 10, 5)

	run, err := New(testJob(dir, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = run.Animate(Progress{})
	var eme *scan.EmptyMaskError
	if !errors.As(err, &eme) {
		t.Fatalf("expected EmptyMaskError, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "out")); !os.IsNotExist(err) {
		t.Fatal("expected no artifact for empty mask")
	}
}

func TestNewRejectsBadOutputBeforeReading(t *testing.T) {
	job := testJob(filepath.Join(t.TempDir(), "nonexistent"), 10)
	job.Output = "run.mp4"
	_, err := New(job)
	if err == nil {
		t.Fatal("expected error for unsupported output")
	}
	var mfe *field.MissingFileError
	if errors.As(err, &mfe) {
		t.Fatal("expected format rejection before grid read")
	}
}

func TestNewMissingGrid(t *testing.T) {
	run, err := New(testJob(t.TempDir(), 10))
	if err == nil {
		t.Fatal("expected error for missing grid metadata")
	}
	var mfe *field.MissingFileError
	if !errors.As(err, &mfe) {
		t.Fatalf("expected MissingFileError, got %v", err)
	}
	if run != nil {
		t.Fatal("expected nil run on failure")
	}
}

func TestNewRejectsExcludeOutsideGrid(t *testing.T) {
	dir := t.TempDir()
	writeGrid(t, dir)
	job := testJob(dir, 10)
	job.Exclude = [][2]int{{20, 60}}
	if _, err := New(job); err == nil {
		t.Fatal("expected error for exclusion outside the grid")
	}
}

func TestRenderStep(t *testing.T) {
	dir := t.TempDir()
	writeGrid(t, dir)
	writeSnapshot(t, dir, "solution", 10, 5)
	writeSnapshot(t, dir, "solution", 20, 7)

	run, err := New(testJob(dir, 10, 20))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := filepath.Join(dir, "frame.png")
	res, err := run.RenderStep(20, out, Progress{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Range.Min != 7 || res.Range.Max != 7 {
		t.Fatalf("expected single-step range (7, 7), got (%g, %g)", res.Range.Min, res.Range.Max)
	}
	fh, err := os.Open(out)
	if err != nil {
		t.Fatalf("expected artifact on disk: %v", err)
	}
	defer fh.Close()
	if _, err := png.Decode(fh); err != nil {
		t.Fatalf("expected valid png, got %v", err)
	}
}

func TestStats(t *testing.T) {
	dir := t.TempDir()
	writeGrid(t, dir)
	writeSnapshot(t, dir, "solution", 10, 5)
	writeSnapshot(t, dir, "solution", 20, 7)

	run, err := New(testJob(dir, 10, 20))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stats, err := run.Stats()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected 2 stat rows, got %d", len(stats))
	}
	if stats[0].Step != 10 || stats[0].Min != 5 || stats[0].Max != 5 {
		t.Fatalf("expected step 10 stats (5, 5), got %+v", stats[0])
	}
	if stats[1].Mean != 7 {
		t.Fatalf("expected mean 7, got %g", stats[1].Mean)
	}
	if math.IsNaN(stats[1].StdDev) {
		t.Fatal("expected defined stddev for single point")
	}
}
