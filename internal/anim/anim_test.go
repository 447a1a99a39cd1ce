package anim

import (
	"errors"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/fieldviz/internal/field"
	"github.com/san-kum/fieldviz/internal/frames"
	"github.com/san-kum/fieldviz/internal/scan"
)

func stepLoader(t *testing.T) func(step int) (field.Field, error) {
	t.Helper()
	return func(step int) (field.Field, error) {
		f := field.New(2, 2)
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				f.Set(i, j, float64(step))
			}
		}
		return f, nil
	}
}

func TestCheckFormat(t *testing.T) {
	for _, path := range []string{"run.gif", "out/frame.png", "x.PDF", "a.jpeg", "b.svg"} {
		if err := CheckFormat(path); err != nil {
			t.Fatalf("expected %q accepted, got %v", path, err)
		}
	}
	err := CheckFormat("out/run.mp4")
	if err == nil {
		t.Fatal("expected error for mp4")
	}
	var ee *EncodingError
	if !errors.As(err, &ee) {
		t.Fatalf("expected EncodingError, got %T", err)
	}
	if ee.Format != "mp4" || ee.Path != "out/run.mp4" {
		t.Fatalf("expected format mp4 at out/run.mp4, got %q at %q", ee.Format, ee.Path)
	}
	if err := CheckFormat("noext"); err == nil {
		t.Fatal("expected error for missing extension")
	}
}

func TestAnimateGIF(t *testing.T) {
	out := filepath.Join(t.TempDir(), "run.gif")
	src := frames.New([]int{20, 40, 60}, stepLoader(t))
	err := Animate(out, src, scan.Range{Min: 20, Max: 60}, Options{
		Title:    "u",
		Interval: 200 * time.Millisecond,
		Scale:    1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fh, err := os.Open(out)
	if err != nil {
		t.Fatalf("expected artifact on disk: %v", err)
	}
	defer fh.Close()
	g, err := gif.DecodeAll(fh)
	if err != nil {
		t.Fatalf("expected valid gif, got %v", err)
	}
	if len(g.Image) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(g.Image))
	}
	if g.LoopCount != 0 {
		t.Fatalf("expected infinite loop, got %d", g.LoopCount)
	}
	for i, d := range g.Delay {
		if d != 20 {
			t.Fatalf("expected delay 20 at frame %d, got %d", i, d)
		}
	}
	if got := len(g.Image[0].Palette); got != 256 {
		t.Fatalf("expected 256 palette entries, got %d", got)
	}
	if g.Image[1].Rect != g.Image[0].Rect {
		t.Fatal("expected uniform frame geometry")
	}
}

func TestAnimateGIFMinimumDelay(t *testing.T) {
	out := filepath.Join(t.TempDir(), "run.gif")
	src := frames.New([]int{1}, stepLoader(t))
	if err := Animate(out, src, scan.Range{Min: 0, Max: 1}, Options{Scale: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fh, err := os.Open(out)
	if err != nil {
		t.Fatalf("expected artifact on disk: %v", err)
	}
	defer fh.Close()
	g, err := gif.DecodeAll(fh)
	if err != nil {
		t.Fatalf("expected valid gif, got %v", err)
	}
	if g.Delay[0] != 2 {
		t.Fatalf("expected minimum delay 2, got %d", g.Delay[0])
	}
}

func TestAnimateStillPNG(t *testing.T) {
	out := filepath.Join(t.TempDir(), "frame.png")
	src := frames.New([]int{100}, stepLoader(t))
	var calls int
	err := Animate(out, src, scan.Range{Min: 0, Max: 100}, Options{
		Title: "u",
		OnFrame: func(done, total, step int) {
			calls++
			if done != 1 || total != 1 || step != 100 {
				t.Fatalf("expected progress (1, 1, 100), got (%d, %d, %d)", done, total, step)
			}
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 progress call, got %d", calls)
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

func TestAnimateStillRejectsMultipleSteps(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "frame.png")
	src := frames.New([]int{20, 40}, stepLoader(t))
	if err := Animate(out, src, scan.Range{Min: 0, Max: 40}, Options{}); err == nil {
		t.Fatal("expected error for multi-step still")
	}
	assertNoArtifacts(t, dir)
}

func TestAnimateUnknownExtension(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "sub", "run.webm")
	src := frames.New([]int{20}, stepLoader(t))
	err := Animate(out, src, scan.Range{Min: 0, Max: 20}, Options{})
	var ee *EncodingError
	if !errors.As(err, &ee) {
		t.Fatalf("expected EncodingError, got %v", err)
	}
	if ee.Format != "webm" {
		t.Fatalf("expected format webm, got %q", ee.Format)
	}
	if _, err := os.Stat(filepath.Join(dir, "sub")); !os.IsNotExist(err) {
		t.Fatal("expected no output directory for rejected format")
	}
}

func TestAnimateLoadFailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "run.gif")
	boom := errors.New("snapshot unreadable")
	load := func(step int) (field.Field, error) {
		if step == 40 {
			return field.Field{}, boom
		}
		return field.New(2, 2), nil
	}
	src := frames.New([]int{20, 40, 60}, load)
	err := Animate(out, src, scan.Range{Min: 0, Max: 1}, Options{Scale: 1})
	if !errors.Is(err, boom) {
		t.Fatalf("expected load error to propagate, got %v", err)
	}
	assertNoArtifacts(t, dir)
}

func TestAnimateProgress(t *testing.T) {
	out := filepath.Join(t.TempDir(), "run.gif")
	src := frames.New([]int{20, 40, 60}, stepLoader(t))
	var steps []int
	err := Animate(out, src, scan.Range{Min: 20, Max: 60}, Options{
		Scale: 1,
		OnFrame: func(done, total, step int) {
			if total != 3 {
				t.Fatalf("expected total 3, got %d", total)
			}
			if done != len(steps)+1 {
				t.Fatalf("expected done %d, got %d", len(steps)+1, done)
			}
			steps = append(steps, step)
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(steps) != 3 || steps[0] != 20 || steps[2] != 60 {
		t.Fatalf("expected steps [20 40 60], got %v", steps)
	}
}

// assertNoArtifacts fails if dir holds any file, including leftover
// temporaries from an aborted write.
func assertNoArtifacts(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty output dir, found %v", entries)
	}
}
