package series

import (
	"path/filepath"
	"testing"
)

func TestSnapshotPath(t *testing.T) {
	s := Series{Dir: "data", Prefix: "solution"}

	got := s.SnapshotPath(30)
	want := filepath.Join("data", "solution_000030.csv")
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}

	got = s.SnapshotPath(40000)
	want = filepath.Join("data", "solution_040000.csv")
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestGridPath(t *testing.T) {
	got := GridPath("results/adi")
	want := filepath.Join("results/adi", "grid_data.csv")
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestSteps(t *testing.T) {
	steps, err := Steps(20, 2000, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(steps) != 100 {
		t.Fatalf("expected 100 steps, got %d", len(steps))
	}
	if steps[0] != 20 || steps[99] != 2000 {
		t.Errorf("expected 20..2000, got %d..%d", steps[0], steps[99])
	}
}

func TestStepsUnaligned(t *testing.T) {
	steps, err := Steps(10, 19, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(steps) != 1 || steps[0] != 10 {
		t.Errorf("expected [10], got %v", steps)
	}
}

func TestStepsSingle(t *testing.T) {
	steps, err := Steps(10, 10, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(steps) != 1 || steps[0] != 10 {
		t.Errorf("expected [10], got %v", steps)
	}
}

func TestStepsInvalid(t *testing.T) {
	if _, err := Steps(10, 100, 0); err == nil {
		t.Error("expected error for zero stride")
	}
	if _, err := Steps(10, 100, -5); err == nil {
		t.Error("expected error for negative stride")
	}
	if _, err := Steps(100, 10, 5); err == nil {
		t.Error("expected error for empty range")
	}
}

func TestCheckSteps(t *testing.T) {
	if err := CheckSteps([]int{10, 20, 30}); err != nil {
		t.Errorf("unexpected error for valid list: %v", err)
	}
	if err := CheckSteps(nil); err == nil {
		t.Error("expected error for empty list")
	}
	if err := CheckSteps([]int{10, 30, 20}); err == nil {
		t.Error("expected error for decreasing list")
	}
	if err := CheckSteps([]int{10, 10}); err == nil {
		t.Error("expected error for duplicate steps")
	}
}
