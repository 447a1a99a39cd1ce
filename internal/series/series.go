// Package series names snapshot sequences on disk and builds the
// per-step loaders the scan and frame passes share.
package series

import (
	"errors"
	"fmt"
	"path/filepath"
)

// GridFile is the grid metadata filename inside a dataset directory.
const GridFile = "grid_data.csv"

// Series names one snapshot sequence: a dataset directory plus the
// filename prefix its solver used.
type Series struct {
	Dir    string
	Prefix string
}

// SnapshotPath returns the file backing one step,
// following the solver's {dir}/{prefix}_{step:06d}.csv scheme.
func (s Series) SnapshotPath(step int) string {
	return filepath.Join(s.Dir, fmt.Sprintf("%s_%06d.csv", s.Prefix, step))
}

// GridPath returns the grid metadata file for a dataset directory.
func GridPath(dir string) string {
	return filepath.Join(dir, GridFile)
}

// Steps expands an inclusive from/to/by range into a step list.
func Steps(from, to, by int) ([]int, error) {
	if by <= 0 {
		return nil, fmt.Errorf("series: step stride must be positive, got %d", by)
	}
	if to < from {
		return nil, fmt.Errorf("series: empty step range %d..%d", from, to)
	}
	steps := make([]int, 0, (to-from)/by+1)
	for s := from; s <= to; s += by {
		steps = append(steps, s)
	}
	return steps, nil
}

// CheckSteps validates an explicit step list: it must be non-empty and
// strictly increasing.
func CheckSteps(steps []int) error {
	if len(steps) == 0 {
		return errors.New("series: empty step list")
	}
	for i := 1; i < len(steps); i++ {
		if steps[i] <= steps[i-1] {
			return fmt.Errorf("series: step list not strictly increasing: %d after %d", steps[i], steps[i-1])
		}
	}
	return nil
}
