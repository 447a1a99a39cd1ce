package config

import "sort"

var defaultExtent = Extent{X0: 0, X1: 2, Y0: -2, Y1: 2}

// Presets are ready-made jobs for the usual solver output layouts. The
// error presets animate the squared difference between the computed
// and reference series on the same grid.
var Presets = map[string]*Job{
	"adi-error": {
		DataDir: "results/Parabolic/data/ADI",
		Prefix:  "exact", RefPrefix: "solution", Mode: ModeDifference,
		Steps:   StepRange{From: 20, To: 2000, By: 20},
		Exclude: [][2]int{{20, 60}},
		Title:   "Error", Output: "results/Parabolic/ADI_error.gif",
		IntervalMs: DefaultIntervalMs, Colormap: DefaultColormap, Scale: DefaultScale,
		Extent: defaultExtent,
	},
	"adi-refined-error": {
		DataDir: "results/Parabolic/data/ADI_refined",
		Prefix:  "exact", RefPrefix: "solution", Mode: ModeDifference,
		Steps:   StepRange{From: 80, To: 8000, By: 80},
		Exclude: [][2]int{{40, 120}},
		Title:   "Error", Output: "results/Parabolic/ADI_error_refined.gif",
		IntervalMs: DefaultIntervalMs, Colormap: DefaultColormap, Scale: DefaultScale,
		Extent: defaultExtent,
	},
	"explicit-error": {
		DataDir: "results/Parabolic/data/Explicit",
		Prefix:  "exact", RefPrefix: "solution", Mode: ModeDifference,
		Steps:   StepRange{From: 100, To: 10000, By: 100},
		Exclude: [][2]int{{20, 60}},
		Title:   "Error", Output: "results/Parabolic/Explicit_error.gif",
		IntervalMs: DefaultIntervalMs, Colormap: DefaultColormap, Scale: DefaultScale,
		Extent: defaultExtent,
	},
	"explicit-refined-error": {
		DataDir: "results/Parabolic/data/Explicit_refined",
		Prefix:  "exact", RefPrefix: "solution", Mode: ModeDifference,
		Steps:   StepRange{From: 400, To: 40000, By: 400},
		Exclude: [][2]int{{40, 120}},
		Title:   "Error", Output: "results/Parabolic/Explicit_error_refined.gif",
		IntervalMs: DefaultIntervalMs, Colormap: DefaultColormap, Scale: DefaultScale,
		Extent: defaultExtent,
	},
	"verify": {
		DataDir: "results/Parabolic/data/exact_test_refined",
		Prefix:  "exact", Mode: ModeSeries,
		Steps: StepRange{From: 400, To: 20000, By: 400},
		Title: "Exact", Output: "results/Parabolic/solution_refined.gif",
		IntervalMs: DefaultIntervalMs, Colormap: DefaultColormap, Scale: DefaultScale,
		Extent: defaultExtent,
	},
	"verify-rhs": {
		DataDir: "results/Parabolic/data/exact_test_refined",
		Prefix:  "rhs", Mode: ModeSeries,
		Steps: StepRange{From: 400, To: 20000, By: 400},
		Title: "Solution", Output: "results/Parabolic/rhs_refined.gif",
		IntervalMs: DefaultIntervalMs, Colormap: DefaultColormap, Scale: DefaultScale,
		Extent: defaultExtent,
	},
	"exact-test": {
		DataDir: "results/Parabolic/data/exact_test",
		Prefix:  "exact", Mode: ModeSeries,
		Steps: StepRange{From: 100, To: 5000, By: 100},
		Title: "Exact Solution", Output: "results/Parabolic/solution.gif",
		IntervalMs: DefaultIntervalMs, Colormap: DefaultColormap, Scale: DefaultScale,
		Extent: defaultExtent,
	},
}

// GetPreset returns a copy of the named preset, or nil when unknown.
// Copying keeps flag overrides from leaking into the shared table.
func GetPreset(name string) *Job {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	job := *p
	return &job
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
