package render

import (
	"fmt"

	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"

	"github.com/san-kum/fieldviz/internal/scan"
)

// DefaultColormap is used when a job names no color map. SmoothBlueRed
// is the diverging blue-white-red scale the solver's plots always used.
const DefaultColormap = "seismic"

// Colormap pairs a registry name with a color map constructor. Maps are
// constructed per artifact because ColorMap carries min/max state.
type Colormap struct {
	Name string
	New  func() palette.ColorMap
}

// Available color maps.
var Colormaps = []Colormap{
	{Name: "seismic", New: func() palette.ColorMap { return moreland.SmoothBlueRed() }},
	{Name: "bluetan", New: func() palette.ColorMap { return moreland.SmoothBlueTan() }},
	{Name: "greenpurple", New: func() palette.ColorMap { return moreland.SmoothGreenPurple() }},
	{Name: "kindlmann", New: func() palette.ColorMap { return moreland.Kindlmann() }},
	{Name: "extended-kindlmann", New: func() palette.ColorMap { return moreland.ExtendedKindlmann() }},
	{Name: "blackbody", New: func() palette.ColorMap { return moreland.BlackBody() }},
	{Name: "extended-blackbody", New: func() palette.ColorMap { return moreland.ExtendedBlackBody() }},
}

// GetColormap returns a fresh instance of the named color map.
func GetColormap(name string) (palette.ColorMap, error) {
	if name == "" {
		name = DefaultColormap
	}
	for _, c := range Colormaps {
		if c.Name == name {
			return c.New(), nil
		}
	}
	return nil, fmt.Errorf("render: unknown colormap %q (available: %v)", name, ColormapNames())
}

// ColormapNames returns the registry names in declaration order.
func ColormapNames() []string {
	names := make([]string, len(Colormaps))
	for i, c := range Colormaps {
		names[i] = c.Name
	}
	return names
}

// PadRange widens a degenerate range so a color scale can always be
// built; a non-degenerate range passes through unchanged. The scan
// result itself is never modified, only the scale derived from it.
func PadRange(r scan.Range) (lo, hi float64) {
	if r.Min == r.Max {
		return r.Min - 0.5, r.Max + 0.5
	}
	return r.Min, r.Max
}
