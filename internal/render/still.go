package render

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/san-kum/fieldviz/internal/field"
	"github.com/san-kum/fieldviz/internal/frames"
	"github.com/san-kum/fieldviz/internal/scan"
)

const barPlotWidth = 1.2 * vg.Inch

// gridXYZ adapts a masked field and its physical extent to the heat
// map plotter. Column index c is the field's x index, row index r the
// y index, so the figure shows x horizontal with origin lower.
type gridXYZ struct {
	f   field.Field
	ext Extent
}

func (g gridXYZ) Dims() (c, r int) {
	return g.f.Nx, g.f.Ny
}

func (g gridXYZ) Z(c, r int) float64 {
	return g.f.At(c, r)
}

func (g gridXYZ) X(c int) float64 {
	if g.f.Nx == 1 {
		return g.ext.X0
	}
	return g.ext.X0 + (g.ext.X1-g.ext.X0)*float64(c)/float64(g.f.Nx-1)
}

func (g gridXYZ) Y(r int) float64 {
	if g.f.Ny == 1 {
		return g.ext.Y0
	}
	return g.ext.Y0 + (g.ext.Y1-g.ext.Y0)*float64(r)/float64(g.f.Ny-1)
}

// StillFormat reports whether the extension (without the dot) names a
// supported still encoding.
func StillFormat(format string) bool {
	switch format {
	case "png", "jpg", "jpeg", "tif", "tiff", "svg", "pdf":
		return true
	}
	return false
}

// WriteStill renders one frame as a still figure: a heat map with
// physical axes beside a color bar labeled with the artifact title.
// The color scale is fixed to the global range exactly as in
// animations, and no-data points use the same distinct gray.
func WriteStill(w io.Writer, format string, fr frames.Frame, rng scan.Range, cm palette.ColorMap, title string, ext Extent) error {
	if cm == nil {
		var err error
		cm, err = GetColormap(DefaultColormap)
		if err != nil {
			return err
		}
	}
	lo, hi := PadRange(rng)
	cm.SetMin(lo)
	cm.SetMax(hi)

	heat := plot.New()
	heat.Title.Text = fmt.Sprintf("t = %d", fr.Step)
	heat.X.Label.Text = "x"
	heat.Y.Label.Text = "y"
	hm := plotter.NewHeatMap(gridXYZ{f: fr.Data, ext: ext}, cm.Palette(rasterLevels))
	hm.Min = lo
	hm.Max = hi
	hm.NaN = color.Gray{Y: 0x99}
	heat.Add(hm)

	bar := &plotter.ColorBar{ColorMap: cm}
	bar.Vertical = true
	barPlot := plot.New()
	barPlot.Add(bar)
	barPlot.HideX()
	barPlot.Y.Label.Text = title

	width, height := stillSize(ext)
	switch format {
	case "png", "jpg", "jpeg", "tif", "tiff":
		c := vgimg.New(width, height)
		drawStill(draw.New(c), heat, barPlot)
		var wt io.WriterTo
		switch format {
		case "png":
			wt = vgimg.PngCanvas{Canvas: c}
		case "jpg", "jpeg":
			wt = vgimg.JpegCanvas{Canvas: c}
		default:
			wt = vgimg.TiffCanvas{Canvas: c}
		}
		_, err := wt.WriteTo(w)
		return err
	case "svg":
		c := vgsvg.New(width, height)
		drawStill(draw.New(c), heat, barPlot)
		_, err := c.WriteTo(w)
		return err
	case "pdf":
		c := vgpdf.New(width, height)
		drawStill(draw.New(c), heat, barPlot)
		_, err := c.WriteTo(w)
		return err
	}
	return fmt.Errorf("render: no still encoder for %q", format)
}

// drawStill splits the canvas into the heat area and a fixed-width
// strip on the right for the color bar.
func drawStill(dc draw.Canvas, heat, bar *plot.Plot) {
	total := dc.Max.X - dc.Min.X
	heat.Draw(draw.Crop(dc, 0, -barPlotWidth, 0, 0))
	bar.Draw(draw.Crop(dc, total-barPlotWidth, 0, 0, 0))
}

// stillSize derives the figure size from the physical aspect ratio so
// cells render near-square for the usual portrait grids.
func stillSize(ext Extent) (w, h vg.Length) {
	h = 6 * vg.Inch
	ratio := 1.0
	if dy := ext.Y1 - ext.Y0; dy != 0 {
		ratio = (ext.X1 - ext.X0) / dy
	}
	if ratio < 0 {
		ratio = -ratio
	}
	if ratio < 0.4 {
		ratio = 0.4
	}
	if ratio > 2.5 {
		ratio = 2.5
	}
	w = vg.Length(float64(h)*ratio) + barPlotWidth + vg.Inch
	return w, h
}
