package render

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"gonum.org/v1/plot/palette"

	"github.com/san-kum/fieldviz/internal/frames"
	"github.com/san-kum/fieldviz/internal/scan"
)

// Extent is the physical rectangle the grid spans. It only drives axis
// labeling; data layout is purely index-based.
type Extent struct {
	X0, X1 float64
	Y0, Y1 float64
}

// Frame layout in pixels. The left margin holds y labels, the top band
// the titles, the right block the color bar and its labels.
const (
	marginLeft   = 44
	marginTop    = 20
	marginBottom = 22
	barGap       = 12
	barWidth     = 12
	barLabel     = 54
	marginRight  = barGap + barWidth + barLabel + 6

	// Palette layout: three reserved chrome colors, then the quantized
	// color map levels. 3 + 253 fills all 256 slots; the odd level
	// count keeps the midpoint of diverging maps exactly sampled.
	idxBackground = 0
	idxText       = 1
	idxNoData     = 2
	levelBase     = 3
	rasterLevels  = 253
)

// RasterOptions fixes the presentation of an animation's frames.
type RasterOptions struct {
	Title  string
	Extent Extent
	Scale  int // pixels per grid cell
}

// Raster renders frames into paletted images that all share one
// palette and one precomputed chrome layer (borders, color bar, axis
// labels, title). Successive frames therefore differ only in the data
// pixels and the step title.
type Raster struct {
	nx, ny, scale int
	title         string
	lo, hi        float64
	pal           color.Palette
	chrome        *image.Paletted
	plotX, plotY  int
	plotW, plotH  int
	barX          int
}

// NewRaster builds a frame renderer for an nx-by-ny grid whose color
// scale is fixed to the given global range.
func NewRaster(nx, ny int, rng scan.Range, cm palette.ColorMap, opts RasterOptions) (*Raster, error) {
	if nx <= 0 || ny <= 0 {
		return nil, fmt.Errorf("render: empty %dx%d grid", nx, ny)
	}
	if cm == nil {
		var err error
		cm, err = GetColormap(DefaultColormap)
		if err != nil {
			return nil, err
		}
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = 4
	}

	lo, hi := PadRange(rng)
	cm.SetMin(lo)
	cm.SetMax(hi)

	pal := make(color.Palette, 0, levelBase+rasterLevels)
	pal = append(pal, color.White, color.Black, color.Gray{Y: 0x99})
	pal = append(pal, cm.Palette(rasterLevels).Colors()...)

	r := &Raster{
		nx: nx, ny: ny, scale: scale,
		title: opts.Title,
		lo:    lo, hi: hi,
		pal:   pal,
		plotX: marginLeft,
		plotY: marginTop,
		plotW: nx * scale,
		plotH: ny * scale,
	}
	r.barX = r.plotX + r.plotW + barGap
	r.buildChrome(opts.Extent)
	return r, nil
}

// Bounds returns the pixel rectangle every rendered frame covers.
func (r *Raster) Bounds() image.Rectangle {
	return r.chrome.Rect
}

// Render draws one frame: the shared chrome, the data layer, and the
// step title. The input field must match the grid the renderer was
// built for.
func (r *Raster) Render(fr frames.Frame) *image.Paletted {
	img := image.NewPaletted(r.chrome.Rect, r.pal)
	copy(img.Pix, r.chrome.Pix)

	for i := 0; i < r.nx; i++ {
		for j := 0; j < r.ny; j++ {
			idx := r.colorIndex(fr.Data.At(i, j))
			// Origin lower: j = 0 renders at the bottom row.
			x0 := r.plotX + i*r.scale
			y0 := r.plotY + (r.ny-1-j)*r.scale
			for dy := 0; dy < r.scale; dy++ {
				for dx := 0; dx < r.scale; dx++ {
					img.SetColorIndex(x0+dx, y0+dy, idx)
				}
			}
		}
	}

	step := fmt.Sprintf("t = %d", fr.Step)
	r.text(img, r.plotX+r.plotW-textWidth(step), 14, step)
	return img
}

// colorIndex quantizes a value into the palette: NaN maps to the
// reserved no-data entry, everything else clamps into the level range.
func (r *Raster) colorIndex(v float64) uint8 {
	if math.IsNaN(v) {
		return idxNoData
	}
	t := (v - r.lo) / (r.hi - r.lo)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return uint8(levelBase + int(t*float64(rasterLevels-1)+0.5))
}

func (r *Raster) buildChrome(ext Extent) {
	w := r.plotX + r.plotW + marginRight
	h := r.plotY + r.plotH + marginBottom
	img := image.NewPaletted(image.Rect(0, 0, w, h), r.pal)
	for i := range img.Pix {
		img.Pix[i] = idxBackground
	}

	r.outline(img, r.plotX-1, r.plotY-1, r.plotW+2, r.plotH+2)
	r.outline(img, r.barX-1, r.plotY-1, barWidth+2, r.plotH+2)

	// Color bar gradient, max at the top.
	for yy := 0; yy < r.plotH; yy++ {
		t := 1.0
		if r.plotH > 1 {
			t = 1 - float64(yy)/float64(r.plotH-1)
		}
		idx := uint8(levelBase + int(t*float64(rasterLevels-1)+0.5))
		for xx := 0; xx < barWidth; xx++ {
			img.SetColorIndex(r.barX+xx, r.plotY+yy, idx)
		}
	}

	labelX := r.barX + barWidth + 4
	r.text(img, labelX, r.plotY+10, formatTick(r.hi))
	r.text(img, labelX, r.plotY+r.plotH, formatTick(r.lo))

	// Axis extent labels.
	yMax := formatTick(ext.Y1)
	yMin := formatTick(ext.Y0)
	r.text(img, r.plotX-4-textWidth(yMax), r.plotY+10, yMax)
	r.text(img, r.plotX-4-textWidth(yMin), r.plotY+r.plotH, yMin)
	xMin := formatTick(ext.X0)
	xMax := formatTick(ext.X1)
	r.text(img, r.plotX, r.plotY+r.plotH+16, xMin)
	r.text(img, r.plotX+r.plotW-textWidth(xMax), r.plotY+r.plotH+16, xMax)

	if r.title != "" {
		r.text(img, r.plotX, 14, r.title)
	}
	r.chrome = img
}

// outline draws a 1px rectangle border in the text color.
func (r *Raster) outline(img *image.Paletted, x, y, w, h int) {
	for xx := x; xx < x+w; xx++ {
		img.SetColorIndex(xx, y, idxText)
		img.SetColorIndex(xx, y+h-1, idxText)
	}
	for yy := y; yy < y+h; yy++ {
		img.SetColorIndex(x, yy, idxText)
		img.SetColorIndex(x+w-1, yy, idxText)
	}
}

func (r *Raster) text(img *image.Paletted, x, y int, s string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(r.pal[idxText]),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(s)
}

func textWidth(s string) int {
	return font.MeasureString(basicfont.Face7x13, s).Ceil()
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}
