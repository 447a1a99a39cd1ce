// Package render turns masked fields into images.
//
// Two renderers share one color mapping model:
//
//   - [Raster]: paletted animation frames over a shared 256-color
//     palette with a precomputed chrome layer, so successive frames
//     differ only in data pixels and the step title
//   - [WriteStill]: single-frame gonum/plot figures (png, jpg, tiff,
//     svg, pdf) with physical axes and a labeled color bar
//
// Color maps are named capabilities from a registry ([GetColormap]);
// nothing here touches masking or range logic. Both renderers fix
// their scale to one global range before the first frame and widen
// degenerate ranges via [PadRange].
//
// # Fixed scale
//
//	cm, _ := render.GetColormap("seismic")
//	r, _ := render.NewRaster(nx, ny, rng, cm, render.RasterOptions{Scale: 4})
//	img := r.Render(frame)
//
// Every frame rendered by r maps values through the same palette, so
// color is comparable across the whole artifact.
package render
