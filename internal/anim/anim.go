// Package anim turns frame sequences into animation and still
// artifacts on disk.
//
// The encoder is selected by output path extension: .gif assembles an
// animated GIF from every frame, while the still formats (.png, .jpg,
// .jpeg, .tif, .tiff, .svg, .pdf) render a single-step figure. Every
// artifact is written to a temporary file and renamed into place, so a
// failed run never leaves a partial file at the destination.
package anim

import (
	"errors"
	"fmt"
	"image/gif"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gonum.org/v1/plot/palette"

	"github.com/san-kum/fieldviz/internal/frames"
	"github.com/san-kum/fieldviz/internal/render"
	"github.com/san-kum/fieldviz/internal/scan"
)

// EncodingError reports an artifact that cannot be produced at the
// requested path, either because the extension names no encoder or
// because the encoding backend failed.
type EncodingError struct {
	Path    string
	Format  string
	Wrapped error
}

func (e *EncodingError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("anim: encoding %s: %v", e.Path, e.Wrapped)
	}
	return fmt.Sprintf("anim: no encoder for %q (%s)", e.Format, e.Path)
}

func (e *EncodingError) Unwrap() error {
	return e.Wrapped
}

// Format extracts the lowercase encoder name from a path extension.
func Format(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

// CheckFormat rejects an output path whose extension names no encoder.
// Callers run it before scanning so a doomed job fails up front.
func CheckFormat(path string) error {
	format := Format(path)
	if format == "gif" || render.StillFormat(format) {
		return nil
	}
	return &EncodingError{Path: path, Format: format}
}

// Options control how a frame sequence becomes an artifact.
type Options struct {
	Title    string
	Colormap palette.ColorMap
	Interval time.Duration // display time per animation frame
	Scale    int           // pixels per grid cell in GIF output
	Extent   render.Extent
	OnFrame  func(done, total, step int)
}

// Animate consumes src and writes the artifact named by path. Frame
// loading errors propagate unchanged so callers can still identify the
// failing step; encoder and filesystem failures surface as
// *EncodingError.
func Animate(path string, src *frames.Source, rng scan.Range, opts Options) error {
	format := Format(path)
	switch {
	case format == "gif":
		return writeArtifact(path, format, func(w io.Writer) error {
			return encodeGIF(w, path, src, rng, opts)
		})
	case render.StillFormat(format):
		return writeArtifact(path, format, func(w io.Writer) error {
			return encodeStill(w, path, format, src, rng, opts)
		})
	}
	return &EncodingError{Path: path, Format: format}
}

// writeArtifact encodes into a temporary file beside path and renames
// it into place only after encode returns clean.
func writeArtifact(path, format string, encode func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &EncodingError{Path: path, Format: format, Wrapped: err}
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return &EncodingError{Path: path, Format: format, Wrapped: err}
	}
	if err := encode(tmp); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return &EncodingError{Path: path, Format: format, Wrapped: err}
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return &EncodingError{Path: path, Format: format, Wrapped: err}
	}
	return nil
}

func encodeGIF(w io.Writer, path string, src *frames.Source, rng scan.Range, opts Options) error {
	delay := int(opts.Interval / (10 * time.Millisecond))
	if delay < 2 {
		delay = 2
	}

	g := &gif.GIF{LoopCount: 0}
	var r *render.Raster
	total := src.Len()
	done := 0
	for src.Next() {
		fr := src.Frame()
		if r == nil {
			var err error
			r, err = render.NewRaster(fr.Data.Nx, fr.Data.Ny, rng, opts.Colormap, render.RasterOptions{
				Title:  opts.Title,
				Extent: opts.Extent,
				Scale:  opts.Scale,
			})
			if err != nil {
				return err
			}
		}
		g.Image = append(g.Image, r.Render(fr))
		g.Delay = append(g.Delay, delay)
		done++
		if opts.OnFrame != nil {
			opts.OnFrame(done, total, fr.Step)
		}
	}
	if err := src.Err(); err != nil {
		return err
	}
	if len(g.Image) == 0 {
		return &EncodingError{Path: path, Format: "gif", Wrapped: errors.New("no frames")}
	}
	if err := gif.EncodeAll(w, g); err != nil {
		return &EncodingError{Path: path, Format: "gif", Wrapped: err}
	}
	return nil
}

func encodeStill(w io.Writer, path, format string, src *frames.Source, rng scan.Range, opts Options) error {
	if src.Len() != 1 {
		return fmt.Errorf("anim: still output %s needs exactly one step, got %d", path, src.Len())
	}
	if !src.Next() {
		if err := src.Err(); err != nil {
			return err
		}
		return &EncodingError{Path: path, Format: format, Wrapped: errors.New("no frames")}
	}
	fr := src.Frame()
	if opts.OnFrame != nil {
		opts.OnFrame(1, 1, fr.Step)
	}
	if err := render.WriteStill(w, format, fr, rng, opts.Colormap, opts.Title, opts.Extent); err != nil {
		return &EncodingError{Path: path, Format: format, Wrapped: err}
	}
	return nil
}
