package field

import "fmt"

// MissingFileError reports an expected snapshot or grid-metadata file
// that does not exist. Missing inputs are never interpolated around.
type MissingFileError struct {
	Path string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("field: missing file %s", e.Path)
}

// ParseError reports malformed numeric text in a data file.
type ParseError struct {
	Path string
	Row  int // 1-based, 0 when the whole file is at fault
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("field: parse %s: %s", e.Path, e.Msg)
	}
	return fmt.Sprintf("field: parse %s: row %d: %s", e.Path, e.Row, e.Msg)
}

// ShapeMismatchError reports two grids that must share dimensions but
// do not: grid metadata vs. snapshot, or the two sides of a difference.
type ShapeMismatchError struct {
	Path           string // offending file, when known
	Nx, Ny         int
	WantNx, WantNy int
}

func (e *ShapeMismatchError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("field: shape %dx%d, want %dx%d", e.Nx, e.Ny, e.WantNx, e.WantNy)
	}
	return fmt.Sprintf("field: %s: shape %dx%d, want %dx%d", e.Path, e.Nx, e.Ny, e.WantNx, e.WantNy)
}
