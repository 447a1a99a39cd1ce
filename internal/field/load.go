package field

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Load reads a comma-delimited, header-less numeric file into a Field.
// Row r of the file becomes row r of the field (the x index). Returns
// *MissingFileError when the path does not resolve and *ParseError when
// rows are ragged or contain non-numeric tokens.
func Load(path string) (Field, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Field{}, &MissingFileError{Path: path}
		}
		return Field{}, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1 // rectangularity is checked below for a typed error

	records, err := r.ReadAll()
	if err != nil {
		return Field{}, &ParseError{Path: path, Msg: err.Error()}
	}
	if len(records) == 0 {
		return Field{}, &ParseError{Path: path, Msg: "empty file"}
	}

	ny := len(records[0])
	f := New(len(records), ny)
	for i, rec := range records {
		if len(rec) != ny {
			return Field{}, &ParseError{
				Path: path,
				Row:  i + 1,
				Msg:  fmt.Sprintf("%d values, want %d", len(rec), ny),
			}
		}
		for j, tok := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(tok), 64)
			if err != nil {
				return Field{}, &ParseError{
					Path: path,
					Row:  i + 1,
					Msg:  fmt.Sprintf("bad value %q", tok),
				}
			}
			f.data[i*ny+j] = v
		}
	}
	return f, nil
}

// Save writes f in the same comma-delimited form the solver emits:
// one row per x index, values formatted with 10 decimal places.
func Save(path string, f Field) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(file)
	row := make([]string, f.Ny)
	for i := 0; i < f.Nx; i++ {
		for j := 0; j < f.Ny; j++ {
			row[j] = strconv.FormatFloat(f.At(i, j), 'f', 10, 64)
		}
		if err := w.Write(row); err != nil {
			file.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
