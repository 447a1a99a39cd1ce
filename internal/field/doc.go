// Package field provides the dense 2D scalar field the pipeline moves
// around, its on-disk CSV form, and the domain validity mask.
//
//   - [Field]: flat row-major nx-by-ny grid with bounds-checked access;
//     row index i is the x index, column index j the y index
//   - [Load] / [Save]: the solver's comma-delimited, header-less
//     snapshot format
//   - [Mask]: validity derived from grid metadata ([DeriveMask]),
//     explicit cell removal ([Mask.Exclude]), and sentinel application
//     ([Mask.Apply])
//
// Masked fields carry IEEE NaN as the no-data sentinel; [Field.Valid]
// returns the values a range scan folds over. Failures surface as
// typed errors ([MissingFileError], [ParseError],
// [ShapeMismatchError]) so callers can branch with errors.As.
package field
