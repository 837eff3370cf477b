package grid

import "fmt"

// Region is an axis-aligned bounding box in the fixed axis order
// (west, east, south, north). West/East bound the first (easting or
// longitude) axis, South/North the second (northing or latitude) axis.
// Degenerate regions (west == east or south == north) are valid.
type Region struct {
	West  float64 `yaml:"west" json:"west"`
	East  float64 `yaml:"east" json:"east"`
	South float64 `yaml:"south" json:"south"`
	North float64 `yaml:"north" json:"north"`
}

// Validate checks that the region's bounds are ordered.
func (r Region) Validate() error {
	if r.West > r.East {
		return fmt.Errorf("region west (%v) greater than east (%v)", r.West, r.East)
	}
	if r.South > r.North {
		return fmt.Errorf("region south (%v) greater than north (%v)", r.South, r.North)
	}
	return nil
}

// Spacing holds per-axis node or block spacing. East is the spacing along
// the first (easting) axis, North along the second (northing) axis.
type Spacing struct {
	East  float64
	North float64
}

// Square returns an isotropic spacing with the same value on both axes.
func Square(s float64) Spacing {
	return Spacing{East: s, North: s}
}

// Projection maps equal-length coordinate sequences from one coordinate
// system into another (the forward direction only). Implementations must be
// pure: no side effects, same-length output, element i of the output
// corresponding to element i of the input.
type Projection func(x, y []float64) (px, py []float64)

// IdentityProjection returns its inputs unchanged. Useful as a default and
// as a reference in tests.
func IdentityProjection(x, y []float64) ([]float64, []float64) {
	return x, y
}

// ReduceFunc aggregates a non-empty sequence of values into a single scalar.
// It must be well-defined for any sequence of length >= 1; it is never called
// with an empty slice. The slice passed in may be a scratch buffer and must
// not be retained.
type ReduceFunc func(values []float64) float64

// Grid is a regular mesh with labeled coordinate arrays and one or more named
// 2-D data arrays. Coordinate arrays are one-dimensional: Coords[0] holds the
// row-axis values (northing or latitude), Coords[1] the column-axis values
// (easting or longitude). Every data array is row-major with shape
// len(Coords[0]) x len(Coords[1]).
type Grid struct {
	// Dims names the row and column axes, in that order, e.g.
	// {"northing", "easting"} or {"latitude", "longitude"}.
	Dims [2]string

	// Coords holds the per-axis node coordinates: Coords[0] for rows,
	// Coords[1] for columns. Always in the output frame, even when the
	// values were predicted through a projection.
	Coords [2][]float64

	// Data maps array names to row-major 2-D value arrays. Masked nodes
	// hold NaN.
	Data map[string][][]float64
}

// Shape returns the (rows, columns) shape shared by the coordinate and data
// arrays.
func (g *Grid) Shape() (rows, cols int) {
	return len(g.Coords[0]), len(g.Coords[1])
}

// checkShape verifies that every named data array matches the coordinate
// shape. Downstream components call this instead of guessing intent when
// handed a malformed grid.
func (g *Grid) checkShape() error {
	rows, cols := g.Shape()
	for name, data := range g.Data {
		if len(data) != rows {
			return fmt.Errorf("%w: data array %q has %d rows, coordinates have %d", ErrDimensionMismatch, name, len(data), rows)
		}
		for i := range data {
			if len(data[i]) != cols {
				return fmt.Errorf("%w: data array %q row %d has %d columns, coordinates have %d", ErrDimensionMismatch, name, i, len(data[i]), cols)
			}
		}
	}
	return nil
}

// sameLen checks that two parallel sequences are aligned and non-empty.
func sameLen(what string, a, b []float64) error {
	if len(a) != len(b) {
		return fmt.Errorf("%w: %s sequences have lengths %d and %d", ErrDimensionMismatch, what, len(a), len(b))
	}
	if len(a) == 0 {
		return fmt.Errorf("%w: %s sequences are empty", ErrEmptyInput, what)
	}
	return nil
}
