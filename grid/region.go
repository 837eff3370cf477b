package grid

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// BoundingRegion computes the axis-aligned bounding box of scattered
// coordinates. The two sequences must be parallel and non-empty.
func BoundingRegion(east, north []float64) (Region, error) {
	if err := sameLen("coordinate", east, north); err != nil {
		return Region{}, fmt.Errorf("bounding region: %w", err)
	}
	return Region{
		West:  floats.Min(east),
		East:  floats.Max(east),
		South: floats.Min(north),
		North: floats.Max(north),
	}, nil
}

// Pad returns a copy of the region grown outward by pad on every side.
// A negative pad shrinks the region; the result is not validated.
func (r Region) Pad(pad float64) Region {
	return Region{
		West:  r.West - pad,
		East:  r.East + pad,
		South: r.South - pad,
		North: r.North + pad,
	}
}

// Contains reports whether the point lies inside the region, borders
// included.
func (r Region) Contains(east, north float64) bool {
	return east >= r.West && east <= r.East && north >= r.South && north <= r.North
}

// Inside returns a boolean mask marking which of the given points fall
// inside the region (borders included).
func (r Region) Inside(east, north []float64) ([]bool, error) {
	if err := sameLen("coordinate", east, north); err != nil {
		return nil, fmt.Errorf("inside: %w", err)
	}
	in := make([]bool, len(east))
	for i := range east {
		in[i] = r.Contains(east[i], north[i])
	}
	return in, nil
}
