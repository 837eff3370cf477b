package grid

import (
	"fmt"
	"math"
)

// GridCoordinates builds the per-axis node coordinates of a regular mesh
// covering the region at (approximately) the requested spacing.
//
// Far-edge policy: the region's far edge is always included. The node count
// on an axis is round(extent/spacing)+1 and the effective spacing is adjusted
// to divide the extent exactly; the requested spacing is a target, not a
// guarantee. A degenerate axis (zero extent) yields a single node.
func GridCoordinates(region Region, spacing Spacing) (east, north []float64, err error) {
	if err := region.Validate(); err != nil {
		return nil, nil, fmt.Errorf("grid coordinates: %w", err)
	}
	east, err = nodeAxis(region.West, region.East, spacing.East)
	if err != nil {
		return nil, nil, fmt.Errorf("grid coordinates: east axis: %w", err)
	}
	north, err = nodeAxis(region.South, region.North, spacing.North)
	if err != nil {
		return nil, nil, fmt.Errorf("grid coordinates: north axis: %w", err)
	}
	return east, north, nil
}

func nodeAxis(min, max, spacing float64) ([]float64, error) {
	if spacing <= 0 {
		return nil, fmt.Errorf("%w: spacing %v", ErrInvalidSpacing, spacing)
	}
	extent := max - min
	if extent == 0 {
		return []float64{min}, nil
	}
	if spacing > extent {
		return nil, fmt.Errorf("%w: spacing %v exceeds axis extent %v", ErrInvalidSpacing, spacing, extent)
	}
	n := int(math.Round(extent/spacing)) + 1
	step := extent / float64(n-1)
	nodes := make([]float64, n)
	for i := range nodes {
		nodes[i] = min + float64(i)*step
	}
	// Pin the far edge despite accumulated rounding.
	nodes[n-1] = max
	return nodes, nil
}

// meshNodes expands per-axis coordinates into flattened row-major node
// coordinate sequences, one entry per grid node.
func meshNodes(east, north []float64) (flatEast, flatNorth []float64) {
	flatEast = make([]float64, 0, len(east)*len(north))
	flatNorth = make([]float64, 0, len(east)*len(north))
	for _, n := range north {
		for _, e := range east {
			flatEast = append(flatEast, e)
			flatNorth = append(flatNorth, n)
		}
	}
	return flatEast, flatNorth
}

// reshape folds a flattened row-major sequence back into a rows x cols
// 2-D array.
func reshape(flat []float64, rows, cols int) [][]float64 {
	out := make([][]float64, rows)
	for i := range out {
		out[i] = flat[i*cols : (i+1)*cols : (i+1)*cols]
	}
	return out
}
