package grid

import (
	"fmt"
	"math"
	"sort"
)

// BlockReducer decimates scattered data by partitioning the bounding region
// into a regular lattice of blocks and collapsing every non-empty block to a
// single point. Both the block values and the block coordinates are produced
// by the same aggregation function, so a median reducer yields the median
// location of the points that fell in the block, not the block centroid.
//
// Block assignment is half-open and lower-inclusive: a point sitting exactly
// on a shared block edge belongs to the block whose lower edge it is. The
// single exception is the region's own far edge, which closes the last block
// so that no point of the input is dropped.
type BlockReducer struct {
	// Reduce aggregates the values (and coordinates) of each block.
	Reduce ReduceFunc

	// Spacing is the per-axis block size.
	Spacing Spacing

	// Region optionally fixes the lattice origin and extent. When nil the
	// bounding region of the input is used.
	Region *Region
}

// NewBlockReducer returns a BlockReducer with square blocks of the given
// size and the lattice derived from the data.
func NewBlockReducer(reduce ReduceFunc, blockSize float64) *BlockReducer {
	return &BlockReducer{Reduce: reduce, Spacing: Square(blockSize)}
}

// Filter assigns every input point to a block and reduces each non-empty
// block to one output point. Any number of parallel value columns may be
// passed; they all share the same block assignment and reducer. Empty blocks
// produce no output row.
//
// The output order is row-major over block indices (south-to-north rows,
// west-to-east within a row), not input order. Filter is pure: inputs are
// never modified.
func (b *BlockReducer) Filter(east, north []float64, values ...[]float64) (redEast, redNorth []float64, reduced [][]float64, err error) {
	if b.Reduce == nil {
		return nil, nil, nil, fmt.Errorf("block reduce: nil reduce function")
	}
	if b.Spacing.East <= 0 || b.Spacing.North <= 0 {
		return nil, nil, nil, fmt.Errorf("block reduce: %w: block size %vx%v", ErrInvalidSpacing, b.Spacing.East, b.Spacing.North)
	}
	if err := sameLen("coordinate", east, north); err != nil {
		return nil, nil, nil, fmt.Errorf("block reduce: %w", err)
	}
	for i, v := range values {
		if len(v) != len(east) {
			return nil, nil, nil, fmt.Errorf("block reduce: %w: value column %d has length %d, coordinates %d", ErrDimensionMismatch, i, len(v), len(east))
		}
	}

	region := Region{}
	if b.Region != nil {
		region = *b.Region
		if err := region.Validate(); err != nil {
			return nil, nil, nil, fmt.Errorf("block reduce: %w", err)
		}
	} else {
		region, err = BoundingRegion(east, north)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("block reduce: %w", err)
		}
	}

	nCols := blockCount(region.East-region.West, b.Spacing.East)
	nRows := blockCount(region.North-region.South, b.Spacing.North)

	// Group point indices by flat block id (row-major).
	members := make(map[int][]int)
	for i := range east {
		col := blockIndex(east[i]-region.West, b.Spacing.East, nCols)
		row := blockIndex(north[i]-region.South, b.Spacing.North, nRows)
		id := row*nCols + col
		members[id] = append(members[id], i)
	}

	ids := make([]int, 0, len(members))
	for id := range members {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	redEast = make([]float64, 0, len(ids))
	redNorth = make([]float64, 0, len(ids))
	reduced = make([][]float64, len(values))
	for c := range reduced {
		reduced[c] = make([]float64, 0, len(ids))
	}

	var scratch []float64
	gather := func(src []float64, idx []int) []float64 {
		scratch = scratch[:0]
		for _, i := range idx {
			scratch = append(scratch, src[i])
		}
		return scratch
	}

	for _, id := range ids {
		idx := members[id]
		redEast = append(redEast, b.Reduce(gather(east, idx)))
		redNorth = append(redNorth, b.Reduce(gather(north, idx)))
		for c, v := range values {
			reduced[c] = append(reduced[c], b.Reduce(gather(v, idx)))
		}
	}
	return redEast, redNorth, reduced, nil
}

// blockCount returns how many blocks of the given size cover an extent.
// A degenerate (zero) extent still gets one block.
func blockCount(extent, size float64) int {
	n := int(math.Ceil(extent / size))
	if n < 1 {
		n = 1
	}
	return n
}

// blockIndex maps an offset from the lattice origin to a block index,
// lower-inclusive, with the far edge clamped into the last block.
func blockIndex(offset, size float64, n int) int {
	i := int(math.Floor(offset / size))
	if i < 0 {
		i = 0
	}
	if i >= n {
		i = n - 1
	}
	return i
}
