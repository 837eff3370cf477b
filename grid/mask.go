package grid

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"gonum.org/v1/gonum/spatial/kdtree"
)

// bruteForceLimit is the reference-point count above which DistanceMask
// switches from brute-force scanning to a kd-tree. Both paths are
// metric-exact; the split is purely a performance choice.
const bruteForceLimit = 64

// DistanceMask sets every named data array of the grid to NaN at nodes
// farther than maxDistance from the nearest reference point. It prevents the
// spline from showing spurious values in areas with no observations.
//
// When a projection is supplied, both the reference points and the grid node
// coordinates are pushed through it before distances are computed, so
// maxDistance is measured in the projected frame. This mirrors gridding with
// a projection: the grid keeps geographic coordinates while distances are
// Cartesian.
//
// The grid is modified in place and returned; its coordinate arrays are
// never touched, only the data arrays.
func DistanceMask(refEast, refNorth []float64, maxDistance float64, g *Grid, projection Projection) (*Grid, error) {
	if err := sameLen("reference coordinate", refEast, refNorth); err != nil {
		return nil, fmt.Errorf("distance mask: %w", err)
	}
	if g == nil || len(g.Data) == 0 {
		return nil, fmt.Errorf("distance mask: %w: grid has no data arrays", ErrEmptyInput)
	}
	if err := g.checkShape(); err != nil {
		return nil, fmt.Errorf("distance mask: %w", err)
	}

	nodeEast, nodeNorth := meshNodes(g.Coords[1], g.Coords[0])
	if projection != nil {
		refEast, refNorth = projection(refEast, refNorth)
		if len(refEast) != len(refNorth) {
			return nil, fmt.Errorf("distance mask: %w: projection changed reference length", ErrDimensionMismatch)
		}
		nodeEast, nodeNorth = projection(nodeEast, nodeNorth)
	}

	nearest := nearestFunc(refEast, refNorth)

	rows, cols := g.Shape()
	nan := math.NaN()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			k := i*cols + j
			if nearest(nodeEast[k], nodeNorth[k]) > maxDistance {
				for _, data := range g.Data {
					data[i][j] = nan
				}
			}
		}
	}
	return g, nil
}

// nearestFunc returns an exact nearest-reference-distance function, backed
// by a kd-tree for large reference sets and a linear scan otherwise.
func nearestFunc(refEast, refNorth []float64) func(e, n float64) float64 {
	if len(refEast) > bruteForceLimit {
		points := make(kdtree.Points, len(refEast))
		for i := range refEast {
			points[i] = kdtree.Point{refEast[i], refNorth[i]}
		}
		tree := kdtree.New(points, false)
		return func(e, n float64) float64 {
			// kdtree distances are squared Euclidean.
			_, d2 := tree.Nearest(kdtree.Point{e, n})
			return math.Sqrt(d2)
		}
	}
	return func(e, n float64) float64 {
		q := orb.Point{e, n}
		best := math.Inf(1)
		for i := range refEast {
			if d := planar.Distance(q, orb.Point{refEast[i], refNorth[i]}); d < best {
				best = d
			}
		}
		return best
	}
}
