package grid

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// PointsToGeoJSON converts scattered points and a parallel value sequence
// into a GeoJSON FeatureCollection of Point features, each carrying its
// value under the given property name. Coordinate order follows GeoJSON
// convention: x (easting/longitude) first.
func PointsToGeoJSON(east, north, values []float64, name string) (*geojson.FeatureCollection, error) {
	if err := sameLen("coordinate", east, north); err != nil {
		return nil, fmt.Errorf("points to geojson: %w", err)
	}
	if len(values) != len(east) {
		return nil, fmt.Errorf("points to geojson: %w: %d values for %d coordinates", ErrDimensionMismatch, len(values), len(east))
	}
	if name == "" {
		name = "value"
	}

	fc := geojson.NewFeatureCollection()
	for i := range east {
		f := geojson.NewFeature(orb.Point{east[i], north[i]})
		f.Properties = geojson.Properties{name: values[i]}
		fc.Append(f)
	}
	return fc, nil
}

// GridToGeoJSON converts a grid into a FeatureCollection with one Point
// feature per node, carrying every named data array as a property. Nodes
// where all data arrays are masked (NaN) are skipped entirely; a node with
// at least one unmasked array is kept, with NaN entries omitted from its
// properties.
func GridToGeoJSON(g *Grid) (*geojson.FeatureCollection, error) {
	if g == nil || len(g.Data) == 0 {
		return nil, fmt.Errorf("grid to geojson: %w: grid has no data arrays", ErrEmptyInput)
	}
	if err := g.checkShape(); err != nil {
		return nil, fmt.Errorf("grid to geojson: %w", err)
	}

	fc := geojson.NewFeatureCollection()
	rows, cols := g.Shape()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			props := geojson.Properties{}
			for name, data := range g.Data {
				if !math.IsNaN(data[i][j]) {
					props[name] = data[i][j]
				}
			}
			if len(props) == 0 {
				continue
			}
			// Column axis is x, row axis is y.
			f := geojson.NewFeature(orb.Point{g.Coords[1][j], g.Coords[0][i]})
			f.Properties = props
			fc.Append(f)
		}
	}
	return fc, nil
}
