package main

import (
	"math"

	"github.com/kwv/geogrid/grid"
)

// earthRadius is the WGS 84 equatorial radius in meters, matching the
// spherical Mercator convention.
const earthRadius = 6378137.0

// MercatorProjection returns the forward spherical Mercator projection with
// the given latitude of true scale, mapping (longitude, latitude) degree
// sequences to (easting, northing) in meters. It satisfies grid.Projection;
// the core treats it as an opaque coordinate transform.
func MercatorProjection(latTrueScale float64) grid.Projection {
	k := earthRadius * math.Cos(latTrueScale*math.Pi/180)
	return func(lon, lat []float64) ([]float64, []float64) {
		east := make([]float64, len(lon))
		north := make([]float64, len(lat))
		for i := range lon {
			east[i] = k * lon[i] * math.Pi / 180
			north[i] = k * math.Log(math.Tan(math.Pi/4+lat[i]*math.Pi/360))
		}
		return east, north
	}
}

// MercatorInverse returns the inverse of MercatorProjection with the same
// latitude of true scale, mapping (easting, northing) meters back to
// (longitude, latitude) degrees. The demo uses it only to express projected
// artifacts in geographic coordinates for GeoJSON output.
func MercatorInverse(latTrueScale float64) grid.Projection {
	k := earthRadius * math.Cos(latTrueScale*math.Pi/180)
	return func(east, north []float64) ([]float64, []float64) {
		lon := make([]float64, len(east))
		lat := make([]float64, len(north))
		for i := range east {
			lon[i] = east[i] / k * 180 / math.Pi
			lat[i] = (2*math.Atan(math.Exp(north[i]/k)) - math.Pi/2) * 180 / math.Pi
		}
		return lon, lat
	}
}
