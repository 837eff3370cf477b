package grid

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Built-in aggregation functions for BlockReducer. All satisfy ReduceFunc
// and are defined for any sequence of length >= 1.

// Mean returns the arithmetic mean of the values.
func Mean(values []float64) float64 {
	return stat.Mean(values, nil)
}

// Median returns the median of the values, averaging the two middle
// elements for even-length input. The input is copied before sorting, so the
// caller's slice is left untouched.
func Median(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// MinValue returns the smallest value.
func MinValue(values []float64) float64 {
	return floats.Min(values)
}

// MaxValue returns the largest value.
func MaxValue(values []float64) float64 {
	return floats.Max(values)
}
