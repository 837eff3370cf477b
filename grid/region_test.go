package grid

import (
	"errors"
	"math"
	"testing"
)

const epsilon = 1e-10

// almostEqual checks if two floats are equal within epsilon tolerance
func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

// withinTol checks if two floats are equal within the given tolerance
func withinTol(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

func TestBoundingRegion(t *testing.T) {
	tests := []struct {
		name        string
		east, north []float64
		want        Region
	}{
		{
			name:  "scattered points",
			east:  []float64{3, -1, 2, 0},
			north: []float64{10, 4, 7, 5},
			want:  Region{West: -1, East: 3, South: 4, North: 10},
		},
		{
			name:  "single point is a degenerate region",
			east:  []float64{2},
			north: []float64{5},
			want:  Region{West: 2, East: 2, South: 5, North: 5},
		},
		{
			name:  "collinear points degenerate on one axis",
			east:  []float64{0, 1, 2},
			north: []float64{3, 3, 3},
			want:  Region{West: 0, East: 2, South: 3, North: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BoundingRegion(tt.east, tt.north)
			if err != nil {
				t.Fatalf("BoundingRegion() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("BoundingRegion() = %+v, want %+v", got, tt.want)
			}
			if err := got.Validate(); err != nil {
				t.Errorf("computed region failed validation: %v", err)
			}
		})
	}
}

func TestBoundingRegionErrors(t *testing.T) {
	_, err := BoundingRegion(nil, nil)
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("empty input: got %v, want ErrEmptyInput", err)
	}

	_, err = BoundingRegion([]float64{1, 2}, []float64{1})
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("mismatched lengths: got %v, want ErrDimensionMismatch", err)
	}
}

func TestRegionValidate(t *testing.T) {
	if err := (Region{West: 0, East: 1, South: 0, North: 1}).Validate(); err != nil {
		t.Errorf("valid region: %v", err)
	}
	if err := (Region{West: 2, East: 2, South: 3, North: 3}).Validate(); err != nil {
		t.Errorf("degenerate region should be valid: %v", err)
	}
	if err := (Region{West: 1, East: 0}).Validate(); err == nil {
		t.Error("west > east should fail validation")
	}
	if err := (Region{South: 1, North: 0}).Validate(); err == nil {
		t.Error("south > north should fail validation")
	}
}

func TestRegionPad(t *testing.T) {
	r := Region{West: 0, East: 10, South: 5, North: 15}
	got := r.Pad(2)
	want := Region{West: -2, East: 12, South: 3, North: 17}
	if got != want {
		t.Errorf("Pad(2) = %+v, want %+v", got, want)
	}
}

func TestRegionContains(t *testing.T) {
	r := Region{West: 0, East: 10, South: 0, North: 10}
	tests := []struct {
		east, north float64
		want        bool
	}{
		{5, 5, true},
		{0, 0, true},   // corner on the border
		{10, 10, true}, // far corner on the border
		{-0.1, 5, false},
		{5, 10.1, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.east, tt.north); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.east, tt.north, got, tt.want)
		}
	}
}

func TestRegionInside(t *testing.T) {
	r := Region{West: 0, East: 10, South: 0, North: 10}
	in, err := r.Inside([]float64{5, -1, 10}, []float64{5, 5, 0})
	if err != nil {
		t.Fatalf("Inside() error = %v", err)
	}
	want := []bool{true, false, true}
	for i := range want {
		if in[i] != want[i] {
			t.Errorf("Inside()[%d] = %v, want %v", i, in[i], want[i])
		}
	}
}
