package grid

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// Kernel is a radial basis function of the Euclidean distance between a
// training point and an evaluation point.
type Kernel func(r float64) float64

// Biharmonic is the Green's function of the 2-D biharmonic operator,
// phi(r) = r^2 * ln(r), with the removable singularity at r == 0 set to 0.
// It produces minimum-curvature surfaces through scattered data and is the
// default kernel.
func Biharmonic(r float64) float64 {
	if r == 0 {
		return 0
	}
	return r * r * math.Log(r)
}

// GaussianKernel returns a Gaussian radial basis with the given width.
func GaussianKernel(width float64) Kernel {
	return func(r float64) float64 {
		return math.Exp(-(r * r) / (2 * width * width))
	}
}

// ExponentialKernel returns an exponential radial basis with the given
// length scale.
func ExponentialKernel(scale float64) Kernel {
	return func(r float64) float64 {
		return math.Exp(-r / scale)
	}
}

// Spline configures a biharmonic-spline fit of scattered data. The zero
// value is usable: biharmonic kernel, no damping, no trend, parallel
// prediction across all CPUs.
//
// Spline is the unfitted half of the fitter; Fit returns an immutable
// FittedSpline and never mutates the configuration, so there is no
// partially-fitted state to misuse.
type Spline struct {
	// Damping adds a ridge term (damping * I) to the normal equations,
	// stabilizing fits with nearly collocated points at the cost of exact
	// interpolation. Zero requests exact interpolation. The ridge applies
	// to all unknowns, trend terms included.
	Damping float64

	// Kernel selects the radial basis. Nil means Biharmonic.
	Kernel Kernel

	// Trend, when true, augments the basis with a first-degree polynomial
	// (1, east, north), letting the spline ride on a planar trend.
	Trend bool

	// Workers bounds prediction parallelism: 0 means all CPUs, 1 forces
	// serial evaluation. Results are identical for any worker count.
	Workers int
}

// FittedSpline is an immutable fitted model: the training coordinates plus
// one solved weight per training point (and trend terms when enabled). It is
// safe for concurrent use.
type FittedSpline struct {
	east, north []float64
	weights     []float64
	mean        float64
	kernel      Kernel
	trend       bool
	workers     int
	region      Region
}

// Fit solves for the basis weights that reproduce the given values at the
// given coordinates and returns the fitted model. The inputs are copied, so
// the caller may reuse its slices.
//
// Singularity policy, deterministic by construction: with Damping == 0 the
// collocation system is solved by QR least squares and a near-singular
// system (as reported by gonum's condition estimate) fails with
// ErrSingularSystem; with Damping > 0 the ridge-augmented normal equations
// are solved by Cholesky and a failed factorization likewise fails with
// ErrSingularSystem. There is no silent fallback between the two paths.
func (s Spline) Fit(east, north, values []float64) (*FittedSpline, error) {
	if err := sameLen("coordinate", east, north); err != nil {
		return nil, fmt.Errorf("spline fit: %w", err)
	}
	if len(values) != len(east) {
		return nil, fmt.Errorf("spline fit: %w: %d values for %d coordinates", ErrDimensionMismatch, len(values), len(east))
	}

	kernel := s.Kernel
	if kernel == nil {
		kernel = Biharmonic
	}

	n := len(east)
	p := n
	if s.Trend {
		p += 3
	}

	// Collocation matrix: one row per data point, one column per basis
	// term (training point kernels, then optional 1, east, north).
	g := mat.NewDense(n, p, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			g.Set(i, j, kernel(euclidean(east[i], north[i], east[j], north[j])))
		}
		if s.Trend {
			g.Set(i, n, 1)
			g.Set(i, n+1, east[i])
			g.Set(i, n+2, north[i])
		}
	}
	// The basis is solved against demeaned values and the mean is restored
	// on evaluation. This keeps the expansion anchored at the data level
	// instead of decaying toward zero away from the points.
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(n)
	residual := make([]float64, n)
	for i, v := range values {
		residual[i] = v - mean
	}
	d := mat.NewVecDense(n, residual)

	var w mat.VecDense
	if s.Damping == 0 {
		if err := w.SolveVec(g, d); err != nil {
			if _, ok := err.(mat.Condition); ok {
				return nil, fmt.Errorf("spline fit: %w: set Damping > 0 to regularize", ErrSingularSystem)
			}
			return nil, fmt.Errorf("spline fit: %w", err)
		}
	} else {
		// Normal equations with the ridge term on the diagonal.
		var gtg mat.Dense
		gtg.Mul(g.T(), g)
		a := mat.NewSymDense(p, nil)
		for i := 0; i < p; i++ {
			for j := i; j < p; j++ {
				v := gtg.At(i, j)
				if i == j {
					v += s.Damping
				}
				a.SetSym(i, j, v)
			}
		}
		var b mat.VecDense
		b.MulVec(g.T(), d)

		var chol mat.Cholesky
		if ok := chol.Factorize(a); !ok {
			return nil, fmt.Errorf("spline fit: %w: damped normal equations are not positive definite", ErrSingularSystem)
		}
		if err := chol.SolveVecTo(&w, &b); err != nil {
			return nil, fmt.Errorf("spline fit: %w", ErrSingularSystem)
		}
	}

	region, err := BoundingRegion(east, north)
	if err != nil {
		return nil, fmt.Errorf("spline fit: %w", err)
	}

	weights := make([]float64, p)
	copy(weights, w.RawVector().Data)
	return &FittedSpline{
		east:    append([]float64(nil), east...),
		north:   append([]float64(nil), north...),
		weights: weights,
		mean:    mean,
		kernel:  kernel,
		trend:   s.Trend,
		workers: s.Workers,
		region:  region,
	}, nil
}

// DataRegion returns the bounding region of the training coordinates,
// the natural default region for gridding.
func (f *FittedSpline) DataRegion() Region {
	return f.region
}

// Predict evaluates the fitted basis expansion at arbitrary query points.
// Cost is O(N*M) for N training and M query points; pre-reducing the
// training data with BlockReducer is the lever for keeping it affordable.
//
// Evaluation is fanned out over contiguous chunks of query points. Each
// output element is written by exactly one goroutine and no cross-chunk
// accumulation occurs, so results are bit-for-bit identical for any worker
// count.
func (f *FittedSpline) Predict(east, north []float64) ([]float64, error) {
	if err := sameLen("query coordinate", east, north); err != nil {
		return nil, fmt.Errorf("spline predict: %w", err)
	}

	out := make([]float64, len(east))
	workers := f.workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(east) {
		workers = len(east)
	}
	if workers <= 1 {
		f.predictRange(east, north, out, 0, len(east))
		return out, nil
	}

	var wg sync.WaitGroup
	chunk := (len(east) + workers - 1) / workers
	for lo := 0; lo < len(east); lo += chunk {
		hi := lo + chunk
		if hi > len(east) {
			hi = len(east)
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			f.predictRange(east, north, out, lo, hi)
		}(lo, hi)
	}
	wg.Wait()
	return out, nil
}

func (f *FittedSpline) predictRange(east, north, out []float64, lo, hi int) {
	n := len(f.east)
	for m := lo; m < hi; m++ {
		sum := f.mean
		for j := 0; j < n; j++ {
			sum += f.weights[j] * f.kernel(euclidean(east[m], north[m], f.east[j], f.north[j]))
		}
		if f.trend {
			sum += f.weights[n] + f.weights[n+1]*east[m] + f.weights[n+2]*north[m]
		}
		out[m] = sum
	}
}

// GridOptions controls Grid output naming and the optional projection
// decoupling.
type GridOptions struct {
	// Projection, when non-nil, decouples the output frame from the fit
	// frame: nodes are generated in the output frame from the region, then
	// pushed through the forward projection to obtain the coordinates the
	// model is evaluated at. The grid's stored coordinates stay in the
	// output frame.
	Projection Projection

	// Dims names the row and column axes. Empty entries default to
	// "northing"/"easting" without a projection and
	// "latitude"/"longitude" with one.
	Dims [2]string

	// DataName names the predicted data array. Empty defaults to "values".
	DataName string
}

// Grid generates a regular mesh over the region, evaluates the model at the
// (possibly projected) node coordinates, and assembles a labeled Grid.
func (f *FittedSpline) Grid(region Region, spacing Spacing, opts GridOptions) (*Grid, error) {
	east, north, err := GridCoordinates(region, spacing)
	if err != nil {
		return nil, fmt.Errorf("spline grid: %w", err)
	}
	flatEast, flatNorth := meshNodes(east, north)

	evalEast, evalNorth := flatEast, flatNorth
	if opts.Projection != nil {
		evalEast, evalNorth = opts.Projection(flatEast, flatNorth)
		if len(evalEast) != len(flatEast) || len(evalNorth) != len(flatNorth) {
			return nil, fmt.Errorf("spline grid: %w: projection changed sequence length", ErrDimensionMismatch)
		}
	}

	values, err := f.Predict(evalEast, evalNorth)
	if err != nil {
		return nil, fmt.Errorf("spline grid: %w", err)
	}

	dims := opts.Dims
	if dims[0] == "" {
		dims[0] = "northing"
		if opts.Projection != nil {
			dims[0] = "latitude"
		}
	}
	if dims[1] == "" {
		dims[1] = "easting"
		if opts.Projection != nil {
			dims[1] = "longitude"
		}
	}
	name := opts.DataName
	if name == "" {
		name = "values"
	}

	return &Grid{
		Dims:   dims,
		Coords: [2][]float64{north, east},
		Data:   map[string][][]float64{name: reshape(values, len(north), len(east))},
	}, nil
}

func euclidean(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}
