package kdtree

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// PointAccessor is read-only access to an ordered, zero-based sequence of
// fixed-dimension points owned by the caller.
//
// Coordinate must panic when i is outside [0, Len()) or d is outside
// [0, Dims()). The sequence must not change while an index built from it is
// still being queried.
type PointAccessor interface {
	// Len returns the number of points.
	Len() int

	// Dims returns the dimensionality shared by every point.
	Dims() int

	// Coordinate returns coordinate d of point i.
	Coordinate(i, d int) float64
}

// SliceAccessor exposes a [][]float64 where each row is one point.
type SliceAccessor struct {
	points [][]float64
	dims   int
}

// NewSliceAccessor wraps points without copying them. All rows must have the
// same length.
func NewSliceAccessor(points [][]float64) (*SliceAccessor, error) {
	if len(points) == 0 {
		return &SliceAccessor{}, nil
	}
	dims := len(points[0])
	for i, p := range points {
		if len(p) != dims {
			return nil, fmt.Errorf("kdtree: point %d has %d coordinates, point 0 has %d: %w",
				i, len(p), dims, ErrInconsistentDimensions)
		}
	}
	return &SliceAccessor{points: points, dims: dims}, nil
}

func (a *SliceAccessor) Len() int  { return len(a.points) }
func (a *SliceAccessor) Dims() int { return a.dims }

func (a *SliceAccessor) Coordinate(i, d int) float64 {
	checkCoordinate(i, d, len(a.points), a.dims)
	return a.points[i][d]
}

// FlatAccessor exposes flat row-major data holding n points of dims
// coordinates each.
type FlatAccessor struct {
	data []float64
	n    int
	dims int
}

// NewFlatAccessor wraps data without copying it. len(data) must equal n*dims.
func NewFlatAccessor(data []float64, n, dims int) (*FlatAccessor, error) {
	if n < 0 || dims < 0 {
		return nil, fmt.Errorf("kdtree: invalid flat shape %dx%d", n, dims)
	}
	if len(data) != n*dims {
		return nil, fmt.Errorf("kdtree: flat data length %d does not match n*dims = %d (n=%d, dims=%d): %w",
			len(data), n*dims, n, dims, ErrInconsistentDimensions)
	}
	return &FlatAccessor{data: data, n: n, dims: dims}, nil
}

func (a *FlatAccessor) Len() int  { return a.n }
func (a *FlatAccessor) Dims() int { return a.dims }

func (a *FlatAccessor) Coordinate(i, d int) float64 {
	checkCoordinate(i, d, a.n, a.dims)
	return a.data[i*a.dims+d]
}

// MatrixAccessor exposes the rows of a gonum matrix as points.
type MatrixAccessor struct {
	m mat.Matrix
}

// NewMatrixAccessor wraps m without copying it. Row i is point i.
func NewMatrixAccessor(m mat.Matrix) *MatrixAccessor {
	return &MatrixAccessor{m: m}
}

func (a *MatrixAccessor) Len() int {
	r, _ := a.m.Dims()
	return r
}

func (a *MatrixAccessor) Dims() int {
	_, c := a.m.Dims()
	return c
}

// Coordinate panics through mat's own bounds checks.
func (a *MatrixAccessor) Coordinate(i, d int) float64 {
	return a.m.At(i, d)
}

func checkCoordinate(i, d, n, dims int) {
	if i < 0 || i >= n || d < 0 || d >= dims {
		panic(fmt.Sprintf("kdtree: coordinate (%d, %d) out of range [0, %d) x [0, %d)", i, d, n, dims))
	}
}

// snapshot returns an owned copy of acc. Matrix sources stay matrices so
// callers can keep using gonum routines on them.
func snapshot(acc PointAccessor) PointAccessor {
	if ma, ok := acc.(*MatrixAccessor); ok {
		if r, _ := ma.m.Dims(); r > 0 {
			return NewMatrixAccessor(mat.DenseCopyOf(ma.m))
		}
	}
	n, dims := acc.Len(), acc.Dims()
	data := make([]float64, n*dims)
	for i := 0; i < n; i++ {
		for d := 0; d < dims; d++ {
			data[i*dims+d] = acc.Coordinate(i, d)
		}
	}
	return &FlatAccessor{data: data, n: n, dims: dims}
}

// pointInto copies point i of acc into dst, which must have length acc.Dims().
func pointInto(acc PointAccessor, i int, dst []float64) []float64 {
	for d := range dst {
		dst[d] = acc.Coordinate(i, d)
	}
	return dst
}
