package kdtree

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"
)

// Index is a k-d tree over a caller-supplied point sequence that can be
// rebuilt from scratch whenever the points change.
//
// Queries report positions in the sequence most recently passed to
// SetPoints, SetAccessor or SetMatrix. Querying before the first successful
// build returns ErrNotBuilt.
type Index struct {
	cfg  Config
	dims int
	tree *Tree
}

// New returns an index with no points. Call SetPoints (or SetAccessor,
// SetMatrix) before querying. Returns an error if the config is invalid.
func New(cfg Config) (*Index, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &Index{cfg: cfg, dims: cfg.Dims}, nil
}

// NewWithPoints returns an index built over points.
func NewWithPoints(cfg Config, points [][]float64) (*Index, error) {
	ix, err := New(cfg)
	if err != nil {
		return nil, err
	}
	if err := ix.SetPoints(points); err != nil {
		return nil, err
	}
	return ix, nil
}

// SetPoints discards the current tree and builds a new one over points.
// Every row must have the index's dimensionality. With Borrowed ownership,
// points must stay unchanged until the next rebuild.
func (ix *Index) SetPoints(points [][]float64) error {
	acc, err := NewSliceAccessor(points)
	if err != nil {
		ix.cfg.Logger.LogBuildFailed(len(points), err)
		return err
	}
	return ix.SetAccessor(acc)
}

// SetMatrix discards the current tree and builds a new one whose points are
// the rows of m.
func (ix *Index) SetMatrix(m mat.Matrix) error {
	return ix.SetAccessor(NewMatrixAccessor(m))
}

// SetAccessor discards the current tree and builds a new one over acc. On
// error the previous tree stays in place.
//
// SetAccessor must not run concurrently with itself or with queries on the
// same Index.
func (ix *Index) SetAccessor(acc PointAccessor) error {
	n, dims := acc.Len(), acc.Dims()
	if n > 0 {
		if dims < 1 {
			ix.cfg.Logger.LogBuildFailed(n, ErrInvalidDimension)
			return ErrInvalidDimension
		}
		if ix.dims != 0 && dims != ix.dims {
			err := &ErrDimensionMismatch{Expected: ix.dims, Actual: dims}
			ix.cfg.Logger.LogBuildFailed(n, err)
			return err
		}
	}

	if ix.cfg.Ownership == Copied {
		acc = snapshot(acc)
	}

	start := time.Now()
	tree := NewTree(acc, ix.cfg.Metric, ix.cfg.LeafSize)
	if n > 0 {
		ix.dims = dims
	}
	ix.tree = tree
	// Every internal node has two children, so leaves = (nodes+1)/2.
	ix.cfg.Logger.LogBuild(n, dims, tree.NumNodes(), (tree.NumNodes()+1)/2, ix.cfg.Ownership, time.Since(start))
	return nil
}

// Size returns the number of indexed points, or 0 before the first build.
func (ix *Index) Size() int {
	if ix.tree == nil {
		return 0
	}
	return ix.tree.NumPoints()
}

// Dims returns the dimensionality of indexed points, or 0 while unknown.
func (ix *Index) Dims() int { return ix.dims }

// Tree returns the current tree, or nil before the first build.
func (ix *Index) Tree() *Tree { return ix.tree }

// At returns a copy of point i.
func (ix *Index) At(i int) ([]float64, error) {
	if ix.tree == nil {
		return nil, ErrNotBuilt
	}
	if i < 0 || i >= ix.tree.NumPoints() {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, ix.tree.NumPoints())
	}
	return pointInto(ix.tree.Accessor(), i, make([]float64, ix.tree.NumFeatures())), nil
}

// PointsWithinBall returns the index and distance of every point within
// radius of target, inclusive. If sorted is true the result is ordered by
// ascending distance, ties by ascending index.
func (ix *Index) PointsWithinBall(target []float64, radius float64, sorted bool) ([]Neighbor, error) {
	tree, err := ix.checkTarget(target)
	if err == nil {
		switch {
		case math.IsNaN(radius):
			err = ErrInvalidRadius
		case radius < 0:
			err = fmt.Errorf("%w, got %v", ErrNegativeRadius, radius)
		}
	}
	if err != nil {
		ix.cfg.Logger.LogQuery("points_within_ball", err)
		return nil, err
	}
	return tree.QueryRadius(target, radius, sorted), nil
}

// ClosestPoints returns the nPoints points nearest to target, or every point
// if fewer are indexed, ordered by ascending distance with ties broken by
// ascending index.
func (ix *Index) ClosestPoints(target []float64, nPoints int) ([]Neighbor, error) {
	tree, err := ix.checkTarget(target)
	if err == nil && nPoints < 0 {
		err = fmt.Errorf("%w, got %d", ErrInvalidK, nPoints)
	}
	if err != nil {
		ix.cfg.Logger.LogQuery("closest_points", err)
		return nil, err
	}
	return tree.QueryKNN(target, nPoints), nil
}

// Value returns the distance from target to the closest indexed point.
func (ix *Index) Value(target []float64) (float64, error) {
	nearest, err := ix.ClosestPoints(target, 1)
	if err != nil {
		return 0, err
	}
	if len(nearest) == 0 {
		ix.cfg.Logger.LogQuery("value", ErrEmptyIndex)
		return 0, ErrEmptyIndex
	}
	return nearest[0].Distance, nil
}

// checkTarget returns the current tree if target can be queried against it.
func (ix *Index) checkTarget(target []float64) (*Tree, error) {
	tree := ix.tree
	if tree == nil {
		return nil, ErrNotBuilt
	}
	if ix.dims != 0 && len(target) != ix.dims {
		return nil, &ErrDimensionMismatch{Expected: ix.dims, Actual: len(target)}
	}
	for _, v := range target {
		if math.IsNaN(v) {
			return nil, ErrInvalidTarget
		}
	}
	return tree, nil
}
