// Package kdtree implements a k-d tree spatial index over an immutable set of
// fixed-dimension points.
//
// The index answers two kinds of query: every point within a radius of a
// target, and the k points nearest to a target. Points are never copied by
// default. The index borrows them through a [PointAccessor] and builds a
// permutation of their positions, so every result refers back to the
// caller's original ordering.
//
// Basic usage:
//
//	idx, err := kdtree.NewWithPoints(kdtree.DefaultConfig(), points)
//	// idx.PointsWithinBall(target, 1.5, true) returns matches sorted by distance
//	// idx.ClosestPoints(target, 3) returns the 3 nearest points
//	// idx.Value(target) is the distance to the nearest point
//
// Any container can be indexed by implementing [PointAccessor]. The package
// ships accessors for [][]float64, flat row-major []float64 and gonum
// matrices.
//
// # Ownership
//
// With [Borrowed] ownership (the default) the caller must keep the point
// storage unchanged for as long as the index is queried, and must call
// SetPoints again after modifying it. [Copied] ownership snapshots the points
// on every build, trading memory for freedom from that hazard.
//
// # Concurrency
//
// A built index is read-only. Queries may run concurrently from any number of
// goroutines. Rebuilding (SetPoints, SetAccessor, SetMatrix) must not overlap
// with itself or with any query on the same Index; callers serialize this
// themselves.
package kdtree
