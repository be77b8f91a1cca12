package kdtree

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// DistanceMetric provides distance computation with a reduced distance for
// cheap comparisons (e.g., squared Euclidean skips sqrt) and a lower bound to
// an axis-aligned splitting plane for tree pruning.
//
// ReducedDistance must be a strictly increasing function of Distance, with
// DistToRdist and RdistToDist converting between the two. PlaneDistance must
// never exceed the reduced distance between a point and any point lying on the
// other side of a plane at the given signed offset along one axis.
type DistanceMetric interface {
	Distance(a, b []float64) float64
	ReducedDistance(a, b []float64) float64
	PlaneDistance(offset float64) float64
	DistToRdist(d float64) float64
	RdistToDist(r float64) float64
}

// EuclideanMetric computes the Euclidean (L2) distance.
// ReducedDistance returns squared Euclidean distance (skips sqrt).
type EuclideanMetric struct{}

// Distance is the square root of ReducedDistance, so it is bit-identical to
// the distances reported by tree queries.
func (EuclideanMetric) Distance(a, b []float64) float64 {
	return math.Sqrt(euclideanSumOfSquares(a, b))
}

func (EuclideanMetric) ReducedDistance(a, b []float64) float64 {
	return euclideanSumOfSquares(a, b)
}

func (EuclideanMetric) PlaneDistance(offset float64) float64 { return offset * offset }
func (EuclideanMetric) DistToRdist(d float64) float64        { return d * d }
func (EuclideanMetric) RdistToDist(r float64) float64        { return math.Sqrt(r) }

func euclideanSumOfSquares(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// ManhattanMetric computes the Manhattan (L1 / city-block) distance.
type ManhattanMetric struct{}

func (ManhattanMetric) Distance(a, b []float64) float64 {
	return floats.Distance(a, b, 1)
}

func (m ManhattanMetric) ReducedDistance(a, b []float64) float64 { return m.Distance(a, b) }
func (ManhattanMetric) PlaneDistance(offset float64) float64      { return math.Abs(offset) }
func (ManhattanMetric) DistToRdist(d float64) float64             { return d }
func (ManhattanMetric) RdistToDist(r float64) float64             { return r }

// ChebyshevMetric computes the Chebyshev (L-infinity) distance.
type ChebyshevMetric struct{}

func (ChebyshevMetric) Distance(a, b []float64) float64 {
	return floats.Distance(a, b, math.Inf(1))
}

func (m ChebyshevMetric) ReducedDistance(a, b []float64) float64 { return m.Distance(a, b) }
func (ChebyshevMetric) PlaneDistance(offset float64) float64      { return math.Abs(offset) }
func (ChebyshevMetric) DistToRdist(d float64) float64             { return d }
func (ChebyshevMetric) RdistToDist(r float64) float64             { return r }

// MinkowskiMetric computes the Minkowski distance parameterized by P.
// P must be >= 1. Panics if P < 1.
// ReducedDistance returns sum(|a[i]-b[i]|^P) without the final root.
type MinkowskiMetric struct {
	P float64
}

func (m MinkowskiMetric) Distance(a, b []float64) float64 {
	return m.RdistToDist(m.ReducedDistance(a, b))
}

func (m MinkowskiMetric) ReducedDistance(a, b []float64) float64 {
	m.check()
	var sum float64
	for i := range a {
		sum += math.Pow(math.Abs(a[i]-b[i]), m.P)
	}
	return sum
}

func (m MinkowskiMetric) PlaneDistance(offset float64) float64 {
	return math.Pow(math.Abs(offset), m.P)
}

func (m MinkowskiMetric) DistToRdist(d float64) float64 { return math.Pow(d, m.P) }
func (m MinkowskiMetric) RdistToDist(r float64) float64 { return math.Pow(r, 1.0/m.P) }

func (m MinkowskiMetric) check() {
	if m.P < 1 {
		panic("MinkowskiMetric: P must be >= 1")
	}
}
