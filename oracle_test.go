package kdtree

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
	gonumkd "gonum.org/v1/gonum/spatial/kdtree"
)

// gonumTree builds gonum's k-d tree over a copy of points; gonum reorders its
// input during construction.
func gonumTree(points [][]float64) *gonumkd.Tree {
	ps := make(gonumkd.Points, len(points))
	for i, p := range points {
		ps[i] = append(gonumkd.Point(nil), p...)
	}
	return gonumkd.New(ps, false)
}

// sortedDists returns the squared distances held by a gonum keeper, ascending.
func sortedDists(h gonumkd.Heap) []float64 {
	dists := make([]float64, 0, len(h))
	for _, cd := range h {
		if cd.Comparable != nil {
			dists = append(dists, cd.Dist)
		}
	}
	sort.Float64s(dists)
	return dists
}

func squaredDists(ns []Neighbor) []float64 {
	dists := make([]float64, len(ns))
	for i, n := range ns {
		dists[i] = n.Distance * n.Distance
	}
	return dists
}

func TestTree_KNN_MatchesGonum(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for _, dims := range []int{1, 2, 3, 4} {
		points := randomPoints(rng, 2000, dims)
		ours := buildTree(t, points, 10)
		theirs := gonumTree(points)

		for q := 0; q < 25; q++ {
			target := randomTarget(rng, dims)
			for _, k := range []int{1, 5, 17} {
				keeper := gonumkd.NewNKeeper(k)
				theirs.NearestSet(keeper, gonumkd.Point(target))

				got := squaredDists(ours.QueryKNN(target, k))
				want := sortedDists(keeper.Heap)
				require.Len(t, got, len(want))
				require.InDeltaSlice(t, want, got, 1e-6, "dims=%d k=%d", dims, k)
			}
		}
	}
}

func TestTree_Radius_MatchesGonum(t *testing.T) {
	rng := rand.New(rand.NewSource(100))
	points := randomPoints(rng, 1500, 3)
	ours := buildTree(t, points, 7)
	theirs := gonumTree(points)

	for q := 0; q < 25; q++ {
		target := randomTarget(rng, 3)
		radius := 5 + rng.Float64()*20

		keeper := gonumkd.NewDistKeeper(radius * radius)
		theirs.NearestSet(keeper, gonumkd.Point(target))

		got := squaredDists(ours.QueryRadius(target, radius, true))
		want := sortedDists(keeper.Heap)
		require.Len(t, got, len(want), "radius=%v", radius)
		require.InDeltaSlice(t, want, got, 1e-6)
	}
}
