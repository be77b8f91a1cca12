package kdtree

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEdgeCase_SinglePoint(t *testing.T) {
	ix := newIndex(t, DefaultConfig(), [][]float64{{1.0, 2.0}})

	closest, err := ix.ClosestPoints([]float64{4, 6}, 5)
	require.NoError(t, err)
	require.Len(t, closest, 1)
	assert.InDelta(t, 5.0, closest[0].Distance, floatTol)

	ball, err := ix.PointsWithinBall([]float64{4, 6}, 4.99, false)
	require.NoError(t, err)
	assert.Empty(t, ball)
}

func TestEdgeCase_AllIdenticalPoints(t *testing.T) {
	points := make([][]float64, 1000)
	for i := range points {
		points[i] = []float64{5.0, 5.0}
	}
	cfg := DefaultConfig()
	cfg.LeafSize = 1
	ix := newIndex(t, cfg, points)

	ball, err := ix.PointsWithinBall([]float64{5, 5}, 0, true)
	require.NoError(t, err)
	require.Len(t, ball, 1000)
	for i, nb := range ball {
		assert.Equal(t, i, nb.Index)
		assert.Equal(t, 0.0, nb.Distance)
	}

	closest, err := ix.ClosestPoints([]float64{6, 5}, 3)
	require.NoError(t, err)
	assert.Equal(t, []Neighbor{{0, 1}, {1, 1}, {2, 1}}, closest)
}

func TestEdgeCase_LargeCollinear(t *testing.T) {
	points := make([][]float64, 20000)
	for i := range points {
		points[i] = []float64{float64(i), 0, 0}
	}
	cfg := DefaultConfig()
	cfg.LeafSize = 1
	ix := newIndex(t, cfg, points)

	closest, err := ix.ClosestPoints([]float64{12345.4, 0, 0}, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{12345, 12346}, indicesOf(closest))
}

func TestEdgeCase_InfiniteCoordinates(t *testing.T) {
	points := [][]float64{{0, 0}, {math.Inf(1), 0}, {1, 1}}
	ix := newIndex(t, DefaultConfig(), points)

	closest, err := ix.ClosestPoints([]float64{0, 0}, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 1}, indicesOf(closest))
	assert.True(t, math.IsInf(closest[2].Distance, 1))

	ball, err := ix.PointsWithinBall([]float64{0, 0}, 10, true)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, indicesOf(ball))
}

func TestEdgeCase_NegativeZeroAndDuplicates(t *testing.T) {
	points := [][]float64{{0}, {math.Copysign(0, -1)}, {0}, {1}}
	ix := newIndex(t, DefaultConfig(), points)

	ball, err := ix.PointsWithinBall([]float64{0}, 0, true)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, indicesOf(ball))
}

func TestEdgeCase_KEqualsN(t *testing.T) {
	points := [][]float64{{0, 0}, {1, 1}, {2, 2}}
	ix := newIndex(t, DefaultConfig(), points)

	for _, k := range []int{3, 4, 1 << 20} {
		closest, err := ix.ClosestPoints([]float64{2, 2}, k)
		require.NoError(t, err)
		assert.Equal(t, []int{2, 1, 0}, indicesOf(closest))
	}
}
