package kdtree

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ClosestPointsBatch runs ClosestPoints for every target and returns the
// results in target order. Targets are split into contiguous ranges, one per
// worker, up to Config.Workers goroutines. The first failing target aborts
// the batch.
func (ix *Index) ClosestPointsBatch(targets [][]float64, nPoints int) ([][]Neighbor, error) {
	return batch(ix, targets, func(target []float64) ([]Neighbor, error) {
		return ix.ClosestPoints(target, nPoints)
	})
}

// PointsWithinBallBatch runs PointsWithinBall for every target and returns
// the results in target order, parallelized like ClosestPointsBatch.
func (ix *Index) PointsWithinBallBatch(targets [][]float64, radius float64, sorted bool) ([][]Neighbor, error) {
	return batch(ix, targets, func(target []float64) ([]Neighbor, error) {
		return ix.PointsWithinBall(target, radius, sorted)
	})
}

func batch(ix *Index, targets [][]float64, query func([]float64) ([]Neighbor, error)) ([][]Neighbor, error) {
	if ix.tree == nil {
		return nil, ErrNotBuilt
	}

	n := len(targets)
	result := make([][]Neighbor, n)
	run := func(start, end int) error {
		for i := start; i < end; i++ {
			res, err := query(targets[i])
			if err != nil {
				return fmt.Errorf("kdtree: target %d: %w", i, err)
			}
			result[i] = res
		}
		return nil
	}

	numWorkers := ix.cfg.Workers
	if numWorkers <= 1 || n <= 1 {
		if err := run(0, n); err != nil {
			return nil, err
		}
		return result, nil
	}

	// Each worker owns a contiguous range of result rows, so writes need no
	// synchronization.
	var g errgroup.Group
	rowsPerWorker := (n + numWorkers - 1) / numWorkers
	for w := 0; w < numWorkers; w++ {
		startRow := w * rowsPerWorker
		endRow := min(startRow+rowsPerWorker, n)
		if startRow >= n {
			break
		}
		g.Go(func() error { return run(startRow, endRow) })
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}
