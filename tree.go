package kdtree

import "math"

// Tree is an immutable k-d tree over the points of a PointAccessor. Points are
// never moved; construction reorders a permutation array instead, so every
// leaf owns a contiguous range of original point positions.
//
// Nodes are stored in preorder with explicit child positions; the root is
// node 0. A Tree is safe for concurrent queries.
type Tree struct {
	acc      PointAccessor
	metric   DistanceMetric
	n        int // number of points
	dims     int // dimensionality
	leafSize int
	idxArray []int // permutation: tree-order position → original index
	nodes    []NodeData
}

// NewTree builds a k-d tree over acc. leafSize controls the max points per
// leaf node and is raised to 1 if smaller. The tree borrows acc; it must not
// change while the tree is in use.
func NewTree(acc PointAccessor, metric DistanceMetric, leafSize int) *Tree {
	if leafSize < 1 {
		leafSize = 1
	}
	if metric == nil {
		metric = EuclideanMetric{}
	}

	n := acc.Len()
	idxArray := make([]int, n)
	for i := range idxArray {
		idxArray[i] = i
	}

	// Capacity hint only; median splits can produce a few more leaves.
	capHint := 1
	if n > 0 {
		capHint = 2*((n+leafSize-1)/leafSize) - 1
	}

	t := &Tree{
		acc:      acc,
		metric:   metric,
		n:        n,
		dims:     acc.Dims(),
		leafSize: leafSize,
		idxArray: idxArray,
		nodes:    make([]NodeData, 0, capHint),
	}
	t.build()
	return t
}

// build partitions idxArray with an explicit work stack so very large inputs
// cannot exhaust the goroutine stack. Splitting stops on leaf size alone, so
// coincident or collinear points still terminate.
func (t *Tree) build() {
	t.nodes = append(t.nodes, leafNode(0, t.n))
	if t.n <= t.leafSize {
		return
	}

	lo := make([]float64, t.dims)
	hi := make([]float64, t.dims)
	stack := []int{0}
	for len(stack) > 0 {
		nodeID := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		start, end := t.nodes[nodeID].IdxStart, t.nodes[nodeID].IdxEnd
		count := end - start
		if count <= t.leafSize {
			continue
		}

		splitDim := t.widestDimension(start, end, lo, hi)
		mid := start + count/2
		t.selectNth(start, end, mid, splitDim)

		left := len(t.nodes)
		t.nodes = append(t.nodes, leafNode(start, mid))
		right := len(t.nodes)
		t.nodes = append(t.nodes, leafNode(mid, end))

		t.nodes[nodeID] = NodeData{
			IdxStart:   start,
			IdxEnd:     end,
			SplitDim:   splitDim,
			SplitValue: t.acc.Coordinate(t.idxArray[mid], splitDim),
			Left:       left,
			Right:      right,
		}

		stack = append(stack, right, left)
	}
}

// widestDimension returns the dimension with the greatest spread (max - min)
// over idxArray[start:end]. Ties go to the lowest dimension.
func (t *Tree) widestDimension(start, end int, lo, hi []float64) int {
	for d := 0; d < t.dims; d++ {
		lo[d] = math.Inf(1)
		hi[d] = math.Inf(-1)
	}
	for i := start; i < end; i++ {
		ptIdx := t.idxArray[i]
		for d := 0; d < t.dims; d++ {
			v := t.acc.Coordinate(ptIdx, d)
			if v < lo[d] {
				lo[d] = v
			}
			if v > hi[d] {
				hi[d] = v
			}
		}
	}

	splitDim := 0
	maxSpread := -1.0
	for d := 0; d < t.dims; d++ {
		if spread := hi[d] - lo[d]; spread > maxSpread {
			maxSpread = spread
			splitDim = d
		}
	}
	return splitDim
}

// selectNth reorders idxArray[start:end] in place so that position nth holds
// the element that would be there if the range were sorted along dim, with
// smaller elements before it and larger ones after. Elements are ordered by
// (coordinate, original index), which makes the result deterministic and
// keeps runs of equal coordinates from degrading the partition.
func (t *Tree) selectNth(start, end, nth, dim int) {
	idx := t.idxArray
	less := func(a, b int) bool {
		va, vb := t.acc.Coordinate(a, dim), t.acc.Coordinate(b, dim)
		if va != vb {
			return va < vb
		}
		return a < b
	}

	for end-start > 1 {
		// Median of three, moved to end-1 as the pivot.
		m := start + (end-start)/2
		last := end - 1
		if less(idx[m], idx[start]) {
			idx[m], idx[start] = idx[start], idx[m]
		}
		if less(idx[last], idx[start]) {
			idx[last], idx[start] = idx[start], idx[last]
		}
		if less(idx[m], idx[last]) {
			idx[m], idx[last] = idx[last], idx[m]
		}

		pivot := idx[last]
		store := start
		for i := start; i < last; i++ {
			if less(idx[i], pivot) {
				idx[i], idx[store] = idx[store], idx[i]
				store++
			}
		}
		idx[store], idx[last] = idx[last], idx[store]

		switch {
		case nth == store:
			return
		case nth < store:
			end = store
		default:
			start = store + 1
		}
	}
}

// --- inspection ---

func (t *Tree) Accessor() PointAccessor   { return t.acc }
func (t *Tree) Metric() DistanceMetric    { return t.metric }
func (t *Tree) NumPoints() int            { return t.n }
func (t *Tree) NumFeatures() int          { return t.dims }
func (t *Tree) LeafSize() int             { return t.leafSize }
func (t *Tree) IdxArray() []int           { return t.idxArray }
func (t *Tree) NodeDataArray() []NodeData { return t.nodes }
func (t *Tree) NumNodes() int             { return len(t.nodes) }

// ChildNodes returns the left and right child node positions.
// Both are -1 for leaf nodes.
func (t *Tree) ChildNodes(node int) (left, right int) {
	return t.nodes[node].Left, t.nodes[node].Right
}

// Leaves returns the permutation ranges of every leaf in left-to-right order.
// Together they cover [0, NumPoints()) exactly once.
func (t *Tree) Leaves() [][2]int {
	var leaves [][2]int
	for _, nd := range t.walk() {
		if nd.IsLeaf {
			leaves = append(leaves, [2]int{nd.IdxStart, nd.IdxEnd})
		}
	}
	return leaves
}

// Depth returns the number of levels in the tree; a single leaf has depth 1.
func (t *Tree) Depth() int {
	type item struct{ node, depth int }
	maxDepth := 0
	stack := []item{{0, 1}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		maxDepth = max(maxDepth, it.depth)
		if nd := t.nodes[it.node]; !nd.IsLeaf {
			stack = append(stack, item{nd.Right, it.depth + 1}, item{nd.Left, it.depth + 1})
		}
	}
	return maxDepth
}

// walk returns nodes in depth-first, left-first order.
func (t *Tree) walk() []NodeData {
	out := make([]NodeData, 0, len(t.nodes))
	stack := []int{0}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		nd := t.nodes[id]
		out = append(out, nd)
		if !nd.IsLeaf {
			stack = append(stack, nd.Right, nd.Left)
		}
	}
	return out
}
