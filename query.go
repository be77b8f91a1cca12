package kdtree

import (
	"container/heap"
	"fmt"
	"sort"
)

// Neighbor is one query match: the position of a point in the indexed
// sequence and its true (non-reduced) distance from the target.
type Neighbor struct {
	Index    int
	Distance float64
}

// sortNeighbors orders by ascending distance, ties broken by ascending index.
func sortNeighbors(ns []Neighbor) {
	sort.Slice(ns, func(i, j int) bool {
		if ns[i].Distance != ns[j].Distance {
			return ns[i].Distance < ns[j].Distance
		}
		return ns[i].Index < ns[j].Index
	})
}

// QueryRadius returns every point whose distance from target is <= radius.
// If sorted is true, matches are ordered by ascending distance and then
// ascending index; otherwise they come back in traversal order.
//
// QueryRadius panics if radius is negative or NaN, or if target does not have
// NumFeatures() coordinates. The Index facade reports the same violations as
// errors instead.
func (t *Tree) QueryRadius(target []float64, radius float64, sorted bool) []Neighbor {
	if !(radius >= 0) {
		panic(fmt.Sprintf("kdtree: radius must be >= 0 and not NaN, got %v", radius))
	}
	t.checkTarget(target)
	s := t.newSearch(target)
	limit := t.metric.DistToRdist(radius)
	out := []Neighbor{}
	s.radiusSearch(0, 0, limit, &out)
	if sorted {
		sortNeighbors(out)
	}
	return out
}

// QueryKNN returns the min(k, NumPoints()) points nearest to target, ordered
// by ascending distance and then ascending index. It panics if k is negative
// or target does not have NumFeatures() coordinates.
func (t *Tree) QueryKNN(target []float64, k int) []Neighbor {
	if k < 0 {
		panic(fmt.Sprintf("kdtree: k must be >= 0, got %d", k))
	}
	t.checkTarget(target)
	k = min(k, t.n)
	if k <= 0 {
		return []Neighbor{}
	}

	s := t.newSearch(target)
	h := make(knnHeap, 0, k)
	s.knnSearch(0, 0, k, &h)

	// Extract results sorted by distance (ascending).
	out := make([]Neighbor, h.Len())
	for i := len(out) - 1; i >= 0; i-- {
		item := heap.Pop(&h).(knnItem)
		out[i] = Neighbor{Index: item.index, Distance: t.metric.RdistToDist(item.rdist)}
	}
	// Distinct reduced distances can round to the same distance; reorder so
	// such ties follow the index order used by sorted radius queries.
	sortNeighbors(out)
	return out
}

func (t *Tree) checkTarget(target []float64) {
	if t.n > 0 && len(target) != t.dims {
		panic(fmt.Sprintf("kdtree: target has %d coordinates, tree has %d", len(target), t.dims))
	}
}

// search holds per-query scratch space so concurrent queries share nothing
// mutable.
type search struct {
	t      *Tree
	target []float64
	buf    []float64
}

func (t *Tree) newSearch(target []float64) *search {
	return &search{t: t, target: target, buf: make([]float64, t.dims)}
}

func (s *search) rdist(ptIdx int) float64 {
	return s.t.metric.ReducedDistance(s.target, pointInto(s.t.acc, ptIdx, s.buf))
}

// children orders an internal node's children nearer-first and returns a
// lower bound, in reduced-distance space, on the distance from the target to
// any point under the far child. bound is the lower bound already known for
// the node itself.
func (s *search) children(nd NodeData, bound float64) (near, far int, farBound float64) {
	offset := s.target[nd.SplitDim] - nd.SplitValue
	near, far = nd.Left, nd.Right
	if offset > 0 {
		near, far = nd.Right, nd.Left
	}
	return near, far, max(bound, s.t.metric.PlaneDistance(offset))
}

// radiusSearch collects matches under nodeID, pruning subtrees whose lower
// bound exceeds limit.
func (s *search) radiusSearch(nodeID int, bound, limit float64, out *[]Neighbor) {
	nd := s.t.nodes[nodeID]
	if nd.IsLeaf {
		for i := nd.IdxStart; i < nd.IdxEnd; i++ {
			ptIdx := s.t.idxArray[i]
			if rd := s.rdist(ptIdx); rd <= limit {
				*out = append(*out, Neighbor{Index: ptIdx, Distance: s.t.metric.RdistToDist(rd)})
			}
		}
		return
	}

	near, far, farBound := s.children(nd, bound)
	s.radiusSearch(near, bound, limit, out)
	if farBound <= limit {
		s.radiusSearch(far, farBound, limit, out)
	}
}

// knnSearch performs a single-tree KNN traversal using a max-heap of size k.
func (s *search) knnSearch(nodeID int, bound float64, k int, h *knnHeap) {
	nd := s.t.nodes[nodeID]
	if nd.IsLeaf {
		for i := nd.IdxStart; i < nd.IdxEnd; i++ {
			ptIdx := s.t.idxArray[i]
			item := knnItem{index: ptIdx, rdist: s.rdist(ptIdx)}
			if h.Len() < k {
				heap.Push(h, item)
			} else if item.before((*h)[0]) {
				(*h)[0] = item
				heap.Fix(h, 0)
			}
		}
		return
	}

	near, far, farBound := s.children(nd, bound)
	s.knnSearch(near, bound, k, h)

	// Prune far child if its lower bound exceeds the current k-th distance.
	// Equal bounds are still visited: a tied point with a smaller index wins.
	if h.Len() < k || farBound <= (*h)[0].rdist {
		s.knnSearch(far, farBound, k, h)
	}
}

// --- max-heap for KNN queries ---

type knnItem struct {
	index int
	rdist float64
}

// before reports whether a ranks ahead of b: closer, or equally close with a
// smaller index.
func (a knnItem) before(b knnItem) bool {
	if a.rdist != b.rdist {
		return a.rdist < b.rdist
	}
	return a.index < b.index
}

// knnHeap is a max-heap of knnItem (worst candidate on top) used as a
// bounded priority queue for KNN queries.
type knnHeap []knnItem

func (h knnHeap) Len() int           { return len(h) }
func (h knnHeap) Less(i, j int) bool { return h[j].before(h[i]) } // max-heap
func (h knnHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *knnHeap) Push(x any)        { *h = append(*h, x.(knnItem)) }
func (h *knnHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
