package kdtree

// NodeData describes a single node in a Tree.
//
// Every node covers the range IdxStart..IdxEnd of the tree's permutation
// array. Internal nodes split that range in two: points in the Left child
// have coordinate SplitDim <= SplitValue, points in the Right child have
// coordinate SplitDim >= SplitValue.
type NodeData struct {
	IdxStart, IdxEnd int
	IsLeaf           bool
	SplitDim         int
	SplitValue       float64
	Left, Right      int // child node positions; -1 for leaves
}

// Len returns the number of points under the node.
func (n NodeData) Len() int { return n.IdxEnd - n.IdxStart }

func leafNode(start, end int) NodeData {
	return NodeData{IdxStart: start, IdxEnd: end, IsLeaf: true, Left: -1, Right: -1}
}
