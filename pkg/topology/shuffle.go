package topology

import "sort"

// ShuffleTopology is a GraphTopology whose nodes have been permuted, with
// NodePropIndices[i] mapping local node i back to the base topology's node
// property index.
type ShuffleTopology struct {
	GraphTopology
	NodePropIndices []uint64
	NodeSort        NodeSortKind
}

// MakeNodeSortedTopo computes a node permutation from less(a, b), then
// rebuilds the CSR under that permutation: prefix-sums the permuted
// degrees into new adj_indices and scatters each node's edges (translating
// destinations through the same permutation) into their new slots.
func MakeNodeSortedTopo(base *GraphTopology, less func(a, b uint32) bool, sortKind NodeSortKind) *ShuffleTopology {
	n := base.NumNodes()
	perm := make([]uint32, n)
	for i := range perm {
		perm[i] = uint32(i)
	}
	sort.SliceStable(perm, func(i, j int) bool { return less(perm[i], perm[j]) })

	// oldToNew[oldID] = newID
	oldToNew := make([]uint32, n)
	for newID, oldID := range perm {
		oldToNew[oldID] = uint32(newID)
	}

	newAdj := make([]uint64, n)
	var sum uint64
	for newID, oldID := range perm {
		sum += uint64(base.Degree(oldID))
		newAdj[newID] = sum
	}

	m := base.NumEdges()
	newDests := make([]uint32, m)
	newProps := make([]uint64, m)
	var cursor uint64
	for _, oldID := range perm {
		b, e := base.EdgeRange(oldID)
		for ei := b; ei < e; ei++ {
			newDests[cursor] = oldToNew[base.Dests[ei]]
			newProps[cursor] = base.EdgePropIndices[ei]
			cursor++
		}
	}

	nodePropIndices := make([]uint64, n)
	for newID, oldID := range perm {
		nodePropIndices[newID] = uint64(oldID)
	}

	return &ShuffleTopology{
		GraphTopology: GraphTopology{
			AdjIndices:      newAdj,
			Dests:           newDests,
			EdgePropIndices: newProps,
			Transpose:       base.Transpose,
			EdgeSort:        EdgeSortAny,
		},
		NodePropIndices: nodePropIndices,
		NodeSort:        sortKind,
	}
}

// ByDegreeDescending is a MakeNodeSortedTopo comparator ordering nodes by
// decreasing out-degree, the sort the view cache uses for NodeSortByDegree.
func ByDegreeDescending(base *GraphTopology) func(a, b uint32) bool {
	return func(a, b uint32) bool { return base.Degree(a) > base.Degree(b) }
}
