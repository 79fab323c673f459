// Package topology implements the CSR graph representations the
// rest of the library operates over: a base GraphTopology, its shuffled and
// edge-type-aware derivatives, and the transforms that produce one from
// another.
package topology

import (
	"sort"
	"sync/atomic"

	"github.com/parascale/graphkit/pkg/errors"
	"github.com/parascale/graphkit/pkg/parallel"
)

// TransposeKind tags whether a topology's edges run forward or have been
// reversed relative to the base.
type TransposeKind int

const (
	TransposeNo TransposeKind = iota
	TransposeYes
)

// EdgeSortKind tags the sort order of each node's outgoing edge range.
type EdgeSortKind int

const (
	EdgeSortAny EdgeSortKind = iota
	EdgeSortedByDestID
	EdgeSortedByEdgeType
	EdgeSortedByNodeType
)

// NodeSortKind tags the permutation applied to node IDs in a ShuffleTopology.
type NodeSortKind int

const (
	NodeSortNone NodeSortKind = iota
	NodeSortByDegree
	NodeSortByType
	NodeSortCustom
)

// GraphTopology is a CSR: node n's outgoing edges occupy
// Dests[AdjIndices[n-1]:AdjIndices[n]], with AdjIndices[-1] treated as 0.
// SortEdgesByDestID and SortEdgesByTypeThenDest reorder the receiver's edge
// ranges in place; the other methods leave the receiver unchanged.
type GraphTopology struct {
	AdjIndices      []uint64
	Dests           []uint32
	EdgePropIndices []uint64
	Transpose       TransposeKind
	EdgeSort        EdgeSortKind
}

// NewGraphTopology validates and wraps adjIndices/dests into a base
// topology with an identity edge-property permutation.
func NewGraphTopology(adjIndices []uint64, dests []uint32) (*GraphTopology, error) {
	if err := validateCSR(adjIndices, dests); err != nil {
		return nil, err
	}
	propIndices := make([]uint64, len(dests))
	for i := range propIndices {
		propIndices[i] = uint64(i)
	}
	return &GraphTopology{
		AdjIndices:      adjIndices,
		Dests:           dests,
		EdgePropIndices: propIndices,
		Transpose:       TransposeNo,
		EdgeSort:        EdgeSortAny,
	}, nil
}

func validateCSR(adjIndices []uint64, dests []uint32) error {
	numNodes := len(adjIndices)
	numEdges := len(dests)
	var prev uint64
	for i, v := range adjIndices {
		if v < prev {
			return errors.InvalidArgument("topology: adj_indices not nondecreasing at node %d", i)
		}
		prev = v
	}
	if numNodes > 0 && adjIndices[numNodes-1] != uint64(numEdges) {
		return errors.InvalidArgument("topology: adj_indices[num_nodes-1]=%d does not match num_edges=%d", adjIndices[numNodes-1], numEdges)
	}
	for e, d := range dests {
		if int(d) >= numNodes {
			return errors.InvalidArgument("topology: dest %d at edge %d out of range [0,%d)", d, e, numNodes)
		}
	}
	return nil
}

// NumNodes returns the node count.
func (g *GraphTopology) NumNodes() int { return len(g.AdjIndices) }

// NumEdges returns the edge count.
func (g *GraphTopology) NumEdges() int { return len(g.Dests) }

// EdgeRange returns the half-open [begin, end) edge index range for node n.
func (g *GraphTopology) EdgeRange(n uint32) (begin, end uint64) {
	if n == 0 {
		return 0, g.AdjIndices[0]
	}
	return g.AdjIndices[n-1], g.AdjIndices[n]
}

// Degree returns the out-degree of node n.
func (g *GraphTopology) Degree(n uint32) int {
	b, e := g.EdgeRange(n)
	return int(e - b)
}

// Edges returns the destination slice for node n's outgoing edges.
func (g *GraphTopology) Edges(n uint32) []uint32 {
	b, e := g.EdgeRange(n)
	return g.Dests[b:e]
}

// Copy deep-copies the topology, preserving tags.
func (g *GraphTopology) Copy() *GraphTopology {
	out := &GraphTopology{
		AdjIndices:      append([]uint64(nil), g.AdjIndices...),
		Dests:           append([]uint32(nil), g.Dests...),
		EdgePropIndices: append([]uint64(nil), g.EdgePropIndices...),
		Transpose:       g.Transpose,
		EdgeSort:        g.EdgeSort,
	}
	return out
}

// Transposed produces a new CSR where new.Edges(v) enumerates
// {u : v in base.Edges(u)}, via parallel count -> prefix sum -> scatter.
func (g *GraphTopology) Transposed() *GraphTopology {
	n := g.NumNodes()
	m := g.NumEdges()

	inDegree := make([]atomic.Uint64, n)
	parallel.DoAll(g.Dests, func(d uint32) {
		inDegree[d].Add(1)
	})

	newAdj := make([]uint64, n)
	var sum uint64
	for i := 0; i < n; i++ {
		sum += inDegree[i].Load()
		newAdj[i] = sum
	}

	cursor := make([]atomic.Uint64, n)
	for i := 0; i < n; i++ {
		var base uint64
		if i > 0 {
			base = newAdj[i-1]
		}
		cursor[i].Store(base)
	}

	newDests := make([]uint32, m)
	newProps := make([]uint64, m)

	nodes := make([]uint32, n)
	for i := range nodes {
		nodes[i] = uint32(i)
	}
	parallel.DoAll(nodes, func(u uint32) {
		b, e := g.EdgeRange(u)
		for ei := b; ei < e; ei++ {
			v := g.Dests[ei]
			pos := cursor[v].Add(1) - 1
			newDests[pos] = u
			newProps[pos] = g.EdgePropIndices[ei]
		}
	})

	return &GraphTopology{
		AdjIndices:      newAdj,
		Dests:           newDests,
		EdgePropIndices: newProps,
		Transpose:       TransposeYes,
		EdgeSort:        EdgeSortAny,
	}
}

// SortEdgesByDestID stable-sorts each node's edge range by destination,
// parallelized per node, permuting EdgePropIndices in lockstep.
func (g *GraphTopology) SortEdgesByDestID() {
	n := g.NumNodes()
	nodes := make([]uint32, n)
	for i := range nodes {
		nodes[i] = uint32(i)
	}
	parallel.DoAll(nodes, func(u uint32) {
		b, e := g.EdgeRange(u)
		sortEdgeRange(g.Dests[b:e], g.EdgePropIndices[b:e], nil, nil)
	})
	g.EdgeSort = EdgeSortedByDestID
}

// SortEdgesByTypeThenDest sorts each node's edges primarily by edge type
// (looked up via edgeType(propIndex)), secondarily by destination.
func (g *GraphTopology) SortEdgesByTypeThenDest(edgeType func(propIndex uint64) int32) {
	n := g.NumNodes()
	nodes := make([]uint32, n)
	for i := range nodes {
		nodes[i] = uint32(i)
	}
	parallel.DoAll(nodes, func(u uint32) {
		b, e := g.EdgeRange(u)
		sortEdgeRange(g.Dests[b:e], g.EdgePropIndices[b:e], edgeType, nil)
	})
	g.EdgeSort = EdgeSortedByEdgeType
}

// sortEdgeRange sorts dests/props in lockstep; when typeOf is non-nil the
// primary key is typeOf(props[i]), secondary key is dests[i].
func sortEdgeRange(dests []uint32, props []uint64, typeOf func(uint64) int32, _ []int) {
	idx := make([]int, len(dests))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		a, b := idx[i], idx[j]
		if typeOf != nil {
			ta, tb := typeOf(props[a]), typeOf(props[b])
			if ta != tb {
				return ta < tb
			}
		}
		return dests[a] < dests[b]
	})
	newDests := make([]uint32, len(dests))
	newProps := make([]uint64, len(props))
	for i, j := range idx {
		newDests[i] = dests[j]
		newProps[i] = props[j]
	}
	copy(dests, newDests)
	copy(props, newProps)
}

// FindEdge returns the index of an arbitrary edge u->dst and whether one
// exists, via binary search. Requires EdgeSort == SortedByDestID.
func (g *GraphTopology) FindEdge(u uint32, dst uint32) (uint64, bool) {
	b, e := g.EdgeRange(u)
	lo, hi := int(b), int(e)
	for lo < hi {
		mid := (lo + hi) / 2
		if g.Dests[mid] < dst {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < int(e) && g.Dests[lo] == dst {
		return uint64(lo), true
	}
	return 0, false
}

// FindAllEdges returns the maximal contiguous edge-index subrange [begin,
// end) whose destination equals dst, supporting parallel edges. Requires
// EdgeSort == SortedByDestID.
func (g *GraphTopology) FindAllEdges(u uint32, dst uint32) (begin, end uint64) {
	rangeBegin, rangeEnd := g.EdgeRange(u)
	lo, hi := int(rangeBegin), int(rangeEnd)
	first := sort.Search(hi-lo, func(i int) bool { return g.Dests[lo+i] >= dst }) + lo
	last := sort.Search(hi-lo, func(i int) bool { return g.Dests[lo+i] > dst }) + lo
	if first >= last {
		return uint64(first), uint64(first)
	}
	return uint64(first), uint64(last)
}
