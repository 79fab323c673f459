// Package bipart implements multi-level hypergraph partitioning: repeated
// coarsening of a hypergraph down to a small core, an initial bisection of
// that core, and refinement passes that project the bisection back up
// through the coarsening hierarchy one level at a time, recursing to reach
// an arbitrary number of parts.
package bipart

import (
	"math"
	"sync/atomic"

	"github.com/parascale/graphkit/pkg/topology"
)

const (
	// ChunkSize is a work-granularity constant for passes over nodes and
	// hyperedges; the parallel passes in this package do not read it and use
	// pkg/parallel's default chunking.
	ChunkSize = 512
	// InfPartition marks a node that has not yet been assigned a partition.
	InfPartition uint32 = math.MaxUint32
	// LoneNodesCoarsenFactor is the modulus used to group nodes incident to
	// no hyperedge during matching: lone nodes whose IDs are equal modulo
	// this value coarsen into one group.
	LoneNodesCoarsenFactor = 1000
	// CoarsestHedgeLimit and CoarsestNodeLimit stop coarsening once the
	// graph has shrunk below either threshold.
	CoarsestHedgeLimit = 1000
	CoarsestNodeLimit  = 300
	// RefineMaxLevels bounds the number of gain-based swap passes run at
	// each level of refinement.
	RefineMaxLevels = 2
)

// MatchingPolicy selects how coarsening prioritizes which hyperedge "wins"
// a contested node during matching.
type MatchingPolicy int

const (
	HigherDegree MatchingPolicy = iota
	LowerDegree
	HigherWeight
	LowerWeight
	Random
)

// NodeState is the per-node (hyperedge-or-graph-node) mutable state carried
// alongside the hypergraph's CSR topology. Hyperedges and graph nodes share
// the same index space: indices [0, Hedges) are hyperedges, indices
// [Hedges, Hedges+Hnodes) are graph nodes.
type NodeState struct {
	Partition  uint32
	Parent     uint32
	NodeID     uint32
	ChildID    uint32
	GraphIndex uint32
	Counter    uint32
	ListIndex  uint32
	NotAlone   bool
	Matched    bool
	Weight     uint32

	PositiveGain atomic.Int64
	NegativeGain atomic.Int64
	Degree       atomic.Uint32
	Netrand      atomic.Int64
	Netval       atomic.Int64
	Netnum       atomic.Uint32
}

// Gain is the net move benefit: moving this node to the other partition
// removes PositiveGain cut edges and creates NegativeGain+Counter new ones.
func (n *NodeState) Gain() int64 {
	return n.PositiveGain.Load() - (n.NegativeGain.Load() + int64(n.Counter))
}

func (n *NodeState) ResetCounter() { n.Counter = 0 }

func newNodeState(index, hedges int) *NodeState {
	n := &NodeState{Weight: 1, NodeID: uint32(index) + 1}
	if index < hedges {
		n.Netnum.Store(uint32(index) + 1)
	} else {
		n.Netnum.Store(math.MaxUint32)
	}
	n.Netrand.Store(math.MaxInt64)
	n.Netval.Store(math.MaxInt64)
	return n
}

// atomicMinInt64 stores v into a if v < the current value, retrying under
// contention; it mirrors the teacher's compare-and-swap min helpers.
func atomicMinInt64(a *atomic.Int64, v int64) {
	for {
		cur := a.Load()
		if v >= cur {
			return
		}
		if a.CompareAndSwap(cur, v) {
			return
		}
	}
}

func atomicMinUint32(a *atomic.Uint32, v uint32) {
	for {
		cur := a.Load()
		if v >= cur {
			return
		}
		if a.CompareAndSwap(cur, v) {
			return
		}
	}
}

// HyperGraph is one level of the coarsening hierarchy: a CSR topology whose
// first Hedges rows are hyperedges (their "edges" are member pins) and
// whose remaining Hnodes rows are plain graph nodes.
type HyperGraph struct {
	Topo   *topology.GraphTopology
	Hedges uint32
	Hnodes uint32
	Nodes  []*NodeState
}

// Size is the total row count: hyperedges plus graph nodes.
func (g *HyperGraph) Size() int { return len(g.Nodes) }

// Edges returns n's pins if n is a hyperedge. Graph-node rows have no
// edges, so for them it returns an empty slice; callers needing the
// pin->hyperedge mapping build it explicitly via buildIncidence.
func (g *HyperGraph) Edges(n uint32) []uint32 { return g.Topo.Edges(n) }

// Data returns the mutable state for node n.
func (g *HyperGraph) Data(n uint32) *NodeState { return g.Nodes[n] }

// MetisGraph links one HyperGraph into the coarsening hierarchy.
type MetisGraph struct {
	Graph     *HyperGraph
	Parent    *MetisGraph
	Coarsened *MetisGraph
}

// NewMetisGraph wraps g as a root of (or a link in) the hierarchy. Passing
// a non-nil parent records the coarsening relationship both ways.
func NewMetisGraph(g *HyperGraph, parent *MetisGraph) *MetisGraph {
	mg := &MetisGraph{Graph: g, Parent: parent}
	if parent != nil {
		parent.Coarsened = mg
	}
	return mg
}
