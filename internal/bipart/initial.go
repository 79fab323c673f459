package bipart

import (
	"math"
	"sort"

	"github.com/parascale/graphkit/pkg/parallel"
)

// initGain recomputes each plain node's positive/negative gain by scanning
// every hyperedge once: a hyperedge contributes +1 to the lone member on
// the minority side (moving it would uncut the edge) and -1 to every
// member of a side that is currently alone (moving any of them would cut a
// previously uncut edge), mirroring the teacher's InitGain pass.
func initGain(g *HyperGraph) {
	nodes := make([]uint32, 0, g.Size()-int(g.Hedges))
	for n := g.Hedges; n < uint32(g.Size()); n++ {
		nodes = append(nodes, n)
	}
	parallel.DoAll(nodes, func(n uint32) {
		g.Data(n).PositiveGain.Store(0)
		g.Data(n).NegativeGain.Store(0)
	}, parallel.WithSteal())

	hedges := make([]uint32, g.Hedges)
	for i := range hedges {
		hedges[i] = uint32(i)
	}
	parallel.DoAll(hedges, func(h uint32) {
		var p0, p1 int
		for _, n := range g.Edges(h) {
			if g.Data(n).Partition == 0 {
				p0++
			} else {
				p1++
			}
			if p0 > 1 && p1 > 1 {
				break
			}
		}
		if p0 > 1 && p1 > 1 {
			return
		}
		if p0+p1 <= 1 {
			return
		}
		for _, n := range g.Edges(h) {
			nd := g.Data(n)
			side := p0
			if nd.Partition != 0 {
				side = p1
			}
			if side == 1 {
				nd.PositiveGain.Add(1)
			}
			if side == p0+p1 {
				nd.NegativeGain.Add(1)
			}
		}
	}, parallel.WithSteal())
}

// InitialBisect finds an initial two-way partition of the coarsest level of
// each graph, iteratively moving gain-sorted, weight-budgeted nodes from
// the majority side to the minority side until each reaches its target
// weight share of K.
func InitialBisect(graphs []*MetisGraph, targetPartitions []int) {
	for i, mg := range graphs {
		if mg == nil {
			continue
		}
		bisectOne(mg.Graph, targetPartitions[i])
	}
}

func bisectOne(g *HyperGraph, k int) {
	total := uint32(g.Size())
	var totalWeight uint32
	for n := g.Hedges; n < total; n++ {
		g.Data(n).Partition = 1
		totalWeight += g.Data(n).Weight
	}
	for h := uint32(0); h < g.Hedges; h++ {
		for _, n := range g.Edges(h) {
			g.Data(n).Partition = 0
		}
	}

	var zeroWeight uint32
	var zeroNodes, oneNodes []uint32
	for n := g.Hedges; n < total; n++ {
		if g.Data(n).Partition == 0 {
			zeroWeight += g.Data(n).Weight
			zeroNodes = append(zeroNodes, n)
		} else {
			oneNodes = append(oneNodes, n)
		}
	}
	oneWeight := totalWeight - zeroWeight

	processZero := zeroWeight > oneWeight
	curPartition := uint32(1)
	if processZero {
		curPartition = 0
	}
	kVal := (k + 1) / 2
	targetWeight := totalWeight * uint32(kVal) / uint32(k)
	if processZero {
		targetWeight = totalWeight - targetWeight
	}

	movable := oneNodes
	movedWeight := zeroWeight
	if processZero {
		movable = zeroNodes
		movedWeight = oneWeight
	}

	computeDegrees(g)
	sqrtSize := uint32(math.Sqrt(float64(totalWeight)))

	for movedWeight < targetWeight {
		initGain(g)

		var remaining []uint32
		for _, n := range movable {
			nd := g.Data(n)
			onTargetSide := (processZero && nd.Partition == 0) || (!processZero && nd.Partition == 1)
			if onTargetSide {
				remaining = append(remaining, n)
			}
		}
		sortByGainAndWeight(g, remaining)

		var nodeSize uint32
		for _, n := range remaining {
			nd := g.Data(n)
			nd.Partition = 1 - curPartition
			movedWeight += nd.Weight

			if nd.Degree.Load() >= 1 {
				nodeSize++
			}
			if movedWeight >= targetWeight || nodeSize > sqrtSize {
				break
			}
		}
		if len(remaining) == 0 {
			break // nothing left to move; avoid looping forever
		}
	}
}

// computeDegrees counts, for every plain node, how many non-degenerate
// hyperedges (two or more pins) it belongs to.
func computeDegrees(g *HyperGraph) {
	for n := g.Hedges; n < uint32(g.Size()); n++ {
		g.Data(n).Degree.Store(0)
	}
	for h := uint32(0); h < g.Hedges; h++ {
		edges := g.Edges(h)
		if len(edges) <= 1 {
			continue
		}
		for _, n := range edges {
			g.Data(n).Degree.Add(1)
		}
	}
}

// sortByGainAndWeight orders nodes by descending gain-to-weight ratio,
// breaking near-ties (within 1e-5) by ascending node ID for determinism.
func sortByGainAndWeight(g *HyperGraph, nodes []uint32) {
	sort.Slice(nodes, func(i, j int) bool {
		l, r := g.Data(nodes[i]), g.Data(nodes[j])
		lCost := float64(l.Gain()) / float64(l.Weight)
		rCost := float64(r.Gain()) / float64(r.Weight)
		if math.Abs(lCost-rCost) < 1e-5 {
			return l.NodeID < r.NodeID
		}
		return lCost > rCost
	})
}
