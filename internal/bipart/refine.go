package bipart

import "math"

// balanceTolerance mirrors the teacher's 52.5/47.5 split expressed as a
// fractional deviation from an even split.
const balanceTolerance = 52.5/47.5 - 1

// projectPartition pushes each fine node's partition down from its coarse
// parent, the inverse of the matching step in coarsenOnce.
func projectPartition(fine, coarse *HyperGraph) {
	for n := fine.Hedges; n < uint32(fine.Size()); n++ {
		nd := fine.Data(n)
		nd.Partition = coarse.Data(nd.Parent).Partition
	}
}

func resetCounters(g *HyperGraph) {
	for n := g.Hedges; n < uint32(g.Size()); n++ {
		g.Data(n).ResetCounter()
	}
}

// Refine walks each graph's coarsening hierarchy from its coarsest level
// back to the original (fine) level, projecting the partition down one
// level at a time and running up to RefineMaxLevels gain-based swap passes
// plus a balance restoration pass at every level.
func Refine(graphs []*MetisGraph) {
	for _, mg := range graphs {
		if mg == nil {
			continue
		}
		coarsest := mg
		for coarsest.Coarsened != nil {
			coarsest = coarsest.Coarsened
		}

		refineLevel(coarsest.Graph)
		for level := coarsest; level.Parent != nil; level = level.Parent {
			projectPartition(level.Parent.Graph, level.Graph)
			refineLevel(level.Parent.Graph)
		}
	}
}

// refineLevel runs RefineMaxLevels gain-based swap passes over g, then
// restores balance if a partition has drifted past balanceTolerance of an
// even split.
func refineLevel(g *HyperGraph) {
	for pass := 0; pass < RefineMaxLevels; pass++ {
		resetCounters(g)
		initGain(g)
		swapPass(g)
	}
	restoreBalance(g)
}

// swapPass moves every positive-gain node across the cut once, per level,
// the condensed form of the teacher's parallel bucketed swap (see
// restoreBalance for the balance-side counterpart of that bucketing).
func swapPass(g *HyperGraph) {
	for n := g.Hedges; n < uint32(g.Size()); n++ {
		nd := g.Data(n)
		if nd.PositiveGain.Load() == 0 && nd.NegativeGain.Load() == 0 {
			continue
		}
		if nd.Gain() > 0 {
			nd.Partition = 1 - nd.Partition
			nd.Counter++
		}
	}
}

// restoreBalance moves the lowest-cost nodes back from the heavier
// partition to the lighter one until both sides are within
// balanceTolerance of an even split of total weight.
func restoreBalance(g *HyperGraph) {
	var totalWeight, p0Weight uint32
	var p0Nodes, p1Nodes []uint32
	for n := g.Hedges; n < uint32(g.Size()); n++ {
		nd := g.Data(n)
		totalWeight += nd.Weight
		if nd.Partition == 0 {
			p0Weight += nd.Weight
			p0Nodes = append(p0Nodes, n)
		} else {
			p1Nodes = append(p1Nodes, n)
		}
	}
	if totalWeight == 0 {
		return
	}
	// hi is the upper end of the allowed weight band around an even split, a
	// (1+tol)/(2+tol) fraction of the total; keeping both sides at or below
	// hi keeps each at or above its complement.
	hi := uint32(float64(totalWeight) * (1 + balanceTolerance) / (2 + balanceTolerance))

	for p0Weight > hi {
		moved := moveLowestCost(g, p0Nodes, 0, 1)
		if moved == 0 {
			break
		}
		p0Weight -= moved
	}
	p1Weight := totalWeight - p0Weight
	for p1Weight > hi {
		moved := moveLowestCost(g, p1Nodes, 1, 0)
		if moved == 0 {
			break
		}
		p1Weight -= moved
	}
}

// moveLowestCost moves the single lowest gain-to-weight node currently in
// fromPartition across to toPartition, returning its weight, or 0 if no
// node in fromPartition remains.
func moveLowestCost(g *HyperGraph, candidates []uint32, from, to uint32) uint32 {
	var best uint32 = InfPartition
	var bestCost = math.Inf(1)
	for _, n := range candidates {
		nd := g.Data(n)
		if nd.Partition != from {
			continue
		}
		cost := float64(nd.Gain()) / float64(nd.Weight)
		if cost < bestCost {
			bestCost = cost
			best = n
		}
	}
	if best == InfPartition {
		return 0
	}
	g.Data(best).Partition = to
	return g.Data(best).Weight
}
