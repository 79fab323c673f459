package bipart

import "github.com/parascale/graphkit/pkg/parallel"

// PartitionPlan configures a k-way hypergraph partition run.
type PartitionPlan struct {
	NumPartitions int
	Policy        MatchingPolicy
}

// PartitionResult is the final assignment of every plain node of the
// original hypergraph to one of [0, NumPartitions) parts, plus the
// resulting edge cut under that assignment.
type PartitionResult struct {
	// Partition is indexed by plain node ID relative to the original
	// hypergraph (0-based: node 0 is hMETIS node 1, etc).
	Partition []uint32
	EdgeCut   int
}

// Partition recursively bisects g down to plan.NumPartitions parts: each
// level coarsens, finds an initial two-way split proportioned by
// (k+1)/2 : k/2 via InitialBisect's target-weight rounding, refines it back
// to the level's own fine graph, then recurses independently into each
// side with that side's share of k until every subtree reaches k<=1.
func Partition(g *HyperGraph, plan PartitionPlan) PartitionResult {
	result := make([]uint32, g.Hnodes)
	origIDs := make([]uint32, g.Hnodes)
	for i := range origIDs {
		origIDs[i] = uint32(i)
	}
	bisectRecursive(g, origIDs, 0, plan.NumPartitions, plan.Policy, result)
	return PartitionResult{Partition: result, EdgeCut: ComputeCutFromAssignment(g, result)}
}

func bisectRecursive(g *HyperGraph, origIDs []uint32, base uint32, k int, policy MatchingPolicy, result []uint32) {
	if k <= 1 || len(origIDs) == 0 {
		for _, id := range origIDs {
			result[id] = base
		}
		return
	}

	graphs := []*MetisGraph{NewMetisGraph(g, nil)}
	targets := []int{k}
	Coarsen(graphs, policy)
	InitialBisect(graphs, targets)
	Refine(graphs)

	k0 := (k + 1) / 2
	k1 := k / 2

	sub0, ids0 := extractPartitionSide(g, origIDs, 0)
	sub1, ids1 := extractPartitionSide(g, origIDs, 1)

	// The two sides recurse into disjoint slices of result, so they can run
	// as independent branches of the same DoAll the leaf algorithms use.
	branches := []func(){
		func() { bisectRecursive(sub0, ids0, base, k0, policy, result) },
		func() { bisectRecursive(sub1, ids1, base+uint32(k0), k1, policy, result) },
	}
	parallel.DoAll(branches, func(branch func()) { branch() })
}

// extractPartitionSide builds the induced subgraph over g's plain nodes
// currently assigned to side, dropping any hyperedge whose pins no longer
// span at least two surviving nodes, and returns that subgraph alongside
// the original-hypergraph node ID each of its plain nodes corresponds to.
func extractPartitionSide(g *HyperGraph, origIDs []uint32, side uint32) (*HyperGraph, []uint32) {
	oldToNew := make(map[uint32]uint32)
	var mapped []uint32
	var weights []uint32
	for n := g.Hedges; n < uint32(g.Size()); n++ {
		if g.Data(n).Partition != side {
			continue
		}
		oldToNew[n] = uint32(len(mapped))
		mapped = append(mapped, origIDs[n-g.Hedges])
		weights = append(weights, g.Data(n).Weight)
	}

	var pinLists [][]uint32
	for h := uint32(0); h < g.Hedges; h++ {
		var pins []uint32
		seen := make(map[uint32]bool)
		for _, dst := range g.Edges(h) {
			nn, ok := oldToNew[dst]
			if !ok || seen[nn] {
				continue
			}
			seen[nn] = true
			pins = append(pins, nn)
		}
		if len(pins) >= 2 {
			pinLists = append(pinLists, pins)
		}
	}

	sub := buildFromPinLists(pinLists, len(mapped), weights)
	return sub, mapped
}
