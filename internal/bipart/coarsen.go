package bipart

import (
	"github.com/parascale/graphkit/pkg/parallel"
	"github.com/parascale/graphkit/pkg/topology"
)

// hash mirrors the teacher's LCG-based hash used to break priority ties
// deterministically across otherwise-equal nodes.
func hash(val uint32) int64 {
	seed := int64(val)*1103515245 + 12345
	return (seed / 65536) % 32768
}

// prioritize assigns a hyperedge's initial netval per policy. Only
// hyperedges (index < hedges) receive a priority; it then propagates to
// their member nodes via atomic-min reduction.
func prioritize(g *HyperGraph, hedge uint32, policy MatchingPolicy) {
	data := g.Data(hedge)
	switch policy {
	case HigherDegree:
		data.Netval.Store(-int64(len(g.Edges(hedge))))
	case LowerDegree:
		data.Netval.Store(int64(len(g.Edges(hedge))))
	case HigherWeight:
		var w int64
		for _, dst := range g.Edges(hedge) {
			w += int64(g.Data(dst).Weight)
		}
		data.Netval.Store(-w)
	case LowerWeight:
		var w int64
		for _, dst := range g.Edges(hedge) {
			w += int64(g.Data(dst).Weight)
		}
		data.Netval.Store(w)
	case Random:
		data.Netval.Store(-data.Netrand.Load())
		data.Netrand.Store(-int64(data.Netnum.Load()))
	}
}

// assignPriorityAndRand runs the teacher's three-pass netval/netrand/netnum
// min-reduction: every node ends up carrying the priority triple of the
// best (lowest) hyperedge among its incident hyperedges.
func assignPriorityAndRand(g *HyperGraph, policy MatchingPolicy) {
	hedges := make([]uint32, g.Hedges)
	for i := range hedges {
		hedges[i] = uint32(i)
	}

	parallel.DoAll(hedges, func(h uint32) {
		g.Data(h).Netrand.Store(hash(g.Data(h).Netnum.Load()))
	}, parallel.WithSteal())

	parallel.DoAll(hedges, func(h uint32) {
		prioritize(g, h, policy)
		hd := g.Data(h)
		for _, dst := range g.Edges(h) {
			atomicMinInt64(&g.Data(dst).Netval, hd.Netval.Load())
		}
	}, parallel.WithSteal())

	parallel.DoAll(hedges, func(h uint32) {
		hd := g.Data(h)
		for _, dst := range g.Edges(h) {
			nd := g.Data(dst)
			if nd.Netval.Load() == hd.Netval.Load() {
				atomicMinInt64(&nd.Netrand, hd.Netrand.Load())
			}
		}
	}, parallel.WithSteal())

	parallel.DoAll(hedges, func(h uint32) {
		hd := g.Data(h)
		for _, dst := range g.Edges(h) {
			nd := g.Data(dst)
			if nd.Netval.Load() == hd.Netval.Load() && nd.Netrand.Load() == hd.Netrand.Load() {
				atomicMinUint32(&nd.Netnum, hd.Netnum.Load())
			}
		}
	}, parallel.WithSteal())
}

// kLimitWeight bounds the accumulated weight a single matched group may
// absorb: (1+tol)*num_nodes/(2+tol)/4, the same balance-tolerance fraction
// refine.go restores toward, quartered so no single hyperedge can coarsen a
// group heavy enough to defeat that later restoration.
func kLimitWeight(g *HyperGraph) uint32 {
	numNodes := float64(g.Hnodes)
	limit := uint32((1 + balanceTolerance) * numNodes / (2 + balanceTolerance) / 4)
	if limit < 1 {
		limit = 1
	}
	return limit
}

// match groups each graph node under the hyperedge whose priority triple it
// settled on (its "winner"), capped at kLimitWeight accumulated member
// weight per group. Nodes that touch a hyperedge but never win or get
// capped out get a second chance: they join the lightest matched group
// among their incident hyperedges if one has room, and otherwise become
// their own singleton. Nodes incident to no hyperedge at all are grouped
// modulo LoneNodesCoarsenFactor. Every group is finally rekeyed under its
// minimum member node ID, the tie-break used for coarse node numbering.
func match(g *HyperGraph) map[uint32][]uint32 {
	incidence := buildIncidence(g)
	limit := kLimitWeight(g)

	winnerMembers := make(map[uint32][]uint32)
	hedgeWeight := make(map[uint32]uint32)
	var unmatched, lone []uint32

	for n := g.Hedges; n < uint32(g.Size()); n++ {
		nd := g.Data(n)
		if len(incidence[n]) == 0 {
			lone = append(lone, n)
			continue
		}
		winner := InfPartition
		for _, h := range incidence[n] {
			hd := g.Data(h)
			if hd.Netval.Load() == nd.Netval.Load() &&
				hd.Netrand.Load() == nd.Netrand.Load() &&
				hd.Netnum.Load() == nd.Netnum.Load() {
				winner = h
				break
			}
		}
		if winner == InfPartition || hedgeWeight[winner]+nd.Weight > limit {
			unmatched = append(unmatched, n)
			continue
		}
		winnerMembers[winner] = append(winnerMembers[winner], n)
		hedgeWeight[winner] += nd.Weight
	}

	// Second-chance coarsening: absorb into the lightest already-matched
	// group among this node's incident hyperedges, if any has room.
	var stillUnmatched []uint32
	for _, n := range unmatched {
		nd := g.Data(n)
		best := InfPartition
		var bestWeight uint32
		for _, h := range incidence[n] {
			if len(winnerMembers[h]) == 0 {
				continue
			}
			if w := hedgeWeight[h]; best == InfPartition || w < bestWeight {
				best, bestWeight = h, w
			}
		}
		if best == InfPartition || hedgeWeight[best]+nd.Weight > limit {
			stillUnmatched = append(stillUnmatched, n)
			continue
		}
		winnerMembers[best] = append(winnerMembers[best], n)
		hedgeWeight[best] += nd.Weight
	}
	for _, n := range stillUnmatched {
		winnerMembers[n] = append(winnerMembers[n], n) // own singleton group
	}

	groups := make(map[uint32][]uint32, len(winnerMembers))
	for _, members := range winnerMembers {
		groups[minUint32(members)] = members
	}

	loneBuckets := make(map[uint32][]uint32)
	for _, n := range lone {
		key := n % LoneNodesCoarsenFactor
		loneBuckets[key] = append(loneBuckets[key], n)
	}
	for _, members := range loneBuckets {
		groups[minUint32(members)] = members
	}

	return groups
}

func minUint32(s []uint32) uint32 {
	m := s[0]
	for _, v := range s[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

// buildIncidence builds the reverse pin->hyperedge adjacency once, indexed
// by graph-node ID, by scanning every hyperedge's pin list a single time.
func buildIncidence(g *HyperGraph) map[uint32][]uint32 {
	incidence := make(map[uint32][]uint32)
	for h := uint32(0); h < g.Hedges; h++ {
		for _, dst := range g.Edges(h) {
			incidence[dst] = append(incidence[dst], h)
		}
	}
	return incidence
}

// Coarsen repeatedly merges each graph's fine pins into coarser nodes per
// policy, stopping each graph individually once it falls at or below
// CoarsestHedgeLimit hyperedges or CoarsestNodeLimit nodes. Finished graphs
// are left in place (their Coarsened link simply stays nil).
func Coarsen(graphs []*MetisGraph, policy MatchingPolicy) {
	for i, mg := range graphs {
		if mg == nil {
			continue
		}
		cur := mg
		for cur.Graph.Hedges > CoarsestHedgeLimit && cur.Graph.Hnodes > CoarsestNodeLimit {
			next := coarsenOnce(cur, policy)
			if next == nil || next.Graph.Hnodes == cur.Graph.Hnodes {
				break // no further reduction possible
			}
			cur = next
		}
		graphs[i] = cur
	}
}

// coarsenOnce builds one coarser level from g via matching, projecting
// fine pins through their winning-hyperedge group, deduplicating repeated
// pins within a coarse hyperedge, and dropping hyperedges that degenerate
// to fewer than two distinct coarse pins.
func coarsenOnce(mg *MetisGraph, policy MatchingPolicy) *MetisGraph {
	g := mg.Graph
	assignPriorityAndRand(g, policy)
	groups := match(g)

	coarseID := make(map[uint32]uint32, len(groups))
	var coarseIdx uint32
	winners := make([]uint32, 0, len(groups))
	for winner := range groups {
		winners = append(winners, winner)
	}
	// Deterministic ordering keeps coarse node IDs stable across runs.
	sortUint32(winners)
	for _, winner := range winners {
		coarseID[winner] = coarseIdx
		coarseIdx++
	}

	numCoarseNodes := coarseIdx
	coarseWeight := make([]uint32, numCoarseNodes)
	for winner, members := range groups {
		cid := coarseID[winner]
		for _, m := range members {
			coarseWeight[cid] += g.Data(m).Weight
			g.Data(m).Parent = cid
		}
	}

	var pinLists [][]uint32
	for h := uint32(0); h < g.Hedges; h++ {
		seen := make(map[uint32]bool)
		var pins []uint32
		for _, dst := range g.Edges(h) {
			cid := g.Data(dst).Parent
			if seen[cid] {
				continue
			}
			seen[cid] = true
			pins = append(pins, cid)
		}
		if len(pins) >= 2 {
			pinLists = append(pinLists, pins)
		}
	}

	coarse := buildFromPinLists(pinLists, int(numCoarseNodes), coarseWeight)
	return NewMetisGraph(coarse, mg)
}

func buildFromPinLists(pinLists [][]uint32, numPlainNodes int, weights []uint32) *HyperGraph {
	hedges := len(pinLists)
	total := hedges + numPlainNodes
	adjIndices := make([]uint64, total)
	var cursor uint64
	for i, pins := range pinLists {
		cursor += uint64(len(pins))
		adjIndices[i] = cursor
	}
	for i := hedges; i < total; i++ {
		adjIndices[i] = cursor
	}
	dests := make([]uint32, 0, cursor)
	for _, pins := range pinLists {
		for _, p := range pins {
			dests = append(dests, p+uint32(hedges))
		}
	}

	topo, err := topology.NewGraphTopology(adjIndices, dests)
	if err != nil {
		// adjIndices/dests are built from validated group/pin indices, so a
		// failure here means coarsenOnce has a construction bug, not bad
		// input.
		panic(err)
	}

	g := &HyperGraph{Topo: topo, Hedges: uint32(hedges), Hnodes: uint32(numPlainNodes), Nodes: make([]*NodeState, total)}
	for i := 0; i < total; i++ {
		n := newNodeState(i, hedges)
		if i >= hedges {
			n.Weight = weights[i-hedges]
		}
		g.Nodes[i] = n
	}
	return g
}

func sortUint32(s []uint32) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
