package bipart

// ComputeCut returns the number of hyperedges whose pins span more than one
// partition under g's current (NodeState.Partition) assignment. This only
// reflects a two-way split; a k-way driver should use
// ComputeCutFromAssignment against its final per-node result instead, since
// recursive bisection only leaves the top-level two-way split on g itself.
func ComputeCut(g *HyperGraph) int {
	var cut int
	for h := uint32(0); h < g.Hedges; h++ {
		edges := g.Edges(h)
		if len(edges) == 0 {
			continue
		}
		first := g.Data(edges[0]).Partition
		for _, n := range edges[1:] {
			if g.Data(n).Partition != first {
				cut++
				break
			}
		}
	}
	return cut
}

// ComputeCutFromAssignment returns the number of hyperedges whose pins span
// more than one part under assignment, an explicit per-original-plain-node
// part array (as produced by Partition's recursive k-way split, which
// leaves no usable k-way state in g's own NodeState.Partition fields).
func ComputeCutFromAssignment(g *HyperGraph, assignment []uint32) int {
	var cut int
	for h := uint32(0); h < g.Hedges; h++ {
		edges := g.Edges(h)
		if len(edges) == 0 {
			continue
		}
		first := assignment[edges[0]-g.Hedges]
		for _, n := range edges[1:] {
			if assignment[n-g.Hedges] != first {
				cut++
				break
			}
		}
	}
	return cut
}

// GraphStat summarizes g's pin-degree distribution: node count, total
// degree, degree variance, and the min/max degree observed.
type GraphStat struct {
	NumNodes     int
	TotalDegree  uint64
	MinDegree    uint64
	MaxDegree    uint64
	DegreeVariance float64
}

// ComputeGraphStat scans every row of g (hyperedges and plain nodes alike)
// and summarizes its degree distribution.
func ComputeGraphStat(g *HyperGraph) GraphStat {
	stat := GraphStat{MinDegree: ^uint64(0)}
	var sumSquares float64
	for n := uint32(0); n < uint32(g.Size()); n++ {
		d := uint64(len(g.Edges(n)))
		stat.NumNodes++
		stat.TotalDegree += d
		sumSquares += float64(d) * float64(d)
		if d < stat.MinDegree {
			stat.MinDegree = d
		}
		if d > stat.MaxDegree {
			stat.MaxDegree = d
		}
	}
	if stat.NumNodes > 0 {
		mean := float64(stat.TotalDegree) / float64(stat.NumNodes)
		stat.DegreeVariance = sumSquares/float64(stat.NumNodes) - mean*mean
	} else {
		stat.MinDegree = 0
	}
	return stat
}
