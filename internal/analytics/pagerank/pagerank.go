// Package pagerank implements the standard power-iteration PageRank over a
// transposed (in-edges) view, the pull-topological algorithm of
// PagerankPlan, generalized from its four-algorithm C++ plan down to the
// one variant this port carries.
package pagerank

import (
	"github.com/parascale/graphkit/pkg/parallel"
	"github.com/parascale/graphkit/pkg/viewcache"
)

// Plan configures a PageRank run: damping factor, convergence tolerance,
// and an iteration cap.
type Plan struct {
	Tolerance      float64
	MaxIterations  int
	DampingFactor  float64
}

// DefaultPlan mirrors the original implementation's PullTopological
// defaults.
func DefaultPlan() Plan {
	return Plan{Tolerance: 1.0e-3, MaxIterations: 1000, DampingFactor: 0.85}
}

// Run computes PageRank via pull-topological power iteration: each round,
// every node's new rank is (1-d)/n plus d times the sum of its
// in-neighbors' previous rank divided by their out-degree. v must be a
// BidirectionalView so in-edges are available for the pull step;
// outDegree supplies each node's out-degree in the original (untransposed)
// graph, since a transposed view's "out-degree" is the original in-degree.
func Run(v viewcache.BidirectionalView, outDegree []int, plan Plan) []float64 {
	n := v.NumNodes()
	rank := make([]float64, n)
	next := make([]float64, n)
	for i := range rank {
		rank[i] = 1.0 / float64(n)
	}

	base := (1 - plan.DampingFactor) / float64(n)
	nodes := make([]uint32, n)
	for i := range nodes {
		nodes[i] = uint32(i)
	}

	for iter := 0; plan.MaxIterations <= 0 || iter < plan.MaxIterations; iter++ {
		residual := parallel.NewGAccumulator[float64]()
		parallel.DoAll(nodes, func(u uint32) {
			var sum float64
			for _, src := range v.InEdges(u) {
				d := outDegree[src]
				if d == 0 {
					continue
				}
				sum += rank[src] / float64(d)
			}
			newRank := base + plan.DampingFactor*sum
			delta := newRank - rank[u]
			if delta < 0 {
				delta = -delta
			}
			residual.Update(delta)
			next[u] = newRank
		}, parallel.WithSteal())

		rank, next = next, rank
		if residual.Reduce()/float64(n) < plan.Tolerance {
			break
		}
	}

	return rank
}

// AssertValid checks that every rank is non-negative and that the ranks
// sum to approximately 1 (within a coarse tolerance), the sanity check the
// original PagerankAssertValid performs.
func AssertValid(ranks []float64) bool {
	var sum float64
	for _, r := range ranks {
		if r < 0 {
			return false
		}
		sum += r
	}
	const slack = 1e-2
	return sum > 1-slack && sum < 1+slack
}
