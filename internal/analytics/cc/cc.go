// Package cc implements the five connected-components strategies over a
// symmetric (undirected) view: Serial, LabelProp, Synchronous,
// Asynchronous (with edge/tiled/blocked sub-variants), and Afforest.
package cc

import (
	"github.com/parascale/graphkit/pkg/parallel"
	"github.com/parascale/graphkit/pkg/unionfind"
	"github.com/parascale/graphkit/pkg/viewcache"
)

// Labels holds one component label per node: the root node ID after the
// final compression pass, per the spec's "labels are root IDs" rule.
type Labels []uint32

func nodeRange(n int) []uint32 {
	nodes := make([]uint32, n)
	for i := range nodes {
		nodes[i] = uint32(i)
	}
	return nodes
}

// finalizeFromArena runs a final compression pass and materializes Labels.
func finalizeFromArena(a *unionfind.Arena) Labels {
	n := a.Len()
	labels := make(Labels, n)
	parallel.DoAll(nodeRange(n), func(u uint32) {
		labels[u] = uint32(a.FindAndCompress(int(u)))
	})
	return labels
}

// Statistics reports the scenario-5 connected-components summary: total
// components, how many have more than one member, the largest component's
// size, and that size as a fraction of all nodes.
type Statistics struct {
	TotalComponents           int
	TotalNonTrivialComponents int
	LargestComponentSize      int
	LargestComponentRatio     float64
}

// ComputeStatistics summarizes a label assignment.
func ComputeStatistics(labels Labels) Statistics {
	counts := make(map[uint32]int, len(labels))
	for _, l := range labels {
		counts[l]++
	}
	var largest int
	var nonTrivial int
	for _, c := range counts {
		if c > 1 {
			nonTrivial++
		}
		if c > largest {
			largest = c
		}
	}
	var ratio float64
	if len(labels) > 0 {
		ratio = float64(largest) / float64(len(labels))
	}
	return Statistics{
		TotalComponents:           len(counts),
		TotalNonTrivialComponents: nonTrivial,
		LargestComponentSize:      largest,
		LargestComponentRatio:     ratio,
	}
}

// forEachOutEdge calls body for every node/out-edge pair of a view, in node
// order on the calling goroutine; Serial uses it to iterate (src, dst)
// edges directly.
func forEachOutEdge(v viewcache.View, body func(src, dst uint32)) {
	n := v.NumNodes()
	for src := 0; src < n; src++ {
		for _, dst := range v.OutEdges(uint32(src)) {
			body(uint32(src), dst)
		}
	}
}
