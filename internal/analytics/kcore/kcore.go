// Package kcore implements parallel k-core decomposition over a symmetric
// view via bulk-synchronous peeling: nodes whose live degree drops below k
// are removed a round at a time until a fixpoint, reusing
// pkg/bitset.DynamicBitset as the per-round "still active" set.
package kcore

import (
	"github.com/parascale/graphkit/pkg/bitset"
	"github.com/parascale/graphkit/pkg/parallel"
	"github.com/parascale/graphkit/pkg/viewcache"
)

// Result is the per-node output of a k-core run.
type Result struct {
	// InCurrentKCore reports, for each node, whether it survived peeling
	// and belongs to the requested k-core.
	InCurrentKCore []bool
}

// Run peels nodes with fewer than k live neighbors until no more can be
// removed, leaving the k-core in InCurrentKCore. v must be a symmetric
// (undirected) view per the original implementation's precondition.
func Run(v viewcache.UndirectedView, k int) Result {
	n := v.NumNodes()
	active := bitset.New(n)
	liveDegree := make([]int, n)
	for i := 0; i < n; i++ {
		active.Set(i)
		liveDegree[i] = v.UndirectedDegree(uint32(i))
	}

	deficient := make([]uint32, 0, n)
	for i := 0; i < n; i++ {
		if liveDegree[i] < k {
			deficient = append(deficient, uint32(i))
		}
	}

	for len(deficient) > 0 {
		removed := parallel.NewInsertBag[uint32]()
		parallel.DoAll(deficient, func(u uint32) {
			if !active.ClearBit(int(u)) {
				return // already removed by a previous round
			}
			for _, w := range v.UndirectedEdges(u) {
				removed.Push(w)
			}
		}, parallel.WithSteal())

		// Every occurrence of w counts: w loses one live edge per removed
		// neighbor edge, the same multiplicity UndirectedDegree counted.
		nextDeficient := parallel.NewInsertBag[uint32]()
		for _, w := range removed.Items() {
			if !active.Test(int(w)) {
				continue
			}
			liveDegree[w]--
			if liveDegree[w] < k {
				nextDeficient.Push(w)
			}
		}

		deficient = nextDeficient.Items()
	}

	out := make([]bool, n)
	for i := 0; i < n; i++ {
		out[i] = active.Test(i)
	}
	return Result{InCurrentKCore: out}
}

// AssertValid checks that every surviving node has at least k live
// neighbors within the surviving set, the closure property a correct
// k-core must satisfy.
func AssertValid(v viewcache.UndirectedView, result Result, k int) bool {
	for n := 0; n < len(result.InCurrentKCore); n++ {
		if !result.InCurrentKCore[n] {
			continue
		}
		live := 0
		for _, w := range v.UndirectedEdges(uint32(n)) {
			if result.InCurrentKCore[w] {
				live++
			}
		}
		if live < k {
			return false
		}
	}
	return true
}
