package cc

import (
	"math/rand"

	"github.com/parascale/graphkit/pkg/parallel"
	"github.com/parascale/graphkit/pkg/unionfind"
	"github.com/parascale/graphkit/pkg/viewcache"
)

// AfforestPlan configures the Afforest strategy's sampling parameters.
type AfforestPlan struct {
	NeighborSampleSize       int // rounds of neighbor-sampling linking
	ComponentSampleFrequency int // random draws used to guess the giant component
}

// DefaultAfforestPlan mirrors the original implementation's defaults.
func DefaultAfforestPlan() AfforestPlan {
	return AfforestPlan{NeighborSampleSize: 2, ComponentSampleFrequency: 1024}
}

// Afforest runs neighbor-sampling linking for NeighborSampleSize rounds,
// guesses the giant component by sampling ComponentSampleFrequency random
// nodes, then links every node outside the guessed component with its
// remaining out-neighbors. Grounded on ConnectedComponentsAfforestAlgo.
func Afforest(v viewcache.View, plan AfforestPlan) Labels {
	arena := unionfind.New(v.NumNodes())
	n := v.NumNodes()
	nodes := nodeRange(n)

	for r := 0; r < plan.NeighborSampleSize; r++ {
		round := r
		parallel.DoAll(nodes, func(src uint32) {
			edges := v.OutEdges(src)
			if round < len(edges) {
				arena.Link(int(src), int(edges[round]))
			}
		}, parallel.WithSteal())
		parallel.DoAll(nodes, func(u uint32) {
			arena.Compress(int(u))
		}, parallel.WithSteal())
	}

	giant := approxLargestComponent(arena, n, plan.ComponentSampleFrequency)

	parallel.DoAll(nodes, func(src uint32) {
		if arena.Find(int(src)) == giant {
			return
		}
		edges := v.OutEdges(src)
		for i := plan.NeighborSampleSize; i < len(edges); i++ {
			arena.Link(int(src), int(edges[i]))
		}
	}, parallel.WithSteal())

	parallel.DoAll(nodes, func(u uint32) {
		arena.Compress(int(u))
	}, parallel.WithSteal())

	return finalizeFromArena(arena)
}

// approxLargestComponent draws `samples` random node indices and returns
// the mode of their current component roots, the "presumed giant"
// component used to skip relinking most of the graph.
func approxLargestComponent(arena *unionfind.Arena, n, samples int) int {
	if n == 0 {
		return 0
	}
	freq := make(map[int]int, samples)
	for i := 0; i < samples; i++ {
		idx := rand.Intn(n)
		freq[arena.Find(idx)]++
	}
	var best, bestCount int
	for comp, count := range freq {
		if count > bestCount {
			best, bestCount = comp, count
		}
	}
	return best
}
