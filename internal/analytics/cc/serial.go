package cc

import (
	"github.com/parascale/graphkit/pkg/unionfind"
	"github.com/parascale/graphkit/pkg/viewcache"
)

// Serial merges every (src, dst) edge on a single goroutine, then
// compresses every node's path to its root. Grounded on
// ConnectedComponentsSerialAlgo's two-pass operator().
func Serial(v viewcache.View) Labels {
	arena := unionfind.New(v.NumNodes())
	forEachOutEdge(v, func(src, dst uint32) {
		arena.Merge(int(src), int(dst))
	})
	return finalizeFromArena(arena)
}
