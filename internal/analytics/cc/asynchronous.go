package cc

import (
	"github.com/parascale/graphkit/pkg/parallel"
	"github.com/parascale/graphkit/pkg/unionfind"
	"github.com/parascale/graphkit/pkg/viewcache"
)

// AsyncVariant selects how Asynchronous partitions the merge work.
type AsyncVariant int

const (
	// AsyncPlain merges every (src, dst) edge from a per-node do_all.
	AsyncPlain AsyncVariant = iota
	// AsyncEdge flattens all qualifying edges into one bag before merging,
	// so the scheduler balances load at edge granularity instead of node
	// granularity.
	AsyncEdge
	// AsyncEdgeTiled further splits each node's edge range into fixed-size
	// tiles before merging, bounding how much work one task unit does.
	AsyncEdgeTiled
	// AsyncBlocked processes each node's edges through a worklist that can
	// push a continuation for the remainder of a long edge range instead
	// of handling it inline, bounding how much work a single task unit does
	// without pre-splitting into tiles up front.
	AsyncBlocked
)

// AsyncPlan configures an Asynchronous run.
type AsyncPlan struct {
	Variant      AsyncVariant
	EdgeTileSize int // only consulted when Variant == AsyncEdgeTiled; default 64
}

// Asynchronous merges every (src, dst) edge with src < dst optimistically
// with concurrent path compression, then does one final compression pass.
// Grounded on ConnectedComponentsAsyncAlgo / EdgeAsyncAlgo /
// EdgeTiledAsyncAlgo.
func Asynchronous(v viewcache.View, plan AsyncPlan) Labels {
	arena := unionfind.New(v.NumNodes())

	switch plan.Variant {
	case AsyncEdge:
		asyncEdge(v, arena)
	case AsyncEdgeTiled:
		tileSize := plan.EdgeTileSize
		if tileSize <= 0 {
			tileSize = 64
		}
		asyncEdgeTiled(v, arena, tileSize)
	case AsyncBlocked:
		asyncBlocked(v, arena)
	default:
		asyncPlain(v, arena)
	}

	parallel.DoAll(nodeRange(v.NumNodes()), func(u uint32) {
		arena.Compress(int(u))
	}, parallel.WithSteal())

	return finalizeFromArena(arena)
}

func asyncPlain(v viewcache.View, arena *unionfind.Arena) {
	parallel.DoAll(nodeRange(v.NumNodes()), func(src uint32) {
		for _, dst := range v.OutEdges(src) {
			if src >= dst {
				continue
			}
			arena.Merge(int(src), int(dst))
		}
	})
}

type directedEdge struct {
	src, dst uint32
}

func asyncEdge(v viewcache.View, arena *unionfind.Arena) {
	bag := parallel.NewInsertBag[directedEdge]()
	parallel.DoAll(nodeRange(v.NumNodes()), func(src uint32) {
		for _, dst := range v.OutEdges(src) {
			if src < dst {
				bag.Push(directedEdge{src, dst})
			}
		}
	}, parallel.WithSteal())

	parallel.DoAll(bag.Items(), func(e directedEdge) {
		arena.Merge(int(e.src), int(e.dst))
	}, parallel.WithSteal())
}

type edgeTile struct {
	src      uint32
	begin, end int
}

func asyncEdgeTiled(v viewcache.View, arena *unionfind.Arena, tileSize int) {
	bag := parallel.NewInsertBag[edgeTile]()
	parallel.DoAll(nodeRange(v.NumNodes()), func(src uint32) {
		edges := v.OutEdges(src)
		for begin := 0; begin < len(edges); begin += tileSize {
			end := begin + tileSize
			if end > len(edges) {
				end = len(edges)
			}
			bag.Push(edgeTile{src: src, begin: begin, end: end})
		}
	}, parallel.WithSteal())

	parallel.DoAll(bag.Items(), func(tile edgeTile) {
		edges := v.OutEdges(tile.src)
		for i := tile.begin; i < tile.end; i++ {
			dst := edges[i]
			if tile.src >= dst {
				continue
			}
			arena.Merge(int(tile.src), int(dst))
		}
	}, parallel.WithSteal())
}

type blockItem struct {
	src   uint32
	start int
}

// blockedLimit caps how many edges a single worklist item processes before
// pushing a continuation for the rest, mirroring the blocked algorithm's
// chunked continuation-passing.
const blockedLimit = 1

func asyncBlocked(v viewcache.View, arena *unionfind.Arena) {
	seed := make([]blockItem, v.NumNodes())
	for i := range seed {
		seed[i] = blockItem{src: uint32(i), start: 0}
	}
	parallel.ForEachWorklist(seed, func(item blockItem, push *parallel.Pusher[blockItem]) {
		edges := v.OutEdges(item.src)
		count := 0
		for i := item.start; i < len(edges); i++ {
			dst := edges[i]
			if item.src >= dst {
				continue
			}
			merged := arena.Merge(int(item.src), int(dst))
			count++
			if merged && count != blockedLimit {
				continue
			}
			push.Push(blockItem{src: item.src, start: i + 1})
			return
		}
	})
}
