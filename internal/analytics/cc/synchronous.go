package cc

import (
	"github.com/parascale/graphkit/pkg/parallel"
	"github.com/parascale/graphkit/pkg/unionfind"
	"github.com/parascale/graphkit/pkg/viewcache"
)

type syncWorkItem struct {
	src     uint32
	dst     uint32
	nextIdx int
}

// Synchronous alternates a merge phase (merge the current worklist's
// edges) and a find phase (advance each surviving src to the next
// cross-component edge, seeding next round's worklist), keeping the two
// rounds' worklists separate so a concurrent find never races a merge it
// depends on. Grounded on ConnectedComponentsSynchronousAlgo.
func Synchronous(v viewcache.View) Labels {
	arena := unionfind.New(v.NumNodes())

	current := seedSynchronousWorklist(v)
	for len(current) > 0 {
		parallel.DoAll(current, func(item syncWorkItem) {
			arena.Merge(int(item.src), int(item.dst))
		})

		next := parallel.NewInsertBag[syncWorkItem]()
		parallel.DoAll(current, func(item syncWorkItem) {
			srcRoot := arena.FindAndCompress(int(item.src))
			edges := v.OutEdges(item.src)
			for idx := item.nextIdx; idx < len(edges); idx++ {
				dst := edges[idx]
				if item.src >= dst {
					continue
				}
				dstRoot := arena.FindAndCompress(int(dst))
				if srcRoot != dstRoot {
					next.Push(syncWorkItem{src: item.src, dst: dst, nextIdx: idx + 1})
					break
				}
			}
		})

		current = next.Items()
	}

	return finalizeFromArena(arena)
}

func seedSynchronousWorklist(v viewcache.View) []syncWorkItem {
	n := v.NumNodes()
	bag := parallel.NewInsertBag[syncWorkItem]()
	parallel.DoAll(nodeRange(n), func(src uint32) {
		edges := v.OutEdges(src)
		for idx, dst := range edges {
			if src < dst {
				bag.Push(syncWorkItem{src: src, dst: dst, nextIdx: idx + 1})
				break
			}
		}
	})
	return bag.Items()
}
