package cc

import (
	"sync/atomic"

	"github.com/parascale/graphkit/pkg/parallel"
	"github.com/parascale/graphkit/pkg/viewcache"
)

// LabelProp assigns every node its own ID as a label, then repeatedly
// propagates the minimum label to neighbors until no node changes,
// mirroring ConnectedComponentsLabelPropAlgo's old_label/current_label
// monotone-decrease loop.
func LabelProp(v viewcache.View) Labels {
	n := v.NumNodes()
	current := make([]atomic.Uint64, n)
	oldLabel := make([]uint64, n)
	const infinity = ^uint64(0)
	for i := 0; i < n; i++ {
		current[i].Store(uint64(i))
		oldLabel[i] = infinity
	}

	changed := &parallel.GReduceLogicalOr{}
	nodes := nodeRange(n)
	for {
		changed.Reset()
		parallel.DoAll(nodes, func(src uint32) {
			cur := current[src].Load()
			if oldLabel[src] <= cur {
				return
			}
			oldLabel[src] = cur
			changed.Update(true)
			for _, dst := range v.OutEdges(src) {
				atomicMin(&current[dst], cur)
			}
		}, parallel.WithSteal())
		if !changed.Reduce() {
			break
		}
	}

	labels := make(Labels, n)
	for i := 0; i < n; i++ {
		labels[i] = uint32(current[i].Load())
	}
	return labels
}

func atomicMin(dst *atomic.Uint64, val uint64) {
	for {
		old := dst.Load()
		if val >= old {
			return
		}
		if dst.CompareAndSwap(old, val) {
			return
		}
	}
}
