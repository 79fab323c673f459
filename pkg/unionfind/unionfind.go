// Package unionfind implements an index-based concurrent union-find over a
// fixed-size arena, the building block every connected-components strategy
// merges its component labels through.
package unionfind

import "sync/atomic"

// Arena is a union-find forest over node indices [0, n). Each slot's parent
// starts as itself; merges hook one root under another via CAS so concurrent
// Merge/Link/HookMin calls from many goroutines race safely. No slot ever
// leaves the arena once allocated (structured by construction: an Arena's
// lifetime is scoped to the algorithm call that created it).
type Arena struct {
	parent []atomic.Int64
}

// New allocates an Arena of n singleton components, each its own root.
func New(n int) *Arena {
	a := &Arena{parent: make([]atomic.Int64, n)}
	for i := range a.parent {
		a.parent[i].Store(int64(i))
	}
	return a
}

// Len returns the number of slots in the arena.
func (a *Arena) Len() int { return len(a.parent) }

// Find returns the current root of i without modifying the arena. Safe
// under concurrent Merge/Link/Find on any indices.
func (a *Arena) Find(i int) int {
	for {
		p := a.parent[i].Load()
		if p == int64(i) {
			return i
		}
		i = int(p)
	}
}

// FindAndCompress returns the root of i, halving the path from i to the
// root as it walks so repeated lookups shorten over time. The synchronous
// strategy calls it inside its rounds, and the cc package's final labelling
// pass calls it once per node.
func (a *Arena) FindAndCompress(i int) int {
	for {
		p := int(a.parent[i].Load())
		gp := int(a.parent[p].Load())
		if p == gp {
			return p
		}
		a.parent[i].CompareAndSwap(int64(p), int64(gp))
		i = p
	}
}

// Compress collapses i directly onto its current root. Intended for the
// final full-compression pass after an algorithm's merge phase has
// quiesced, not for use while merges are still in flight.
func (a *Arena) Compress(i int) {
	root := a.Find(i)
	a.parent[i].Store(int64(root))
}

// Merge unions the components containing x and y, always hooking the
// higher-valued root under the lower-valued root so the merge forms a
// consistent partial order and two concurrent merges of the same pair
// cannot cycle. Returns false if x and y were already in the same
// component (an "empty merge").
func (a *Arena) Merge(x, y int) bool {
	ra, rb := a.Find(x), a.Find(y)
	for ra != rb {
		if ra < rb {
			ra, rb = rb, ra
		}
		// ra > rb: attempt to hook ra under rb.
		cur := a.parent[ra].Load()
		if cur == int64(ra) {
			if a.parent[ra].CompareAndSwap(int64(ra), int64(rb)) {
				return true
			}
			// Someone else moved ra's root; retry with the fresh value.
			ra = a.Find(ra)
			continue
		}
		ra = int(cur)
		ra = a.Find(ra)
	}
	return false
}

// Link hooks the component of x under the component of y (or vice versa)
// by always attaching the higher root under the lower one, the Afforest
// neighbor-sampling link used while statistically estimating components
// before a final precise merge pass. Unlike Merge it performs no relaxed
// retries beyond the root chase; callers re-run Link across several
// sampling rounds instead.
func (a *Arena) Link(x, y int) {
	ra := a.parent[x].Load()
	rb := a.parent[y].Load()
	for ra != rb {
		if ra < rb {
			ra, rb = rb, ra
		}
		rac := a.parent[ra].Load()
		if rac == ra && a.parent[ra].CompareAndSwap(ra, rb) {
			return
		}
		if rb == rac {
			return
		}
		ra = a.parent[a.parent[ra].Load()].Load()
		rb = a.parent[rb].Load()
	}
}

// HookMin is the Afforest link-to-skip-component step: it joins the
// components of x and y, always attaching the larger root under the
// smaller, and if skip equals the root it just hooked away returns that
// root (the "victim") with ok true so the caller can re-link the victim's
// neighbors into the surviving component. Otherwise (x and y already in
// the same component, or the hooked root is not skip) it returns 0, false.
func (a *Arena) HookMin(x, y, skip int) (victim int, ok bool) {
	ra := a.parent[x].Load()
	rb := a.parent[y].Load()
	for ra != rb {
		if ra < rb {
			ra, rb = rb, ra
		}
		rac := a.parent[ra].Load()
		if rac == ra && a.parent[ra].CompareAndSwap(ra, rb) {
			if int(ra) == skip {
				return int(ra), true
			}
			return 0, false
		}
		if rb == rac {
			return 0, false
		}
		ra = a.parent[a.parent[ra].Load()].Load()
		rb = a.parent[rb].Load()
	}
	return 0, false
}

// Labels materializes the final component label for every slot by calling
// Find once per index; the arena itself is left unchanged. Intended for a single-threaded or DoAll-driven
// final pass; it is not safe to call while Merge/Link/HookMin are still
// running on the same arena.
func (a *Arena) Labels() []int {
	out := make([]int, len(a.parent))
	for i := range out {
		out[i] = a.Find(i)
	}
	return out
}
