package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// PoolConfig holds the worker count the parallel constructs default to.
type PoolConfig struct {
	// MaxWorkers is the number of goroutines a construct starts when no
	// WithWorkers option is given.
	MaxWorkers int
}

// DefaultPoolConfig returns a PoolConfig with one worker per GOMAXPROCS slot.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{MaxWorkers: runtime.GOMAXPROCS(0)}
}

// ============================================================================
// DoAll — apply body to each element of a range exactly once.
// ============================================================================

// DoAllOptions configures a DoAll invocation.
type DoAllOptions struct {
	// Steal enables work-stealing between workers (chunks are handed out
	// from a shared cursor rather than statically partitioned).
	Steal bool
	// ChunkSize is the number of items handed to a worker per steal.
	// Default 32.
	ChunkSize int
	// Workers overrides DefaultPoolConfig().MaxWorkers for this call.
	Workers int
	// NoStats disables metric bookkeeping (no-op placeholder mirroring the
	// option vocabulary of spec section 4.2; DoAll itself does not collect
	// metrics, so this only documents intent for callers).
	NoStats bool
}

// DoAllOption mutates DoAllOptions.
type DoAllOption func(*DoAllOptions)

// WithSteal enables the work-stealing chunked scheduler.
func WithSteal() DoAllOption { return func(o *DoAllOptions) { o.Steal = true } }

// WithChunkSize sets the steal chunk size.
func WithChunkSize(n int) DoAllOption {
	return func(o *DoAllOptions) { o.ChunkSize = n }
}

// WithWorkers overrides the worker count for one call.
func WithWorkers(n int) DoAllOption {
	return func(o *DoAllOptions) { o.Workers = n }
}

// WithNoStats sets NoStats for one call; DoAll keeps no metrics, so it has
// no effect on what the call does.
func WithNoStats() DoAllOption { return func(o *DoAllOptions) { o.NoStats = true } }

func resolveDoAllOptions(opts []DoAllOption) DoAllOptions {
	o := DoAllOptions{ChunkSize: 32}
	for _, f := range opts {
		f(&o)
	}
	if o.Workers <= 0 {
		o.Workers = DefaultPoolConfig().MaxWorkers
	}
	return o
}

// DoAll applies body to each element of items exactly once. Iterations may
// run on any worker with no ordering guarantee; body must be conflict-free
// by construction (no cross-iteration shared mutable state without atomics).
// DoAll returns only after every item has been processed (structured
// concurrency per section 5: no task outlives the call).
func DoAll[T any](items []T, body func(T), opts ...DoAllOption) {
	n := len(items)
	if n == 0 {
		return
	}
	o := resolveDoAllOptions(opts)
	workers := o.Workers
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}

	if o.Steal {
		doAllSteal(items, body, workers, o.ChunkSize)
		return
	}

	var wg sync.WaitGroup
	chunkSize := (n + workers - 1) / workers
	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				body(items[i])
			}
		}(start, end)
	}
	wg.Wait()
}

// doAllSteal implements the work-stealing chunked scheduler option: workers
// repeatedly claim the next unclaimed chunk from a shared atomic cursor
// instead of a static partition, so faster workers pick up more chunks.
func doAllSteal[T any](items []T, body func(T), workers, chunkSize int) {
	if chunkSize < 1 {
		chunkSize = 1
	}
	n := len(items)
	var cursor atomic.Int64
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				start := int(cursor.Add(int64(chunkSize))) - chunkSize
				if start >= n {
					return
				}
				end := start + chunkSize
				if end > n {
					end = n
				}
				for i := start; i < end; i++ {
					body(items[i])
				}
			}
		}()
	}
	wg.Wait()
}

// ============================================================================
// OnEach — run body(tid, nthreads) exactly once per worker.
// ============================================================================

// OnEach runs body(tid, nthreads) exactly once on each of n workers.
func OnEach(n int, body func(tid, nthreads int)) {
	if n < 1 {
		n = 1
	}
	var wg sync.WaitGroup
	for tid := 0; tid < n; tid++ {
		wg.Add(1)
		go func(t int) {
			defer wg.Done()
			body(t, n)
		}(tid)
	}
	wg.Wait()
}

// ============================================================================
// ForEachWorklist — a for_each whose body may push new work items.
// ============================================================================

// Pusher lets a ForEachWorklist body enqueue additional items to be
// processed before the construct quiesces.
type Pusher[T any] struct {
	mu    *sync.Mutex
	cond  *sync.Cond
	queue *[]T
}

// Push enqueues item for later processing in the same ForEachWorklist call.
func (p *Pusher[T]) Push(item T) {
	p.mu.Lock()
	*p.queue = append(*p.queue, item)
	p.mu.Unlock()
	p.cond.Broadcast()
}

// ForEachWorklist applies body to each element of seed, and to any items
// pushed by body via the supplied Pusher, until the queue drains. It
// terminates only once every worker is idle and the queue is empty. The
// queue is FIFO and workers take one item from it at a time.
func ForEachWorklist[T any](seed []T, body func(item T, push *Pusher[T]), opts ...DoAllOption) {
	o := resolveDoAllOptions(opts)
	workers := o.Workers
	if workers < 1 {
		workers = 1
	}

	mu := &sync.Mutex{}
	cond := sync.NewCond(mu)
	queue := append([]T(nil), seed...)
	pusher := &Pusher[T]{mu: mu, cond: cond, queue: &queue}
	inFlight := 0

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				mu.Lock()
				for len(queue) == 0 && inFlight > 0 {
					cond.Wait()
				}
				if len(queue) == 0 && inFlight == 0 {
					mu.Unlock()
					cond.Broadcast()
					return
				}
				item := queue[0]
				queue = queue[1:]
				inFlight++
				mu.Unlock()

				body(item, pusher)

				mu.Lock()
				inFlight--
				mu.Unlock()
				cond.Broadcast()
			}
		}()
	}
	wg.Wait()
}
