package parallel

import (
	"sort"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoAll_VisitsEveryItemExactlyOnce(t *testing.T) {
	items := make([]int, 1000)
	for i := range items {
		items[i] = i
	}
	var seen [1000]atomic.Int32
	DoAll(items, func(i int) {
		seen[i].Add(1)
	})
	for i, s := range seen {
		require.Equal(t, int32(1), s.Load(), "item %d visited %d times", i, s.Load())
	}
}

func TestDoAll_Steal(t *testing.T) {
	items := make([]int, 500)
	for i := range items {
		items[i] = i
	}
	var total atomic.Int64
	DoAll(items, func(i int) {
		total.Add(int64(i))
	}, WithSteal(), WithChunkSize(7))

	want := int64(0)
	for _, i := range items {
		want += int64(i)
	}
	assert.Equal(t, want, total.Load())
}

func TestDoAll_Empty(t *testing.T) {
	called := false
	DoAll([]int{}, func(int) { called = true })
	assert.False(t, called)
}

func TestOnEach_RunsOncePerWorker(t *testing.T) {
	n := 6
	var seen [6]atomic.Bool
	var totalArg atomic.Int32
	OnEach(n, func(tid, nthreads int) {
		seen[tid].Store(true)
		totalArg.Store(int32(nthreads))
	})
	for i, s := range seen {
		assert.True(t, s.Load(), "worker %d did not run", i)
	}
	assert.Equal(t, int32(n), totalArg.Load())
}

func TestForEachWorklist_DrainsPushedItems(t *testing.T) {
	var mu atomic.Int64
	seed := []int{10}
	ForEachWorklist(seed, func(item int, push *Pusher[int]) {
		mu.Add(int64(item))
		if item > 0 {
			push.Push(item - 1)
		}
	})
	// 10+9+...+0 = 55
	assert.Equal(t, int64(55), mu.Load())
}

func TestForEachWorklist_Empty(t *testing.T) {
	called := false
	ForEachWorklist([]int{}, func(int, *Pusher[int]) { called = true })
	assert.False(t, called)
}

func TestForEachWorklist_VisitsSeedOnce(t *testing.T) {
	var out []int
	var mu atomic.Int32
	seed := []int{1, 2, 3, 4, 5}
	results := make(chan int, len(seed))
	ForEachWorklist(seed, func(item int, push *Pusher[int]) {
		mu.Add(1)
		results <- item
	})
	close(results)
	for v := range results {
		out = append(out, v)
	}
	sort.Ints(out)
	assert.Equal(t, seed, out)
	assert.Equal(t, int32(len(seed)), mu.Load())
}
