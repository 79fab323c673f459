package parallel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGAccumulator_SumsConcurrentUpdates(t *testing.T) {
	acc := NewGAccumulator[int]()
	items := make([]int, 200)
	for i := range items {
		items[i] = i + 1
	}
	DoAll(items, func(v int) {
		acc.Update(v)
	})
	want := 0
	for _, v := range items {
		want += v
	}
	assert.Equal(t, want, acc.Reduce())
}

func TestGAccumulator_ReduceResets(t *testing.T) {
	acc := NewGAccumulator[int64]()
	acc.Update(5)
	assert.Equal(t, int64(5), acc.Reduce())
	assert.Equal(t, int64(0), acc.Reduce())
}

func TestGReduceLogicalOr(t *testing.T) {
	r := &GReduceLogicalOr{}
	assert.False(t, r.Reduce())
	r.Update(false)
	assert.False(t, r.Reduce())
	r.Update(true)
	assert.True(t, r.Reduce())
	r.Reset()
	assert.False(t, r.Reduce())
}

func TestReducible_MaxMerge(t *testing.T) {
	r := MakeReducible(func(a, b int) int {
		if a > b {
			return a
		}
		return b
	}, 0)
	items := []int{3, 9, 1, 7, 2}
	DoAll(items, func(v int) {
		r.Update(v)
	})
	assert.Equal(t, 9, r.Reduce())
}
