package parallel

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPerThreadStorage_GetSetRemote(t *testing.T) {
	pts := NewPerThreadStorage[int](4)
	assert.Equal(t, 4, pts.Len())
	pts.SetRemote(2, 42)
	assert.Equal(t, 42, pts.GetRemote(2))
	assert.Equal(t, 0, pts.GetRemote(0))
}

func TestPerThreadStorage_MinWorkers(t *testing.T) {
	pts := NewPerThreadStorage[string](0)
	assert.Equal(t, 1, pts.Len())
}

func TestInsertBag_ConcurrentPush(t *testing.T) {
	bag := NewInsertBag[int]()
	items := make([]int, 300)
	for i := range items {
		items[i] = i
	}
	DoAll(items, func(v int) {
		bag.Push(v)
	})
	assert.Equal(t, len(items), bag.Len())
	got := append([]int(nil), bag.Items()...)
	sort.Ints(got)
	assert.Equal(t, items, got)
}
