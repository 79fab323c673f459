package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCondensedTypeIDMapBijection(t *testing.T) {
	m := NewCondensedTypeIDMap([]int64{40, 10, 40, 99})
	assert.Equal(t, 3, m.NumTypes())
	for i := int32(0); i < int32(m.NumTypes()); i++ {
		id := m.Backward(i)
		got, ok := m.Forward(id)
		require.True(t, ok)
		assert.Equal(t, i, got)
	}
}

func TestCondensedTypeIDMapUnknownID(t *testing.T) {
	m := NewCondensedTypeIDMap([]int64{1, 2})
	_, ok := m.Forward(99)
	assert.False(t, ok)
}

func TestEdgeTypeAwareTopology(t *testing.T) {
	// node 0 -> edges with types [A, A, B]; node 1 -> edges with type [B]
	adj := []uint64{3, 4}
	dests := []uint32{1, 2, 0, 2}
	g, err := NewGraphTopology(adj, dests)
	require.NoError(t, err)

	typeByProp := map[uint64]int64{0: 10, 1: 10, 2: 20, 3: 20}
	m := NewCondensedTypeIDMap([]int64{10, 20})
	edgeType := func(p uint64) int32 {
		idx, _ := m.Forward(typeByProp[p])
		return idx
	}
	g.SortEdgesByTypeThenDest(edgeType)
	assert.Equal(t, EdgeSortedByEdgeType, g.EdgeSort)

	eta := NewEdgeTypeAwareTopology(g, m, edgeType)
	typeA, _ := m.Forward(10)
	typeB, _ := m.Forward(20)

	edgesA := eta.EdgesOfType(0, typeA)
	edgesB := eta.EdgesOfType(0, typeB)
	assert.Len(t, edgesA, 2)
	assert.Len(t, edgesB, 1)

	node1B := eta.EdgesOfType(1, typeB)
	assert.Equal(t, []uint32{2}, node1B)
}
