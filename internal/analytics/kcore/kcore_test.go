package kcore

import (
	"testing"

	"github.com/parascale/graphkit/pkg/topology"
	"github.com/parascale/graphkit/pkg/viewcache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTriangleWithTail builds an undirected triangle {0,1,2} (encoded as
// the directed cycle 0->1->2->0, matching each undirected edge once and
// relying on the transpose for the reverse direction) with a pendant edge
// 2->3: node 3 has degree 1 and should peel out of the 2-core, leaving the
// triangle.
func buildTriangleWithTail(t *testing.T) viewcache.UndirectedView {
	t.Helper()
	adj := []uint64{1, 2, 4, 4}
	dests := []uint32{1, 2, 0, 3}
	g, err := topology.NewGraphTopology(adj, dests)
	require.NoError(t, err)
	tr := g.Transposed()
	return viewcache.NewUndirectedView(g, tr)
}

func TestRunPeelsPendantFromTwoCore(t *testing.T) {
	v := buildTriangleWithTail(t)
	res := Run(v, 2)
	assert.True(t, res.InCurrentKCore[0])
	assert.True(t, res.InCurrentKCore[1])
	assert.True(t, res.InCurrentKCore[2])
	assert.False(t, res.InCurrentKCore[3])
	assert.True(t, AssertValid(v, res, 2))
}

func TestRunZeroCoreKeepsEverything(t *testing.T) {
	v := buildTriangleWithTail(t)
	res := Run(v, 0)
	for i, kept := range res.InCurrentKCore {
		assert.True(t, kept, "node %d should survive a 0-core", i)
	}
}

func TestRunHighKEmptiesGraph(t *testing.T) {
	v := buildTriangleWithTail(t)
	res := Run(v, 5)
	for i, kept := range res.InCurrentKCore {
		assert.False(t, kept, "node %d should not survive a 5-core", i)
	}
	assert.True(t, AssertValid(v, res, 5))
}

func TestAssertValidRejectsBrokenCore(t *testing.T) {
	v := buildTriangleWithTail(t)
	res := Run(v, 2)
	res.InCurrentKCore[1] = false // corrupt: node 0 now sees only one live neighbor
	assert.False(t, AssertValid(v, res, 2))
}
