package bipart

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTriangleHyperGraph(t *testing.T) *HyperGraph {
	t.Helper()
	// 3 hyperedges over 4 nodes: a small connected hypergraph.
	input := "3 4\n1 2 3\n2 3 4\n1 4\n"
	g, err := LoadHyperGraph(strings.NewReader(input), LoadOptions{})
	require.NoError(t, err)
	return g
}

func TestBisectOneProducesTwoWaySplit(t *testing.T) {
	g := buildTriangleHyperGraph(t)
	bisectOne(g, 2)

	seen := map[uint32]bool{}
	for n := g.Hedges; n < uint32(g.Size()); n++ {
		p := g.Data(n).Partition
		assert.True(t, p == 0 || p == 1)
		seen[p] = true
	}
	assert.True(t, len(seen) >= 1)
}

func TestComputeDegreesCountsIncidentHedges(t *testing.T) {
	g := buildTriangleHyperGraph(t)
	computeDegrees(g)

	// node 1 (absolute id = Hedges+0) is a member of hedges 0 and 2.
	assert.Equal(t, uint32(2), g.Data(g.Hedges+0).Degree.Load())
}

func TestInitGainChargesNegativeGainWhenAllNodesShareAPartition(t *testing.T) {
	g := buildTriangleHyperGraph(t)
	for n := g.Hedges; n < uint32(g.Size()); n++ {
		g.Data(n).Partition = 0
	}
	initGain(g)

	// No hyperedge is cut, so no node gains by moving; every node sits in
	// exactly two uncut hyperedges, each of which moving it would cut.
	for n := g.Hedges; n < uint32(g.Size()); n++ {
		nd := g.Data(n)
		assert.Equal(t, int64(0), nd.PositiveGain.Load())
		assert.Equal(t, int64(2), nd.NegativeGain.Load())
	}
}
