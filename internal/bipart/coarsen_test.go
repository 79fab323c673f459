package bipart

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashIsDeterministic(t *testing.T) {
	assert.Equal(t, hash(7), hash(7))
}

func TestAssignPriorityAndRandPropagatesToPins(t *testing.T) {
	// one hyperedge touching both pins: after propagation both pins must
	// carry the hyperedge's own netval as their minimum.
	g, err := LoadHyperGraph(strings.NewReader("1 2\n1 2\n"), LoadOptions{})
	require.NoError(t, err)

	assignPriorityAndRand(g, HigherDegree)

	hedgeVal := g.Data(0).Netval.Load()
	assert.Equal(t, hedgeVal, g.Data(1).Netval.Load())
	assert.Equal(t, hedgeVal, g.Data(2).Netval.Load())
}

func TestCoarsenOnceMergesSoleHyperedgeMembers(t *testing.T) {
	// 16 total nodes keeps kLimitWeight's (1+tol)/(2+tol)/4 cap (0.525/4*16
	// = 2 here) wide enough to admit both of the hyperedge's weight-1 pins
	// into the same group; the other 14 nodes are unreferenced by any
	// hyperedge and fall out as lone singletons.
	g, err := LoadHyperGraph(strings.NewReader("1 16\n1 2\n"), LoadOptions{})
	require.NoError(t, err)

	mg := NewMetisGraph(g, nil)
	coarse := coarsenOnce(mg, HigherDegree)

	require.NotNil(t, coarse)
	// both fine nodes shared the sole hyperedge, so they collapse into the
	// same coarse parent; the 14 lone nodes each remain their own group.
	assert.Equal(t, g.Data(1).Parent, g.Data(2).Parent)
	assert.Equal(t, uint32(15), coarse.Graph.Hnodes)
}

func TestMatchCapsGroupWeightAndGivesUnmatchedNodesASecondChance(t *testing.T) {
	// Same 16-node sizing as above (cap == 2), but the hyperedge now lists
	// three pins: the third exceeds the group's weight cap and must fall
	// back to its own singleton rather than joining the full group.
	g, err := LoadHyperGraph(strings.NewReader("1 16\n1 2 3\n"), LoadOptions{})
	require.NoError(t, err)

	assignPriorityAndRand(g, HigherDegree)
	groups := match(g)

	var rep1, rep3 uint32
	for winner, members := range groups {
		for _, m := range members {
			if m == 1 {
				rep1 = winner
			}
			if m == 3 {
				rep3 = winner
			}
		}
	}
	assert.NotEqual(t, rep1, rep3, "node 3 must not join the already-capped group")
	assert.Equal(t, uint32(1), rep1, "group representative must be the minimum member node ID, not the winning hyperedge's ID")
}

func TestCoarsenStopsBelowThresholds(t *testing.T) {
	g, err := LoadHyperGraph(strings.NewReader("1 2\n1 2\n"), LoadOptions{})
	require.NoError(t, err)
	graphs := []*MetisGraph{NewMetisGraph(g, nil)}

	Coarsen(graphs, HigherDegree)

	// already below CoarsestHedgeLimit/CoarsestNodeLimit, so Coarsen must
	// not touch it.
	assert.Same(t, g, graphs[0].Graph)
}
