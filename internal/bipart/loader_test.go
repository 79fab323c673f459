package bipart

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadHyperGraphParsesHeaderAndPins(t *testing.T) {
	input := "3 4\n1 2\n2 3\n3 4\n"
	g, err := LoadHyperGraph(strings.NewReader(input), LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, uint32(3), g.Hedges)
	assert.Equal(t, uint32(4), g.Hnodes)
	assert.Equal(t, 7, g.Size())
	// hedge 0 connects nodes 1,2 -> absolute ids 3,4 (offset by 3 hedges)
	assert.Equal(t, []uint32{3, 4}, g.Edges(0))
}

func TestLoadHyperGraphSkipsLoneHedges(t *testing.T) {
	input := "2 3\n1\n2 3\n"
	g, err := LoadHyperGraph(strings.NewReader(input), LoadOptions{SkipLoneHedges: true})
	require.NoError(t, err)
	assert.Equal(t, uint32(1), g.Hedges)
}

func TestLoadHyperGraphRejectsOutOfRangeNode(t *testing.T) {
	input := "1 2\n1 5\n"
	_, err := LoadHyperGraph(strings.NewReader(input), LoadOptions{})
	assert.Error(t, err)
}

func TestLoadHyperGraphRejectsMalformedHeader(t *testing.T) {
	_, err := LoadHyperGraph(strings.NewReader("oops\n"), LoadOptions{})
	assert.Error(t, err)
}
