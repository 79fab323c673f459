package bipart

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/parascale/graphkit/pkg/errors"
	"github.com/parascale/graphkit/pkg/topology"
)

// LoadOptions configures hMETIS parsing.
type LoadOptions struct {
	// SkipLoneHedges drops hyperedge lines that list fewer than two node
	// IDs instead of keeping them as degenerate singleton pins.
	SkipLoneHedges bool
}

// LoadHyperGraph parses an hMETIS-format hypergraph: a header line
// "num_hedges num_nodes" followed by one line per hyperedge listing its
// member node IDs (1-indexed). It returns the hypergraph with hyperedges
// occupying indices [0, Hedges) and graph nodes occupying
// [Hedges, Hedges+Hnodes).
func LoadHyperGraph(r io.Reader, opts LoadOptions) (*HyperGraph, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	if !scanner.Scan() {
		return nil, errors.InvalidArgument("bipart: empty hypergraph input")
	}
	header := strings.Fields(scanner.Text())
	if len(header) < 2 {
		return nil, errors.InvalidArgument("bipart: malformed header %q", scanner.Text())
	}
	numHedges, err := strconv.Atoi(header[0])
	if err != nil {
		return nil, errors.InvalidArgument("bipart: bad hedge count: %v", err)
	}
	numNodes, err := strconv.Atoi(header[1])
	if err != nil {
		return nil, errors.InvalidArgument("bipart: bad node count: %v", err)
	}

	pinLists := make([][]uint32, 0, numHedges)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		pins := make([]uint32, 0, len(fields))
		for _, f := range fields {
			id, err := strconv.Atoi(f)
			if err != nil || id < 1 || id > numNodes {
				return nil, errors.InvalidArgument("bipart: node id %q out of bounds [1,%d]", f, numNodes)
			}
			pins = append(pins, uint32(numHedges)+uint32(id-1))
		}
		if opts.SkipLoneHedges && len(pins) < 2 {
			continue
		}
		pinLists = append(pinLists, pins)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.IO(err, "bipart: reading hypergraph input")
	}
	if len(pinLists) > numHedges {
		return nil, errors.InvalidArgument("bipart: more hyperedge lines than declared (%d)", numHedges)
	}

	actualHedges := len(pinLists)
	total := actualHedges + numNodes
	adjIndices := make([]uint64, total)
	var cursor uint64
	for i, pins := range pinLists {
		cursor += uint64(len(pins))
		adjIndices[i] = cursor
	}
	for i := actualHedges; i < total; i++ {
		adjIndices[i] = cursor
	}
	dests := make([]uint32, 0, cursor)
	for _, pins := range pinLists {
		dests = append(dests, pins...)
	}

	topo, err := topology.NewGraphTopology(adjIndices, dests)
	if err != nil {
		return nil, err
	}

	g := &HyperGraph{
		Topo:   topo,
		Hedges: uint32(actualHedges),
		Hnodes: uint32(numNodes),
		Nodes:  make([]*NodeState, total),
	}
	for i := 0; i < total; i++ {
		g.Nodes[i] = newNodeState(i, actualHedges)
	}
	return g, nil
}
