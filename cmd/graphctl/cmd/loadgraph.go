package cmd

import (
	"bufio"
	"fmt"
	"os"
	"sort"

	"github.com/parascale/graphkit/pkg/topology"
	"github.com/parascale/graphkit/pkg/viewcache"
)

// loadEdgeListTopology reads a plain graph from a simple text edge list:
// a header line giving the node count, followed by one "src dst" pair per
// line (0-based, whitespace-separated). This is glue to get bytes into a
// topology.GraphTopology for the CLI; the CSR construction and every
// algorithm it feeds remain the actual library surface.
func loadEdgeListTopology(path string) (*topology.GraphTopology, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 16*1024*1024)

	if !scanner.Scan() {
		return nil, fmt.Errorf("%s: empty input, expected a node-count header line", path)
	}
	var numNodes int
	if _, err := fmt.Sscanf(scanner.Text(), "%d", &numNodes); err != nil {
		return nil, fmt.Errorf("%s: invalid header line %q: %w", path, scanner.Text(), err)
	}

	type edge struct{ src, dst uint32 }
	var edges []edge
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		var src, dst uint32
		if _, err := fmt.Sscanf(line, "%d %d", &src, &dst); err != nil {
			return nil, fmt.Errorf("%s: invalid edge line %q: %w", path, line, err)
		}
		if int(src) >= numNodes || int(dst) >= numNodes {
			return nil, fmt.Errorf("%s: edge (%d,%d) out of range [0,%d)", path, src, dst, numNodes)
		}
		edges = append(edges, edge{src, dst})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	sort.Slice(edges, func(i, j int) bool { return edges[i].src < edges[j].src })

	adjIndices := make([]uint64, numNodes)
	dests := make([]uint32, len(edges))
	var cursor int
	for n := 0; n < numNodes; n++ {
		for cursor < len(edges) && int(edges[cursor].src) == n {
			dests[cursor] = edges[cursor].dst
			cursor++
		}
		adjIndices[n] = uint64(cursor)
	}

	return topology.NewGraphTopology(adjIndices, dests)
}

// newViewCache wraps base in a viewcache.Cache with no edge-type lookups,
// since the plain-graph CLI subcommands never request an edge-type-aware
// view.
func newViewCache(base *topology.GraphTopology) *viewcache.Cache {
	return viewcache.New(base, nil, nil)
}
