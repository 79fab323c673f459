package viewcache

// View is the uniform query surface algorithms are written against: the
// minimum a connected-components, BFS, PageRank, or k-core pass needs,
// independent of which concrete topology backs it.
type View interface {
	NumNodes() int
	NumEdges() int
	Degree(n uint32) int
	OutEdges(n uint32) []uint32
	GetNodePropertyIndex(n uint32) uint64
	GetEdgePropertyIndexFromOutEdge(e uint64) uint64
}

// BidirectionalView adds in-edge access over a shared (out, in) topology
// pair, typically an out-topology and its transpose.
type BidirectionalView interface {
	View
	InDegree(n uint32) int
	InEdges(n uint32) []uint32
}

// UndirectedView unions a node's in- and out-edges into one logical edge
// set. UndirectedEdges returns destination node IDs only, out-edges first;
// no edge IDs are exposed, so in-edges and out-edges are not told apart.
type UndirectedView interface {
	View
	UndirectedDegree(n uint32) int
	UndirectedEdges(n uint32) []uint32
}

// EdgeTypeAwareView adds O(1) per-type edge access.
type EdgeTypeAwareView interface {
	View
	EdgesOfType(n uint32, t int32) []uint32
	DegreeOfType(n uint32, t int32) int
	HasEdge(src, dst uint32) bool
	FindAllEdges(src, dst uint32) (begin, end uint64)
}
