package viewcache

import "github.com/parascale/graphkit/pkg/topology"

// defaultView wraps a single GraphTopology with the base View surface.
type defaultView struct {
	topo *topology.GraphTopology
}

// NewDefaultView exposes topo through the uniform View surface.
func NewDefaultView(topo *topology.GraphTopology) View {
	return &defaultView{topo: topo}
}

func (v *defaultView) NumNodes() int        { return v.topo.NumNodes() }
func (v *defaultView) NumEdges() int        { return v.topo.NumEdges() }
func (v *defaultView) Degree(n uint32) int  { return v.topo.Degree(n) }
func (v *defaultView) OutEdges(n uint32) []uint32 { return v.topo.Edges(n) }
func (v *defaultView) GetNodePropertyIndex(n uint32) uint64 { return uint64(n) }
func (v *defaultView) GetEdgePropertyIndexFromOutEdge(e uint64) uint64 {
	return v.topo.EdgePropIndices[e]
}

// bidirectionalView shares an out-topology and an in-topology (typically
// its transpose).
type bidirectionalView struct {
	defaultView
	in *topology.GraphTopology
}

// NewBidirectionalView exposes out/in as a BidirectionalView.
func NewBidirectionalView(out, in *topology.GraphTopology) BidirectionalView {
	return &bidirectionalView{defaultView: defaultView{topo: out}, in: in}
}

func (v *bidirectionalView) InDegree(n uint32) int      { return v.in.Degree(n) }
func (v *bidirectionalView) InEdges(n uint32) []uint32 { return v.in.Edges(n) }

// undirectedView unions out- and in-edges by concatenating the two
// destination slices; it applies no edge-ID offset.
type undirectedView struct {
	defaultView
	in *topology.GraphTopology
}

// NewUndirectedView exposes out/in as an UndirectedView.
func NewUndirectedView(out, in *topology.GraphTopology) UndirectedView {
	return &undirectedView{defaultView: defaultView{topo: out}, in: in}
}

func (v *undirectedView) UndirectedDegree(n uint32) int {
	return v.topo.Degree(n) + v.in.Degree(n)
}

func (v *undirectedView) UndirectedEdges(n uint32) []uint32 {
	out := append([]uint32(nil), v.topo.Edges(n)...)
	return append(out, v.in.Edges(n)...)
}

// edgeTypeAwareView wraps an EdgeTypeAwareTopology.
type edgeTypeAwareView struct {
	defaultView
	eta *topology.EdgeTypeAwareTopology
}

// NewEdgeTypeAwareView exposes eta as an EdgeTypeAwareView.
func NewEdgeTypeAwareView(eta *topology.EdgeTypeAwareTopology) EdgeTypeAwareView {
	return &edgeTypeAwareView{defaultView: defaultView{topo: &eta.GraphTopology}, eta: eta}
}

func (v *edgeTypeAwareView) EdgesOfType(n uint32, t int32) []uint32 {
	return v.eta.EdgesOfType(n, t)
}

func (v *edgeTypeAwareView) DegreeOfType(n uint32, t int32) int {
	return len(v.eta.EdgesOfType(n, t))
}

func (v *edgeTypeAwareView) HasEdge(src, dst uint32) bool {
	_, ok := v.eta.FindEdge(src, dst)
	return ok
}

func (v *edgeTypeAwareView) FindAllEdges(src, dst uint32) (begin, end uint64) {
	return v.eta.FindAllEdges(src, dst)
}
