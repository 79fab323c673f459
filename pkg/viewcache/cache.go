package viewcache

import (
	"sort"

	"github.com/parascale/graphkit/pkg/topology"
)

type cacheKey struct {
	transpose topology.TransposeKind
	nodeSort  topology.NodeSortKind
	edgeSort  topology.EdgeSortKind
}

// Cache memoizes derived topologies keyed by (TransposeKind, NodeSortKind,
// EdgeSortKind). It is deliberately not safe for concurrent mutation: the
// key space and "any edge-sort matches Any" matching policy make a
// read-mostly, single-writer cache the right idiom rather than a
// lock-free one. Built during setup, consulted read-only by algorithms.
type Cache struct {
	base        *topology.GraphTopology
	transposed  *topology.GraphTopology
	edgeShuff   map[cacheKey]*topology.GraphTopology
	nodeShuff   map[cacheKey]*topology.ShuffleTopology
	typeAware   map[topology.TransposeKind]*topology.EdgeTypeAwareTopology
	typeMap     *topology.CondensedTypeIDMap
	edgeTypeOf  func(propIndex uint64) int32
	typesOf     func() []int64
}

// New creates a cache over base. edgeTypeOf/typesOf supply the edge-type
// lookups BuildOrGetEdgeTypeAwareTopo needs; they may be nil if the caller
// never requests an edge-type-aware view.
func New(base *topology.GraphTopology, edgeTypeOf func(propIndex uint64) int32, typesOf func() []int64) *Cache {
	return &Cache{
		base:       base,
		edgeShuff:  make(map[cacheKey]*topology.GraphTopology),
		nodeShuff:  make(map[cacheKey]*topology.ShuffleTopology),
		typeAware:  make(map[topology.TransposeKind]*topology.EdgeTypeAwareTopology),
		edgeTypeOf: edgeTypeOf,
		typesOf:    typesOf,
	}
}

// GetDefaultTopology returns the base CSR.
func (c *Cache) GetDefaultTopology() *topology.GraphTopology { return c.base }

func (c *Cache) getTransposed() *topology.GraphTopology {
	if c.transposed == nil {
		c.transposed = c.base.Transposed()
	}
	return c.transposed
}

func edgeSortMatches(want, have topology.EdgeSortKind) bool {
	return want == have || want == topology.EdgeSortAny
}

// BuildOrGetEdgeShuffTopo returns a cached derived CSR tagged (tpose,
// edgeSort) or builds it: transpose first if needed, then sort edges.
// An entry matches if its tags are an exact match or, when edgeSort is
// Any, any edge-sort tag on the requested transpose side. A matching
// cached entry is preferred over the base topology.
func (c *Cache) BuildOrGetEdgeShuffTopo(tpose topology.TransposeKind, edgeSort topology.EdgeSortKind) *topology.GraphTopology {
	for k, v := range c.edgeShuff {
		if k.transpose == tpose && edgeSortMatches(edgeSort, k.edgeSort) {
			return v
		}
	}
	if tpose == topology.TransposeNo && edgeSortMatches(edgeSort, c.base.EdgeSort) {
		return c.base
	}

	var built *topology.GraphTopology
	if tpose == topology.TransposeYes {
		built = c.getTransposed().Copy()
	} else {
		built = c.base.Copy()
	}
	if edgeSort == topology.EdgeSortedByDestID {
		built.SortEdgesByDestID()
	}

	key := cacheKey{transpose: tpose, edgeSort: built.EdgeSort}
	c.edgeShuff[key] = built
	return built
}

// BuildOrGetShuffTopo returns a cached fully node-shuffled topology tagged
// (tpose, nodeSort, edgeSort), building it from BuildOrGetEdgeShuffTopo's
// output via MakeNodeSortedTopo when not already cached.
func (c *Cache) BuildOrGetShuffTopo(tpose topology.TransposeKind, nodeSort topology.NodeSortKind, edgeSort topology.EdgeSortKind) *topology.ShuffleTopology {
	for k, v := range c.nodeShuff {
		if k.transpose == tpose && k.nodeSort == nodeSort && edgeSortMatches(edgeSort, k.edgeSort) {
			return v
		}
	}

	base := c.BuildOrGetEdgeShuffTopo(tpose, topology.EdgeSortAny)
	var less func(a, b uint32) bool
	switch nodeSort {
	case topology.NodeSortByDegree:
		less = topology.ByDegreeDescending(base)
	default:
		less = func(a, b uint32) bool { return a < b }
	}
	built := topology.MakeNodeSortedTopo(base, less, nodeSort)
	if edgeSort == topology.EdgeSortedByDestID {
		built.SortEdgesByDestID()
	}

	key := cacheKey{transpose: tpose, nodeSort: nodeSort, edgeSort: built.EdgeSort}
	c.nodeShuff[key] = built
	return built
}

// BuildOrGetEdgeTypeAwareTopo ensures the underlying topology is
// SortedByEdgeType, then builds/returns the per-type prefix sums. The
// condensed type-ID map is built on first request and reused thereafter.
func (c *Cache) BuildOrGetEdgeTypeAwareTopo(tpose topology.TransposeKind) *topology.EdgeTypeAwareTopology {
	if v, ok := c.typeAware[tpose]; ok {
		return v
	}
	if c.typeMap == nil {
		c.typeMap = topology.NewCondensedTypeIDMap(c.typesOf())
	}

	var base *topology.GraphTopology
	if tpose == topology.TransposeYes {
		base = c.getTransposed().Copy()
	} else {
		base = c.base.Copy()
	}
	base.SortEdgesByTypeThenDest(c.edgeTypeOf)

	built := topology.NewEdgeTypeAwareTopology(base, c.typeMap, c.edgeTypeOf)
	c.typeAware[tpose] = built
	return built
}

// ReseatDefaultTopo promotes a derived topology to be the default,
// avoiding the maintenance of two equivalent CSRs.
func (c *Cache) ReseatDefaultTopo(newDefault *topology.GraphTopology) {
	c.base = newDefault
	c.transposed = nil
}

// DropAllTopologies purges every cached entry except the default.
func (c *Cache) DropAllTopologies() {
	c.transposed = nil
	c.edgeShuff = make(map[cacheKey]*topology.GraphTopology)
	c.nodeShuff = make(map[cacheKey]*topology.ShuffleTopology)
	c.typeAware = make(map[topology.TransposeKind]*topology.EdgeTypeAwareTopology)
	c.typeMap = nil
}

// RDGTopology is one serialized cache entry: tags plus backing arrays,
// verbatim, for an external store to round-trip.
type RDGTopology struct {
	Transpose       topology.TransposeKind
	NodeSort        topology.NodeSortKind
	EdgeSort        topology.EdgeSortKind
	AdjIndices      []uint64
	Dests           []uint32
	EdgePropIndices []uint64
	NodePropIndices []uint64 // nil unless this entry is a ShuffleTopology
}

// ToRDGTopology serializes every currently cached topology's tag set and
// backing arrays. Idempotent: repeated calls over an unchanged cache
// produce identical output.
func (c *Cache) ToRDGTopology() []RDGTopology {
	var out []RDGTopology
	out = append(out, RDGTopology{
		Transpose:       c.base.Transpose,
		EdgeSort:        c.base.EdgeSort,
		AdjIndices:      c.base.AdjIndices,
		Dests:           c.base.Dests,
		EdgePropIndices: c.base.EdgePropIndices,
	})
	for k, v := range c.edgeShuff {
		out = append(out, RDGTopology{
			Transpose:       k.transpose,
			EdgeSort:        v.EdgeSort,
			AdjIndices:      v.AdjIndices,
			Dests:           v.Dests,
			EdgePropIndices: v.EdgePropIndices,
		})
	}
	for k, v := range c.nodeShuff {
		out = append(out, RDGTopology{
			Transpose:       k.transpose,
			NodeSort:        v.NodeSort,
			EdgeSort:        v.EdgeSort,
			AdjIndices:      v.AdjIndices,
			Dests:           v.Dests,
			EdgePropIndices: v.EdgePropIndices,
			NodePropIndices: v.NodePropIndices,
		})
	}
	// Order the derived entries by their tags, not by map iteration order.
	derived := out[1:]
	sort.SliceStable(derived, func(i, j int) bool {
		a, b := derived[i], derived[j]
		if a.Transpose != b.Transpose {
			return a.Transpose < b.Transpose
		}
		if a.NodeSort != b.NodeSort {
			return a.NodeSort < b.NodeSort
		}
		if a.EdgeSort != b.EdgeSort {
			return a.EdgeSort < b.EdgeSort
		}
		return a.NodePropIndices == nil && b.NodePropIndices != nil
	})
	return out
}
