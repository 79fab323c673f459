package topology

// CondensedTypeIDMap is a bijection between a sparse set of observed
// EntityTypeIDs and the dense range [0, NumTypes). Grounded on the
// teacher's field-name interning idiom (CompactEdgeList.fieldToID /
// fieldNames) generalized from string keys to int64 type IDs.
type CondensedTypeIDMap struct {
	backward []int64       // dense index -> EntityTypeID
	forward  map[int64]int32 // EntityTypeID -> dense index
}

// NewCondensedTypeIDMap builds the bijection from the distinct observed IDs,
// assigning dense indices in first-seen order.
func NewCondensedTypeIDMap(observed []int64) *CondensedTypeIDMap {
	m := &CondensedTypeIDMap{
		forward: make(map[int64]int32, len(observed)),
	}
	for _, id := range observed {
		if _, ok := m.forward[id]; ok {
			continue
		}
		idx := int32(len(m.backward))
		m.forward[id] = idx
		m.backward = append(m.backward, id)
	}
	return m
}

// NumTypes returns the number of distinct observed types.
func (m *CondensedTypeIDMap) NumTypes() int { return len(m.backward) }

// Forward maps an EntityTypeID to its dense index. ok is false if id was
// never observed.
func (m *CondensedTypeIDMap) Forward(id int64) (idx int32, ok bool) {
	idx, ok = m.forward[id]
	return idx, ok
}

// Backward maps a dense index back to its EntityTypeID.
func (m *CondensedTypeIDMap) Backward(idx int32) int64 {
	return m.backward[idx]
}

// EdgeTypeAwareTopology embeds a SortedByEdgeType GraphTopology and adds a
// per-(node, type) cumulative edge-count prefix so that the edges of node n
// of type t are available in O(1) without scanning.
type EdgeTypeAwareTopology struct {
	GraphTopology
	PerTypeAdj []uint64 // size NumNodes() * NumTypes()
	TypeMap    *CondensedTypeIDMap
}

// NewEdgeTypeAwareTopology consumes a base topology already sorted
// SortedByEdgeType (via SortEdgesByTypeThenDest) and builds PerTypeAdj by
// recording, for each node and each distinct type index seen while
// scanning its edge range in order, the cumulative edge count so far.
func NewEdgeTypeAwareTopology(base *GraphTopology, typeMap *CondensedTypeIDMap, edgeType func(propIndex uint64) int32) *EdgeTypeAwareTopology {
	if base.EdgeSort != EdgeSortedByEdgeType {
		panic("topology: EdgeTypeAwareTopology requires a SortedByEdgeType base")
	}
	n := base.NumNodes()
	numTypes := typeMap.NumTypes()
	perTypeAdj := make([]uint64, n*numTypes)

	for node := 0; node < n; node++ {
		b, e := base.EdgeRange(uint32(node))
		rowBase := node * numTypes
		cursor := b
		for t := 0; t < numTypes; t++ {
			for cursor < e && edgeType(base.EdgePropIndices[cursor]) == int32(t) {
				cursor++
			}
			perTypeAdj[rowBase+t] = cursor
		}
	}

	return &EdgeTypeAwareTopology{
		GraphTopology: *base,
		PerTypeAdj:    perTypeAdj,
		TypeMap:       typeMap,
	}
}

// EdgesOfType returns the destination slice for node n's edges of dense
// type index t in O(1).
func (e *EdgeTypeAwareTopology) EdgesOfType(n uint32, t int32) []uint32 {
	numTypes := e.TypeMap.NumTypes()
	row := int(n) * numTypes
	var begin uint64
	if t > 0 {
		begin = e.PerTypeAdj[row+int(t)-1]
	} else if n > 0 {
		begin = e.PerTypeAdj[row-1]
	}
	end := e.PerTypeAdj[row+int(t)]
	return e.Dests[begin:end]
}
