package typeir

// Table is the global, insertion-ordered type table. It is the single
// owner of every Node; every other component (fields, sequence/map
// elements, union variants) holds a TypeID only, never a Node by value.
type Table struct {
	nodes []Node // index i holds the node for TypeID(i+1)

	// namedIDs maps a named schema's canonical ref path to the TypeID
	// reserved for it, so a second $ref to the same component reuses the
	// ID instead of re-lowering (and so the ID can be pre-allocated
	// before descending into the referent, breaking cycles into Named
	// edges).
	namedIDs map[string]TypeID

	// dedup maps a structural key (see key.go) to the TypeID of the
	// first inline node that produced it. Named schemas never
	// participate in this map.
	dedup map[string]TypeID
}

// NewTable returns an empty type table.
func NewTable() *Table {
	return &Table{
		namedIDs: make(map[string]TypeID),
		dedup:    make(map[string]TypeID),
	}
}

// Alloc reserves the next TypeID without assigning a Node yet. Used to
// break reference cycles: the caller allocates an ID for a named schema
// before descending into its body, so a self- or mutually-referential
// schema resolves to that same ID via a Named edge instead of recursing
// forever.
func (t *Table) Alloc() TypeID {
	t.nodes = append(t.nodes, Node{})
	return TypeID(len(t.nodes))
}

// Set assigns the Node for a previously allocated TypeID.
func (t *Table) Set(id TypeID, n Node) {
	t.nodes[id-1] = n
}

// Get returns the Node for id. Panics if id was never allocated, same as
// an out-of-range slice index would.
func (t *Table) Get(id TypeID) Node {
	return t.nodes[id-1]
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.nodes)
}

// IDs returns every TypeID in insertion order.
func (t *Table) IDs() []TypeID {
	ids := make([]TypeID, len(t.nodes))
	for i := range t.nodes {
		ids[i] = TypeID(i + 1)
	}
	return ids
}

// NamedID looks up the TypeID already reserved for a named schema, if any.
func (t *Table) NamedID(ref string) (TypeID, bool) {
	id, ok := t.namedIDs[ref]
	return id, ok
}

// ReserveNamed allocates (or returns the existing) TypeID for a named
// schema ref, recording the reservation so concurrent/cyclic lowering of
// the same ref resolves to one ID.
func (t *Table) ReserveNamed(ref string) TypeID {
	if id, ok := t.namedIDs[ref]; ok {
		return id
	}
	id := t.Alloc()
	t.namedIDs[ref] = id
	return id
}

// InternInline structurally deduplicates an inline (non-named) node: two
// inline schemas that lower to byte-identical Type IR share a TypeID.
// Named schemas must never be passed here — callers place them directly
// via Set against an ID from ReserveNamed instead.
func (t *Table) InternInline(n Node) TypeID {
	key := canonicalKey(n)
	if id, ok := t.dedup[key]; ok {
		return id
	}
	id := t.Alloc()
	t.Set(id, n)
	t.dedup[key] = id
	return id
}
