package dat

import (
	"github.com/npillmayer/morph/trie"
	"github.com/npillmayer/morph/unit"
)

// FromTrie builds a double array from a fully populated trie in one
// depth-first pass. All siblings of a node are placed at once, so no state
// ever needs to be relocated. Value buckets are moved, not copied; t is
// empty afterwards.
func FromTrie[K unit.Unit, V any](t *trie.Trie[K, V], opts Options) *DoubleArray[K, V] {
	da := New[K, V](opts)
	if t == nil || t.Root == nil {
		return da
	}
	da.Data[Root], t.Root.Values = t.Root.Values, nil
	da.place(Root, t.Root)
	tracer().Debugf("transformed trie of %d values into %d cells", t.Count(), len(da.Check))
	t.Reset()
	return da
}

// place allocates the children of node n, which lives at state s, and
// recurses into them.
func (da *DoubleArray[K, V]) place(s int, n *trie.Node[K, V]) {
	if len(n.Edges) == 0 {
		return
	}
	units := make([]int, len(n.Edges))
	for i, e := range n.Edges {
		units[i] = unit.Index(e.Unit)
	}
	b := da.searchCache().FindBase(da.Check, units)
	da.extend(b + units[len(units)-1] + 1)
	da.Base[s] = uint32(b)
	for i, e := range n.Edges {
		t := da.claim(s, b+units[i])
		da.Data[t], e.Node.Values = e.Node.Values, nil
	}
	for i, e := range n.Edges {
		da.place(b+units[i], e.Node)
	}
}
