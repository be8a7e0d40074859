/*
Package trie provides the pointer-based prefix maps: a sorted-children Trie
used to stage entries before bulk compaction into a double array, and a
HashTrie which stores transitions in a hash table.

Both satisfy the same contract as the double array:

	Count() int
	Get(key []K) ([]V, bool)
	Insert(key []K, value V) error
	EachPrefix(key []K, f func(length int, values []V))
*/
package trie

import (
	"slices"

	"github.com/npillmayer/morph/unit"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'morph.trie'
func tracer() tracing.Trace {
	return tracing.Select("morph.trie")
}

// Edge is a labelled transition to a child node.
type Edge[K unit.Unit, V any] struct {
	Unit K
	Node *Node[K, V]
}

// Node is a trie node. Edges are kept sorted by Unit; every child is owned
// by exactly one parent.
type Node[K unit.Unit, V any] struct {
	Edges  []Edge[K, V]
	Values []V
}

func (n *Node[K, V]) search(k K) (int, bool) {
	return slices.BinarySearchFunc(n.Edges, k, func(e Edge[K, V], k K) int {
		return int(e.Unit) - int(k)
	})
}

// Child returns the child reached by unit k, or nil.
func (n *Node[K, V]) Child(k K) *Node[K, V] {
	if ix, ok := n.search(k); ok {
		return n.Edges[ix].Node
	}
	return nil
}

func (n *Node[K, V]) childOrCreate(k K) *Node[K, V] {
	ix, ok := n.search(k)
	if !ok {
		n.Edges = slices.Insert(n.Edges, ix, Edge[K, V]{Unit: k, Node: &Node[K, V]{}})
	}
	return n.Edges[ix].Node
}

// Trie is a staging prefix map. Insertion is cheap (binary search per level,
// never any relocation), which makes it the preferred accumulator when the
// full key set is known before the double array gets built.
type Trie[K unit.Unit, V any] struct {
	Root *Node[K, V]
	Size int
}

// New creates an empty trie.
func New[K unit.Unit, V any]() *Trie[K, V] {
	return &Trie[K, V]{Root: &Node[K, V]{}}
}

// Count returns the number of values stored.
func (t *Trie[K, V]) Count() int { return t.Size }

// Insert appends value to the bucket of key, creating nodes as needed.
func (t *Trie[K, V]) Insert(key []K, value V) error {
	if err := unit.Check(key); err != nil {
		return err
	}
	if t.Root == nil {
		t.Root = &Node[K, V]{}
	}
	n := t.Root
	for _, k := range key {
		n = n.childOrCreate(k)
	}
	n.Values = append(n.Values, value)
	t.Size++
	return nil
}

// Get returns the values stored for key.
func (t *Trie[K, V]) Get(key []K) ([]V, bool) {
	n := t.Root
	for _, k := range key {
		if n == nil {
			return nil, false
		}
		n = n.Child(k)
	}
	if n == nil || len(n.Values) == 0 {
		return nil, false
	}
	return n.Values, true
}

// EachPrefix calls f for every prefix of key which carries values, shortest first.
func (t *Trie[K, V]) EachPrefix(key []K, f func(length int, values []V)) {
	n := t.Root
	for i, k := range key {
		if n == nil {
			return
		}
		if n = n.Child(k); n == nil {
			return
		}
		if len(n.Values) > 0 {
			f(i+1, n.Values)
		}
	}
}

// Reset drops all nodes.
func (t *Trie[K, V]) Reset() {
	t.Root = &Node[K, V]{}
	t.Size = 0
}

// FanOut returns a histogram of child counts: hist[n] is the number of nodes
// with exactly n children.
func (t *Trie[K, V]) FanOut() []int {
	var hist []int
	var walk func(n *Node[K, V])
	walk = func(n *Node[K, V]) {
		l := len(n.Edges)
		for l >= len(hist) {
			hist = append(hist, 0)
		}
		hist[l]++
		for _, e := range n.Edges {
			walk(e.Node)
		}
	}
	if t.Root != nil {
		walk(t.Root)
	}
	tracer().Debugf("trie fan-out histogram: %v", hist)
	return hist
}
