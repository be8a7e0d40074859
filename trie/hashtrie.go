package trie

import (
	"errors"

	"github.com/npillmayer/morph/unit"
)

// ErrFrozen is returned when inserting into a frozen HashTrie.
var ErrFrozen = errors.New("trie is frozen")

const hashRoot = 0

// HashTrie is a prefix map storing its transitions in a hash table keyed by
// (state, unit). States are numbered in creation order, the root being 0.
// It needs no placement search at all, at the price of a hash lookup per
// transition. It is intended for write-once/read-many workloads.
type HashTrie[K unit.Unit, V any] struct {
	Frozen bool
	LastID uint32
	Links  map[uint64]uint32 // (state<<32 | unit) → state
	Data   map[uint32][]V
}

// NewHashTrie creates an empty hash trie.
func NewHashTrie[K unit.Unit, V any]() *HashTrie[K, V] {
	return &HashTrie[K, V]{
		Links: make(map[uint64]uint32),
		Data:  make(map[uint32][]V),
	}
}

func edge[K unit.Unit](state uint32, k K) uint64 {
	return uint64(state)<<32 | uint64(uint32(k))
}

func (ht *HashTrie[K, V]) advance(state uint32, k K) (uint32, bool) {
	next, ok := ht.Links[edge(state, k)]
	return next, ok
}

// Count returns the number of values stored.
func (ht *HashTrie[K, V]) Count() int {
	n := 0
	for _, vs := range ht.Data {
		n += len(vs)
	}
	return n
}

// Insert appends value to the bucket of key, allocating new states as needed.
func (ht *HashTrie[K, V]) Insert(key []K, value V) error {
	if ht.Frozen {
		return ErrFrozen
	}
	if err := unit.Check(key); err != nil {
		return err
	}
	if ht.Links == nil {
		ht.Links = make(map[uint64]uint32)
		ht.Data = make(map[uint32][]V)
	}
	state := uint32(hashRoot)
	for _, k := range key {
		next, ok := ht.advance(state, k)
		if !ok {
			ht.LastID++
			next = ht.LastID
			ht.Links[edge(state, k)] = next
		}
		state = next
	}
	ht.Data[state] = append(ht.Data[state], value)
	return nil
}

// Get returns the values stored for key.
func (ht *HashTrie[K, V]) Get(key []K) ([]V, bool) {
	state := uint32(hashRoot)
	for _, k := range key {
		next, ok := ht.advance(state, k)
		if !ok {
			return nil, false
		}
		state = next
	}
	vs := ht.Data[state]
	return vs, len(vs) > 0
}

// EachPrefix calls f for every prefix of key which carries values, shortest first.
func (ht *HashTrie[K, V]) EachPrefix(key []K, f func(length int, values []V)) {
	it := ht.Iterator()
	for i, k := range key {
		state := it.Next(k)
		if state < 0 {
			return
		}
		if vs := ht.Data[uint32(state)]; len(vs) > 0 {
			f(i+1, vs)
		}
	}
}

// Freeze makes the trie read-only.
func (ht *HashTrie[K, V]) Freeze() {
	ht.Frozen = true
}

// Iterator returns a stateful prefix iterator starting at the root.
func (ht *HashTrie[K, V]) Iterator() *Iterator[K, V] {
	return &Iterator[K, V]{trie: ht, state: hashRoot}
}

// --- Iterator --------------------------------------------------------------

// Iterator advances through successive prefix states for one query key.
type Iterator[K unit.Unit, V any] struct {
	trie  *HashTrie[K, V]
	state uint32
}

// Next advances the iterator by one unit and returns the state reached.
// It returns -1 once the prefix is not present; the iterator stays dead.
func (it *Iterator[K, V]) Next(k K) int {
	if it.trie == nil {
		return -1
	}
	next, ok := it.trie.advance(it.state, k)
	if !ok {
		it.trie = nil // end of iteration
		return -1
	}
	it.state = next
	return int(next)
}

// ---------------------------------------------------------------------------

// Stats writes size statistics to the trace log.
func (ht *HashTrie[K, V]) Stats() {
	tracer().Infof("Hash Trie Statistics:")
	tracer().Infof("  States:      %d", ht.LastID+1)
	tracer().Infof("  Transitions: %d", len(ht.Links))
	tracer().Infof("  Buckets:     %d", len(ht.Data))
	tracer().Infof("  Values:      %d", ht.Count())
}
