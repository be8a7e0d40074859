package dat

import (
	"github.com/npillmayer/morph/trie"
	"github.com/npillmayer/morph/unit"
)

// Staged is a build-then-compact prefix map. Inserts accumulate in a
// trie.Trie until Compact transforms it into a DoubleArray; from then on all
// operations go to the array.
type Staged[K unit.Unit, V any] struct {
	opts  Options
	trie  *trie.Trie[K, V]
	array *DoubleArray[K, V]
}

// NewStaged creates an empty staged map. opts apply to the array built by
// Compact.
func NewStaged[K unit.Unit, V any](opts Options) *Staged[K, V] {
	return &Staged[K, V]{opts: opts, trie: trie.New[K, V]()}
}

// Compacted reports whether Compact has been called.
func (st *Staged[K, V]) Compacted() bool {
	return st.array != nil
}

// Compact transforms the staging trie into a double array and returns it.
// Calling it again returns the same array.
func (st *Staged[K, V]) Compact() *DoubleArray[K, V] {
	if st.array == nil {
		st.array = FromTrie(st.trie, st.opts)
		st.trie = nil
	}
	return st.array
}

// Count returns the number of values stored.
func (st *Staged[K, V]) Count() int {
	if st.array != nil {
		return st.array.Count()
	}
	return st.trie.Count()
}

// Insert appends value to the bucket of key.
func (st *Staged[K, V]) Insert(key []K, value V) error {
	if st.array != nil {
		return st.array.Insert(key, value)
	}
	return st.trie.Insert(key, value)
}

// Get returns the values stored for key.
func (st *Staged[K, V]) Get(key []K) ([]V, bool) {
	if st.array != nil {
		return st.array.Get(key)
	}
	return st.trie.Get(key)
}

// EachPrefix calls f for every prefix of key which carries values, shortest first.
func (st *Staged[K, V]) EachPrefix(key []K, f func(length int, values []V)) {
	if st.array != nil {
		st.array.EachPrefix(key, f)
		return
	}
	st.trie.EachPrefix(key, f)
}
