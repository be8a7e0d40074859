/*
Package dat implements a double-array trie mapping unit sequences to buckets
of values.

States are indices into two parallel arrays, Base and Check:

	t := Base[s] + c     // transition from state s on unit c
	valid iff Check[t] == s

Base[s] == 0 means s has no outgoing transitions. Cell 0 is unused and the
root state is 1. Every state owns a (possibly empty) bucket Data[s].

A DoubleArray can be filled incrementally with Insert, which relocates
("rebases") a state whenever a new transition collides with a cell owned by
another state, or in one pass from a fully populated trie.Trie with FromTrie,
which never needs to relocate. Free cells are located by a pluggable
cache.SearchCache.

Once construction is done, the structure is read-only for lookups and may be
shared by any number of concurrent readers.
*/
package dat

import (
	"fmt"

	"github.com/npillmayer/morph/dat/cache"
	"github.com/npillmayer/morph/unit"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'morph.dat'
func tracer() tracing.Trace {
	return tracing.Select("morph.dat")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}

// Root is the state index of the root.
const Root = 1

// Options configure construction.
type Options struct {
	Strategy cache.Strategy // free-slot search strategy
	Verify   bool           // cross-check Strategy against a check-scanning oracle
}

// DoubleArray is a double-array trie over key alphabet K with value buckets
// of type V.
type DoubleArray[K unit.Unit, V any] struct {
	Base  []uint32
	Check []uint32
	Data  [][]V

	cache cache.SearchCache // nil after Compact and after decoding
}

// New creates an empty double array.
func New[K unit.Unit, V any](opts Options) *DoubleArray[K, V] {
	return &DoubleArray[K, V]{
		Base:  make([]uint32, Root+1),
		Check: make([]uint32, Root+1),
		Data:  make([][]V, Root+1),
		cache: newCache(opts, Root+1),
	}
}

// FromRawParts wraps existing arrays. The arrays must have equal length and
// satisfy the double-array invariants.
func FromRawParts[K unit.Unit, V any](base, check []uint32, data [][]V) (*DoubleArray[K, V], error) {
	if len(base) != len(check) || len(base) != len(data) {
		return nil, fmt.Errorf("double array parts differ in length: base=%d check=%d data=%d",
			len(base), len(check), len(data))
	}
	if len(base) <= Root {
		return nil, fmt.Errorf("double array too short: %d cells", len(base))
	}
	return &DoubleArray[K, V]{Base: base, Check: check, Data: data}, nil
}

func newCache(opts Options, size int) cache.SearchCache {
	c := cache.New(opts.Strategy, size)
	if opts.Verify {
		tracer().Infof("verifying search cache %v against check scans", opts.Strategy)
		return cache.NewDoubleCheck(c, cache.NoCache{})
	}
	return c
}

// searchCache returns the active cache. Arrays which have been compacted or
// decoded fall back to scanning Check.
func (da *DoubleArray[K, V]) searchCache() cache.SearchCache {
	if da.cache == nil {
		da.cache = cache.NoCache{}
	}
	return da.cache
}

// VerifyErr returns the first disagreement found by a verifying cache, or nil.
func (da *DoubleArray[K, V]) VerifyErr() error {
	if dc, ok := da.cache.(*cache.DoubleCheck); ok {
		return dc.Err()
	}
	return nil
}

// Compact releases the search cache. Lookups are unaffected; further inserts
// remain possible but probe Check directly.
func (da *DoubleArray[K, V]) Compact() {
	da.cache = nil
}

// Count returns the number of values stored.
func (da *DoubleArray[K, V]) Count() int {
	n := 0
	for _, vs := range da.Data {
		n += len(vs)
	}
	return n
}

// Get returns the values stored for key.
func (da *DoubleArray[K, V]) Get(key []K) ([]V, bool) {
	s := Root
	for _, k := range key {
		kind, t := da.next(s, k)
		if kind != transit {
			return nil, false
		}
		s = t
	}
	vs := da.Data[s]
	return vs, len(vs) > 0
}

// EachPrefix calls f for every prefix of key which carries values, shortest
// first. length is the number of units consumed.
func (da *DoubleArray[K, V]) EachPrefix(key []K, f func(length int, values []V)) {
	s := Root
	for i, k := range key {
		kind, t := da.next(s, k)
		if kind != transit {
			return
		}
		s = t
		if vs := da.Data[s]; len(vs) > 0 {
			f(i+1, vs)
		}
	}
}

type cell int8

const (
	transit    cell = iota // valid transition
	empty                  // target cell is free
	zero                   // state has no base yet
	conflict               // target cell belongs to another state
	outOfRange             // target cell lies past the end of the arrays
)

// next classifies the transition from state s on unit k.
func (da *DoubleArray[K, V]) next(s int, k K) (cell, int) {
	b := int(da.Base[s])
	if b == 0 {
		return zero, 0
	}
	c := unit.Index(k)
	if c < 0 {
		return conflict, 0
	}
	t := b + c
	switch {
	case t >= len(da.Check):
		return outOfRange, t
	case int(da.Check[t]) == s:
		return transit, t
	case t <= Root: // cells 0 and 1 never hold a child
		return conflict, t
	case da.Check[t] == 0:
		return empty, t
	}
	return conflict, t
}

// extend grows all arrays to size cells.
func (da *DoubleArray[K, V]) extend(size int) {
	if size <= len(da.Base) {
		return
	}
	grow := size - len(da.Base)
	da.Base = append(da.Base, make([]uint32, grow)...)
	da.Check = append(da.Check, make([]uint32, grow)...)
	da.Data = append(da.Data, make([][]V, grow)...)
	da.searchCache().Extend(size)
}
