/*
Package cache implements free-slot search strategies for double-array
construction.

Placing a state in a double array means finding a base offset b such that the
cells b+c are free for every outgoing unit c. A SearchCache answers this
question. All strategies share one exact definition of the answer: FindBase
returns the smallest b >= 1 for which every b+c is free, where cells beyond the
end of the check array count as free and cells 0 and 1 (unused and root) never
do. They differ only in the bookkeeping they keep to get there.

  - NoCache scans the check array itself and keeps no state
  - BoolCache keeps one flag per cell
  - BitCache packs flags into 64-bit words and skips occupied runs a word at a time
  - LinkCache threads all free cells into a sorted doubly-linked list

DoubleCheck runs two strategies side by side and records any disagreement.
*/
package cache

import (
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'morph.dat'
func tracer() tracing.Trace {
	return tracing.Select("morph.dat")
}

// reserved is the number of leading cells which are never free:
// cell 0 is unused, cell 1 holds the root state.
const reserved = 2

// SearchCache locates free cells in a double array under construction.
//
// The double array owns the check array and grows it; it reports every cell
// it claims (Mark) or releases (Unmark) and every growth (Extend) to its cache.
// check is passed to the query methods as ground truth for strategies which
// keep no state of their own.
type SearchCache interface {
	Extend(size int)
	Mark(index int)
	Unmark(index int)
	IsFilled(index int, check []uint32) bool
	FindBase(check []uint32, units []int) int
}

// Strategy selects a SearchCache implementation.
type Strategy int

const (
	None Strategy = iota
	Bool
	Bits
	Links
)

var strategyNames = [...]string{"none", "bool", "bits", "links"}

func (s Strategy) String() string {
	if s < 0 || int(s) >= len(strategyNames) {
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
	return strategyNames[s]
}

// ParseStrategy maps a strategy name ("none", "bool", "bits", "links") to its tag.
func ParseStrategy(name string) (Strategy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range strategyNames {
		if n == name {
			return Strategy(i), nil
		}
	}
	return None, fmt.Errorf("unknown search cache strategy %q", name)
}

// New creates a cache of the given strategy for a check array of length size.
func New(s Strategy, size int) SearchCache {
	switch s {
	case Bool:
		return NewBoolCache(size)
	case Bits:
		return NewBitCache(size)
	case Links:
		return NewLinkCache(size)
	}
	return NoCache{}
}
