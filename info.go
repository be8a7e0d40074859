package morph

import (
	"fmt"

	"github.com/npillmayer/morph/unit"
)

// Info is the payload stored for a dictionary word: its left and right
// context ids and its word cost. A surface form may carry several Infos
// (homographs); their insertion order is preserved.
type Info struct {
	_msgpack struct{} `msgpack:",as_array"`

	LeftID  uint16
	RightID uint16
	Cost    int16
}

// NewInfo creates an Info record.
func NewInfo(left, right uint16, cost int16) Info {
	return Info{LeftID: left, RightID: right, Cost: cost}
}

func (info Info) String() string {
	return fmt.Sprintf("(%d,%d,%d)", info.LeftID, info.RightID, info.Cost)
}

// Prefixer enumerates all values stored for prefixes of a key, shortest
// first. It is all the analyzer needs from a dictionary.
type Prefixer[K unit.Unit, V any] interface {
	EachPrefix(key []K, f func(length int, values []V))
}

// PrefixMap is the contract shared by every dictionary backend:
// dat.DoubleArray, dat.Staged, trie.Trie and trie.HashTrie.
type PrefixMap[K unit.Unit, V any] interface {
	Prefixer[K, V]
	Count() int
	Get(key []K) ([]V, bool)
	Insert(key []K, value V) error
}
