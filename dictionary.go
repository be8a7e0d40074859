package morph

import (
	"errors"
	"fmt"
	"io"

	"github.com/npillmayer/morph/dat"
	"github.com/npillmayer/morph/persist"
	"github.com/npillmayer/morph/trie"
)

// Backend selects the prefix map implementation of a Dictionary.
type Backend string

const (
	ArrayBackend  Backend = "array"  // double array, built by incremental insertion
	StagedBackend Backend = "staged" // trie, compacted into a double array on Save
	HashBackend   Backend = "hash"   // hash-table transitions
	TrieBackend   Backend = "trie"   // plain sorted-children trie
)

// ErrUnknownBackend is returned for backend names not listed above.
var ErrUnknownBackend = errors.New("unknown dictionary backend")

// ParseBackend returns the backend named s.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(s); b {
	case ArrayBackend, StagedBackend, HashBackend, TrieBackend:
		return b, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownBackend, s)
}

// Dictionary is a word dictionary keyed by UTF-16 surface forms. It carries
// exactly one populated backend and forwards the PrefixMap operations to it.
type Dictionary struct {
	Backend Backend                       `msgpack:"backend"`
	Array   *dat.DoubleArray[uint16, Info] `msgpack:"array,omitempty"`
	Hash    *trie.HashTrie[uint16, Info]   `msgpack:"hash,omitempty"`
	Trie    *trie.Trie[uint16, Info]       `msgpack:"trie,omitempty"`

	staged *dat.Staged[uint16, Info]
}

// NewDictionary creates an empty dictionary. opts configure the double array
// of the array and staged backends.
func NewDictionary(backend Backend, opts dat.Options) (*Dictionary, error) {
	dict := &Dictionary{Backend: backend}
	switch backend {
	case ArrayBackend:
		dict.Array = dat.New[uint16, Info](opts)
	case StagedBackend:
		dict.staged = dat.NewStaged[uint16, Info](opts)
	case HashBackend:
		dict.Hash = trie.NewHashTrie[uint16, Info]()
	case TrieBackend:
		dict.Trie = trie.New[uint16, Info]()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
	return dict, nil
}

// PrefixMap returns the populated backend.
func (dict *Dictionary) PrefixMap() PrefixMap[uint16, Info] {
	switch {
	case dict.staged != nil:
		return dict.staged
	case dict.Array != nil:
		return dict.Array
	case dict.Hash != nil:
		return dict.Hash
	case dict.Trie != nil:
		return dict.Trie
	}
	panic("dictionary has no backend")
}

// Count returns the number of entries.
func (dict *Dictionary) Count() int {
	return dict.PrefixMap().Count()
}

// Get returns the entries for a surface form.
func (dict *Dictionary) Get(key []uint16) ([]Info, bool) {
	return dict.PrefixMap().Get(key)
}

// Insert adds an entry.
func (dict *Dictionary) Insert(key []uint16, info Info) error {
	return dict.PrefixMap().Insert(key, info)
}

// EachPrefix calls f for every prefix of key which is a dictionary word,
// shortest first.
func (dict *Dictionary) EachPrefix(key []uint16, f func(length int, infos []Info)) {
	dict.PrefixMap().EachPrefix(key, f)
}

// Stats returns slot statistics if the dictionary is backed by a double array.
func (dict *Dictionary) Stats() (dat.Stats, bool) {
	if dict.staged != nil && dict.staged.Compacted() {
		return dict.staged.Compact().Stats(), true
	}
	if dict.Array != nil {
		return dict.Array.Stats(), true
	}
	return dat.Stats{}, false
}

// freeze prepares the dictionary for persistence: a staged trie is compacted
// into its double array and all build-time search state is dropped. A
// verifying search cache which recorded a mismatch fails the save.
func (dict *Dictionary) freeze() error {
	if dict.staged != nil {
		dict.Array = dict.staged.Compact()
		dict.staged = nil
		dict.Backend = ArrayBackend
	}
	if dict.Array != nil {
		if err := dict.Array.VerifyErr(); err != nil {
			return err
		}
		dict.Array.Compact()
	}
	if dict.Hash != nil {
		dict.Hash.Freeze()
	}
	return nil
}

// Save writes the dictionary to w. A staged dictionary is compacted first and
// is array-backed afterwards.
func (dict *Dictionary) Save(w io.Writer) error {
	if err := dict.freeze(); err != nil {
		return err
	}
	return persist.Encode(w, dict)
}

// SaveFile writes the dictionary to a file, see Save.
func (dict *Dictionary) SaveFile(path string) error {
	if err := dict.freeze(); err != nil {
		return err
	}
	return persist.SaveFile(path, dict)
}

// LoadDictionary reads a dictionary written by Save.
func LoadDictionary(r io.Reader) (*Dictionary, error) {
	dict := &Dictionary{}
	if err := persist.Decode(r, dict); err != nil {
		return nil, err
	}
	return dict, dict.validate()
}

// OpenDictionary reads a dictionary file written by SaveFile.
func OpenDictionary(path string) (*Dictionary, error) {
	dict := &Dictionary{}
	if err := persist.LoadFile(path, dict); err != nil {
		return nil, err
	}
	if err := dict.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	tracer().Infof("opened %s dictionary %s with %d entries", dict.Backend, path, dict.Count())
	return dict, nil
}

// validate checks a decoded dictionary for a consistent backend.
func (dict *Dictionary) validate() error {
	var ok bool
	switch dict.Backend {
	case ArrayBackend:
		ok = dict.Array != nil
		if ok {
			_, err := dat.FromRawParts[uint16, Info](dict.Array.Base, dict.Array.Check, dict.Array.Data)
			if err != nil {
				return fmt.Errorf("malformed dictionary: %w", err)
			}
		}
	case HashBackend:
		ok = dict.Hash != nil
	case TrieBackend:
		ok = dict.Trie != nil && dict.Trie.Root != nil
	case StagedBackend:
		return errors.New("malformed dictionary: staged backend was saved without compaction")
	default:
		return fmt.Errorf("malformed dictionary: %w: %q", ErrUnknownBackend, dict.Backend)
	}
	if !ok {
		return fmt.Errorf("malformed dictionary: %s backend missing", dict.Backend)
	}
	return nil
}
