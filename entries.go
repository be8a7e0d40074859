package morph

import (
	"fmt"
	"io"

	"github.com/npillmayer/morph/unit"
)

// EntryReader yields dictionary entries one-by-one.
// It should return io.EOF when the stream is exhausted.
type EntryReader interface {
	Next() (surface string, info Info, err error)
}

// LoadEntries inserts all entries of reader into dict, keyed by the UTF-16
// encoding of their surface form, and returns the number of entries loaded.
//
// File format parsing is intentionally outside the base package. Use adapters
// like package lexicon to parse concrete formats and feed this API.
func LoadEntries(dict PrefixMap[uint16, Info], reader EntryReader) (int, error) {
	n := 0
	for {
		surface, info, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return n, err
		}
		if surface == "" {
			continue // nothing to match on
		}
		if err = dict.Insert(unit.Encode[uint16](surface), info); err != nil {
			return n, fmt.Errorf("entry %d %q: %w", n+1, surface, err)
		}
		n++
	}
	tracer().Infof("loaded %d dictionary entries, dictionary holds %d", n, dict.Count())
	return n, nil
}
