/*
Package lexicon reads word lists in CSV form, one entry per line:

	surface,left_id,right_id,cost[,...]

Further columns (part of speech, readings, as in MeCab dictionaries) are
ignored. Fields may be quoted following RFC 4180.
*/
package lexicon

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/npillmayer/morph"
)

// Reader streams dictionary entries from CSV input.
type Reader struct {
	csv *csv.Reader
}

// Load parses word-list data from reader and inserts every entry into dict.
func Load(dict morph.PrefixMap[uint16, morph.Info], reader io.Reader) (int, error) {
	return morph.LoadEntries(dict, NewReader(reader))
}

func NewReader(reader io.Reader) *Reader {
	r := csv.NewReader(reader)
	r.FieldsPerRecord = -1
	r.ReuseRecord = true
	r.LazyQuotes = true
	return &Reader{csv: r}
}

// Next returns the next entry as (surface, info).
// It returns io.EOF when exhausted.
func (r *Reader) Next() (string, morph.Info, error) {
	for {
		record, err := r.csv.Read()
		if err != nil {
			return "", morph.Info{}, err
		}
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}
		line, _ := r.csv.FieldPos(0)
		if len(record) < 4 {
			return "", morph.Info{}, fmt.Errorf("line %d: expected at least 4 fields, have %d", line, len(record))
		}
		left, err1 := strconv.ParseUint(strings.TrimSpace(record[1]), 10, 16)
		right, err2 := strconv.ParseUint(strings.TrimSpace(record[2]), 10, 16)
		cost, err3 := strconv.ParseInt(strings.TrimSpace(record[3]), 10, 16)
		if err := errors.Join(err1, err2, err3); err != nil {
			return "", morph.Info{}, fmt.Errorf("line %d: %w", line, err)
		}
		return record[0], morph.NewInfo(uint16(left), uint16(right), int16(cost)), nil
	}
}
