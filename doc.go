/*
Package morph is a compact-lexicon morphological analyzer. Given a
cost-annotated dictionary of words and a connection-cost matrix between
grammatical contexts, it segments an input string into the minimum-cost
sequence of dictionary entries, in the manner of MeCab-style tokenizers.

The dictionary is a prefix map from unit sequences to Info records (see
package dat for the double array, package trie for the staging trie and the
hash backend). Analysis builds a lattice over the input from right to left,
using EachPrefix to discover every dictionary word starting at a position,
and extracts the cheapest path by backtrace:

	dict, _ := morph.OpenDictionary("ipadic.dict")
	m, _ := matrix.Load(matrixFile)
	result, err := morph.AnalyzeString("東京都に住む", dict, m, morph.DefaultFallback)
	for tok := range result.All() {
	    fmt.Println(tok.Text(), tok.LeftID, tok.Cost)
	}

Positions without any dictionary match are covered by a single-unit
pseudo-word described by a Fallback, so analysis of non-empty input never
dead-ends.

Further Reading

	https://taku910.github.io/mecab/
	J. Aoe: An Efficient Digital Search Algorithm by Using a Double-Array Structure (1989)
*/
package morph

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'morph'
func tracer() tracing.Trace {
	return tracing.Select("morph")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
