/*
Package unit defines the key alphabets the prefix maps are parameterized over.

A key is a slice of units. Three alphabets are supported: raw bytes of the
UTF-8 encoding, UTF-16 code units and Unicode scalar values (runes). The same
double-array and trie code serves all of them; only the maximum unit value
differs, which bounds the fan-out of a single state.
*/
package unit

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf16"
)

// Unit is the type constraint for key units.
type Unit interface {
	uint8 | uint16 | rune
}

// ErrInvalidUnit is returned when a key contains a unit outside the numeric
// range of its alphabet.
var ErrInvalidUnit = errors.New("key unit out of alphabet range")

// Max returns the largest unit value of alphabet K.
func Max[K Unit]() int {
	var k K
	switch any(k).(type) {
	case uint8:
		return 0xFF
	case uint16:
		return 0xFFFF
	}
	return unicode.MaxRune
}

// Index converts a unit to an array offset.
func Index[K Unit](k K) int { return int(k) }

// FromIndex converts an array offset back to a unit. The caller guarantees
// 0 <= n <= Max[K]().
func FromIndex[K Unit](n int) K { return K(n) }

// Valid reports whether k lies in [0, Max[K]()].
func Valid[K Unit](k K) bool {
	n := int(k)
	return n >= 0 && n <= Max[K]()
}

// Check returns ErrInvalidUnit if any unit of key is not Valid.
func Check[K Unit](key []K) error {
	for i, k := range key {
		if !Valid(k) {
			return fmt.Errorf("unit %d at position %d: %w", int(k), i, ErrInvalidUnit)
		}
	}
	return nil
}

// Encode splits s into units of alphabet K.
//
//	Encode[uint8]("東京")  => 6 bytes
//	Encode[uint16]("東京") => 2 code units
//	Encode[rune]("東京")   => 2 runes
func Encode[K Unit](s string) []K {
	var k K
	switch any(k).(type) {
	case uint8:
		return any([]byte(s)).([]K)
	case uint16:
		return any(utf16.Encode([]rune(s))).([]K)
	}
	return any([]rune(s)).([]K)
}

// String converts units of alphabet K back to a string. Invalid sequences are
// replaced with U+FFFD.
func String[K Unit](units []K) string {
	switch u := any(units).(type) {
	case []byte:
		return string(u)
	case []uint16:
		return string(utf16.Decode(u))
	case []rune:
		return string(u)
	}
	return ""
}
