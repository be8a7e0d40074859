package trie

import (
	"errors"
	"reflect"
	"testing"

	"github.com/npillmayer/morph/unit"
)

type prefixMap interface {
	Count() int
	Get(key []byte) ([]int, bool)
	Insert(key []byte, value int) error
	EachPrefix(key []byte, f func(length int, values []int))
}

func backends() map[string]func() prefixMap {
	return map[string]func() prefixMap{
		"trie": func() prefixMap { return New[byte, int]() },
		"hash": func() prefixMap { return NewHashTrie[byte, int]() },
	}
}

func key(s string) []byte { return unit.Encode[byte](s) }

func mustInsert(t *testing.T, m prefixMap, s string, v int) {
	t.Helper()
	if err := m.Insert(key(s), v); err != nil {
		t.Fatalf("insert %q: %v", s, err)
	}
}

func expect(t *testing.T, m prefixMap, s string, want []int) {
	t.Helper()
	got, ok := m.Get(key(s))
	if want == nil {
		if ok {
			t.Fatalf("%q should be absent, got %v", s, got)
		}
		return
	}
	if !ok || !reflect.DeepEqual(got, want) {
		t.Fatalf("%q: got %v (%v), want %v", s, got, ok, want)
	}
}

func TestLookup(t *testing.T) {
	for name, mk := range backends() {
		t.Run(name, func(t *testing.T) {
			m := mk()
			expect(t, m, "abc", nil) // empty map

			m = mk()
			mustInsert(t, m, "ab", 1)
			expect(t, m, "abc", nil) // key runs past a stored word

			m = mk()
			mustInsert(t, m, "abcd", 1)
			expect(t, m, "abc", nil) // transition exists, no values

			m = mk()
			mustInsert(t, m, "abc", 1)
			mustInsert(t, m, "ab", 2)
			expect(t, m, "abc", []int{1})
			expect(t, m, "ab", []int{2})

			m = mk()
			mustInsert(t, m, "ab", 1)
			mustInsert(t, m, "ab", 2)
			expect(t, m, "ab", []int{1, 2})
			if m.Count() != 2 {
				t.Fatalf("count should be 2, is %d", m.Count())
			}

			m = mk()
			mustInsert(t, m, "おはよう", 1)
			mustInsert(t, m, "およごう", 2)
			expect(t, m, "おはよう", []int{1})
			expect(t, m, "およごう", []int{2})
		})
	}
}

func TestEachPrefix(t *testing.T) {
	for name, mk := range backends() {
		t.Run(name, func(t *testing.T) {
			m := mk()
			mustInsert(t, m, "abc", 1)
			mustInsert(t, m, "ad", 2)
			mustInsert(t, m, "ac", 3)
			mustInsert(t, m, "a", 4)
			mustInsert(t, m, "a", 5)
			type hit struct {
				n      int
				values []int
			}
			var hits []hit
			m.EachPrefix(key("abcd"), func(n int, values []int) {
				hits = append(hits, hit{n, append([]int(nil), values...)})
			})
			want := []hit{{1, []int{4, 5}}, {3, []int{1}}}
			if !reflect.DeepEqual(hits, want) {
				t.Fatalf("prefix hits: got %v, want %v", hits, want)
			}
		})
	}
}

func TestTrieKeepsEdgesSorted(t *testing.T) {
	tr := New[byte, int]()
	for i, s := range []string{"d", "b", "c", "a", "ba"} {
		if err := tr.Insert(key(s), i); err != nil {
			t.Fatal(err)
		}
	}
	var units []byte
	for _, e := range tr.Root.Edges {
		units = append(units, e.Unit)
	}
	if string(units) != "abcd" {
		t.Fatalf("root edges not sorted: %q", units)
	}
	if hist := tr.FanOut(); hist[4] != 1 || hist[1] != 1 {
		t.Fatalf("unexpected fan-out histogram %v", hist)
	}
}

func TestInvalidRuneRejected(t *testing.T) {
	tr := New[rune, int]()
	if err := tr.Insert([]rune{'a', -5}, 1); !errors.Is(err, unit.ErrInvalidUnit) {
		t.Fatalf("expected ErrInvalidUnit, got %v", err)
	}
	if tr.Count() != 0 {
		t.Fatalf("rejected key must not be counted")
	}
	ht := NewHashTrie[rune, int]()
	if err := ht.Insert([]rune{0x110000}, 1); !errors.Is(err, unit.ErrInvalidUnit) {
		t.Fatalf("expected ErrInvalidUnit, got %v", err)
	}
}

func TestHashTrieFreeze(t *testing.T) {
	ht := NewHashTrie[uint16, int]()
	if err := ht.Insert(unit.Encode[uint16]("東京"), 1); err != nil {
		t.Fatal(err)
	}
	ht.Freeze()
	if err := ht.Insert(unit.Encode[uint16]("京都"), 2); !errors.Is(err, ErrFrozen) {
		t.Fatalf("expected ErrFrozen, got %v", err)
	}
	if vs, ok := ht.Get(unit.Encode[uint16]("東京")); !ok || vs[0] != 1 {
		t.Fatalf("frozen trie lost its entry")
	}
	it := ht.Iterator()
	if it.Next('京') != -1 || it.Next('東') != -1 {
		t.Fatalf("iterator should stay dead after a miss")
	}
}
