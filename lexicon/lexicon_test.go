package lexicon

import (
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/npillmayer/morph"
	"github.com/npillmayer/morph/trie"
	"github.com/npillmayer/morph/unit"
)

func TestReader(t *testing.T) {
	src := strings.NewReader(`東京,1293,1293,3003,名詞,固有名詞,地域,一般,*,*,東京,トウキョウ,トーキョー

"は",261,261,-1000
都,1303,1303,9428
`)
	r := NewReader(src)
	want := []struct {
		surface string
		info    morph.Info
	}{
		{"東京", morph.NewInfo(1293, 1293, 3003)},
		{"は", morph.NewInfo(261, 261, -1000)},
		{"都", morph.NewInfo(1303, 1303, 9428)},
	}
	for _, w := range want {
		surface, info, err := r.Next()
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if surface != w.surface || !reflect.DeepEqual(info, w.info) {
			t.Fatalf("entry mismatch: got %q %v, want %q %v", surface, info, w.surface, w.info)
		}
	}
	if _, _, err := r.Next(); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestReaderErrors(t *testing.T) {
	cases := []struct {
		name, src, msg string
	}{
		{"too few fields", "a,1,2\n", "line 1"},
		{"bad id", "a,1,2,3\nb,x,2,3\n", "line 2"},
		{"cost overflow", "a,1,2,70000\n", "line 1"},
		{"negative id", "a,-1,2,3\n", "line 1"},
	}
	for _, c := range cases {
		r := NewReader(strings.NewReader(c.src))
		var err error
		for err == nil {
			_, _, err = r.Next()
		}
		if err == io.EOF || !strings.Contains(err.Error(), c.msg) {
			t.Fatalf("%s: expected error mentioning %q, got %v", c.name, c.msg, err)
		}
	}
}

func TestLoad(t *testing.T) {
	dict := trie.New[uint16, morph.Info]()
	n, err := Load(dict, strings.NewReader("京都,1,1,50\n東京,1,1,100\n京都,2,2,70\n"))
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 || dict.Count() != 3 {
		t.Fatalf("expected 3 entries, loaded %d, stored %d", n, dict.Count())
	}
	infos, ok := dict.Get(unit.Encode[uint16]("京都"))
	if !ok || len(infos) != 2 || infos[1].Cost != 70 {
		t.Fatalf("homographs not kept in order: %v", infos)
	}
}
