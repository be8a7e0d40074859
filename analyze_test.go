package morph

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/npillmayer/morph/dat"
	"github.com/npillmayer/morph/dat/cache"
	"github.com/npillmayer/morph/matrix"
	"github.com/npillmayer/morph/trie"
	"github.com/npillmayer/morph/unit"
)

var testFallback = Fallback{LeftID: 2, RightID: 2, Cost: 5000}

type word struct {
	surface string
	info    Info
}

func buildArray(t *testing.T, words []word) *dat.DoubleArray[uint16, Info] {
	t.Helper()
	da := dat.New[uint16, Info](dat.Options{Strategy: cache.Bits})
	for _, w := range words {
		if err := da.Insert(unit.Encode[uint16](w.surface), w.info); err != nil {
			t.Fatal(err)
		}
	}
	return da
}

type tokenSummary struct {
	text   string
	leftID uint16
	cost   int
}

func summarize[K unit.Unit](a *Analyzed[K]) []tokenSummary {
	var s []tokenSummary
	for tok := range a.All() {
		s = append(s, tokenSummary{tok.Text(), tok.LeftID, tok.Cost})
	}
	return s
}

func TestAnalyzeMinimalCost(t *testing.T) {
	da := buildArray(t, []word{
		{"東京", NewInfo(1, 1, 100)},
		{"京都", NewInfo(1, 1, 50)},
	})
	m := matrix.New(3, 3)
	a, err := AnalyzeString("京都", da, m, testFallback)
	if err != nil {
		t.Fatal(err)
	}
	if a.Cost != 50 {
		t.Fatalf("total cost should be 50, is %d", a.Cost)
	}
	tokens := a.Tokens()
	if len(tokens) != 1 || tokens[0].Start != 0 || tokens[0].End != 2 || tokens[0].Text() != "京都" {
		t.Fatalf("expected a single token spanning the input, have %v", tokens)
	}
}

func TestAnalyzeUnknownWord(t *testing.T) {
	da := buildArray(t, []word{{"京都", NewInfo(1, 1, 50)}})
	m := matrix.New(3, 3)
	a, err := AnalyzeString("京都X", da, m, testFallback)
	if err != nil {
		t.Fatalf("unknown word must not fail analysis: %v", err)
	}
	want := []tokenSummary{{"京都", 1, 50}, {"X", 2, 5000}}
	if got := summarize(a); !reflect.DeepEqual(got, want) {
		t.Fatalf("tokens: got %v, want %v", got, want)
	}
	if a.Cost != 5050 {
		t.Fatalf("total cost should be 5050, is %d", a.Cost)
	}
	a, err = AnalyzeString("??", da, m, testFallback)
	if err != nil {
		t.Fatal(err)
	}
	if got := summarize(a); len(got) != 2 || got[0].leftID != 2 || got[1].text != "?" {
		t.Fatalf("expected two single-unit fallback tokens, have %v", got)
	}
}

func TestAnalyzeUsesConnectionCosts(t *testing.T) {
	da := buildArray(t, []word{
		{"東京", NewInfo(1, 1, 100)},
		{"京都", NewInfo(1, 1, 50)},
		{"東", NewInfo(2, 2, 40)},
		{"都", NewInfo(1, 1, 30)},
	})
	m := matrix.New(3, 3)
	a, err := AnalyzeString("東京都", da, m, testFallback)
	if err != nil {
		t.Fatal(err)
	}
	if got := summarize(a); !reflect.DeepEqual(got, []tokenSummary{{"東", 2, 40}, {"京都", 1, 50}}) || a.Cost != 90 {
		t.Fatalf("cheapest path should be 東|京都 at 90, have %v at %d", got, a.Cost)
	}
	m.Set(2, 1, 100) // 東 followed by 京都 becomes expensive
	a, err = AnalyzeString("東京都", da, m, testFallback)
	if err != nil {
		t.Fatal(err)
	}
	if got := summarize(a); !reflect.DeepEqual(got, []tokenSummary{{"東京", 1, 100}, {"都", 1, 30}}) || a.Cost != 130 {
		t.Fatalf("cheapest path should be 東京|都 at 130, have %v at %d", got, a.Cost)
	}
	m.Set(0, 1, 7) // sentence start before a word with left id 1
	a, _ = AnalyzeString("東京都", da, m, testFallback)
	if a.Cost != 137 {
		t.Fatalf("sentence start cost not applied: %d", a.Cost)
	}
}

func TestAnalyzeTieBreak(t *testing.T) {
	m := matrix.New(3, 3)
	first := buildArray(t, []word{{"京都", NewInfo(1, 1, 50)}, {"京都", NewInfo(2, 2, 50)}})
	second := buildArray(t, []word{{"京都", NewInfo(2, 2, 50)}, {"京都", NewInfo(1, 1, 50)}})
	for want, da := range map[uint16]*dat.DoubleArray[uint16, Info]{1: first, 2: second} {
		a, err := AnalyzeString("京都", da, m, testFallback)
		if err != nil {
			t.Fatal(err)
		}
		if tok := a.Tokens()[0]; tok.LeftID != want {
			t.Fatalf("first inserted homograph should win, got left id %d", tok.LeftID)
		}
	}
}

func TestAnalyzeErrors(t *testing.T) {
	da := buildArray(t, []word{{"京都", NewInfo(1, 1, 50)}})
	m := matrix.New(3, 3)
	if _, err := AnalyzeString("", da, m, testFallback); !errors.Is(err, ErrNoSegmentation) {
		t.Fatalf("expected ErrNoSegmentation for empty input, got %v", err)
	}
	if _, err := AnalyzeString("京都", da, m, DefaultFallback); !errors.Is(err, ErrFallbackRange) {
		t.Fatalf("expected ErrFallbackRange, got %v", err)
	}
}

func TestAllIsRestartable(t *testing.T) {
	da := buildArray(t, []word{{"東", NewInfo(1, 1, 10)}, {"京", NewInfo(1, 1, 10)}, {"都", NewInfo(1, 1, 10)}})
	a, err := AnalyzeString("東京都", da, matrix.New(3, 3), testFallback)
	if err != nil {
		t.Fatal(err)
	}
	for tok := range a.All() {
		if tok.Text() != "東" {
			t.Fatalf("first token should be 東, is %s", tok)
		}
		break
	}
	if got := summarize(a); len(got) != 3 {
		t.Fatalf("second iteration should start over, have %v", got)
	}
	if !reflect.DeepEqual(summarize(a), summarize(a)) {
		t.Fatalf("iterations differ")
	}
}

func TestAnalyzeOverBytes(t *testing.T) {
	tr := trie.New[byte, Info]()
	for _, w := range []word{{"to", NewInfo(1, 1, 5)}, {"top", NewInfo(1, 1, 20)}, {"pic", NewInfo(1, 1, 5)}} {
		if err := tr.Insert(unit.Encode[byte](w.surface), w.info); err != nil {
			t.Fatal(err)
		}
	}
	a, err := Analyze[byte](unit.Encode[byte]("topic"), tr, matrix.New(3, 3), testFallback)
	if err != nil {
		t.Fatal(err)
	}
	if got := summarize(a); !reflect.DeepEqual(got, []tokenSummary{{"to", 1, 5}, {"pic", 1, 5}}) {
		t.Fatalf("unexpected segmentation %v", got)
	}
}

func TestConcurrentAnalysis(t *testing.T) {
	da := buildArray(t, []word{
		{"東京", NewInfo(1, 1, 100)},
		{"京都", NewInfo(1, 1, 50)},
		{"東", NewInfo(2, 2, 40)},
		{"都", NewInfo(1, 1, 30)},
	})
	m := matrix.New(3, 3)
	ref, err := AnalyzeString("東京都に東京", da, m, testFallback)
	if err != nil {
		t.Fatal(err)
	}
	want := summarize(ref)
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				a, err := AnalyzeString("東京都に東京", da, m, testFallback)
				if err != nil {
					errs <- err
					return
				}
				if !reflect.DeepEqual(summarize(a), want) {
					errs <- errors.New("concurrent analysis differs")
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}
}
