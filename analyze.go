package morph

import (
	"errors"
	"fmt"
	"iter"
	"math"

	"github.com/npillmayer/morph/matrix"
	"github.com/npillmayer/morph/unit"
)

// ErrNoSegmentation is returned when no path through the lattice exists.
// With a fallback in place this happens for empty input only.
var ErrNoSegmentation = errors.New("no segmentation")

// ErrFallbackRange is returned when the fallback context ids do not fit the
// cost matrix.
var ErrFallbackRange = errors.New("fallback context ids outside cost matrix")

// Fallback describes the pseudo-word covering one unit at positions where no
// dictionary word starts.
type Fallback struct {
	LeftID  uint16
	RightID uint16
	Cost    int16
}

// DefaultFallback treats unknown units as proper nouns (IPADIC context id
// 1288) with a heavy penalty.
var DefaultFallback = Fallback{LeftID: 1288, RightID: 1288, Cost: 10000}

func (fb Fallback) info() Info {
	return Info{LeftID: fb.LeftID, RightID: fb.RightID, Cost: fb.Cost}
}

// lattice node. cost is the cheapest cost from here to the end of input.
type node struct {
	leftID uint16
	cost   int
	length int // units consumed; 0 for the end-of-sentence node
	next   int // index of the successor in column pos+length
}

// Analyzed is the result of an analysis: the cheapest segmentation of the
// input and its total cost.
type Analyzed[K unit.Unit] struct {
	Cost int

	input []K
	cols  [][]node // cols[i] holds the candidates for the suffix starting at i
	start int      // index of the chosen node in cols[0]
}

// Token is one word of a segmentation. Cost is the word cost plus the
// connection cost to the following word.
type Token[K unit.Unit] struct {
	Surface []K
	Start   int
	End     int
	LeftID  uint16
	Cost    int
}

// Text returns the surface form as a string.
func (tok Token[K]) Text() string {
	return unit.String(tok.Surface)
}

func (tok Token[K]) String() string {
	return fmt.Sprintf("%s[%d:%d]/%d/%d", tok.Text(), tok.Start, tok.End, tok.LeftID, tok.Cost)
}

// All iterates over the tokens from left to right. Each call starts over.
func (a *Analyzed[K]) All() iter.Seq[Token[K]] {
	return func(yield func(Token[K]) bool) {
		pos, ix := 0, a.start
		for {
			n := a.cols[pos][ix]
			if n.length == 0 {
				return
			}
			end := pos + n.length
			succ := a.cols[end][n.next]
			tok := Token[K]{
				Surface: a.input[pos:end],
				Start:   pos,
				End:     end,
				LeftID:  n.leftID,
				Cost:    n.cost - succ.cost,
			}
			if !yield(tok) {
				return
			}
			pos, ix = end, n.next
		}
	}
}

// Tokens returns the segmentation as a slice.
func (a *Analyzed[K]) Tokens() []Token[K] {
	var tokens []Token[K]
	for tok := range a.All() {
		tokens = append(tokens, tok)
	}
	return tokens
}

// Analyze segments input into the cheapest sequence of dictionary words.
//
// The lattice is built right to left: the candidates starting at position i
// are costed against the already complete column at i+length. Ties are broken
// in favour of the first candidate encountered, i.e. by dictionary order.
// Context ids stored in dict must lie within m.
//
// Analyze only reads dict and m and may be called concurrently.
func Analyze[K unit.Unit](input []K, dict Prefixer[K, Info], m *matrix.Matrix, fb Fallback) (*Analyzed[K], error) {
	if !m.Contains(fb.RightID, fb.LeftID) {
		return nil, fmt.Errorf("%w: fallback (%d,%d), matrix %dx%d",
			ErrFallbackRange, fb.LeftID, fb.RightID, m.Height, m.Width)
	}
	if len(input) == 0 {
		return nil, ErrNoSegmentation
	}
	cols := make([][]node, len(input)+1)
	cols[len(input)] = []node{{}} // end of sentence, context id 0
	for i := len(input) - 1; i >= 0; i-- {
		var col []node
		dict.EachPrefix(input[i:], func(length int, infos []Info) {
			succ := cols[i+length]
			for _, info := range infos {
				if ix, cost, ok := cheapest(info.RightID, succ, m); ok {
					col = append(col, node{
						leftID: info.LeftID,
						cost:   cost + int(info.Cost),
						length: length,
						next:   ix,
					})
				}
			}
		})
		if len(col) == 0 {
			tracer().Debugf("no dictionary word at position %d, falling back", i)
			info := fb.info()
			ix, cost, ok := cheapest(info.RightID, cols[i+1], m)
			assert(ok, "column after fallback position is empty")
			col = append(col, node{
				leftID: info.LeftID,
				cost:   cost + int(info.Cost),
				length: 1,
				next:   ix,
			})
		}
		cols[i] = col
	}
	ix, cost, ok := cheapest(0, cols[0], m) // beginning of sentence, context id 0
	if !ok {
		return nil, ErrNoSegmentation
	}
	return &Analyzed[K]{Cost: cost, input: input, cols: cols, start: ix}, nil
}

// AnalyzeString analyzes the UTF-16 encoding of s.
func AnalyzeString(s string, dict Prefixer[uint16, Info], m *matrix.Matrix, fb Fallback) (*Analyzed[uint16], error) {
	return Analyze(unit.Encode[uint16](s), dict, m, fb)
}

// cheapest finds the node of col with minimal cost when preceded by a word
// with right-context id right. The first minimum wins.
func cheapest(right uint16, col []node, m *matrix.Matrix) (index int, cost int, ok bool) {
	cost = math.MaxInt
	for i, n := range col {
		if c := n.cost + int(m.Cost(right, n.leftID)); c < cost {
			index, cost, ok = i, c, true
		}
	}
	return
}
