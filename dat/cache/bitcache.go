package cache

import "math/bits"

const wordBits = 64

// BitCache tracks occupancy as single bits packed into 64-bit words.
//
// Single-unit probes skip fully occupied words and locate the first free bit
// with a trailing-ones count. For sibling sets the cache loads a 64-bit window
// of occupancy starting at b+c for every unit c and ORs the windows together:
// bit j of the merged word is clear iff base b+j fits all siblings. If the
// merged word is saturated, no base in [b, b+64) fits and the probe advances
// by a whole word.
type BitCache struct {
	words []uint64
}

func NewBitCache(size int) *BitCache {
	bc := &BitCache{words: make([]uint64, wordsFor(max(size, reserved)))}
	for i := range reserved {
		bc.words[0] |= 1 << i
	}
	return bc
}

func wordsFor(size int) int {
	return size/wordBits + 1
}

func (bc *BitCache) Extend(size int) {
	if n := wordsFor(size); n > len(bc.words) {
		bc.words = append(bc.words, make([]uint64, n-len(bc.words))...)
	}
}

func (bc *BitCache) Mark(index int) {
	bc.Extend(index + 1)
	bc.words[index/wordBits] |= 1 << (index % wordBits)
}

func (bc *BitCache) Unmark(index int) {
	if index < reserved || index/wordBits >= len(bc.words) {
		return
	}
	bc.words[index/wordBits] &^= 1 << (index % wordBits)
}

func (bc *BitCache) IsFilled(index int, _ []uint32) bool {
	a := index / wordBits
	return a < len(bc.words) && bc.words[a]&(1<<(index%wordBits)) != 0
}

func (bc *BitCache) word(a int) uint64 {
	if a < len(bc.words) {
		return bc.words[a]
	}
	return 0
}

// window returns 64 occupancy bits starting at cell ix, bit 0 being ix.
// Cells past the end read as free.
func (bc *BitCache) window(ix int) uint64 {
	a, s := ix/wordBits, ix%wordBits
	if s == 0 {
		return bc.word(a)
	}
	return bc.word(a)>>s | bc.word(a+1)<<(wordBits-s)
}

// firstFree returns the smallest free cell >= ix.
func (bc *BitCache) firstFree(ix int) int {
	a, s := ix/wordBits, ix%wordBits
	if a >= len(bc.words) {
		return ix
	}
	masked := bc.words[a] | (1<<s - 1) // treat cells below ix as occupied
	for masked == ^uint64(0) {
		a++
		if a >= len(bc.words) {
			return a * wordBits
		}
		masked = bc.words[a]
	}
	return a*wordBits + bits.TrailingZeros64(^masked)
}

func (bc *BitCache) FindBase(_ []uint32, units []int) int {
	c0 := units[0]
	b := bc.firstFree(1+c0) - c0
	if len(units) == 1 {
		return b
	}
	for {
		merged := uint64(0)
		for _, c := range units {
			merged |= bc.window(b + c)
			if merged == ^uint64(0) {
				break
			}
		}
		if merged != ^uint64(0) {
			return b + bits.TrailingZeros64(^merged)
		}
		b = bc.firstFree(b+wordBits+c0) - c0
	}
}
