package cache

// LinkCache threads every free cell into a doubly-linked list kept in
// ascending order. Cell 0 is never free and serves as the list head.
// next[i] == 0 marks cell i as occupied; the last free cell links to
// len(next), standing for the unbounded free tail beyond the array.
//
// Probing walks free cells only. Mark unlinks in O(1); Unmark searches
// backwards for the nearest free predecessor to keep the list sorted.
type LinkCache struct {
	prev []int32
	next []int32
	last int32 // last free cell, 0 if none
}

func NewLinkCache(size int) *LinkCache {
	size = max(size, reserved)
	lc := &LinkCache{
		prev: make([]int32, size),
		next: make([]int32, size),
	}
	lc.next[0] = reserved
	for i := reserved; i < size; i++ {
		lc.prev[i] = int32(i - 1)
		lc.next[i] = int32(i + 1)
	}
	if size > reserved {
		lc.prev[reserved] = 0
		lc.last = int32(size - 1)
	}
	return lc
}

func (lc *LinkCache) Extend(size int) {
	n := len(lc.next)
	if size <= n {
		return
	}
	lc.prev = append(lc.prev, make([]int32, size-n)...)
	lc.next = append(lc.next, make([]int32, size-n)...)
	for i := n; i < size; i++ {
		lc.prev[i] = int32(i - 1)
		lc.next[i] = int32(i + 1)
	}
	lc.prev[n] = lc.last
	lc.next[lc.last] = int32(n)
	lc.last = int32(size - 1)
}

func (lc *LinkCache) isFree(index int) bool {
	return index >= len(lc.next) || (index >= reserved && lc.next[index] != 0)
}

func (lc *LinkCache) Mark(index int) {
	lc.Extend(index + 1)
	if !lc.isFree(index) {
		return
	}
	p, n := lc.prev[index], lc.next[index]
	lc.next[p] = n
	if int(n) < len(lc.next) {
		lc.prev[n] = p
	}
	if int32(index) == lc.last {
		lc.last = p
	}
	lc.prev[index], lc.next[index] = 0, 0
}

func (lc *LinkCache) Unmark(index int) {
	if index < reserved || index >= len(lc.next) || lc.isFree(index) {
		return
	}
	p := index - 1
	for p > 0 && !lc.isFree(p) {
		p--
	}
	n := lc.next[p]
	lc.prev[index], lc.next[index] = int32(p), n
	lc.next[p] = int32(index)
	if int(n) < len(lc.next) {
		lc.prev[n] = int32(index)
	}
	if int32(p) == lc.last {
		lc.last = int32(index)
	}
}

func (lc *LinkCache) IsFilled(index int, _ []uint32) bool {
	return !lc.isFree(index)
}

// firstFree returns the smallest free cell >= ix.
func (lc *LinkCache) firstFree(ix int) int {
	for ix < len(lc.next) && !lc.isFree(ix) {
		ix++
	}
	return ix
}

func (lc *LinkCache) FindBase(_ []uint32, units []int) int {
	c0 := units[0]
	ix := lc.firstFree(1 + c0)
outer:
	for {
		b := ix - c0
		for _, c := range units[1:] {
			if !lc.isFree(b + c) {
				if ix < len(lc.next) {
					ix = int(lc.next[ix]) // next free cell for the first unit
				} else {
					ix++
				}
				continue outer
			}
		}
		return b
	}
}
