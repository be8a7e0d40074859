package cache

// BoolCache tracks occupancy with one flag per cell. It probes in the same
// order as NoCache but never looks at the check array, so it stays correct
// while check holds intermediate values during bulk construction.
type BoolCache struct {
	filled []bool
}

func NewBoolCache(size int) *BoolCache {
	bc := &BoolCache{filled: make([]bool, max(size, reserved))}
	for i := range reserved {
		bc.filled[i] = true
	}
	return bc
}

func (bc *BoolCache) Extend(size int) {
	if size > len(bc.filled) {
		bc.filled = append(bc.filled, make([]bool, size-len(bc.filled))...)
	}
}

func (bc *BoolCache) Mark(index int) {
	bc.Extend(index + 1)
	bc.filled[index] = true
}

func (bc *BoolCache) Unmark(index int) {
	if index >= reserved && index < len(bc.filled) {
		bc.filled[index] = false
	}
}

func (bc *BoolCache) IsFilled(index int, _ []uint32) bool {
	return index < len(bc.filled) && bc.filled[index]
}

func (bc *BoolCache) FindBase(check []uint32, units []int) int {
	c0 := units[0]
	b := 0
outer:
	for {
		ix := b + 1 + c0
		for ix < len(bc.filled) && bc.filled[ix] {
			ix++
		}
		b = ix - c0
		for _, c := range units[1:] {
			if bc.IsFilled(b+c, check) {
				continue outer
			}
		}
		return b
	}
}
