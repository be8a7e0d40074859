package cache

// NoCache keeps no state and scans the check array for every probe.
// It is the reference all other strategies are tested against.
type NoCache struct{}

func (NoCache) Extend(int) {}
func (NoCache) Mark(int)   {}
func (NoCache) Unmark(int) {}

// IsFilled reports whether cell index is occupied according to check.
func (NoCache) IsFilled(index int, check []uint32) bool {
	return index < reserved || (index < len(check) && check[index] != 0)
}

// FindBase returns the smallest base b >= 1 with every b+c free.
func (nc NoCache) FindBase(check []uint32, units []int) int {
	c0 := units[0]
	b := 0
outer:
	for {
		// advance to the next free cell for the first unit
		ix := b + 1 + c0
		for nc.IsFilled(ix, check) {
			ix++
		}
		b = ix - c0
		for _, c := range units[1:] {
			if nc.IsFilled(b+c, check) {
				continue outer
			}
		}
		return b
	}
}
