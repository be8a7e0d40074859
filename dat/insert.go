package dat

import (
	"slices"

	"github.com/npillmayer/morph/unit"
)

// Insert appends value to the bucket of key. Collisions are resolved by
// growing the arrays or by relocating the current state; the only error is a
// key unit outside the alphabet.
func (da *DoubleArray[K, V]) Insert(key []K, value V) error {
	if err := unit.Check(key); err != nil {
		return err
	}
	s := Root
	for _, k := range key {
		kind, t := da.next(s, k)
		switch kind {
		case transit:
			s = t
		case empty:
			s = da.claim(s, t)
		case zero:
			s = da.claim(s, da.placeFirst(s, unit.Index(k)))
		case conflict:
			s = da.claim(s, da.rebase(s, unit.Index(k)))
		case outOfRange:
			da.extend(t + 1)
			s = da.claim(s, t)
		}
	}
	da.Data[s] = append(da.Data[s], value)
	return nil
}

// claim makes free cell t a child of state s.
func (da *DoubleArray[K, V]) claim(s, t int) int {
	assert(da.Check[t] == 0, "claimed cell is occupied")
	da.Base[t] = 0
	da.Check[t] = uint32(s)
	da.searchCache().Mark(t)
	return t
}

// placeFirst gives state s, which has no transitions yet, a base fitting
// unit c and returns the target cell.
func (da *DoubleArray[K, V]) placeFirst(s, c int) int {
	b := da.searchCache().FindBase(da.Check, []int{c})
	da.extend(b + c + 1)
	da.Base[s] = uint32(b)
	return b + c
}

// children returns the units of all live transitions of state s, ascending.
func (da *DoubleArray[K, V]) children(s int) []int {
	b := int(da.Base[s])
	if b == 0 {
		return nil
	}
	hi := min(len(da.Check), b+unit.Max[K]()+1)
	var units []int
	for t := b; t < hi; t++ {
		if int(da.Check[t]) == s {
			units = append(units, t-b)
		}
	}
	return units
}

// rebase moves all transitions of state s to a new base which also has room
// for unit c, and returns the target cell for c. Each moved child takes its
// base and bucket along; its own children get their back-pointers redirected.
func (da *DoubleArray[K, V]) rebase(s, c int) int {
	old := int(da.Base[s])
	moving := da.children(s)
	units := moving
	if ix, found := slices.BinarySearch(moving, c); !found {
		units = slices.Insert(slices.Clone(moving), ix, c)
	}
	nb := da.searchCache().FindBase(da.Check, units)
	da.extend(nb + units[len(units)-1] + 1)
	tracer().Debugf("rebase state %d: %d transitions from base %d to %d", s, len(moving), old, nb)
	da.Base[s] = uint32(nb)
	for _, u := range moving {
		src, dst := old+u, nb+u
		assert(da.Check[dst] == 0 && da.Base[dst] == 0 && len(da.Data[dst]) == 0,
			"rebase target cell is occupied")
		da.Base[dst] = da.Base[src]
		da.Check[dst] = uint32(s)
		da.Data[dst], da.Data[src] = da.Data[src], nil
		da.searchCache().Mark(dst)
		if gb := int(da.Base[src]); gb != 0 {
			hi := min(len(da.Check), gb+unit.Max[K]()+1)
			for t := gb; t < hi; t++ {
				if int(da.Check[t]) == src {
					da.Check[t] = uint32(dst)
				}
			}
		}
		da.Base[src] = 0
		da.Check[src] = 0
		da.searchCache().Unmark(src)
	}
	return nb + c
}
