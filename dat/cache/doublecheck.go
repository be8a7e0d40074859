package cache

import "fmt"

// MismatchError describes the first probe on which two strategies disagreed.
type MismatchError struct {
	Units     []int
	Primary   int
	Secondary int
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("search caches disagree for units %v: %d != %d", e.Units, e.Primary, e.Secondary)
}

// DoubleCheck forwards every operation to two strategies and compares their
// answers. The primary's answer is returned; the first disagreement is kept
// and available through Err. It is a testing harness for cache strategies and
// is only instantiated when verification is requested explicitly.
type DoubleCheck struct {
	primary, secondary SearchCache
	err                *MismatchError
}

func NewDoubleCheck(primary, secondary SearchCache) *DoubleCheck {
	return &DoubleCheck{primary: primary, secondary: secondary}
}

// Err returns the first recorded mismatch or nil.
func (dc *DoubleCheck) Err() error {
	if dc.err == nil {
		return nil
	}
	return dc.err
}

func (dc *DoubleCheck) Extend(size int) {
	dc.primary.Extend(size)
	dc.secondary.Extend(size)
}

func (dc *DoubleCheck) Mark(index int) {
	dc.primary.Mark(index)
	dc.secondary.Mark(index)
}

func (dc *DoubleCheck) Unmark(index int) {
	dc.primary.Unmark(index)
	dc.secondary.Unmark(index)
}

func (dc *DoubleCheck) IsFilled(index int, check []uint32) bool {
	f1 := dc.primary.IsFilled(index, check)
	if f2 := dc.secondary.IsFilled(index, check); f1 != f2 {
		tracer().Errorf("search caches disagree on cell %d: filled=%v vs %v", index, f1, f2)
	}
	return f1
}

func (dc *DoubleCheck) FindBase(check []uint32, units []int) int {
	b1 := dc.primary.FindBase(check, units)
	b2 := dc.secondary.FindBase(check, units)
	if b1 != b2 && dc.err == nil {
		dc.err = &MismatchError{
			Units:     append([]int(nil), units...),
			Primary:   b1,
			Secondary: b2,
		}
		tracer().Errorf("%v", dc.err)
	}
	return b1
}
