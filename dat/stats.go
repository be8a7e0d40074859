package dat

// Stats describes the occupancy of a double array.
type Stats struct {
	UsedSlots  int // cells owned by a state, the root included
	TotalSlots int // length of the arrays
	MaxState   int // highest occupied cell
	Buckets    int // states carrying at least one value
	Values     int
}

// FillRatio is the fraction of cells owned by a state.
func (s Stats) FillRatio() float64 {
	if s.TotalSlots == 0 {
		return 0
	}
	return float64(s.UsedSlots) / float64(s.TotalSlots)
}

// Stats computes occupancy statistics and writes them to the trace log.
func (da *DoubleArray[K, V]) Stats() Stats {
	st := Stats{
		UsedSlots:  1,
		TotalSlots: len(da.Check),
		MaxState:   Root,
	}
	for t := Root + 1; t < len(da.Check); t++ {
		if da.Check[t] != 0 {
			st.UsedSlots++
			st.MaxState = t
		}
	}
	for _, vs := range da.Data {
		if len(vs) > 0 {
			st.Buckets++
			st.Values += len(vs)
		}
	}
	tracer().Infof("Double Array Statistics:")
	tracer().Infof("  Slots:     %d used / %d total (%.1f%%)", st.UsedSlots, st.TotalSlots, 100*st.FillRatio())
	tracer().Infof("  Max state: %d", st.MaxState)
	tracer().Infof("  Buckets:   %d holding %d values", st.Buckets, st.Values)
	return st
}
