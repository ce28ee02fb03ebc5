package features

const (
	periodicityThreshold       = 0.95
	periodicityNumberThreshold = 3
)

// clearPeriodicity implements 4.2.13: a value is "clearly periodic" when
// its cumulative share of the histogram (walked in first-occurrence order)
// crosses periodicityThreshold before the remaining probability mass drops
// below it. The recurrence time is the most common gap between that
// value's first occurrence and every later occurrence of it — matching
// has_clear_periodicity, which measures every gap from the first hit
// rather than consecutive hits.
func clearPeriodicity(x, times []float64, v *Vector) {
	n := len(x)
	if n < periodicityNumberThreshold {
		v.Periodicity = false
		v.PeriodicityVal = Of(0)
		v.PeriodicityTime = Of(0)
		return
	}

	order, hist := orderedHistogram(x)
	var sumProb float64
	var val float64
	found := false
	for _, h := range order {
		prob := float64(hist[h]) / float64(n)
		if prob >= periodicityThreshold {
			val = h
			found = true
			break
		}
		sumProb += prob
		if 1-sumProb < periodicityThreshold {
			v.Periodicity = false
			v.PeriodicityVal = Of(0)
			v.PeriodicityTime = Of(0)
			return
		}
	}
	if !found {
		v.Periodicity = false
		v.PeriodicityVal = Of(0)
		v.PeriodicityTime = Of(0)
		return
	}

	var perOrder []float64
	perCounts := make(map[float64]int)
	var beforeTime float64
	haveBefore := false
	for i, d := range x {
		if d != val {
			continue
		}
		t := times[i]
		if !haveBefore {
			beforeTime = t
			haveBefore = true
			continue
		}
		diff := t - beforeTime
		if _, ok := perCounts[diff]; !ok {
			perOrder = append(perOrder, diff)
		}
		perCounts[diff]++
	}

	var perTime float64
	var perTimeCounts int
	havePer := false
	for _, t := range perOrder {
		if !havePer {
			perTime = t
			perTimeCounts = perCounts[t]
			havePer = true
			continue
		}
		if perTimeCounts < perCounts[t] {
			perTime = t
			perTimeCounts = perCounts[t]
		}
	}

	v.Periodicity = true
	v.PeriodicityVal = Of(val)
	if havePer {
		v.PeriodicityTime = Of(perTime)
	}
}

// orderedHistogram counts occurrences like histogram, but also returns
// distinct values in first-occurrence order — needed wherever iteration
// order over the histogram affects the result, mirroring Python's
// insertion-ordered dict.
func orderedHistogram(x []float64) ([]float64, map[float64]int) {
	h := make(map[float64]int)
	var order []float64
	for _, xi := range x {
		if _, ok := h[xi]; !ok {
			order = append(order, xi)
		}
		h[xi]++
	}
	return order, h
}
