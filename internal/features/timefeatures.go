package features

import "sort"

// timeDistribution implements 4.2.9's TIME_DISTRIBUTION: the mean of
// time-since-start normalized by the flow's span. 0.5 is even distribution,
// below is front-loaded, above is back-loaded.
func timeDistribution(times []float64, v *Vector) {
	p := len(times)
	if p < 2 {
		v.TimeDistribution = Of(0.5)
		return
	}
	t0, tn := times[0], times[p-1]
	var normSum float64
	for _, t := range times {
		normSum += t - t0
	}
	normMean := normSum / float64(p)
	dt := tn - t0
	if dt == 0 {
		v.TimeDistribution = Of(normMean)
	} else {
		v.TimeDistribution = Of(normMean / dt)
	}
}

// meanScaledTime implements DURATION, MEAN/MEDIAN/Q1/Q3_SCALED_TIME over
// times shifted to start at zero.
func meanScaledTime(times []float64, v *Vector) {
	n := len(times)
	if n == 0 {
		return
	}
	t0 := times[0]
	rel := make([]float64, n)
	var sum float64
	for i, t := range times {
		rel[i] = t - t0
		sum += rel[i]
	}
	v.Duration = Of(rel[n-1])
	v.MeanScaledTime = Of(sum / float64(n))
	v.MedianScaledTime = Of(rel[n/2])
	v.Q1ScaledTime = Of(rel[n/4])
	v.Q3ScaledTime = Of(rel[3*n/4])
}

// meanDifftimes implements MEAN/MEDIAN/MIN/MAX_DIFFTIMES and
// MEAN_SCALED_DIFFTIMES over consecutive inter-arrival gaps.
func meanDifftimes(times []float64, v *Vector) {
	n := len(times)
	if n < 2 {
		return
	}
	diffs := make([]float64, 0, n-1)
	for i := 1; i < n; i++ {
		diffs = append(diffs, times[i]-times[i-1])
	}

	sorted := append([]float64(nil), diffs...)
	sort.Float64s(sorted)

	var sum float64
	max := sorted[len(sorted)-1]
	min := sorted[0]
	for _, d := range diffs {
		sum += d
	}
	mean := sum / float64(len(diffs))

	v.MeanDifftimes = Of(mean)
	v.MedianDifftimes = Of(medianOf(sorted))
	v.MinDifftimes = Of(min)
	v.MaxDifftimes = Of(max)
	if max != 0 {
		v.MeanScaledDifftimes = Of(mean / max)
	}
}

func medianOf(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
