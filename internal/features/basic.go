package features

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// histogram counts occurrences of each distinct value, preserving no
// particular order; callers needing rank order build it from this map.
func histogram(x []float64) map[float64]int {
	h := make(map[float64]int, len(x))
	for _, v := range x {
		h[v]++
	}
	return h
}

// mode returns the value with the highest frequency, breaking ties toward
// the smallest value (matching an integer bincount's arg-max).
func mode(x []float64) float64 {
	h := histogram(x)
	best, bestCount := x[0], 0
	keys := make([]float64, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Float64s(keys)
	for _, k := range keys {
		if h[k] > bestCount {
			best, bestCount = k, h[k]
		}
	}
	return best
}

// percentile computes the p-th percentile (0..100) of x via linear
// interpolation between the two bracketing order statistics, matching the
// spec's "linear-interpolated percentiles".
func percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}
	rank := p / 100 * float64(n-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

func basicStats(x []float64, v *Vector) {
	n := len(x)
	if n == 0 {
		return
	}

	mean := stat.Mean(x, nil)
	v.Mean = Of(mean)

	sorted := append([]float64(nil), x...)
	sort.Float64s(sorted)
	v.Median = Of(percentile(sorted, 50))
	v.Q1 = Of(percentile(sorted, 25))
	v.Q3 = Of(percentile(sorted, 75))

	var sd float64
	switch {
	case n == 1:
		sd = x[0]
	case n == 0:
		sd = 0
	default:
		sd = sampleStdev(x, mean)
		if math.IsNaN(sd) || math.IsInf(sd, 0) {
			limit := x
			if len(x) > 1000 {
				limit = x[:1000]
			}
			sd = sampleStdev(limit, stat.Mean(limit, nil))
		}
	}
	v.Stdev = Of(sd)

	var variance float64
	if n >= 2 {
		variance = stat.Variance(x, nil)
	}
	v.Var = Of(variance)

	if sd+mean != 0 {
		v.Burstiness = Of((sd - mean) / (sd + mean))
	} else {
		v.Burstiness = Of(0)
	}

	v.Mode = Of(mode(x))

	if mean != 0 {
		v.CoefficientVariation = Of(sd / mean * 100)
	} else {
		v.CoefficientVariation = Of(0)
	}

	v.Min = Of(sorted[0])
	v.Max = Of(sorted[n-1])
	v.MinMinusMax = Of(sorted[n-1] - sorted[0])

	var dispersion, rms float64
	var below, above int
	for _, xi := range x {
		dispersion += math.Abs(xi - mean)
		rms += xi * xi
		if xi < mean {
			below++
		}
		if xi > mean {
			above++
		}
	}
	dispersion /= float64(n)
	v.AverageDispersion = Of(dispersion)

	if mean != 0 {
		v.PercentDeviation = Of(dispersion / mean * 100)
	} else {
		v.PercentDeviation = Of(0)
	}

	v.RootMeanSquare = Of(math.Sqrt(rms / float64(n)))
	v.PercentBelowMean = Of(float64(below) / float64(n))
	v.PercentAboveMean = Of(float64(above) / float64(n))
}

func sampleStdev(x []float64, mean float64) float64 {
	if len(x) < 2 {
		if len(x) == 1 {
			return x[0]
		}
		return 0
	}
	var sumSq float64
	for _, xi := range x {
		d := xi - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(x)-1))
}
