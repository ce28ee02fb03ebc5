package features

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// aggregateBuckets sums data into fixed-width time buckets aligned to
// multiples of interval, zero-filling any bucket the series skips over.
// Mirrors aggreagation_of_time_series.
func aggregateBuckets(data, times []float64, interval float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	var agg []float64
	startTime := times[0] - math.Mod(times[0], interval)
	var current float64
	for i, t := range times {
		d := data[i]
		if t < startTime+interval {
			current += d
		} else {
			agg = append(agg, current)
			startTime += interval
			for t > startTime+interval {
				startTime += interval
				agg = append(agg, 0)
			}
			current = d
		}
	}
	if current > 0 {
		agg = append(agg, current)
	}
	return agg
}

// cntDistribution implements 4.2.8's CNT_DISTRIBUTION: mean absolute
// deviation of the aggregated series, normalized to its half range.
func cntDistribution(agg []float64, v *Vector) {
	if len(agg) == 0 {
		return
	}
	mean := stat.Mean(agg, nil)
	var tmp float64
	for _, d := range agg {
		tmp += math.Abs(mean - d)
	}
	lo, hi := agg[0], agg[0]
	for _, d := range agg {
		if d < lo {
			lo = d
		}
		if d > hi {
			hi = d
		}
	}
	scale := hi - lo
	if scale == 0 {
		v.CntDistribution = Of(tmp / float64(len(agg)))
	} else {
		v.CntDistribution = Of((tmp / float64(len(agg))) / (scale / 2))
	}
}

// cntBehavior implements CNT_ZEROS, BIGGEST_CNT_1_SEC and
// CNT_NZ_DISTRIBUTION over the aggregated series.
func cntBehavior(agg []float64, v *Vector) {
	if len(agg) == 0 {
		return
	}
	var zeros int
	var nz []float64
	hi := agg[0]
	for _, d := range agg {
		if d == 0 {
			zeros++
		} else {
			nz = append(nz, d)
		}
		if d > hi {
			hi = d
		}
	}
	v.CntZeros = Of(float64(zeros) / float64(len(agg)))
	v.BiggestCnt1Sec = Of(hi)

	if len(nz) == 0 {
		return
	}
	mean := stat.Mean(nz, nil)
	var tmp float64
	lo, hiNZ := nz[0], nz[0]
	for _, d := range nz {
		tmp += math.Abs(mean - d)
		if d < lo {
			lo = d
		}
		if d > hiNZ {
			hiNZ = d
		}
	}
	scale := hiNZ - lo
	if scale == 0 {
		v.CntNZDistribution = Of(tmp / float64(len(nz)))
	} else {
		v.CntNZDistribution = Of((tmp / float64(len(nz))) / (scale / 2))
	}
}

// normalDistribution implements NORMAL_DISTRIBUTION: the Lilliefors
// goodness-of-fit p-value over the aggregated series, when it has enough
// points to be meaningful.
func normalDistribution(agg []float64, v *Vector) {
	if len(agg) >= 4 {
		v.NormalDistribution = Of(lilliefors(agg))
	} else {
		v.NormalDistribution = Of(0)
	}
}

// lilliefors computes the Lilliefors test p-value for normality with
// unknown mean and variance, via the Dallal-Wilkinson (1986) analytic
// approximation to the KS statistic's null distribution. No pack library
// implements this test, so it is hand-rolled per the documented formula
// (also used by R's nortest::lillie.test).
func lilliefors(x []float64) float64 {
	n := len(x)
	mean := stat.Mean(x, nil)
	sd := sampleStdev(x, mean)
	if sd == 0 {
		return 0
	}

	z := make([]float64, n)
	for i, xi := range x {
		z[i] = (xi - mean) / sd
	}
	sort.Float64s(z)

	nf := float64(n)
	var dPlus, dMinus float64
	for i, zi := range z {
		cdf := standardNormalCDF(zi)
		dp := float64(i+1)/nf - cdf
		dm := cdf - float64(i)/nf
		if dp > dPlus {
			dPlus = dp
		}
		if dm > dMinus {
			dMinus = dm
		}
	}
	d := dPlus
	if dMinus > d {
		d = dMinus
	}
	return dallalWilkinsonP(d, nf)
}

func standardNormalCDF(z float64) float64 {
	return 0.5 * math.Erfc(-z/math.Sqrt2)
}

func dallalWilkinsonP(d, n float64) float64 {
	p := math.Exp(-7.01256*d*d*(n+2.78019) +
		2.99587*d*math.Sqrt(n+2.78019) -
		0.122119 + 0.974598/math.Sqrt(n) + 1.67997/n)
	if p > 1 {
		p = 1
	}
	if p < 0 {
		p = 0
	}
	return p
}
