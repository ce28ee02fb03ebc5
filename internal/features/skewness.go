package features

import "math"

// skewness implements the skewness family of 4.2.2. All fields are zero
// when STDEV=0. Adjusted G1 preserves the source's literal (non-textbook)
// arithmetic per the open question resolved in DESIGN.md.
func skewness(x []float64, v *Vector) {
	n := float64(len(x))
	mean := v.Mean.F
	sd := v.Stdev.F
	mo := v.Mode.F
	median := v.Median.F
	q1, q3 := v.Q1.F, v.Q3.F

	if sd == 0 {
		v.SkewnessSK1 = Of(0)
		v.SkewnessSK2 = Of(0)
		v.SkewnessMI3 = Of(0)
		v.SkewnessG1 = Of(0)
		v.SkewnessAdjustedG1 = Of(0)
	} else {
		v.SkewnessSK1 = Of((mean - mo) / sd)
		v.SkewnessSK2 = Of((3*mean - median) / sd)

		var eX3, sum3 float64
		for _, xi := range x {
			eX3 += xi * xi * xi
			d := xi - mean
			sum3 += d * d * d
		}
		eX3 /= n

		v.SkewnessMI3 = Of((eX3 - 3*mean*sd*sd - mean*mean*mean) / (sd * sd * sd))
		v.SkewnessG1 = Of((sum3 / n) / (sd * sd * sd))

		if n-2 == 0 {
			v.SkewnessAdjustedG1 = Of(0)
		} else {
			// Literal source arithmetic: not textbook adjusted Fisher-Pearson G1.
			term1 := 5 / (n * sd) * sum3 / ((n - 1) * (n - 2))
			term2 := 3 * (n - 1) / (n - 2) * math.Pow(n*sd*sd, 1.5)
			v.SkewnessAdjustedG1 = Of(term1 - term2)
		}
	}

	if q3-q1 == 0 {
		v.SkewnessGalton = Of(0)
	} else {
		v.SkewnessGalton = Of((q1 + q3 - 2*mean) / (q3 - q1))
	}
}

func kurtosisFamily(x []float64, v *Vector) {
	n := float64(len(x))
	mean := v.Mean.F
	sd := v.Stdev.F

	denom := n * math.Pow(sd, 4)
	if denom == 0 {
		v.Kurtosis = Of(0)
		return
	}

	var sum4 float64
	for _, xi := range x {
		d := xi - mean
		sum4 += d * d * d * d
	}
	v.Kurtosis = Of(sum4 / denom)
}
