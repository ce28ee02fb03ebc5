package features

import (
	"math"
	"sort"
)

const benfordThreshold = 0.05

// benford implements 4.2.6: presence of Benford's law over the value
// histogram and the P_BENFORD goodness-of-fit score over the first 9 ranks.
func benford(x []float64, v *Vector) {
	h := histogram(x)
	n := float64(len(x))

	counts := make([]int, 0, len(h))
	for _, c := range h {
		counts = append(counts, c)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(counts)))

	v.BenfordLawPresented = benfordPresent(counts, n)
	v.PBenford = Of(benfordProbability(counts, n))
}

func benfordPresent(counts []int, n float64) bool {
	presented := true
	for i, c := range counts {
		d := float64(i + 1)
		pBenford := math.Log10((d + 1) / d)
		pEmpirical := float64(c) / n
		if math.Abs(pBenford-pEmpirical) >= benfordThreshold {
			presented = false
			break
		}
		presented = true
	}
	return presented
}

func benfordProbability(counts []int, n float64) float64 {
	padded := make([]int, 9)
	copy(padded, counts)
	if len(counts) > 9 {
		padded = counts[:9]
	}
	sort.Sort(sort.Reverse(sort.IntSlice(padded)))

	var sumAbs float64
	for i := 0; i < 9; i++ {
		d := float64(i + 1)
		pBenford := math.Log10((d + 1) / d)
		pEmpirical := float64(padded[i]) / n
		sumAbs += math.Abs(pBenford - pEmpirical)
	}
	return 1 - sumAbs/2
}
