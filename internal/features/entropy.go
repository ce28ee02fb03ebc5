package features

import "math"

// entropy implements 4.2.4: Shannon entropy in bits over the value
// histogram, plus an entropy scaled by log2(N). The histogram is summed in
// first-occurrence order so the result is the same on every call.
func entropy(x []float64, v *Vector) {
	n := float64(len(x))
	order, h := orderedHistogram(x)

	var e float64
	for _, value := range order {
		p := float64(h[value]) / n
		e -= p * math.Log2(p)
	}
	v.Entropy = Of(e)

	if n == 1 {
		v.ScaledEntropy = Of(0)
	} else {
		v.ScaledEntropy = Of(e / math.Log2(n))
	}
}
