package features

import (
	"math"
	"sort"
)

// areaOfValueDistribution implements 4.2.7: the signed area between the
// step function through the sorted-descending histogram counts and the line
// interpolating its endpoints, normalized to the half bounding rectangle.
func areaOfValueDistribution(x []float64, v *Vector) {
	h := histogram(x)
	counts := make([]float64, 0, len(h))
	for _, c := range h {
		counts = append(counts, float64(c))
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(counts)))

	n := float64(len(counts))
	if n < 2 {
		v.AreaOfValueDistribution = Of(0)
		return
	}

	y1 := counts[0]
	yn := counts[len(counts)-1]

	pLine := make([]float64, len(counts))
	pLine[0] = y1
	pLine[len(counts)-1] = yn
	for i := 1; i < len(counts)-1; i++ {
		idx := float64(i + 1)
		pLine[i] = ((idx-1)*yn + (n-idx)*y1) / (n - 1)
	}

	sAll := (n - 1) * (y1 - yn)
	s := sAll

	for i := 0; i < len(counts)-1; i++ {
		idx := float64(i + 1)
		idxNext := float64(i + 2)
		y, yNext := counts[i], counts[i+1]
		p, pNext := pLine[i], pLine[i+1]

		switch {
		case y >= p && yNext >= pNext:
			s -= areaUnderLineAboveCurve(idx, idxNext, y, yNext, p, pNext, yn, n)
		case y <= p && yNext <= pNext:
			s -= areaAboveLineUnderCurve(idx, idxNext, y, yNext, p, pNext, yn, n)
		case y >= p && yNext <= pNext:
			i1, i2 := findIntersection(idx, y, yNext, y1, yn, n)
			s -= areaUnderLineAboveCurve(idx, i1, y, i2, p, i2, yn, n)
			s -= areaAboveLineUnderCurve(i1, idxNext, i2, yNext, i2, pNext, yn, n)
		default:
			i1, i2 := findIntersection(idx, y, yNext, y1, yn, n)
			s -= areaAboveLineUnderCurve(idx, i1, y, i2, p, i2, yn, n)
			s -= areaUnderLineAboveCurve(i1, idx+1, i2, yNext, i2, pNext, yn, n)
		}
	}

	if sAll == 0 {
		v.AreaOfValueDistribution = Of(0)
		return
	}
	v.AreaOfValueDistribution = Of(s / (sAll / 2))
}

func areaUnderLineAboveCurve(x, xNext, y, yNext, p, pNext, yn, n float64) float64 {
	s := 0.0
	a := y - yNext
	b := xNext - x
	s += a * b / 2

	s += (y - yNext) * (n - xNext)

	a = math.Abs(p - pNext)
	b = xNext - x
	s += a * b / 2

	s += (xNext - x) * (pNext - yn)
	return s
}

func areaAboveLineUnderCurve(x, xNext, y, yNext, p, pNext, yn, n float64) float64 {
	s := 0.0
	a := math.Abs(y - yNext)
	b := xNext - x
	s += a * b / 2

	s += (xNext - x) * (yNext - yn)

	a = math.Abs(p - pNext)
	b = xNext - x
	s += a * b / 2

	s += (p - pNext) * (n - xNext)
	return s
}

func findIntersection(i, y, yNext, y1, yn, n float64) (float64, float64) {
	denom := (yn - y1) - (n-1)*(yNext-y)
	if denom == 0 {
		return i, y
	}
	i1 := (yn - n*y1 + (i+1)*(n-1)*y - i*(n-1)*yNext) / denom
	i2 := ((yn-y1)*i1 - yn + n*y1) / (n - 1)
	return i1, i2
}
