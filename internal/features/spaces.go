package features

import "math"

// significantSpaces implements 4.2.10: iteratively narrows the set of
// inter-arrival gaps to those that are significantly larger than both the
// mean and the standard deviation of all gaps, under an adaptive
// significance level, stopping once the surviving fraction drops below
// spaceMinLength. Mirrors perform_spaces_detection.
func significantSpaces(times []float64, spaceMinLength, sigSpaceThreshold float64) []float64 {
	n := len(times)
	if n <= 1 {
		return nil
	}
	allSpaces := make([]float64, 0, n-1)
	for i := 0; i < n-1; i++ {
		allSpaces = append(allSpaces, math.Abs(times[i+1]-times[i]))
	}
	maxSpace := allSpaces[0]
	var sum float64
	for _, s := range allSpaces {
		if s > maxSpace {
			maxSpace = s
		}
		sum += s
	}
	if maxSpace == 0 {
		return nil
	}
	meanSpace := sum / float64(len(allSpaces))
	if maxSpace/meanSpace < sigSpaceThreshold {
		return nil
	}

	var sqDiff float64
	for _, s := range allSpaces {
		d := s - meanSpace
		sqDiff += d * d
	}
	stdDev := math.Sqrt(sqDiff / float64(len(allSpaces)))

	var sigLevel float64
	switch {
	case meanSpace < 0.1:
		sigLevel = 100
	case meanSpace < 0.5:
		sigLevel = 30
	case meanSpace < 0.75:
		sigLevel = 10
	case meanSpace < 1:
		sigLevel = 5
	default:
		sigLevel = 1
	}

	sigTimes := times
	sigSpaces := allSpaces
	for float64(len(sigTimes))/float64(n) > spaceMinLength {
		byMean, meanSpacesOut := meanDetection(sigTimes, sigSpaces, sigLevel, meanSpace)
		byStd := stdevDetection(sigTimes, sigSpaces, sigLevel, stdDev)

		stdSet := make(map[float64]bool, len(byStd))
		for _, t := range byStd {
			stdSet[t] = true
		}

		var nextTimes, nextSpaces []float64
		for i, t := range byMean {
			if stdSet[t] {
				nextTimes = append(nextTimes, t)
				nextSpaces = append(nextSpaces, meanSpacesOut[i])
			}
		}
		sigTimes = nextTimes
		sigSpaces = nextSpaces
		sigLevel++
		if len(sigTimes) == 0 {
			break
		}
	}
	return sigTimes
}

func meanDetection(times, spaces []float64, sigLevel, meanSpace float64) ([]float64, []float64) {
	var outTimes, outSpaces []float64
	for i := range spaces {
		if spaces[i] > meanSpace*(1+sigLevel) {
			outTimes = append(outTimes, times[i])
			outSpaces = append(outSpaces, spaces[i])
		}
	}
	return outTimes, outSpaces
}

func stdevDetection(times, spaces []float64, sigLevel, stdDev float64) []float64 {
	var out []float64
	for i := range spaces {
		if spaces[i] > stdDev*(1+sigLevel) {
			out = append(out, times[i])
		}
	}
	return out
}
