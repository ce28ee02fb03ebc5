package features

const (
	transientTimeThreshold       = 0.2
	transientMeanThreshold       = 0.15
	transientNumberThreshold     = 3
	transientFalseTransientLimit = 5
)

// hasTransient implements 4.2.11: slides a transientTimeThreshold-wide
// window over the series and flags a transient candidate window using the
// same sequence of tests as has_transient, returning as soon as one window
// is accepted or transientFalseTransientLimit windows in total have been
// rejected.
func hasTransient(data, times []float64, mean float64, spaces []float64) bool {
	n := len(data)
	var start float64
	started := false
	var transient []float64
	falseTransients := 0

	flush := func(window []float64) bool {
		if len(window) <= transientNumberThreshold {
			return false
		}
		spacesThreshold := float64(n)/float64(len(window)) - 1
		if spacesThreshold < 1 {
			spacesThreshold = 1
		}
		lo, hi := window[0], window[0]
		var sum float64
		for _, d := range window {
			if d < lo {
				lo = d
			}
			if d > hi {
				hi = d
			}
			sum += d
		}
		wMean := sum / float64(len(window))
		switch {
		case hi-lo-1 < wMean:
			return false
		case wMean > mean*(1+transientMeanThreshold):
			return true
		case float64(n)*0.9 < float64(len(window)):
			return true
		case float64(len(spaces)) > spacesThreshold:
			return true
		default:
			return false
		}
	}

	for i, d := range data {
		t := times[i]
		if !started {
			start = t
			started = true
		}
		if t-start < transientTimeThreshold {
			transient = append(transient, d)
			continue
		}
		if flush(transient) {
			return true
		}
		falseTransients++
		if falseTransients >= transientFalseTransientLimit {
			return false
		}
		transient = []float64{d}
		start = t
	}
	if len(transient) > transientNumberThreshold {
		return flush(transient)
	}
	return false
}
