package features

import "testing"

func TestSignificantSpacesUniformSpacingIsNil(t *testing.T) {
	times := make([]float64, 21)
	for i := range times {
		times[i] = float64(i)
	}
	if spaces := significantSpaces(times, 0.05, 10); spaces != nil {
		t.Errorf("expected no significant spaces in uniformly-spaced arrivals, got %v", spaces)
	}
}

func TestSignificantSpacesSinglePointIsNil(t *testing.T) {
	if spaces := significantSpaces([]float64{0}, 0.05, 10); spaces != nil {
		t.Errorf("expected nil for a single-point series, got %v", spaces)
	}
}

func TestSignificantSpacesDetectsDominantGap(t *testing.T) {
	times := make([]float64, 20)
	for i := range times {
		times[i] = float64(i)
	}
	times = append(times, 10000)

	spaces := significantSpaces(times, 0.05, 10)
	if spaces == nil {
		t.Fatal("expected a single dominant gap among many uniform gaps to be flagged")
	}
}
