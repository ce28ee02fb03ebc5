package features

import "testing"

func TestTimeDistributionBelowTwoPointsIsEven(t *testing.T) {
	v := &Vector{}
	timeDistribution([]float64{5}, v)
	checkFloat(t, "TIME_DISTRIBUTION", v.TimeDistribution, 0.5)
}

func TestTimeDistributionFrontLoaded(t *testing.T) {
	v := &Vector{}
	// Most arrivals near the start of the window: normalized mean offset
	// should sit below 0.5.
	timeDistribution([]float64{0, 0, 0, 0, 10}, v)
	if !v.TimeDistribution.IsSet() || v.TimeDistribution.F >= 0.5 {
		t.Errorf("expected a front-loaded series to score below 0.5, got %v", v.TimeDistribution)
	}
}

func TestTimeDistributionZeroSpanUsesRawMean(t *testing.T) {
	v := &Vector{}
	timeDistribution([]float64{3, 3, 3}, v)
	checkFloat(t, "TIME_DISTRIBUTION", v.TimeDistribution, 0)
}

func TestMeanScaledTimeShiftsToZero(t *testing.T) {
	v := &Vector{}
	meanScaledTime([]float64{10, 11, 12, 13}, v)
	checkFloat(t, "DURATION", v.Duration, 3)
	checkFloat(t, "MEAN_SCALED_TIME", v.MeanScaledTime, 1.5)
}

func TestMeanDifftimesComputesGapStatistics(t *testing.T) {
	v := &Vector{}
	meanDifftimes([]float64{0, 1, 3, 4}, v)

	checkFloat(t, "MIN_DIFFTIMES", v.MinDifftimes, 1)
	checkFloat(t, "MAX_DIFFTIMES", v.MaxDifftimes, 2)
	checkFloat(t, "MEAN_DIFFTIMES", v.MeanDifftimes, 4.0/3.0)
}

func TestMeanDifftimesSinglePointUnset(t *testing.T) {
	v := &Vector{}
	meanDifftimes([]float64{0}, v)
	if v.MeanDifftimes.IsSet() {
		t.Error("expected MEAN_DIFFTIMES to stay unset for a single-point series")
	}
}
