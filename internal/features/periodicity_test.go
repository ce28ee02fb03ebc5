package features

import "testing"

func TestClearPeriodicityBelowSampleFloor(t *testing.T) {
	v := &Vector{}
	clearPeriodicity([]float64{100, 200}, []float64{0, 1}, v)

	if v.Periodicity {
		t.Error("expected PERIODICITY=false for a series below the N<3 sample floor")
	}
	checkFloat(t, "VAL", v.PeriodicityVal, 0)
	checkFloat(t, "TIME", v.PeriodicityTime, 0)
}

func TestClearPeriodicityNoDominantValue(t *testing.T) {
	v := &Vector{}
	// Every value distinct: no single value can cross the 0.95 threshold.
	clearPeriodicity([]float64{10, 20, 30, 40, 50}, []float64{0, 1, 2, 3, 4}, v)

	if v.Periodicity {
		t.Error("expected PERIODICITY=false when no value dominates the histogram")
	}
}

func TestClearPeriodicityDominantValueFound(t *testing.T) {
	v := &Vector{}
	// 19 of 20 values are 160 (95%, right at the threshold); one outlier.
	x := make([]float64, 20)
	times := make([]float64, 20)
	for i := range x {
		x[i] = 160
		times[i] = float64(i)
	}
	x[19] = 999

	clearPeriodicity(x, times, v)

	if !v.Periodicity {
		t.Fatal("expected PERIODICITY=true: one value covers 95% of the series")
	}
	checkFloat(t, "VAL", v.PeriodicityVal, 160)
}
