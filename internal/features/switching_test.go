package features

import "testing"

func TestSwitchingMetricConstantSequence(t *testing.T) {
	v := &Vector{}
	switchingMetric([]float64{5, 5, 5, 5}, v)
	if !v.SwitchingMetric.IsSet() || v.SwitchingMetric.F != 0 {
		t.Errorf("expected SWITCHING_METRIC=0 for a constant sequence, got %v", v.SwitchingMetric)
	}
}

func TestSwitchingMetricSingleValue(t *testing.T) {
	v := &Vector{}
	switchingMetric([]float64{5}, v)
	if !v.SwitchingMetric.IsSet() || v.SwitchingMetric.F != 0 {
		t.Errorf("expected SWITCHING_METRIC=0 for a single-point sequence, got %v", v.SwitchingMetric)
	}
}

func TestSwitchingMetricEveryStepChanges(t *testing.T) {
	v := &Vector{}
	switchingMetric([]float64{1, 2, 1, 2, 1, 2}, v)
	// n=6, 5 changes observed, max possible = (6-1)/2 = 2.5.
	want := 5.0 / 2.5
	if !v.SwitchingMetric.IsSet() || v.SwitchingMetric.F != want {
		t.Errorf("expected SWITCHING_METRIC=%v, got %v", want, v.SwitchingMetric)
	}
}

func TestSwitchingMetricOnlyCountsActualChanges(t *testing.T) {
	v := &Vector{}
	switchingMetric([]float64{1, 1, 2, 2, 3, 3}, v)
	// n=6, 2 changes (1->2, 2->3), max possible = 2.5.
	want := 2.0 / 2.5
	if !v.SwitchingMetric.IsSet() || v.SwitchingMetric.F != want {
		t.Errorf("expected SWITCHING_METRIC=%v, got %v", want, v.SwitchingMetric)
	}
}
