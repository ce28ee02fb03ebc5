package features

import "testing"

func TestAggregateBucketsSumsAndZeroFillsGaps(t *testing.T) {
	data := []float64{10, 5, 0, 20}
	times := []float64{0.1, 0.9, 2.5, 2.6}

	agg := aggregateBuckets(data, times, 1.0)

	// Bucket 0: [0,1) -> 10+5=15; bucket 1: [1,2) -> zero-filled gap;
	// bucket 2: [2,3) -> 0+20=20.
	want := []float64{15, 0, 20}
	if len(agg) != len(want) {
		t.Fatalf("expected %d buckets, got %d: %v", len(want), len(agg), agg)
	}
	for i := range want {
		if agg[i] != want[i] {
			t.Errorf("bucket %d: got %v want %v", i, agg[i], want[i])
		}
	}
}

func TestAggregateBucketsEmptyInput(t *testing.T) {
	if agg := aggregateBuckets(nil, nil, 1.0); agg != nil {
		t.Errorf("expected nil for empty input, got %v", agg)
	}
}

func TestCntDistributionConstantBucketsYieldZero(t *testing.T) {
	v := &Vector{}
	cntDistribution([]float64{5, 5, 5}, v)
	if !v.CntDistribution.IsSet() || v.CntDistribution.F != 0 {
		t.Errorf("expected CNT_DISTRIBUTION=0 for a constant aggregated series, got %v", v.CntDistribution)
	}
}

func TestCntBehaviorCountsZerosAndPeak(t *testing.T) {
	v := &Vector{}
	cntBehavior([]float64{0, 10, 0, 30}, v)

	if !v.CntZeros.IsSet() || v.CntZeros.F != 0.5 {
		t.Errorf("expected CNT_ZEROS=0.5, got %v", v.CntZeros)
	}
	if !v.BiggestCnt1Sec.IsSet() || v.BiggestCnt1Sec.F != 30 {
		t.Errorf("expected BIGGEST_CNT_1_SEC=30, got %v", v.BiggestCnt1Sec)
	}
}

func TestLillefforsConstantSeriesReturnsZero(t *testing.T) {
	x := []float64{1, 1, 1, 1}
	if got := lilliefors(x); got != 0 {
		t.Errorf("expected p=0 for a zero-variance series, got %v", got)
	}
}

func TestNormalDistributionBelowSampleFloorIsZero(t *testing.T) {
	v := &Vector{}
	normalDistribution([]float64{1, 2, 3}, v)
	if !v.NormalDistribution.IsSet() || v.NormalDistribution.F != 0 {
		t.Errorf("expected NORMAL_DISTRIBUTION=0 below the 4-point floor, got %v", v.NormalDistribution)
	}
}
