package features

// Config holds the tunables an operator can adjust per spec.md §2's engine
// configuration: the byte-size bias applied before any statistic runs, the
// aggregation bucket width, and the Lomb-Scargle frequency grid. Extract
// uses DefaultConfig when the caller has no reason to deviate from it.
type Config struct {
	SizeBias              int
	AggregationBucket     float64
	SpectralWindowSeconds float64
	SpectralMinPeriod     float64
	SpectralFrequencyBins int
}

// DefaultConfig mirrors compute_plugin_metrics/compute_frequency_features's
// hardcoded constants: a +60 byte bias, a 60-second aggregation bucket, and
// a 300-second/1-second/5000-bin Lomb-Scargle grid.
func DefaultConfig() Config {
	return Config{
		SizeBias:              60,
		AggregationBucket:     60,
		SpectralWindowSeconds: 300,
		SpectralMinPeriod:     1,
		SpectralFrequencyBins: 5000,
	}
}

// Extract computes the full feature battery using DefaultConfig. Most
// callers want this; ExtractWithConfig exists for drivers that expose the
// engine tunables to an operator.
func Extract(sizes []uint64, times []float64) (*Vector, bool) {
	return ExtractWithConfig(sizes, times, DefaultConfig())
}

// ExtractWithConfig computes the full feature battery for one flow's packet
// sizes and arrival times, in the same order as compute_plugin_metrics: basic
// statistics first (later families read Mean/Mode/Median/Stdev/Q1/Q3 off
// the partially-filled Vector), then the moment, entropy, Hurst, Benford
// and distribution-shape families, then the aggregation-bucket and
// time-based families, then the spaces/transient/switching/periodicity
// behavioral families, and finally the spectral battery. Sizes are biased
// by cfg.SizeBias before any statistic runs, mirroring flow_data += 60.
//
// Reports false if the flow carries no data points.
func ExtractWithConfig(sizes []uint64, times []float64, cfg Config) (*Vector, bool) {
	if len(sizes) == 0 || len(times) == 0 {
		return nil, false
	}

	data := make([]float64, len(sizes))
	for i, s := range sizes {
		data[i] = float64(s) + float64(cfg.SizeBias)
	}

	v := &Vector{}

	basicStats(data, v)
	skewness(data, v)
	kurtosisFamily(data, v)
	entropy(data, v)
	hurst(data, v)
	benford(data, v)
	areaOfValueDistribution(data, v)

	agg := aggregateBuckets(data, times, cfg.AggregationBucket)
	normalDistribution(agg, v)
	cntDistribution(agg, v)
	cntBehavior(agg, v)

	timeDistribution(times, v)
	meanScaledTime(times, v)
	meanDifftimes(times, v)

	spaces := significantSpaces(times, 0.05, 10)
	if len(spaces) > 0 {
		v.SigSpaces = true
	}

	switchingMetric(data, v)
	v.HasTransient = hasTransient(data, times, v.Mean.F, spaces)
	clearPeriodicity(data, times, v)

	spectralFeatures(times, data, spectralConfigFrom(cfg), v)

	return v, true
}
