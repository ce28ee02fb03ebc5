// Package features implements the pure (sizes, times) -> Vector statistical
// battery: basic moments, skewness/kurtosis, entropy, the Anis-Lloyd
// corrected Hurst exponent, Benford's law, value-distribution area,
// aggregation-bucket features, time-based features, significant-spaces and
// transient detection, switching metric, clear periodicity, and the
// Lomb-Scargle spectral battery. Every family is grounded on the matching
// function in the original TimeSeriesPlugin implementation.
package features

import "strconv"

// Value is a numeric field that may be "unset" — the feature could not be
// computed (division by zero, NaN intermediate, degenerate input) and is
// rendered as an empty CSV cell rather than a fabricated number.
type Value struct {
	F   float64
	set bool
}

// Of wraps a computed value as set.
func Of(f float64) Value { return Value{F: f, set: true} }

// Unset is the zero Value: not computed.
var Unset = Value{}

// IsSet reports whether the value was computed.
func (v Value) IsSet() bool { return v.set }

// String renders the value for CSV output: empty when unset.
func (v Value) String() string {
	if !v.set {
		return ""
	}
	return strconv.FormatFloat(v.F, 'g', -1, 64)
}

// Vector is the flat, fixed-schema record of statistical features computed
// from one flow's (size, time) sequence. Every numeric field is a Value so
// that "could not be computed" is representable without a magic number.
type Vector struct {
	// 4.2.1 basic statistics
	Mean                Value
	Median              Value
	Stdev               Value
	Var                 Value
	Burstiness          Value
	Mode                Value
	Q1                  Value
	Q3                  Value
	CoefficientVariation Value
	Min                 Value
	Max                 Value
	MinMinusMax         Value
	AverageDispersion   Value
	PercentDeviation    Value
	RootMeanSquare      Value
	PercentBelowMean    Value
	PercentAboveMean    Value

	// 4.2.2 skewness family
	SkewnessSK1        Value
	SkewnessSK2        Value
	SkewnessMI3        Value
	SkewnessG1         Value
	SkewnessAdjustedG1 Value
	SkewnessGalton     Value

	// 4.2.3 kurtosis
	Kurtosis Value

	// 4.2.4 entropy
	Entropy       Value
	ScaledEntropy Value

	// 4.2.5 Hurst exponent
	HurstExponent Value

	// 4.2.6 Benford's law
	BenfordLawPresented bool
	PBenford           Value

	// 4.2.7 value-distribution area
	AreaOfValueDistribution Value

	// 4.2.8 aggregation-based features
	CntDistribution   Value
	CntZeros          Value
	CntNZDistribution Value
	BiggestCnt1Sec    Value
	NormalDistribution Value

	// 4.2.9 time-based features
	Duration              Value
	TimeDistribution      Value
	MeanScaledTime        Value
	MedianScaledTime      Value
	Q1ScaledTime          Value
	Q3ScaledTime          Value
	MeanDifftimes         Value
	MedianDifftimes       Value
	MinDifftimes          Value
	MaxDifftimes          Value
	MeanScaledDifftimes   Value

	// 4.2.10 significant-spaces detection
	SigSpaces bool

	// 4.2.11 transient detection
	HasTransient bool

	// 4.2.12 switching metric
	SwitchingMetric Value

	// 4.2.13 clear periodicity
	Periodicity     bool
	PeriodicityVal  Value
	PeriodicityTime Value

	// 4.2.14 spectral features (Lomb-Scargle)
	MaxPower           Value
	MaxPowerFreq       Value
	MinPower           Value
	MinPowerFreq       Value
	PowerMean          Value
	PowerStd           Value
	PowerMode          Value
	SpectralEnergy     Value
	SpectralEntropy    Value
	SpectralKurtosis   Value
	SpectralSkewness   Value
	SpectralRolloff    Value
	SpectralCentroid   Value
	SpectralSpread     Value
	SpectralSlope      Value
	SpectralCrest      Value
	SpectralFlux       Value
	SpectralBandwidth  Value
	PeriodicitySCDF    Value
}

// BoolString renders a Python-style boolean for CSV output ("True"/"False"),
// matching the source's str(bool) serialization.
func BoolString(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
