package features

import "math"

// spectralConfig holds the fixed Lomb-Scargle frequency grid parameters:
// a flow's (size, time) series is always evaluated against the same grid
// so that spectral features are comparable across flows.
type spectralConfig struct {
	WindowSeconds float64
	MinPeriod     float64
	FrequencyBins int
}

func defaultSpectralConfig() spectralConfig {
	return spectralConfigFrom(DefaultConfig())
}

// spectralConfigFrom projects the subset of Config the spectral battery
// needs into its own grid parameters.
func spectralConfigFrom(cfg Config) spectralConfig {
	return spectralConfig{
		WindowSeconds: cfg.SpectralWindowSeconds,
		MinPeriod:     cfg.SpectralMinPeriod,
		FrequencyBins: cfg.SpectralFrequencyBins,
	}
}

// frequencyGrid builds the fixed evaluation grid: fmin = 1/(window/2),
// fmax = 1/minPeriod, evenly spaced into FrequencyBins steps.
func frequencyGrid(cfg spectralConfig) []float64 {
	pMax := cfg.WindowSeconds / 2
	fmin := 1 / pMax
	fmax := 1 / cfg.MinPeriod
	df := (fmax - fmin) / float64(cfg.FrequencyBins)
	freq := make([]float64, cfg.FrequencyBins)
	for i := range freq {
		freq[i] = fmin + float64(i)*df
	}
	return freq
}

// lombScarglePower evaluates the classic Scargle (1982) periodogram of
// data(times) at each frequency in freq. No pack library provides a
// Lomb-Scargle periodogram, so this is hand-rolled directly from the
// standard definition rather than astropy's LombScargle; it preserves
// relative ordering of power across frequencies, which is what the
// downstream spectral features depend on.
func lombScarglePower(times, data []float64, freq []float64) []float64 {
	mean := 0.0
	for _, d := range data {
		mean += d
	}
	mean /= float64(len(data))

	y := make([]float64, len(data))
	for i, d := range data {
		y[i] = d - mean
	}

	power := make([]float64, len(freq))
	for fi, f := range freq {
		omega := 2 * math.Pi * f

		var sumSin2wt, sumCos2wt float64
		for _, t := range times {
			sumSin2wt += math.Sin(2 * omega * t)
			sumCos2wt += math.Cos(2 * omega * t)
		}
		tau := math.Atan2(sumSin2wt, sumCos2wt) / (2 * omega)

		var sumCosYC, sumCos2, sumSinYS, sumSin2 float64
		for i, t := range times {
			c := math.Cos(omega * (t - tau))
			s := math.Sin(omega * (t - tau))
			sumCosYC += y[i] * c
			sumCos2 += c * c
			sumSinYS += y[i] * s
			sumSin2 += s * s
		}

		var pCos, pSin float64
		if sumCos2 != 0 {
			pCos = sumCosYC * sumCosYC / sumCos2
		}
		if sumSin2 != 0 {
			pSin = sumSinYS * sumSinYS / sumSin2
		}
		power[fi] = 0.5 * (pCos + pSin)
	}
	return power
}

// spectralFeatures implements 4.2.14: the Lomb-Scargle power battery and
// the SCDF periodicity test, evaluated on the fixed frequency grid.
// Mirrors compute_frequency_features and scdf_test.
func spectralFeatures(times, data []float64, cfg spectralConfig, v *Vector) {
	if len(data) == 0 {
		return
	}
	freq := frequencyGrid(cfg)
	power := lombScarglePower(times, data, freq)
	if len(power) == 0 {
		return
	}

	maxIdx, minIdx := 0, 0
	var sum float64
	for i, p := range power {
		if p > power[maxIdx] {
			maxIdx = i
		}
		if p < power[minIdx] {
			minIdx = i
		}
		sum += p
	}
	maxPower, minPower := power[maxIdx], power[minIdx]
	mean := sum / float64(len(power))

	v.MaxPower = Of(maxPower)
	v.MaxPowerFreq = Of(freq[maxIdx])
	v.MinPower = Of(minPower)
	v.MinPowerFreq = Of(freq[minIdx])
	v.PowerMean = Of(mean)

	var sqDiff float64
	for _, p := range power {
		d := p - mean
		sqDiff += d * d
	}
	std := math.Sqrt(sqDiff / float64(len(power)))
	v.PowerStd = Of(std)

	v.PowerMode = Of(powerMode(power))
	v.SpectralEnergy = setIfFinite(sum)

	var entropy float64
	for _, p := range power {
		entropy -= p * math.Log2(p)
	}
	v.SpectralEntropy = setIfFinite(entropy)

	if std != 0 {
		var sum3, sum4 float64
		for _, p := range power {
			d := p - mean
			sum3 += d * d * d
			sum4 += d * d * d * d
		}
		v.SpectralKurtosis = setIfFinite(sum4 / math.Pow(std, 4))
		v.SpectralSkewness = setIfFinite(sum3 / math.Pow(std, 3))
	}

	threshold := 0.85 * maxPower
	rolloffIdx := -1
	for i, p := range power {
		if p > threshold {
			rolloffIdx = i
			break
		}
	}
	if rolloffIdx >= 0 {
		v.SpectralRolloff = setIfFinite(freq[rolloffIdx])
	}

	var weightedFreq float64
	for i, p := range power {
		weightedFreq += freq[i] * p
	}
	if sum != 0 {
		centroid := weightedFreq / sum
		v.SpectralCentroid = setIfFinite(centroid)

		var spread float64
		for i, p := range power {
			d := freq[i] - centroid
			spread += d * d * p
		}
		v.SpectralSpread = setIfFinite(math.Sqrt(spread / sum))
	}

	logFreq := make([]float64, len(freq))
	logPower := make([]float64, len(power))
	validLog := true
	for i := range freq {
		logFreq[i] = math.Log(freq[i])
		logPower[i] = math.Log(power[i])
		if math.IsNaN(logPower[i]) || math.IsInf(logPower[i], 0) {
			validLog = false
		}
	}
	if validLog {
		v.SpectralSlope = setIfFinite(linearFitSlope(logFreq, logPower))
	}

	if mean != 0 {
		v.SpectralCrest = setIfFinite(maxPower / mean)
	}

	var flux float64
	for i := 1; i < len(power); i++ {
		flux += math.Abs(power[i] - power[i-1])
	}
	v.SpectralFlux = setIfFinite(flux)

	v.SpectralBandwidth = setIfFinite(freq[maxIdx] - freq[minIdx])

	absPower := make([]float64, len(power))
	for i, p := range power {
		absPower[i] = math.Abs(p)
	}
	v.PeriodicitySCDF = setIfFinite(scdfTest(absPower, 0.001))
}

// setIfFinite mirrors compute_frequency_features's "if isnan(x):
// DEFAULT_VALUE" guards by leaving the field unset when the computed
// value is not a usable number.
func setIfFinite(x float64) Value {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return Unset
	}
	return Of(x)
}

// powerMode buckets power values to 5 decimal places and returns the most
// frequent bucket, ties broken toward the bucket seen first — matching
// Counter(...).most_common(1) on an insertion-ordered dict.
func powerMode(power []float64) float64 {
	type bucket struct {
		value float64
		count int
	}
	order := make([]int64, 0, len(power))
	counts := make(map[int64]int)
	for _, p := range power {
		key := int64(math.Round(p * 100000))
		if _, ok := counts[key]; !ok {
			order = append(order, key)
		}
		counts[key]++
	}
	best := bucket{}
	haveBest := false
	for _, key := range order {
		c := counts[key]
		if !haveBest || c > best.count {
			best = bucket{value: float64(key) / 100000, count: c}
			haveBest = true
		}
	}
	return best.value
}

// scdfTest implements the Scargle Cumulative Distribution Function
// significance score over Lomb-Scargle power.
func scdfTest(power []float64, sigLevel float64) float64 {
	maxP := power[0]
	for _, p := range power {
		if p > maxP {
			maxP = p
		}
	}
	var s float64
	if math.IsInf(maxP, 1) {
		s = math.MaxFloat64 * sigLevel
	} else {
		s = maxP * sigLevel
	}

	mean := 0.0
	for _, p := range power {
		mean += p
	}
	mean /= float64(len(power))
	var sqDiff float64
	for _, p := range power {
		d := p - mean
		sqDiff += d * d
	}
	variance := sqDiff / float64(len(power))
	if variance == 0 {
		return 1
	}
	return 1 - math.Exp(-s/variance)
}
