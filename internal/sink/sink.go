// Package sink serializes flow records to CSV. Grounded on
// output.FileWriter's enabled/disabled toggle and lazy-open-on-construct
// pattern, adapted from structured log lines to the fixed-schema
// delimited rows spec.md §4.3/§6 require.
package sink

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/pavelkim/flowts/internal/features"
)

// header is the feature-vector row schema of spec.md §6, verbatim.
var header = []string{
	"DST_IP", "SRC_IP", "PACKETS", "PACKETS_REV", "BYTES", "BYTES_REV",
	"TIME_FIRST", "TIME_LAST", "DST_PORT", "SRC_PORT",
	"MEAN", "MEDIAN", "STDEV", "VAR", "BURSTINESS", "Q1", "Q3", "MIN", "MAX",
	"MIN_MINUS_MAX", "MODE", "COEFFICIENT_OF_VARIATION", "AVERAGE_DISPERSION",
	"PERCENT_DEVIATION", "ROOT_MEAN_SQUARE", "PERCENT_BELOW_MEAN", "PERCENT_ABOVE_MEAN",
	"PEARSON_SK1_SKEWNESS", "PEARSON_SK2_SKEWNESS", "FISHER_MI_3_SKEWNESS",
	"FISHER_PEARSON_g1_SKEWNESS", "FISHER_PEARSON_G1_SKEWNESS", "GALTON_SKEWNESS",
	"KURTOSIS", "ENTROPY", "SCALED_ENTROPY", "HURST_EXPONENT",
	"BENFORD_LAW_PRESENTED", "P_BENFORD", "NORMAL_DISTRIBUTION", "CNT_DISTRIBUTION",
	"TIME_DISTRIBUTION", "AREA_VALUES_DISTRIBUTION",
	"MEAN_SCALED_TIME", "MEDIAN_SCALED_TIME", "Q1_SCALED_TIME", "Q3_SCALED_TIME",
	"DURATION", "MEAN_DIFFTIMES", "MEDIAN_DIFFTIMES", "MIN_DIFFTIMES", "MAX_DIFFTIMES",
	"MEAN_SCALED_DIFFTIMES", "SIG_SPACES", "SWITCHING_METRIC", "TRANSIENTS",
	"CNT_ZEROS", "CNT_NZ_DISTRIBUTION", "BIGGEST_CNT_1_SEC",
	"DIRECTIONS", "PERIODICITY", "VAL", "TIME",
	"MIN_POWER", "MAX_POWER", "MIN_POWER_FREQ", "MAX_POWER_FREQ",
	"POWER_MEAN", "POWER_STD", "POWER_MODE", "SPECTRAL_ENERGY", "SPECTRAL_ENTROPY",
	"SPECTRAL_KURTOSIS", "SPECTRAL_SKEWNESS", "SPECTRAL_ROLLOFF", "SPECTRAL_CENTROID",
	"SPECTRAL_SPREAD", "SPECTRAL_SLOPE", "SPECTRAL_CREST", "SPECTRAL_FLUX",
	"SPECTRAL_BANDWIDTH", "PERIODICITY_SCDF",
}

// Flow is the input to RowWriter.WriteFlow: the direction-accounted
// counters flowtable produces plus the extracted feature vector.
type Flow struct {
	DstIP, SrcIP        string
	DstPort, SrcPort    uint16
	Packets, PacketsRev uint64
	Bytes, BytesRev     uint64
	TimeFirst, TimeLast float64
	Directions          float64
	Vector              *features.Vector
}

// RowWriter writes feature-vector rows (spec §6 --flows). Constructing it
// with an empty path yields a disabled writer whose WriteFlow calls are
// no-ops, matching output.FileWriter's enabled toggle.
type RowWriter struct {
	enabled     bool
	file        *os.File
	w           *csv.Writer
	wroteHeader bool
}

// NewRowWriter opens path for feature-vector output, or returns a
// disabled writer when path is empty.
func NewRowWriter(path string) (*RowWriter, error) {
	if path == "" {
		return &RowWriter{enabled: false}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("open flows output: %w", err)
	}
	return &RowWriter{enabled: true, file: f, w: csv.NewWriter(f)}, nil
}

// WriteFlow writes one feature-vector row, writing the header first if
// this is the first call.
func (rw *RowWriter) WriteFlow(f Flow) error {
	if !rw.enabled {
		return nil
	}
	if !rw.wroteHeader {
		if err := rw.w.Write(header); err != nil {
			return fmt.Errorf("write flows header: %w", err)
		}
		rw.wroteHeader = true
	}

	v := f.Vector
	row := []string{
		f.DstIP, f.SrcIP,
		strconv.FormatUint(f.Packets, 10), strconv.FormatUint(f.PacketsRev, 10),
		strconv.FormatUint(f.Bytes, 10), strconv.FormatUint(f.BytesRev, 10),
		formatFloat(f.TimeFirst), formatFloat(f.TimeLast),
		strconv.FormatUint(uint64(f.DstPort), 10), strconv.FormatUint(uint64(f.SrcPort), 10),
		v.Mean.String(), v.Median.String(), v.Stdev.String(), v.Var.String(),
		v.Burstiness.String(), v.Q1.String(), v.Q3.String(), v.Min.String(), v.Max.String(),
		v.MinMinusMax.String(), v.Mode.String(), v.CoefficientVariation.String(),
		v.AverageDispersion.String(), v.PercentDeviation.String(), v.RootMeanSquare.String(),
		v.PercentBelowMean.String(), v.PercentAboveMean.String(),
		v.SkewnessSK1.String(), v.SkewnessSK2.String(), v.SkewnessMI3.String(),
		v.SkewnessG1.String(), v.SkewnessAdjustedG1.String(), v.SkewnessGalton.String(),
		v.Kurtosis.String(), v.Entropy.String(), v.ScaledEntropy.String(), v.HurstExponent.String(),
		features.BoolString(v.BenfordLawPresented), v.PBenford.String(), v.NormalDistribution.String(),
		v.CntDistribution.String(), v.TimeDistribution.String(), v.AreaOfValueDistribution.String(),
		v.MeanScaledTime.String(), v.MedianScaledTime.String(), v.Q1ScaledTime.String(), v.Q3ScaledTime.String(),
		v.Duration.String(), v.MeanDifftimes.String(), v.MedianDifftimes.String(),
		v.MinDifftimes.String(), v.MaxDifftimes.String(), v.MeanScaledDifftimes.String(),
		features.BoolString(v.SigSpaces), v.SwitchingMetric.String(), features.BoolString(v.HasTransient),
		v.CntZeros.String(), v.CntNZDistribution.String(), v.BiggestCnt1Sec.String(),
		formatFloat(f.Directions), features.BoolString(v.Periodicity), v.PeriodicityVal.String(), v.PeriodicityTime.String(),
		v.MinPower.String(), v.MaxPower.String(), v.MinPowerFreq.String(), v.MaxPowerFreq.String(),
		v.PowerMean.String(), v.PowerStd.String(), v.PowerMode.String(),
		v.SpectralEnergy.String(), v.SpectralEntropy.String(), v.SpectralKurtosis.String(), v.SpectralSkewness.String(),
		v.SpectralRolloff.String(), v.SpectralCentroid.String(), v.SpectralSpread.String(),
		v.SpectralSlope.String(), v.SpectralCrest.String(), v.SpectralFlux.String(), v.SpectralBandwidth.String(),
		v.PeriodicitySCDF.String(),
	}
	if err := rw.w.Write(row); err != nil {
		return fmt.Errorf("write flows row: %w", err)
	}
	rw.w.Flush()
	return rw.w.Error()
}

// Close flushes and closes the underlying file, if open.
func (rw *RowWriter) Close() error {
	if !rw.enabled {
		return nil
	}
	rw.w.Flush()
	return rw.file.Close()
}

// TimeSeriesWriter writes intermediate per-flow time series (spec §6
// --file), the same schema accepted by TimeSeriesCSVSource.
type TimeSeriesWriter struct {
	enabled     bool
	file        *os.File
	w           *csv.Writer
	wroteHeader bool
}

// NewTimeSeriesWriter opens path for intermediate time-series output, or
// returns a disabled writer when path is empty.
func NewTimeSeriesWriter(path string) (*TimeSeriesWriter, error) {
	if path == "" {
		return &TimeSeriesWriter{enabled: false}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("open file output: %w", err)
	}
	w := csv.NewWriter(f)
	w.Comma = ';'
	return &TimeSeriesWriter{enabled: true, file: f, w: w}, nil
}

// WriteSeries writes one SRC_IP;SRC_PORT;DST_IP;DST_PORT;bytes;time row.
func (tw *TimeSeriesWriter) WriteSeries(srcIP string, srcPort uint16, dstIP string, dstPort uint16, bytes []uint64, times []float64) error {
	if !tw.enabled {
		return nil
	}
	if !tw.wroteHeader {
		if err := tw.w.Write([]string{"SRC_IP", "SRC_PORT", "DST_IP", "DST_PORT", "bytes", "time"}); err != nil {
			return fmt.Errorf("write timeseries header: %w", err)
		}
		tw.wroteHeader = true
	}

	bytesJSON, err := json.Marshal(bytes)
	if err != nil {
		return fmt.Errorf("marshal bytes: %w", err)
	}
	timesJSON, err := json.Marshal(times)
	if err != nil {
		return fmt.Errorf("marshal times: %w", err)
	}

	row := []string{
		srcIP, strconv.FormatUint(uint64(srcPort), 10),
		dstIP, strconv.FormatUint(uint64(dstPort), 10),
		string(bytesJSON), string(timesJSON),
	}
	if err := tw.w.Write(row); err != nil {
		return fmt.Errorf("write timeseries row: %w", err)
	}
	tw.w.Flush()
	return tw.w.Error()
}

// Close flushes and closes the underlying file, if open.
func (tw *TimeSeriesWriter) Close() error {
	if !tw.enabled {
		return nil
	}
	tw.w.Flush()
	return tw.file.Close()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
