package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pavelkim/flowts/internal/config"
	"github.com/pavelkim/flowts/internal/driver"
	"github.com/pavelkim/flowts/internal/features"
	"github.com/pavelkim/flowts/internal/logger"
	"github.com/pavelkim/flowts/internal/version"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	showVersion := flag.Bool("version", false, "Show version and exit")

	pcapFile := flag.String("pcap", "", "Replay packets from a packet-capture file")
	csvFile := flag.String("csv", "", "Replay packets from a tokenized text packet dump")
	timeseriesCSVFile := flag.String("timeseries_csv", "", "Replay pre-assembled per-flow time series")

	fileOut := flag.String("file", "", "Write the intermediate per-flow time series to this file")
	flowsOut := flag.String("flows", "", "Write feature vectors to this file")

	headStrip := flag.Int("H", 0, "Strip the first N packets before extraction on a flow's first emission")
	minPackets := flag.Int("I", 0, "Skip emissions with <=N packets")

	flag.Parse()

	if *showVersion {
		fmt.Printf("flowts version %s\n", version.GetVersion())
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(&logger.Config{
		File: logger.FileConfig{
			Enabled: cfg.Logging.File.Enabled,
			Level:   cfg.Logging.File.Level,
			Format:  cfg.Logging.File.Format,
			Path:    cfg.Logging.File.Path,
		},
		Console: logger.ConsoleConfig{
			Enabled: cfg.Logging.Console.Enabled,
			Level:   cfg.Logging.Console.Level,
			Format:  cfg.Logging.Console.Format,
		},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	dcfg, err := resolveConfig(*pcapFile, *csvFile, *timeseriesCSVFile, *fileOut, *flowsOut, *headStrip, *minPackets, cfg)
	if err != nil {
		log.Error("Invalid flag combination", "error", err)
		os.Exit(1)
	}
	dcfg.Logger = log

	log.Info("========================================")
	log.Info("Starting flowts", "version", version.GetVersion())
	log.Info("========================================")
	log.Info("Input configured", "path", dcfg.InputPath, "mode", inputModeName(dcfg.InputMode))
	if dcfg.FlowsOutputPath != "" {
		log.Info("Feature-vector output enabled", "file", dcfg.FlowsOutputPath)
	}
	if dcfg.TimeSeriesOutputPath != "" {
		log.Info("Intermediate time-series output enabled", "file", dcfg.TimeSeriesOutputPath)
	}

	if err := driver.Run(dcfg); err != nil {
		log.Error("Run failed", "error", err)
		os.Exit(1)
	}

	log.Info("========================================")
	log.Info("flowts finished")
	log.Info("========================================")
}

// resolveConfig validates the mutually exclusive input/output flag groups
// and assembles a driver.Config, per spec.md §6's exit-code-1 conditions:
// no input selected, more than one input selected, or
// --timeseries_csv combined with --file.
func resolveConfig(pcapFile, csvFile, timeseriesCSVFile, fileOut, flowsOut string, headStrip, minPackets int, cfg *config.Config) (driver.Config, error) {
	inputsSelected := 0
	var mode driver.InputMode
	var path string
	if pcapFile != "" {
		inputsSelected++
		mode, path = driver.InputPCAP, pcapFile
	}
	if csvFile != "" {
		inputsSelected++
		mode, path = driver.InputTextDump, csvFile
	}
	if timeseriesCSVFile != "" {
		inputsSelected++
		mode, path = driver.InputTimeSeriesCSV, timeseriesCSVFile
	}
	if inputsSelected == 0 {
		return driver.Config{}, fmt.Errorf("no input selected: pass exactly one of --pcap, --csv, --timeseries_csv")
	}
	if inputsSelected > 1 {
		return driver.Config{}, fmt.Errorf("more than one input mode selected: --pcap, --csv, --timeseries_csv are mutually exclusive")
	}
	if mode == driver.InputTimeSeriesCSV && fileOut != "" {
		return driver.Config{}, fmt.Errorf("--timeseries_csv cannot be combined with --file: the flow engine is bypassed, so there is no intermediate series to write")
	}

	return driver.Config{
		InputMode: mode,
		InputPath: path,

		TimeSeriesOutputPath: fileOut,
		FlowsOutputPath:      flowsOut,

		ActiveTimeoutSeconds:   cfg.Engine.ActiveTimeoutSeconds,
		InactiveTimeoutSeconds: cfg.Engine.InactiveTimeoutSeconds,
		HeadStrip:              headStrip,
		MinPackets:             minPackets,
		Features: features.Config{
			SizeBias:              cfg.Engine.SizeBias,
			AggregationBucket:     cfg.Engine.AggregationBucket,
			SpectralWindowSeconds: cfg.Engine.SpectralWindow,
			SpectralMinPeriod:     1,
			SpectralFrequencyBins: cfg.Engine.SpectralFrequencyCount,
		},
	}, nil
}

func inputModeName(m driver.InputMode) string {
	switch m {
	case driver.InputPCAP:
		return "pcap"
	case driver.InputTextDump:
		return "csv"
	case driver.InputTimeSeriesCSV:
		return "timeseries_csv"
	default:
		return "unknown"
	}
}
