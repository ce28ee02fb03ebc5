package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Engine  EngineConfig  `yaml:"engine"`
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// EngineConfig contains flow assembly and feature extraction tunables.
type EngineConfig struct {
	ActiveTimeoutSeconds   float64 `yaml:"active_timeout_seconds"`
	InactiveTimeoutSeconds float64 `yaml:"inactive_timeout_seconds"`
	SizeBias               int     `yaml:"size_bias"`
	AggregationBucket      float64 `yaml:"aggregation_bucket_seconds"`
	SpectralWindow         float64 `yaml:"spectral_window_seconds"`
	SpectralFrequencyCount int     `yaml:"spectral_frequency_count"`
	HeadStrip              int     `yaml:"head_strip"`
	MinPackets             int     `yaml:"min_packets"`
}

// InputConfig names an input file for each of the three input modes.
// cmd/flowts does not read this section; the input comes from the
// --pcap, --csv and --timeseries_csv flags.
type InputConfig struct {
	PCAPFile          string `yaml:"pcap_file"`
	CSVFile           string `yaml:"csv_file"`
	TimeSeriesCSVFile string `yaml:"timeseries_csv_file"`
}

// OutputConfig names a file for each of the two output modes; either or
// both may be set. cmd/flowts does not read this section; outputs come
// from the --file and --flows flags.
type OutputConfig struct {
	TimeSeriesFile string `yaml:"timeseries_file"`
	FlowsFile      string `yaml:"flows_file"`
}

// LoggingConfig contains application logging settings.
type LoggingConfig struct {
	File    FileLoggingConfig    `yaml:"file"`
	Console ConsoleLoggingConfig `yaml:"console"`
}

// FileLoggingConfig configures the file logging destination.
type FileLoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level"`
	Format  string `yaml:"format"`
	Path    string `yaml:"path"`
}

// ConsoleLoggingConfig configures the console logging destination.
type ConsoleLoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level"`
	Format  string `yaml:"format"`
}

// Load reads and parses the configuration file. A missing file is not an
// error: the caller runs on defaults plus whatever flags were passed.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(cfg)
	return cfg, nil
}

func defaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Engine.ActiveTimeoutSeconds == 0 {
		cfg.Engine.ActiveTimeoutSeconds = 300
	}
	if cfg.Engine.InactiveTimeoutSeconds == 0 {
		cfg.Engine.InactiveTimeoutSeconds = 65
	}
	if cfg.Engine.SizeBias == 0 {
		cfg.Engine.SizeBias = 60
	}
	if cfg.Engine.AggregationBucket == 0 {
		cfg.Engine.AggregationBucket = 60
	}
	if cfg.Engine.SpectralWindow == 0 {
		cfg.Engine.SpectralWindow = 300
	}
	if cfg.Engine.SpectralFrequencyCount == 0 {
		cfg.Engine.SpectralFrequencyCount = 5000
	}
	if cfg.Logging.Console.Level == "" {
		cfg.Logging.Console.Level = "info"
	}
	if cfg.Logging.Console.Format == "" {
		cfg.Logging.Console.Format = "text"
	}
	if cfg.Logging.File.Level == "" {
		cfg.Logging.File.Level = "info"
	}
	if cfg.Logging.File.Format == "" {
		cfg.Logging.File.Format = "json"
	}
}
