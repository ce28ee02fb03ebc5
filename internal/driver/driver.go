// Package driver wires a packet source, the flow assembly engine, and the
// output sinks together into the single synchronous replay loop of
// spec.md §5. Grounded on server.Server's Start/processPacket structure,
// with the UDP receive loop replaced by a source.Source replay loop and
// the periodic statistics reporter kept as a packet-count-based log line
// rather than a wall-clock ticker, since offline replay has no real-time
// pacing to report against.
package driver

import (
	"fmt"

	"github.com/pavelkim/flowts/internal/features"
	"github.com/pavelkim/flowts/internal/flowtable"
	"github.com/pavelkim/flowts/internal/logger"
	"github.com/pavelkim/flowts/internal/sink"
	"github.com/pavelkim/flowts/internal/source"
)

// InputMode selects which of the three mutually exclusive input sources
// the driver reads from.
type InputMode int

const (
	// InputPCAP replays a packet capture file.
	InputPCAP InputMode = iota
	// InputTextDump replays a tokenized text packet dump.
	InputTextDump
	// InputTimeSeriesCSV replays pre-assembled per-flow time series,
	// bypassing the flow assembly engine entirely.
	InputTimeSeriesCSV
)

// Config describes one end-to-end run of the driver.
type Config struct {
	InputMode InputMode
	InputPath string

	TimeSeriesOutputPath string
	FlowsOutputPath      string

	ActiveTimeoutSeconds   float64
	InactiveTimeoutSeconds float64
	HeadStrip              int
	MinPackets             int
	Features               features.Config

	Logger *logger.Logger
}

// statsInterval is how many ingested packets pass between progress
// log lines, mirroring reportStats's periodic summary without depending
// on wall-clock time during offline replay.
const statsInterval = 100000

// Run executes one end-to-end replay: open the configured input source,
// feed it through the flow table (unless running in time-series input
// mode, which already carries pre-assembled flows), and write every
// emitted flow to the configured output sinks.
func Run(cfg Config) error {
	rows, err := sink.NewRowWriter(cfg.FlowsOutputPath)
	if err != nil {
		return err
	}
	defer rows.Close()

	series, err := sink.NewTimeSeriesWriter(cfg.TimeSeriesOutputPath)
	if err != nil {
		return err
	}
	defer series.Close()

	if cfg.InputMode == InputTimeSeriesCSV {
		return runTimeSeries(cfg, rows)
	}
	return runPacketReplay(cfg, rows, series)
}

func runPacketReplay(cfg Config, rows *sink.RowWriter, series *sink.TimeSeriesWriter) error {
	src, err := openPacketSource(cfg)
	if err != nil {
		return err
	}
	defer src.Close()

	table := flowtable.New(cfg.ActiveTimeoutSeconds, cfg.InactiveTimeoutSeconds, cfg.HeadStrip, cfg.MinPackets, cfg.Features)
	if cfg.FlowsOutputPath == "" {
		table.SetSkipExtraction(true)
	}

	var packets, flowsEmitted uint64
	for {
		pkt, ok, err := src.Next()
		if err != nil {
			return fmt.Errorf("read packet: %w", err)
		}
		if !ok {
			break
		}
		packets++

		emitted, wrote := table.Ingest(pkt)
		if wrote {
			flowsEmitted++
			if err := writeEmitted(rows, series, emitted); err != nil {
				return err
			}
		}

		if cfg.Logger != nil && packets%statsInterval == 0 {
			cfg.Logger.Info("replay progress", "packets", packets, "flows_emitted", flowsEmitted)
		}
	}

	for _, emitted := range table.Drain() {
		flowsEmitted++
		if err := writeEmitted(rows, series, emitted); err != nil {
			return err
		}
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("replay complete", "packets", packets, "flows_emitted", flowsEmitted)
	}
	return nil
}

// runTimeSeries handles the --timeseries_csv input mode: each input row is
// already a complete flow, so the flow table is bypassed and each series
// goes straight to feature extraction.
func runTimeSeries(cfg Config, rows *sink.RowWriter) error {
	src, err := source.NewTimeSeriesCSVSource(cfg.InputPath)
	if err != nil {
		return err
	}
	defer src.Close()

	var flowsEmitted uint64
	for {
		flow, ok, err := src.Next()
		if err != nil {
			return fmt.Errorf("read timeseries flow: %w", err)
		}
		if !ok {
			break
		}

		strip := cfg.HeadStrip
		if strip >= len(flow.Bytes) || len(flow.Bytes) <= cfg.MinPackets {
			continue
		}
		v, extracted := features.ExtractWithConfig(flow.Bytes[strip:], flow.Times[strip:], cfg.Features)
		if !extracted {
			continue
		}

		flowsEmitted++
		if err := rows.WriteFlow(sink.Flow{
			DstIP: flow.DstIP, SrcIP: flow.SrcIP,
			DstPort: flow.DstPort, SrcPort: flow.SrcPort,
			Packets:   uint64(len(flow.Bytes)),
			TimeFirst: flow.Times[strip], TimeLast: flow.Times[len(flow.Times)-1],
			Vector: v,
		}); err != nil {
			return err
		}
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("replay complete", "flows_emitted", flowsEmitted)
	}
	return nil
}

// writeEmitted routes one flushed flow to whichever sinks are enabled:
// RowWriter gets the extracted feature vector (--flows), TimeSeriesWriter
// gets the raw (head-stripped) size/time series the vector came from
// (--file) — the two output modes of spec.md §6 are independent, so a run
// may drive either or both from the same emission.
func writeEmitted(rows *sink.RowWriter, series *sink.TimeSeriesWriter, emitted *flowtable.EmittedFlow) error {
	if emitted.Vector != nil {
		if err := rows.WriteFlow(sink.Flow{
			DstIP: emitted.DstIP, SrcIP: emitted.SrcIP,
			DstPort: emitted.DstPort, SrcPort: emitted.SrcPort,
			Packets: emitted.Packets, PacketsRev: emitted.PacketsRev,
			Bytes: emitted.Bytes, BytesRev: emitted.BytesRev,
			TimeFirst: emitted.TimeFirst, TimeLast: emitted.TimeLast,
			Directions: emitted.Directions,
			Vector:     emitted.Vector,
		}); err != nil {
			return fmt.Errorf("write flow row: %w", err)
		}
	}

	if err := series.WriteSeries(emitted.SrcIP, emitted.SrcPort, emitted.DstIP, emitted.DstPort, emitted.Sizes, emitted.Times); err != nil {
		return fmt.Errorf("write flow series: %w", err)
	}
	return nil
}

func openPacketSource(cfg Config) (source.Source, error) {
	switch cfg.InputMode {
	case InputPCAP:
		return source.NewPCAPSource(cfg.InputPath)
	case InputTextDump:
		return source.NewTextDumpSource(cfg.InputPath)
	default:
		return nil, fmt.Errorf("unsupported packet input mode")
	}
}
