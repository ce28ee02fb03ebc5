package source

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Flow is one pre-assembled per-flow time series, as read from a
// --timeseries_csv input or written to a --file output. In this input mode
// the flow engine is bypassed entirely: one row is one flow.
type Flow struct {
	SrcIP   string
	SrcPort uint16
	DstIP   string
	DstPort uint16
	Bytes   []uint64
	Times   []float64
}

// TimeSeriesCSVSource reads ';'-delimited rows of
// SRC_IP;SRC_PORT;DST_IP;DST_PORT;bytes;time where bytes and time are JSON
// arrays.
type TimeSeriesCSVSource struct {
	file   *os.File
	reader *csv.Reader
	header bool
}

// NewTimeSeriesCSVSource opens filename for row-by-row flow replay.
func NewTimeSeriesCSVSource(filename string) (*TimeSeriesCSVSource, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open timeseries csv: %w", err)
	}
	r := csv.NewReader(bufio.NewReader(f))
	r.Comma = ';'
	r.FieldsPerRecord = -1
	return &TimeSeriesCSVSource{file: f, reader: r}, nil
}

// Next returns the next decoded flow.
func (s *TimeSeriesCSVSource) Next() (Flow, bool, error) {
	for {
		record, err := s.reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return Flow{}, false, nil
			}
			return Flow{}, false, fmt.Errorf("timeseries csv read error: %w", err)
		}

		if !s.header {
			s.header = true
			if len(record) > 0 && record[0] == "SRC_IP" {
				continue
			}
		}

		flow, ok := parseFlowRecord(record)
		if !ok {
			continue
		}
		return flow, true, nil
	}
}

// Close releases the underlying file handle.
func (s *TimeSeriesCSVSource) Close() error {
	return s.file.Close()
}

func parseFlowRecord(record []string) (Flow, bool) {
	if len(record) < 6 {
		return Flow{}, false
	}

	srcPort, err := strconv.ParseUint(record[1], 10, 16)
	if err != nil {
		return Flow{}, false
	}
	dstPort, err := strconv.ParseUint(record[3], 10, 16)
	if err != nil {
		return Flow{}, false
	}

	var bytes []uint64
	if err := json.Unmarshal([]byte(record[4]), &bytes); err != nil {
		return Flow{}, false
	}
	var times []float64
	if err := json.Unmarshal([]byte(record[5]), &times); err != nil {
		return Flow{}, false
	}

	return Flow{
		SrcIP:   record[0],
		SrcPort: uint16(srcPort),
		DstIP:   record[2],
		DstPort: uint16(dstPort),
		Bytes:   bytes,
		Times:   times,
	}, true
}
