package sink

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pavelkim/flowts/internal/features"
)

func TestRowWriterDisabledIsNoOp(t *testing.T) {
	rw, err := NewRowWriter("")
	if err != nil {
		t.Fatalf("NewRowWriter with empty path should not error: %v", err)
	}
	if err := rw.WriteFlow(Flow{}); err != nil {
		t.Errorf("disabled RowWriter.WriteFlow should be a no-op, got: %v", err)
	}
	if err := rw.Close(); err != nil {
		t.Errorf("disabled RowWriter.Close should be a no-op, got: %v", err)
	}
}

func TestRowWriterWritesHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flows.csv")
	rw, err := NewRowWriter(path)
	if err != nil {
		t.Fatalf("NewRowWriter: %v", err)
	}

	v, ok := features.Extract([]uint64{100, 200, 150}, []float64{0, 1, 2})
	if !ok {
		t.Fatal("features.Extract returned false for a well-formed series")
	}

	flow := Flow{
		DstIP: "10.0.0.2", SrcIP: "10.0.0.1",
		DstPort: 80, SrcPort: 1111,
		Packets: 3, PacketsRev: 0,
		Bytes: 450, BytesRev: 0,
		TimeFirst: 0, TimeLast: 2,
		Directions: 1.0,
		Vector:     v,
	}
	if err := rw.WriteFlow(flow); err != nil {
		t.Fatalf("WriteFlow: %v", err)
	}
	if err := rw.WriteFlow(flow); err != nil {
		t.Fatalf("WriteFlow (second row): %v", err)
	}
	if err := rw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open written file: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read written csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 1 header row + 2 data rows, got %d rows", len(records))
	}
	if records[0][0] != "DST_IP" || records[0][1] != "SRC_IP" {
		t.Errorf("unexpected header row: %v", records[0])
	}
	if records[1][0] != "10.0.0.2" || records[1][1] != "10.0.0.1" {
		t.Errorf("unexpected data row: %v", records[1])
	}
	for _, row := range records {
		if len(row) != len(header) {
			t.Errorf("expected %d columns, got %d: %v", len(header), len(row), row)
		}
	}
}

func TestTimeSeriesWriterDisabledIsNoOp(t *testing.T) {
	tw, err := NewTimeSeriesWriter("")
	if err != nil {
		t.Fatalf("NewTimeSeriesWriter with empty path should not error: %v", err)
	}
	if err := tw.WriteSeries("10.0.0.1", 1111, "10.0.0.2", 80, []uint64{1}, []float64{0}); err != nil {
		t.Errorf("disabled TimeSeriesWriter.WriteSeries should be a no-op, got: %v", err)
	}
}

func TestTimeSeriesWriterRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "series.csv")
	tw, err := NewTimeSeriesWriter(path)
	if err != nil {
		t.Fatalf("NewTimeSeriesWriter: %v", err)
	}

	bytesIn := []uint64{60, 1400, 40}
	timesIn := []float64{0, 0.01, 0.02}
	if err := tw.WriteSeries("10.0.0.1", 1111, "10.0.0.2", 80, bytesIn, timesIn); err != nil {
		t.Fatalf("WriteSeries: %v", err)
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open written file: %v", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = ';'
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("read written csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 1 header row + 1 data row, got %d", len(records))
	}
	row := records[1]
	if row[0] != "10.0.0.1" || row[1] != "1111" || row[2] != "10.0.0.2" || row[3] != "80" {
		t.Errorf("unexpected flow identity columns: %v", row[:4])
	}

	var bytesOut []uint64
	if err := json.Unmarshal([]byte(row[4]), &bytesOut); err != nil {
		t.Fatalf("unmarshal bytes column: %v", err)
	}
	var timesOut []float64
	if err := json.Unmarshal([]byte(row[5]), &timesOut); err != nil {
		t.Fatalf("unmarshal time column: %v", err)
	}

	if len(bytesOut) != len(bytesIn) {
		t.Fatalf("bytes round-trip length mismatch: got %d want %d", len(bytesOut), len(bytesIn))
	}
	for i := range bytesIn {
		if bytesOut[i] != bytesIn[i] {
			t.Errorf("bytes[%d]: got %d want %d", i, bytesOut[i], bytesIn[i])
		}
	}
	for i := range timesIn {
		if timesOut[i] != timesIn[i] {
			t.Errorf("times[%d]: got %v want %v", i, timesOut[i], timesIn[i])
		}
	}
}
