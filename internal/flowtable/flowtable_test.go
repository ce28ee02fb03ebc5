package flowtable

import (
	"testing"

	"github.com/pavelkim/flowts/internal/features"
	"github.com/pavelkim/flowts/internal/source"
)

func pkt(srcIP string, srcPort uint16, dstIP string, dstPort uint16, length int, ts float64) source.Packet {
	return source.Packet{
		SrcIP: srcIP, SrcPort: srcPort,
		DstIP: dstIP, DstPort: dstPort,
		Proto: "TCP", Length: length, Timestamp: ts,
	}
}

func TestIngestFirstPacketNeverEmits(t *testing.T) {
	table := New(300, 65, 0, 0, features.DefaultConfig())
	emitted, wrote := table.Ingest(pkt("10.0.0.1", 1111, "10.0.0.2", 80, 60, 0.0))
	if wrote || emitted != nil {
		t.Fatal("the first packet of a new flow must never trigger an emission")
	}
}

func TestActiveTimeoutEmitsAndResets(t *testing.T) {
	table := New(300, 65, 0, 0, features.DefaultConfig())
	table.Ingest(pkt("10.0.0.1", 1111, "10.0.0.2", 80, 60, 0.0))

	// Second packet lands inside both timeouts: no emission yet.
	if _, wrote := table.Ingest(pkt("10.0.0.2", 80, "10.0.0.1", 1111, 60, 10.0)); wrote {
		t.Fatal("unexpected emission before any timeout elapsed")
	}

	// Third packet crosses the 300s active timeout measured from the
	// buffer's first packet (t=0).
	emitted, wrote := table.Ingest(pkt("10.0.0.1", 1111, "10.0.0.2", 80, 60, 301.0))
	if !wrote || emitted == nil {
		t.Fatal("expected an emission once the active timeout elapsed")
	}
	if emitted.Packets != 1 || emitted.PacketsRev != 1 {
		t.Fatalf("expected 1 forward + 1 reverse packet in the flushed buffer, got %d/%d", emitted.Packets, emitted.PacketsRev)
	}

	// The flush must have reset the buffer and counters: a fourth packet
	// right on top of the third should not immediately re-emit.
	if _, wrote := table.Ingest(pkt("10.0.0.1", 1111, "10.0.0.2", 80, 60, 301.5)); wrote {
		t.Fatal("buffer/counters were not reset by the previous flush")
	}
}

func TestInactiveTimeoutEmitsOnGap(t *testing.T) {
	table := New(300, 65, 0, 0, features.DefaultConfig())
	table.Ingest(pkt("10.0.0.1", 1111, "10.0.0.2", 80, 60, 0))
	table.Ingest(pkt("10.0.0.1", 1111, "10.0.0.2", 80, 60, 64))

	emitted, wrote := table.Ingest(pkt("10.0.0.1", 1111, "10.0.0.2", 80, 60, 130))
	if !wrote || emitted == nil {
		t.Fatal("expected an emission once the inactive gap reached the threshold")
	}
	if emitted.Packets != 2 {
		t.Fatalf("expected the flushed buffer to hold the two packets before the gap, got %d", emitted.Packets)
	}
	if emitted.TimeFirst != 0 || emitted.TimeLast != 64 {
		t.Fatalf("unexpected flushed time bounds: first=%v last=%v", emitted.TimeFirst, emitted.TimeLast)
	}
}

func TestHeadStripAppliesOnlyToFirstEmission(t *testing.T) {
	table := New(300, 65, 2, 1, features.DefaultConfig())

	for i := 0; i < 5; i++ {
		table.Ingest(pkt("10.0.0.1", 1111, "10.0.0.2", 80, 60, float64(i)))
	}
	emitted, wrote := table.Ingest(pkt("10.0.0.1", 1111, "10.0.0.2", 80, 60, 400))
	if !wrote || emitted == nil {
		t.Fatal("expected the active timeout to trigger the first emission")
	}
	if len(emitted.Sizes) != 3 {
		t.Fatalf("expected the first emission to strip 2 leading packets out of 5, got %d remaining", len(emitted.Sizes))
	}

	for i := 0; i < 2; i++ {
		table.Ingest(pkt("10.0.0.1", 1111, "10.0.0.2", 80, 60, 400+float64(i)))
	}
	emitted2, wrote2 := table.Ingest(pkt("10.0.0.1", 1111, "10.0.0.2", 80, 60, 800))
	if !wrote2 || emitted2 == nil {
		t.Fatal("expected the second emission to fire")
	}
	// The t=400 packet that triggered the first emission opened the new
	// buffer, so it holds 3 packets; none may be stripped this time.
	if len(emitted2.Sizes) != 3 {
		t.Fatalf("head-strip must not reapply on a flow's second emission, got %d remaining", len(emitted2.Sizes))
	}
}

func TestMinPacketsSuppressesEmission(t *testing.T) {
	table := New(300, 65, 0, 2, features.DefaultConfig())

	table.Ingest(pkt("10.0.0.1", 1111, "10.0.0.2", 80, 60, 0))
	table.Ingest(pkt("10.0.0.1", 1111, "10.0.0.2", 80, 60, 1))

	// Buffer holds exactly 2 packets, the -I floor, so the flush must be
	// suppressed even though the active timeout fires.
	emitted, wrote := table.Ingest(pkt("10.0.0.1", 1111, "10.0.0.2", 80, 60, 400))
	if wrote || emitted != nil {
		t.Fatal("expected the emission to be suppressed by the minimum-packets filter")
	}
}

func TestCanonicalKeyReusesReversedFlow(t *testing.T) {
	table := New(300, 65, 0, 0, features.DefaultConfig())

	table.Ingest(pkt("10.0.0.1", 1111, "10.0.0.2", 80, 60, 0))
	// Reversed address and port order should land in the same flow state.
	emitted, wrote := table.Ingest(pkt("10.0.0.2", 80, "10.0.0.1", 1111, 60, 301))
	if !wrote || emitted == nil {
		t.Fatal("expected the reversed packet to join the existing flow and trigger its timeout")
	}
	if len(table.flows) != 1 {
		t.Fatalf("expected a single canonical address-pair entry, got %d", len(table.flows))
	}
}

func TestDrainFlushesRemainingBuffers(t *testing.T) {
	table := New(300, 65, 0, 0, features.DefaultConfig())
	table.Ingest(pkt("10.0.0.1", 1111, "10.0.0.2", 80, 60, 0))
	table.Ingest(pkt("10.0.0.3", 2222, "10.0.0.4", 443, 60, 0))

	out := table.Drain()
	if len(out) != 2 {
		t.Fatalf("expected both outstanding flows to be drained, got %d", len(out))
	}

	if more := table.Drain(); len(more) != 0 {
		t.Fatalf("a second drain on already-flushed buffers must yield nothing, got %d", len(more))
	}
}

func TestSkipExtractionOmitsVectorKeepsSeries(t *testing.T) {
	table := New(300, 65, 0, 0, features.DefaultConfig())
	table.SetSkipExtraction(true)

	table.Ingest(pkt("10.0.0.1", 1111, "10.0.0.2", 80, 60, 0))
	table.Ingest(pkt("10.0.0.1", 1111, "10.0.0.2", 80, 60, 1))

	out := table.Drain()
	if len(out) != 1 {
		t.Fatalf("expected one drained flow, got %d", len(out))
	}
	if out[0].Vector != nil {
		t.Error("expected extraction to be skipped, but a vector was produced")
	}
	if len(out[0].Sizes) != 2 || len(out[0].Times) != 2 {
		t.Errorf("expected the raw series to survive skip-extraction, got sizes=%v times=%v", out[0].Sizes, out[0].Times)
	}
}
