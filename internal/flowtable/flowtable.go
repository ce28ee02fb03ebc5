// Package flowtable implements the bidirectional flow assembly engine of
// spec.md §4.1: packets are canonicalized into flow keys, buffered per
// flow, and flushed into feature vectors when an active or inactive
// timeout predicate fires. Grounded on netflow.Exporter's
// map[string]*Flow + per-packet timeout check, generalized from a
// unidirectional 5-tuple key to the two-step address/port
// canonicalization of spec.md §3, and with the export-side goroutine and
// mutex dropped — the engine is single-threaded per spec.md §5.
package flowtable

import (
	"fmt"

	"github.com/pavelkim/flowts/internal/features"
	"github.com/pavelkim/flowts/internal/source"
)

// state is the mutable per-conversation buffer kept under
// flows[dev][ports] in the source: ordered (size, time) sequences plus
// the per-emission-window direction counters that reset on every
// emission.
type state struct {
	sizes []uint64
	times []float64
	first bool

	npackets, npacketsRev  uint64
	nbytes, nbytesRev      uint64
	direction1, direction0 uint64

	srcIP, dstIP     string
	srcPort, dstPort uint16
}

// EmittedFlow is one flushed flow: the direction-accounted counters plus
// the feature vector extracted from its (possibly head-stripped) buffer.
type EmittedFlow struct {
	DstIP, SrcIP        string
	DstPort, SrcPort    uint16
	Packets, PacketsRev uint64
	Bytes, BytesRev     uint64
	TimeFirst, TimeLast float64
	Directions          float64
	Vector              *features.Vector

	// Sizes and Times are the (head-stripped) packet-size and arrival-time
	// sequence the vector was extracted from, carried for callers that
	// want the intermediate time series rather than the feature vector
	// (spec.md §6 --file output).
	Sizes []uint64
	Times []float64
}

// Table is the flow table: a map from canonical address pair to a map
// from canonical port pair to flow state, mirroring the source's nested
// flows[dev][ports] dict.
type Table struct {
	flows map[string]map[string]*state

	activeTimeout, inactiveTimeout float64
	headStrip, minPackets         int
	skipExtraction                bool
	featuresConfig                features.Config
}

// New constructs a Table with the given active/inactive timeouts
// (seconds), head-strip count (-H), minimum-packets filter (-I), and
// feature-extraction tunables (byte-size bias, aggregation bucket,
// spectral grid).
func New(activeTimeout, inactiveTimeout float64, headStrip, minPackets int, featuresConfig features.Config) *Table {
	return &Table{
		flows:           make(map[string]map[string]*state),
		activeTimeout:   activeTimeout,
		inactiveTimeout: inactiveTimeout,
		headStrip:       headStrip,
		minPackets:      minPackets,
		featuresConfig:  featuresConfig,
	}
}

// SetSkipExtraction controls whether flush() runs feature extraction.
// When the only requested output is the intermediate time series
// (spec.md §6 --file without --flows), extraction is pure overhead and is
// skipped entirely.
func (t *Table) SetSkipExtraction(skip bool) {
	t.skipExtraction = skip
}

// Ingest implements spec.md §4.1's ingest(packet): locate or create the
// flow state via the canonical key, decide whether to emit-and-reset
// (checked before append), then append the current packet.
func (t *Table) Ingest(pkt source.Packet) (*EmittedFlow, bool) {
	dev, ports, forward := canonicalKey(pkt.SrcIP, pkt.SrcPort, pkt.DstIP, pkt.DstPort, t.flows)

	portsMap, devExists := t.flows[dev]
	if !devExists {
		t.flows[dev] = map[string]*state{ports: newState(pkt)}
		return nil, false
	}
	st, portsExist := portsMap[ports]
	if !portsExist {
		portsMap[ports] = newState(pkt)
		return nil, false
	}

	var emitted *EmittedFlow
	ok := false
	if len(st.times) > 0 && t.shouldEmit(st, pkt.Timestamp) {
		emitted, ok = t.flush(st)
	}

	t.append(st, pkt, forward)
	return emitted, ok
}

func (t *Table) shouldEmit(st *state, now float64) bool {
	return st.times[0]+t.activeTimeout < now || now-st.times[len(st.times)-1] >= t.inactiveTimeout
}

// flush extracts a feature vector from the current buffer — applying the
// head-strip on the flow's first emission only, and suppressing the
// write when the buffer has too few packets (-I) — then unconditionally
// clears the buffer and per-emission counters. This diverges from the
// source's literal behavior, where both the -I filter and an empty
// post-head-strip buffer `continue` the outer packet loop and leave the
// counters uncleared; see DESIGN.md for why the corrected, spec.md §4.1
// behavior (clear regardless of whether a write happens) is implemented
// instead.
func (t *Table) flush(st *state) (*EmittedFlow, bool) {
	strip := 0
	if st.first {
		strip = t.headStrip
	}

	var emitted *EmittedFlow
	ok := false
	if strip < len(st.sizes) && len(st.sizes) > t.minPackets {
		sizes := st.sizes[strip:]
		times := st.times[strip:]

		var v *features.Vector
		extracted := true
		if !t.skipExtraction {
			v, extracted = features.ExtractWithConfig(sizes, times, t.featuresConfig)
		}

		if extracted {
			var directions float64
			if st.direction1+st.direction0 != 0 {
				directions = float64(st.direction1) / float64(st.direction1+st.direction0)
			}
			emitted = &EmittedFlow{
				DstIP: st.dstIP, SrcIP: st.srcIP,
				DstPort: st.dstPort, SrcPort: st.srcPort,
				Packets: st.npackets, PacketsRev: st.npacketsRev,
				Bytes: st.nbytes, BytesRev: st.nbytesRev,
				TimeFirst: times[0], TimeLast: times[len(times)-1],
				Directions: directions,
				Vector:     v,
				Sizes:      sizes,
				Times:      times,
			}
			ok = true
		}
	}

	st.sizes = nil
	st.times = nil
	st.first = false
	st.npackets, st.npacketsRev = 0, 0
	st.nbytes, st.nbytesRev = 0, 0
	st.direction1, st.direction0 = 0, 0

	return emitted, ok
}

func (t *Table) append(st *state, pkt source.Packet, forward bool) {
	st.sizes = append(st.sizes, uint64(pkt.Length))
	st.times = append(st.times, pkt.Timestamp)
	if forward {
		st.npackets++
		st.nbytes += uint64(pkt.Length)
		st.direction1++
	} else {
		st.npacketsRev++
		st.nbytesRev += uint64(pkt.Length)
		st.direction0++
	}
}

// Drain implements spec.md §4.1's drain(): the terminal pass that emits
// every non-empty remaining buffer once, subject to the same head-strip
// and -I filters as a timeout-triggered emission.
func (t *Table) Drain() []*EmittedFlow {
	var out []*EmittedFlow
	for _, portsMap := range t.flows {
		for _, st := range portsMap {
			if len(st.sizes) == 0 {
				continue
			}
			if emitted, ok := t.flush(st); ok {
				out = append(out, emitted)
			}
		}
	}
	return out
}

func newState(pkt source.Packet) *state {
	// A brand-new ports entry always records its sole packet as forward,
	// regardless of the canonical direction actually computed for it —
	// a quirk of create_new_flow_ts preserved literally (see DESIGN.md).
	return &state{
		sizes: []uint64{uint64(pkt.Length)},
		times: []float64{pkt.Timestamp},
		first: true,

		npackets:   1,
		nbytes:     uint64(pkt.Length),
		direction1: 1,

		srcIP: pkt.SrcIP, dstIP: pkt.DstIP,
		srcPort: pkt.SrcPort, dstPort: pkt.DstPort,
	}
}

// canonicalKey implements spec.md §3's two-step canonicalization,
// grounded on get_dev_and_ports_from_packets: the address pair is
// resolved first (reusing a reversed entry if one exists), then the port
// pair is matched in either order within the chosen address-pair entry.
// Returns whether the packet runs in the flow's canonical (forward)
// direction.
func canonicalKey(srcIP string, srcPort uint16, dstIP string, dstPort uint16, flows map[string]map[string]*state) (dev, ports string, forward bool) {
	fwdDev := srcIP + "-" + dstIP
	revDev := dstIP + "-" + srcIP
	fwdPorts := fmt.Sprintf("%d-%d", srcPort, dstPort)
	revPorts := fmt.Sprintf("%d-%d", dstPort, srcPort)

	resolvePorts := func(dev string) string {
		if _, ok := flows[dev][fwdPorts]; ok {
			return fwdPorts
		}
		if _, ok := flows[dev][revPorts]; ok {
			return revPorts
		}
		return fwdPorts
	}

	if _, ok := flows[fwdDev]; ok {
		return fwdDev, resolvePorts(fwdDev), true
	}
	if _, ok := flows[revDev]; ok {
		return revDev, resolvePorts(revDev), false
	}
	return fwdDev, fwdPorts, true
}
