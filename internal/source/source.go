// Package source adapts the three input modes of the driver (packet capture
// files, tokenized text dumps, and pre-assembled per-flow time series) into a
// single stream of decoded packet records.
package source

// Packet is a decoded record yielded by a Source: the minimal fields the flow
// assembly engine needs, independent of where it came from.
type Packet struct {
	SrcIP     string
	DstIP     string
	SrcPort   uint16
	DstPort   uint16
	Proto     string
	Length    int
	Timestamp float64
}

// Source yields decoded packets in timestamp order. Next returns ok=false
// with a nil error once the underlying input is exhausted.
type Source interface {
	Next() (Packet, bool, error)
	Close() error
}
