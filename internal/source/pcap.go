package source

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/gopacket/pcapgo"

	"github.com/pavelkim/flowts/internal/decoder"
)

// PCAPSource reads packets from a capture file. Only TCP packets are kept;
// everything else is silently skipped, matching the spec's packet-capture
// input mode. Layer extraction is delegated to decoder.Decoder (a gopacket
// layer-walk originally built for encapsulated TZSP payloads, which applies
// unchanged to raw Ethernet frames); file reading uses the same pcapgo
// package the teacher used for writing captures, mirrored here for reads.
type PCAPSource struct {
	file    *os.File
	reader  *pcapgo.Reader
	decoder *decoder.Decoder
}

// NewPCAPSource opens filename for offline replay.
func NewPCAPSource(filename string) (*PCAPSource, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open pcap file: %w", err)
	}

	r, err := pcapgo.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to read pcap header: %w", err)
	}

	return &PCAPSource{file: f, reader: r, decoder: decoder.NewDecoder()}, nil
}

// Next returns the next TCP packet, skipping everything else.
func (s *PCAPSource) Next() (Packet, bool, error) {
	for {
		data, ci, err := s.reader.ReadPacketData()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return Packet{}, false, nil
			}
			return Packet{}, false, fmt.Errorf("pcap read error: %w", err)
		}

		info, err := s.decoder.Decode(data, ci.Timestamp.UnixNano())
		if err != nil || info.Protocol != "TCP" || info.SrcIP == "" || info.DstIP == "" {
			continue
		}

		return Packet{
			SrcIP:     info.SrcIP,
			DstIP:     info.DstIP,
			SrcPort:   info.SrcPort,
			DstPort:   info.DstPort,
			Proto:     info.Protocol,
			Length:    ci.Length,
			Timestamp: float64(ci.Timestamp.UnixNano()) / 1e9,
		}, true, nil
	}
}

// Close releases the underlying file handle.
func (s *PCAPSource) Close() error {
	return s.file.Close()
}
