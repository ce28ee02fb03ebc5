package source

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// TextDumpSource reads whitespace-tokenized packet header rows, the format
// produced by `tcpdump -r capture.pcap -N -n -q -tt`. Row layout for TCP:
// "<t> IP <src>.<port> > <dst>.<port>: tcp <length>"; for UDP:
// "<t> IP <src>.<port> > <dst>.<port>: UDP, <len1> <len2>". Rows with fewer
// than six tokens or an unrecognized protocol marker are skipped, per the
// spec's textual-dump input mode.
type TextDumpSource struct {
	file    *os.File
	scanner *bufio.Scanner
}

// NewTextDumpSource opens filename for line-by-line replay.
func NewTextDumpSource(filename string) (*TextDumpSource, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv dump: %w", err)
	}
	return &TextDumpSource{file: f, scanner: bufio.NewScanner(f)}, nil
}

// Next returns the next parseable row, skipping malformed or non-TCP/UDP rows.
func (s *TextDumpSource) Next() (Packet, bool, error) {
	for s.scanner.Scan() {
		pkt, ok := parseDumpRow(s.scanner.Text())
		if !ok {
			continue
		}
		return pkt, true, nil
	}
	if err := s.scanner.Err(); err != nil {
		return Packet{}, false, fmt.Errorf("csv dump read error: %w", err)
	}
	return Packet{}, false, nil
}

// Close releases the underlying file handle.
func (s *TextDumpSource) Close() error {
	return s.file.Close()
}

func parseDumpRow(line string) (Packet, bool) {
	row := strings.Fields(line)
	if len(row) < 6 {
		return Packet{}, false
	}

	t, err := strconv.ParseFloat(row[0], 64)
	if err != nil {
		return Packet{}, false
	}

	var length int
	var proto string
	switch row[5] {
	case "tcp":
		if len(row) < 7 {
			return Packet{}, false
		}
		length, err = strconv.Atoi(row[6])
		proto = "TCP"
	case "UDP,":
		if len(row) < 8 {
			return Packet{}, false
		}
		length, err = strconv.Atoi(row[7])
		proto = "UDP"
	default:
		return Packet{}, false
	}
	if err != nil {
		return Packet{}, false
	}

	dstIP, dstPort, ok := splitAddrToken(strings.TrimSuffix(row[4], ":"))
	if !ok {
		return Packet{}, false
	}
	srcIP, srcPort, ok := splitAddrToken(row[2])
	if !ok {
		return Packet{}, false
	}

	return Packet{
		SrcIP:     srcIP,
		DstIP:     dstIP,
		SrcPort:   srcPort,
		DstPort:   dstPort,
		Proto:     proto,
		Length:    length,
		Timestamp: t,
	}, true
}

// splitAddrToken splits an "addr.port" token on its final dot.
func splitAddrToken(tok string) (addr string, port uint16, ok bool) {
	idx := strings.LastIndex(tok, ".")
	if idx < 0 || idx == len(tok)-1 {
		return "", 0, false
	}
	p, err := strconv.ParseUint(tok[idx+1:], 10, 16)
	if err != nil {
		return "", 0, false
	}
	return tok[:idx], uint16(p), true
}
