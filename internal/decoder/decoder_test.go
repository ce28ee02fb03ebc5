package decoder

import (
	"net"
	"testing"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

func buildTCPFrame(t *testing.T, srcPort, dstPort layers.TCPPort, payload []byte) []byte {
	t.Helper()

	eth := &layers.Ethernet{
		SrcMAC:       net.HardwareAddr{0x00, 0x11, 0x22, 0x33, 0x44, 0x55},
		DstMAC:       net.HardwareAddr{0x66, 0x77, 0x88, 0x99, 0xaa, 0xbb},
		EthernetType: layers.EthernetTypeIPv4,
	}
	ip := &layers.IPv4{
		Version:  4,
		IHL:      5,
		TTL:      64,
		Protocol: layers.IPProtocolTCP,
		SrcIP:    net.IPv4(10, 0, 0, 1),
		DstIP:    net.IPv4(10, 0, 0, 2),
	}
	tcp := &layers.TCP{
		SrcPort: srcPort,
		DstPort: dstPort,
		SYN:     true,
		ACK:     true,
	}
	if err := tcp.SetNetworkLayerForChecksum(ip); err != nil {
		t.Fatalf("SetNetworkLayerForChecksum: %v", err)
	}

	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{ComputeChecksums: true, FixLengths: true}
	if err := gopacket.SerializeLayers(buf, opts, eth, ip, tcp, gopacket.Payload(payload)); err != nil {
		t.Fatalf("SerializeLayers: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeExtractsTCPFields(t *testing.T) {
	data := buildTCPFrame(t, 1111, 80, []byte("hello"))

	d := NewDecoder()
	info, err := d.Decode(data, 1234567890)
	if err != nil {
		t.Fatalf("Decode returned an error: %v", err)
	}

	if info.Protocol != "TCP" {
		t.Errorf("expected protocol TCP, got %q", info.Protocol)
	}
	if info.SrcIP != "10.0.0.1" || info.DstIP != "10.0.0.2" {
		t.Errorf("unexpected addresses: src=%q dst=%q", info.SrcIP, info.DstIP)
	}
	if info.SrcPort != 1111 || info.DstPort != 80 {
		t.Errorf("unexpected ports: src=%d dst=%d", info.SrcPort, info.DstPort)
	}
	if info.PayloadLen != len("hello") {
		t.Errorf("expected payload length %d, got %d", len("hello"), info.PayloadLen)
	}
	if info.TCPFlags != "SA" {
		t.Errorf("expected SYN+ACK flags \"SA\", got %q", info.TCPFlags)
	}
	if info.Timestamp != 1234567890 {
		t.Errorf("expected timestamp to pass through unchanged, got %d", info.Timestamp)
	}
}

func TestDecodeNonIPFrameYieldsNoAddresses(t *testing.T) {
	eth := &layers.Ethernet{
		SrcMAC:       net.HardwareAddr{0x00, 0x11, 0x22, 0x33, 0x44, 0x55},
		DstMAC:       net.HardwareAddr{0x66, 0x77, 0x88, 0x99, 0xaa, 0xbb},
		EthernetType: layers.EthernetTypeARP,
	}
	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true}
	if err := gopacket.SerializeLayers(buf, opts, eth, gopacket.Payload([]byte{0, 0, 0, 0})); err != nil {
		t.Fatalf("SerializeLayers: %v", err)
	}

	d := NewDecoder()
	info, err := d.Decode(buf.Bytes(), 0)
	if err != nil {
		t.Fatalf("Decode returned an error: %v", err)
	}
	if info.SrcIP != "" || info.DstIP != "" {
		t.Errorf("expected no addresses decoded from a non-IP frame, got src=%q dst=%q", info.SrcIP, info.DstIP)
	}
}
