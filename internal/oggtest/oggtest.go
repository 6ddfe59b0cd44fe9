// SPDX-License-Identifier: EPL-2.0

// Package oggtest builds Ogg pages and Opus header packets for tests.
package oggtest

import "encoding/binary"

// Page header flags, duplicated here so tests can build pages without
// importing the package under test.
const (
	Continued = 0x01
	BOS       = 0x02
	EOS       = 0x04
)

// Page describes one page to encode.
type Page struct {
	Flags    byte
	Granule  uint64
	Serial   uint32
	Sequence uint32
	Segments []byte
	Payload  []byte
}

// Encode serializes the page with a valid CRC.
func (p Page) Encode() []byte {
	hdr := 27 + len(p.Segments)
	data := make([]byte, hdr+len(p.Payload))

	copy(data[0:4], "OggS")
	data[5] = p.Flags
	binary.LittleEndian.PutUint64(data[6:14], p.Granule)
	binary.LittleEndian.PutUint32(data[14:18], p.Serial)
	binary.LittleEndian.PutUint32(data[18:22], p.Sequence)
	data[26] = byte(len(p.Segments))
	copy(data[27:], p.Segments)
	copy(data[hdr:], p.Payload)

	binary.LittleEndian.PutUint32(data[22:26], crc(data))
	return data
}

// Lacing returns the segment table for one complete packet of n bytes.
func Lacing(n int) []byte {
	segs := make([]byte, 0, n/255+1)
	for ; n >= 255; n -= 255 {
		segs = append(segs, 255)
	}
	return append(segs, byte(n))
}

// SinglePacketPage encodes a page carrying exactly one complete packet.
func SinglePacketPage(flags byte, serial, seq uint32, packet []byte) []byte {
	return Page{
		Flags:    flags,
		Serial:   serial,
		Sequence: seq,
		Segments: Lacing(len(packet)),
		Payload:  packet,
	}.Encode()
}

// PacketsPage encodes a page carrying several complete packets.
func PacketsPage(flags byte, serial, seq uint32, packets ...[]byte) []byte {
	p := Page{Flags: flags, Serial: serial, Sequence: seq}
	for _, pkt := range packets {
		p.Segments = append(p.Segments, Lacing(len(pkt))...)
		p.Payload = append(p.Payload, pkt...)
	}
	return p.Encode()
}

// OpusHead builds a mapping-family-0 identification packet.
func OpusHead(channels byte, preSkip uint16, gain int16) []byte {
	b := make([]byte, 19)
	copy(b, "OpusHead")
	b[8] = 1
	b[9] = channels
	binary.LittleEndian.PutUint16(b[10:12], preSkip)
	binary.LittleEndian.PutUint32(b[12:16], 48000)
	binary.LittleEndian.PutUint16(b[16:18], uint16(gain))
	return b
}

// OpusTags builds a comment packet with the given vendor and comments.
func OpusTags(vendor string, comments ...string) []byte {
	b := []byte("OpusTags")
	b = binary.LittleEndian.AppendUint32(b, uint32(len(vendor)))
	b = append(b, vendor...)
	b = binary.LittleEndian.AppendUint32(b, uint32(len(comments)))
	for _, c := range comments {
		b = binary.LittleEndian.AppendUint32(b, uint32(len(c)))
		b = append(b, c...)
	}
	return b
}

var crcTable = func() (t [256]uint32) {
	const poly = 0x04C11DB7
	for i := range t {
		r := uint32(i) << 24
		for range 8 {
			if r&0x80000000 != 0 {
				r = r<<1 ^ poly
			} else {
				r <<= 1
			}
		}
		t[i] = r
	}
	return t
}()

func crc(data []byte) uint32 {
	var r uint32
	for _, b := range data {
		r = r<<8 ^ crcTable[byte(r>>24)^b]
	}
	return r
}
