// SPDX-License-Identifier: EPL-2.0

package ogg

import "encoding/binary"

// Page header flag bits.
const (
	// FlagContinued marks a page whose first segment continues a packet
	// begun on an earlier page of the same logical stream.
	FlagContinued = 0x01

	// FlagBOS marks the first page of a logical stream.
	FlagBOS = 0x02

	// FlagEOS marks the last page of a logical stream.
	FlagEOS = 0x04
)

const (
	// HeaderSize is the size of the fixed part of a page header, before the
	// segment table.
	HeaderSize = 27

	// MaxSegments is the largest segment table a page can carry.
	MaxSegments = 255

	// MaxPageSize is the largest possible page: fixed header, a full
	// segment table and 255 segments of 255 bytes.
	MaxPageSize = HeaderSize + MaxSegments + MaxSegments*maxLacing

	maxLacing = 255
	version   = 0
)

var capturePattern = [4]byte{'O', 'g', 'g', 'S'}

// PageHeader is the fixed 27-byte prefix of a page.
type PageHeader struct {
	Continued bool
	BOS       bool
	EOS       bool

	// Granule is the codec-defined position of the last packet completed on
	// the page. It is passed through unchanged.
	Granule uint64

	// Serial identifies the logical stream the page belongs to.
	Serial uint32

	// Sequence is the page counter within the logical stream. Gaps are not
	// detected.
	Sequence uint32

	// Checksum is the stored CRC. It is not verified.
	Checksum uint32

	// Segments is the number of entries in the segment table.
	Segments int
}

// parseHeader decodes a fixed header whose capture pattern and version have
// already been checked.
func parseHeader(b *[HeaderSize]byte) PageHeader {
	flags := b[5]
	return PageHeader{
		Continued: flags&FlagContinued != 0,
		BOS:       flags&FlagBOS != 0,
		EOS:       flags&FlagEOS != 0,
		Granule:   binary.LittleEndian.Uint64(b[6:14]),
		Serial:    binary.LittleEndian.Uint32(b[14:18]),
		Sequence:  binary.LittleEndian.Uint32(b[18:22]),
		Checksum:  binary.LittleEndian.Uint32(b[22:26]),
		Segments:  int(b[26]),
	}
}
