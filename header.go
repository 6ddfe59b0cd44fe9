// SPDX-License-Identifier: EPL-2.0

package oggopus

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

const (
	idMagic      = "OpusHead"
	commentMagic = "OpusTags"

	// Offsets inside the identification packet.
	versionOffset    = 8
	channelsOffset   = 9
	preSkipOffset    = 10
	sampleRateOffset = 12
	gainOffset       = 16
	mappingOffset    = 18
)

// Header holds the decode parameters carried by the identification packet.
type Header struct {
	// Version is the encapsulation version. Only the low nibble may be set.
	Version uint8

	// Channels is the output channel count.
	Channels uint8

	// PreSkip is the number of 48 kHz samples, per channel, to discard from
	// the start of the decoded output.
	PreSkip uint16

	// InputSampleRate is the sample rate of the original input. It is
	// informational only; Opus always decodes at 48 kHz. Zero when absent.
	InputSampleRate uint32

	// OutputGain is the gain to apply to decoded output, in Q7.8 dB.
	OutputGain int16

	// MappingFamily is the channel mapping family, when the packet carries
	// it. The mapping table that may follow is not parsed.
	MappingFamily uint8

	// Serial is the logical stream this header belongs to.
	Serial uint32
}

// Gain returns OutputGain as a linear amplitude factor.
func (h Header) Gain() float64 {
	return math.Pow(10, float64(h.OutputGain)/(20*256))
}

// IsIdentification reports whether packet starts like an Opus
// identification header of a compatible encapsulation version.
func IsIdentification(packet []byte) bool {
	return len(packet) > versionOffset &&
		bytes.HasPrefix(packet, []byte(idMagic)) &&
		packet[versionOffset]&0xF0 == 0
}

// ParseHeader decodes an identification packet. It returns ErrMalformed when
// the packet carries the identification magic but is too short for the
// mandatory fields, and an error wrapping ErrMalformed when the magic or
// version does not match.
func ParseHeader(packet []byte) (Header, error) {
	if !bytes.HasPrefix(packet, []byte(idMagic)) {
		return Header{}, fmt.Errorf("missing %s magic: %w", idMagic, ErrMalformed)
	}
	if len(packet) < gainOffset+2 {
		return Header{}, ErrMalformed
	}
	if packet[versionOffset]&0xF0 != 0 {
		return Header{}, fmt.Errorf("unsupported version %d: %w", packet[versionOffset], ErrMalformed)
	}

	h := Header{
		Version:         packet[versionOffset],
		Channels:        packet[channelsOffset],
		PreSkip:         binary.LittleEndian.Uint16(packet[preSkipOffset:]),
		InputSampleRate: binary.LittleEndian.Uint32(packet[sampleRateOffset:]),
		OutputGain:      int16(binary.LittleEndian.Uint16(packet[gainOffset:])),
	}
	if len(packet) > mappingOffset {
		h.MappingFamily = packet[mappingOffset]
	}
	return h, nil
}
