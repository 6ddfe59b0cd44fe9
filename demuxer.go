// SPDX-License-Identifier: EPL-2.0

package oggopus

import (
	"bytes"
	"slices"

	"github.com/ik5/oggopus/container/ogg"
)

// State is the position of a Demuxer in the Opus header sequence.
type State int

const (
	AwaitingHeader State = iota
	AwaitingTags
	Streaming
)

func (s State) String() string {
	switch s {
	case AwaitingHeader:
		return "awaiting header"
	case AwaitingTags:
		return "awaiting tags"
	case Streaming:
		return "streaming"
	default:
		return "unknown"
	}
}

// Demuxer extracts one Opus logical stream from pushed Ogg bytes.
//
// The first logical stream whose beginning-of-stream page carries a
// compatible identification header is selected; every other logical stream
// in the container is read past and ignored. A Demuxer is not safe for
// concurrent use.
type Demuxer struct {
	stream *ogg.Stream
	state  State
	header Header
	tags   []byte
}

// NewDemuxer returns a Demuxer with no buffered input.
func NewDemuxer() *Demuxer {
	return &Demuxer{stream: ogg.NewStream()}
}

// Push consumes a chunk of container data. Chunks may be split anywhere,
// down to a single byte.
//
// Until the identification and comment headers have been found, Push parses
// every complete page it can. The only error is ErrMalformed, returned when
// an identification packet is too short for its mandatory fields; the
// offending packet is dropped and a later Push (even with no data) resumes
// parsing after it.
func (d *Demuxer) Push(p []byte) error {
	d.stream.Push(p)

	for d.state != Streaming {
		pkt, ok := d.stream.NextPacket()
		if !ok {
			return nil
		}
		if err := d.handleHeaderPacket(pkt); err != nil {
			return err
		}
	}
	return nil
}

func (d *Demuxer) handleHeaderPacket(pkt ogg.Packet) error {
	switch d.state {
	case AwaitingHeader:
		if !pkt.BOS || !bytes.HasPrefix(pkt.Data, []byte(idMagic)) {
			return nil
		}
		if len(pkt.Data) <= versionOffset {
			return ErrMalformed
		}
		if pkt.Data[versionOffset]&0xF0 != 0 {
			return nil
		}

		h, err := ParseHeader(pkt.Data)
		if err != nil {
			return err
		}
		h.Serial = pkt.Serial
		d.header = h
		d.state = AwaitingTags

	case AwaitingTags:
		if pkt.Serial != d.header.Serial {
			return nil
		}
		// A packet on the selected serial that is not a comment header is
		// dropped without leaving this state.
		if bytes.HasPrefix(pkt.Data, []byte(commentMagic)) {
			d.tags = pkt.Data
			d.state = Streaming
		}
	}
	return nil
}

// State returns the current parsing state.
func (d *Demuxer) State() State { return d.state }

// Header returns the identification header once it has been found.
func (d *Demuxer) Header() (Header, bool) {
	if d.state == AwaitingHeader {
		return Header{}, false
	}
	return d.header, true
}

// Tags returns a copy of the raw comment packet, magic included, once it has
// been found. It is never available before Header.
func (d *Demuxer) Tags() ([]byte, bool) {
	if d.state != Streaming {
		return nil, false
	}
	return slices.Clone(d.tags), true
}

// NextPacket returns the next audio packet of the selected stream, or false
// when none is buffered yet. Nothing is returned before both headers are
// available.
func (d *Demuxer) NextPacket() ([]byte, bool) {
	pkt, ok := d.ReadPacket()
	return pkt.Data, ok
}

// ReadPacket is like NextPacket but also reports the page metadata of the
// packet, such as its granule position and end-of-stream flag.
func (d *Demuxer) ReadPacket() (ogg.Packet, bool) {
	if d.state != Streaming {
		return ogg.Packet{}, false
	}
	for {
		pkt, ok := d.stream.NextPacket()
		if !ok {
			return ogg.Packet{}, false
		}
		if pkt.Serial == d.header.Serial {
			return pkt, true
		}
	}
}

// Buffered returns the number of pushed bytes not yet consumed into pages.
func (d *Demuxer) Buffered() int { return d.stream.Buffered() }
