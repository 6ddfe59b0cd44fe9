// SPDX-License-Identifier: EPL-2.0

package ogg

import "github.com/ik5/oggopus/internal/bytequeue"

// Packet is one reassembled packet of a logical stream.
//
// Serial, Granule, BOS and EOS describe the page on which the packet was
// completed. Data is owned by the caller; the Stream keeps no reference to it.
type Packet struct {
	Data    []byte
	Serial  uint32
	Granule uint64
	BOS     bool
	EOS     bool
}

// logical is the reassembly state of one logical stream.
type logical struct {
	buf  []byte
	open bool // the last segment seen for this serial was 255
}

// pageState is the page currently being parsed or walked. It survives
// across Push calls so a partially buffered page is not parsed twice.
type pageState struct {
	hdr        PageHeader
	table      [MaxSegments]byte
	hasHeader  bool
	hasTable   bool
	payloadLen int

	walking bool
	seg     int // next segment table index
	off     int // queue offset of the next segment's payload
}

func (p *pageState) segments() []byte { return p.table[:p.hdr.Segments] }

func (p *pageState) size() int { return HeaderSize + p.hdr.Segments + p.payloadLen }

// Stream turns pushed container bytes into packets, for every logical stream
// multiplexed in the input.
//
// A Stream is not safe for concurrent use.
type Stream struct {
	q       bytequeue.Queue
	cur     pageState
	streams map[uint32]*logical
}

// NewStream returns an empty Stream.
func NewStream() *Stream {
	return &Stream{streams: make(map[uint32]*logical)}
}

// Push appends container bytes. Chunk boundaries are arbitrary.
func (s *Stream) Push(p []byte) {
	s.q.Push(p)
}

// Buffered returns the number of staged bytes not yet consumed into pages.
func (s *Stream) Buffered() int { return s.q.Len() }

// OpenStreams returns the number of logical streams with reassembly state,
// that is, serials seen on some page and not yet ended by an eos page.
func (s *Stream) OpenStreams() int { return len(s.streams) }

// NextPacket returns the next complete packet of any logical stream, in page
// order. It reports false when more input is needed.
func (s *Stream) NextPacket() (Packet, bool) {
	for {
		if !s.cur.walking {
			if !s.scan() {
				return Packet{}, false
			}
			s.beginPage()
		}
		if pkt, ok := s.nextInPage(); ok {
			return pkt, true
		}
		s.endPage()
	}
}

// scan resynchronizes on the capture pattern and reports whether a whole
// page (header, segment table and payload) is buffered at the queue head.
func (s *Stream) scan() bool {
	p := &s.cur
	for !p.hasHeader {
		if s.q.Len() < len(capturePattern) {
			return false
		}
		if !s.atCapturePattern() {
			s.q.Drain(1)
			continue
		}
		if s.q.Len() <= len(capturePattern) {
			return false
		}
		if s.q.Byte(len(capturePattern)) != version {
			s.q.Drain(len(capturePattern) + 1)
			continue
		}

		var fixed [HeaderSize]byte
		if !s.q.Peek(fixed[:], 0) {
			return false
		}
		p.hdr = parseHeader(&fixed)
		p.hasHeader = true
	}

	if !p.hasTable {
		if !s.q.Peek(p.segments(), HeaderSize) {
			return false
		}
		p.payloadLen = payloadLen(p.segments())
		p.hasTable = true
	}

	return s.q.Len() >= p.size()
}

func (s *Stream) atCapturePattern() bool {
	for i, c := range capturePattern {
		if s.q.Byte(i) != c {
			return false
		}
	}
	return true
}

// beginPage positions the walk cursors on a fully buffered page and applies
// lost-data recovery for its logical stream.
func (s *Stream) beginPage() {
	p := &s.cur
	p.walking = true
	p.seg = 0
	p.off = HeaderSize + p.hdr.Segments

	ls, ok := s.streams[p.hdr.Serial]
	if !ok {
		ls = &logical{}
		s.streams[p.hdr.Serial] = ls
	}
	if p.hdr.Segments == 0 {
		return
	}

	switch {
	case p.hdr.Continued && !ls.open:
		// Tail without head: the start of this packet was never seen.
		n, size := skipTail(p.segments())
		p.seg += n
		p.off += size
	case !p.hdr.Continued && ls.open:
		// Head without tail: the rest of the open packet was lost.
		ls.buf = ls.buf[:0]
		ls.open = false
	}
}

func (s *Stream) nextInPage() (Packet, bool) {
	p := &s.cur
	ls := s.streams[p.hdr.Serial]

	for p.seg < p.hdr.Segments {
		start := p.off
		end, size, complete := nextRun(p.segments(), p.seg)
		p.seg = end
		p.off += size

		if complete && !ls.open {
			data := make([]byte, size)
			s.q.Peek(data, start)
			return s.packet(data), true
		}

		ls.buf, _ = s.q.AppendRange(ls.buf, start, size)
		if !complete {
			ls.open = true
			continue
		}

		data := ls.buf
		ls.buf = nil
		ls.open = false
		return s.packet(data), true
	}

	return Packet{}, false
}

func (s *Stream) packet(data []byte) Packet {
	h := s.cur.hdr
	return Packet{
		Data:    data,
		Serial:  h.Serial,
		Granule: h.Granule,
		BOS:     h.BOS,
		EOS:     h.EOS,
	}
}

// endPage frees the stream state of an ended logical stream and drains the
// walked page from the staging queue.
func (s *Stream) endPage() {
	if s.cur.hdr.EOS {
		delete(s.streams, s.cur.hdr.Serial)
	}
	s.q.Drain(s.cur.size())
	s.cur = pageState{}
}
