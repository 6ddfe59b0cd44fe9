// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ik5/oggopus/audio"
	"github.com/ik5/oggopus/container/ogg"
	"github.com/jfreymuth/vorbis"
)

// idMagic starts the Vorbis identification header.
const idMagic = "\x01vorbis"

const defaultChunkSize = 4096

// packetDecoder is an interface for vorbis.Decoder to allow testing
type packetDecoder interface {
	ReadHeader([]byte) error
	HeadersRead() bool
	SampleRate() int
	Channels() int
	Decode([]byte) ([]float32, error)
}

type source struct {
	r      io.Reader
	stream *ogg.Stream
	chunk  []byte
	eof    bool

	selected bool
	serial   uint32

	dec        packetDecoder
	sampleRate int
	channels   int
	pending    []float32 // decoded samples not yet returned
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return len(s.chunk) }

// fill pushes one read of input into the Ogg stream. It returns io.EOF once
// the input is exhausted.
func (s *source) fill() error {
	if s.eof {
		return io.EOF
	}

	n, err := s.r.Read(s.chunk)
	s.stream.Push(s.chunk[:n])

	if err == io.EOF {
		s.eof = true
		if n > 0 {
			return nil
		}
		return io.EOF
	}
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// nextPacket returns the next packet of the selected logical stream. The
// first stream whose bos packet is a Vorbis identification header is
// selected; packets of every other stream are skipped.
func (s *source) nextPacket() ([]byte, error) {
	for {
		pkt, ok := s.stream.NextPacket()
		if !ok {
			if err := s.fill(); err != nil {
				return nil, err
			}
			continue
		}

		if !s.selected {
			if !pkt.BOS || !bytes.HasPrefix(pkt.Data, []byte(idMagic)) {
				continue
			}
			s.selected = true
			s.serial = pkt.Serial
		}
		if pkt.Serial == s.serial {
			return pkt.Data, nil
		}
	}
}

func (s *source) readHeaders() error {
	for !s.dec.HeadersRead() {
		pkt, err := s.nextPacket()
		if err == io.EOF {
			return ErrNoVorbisStream
		}
		if err != nil {
			return err
		}
		if err := s.dec.ReadHeader(pkt); err != nil {
			return fmt.Errorf("reading Vorbis header: %w", err)
		}
	}

	s.sampleRate = s.dec.SampleRate()
	s.channels = s.dec.Channels()
	return nil
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	// Only whole frames are returned.
	want := len(dst) / s.channels * s.channels
	if want == 0 {
		return 0, audio.ErrInvalidDstSize
	}

	for len(s.pending) == 0 {
		pkt, err := s.nextPacket()
		if err != nil {
			return 0, err
		}

		samples, err := s.dec.Decode(pkt)
		if err != nil {
			return 0, fmt.Errorf("decoding packet: %w", err)
		}
		s.pending = samples
	}

	n := copy(dst[:want], s.pending)
	s.pending = s.pending[n:]
	return n, nil
}

// Decoder reads Ogg Vorbis and implements audio.Decoder.
type Decoder struct {
	// ChunkSize is the size of reads from the input. Defaults to 4096.
	ChunkSize int
}

func (d Decoder) Decode(r io.Reader) (audio.Source, error) {
	return d.decode(r, &vorbis.Decoder{})
}

func (d Decoder) decode(r io.Reader, dec packetDecoder) (*source, error) {
	chunkSize := d.ChunkSize
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}

	s := &source{
		r:      r,
		stream: ogg.NewStream(),
		chunk:  make([]byte, chunkSize),
		dec:    dec,
	}
	if err := s.readHeaders(); err != nil {
		return nil, err
	}

	return s, nil
}
