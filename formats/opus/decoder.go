// SPDX-License-Identifier: EPL-2.0

package opus

import (
	"fmt"
	"io"

	"github.com/ik5/oggopus"
	"github.com/ik5/oggopus/audio"
)

const (
	// SampleRate is the rate Opus always decodes at.
	SampleRate = 48000

	// maxFrameSize is the longest Opus packet duration, 120 ms at 48 kHz.
	maxFrameSize = 5760

	defaultChunkSize = 4096
)

// PacketDecoder decodes one Opus packet into interleaved float32 PCM and
// returns the number of samples per channel. The *opus.Decoder of
// gopkg.in/hraban/opus.v2 satisfies it.
type PacketDecoder interface {
	DecodeFloat32(packet []byte, pcm []float32) (int, error)
}

// Decoder reads Ogg Opus and implements audio.Decoder.
type Decoder struct {
	// NewPacketDecoder creates the codec decoder once the identification
	// header has been read. It is required.
	NewPacketDecoder func(sampleRate, channels int) (PacketDecoder, error)

	// ChunkSize is the size of reads from the input. Defaults to 4096.
	ChunkSize int
}

// Source is an audio.Source of decoded Opus samples with the stream's
// header information.
type Source struct {
	r     io.Reader
	demux *oggopus.Demuxer
	chunk []byte
	eof   bool

	dec      PacketDecoder
	header   oggopus.Header
	channels int

	pcm     []float32 // decode buffer, one maximal frame
	pending []float32 // decoded samples not yet returned, aliases pcm
	skip    int       // interleaved samples still to discard for pre-skip
}

func (d Decoder) Decode(r io.Reader) (audio.Source, error) {
	return d.DecodeSource(r)
}

// DecodeSource is like Decode but returns the concrete Source.
func (d Decoder) DecodeSource(r io.Reader) (*Source, error) {
	if d.NewPacketDecoder == nil {
		return nil, ErrNoPacketDecoder
	}
	chunkSize := d.ChunkSize
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}

	s := &Source{
		r:     r,
		demux: oggopus.NewDemuxer(),
		chunk: make([]byte, chunkSize),
	}
	if err := s.readHeaders(); err != nil {
		return nil, err
	}

	s.header, _ = s.demux.Header()
	s.channels = int(s.header.Channels)
	if s.channels == 0 {
		return nil, ErrInvalidChannels
	}

	dec, err := d.NewPacketDecoder(SampleRate, s.channels)
	if err != nil {
		return nil, fmt.Errorf("creating packet decoder: %w", err)
	}
	s.dec = dec
	s.pcm = make([]float32, maxFrameSize*s.channels)
	s.skip = int(s.header.PreSkip) * s.channels

	return s, nil
}

func (s *Source) readHeaders() error {
	for {
		if _, ok := s.demux.Tags(); ok {
			return nil
		}
		if err := s.fill(); err != nil {
			if err == io.EOF {
				return ErrNoOpusStream
			}
			return err
		}
	}
}

// fill pushes one read of input into the demuxer. It returns io.EOF once
// the input is exhausted.
func (s *Source) fill() error {
	if s.eof {
		return io.EOF
	}

	n, err := s.r.Read(s.chunk)
	if n > 0 {
		if perr := s.demux.Push(s.chunk[:n]); perr != nil {
			return fmt.Errorf("demuxing: %w", perr)
		}
	}

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

// Header returns the identification header of the stream.
func (s *Source) Header() oggopus.Header { return s.header }

// Tags returns the raw comment packet of the stream.
func (s *Source) Tags() []byte {
	tags, _ := s.demux.Tags()
	return tags
}

func (s *Source) SampleRate() int { return SampleRate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) BufSize() int    { return cap(s.pcm) }

func (s *Source) Close() error {
	if c, ok := s.dec.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("%w", err)
		}
	}
	return nil
}

// ReadSamples decodes packets as needed and fills dst with interleaved
// samples. The first PreSkip samples per channel are dropped. len(dst) must
// be a multiple of the channel count.
func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if len(dst)%s.channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}

	for len(s.pending) == 0 {
		pkt, ok := s.demux.NextPacket()
		if !ok {
			if err := s.fill(); err != nil {
				return 0, err
			}
			continue
		}

		frames, err := s.dec.DecodeFloat32(pkt, s.pcm)
		if err != nil {
			return 0, fmt.Errorf("decoding packet: %w", err)
		}

		out := s.pcm[:frames*s.channels]
		if s.skip > 0 {
			k := min(s.skip, len(out))
			out = out[k:]
			s.skip -= k
		}
		s.pending = out
	}

	n := copy(dst, s.pending)
	s.pending = s.pending[n:]
	return n, nil
}
