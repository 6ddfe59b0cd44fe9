// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides fake audio sources and codec decoders for tests.
package audiotest

import (
	"errors"
	"io"
	"math"
)

// SliceSource is an audio source that plays back a fixed slice of
// interleaved samples. It implements audio.Source without importing it.
type SliceSource struct {
	sampleRate int
	channels   int
	samples    []float32
	off        int
	closed     bool
}

// NewSliceSource returns a source over samples, which must be interleaved
// for the given channel count.
func NewSliceSource(sampleRate, channels int, samples []float32) *SliceSource {
	return &SliceSource{sampleRate: sampleRate, channels: channels, samples: samples}
}

// NewSineSource returns frames frames of a sine wave, identical on every
// channel.
func NewSineSource(sampleRate, channels, frames int, frequency float64) *SliceSource {
	samples := make([]float32, frames*channels)
	for i := range frames {
		v := float32(math.Sin(2 * math.Pi * frequency * float64(i) / float64(sampleRate)))
		for ch := range channels {
			samples[i*channels+ch] = v
		}
	}
	return NewSliceSource(sampleRate, channels, samples)
}

func (s *SliceSource) SampleRate() int { return s.sampleRate }
func (s *SliceSource) Channels() int   { return s.channels }
func (s *SliceSource) BufSize() int    { return 4096 }

// Closed reports whether Close has been called.
func (s *SliceSource) Closed() bool { return s.closed }

func (s *SliceSource) Close() error {
	s.closed = true
	return nil
}

func (s *SliceSource) ReadSamples(dst []float32) (int, error) {
	if s.off >= len(s.samples) {
		return 0, io.EOF
	}

	n := copy(dst[:len(dst)/s.channels*s.channels], s.samples[s.off:])
	s.off += n

	if s.off >= len(s.samples) {
		return n, io.EOF
	}
	return n, nil
}

// ErrCorruptPacket is returned by PacketDecoder for packets starting with
// 0xFF.
var ErrCorruptPacket = errors.New("audiotest: corrupt packet")

// PacketDecoder is a fake Opus decoder. Every packet decodes to FrameSize
// frames; each sample equals the packet's first byte divided by 100.
type PacketDecoder struct {
	Channels  int
	FrameSize int

	// Packets records every packet passed to DecodeFloat32.
	Packets [][]byte
}

func (d *PacketDecoder) DecodeFloat32(packet []byte, pcm []float32) (int, error) {
	d.Packets = append(d.Packets, packet)
	if len(packet) > 0 && packet[0] == 0xFF {
		return 0, ErrCorruptPacket
	}

	var v float32
	if len(packet) > 0 {
		v = float32(packet[0]) / 100
	}

	n := d.FrameSize * d.Channels
	if n > len(pcm) {
		return 0, errors.New("audiotest: pcm buffer too small")
	}
	for i := range n {
		pcm[i] = v
	}
	return d.FrameSize, nil
}
