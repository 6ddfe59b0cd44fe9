// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	"github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	oaudio "github.com/ik5/oggopus/audio"
	"github.com/ik5/oggopus/utils"
)

const (
	bitDepth  = 16
	pcmFormat = 1

	// chunkSize is the number of samples handed to the encoder per write.
	chunkSize = 8192
)

func newEncoder(w io.WriteSeeker, sampleRate, channels int) (*gowav.Encoder, *audio.IntBuffer, error) {
	if channels <= 0 {
		return nil, nil, ErrInvalidChannels
	}
	if sampleRate <= 0 {
		return nil, nil, ErrInvalidSampleRate
	}

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
		SourceBitDepth: bitDepth,
	}
	return gowav.NewEncoder(w, sampleRate, bitDepth, channels, pcmFormat), buf, nil
}

// WriteWAV16 writes interleaved 16-bit PCM samples as a WAV file. The RIFF
// and data chunk sizes are patched in place once all samples are written,
// which is why w must be seekable.
func WriteWAV16(w io.WriteSeeker, sampleRate, channels int, samples []int16) error {
	enc, buf, err := newEncoder(w, sampleRate, channels)
	if err != nil {
		return err
	}
	if len(samples)%channels != 0 {
		return ErrPartialFrame
	}

	// At least one write, even when empty, so the header is emitted.
	buf.Data = make([]int, 0, min(len(samples), chunkSize))
	for i := 0; ; i += chunkSize {
		end := min(i+chunkSize, len(samples))

		buf.Data = buf.Data[:0]
		for _, s := range samples[i:end] {
			buf.Data = append(buf.Data, int(s))
		}
		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("%w", err)
		}

		if end == len(samples) {
			break
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// WriteSource drains src into w as a 16-bit PCM WAV file with the source's
// sample rate and channel count. bufSize is the number of samples read per
// call and is rounded down to whole frames; zero uses src.BufSize().
//
// src is read until io.EOF but not closed.
func WriteSource(w io.WriteSeeker, src oaudio.Source, bufSize int) error {
	channels := src.Channels()
	enc, buf, err := newEncoder(w, src.SampleRate(), channels)
	if err != nil {
		return err
	}

	if bufSize <= 0 {
		bufSize = src.BufSize()
	}
	bufSize = max(bufSize/channels*channels, channels)

	samples := make([]float32, bufSize)
	buf.Data = make([]int, 0, bufSize)

	for wrote := false; ; wrote = true {
		n, rerr := src.ReadSamples(samples)
		if rerr != nil && rerr != io.EOF {
			return fmt.Errorf("reading samples: %w", rerr)
		}

		if n > 0 || !wrote {
			buf.Data = buf.Data[:0]
			for _, s := range samples[:n] {
				buf.Data = append(buf.Data, int(utils.Float32ToInt16(s)))
			}
			if err := enc.Write(buf); err != nil {
				return fmt.Errorf("%w", err)
			}
		}

		if rerr == io.EOF {
			break
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}
