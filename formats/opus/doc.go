// SPDX-License-Identifier: EPL-2.0

// Package opus decodes Ogg Opus files into an audio.Source.
//
// Container parsing is done by the root oggopus Demuxer. The Opus codec
// itself is not part of this module: callers supply a PacketDecoder, for
// example the cgo binding gopkg.in/hraban/opus.v2:
//
//	dec := opus.Decoder{
//	    NewPacketDecoder: func(rate, channels int) (opus.PacketDecoder, error) {
//	        return libopus.NewDecoder(rate, channels)
//	    },
//	}
//	src, err := dec.Decode(file)
//
// # Output Format
//
//   - Sample rate: always 48 kHz
//   - Channels: as declared by the identification header
//   - Samples: interleaved float32, the header's pre-skip already removed
//
// Output gain from the header is not applied; use Source.Header().Gain()
// to scale samples if needed.
package opus
