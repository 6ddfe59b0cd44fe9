// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis audio file decoding.
//
// Pages are parsed by container/ogg and packets are decoded by
// github.com/jfreymuth/vorbis. The first logical stream whose
// beginning-of-stream packet is a Vorbis identification header is decoded;
// other multiplexed streams, Opus included, are skipped.
//
//	decoder := vorbis.Decoder{}
//	file, _ := os.Open("audio.ogg")
//	source, err := decoder.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	buf := make([]float32, 4096)
//	n, err := source.ReadSamples(buf)
//
// # Output Format
//
//   - Sample format: float32 in range [-1.0, 1.0]
//   - Channels: as declared by the identification header
//   - Sample rate: as declared by the identification header
//
// For stereo files, samples are interleaved:
//
//	[L0, R0, L1, R1, L2, R2, ...]
//
// ReadSamples only returns whole frames, so a dst shorter than one frame
// yields audio.ErrInvalidDstSize.
package vorbis
