// SPDX-License-Identifier: EPL-2.0

// Package wav writes decoded audio as 16-bit PCM WAV files.
//
// Encoding is done by github.com/go-audio/wav. Its encoder patches the RIFF
// and data chunk sizes after the samples are written, so every writer in
// this package needs an io.WriteSeeker such as an *os.File.
//
// # Writing Samples
//
//	samples := []int16{100, -100, 200, -200}
//	file, _ := os.Create("output.wav")
//	err := wav.WriteWAV16(file, 8000, 2, samples)
//
// # Writing a Source
//
// WriteSource drains any audio.Source, converting float32 samples to int16
// with clamping:
//
//	src, _ := opus.Decoder{NewPacketDecoder: newLibopus}.Decode(in)
//	out, _ := os.Create("output.wav")
//	err := wav.WriteSource(out, src, 4096)
//
// # Error Handling
//
//   - ErrInvalidChannels: channel count is zero or negative
//   - ErrInvalidSampleRate: sample rate is zero or negative
//   - ErrPartialFrame: the sample slice does not hold whole frames
package wav
