// SPDX-License-Identifier: EPL-2.0

// Package audio defines the PCM interfaces shared by the format decoders.
//
//   - Source: a stream of interleaved float32 samples
//   - Decoder: builds a Source from an io.Reader
//   - Registry: decoder lookup by format key
//
// # Source Interface
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Samples are float32 in [-1.0, 1.0], interleaved by channel:
//
//	[L0, R0, L1, R1, ...]
//
// # Format Registry
//
//	registry := audio.NewRegistry()
//	registry.Register("opus", opus.Decoder{NewPacketDecoder: newLibopus})
//	registry.Register("ogg", vorbis.Decoder{})
//	decoder, ok := registry.Get(filepath.Ext(path))
//
// # Error Handling
//
// ReadSamples returns io.EOF when no more data is available:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    // use buf[:n]
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
package audio
