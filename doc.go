// SPDX-License-Identifier: EPL-2.0

// Package oggopus extracts Opus packets from an Ogg container, incrementally,
// following the RFC 7845 encapsulation.
//
// Bytes may come from a file, a socket or anything else, in chunks of any
// size. The Demuxer keeps only the bytes it has not yet folded into a page,
// recognizes the identification header ("OpusHead") and the comment header
// ("OpusTags") of the first Opus logical stream, and then hands out that
// stream's audio packets in order. Other logical streams multiplexed in the
// same container are ignored.
//
// # Quick Start
//
//	d := oggopus.NewDemuxer()
//	buf := make([]byte, 4096)
//	for {
//	    n, err := r.Read(buf)
//	    if perr := d.Push(buf[:n]); perr != nil {
//	        return perr
//	    }
//	    for {
//	        pkt, ok := d.NextPacket()
//	        if !ok {
//	            break
//	        }
//	        // decode pkt
//	    }
//	    if err == io.EOF {
//	        break
//	    }
//	}
//
// For small inputs, ReadAll does the loop and collects every packet.
//
// # Headers
//
// Header is available once the identification packet has been parsed:
//
//	h, ok := d.Header()
//	// h.Channels, h.PreSkip, h.OutputGain
//
// The first h.PreSkip decoded samples per channel must be discarded, and
// h.Gain() is the amplitude factor to apply to decoded output. Neither is
// done here: decoding is the caller's job (see formats/opus).
//
// Tags returns the comment packet verbatim; ParseComments decodes the vendor
// string and user comments when they are wanted.
//
// # Error Handling
//
// Running out of input is never an error: accessors report false and the
// caller pushes more bytes. Corrupt bytes between pages are skipped. Push
// returns ErrMalformed only when an identification packet is too short to
// hold its mandatory fields.
//
// # Subpackages
//
//   - container/ogg: page scanning and per-stream packet reassembly
//   - formats/opus: audio.Source on top of a Demuxer and an Opus decoder
//   - formats/vorbis: audio.Source for Ogg Vorbis
//   - formats/wav: WAV output
package oggopus
