// SPDX-License-Identifier: EPL-2.0

package oggopus

import (
	"fmt"
	"io"
)

// File is the demultiplexed content of a whole Ogg Opus input.
type File struct {
	Header  Header
	Tags    []byte
	Packets [][]byte
}

// ReadAll is a convenience function that reads r to the end, feeding a
// Demuxer in chunks of chunkSize bytes, and collects every audio packet of
// the selected Opus stream.
//
// Memory use is bounded by one chunk plus the collected packets; use a
// Demuxer directly to process packets as they arrive.
//
// It returns ErrNoIdentification when r ends before an identification
// header was seen. A stream that ends after the identification header but
// before the comment header yields a File with nil Tags and no packets.
func ReadAll(r io.Reader, chunkSize int) (*File, error) {
	if chunkSize <= 0 {
		chunkSize = 4096
	}

	d := NewDemuxer()
	f := &File{}
	buf := make([]byte, chunkSize)

	for {
		n, err := r.Read(buf)
		if n > 0 {
			if perr := d.Push(buf[:n]); perr != nil {
				return nil, fmt.Errorf("demuxing: %w", perr)
			}
			for {
				pkt, ok := d.NextPacket()
				if !ok {
					break
				}
				f.Packets = append(f.Packets, pkt)
			}
		}

		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
	}

	h, ok := d.Header()
	if !ok {
		return nil, ErrNoIdentification
	}
	f.Header = h
	f.Tags, _ = d.Tags()

	return f, nil
}
