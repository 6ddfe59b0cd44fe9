// SPDX-License-Identifier: EPL-2.0

// Package ogg reassembles packets from an Ogg container byte stream.
//
// Input is pushed incrementally in chunks of any size; a Stream keeps only
// the bytes that have not yet been folded into a page. Pages are located by
// their capture pattern, and corrupt input is skipped one byte at a time
// until the next plausible page header.
//
// # Reading Packets
//
//	s := ogg.NewStream()
//	s.Push(chunk)
//	for {
//	    pkt, ok := s.NextPacket()
//	    if !ok {
//	        break // push more bytes
//	    }
//	    // pkt.Serial tells which logical stream pkt.Data belongs to
//	}
//
// # Multiplexed Streams
//
// Every logical stream (serial number) has its own reassembly buffer, so
// pages of unrelated streams may be interleaved freely. A packet that starts
// on one page and ends on a later page of the same serial is returned once,
// when its final segment arrives. State for a serial is released after its
// end-of-stream page.
//
// # Lost Data
//
// A continued page whose packet head was never seen has its leading fragment
// skipped. A fresh page arriving while a packet is still open discards the
// truncated packet. Page checksums and sequence numbers are not verified.
package ogg
