// SPDX-License-Identifier: EPL-2.0

package oggopus

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"testing/iotest"

	"github.com/ik5/oggopus/internal/oggtest"
)

func opusFile(packets ...[]byte) []byte {
	var in []byte
	in = append(in, oggtest.SinglePacketPage(oggtest.BOS, 9, 0, oggtest.OpusHead(2, 312, 0))...)
	in = append(in, oggtest.SinglePacketPage(0, 9, 1, oggtest.OpusTags("test"))...)
	for i, p := range packets {
		flags := byte(0)
		if i == len(packets)-1 {
			flags = oggtest.EOS
		}
		in = append(in, oggtest.SinglePacketPage(flags, 9, uint32(2+i), p)...)
	}
	return in
}

func TestReadAll_Basic(t *testing.T) {
	t.Parallel()

	in := opusFile([]byte("one"), []byte("two"), bytes.Repeat([]byte{3}, 1000))

	f, err := ReadAll(bytes.NewReader(in), 4096)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	if f.Header.Channels != 2 || f.Header.PreSkip != 312 || f.Header.Serial != 9 {
		t.Errorf("Header = %+v", f.Header)
	}
	if !bytes.HasPrefix(f.Tags, []byte("OpusTags")) {
		t.Errorf("Tags = %q, want OpusTags prefix", f.Tags)
	}
	if len(f.Packets) != 3 {
		t.Fatalf("len(Packets) = %d, want 3", len(f.Packets))
	}
	if len(f.Packets[2]) != 1000 {
		t.Errorf("len(Packets[2]) = %d, want 1000", len(f.Packets[2]))
	}
}

func TestReadAll_ChunkSizes(t *testing.T) {
	t.Parallel()

	in := opusFile([]byte("a"), []byte("bb"), []byte("ccc"))

	tests := []struct {
		name      string
		chunkSize int
		reader    func([]byte) io.Reader
	}{
		{"default chunk", 0, func(b []byte) io.Reader { return bytes.NewReader(b) }},
		{"one byte reads", 4096, func(b []byte) io.Reader { return iotest.OneByteReader(bytes.NewReader(b)) }},
		{"half reads", 64, func(b []byte) io.Reader { return iotest.HalfReader(bytes.NewReader(b)) }},
		{"eof with data", 4096, func(b []byte) io.Reader { return iotest.DataErrReader(bytes.NewReader(b)) }},
		{"tiny chunk", 3, func(b []byte) io.Reader { return bytes.NewReader(b) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f, err := ReadAll(tt.reader(in), tt.chunkSize)
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}
			if len(f.Packets) != 3 || string(f.Packets[2]) != "ccc" {
				t.Errorf("Packets = %q", f.Packets)
			}
		})
	}
}

func TestReadAll_NoOpus(t *testing.T) {
	t.Parallel()

	_, err := ReadAll(bytes.NewReader([]byte("this is not an ogg file")), 16)
	if !errors.Is(err, ErrNoIdentification) {
		t.Errorf("ReadAll() error = %v, want ErrNoIdentification", err)
	}
}

func TestReadAll_HeaderWithoutTags(t *testing.T) {
	t.Parallel()

	in := oggtest.SinglePacketPage(oggtest.BOS, 1, 0, oggtest.OpusHead(1, 0, 0))

	f, err := ReadAll(bytes.NewReader(in), 16)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if f.Tags != nil || len(f.Packets) != 0 {
		t.Errorf("File = %+v, want header only", f)
	}
}

func TestReadAll_Malformed(t *testing.T) {
	t.Parallel()

	in := oggtest.SinglePacketPage(oggtest.BOS, 1, 0, []byte("OpusHead\x01\x02"))

	_, err := ReadAll(bytes.NewReader(in), 4096)
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("ReadAll() error = %v, want ErrMalformed", err)
	}
}

func TestReadAll_ReaderError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	_, err := ReadAll(iotest.ErrReader(boom), 4096)
	if !errors.Is(err, boom) {
		t.Errorf("ReadAll() error = %v, want %v", err, boom)
	}
}

func BenchmarkReadAll(b *testing.B) {
	packets := make([][]byte, 500)
	for i := range packets {
		packets[i] = bytes.Repeat([]byte{byte(i)}, 160)
	}
	in := opusFile(packets...)

	b.ReportAllocs()

	for b.Loop() {
		_, _ = ReadAll(bytes.NewReader(in), 4096)
	}
}
