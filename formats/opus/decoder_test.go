// SPDX-License-Identifier: EPL-2.0

package opus

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"testing/iotest"

	"github.com/ik5/oggopus"
	"github.com/ik5/oggopus/audio"
	"github.com/ik5/oggopus/internal/audiotest"
	"github.com/ik5/oggopus/internal/oggtest"
)

// opusStream builds a single-stream Ogg Opus file with the audio packets on
// one final page.
func opusStream(channels byte, preSkip uint16, packets ...[]byte) []byte {
	var b []byte
	b = append(b, oggtest.SinglePacketPage(oggtest.BOS, 7, 0, oggtest.OpusHead(channels, preSkip, 0))...)
	b = append(b, oggtest.SinglePacketPage(0, 7, 1, oggtest.OpusTags("test vendor"))...)
	b = append(b, oggtest.PacketsPage(oggtest.EOS, 7, 2, packets...)...)
	return b
}

func mockDecoder(frameSize int) (*audiotest.PacketDecoder, Decoder) {
	mock := &audiotest.PacketDecoder{FrameSize: frameSize}
	return mock, Decoder{
		NewPacketDecoder: func(sampleRate, channels int) (PacketDecoder, error) {
			mock.Channels = channels
			return mock, nil
		},
	}
}

func readAll(t *testing.T, src audio.Source, bufSize int) []float32 {
	t.Helper()

	var out []float32
	buf := make([]float32, bufSize)
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
}

func TestDecoder_NoPacketDecoder(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader(opusStream(1, 0)))
	if !errors.Is(err, ErrNoPacketDecoder) {
		t.Errorf("Decode() error = %v, want %v", err, ErrNoPacketDecoder)
	}
}

func TestDecoder_NoStream(t *testing.T) {
	t.Parallel()

	headOnly := oggtest.SinglePacketPage(oggtest.BOS, 1, 0, oggtest.OpusHead(2, 0, 0))

	tests := []struct {
		name  string
		input []byte
	}{
		{"Empty", nil},
		{"Garbage", []byte("This is not an Ogg file at all")},
		{"HeaderWithoutTags", headOnly},
		{"VorbisOnly", oggtest.SinglePacketPage(oggtest.BOS, 1, 0, []byte("\x01vorbis"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, dec := mockDecoder(10)
			_, err := dec.Decode(bytes.NewReader(tt.input))
			if !errors.Is(err, ErrNoOpusStream) {
				t.Errorf("Decode() error = %v, want %v", err, ErrNoOpusStream)
			}
		})
	}
}

func TestDecoder_MalformedHeader(t *testing.T) {
	t.Parallel()

	short := oggtest.SinglePacketPage(oggtest.BOS, 1, 0, []byte("OpusHead\x01\x02"))

	_, dec := mockDecoder(10)
	_, err := dec.Decode(bytes.NewReader(short))
	if !errors.Is(err, oggopus.ErrMalformed) {
		t.Errorf("Decode() error = %v, want %v", err, oggopus.ErrMalformed)
	}
}

func TestDecoder_ZeroChannels(t *testing.T) {
	t.Parallel()

	_, dec := mockDecoder(10)
	_, err := dec.Decode(bytes.NewReader(opusStream(0, 0)))
	if !errors.Is(err, ErrInvalidChannels) {
		t.Errorf("Decode() error = %v, want %v", err, ErrInvalidChannels)
	}
}

func TestDecoder_FactoryError(t *testing.T) {
	t.Parallel()

	boom := errors.New("libopus unavailable")
	dec := Decoder{
		NewPacketDecoder: func(int, int) (PacketDecoder, error) { return nil, boom },
	}

	_, err := dec.Decode(bytes.NewReader(opusStream(1, 0)))
	if !errors.Is(err, boom) {
		t.Errorf("Decode() error = %v, want %v", err, boom)
	}
}

func TestDecoder_FactoryArguments(t *testing.T) {
	t.Parallel()

	var gotRate, gotChannels int
	dec := Decoder{
		NewPacketDecoder: func(sampleRate, channels int) (PacketDecoder, error) {
			gotRate, gotChannels = sampleRate, channels
			return &audiotest.PacketDecoder{Channels: channels, FrameSize: 1}, nil
		},
	}

	src, err := dec.Decode(bytes.NewReader(opusStream(6, 0)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if gotRate != SampleRate || gotChannels != 6 {
		t.Errorf("NewPacketDecoder(%d, %d), want (%d, 6)", gotRate, gotChannels, SampleRate)
	}
	if src.SampleRate() != SampleRate {
		t.Errorf("SampleRate() = %d, want %d", src.SampleRate(), SampleRate)
	}
	if src.Channels() != 6 {
		t.Errorf("Channels() = %d, want 6", src.Channels())
	}
	if src.BufSize() != maxFrameSize*6 {
		t.Errorf("BufSize() = %d, want %d", src.BufSize(), maxFrameSize*6)
	}
}

func TestSource_Packets(t *testing.T) {
	t.Parallel()

	mock, dec := mockDecoder(4)
	src, err := dec.Decode(bytes.NewReader(opusStream(2, 0, []byte{10}, []byte{20, 1}, []byte{30})))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	got := readAll(t, src, 6)
	if len(got) != 3*4*2 {
		t.Fatalf("read %d samples, want %d", len(got), 3*4*2)
	}
	for i, want := range []float32{0.1, 0.2, 0.3} {
		for j := range 8 {
			if got[i*8+j] != want {
				t.Errorf("sample %d = %v, want %v", i*8+j, got[i*8+j], want)
			}
		}
	}

	if len(mock.Packets) != 3 {
		t.Fatalf("decoder saw %d packets, want 3", len(mock.Packets))
	}
	if !bytes.Equal(mock.Packets[1], []byte{20, 1}) {
		t.Errorf("packet 1 = %v, want [20 1]", mock.Packets[1])
	}
}

func TestSource_PreSkip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		preSkip uint16
		want    int // frames left
	}{
		{"None", 0, 12},
		{"WithinFirstPacket", 3, 9},
		{"WholeFirstPacket", 4, 8},
		{"AcrossPackets", 6, 6},
		{"Everything", 20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, dec := mockDecoder(4)
			src, err := dec.Decode(bytes.NewReader(opusStream(2, tt.preSkip, []byte{10}, []byte{20}, []byte{30})))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}

			got := readAll(t, src, 64)
			if len(got) != tt.want*2 {
				t.Errorf("read %d samples, want %d", len(got), tt.want*2)
			}
		})
	}
}

func TestSource_PreSkipKeepsLaterSamples(t *testing.T) {
	t.Parallel()

	_, dec := mockDecoder(4)
	src, err := dec.Decode(bytes.NewReader(opusStream(1, 5, []byte{10}, []byte{20})))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	got := readAll(t, src, 16)
	want := []float32{0.2, 0.2, 0.2}
	if len(got) != len(want) {
		t.Fatalf("read %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSource_OneByteReads(t *testing.T) {
	t.Parallel()

	_, dec := mockDecoder(3)
	dec.ChunkSize = 1
	input := opusStream(1, 0, []byte{5}, []byte{6})

	src, err := dec.Decode(iotest.OneByteReader(bytes.NewReader(input)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if got := readAll(t, src, 2); len(got) != 6 {
		t.Errorf("read %d samples, want 6", len(got))
	}
}

func TestSource_HeaderAndTags(t *testing.T) {
	t.Parallel()

	_, dec := mockDecoder(1)
	src, err := dec.DecodeSource(bytes.NewReader(opusStream(2, 312)))
	if err != nil {
		t.Fatalf("DecodeSource() error = %v", err)
	}

	h := src.Header()
	if h.Channels != 2 || h.PreSkip != 312 || h.Serial != 7 {
		t.Errorf("Header() = %+v", h)
	}

	c, err := oggopus.ParseComments(src.Tags())
	if err != nil {
		t.Fatalf("ParseComments() error = %v", err)
	}
	if c.Vendor != "test vendor" {
		t.Errorf("Vendor = %q, want %q", c.Vendor, "test vendor")
	}
}

func TestSource_InvalidDstSize(t *testing.T) {
	t.Parallel()

	_, dec := mockDecoder(4)
	src, err := dec.Decode(bytes.NewReader(opusStream(2, 0, []byte{1})))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if _, err := src.ReadSamples(make([]float32, 3)); !errors.Is(err, audio.ErrInvalidDstSize) {
		t.Errorf("ReadSamples() error = %v, want %v", err, audio.ErrInvalidDstSize)
	}

	n, err := src.ReadSamples(nil)
	if n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = %d, %v; want 0, nil", n, err)
	}
}

func TestSource_DecodeError(t *testing.T) {
	t.Parallel()

	_, dec := mockDecoder(4)
	src, err := dec.Decode(bytes.NewReader(opusStream(1, 0, []byte{0xFF})))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if _, err := src.ReadSamples(make([]float32, 4)); !errors.Is(err, audiotest.ErrCorruptPacket) {
		t.Errorf("ReadSamples() error = %v, want %v", err, audiotest.ErrCorruptPacket)
	}
}

func TestSource_ReadError(t *testing.T) {
	t.Parallel()

	boom := errors.New("disk on fire")
	input := opusStream(1, 0)

	_, dec := mockDecoder(4)
	src, err := dec.Decode(io.MultiReader(bytes.NewReader(input), iotest.ErrReader(boom)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	// Headers are available from the first read; the failing read follows.
	if _, err := src.ReadSamples(make([]float32, 4)); !errors.Is(err, boom) {
		t.Errorf("ReadSamples() error = %v, want %v", err, boom)
	}
}

func TestSource_Close(t *testing.T) {
	t.Parallel()

	_, dec := mockDecoder(4)
	src, err := dec.Decode(bytes.NewReader(opusStream(1, 0)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if err := src.Close(); err != nil {
		t.Errorf("Close() error = %v, want nil", err)
	}
}

func BenchmarkSource_ReadSamples(b *testing.B) {
	packets := make([][]byte, 50)
	for i := range packets {
		packets[i] = bytes.Repeat([]byte{byte(i)}, 80)
	}
	input := opusStream(2, 312, packets...)
	buf := make([]float32, 4096)

	b.ReportAllocs()

	for b.Loop() {
		_, dec := mockDecoder(960)
		src, err := dec.Decode(bytes.NewReader(input))
		if err != nil {
			b.Fatal(err)
		}
		for {
			if _, err := src.ReadSamples(buf); err != nil {
				break
			}
		}
	}
}
