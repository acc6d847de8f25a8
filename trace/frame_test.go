package trace

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

// oneByteReader drips a stream out one byte per Read call, the worst case
// a serial port can produce.
type oneByteReader struct {
	data []byte
}

func (r *oneByteReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	p[0] = r.data[0]
	r.data = r.data[1:]
	return 1, nil
}

func TestFrameRoundTrip(t *testing.T) {
	payloads := [][]byte{
		{0x01},
		{0x01, 0x02, 0x03},
		{},
		bytes.Repeat([]byte{0x7E}, 10), // sync bytes inside a payload are fine
		make([]byte, FrameLengthMax-4),
	}

	var stream []byte
	for _, p := range payloads {
		stream = AppendFrame(stream, p)
	}

	s := NewScanner(bytes.NewReader(stream))
	for i, want := range payloads {
		got, err := s.Next()
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("frame %d: payload %v, want %v", i, got, want)
		}
	}
	if _, err := s.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("expected EOF after last frame, got %v", err)
	}
	if s.Skipped() != 0 {
		t.Errorf("clean stream skipped %d bytes", s.Skipped())
	}
}

func TestScannerResyncsAfterGarbage(t *testing.T) {
	var stream []byte
	stream = append(stream, 0xDE, 0xAD, 0xBE, 0xEF) // noise before the first frame
	stream = AppendFrame(stream, []byte{0x11})
	stream = append(stream, 0x00, 0xFF) // noise between frames
	stream = AppendFrame(stream, []byte{0x22})

	s := NewScanner(bytes.NewReader(stream))

	got, err := s.Next()
	if err != nil || !bytes.Equal(got, []byte{0x11}) {
		t.Fatalf("first frame = %v (%v), want [11]", got, err)
	}
	got, err = s.Next()
	if err != nil || !bytes.Equal(got, []byte{0x22}) {
		t.Fatalf("second frame = %v (%v), want [22]", got, err)
	}
	if s.Skipped() == 0 {
		t.Error("scanner claims it skipped nothing")
	}
}

func TestScannerDropsCorruptFrame(t *testing.T) {
	var stream []byte
	stream = AppendFrame(stream, []byte{0x11, 0x22})
	corruptAt := len(stream) + 2
	stream = AppendFrame(stream, []byte{0x33, 0x44})
	stream = AppendFrame(stream, []byte{0x55, 0x66})
	stream[corruptAt] ^= 0x01 // flip one payload bit of the middle frame

	s := NewScanner(bytes.NewReader(stream))

	got, err := s.Next()
	if err != nil || !bytes.Equal(got, []byte{0x11, 0x22}) {
		t.Fatalf("first frame = %v (%v)", got, err)
	}
	got, err = s.Next()
	if err != nil || !bytes.Equal(got, []byte{0x55, 0x66}) {
		t.Fatalf("frame after corruption = %v (%v), want [55 66]", got, err)
	}
}

func TestScannerHandlesFragmentedReads(t *testing.T) {
	var stream []byte
	stream = AppendFrame(stream, []byte{0xAB, 0xCD})
	stream = AppendFrame(stream, []byte{0xEF})

	s := NewScanner(&oneByteReader{data: stream})

	got, err := s.Next()
	if err != nil || !bytes.Equal(got, []byte{0xAB, 0xCD}) {
		t.Fatalf("first frame = %v (%v)", got, err)
	}
	got, err = s.Next()
	if err != nil || !bytes.Equal(got, []byte{0xEF}) {
		t.Fatalf("second frame = %v (%v)", got, err)
	}
}

func TestAppendFrameRejectsOversizedPayload(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("oversized payload should panic")
		}
	}()
	AppendFrame(nil, make([]byte, FrameLengthMax-3))
}

func TestCRC16(t *testing.T) {
	if got := CRC16(nil); got != 0xFFFF {
		t.Errorf("CRC16(nil) = %#04x, want 0xffff", got)
	}

	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05}
	if CRC16(data) != CRC16(data) {
		t.Error("CRC16 not deterministic")
	}

	tweaked := []byte{0x01, 0x02, 0x03, 0x04, 0x04}
	if CRC16(data) == CRC16(tweaked) {
		t.Error("single byte change not reflected in CRC")
	}
}
