package trace

import (
	"bytes"
	"io"
)

const (
	// FrameSync terminates every frame and is the landmark the scanner
	// hunts for after corruption.
	FrameSync = 0x7E

	frameOverhead = 4 // length byte, CRC16, sync byte

	FrameLengthMin = frameOverhead
	FrameLengthMax = 64
)

// AppendFrame wraps payload in a frame and appends it to dst. The layout
// is one length byte covering the whole frame, the payload, the CRC16 of
// the length byte and payload in big-endian order, and the sync byte.
func AppendFrame(dst, payload []byte) []byte {
	if len(payload) > FrameLengthMax-frameOverhead {
		panic("trace: payload does not fit a frame")
	}

	start := len(dst)
	dst = append(dst, byte(len(payload)+frameOverhead))
	dst = append(dst, payload...)
	crc := CRC16(dst[start:])
	return append(dst, byte(crc>>8), byte(crc), FrameSync)
}

// Scanner extracts frame payloads from a byte stream and tolerates the
// stream being dirty: bytes that cannot start a frame are skipped one at
// a time, and a frame that fails its checks is abandoned by hunting for
// the next sync byte. A listener can attach mid-stream or ride out line
// noise; at worst the frames between the corruption and the next sync
// byte are lost.
type Scanner struct {
	r       io.Reader
	buf     []byte
	skipped int
}

// NewScanner returns a Scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{r: r}
}

// Next returns the payload of the next well-formed frame. It reports the
// reader's error, io.EOF included, once no further frame can be
// extracted.
func (s *Scanner) Next() ([]byte, error) {
	for {
		if payload, ok := s.scan(); ok {
			return payload, nil
		}

		chunk := make([]byte, 256)
		n, err := s.r.Read(chunk)
		if n > 0 {
			s.buf = append(s.buf, chunk[:n]...)
			continue
		}
		if err != nil {
			return nil, err
		}
	}
}

// Skipped returns the number of bytes discarded while resynchronizing.
func (s *Scanner) Skipped() int {
	return s.skipped
}

// scan tries to lift one frame off the front of the buffer.
func (s *Scanner) scan() ([]byte, bool) {
	for len(s.buf) > 0 {
		length := int(s.buf[0])
		if length < FrameLengthMin || length > FrameLengthMax {
			s.discard(1)
			continue
		}
		if len(s.buf) < length {
			// Frame still arriving.
			return nil, false
		}

		frame := s.buf[:length]
		crc := uint16(frame[length-3])<<8 | uint16(frame[length-2])
		if frame[length-1] != FrameSync || crc != CRC16(frame[:length-3]) {
			s.resync()
			continue
		}

		payload := append([]byte(nil), frame[1:length-3]...)
		s.buf = s.buf[length:]
		return payload, true
	}
	return nil, false
}

// resync discards through the next sync byte after a frame failed its
// checks. Sliding a single byte would reconsider the corrupt frame's own
// contents as frame starts and can stall on a plausible length byte.
func (s *Scanner) resync() {
	if i := bytes.IndexByte(s.buf, FrameSync); i >= 0 {
		s.discard(i + 1)
		return
	}
	s.discard(len(s.buf))
}

func (s *Scanner) discard(n int) {
	s.buf = s.buf[n:]
	s.skipped += n
}
