package trace

import "errors"

// ErrShortBuffer is reported when a varint runs past the end of its
// buffer.
var ErrShortBuffer = errors.New("trace: buffer too short")

// AppendVarint appends v to dst in the wire's variable-length encoding
// and returns the extended slice. Seven-bit groups are emitted most
// significant first, with the continuation bit set on every byte but the
// last; small magnitudes of either sign fit a single byte.
func AppendVarint(dst []byte, v int32) []byte {
	if !(-(1<<26) <= v && v < (3 << 26)) {
		dst = append(dst, byte((v>>28)&0x7F)|0x80)
	}
	if !(-(1<<19) <= v && v < (3 << 19)) {
		dst = append(dst, byte((v>>21)&0x7F)|0x80)
	}
	if !(-(1<<12) <= v && v < (3 << 12)) {
		dst = append(dst, byte((v>>14)&0x7F)|0x80)
	}
	if !(-(1<<5) <= v && v < (3 << 5)) {
		dst = append(dst, byte((v>>7)&0x7F)|0x80)
	}
	return append(dst, byte(v&0x7F))
}

// AppendUvarint appends an unsigned value in the same encoding.
func AppendUvarint(dst []byte, v uint32) []byte {
	return AppendVarint(dst, int32(v))
}

// Varint decodes a variable-length integer from the front of data. It
// returns the value and the number of bytes consumed.
func Varint(data []byte) (int32, int, error) {
	if len(data) == 0 {
		return 0, 0, ErrShortBuffer
	}

	c := uint32(data[0])
	n := 1

	v := c & 0x7F
	// A leading byte of the form 0x60..0x7F starts a negative value.
	if c&0x60 == 0x60 {
		v |= ^uint32(0x1F)
	}

	for c&0x80 != 0 {
		if n >= len(data) {
			return 0, 0, ErrShortBuffer
		}
		c = uint32(data[n])
		n++
		v = v<<7 | c&0x7F
	}

	return int32(v), n, nil
}

// Uvarint decodes an unsigned variable-length integer from the front of
// data.
func Uvarint(data []byte) (uint32, int, error) {
	v, n, err := Varint(data)
	return uint32(v), n, err
}
