// Package trace carries timer event streams from firmware to a host.
// Records are tagged with a rolling sequence number, packed with a
// variable-length integer encoding and wrapped in CRC-protected frames,
// so a host tool on the other end of a UART can measure periods and spot
// dropped records. The firmware side queues records through Recorder;
// the host side pulls frames back apart with Scanner.
package trace

import "errors"

// ErrBadRecord is reported for a frame payload that does not parse as a
// record.
var ErrBadRecord = errors.New("trace: malformed record")

// Kind tags what a record reports.
type Kind uint8

const (
	KindStart   Kind = iota + 1 // counter armed
	KindUpdate                  // period elapsed
	KindCancel                  // counter stopped
	KindOverrun                 // a period elapsed before the previous one was handled
)

func (k Kind) String() string {
	switch k {
	case KindStart:
		return "start"
	case KindUpdate:
		return "update"
	case KindCancel:
		return "cancel"
	case KindOverrun:
		return "overrun"
	}
	return "unknown"
}

// Record is one observation in the event stream.
type Record struct {
	Kind Kind
	// Seq is the rolling record number. Gaps reveal records dropped on
	// the firmware side.
	Seq uint32
	// Ticks is the reference-clock timestamp of the observation.
	Ticks uint32
}

// AppendRecord appends the framed wire form of r to dst and returns the
// extended slice.
func AppendRecord(dst []byte, r Record) []byte {
	var scratch [15]byte
	payload := AppendUvarint(scratch[:0], uint32(r.Kind))
	payload = AppendUvarint(payload, r.Seq)
	payload = AppendUvarint(payload, r.Ticks)
	return AppendFrame(dst, payload)
}

// ParseRecord decodes a frame payload produced by AppendRecord.
func ParseRecord(payload []byte) (Record, error) {
	kind, n, err := Uvarint(payload)
	if err != nil {
		return Record{}, ErrBadRecord
	}
	seq, m, err := Uvarint(payload[n:])
	if err != nil {
		return Record{}, ErrBadRecord
	}
	ticks, k, err := Uvarint(payload[n+m:])
	if err != nil {
		return Record{}, ErrBadRecord
	}
	if n+m+k != len(payload) {
		return Record{}, ErrBadRecord
	}
	if kind == 0 || kind > uint32(KindOverrun) {
		return Record{}, ErrBadRecord
	}
	return Record{Kind: Kind(kind), Seq: seq, Ticks: ticks}, nil
}
