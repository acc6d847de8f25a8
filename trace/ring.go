package trace

import "github.com/claymcleod/stm32f1xx-hal/core"

// recorderSize is the ring capacity. Power of two so the free-running
// indices wrap cleanly.
const recorderSize = 32

// Recorder queues records on the firmware side so a handler or polling
// loop can log an event without waiting for the transport to drain. The
// write and drain sides may run in different execution contexts; every
// access to the indices sits inside a short masked section.
//
// The zero value is ready to use.
type Recorder struct {
	ring    [recorderSize]Record
	head    uint32 // next write, free running
	tail    uint32 // next read, free running
	seq     uint32
	dropped uint32
}

// Record queues one observation, stamping it with the next sequence
// number. When the ring is full the record is dropped and counted; the
// sequence number still advances, so the receiver sees the gap.
func (r *Recorder) Record(kind Kind, ticks uint32) bool {
	state := core.DisableInterrupts()
	seq := r.seq
	r.seq++
	if r.head-r.tail >= recorderSize {
		r.dropped++
		core.RestoreInterrupts(state)
		return false
	}
	r.ring[r.head%recorderSize] = Record{Kind: kind, Seq: seq, Ticks: ticks}
	r.head++
	core.RestoreInterrupts(state)
	return true
}

// Pop removes and returns the oldest queued record.
func (r *Recorder) Pop() (Record, bool) {
	state := core.DisableInterrupts()
	if r.head == r.tail {
		core.RestoreInterrupts(state)
		return Record{}, false
	}
	rec := r.ring[r.tail%recorderSize]
	r.tail++
	core.RestoreInterrupts(state)
	return rec, true
}

// Len returns the number of queued records.
func (r *Recorder) Len() int {
	state := core.DisableInterrupts()
	n := int(r.head - r.tail)
	core.RestoreInterrupts(state)
	return n
}

// Dropped returns how many records were lost to a full ring.
func (r *Recorder) Dropped() uint32 {
	state := core.DisableInterrupts()
	n := r.dropped
	core.RestoreInterrupts(state)
	return n
}
