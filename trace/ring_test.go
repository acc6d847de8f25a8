package trace

import "testing"

func TestRecorderFIFO(t *testing.T) {
	var r Recorder

	r.Record(KindStart, 100)
	r.Record(KindUpdate, 200)
	r.Record(KindUpdate, 300)

	if r.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", r.Len())
	}

	want := []Record{
		{Kind: KindStart, Seq: 0, Ticks: 100},
		{Kind: KindUpdate, Seq: 1, Ticks: 200},
		{Kind: KindUpdate, Seq: 2, Ticks: 300},
	}
	for i, w := range want {
		got, ok := r.Pop()
		if !ok {
			t.Fatalf("Pop() %d returned empty", i)
		}
		if got != w {
			t.Errorf("Pop() %d = %+v, want %+v", i, got, w)
		}
	}

	if _, ok := r.Pop(); ok {
		t.Error("Pop() on a drained ring returned a record")
	}
	if r.Dropped() != 0 {
		t.Errorf("Dropped() = %d, want 0", r.Dropped())
	}
}

func TestRecorderDropsWhenFull(t *testing.T) {
	var r Recorder

	for i := 0; i < recorderSize; i++ {
		if !r.Record(KindUpdate, uint32(i)) {
			t.Fatalf("record %d rejected before the ring was full", i)
		}
	}
	if r.Record(KindUpdate, 999) {
		t.Error("record accepted on a full ring")
	}
	if r.Dropped() != 1 {
		t.Errorf("Dropped() = %d, want 1", r.Dropped())
	}

	// The dropped record still consumed a sequence number, so the gap is
	// visible to the receiver.
	r.Pop()
	if !r.Record(KindCancel, 1000) {
		t.Error("record rejected after space was freed")
	}
	var last Record
	for {
		rec, ok := r.Pop()
		if !ok {
			break
		}
		last = rec
	}
	if last.Seq != uint32(recorderSize+1) {
		t.Errorf("last Seq = %d, want %d (a dropped record must leave a gap)", last.Seq, recorderSize+1)
	}
}

func TestRecorderWrapsIndices(t *testing.T) {
	var r Recorder

	// Push and pop through several times the capacity so the free
	// running indices wrap the ring.
	for i := 0; i < recorderSize*3; i++ {
		if !r.Record(KindUpdate, uint32(i)) {
			t.Fatalf("record %d rejected", i)
		}
		got, ok := r.Pop()
		if !ok || got.Ticks != uint32(i) || got.Seq != uint32(i) {
			t.Fatalf("pop %d = %+v, ok=%v", i, got, ok)
		}
	}
	if r.Len() != 0 {
		t.Errorf("Len() = %d after balanced traffic, want 0", r.Len())
	}
}
