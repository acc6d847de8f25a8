// Package delay provides blocking microsecond and millisecond delays on
// top of an owned count-down timer. Long waits are chunked through the
// counter range, so any counter width serves.
package delay

import "github.com/claymcleod/stm32f1xx-hal/timer"

// Delay turns a timer into a blocking delay source.
type Delay struct {
	idle *timer.Timer
	cd   *timer.CountDownTimer

	psc        uint16
	ticksPerUs uint32
	maxTicks   uint64
}

// New takes ownership of an idle timer. When the counter has a prescaler
// it is slowed to 1 MHz so one tick is one microsecond; otherwise the
// counter runs at the input clock and ticks are scaled. The input clock
// must be a whole number of megahertz, anything else would make the tick
// arithmetic silently imprecise.
func New(t *timer.Timer) *Delay {
	caps := t.Caps()
	clk := uint32(t.Clock())
	if clk < 1_000_000 || clk%1_000_000 != 0 {
		panic("delay: input clock is not a whole number of megahertz")
	}

	d := &Delay{idle: t, maxTicks: uint64(caps.MaxReload()) + 1}
	if caps.HasPrescaler {
		d.psc = uint16(clk/1_000_000 - 1)
		d.ticksPerUs = 1
	} else {
		d.ticksPerUs = clk / 1_000_000
	}
	return d
}

// DelayUs blocks for at least us microseconds.
func (d *Delay) DelayUs(us uint32) {
	total := uint64(us) * uint64(d.ticksPerUs)
	for total > 0 {
		n := total
		if n > d.maxTicks {
			n = d.maxTicks
		}
		d.arm(uint32(n - 1))
		for !d.cd.Wait() {
		}
		total -= n
	}
	if d.cd != nil {
		// Stop counting between delays so a wrap cannot leave a stale
		// elapsed flag for the next call.
		d.cd.Cancel()
	}
}

// DelayMs blocks for at least ms milliseconds.
func (d *Delay) DelayMs(ms uint32) {
	for ms > 0 {
		n := ms
		if n > 4_000_000 {
			n = 4_000_000
		}
		d.DelayUs(n * 1_000)
		ms -= n
	}
}

func (d *Delay) arm(reload uint32) {
	if d.cd != nil {
		d.cd.RestartRaw(d.psc, reload)
		return
	}
	if d.idle == nil {
		panic("delay: use of released delay")
	}
	d.cd = d.idle.StartCountDownRaw(d.psc, reload)
	d.idle = nil
}

// Release stops the timer and hands back the idle wrapper. The Delay must
// not be used afterwards.
func (d *Delay) Release() *timer.Timer {
	if d.cd != nil {
		t := d.cd.Stop()
		d.cd = nil
		return t
	}
	t := d.idle
	d.idle = nil
	if t == nil {
		panic("delay: use of released delay")
	}
	return t
}
