// Package timer turns the raw STM32F1 timer peripherals into periodic
// count-down timers with a frequency-based API.
//
// A peripheral is always held by exactly one wrapper: a Timer while it
// sits idle, a CountDownTimer while it counts. The transitions between
// the two consume the old wrapper, so stale handles panic instead of
// silently aliasing the hardware. The wrappers are portable; register
// access goes through the Instance contract, implemented by the device
// packages for real silicon and by plain structs in tests.
//
// Programming errors (an unreachable frequency, a consumed handle, a
// capability the peripheral lacks) panic. Conditions the caller is meant
// to handle at runtime are returned: Wait reports whether the period has
// elapsed, Cancel reports ErrCanceled when the counter was already
// stopped.
package timer

import (
	"errors"

	"github.com/claymcleod/stm32f1xx-hal/core"
)

// Event enumerates the interrupt sources a count-down timer can raise.
type Event uint8

const (
	// Update fires once per period, when the counter wraps and reloads.
	Update Event = iota
)

// ErrCanceled is reported by Cancel when the counter is already stopped.
var ErrCanceled = errors.New("timer: already canceled")

// Timer owns an idle timer peripheral: clocked, reset, not counting.
type Timer struct {
	tim Instance
	clk core.Hertz
}

// CountDownTimer owns a running timer peripheral, counting periodically at
// the frequency it was started with.
type CountDownTimer struct {
	tim Instance
	clk core.Hertz
}

// New takes ownership of a timer peripheral. It opens the clock gate,
// pulses the domain reset so the registers are in a known state, and
// captures the input clock for the peripheral's bus. The instance must
// not be used directly afterwards.
func New(tim Instance, clocks core.Clocks) *Timer {
	tim.EnableClock()
	tim.ResetDomain()
	clk := clocks.TimerClock(tim.Caps().Bus)
	core.DebugPrintln("timer: acquired, input clock " + clk.String())
	return &Timer{tim: tim, clk: clk}
}

func (t *Timer) instance() Instance {
	if t.tim == nil {
		panic("timer: use of consumed timer handle")
	}
	return t.tim
}

func (t *Timer) consume() Instance {
	tim := t.instance()
	t.tim = nil
	return tim
}

// Clock returns the input clock captured when the peripheral was taken.
func (t *Timer) Clock() core.Hertz {
	return t.clk
}

// Caps returns the peripheral's capability description.
func (t *Timer) Caps() Capabilities {
	return t.instance().Caps()
}

// ResetClockDomain pulses the peripheral's domain reset again, restoring
// power-on register defaults without touching the clock gate.
func (t *Timer) ResetClockDomain() {
	t.instance().ResetDomain()
}

// FreezeOnDebug controls whether the counter halts while the core is
// stopped by a debugger. Panics if the peripheral has no debug stop
// control.
func (t *Timer) FreezeOnDebug(freeze bool) {
	tim := t.instance()
	f, ok := tim.(DebugFreezer)
	if !ok || !tim.Caps().HasDebugStop {
		panic("timer: peripheral has no debug stop control")
	}
	f.FreezeOnDebug(freeze)
}

// StartCountDown consumes the idle timer and starts it counting at the
// target frequency. The register pair is derived with the smallest
// prescaler that fits, so the achieved period is never longer than
// requested.
func (t *Timer) StartCountDown(target core.Hertz) *CountDownTimer {
	cd := &CountDownTimer{tim: t.consume(), clk: t.clk}
	cd.Restart(target)
	return cd
}

// StartCountDownRaw consumes the idle timer and starts it with a caller
// chosen register pair, bypassing the frequency solver. The period is
// (psc+1)*(reload+1) input ticks.
func (t *Timer) StartCountDownRaw(psc uint16, reload uint32) *CountDownTimer {
	cd := &CountDownTimer{tim: t.consume(), clk: t.clk}
	cd.RestartRaw(psc, reload)
	return cd
}

// StartCountDownMaster programs the trigger output to follow mode and
// then starts counting at the target frequency. The master mode is in
// place before the counter is armed, so a slave sees no events from the
// arming itself. Panics if the peripheral cannot drive the trigger line.
func (t *Timer) StartCountDownMaster(target core.Hertz, mode MasterMode) *CountDownTimer {
	tim := t.instance()
	m, ok := tim.(MasterModer)
	if !ok || !tim.Caps().HasMasterMode {
		panic("timer: peripheral has no master mode")
	}
	m.SetMasterMode(mode)
	return t.StartCountDown(target)
}

// Release stops the peripheral and hands back the raw instance. The Timer
// must not be used afterwards.
func (t *Timer) Release() Instance {
	tim := t.consume()
	tim.SetRunning(false)
	return tim
}

func (cd *CountDownTimer) instance() Instance {
	if cd.tim == nil {
		panic("timer: use of consumed timer handle")
	}
	return cd.tim
}

func (cd *CountDownTimer) consume() Instance {
	tim := cd.instance()
	cd.tim = nil
	return tim
}

// Clock returns the input clock captured when the peripheral was taken.
func (cd *CountDownTimer) Clock() core.Hertz {
	return cd.clk
}

// Caps returns the peripheral's capability description.
func (cd *CountDownTimer) Caps() Capabilities {
	return cd.instance().Caps()
}

// Restart reprograms the running timer for a new target frequency. Any
// partially elapsed period is abandoned.
func (cd *CountDownTimer) Restart(target core.Hertz) {
	psc, reload := solve(target, cd.clk, cd.instance().Caps())
	cd.RestartRaw(psc, reload)
}

// RestartRaw reprograms the register pair directly. The counter is
// paused, the registers are written, an update event is forced so the new
// prescaler enters the counting path immediately, and the counter is
// re-enabled. The order is what the hardware requires; keep it.
func (cd *CountDownTimer) RestartRaw(psc uint16, reload uint32) {
	tim := cd.instance()
	caps := tim.Caps()
	if reload > caps.MaxReload() {
		panic("timer: reload value exceeds counter width")
	}

	tim.SetRunning(false)
	if p, ok := tim.(Prescaled); ok && caps.HasPrescaler {
		p.SetPrescaler(psc)
	} else if psc != 0 {
		panic("timer: peripheral has no prescaler")
	}
	tim.SetReload(reload)
	tim.ForceUpdate()
	tim.SetRunning(true)

	core.DebugPrintln("timer: started psc=" + core.Utoa(uint32(psc)) + " reload=" + core.Utoa(reload))
}

// Wait reports whether the current period has elapsed. It consumes the
// hardware update flag, turning the level-sensitive flag into one true
// per period, and never blocks; callers poll it or build their own
// blocking loop around it.
func (cd *CountDownTimer) Wait() bool {
	tim := cd.instance()
	if !tim.UpdatePending() {
		return false
	}
	tim.ClearUpdate()
	return true
}

// Cancel stops the counter. Canceling a counter that is already stopped
// reports ErrCanceled rather than succeeding silently, so double cancels
// surface bugs in caller state tracking. The register pair is preserved.
func (cd *CountDownTimer) Cancel() error {
	tim := cd.instance()
	if !tim.Running() {
		return ErrCanceled
	}
	tim.SetRunning(false)
	return nil
}

// Reset rewinds the counter to the top of its period by forcing an update
// event. The forced event does not set the update flag, so Wait does not
// mistake it for a completed period.
func (cd *CountDownTimer) Reset() {
	cd.instance().ForceUpdate()
}

// Listen enables the hardware interrupt behind the given event.
func (cd *CountDownTimer) Listen(event Event) {
	switch event {
	case Update:
		cd.instance().SetUpdateInterrupt(true)
	}
}

// Unlisten disables the hardware interrupt behind the given event.
func (cd *CountDownTimer) Unlisten(event Event) {
	switch event {
	case Update:
		cd.instance().SetUpdateInterrupt(false)
	}
}

// ClearUpdateFlag clears a pending update flag without reporting it.
// Interrupt handlers call this so the update interrupt does not re-fire
// on return.
func (cd *CountDownTimer) ClearUpdateFlag() {
	cd.instance().ClearUpdate()
}

// ElapsedMicros estimates the microseconds since the last update event
// from the live counter value. A missed update is indistinguishable from
// a freshly started period, so this is a coarse gauge, not a substitute
// for Wait.
func (cd *CountDownTimer) ElapsedMicros() uint32 {
	tim := cd.instance()

	ticks := uint64(tim.Count())
	if tim.Caps().CountsDown {
		ticks = uint64(tim.Reload()) - ticks
	}

	clk := uint64(cd.clk)
	if p, ok := tim.(Prescaled); ok && tim.Caps().HasPrescaler {
		clk /= uint64(p.Prescaler()) + 1
	}
	return uint32(1_000_000 * ticks / clk)
}

// Prescaler returns the live prescaler register value (divider minus one),
// or zero when the peripheral has none.
func (cd *CountDownTimer) Prescaler() uint16 {
	tim := cd.instance()
	if p, ok := tim.(Prescaled); ok && tim.Caps().HasPrescaler {
		return p.Prescaler()
	}
	return 0
}

// Reload returns the live reload register value.
func (cd *CountDownTimer) Reload() uint32 {
	return cd.instance().Reload()
}

// Count returns the live counter value.
func (cd *CountDownTimer) Count() uint32 {
	return cd.instance().Count()
}

// Stop halts the counter and returns the peripheral to the idle state.
// The register pair is left programmed, so a later StartCountDownRaw with
// the same pair resumes the same period length. The CountDownTimer must
// not be used afterwards.
func (cd *CountDownTimer) Stop() *Timer {
	tim := cd.consume()
	tim.SetRunning(false)
	return &Timer{tim: tim, clk: cd.clk}
}

// Release stops the peripheral and hands back the raw instance. The
// CountDownTimer must not be used afterwards.
func (cd *CountDownTimer) Release() Instance {
	tim := cd.consume()
	tim.SetRunning(false)
	return tim
}
