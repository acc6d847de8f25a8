package timer

import "github.com/claymcleod/stm32f1xx-hal/core"

// solve maps a target frequency onto the (prescaler, reload) register pair
// for a counter described by caps.
//
// The total division ratio is ticks = clock/target, truncated. The
// prescaler is the smallest divider that brings ticks within the counter
// range, which keeps the reload value as large as possible and so loses
// the least precision to the final truncation. The achieved period is
// (psc+1)*(reload+1) input ticks, never longer than the requested one.
//
// A target of zero, a target above the input clock, and a ratio the
// register pair cannot represent are programming errors and panic.
func solve(target, clock core.Hertz, caps Capabilities) (psc uint16, reload uint32) {
	if target == 0 {
		panic("timer: target frequency is zero")
	}
	ticks := uint32(clock) / uint32(target)
	if ticks == 0 {
		panic("timer: target frequency " + target.String() + " above input clock " + clock.String())
	}

	if !caps.HasPrescaler {
		reload = ticks - 1
		if reload > caps.MaxReload() {
			panic("timer: target frequency " + target.String() + " too slow for " + clock.String() + " counter")
		}
		return 0, reload
	}

	// (ticks-1)/span is ceil(ticks/span)-1 without overflow at the top
	// of the uint32 range.
	span := caps.MaxReload() + 1
	p := (ticks - 1) / span
	if p > 0xFFFF {
		panic("timer: target frequency " + target.String() + " too slow for " + clock.String() + " counter")
	}
	return uint16(p), ticks/(p+1) - 1
}

// SolveGeneral returns the minimum-prescaler register pair for a 16-bit
// general-purpose timer. Exported for host-side tooling; the state machine
// derives the same pair from the instance capabilities.
func SolveGeneral(target, clock core.Hertz) (psc, reload uint16) {
	p, r := solve(target, clock, Capabilities{CounterBits: 16, HasPrescaler: true})
	return p, uint16(r)
}

// SolveSysTick returns the reload value for the 24-bit system tick
// counter, which has no prescaler.
func SolveSysTick(target, clock core.Hertz) uint32 {
	_, r := solve(target, clock, Capabilities{CounterBits: 24})
	return r
}
