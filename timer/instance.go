package timer

import "github.com/claymcleod/stm32f1xx-hal/core"

// Capabilities describes the fixed facts about one timer peripheral kind.
// The portable state machine consults it instead of knowing peripheral
// names, so one implementation serves the TIM blocks and SysTick alike.
type Capabilities struct {
	CounterBits uint8    // counter width: 16 for the TIM blocks, 24 for SysTick
	Bus         core.Bus // clock domain the peripheral hangs off

	HasPrescaler  bool // input-clock prescaler present
	HasMasterMode bool // can drive the internal trigger line
	HasDebugStop  bool // counter can freeze while the core is halted
	CountsDown    bool // counter runs reload->0 instead of 0->reload
}

// MaxReload returns the largest reload value the counter can hold.
func (c Capabilities) MaxReload() uint32 {
	return 1<<c.CounterBits - 1
}

// Instance is the register-level contract a timer peripheral exposes to
// the portable state machine. Implementations live in the device packages
// and in test fakes; they perform single register accesses and keep no
// policy of their own.
//
// An Instance is owned by exactly one Timer or CountDownTimer wrapper at a
// time. Nothing here is safe for concurrent use from two owners.
type Instance interface {
	Caps() Capabilities

	// EnableClock opens the peripheral's clock gate. Safe to call when
	// the gate is already open.
	EnableClock()
	// ResetDomain pulses the peripheral's domain reset, returning its
	// registers to their power-on defaults.
	ResetDomain()

	SetRunning(bool)
	Running() bool

	SetReload(uint32)
	Reload() uint32
	Count() uint32

	SetUpdateInterrupt(bool)
	UpdatePending() bool
	ClearUpdate()

	// ForceUpdate re-latches the prescaler and reload into the counting
	// path and rewinds the counter, without flagging a completed period.
	ForceUpdate()
}

// Prescaled is implemented by instances with an input-clock prescaler.
// The stored value is the divider minus one.
type Prescaled interface {
	Instance
	SetPrescaler(uint16)
	Prescaler() uint16
}

// MasterModer is implemented by instances that can drive the internal
// trigger line from their update events.
type MasterModer interface {
	Instance
	SetMasterMode(MasterMode)
}

// DebugFreezer is implemented by instances whose counter can be frozen
// while the core is halted by a debugger.
type DebugFreezer interface {
	Instance
	FreezeOnDebug(bool)
}

// MasterMode selects what a timer drives onto its trigger output.
// The values match the MMS field encoding of the CR2 register.
type MasterMode uint8

const (
	MasterReset        MasterMode = iota // trigger follows the counter re-initialization bit
	MasterEnable                         // trigger follows the counter enable
	MasterUpdate                         // trigger pulses on update events
	MasterComparePulse                   // trigger pulses when CC1 matches
	MasterCompareOC1                     // trigger follows compare output 1
	MasterCompareOC2                     // trigger follows compare output 2
	MasterCompareOC3                     // trigger follows compare output 3
	MasterCompareOC4                     // trigger follows compare output 4
)
