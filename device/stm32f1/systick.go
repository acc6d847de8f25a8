//go:build stm32f103

package stm32f1

import (
	"runtime/volatile"
	"unsafe"

	"github.com/claymcleod/stm32f1xx-hal/core"
	"github.com/claymcleod/stm32f1xx-hal/timer"
)

// sysTickRegs is the Cortex-M3 SysTick block at 0xE000E010.
type sysTickRegs struct {
	CSR   volatile.Register32
	RVR   volatile.Register32
	CVR   volatile.Register32
	CALIB volatile.Register32
}

const (
	systCSREnable    = 0x1 << 0
	systCSRTickInt   = 0x1 << 1
	systCSRClkSource = 0x1 << 2 // 1 selects the processor clock
	systCSRCountFlag = 0x1 << 16

	systReloadMask = 1<<24 - 1
)

// SysTickTimer drives the system tick counter: 24 bits wide, no
// prescaler, counting down, with a wrap flag that clears itself when
// read. Note the TinyGo scheduler owns SysTick on targets where it uses
// it for time keeping; claim it only in programs that do not sleep.
type SysTickTimer struct {
	regs *sysTickRegs
}

// SYST is the system tick instance.
var SYST = &SysTickTimer{regs: (*sysTickRegs)(unsafe.Pointer(uintptr(0xE000_E010)))}

func (s *SysTickTimer) Caps() timer.Capabilities {
	return timer.Capabilities{
		CounterBits: 24,
		Bus:         core.BusCore,
		CountsDown:  true,
	}
}

// EnableClock selects the processor clock as the counting source.
// SysTick is part of the core and has no RCC gate.
func (s *SysTickTimer) EnableClock() {
	s.regs.CSR.SetBits(systCSRClkSource)
}

// ResetDomain stops the counter and zeroes its state. SysTick has no
// peripheral reset line, so this rebuilds the power-on view by hand.
func (s *SysTickTimer) ResetDomain() {
	s.regs.CSR.ClearBits(systCSREnable | systCSRTickInt)
	s.regs.RVR.Set(0)
	s.regs.CVR.Set(0)
}

func (s *SysTickTimer) SetRunning(on bool) {
	if on {
		s.regs.CSR.SetBits(systCSREnable)
	} else {
		s.regs.CSR.ClearBits(systCSREnable)
	}
}

func (s *SysTickTimer) Running() bool {
	return s.regs.CSR.HasBits(systCSREnable)
}

func (s *SysTickTimer) SetReload(v uint32) {
	s.regs.RVR.Set(v & systReloadMask)
}

func (s *SysTickTimer) Reload() uint32 {
	return s.regs.RVR.Get() & systReloadMask
}

func (s *SysTickTimer) Count() uint32 {
	return s.regs.CVR.Get() & systReloadMask
}

func (s *SysTickTimer) SetUpdateInterrupt(on bool) {
	if on {
		s.regs.CSR.SetBits(systCSRTickInt)
	} else {
		s.regs.CSR.ClearBits(systCSRTickInt)
	}
}

// UpdatePending reports the wrap flag. The hardware clears the flag on
// the read itself.
func (s *SysTickTimer) UpdatePending() bool {
	return s.regs.CSR.HasBits(systCSRCountFlag)
}

// ClearUpdate is a no-op: reading COUNTFLAG already cleared it.
func (s *SysTickTimer) ClearUpdate() {}

// ForceUpdate rewinds the counter to the reload value. A write to CVR
// clears the counter and the wrap flag without raising the interrupt.
func (s *SysTickTimer) ForceUpdate() {
	s.regs.CVR.Set(0)
}
