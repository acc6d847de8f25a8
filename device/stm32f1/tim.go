//go:build stm32f103

package stm32f1

import (
	"runtime/volatile"
	"unsafe"

	"github.com/claymcleod/stm32f1xx-hal/core"
	"github.com/claymcleod/stm32f1xx-hal/timer"
)

// timRegs is the TIM register block layout, ref manual section 15.4.
// TIM1 carries a few extra registers past DMAR; none of them matter for
// time-base use, so one layout serves all four blocks.
type timRegs struct {
	CR1   volatile.Register32
	CR2   volatile.Register32
	SMCR  volatile.Register32
	DIER  volatile.Register32
	SR    volatile.Register32
	EGR   volatile.Register32
	CCMR1 volatile.Register32
	CCMR2 volatile.Register32
	CCER  volatile.Register32
	CNT   volatile.Register32
	PSC   volatile.Register32
	ARR   volatile.Register32
	RCR   volatile.Register32
	CCR1  volatile.Register32
	CCR2  volatile.Register32
	CCR3  volatile.Register32
	CCR4  volatile.Register32
	BDTR  volatile.Register32
	DCR   volatile.Register32
	DMAR  volatile.Register32
}

const (
	timCR1CEN = 0x1 << 0 // counter enable
	timCR1URS = 0x1 << 2 // only overflow raises an update request

	timCR2MMSPos  = 4
	timCR2MMSMask = 0x7 << timCR2MMSPos

	timDIERUIE = 0x1 << 0 // update interrupt enable
	timSRUIF   = 0x1 << 0 // update interrupt flag
	timEGRUG   = 0x1 << 0 // force an update event
)

// TIM is one general-purpose or advanced timer block. The four instances
// share this implementation; everything block-specific sits in the
// instance descriptors below.
type TIM struct {
	regs    *timRegs
	caps    timer.Capabilities
	enable  rccBit
	reset   rccBit
	dbgStop uint8 // DBGMCU_CR bit freezing this counter
}

// Timer instances of a medium-density F103. TIM1 hangs off APB2, the
// rest off APB1.
var (
	TIM1 = &TIM{
		regs:    (*timRegs)(unsafe.Pointer(uintptr(0x4001_2C00))),
		caps:    gpCaps(core.BusAPB2),
		enable:  apb2EnableBit(11),
		reset:   apb2ResetBit(11),
		dbgStop: 10,
	}
	TIM2 = &TIM{
		regs:    (*timRegs)(unsafe.Pointer(uintptr(0x4000_0000))),
		caps:    gpCaps(core.BusAPB1),
		enable:  apb1EnableBit(0),
		reset:   apb1ResetBit(0),
		dbgStop: 11,
	}
	TIM3 = &TIM{
		regs:    (*timRegs)(unsafe.Pointer(uintptr(0x4000_0400))),
		caps:    gpCaps(core.BusAPB1),
		enable:  apb1EnableBit(1),
		reset:   apb1ResetBit(1),
		dbgStop: 12,
	}
	TIM4 = &TIM{
		regs:    (*timRegs)(unsafe.Pointer(uintptr(0x4000_0800))),
		caps:    gpCaps(core.BusAPB1),
		enable:  apb1EnableBit(2),
		reset:   apb1ResetBit(2),
		dbgStop: 13,
	}
)

func gpCaps(bus core.Bus) timer.Capabilities {
	return timer.Capabilities{
		CounterBits:   16,
		Bus:           bus,
		HasPrescaler:  true,
		HasMasterMode: true,
		HasDebugStop:  true,
	}
}

func (t *TIM) Caps() timer.Capabilities { return t.caps }

func (t *TIM) EnableClock() { t.enable.set(true) }

func (t *TIM) ResetDomain() {
	t.reset.set(true)
	t.reset.set(false)
}

func (t *TIM) SetRunning(on bool) {
	if on {
		t.regs.CR1.SetBits(timCR1CEN)
	} else {
		t.regs.CR1.ClearBits(timCR1CEN)
	}
}

func (t *TIM) Running() bool {
	return t.regs.CR1.HasBits(timCR1CEN)
}

func (t *TIM) SetPrescaler(psc uint16) {
	t.regs.PSC.Set(uint32(psc))
}

func (t *TIM) Prescaler() uint16 {
	return uint16(t.regs.PSC.Get())
}

func (t *TIM) SetReload(arr uint32) {
	t.regs.ARR.Set(arr & 0xFFFF)
}

func (t *TIM) Reload() uint32 {
	return t.regs.ARR.Get() & 0xFFFF
}

func (t *TIM) Count() uint32 {
	return t.regs.CNT.Get() & 0xFFFF
}

func (t *TIM) SetUpdateInterrupt(on bool) {
	if on {
		t.regs.DIER.SetBits(timDIERUIE)
	} else {
		t.regs.DIER.ClearBits(timDIERUIE)
	}
}

func (t *TIM) UpdatePending() bool {
	return t.regs.SR.HasBits(timSRUIF)
}

func (t *TIM) ClearUpdate() {
	t.regs.SR.ClearBits(timSRUIF)
}

func (t *TIM) ForceUpdate() {
	// With URS set, UG reloads the prescaler and counter without
	// setting UIF, so a forced reload cannot masquerade as an elapsed
	// period.
	t.regs.CR1.SetBits(timCR1URS)
	t.regs.EGR.Set(timEGRUG)
	t.regs.CR1.ClearBits(timCR1URS)
}

func (t *TIM) SetMasterMode(mode timer.MasterMode) {
	t.regs.CR2.ReplaceBits(uint32(mode)<<timCR2MMSPos, timCR2MMSMask, 0)
}

func (t *TIM) FreezeOnDebug(on bool) {
	dbgSetStop(t.dbgStop, on)
}
