//go:build stm32f103

package stm32f1

import (
	"runtime/volatile"
	"unsafe"
)

// RCC memory map, ref manual section 7.3. Only the words holding timer
// clock gates and domain resets are named here.
const (
	rccBase     = 0x4002_1000
	rccAPB2RSTR = rccBase + 0x0C
	rccAPB1RSTR = rccBase + 0x10
	rccAPB2ENR  = rccBase + 0x18
	rccAPB1ENR  = rccBase + 0x1C
)

// The Cortex-M3 aliases every bit of the peripheral space onto its own
// word in the bit-band region. A store through the alias flips a single
// bit atomically, so the shared RCC words need no read-modify-write and
// no masking against concurrent driver startup.
const (
	bitbandBase        = 0x4200_0000
	bitbandPeriphStart = 0x4000_0000
)

func bitbandAlias(addr uintptr, bit uint8) *volatile.Register32 {
	word := bitbandBase + (addr-bitbandPeriphStart)*32 + uintptr(bit)*4
	return (*volatile.Register32)(unsafe.Pointer(word))
}

// rccBit is one flag in an RCC enable or reset register, poked through
// its bit-band alias.
type rccBit struct {
	addr uintptr
	bit  uint8
}

func (b rccBit) set(on bool) {
	v := uint32(0)
	if on {
		v = 1
	}
	bitbandAlias(b.addr, b.bit).Set(v)
}

func apb1EnableBit(bit uint8) rccBit { return rccBit{rccAPB1ENR, bit} }
func apb1ResetBit(bit uint8) rccBit  { return rccBit{rccAPB1RSTR, bit} }
func apb2EnableBit(bit uint8) rccBit { return rccBit{rccAPB2ENR, bit} }
func apb2ResetBit(bit uint8) rccBit  { return rccBit{rccAPB2RSTR, bit} }
