//go:build stm32f103

package stm32f1

import (
	"runtime/volatile"
	"unsafe"
)

// DBGMCU_CR holds the per-peripheral debug freeze bits. The block sits
// above the peripheral bit-band window, so these are plain
// read-modify-write accesses; they are only ever made from thread
// context during setup.
const dbgmcuCR = 0xE004_2004

var dbgCR = (*volatile.Register32)(unsafe.Pointer(uintptr(dbgmcuCR)))

func dbgSetStop(bit uint8, on bool) {
	if on {
		dbgCR.SetBits(1 << bit)
	} else {
		dbgCR.ClearBits(1 << bit)
	}
}
