// Package gpio defines the pin identities used by the timer remap tables.
// A Pin names a physical pin (port letter plus number) so routing checks
// can be expressed against concrete pins; actual pin configuration is the
// job of the runtime's machine package, not of this package.
package gpio

import "github.com/claymcleod/stm32f1xx-hal/core"

// Pin identifies one GPIO pin. The upper nibble holds the port index
// (0 for A through 4 for E), the lower nibble the pin number.
type Pin uint8

// NoPin marks a channel with no routed pin.
const NoPin Pin = 0xFF

// Port A
const (
	PA0 Pin = iota
	PA1
	PA2
	PA3
	PA4
	PA5
	PA6
	PA7
	PA8
	PA9
	PA10
	PA11
	PA12
	PA13
	PA14
	PA15
)

// Port B
const (
	PB0 Pin = 0x10 + iota
	PB1
	PB2
	PB3
	PB4
	PB5
	PB6
	PB7
	PB8
	PB9
	PB10
	PB11
	PB12
	PB13
	PB14
	PB15
)

// Port C
const (
	PC0 Pin = 0x20 + iota
	PC1
	PC2
	PC3
	PC4
	PC5
	PC6
	PC7
	PC8
	PC9
	PC10
	PC11
	PC12
	PC13
	PC14
	PC15
)

// Port D
const (
	PD0 Pin = 0x30 + iota
	PD1
	PD2
	PD3
	PD4
	PD5
	PD6
	PD7
	PD8
	PD9
	PD10
	PD11
	PD12
	PD13
	PD14
	PD15
)

// Port E
const (
	PE0 Pin = 0x40 + iota
	PE1
	PE2
	PE3
	PE4
	PE5
	PE6
	PE7
	PE8
	PE9
	PE10
	PE11
	PE12
	PE13
	PE14
	PE15
)

// Port returns the port letter ('A' through 'E').
func (p Pin) Port() byte {
	return 'A' + byte(p>>4)
}

// Number returns the pin number within its port.
func (p Pin) Number() uint8 {
	return uint8(p) & 0xF
}

// String returns the usual pin name, e.g. "PB10".
func (p Pin) String() string {
	if p == NoPin {
		return "none"
	}
	return "P" + string(p.Port()) + core.Utoa(uint32(p.Number()))
}
