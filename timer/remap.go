package timer

import (
	"errors"

	"github.com/claymcleod/stm32f1xx-hal/gpio"
)

// Peripheral names a timer peripheral kind for the remap tables.
type Peripheral uint8

const (
	TIM1 Peripheral = iota + 1
	TIM2
	TIM3
	TIM4
)

func (p Peripheral) String() string {
	switch p {
	case TIM1:
		return "TIM1"
	case TIM2:
		return "TIM2"
	case TIM3:
		return "TIM3"
	case TIM4:
		return "TIM4"
	}
	return "TIM?"
}

// Remap selects one of the alternate pin routings the AFIO controller
// offers a timer. Each value belongs to exactly one peripheral and fixes
// the pin of every channel; the closed set below is what the silicon
// provides, so an accepted (remap, channel, pin) triple is known routable
// before any register is touched.
//
// Channel routing per configuration:
//
//	TIM1NoRemap        PA8  PA9  PA10 PA11
//	TIM1FullRemap      PE9  PE11 PE13 PE14
//	TIM2NoRemap        PA0  PA1  PA2  PA3
//	TIM2PartialRemap1  PA15 PB3  PA2  PA3
//	TIM2PartialRemap2  PA0  PA1  PB10 PB11
//	TIM2FullRemap      PA15 PB3  PB10 PB11
//	TIM3NoRemap        PA6  PA7  PB0  PB1
//	TIM3PartialRemap   PB4  PB5  PB0  PB1
//	TIM3FullRemap      PC6  PC7  PC8  PC9
//	TIM4NoRemap        PB6  PB7  PB8  PB9
//	TIM4Remap          PD12 PD13 PD14 PD15
type Remap uint8

const (
	TIM1NoRemap Remap = iota
	TIM1FullRemap
	TIM2NoRemap
	TIM2PartialRemap1
	TIM2PartialRemap2
	TIM2FullRemap
	TIM3NoRemap
	TIM3PartialRemap
	TIM3FullRemap
	TIM4NoRemap
	TIM4Remap
)

// ErrPinNotRouted is reported when a pin is not the one the selected remap
// configuration routes for the requested channel.
var ErrPinNotRouted = errors.New("timer: pin not routed to channel in this configuration")

type remapInfo struct {
	periph Peripheral
	bits   uint8 // AFIO_MAPR field value for this configuration
	pins   [4]gpio.Pin
}

var remaps = [...]remapInfo{
	TIM1NoRemap:       {TIM1, 0b00, [4]gpio.Pin{gpio.PA8, gpio.PA9, gpio.PA10, gpio.PA11}},
	TIM1FullRemap:     {TIM1, 0b11, [4]gpio.Pin{gpio.PE9, gpio.PE11, gpio.PE13, gpio.PE14}},
	TIM2NoRemap:       {TIM2, 0b00, [4]gpio.Pin{gpio.PA0, gpio.PA1, gpio.PA2, gpio.PA3}},
	TIM2PartialRemap1: {TIM2, 0b01, [4]gpio.Pin{gpio.PA15, gpio.PB3, gpio.PA2, gpio.PA3}},
	TIM2PartialRemap2: {TIM2, 0b10, [4]gpio.Pin{gpio.PA0, gpio.PA1, gpio.PB10, gpio.PB11}},
	TIM2FullRemap:     {TIM2, 0b11, [4]gpio.Pin{gpio.PA15, gpio.PB3, gpio.PB10, gpio.PB11}},
	TIM3NoRemap:       {TIM3, 0b00, [4]gpio.Pin{gpio.PA6, gpio.PA7, gpio.PB0, gpio.PB1}},
	TIM3PartialRemap:  {TIM3, 0b10, [4]gpio.Pin{gpio.PB4, gpio.PB5, gpio.PB0, gpio.PB1}},
	TIM3FullRemap:     {TIM3, 0b11, [4]gpio.Pin{gpio.PC6, gpio.PC7, gpio.PC8, gpio.PC9}},
	TIM4NoRemap:       {TIM4, 0b0, [4]gpio.Pin{gpio.PB6, gpio.PB7, gpio.PB8, gpio.PB9}},
	TIM4Remap:         {TIM4, 0b1, [4]gpio.Pin{gpio.PD12, gpio.PD13, gpio.PD14, gpio.PD15}},
}

func (r Remap) info() remapInfo {
	if int(r) >= len(remaps) {
		panic("timer: unknown remap configuration")
	}
	return remaps[r]
}

// Peripheral returns the timer the configuration belongs to.
func (r Remap) Peripheral() Peripheral {
	return r.info().periph
}

// Bits returns the AFIO_MAPR field value that selects this configuration.
// This package never writes the MAPR register; pin setup code does.
func (r Remap) Bits() uint8 {
	return r.info().bits
}

// ChannelPin returns the pin the configuration routes for a channel
// (1 through 4).
func (r Remap) ChannelPin(channel int) gpio.Pin {
	if channel < 1 || channel > 4 {
		panic("timer: channel out of range")
	}
	return r.info().pins[channel-1]
}

// CheckChannelPin verifies that pin is the one the configuration routes
// for the channel. A mismatched pin is a routing error the caller can
// report; a channel outside 1 through 4 is a programming error and
// panics.
func CheckChannelPin(r Remap, channel int, pin gpio.Pin) error {
	if r.ChannelPin(channel) != pin {
		return ErrPinNotRouted
	}
	return nil
}

// Remaps returns the configurations defined for a peripheral, in MAPR
// field order.
func Remaps(p Peripheral) []Remap {
	var out []Remap
	for i := range remaps {
		if remaps[i].periph == p {
			out = append(out, Remap(i))
		}
	}
	return out
}
