package timer

import (
	"errors"
	"testing"

	"github.com/claymcleod/stm32f1xx-hal/gpio"
)

func TestRemapChannelPins(t *testing.T) {
	tests := []struct {
		remap Remap
		pins  [4]gpio.Pin
	}{
		{TIM1NoRemap, [4]gpio.Pin{gpio.PA8, gpio.PA9, gpio.PA10, gpio.PA11}},
		{TIM1FullRemap, [4]gpio.Pin{gpio.PE9, gpio.PE11, gpio.PE13, gpio.PE14}},
		{TIM2PartialRemap1, [4]gpio.Pin{gpio.PA15, gpio.PB3, gpio.PA2, gpio.PA3}},
		{TIM2PartialRemap2, [4]gpio.Pin{gpio.PA0, gpio.PA1, gpio.PB10, gpio.PB11}},
		{TIM3PartialRemap, [4]gpio.Pin{gpio.PB4, gpio.PB5, gpio.PB0, gpio.PB1}},
		{TIM4Remap, [4]gpio.Pin{gpio.PD12, gpio.PD13, gpio.PD14, gpio.PD15}},
	}

	for _, tt := range tests {
		for ch := 1; ch <= 4; ch++ {
			want := tt.pins[ch-1]
			if got := tt.remap.ChannelPin(ch); got != want {
				t.Errorf("%v.ChannelPin(%d) = %v, want %v", tt.remap.Peripheral(), ch, got, want)
			}
			if err := CheckChannelPin(tt.remap, ch, want); err != nil {
				t.Errorf("CheckChannelPin rejected the routed pin %v for channel %d: %v", want, ch, err)
			}
		}
	}
}

func TestCheckChannelPinRejectsUnroutedPin(t *testing.T) {
	// PA0 is TIM2 channel 1 without remap, but under the full remap
	// channel 1 moves to PA15.
	if err := CheckChannelPin(TIM2FullRemap, 1, gpio.PA0); !errors.Is(err, ErrPinNotRouted) {
		t.Errorf("CheckChannelPin(TIM2FullRemap, 1, PA0) = %v, want ErrPinNotRouted", err)
	}
	if err := CheckChannelPin(TIM2NoRemap, 1, gpio.PA15); !errors.Is(err, ErrPinNotRouted) {
		t.Errorf("CheckChannelPin(TIM2NoRemap, 1, PA15) = %v, want ErrPinNotRouted", err)
	}
	// Right pin, wrong channel.
	if err := CheckChannelPin(TIM3NoRemap, 2, gpio.PA6); !errors.Is(err, ErrPinNotRouted) {
		t.Errorf("CheckChannelPin(TIM3NoRemap, 2, PA6) = %v, want ErrPinNotRouted", err)
	}
}

func TestRemapProgrammingErrors(t *testing.T) {
	if !panics(func() { TIM2NoRemap.ChannelPin(0) }) {
		t.Error("channel 0 should panic")
	}
	if !panics(func() { TIM2NoRemap.ChannelPin(5) }) {
		t.Error("channel 5 should panic")
	}
	if !panics(func() { Remap(200).Peripheral() }) {
		t.Error("undefined remap value should panic")
	}
}

func TestRemapBits(t *testing.T) {
	tests := []struct {
		remap Remap
		want  uint8
	}{
		{TIM1NoRemap, 0b00},
		{TIM1FullRemap, 0b11},
		{TIM2PartialRemap1, 0b01},
		{TIM2PartialRemap2, 0b10},
		{TIM2FullRemap, 0b11},
		{TIM3PartialRemap, 0b10},
		{TIM3FullRemap, 0b11},
		{TIM4Remap, 0b1},
	}

	for _, tt := range tests {
		if got := tt.remap.Bits(); got != tt.want {
			t.Errorf("Bits() = %#b, want %#b", got, tt.want)
		}
	}
}

func TestRemapsPerPeripheral(t *testing.T) {
	tests := []struct {
		periph Peripheral
		want   []Remap
	}{
		{TIM1, []Remap{TIM1NoRemap, TIM1FullRemap}},
		{TIM2, []Remap{TIM2NoRemap, TIM2PartialRemap1, TIM2PartialRemap2, TIM2FullRemap}},
		{TIM3, []Remap{TIM3NoRemap, TIM3PartialRemap, TIM3FullRemap}},
		{TIM4, []Remap{TIM4NoRemap, TIM4Remap}},
	}

	for _, tt := range tests {
		got := Remaps(tt.periph)
		if len(got) != len(tt.want) {
			t.Errorf("Remaps(%v) returned %d configurations, want %d", tt.periph, len(got), len(tt.want))
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Remaps(%v)[%d] = %v, want %v", tt.periph, i, got[i], tt.want[i])
			}
			if got[i].Peripheral() != tt.periph {
				t.Errorf("remap %v claims peripheral %v", got[i], got[i].Peripheral())
			}
		}
	}
}
