package core

import "testing"

func TestTimerClock(t *testing.T) {
	// Blue Pill style tree: HCLK 72 MHz, APB1 divided by 2, APB2 undivided.
	divided := Clocks{HClk: MHz(72), PClk1: MHz(36), PClk2: MHz(72)}
	// HSI tree: everything at 8 MHz, no dividers anywhere.
	flat := Clocks{HClk: MHz(8), PClk1: MHz(8), PClk2: MHz(8)}

	tests := []struct {
		name   string
		clocks Clocks
		bus    Bus
		want   Hertz
	}{
		{"apb1 divided doubles", divided, BusAPB1, MHz(72)},
		{"apb2 undivided passes through", divided, BusAPB2, MHz(72)},
		{"core follows hclk", divided, BusCore, MHz(72)},
		{"apb1 undivided passes through", flat, BusAPB1, MHz(8)},
		{"apb2 undivided passes through", flat, BusAPB2, MHz(8)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.clocks.TimerClock(tt.bus); got != tt.want {
				t.Errorf("TimerClock(%v) = %v, want %v", tt.bus, got, tt.want)
			}
		})
	}

	if got := divided.SysClk(); got != MHz(72) {
		t.Errorf("SysClk() = %v, want %v", got, MHz(72))
	}
}

func TestHertzString(t *testing.T) {
	tests := []struct {
		h    Hertz
		want string
	}{
		{Hertz(0), "0Hz"},
		{Hertz(1), "1Hz"},
		{Hertz(999), "999Hz"},
		{KHz(1), "1kHz"},
		{KHz(36), "36kHz"},
		{Hertz(1500), "1500Hz"},
		{MHz(8), "8MHz"},
		{MHz(72), "72MHz"},
		{Hertz(72_500_000), "72500kHz"},
	}

	for _, tt := range tests {
		if got := tt.h.String(); got != tt.want {
			t.Errorf("Hertz(%d).String() = %q, want %q", uint32(tt.h), got, tt.want)
		}
	}
}
