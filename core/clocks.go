// Package core carries the shared plumbing for the STM32F1 HAL: the
// frequency unit, the clock-tree snapshot peripheral drivers capture their
// input clock from, interrupt masking for code shared with handlers, and
// the debug output hook.
package core

// Bus identifies the clock domain a peripheral hangs off.
type Bus uint8

const (
	BusAPB1 Bus = iota // low-speed peripheral bus (TIM2..TIM4)
	BusAPB2            // high-speed peripheral bus (TIM1)
	BusCore            // processor clock (SysTick)
)

// Clocks is a snapshot of the configured clock tree, taken after the RCC
// has been set up. Drivers capture their input frequency from it once, at
// creation, and the values must not change while any driver holds them.
type Clocks struct {
	HClk  Hertz // AHB clock
	PClk1 Hertz // APB1 peripheral clock
	PClk2 Hertz // APB2 peripheral clock
}

// TimerClock returns the input clock of a timer on the given bus. The F1
// clock tree feeds timers PCLKx when the APBx prescaler is 1 and 2 x PCLKx
// otherwise; the prescaler setting is recovered from the PCLK/HCLK ratio.
func (c Clocks) TimerClock(bus Bus) Hertz {
	switch bus {
	case BusAPB1:
		return timerClock(c.PClk1, c.HClk)
	case BusAPB2:
		return timerClock(c.PClk2, c.HClk)
	default:
		return c.HClk
	}
}

func timerClock(pclk, hclk Hertz) Hertz {
	if pclk == hclk {
		return pclk
	}
	return 2 * pclk
}

// SysClk returns the clock feeding the SysTick counter.
func (c Clocks) SysClk() Hertz {
	return c.HClk
}
