package core

// Hertz is a frequency in cycles per second.
type Hertz uint32

// KHz returns n kilohertz as a Hertz value.
func KHz(n uint32) Hertz {
	return Hertz(n * 1_000)
}

// MHz returns n megahertz as a Hertz value.
func MHz(n uint32) Hertz {
	return Hertz(n * 1_000_000)
}

// String formats the frequency with the largest unit that divides it
// evenly. It avoids fmt so MCU builds stay small.
func (h Hertz) String() string {
	switch {
	case h >= 1_000_000 && h%1_000_000 == 0:
		return Utoa(uint32(h)/1_000_000) + "MHz"
	case h >= 1_000 && h%1_000 == 0:
		return Utoa(uint32(h)/1_000) + "kHz"
	}
	return Utoa(uint32(h)) + "Hz"
}
