package core

// DebugWriter is a function type for writing debug messages.
type DebugWriter func(string)

var (
	// debugPrintln is the global debug print function (set by platform code)
	debugPrintln DebugWriter = func(s string) {} // No-op by default

	// debugEnabled controls whether debug output is active.
	// Disabled by default so register sequences keep their timing.
	debugEnabled bool = false
)

// SetDebugWriter sets the platform-specific debug output function.
// This allows platforms to redirect debug output to UART, USB, etc.
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output.
// Useful for timing-sensitive paths where output would skew measurements.
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// IsDebugEnabled returns whether debug output is enabled.
func IsDebugEnabled() bool {
	return debugEnabled
}

// DebugPrintln writes a debug message using the platform-specific writer.
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}
