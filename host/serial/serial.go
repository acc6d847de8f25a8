// Package serial opens the serial link a board streams trace frames
// over.
package serial

import (
	"fmt"
	"io"
	"time"

	"github.com/tarm/serial"
)

// Port is the serial link seen by the host tools. The indirection keeps
// a mock port pluggable in tests.
type Port interface {
	io.ReadWriteCloser

	// Flush drops whatever is queued in the port buffers.
	Flush() error
}

// Config holds serial port configuration.
type Config struct {
	// Device path (e.g. "/dev/ttyUSB0", "COM3")
	Device string

	// Baud rate. The trace stream is sparse, so the default UART rate
	// is plenty.
	Baud int

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int
}

// DefaultConfig returns the configuration for a stock Blue Pill wired to
// a USB serial adapter.
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        115200,
		ReadTimeout: 100,
	}
}

// NativePort wraps the tarm/serial implementation.
type NativePort struct {
	port *serial.Port
	cfg  *Config
}

// Open opens a native serial port.
func Open(cfg *Config) (Port, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	serialConfig := &serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: time.Duration(cfg.ReadTimeout) * time.Millisecond,
	}

	port, err := serial.OpenPort(serialConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", cfg.Device, err)
	}

	return &NativePort{
		port: port,
		cfg:  cfg,
	}, nil
}

// Read reads data from the serial port.
func (p *NativePort) Read(b []byte) (int, error) {
	return p.port.Read(b)
}

// Write writes data to the serial port.
func (p *NativePort) Write(b []byte) (int, error) {
	return p.port.Write(b)
}

// Close closes the serial port.
func (p *NativePort) Close() error {
	if p.port != nil {
		return p.port.Close()
	}
	return nil
}

// Flush flushes the serial port buffers.
func (p *NativePort) Flush() error {
	// tarm/serial does not expose a flush; reads simply continue from
	// the current stream position.
	return nil
}
