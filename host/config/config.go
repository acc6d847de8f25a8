// Package config loads board descriptions for the host tools.
package config

import (
	"encoding/json"
	"os"

	"github.com/claymcleod/stm32f1xx-hal/core"
)

// Board describes the target board a host tool talks to.
type Board struct {
	Name    string // Board name (informational)
	HClkHz  uint32 // AHB clock (Hz)
	PClk1Hz uint32 // APB1 clock (Hz)
	PClk2Hz uint32 // APB2 clock (Hz)
	Device  string // Serial device path
	Baud    int    // Serial baud rate
}

// Load parses a JSON board description and returns a Board
func Load(jsonData []byte) (*Board, error) {
	var board Board

	err := json.Unmarshal(jsonData, &board)
	if err != nil {
		return nil, err
	}

	// Apply defaults
	applyDefaults(&board)

	return &board, nil
}

// LoadFile reads and parses a JSON board description file
func LoadFile(path string) (*Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Load(data)
}

// applyDefaults fills in missing board values with Blue Pill defaults
func applyDefaults(board *Board) {
	if board.Name == "" {
		board.Name = "bluepill"
	}

	// Default clock tree: 72MHz sysclk, APB1 divided by 2
	if board.HClkHz == 0 {
		board.HClkHz = 72_000_000
	}
	if board.PClk1Hz == 0 {
		board.PClk1Hz = board.HClkHz / 2
	}
	if board.PClk2Hz == 0 {
		board.PClk2Hz = board.HClkHz
	}

	if board.Device == "" {
		board.Device = "/dev/ttyUSB0"
	}
	if board.Baud == 0 {
		board.Baud = 115200
	}
}

// DefaultBluePill returns the board description for a stock Blue Pill
func DefaultBluePill() *Board {
	return &Board{
		Name:    "bluepill",
		HClkHz:  72_000_000,
		PClk1Hz: 36_000_000,
		PClk2Hz: 72_000_000,
		Device:  "/dev/ttyUSB0",
		Baud:    115200,
	}
}

// Clocks returns the clock tree described by the board.
func (b *Board) Clocks() core.Clocks {
	return core.Clocks{
		HClk:  core.Hertz(b.HClkHz),
		PClk1: core.Hertz(b.PClk1Hz),
		PClk2: core.Hertz(b.PClk2Hz),
	}
}
