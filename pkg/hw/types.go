// Package hw defines the hardware capability used by the monitor and the
// board pin map.
package hw

import (
	"fmt"
	"time"
)

// Pin identifies a physical I/O line.
type Pin uint8

// Mode is the direction of a pin.
type Mode int

// Pin modes.
const (
	Input Mode = iota
	Output
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case Input:
		return "input"
	case Output:
		return "output"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ADCMax is the largest raw analog reading.
const ADCMax = 1023

// Hardware is the pin level access the monitor is built on.
// Implementations report failures through their own logging: a bench
// instrument keeps serving commands when a line misbehaves.
type Hardware interface {
	// ReadPin reads the level of a digital line.
	ReadPin(Pin) bool
	// WritePin drives a digital line.
	WritePin(Pin, bool)
	// SetPinMode configures the direction of a line.
	SetPinMode(Pin, Mode)
	// ReadAnalog samples an analog channel, in [0, ADCMax].
	ReadAnalog(channel int) int
	// Delay blocks for the duration.
	Delay(time.Duration)
}
