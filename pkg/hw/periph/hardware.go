// Package periph drives real GPIO lines through periph.io.
package periph

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang/glog"
	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/robotalks/benchmon/pkg/hw"
)

// DefaultPinName is the pattern used when the board has no name for a pin.
const DefaultPinName = "GPIO%d"

// Hardware implements hw.Hardware with periph.io pins.
type Hardware struct {
	// ADC holds the analog channels keyed by line index, filled from the
	// board adc section. Channels without a converter read 0.
	ADC map[int]analog.PinADC

	board *hw.Board
	pins  map[hw.Pin]gpio.PinIO
	warn  sync.Once
}

var initOnce struct {
	sync.Once
	err error
}

// New initializes the host drivers and resolves every pin on the board.
func New(board *hw.Board) (*Hardware, error) {
	initOnce.Do(func() {
		_, initOnce.err = host.Init()
	})
	if initOnce.err != nil {
		return nil, fmt.Errorf("periph host init: %v", initOnce.err)
	}
	h := &Hardware{
		ADC:   make(map[int]analog.PinADC),
		board: board,
		pins:  make(map[hw.Pin]gpio.PinIO),
	}
	all := append([]hw.Pin{board.Clock}, board.OutputBits()...)
	all = append(all, board.Analog...)
	for _, pin := range all {
		name := board.Name(pin, DefaultPinName)
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, fmt.Errorf("pin %d: gpio %q not found", pin, name)
		}
		h.pins[pin] = p
	}
	if board.ADC != nil {
		chs, err := NewIIOChannels(board.ADC)
		if err != nil {
			return nil, err
		}
		h.ADC = chs
	}
	return h, nil
}

// ReadPin implements hw.Hardware.
func (h *Hardware) ReadPin(pin hw.Pin) bool {
	p := h.pins[pin]
	if p == nil {
		glog.Warningf("read unmapped pin %d", pin)
		return false
	}
	return p.Read() == gpio.High
}

// WritePin implements hw.Hardware.
func (h *Hardware) WritePin(pin hw.Pin, level bool) {
	p := h.pins[pin]
	if p == nil {
		glog.Warningf("write unmapped pin %d", pin)
		return
	}
	if err := p.Out(gpio.Level(level)); err != nil {
		glog.Errorf("pin %d (%s) out: %v", pin, p.Name(), err)
	}
}

// SetPinMode implements hw.Hardware.
func (h *Hardware) SetPinMode(pin hw.Pin, mode hw.Mode) {
	p := h.pins[pin]
	if p == nil {
		glog.Warningf("configure unmapped pin %d", pin)
		return
	}
	var err error
	switch mode {
	case hw.Input:
		err = p.In(gpio.PullNoChange, gpio.NoEdge)
	case hw.Output:
		// keep the current level until the next write.
		err = p.Out(p.Read())
	}
	if err != nil {
		glog.Errorf("pin %d (%s) set %s: %v", pin, p.Name(), mode, err)
	}
}

// ReadAnalog implements hw.Hardware.
func (h *Hardware) ReadAnalog(channel int) int {
	adc := h.ADC[channel]
	if adc == nil {
		h.warn.Do(func() {
			glog.Warning("no ADC configured, analog channels read 0")
		})
		return 0
	}
	s, err := adc.Read()
	if err != nil {
		glog.Errorf("ADC channel %d: %v", channel, err)
		return 0
	}
	lo, hi := adc.Range()
	return Scale(s.Raw, lo.Raw, hi.Raw)
}

// Delay implements hw.Hardware.
func (h *Hardware) Delay(d time.Duration) {
	time.Sleep(d)
}

// Scale maps a raw sample within [lo, hi] onto [0, hw.ADCMax].
func Scale(raw, lo, hi int32) int {
	if hi <= lo {
		return 0
	}
	if raw <= lo {
		return 0
	}
	if raw >= hi {
		return hw.ADCMax
	}
	return int(int64(raw-lo) * hw.ADCMax / int64(hi-lo))
}
