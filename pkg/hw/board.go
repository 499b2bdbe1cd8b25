package hw

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	fx "github.com/robotalks/benchmon/pkg/framework"
)

// Bus widths.
const (
	DataBits    = 8
	AuxBits     = 3
	AnalogLines = 6
)

// Board maps logical lines to physical pins.
type Board struct {
	// Clock is the clock output line.
	Clock Pin `yaml:"clock"`
	// Data holds bits 0..7 of the data bus.
	Data []Pin `yaml:"data"`
	// Aux holds bits 0..2 of the auxiliary bus.
	Aux []Pin `yaml:"aux"`
	// Analog holds the digital ids of analog lines A0..A5. The ADC
	// channel of Analog[n] is n.
	Analog []Pin `yaml:"analog"`
	// VRef is the ADC reference voltage.
	VRef float64 `yaml:"vref"`
	// Names maps pins to backend specific line names.
	Names map[Pin]string `yaml:"names,omitempty"`
	// ADC is the converter sampling the analog lines, if any.
	ADC *ADC `yaml:"adc,omitempty"`
}

// ADC is an analog converter exposed by the Linux IIO subsystem.
type ADC struct {
	// Device is the IIO device directory, e.g.
	// /sys/bus/iio/devices/iio:device0.
	Device string `yaml:"device"`
	// Bits is the converter resolution.
	Bits int `yaml:"bits"`
	// Channels maps A0..A5 to converter channels. Empty means An is
	// channel n.
	Channels []int `yaml:"channels,omitempty"`
}

// Channel returns the converter channel of analog line n.
func (a *ADC) Channel(n int) int {
	if len(a.Channels) > n {
		return a.Channels[n]
	}
	return n
}

func (a *ADC) validate(errs *fx.AggregatedError) {
	if a.Device == "" {
		errs.Add(fmt.Errorf("adc device required"))
	}
	if a.Bits < 1 || a.Bits > 31 {
		errs.Add(fmt.Errorf("invalid adc bits %d", a.Bits))
	}
	if len(a.Channels) != 0 && len(a.Channels) != AnalogLines {
		errs.Add(fmt.Errorf("adc needs %d channels, got %d", AnalogLines, len(a.Channels)))
	}
	for n, ch := range a.Channels {
		if ch < 0 {
			errs.Add(fmt.Errorf("invalid adc channel %d for A%d", ch, n))
		}
	}
}

// DefaultBoard returns the stock wiring: data on 2..9, aux on 10..12,
// clock on 13, analog A0..A5 on 14..19.
func DefaultBoard() *Board {
	return &Board{
		Clock:  13,
		Data:   []Pin{2, 3, 4, 5, 6, 7, 8, 9},
		Aux:    []Pin{10, 11, 12},
		Analog: []Pin{14, 15, 16, 17, 18, 19},
		VRef:   5.0,
	}
}

// LoadBoard reads a YAML board file. Fields left out keep their defaults.
func LoadBoard(fn string) (*Board, error) {
	data, err := os.ReadFile(fn)
	if err != nil {
		return nil, err
	}
	b := DefaultBoard()
	if err := yaml.Unmarshal(data, b); err != nil {
		return nil, fmt.Errorf("parse board %q: %v", fn, err)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate checks the bus widths and that no pin is used twice.
func (b *Board) Validate() error {
	var errs fx.AggregatedError
	if len(b.Data) != DataBits {
		errs.Add(fmt.Errorf("data bus needs %d pins, got %d", DataBits, len(b.Data)))
	}
	if len(b.Aux) != AuxBits {
		errs.Add(fmt.Errorf("aux bus needs %d pins, got %d", AuxBits, len(b.Aux)))
	}
	if len(b.Analog) != AnalogLines {
		errs.Add(fmt.Errorf("analog bank needs %d pins, got %d", AnalogLines, len(b.Analog)))
	}
	if b.VRef <= 0 {
		errs.Add(fmt.Errorf("invalid vref %v", b.VRef))
	}
	used := map[Pin]string{b.Clock: "clock"}
	check := func(name string, pins []Pin) {
		for n, pin := range pins {
			what := fmt.Sprintf("%s[%d]", name, n)
			if prev, ok := used[pin]; ok {
				errs.Add(fmt.Errorf("pin %d used by both %s and %s", pin, prev, what))
				continue
			}
			used[pin] = what
		}
	}
	check("data", b.Data)
	check("aux", b.Aux)
	check("analog", b.Analog)
	if b.ADC != nil {
		b.ADC.validate(&errs)
	}
	return errs.Aggregate()
}

// OutputBits returns the bit-addressable output lines: data bus followed
// by aux bus. Bit index n maps to OutputBits()[n].
func (b *Board) OutputBits() []Pin {
	pins := make([]Pin, 0, len(b.Data)+len(b.Aux))
	pins = append(pins, b.Data...)
	return append(pins, b.Aux...)
}

// Volts converts a raw ADC reading to volts.
func (b *Board) Volts(raw int) float64 {
	return float64(raw) * b.VRef / ADCMax
}

// Name returns the backend name of a pin, or def formatted with the pin
// number when no name is configured.
func (b *Board) Name(pin Pin, def string) string {
	if name, ok := b.Names[pin]; ok && name != "" {
		return name
	}
	return fmt.Sprintf(def, pin)
}
