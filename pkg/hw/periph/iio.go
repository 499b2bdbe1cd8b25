package periph

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/physic"

	"github.com/robotalks/benchmon/pkg/hw"
)

// IIOChannel is one voltage channel of a Linux IIO converter. It reads
// in_voltage<N>_raw and scales with in_voltage<N>_scale (or the shared
// in_voltage_scale) when present.
type IIOChannel struct {
	Device  string
	Channel int
	Bits    int
}

var _ analog.PinADC = (*IIOChannel)(nil)

// NewIIOChannels creates the channels of analog lines A0..A5.
func NewIIOChannels(adc *hw.ADC) (map[int]analog.PinADC, error) {
	if fi, err := os.Stat(adc.Device); err != nil {
		return nil, fmt.Errorf("adc: %v", err)
	} else if !fi.IsDir() {
		return nil, fmt.Errorf("adc: %s is not a directory", adc.Device)
	}
	chs := make(map[int]analog.PinADC, hw.AnalogLines)
	for n := 0; n < hw.AnalogLines; n++ {
		chs[n] = &IIOChannel{Device: adc.Device, Channel: adc.Channel(n), Bits: adc.Bits}
	}
	return chs, nil
}

func (c *IIOChannel) String() string {
	return c.Name()
}

// Halt implements conn.Resource.
func (c *IIOChannel) Halt() error {
	return nil
}

// Name implements pin.Pin.
func (c *IIOChannel) Name() string {
	return fmt.Sprintf("%s/in_voltage%d", filepath.Base(c.Device), c.Channel)
}

// Number implements pin.Pin.
func (c *IIOChannel) Number() int {
	return c.Channel
}

// Function implements pin.Pin.
func (c *IIOChannel) Function() string {
	return "ADC"
}

// Range implements analog.PinADC.
func (c *IIOChannel) Range() (analog.Sample, analog.Sample) {
	top := int32(1)<<uint(c.Bits) - 1
	return c.sample(0), c.sample(top)
}

// Read implements analog.PinADC.
func (c *IIOChannel) Read() (analog.Sample, error) {
	fn := filepath.Join(c.Device, fmt.Sprintf("in_voltage%d_raw", c.Channel))
	data, err := os.ReadFile(fn)
	if err != nil {
		return analog.Sample{}, err
	}
	raw, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 32)
	if err != nil {
		return analog.Sample{}, fmt.Errorf("%s: %v", fn, err)
	}
	return c.sample(int32(raw)), nil
}

func (c *IIOChannel) sample(raw int32) analog.Sample {
	s := analog.Sample{Raw: raw}
	if scale, ok := c.scale(); ok {
		s.V = physic.ElectricPotential(float64(raw) * scale * float64(physic.MilliVolt))
	}
	return s
}

// scale is in millivolts per count.
func (c *IIOChannel) scale() (float64, bool) {
	for _, name := range []string{fmt.Sprintf("in_voltage%d_scale", c.Channel), "in_voltage_scale"} {
		data, err := os.ReadFile(filepath.Join(c.Device, name))
		if err != nil {
			continue
		}
		if v, err := strconv.ParseFloat(strings.TrimSpace(string(data)), 64); err == nil {
			return v, true
		}
	}
	return 0, false
}
