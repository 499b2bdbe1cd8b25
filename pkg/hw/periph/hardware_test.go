package periph

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/physic"

	"github.com/robotalks/benchmon/pkg/hw"
)

func TestScale(t *testing.T) {
	require.Equal(t, 0, Scale(0, 0, 4095))
	require.Equal(t, 1023, Scale(4095, 0, 4095))
	require.Equal(t, 511, Scale(2048, 0, 4095))
	require.Equal(t, 0, Scale(-5, 0, 4095))
	require.Equal(t, 1023, Scale(5000, 0, 4095))
	require.Equal(t, 0, Scale(10, 10, 10))
}

type fakeADC struct {
	analog.PinADC
	raw    int32
	lo, hi int32
	err    error
}

func (a *fakeADC) Range() (analog.Sample, analog.Sample) {
	return analog.Sample{Raw: a.lo}, analog.Sample{Raw: a.hi}
}

func (a *fakeADC) Read() (analog.Sample, error) {
	return analog.Sample{Raw: a.raw}, a.err
}

func TestReadAnalog(t *testing.T) {
	h := &Hardware{
		ADC: map[int]analog.PinADC{
			0: &fakeADC{raw: 4095, hi: 4095},
			1: &fakeADC{raw: 2048, hi: 4095},
			2: &fakeADC{raw: 100, hi: 4095, err: errors.New("i2c nack")},
			3: &fakeADC{raw: 32767, lo: -32768, hi: 32767},
		},
		board: hw.DefaultBoard(),
	}
	require.Equal(t, hw.ADCMax, h.ReadAnalog(0))
	require.Equal(t, 511, h.ReadAnalog(1))
	require.Equal(t, 0, h.ReadAnalog(2))
	require.Equal(t, hw.ADCMax, h.ReadAnalog(3))
	require.Equal(t, 0, h.ReadAnalog(4), "no converter")
}

func writeIIO(t *testing.T, dir, name, content string) {
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestIIOChannels(t *testing.T) {
	dir := t.TempDir()
	writeIIO(t, dir, "in_voltage3_raw", "2047\n")
	writeIIO(t, dir, "in_voltage3_scale", "0.5\n")
	writeIIO(t, dir, "in_voltage1_raw", "4095\n")
	writeIIO(t, dir, "in_voltage_scale", "1.0\n")
	writeIIO(t, dir, "in_voltage2_raw", "junk\n")

	chs, err := NewIIOChannels(&hw.ADC{Device: dir, Bits: 12, Channels: []int{3, 1, 2, 0, 4, 5}})
	require.NoError(t, err)
	require.Len(t, chs, hw.AnalogLines)

	a0 := chs[0]
	require.Equal(t, 3, a0.Number())
	require.Equal(t, filepath.Base(dir)+"/in_voltage3", a0.Name())
	s, err := a0.Read()
	require.NoError(t, err)
	require.Equal(t, int32(2047), s.Raw)
	require.Equal(t, physic.ElectricPotential(2047*500)*physic.MicroVolt, s.V)
	lo, hi := a0.Range()
	require.Equal(t, int32(0), lo.Raw)
	require.Equal(t, int32(4095), hi.Raw)

	s, err = chs[1].Read()
	require.NoError(t, err)
	require.Equal(t, 4095*physic.MilliVolt, s.V, "shared scale")

	_, err = chs[2].Read()
	require.Error(t, err)
	_, err = chs[3].Read()
	require.Error(t, err, "missing raw file")

	h := &Hardware{ADC: chs, board: hw.DefaultBoard()}
	require.Equal(t, 511, h.ReadAnalog(0))
	require.Equal(t, hw.ADCMax, h.ReadAnalog(1))
	require.Equal(t, 0, h.ReadAnalog(2))

	_, err = NewIIOChannels(&hw.ADC{Device: filepath.Join(dir, "none"), Bits: 12})
	require.Error(t, err)
}
