package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/benchmon/pkg/hw"
)

func TestBenchLevels(t *testing.T) {
	b := NewBench()
	require.Equal(t, hw.Input, b.Mode(3))
	b.SetInput(3, true)
	require.True(t, b.ReadPin(3))

	b.WritePin(3, false)
	require.True(t, b.ReadPin(3), "input keeps the applied level")
	b.SetPinMode(3, hw.Output)
	require.False(t, b.ReadPin(3))
	b.WritePin(3, true)
	require.True(t, b.ReadPin(3))
	require.True(t, b.Driven(3))

	require.Equal(t, []Op{
		{Kind: OpWrite, Pin: 3},
		{Kind: OpMode, Pin: 3, Mode: hw.Output},
		{Kind: OpWrite, Pin: 3, Level: true},
	}, b.Ops())
	require.Empty(t, b.Ops())
}

func TestBenchAnalogAndDelay(t *testing.T) {
	b := NewBench()
	b.SetAnalog(0, 2000).SetAnalog(1, -5).SetAnalog(2, 512)
	require.Equal(t, hw.ADCMax, b.ReadAnalog(0))
	require.Equal(t, 0, b.ReadAnalog(1))
	require.Equal(t, 512, b.ReadAnalog(2))
	require.Equal(t, 0, b.ReadAnalog(5))

	b.Delay(time.Second)
	require.Equal(t, []Op{{Kind: OpDelay, Delay: time.Second}}, b.Ops())
}
