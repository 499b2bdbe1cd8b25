package bench

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBusLine(t *testing.T) {
	testCases := []struct {
		bus, value, line string
	}{
		{"D", "255", "D0D255"},
		{"D", "0xff", "D0XFF"},
		{"D", "0XA5", "D0XA5"},
		{"D", "0b1010", "D0B1010"},
		{"P", "0d7", "P0D7"},
		{"P", "0", "P0D0"},
	}
	for _, tc := range testCases {
		line, err := BusLine(tc.bus, tc.value)
		require.NoError(t, err, tc.value)
		require.Equal(t, tc.line, line)
	}
	for _, value := range []string{"", "0x", "256", "0x100", "abc", "0b102", "-1"} {
		_, err := BusLine("D", value)
		require.Error(t, err, value)
	}
}

func TestClockLine(t *testing.T) {
	for action, line := range map[string]string{
		"": "C", "pulse": "C", "HIGH": "CH", "low": "CL", "toggle": "CT", "t": "CT",
	} {
		out, err := ClockLine(action)
		require.NoError(t, err)
		require.Equal(t, line, out, action)
	}
	_, err := ClockLine("sideways")
	require.Error(t, err)
}

func TestBitLine(t *testing.T) {
	line, err := BitLine("set", "5")
	require.NoError(t, err)
	require.Equal(t, "BS5", line)
	line, err = BitLine("clear", "10")
	require.NoError(t, err)
	require.Equal(t, "BR10", line)
	_, err = BitLine("flip", "1")
	require.Error(t, err)
	_, err = BitLine("set", "x")
	require.Error(t, err)
	_, err = BitLine("set", "300")
	require.Error(t, err)
}
