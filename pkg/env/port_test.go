package env

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/benchmon/pkg/port"
)

func TestPortFromEnv(t *testing.T) {
	t.Setenv("BENCHTEST_PORT", "")
	require.Equal(t, "/dev/ttyUSB0", PortFromEnv("BENCHTEST_PORT", "/dev/ttyUSB0"))
	t.Setenv("BENCHTEST_PORT", "stdio")
	require.Equal(t, "stdio", PortFromEnv("BENCHTEST_PORT", "/dev/ttyUSB0"))
}

func TestBaudFromEnv(t *testing.T) {
	t.Setenv("BENCHTEST_BAUD", "")
	baud, err := BaudFromEnv("BENCHTEST_BAUD")
	require.NoError(t, err)
	require.Equal(t, port.DefaultBaud, baud)

	t.Setenv("BENCHTEST_BAUD", "9600")
	baud, err = BaudFromEnv("BENCHTEST_BAUD")
	require.NoError(t, err)
	require.Equal(t, 9600, baud)

	for _, val := range []string{"fast", "0", "-115200"} {
		t.Setenv("BENCHTEST_BAUD", val)
		baud, err = BaudFromEnv("BENCHTEST_BAUD")
		require.Error(t, err, val)
		require.Contains(t, err.Error(), "BENCHTEST_BAUD")
		require.Equal(t, port.DefaultBaud, baud)
	}
}
