package instrument

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/benchmon/pkg/hw"
	"github.com/robotalks/benchmon/pkg/hw/sim"
)

func TestNewConfigCopiesDefaults(t *testing.T) {
	conf := NewConfig()
	conf.Backend = "other"
	require.NotEqual(t, "other", Default().Backend)
}

func TestNewHardware(t *testing.T) {
	conf := &Config{Backend: BackendSim}
	h, err := conf.NewHardware(hw.DefaultBoard())
	require.NoError(t, err)
	require.IsType(t, &sim.Bench{}, h)

	conf.Backend = "fpga"
	_, err = conf.NewHardware(hw.DefaultBoard())
	require.EqualError(t, err, `unknown hardware backend: "fpga"`)
}

func TestLoadBoard(t *testing.T) {
	b, err := (&Config{}).LoadBoard()
	require.NoError(t, err)
	require.Equal(t, hw.DefaultBoard(), b)

	fn := filepath.Join(t.TempDir(), "board.yaml")
	require.NoError(t, os.WriteFile(fn, []byte("clock: 21\n"), 0644))
	b, err = (&Config{BoardFile: fn}).LoadBoard()
	require.NoError(t, err)
	require.Equal(t, hw.Pin(21), b.Clock)

	_, err = (&Config{BoardFile: filepath.Join(t.TempDir(), "missing.yaml")}).NewEnv()
	require.Error(t, err)
}
