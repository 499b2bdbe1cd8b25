package instrument

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/robotalks/benchmon/pkg/env"
	"github.com/robotalks/benchmon/pkg/hw"
	"github.com/robotalks/benchmon/pkg/hw/periph"
	"github.com/robotalks/benchmon/pkg/hw/sim"
	"github.com/robotalks/benchmon/pkg/monitor"
	"github.com/robotalks/benchmon/pkg/port"
)

// Hardware backends.
const (
	BackendSim    = "sim"
	BackendPeriph = "periph"
)

// Config provides the options to set up the instrument.
type Config struct {
	// Port is a serial device path or "stdio".
	Port string
	Baud int
	// Backend selects the hardware: "sim" or "periph".
	Backend string
	// BoardFile is an optional YAML pin map.
	BoardFile string
	// ANSI enables the colored prompt and CLEAR.
	ANSI bool
}

var defaultConfig = Config{
	Port:    port.Stdio,
	Baud:    port.DefaultBaud,
	Backend: BackendSim,
}

// envErr is an invalid environment setting found at start up.
var envErr error

// EnvError reports an invalid environment setting replaced by its default.
// It is meant to be logged once flags are parsed.
func EnvError() error {
	return envErr
}

func init() {
	defaultConfig.Port = env.PortFromEnv("BENCHMON_PORT", defaultConfig.Port)
	defaultConfig.Baud, envErr = env.BaudFromEnv("BENCHMON_BAUD")
	if val := os.Getenv("BENCHMON_BACKEND"); val != "" {
		defaultConfig.Backend = val
	}
	if val := os.Getenv("BENCHMON_BOARD"); val != "" {
		defaultConfig.BoardFile = val
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Port, "port", defaultConfig.Port, "Serial device or stdio.")
	flag.IntVar(&defaultConfig.Baud, "baud", defaultConfig.Baud, "Serial baud rate.")
	flag.StringVar(&defaultConfig.Backend, "backend", defaultConfig.Backend, "Hardware backend: sim or periph.")
	flag.StringVar(&defaultConfig.BoardFile, "board", defaultConfig.BoardFile, "Board pin map (YAML).")
	flag.BoolVar(&defaultConfig.ANSI, "ansi", defaultConfig.ANSI, "Enable ANSI escapes (color prompt, clear).")
}

// Default gets the default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// Env is everything the instrument runs with.
type Env struct {
	Config   *Config
	Board    *hw.Board
	Hardware hw.Hardware
	Port     io.ReadWriteCloser
	UnitID   string
}

// LoadBoard returns the configured board or the default one.
func (c *Config) LoadBoard() (*hw.Board, error) {
	if c.BoardFile == "" {
		return hw.DefaultBoard(), nil
	}
	return hw.LoadBoard(c.BoardFile)
}

// NewHardware creates the hardware backend for the board.
func (c *Config) NewHardware(board *hw.Board) (hw.Hardware, error) {
	switch c.Backend {
	case "", BackendSim:
		return sim.NewBench(), nil
	case BackendPeriph:
		h, err := periph.New(board)
		if err != nil {
			return nil, err
		}
		return h, nil
	default:
		return nil, fmt.Errorf("unknown hardware backend: %q", c.Backend)
	}
}

// NewEnv loads the board, creates the hardware and opens the port.
func (c *Config) NewEnv() (*Env, error) {
	board, err := c.LoadBoard()
	if err != nil {
		return nil, fmt.Errorf("load board: %v", err)
	}
	h, err := c.NewHardware(board)
	if err != nil {
		return nil, fmt.Errorf("hardware %s: %v", c.Backend, err)
	}
	p, err := port.Open(port.Config{Name: c.Port, Baud: c.Baud})
	if err != nil {
		return nil, err
	}
	return &Env{Config: c, Board: board, Hardware: h, Port: p, UnitID: env.UnitID()}, nil
}

// MustNewEnv creates Env and fails on error.
func (c *Config) MustNewEnv() *Env {
	e, err := c.NewEnv()
	if err != nil {
		log.Fatalln(err)
	}
	return e
}

// NewMonitor creates the monitor serving the port.
func (e *Env) NewMonitor() *monitor.Monitor {
	return monitor.New(e.Hardware, e.Board, e.Port).
		WithANSI(e.Config.ANSI).
		WithUnitID(e.UnitID)
}
