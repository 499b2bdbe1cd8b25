// Package port opens the line a monitor talks over: a serial device or the
// local terminal.
package port

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/golang/glog"
	"go.bug.st/serial"
)

// Stdio names the local terminal.
const Stdio = "stdio"

// DefaultBaud is the line speed used when none is given.
const DefaultBaud = 115200

// Config describes a line.
type Config struct {
	// Name is a serial device path or Stdio.
	Name string
	Baud int
	// ReadTimeout makes reads on a serial device return empty after the
	// duration. Zero blocks.
	ReadTimeout time.Duration
}

// Port is an open line.
type Port interface {
	io.ReadWriteCloser
}

// Open opens the line described by cfg.
func Open(cfg Config) (Port, error) {
	if cfg.Name == "" || cfg.Name == Stdio {
		t, err := OpenTerminal()
		if err != nil {
			return nil, err
		}
		return t, nil
	}
	return OpenSerial(cfg)
}

// OpenSerial opens a serial device at 8N1.
func OpenSerial(cfg Config) (serial.Port, error) {
	baud := cfg.Baud
	if baud <= 0 {
		baud = DefaultBaud
	}
	p, err := serial.Open(cfg.Name, &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, describe(cfg.Name, err)
	}
	if cfg.ReadTimeout > 0 {
		if err := p.SetReadTimeout(cfg.ReadTimeout); err != nil {
			p.Close()
			return nil, fmt.Errorf("%s: set read timeout: %v", cfg.Name, err)
		}
	}
	// stale bytes from before the open.
	if err := p.ResetInputBuffer(); err != nil {
		glog.Warningf("%s: reset input: %v", cfg.Name, err)
	}
	glog.V(1).Infof("opened %s at %d baud", cfg.Name, baud)
	return p, nil
}

func describe(name string, err error) error {
	var portErr *serial.PortError
	if errors.As(err, &portErr) {
		switch portErr.Code() {
		case serial.PortNotFound:
			return fmt.Errorf("%s: no such serial port", name)
		case serial.PortBusy:
			return fmt.Errorf("%s: port busy", name)
		case serial.PermissionDenied:
			return fmt.Errorf("%s: permission denied", name)
		}
	}
	return fmt.Errorf("%s: %v", name, err)
}

// List returns the serial ports present on the system.
func List() ([]string, error) {
	return serial.GetPortsList()
}
