// Package monitor implements the command interpreter of the bench
// instrument: it reads operator lines and drives the hardware.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/golang/glog"

	"github.com/robotalks/benchmon/pkg/format"
	"github.com/robotalks/benchmon/pkg/hw"
	"github.com/robotalks/benchmon/pkg/term"
)

// errWriter keeps the first write error and drops everything after it.
type errWriter struct {
	w   io.Writer
	err error
}

func (w *errWriter) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := w.w.Write(p)
	if err != nil {
		w.err = err
	}
	return n, err
}

// Monitor is the instrument: a line reader, a command table and the
// hardware it drives.
type Monitor struct {
	Board *hw.Board
	HW    hw.Hardware
	// ANSI enables escape sequences (clear screen, colored prompt).
	ANSI bool
	// UnitID is reported by ABOUT when set.
	UnitID string

	reader       *term.Reader
	out          *errWriter
	commands     Table
	statusFormat string
}

// New creates a Monitor talking over rw and configures the clock line as
// an output.
func New(h hw.Hardware, board *hw.Board, rw io.ReadWriter) *Monitor {
	out := &errWriter{w: term.NewCRLFWriter(rw)}
	h.SetPinMode(board.Clock, hw.Output)
	return &Monitor{
		Board:    board,
		HW:       h,
		reader:   term.NewReader(rw, out),
		out:      out,
		commands: Commands,
		statusFormat: fmt.Sprintf("D: %%%dB %%2X\tP: %%%dB %%2X\tA: %%%dB %%2X\tC: %%o\n",
			len(board.Data), len(board.Aux), len(board.Analog)),
	}
}

// WithANSI turns escape sequences on or off.
func (m *Monitor) WithANSI(on bool) *Monitor {
	m.ANSI = on
	m.reader.Color = on
	return m
}

// WithUnitID sets the identity reported by ABOUT.
func (m *Monitor) WithUnitID(id string) *Monitor {
	m.UnitID = id
	return m
}

// WithCapacity changes the line buffer capacity.
func (m *Monitor) WithCapacity(capacity int) *Monitor {
	m.reader.WithCapacity(capacity)
	return m
}

// Commands returns the command table in use.
func (m *Monitor) Commands() Table {
	return m.commands
}

func (m *Monitor) print(s string) {
	io.WriteString(m.out, s)
}

func (m *Monitor) println(s string) {
	io.WriteString(m.out, s+"\n")
}

func (m *Monitor) printf(f string, args ...format.Arg) {
	format.Fprintf(m.out, f, args...)
}

// Dispatch executes one line. Letters are upper-cased in place; an empty
// line shows the status. Command errors are returned as *CommandError.
func (m *Monitor) Dispatch(line []byte) error {
	Upper(line)
	if len(line) == 0 {
		return m.status(Param{})
	}
	parsed, err := m.commands.Lookup(string(line))
	if err != nil {
		glog.V(2).Infof("reject %q: %v", line, err)
		return err
	}
	glog.V(2).Infof("exec %s %+v", parsed.Command.Keyword, parsed.Param)
	return parsed.Command.Action(m, parsed.Param)
}

// ServeOne prompts, reads one line and executes it. Command errors are
// reported to the operator; only transport errors are returned.
func (m *Monitor) ServeOne(ctx context.Context) error {
	line, err := m.reader.ReadLine(ctx)
	if err != nil {
		return err
	}
	if err := m.Dispatch(line); err != nil {
		var cmdErr *CommandError
		if !errors.As(err, &cmdErr) {
			return err
		}
		m.println(cmdErr.Message)
	}
	return m.out.err
}

// Run serves lines until ctx is canceled or the transport fails.
func (m *Monitor) Run(ctx context.Context) error {
	glog.Infof("monitor ready, %d output lines, %d analog lines",
		len(m.Board.OutputBits()), len(m.Board.Analog))
	for {
		if err := m.ServeOne(ctx); err != nil {
			return err
		}
	}
}
