// Package sim provides an in-memory bench: pins that remember what was
// driven onto them, inputs and analog channels set by the caller.
package sim

import (
	"sync"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/benchmon/pkg/hw"
)

// Op is a recorded hardware operation.
type Op struct {
	Kind  OpKind
	Pin   hw.Pin
	Level bool
	Mode  hw.Mode
	Delay time.Duration
}

// OpKind tells what an Op did.
type OpKind int

// Recorded operation kinds.
const (
	OpWrite OpKind = iota
	OpMode
	OpDelay
)

type line struct {
	mode   hw.Mode
	driven bool
	input  bool
}

// Bench implements hw.Hardware in memory.
type Bench struct {
	// Sleep makes Delay actually sleep.
	Sleep bool

	lines  map[hw.Pin]*line
	analog map[int]int
	ops    []Op
	lock   sync.Mutex
}

// NewBench creates an empty Bench. Every line starts as a low input.
func NewBench() *Bench {
	return &Bench{
		lines:  make(map[hw.Pin]*line),
		analog: make(map[int]int),
	}
}

func (b *Bench) line(pin hw.Pin) *line {
	l := b.lines[pin]
	if l == nil {
		l = &line{}
		b.lines[pin] = l
	}
	return l
}

// ReadPin implements hw.Hardware. An output reads back its driven level,
// an input reads the externally applied level.
func (b *Bench) ReadPin(pin hw.Pin) bool {
	b.lock.Lock()
	defer b.lock.Unlock()
	l := b.line(pin)
	if l.mode == hw.Output {
		return l.driven
	}
	return l.input
}

// WritePin implements hw.Hardware.
func (b *Bench) WritePin(pin hw.Pin, level bool) {
	b.lock.Lock()
	defer b.lock.Unlock()
	l := b.line(pin)
	if l.mode != hw.Output {
		glog.V(3).Infof("sim: write to input pin %d", pin)
	}
	l.driven = level
	b.ops = append(b.ops, Op{Kind: OpWrite, Pin: pin, Level: level})
}

// SetPinMode implements hw.Hardware.
func (b *Bench) SetPinMode(pin hw.Pin, mode hw.Mode) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.line(pin).mode = mode
	b.ops = append(b.ops, Op{Kind: OpMode, Pin: pin, Mode: mode})
}

// ReadAnalog implements hw.Hardware.
func (b *Bench) ReadAnalog(channel int) int {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.analog[channel]
}

// Delay implements hw.Hardware.
func (b *Bench) Delay(d time.Duration) {
	b.lock.Lock()
	b.ops = append(b.ops, Op{Kind: OpDelay, Delay: d})
	sleep := b.Sleep
	b.lock.Unlock()
	if sleep {
		time.Sleep(d)
	}
}

// SetInput applies an external level to a line.
func (b *Bench) SetInput(pin hw.Pin, level bool) *Bench {
	b.lock.Lock()
	b.line(pin).input = level
	b.lock.Unlock()
	return b
}

// SetAnalog sets the raw reading of a channel, clamped to [0, hw.ADCMax].
func (b *Bench) SetAnalog(channel, raw int) *Bench {
	if raw < 0 {
		raw = 0
	} else if raw > hw.ADCMax {
		raw = hw.ADCMax
	}
	b.lock.Lock()
	b.analog[channel] = raw
	b.lock.Unlock()
	return b
}

// Mode returns the configured mode of a line.
func (b *Bench) Mode(pin hw.Pin) hw.Mode {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.line(pin).mode
}

// Driven returns the level last written to a line.
func (b *Bench) Driven(pin hw.Pin) bool {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.line(pin).driven
}

// Ops returns and clears the recorded operations.
func (b *Bench) Ops() []Op {
	b.lock.Lock()
	defer b.lock.Unlock()
	ops := b.ops
	b.ops = nil
	return ops
}

// Writes returns the recorded writes, in order, and clears the record.
func (b *Bench) Writes() []Op {
	var writes []Op
	for _, op := range b.Ops() {
		if op.Kind == OpWrite {
			writes = append(writes, op)
		}
	}
	return writes
}
