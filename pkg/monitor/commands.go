package monitor

import (
	"strings"
	"time"

	"github.com/robotalks/benchmon/pkg/format"
	"github.com/robotalks/benchmon/pkg/hw"
)

// PulseHold is how long a clock pulse holds the opposite level.
const PulseHold = 50 * time.Millisecond

// Version is reported by ABOUT.
const Version = "0.1"

// Commands is the command table in priority order.
//
// PLOT sits ahead of the P prefix so the bus command does not swallow it.
var Commands = Table{
	{Keyword: "HELP", Usage: "help", Help: "Show this command overview", Match: Exact("HELP"), Action: (*Monitor).help},
	{Keyword: "CLEAR", Usage: "clear", Help: "Clear screen (only on supported terminal)", Match: Exact("CLEAR"), Action: (*Monitor).clear},
	{Keyword: "C", Usage: "c", Help: "Send clock pulse", Match: Exact("C"), Action: (*Monitor).clockPulse},
	{Keyword: "CH", Usage: "ch", Help: "Clock high", Match: Exact("CH"), Action: (*Monitor).clockHigh},
	{Keyword: "CL", Usage: "cl", Help: "Clock low", Match: Exact("CL"), Action: (*Monitor).clockLow},
	{Keyword: "CT", Usage: "ct", Help: "Clock toggle", Match: Exact("CT"), Action: (*Monitor).clockToggle},
	{Keyword: "PLOT", Usage: "plot", Help: "Plot inputs (not supported)", Match: Exact("PLOT"), Action: (*Monitor).plot},
	{Keyword: "D", Usage: "d0x.. d0b.. d0d..", Help: "Output 8-bit word on D0 - D7", Match: Prefix("D", 1), Parse: RadixParam, Action: (*Monitor).writeData},
	{Keyword: "P", Usage: "p0x.. p0b.. p0d..", Help: "Output 3-bit on D8 - D10", Match: Prefix("P", 1), Parse: RadixParam, Action: (*Monitor).writeAux},
	{Keyword: "BR", Usage: "brN", Help: "Reset bit N (0 - 10)", Match: Prefix("BR", 2), Parse: DecimalParam, Action: (*Monitor).bitReset},
	{Keyword: "BS", Usage: "bsN", Help: "Set bit N (0 - 10)", Match: Prefix("BS", 2), Parse: DecimalParam, Action: (*Monitor).bitSet},
	{Keyword: "READ", Usage: "read", Help: "Read digital status on A0 - A5 and D0 - D10", Match: Prefix("READ", 4), Action: (*Monitor).readDigital},
	{Keyword: "AREAD", Usage: "aread", Help: "Read analog voltage on A0 - A5", Match: Prefix("AREAD", 4), Action: (*Monitor).readAnalog},
	{Keyword: "STATUS", Usage: "status", Help: "One line I/O status (also on empty line)", Match: Prefix("STATUS", 6), Action: (*Monitor).status},
	{Keyword: "ABOUT", Usage: "about", Help: "About this instrument", Match: Prefix("ABOUT", 3), Action: (*Monitor).about},
}

const (
	banner    = "===================================="
	separator = "--------------------------------------------------"
)

func (m *Monitor) help(Param) error {
	m.println("")
	m.println(banner)
	m.println("Logic generator and monitor")
	m.println(banner)
	m.println("Supported commands:")
	for _, cmd := range m.commands {
		m.printf("%s - %s\n", format.Str(padRight(cmd.Usage, 18)), format.Str(cmd.Help))
	}
	return nil
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}

func (m *Monitor) clear(Param) error {
	if m.ANSI {
		m.print("\x1b[2J\x1b[H")
		return nil
	}
	m.println("Clear function is disabled since not all displays support it.")
	return nil
}

func (m *Monitor) clockPulse(Param) error {
	clk := m.Board.Clock
	idle := m.HW.ReadPin(clk)
	if idle {
		m.println("CLK pulse. Idle high.")
	} else {
		m.println("CLK pulse. Idle low.")
	}
	m.HW.WritePin(clk, !idle)
	m.HW.Delay(PulseHold)
	m.HW.WritePin(clk, idle)
	return nil
}

func (m *Monitor) clockHigh(Param) error {
	m.println("Clock high.")
	m.HW.WritePin(m.Board.Clock, true)
	return nil
}

func (m *Monitor) clockLow(Param) error {
	m.println("Clock low.")
	m.HW.WritePin(m.Board.Clock, false)
	return nil
}

func (m *Monitor) clockToggle(Param) error {
	m.println("Clock toggle.")
	m.HW.WritePin(m.Board.Clock, !m.HW.ReadPin(m.Board.Clock))
	return nil
}

func (m *Monitor) plot(Param) error {
	m.println("Plot not supported (yet).")
	return nil
}

func (m *Monitor) writeData(p Param) error {
	value := byte(p.Value)
	for bit := len(m.Board.Data) - 1; bit >= 0; bit-- {
		pin := m.Board.Data[bit]
		m.HW.SetPinMode(pin, hw.Output)
		m.HW.WritePin(pin, value&(1<<uint(bit)) != 0)
	}
	return m.status(p)
}

func (m *Monitor) writeAux(p Param) error {
	value := byte(p.Value)
	m.printf("DEC: %i \t HEX: %X \t BIN: %B\n", format.Byte(value), format.Byte(value), format.Byte(value))
	m.println(separator)
	for bit := 7; bit >= 0; bit-- {
		m.printf("Bit%i:%i\t", format.Int(bit), format.Int(int(value>>uint(bit))&1))
	}
	m.println("")
	aux := len(m.Board.Aux)
	for bit := 7; bit >= 0; bit-- {
		if bit >= aux {
			m.print("X\t")
			continue
		}
		level := value&(1<<uint(bit)) != 0
		m.printf("D%i:%i\t", format.Int(len(m.Board.Data)+bit), format.Bool(level))
		pin := m.Board.Aux[bit]
		m.HW.SetPinMode(pin, hw.Output)
		m.HW.WritePin(pin, level)
	}
	m.println("")
	return nil
}

func (m *Monitor) bitPin(p Param) (hw.Pin, error) {
	bits := m.Board.OutputBits()
	if p.Overflow || p.Value >= uint64(len(bits)) {
		return 0, ErrNotOutputPort
	}
	return bits[p.Value], nil
}

func (m *Monitor) bitReset(p Param) error {
	pin, err := m.bitPin(p)
	if err != nil {
		return err
	}
	m.printf("Setting bit: %i low.\n", format.Long(int64(p.Value)))
	m.HW.WritePin(pin, false)
	return nil
}

func (m *Monitor) bitSet(p Param) error {
	pin, err := m.bitPin(p)
	if err != nil {
		return err
	}
	m.printf("Setting bit: %i high.\n", format.Long(int64(p.Value)))
	m.HW.SetPinMode(pin, hw.Output)
	m.HW.WritePin(pin, true)
	return nil
}

func (m *Monitor) readDigital(Param) error {
	for n, pin := range m.Board.Analog {
		m.HW.SetPinMode(pin, hw.Input)
		m.printf("A%i:%i\t", format.Int(n), format.Bool(m.HW.ReadPin(pin)))
	}
	m.println("")
	// outputs are read back without reconfiguring them.
	for n, pin := range m.Board.OutputBits() {
		m.printf("D%i:%i\t", format.Int(n), format.Bool(m.HW.ReadPin(pin)))
	}
	m.println("")
	return nil
}

func (m *Monitor) readAnalog(Param) error {
	for n := range m.Board.Analog {
		m.printf("A%i:%i\t\t", format.Int(n), format.Int(m.HW.ReadAnalog(n)))
	}
	m.println("")
	for n := range m.Board.Analog {
		m.printf("A%i:%2f[V]\t", format.Int(n), format.Float(m.Board.Volts(m.HW.ReadAnalog(n))))
	}
	m.println("")
	return nil
}

func (m *Monitor) readBus(pins []hw.Pin) (v int) {
	for bit, pin := range pins {
		if m.HW.ReadPin(pin) {
			v |= 1 << uint(bit)
		}
	}
	return
}

// status prints the compact one line status.
func (m *Monitor) status(Param) error {
	data, aux := m.readBus(m.Board.Data), m.readBus(m.Board.Aux)
	for _, pin := range m.Board.Analog {
		m.HW.SetPinMode(pin, hw.Input)
	}
	analog := m.readBus(m.Board.Analog)
	m.printf(m.statusFormat,
		format.Int(data), format.Int(data),
		format.Int(aux), format.Int(aux),
		format.Int(analog), format.Int(analog),
		format.Bool(m.HW.ReadPin(m.Board.Clock)))
	return nil
}

func (m *Monitor) about(Param) error {
	m.printf("Logic generator and MONitor - AMON. v%s\n", format.Str(Version))
	if m.UnitID != "" {
		m.printf("Unit: %s\n", format.Str(m.UnitID))
	}
	m.println("")
	return nil
}
