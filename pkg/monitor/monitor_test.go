package monitor

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/benchmon/pkg/hw"
	"github.com/robotalks/benchmon/pkg/hw/sim"
)

const idleStatus = "D: 0b00000000 0x00\tP: 0b000 0x00\tA: 0b000000 0x00\tC: LOW\r\n"

type testBench struct {
	*Monitor
	bench *sim.Bench
	out   *bytes.Buffer
}

// keystrokes delivers one chunk per Read.
type keystrokes []string

func (k *keystrokes) Read(p []byte) (int, error) {
	if len(*k) == 0 {
		return 0, io.EOF
	}
	n := copy(p, (*k)[0])
	if n < len((*k)[0]) {
		(*k)[0] = (*k)[0][n:]
	} else {
		*k = (*k)[1:]
	}
	return n, nil
}

func newTestBench(input ...string) *testBench {
	b := &testBench{bench: sim.NewBench(), out: &bytes.Buffer{}}
	in := keystrokes(input)
	rw := struct {
		io.Reader
		io.Writer
	}{&in, b.out}
	b.Monitor = New(b.bench, hw.DefaultBoard(), rw)
	b.bench.Ops()
	return b
}

func (b *testBench) dispatch(t *testing.T, line string) string {
	b.out.Reset()
	require.NoError(t, b.Dispatch([]byte(line)))
	return b.out.String()
}

func (b *testBench) reject(t *testing.T, line string, expected error) {
	b.out.Reset()
	b.bench.Ops()
	require.Equal(t, expected, b.Dispatch([]byte(line)))
	require.Empty(t, b.out.String())
	require.Empty(t, b.bench.Ops())
}

func write(pin hw.Pin, level bool) sim.Op {
	return sim.Op{Kind: sim.OpWrite, Pin: pin, Level: level}
}

func TestStatus(t *testing.T) {
	b := newTestBench()
	require.Equal(t, idleStatus, b.dispatch(t, "status"))
	require.Equal(t, idleStatus, b.dispatch(t, "StAtUs"))
	require.Equal(t, idleStatus, b.dispatch(t, ""))
	for _, op := range b.bench.Ops() {
		require.NotEqual(t, sim.OpWrite, op.Kind)
	}
}

func TestStatusReadsAnalogAsInputs(t *testing.T) {
	b := newTestBench()
	b.bench.SetInput(14, true).SetInput(16, true)
	require.Equal(t, "D: 0b00000000 0x00\tP: 0b000 0x00\tA: 0b000101 0x05\tC: LOW\r\n", b.dispatch(t, "STATUS"))
	for _, pin := range b.Board.Analog {
		require.Equal(t, hw.Input, b.bench.Mode(pin))
	}
}

func TestDataBus(t *testing.T) {
	const fullStatus = "D: 0b11111111 0xFF\tP: 0b000 0x00\tA: 0b000000 0x00\tC: LOW\r\n"
	for _, line := range []string{"D0XFF", "d0b11111111", "D0D255", "D0X1FF", "D0X0XFF"} {
		t.Run(line, func(t *testing.T) {
			b := newTestBench()
			require.Equal(t, fullStatus, b.dispatch(t, line))
			writes := b.bench.Writes()
			require.Len(t, writes, 8)
			for n, op := range writes {
				require.Equal(t, write(b.Board.Data[7-n], true), op)
			}
		})
	}
}

func TestDataBusPattern(t *testing.T) {
	b := newTestBench()
	require.Equal(t, "D: 0b10100101 0xA5\tP: 0b000 0x00\tA: 0b000000 0x00\tC: LOW\r\n", b.dispatch(t, "d0xa5"))
	for bit, pin := range b.Board.Data {
		require.Equal(t, hw.Output, b.bench.Mode(pin))
		require.Equal(t, 0xA5&(1<<uint(bit)) != 0, b.bench.Driven(pin))
	}
	require.Equal(t, "D: 0b00000000 0x00\tP: 0b000 0x00\tA: 0b000000 0x00\tC: LOW\r\n", b.dispatch(t, "D0D"))
}

func TestNumberFormat(t *testing.T) {
	b := newTestBench()
	for _, line := range []string{"D255", "DFF", "D0Z1", "D", "P7", "P0"} {
		b.reject(t, line, ErrNumberFormat)
	}
}

func TestAuxBus(t *testing.T) {
	b := newTestBench()
	expected := "DEC: 5 \t HEX: 0x05 \t BIN: 0b101\r\n" +
		"--------------------------------------------------\r\n" +
		"Bit7:0\tBit6:0\tBit5:0\tBit4:0\tBit3:0\tBit2:1\tBit1:0\tBit0:1\t\r\n" +
		"X\tX\tX\tX\tX\tD10:1\tD9:0\tD8:1\t\r\n"
	require.Equal(t, expected, b.dispatch(t, "p0x5"))
	require.Equal(t, []sim.Op{write(12, true), write(11, false), write(10, true)}, b.bench.Writes())
	require.Contains(t, b.dispatch(t, "STATUS"), "P: 0b101 0x05\t")
}

func TestBitSetReset(t *testing.T) {
	b := newTestBench()
	require.Equal(t, "Setting bit: 5 high.\r\n", b.dispatch(t, "BS5"))
	require.Equal(t, hw.Output, b.bench.Mode(7))
	require.Equal(t, []sim.Op{write(7, true)}, b.bench.Writes())
	require.Equal(t, "Setting bit: 5 low.\r\n", b.dispatch(t, "br5"))
	require.Equal(t, []sim.Op{write(7, false)}, b.bench.Writes())

	require.Equal(t, "Setting bit: 10 high.\r\n", b.dispatch(t, "BS10"))
	require.Equal(t, []sim.Op{write(12, true)}, b.bench.Writes())
	require.Equal(t, "Setting bit: 0 high.\r\n", b.dispatch(t, "BS0"))
	require.Equal(t, []sim.Op{write(2, true)}, b.bench.Writes())
}

func TestBitOutOfRange(t *testing.T) {
	b := newTestBench()
	for _, line := range []string{"BS11", "BR11", "BS255", "BS256", "BR99999999999999999999999"} {
		b.reject(t, line, ErrNotOutputPort)
	}
	for _, line := range []string{"BS", "BRX", "BS-1"} {
		b.reject(t, line, ErrInvalidParameter)
	}
}

func TestClock(t *testing.T) {
	b := newTestBench()
	clk := b.Board.Clock
	require.Equal(t, "CLK pulse. Idle low.\r\n", b.dispatch(t, "c"))
	require.Equal(t, []sim.Op{
		write(clk, true),
		{Kind: sim.OpDelay, Delay: 50 * time.Millisecond},
		write(clk, false),
	}, b.bench.Ops())

	require.Equal(t, "Clock high.\r\n", b.dispatch(t, "CH"))
	require.True(t, b.bench.Driven(clk))
	require.Contains(t, b.dispatch(t, ""), "C: HIGH")

	b.bench.Ops()
	require.Equal(t, "CLK pulse. Idle high.\r\n", b.dispatch(t, "C"))
	require.Equal(t, []sim.Op{
		write(clk, false),
		{Kind: sim.OpDelay, Delay: 50 * time.Millisecond},
		write(clk, true),
	}, b.bench.Ops())

	require.Equal(t, "Clock toggle.\r\n", b.dispatch(t, "ct"))
	require.False(t, b.bench.Driven(clk))
	require.Equal(t, "Clock toggle.\r\n", b.dispatch(t, "CT"))
	require.True(t, b.bench.Driven(clk))
	require.Equal(t, "Clock low.\r\n", b.dispatch(t, "CL"))
	require.False(t, b.bench.Driven(clk))
}

func TestExactCommands(t *testing.T) {
	b := newTestBench()
	require.Equal(t, "Plot not supported (yet).\r\n", b.dispatch(t, "plot"))
	require.Equal(t, "Clear function is disabled since not all displays support it.\r\n", b.dispatch(t, "CLEAR"))
	b.WithANSI(true)
	require.Equal(t, "\x1b[2J\x1b[H", b.dispatch(t, "clear"))
	for _, line := range []string{"CX", "CHX", "HELPME", "CLEARX", "X"} {
		b.reject(t, line, ErrUnknownCommand)
	}
	// falls through to the aux bus prefix
	b.reject(t, "PLOTX", ErrNumberFormat)
}

func TestPrefixCommands(t *testing.T) {
	b := newTestBench()
	require.Equal(t, idleStatus, b.dispatch(t, "STATUSFOO"))
	for _, line := range []string{"ABOUT", "ABO", "ABOX"} {
		require.Contains(t, b.dispatch(t, line), "Logic generator and MONitor - AMON. v0.1\r\n", line)
	}
	b.bench.SetAnalog(2, 1023)
	for _, line := range []string{"AREAD", "AREA", "AREAX"} {
		require.True(t, strings.HasPrefix(b.dispatch(t, line), "A0:0\t\tA1:0\t\tA2:1023\t\t"), line)
	}
	b.reject(t, "AB", ErrUnknownCommand)
	b.reject(t, "ARE", ErrUnknownCommand)
	b.reject(t, "REA", ErrUnknownCommand)
	b.reject(t, "STAT", ErrUnknownCommand)
}

func TestRead(t *testing.T) {
	b := newTestBench()
	b.bench.SetInput(14, true)
	b.dispatch(t, "BS3")
	expected := "A0:1\tA1:0\tA2:0\tA3:0\tA4:0\tA5:0\t\r\n" +
		"D0:0\tD1:0\tD2:0\tD3:1\tD4:0\tD5:0\tD6:0\tD7:0\tD8:0\tD9:0\tD10:0\t\r\n"
	require.Equal(t, expected, b.dispatch(t, "read"))
}

func TestAnalogRead(t *testing.T) {
	b := newTestBench()
	b.bench.SetAnalog(0, 1023).SetAnalog(5, 0)
	out := b.dispatch(t, "AREAD")
	lines := strings.Split(out, "\r\n")
	require.Len(t, lines, 3)
	require.True(t, strings.HasPrefix(lines[0], "A0:1023\t\tA1:0\t\t"))
	require.True(t, strings.HasPrefix(lines[1], "A0:5.00[V]\tA1:0.00[V]\t"))
	require.True(t, strings.HasSuffix(lines[1], "A5:0.00[V]\t"))
}

func TestAbout(t *testing.T) {
	b := newTestBench()
	b.WithUnitID("c0ffee")
	require.Equal(t, "Logic generator and MONitor - AMON. v0.1\r\nUnit: c0ffee\r\n\r\n", b.dispatch(t, "about"))
}

func TestHelp(t *testing.T) {
	b := newTestBench()
	out := b.dispatch(t, "HELP")
	for _, cmd := range b.Commands() {
		require.Contains(t, out, cmd.Help)
	}
	require.Empty(t, b.bench.Ops())
}

func TestServeOne(t *testing.T) {
	b := newTestBench("bs11\r\n", "xyz\r")
	ctx := context.Background()
	require.NoError(t, b.ServeOne(ctx))
	require.Equal(t, "AMON>bs11\r\nBit number is not a valid output port.\r\n", b.out.String())

	b.out.Reset()
	require.NoError(t, b.ServeOne(ctx))
	require.Equal(t, "AMON>xyz\r\nERROR! Command not found\r\n", b.out.String())
}

func TestServeOneEmptyLine(t *testing.T) {
	b := newTestBench("\r")
	require.NoError(t, b.ServeOne(context.Background()))
	require.Equal(t, "AMON>\r\n"+idleStatus, b.out.String())
}

func TestRunStopsAtEOF(t *testing.T) {
	b := newTestBench("CH\r")
	require.Equal(t, io.EOF, b.Run(context.Background()))
	require.True(t, b.bench.Driven(b.Board.Clock))
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, io.ErrClosedPipe
}

func TestWriteErrorStops(t *testing.T) {
	rw := struct {
		io.Reader
		io.Writer
	}{strings.NewReader("CH\rCL\r"), failWriter{}}
	m := New(sim.NewBench(), hw.DefaultBoard(), rw)
	require.Equal(t, io.ErrClosedPipe, m.Run(context.Background()))
}
