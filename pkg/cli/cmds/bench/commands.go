package bench

import (
	"fmt"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/benchmon/pkg/cli/sh"
)

func fixed(line string) func(c *ishell.Context) {
	return sh.MustBeConnected(func(c *ishell.Context) {
		sh.DoCommand(c, line)
	})
}

func bus(name, prefix string) func(c *ishell.Context) {
	return sh.MustBeConnected(func(c *ishell.Context) {
		if len(c.Args) < 1 {
			c.Err(fmt.Errorf("VALUE required"))
			return
		}
		line, err := BusLine(prefix, c.Args[0])
		if err != nil {
			c.Err(fmt.Errorf("%s: %v", name, err))
			return
		}
		sh.DoCommand(c, line)
	})
}

var (
	// StatusCmd shows the one line status.
	StatusCmd = ishell.Cmd{
		Name:    "status",
		Aliases: []string{"s"},
		Help:    "",
		Func:    fixed("STATUS"),
	}

	// ReadCmd reads digital levels.
	ReadCmd = ishell.Cmd{
		Name: "read",
		Help: "",
		Func: fixed("READ"),
	}

	// AnalogReadCmd reads analog inputs.
	AnalogReadCmd = ishell.Cmd{
		Name:    "aread",
		Aliases: []string{"analog"},
		Help:    "",
		Func:    fixed("AREAD"),
	}

	// AboutCmd shows the instrument identity.
	AboutCmd = ishell.Cmd{
		Name: "about",
		Help: "",
		Func: fixed("ABOUT"),
	}

	// ClockCmd drives the clock line.
	ClockCmd = ishell.Cmd{
		Name:    "clock",
		Aliases: []string{"clk"},
		Help:    "[pulse|high|low|toggle]",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			var action string
			if len(c.Args) > 0 {
				action = c.Args[0]
			}
			line, err := ClockLine(action)
			if err != nil {
				c.Err(err)
				return
			}
			sh.DoCommand(c, line)
		}),
	}

	// DataCmd writes the data bus.
	DataCmd = ishell.Cmd{
		Name: "data",
		Help: "VALUE (decimal, 0x.., 0b..)",
		Func: bus("data", "D"),
	}

	// AuxCmd writes the auxiliary bus.
	AuxCmd = ishell.Cmd{
		Name: "aux",
		Help: "VALUE (decimal, 0x.., 0b..)",
		Func: bus("aux", "P"),
	}

	// BitCmd sets or clears one output line.
	BitCmd = ishell.Cmd{
		Name: "bit",
		Help: "set|clear BIT",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			if len(c.Args) < 2 {
				c.Err(fmt.Errorf("set|clear and BIT required"))
				return
			}
			line, err := BitLine(c.Args[0], c.Args[1])
			if err != nil {
				c.Err(err)
				return
			}
			sh.DoCommand(c, line)
		}),
	}
)

func init() {
	sh.AddCmds(
		&StatusCmd,
		&ReadCmd,
		&AnalogReadCmd,
		&AboutCmd,
		&ClockCmd,
		&DataCmd,
		&AuxCmd,
		&BitCmd,
	)
}
