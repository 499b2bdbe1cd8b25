package sh

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/abiosoft/ishell"
	"github.com/fatih/color"

	"github.com/robotalks/benchmon/pkg/env/host"
	"github.com/robotalks/benchmon/pkg/port"
)

// Shell provides ishell backed interactive shell.
type Shell struct {
	Interactive bool
	AutoConnect bool

	Shell  *ishell.Shell
	Config *host.Config
	Conn   *host.Conn
}

const (
	shellKey          = "$shell"
	unconnectedPrompt = "[none] > "
)

var (
	// flags

	evalOnly bool

	// commands
	commands = []*ishell.Cmd{
		&PortsCmd,
		&ConnectCmd,
		&DisconnectCmd,
		&RawCmd,
	}
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
}

// AddCmds is used by other commands providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell.
func New(conf *host.Config) *Shell {
	s := &Shell{
		Interactive: !evalOnly,

		Shell:  ishell.New(),
		Config: conf,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(unconnectedPrompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// MustBeConnected wraps command func requires a connection.
func MustBeConnected(fn func(c *ishell.Context)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		if ShellFrom(c).Conn == nil {
			c.Err(fmt.Errorf("not connected"))
			return
		}
		fn(c)
	}
}

// DoCommand sends a monitor command line and prints the reply.
func DoCommand(c *ishell.Context, line string) error {
	s := ShellFrom(c)
	if s.Conn == nil {
		err := fmt.Errorf("not connected")
		c.Err(err)
		return err
	}
	reply, err := s.Conn.Client.Do(line)
	if err != nil {
		c.Err(err)
		return err
	}
	if reply == "" {
		c.Println("OK")
		return nil
	}
	c.Print(reply)
	return nil
}

// WithAutoConnect sets AutoConnect.
func (s *Shell) WithAutoConnect(en bool) *Shell {
	s.AutoConnect = en
	return s
}

// Connect connects the instrument on the named port.
func (s *Shell) Connect(name string) error {
	conn, err := s.Config.Connect(name)
	if err != nil {
		return err
	}
	s.Disconnect()
	s.Conn = conn
	s.Shell.SetPrompt(color.New(color.FgGreen).Sprintf("%s > ", conn.Name))
	return nil
}

// Disconnect disconnects current instrument.
func (s *Shell) Disconnect() {
	if s.Conn != nil {
		s.Conn.Cancel()
		s.Conn = nil
		s.Shell.SetPrompt(unconnectedPrompt)
	}
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	if s.AutoConnect && s.Config.Port != "" {
		if s.Interactive {
			s.Shell.Printf("Connecting %s ...\n", s.Config.Port)
		}
		if err := s.Connect(""); err != nil {
			if !s.Interactive || len(args) > 0 {
				log.Fatalf("connect %q failed: %v", s.Config.Port, err)
			}
			s.Shell.Printf("connect %q failed: %v\n", s.Config.Port, err)
		}
	}
	defer s.Disconnect()

	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

var (
	// PortsCmd lists serial ports.
	PortsCmd = ishell.Cmd{
		Name:    "ports",
		Aliases: []string{"list", "l"},
		Help:    "",
		Func: func(c *ishell.Context) {
			names, err := port.List()
			if err != nil {
				c.Err(err)
				return
			}
			if len(names) == 0 {
				c.Println("No serial ports found")
				return
			}
			for _, name := range names {
				c.Println(name)
			}
		},
	}

	// ConnectCmd connects an instrument.
	ConnectCmd = ishell.Cmd{
		Name:    "connect",
		Aliases: []string{"c"},
		Help:    "[PORT]",
		Func: func(c *ishell.Context) {
			var name string
			if len(c.Args) > 0 {
				name = c.Args[0]
			}
			if err := ShellFrom(c).Connect(name); err != nil {
				c.Err(err)
			}
		},
	}

	// DisconnectCmd disconnects current instrument.
	DisconnectCmd = ishell.Cmd{
		Name:    "disconnect",
		Aliases: []string{"d"},
		Help:    "",
		Func: func(c *ishell.Context) {
			ShellFrom(c).Disconnect()
		},
	}

	// RawCmd sends a command line as typed.
	RawCmd = ishell.Cmd{
		Name:    "raw",
		Aliases: []string{"r"},
		Help:    "LINE",
		Func: MustBeConnected(func(c *ishell.Context) {
			DoCommand(c, strings.Join(c.Args, ""))
		}),
	}
)

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	if err := host.EnvError(); err != nil {
		log.Println(err)
	}
	New(host.NewConfig()).WithAutoConnect(true).Run(flag.Args()...)
}
