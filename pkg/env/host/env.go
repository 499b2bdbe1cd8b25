package host

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/robotalks/benchmon/pkg/client"
	"github.com/robotalks/benchmon/pkg/env"
	"github.com/robotalks/benchmon/pkg/port"
)

// Config provides the options to reach an instrument from the host.
type Config struct {
	Port    string
	Baud    int
	Timeout time.Duration
}

var defaultConfig = Config{
	Port:    "/dev/ttyACM0",
	Baud:    port.DefaultBaud,
	Timeout: client.DefaultTimeout,
}

// envErr is an invalid environment setting found at start up.
var envErr error

// EnvError reports an invalid environment setting replaced by its default.
// It is meant to be logged once flags are parsed.
func EnvError() error {
	return envErr
}

func init() {
	defaultConfig.Port = env.PortFromEnv("BENCHSH_PORT", defaultConfig.Port)
	defaultConfig.Baud, envErr = env.BaudFromEnv("BENCHSH_BAUD")
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Port, "port", defaultConfig.Port, "Serial device of the instrument.")
	flag.IntVar(&defaultConfig.Baud, "baud", defaultConfig.Baud, "Serial baud rate.")
	flag.DurationVar(&defaultConfig.Timeout, "timeout", defaultConfig.Timeout, "Reply timeout.")
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

// Conn is a running client on an open port.
type Conn struct {
	Name   string
	Client *client.Client
	Cancel func()
}

// Connect opens the port, starts the client and waits for the prompt.
// An empty name uses the configured port.
func (c *Config) Connect(name string) (*Conn, error) {
	if name == "" {
		name = c.Port
	}
	p, err := port.OpenSerial(port.Config{Name: name, Baud: c.Baud, ReadTimeout: 100 * time.Millisecond})
	if err != nil {
		return nil, err
	}
	return c.Attach(name, p)
}

// Attach starts a client on an already open line.
func (c *Config) Attach(name string, p port.Port) (*Conn, error) {
	cl := client.New(p)
	cl.Timeout = c.Timeout
	ctx, cancel := context.WithCancel(context.Background())
	go cl.Run(ctx)
	conn := &Conn{
		Name:   name,
		Client: cl,
		Cancel: func() {
			cancel()
			p.Close()
		},
	}
	if err := cl.Sync(); err != nil {
		conn.Cancel()
		return nil, fmt.Errorf("%s: %v", name, err)
	}
	return conn, nil
}

// MustConnect connects and fails on error.
func (c *Config) MustConnect(name string) *Conn {
	conn, err := c.Connect(name)
	if err != nil {
		log.Fatalln(err)
	}
	return conn
}
