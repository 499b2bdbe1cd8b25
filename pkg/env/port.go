// Package env holds the settings shared by the instrument and the host
// tools. Sub-packages build the runtime environment of each binary.
package env

import (
	"fmt"
	"os"
	"strconv"

	"github.com/robotalks/benchmon/pkg/port"
)

// PortFromEnv returns the port named by the environment variable, or def.
func PortFromEnv(name, def string) string {
	if val := os.Getenv(name); val != "" {
		return val
	}
	return def
}

// BaudFromEnv returns the baud rate from the environment variable, or the
// default when unset. An invalid value yields the default and an error.
func BaudFromEnv(name string) (int, error) {
	val := os.Getenv(name)
	if val == "" {
		return port.DefaultBaud, nil
	}
	baud, err := strconv.Atoi(val)
	if err != nil || baud <= 0 {
		return port.DefaultBaud, fmt.Errorf("invalid %s=%q, using %d", name, val, port.DefaultBaud)
	}
	return baud, nil
}
