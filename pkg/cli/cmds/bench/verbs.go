// Package bench exposes the instrument commands in the host shell.
package bench

import (
	"fmt"
	"strconv"
	"strings"
)

// BusLine builds a bus command ("D" or "P") from a value written as
// decimal, 0x.., 0b.. or 0d...
func BusLine(bus, value string) (string, error) {
	v := strings.ToUpper(value)
	var radix int
	digits := v
	switch {
	case strings.HasPrefix(v, "0X"):
		radix, digits = 16, v[2:]
	case strings.HasPrefix(v, "0B"):
		radix, digits = 2, v[2:]
	case strings.HasPrefix(v, "0D"):
		radix, digits = 10, v[2:]
	default:
		radix, v = 10, "0D"+v
	}
	if digits == "" {
		return "", fmt.Errorf("invalid VALUE %q", value)
	}
	n, err := strconv.ParseUint(digits, radix, 64)
	if err != nil {
		return "", fmt.Errorf("invalid VALUE %q", value)
	}
	if n > 0xff {
		return "", fmt.Errorf("VALUE %q out of range [0, 255]", value)
	}
	return bus + v, nil
}

// ClockLine maps a clock action to its command.
func ClockLine(action string) (string, error) {
	switch strings.ToLower(action) {
	case "", "pulse", "p":
		return "C", nil
	case "high", "h", "1":
		return "CH", nil
	case "low", "l", "0":
		return "CL", nil
	case "toggle", "t":
		return "CT", nil
	}
	return "", fmt.Errorf("unknown clock action %q", action)
}

// BitLine maps a bit action and index to its command.
func BitLine(action, bit string) (string, error) {
	n, err := strconv.ParseUint(bit, 10, 8)
	if err != nil {
		return "", fmt.Errorf("invalid BIT %q", bit)
	}
	switch strings.ToLower(action) {
	case "set", "high", "1":
		return fmt.Sprintf("BS%d", n), nil
	case "clear", "reset", "low", "0":
		return fmt.Sprintf("BR%d", n), nil
	}
	return "", fmt.Errorf("unknown bit action %q", action)
}
