package monitor

import (
	"math"
	"strings"
)

// Kind tells whether a parsed command carries a parameter.
type Kind int

// Parsed command kinds.
const (
	Nullary Kind = iota
	Unary
)

// Param is a numeric command parameter.
type Param struct {
	Value uint64
	Radix int
	// Digits is how many digits were consumed.
	Digits int
	// Overflow is set when the digits did not fit in 64 bits; Value then
	// holds the low 64 bits.
	Overflow bool
}

// Parsed is a matched command line.
type Parsed struct {
	Kind    Kind
	Command *Command
	Param   Param
}

// Matcher selects the lines a command handles.
type Matcher func(line string) bool

// ParamParser extracts the parameter from the text following the keyword.
type ParamParser func(rest string) (Param, error)

// Action performs a command.
type Action func(m *Monitor, p Param) error

// Command is one entry of the command table.
type Command struct {
	Keyword string
	Usage   string
	Help    string
	Match   Matcher
	Parse   ParamParser
	Action  Action
}

// Table is an ordered command table, the first match wins.
type Table []*Command

// Exact matches the keyword only.
func Exact(keyword string) Matcher {
	return func(line string) bool {
		return line == keyword
	}
}

// Prefix matches any line starting with the first n bytes of keyword, so
// Prefix("ABOUT", 3) also accepts "ABO" and "ABOX".
func Prefix(keyword string, n int) Matcher {
	if n > len(keyword) {
		n = len(keyword)
	}
	head := keyword[:n]
	return func(line string) bool {
		return strings.HasPrefix(line, head)
	}
}

// Lookup finds the command handling an upper-cased line and parses its
// parameter.
func (t Table) Lookup(line string) (Parsed, error) {
	for _, cmd := range t {
		if !cmd.Match(line) {
			continue
		}
		if cmd.Parse == nil {
			return Parsed{Kind: Nullary, Command: cmd}, nil
		}
		p, err := cmd.Parse(line[len(cmd.Keyword):])
		if err != nil {
			return Parsed{Kind: Unary, Command: cmd}, err
		}
		return Parsed{Kind: Unary, Command: cmd, Param: p}, nil
	}
	return Parsed{}, ErrUnknownCommand
}

// RadixParam parses "0X<hex>", "0B<binary>" or "0D<decimal>". A hex number
// may repeat its "0X", as in "0X0XFF".
func RadixParam(rest string) (Param, error) {
	if len(rest) < 2 || rest[0] != '0' {
		return Param{}, ErrNumberFormat
	}
	var radix int
	switch rest[1] {
	case 'X':
		radix = 16
	case 'B':
		radix = 2
	case 'D':
		radix = 10
	default:
		return Param{}, ErrNumberFormat
	}
	digits := rest[2:]
	if radix == 16 && strings.HasPrefix(digits, "0X") {
		digits = digits[2:]
	}
	return ParseDigits(digits, radix), nil
}

// DecimalParam parses a decimal number which must have at least one digit.
func DecimalParam(rest string) (Param, error) {
	p := ParseDigits(rest, 10)
	if p.Digits == 0 {
		return p, ErrInvalidParameter
	}
	return p, nil
}

// ParseDigits parses the longest run of digits valid in radix at the start
// of s. No digits yields zero.
func ParseDigits(s string, radix int) (p Param) {
	p.Radix = radix
	for ; p.Digits < len(s); p.Digits++ {
		d := digitValue(s[p.Digits])
		if d < 0 || d >= radix {
			break
		}
		if p.Value > (math.MaxUint64-uint64(d))/uint64(radix) {
			p.Overflow = true
		}
		p.Value = p.Value*uint64(radix) + uint64(d)
	}
	return
}

func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10
	}
	return -1
}

// Upper converts ASCII letters of line to upper case in place.
func Upper(line []byte) {
	for i, c := range line {
		if c >= 'a' && c <= 'z' {
			line[i] = c - 'a' + 'A'
		}
	}
}
