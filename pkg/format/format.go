package format

import (
	"bytes"
	"io"
	"math"
	"strconv"
	"strings"
)

// Kind is the type tag of an Arg.
type Kind int

// Arg kinds.
const (
	KindInt Kind = iota
	KindFloat
	KindString
)

// Arg is a typed formatting argument.
type Arg struct {
	Kind Kind
	I    int64
	F    float64
	S    string
}

// Int creates an integer argument.
func Int(v int) Arg { return Arg{Kind: KindInt, I: int64(v)} }

// Long creates an integer argument from an int64.
func Long(v int64) Arg { return Arg{Kind: KindInt, I: v} }

// Byte creates an integer argument from a byte.
func Byte(v byte) Arg { return Arg{Kind: KindInt, I: int64(v)} }

// Bool creates an integer argument, 1 for true.
func Bool(v bool) Arg {
	if v {
		return Arg{Kind: KindInt, I: 1}
	}
	return Arg{Kind: KindInt}
}

// Char creates a character argument from a code point.
func Char(c rune) Arg { return Arg{Kind: KindInt, I: int64(c)} }

// Float creates a floating point argument.
func Float(v float64) Arg { return Arg{Kind: KindFloat, F: v} }

// Str creates a string argument.
func Str(s string) Arg { return Arg{Kind: KindString, S: s} }

func (a Arg) int() int64 {
	switch a.Kind {
	case KindFloat:
		return int64(a.F)
	case KindString:
		n, _ := strconv.ParseInt(a.S, 10, 64)
		return n
	}
	return a.I
}

func (a Arg) float() float64 {
	switch a.Kind {
	case KindInt:
		return float64(a.I)
	case KindString:
		f, _ := strconv.ParseFloat(a.S, 64)
		return f
	}
	return a.F
}

// Words used by %o.
const (
	OffWord = "LOW"
	OnWord  = "HIGH"
)

// Fprintf formats according to f and writes to w.
// A directive without a matching argument renders as "?".
func Fprintf(w io.Writer, f string, args ...Arg) (int, error) {
	var b bytes.Buffer
	Append(&b, Parse(f), args...)
	return w.Write(b.Bytes())
}

// Sprintf formats according to f and returns the result.
func Sprintf(f string, args ...Arg) string {
	var b bytes.Buffer
	Append(&b, Parse(f), args...)
	return b.String()
}

// Append renders parsed directives into b.
func Append(b *bytes.Buffer, ds []Directive, args ...Arg) {
	for _, d := range ds {
		switch d.Verb {
		case VerbLiteral:
			b.WriteString(d.Text)
			continue
		case VerbPercent:
			b.WriteByte('%')
			continue
		case VerbUnknown:
			b.WriteByte('?')
			continue
		}
		if len(args) == 0 {
			b.WriteByte('?')
			continue
		}
		arg := args[0]
		args = args[1:]
		switch d.Verb {
		case VerbInt, VerbInt2, VerbLong:
			b.WriteString(strconv.FormatInt(arg.int(), 10))
		case VerbFloat:
			b.WriteString(FormatFloat(arg.float(), d.Width))
		case VerbChar:
			b.WriteRune(rune(arg.int()))
		case VerbString:
			if arg.Kind == KindString {
				b.WriteString(arg.S)
			} else {
				b.WriteString(strconv.FormatInt(arg.int(), 10))
			}
		case VerbOnOff:
			if arg.int() == 0 {
				b.WriteString(OffWord)
			} else {
				b.WriteString(OnWord)
			}
		case VerbHexPrefix:
			b.WriteString("0x")
			fallthrough
		case VerbHex:
			b.WriteString(Padded(arg.int(), 16, d.Width))
		case VerbBinPrefix:
			b.WriteString("0b")
			fallthrough
		case VerbBin:
			b.WriteString(Padded(arg.int(), 2, d.Width))
		}
	}
}

// FormatFloat renders v with the given number of decimal places.
func FormatFloat(v float64, places int) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'f', places, 64)
}

// Digits returns how many digits v needs in base. Zero needs one digit.
func Digits(v uint64, base int) int {
	n := 1
	for v >= uint64(base) {
		v /= uint64(base)
		n++
	}
	return n
}

// Padded renders v in base 16 (upper case) or 2, left-padded with zeros
// to width digits. Negative values are shown as 32-bit two's complement.
func Padded(v int64, base, width int) string {
	u := uint64(v)
	if v < 0 {
		u = uint64(uint32(v))
	}
	s := strings.ToUpper(strconv.FormatUint(u, base))
	if pad := width - Digits(u, base); pad > 0 {
		s = strings.Repeat("0", pad) + s
	}
	return s
}
