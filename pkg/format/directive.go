// Package format implements the small printf-like language used for
// instrument output.
//
// Arguments are typed (see Arg) so a directive never has to guess what was
// passed. Hex and binary conversions are left-padded with zeros to the
// requested width but never truncated.
package format

// Verb identifies the conversion of a directive.
type Verb byte

// Supported verbs.
const (
	VerbLiteral   Verb = 0
	VerbInt       Verb = 'd'
	VerbInt2      Verb = 'i'
	VerbLong      Verb = 'l'
	VerbFloat     Verb = 'f'
	VerbChar      Verb = 'c'
	VerbString    Verb = 's'
	VerbOnOff     Verb = 'o'
	VerbHex       Verb = 'x'
	VerbHexPrefix Verb = 'X'
	VerbBin       Verb = 'b'
	VerbBinPrefix Verb = 'B'
	VerbPercent   Verb = '%'
	VerbUnknown   Verb = '?'
)

// DefaultWidth is used for f/x/X/b/B when no digit is given.
const DefaultWidth = 2

// Directive is one parsed unit of a format string.
type Directive struct {
	Verb Verb
	// Text is the literal text for VerbLiteral.
	Text string
	// Width is the number of decimal places (f) or minimum digits (x/b).
	Width int
}

// TakesArg tells whether the directive consumes an argument.
func (d Directive) TakesArg() bool {
	switch d.Verb {
	case VerbLiteral, VerbPercent, VerbUnknown:
		return false
	}
	return true
}

// Parse splits a format string into directives.
func Parse(f string) []Directive {
	var ds []Directive
	start := 0
	flush := func(end int) {
		if end > start {
			ds = append(ds, Directive{Verb: VerbLiteral, Text: f[start:end]})
		}
	}
	for i := 0; i < len(f); i++ {
		if f[i] != '%' {
			continue
		}
		flush(i)
		d := Directive{Width: DefaultWidth}
		if i+1 < len(f) && f[i+1] == '.' {
			i++
		}
		if i+1 < len(f) && f[i+1] >= '0' && f[i+1] <= '9' {
			d.Width = int(f[i+1] - '0')
			i++
		}
		i++
		if i >= len(f) {
			d.Verb = VerbUnknown
		} else {
			d.Verb = verbOf(f[i])
		}
		ds = append(ds, d)
		start = i + 1
	}
	flush(len(f))
	return ds
}

func verbOf(c byte) Verb {
	switch v := Verb(c); v {
	case VerbInt, VerbInt2, VerbLong, VerbFloat, VerbChar, VerbString,
		VerbOnOff, VerbHex, VerbHexPrefix, VerbBin, VerbBinPrefix, VerbPercent:
		return v
	}
	return VerbUnknown
}
