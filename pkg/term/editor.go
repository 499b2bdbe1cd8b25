// Package term assembles command lines from a raw serial byte stream.
package term

// Control bytes.
const (
	Backspace byte = 8
	Space     byte = ' '
	Delete    byte = 0x7f
)

// DefaultCapacity is the line buffer size including the terminator slot.
const DefaultCapacity = 32

// Newline is written when a line is terminated.
var Newline = []byte("\r\n")

var eraseSeq = []byte{Backspace, Space, Backspace}

// EditResult is the outcome of feeding one byte.
type EditResult struct {
	// Echo is what should be written back to the terminal.
	Echo []byte
	// Done is set when a line terminator was received.
	Done bool
}

// Editor is the line editing state machine. It holds at most
// capacity-1 characters; the last slot is reserved for the terminator.
type Editor struct {
	buf []byte
	n   int
}

// NewEditor creates an Editor with the given capacity.
func NewEditor(capacity int) *Editor {
	if capacity < 2 {
		capacity = 2
	}
	return &Editor{buf: make([]byte, capacity)}
}

// Reset empties the line.
func (e *Editor) Reset() {
	e.n = 0
	e.buf[0] = 0
}

// Len returns the number of characters in the line.
func (e *Editor) Len() int {
	return e.n
}

// Cap returns the capacity including the terminator slot.
func (e *Editor) Cap() int {
	return len(e.buf)
}

// Line returns the characters collected so far. The slice aliases the
// editor buffer and is valid until the next Feed or Reset.
func (e *Editor) Line() []byte {
	return e.buf[:e.n]
}

// Feed consumes one byte.
func (e *Editor) Feed(b byte) (r EditResult) {
	switch {
	case b == Backspace:
		if e.n > 0 {
			e.n--
			e.buf[e.n] = 0
			r.Echo = eraseSeq
		}
	case isAlnum(b):
		// a full line drops the byte without echo.
		if e.n < len(e.buf)-1 {
			e.buf[e.n] = b
			e.n++
			e.buf[e.n] = 0
			r.Echo = []byte{b}
		}
	case b == '\n' || b == '\r':
		r.Echo, r.Done = Newline, true
	}
	return
}

func isAlnum(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
