package port

import (
	"io"
	"os"

	"github.com/golang/glog"
	"golang.org/x/term"
)

// Terminal is the local terminal in raw mode, so keystrokes arrive one at
// a time and nothing is echoed by the tty.
type Terminal struct {
	In  io.Reader
	Out io.Writer

	fd    int
	state *term.State
}

// OpenTerminal switches stdin to raw mode when it is a terminal.
func OpenTerminal() (*Terminal, error) {
	t := &Terminal{In: os.Stdin, Out: os.Stdout, fd: int(os.Stdin.Fd())}
	if !term.IsTerminal(t.fd) {
		glog.V(1).Info("stdin is not a terminal, raw mode skipped")
		return t, nil
	}
	state, err := term.MakeRaw(t.fd)
	if err != nil {
		return nil, err
	}
	t.state = state
	return t, nil
}

// Read implements io.Reader. DEL, sent by most terminals for the
// backspace key, is delivered as BS.
func (t *Terminal) Read(p []byte) (int, error) {
	n, err := t.In.Read(p)
	MapDelete(p[:n])
	return n, err
}

// Write implements io.Writer.
func (t *Terminal) Write(p []byte) (int, error) {
	return t.Out.Write(p)
}

// Close restores the terminal mode.
func (t *Terminal) Close() error {
	if t.state == nil {
		return nil
	}
	state := t.state
	t.state = nil
	return term.Restore(t.fd, state)
}

// MapDelete replaces DEL with BS in place.
func MapDelete(p []byte) {
	for i, b := range p {
		if b == 0x7f {
			p[i] = 8
		}
	}
}
