package term

import (
	"context"
	"io"

	"github.com/fatih/color"
	"github.com/golang/glog"
)

// DefaultPrompt is printed before each line.
const DefaultPrompt = "AMON>"

// Reader prompts for and assembles command lines.
type Reader struct {
	Stream *Stream
	Out    io.Writer
	Prompt string
	// Color paints the prompt red and the typed text white.
	Color bool

	editor *Editor
}

// NewReader creates a Reader with the default prompt and capacity.
func NewReader(in io.Reader, out io.Writer) *Reader {
	return &Reader{
		Stream: NewStream(in),
		Out:    out,
		Prompt: DefaultPrompt,
		editor: NewEditor(DefaultCapacity),
	}
}

// WithCapacity replaces the line buffer.
func (r *Reader) WithCapacity(capacity int) *Reader {
	r.editor = NewEditor(capacity)
	return r
}

// WritePrompt prints the prompt.
func (r *Reader) WritePrompt() error {
	if !r.Color {
		_, err := io.WriteString(r.Out, r.Prompt)
		return err
	}
	red, white := color.New(color.FgRed), color.New(color.FgWhite)
	red.EnableColor()
	white.EnableColor()
	if _, err := red.Fprint(r.Out, r.Prompt); err != nil {
		return err
	}
	// leaves the terminal in white for the echo.
	white.SetWriter(r.Out)
	return nil
}

// ReadLine prints the prompt and reads until a line terminator. Bytes
// received after the terminator are discarded. The returned line is a copy
// and may be empty.
func (r *Reader) ReadLine(ctx context.Context) ([]byte, error) {
	if err := r.WritePrompt(); err != nil {
		return nil, err
	}
	r.editor.Reset()
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		b, err := r.Stream.ReadByte()
		if err != nil {
			return nil, err
		}
		res := r.editor.Feed(b)
		if res.Done {
			if n, err := r.Stream.Drain(); err != nil {
				glog.Warningf("drain input: %v", err)
			} else if n > 0 {
				glog.V(3).Infof("discarded %d bytes after line end", n)
			}
		}
		if len(res.Echo) > 0 {
			if _, err := r.Out.Write(res.Echo); err != nil {
				return nil, err
			}
		}
		if res.Done {
			return append([]byte(nil), r.editor.Line()...), nil
		}
	}
}
