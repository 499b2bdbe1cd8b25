// Package client drives a monitor from the host side: it sends command
// lines and collects what the monitor prints up to its next prompt.
package client

import (
	"bytes"
	"context"
	"errors"
	"io"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/benchmon/pkg/monitor"
	"github.com/robotalks/benchmon/pkg/term"
)

var (
	// ErrTimeout indicates the monitor did not show its prompt in time.
	ErrTimeout = errors.New("timeout waiting for prompt")
	// ErrClosed indicates the line is gone.
	ErrClosed = errors.New("connection closed")
)

// DefaultTimeout bounds a single exchange.
const DefaultTimeout = 2 * time.Second

// Client talks to one monitor.
type Client struct {
	Prompt  string
	Timeout time.Duration

	rw     io.ReadWriter
	dataCh chan []byte
	doneCh chan struct{}
	err    error
	lock   sync.Mutex
}

// New creates a Client over rw. Run must be started to receive anything.
func New(rw io.ReadWriter) *Client {
	return &Client{
		Prompt:  term.DefaultPrompt,
		Timeout: DefaultTimeout,
		rw:      rw,
		dataCh:  make(chan []byte, 16),
		doneCh:  make(chan struct{}),
	}
}

// Run pumps received bytes until ctx is done or the line fails.
func (c *Client) Run(ctx context.Context) error {
	err := c.readLoop(ctx)
	c.err = err
	close(c.doneCh)
	return err
}

func (c *Client) readLoop(ctx context.Context) error {
	buf := make([]byte, 256)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := c.rw.Read(buf)
		if n > 0 {
			data := append([]byte(nil), buf[:n]...)
			select {
			case c.dataCh <- data:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if err != nil {
			return err
		}
	}
}

// Close closes the line when it can be closed.
func (c *Client) Close() error {
	if closer, ok := c.rw.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (c *Client) discardPending() {
	for {
		select {
		case data := <-c.dataCh:
			glog.V(3).Infof("discard %q", data)
		default:
			return
		}
	}
}

// escapeSeq matches ANSI control sequences such as the colors of the prompt.
var escapeSeq = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]`)

// StripANSI removes ANSI control sequences from out.
func StripANSI(out []byte) []byte {
	return escapeSeq.ReplaceAll(out, nil)
}

// waitPrompt collects output until it ends with the prompt. The output is
// returned without ANSI control sequences.
func (c *Client) waitPrompt(timeout time.Duration) (string, error) {
	var out bytes.Buffer
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	prompt := []byte(c.Prompt)
	for {
		text := StripANSI(out.Bytes())
		if bytes.HasSuffix(text, prompt) {
			return string(text), nil
		}
		select {
		case data := <-c.dataCh:
			out.Write(data)
		case <-c.doneCh:
			if c.err == nil || c.err == io.EOF {
				return string(text), ErrClosed
			}
			return string(text), c.err
		case <-timer.C:
			return string(text), ErrTimeout
		}
	}
}

// Sync waits until the monitor is at its prompt. When no prompt shows up
// an empty line is sent to get a fresh one.
func (c *Client) Sync() error {
	c.lock.Lock()
	defer c.lock.Unlock()
	if _, err := c.waitPrompt(c.Timeout / 2); err != ErrTimeout {
		return err
	}
	glog.V(2).Info("no prompt, poking the monitor")
	if _, err := io.WriteString(c.rw, "\r"); err != nil {
		return err
	}
	_, err := c.waitPrompt(c.Timeout)
	return err
}

// Do sends one command line and returns the reply. A reply which is one of
// the monitor error messages is returned as *monitor.CommandError.
func (c *Client) Do(line string) (string, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.discardPending()
	glog.V(2).Infof("send %q", line)
	if _, err := io.WriteString(c.rw, line+"\r"); err != nil {
		return "", err
	}
	out, err := c.waitPrompt(c.Timeout)
	if err != nil {
		return "", err
	}
	reply := ExtractReply(out, c.Prompt)
	if cmdErr := ReplyError(reply); cmdErr != nil {
		return reply, cmdErr
	}
	return reply, nil
}

// ExtractReply removes the echoed line and the trailing prompt from the
// output of one exchange, and turns CRLF into LF.
func ExtractReply(out, prompt string) string {
	out = strings.TrimSuffix(out, prompt)
	pos := strings.Index(out, "\r\n")
	if pos < 0 {
		return ""
	}
	return strings.Replace(out[pos+2:], "\r\n", "\n", -1)
}

var replyErrors = []*monitor.CommandError{
	monitor.ErrUnknownCommand,
	monitor.ErrNumberFormat,
	monitor.ErrInvalidParameter,
	monitor.ErrNotOutputPort,
}

// ReplyError maps a reply to the monitor error it reports, or nil.
func ReplyError(reply string) *monitor.CommandError {
	reply = strings.TrimSpace(reply)
	for _, e := range replyErrors {
		if reply == e.Message {
			return e
		}
	}
	return nil
}
