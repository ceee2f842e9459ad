// Package peripherals implements ports.InputDevice/ports.OutputDevice
// adapters usable as port-table entries: a raw-mode console and a
// pseudo-random byte source.
package peripherals

import (
	"bufio"
	"fmt"
	"os"
	"sync"

	"golang.org/x/term"
)

// Console is a raw-mode stdin/stdout port device: IN reads the next queued
// keystroke (0 if none is pending), OUT writes a byte straight to stdout.
// Adapted from the teacher's TerminalHost: same raw-mode setup and the same
// background-goroutine-plus-queue shape, simplified to a byte queue instead
// of a line-oriented MMIO device since a Z80 port is polled one byte at a
// time rather than pushed a whole buffer.
type Console struct {
	fd           int
	oldTermState *term.State

	mu      sync.Mutex
	pending []byte

	stopCh chan struct{}
	done   chan struct{}
	once   sync.Once
}

// NewConsole puts stdin into raw mode and starts the background reader.
// Callers must call Stop when done to restore the terminal.
func NewConsole() (*Console, error) {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("peripherals: console: %w", err)
	}

	c := &Console{
		fd:           fd,
		oldTermState: oldState,
		stopCh:       make(chan struct{}),
		done:         make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

func (c *Console) readLoop() {
	defer close(c.done)
	r := bufio.NewReader(os.Stdin)
	for {
		select {
		case <-c.stopCh:
			return
		default:
		}
		b, err := r.ReadByte()
		if err != nil {
			return
		}
		if b == '\r' {
			b = '\n'
		}
		c.mu.Lock()
		c.pending = append(c.pending, b)
		c.mu.Unlock()
	}
}

// Input implements ports.InputDevice: it returns the oldest queued
// keystroke, or 0 if none is pending.
func (c *Console) Input() byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.pending) == 0 {
		return 0
	}
	b := c.pending[0]
	c.pending = c.pending[1:]
	return b
}

// Output implements ports.OutputDevice: it writes the byte straight to
// stdout.
func (c *Console) Output(value byte) {
	os.Stdout.Write([]byte{value})
}

// Stop tells the background reader to exit before its next read and
// restores the terminal. A read already blocked on stdin is not interrupted.
func (c *Console) Stop() {
	c.once.Do(func() { close(c.stopCh) })
	if c.oldTermState != nil {
		_ = term.Restore(c.fd, c.oldTermState)
		c.oldTermState = nil
	}
}
