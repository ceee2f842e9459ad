// Package ports defines the Z80 I/O port peripheral contract and the port
// table the executor consults for IN/OUT.
package ports

import "fmt"

// InputDevice is a peripheral readable through IN.
type InputDevice interface {
	Input() byte
}

// OutputDevice is a peripheral writable through OUT.
type OutputDevice interface {
	Output(value byte)
}

// Table maps port numbers (0..255) to input and output devices. A dense
// 256-slot array is used rather than a map — the port key space is small and
// fixed, the same tradeoff the register file makes for O(1) register lookup.
type Table struct {
	in  [256]InputDevice
	out [256]OutputDevice
}

// InstallInput registers an input device at the given port, replacing
// whatever was installed there before.
func (t *Table) InstallInput(port byte, dev InputDevice) {
	t.in[port] = dev
}

// InstallOutput registers an output device at the given port.
func (t *Table) InstallOutput(port byte, dev OutputDevice) {
	t.out[port] = dev
}

// ErrUnmappedPort is the error raised (via panic, then recovered at the
// driver boundary) when IN/OUT targets a port with no installed device.
type ErrUnmappedPort struct {
	Port      byte
	Direction string // "input" or "output"
}

func (e *ErrUnmappedPort) Error() string {
	return fmt.Sprintf("ports: no %s device installed on port 0x%02X", e.Direction, e.Port)
}

// In reads from the device installed at port, panicking with
// *ErrUnmappedPort if none is installed — an unmapped port is a
// configuration error, not a recoverable condition (spec.md §7).
func (t *Table) In(port byte) byte {
	dev := t.in[port]
	if dev == nil {
		panic(&ErrUnmappedPort{Port: port, Direction: "input"})
	}
	return dev.Input()
}

// Out writes to the device installed at port, panicking with
// *ErrUnmappedPort if none is installed.
func (t *Table) Out(port byte, value byte) {
	dev := t.out[port]
	if dev == nil {
		panic(&ErrUnmappedPort{Port: port, Direction: "output"})
	}
	dev.Output(value)
}
