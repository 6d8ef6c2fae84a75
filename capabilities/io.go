// Package capabilities defines the hardware capability set the runtime
// consumes, plus host-side implementations of it. Moving side effects behind
// this interface keeps components portable across targets and lets tests
// inject scripted hardware.
package capabilities

import "github.com/example/flowgrid/core"

// PinMode selects a pin's direction.
type PinMode uint8

const (
	PinInput PinMode = iota
	PinOutput
)

// PullupMode selects a pin's pull resistor configuration.
type PullupMode uint8

const (
	PullNone PullupMode = iota
	PullUp
)

// InterruptMode selects the edge or level an external interrupt fires on.
type InterruptMode uint8

const (
	InterruptOnLow InterruptMode = iota
	InterruptOnHigh
	InterruptOnChange
	InterruptOnRisingEdge
	InterruptOnFallingEdge
)

// InterruptFunc is invoked when an attached external interrupt fires. It runs
// in interrupt context: it must not touch the network directly, only post
// into a Mailbox drained by the main loop.
type InterruptFunc func(user any)

// IO is the capability set supplied by a target. Primitives a target does not
// support report IoOperationNotImplemented through the debug handler instead
// of failing hard.
type IO interface {
	// SetDebugHandler wires the sink for unimplemented-operation reports.
	// The network installs itself here when it takes ownership of the IO.
	SetDebugHandler(h core.DebugHandler)

	// Serial, per device index.
	SerialBegin(device, baudrate int)
	SerialDataAvailable(device int) int
	SerialRead(device int) byte
	SerialWrite(device int, b byte)

	// Pin configuration and digital access.
	PinSetMode(pin core.PinID, mode PinMode)
	PinSetPullup(pin core.PinID, mode PullupMode)
	DigitalWrite(pin core.PinID, val bool)
	DigitalRead(pin core.PinID) bool

	// Analog read in [0..1023], PWM write in [0..100].
	AnalogRead(pin core.PinID) int
	PwmWrite(pin core.PinID, dutyPercent int)

	// Timers.
	TimerCurrentMs() int64
	TimerCurrentMicros() int64

	// External interrupts; the caller maps pin numbers to interrupt numbers.
	AttachExternalInterrupt(interrupt int, mode InterruptMode, fn InterruptFunc, user any)

	// SPI.
	SPISetMode()
}
