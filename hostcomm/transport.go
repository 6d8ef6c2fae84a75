package hostcomm

import (
	"github.com/example/flowgrid/capabilities"
)

// HostTransport is the byte pipe between HostCommunication and the outside
// world. RunTick is called from the single-threaded run loop and must feed
// every pending inbound byte to the controller's ParseByte.
type HostTransport interface {
	Setup(dev capabilities.IO, controller *HostCommunication)
	RunTick()
	SendCommandByte(b byte)
}

// NullTransport discards output and never produces input. Useful for graphs
// that run without a host attached.
type NullTransport struct{}

// Setup implements HostTransport.
func (NullTransport) Setup(dev capabilities.IO, controller *HostCommunication) {}

// RunTick implements HostTransport.
func (NullTransport) RunTick() {}

// SendCommandByte implements HostTransport.
func (NullTransport) SendCommandByte(b byte) {}

// SerialTransport speaks the framing over an IO serial device, the standard
// transport on embedded targets.
type SerialTransport struct {
	dev        capabilities.IO
	controller *HostCommunication
	device     int
	baudrate   int
}

// NewSerialTransport creates a transport on the given serial device index.
func NewSerialTransport(device, baudrate int) *SerialTransport {
	return &SerialTransport{device: device, baudrate: baudrate}
}

// Setup opens the serial device and binds the controller.
func (t *SerialTransport) Setup(dev capabilities.IO, controller *HostCommunication) {
	t.dev = dev
	t.controller = controller
	if dev != nil {
		dev.SerialBegin(t.device, t.baudrate)
	}
}

// RunTick drains every available inbound byte into the parser.
func (t *SerialTransport) RunTick() {
	if t.dev == nil || t.controller == nil {
		return
	}
	for t.dev.SerialDataAvailable(t.device) > 0 {
		t.controller.ParseByte(t.dev.SerialRead(t.device))
	}
}

// SendCommandByte writes one outbound byte.
func (t *SerialTransport) SendCommandByte(b byte) {
	if t.dev == nil {
		return
	}
	t.dev.SerialWrite(t.device, b)
}
