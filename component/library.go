package component

import (
	"github.com/example/flowgrid/capabilities"
	"github.com/example/flowgrid/core"
)

// Forward passes every data packet through unchanged.
type Forward struct {
	Base
}

// NewForward creates a Forward component.
func NewForward() *Forward { return &Forward{Base: NewBase(IDForward, 1)} }

// Process implements Component.
func (f *Forward) Process(in core.Packet, port core.PortID) {
	if in.IsData() {
		f.Send(in, 0)
	}
}

// Sink consumes and discards every packet.
type Sink struct {
	Base
}

// NewSink creates a Sink component.
func NewSink() *Sink { return &Sink{Base: NewBase(IDSink, 0)} }

// Process implements Component.
func (s *Sink) Process(in core.Packet, port core.PortID) {}

// Invert emits the boolean negation of each data packet.
type Invert struct {
	Base
}

// NewInvert creates an Invert component.
func NewInvert() *Invert { return &Invert{Base: NewBase(IDInvert, 1)} }

// Process implements Component.
func (i *Invert) Process(in core.Packet, port core.PortID) {
	if in.IsData() {
		i.Send(core.BoolPacket(!in.AsBool()), 0)
	}
}

// ToggleBoolean flips its internal state on every data packet and emits the
// new state. Port 1 forces the state back to false without emitting.
type ToggleBoolean struct {
	Base
	state bool
}

// NewToggleBoolean creates a ToggleBoolean component.
func NewToggleBoolean() *ToggleBoolean {
	return &ToggleBoolean{Base: NewBase(IDToggleBoolean, 1)}
}

// Process implements Component.
func (t *ToggleBoolean) Process(in core.Packet, port core.PortID) {
	switch {
	case in.IsSetup():
		t.state = false
	case in.IsData() && port == 1:
		t.state = false
	case in.IsData():
		t.state = !t.state
		t.Send(core.BoolPacket(t.state), 0)
	}
}

// Count counts data packets and emits the running total. Port 1 zeroes the
// counter without emitting.
type Count struct {
	Base
	total int32
}

// NewCount creates a Count component.
func NewCount() *Count { return &Count{Base: NewBase(IDCount, 1)} }

// Process implements Component.
func (c *Count) Process(in core.Packet, port core.PortID) {
	switch {
	case in.IsSetup():
		c.total = 0
	case in.IsData() && port == 1:
		c.total = 0
	case in.IsData():
		c.total++
		c.Send(core.IntegerPacket(c.total), 0)
	}
}

// DigitalWrite drives a digital output pin. Port 1 selects the pin and
// configures it for output; port 0 writes levels.
type DigitalWrite struct {
	Base
	pin    core.PinID
	hasPin bool
}

// NewDigitalWrite creates a DigitalWrite component.
func NewDigitalWrite() *DigitalWrite { return &DigitalWrite{Base: NewBase(IDDigitalWrite, 0)} }

// Process implements Component.
func (d *DigitalWrite) Process(in core.Packet, port core.PortID) {
	dev := d.IO()
	if dev == nil || !in.IsData() {
		return
	}
	switch port {
	case 1:
		d.pin = core.PinID(in.AsInteger())
		d.hasPin = true
		dev.PinSetMode(d.pin, capabilities.PinOutput)
	case 0:
		if d.hasPin {
			dev.DigitalWrite(d.pin, in.AsBool())
		}
	}
}

// DigitalRead samples a digital input pin when triggered on port 0. Port 1
// selects the pin and configures it for input.
type DigitalRead struct {
	Base
	pin    core.PinID
	hasPin bool
}

// NewDigitalRead creates a DigitalRead component.
func NewDigitalRead() *DigitalRead { return &DigitalRead{Base: NewBase(IDDigitalRead, 1)} }

// Process implements Component.
func (d *DigitalRead) Process(in core.Packet, port core.PortID) {
	dev := d.IO()
	if dev == nil || !in.IsData() {
		return
	}
	switch port {
	case 1:
		d.pin = core.PinID(in.AsInteger())
		d.hasPin = true
		dev.PinSetMode(d.pin, capabilities.PinInput)
	case 0:
		if d.hasPin {
			d.Send(core.BoolPacket(dev.DigitalRead(d.pin)), 0)
		}
	}
}

// AnalogRead samples an analog pin when triggered on port 0. Port 1 selects
// the pin.
type AnalogRead struct {
	Base
	pin    core.PinID
	hasPin bool
}

// NewAnalogRead creates an AnalogRead component.
func NewAnalogRead() *AnalogRead { return &AnalogRead{Base: NewBase(IDAnalogRead, 1)} }

// Process implements Component.
func (a *AnalogRead) Process(in core.Packet, port core.PortID) {
	dev := a.IO()
	if dev == nil || !in.IsData() {
		return
	}
	switch port {
	case 1:
		a.pin = core.PinID(in.AsInteger())
		a.hasPin = true
	case 0:
		if a.hasPin {
			a.Send(core.IntegerPacket(int32(dev.AnalogRead(a.pin))), 0)
		}
	}
}

// PwmWrite writes a duty cycle to a PWM pin. Port 1 selects the pin; port 0
// sets the duty percent.
type PwmWrite struct {
	Base
	pin    core.PinID
	hasPin bool
}

// NewPwmWrite creates a PwmWrite component.
func NewPwmWrite() *PwmWrite { return &PwmWrite{Base: NewBase(IDPwmWrite, 0)} }

// Process implements Component.
func (p *PwmWrite) Process(in core.Packet, port core.PortID) {
	dev := p.IO()
	if dev == nil || !in.IsData() {
		return
	}
	switch port {
	case 1:
		p.pin = core.PinID(in.AsInteger())
		p.hasPin = true
	case 0:
		if p.hasPin {
			dev.PwmWrite(p.pin, int(in.AsInteger()))
		}
	}
}

// IntervalTimer emits a bang on out-port 0 every interval milliseconds. The
// interval arrives as a number on port 0; the component is a generator and
// fires from Tick processing.
type IntervalTimer struct {
	Base
	intervalMs int64
	lastMs     int64
}

// NewIntervalTimer creates an IntervalTimer component.
func NewIntervalTimer() *IntervalTimer { return &IntervalTimer{Base: NewBase(IDIntervalTimer, 1)} }

// Process implements Component.
func (t *IntervalTimer) Process(in core.Packet, port core.PortID) {
	dev := t.IO()
	switch {
	case in.IsSetup():
		if dev != nil {
			t.lastMs = dev.TimerCurrentMs()
		}
	case in.IsTick():
		if dev == nil || t.intervalMs <= 0 {
			return
		}
		now := dev.TimerCurrentMs()
		if now-t.lastMs >= t.intervalMs {
			t.lastMs = now
			t.Send(core.VoidPacket(), 0)
		}
	case in.IsData() && port == 0:
		t.intervalMs = int64(in.AsInteger())
	}
}

// SerialIn emits each byte available on a serial device as a Byte packet,
// polled on every tick. Port 0 selects the device index (default 0).
type SerialIn struct {
	Base
	device int
}

// NewSerialIn creates a SerialIn component.
func NewSerialIn() *SerialIn { return &SerialIn{Base: NewBase(IDSerialIn, 1)} }

// Process implements Component.
func (s *SerialIn) Process(in core.Packet, port core.PortID) {
	dev := s.IO()
	switch {
	case in.IsTick():
		if dev == nil {
			return
		}
		for dev.SerialDataAvailable(s.device) > 0 {
			s.Send(core.BytePacket(dev.SerialRead(s.device)), 0)
		}
	case in.IsData() && port == 0:
		s.device = int(in.AsInteger())
	}
}

// SerialOut writes each incoming byte to a serial device. Port 1 selects the
// device index (default 0).
type SerialOut struct {
	Base
	device int
}

// NewSerialOut creates a SerialOut component.
func NewSerialOut() *SerialOut { return &SerialOut{Base: NewBase(IDSerialOut, 0)} }

// Process implements Component.
func (s *SerialOut) Process(in core.Packet, port core.PortID) {
	dev := s.IO()
	if dev == nil || !in.IsData() {
		return
	}
	switch port {
	case 1:
		s.device = int(in.AsInteger())
	case 0:
		dev.SerialWrite(s.device, in.AsByte())
	}
}
