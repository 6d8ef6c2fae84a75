package component

import (
	"fmt"
	"strings"

	"github.com/example/flowgrid/core"
)

// ComponentID identifies a component type. The set is closed at build time
// and the values travel on the wire as u8 inside CreateComponent frames.
type ComponentID uint8

const (
	IDInvalid ComponentID = iota
	IDForward
	IDSink
	IDInvert
	IDToggleBoolean
	IDCount
	IDDigitalWrite
	IDDigitalRead
	IDAnalogRead
	IDPwmWrite
	IDIntervalTimer
	IDSerialIn
	IDSerialOut
	IDSubGraph
	idMaxDefined
)

// Create instantiates a component by type id. Unknown ids return nil; the
// set is closed, so there is no open registration.
func Create(id ComponentID) Component {
	switch id {
	case IDForward:
		return NewForward()
	case IDSink:
		return NewSink()
	case IDInvert:
		return NewInvert()
	case IDToggleBoolean:
		return NewToggleBoolean()
	case IDCount:
		return NewCount()
	case IDDigitalWrite:
		return NewDigitalWrite()
	case IDDigitalRead:
		return NewDigitalRead()
	case IDAnalogRead:
		return NewAnalogRead()
	case IDPwmWrite:
		return NewPwmWrite()
	case IDIntervalTimer:
		return NewIntervalTimer()
	case IDSerialIn:
		return NewSerialIn()
	case IDSerialOut:
		return NewSerialOut()
	case IDSubGraph:
		return NewSubGraph()
	default:
		return nil
	}
}

// PortSpec documents one port of a component type.
type PortSpec struct {
	ID          core.PortID
	Name        string
	Description string
}

// Spec is the declarative description of a component type, used for host
// introspection and the daemon's catalog output.
type Spec struct {
	ID          ComponentID
	Name        string
	Description string
	InPorts     []PortSpec
	OutPorts    []PortSpec
}

// Validate ensures the spec is self-consistent.
func (s *Spec) Validate() error {
	if s == nil {
		return fmt.Errorf("spec is nil")
	}
	if s.Name == "" {
		return fmt.Errorf("spec name is empty")
	}
	if s.ID == IDInvalid || s.ID >= idMaxDefined {
		return fmt.Errorf("spec %q has id %d outside the defined range", s.Name, s.ID)
	}
	seen := make(map[core.PortID]struct{})
	for _, p := range s.InPorts {
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("spec %q declares in-port %d twice", s.Name, p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	seen = make(map[core.PortID]struct{})
	for _, p := range s.OutPorts {
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("spec %q declares out-port %d twice", s.Name, p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}

// Render returns a one-block textual description of the component type.
func (s *Spec) Render() string {
	if s == nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s (id %d)\n", s.Name, s.ID)
	if s.Description != "" {
		fmt.Fprintf(&b, "  %s\n", s.Description)
	}
	for _, p := range s.InPorts {
		fmt.Fprintf(&b, "  in  %d %-10s %s\n", p.ID, p.Name, p.Description)
	}
	for _, p := range s.OutPorts {
		fmt.Fprintf(&b, "  out %d %-10s %s\n", p.ID, p.Name, p.Description)
	}
	return b.String()
}

// Catalog lists the specs of every registered component type, in id order.
func Catalog() []Spec {
	return []Spec{
		{
			ID: IDForward, Name: "Forward",
			Description: "passes every data packet through unchanged",
			InPorts:     []PortSpec{{0, "in", "packet to forward"}},
			OutPorts:    []PortSpec{{0, "out", "forwarded packet"}},
		},
		{
			ID: IDSink, Name: "Sink",
			Description: "consumes and discards every packet",
			InPorts:     []PortSpec{{0, "in", "packet to discard"}},
		},
		{
			ID: IDInvert, Name: "Invert",
			Description: "emits the boolean negation of each data packet",
			InPorts:     []PortSpec{{0, "in", "value to negate"}},
			OutPorts:    []PortSpec{{0, "out", "negated value"}},
		},
		{
			ID: IDToggleBoolean, Name: "ToggleBoolean",
			Description: "flips its internal boolean on every data packet",
			InPorts:     []PortSpec{{0, "in", "toggle trigger"}, {1, "reset", "force state to false"}},
			OutPorts:    []PortSpec{{0, "out", "current state"}},
		},
		{
			ID: IDCount, Name: "Count",
			Description: "counts data packets and emits the running total",
			InPorts:     []PortSpec{{0, "in", "counted packet"}, {1, "reset", "zero the counter"}},
			OutPorts:    []PortSpec{{0, "out", "running total"}},
		},
		{
			ID: IDDigitalWrite, Name: "DigitalWrite",
			Description: "drives a digital output pin",
			InPorts:     []PortSpec{{0, "in", "level to write"}, {1, "pin", "pin number"}},
		},
		{
			ID: IDDigitalRead, Name: "DigitalRead",
			Description: "samples a digital input pin when triggered",
			InPorts:     []PortSpec{{0, "trigger", "sample now"}, {1, "pin", "pin number"}},
			OutPorts:    []PortSpec{{0, "out", "sampled level"}},
		},
		{
			ID: IDAnalogRead, Name: "AnalogRead",
			Description: "samples an analog pin when triggered",
			InPorts:     []PortSpec{{0, "trigger", "sample now"}, {1, "pin", "pin number"}},
			OutPorts:    []PortSpec{{0, "out", "sample in [0..1023]"}},
		},
		{
			ID: IDPwmWrite, Name: "PwmWrite",
			Description: "writes a PWM duty cycle to a pin",
			InPorts:     []PortSpec{{0, "duty", "duty percent [0..100]"}, {1, "pin", "pin number"}},
		},
		{
			ID: IDIntervalTimer, Name: "IntervalTimer",
			Description: "emits a bang every interval milliseconds, driven by ticks",
			InPorts:     []PortSpec{{0, "interval", "period in milliseconds"}},
			OutPorts:    []PortSpec{{0, "out", "bang on expiry"}},
		},
		{
			ID: IDSerialIn, Name: "SerialIn",
			Description: "emits each byte available on a serial device",
			InPorts:     []PortSpec{{0, "device", "serial device index"}},
			OutPorts:    []PortSpec{{0, "out", "received byte"}},
		},
		{
			ID: IDSerialOut, Name: "SerialOut",
			Description: "writes each incoming byte to a serial device",
			InPorts:     []PortSpec{{0, "in", "byte to write"}, {1, "device", "serial device index"}},
		},
		{
			ID: IDSubGraph, Name: "SubGraph",
			Description: "composite node forwarding packets through virtual ports",
		},
	}
}
