package component

import "github.com/example/flowgrid/core"

// SubGraph is a composite node. Packets arriving on a virtual input port are
// re-enqueued to the child bound to that port; the output direction is made
// transparent structurally, by rewriting the bound child's physical
// out-connection to the subgraph's downstream target, so outbound packets
// cross the boundary in a single hop.
type SubGraph struct {
	Base
	inputs  [core.SubGraphMaxPorts]Connection
	outputs [core.SubGraphMaxPorts]Connection
}

// NewSubGraph creates an empty subgraph node.
func NewSubGraph() *SubGraph {
	return &SubGraph{Base: NewBase(IDSubGraph, core.SubGraphMaxPorts)}
}

// Process forwards data packets through the bound input connection. Setup
// and Tick are not re-broadcast: the network already delivers them to every
// node, children included.
func (s *SubGraph) Process(in core.Packet, port core.PortID) {
	if in.IsSpecial() {
		return
	}
	if port < 0 || int(port) >= len(s.inputs) {
		if net := s.Network(); net != nil {
			net.EmitDebug(core.DebugLevelError, core.DebugSubgraphPortOverflow)
		}
		return
	}
	c := s.inputs[port]
	if c.Target == nil {
		return
	}
	net := s.Network()
	if net == nil {
		return
	}
	// Forwarded packets carry no sender, like externally injected ones.
	net.SendMessage(c.Target, c.TargetPort, in, nil, core.PortNone)
}

// ConnectInPort routes the subgraph's virtual input port to a child input.
// Returns false when the port is outside the fixed virtual port range.
func (s *SubGraph) ConnectInPort(port core.PortID, child Component, childPort core.PortID) bool {
	if port < 0 || int(port) >= len(s.inputs) {
		return false
	}
	s.inputs[port] = Connection{Target: child, TargetPort: childPort}
	return true
}

// BindOutPort records which child out-port feeds the subgraph's virtual
// output port. Returns false when the port is out of range.
func (s *SubGraph) BindOutPort(port core.PortID, child Component, childPort core.PortID) bool {
	if port < 0 || int(port) >= len(s.outputs) {
		return false
	}
	s.outputs[port] = Connection{Target: child, TargetPort: childPort}
	return true
}

// OutBinding returns the child bound to a virtual output port, if any.
func (s *SubGraph) OutBinding(port core.PortID) (child Component, childPort core.PortID, ok bool) {
	if port < 0 || int(port) >= len(s.outputs) {
		return nil, core.PortNone, false
	}
	c := s.outputs[port]
	if c.Target == nil {
		return nil, core.PortNone, false
	}
	return c.Target, c.TargetPort, true
}
