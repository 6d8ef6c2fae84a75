// Package component defines the node contract of the graph runtime: the
// Component interface, the embeddable Base that owns a node's out-port
// connections, the closed component-type registry, and the leaf library.
package component

import (
	"github.com/example/flowgrid/capabilities"
	"github.com/example/flowgrid/core"
)

// Connection is a directed edge from an out-port to a target's in-port. The
// subscribed flag controls whether sends over this edge emit per-packet
// notifications.
type Connection struct {
	Target     Component
	TargetPort core.PortID
	Subscribed bool
}

// Sender is what a component needs from its network: message emission and
// debug reporting. The network implements it.
type Sender interface {
	SendMessage(target Component, targetPort core.PortID, p core.Packet, sender Component, senderPort core.PortID)
	EmitDebug(level core.DebugLevel, id core.DebugID)
}

// Component is an instantiated node. Process must return promptly: the
// runtime is single-threaded and run-to-completion, so a blocking component
// stalls the whole graph. Everything except Process is provided by Base.
type Component interface {
	// Process reacts to one packet arriving on an input port. Setup and
	// Tick broadcasts arrive with port = PortNone.
	Process(in core.Packet, port core.PortID)

	NodeID() core.NodeID
	TypeID() ComponentID
	ParentID() core.NodeID
	SetParent(id core.NodeID)

	// Attach binds the component into a network. The network passes the
	// component value itself so the embedded Base can record the outer
	// type for sender attribution.
	Attach(owner Component, net Sender, id core.NodeID, dev capabilities.IO)

	OutPorts() int
	Connect(outPort core.PortID, target Component, targetPort core.PortID) bool
	ConnectionAt(port core.PortID) *Connection
}

// Base carries the state every node owns: the dense out-port connection
// array, the assigned ids, and back-references to network and IO. Leaf
// components embed it and implement Process.
type Base struct {
	conns    []Connection
	nodeID   core.NodeID
	typeID   ComponentID
	parentID core.NodeID

	owner   Component
	network Sender
	dev     capabilities.IO
}

// NewBase creates the shared node state for a component type with the given
// out-port count.
func NewBase(typeID ComponentID, outPorts int) Base {
	return Base{conns: make([]Connection, outPorts), typeID: typeID}
}

// NodeID returns the node id assigned at AddNode time, or 0 before that.
func (b *Base) NodeID() core.NodeID { return b.nodeID }

// TypeID returns the component type id.
func (b *Base) TypeID() ComponentID { return b.typeID }

// ParentID returns the containing subgraph's node id, or NoParent.
func (b *Base) ParentID() core.NodeID { return b.parentID }

// SetParent records the containing subgraph.
func (b *Base) SetParent(id core.NodeID) { b.parentID = id }

// Attach binds the component into a network.
func (b *Base) Attach(owner Component, net Sender, id core.NodeID, dev capabilities.IO) {
	b.owner = owner
	b.network = net
	b.nodeID = id
	b.dev = dev
}

// OutPorts returns the number of output ports.
func (b *Base) OutPorts() int { return len(b.conns) }

// Connect wires an out-port to a target in-port, replacing any previous
// wiring. Returns false when the port is out of range.
func (b *Base) Connect(outPort core.PortID, target Component, targetPort core.PortID) bool {
	if outPort < 0 || int(outPort) >= len(b.conns) {
		return false
	}
	b.conns[outPort] = Connection{Target: target, TargetPort: targetPort}
	return true
}

// ConnectionAt returns the connection owned by an out-port, or nil when the
// port is out of range.
func (b *Base) ConnectionAt(port core.PortID) *Connection {
	if port < 0 || int(port) >= len(b.conns) {
		return nil
	}
	return &b.conns[port]
}

// Send emits a packet on an out-port. Unconnected or unattached sends are
// no-ops.
func (b *Base) Send(p core.Packet, port core.PortID) {
	c := b.ConnectionAt(port)
	if c == nil || c.Target == nil || b.network == nil {
		return
	}
	b.network.SendMessage(c.Target, c.TargetPort, p, b.owner, port)
}

// IO returns the capability object bound at Attach time, or nil.
func (b *Base) IO() capabilities.IO { return b.dev }

// Network returns the sender bound at Attach time, or nil.
func (b *Base) Network() Sender { return b.network }
