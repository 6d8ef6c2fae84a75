// Package network owns the live graph: the bounded node table, the bounded
// message queue, and the running state. It delivers packets in FIFO order,
// drives Setup and Tick propagation, and reports every observable event to
// a notification handler before control returns to the caller.
package network

import (
	"github.com/example/flowgrid/capabilities"
	"github.com/example/flowgrid/component"
	"github.com/example/flowgrid/core"
	"github.com/example/flowgrid/queue"
)

// Network is the single-threaded graph runtime. All methods must be called
// from one execution context; interrupt sources go through a capabilities
// mailbox instead of calling in directly.
type Network struct {
	cfg       Config
	nodes     []component.Component
	lastAdded int

	messages *queue.Ring[Message]

	state      core.NetworkState
	debugLevel core.DebugLevel

	handler NotificationHandler
	dev     capabilities.IO
}

// New creates a stopped network bound to an IO capability object. The IO's
// debug reporting is routed through the network so unimplemented-operation
// events reach the notification handler like every other debug event.
func New(dev capabilities.IO, cfg Config) (*Network, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	n := &Network{
		cfg:        cfg,
		nodes:      make([]component.Component, cfg.MaxNodes),
		messages:   queue.NewRing[Message](cfg.MaxMessages),
		state:      core.StateStopped,
		debugLevel: core.DebugLevelError,
		dev:        dev,
	}
	if dev != nil {
		dev.SetDebugHandler(n)
	}
	return n, nil
}

// SetNotificationHandler installs the event sink. Pass nil to silence.
func (n *Network) SetNotificationHandler(h NotificationHandler) { n.handler = h }

// State returns the current run state.
func (n *Network) State() core.NetworkState { return n.state }

// DebugLevel returns the current verbosity threshold.
func (n *Network) DebugLevel() core.DebugLevel { return n.debugLevel }

// NodeCount returns the number of nodes added since the last reset.
func (n *Network) NodeCount() int { return n.lastAdded }

// Node returns the component with the given id, or nil (with an
// InvalidNodeId debug event) when the id is unassigned.
func (n *Network) Node(id core.NodeID) component.Component {
	if id < core.FirstNodeID || int(id) > n.lastAdded {
		n.EmitDebug(core.DebugLevelError, core.DebugInvalidNodeID)
		return nil
	}
	return n.nodes[id-1]
}

// AddNode appends a component at the next free slot and binds its node id
// (slot index + 1), parent, network and IO references. When the table is
// full the node is rejected with NodeUpperLimitReached.
func (n *Network) AddNode(c component.Component, parentID core.NodeID) core.NodeID {
	if c == nil {
		n.EmitDebug(core.DebugLevelError, core.DebugInvalidNodeID)
		return 0
	}
	if n.lastAdded >= len(n.nodes) {
		n.EmitDebug(core.DebugLevelError, core.DebugNodeUpperLimitReached)
		return 0
	}
	id := core.NodeID(n.lastAdded + 1)
	n.nodes[n.lastAdded] = c
	n.lastAdded++
	c.Attach(c, n, id, n.dev)
	c.SetParent(parentID)
	if n.handler != nil {
		n.handler.NodeAdded(c, parentID)
	}
	return id
}

// Connect wires src's out-port to target's in-port. Re-connecting the same
// out-port overwrites the previous wiring. When src is a subgraph with a
// child bound to that virtual out-port, the child's physical connection is
// re-pointed at the new downstream target, keeping the boundary transparent.
func (n *Network) Connect(src component.Component, srcPort core.PortID, target component.Component, targetPort core.PortID) {
	if src == nil || target == nil {
		n.EmitDebug(core.DebugLevelError, core.DebugInvalidNodeID)
		return
	}
	if !src.Connect(srcPort, target, targetPort) {
		n.EmitDebug(core.DebugLevelError, core.DebugInvalidPort)
		return
	}
	if sg, ok := src.(*component.SubGraph); ok {
		if child, childPort, bound := sg.OutBinding(srcPort); bound {
			child.Connect(childPort, target, targetPort)
		}
	}
	if n.handler != nil {
		n.handler.NodesConnected(src, srcPort, target, targetPort)
	}
}

// ConnectByID is Connect with node id resolution.
func (n *Network) ConnectByID(srcID core.NodeID, srcPort core.PortID, targetID core.NodeID, targetPort core.PortID) {
	src := n.Node(srcID)
	target := n.Node(targetID)
	if src == nil || target == nil {
		return
	}
	n.Connect(src, srcPort, target, targetPort)
}

// ConnectSubgraph binds a subgraph's virtual port to a child. For the input
// direction the packet route is stored on the subgraph. For the output
// direction the child's physical out-connection is rewritten to the
// subgraph's current downstream target, so outbound packets skip the
// intermediate hop entirely.
func (n *Network) ConnectSubgraph(isOutput bool, subgraphNode core.NodeID, subgraphPort core.PortID, childNode core.NodeID, childPort core.PortID) {
	sub := n.Node(subgraphNode)
	child := n.Node(childNode)
	if sub == nil || child == nil {
		return
	}
	sg, ok := sub.(*component.SubGraph)
	if !ok {
		n.EmitDebug(core.DebugLevelError, core.DebugInvalidNodeID)
		return
	}
	if isOutput {
		if !sg.BindOutPort(subgraphPort, child, childPort) {
			n.EmitDebug(core.DebugLevelError, core.DebugSubgraphPortOverflow)
			return
		}
		if c := sg.ConnectionAt(subgraphPort); c != nil && c.Target != nil {
			child.Connect(childPort, c.Target, c.TargetPort)
		}
	} else {
		if !sg.ConnectInPort(subgraphPort, child, childPort) {
			n.EmitDebug(core.DebugLevelError, core.DebugSubgraphPortOverflow)
			return
		}
	}
	if n.handler != nil {
		n.handler.SubgraphConnected(isOutput, subgraphNode, subgraphPort, childNode, childPort)
	}
}

// SendMessage enqueues a packet for delivery. A full queue drops the packet
// with MessageQueueFull. The packetSent notification fires for externally
// injected messages (nil sender) and for sends over subscribed connections.
func (n *Network) SendMessage(target component.Component, targetPort core.PortID, p core.Packet, sender component.Component, senderPort core.PortID) {
	if target == nil {
		return
	}
	m := Message{
		Target:     target,
		TargetPort: targetPort,
		Packet:     p,
		Sender:     sender,
		SenderPort: senderPort,
	}
	slot, ok := n.messages.Enqueue(m)
	if !ok {
		n.EmitDebug(core.DebugLevelError, core.DebugMessageQueueFull)
		return
	}
	notify := sender == nil
	if sender != nil {
		if c := sender.ConnectionAt(senderPort); c != nil && c.Subscribed {
			notify = true
		}
	}
	if notify && n.handler != nil {
		n.handler.PacketSent(slot, m)
	}
}

// SendMessageTo injects a packet from outside the graph, addressed by node
// id. The synthetic sender is nil/PortNone.
func (n *Network) SendMessageTo(targetID core.NodeID, targetPort core.PortID, p core.Packet) {
	target := n.Node(targetID)
	if target == nil {
		return
	}
	n.SendMessage(target, targetPort, p, nil, core.PortNone)
}

// SubscribeToPort flips the per-connection notification flag on the
// connection sourced at (nodeID, portID).
func (n *Network) SubscribeToPort(nodeID core.NodeID, portID core.PortID, enable bool) {
	c := n.Node(nodeID)
	if c == nil {
		return
	}
	conn := c.ConnectionAt(portID)
	if conn == nil {
		n.EmitDebug(core.DebugLevelError, core.DebugInvalidPort)
		return
	}
	conn.Subscribed = enable
	if n.handler != nil {
		n.handler.PortSubscriptionChanged(nodeID, portID, enable)
	}
}

// processMessages drains the queue in FIFO order. Each dequeued message is
// processed to completion before the next; sends performed inside Process
// append to the tail, giving breadth-first causal ordering.
func (n *Network) processMessages() {
	for {
		m, slot, ok := n.messages.Dequeue()
		if !ok {
			return
		}
		m.Target.Process(m.Packet, m.TargetPort)
		if n.handler != nil {
			n.handler.PacketDelivered(slot, m)
		}
	}
}

// RunTick performs one scheduler cycle: deliver everything queued, broadcast
// Tick to every node, then deliver everything the tick produced. In Stopped
// state it is a no-op reported as NotRunning.
func (n *Network) RunTick() {
	if n.state != core.StateRunning {
		n.EmitDebug(core.DebugLevelInfo, core.DebugNotRunning)
		return
	}
	n.processMessages()
	tick := core.TickPacket()
	for i := 0; i < n.lastAdded; i++ {
		n.nodes[i].Process(tick, core.PortNone)
	}
	n.processMessages()
}

// Start transitions Stopped -> Running, broadcasts Setup to every node
// (delivering all induced messages), then runs the first tick cycle.
func (n *Network) Start() {
	if n.state == core.StateRunning {
		n.EmitDebug(core.DebugLevelError, core.DebugNetworkAlreadyRunning)
		return
	}
	n.state = core.StateRunning
	if n.handler != nil {
		n.handler.NetworkStateChanged(n.state)
	}
	setup := core.SetupPacket()
	for i := 0; i < n.lastAdded; i++ {
		n.nodes[i].Process(setup, core.PortNone)
	}
	n.processMessages()
	n.RunTick()
}

// Reset drains the queue, transitions to Stopped, and clears the node table.
// The debug level survives: it is host session state, not graph state.
func (n *Network) Reset() {
	n.state = core.StateStopped
	if n.handler != nil {
		n.handler.NetworkStateChanged(n.state)
	}
	n.messages.Reset()
	for i := 0; i < n.lastAdded; i++ {
		n.nodes[i] = nil
	}
	n.lastAdded = 0
}

// SetDebugLevel stores the verbosity threshold and reports the change.
func (n *Network) SetDebugLevel(level core.DebugLevel) {
	n.debugLevel = level
	if n.handler != nil {
		n.handler.DebugChanged(level)
	}
}

// EmitDebug forwards a debug event to the handler when its level passes the
// current threshold. Implements core.DebugHandler, so IO objects and
// components report through the same funnel.
func (n *Network) EmitDebug(level core.DebugLevel, id core.DebugID) {
	if n.handler == nil {
		return
	}
	if level > n.debugLevel {
		return
	}
	n.handler.EmitDebug(level, id)
}

// DebugChanged forwards a level change notification. Implements
// core.DebugHandler.
func (n *Network) DebugChanged(level core.DebugLevel) {
	if n.handler != nil {
		n.handler.DebugChanged(level)
	}
}
