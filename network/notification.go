package network

import (
	"github.com/example/flowgrid/component"
	"github.com/example/flowgrid/core"
)

// Message is one queued packet addressed to a node's input port. The sender
// fields are recorded for observability only and never affect delivery;
// externally injected messages carry a nil Sender and SenderPort = PortNone.
type Message struct {
	Target     component.Component
	TargetPort core.PortID
	Packet     core.Packet
	Sender     component.Component
	SenderPort core.PortID
}

// NotificationHandler observes every graph mutation and delivery event. All
// callbacks run synchronously on the runtime's single execution context,
// before the mutating call returns to its caller.
type NotificationHandler interface {
	core.DebugHandler

	PacketSent(index int, m Message)
	PacketDelivered(index int, m Message)

	NodeAdded(c component.Component, parentID core.NodeID)
	NodesConnected(src component.Component, srcPort core.PortID, target component.Component, targetPort core.PortID)
	NetworkStateChanged(s core.NetworkState)
	SubgraphConnected(isOutput bool, subgraphNode core.NodeID, subgraphPort core.PortID, childNode core.NodeID, childPort core.PortID)
	PortSubscriptionChanged(nodeID core.NodeID, portID core.PortID, enable bool)
}
