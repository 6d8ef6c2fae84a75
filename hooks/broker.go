// Package hooks fans runtime notifications out to multiple observers: the
// host protocol mirror, metrics, loggers, and test recorders all see the
// same event stream without the network knowing about any of them.
package hooks

import (
	"github.com/example/flowgrid/component"
	"github.com/example/flowgrid/core"
	"github.com/example/flowgrid/network"
)

// Broker dispatches every notification to each registered handler, in
// registration order. It implements network.NotificationHandler itself, so
// it plugs in where a single handler would.
type Broker struct {
	handlers []network.NotificationHandler
}

// NewBroker creates a broker over the given handlers.
func NewBroker(handlers ...network.NotificationHandler) *Broker {
	b := &Broker{}
	for _, h := range handlers {
		b.Add(h)
	}
	return b
}

// Add registers another handler. Nil handlers are ignored.
func (b *Broker) Add(h network.NotificationHandler) {
	if b == nil || h == nil {
		return
	}
	b.handlers = append(b.handlers, h)
}

// PacketSent implements network.NotificationHandler.
func (b *Broker) PacketSent(index int, m network.Message) {
	for _, h := range b.handlers {
		h.PacketSent(index, m)
	}
}

// PacketDelivered implements network.NotificationHandler.
func (b *Broker) PacketDelivered(index int, m network.Message) {
	for _, h := range b.handlers {
		h.PacketDelivered(index, m)
	}
}

// NodeAdded implements network.NotificationHandler.
func (b *Broker) NodeAdded(c component.Component, parentID core.NodeID) {
	for _, h := range b.handlers {
		h.NodeAdded(c, parentID)
	}
}

// NodesConnected implements network.NotificationHandler.
func (b *Broker) NodesConnected(src component.Component, srcPort core.PortID, target component.Component, targetPort core.PortID) {
	for _, h := range b.handlers {
		h.NodesConnected(src, srcPort, target, targetPort)
	}
}

// NetworkStateChanged implements network.NotificationHandler.
func (b *Broker) NetworkStateChanged(s core.NetworkState) {
	for _, h := range b.handlers {
		h.NetworkStateChanged(s)
	}
}

// SubgraphConnected implements network.NotificationHandler.
func (b *Broker) SubgraphConnected(isOutput bool, subgraphNode core.NodeID, subgraphPort core.PortID, childNode core.NodeID, childPort core.PortID) {
	for _, h := range b.handlers {
		h.SubgraphConnected(isOutput, subgraphNode, subgraphPort, childNode, childPort)
	}
}

// PortSubscriptionChanged implements network.NotificationHandler.
func (b *Broker) PortSubscriptionChanged(nodeID core.NodeID, portID core.PortID, enable bool) {
	for _, h := range b.handlers {
		h.PortSubscriptionChanged(nodeID, portID, enable)
	}
}

// EmitDebug implements core.DebugHandler.
func (b *Broker) EmitDebug(level core.DebugLevel, id core.DebugID) {
	for _, h := range b.handlers {
		h.EmitDebug(level, id)
	}
}

// DebugChanged implements core.DebugHandler.
func (b *Broker) DebugChanged(level core.DebugLevel) {
	for _, h := range b.handlers {
		h.DebugChanged(level)
	}
}
