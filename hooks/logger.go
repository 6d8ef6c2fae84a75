package hooks

import (
	"log/slog"

	"github.com/example/flowgrid/component"
	"github.com/example/flowgrid/core"
	"github.com/example/flowgrid/network"
)

// Logger mirrors runtime events into structured logs. Structural events log
// at info, per-packet traffic at debug, and debug events at error when the
// runtime assigned them Error and at info for every finer level.
type Logger struct {
	log *slog.Logger
}

// NewLogger creates a notification logger. A nil slog logger falls back to
// slog.Default.
func NewLogger(log *slog.Logger) *Logger {
	if log == nil {
		log = slog.Default()
	}
	return &Logger{log: log}
}

// PacketSent implements network.NotificationHandler.
func (l *Logger) PacketSent(index int, m network.Message) {
	l.log.Debug("packet sent",
		"index", index,
		"src", int(senderID(m.Sender)), "srcPort", int(m.SenderPort),
		"target", int(senderID(m.Target)), "targetPort", int(m.TargetPort),
		"kind", m.Packet.Kind().String())
}

// PacketDelivered implements network.NotificationHandler.
func (l *Logger) PacketDelivered(index int, m network.Message) {
	l.log.Debug("packet delivered",
		"index", index,
		"target", int(senderID(m.Target)), "targetPort", int(m.TargetPort),
		"kind", m.Packet.Kind().String())
}

// NodeAdded implements network.NotificationHandler.
func (l *Logger) NodeAdded(c component.Component, parentID core.NodeID) {
	l.log.Info("node added",
		"node", int(c.NodeID()), "type", int(c.TypeID()), "parent", int(parentID))
}

// NodesConnected implements network.NotificationHandler.
func (l *Logger) NodesConnected(src component.Component, srcPort core.PortID, target component.Component, targetPort core.PortID) {
	l.log.Info("nodes connected",
		"src", int(senderID(src)), "srcPort", int(srcPort),
		"target", int(senderID(target)), "targetPort", int(targetPort))
}

// NetworkStateChanged implements network.NotificationHandler.
func (l *Logger) NetworkStateChanged(s core.NetworkState) {
	l.log.Info("network state changed", "state", s.String())
}

// SubgraphConnected implements network.NotificationHandler.
func (l *Logger) SubgraphConnected(isOutput bool, subgraphNode core.NodeID, subgraphPort core.PortID, childNode core.NodeID, childPort core.PortID) {
	l.log.Info("subgraph port connected",
		"output", isOutput,
		"subgraph", int(subgraphNode), "subgraphPort", int(subgraphPort),
		"child", int(childNode), "childPort", int(childPort))
}

// PortSubscriptionChanged implements network.NotificationHandler.
func (l *Logger) PortSubscriptionChanged(nodeID core.NodeID, portID core.PortID, enable bool) {
	l.log.Info("port subscription changed",
		"node", int(nodeID), "port", int(portID), "enabled", enable)
}

// EmitDebug implements core.DebugHandler.
func (l *Logger) EmitDebug(level core.DebugLevel, id core.DebugID) {
	if level <= core.DebugLevelError {
		l.log.Error("runtime event", "id", id.String())
		return
	}
	l.log.Info("runtime event", "id", id.String(), "level", level.String())
}

// DebugChanged implements core.DebugHandler.
func (l *Logger) DebugChanged(level core.DebugLevel) {
	l.log.Info("debug level changed", "level", level.String())
}
