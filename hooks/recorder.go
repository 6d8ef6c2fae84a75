package hooks

import (
	"github.com/example/flowgrid/component"
	"github.com/example/flowgrid/core"
	"github.com/example/flowgrid/network"
	"github.com/example/flowgrid/queue"
)

// EventKind names a recorded notification type.
type EventKind string

const (
	EventPacketSent          EventKind = "PacketSent"
	EventPacketDelivered     EventKind = "PacketDelivered"
	EventNodeAdded           EventKind = "NodeAdded"
	EventNodesConnected      EventKind = "NodesConnected"
	EventStateChanged        EventKind = "NetworkStateChanged"
	EventSubgraphConnected   EventKind = "SubgraphPortConnected"
	EventSubscriptionChanged EventKind = "PortSubscriptionChanged"
	EventDebug               EventKind = "DebugMessage"
	EventDebugChanged        EventKind = "DebugChanged"
)

// Event is one recorded notification, flattened to ids so recordings stay
// comparable after nodes are gone.
type Event struct {
	Kind EventKind

	Index      int
	NodeID     core.NodeID
	Port       core.PortID
	TargetID   core.NodeID
	TargetPort core.PortID
	Packet     core.Packet

	State    core.NetworkState
	Level    core.DebugLevel
	DebugID  core.DebugID
	IsOutput bool
	Enabled  bool
}

// Recorder keeps the most recent events in a bounded ring for tests and
// in-process trace inspection; when full, the oldest event is dropped.
type Recorder struct {
	ring *queue.Ring[Event]
}

// NewRecorder creates a recorder holding up to capacity events.
func NewRecorder(capacity int) *Recorder {
	return &Recorder{ring: queue.NewRing[Event](capacity)}
}

func (r *Recorder) record(e Event) {
	if r == nil {
		return
	}
	if _, ok := r.ring.Enqueue(e); !ok {
		r.ring.Dequeue()
		r.ring.Enqueue(e)
	}
}

// Events returns a snapshot of the recorded events, oldest first.
func (r *Recorder) Events() []Event {
	if r == nil {
		return nil
	}
	out := make([]Event, 0, r.ring.Len())
	for {
		e, _, ok := r.ring.Dequeue()
		if !ok {
			break
		}
		out = append(out, e)
	}
	for _, e := range out {
		r.ring.Enqueue(e)
	}
	return out
}

// ByKind returns the recorded events of one kind, oldest first.
func (r *Recorder) ByKind(kind EventKind) []Event {
	var out []Event
	for _, e := range r.Events() {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Clear drops every recorded event.
func (r *Recorder) Clear() {
	if r == nil {
		return
	}
	r.ring.Reset()
}

func senderID(c component.Component) core.NodeID {
	if c == nil {
		return 0
	}
	return c.NodeID()
}

// PacketSent implements network.NotificationHandler.
func (r *Recorder) PacketSent(index int, m network.Message) {
	r.record(Event{
		Kind:       EventPacketSent,
		Index:      index,
		NodeID:     senderID(m.Sender),
		Port:       m.SenderPort,
		TargetID:   senderID(m.Target),
		TargetPort: m.TargetPort,
		Packet:     m.Packet,
	})
}

// PacketDelivered implements network.NotificationHandler.
func (r *Recorder) PacketDelivered(index int, m network.Message) {
	r.record(Event{
		Kind:       EventPacketDelivered,
		Index:      index,
		NodeID:     senderID(m.Sender),
		Port:       m.SenderPort,
		TargetID:   senderID(m.Target),
		TargetPort: m.TargetPort,
		Packet:     m.Packet,
	})
}

// NodeAdded implements network.NotificationHandler.
func (r *Recorder) NodeAdded(c component.Component, parentID core.NodeID) {
	r.record(Event{Kind: EventNodeAdded, NodeID: c.NodeID(), TargetID: parentID})
}

// NodesConnected implements network.NotificationHandler.
func (r *Recorder) NodesConnected(src component.Component, srcPort core.PortID, target component.Component, targetPort core.PortID) {
	r.record(Event{
		Kind:       EventNodesConnected,
		NodeID:     senderID(src),
		Port:       srcPort,
		TargetID:   senderID(target),
		TargetPort: targetPort,
	})
}

// NetworkStateChanged implements network.NotificationHandler.
func (r *Recorder) NetworkStateChanged(s core.NetworkState) {
	r.record(Event{Kind: EventStateChanged, State: s})
}

// SubgraphConnected implements network.NotificationHandler.
func (r *Recorder) SubgraphConnected(isOutput bool, subgraphNode core.NodeID, subgraphPort core.PortID, childNode core.NodeID, childPort core.PortID) {
	r.record(Event{
		Kind:       EventSubgraphConnected,
		IsOutput:   isOutput,
		NodeID:     subgraphNode,
		Port:       subgraphPort,
		TargetID:   childNode,
		TargetPort: childPort,
	})
}

// PortSubscriptionChanged implements network.NotificationHandler.
func (r *Recorder) PortSubscriptionChanged(nodeID core.NodeID, portID core.PortID, enable bool) {
	r.record(Event{Kind: EventSubscriptionChanged, NodeID: nodeID, Port: portID, Enabled: enable})
}

// EmitDebug implements core.DebugHandler.
func (r *Recorder) EmitDebug(level core.DebugLevel, id core.DebugID) {
	r.record(Event{Kind: EventDebug, Level: level, DebugID: id})
}

// DebugChanged implements core.DebugHandler.
func (r *Recorder) DebugChanged(level core.DebugLevel) {
	r.record(Event{Kind: EventDebugChanged, Level: level})
}
