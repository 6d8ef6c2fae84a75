// Package metric exposes runtime counters as Prometheus metrics. The
// collector is a notification handler: registered behind the hooks broker it
// observes the same event stream the host sees.
package metric

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/example/flowgrid/component"
	"github.com/example/flowgrid/core"
	"github.com/example/flowgrid/network"
)

// Collector counts graph mutations, packet traffic, and debug events.
type Collector struct {
	nodesAdded       prometheus.Counter
	connections      prometheus.Counter
	packetsSent      prometheus.Counter
	packetsDelivered prometheus.Counter
	subscriptions    prometheus.Counter
	stateChanges     prometheus.Counter
	running          prometheus.Gauge
	debugEvents      *prometheus.CounterVec
}

// NewCollector creates a collector and registers its metrics.
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		nodesAdded: factory.NewCounter(prometheus.CounterOpts{
			Name: "flowgrid_nodes_added_total",
			Help: "Nodes added to the network.",
		}),
		connections: factory.NewCounter(prometheus.CounterOpts{
			Name: "flowgrid_connections_total",
			Help: "Out-port connections wired, including rewires.",
		}),
		packetsSent: factory.NewCounter(prometheus.CounterOpts{
			Name: "flowgrid_packets_sent_total",
			Help: "Packets enqueued with a sent notification.",
		}),
		packetsDelivered: factory.NewCounter(prometheus.CounterOpts{
			Name: "flowgrid_packets_delivered_total",
			Help: "Packets delivered to components.",
		}),
		subscriptions: factory.NewCounter(prometheus.CounterOpts{
			Name: "flowgrid_subscription_changes_total",
			Help: "Port subscription flips.",
		}),
		stateChanges: factory.NewCounter(prometheus.CounterOpts{
			Name: "flowgrid_state_changes_total",
			Help: "Network state transitions.",
		}),
		running: factory.NewGauge(prometheus.GaugeOpts{
			Name: "flowgrid_network_running",
			Help: "1 while the network is running.",
		}),
		debugEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "flowgrid_debug_events_total",
			Help: "Debug events by id.",
		}, []string{"id"}),
	}
}

// PacketSent implements network.NotificationHandler.
func (c *Collector) PacketSent(index int, m network.Message) { c.packetsSent.Inc() }

// PacketDelivered implements network.NotificationHandler.
func (c *Collector) PacketDelivered(index int, m network.Message) { c.packetsDelivered.Inc() }

// NodeAdded implements network.NotificationHandler.
func (c *Collector) NodeAdded(comp component.Component, parentID core.NodeID) { c.nodesAdded.Inc() }

// NodesConnected implements network.NotificationHandler.
func (c *Collector) NodesConnected(src component.Component, srcPort core.PortID, target component.Component, targetPort core.PortID) {
	c.connections.Inc()
}

// NetworkStateChanged implements network.NotificationHandler.
func (c *Collector) NetworkStateChanged(s core.NetworkState) {
	c.stateChanges.Inc()
	if s == core.StateRunning {
		c.running.Set(1)
	} else {
		c.running.Set(0)
	}
}

// SubgraphConnected implements network.NotificationHandler.
func (c *Collector) SubgraphConnected(isOutput bool, subgraphNode core.NodeID, subgraphPort core.PortID, childNode core.NodeID, childPort core.PortID) {
	c.connections.Inc()
}

// PortSubscriptionChanged implements network.NotificationHandler.
func (c *Collector) PortSubscriptionChanged(nodeID core.NodeID, portID core.PortID, enable bool) {
	c.subscriptions.Inc()
}

// EmitDebug implements core.DebugHandler.
func (c *Collector) EmitDebug(level core.DebugLevel, id core.DebugID) {
	c.debugEvents.WithLabelValues(id.String()).Inc()
}

// DebugChanged implements core.DebugHandler.
func (c *Collector) DebugChanged(level core.DebugLevel) {}
