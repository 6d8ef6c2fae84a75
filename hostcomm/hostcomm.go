package hostcomm

import (
	"encoding/binary"

	"github.com/example/flowgrid/component"
	"github.com/example/flowgrid/core"
	"github.com/example/flowgrid/network"
)

type parseState int8

const (
	stateLookForHeader parseState = iota
	stateParseHeader
	stateParseCmd
)

// HostCommunication translates wire commands into network mutations and
// runtime notifications into wire frames. It is both the protocol parser and
// the network's notification handler; typically it sits behind a hooks
// broker next to loggers and metrics.
type HostCommunication struct {
	net       *network.Network
	transport HostTransport

	state    parseState
	magicPos int
	buf      [CmdSize]byte
	n        int
}

// New creates a parser waiting for the magic preamble.
func New() *HostCommunication {
	return &HostCommunication{state: stateLookForHeader}
}

// Setup binds the network to mutate and the transport to emit on. It does
// not call the transport's own Setup; the caller wires the transport back to
// this controller.
func (hc *HostCommunication) Setup(net *network.Network, t HostTransport) {
	hc.net = net
	hc.transport = t
}

// ParseByte consumes one inbound byte. Outside a frame it scans for the
// magic preamble; inside, it accumulates the fixed 8-byte frame and
// dispatches it when complete. Well-formed frames follow each other with no
// preamble in between.
func (hc *HostCommunication) ParseByte(b byte) {
	switch hc.state {
	case stateLookForHeader, stateParseHeader:
		if b == Magic[hc.magicPos] {
			hc.state = stateParseHeader
			hc.magicPos++
			if hc.magicPos == len(Magic) {
				hc.state = stateParseCmd
				hc.magicPos = 0
				hc.n = 0
			}
			return
		}
		if hc.state == stateParseHeader {
			hc.emitNetDebug(core.DebugLevelInfo, core.DebugMagicMismatch)
		}
		hc.state = stateLookForHeader
		hc.magicPos = 0
		if b == Magic[0] {
			hc.state = stateParseHeader
			hc.magicPos = 1
		}
	case stateParseCmd:
		hc.buf[hc.n] = b
		hc.n++
		if hc.n == CmdSize {
			hc.n = 0
			hc.parseCmd()
		}
	}
}

// resync abandons the current frame stream and scans for the preamble again.
func (hc *HostCommunication) resync() {
	hc.state = stateLookForHeader
	hc.magicPos = 0
	hc.n = 0
}

func (hc *HostCommunication) parseCmd() {
	if hc.net == nil {
		return
	}
	payload := hc.buf[1:]
	switch Opcode(hc.buf[0]) {
	case OpCreateComponent:
		c := component.Create(component.ComponentID(payload[0]))
		if c == nil {
			hc.emitNetDebug(core.DebugLevelError, core.DebugCommandParseError)
			hc.resync()
			return
		}
		hc.net.AddNode(c, core.NoParent)
	case OpConnectNodes:
		hc.net.ConnectByID(
			core.NodeID(payload[0]), core.PortID(int8(payload[1])),
			core.NodeID(payload[2]), core.PortID(int8(payload[3])))
	case OpConnectSubgraphPort:
		hc.net.ConnectSubgraph(payload[0] != 0,
			core.NodeID(payload[1]), core.PortID(int8(payload[2])),
			core.NodeID(payload[3]), core.PortID(int8(payload[4])))
	case OpSendPacket:
		p, ok := DecodePacket(payload[2:7])
		if !ok {
			hc.emitNetDebug(core.DebugLevelError, core.DebugInvalidPacket)
			return
		}
		hc.net.SendMessageTo(core.NodeID(payload[0]), core.PortID(int8(payload[1])), p)
	case OpSubscribeToPort:
		hc.net.SubscribeToPort(core.NodeID(payload[0]), core.PortID(int8(payload[1])), payload[2] != 0)
	case OpStartNetwork:
		hc.net.Start()
	case OpReset:
		hc.net.Reset()
	case OpSetDebugLevel:
		hc.net.SetDebugLevel(core.DebugLevel(payload[0]))
	case OpPing:
		hc.sendOp(OpPong)
		hc.pad(0)
	default:
		hc.emitNetDebug(core.DebugLevelError, core.DebugUnknownOpcode)
	}
}

// emitNetDebug funnels parser-level errors through the network so they are
// filtered and mirrored like every other debug event.
func (hc *HostCommunication) emitNetDebug(level core.DebugLevel, id core.DebugID) {
	if hc.net != nil {
		hc.net.EmitDebug(level, id)
	}
}

func (hc *HostCommunication) sendOp(op Opcode) {
	if hc.transport != nil {
		hc.transport.SendCommandByte(byte(op))
	}
}

func (hc *HostCommunication) sendByte(b byte) {
	if hc.transport != nil {
		hc.transport.SendCommandByte(b)
	}
}

func (hc *HostCommunication) sendU16(v uint16) {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	hc.sendByte(tmp[0])
	hc.sendByte(tmp[1])
}

// pad fills the frame's unused payload with zeros after n argument bytes.
func (hc *HostCommunication) pad(arguments int) {
	for i := arguments; i < payloadSize; i++ {
		hc.sendByte(0)
	}
}

func nodeID(c component.Component) core.NodeID {
	if c == nil {
		return 0
	}
	return c.NodeID()
}

// PacketSent implements network.NotificationHandler. The frame carries the
// queue slot and the endpoints; the payload itself does not fit and is
// elided.
func (hc *HostCommunication) PacketSent(index int, m network.Message) {
	if hc.transport == nil {
		return
	}
	hc.sendOp(OpPacketSent)
	hc.sendU16(uint16(index))
	hc.sendByte(byte(nodeID(m.Sender)))
	hc.sendByte(byte(int8(m.SenderPort)))
	hc.sendByte(byte(nodeID(m.Target)))
	hc.sendByte(byte(int8(m.TargetPort)))
	hc.sendByte(byte(m.Packet.Kind()))
	hc.pad(7)
}

// PacketDelivered implements network.NotificationHandler.
func (hc *HostCommunication) PacketDelivered(index int, m network.Message) {
	if hc.transport == nil {
		return
	}
	hc.sendOp(OpPacketDelivered)
	hc.sendU16(uint16(index))
	hc.sendByte(byte(nodeID(m.Sender)))
	hc.sendByte(byte(int8(m.SenderPort)))
	hc.sendByte(byte(nodeID(m.Target)))
	hc.sendByte(byte(int8(m.TargetPort)))
	hc.sendByte(byte(m.Packet.Kind()))
	hc.pad(7)
}

// NodeAdded implements network.NotificationHandler.
func (hc *HostCommunication) NodeAdded(c component.Component, parentID core.NodeID) {
	if hc.transport == nil {
		return
	}
	hc.sendOp(OpNodeAdded)
	hc.sendByte(byte(parentID))
	hc.sendByte(byte(c.TypeID()))
	hc.sendByte(byte(c.NodeID()))
	hc.pad(3)
}

// NodesConnected implements network.NotificationHandler.
func (hc *HostCommunication) NodesConnected(src component.Component, srcPort core.PortID, target component.Component, targetPort core.PortID) {
	if hc.transport == nil {
		return
	}
	hc.sendOp(OpNodesConnected)
	hc.sendByte(byte(nodeID(src)))
	hc.sendByte(byte(int8(srcPort)))
	hc.sendByte(byte(nodeID(target)))
	hc.sendByte(byte(int8(targetPort)))
	hc.pad(4)
}

// NetworkStateChanged implements network.NotificationHandler.
func (hc *HostCommunication) NetworkStateChanged(s core.NetworkState) {
	if hc.transport == nil {
		return
	}
	hc.sendOp(OpNetworkStateChanged)
	hc.sendByte(byte(s))
	hc.pad(1)
}

// SubgraphConnected implements network.NotificationHandler.
func (hc *HostCommunication) SubgraphConnected(isOutput bool, subgraphNode core.NodeID, subgraphPort core.PortID, childNode core.NodeID, childPort core.PortID) {
	if hc.transport == nil {
		return
	}
	hc.sendOp(OpSubgraphPortConnected)
	if isOutput {
		hc.sendByte(1)
	} else {
		hc.sendByte(0)
	}
	hc.sendByte(byte(subgraphNode))
	hc.sendByte(byte(int8(subgraphPort)))
	hc.sendByte(byte(childNode))
	hc.sendByte(byte(int8(childPort)))
	hc.pad(5)
}

// PortSubscriptionChanged implements network.NotificationHandler.
func (hc *HostCommunication) PortSubscriptionChanged(nodeID core.NodeID, portID core.PortID, enable bool) {
	if hc.transport == nil {
		return
	}
	hc.sendOp(OpPortSubscriptionChanged)
	hc.sendByte(byte(nodeID))
	hc.sendByte(byte(int8(portID)))
	if enable {
		hc.sendByte(1)
	} else {
		hc.sendByte(0)
	}
	hc.pad(3)
}

// EmitDebug implements core.DebugHandler.
func (hc *HostCommunication) EmitDebug(level core.DebugLevel, id core.DebugID) {
	if hc.transport == nil {
		return
	}
	hc.sendOp(OpDebugMessage)
	hc.sendByte(byte(level))
	hc.sendByte(byte(id))
	hc.pad(2)
}

// DebugChanged implements core.DebugHandler.
func (hc *HostCommunication) DebugChanged(level core.DebugLevel) {
	if hc.transport == nil {
		return
	}
	hc.sendOp(OpDebugChanged)
	hc.sendByte(byte(level))
	hc.pad(1)
}
