// Package hostcomm implements the binary host protocol: fixed 8-byte
// command frames preceded by a magic preamble, parsed byte-at-a-time and
// emitted as the mirror image of every runtime notification. The framing is
// bit-compatible with the host toolchain; field order and opcode values are
// frozen.
package hostcomm

import (
	"encoding/binary"

	"github.com/example/flowgrid/core"
)

// CmdSize is the fixed frame size: one opcode byte plus seven payload bytes.
const CmdSize = 1 + 7

const payloadSize = CmdSize - 1

// Magic is the 9-byte preamble that precedes the command stream after boot
// or a resynchronization.
var Magic = []byte("MAGIC!012")

// Opcode identifies a frame. Inbound commands and outbound events share one
// numbering space.
type Opcode uint8

const (
	OpInvalid Opcode = iota
	OpReset
	OpStartNetwork
	OpCreateComponent
	OpConnectNodes
	OpSendPacket
	OpConnectSubgraphPort
	OpSubscribeToPort
	OpSetDebugLevel
	OpPing
	OpNodeAdded
	OpNodesConnected
	OpNetworkStateChanged
	OpPacketSent
	OpPacketDelivered
	OpDebugMessage
	OpSubgraphPortConnected
	OpPortSubscriptionChanged
	OpDebugChanged
	OpPong
	opMaxDefined
)

// String returns the opcode name.
func (o Opcode) String() string {
	switch o {
	case OpReset:
		return "Reset"
	case OpStartNetwork:
		return "StartNetwork"
	case OpCreateComponent:
		return "CreateComponent"
	case OpConnectNodes:
		return "ConnectNodes"
	case OpSendPacket:
		return "SendPacket"
	case OpConnectSubgraphPort:
		return "ConnectSubgraphPort"
	case OpSubscribeToPort:
		return "SubscribeToPort"
	case OpSetDebugLevel:
		return "SetDebugLevel"
	case OpPing:
		return "Ping"
	case OpNodeAdded:
		return "NodeAdded"
	case OpNodesConnected:
		return "NodesConnected"
	case OpNetworkStateChanged:
		return "NetworkStateChanged"
	case OpPacketSent:
		return "PacketSent"
	case OpPacketDelivered:
		return "PacketDelivered"
	case OpDebugMessage:
		return "DebugMessage"
	case OpSubgraphPortConnected:
		return "SubgraphPortConnected"
	case OpPortSubscriptionChanged:
		return "PortSubscriptionChanged"
	case OpDebugChanged:
		return "DebugChanged"
	case OpPong:
		return "Pong"
	default:
		return "Invalid"
	}
}

// EncodePacket writes a packet's wire form (kind:u8 + payload:u32 LE) into
// dst, which must hold at least 5 bytes.
func EncodePacket(p core.Packet, dst []byte) {
	dst[0] = byte(p.Kind())
	binary.LittleEndian.PutUint32(dst[1:5], p.Bits())
}

// DecodePacket reads a packet from its wire form. Returns ok=false when the
// kind byte is outside the defined range.
func DecodePacket(src []byte) (core.Packet, bool) {
	kind := core.PacketKind(src[0])
	if kind <= core.KindInvalid || kind >= core.KindMaxDefined {
		return core.Packet{}, false
	}
	return core.RawPacket(kind, binary.LittleEndian.Uint32(src[1:5])), true
}
