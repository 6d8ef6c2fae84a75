package hostcomm

import (
	"testing"

	"github.com/example/flowgrid/capabilities"
	"github.com/example/flowgrid/component"
	"github.com/example/flowgrid/core"
	"github.com/example/flowgrid/network"
)

// captureTransport collects outbound bytes and regroups them into frames.
type captureTransport struct {
	out []byte
}

func (c *captureTransport) Setup(dev capabilities.IO, controller *HostCommunication) {}
func (c *captureTransport) RunTick()                                                 {}
func (c *captureTransport) SendCommandByte(b byte)                                   { c.out = append(c.out, b) }

func (c *captureTransport) frames(t *testing.T) [][]byte {
	t.Helper()
	if len(c.out)%CmdSize != 0 {
		t.Fatalf("outbound stream is %d bytes, not a multiple of %d", len(c.out), CmdSize)
	}
	var frames [][]byte
	for i := 0; i < len(c.out); i += CmdSize {
		frames = append(frames, c.out[i:i+CmdSize])
	}
	return frames
}

func (c *captureTransport) framesOf(t *testing.T, op Opcode) [][]byte {
	t.Helper()
	var out [][]byte
	for _, f := range c.frames(t) {
		if Opcode(f[0]) == op {
			out = append(out, f)
		}
	}
	return out
}

func newHost(t *testing.T) (*HostCommunication, *captureTransport, *network.Network) {
	t.Helper()
	net, err := network.New(nil, network.DefaultConfig())
	if err != nil {
		t.Fatalf("network.New: %v", err)
	}
	hc := New()
	tr := &captureTransport{}
	hc.Setup(net, tr)
	net.SetNotificationHandler(hc)
	return hc, tr, net
}

func feed(hc *HostCommunication, bytes []byte) {
	for _, b := range bytes {
		hc.ParseByte(b)
	}
}

func frame(op Opcode, payload ...byte) []byte {
	f := make([]byte, CmdSize)
	f[0] = byte(op)
	copy(f[1:], payload)
	return f
}

func TestPacketCodecRoundTrip(t *testing.T) {
	packets := []core.Packet{
		core.VoidPacket(),
		core.SetupPacket(),
		core.TickPacket(),
		core.BracketStartPacket(),
		core.BracketEndPacket(),
		core.BoolPacket(true),
		core.BoolPacket(false),
		core.BytePacket(0x2A),
		core.AsciiPacket('!'),
		core.IntegerPacket(-100000),
		core.FloatPacket(3.1415),
	}
	buf := make([]byte, 5)
	for _, p := range packets {
		EncodePacket(p, buf)
		got, ok := DecodePacket(buf)
		if !ok {
			t.Fatalf("decode rejected %v", p.Kind())
		}
		if got != p {
			t.Fatalf("round trip lost %v: got %+v", p.Kind(), got)
		}
	}
	buf[0] = byte(core.KindInvalid)
	if _, ok := DecodePacket(buf); ok {
		t.Fatalf("invalid kind decoded")
	}
	buf[0] = byte(core.KindMaxDefined)
	if _, ok := DecodePacket(buf); ok {
		t.Fatalf("out-of-range kind decoded")
	}
}

func TestMagicThenCreateComponent(t *testing.T) {
	hc, tr, net := newHost(t)
	feed(hc, Magic)
	feed(hc, frame(OpCreateComponent, byte(component.IDForward)))

	if net.NodeCount() != 1 {
		t.Fatalf("component not created")
	}
	added := tr.framesOf(t, OpNodeAdded)
	if len(added) != 1 {
		t.Fatalf("got %d NodeAdded frames, want 1", len(added))
	}
	f := added[0]
	if f[1] != 0 || f[2] != byte(component.IDForward) || f[3] != 1 {
		t.Fatalf("NodeAdded payload wrong: % x", f)
	}
	for _, b := range f[4:] {
		if b != 0 {
			t.Fatalf("frame not zero padded: % x", f)
		}
	}
}

func TestGarbageBeforeMagicIsSkipped(t *testing.T) {
	hc, _, net := newHost(t)
	feed(hc, []byte{0x00, 0xFF, 'M', 'A', 'G', 'X'}) // near miss restarts the scan
	feed(hc, Magic)
	feed(hc, frame(OpCreateComponent, byte(component.IDSink)))
	if net.NodeCount() != 1 {
		t.Fatalf("parser did not recover from garbage before the preamble")
	}
}

func TestMutationCommandsMirrorAsEvents(t *testing.T) {
	hc, tr, net := newHost(t)
	feed(hc, Magic)
	feed(hc, frame(OpCreateComponent, byte(component.IDForward)))
	feed(hc, frame(OpCreateComponent, byte(component.IDSink)))
	feed(hc, frame(OpConnectNodes, 1, 0, 2, 0))
	feed(hc, frame(OpSubscribeToPort, 1, 0, 1))
	feed(hc, frame(OpStartNetwork))

	conns := tr.framesOf(t, OpNodesConnected)
	if len(conns) != 1 {
		t.Fatalf("got %d NodesConnected frames", len(conns))
	}
	if f := conns[0]; f[1] != 1 || f[2] != 0 || f[3] != 2 || f[4] != 0 {
		t.Fatalf("NodesConnected payload wrong: % x", f)
	}
	subs := tr.framesOf(t, OpPortSubscriptionChanged)
	if len(subs) != 1 {
		t.Fatalf("got %d PortSubscriptionChanged frames", len(subs))
	}
	if f := subs[0]; f[1] != 1 || f[2] != 0 || f[3] != 1 {
		t.Fatalf("PortSubscriptionChanged payload wrong: % x", f)
	}
	states := tr.framesOf(t, OpNetworkStateChanged)
	if len(states) != 1 || states[0][1] != byte(core.StateRunning) {
		t.Fatalf("NetworkStateChanged wrong: %+v", states)
	}
	if net.State() != core.StateRunning {
		t.Fatalf("network not running")
	}
}

func TestSendPacketDeliversAndReportsOnSubscribedPort(t *testing.T) {
	hc, tr, net := newHost(t)
	feed(hc, Magic)
	feed(hc, frame(OpCreateComponent, byte(component.IDForward)))
	feed(hc, frame(OpCreateComponent, byte(component.IDSink)))
	feed(hc, frame(OpConnectNodes, 1, 0, 2, 0))
	feed(hc, frame(OpSubscribeToPort, 1, 0, 1))
	feed(hc, frame(OpStartNetwork))

	pkt := make([]byte, 5)
	EncodePacket(core.BytePacket(0x2A), pkt)
	payload := append([]byte{1, 0}, pkt...)
	feed(hc, frame(OpSendPacket, payload...))
	net.RunTick()

	// The injection and the subscribed forward both report.
	sent := tr.framesOf(t, OpPacketSent)
	if len(sent) != 2 {
		t.Fatalf("got %d PacketSent frames, want 2", len(sent))
	}
	// Second frame is the subscribed hop 1:0 -> 2:0 carrying a Byte.
	f := sent[1]
	if f[3] != 1 || f[4] != 0 || f[5] != 2 || f[6] != 0 || f[7] != byte(core.KindByte) {
		t.Fatalf("subscribed PacketSent payload wrong: % x", f)
	}
	delivered := tr.framesOf(t, OpPacketDelivered)
	if len(delivered) != 2 {
		t.Fatalf("got %d PacketDelivered frames, want 2", len(delivered))
	}
	last := delivered[1]
	if last[5] != 2 || last[6] != 0 || last[7] != byte(core.KindByte) {
		t.Fatalf("delivery frame wrong: % x", last)
	}
}

func TestUnknownOpcodeIsDiscardedInFrameStream(t *testing.T) {
	hc, tr, net := newHost(t)
	feed(hc, Magic)
	feed(hc, frame(Opcode(0xEE)))
	feed(hc, frame(OpCreateComponent, byte(component.IDForward)))

	debug := tr.framesOf(t, OpDebugMessage)
	if len(debug) != 1 || debug[0][2] != byte(core.DebugUnknownOpcode) {
		t.Fatalf("expected one UnknownOpcode DebugMessage, got %+v", debug)
	}
	if net.NodeCount() != 1 {
		t.Fatalf("parser did not continue with the next frame")
	}
}

func TestParseErrorResynchronizes(t *testing.T) {
	hc, tr, net := newHost(t)
	feed(hc, Magic)
	feed(hc, frame(OpCreateComponent, 0xEE)) // unknown component type

	debug := tr.framesOf(t, OpDebugMessage)
	if len(debug) != 1 || debug[0][2] != byte(core.DebugCommandParseError) {
		t.Fatalf("expected CommandParseError, got %+v", debug)
	}
	// Frames without a fresh preamble are now ignored...
	feed(hc, frame(OpCreateComponent, byte(component.IDForward)))
	if net.NodeCount() != 0 {
		t.Fatalf("parser accepted a frame without resynchronizing")
	}
	// ...until the magic arrives again.
	feed(hc, Magic)
	feed(hc, frame(OpCreateComponent, byte(component.IDForward)))
	if net.NodeCount() != 1 {
		t.Fatalf("parser did not recover after the preamble")
	}
}

func TestPingPong(t *testing.T) {
	hc, tr, _ := newHost(t)
	feed(hc, Magic)
	feed(hc, frame(OpPing))
	pongs := tr.framesOf(t, OpPong)
	if len(pongs) != 1 {
		t.Fatalf("got %d Pong frames, want 1", len(pongs))
	}
	for _, b := range pongs[0][1:] {
		if b != 0 {
			t.Fatalf("Pong payload not zero padded: % x", pongs[0])
		}
	}
}

func TestResetCommand(t *testing.T) {
	hc, tr, net := newHost(t)
	feed(hc, Magic)
	feed(hc, frame(OpCreateComponent, byte(component.IDForward)))
	feed(hc, frame(OpStartNetwork))
	feed(hc, frame(OpReset))

	if net.State() != core.StateStopped || net.NodeCount() != 0 {
		t.Fatalf("reset did not stop and clear: state=%v nodes=%d", net.State(), net.NodeCount())
	}
	states := tr.framesOf(t, OpNetworkStateChanged)
	if len(states) != 2 || states[1][1] != byte(core.StateStopped) {
		t.Fatalf("missing NetworkStateChanged(Stopped): %+v", states)
	}
}

func TestSetDebugLevelEchoes(t *testing.T) {
	hc, tr, net := newHost(t)
	feed(hc, Magic)
	feed(hc, frame(OpSetDebugLevel, byte(core.DebugLevelDetailed)))
	if net.DebugLevel() != core.DebugLevelDetailed {
		t.Fatalf("debug level not applied")
	}
	changed := tr.framesOf(t, OpDebugChanged)
	if len(changed) != 1 || changed[0][1] != byte(core.DebugLevelDetailed) {
		t.Fatalf("DebugChanged frame wrong: %+v", changed)
	}
}

func TestConnectSubgraphPortCommand(t *testing.T) {
	hc, tr, _ := newHost(t)
	feed(hc, Magic)
	feed(hc, frame(OpCreateComponent, byte(component.IDSubGraph)))
	feed(hc, frame(OpCreateComponent, byte(component.IDForward)))
	feed(hc, frame(OpConnectSubgraphPort, 0, 1, 0, 2, 0))
	feed(hc, frame(OpConnectSubgraphPort, 1, 1, 0, 2, 0))

	got := tr.framesOf(t, OpSubgraphPortConnected)
	if len(got) != 2 {
		t.Fatalf("got %d SubgraphPortConnected frames, want 2", len(got))
	}
	if got[0][1] != 0 || got[1][1] != 1 {
		t.Fatalf("direction flags wrong: % x / % x", got[0], got[1])
	}
	for _, f := range got {
		if f[2] != 1 || f[3] != 0 || f[4] != 2 || f[5] != 0 {
			t.Fatalf("port payload wrong: % x", f)
		}
	}
}
