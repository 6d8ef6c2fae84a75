package hostcomm

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/example/flowgrid/capabilities"
)

const wsInboundBuffer = 1024

// WebSocketTransport serves the frame stream to websocket clients. Each
// outbound frame travels as one binary message; inbound binary messages are
// split into bytes and fed to the parser from the run loop, preserving the
// runtime's single execution context.
type WebSocketTransport struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]bool

	inbound    chan byte
	controller *HostCommunication

	frame [CmdSize]byte
	n     int
}

// NewWebSocketTransport creates a transport with no connected clients.
func NewWebSocketTransport() *WebSocketTransport {
	return &WebSocketTransport{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]bool),
		inbound: make(chan byte, wsInboundBuffer),
	}
}

// Setup implements HostTransport.
func (t *WebSocketTransport) Setup(dev capabilities.IO, controller *HostCommunication) {
	t.controller = controller
}

// Handler returns the HTTP handler that upgrades connections and pumps
// their inbound bytes.
func (t *WebSocketTransport) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := t.upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		t.mu.Lock()
		t.clients[conn] = true
		t.mu.Unlock()

		go t.readLoop(conn)
	}
}

func (t *WebSocketTransport) readLoop(conn *websocket.Conn) {
	defer func() {
		t.mu.Lock()
		delete(t.clients, conn)
		t.mu.Unlock()
		conn.Close()
	}()
	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if kind != websocket.BinaryMessage {
			continue
		}
		for _, b := range data {
			select {
			case t.inbound <- b:
			default:
				// parser is behind; drop and let the magic resync recover
			}
		}
	}
}

// RunTick feeds every buffered inbound byte to the parser.
func (t *WebSocketTransport) RunTick() {
	if t.controller == nil {
		return
	}
	for {
		select {
		case b := <-t.inbound:
			t.controller.ParseByte(b)
		default:
			return
		}
	}
}

// SendCommandByte accumulates outbound bytes and broadcasts each completed
// frame to every client.
func (t *WebSocketTransport) SendCommandByte(b byte) {
	t.frame[t.n] = b
	t.n++
	if t.n < CmdSize {
		return
	}
	t.n = 0

	msg := make([]byte, CmdSize)
	copy(msg, t.frame[:])
	t.mu.Lock()
	defer t.mu.Unlock()
	for conn := range t.clients {
		if err := conn.WriteMessage(websocket.BinaryMessage, msg); err != nil {
			delete(t.clients, conn)
			conn.Close()
		}
	}
}
