package capabilities

import (
	"sync"
	"time"

	"go.bug.st/serial"

	"github.com/example/flowgrid/core"
)

const hostSerialBuffer = 256

// HostIO implements IO on a desktop host: monotonic timers backed by the
// clock, serial devices backed by real ports, and everything pin-related
// unimplemented. It lets the daemon run graphs off-target and bridge the
// host protocol over a physical serial line.
type HostIO struct {
	Unimplemented

	start time.Time

	mu      sync.Mutex
	paths   map[int]string
	ports   map[int]serial.Port
	inbound map[int]chan byte
}

// NewHostIO creates a host IO with no serial devices mapped.
func NewHostIO() *HostIO {
	return &HostIO{
		start:   time.Now(),
		paths:   make(map[int]string),
		ports:   make(map[int]serial.Port),
		inbound: make(map[int]chan byte),
	}
}

// MapSerialDevice binds a device index to a serial port path, e.g.
// MapSerialDevice(0, "/dev/ttyUSB0"). SerialBegin opens the mapped path.
func (h *HostIO) MapSerialDevice(device int, path string) {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.paths[device] = path
}

// SerialBegin opens the mapped port at the given baud rate and starts the
// reader that feeds SerialDataAvailable/SerialRead.
func (h *HostIO) SerialBegin(device, baudrate int) {
	if h == nil {
		return
	}
	h.mu.Lock()
	path, ok := h.paths[device]
	h.mu.Unlock()
	if !ok {
		h.ReportUnimplemented()
		return
	}
	port, err := serial.Open(path, &serial.Mode{BaudRate: baudrate})
	if err != nil {
		if d := h.Debug(); d != nil {
			d.EmitDebug(core.DebugLevelError, core.DebugIoOperationNotImplemented)
		}
		return
	}
	in := make(chan byte, hostSerialBuffer)
	h.mu.Lock()
	h.ports[device] = port
	h.inbound[device] = in
	h.mu.Unlock()

	go func() {
		buf := make([]byte, 64)
		for {
			n, err := port.Read(buf)
			if err != nil {
				close(in)
				return
			}
			for _, b := range buf[:n] {
				select {
				case in <- b:
				default:
					// receiver is behind; drop rather than block the reader
				}
			}
		}
	}()
}

// SerialDataAvailable returns how many buffered bytes are waiting.
func (h *HostIO) SerialDataAvailable(device int) int {
	if h == nil {
		return 0
	}
	h.mu.Lock()
	in := h.inbound[device]
	h.mu.Unlock()
	if in == nil {
		return 0
	}
	return len(in)
}

// SerialRead returns the next buffered byte, or 0 when none is waiting.
func (h *HostIO) SerialRead(device int) byte {
	if h == nil {
		return 0
	}
	h.mu.Lock()
	in := h.inbound[device]
	h.mu.Unlock()
	if in == nil {
		return 0
	}
	select {
	case b := <-in:
		return b
	default:
		return 0
	}
}

// SerialWrite writes one byte to the open port.
func (h *HostIO) SerialWrite(device int, b byte) {
	if h == nil {
		return
	}
	h.mu.Lock()
	port := h.ports[device]
	h.mu.Unlock()
	if port == nil {
		h.ReportUnimplemented()
		return
	}
	if _, err := port.Write([]byte{b}); err != nil {
		if d := h.Debug(); d != nil {
			d.EmitDebug(core.DebugLevelError, core.DebugIoOperationNotImplemented)
		}
	}
}

// TimerCurrentMs returns milliseconds since the IO was created.
func (h *HostIO) TimerCurrentMs() int64 {
	if h == nil {
		return 0
	}
	return time.Since(h.start).Milliseconds()
}

// TimerCurrentMicros returns microseconds since the IO was created.
func (h *HostIO) TimerCurrentMicros() int64 {
	if h == nil {
		return 0
	}
	return time.Since(h.start).Microseconds()
}

// Close shuts all open serial ports.
func (h *HostIO) Close() {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for device, port := range h.ports {
		port.Close()
		delete(h.ports, device)
	}
}
