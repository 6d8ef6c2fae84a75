package capabilities

import "sync"

// Event is a deferred effect posted from interrupt context and executed on
// the main loop.
type Event func()

// Mailbox is the bounded hand-off between interrupt callbacks and the run
// loop. Interrupt handlers Post; the single-threaded loop Drains. The network
// itself is never touched from interrupt context.
type Mailbox struct {
	mu     sync.Mutex
	events []Event
	read   int
	write  int
}

// NewMailbox creates a mailbox with the given capacity (minimum 1).
func NewMailbox(capacity int) *Mailbox {
	if capacity < 1 {
		capacity = 1
	}
	return &Mailbox{events: make([]Event, capacity)}
}

// Post enqueues an event. Returns false and drops when the mailbox is full;
// an interrupt context has nowhere to block.
func (m *Mailbox) Post(e Event) bool {
	if m == nil || e == nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.write-m.read >= len(m.events) {
		return false
	}
	m.events[m.write%len(m.events)] = e
	m.write++
	return true
}

// Pending returns the number of queued events.
func (m *Mailbox) Pending() int {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.write - m.read
}

// Drain runs all currently queued events on the caller's context and returns
// how many ran. Events posted while draining run on the next call, keeping a
// steady interrupt source from starving the loop.
func (m *Mailbox) Drain() int {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	limit := m.write
	m.mu.Unlock()

	n := 0
	for {
		m.mu.Lock()
		if m.read >= limit {
			m.mu.Unlock()
			return n
		}
		slot := m.read % len(m.events)
		e := m.events[slot]
		m.events[slot] = nil
		m.read++
		m.mu.Unlock()

		e()
		n++
	}
}
