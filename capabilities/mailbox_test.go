package capabilities

import (
	"testing"

	"github.com/example/flowgrid/core"
)

type debugCapture struct {
	ids    []core.DebugID
	levels []core.DebugLevel
}

func (d *debugCapture) EmitDebug(level core.DebugLevel, id core.DebugID) {
	d.levels = append(d.levels, level)
	d.ids = append(d.ids, id)
}

func (d *debugCapture) DebugChanged(level core.DebugLevel) {}

func TestMailboxPostDrain(t *testing.T) {
	m := NewMailbox(4)
	var ran []int
	for i := 0; i < 3; i++ {
		i := i
		if !m.Post(func() { ran = append(ran, i) }) {
			t.Fatalf("post %d rejected", i)
		}
	}
	if m.Pending() != 3 {
		t.Fatalf("Pending=%d, want 3", m.Pending())
	}
	if n := m.Drain(); n != 3 {
		t.Fatalf("Drain=%d, want 3", n)
	}
	for i, v := range ran {
		if v != i {
			t.Fatalf("events ran out of order: %v", ran)
		}
	}
	if m.Pending() != 0 {
		t.Fatalf("Pending after drain = %d", m.Pending())
	}
}

func TestMailboxOverflowDrops(t *testing.T) {
	m := NewMailbox(2)
	m.Post(func() {})
	m.Post(func() {})
	if m.Post(func() { t.Fatalf("dropped event must not run") }) {
		t.Fatalf("full mailbox must reject")
	}
	if n := m.Drain(); n != 2 {
		t.Fatalf("Drain=%d, want 2", n)
	}
}

func TestMailboxRepostDuringDrainDeferred(t *testing.T) {
	m := NewMailbox(4)
	reposted := false
	m.Post(func() {
		m.Post(func() { reposted = true })
	})
	if n := m.Drain(); n != 1 {
		t.Fatalf("first drain ran %d events, want 1", n)
	}
	if reposted {
		t.Fatalf("event posted during drain must wait for the next drain")
	}
	if n := m.Drain(); n != 1 {
		t.Fatalf("second drain ran %d events, want 1", n)
	}
	if !reposted {
		t.Fatalf("deferred event never ran")
	}
}

func TestUnimplementedReports(t *testing.T) {
	var u Unimplemented
	u.DigitalWrite(13, true) // no handler wired: must not panic

	capture := &debugCapture{}
	u.SetDebugHandler(capture)
	u.DigitalWrite(13, true)
	u.AnalogRead(0)
	if len(capture.ids) != 2 {
		t.Fatalf("got %d debug events, want 2", len(capture.ids))
	}
	for i, id := range capture.ids {
		if id != core.DebugIoOperationNotImplemented {
			t.Fatalf("event %d: id=%v, want IoOperationNotImplemented", i, id)
		}
		if capture.levels[i] != core.DebugLevelError {
			t.Fatalf("event %d: level=%v, want Error", i, capture.levels[i])
		}
	}
}
