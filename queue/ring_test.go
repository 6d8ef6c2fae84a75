package queue

import "testing"

func TestRingFIFO(t *testing.T) {
	r := NewRing[int](4)
	for i := 0; i < 4; i++ {
		slot, ok := r.Enqueue(i * 10)
		if !ok {
			t.Fatalf("enqueue %d rejected", i)
		}
		if slot != i {
			t.Fatalf("enqueue %d landed in slot %d", i, slot)
		}
	}
	if _, ok := r.Enqueue(99); ok {
		t.Fatalf("full ring must reject")
	}
	if r.Len() != 4 {
		t.Fatalf("Len=%d, want 4", r.Len())
	}
	for i := 0; i < 4; i++ {
		v, slot, ok := r.Dequeue()
		if !ok || v != i*10 || slot != i {
			t.Fatalf("dequeue %d: got (%d, %d, %v)", i, v, slot, ok)
		}
	}
	if _, _, ok := r.Dequeue(); ok {
		t.Fatalf("empty ring must report empty")
	}
}

func TestRingWrapAround(t *testing.T) {
	r := NewRing[string](2)
	r.Enqueue("a")
	r.Enqueue("b")
	r.Dequeue()
	slot, ok := r.Enqueue("c")
	if !ok || slot != 0 {
		t.Fatalf("wrap enqueue: slot=%d ok=%v, want slot 0", slot, ok)
	}
	v, _, _ := r.Dequeue()
	if v != "b" {
		t.Fatalf("order broken across wrap: got %q", v)
	}
	v, _, _ = r.Dequeue()
	if v != "c" {
		t.Fatalf("order broken across wrap: got %q", v)
	}
}

func TestRingReset(t *testing.T) {
	r := NewRing[int](3)
	r.Enqueue(1)
	r.Enqueue(2)
	r.Reset()
	if r.Len() != 0 {
		t.Fatalf("Len after reset = %d", r.Len())
	}
	slot, ok := r.Enqueue(3)
	if !ok || slot != 0 {
		t.Fatalf("enqueue after reset: slot=%d ok=%v", slot, ok)
	}
}

func TestRingMinimumCapacity(t *testing.T) {
	r := NewRing[int](0)
	if r.Cap() != 1 {
		t.Fatalf("Cap=%d, want clamped to 1", r.Cap())
	}
}
