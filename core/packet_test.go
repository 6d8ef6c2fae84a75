package core

import "testing"

func TestPacketPredicates(t *testing.T) {
	cases := []struct {
		name    string
		p       Packet
		valid   bool
		special bool
		data    bool
		number  bool
	}{
		{"invalid", Packet{}, false, false, false, false},
		{"setup", SetupPacket(), true, true, false, false},
		{"tick", TickPacket(), true, true, false, false},
		{"void", VoidPacket(), true, false, true, false},
		{"bracket-start", BracketStartPacket(), true, false, true, false},
		{"bracket-end", BracketEndPacket(), true, false, true, false},
		{"bool", BoolPacket(true), true, false, true, false},
		{"byte", BytePacket(0x2A), true, false, true, false},
		{"ascii", AsciiPacket('q'), true, false, true, false},
		{"integer", IntegerPacket(-7), true, false, true, true},
		{"float", FloatPacket(1.5), true, false, true, true},
		{"out-of-range", RawPacket(KindMaxDefined, 0), false, false, false, false},
	}
	for _, tc := range cases {
		if tc.p.IsValid() != tc.valid {
			t.Fatalf("%s: IsValid=%v, want %v", tc.name, tc.p.IsValid(), tc.valid)
		}
		if tc.p.IsSpecial() != tc.special {
			t.Fatalf("%s: IsSpecial=%v, want %v", tc.name, tc.p.IsSpecial(), tc.special)
		}
		if tc.p.IsData() != tc.data {
			t.Fatalf("%s: IsData=%v, want %v", tc.name, tc.p.IsData(), tc.data)
		}
		if tc.p.IsNumber() != tc.number {
			t.Fatalf("%s: IsNumber=%v, want %v", tc.name, tc.p.IsNumber(), tc.number)
		}
	}
}

func TestPacketCoercion(t *testing.T) {
	cases := []struct {
		name string
		p    Packet
		b    bool
		by   byte
		i    int32
		f    float32
	}{
		{"bool-true", BoolPacket(true), true, 1, 1, 1},
		{"bool-false", BoolPacket(false), false, 0, 0, 0},
		{"byte", BytePacket(200), true, 200, 200, 200},
		{"byte-zero", BytePacket(0), false, 0, 0, 0},
		{"ascii", AsciiPacket('A'), true, 65, 65, 65},
		{"integer", IntegerPacket(1000), true, 232, 1000, 1000},
		{"integer-negative", IntegerPacket(-1), true, 255, -1, -1},
		{"float", FloatPacket(2.75), true, 2, 2, 2.75},
		{"float-negative", FloatPacket(-3.5), true, 253, -3, -3.5},
		{"float-zero", FloatPacket(0), false, 0, 0, 0},
		{"void", VoidPacket(), false, 0, 0, 0},
		{"setup", SetupPacket(), false, 0, 0, 0},
	}
	for _, tc := range cases {
		if tc.p.AsBool() != tc.b {
			t.Fatalf("%s: AsBool=%v, want %v", tc.name, tc.p.AsBool(), tc.b)
		}
		if tc.p.AsByte() != tc.by {
			t.Fatalf("%s: AsByte=%d, want %d", tc.name, tc.p.AsByte(), tc.by)
		}
		if tc.p.AsAscii() != tc.by {
			t.Fatalf("%s: AsAscii=%d, want %d (must match AsByte)", tc.name, tc.p.AsAscii(), tc.by)
		}
		if tc.p.AsInteger() != tc.i {
			t.Fatalf("%s: AsInteger=%d, want %d", tc.name, tc.p.AsInteger(), tc.i)
		}
		if tc.p.AsFloat() != tc.f {
			t.Fatalf("%s: AsFloat=%v, want %v", tc.name, tc.p.AsFloat(), tc.f)
		}
	}
}

func TestPacketEquality(t *testing.T) {
	if BytePacket(0x2A) != BytePacket(0x2A) {
		t.Fatalf("equal packets must compare equal")
	}
	if BytePacket(1) == AsciiPacket(1) {
		t.Fatalf("different kinds with same bits must differ")
	}
	if IntegerPacket(1) == IntegerPacket(2) {
		t.Fatalf("same kind with different bits must differ")
	}
	// A float and an integer sharing a bit pattern are still distinct packets.
	if FloatPacket(0) == IntegerPacket(0) {
		t.Fatalf("kind participates in equality")
	}
}

func TestPacketRawRoundTrip(t *testing.T) {
	for _, p := range []Packet{
		VoidPacket(), SetupPacket(), TickPacket(),
		BoolPacket(true), BytePacket(0xFF), AsciiPacket('z'),
		IntegerPacket(-123456), FloatPacket(3.25),
	} {
		if got := RawPacket(p.Kind(), p.Bits()); got != p {
			t.Fatalf("RawPacket(%v, %#x) = %+v, want %+v", p.Kind(), p.Bits(), got, p)
		}
	}
}
