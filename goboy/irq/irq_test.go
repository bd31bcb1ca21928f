package irq

import "testing"

func TestRequestSetsBit(t *testing.T) {
	c := New()
	c.RequestVBlank()
	c.RequestTimer()

	if c.Flags() != 0b00101 {
		t.Fatalf("Flags() = %#05b, want 0b00101", c.Flags())
	}
}

func TestPendingRequiresEnable(t *testing.T) {
	c := New()
	c.RequestVBlank()

	if c.Pending() != 0 {
		t.Fatalf("expected no pending interrupts without IE set")
	}

	c.SetEnable(0x01)
	if c.Pending() != 0x01 {
		t.Fatalf("Pending() = %#02x, want 0x01", c.Pending())
	}
}

func TestSetFlagsOverwrites(t *testing.T) {
	c := New()
	c.RequestJoypad()
	c.SetFlags(0)

	if c.Flags() != 0 {
		t.Fatalf("expected flags cleared after SetFlags(0)")
	}
}
