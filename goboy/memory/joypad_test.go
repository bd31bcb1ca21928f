package memory

import (
	"testing"

	"github.com/kjhall/go-dmgboy/goboy/irq"
)

func TestJoypadNoSelectionReturnsF(t *testing.T) {
	j := NewJoypad()
	j.WriteSelect(0b0011_0000) // neither row selected (both bits 1)
	if j.Read()&0x0F != 0x0F {
		t.Fatalf("expected low nibble 0xF with no selection, got %#02x", j.Read()&0x0F)
	}
}

func TestJoypadPressSetsBitAndInterrupt(t *testing.T) {
	j := NewJoypad()
	ic := irq.New()
	j.WriteSelect(0b0001_0000) // select actions (bit5=0)

	j.Press(ButtonA, ic)
	if j.Read()&0x01 != 0 {
		t.Fatalf("expected A bit cleared (pressed)")
	}
	if ic.Flags()&0x10 == 0 {
		t.Fatalf("expected joypad interrupt requested")
	}
}

func TestJoypadReleaseRestoresBit(t *testing.T) {
	j := NewJoypad()
	ic := irq.New()
	j.WriteSelect(0b0010_0000) // select dpad (bit4=0)
	j.Press(ButtonUp, ic)
	if j.Read()&0x04 != 0 {
		t.Fatalf("expected up bit cleared")
	}
	j.Release(ButtonUp)
	if j.Read()&0x04 == 0 {
		t.Fatalf("expected up bit set after release")
	}
}

func TestJoypadBothRowsSelectedAnds(t *testing.T) {
	j := NewJoypad()
	ic := irq.New()
	j.WriteSelect(0b0000_0000) // both selected
	j.Press(ButtonA, ic)       // actions bit 0 cleared
	if j.Read()&0x01 != 0 {
		t.Fatalf("expected AND of rows to reflect pressed A")
	}
}
