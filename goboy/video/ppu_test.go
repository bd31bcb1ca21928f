package video

import (
	"testing"

	"github.com/kjhall/go-dmgboy/goboy/irq"
)

func TestScanlineProgression(t *testing.T) {
	p := New()
	ic := irq.New()

	p.WriteRegister(0xFF40, 0x91) // LCDC: LCD+BG on, tile data 0x8000, map 0x9800
	p.WriteRegister(0xFF47, 0xE4) // BGP

	// Tile 0 pattern: a simple non-zero row so color index is nonzero.
	p.WriteVRAM(0x8000, 0xFF) // low byte: all 1s
	p.WriteVRAM(0x8001, 0x00) // high byte: all 0s -> color index 1 for every column
	// Tile map entry 0 already zero by default (points at tile 0).

	p.Step(dotsPerLine, ic)

	if p.LY() != 1 {
		t.Fatalf("LY = %d, want 1", p.LY())
	}
	if p.Mode() != OAMSearch {
		t.Fatalf("Mode = %v, want OAMSearch", p.Mode())
	}

	want := shadeFor(0xE4, 1)
	for x := 0; x < Width; x++ {
		if p.FrameBuffer().At(x, 0) != want {
			t.Fatalf("pixel (%d,0) = %#06x, want %#06x", x, p.FrameBuffer().At(x, 0), want)
		}
	}
}

func TestModeTransitionsWithinScanline(t *testing.T) {
	p := New()
	ic := irq.New()
	p.WriteRegister(0xFF40, 0x91)

	p.Step(oamSearchEnd-1, ic)
	if p.Mode() != OAMSearch {
		t.Fatalf("expected OAMSearch before dot 80, got %v", p.Mode())
	}
	p.Step(1, ic)
	if p.Mode() != Transfer {
		t.Fatalf("expected Transfer at dot 80, got %v", p.Mode())
	}
	p.Step(transferEnd-oamSearchEnd-1, ic)
	if p.Mode() != Transfer {
		t.Fatalf("expected still Transfer, got %v", p.Mode())
	}
	p.Step(1, ic)
	if p.Mode() != HBlank {
		t.Fatalf("expected HBlank at dot 252, got %v", p.Mode())
	}
}

func TestVBlankEntryRequestsInterrupt(t *testing.T) {
	p := New()
	ic := irq.New()
	p.WriteRegister(0xFF40, 0x91)

	p.Step(dotsPerLine*visibleLines, ic)

	if p.LY() != visibleLines {
		t.Fatalf("LY = %d, want %d", p.LY(), visibleLines)
	}
	if p.Mode() != VBlank {
		t.Fatalf("Mode = %v, want VBlank", p.Mode())
	}
	if ic.Flags()&0x01 == 0 {
		t.Fatalf("expected VBlank interrupt requested")
	}
}

func TestLYWrapsAt154(t *testing.T) {
	p := New()
	ic := irq.New()
	p.WriteRegister(0xFF40, 0x91)

	p.Step(dotsPerLine*linesPerFrame, ic)

	if p.LY() != 0 {
		t.Fatalf("LY = %d, want 0 after full frame", p.LY())
	}
	if p.Clock() < 0 || p.Clock() >= dotsPerLine {
		t.Fatalf("Clock = %d out of [0,456)", p.Clock())
	}
}

func TestLYCFlagAndInterrupt(t *testing.T) {
	p := New()
	ic := irq.New()
	p.WriteRegister(0xFF40, 0x91)
	p.WriteRegister(0xFF45, 1)              // LYC = 1
	p.WriteRegister(0xFF41, 1<<statLYCIE) // enable LYC STAT interrupt

	p.Step(dotsPerLine, ic) // LY becomes 1

	if p.ReadRegister(0xFF41)&(1<<statLYCFlag) == 0 {
		t.Fatalf("expected LY==LYC flag set")
	}
	if ic.Flags()&0x02 == 0 {
		t.Fatalf("expected LCD STAT interrupt requested")
	}
}

func TestWriteToLYIsIgnored(t *testing.T) {
	p := New()
	p.WriteRegister(0xFF44, 42)
	if p.LY() != 0 {
		t.Fatalf("write to LY should be ignored, got %d", p.LY())
	}
}

func TestLCDDisabledKeepsLYAtZero(t *testing.T) {
	p := New()
	ic := irq.New()
	p.WriteRegister(0xFF40, 0x00) // LCD disabled
	p.Step(10000, ic)
	if p.LY() != 0 {
		t.Fatalf("LY = %d, want 0 while LCD disabled", p.LY())
	}
}
