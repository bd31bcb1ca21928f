package memory

import "testing"

func TestCartridgeBootShadow(t *testing.T) {
	boot := make([]byte, 256)
	boot[0] = 0xAA
	game := make([]byte, 0x8000)
	game[0] = 0xBB

	c := NewCartridge(boot, game)

	if c.Read(0) != 0xAA {
		t.Fatalf("expected boot ROM shadow at 0x0000, got %#02x", c.Read(0))
	}

	c.DisableBoot()
	if c.Read(0) != 0xBB {
		t.Fatalf("expected game ROM after boot disable, got %#02x", c.Read(0))
	}
}

func TestCartridgeNoBoot(t *testing.T) {
	game := make([]byte, 0x8000)
	game[0x100] = 0x42

	c := NewCartridge(nil, game)
	if c.BootMapped() {
		t.Fatalf("expected no boot ROM mapped")
	}
	if c.Read(0x100) != 0x42 {
		t.Fatalf("Read(0x100) = %#02x, want 0x42", c.Read(0x100))
	}
}

func TestCartridgeTruncatesAndPads(t *testing.T) {
	game := make([]byte, 0x9000) // longer than 32KiB
	game[0x7FFF] = 0x11

	c := NewCartridge(nil, game)
	if c.Read(0x7FFF) != 0x11 {
		t.Fatalf("expected data up to 32KiB to survive truncation")
	}

	short := make([]byte, 0x10)
	c2 := NewCartridge(nil, short)
	if c2.Read(0x7FFF) != 0 {
		t.Fatalf("expected zero padding beyond short ROM data")
	}
}

func TestCartridgeWriteIsNoOp(t *testing.T) {
	game := make([]byte, 0x8000)
	c := NewCartridge(nil, game)
	c.Write(0x2000, 0xFF)
	if c.Read(0x2000) != 0 {
		t.Fatalf("expected ROM write to be ignored")
	}
}
