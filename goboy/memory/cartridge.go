package memory

// ROM/cartridge layout constants. This module only models a fixed 32 KiB
// ROM region with no bank switching (memory-bank controllers are a
// non-goal); the header fields below are parsed purely for display.
const (
	romSize   = 0x8000 // 32 KiB
	bootSize  = 0x100
	titleAddr = 0x134
	titleLen  = 16

	headerChecksumAddr = 0x14D
)

// Cartridge is a read-only view over a fixed-size game ROM plus an
// optional boot-ROM overlay. It is immutable after construction except for
// the boot-mapped latch, which can only transition from true to false.
type Cartridge struct {
	bootROM    [bootSize]byte
	gameROM    [romSize]byte
	bootMapped bool

	title          string
	headerChecksum uint8
}

// NewCartridge builds a Cartridge from a (possibly short or long) boot ROM
// and game ROM. gameROM longer than 32 KiB is truncated; shorter is
// zero-padded. If boot is nil, the boot ROM is left all-zero and bootMapped
// is false (equivalent to no-boot-ROM semantics from the caller's
// perspective).
func NewCartridge(boot []byte, game []byte) *Cartridge {
	c := &Cartridge{}

	n := copy(c.bootROM[:], boot)
	_ = n
	copy(c.gameROM[:], game)

	c.bootMapped = len(boot) > 0

	if len(game) > titleAddr+titleLen {
		c.title = parseTitle(c.gameROM[titleAddr : titleAddr+titleLen])
	}
	if len(game) > headerChecksumAddr {
		c.headerChecksum = c.gameROM[headerChecksumAddr]
	}

	return c
}

func parseTitle(raw []byte) string {
	end := len(raw)
	for i, b := range raw {
		if b == 0 {
			end = i
			break
		}
	}
	return string(raw[:end])
}

// Read returns the byte at addr. While the boot ROM is mapped, addresses
// below 0x100 are shadowed by it; otherwise (or always, above 0x100) the
// game ROM is read.
func (c *Cartridge) Read(addr uint16) uint8 {
	if c.bootMapped && addr < bootSize {
		return c.bootROM[addr]
	}
	if int(addr) < len(c.gameROM) {
		return c.gameROM[addr]
	}
	return 0xFF
}

// Write is a no-op for ROM addresses, except that any write to the
// boot-ROM disable latch (handled by the MMU, not here) permanently clears
// bootMapped. DisableBoot implements that latch.
func (c *Cartridge) Write(addr uint16, value uint8) {
	// Fixed ROM: cartridge writes never change data (no MBC/external RAM
	// bank registers in this module's scope).
}

// DisableBoot permanently unmaps the boot ROM. Called by the MMU when the
// host writes any value to 0xFF50.
func (c *Cartridge) DisableBoot() {
	c.bootMapped = false
}

// BootMapped reports whether the boot ROM currently shadows 0x0000-0x00FF.
func (c *Cartridge) BootMapped() bool {
	return c.bootMapped
}

// Title returns the parsed cartridge title (informational only).
func (c *Cartridge) Title() string {
	return c.title
}

// HeaderChecksum returns the parsed header checksum byte (informational only).
func (c *Cartridge) HeaderChecksum() uint8 {
	return c.headerChecksum
}
