// Package video implements the PPU: VRAM/OAM storage, the mode-driven
// scanline state machine, and the scanline renderer that produces one
// 160x144 frame.
package video

import "github.com/kjhall/go-dmgboy/goboy/irq"

// Mode is one of the four PPU modes, numerically equal to STAT bits 1-0.
type Mode uint8

const (
	HBlank    Mode = 0
	VBlank    Mode = 1
	OAMSearch Mode = 2
	Transfer  Mode = 3
)

const (
	dotsPerLine   = 456
	linesPerFrame = 154
	visibleLines  = 144

	oamSearchEnd = 80
	transferEnd  = 252
)

// LCDC bits.
const (
	lcdcBGWinEnable   = 0
	lcdcObjEnable     = 1
	lcdcObjSize       = 2
	lcdcBGTileMap     = 3
	lcdcBGWinTileData = 4
	lcdcWindowEnable  = 5
	lcdcWindowTileMap = 6
	lcdcLCDEnable     = 7
)

// STAT bits.
const (
	statLYCFlag  = 2
	statHBlankIE = 3
	statVBlankIE = 4
	statOAMIE    = 5
	statLYCIE    = 6
)

// sprite is one 4-byte OAM entry.
type sprite struct {
	y, x, tile, attr uint8
}

// PPU holds VRAM/OAM, the scanline state machine and the framebuffer.
type PPU struct {
	vram [0x2000]byte
	oam  [160]byte

	lcdc, stat      uint8
	scy, scx        uint8
	ly, lyc         uint8
	wy, wx          uint8
	bgp, obp0, obp1 uint8

	clock int
	mode  Mode

	fb *FrameBuffer
}

// New returns a PPU with LCDC/BGP set to their post-boot defaults and the
// mode machine positioned at the start of OAMSearch on line 0.
func New() *PPU {
	p := &PPU{
		lcdc: 0x91,
		bgp:  0xFC,
		obp0: 0xFF,
		obp1: 0xFF,
		mode: OAMSearch,
		fb:   NewFrameBuffer(),
	}
	p.stat = uint8(OAMSearch)
	return p
}

// FrameBuffer returns the current (possibly mid-render) framebuffer.
func (p *PPU) FrameBuffer() *FrameBuffer {
	return p.fb
}

// Step advances the PPU by n T-cycles.
func (p *PPU) Step(n int, irqCtl *irq.Controller) {
	if p.lcdc&(1<<lcdcLCDEnable) == 0 {
		p.clock = 0
		p.ly = 0
		p.mode = OAMSearch
		p.stat = (p.stat &^ 0x3) | uint8(OAMSearch)
		return
	}

	for i := 0; i < n; i++ {
		p.tick(irqCtl)
	}
}

func (p *PPU) tick(irqCtl *irq.Controller) {
	p.clock++
	if p.clock == dotsPerLine {
		p.clock = 0
		p.ly = uint8((int(p.ly) + 1) % linesPerFrame)
		p.updateLYCFlag(irqCtl)
	}

	switch {
	case p.clock == 0 && p.ly < visibleLines:
		p.enterMode(OAMSearch, irqCtl)
	case p.clock == 0 && p.ly == visibleLines:
		p.enterMode(VBlank, irqCtl)
		irqCtl.RequestVBlank()
	case p.clock == oamSearchEnd && p.ly < visibleLines:
		p.enterMode(Transfer, irqCtl)
	case p.clock == transferEnd && p.ly < visibleLines:
		p.enterMode(HBlank, irqCtl)
		p.renderScanline(int(p.ly))
	}
}

func (p *PPU) enterMode(m Mode, irqCtl *irq.Controller) {
	p.mode = m
	p.stat = (p.stat &^ 0x3) | uint8(m)

	var enableBit uint8
	switch m {
	case HBlank:
		enableBit = statHBlankIE
	case VBlank:
		enableBit = statVBlankIE
	case OAMSearch:
		enableBit = statOAMIE
	default:
		return
	}
	if p.stat&(1<<enableBit) != 0 {
		irqCtl.RequestLCDStat()
	}
}

func (p *PPU) updateLYCFlag(irqCtl *irq.Controller) {
	match := p.ly == p.lyc
	if match {
		p.stat |= 1 << statLYCFlag
		if p.stat&(1<<statLYCIE) != 0 {
			irqCtl.RequestLCDStat()
		}
	} else {
		p.stat &^= 1 << statLYCFlag
	}
}

// ReadRegister reads one of the PPU control/status registers at 0xFF40-0xFF4B.
func (p *PPU) ReadRegister(address uint16) uint8 {
	switch address {
	case 0xFF40:
		return p.lcdc
	case 0xFF41:
		return p.stat | 0x80
	case 0xFF42:
		return p.scy
	case 0xFF43:
		return p.scx
	case 0xFF44:
		return p.ly
	case 0xFF45:
		return p.lyc
	case 0xFF47:
		return p.bgp
	case 0xFF48:
		return p.obp0
	case 0xFF49:
		return p.obp1
	case 0xFF4A:
		return p.wy
	case 0xFF4B:
		return p.wx
	default:
		return 0xFF
	}
}

// WriteRegister writes one of the PPU control/status registers. A write to
// LY (0xFF44) is ignored, matching real hardware.
func (p *PPU) WriteRegister(address uint16, value uint8) {
	switch address {
	case 0xFF40:
		p.lcdc = value
	case 0xFF41:
		p.stat = (p.stat & 0x07) | (value &^ 0x07)
	case 0xFF42:
		p.scy = value
	case 0xFF43:
		p.scx = value
	case 0xFF44:
		// read-only
	case 0xFF45:
		p.lyc = value
	case 0xFF47:
		p.bgp = value
	case 0xFF48:
		p.obp0 = value
	case 0xFF49:
		p.obp1 = value
	case 0xFF4A:
		p.wy = value
	case 0xFF4B:
		p.wx = value
	}
}

// ReadVRAM/WriteVRAM give the MMU unrestricted access to the 8KiB VRAM
// region (no mode gating, per spec).
func (p *PPU) ReadVRAM(address uint16) uint8  { return p.vram[address-0x8000] }
func (p *PPU) WriteVRAM(address uint16, v uint8) { p.vram[address-0x8000] = v }

// ReadOAM/WriteOAM give access to the 160-byte OAM region.
func (p *PPU) ReadOAM(address uint16) uint8  { return p.oam[address-0xFE00] }
func (p *PPU) WriteOAM(address uint16, v uint8) { p.oam[address-0xFE00] = v }

// DMACopy is used by the MMU's OAM-DMA implementation to bulk-copy 160
// source bytes straight into OAM.
func (p *PPU) DMACopy(src [160]byte) {
	copy(p.oam[:], src[:])
}

// LY returns the current scanline, for diagnostics/tests.
func (p *PPU) LY() uint8 { return p.ly }

// Mode returns the current PPU mode, for diagnostics/tests.
func (p *PPU) Mode() Mode { return p.mode }

// Clock returns the internal dot counter, for diagnostics/tests.
func (p *PPU) Clock() int { return p.clock }
