package video

// renderScanline draws background, window and sprite pixels for line ly
// into the framebuffer, following the LCDC-driven addressing rules.
func (p *PPU) renderScanline(ly int) {
	bgColorIndex := [Width]uint8{}

	p.renderBackground(ly, &bgColorIndex)
	p.renderWindow(ly, &bgColorIndex)
	p.renderSprites(ly, &bgColorIndex)
}

func (p *PPU) renderBackground(ly int, bgColorIndex *[Width]uint8) {
	bgWinEnabled := p.lcdc&(1<<lcdcBGWinEnable) != 0

	mapBase := uint16(0x9800)
	if p.lcdc&(1<<lcdcBGTileMap) != 0 {
		mapBase = 0x9C00
	}

	for x := 0; x < Width; x++ {
		if !bgWinEnabled {
			bgColorIndex[x] = 0
			p.fb.Set(x, ly, shadeFor(p.bgp, 0))
			continue
		}

		px := (x + int(p.scx)) & 0xFF
		py := (ly + int(p.scy)) & 0xFF

		tileIndex := (px / 8) + 32*(py/8)
		tileID := p.vram[mapBase-0x8000+uint16(tileIndex)]

		colorIndex := p.tilePixelColorIndex(tileID, px%8, py%8)
		bgColorIndex[x] = colorIndex
		p.fb.Set(x, ly, shadeFor(p.bgp, colorIndex))
	}
}

func (p *PPU) renderWindow(ly int, bgColorIndex *[Width]uint8) {
	if p.lcdc&(1<<lcdcWindowEnable) == 0 {
		return
	}
	if ly < int(p.wy) {
		return
	}

	mapBase := uint16(0x9800)
	if p.lcdc&(1<<lcdcWindowTileMap) != 0 {
		mapBase = 0x9C00
	}

	startX := int(p.wx) - 7
	if startX < 0 {
		startX = 0
	}

	winY := ly - int(p.wy)

	for x := startX; x < Width; x++ {
		winX := x + 7 - int(p.wx)
		if winX < 0 {
			continue
		}

		tileIndex := (winX / 8) + 32*(winY/8)
		tileID := p.vram[mapBase-0x8000+uint16(tileIndex)]

		colorIndex := p.tilePixelColorIndex(tileID, winX%8, winY%8)
		bgColorIndex[x] = colorIndex
		p.fb.Set(x, ly, shadeFor(p.bgp, colorIndex))
	}
}

// tilePixelColorIndex resolves the 2-bit color index of pixel (col, row)
// within the tile named by tileID, honoring LCDC's addressing-mode bit.
func (p *PPU) tilePixelColorIndex(tileID uint8, col, row int) uint8 {
	var tileAddr uint16
	if p.lcdc&(1<<lcdcBGWinTileData) != 0 {
		tileAddr = 0x8000 + uint16(tileID)*16
	} else {
		tileAddr = uint16(int32(0x9000) + int32(int8(tileID))*16)
	}
	return p.tileRowColorIndex(tileAddr, row, col)
}

func (p *PPU) tileRowColorIndex(tileAddr uint16, row, col int) uint8 {
	offset := tileAddr - 0x8000 + uint16(2*row)
	low := p.vram[offset]
	high := p.vram[offset+1]

	bitPos := uint(7 - col)
	lowBit := (low >> bitPos) & 1
	highBit := (high >> bitPos) & 1
	return (highBit << 1) | lowBit
}

func (p *PPU) renderSprites(ly int, bgColorIndex *[Width]uint8) {
	if p.lcdc&(1<<lcdcObjEnable) == 0 {
		return
	}

	height := 8
	if p.lcdc&(1<<lcdcObjSize) != 0 {
		height = 16
	}

	var drawn [Width]bool

	for i := 0; i < 40; i++ {
		base := i * 4
		sy := int(p.oam[base+0]) - 16
		sx := int(p.oam[base+1]) - 8
		tileID := p.oam[base+2]
		attr := p.oam[base+3]

		if ly < sy || ly >= sy+height {
			continue
		}

		row := ly - sy
		if attr&(1<<6) != 0 { // Y-flip
			row = height - 1 - row
		}

		tile := tileID
		if height == 16 {
			if row < 8 {
				tile = tileID &^ 0x01
			} else {
				tile = tileID | 0x01
				row -= 8
			}
		}

		palette := p.obp0
		if attr&(1<<4) != 0 {
			palette = p.obp1
		}
		xFlip := attr&(1<<5) != 0
		bgPriority := attr&(1<<7) != 0

		tileAddr := 0x8000 + uint16(tile)*16

		for col := 0; col < 8; col++ {
			x := sx + col
			if x < 0 || x >= Width {
				continue
			}
			if drawn[x] {
				continue
			}

			srcCol := col
			if xFlip {
				srcCol = 7 - col
			}

			colorIndex := p.tileRowColorIndex(tileAddr, row, srcCol)
			if colorIndex == 0 {
				continue
			}
			if bgPriority && bgColorIndex[x] != 0 {
				continue
			}

			p.fb.Set(x, ly, shadeFor(palette, colorIndex))
			drawn[x] = true
		}
	}
}

// shadeFor maps a 2-bit color index through an 8-bit palette register
// (two bits per index) to a resolved DMG shade.
func shadeFor(palette uint8, colorIndex uint8) Color {
	shadeIndex := (palette >> (2 * colorIndex)) & 0x3
	return shades[shadeIndex]
}
