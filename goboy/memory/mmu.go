// Package memory implements the cartridge, timer, joypad and the unified
// memory bus (MMU) that dispatches every CPU-visible address to its owning
// component.
package memory

import (
	"log/slog"

	"github.com/kjhall/go-dmgboy/goboy/addr"
	"github.com/kjhall/go-dmgboy/goboy/audio"
	"github.com/kjhall/go-dmgboy/goboy/irq"
	"github.com/kjhall/go-dmgboy/goboy/video"
)

// MMU decodes the 16-bit address space and fans reads/writes out to the
// owning component. It is the CPU's only way to touch memory.
type MMU struct {
	cart *Cartridge
	ppu  *video.PPU
	apu  *audio.APU
	tmr  *Timer
	pad  *Joypad
	irqs *irq.Controller

	wram [0x2000]byte // 0xC000-0xDFFF
	hram [0x7F]byte   // 0xFF80-0xFFFE
}

// NewMMU wires together an MMU from already-constructed peripherals. Board
// is expected to own these and pass them in.
func NewMMU(cart *Cartridge, ppu *video.PPU, apu *audio.APU, tmr *Timer, pad *Joypad, irqs *irq.Controller) *MMU {
	return &MMU{cart: cart, ppu: ppu, apu: apu, tmr: tmr, pad: pad, irqs: irqs}
}

// Step forwards n T-cycles to the PPU, APU and Timer, in that order.
func (m *MMU) Step(n int) {
	m.ppu.Step(n, m.irqs)
	m.apu.Step(n)
	m.tmr.Step(n, m.irqs)
}

// Read returns the byte at addr, or 0xFF for unmapped/write-only ranges.
func (m *MMU) Read(address uint16) uint8 {
	switch {
	case address <= 0x7FFF:
		return m.cart.Read(address)
	case address <= 0x9FFF:
		return m.ppu.ReadVRAM(address)
	case address <= 0xBFFF:
		return m.cart.Read(address)
	case address <= 0xDFFF:
		return m.wram[address-0xC000]
	case address <= 0xFDFF:
		return m.wram[address-0xE000]
	case address <= 0xFE9F:
		return m.ppu.ReadOAM(address)
	case address <= 0xFEFF:
		return 0
	case address == addr.P1:
		return m.pad.Read()
	case address == addr.SB || address == addr.SC:
		return 0xFF
	case address == addr.DIV || address == addr.TIMA || address == addr.TMA || address == addr.TAC:
		return m.tmr.Read(address)
	case address == addr.IF:
		return m.irqs.Flags() | 0xE0
	case address >= addr.AudioStart && address <= addr.AudioEnd:
		return m.apu.ReadRegister(address)
	case address >= addr.LCDC && address <= addr.WX:
		return m.ppu.ReadRegister(address)
	case address == addr.IE:
		return m.irqs.Enable()
	case address >= 0xFF80 && address <= 0xFFFE:
		return m.hram[address-0xFF80]
	default:
		return 0xFF
	}
}

// Write stores value at addr. Writes to unmapped/read-only addresses are
// silently ignored.
func (m *MMU) Write(address uint16, value uint8) {
	switch {
	case address <= 0x7FFF:
		m.cart.Write(address, value)
	case address <= 0x9FFF:
		m.ppu.WriteVRAM(address, value)
	case address <= 0xBFFF:
		m.cart.Write(address, value)
	case address <= 0xDFFF:
		m.wram[address-0xC000] = value
	case address <= 0xFDFF:
		m.wram[address-0xE000] = value
	case address <= 0xFE9F:
		m.ppu.WriteOAM(address, value)
	case address <= 0xFEFF:
		// unusable, writes ignored
	case address == addr.P1:
		m.pad.WriteSelect(value)
	case address == addr.SB || address == addr.SC:
		// serial stub, unused
	case address == addr.DIV || address == addr.TIMA || address == addr.TMA || address == addr.TAC:
		m.tmr.Write(address, value)
	case address == addr.IF:
		m.irqs.SetFlags(value & 0x1F)
	case address >= addr.AudioStart && address <= addr.AudioEnd:
		m.apu.WriteRegister(address, value)
	case address == addr.DMA:
		m.doDMA(value)
	case address == addr.BootDisable:
		m.cart.DisableBoot()
	case address >= addr.LCDC && address <= addr.WX:
		m.ppu.WriteRegister(address, value)
	case address == addr.IE:
		m.irqs.SetEnable(value)
	case address >= 0xFF80 && address <= 0xFFFE:
		m.hram[address-0xFF80] = value
	default:
		slog.Debug("write to unmapped address", "addr", address, "value", value)
	}
}

// doDMA copies 160 bytes starting at value*0x100 into OAM, modeled as
// instantaneous (not cycle-accurate).
func (m *MMU) doDMA(value uint8) {
	src := uint16(value) << 8
	var buf [160]byte
	for i := range buf {
		buf[i] = m.Read(src + uint16(i))
	}
	m.ppu.DMACopy(buf)
}

// ReadWord reads a little-endian 16-bit value.
func (m *MMU) ReadWord(address uint16) uint16 {
	return uint16(m.Read(address)) | (uint16(m.Read(address+1)) << 8)
}

// WriteWord writes a little-endian 16-bit value, low byte first.
func (m *MMU) WriteWord(address uint16, value uint16) {
	m.Write(address, uint8(value))
	m.Write(address+1, uint8(value>>8))
}

// RequestInterrupt is a convenience passthrough used by components that
// only hold an *MMU (e.g. test harnesses); production peripherals hold the
// irq.Controller directly.
func (m *MMU) RequestInterrupt(i addr.Interrupt) {
	switch i {
	case addr.VBlankInterrupt:
		m.irqs.RequestVBlank()
	case addr.LCDStatInterrupt:
		m.irqs.RequestLCDStat()
	case addr.TimerInterrupt:
		m.irqs.RequestTimer()
	case addr.SerialInterrupt:
		m.irqs.RequestSerial()
	case addr.JoypadInterrupt:
		m.irqs.RequestJoypad()
	}
}

// PressButton/ReleaseButton forward to the joypad.
func (m *MMU) PressButton(b Button)   { m.pad.Press(b, m.irqs) }
func (m *MMU) ReleaseButton(b Button) { m.pad.Release(b) }

// IRQ exposes the shared interrupt controller, for the CPU to consult.
func (m *MMU) IRQ() *irq.Controller { return m.irqs }

// PPU exposes the PPU for the board's Frame() accessor.
func (m *MMU) PPU() *video.PPU { return m.ppu }

// APU exposes the APU for the board's Audio() accessor.
func (m *MMU) APU() *audio.APU { return m.apu }

// Cartridge exposes the cartridge for diagnostics.
func (m *MMU) Cartridge() *Cartridge { return m.cart }
