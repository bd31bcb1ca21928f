// Package goboy wires the emulator's components — cartridge, MMU, CPU, PPU,
// APU, timer, joypad and interrupt controller — into a runnable Board.
package goboy

import (
	"github.com/kjhall/go-dmgboy/goboy/audio"
	"github.com/kjhall/go-dmgboy/goboy/cpu"
	"github.com/kjhall/go-dmgboy/goboy/irq"
	"github.com/kjhall/go-dmgboy/goboy/memory"
	"github.com/kjhall/go-dmgboy/goboy/video"
)

// cyclesPerFrame is the number of T-cycles in one 70224-dot DMG frame
// (456 dots/line * 154 lines).
const cyclesPerFrame = 70224

// Board owns every component and drives them together one frame at a time.
type Board struct {
	cart *memory.Cartridge
	mmu  *memory.MMU
	cpu  *cpu.CPU
	ppu  *video.PPU
	apu  *audio.APU
	tmr  *memory.Timer
	pad  *memory.Joypad
	irqs *irq.Controller

	leftoverCycles int
}

// NewWithBoot constructs a Board that begins execution at the boot ROM's
// entry point (0x0000), with registers zeroed as on real power-on.
func NewWithBoot(boot []byte, game []byte) *Board {
	return newBoard(boot, game, false)
}

// NewNoBoot constructs a Board that skips the boot ROM, with registers and
// I/O pre-set to the values they would hold immediately after a real boot
// ROM hands off control.
func NewNoBoot(game []byte) *Board {
	return newBoard(nil, game, true)
}

func newBoard(boot []byte, game []byte, skipBoot bool) *Board {
	cart := memory.NewCartridge(boot, game)
	ppu := video.New()
	apu := audio.New()
	tmr := memory.NewTimer()
	pad := memory.NewJoypad()
	irqs := irq.New()
	mmu := memory.NewMMU(cart, ppu, apu, tmr, pad, irqs)
	c := cpu.New(mmu, irqs)

	b := &Board{cart: cart, mmu: mmu, cpu: c, ppu: ppu, apu: apu, tmr: tmr, pad: pad, irqs: irqs}

	if skipBoot {
		c.SetPostBootState()
		cart.DisableBoot()
		b.setPostBootIO()
	}

	return b
}

// setPostBootIO mirrors the I/O register state the real boot ROM leaves
// behind, for callers that skip it.
func (b *Board) setPostBootIO() {
	b.mmu.Write(0xFF05, 0x00) // TIMA
	b.mmu.Write(0xFF06, 0x00) // TMA
	b.mmu.Write(0xFF07, 0x00) // TAC
	// NR52 must land first: the APU ignores every other NRxx write while
	// its power bit is off, and it starts powered off at construction time.
	b.mmu.Write(0xFF26, 0xF1) // NR52
	b.mmu.Write(0xFF10, 0x80) // NR10
	b.mmu.Write(0xFF11, 0xBF) // NR11
	b.mmu.Write(0xFF12, 0xF3) // NR12
	b.mmu.Write(0xFF14, 0xBF) // NR14
	b.mmu.Write(0xFF16, 0x3F) // NR21
	b.mmu.Write(0xFF17, 0x00) // NR22
	b.mmu.Write(0xFF19, 0xBF) // NR24
	b.mmu.Write(0xFF1A, 0x7F) // NR30
	b.mmu.Write(0xFF1B, 0xFF) // NR31
	b.mmu.Write(0xFF1C, 0x9F) // NR32
	b.mmu.Write(0xFF1E, 0xBF) // NR34
	b.mmu.Write(0xFF20, 0xFF) // NR41
	b.mmu.Write(0xFF21, 0x00) // NR42
	b.mmu.Write(0xFF22, 0x00) // NR43
	b.mmu.Write(0xFF23, 0xBF) // NR44
	b.mmu.Write(0xFF24, 0x77) // NR50
	b.mmu.Write(0xFF25, 0xF3) // NR51
	b.mmu.Write(0xFF40, 0x91) // LCDC
	b.mmu.Write(0xFF42, 0x00) // SCY
	b.mmu.Write(0xFF43, 0x00) // SCX
	b.mmu.Write(0xFF45, 0x00) // LYC
	b.mmu.Write(0xFF47, 0xFC) // BGP
	b.mmu.Write(0xFF48, 0xFF) // OBP0
	b.mmu.Write(0xFF49, 0xFF) // OBP1
	b.mmu.Write(0xFF4A, 0x00) // WY
	b.mmu.Write(0xFF4B, 0x00) // WX
	b.mmu.Write(0xFFFF, 0x00) // IE
}

// RunToNextFrame runs the CPU, PPU, APU and Timer until one more complete
// frame (70224 T-cycles) has elapsed, carrying any overshoot into the next
// call so frame timing stays exact over many frames.
func (b *Board) RunToNextFrame() {
	cycles := b.leftoverCycles
	for cycles < cyclesPerFrame {
		step := b.cpu.Step()
		b.mmu.Step(step)
		cycles += step
	}
	b.leftoverCycles = cycles - cyclesPerFrame
}

// Frame returns the most recently completed framebuffer.
func (b *Board) Frame() *video.FrameBuffer {
	return b.ppu.FrameBuffer()
}

// Audio drains and returns the stereo PCM samples produced since the last
// call.
func (b *Board) Audio() []float32 {
	return b.apu.AudioBuffer()
}

// ButtonPressed/ButtonReleased forward to the joypad and may raise a Joypad
// interrupt.
func (b *Board) ButtonPressed(btn memory.Button)  { b.mmu.PressButton(btn) }
func (b *Board) ButtonReleased(btn memory.Button) { b.mmu.ReleaseButton(btn) }

// Title returns the cartridge's parsed title, for display purposes.
func (b *Board) Title() string { return b.cart.Title() }
