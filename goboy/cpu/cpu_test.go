package cpu

import (
	"testing"

	"github.com/kjhall/go-dmgboy/goboy/irq"
	"github.com/stretchr/testify/assert"
)

// fakeBus is a flat 64KiB array satisfying the Bus interface, for isolated
// CPU tests that don't need real peripherals.
type fakeBus struct {
	mem [0x10000]byte
}

func (f *fakeBus) Read(address uint16) uint8        { return f.mem[address] }
func (f *fakeBus) Write(address uint16, value uint8) { f.mem[address] = value }

func newTestCPU() (*CPU, *fakeBus, *irq.Controller) {
	bus := &fakeBus{}
	irqs := irq.New()
	c := New(bus, irqs)
	return c, bus, irqs
}

func TestNOP(t *testing.T) {
	c, bus, _ := newTestCPU()
	bus.mem[0] = 0x00
	cycles := c.Step()
	assert.Equal(t, 4, cycles)
	assert.Equal(t, uint16(1), c.PC())
}

func TestLDBCImmediate(t *testing.T) {
	c, bus, _ := newTestCPU()
	bus.mem[0] = 0x01
	bus.mem[1] = 0x34
	bus.mem[2] = 0x12
	cycles := c.Step()
	assert.Equal(t, 12, cycles)
	assert.Equal(t, uint16(0x1234), c.reg.bc())
}

func TestAddSetsHalfCarryWithoutCarry(t *testing.T) {
	c, bus, _ := newTestCPU()
	c.reg.a = 0x0F
	bus.mem[0] = 0xC6 // ADD A,d8
	bus.mem[1] = 0x01
	c.Step()
	assert.Equal(t, uint8(0x10), c.reg.a)
	assert.True(t, c.reg.flag(flagH))
	assert.False(t, c.reg.flag(flagC))
	assert.False(t, c.reg.flag(flagZ))
}

func TestIncDoesNotTouchCarry(t *testing.T) {
	c, bus, _ := newTestCPU()
	c.reg.setFlag(flagC, true)
	c.reg.b = 0xFF
	bus.mem[0] = 0x04 // INC B
	c.Step()
	assert.Equal(t, uint8(0), c.reg.b)
	assert.True(t, c.reg.flag(flagZ))
	assert.True(t, c.reg.flag(flagC)) // untouched by INC
}

func TestDAAAfterBCDAdd(t *testing.T) {
	c, bus, _ := newTestCPU()
	c.reg.a = 0x45
	bus.mem[0] = 0xC6 // ADD A,0x38 -> 0x7D raw
	bus.mem[1] = 0x38
	bus.mem[2] = 0x27 // DAA
	c.Step()
	c.Step()
	assert.Equal(t, uint8(0x83), c.reg.a) // 45 + 38 in BCD = 83
}

func TestPushPopRoundTrip(t *testing.T) {
	c, bus, _ := newTestCPU()
	c.reg.sp = 0xFFFE
	c.reg.setBC(0xBEEF)
	bus.mem[0] = 0xC5 // PUSH BC
	bus.mem[1] = 0xD1 // POP DE
	c.Step()
	c.Step()
	assert.Equal(t, uint16(0xBEEF), c.reg.de())
	assert.Equal(t, uint16(0xFFFE), c.reg.sp)
}

func TestPopAFMasksLowNibble(t *testing.T) {
	c, bus, _ := newTestCPU()
	c.reg.sp = 0xFFFC
	bus.mem[0xFFFC] = 0xFF // low byte of AF (F) -- low nibble must be masked off
	bus.mem[0xFFFD] = 0x12
	bus.mem[0] = 0xF1 // POP AF
	c.Step()
	assert.Equal(t, uint8(0xF0), c.reg.f)
}

func TestJRNZTakenAndNotTaken(t *testing.T) {
	c, bus, _ := newTestCPU()
	bus.mem[0] = 0x20 // JR NZ, +5
	bus.mem[1] = 0x05
	c.reg.setFlag(flagZ, false)
	cycles := c.Step()
	assert.Equal(t, 12, cycles)
	assert.Equal(t, uint16(2+5), c.PC())

	c2, bus2, _ := newTestCPU()
	bus2.mem[0] = 0x20
	bus2.mem[1] = 0x05
	c2.reg.setFlag(flagZ, true)
	cycles2 := c2.Step()
	assert.Equal(t, 8, cycles2)
	assert.Equal(t, uint16(2), c2.PC())
}

func TestCBBitTest(t *testing.T) {
	c, bus, _ := newTestCPU()
	c.reg.b = 0x00
	bus.mem[0] = 0xCB
	bus.mem[1] = 0x40 // BIT 0,B
	cycles := c.Step()
	assert.Equal(t, 8, cycles)
	assert.True(t, c.reg.flag(flagZ))
}

func TestCBSetAndRes(t *testing.T) {
	c, bus, _ := newTestCPU()
	c.reg.c = 0x00
	bus.mem[0] = 0xCB
	bus.mem[1] = 0xC1 // SET 0,C
	c.Step()
	assert.Equal(t, uint8(0x01), c.reg.c)

	bus.mem[2] = 0xCB
	bus.mem[3] = 0x81 // RES 0,C
	c.Step()
	assert.Equal(t, uint8(0x00), c.reg.c)
}

func TestInterruptServicingPushesPCAndClearsIME(t *testing.T) {
	c, bus, irqs := newTestCPU()
	c.ime = true
	c.reg.pc = 0x1234
	c.reg.sp = 0xFFFE
	irqs.SetEnable(0x01)
	irqs.RequestVBlank()

	cycles := c.Step()

	assert.Equal(t, 20, cycles)
	assert.Equal(t, uint16(0x0040), c.PC())
	assert.False(t, c.IME())
	assert.Equal(t, uint8(0), irqs.Flags()&0x01)

	// Return address on the stack should be the pre-interrupt PC.
	lo := bus.mem[0xFFFC]
	hi := bus.mem[0xFFFD]
	assert.Equal(t, uint16(0x1234), uint16(hi)<<8|uint16(lo))
}

func TestHaltWakesOnPendingInterruptEvenWithIMEOff(t *testing.T) {
	c, bus, irqs := newTestCPU()
	bus.mem[0] = 0x76 // HALT
	c.ime = false
	c.Step()
	assert.True(t, c.Halted())

	irqs.SetEnable(0x01)
	irqs.RequestVBlank()
	cycles := c.Step()
	assert.False(t, c.Halted())
	assert.Equal(t, 4, cycles)
}

func TestHaltWithIMEOnServicesISRAndResumes(t *testing.T) {
	c, bus, irqs := newTestCPU()
	bus.mem[0] = 0x76 // HALT
	bus.mem[0x0040] = 0x00 // NOP at the VBlank vector, so the ISR can RETI
	bus.mem[0x0041] = 0xD9 // RETI
	c.ime = true
	c.reg.sp = 0xFFFE
	c.Step()
	assert.True(t, c.Halted())

	irqs.SetEnable(0x01)
	irqs.RequestVBlank()

	cycles := c.Step() // services the interrupt, must also clear halted
	assert.Equal(t, 20, cycles)
	assert.False(t, c.Halted())
	assert.Equal(t, uint16(0x0040), c.PC())

	c.Step() // NOP in the ISR
	assert.False(t, c.Halted())
	assert.Equal(t, uint16(0x0041), c.PC())

	c.Step() // RETI returns to just past HALT and re-enables IME
	assert.True(t, c.IME())
	assert.Equal(t, uint16(1), c.PC())
}

func TestStopWakesOnJoypadRequestRegardlessOfIE(t *testing.T) {
	c, bus, irqs := newTestCPU()
	bus.mem[0] = 0x10 // STOP
	bus.mem[1] = 0x00 // throwaway byte STOP consumes
	bus.mem[2] = 0x00 // NOP, to run once STOP wakes
	c.Step()

	stalled := c.Step() // still stopped, no joypad request pending yet
	assert.Equal(t, 4, stalled)
	assert.Equal(t, uint16(2), c.PC())

	irqs.RequestJoypad() // no SetEnable: STOP wakes on the request alone

	cycles := c.Step() // wakes and executes the NOP at 0x0002
	assert.Equal(t, 4, cycles)
	assert.Equal(t, uint16(3), c.PC())
}

func TestEIDelaysOneInstruction(t *testing.T) {
	c, bus, irqs := newTestCPU()
	bus.mem[0] = 0xFB // EI
	bus.mem[1] = 0x00 // NOP
	bus.mem[2] = 0x00 // NOP
	irqs.SetEnable(0x01)
	irqs.RequestVBlank()

	c.Step() // EI: IME not yet set
	assert.False(t, c.IME())

	c.Step() // first NOP after EI executes with interrupts still disabled
	assert.True(t, c.IME())
}
