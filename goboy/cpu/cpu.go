// Package cpu implements the Sharp SM83 instruction interpreter: register
// file, the 256-entry plus 256-entry CB-prefixed opcode dispatch tables,
// and interrupt servicing.
package cpu

import (
	"github.com/kjhall/go-dmgboy/goboy/addr"
	"github.com/kjhall/go-dmgboy/goboy/irq"
)

// Bus is the memory-mapped address space the CPU executes against. *memory.MMU
// satisfies it; tests may supply a smaller fake.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// CPU holds the SM83 register file and drives fetch-decode-execute.
type CPU struct {
	reg registers

	bus  Bus
	irqs *irq.Controller

	ime        bool
	imeDelayed int // countdown set by EI; IME flips true when it reaches 0

	halted  bool
	stopped bool

	// haltBug reproduces the DMG quirk where HALT executed with IME=0 and a
	// pending-but-disabled interrupt causes the next byte to be fetched
	// without incrementing PC.
	haltBug bool
}

// New returns a CPU wired to bus and irqs, with every register zeroed (the
// state execution begins in when the boot ROM is mapped at 0x0000).
func New(bus Bus, irqs *irq.Controller) *CPU {
	return &CPU{bus: bus, irqs: irqs}
}

// SetPostBootState initializes registers to the values they hold immediately
// after the real boot ROM hands off to cartridge code at 0x0100, for
// no-boot-ROM startup.
func (c *CPU) SetPostBootState() {
	c.reg.setAF(0x01B0)
	c.reg.setBC(0x0013)
	c.reg.setDE(0x00D8)
	c.reg.setHL(0x014D)
	c.reg.sp = 0xFFFE
	c.reg.pc = 0x0100
	c.ime = false
}

// PC/SP expose CPU state for the board and for tests.
func (c *CPU) PC() uint16 { return c.reg.pc }
func (c *CPU) SP() uint16 { return c.reg.sp }
func (c *CPU) IME() bool  { return c.ime }
func (c *CPU) Halted() bool { return c.halted }

func (c *CPU) fetch8() uint8 {
	v := c.bus.Read(c.reg.pc)
	c.reg.pc++
	return v
}

func (c *CPU) fetch16() uint16 {
	lo := c.fetch8()
	hi := c.fetch8()
	return uint16(hi)<<8 | uint16(lo)
}

// Step either services a pending interrupt (20 cycles; no instruction is
// executed in that call) or executes exactly one instruction (or, while
// halted or stopped with nothing to wake it, advances 4 cycles doing
// nothing). It returns the number of T-cycles consumed.
func (c *CPU) Step() int {
	if cycles, serviced := c.serviceInterrupt(); serviced {
		return cycles
	}

	if c.stopped {
		if c.irqs.Flags()&addr.JoypadInterrupt.Bit() != 0 {
			c.stopped = false
		} else {
			return 4
		}
	}

	if c.halted {
		if c.irqs.Pending() != 0 {
			c.halted = false
		} else {
			return 4
		}
	}

	opcode := c.fetch8()
	if c.haltBug {
		c.reg.pc--
		c.haltBug = false
	}

	var cycles int
	if opcode == 0xCB {
		cb := c.fetch8()
		cycles = execCB(c, cb)
	} else {
		cycles = exec(c, opcode)
	}

	// EI's effect is delayed until the instruction after the one following
	// it: the instruction just executed still ran with the old IME.
	if c.imeDelayed > 0 {
		c.imeDelayed--
		if c.imeDelayed == 0 {
			c.ime = true
		}
	}

	return cycles
}

// interruptVectors gives the ISR entry address for each of the five
// interrupt sources, in priority order (lowest index serviced first).
var interruptVectors = [5]uint16{0x0040, 0x0048, 0x0050, 0x0058, 0x0060}

func (c *CPU) serviceInterrupt() (cycles int, serviced bool) {
	pending := c.irqs.Pending()
	if pending == 0 {
		return 0, false
	}
	if !c.ime {
		return 0, false
	}

	var i uint8
	for i = 0; i < 5; i++ {
		if pending&(1<<i) != 0 {
			break
		}
	}

	c.ime = false
	c.irqs.SetFlags(c.irqs.Flags() &^ (1 << i))
	c.halted = false

	c.pushStack(c.reg.pc)
	c.reg.pc = interruptVectors[i]

	return 20, true
}

func (c *CPU) requestEI() {
	c.imeDelayed = 2
}
