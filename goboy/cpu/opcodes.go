package cpu

// getR8/setR8 decode the 3-bit register field used throughout the main
// opcode table: 0-5 are B,C,D,E,H,L, 6 is (HL), 7 is A.
func (c *CPU) getR8(i uint8) uint8 {
	switch i {
	case 0:
		return c.reg.b
	case 1:
		return c.reg.c
	case 2:
		return c.reg.d
	case 3:
		return c.reg.e
	case 4:
		return c.reg.h
	case 5:
		return c.reg.l
	case 6:
		return c.bus.Read(c.reg.hl())
	default:
		return c.reg.a
	}
}

func (c *CPU) setR8(i uint8, v uint8) {
	switch i {
	case 0:
		c.reg.b = v
	case 1:
		c.reg.c = v
	case 2:
		c.reg.d = v
	case 3:
		c.reg.e = v
	case 4:
		c.reg.h = v
	case 5:
		c.reg.l = v
	case 6:
		c.bus.Write(c.reg.hl(), v)
	default:
		c.reg.a = v
	}
}

// exec executes one main-table opcode and returns its T-cycle cost.
func exec(c *CPU, opcode uint8) int {
	switch opcode {
	case 0x00: // NOP
		return 4
	case 0x01: // LD BC,d16
		c.reg.setBC(c.fetch16())
		return 12
	case 0x02: // LD (BC),A
		c.bus.Write(c.reg.bc(), c.reg.a)
		return 8
	case 0x03: // INC BC
		c.reg.setBC(c.reg.bc() + 1)
		return 8
	case 0x04:
		c.reg.b = c.inc8(c.reg.b)
		return 4
	case 0x05:
		c.reg.b = c.dec8(c.reg.b)
		return 4
	case 0x06:
		c.reg.b = c.fetch8()
		return 8
	case 0x07: // RLCA: like RLC A but Z always cleared
		c.reg.a = c.rlc(c.reg.a)
		c.reg.setFlag(flagZ, false)
		return 4
	case 0x08: // LD (a16),SP
		addr16 := c.fetch16()
		c.bus.Write(addr16, uint8(c.reg.sp))
		c.bus.Write(addr16+1, uint8(c.reg.sp>>8))
		return 20
	case 0x09:
		c.addHL(c.reg.bc())
		return 8
	case 0x0A:
		c.reg.a = c.bus.Read(c.reg.bc())
		return 8
	case 0x0B:
		c.reg.setBC(c.reg.bc() - 1)
		return 8
	case 0x0C:
		c.reg.c = c.inc8(c.reg.c)
		return 4
	case 0x0D:
		c.reg.c = c.dec8(c.reg.c)
		return 4
	case 0x0E:
		c.reg.c = c.fetch8()
		return 8
	case 0x0F:
		c.reg.a = c.rrc(c.reg.a)
		c.reg.setFlag(flagZ, false)
		return 4

	case 0x10: // STOP
		c.fetch8() // STOP is followed by a throwaway byte
		c.stopped = true
		return 4
	case 0x11:
		c.reg.setDE(c.fetch16())
		return 12
	case 0x12:
		c.bus.Write(c.reg.de(), c.reg.a)
		return 8
	case 0x13:
		c.reg.setDE(c.reg.de() + 1)
		return 8
	case 0x14:
		c.reg.d = c.inc8(c.reg.d)
		return 4
	case 0x15:
		c.reg.d = c.dec8(c.reg.d)
		return 4
	case 0x16:
		c.reg.d = c.fetch8()
		return 8
	case 0x17:
		c.reg.a = c.rl(c.reg.a)
		c.reg.setFlag(flagZ, false)
		return 4
	case 0x18:
		return c.jrIf(true)
	case 0x19:
		c.addHL(c.reg.de())
		return 8
	case 0x1A:
		c.reg.a = c.bus.Read(c.reg.de())
		return 8
	case 0x1B:
		c.reg.setDE(c.reg.de() - 1)
		return 8
	case 0x1C:
		c.reg.e = c.inc8(c.reg.e)
		return 4
	case 0x1D:
		c.reg.e = c.dec8(c.reg.e)
		return 4
	case 0x1E:
		c.reg.e = c.fetch8()
		return 8
	case 0x1F:
		c.reg.a = c.rr(c.reg.a)
		c.reg.setFlag(flagZ, false)
		return 4

	case 0x20:
		return c.jrIf(!c.reg.flag(flagZ))
	case 0x21:
		c.reg.setHL(c.fetch16())
		return 12
	case 0x22:
		c.bus.Write(c.reg.hl(), c.reg.a)
		c.reg.setHL(c.reg.hl() + 1)
		return 8
	case 0x23:
		c.reg.setHL(c.reg.hl() + 1)
		return 8
	case 0x24:
		c.reg.h = c.inc8(c.reg.h)
		return 4
	case 0x25:
		c.reg.h = c.dec8(c.reg.h)
		return 4
	case 0x26:
		c.reg.h = c.fetch8()
		return 8
	case 0x27:
		c.daa()
		return 4
	case 0x28:
		return c.jrIf(c.reg.flag(flagZ))
	case 0x29:
		c.addHL(c.reg.hl())
		return 8
	case 0x2A:
		c.reg.a = c.bus.Read(c.reg.hl())
		c.reg.setHL(c.reg.hl() + 1)
		return 8
	case 0x2B:
		c.reg.setHL(c.reg.hl() - 1)
		return 8
	case 0x2C:
		c.reg.l = c.inc8(c.reg.l)
		return 4
	case 0x2D:
		c.reg.l = c.dec8(c.reg.l)
		return 4
	case 0x2E:
		c.reg.l = c.fetch8()
		return 8
	case 0x2F:
		c.cpl()
		return 4

	case 0x30:
		return c.jrIf(!c.reg.flag(flagC))
	case 0x31:
		c.reg.sp = c.fetch16()
		return 12
	case 0x32:
		c.bus.Write(c.reg.hl(), c.reg.a)
		c.reg.setHL(c.reg.hl() - 1)
		return 8
	case 0x33:
		c.reg.sp++
		return 8
	case 0x34:
		c.bus.Write(c.reg.hl(), c.inc8(c.bus.Read(c.reg.hl())))
		return 12
	case 0x35:
		c.bus.Write(c.reg.hl(), c.dec8(c.bus.Read(c.reg.hl())))
		return 12
	case 0x36:
		c.bus.Write(c.reg.hl(), c.fetch8())
		return 12
	case 0x37:
		c.scf()
		return 4
	case 0x38:
		return c.jrIf(c.reg.flag(flagC))
	case 0x39:
		c.addHL(c.reg.sp)
		return 8
	case 0x3A:
		c.reg.a = c.bus.Read(c.reg.hl())
		c.reg.setHL(c.reg.hl() - 1)
		return 8
	case 0x3B:
		c.reg.sp--
		return 8
	case 0x3C:
		c.reg.a = c.inc8(c.reg.a)
		return 4
	case 0x3D:
		c.reg.a = c.dec8(c.reg.a)
		return 4
	case 0x3E:
		c.reg.a = c.fetch8()
		return 8
	case 0x3F:
		c.ccf()
		return 4

	case 0x76: // HALT
		if !c.ime && c.irqs.Pending() != 0 {
			// HALT bug: PC fails to advance past the next fetch.
			c.haltBug = true
		} else {
			c.halted = true
		}
		return 4

	case 0xC0:
		return c.retIf(!c.reg.flag(flagZ))
	case 0xC1:
		c.reg.setBC(c.popStack())
		return 12
	case 0xC2:
		return c.jpIf(!c.reg.flag(flagZ))
	case 0xC3:
		return c.jpIf(true)
	case 0xC4:
		return c.callIf(!c.reg.flag(flagZ))
	case 0xC5:
		c.pushStack(c.reg.bc())
		return 16
	case 0xC6:
		c.add(c.fetch8())
		return 8
	case 0xC7:
		c.rst(0x00)
		return 16
	case 0xC8:
		return c.retIf(c.reg.flag(flagZ))
	case 0xC9:
		c.reg.pc = c.popStack()
		return 16
	case 0xCA:
		return c.jpIf(c.reg.flag(flagZ))
	case 0xCC:
		return c.callIf(c.reg.flag(flagZ))
	case 0xCD:
		return c.callIf(true)
	case 0xCE:
		c.adc(c.fetch8())
		return 8
	case 0xCF:
		c.rst(0x08)
		return 16

	case 0xD0:
		return c.retIf(!c.reg.flag(flagC))
	case 0xD1:
		c.reg.setDE(c.popStack())
		return 12
	case 0xD2:
		return c.jpIf(!c.reg.flag(flagC))
	case 0xD4:
		return c.callIf(!c.reg.flag(flagC))
	case 0xD5:
		c.pushStack(c.reg.de())
		return 16
	case 0xD6:
		c.sub(c.fetch8())
		return 8
	case 0xD7:
		c.rst(0x10)
		return 16
	case 0xD8:
		return c.retIf(c.reg.flag(flagC))
	case 0xD9: // RETI
		c.reg.pc = c.popStack()
		c.ime = true
		return 16
	case 0xDA:
		return c.jpIf(c.reg.flag(flagC))
	case 0xDC:
		return c.callIf(c.reg.flag(flagC))
	case 0xDE:
		c.sbc(c.fetch8())
		return 8
	case 0xDF:
		c.rst(0x18)
		return 16

	case 0xE0: // LDH (a8),A
		c.bus.Write(0xFF00+uint16(c.fetch8()), c.reg.a)
		return 12
	case 0xE1:
		c.reg.setHL(c.popStack())
		return 12
	case 0xE2:
		c.bus.Write(0xFF00+uint16(c.reg.c), c.reg.a)
		return 8
	case 0xE5:
		c.pushStack(c.reg.hl())
		return 16
	case 0xE6:
		c.and(c.fetch8())
		return 8
	case 0xE7:
		c.rst(0x20)
		return 16
	case 0xE8:
		c.reg.sp = c.addSPImm()
		return 16
	case 0xE9:
		c.reg.pc = c.reg.hl()
		return 4
	case 0xEA:
		c.bus.Write(c.fetch16(), c.reg.a)
		return 16
	case 0xEE:
		c.xor(c.fetch8())
		return 8
	case 0xEF:
		c.rst(0x28)
		return 16

	case 0xF0:
		c.reg.a = c.bus.Read(0xFF00 + uint16(c.fetch8()))
		return 12
	case 0xF1:
		c.reg.setAF(c.popStack())
		return 12
	case 0xF2:
		c.reg.a = c.bus.Read(0xFF00 + uint16(c.reg.c))
		return 8
	case 0xF3: // DI
		c.ime = false
		c.imeDelayed = 0
		return 4
	case 0xF5:
		c.pushStack(c.reg.af())
		return 16
	case 0xF6:
		c.or(c.fetch8())
		return 8
	case 0xF7:
		c.rst(0x30)
		return 16
	case 0xF8: // LD HL,SP+r8
		c.reg.setHL(c.addSPImm())
		return 12
	case 0xF9:
		c.reg.sp = c.reg.hl()
		return 8
	case 0xFA:
		c.reg.a = c.bus.Read(c.fetch16())
		return 16
	case 0xFB: // EI
		c.requestEI()
		return 4
	case 0xFE:
		c.cp(c.fetch8())
		return 8
	case 0xFF:
		c.rst(0x38)
		return 16
	}

	switch {
	case opcode >= 0x40 && opcode <= 0x7F: // LD r,r'
		dst := (opcode >> 3) & 0x7
		src := opcode & 0x7
		c.setR8(dst, c.getR8(src))
		if dst == 6 || src == 6 {
			return 8
		}
		return 4

	case opcode >= 0x80 && opcode <= 0x87:
		v, cyc := c.fetchOperand(opcode)
		c.add(v)
		return cyc
	case opcode >= 0x88 && opcode <= 0x8F:
		v, cyc := c.fetchOperand(opcode)
		c.adc(v)
		return cyc
	case opcode >= 0x90 && opcode <= 0x97:
		v, cyc := c.fetchOperand(opcode)
		c.sub(v)
		return cyc
	case opcode >= 0x98 && opcode <= 0x9F:
		v, cyc := c.fetchOperand(opcode)
		c.sbc(v)
		return cyc
	case opcode >= 0xA0 && opcode <= 0xA7:
		v, cyc := c.fetchOperand(opcode)
		c.and(v)
		return cyc
	case opcode >= 0xA8 && opcode <= 0xAF:
		v, cyc := c.fetchOperand(opcode)
		c.xor(v)
		return cyc
	case opcode >= 0xB0 && opcode <= 0xB7:
		v, cyc := c.fetchOperand(opcode)
		c.or(v)
		return cyc
	case opcode >= 0xB8 && opcode <= 0xBF:
		v, cyc := c.fetchOperand(opcode)
		c.cp(v)
		return cyc
	}

	// Illegal/unused opcode (0xD3,0xDB,0xDD,0xE3,0xE4,0xEB-0xED,0xF4,0xFC,0xFD):
	// real hardware locks up. We treat it as a 4-cycle no-op so a CPU
	// running stray code does not crash the emulator outright.
	return 4
}

// fetchOperand returns the register/memory operand for the ALU-group
// opcodes (0x80-0xBF) together with its cycle cost.
func (c *CPU) fetchOperand(opcode uint8) (uint8, int) {
	src := opcode & 0x7
	if src == 6 {
		return c.getR8(6), 8
	}
	return c.getR8(src), 4
}
