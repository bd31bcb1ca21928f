package cpu

import "github.com/kjhall/go-dmgboy/goboy/alu"

func (c *CPU) pushStack(v uint16) {
	c.reg.sp--
	c.bus.Write(c.reg.sp, uint8(v>>8))
	c.reg.sp--
	c.bus.Write(c.reg.sp, uint8(v))
}

func (c *CPU) popStack() uint16 {
	lo := c.bus.Read(c.reg.sp)
	c.reg.sp++
	hi := c.bus.Read(c.reg.sp)
	c.reg.sp++
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) inc8(v uint8) uint8 {
	result := v + 1
	c.reg.setFlag(flagZ, result == 0)
	c.reg.setFlag(flagN, false)
	c.reg.setFlag(flagH, v&0xF == 0xF)
	return result
}

func (c *CPU) dec8(v uint8) uint8 {
	result := v - 1
	c.reg.setFlag(flagZ, result == 0)
	c.reg.setFlag(flagN, true)
	c.reg.setFlag(flagH, v&0xF == 0)
	return result
}

func (c *CPU) add(v uint8) {
	result, carry, half := alu.Add8(c.reg.a, v)
	c.reg.a = result
	c.reg.setFlag(flagZ, result == 0)
	c.reg.setFlag(flagN, false)
	c.reg.setFlag(flagH, half)
	c.reg.setFlag(flagC, carry)
}

func (c *CPU) adc(v uint8) {
	var carryIn uint8
	if c.reg.flag(flagC) {
		carryIn = 1
	}
	result, carry, half := alu.Add8Carry(c.reg.a, v, carryIn)
	c.reg.a = result
	c.reg.setFlag(flagZ, result == 0)
	c.reg.setFlag(flagN, false)
	c.reg.setFlag(flagH, half)
	c.reg.setFlag(flagC, carry)
}

func (c *CPU) sub(v uint8) {
	result, borrow, half := alu.Sub8(c.reg.a, v)
	c.reg.a = result
	c.reg.setFlag(flagZ, result == 0)
	c.reg.setFlag(flagN, true)
	c.reg.setFlag(flagH, half)
	c.reg.setFlag(flagC, borrow)
}

func (c *CPU) sbc(v uint8) {
	var carryIn uint8
	if c.reg.flag(flagC) {
		carryIn = 1
	}
	result, borrow, half := alu.Sub8Carry(c.reg.a, v, carryIn)
	c.reg.a = result
	c.reg.setFlag(flagZ, result == 0)
	c.reg.setFlag(flagN, true)
	c.reg.setFlag(flagH, half)
	c.reg.setFlag(flagC, borrow)
}

func (c *CPU) and(v uint8) {
	c.reg.a &= v
	c.reg.setFlag(flagZ, c.reg.a == 0)
	c.reg.setFlag(flagN, false)
	c.reg.setFlag(flagH, true)
	c.reg.setFlag(flagC, false)
}

func (c *CPU) or(v uint8) {
	c.reg.a |= v
	c.reg.setFlag(flagZ, c.reg.a == 0)
	c.reg.setFlag(flagN, false)
	c.reg.setFlag(flagH, false)
	c.reg.setFlag(flagC, false)
}

func (c *CPU) xor(v uint8) {
	c.reg.a ^= v
	c.reg.setFlag(flagZ, c.reg.a == 0)
	c.reg.setFlag(flagN, false)
	c.reg.setFlag(flagH, false)
	c.reg.setFlag(flagC, false)
}

func (c *CPU) cp(v uint8) {
	_, borrow, half := alu.Sub8(c.reg.a, v)
	c.reg.setFlag(flagZ, c.reg.a == v)
	c.reg.setFlag(flagN, true)
	c.reg.setFlag(flagH, half)
	c.reg.setFlag(flagC, borrow)
}

func (c *CPU) addHL(v uint16) {
	result, carry, half := alu.Add16(c.reg.hl(), v)
	c.reg.setHL(result)
	c.reg.setFlag(flagN, false)
	c.reg.setFlag(flagH, half)
	c.reg.setFlag(flagC, carry)
}

// addSPImm implements both `ADD SP, r8` and `LD HL, SP+r8`: Z and N are
// always cleared, and carry/half-carry come from adding the signed offset's
// low byte as an unsigned 8-bit add to SP's low byte.
func (c *CPU) addSPImm() uint16 {
	offset := c.fetch8()
	result, carry, half := alu.AddSigned8ToSP(c.reg.sp, offset)
	c.reg.setFlag(flagZ, false)
	c.reg.setFlag(flagN, false)
	c.reg.setFlag(flagH, half)
	c.reg.setFlag(flagC, carry)
	return result
}

func (c *CPU) rlc(v uint8) uint8 {
	carry := v&0x80 != 0
	result := v<<1 | v>>7
	c.reg.setFlag(flagZ, result == 0)
	c.reg.setFlag(flagN, false)
	c.reg.setFlag(flagH, false)
	c.reg.setFlag(flagC, carry)
	return result
}

func (c *CPU) rrc(v uint8) uint8 {
	carry := v&0x01 != 0
	result := v>>1 | v<<7
	c.reg.setFlag(flagZ, result == 0)
	c.reg.setFlag(flagN, false)
	c.reg.setFlag(flagH, false)
	c.reg.setFlag(flagC, carry)
	return result
}

func (c *CPU) rl(v uint8) uint8 {
	var carryIn uint8
	if c.reg.flag(flagC) {
		carryIn = 1
	}
	carryOut := v&0x80 != 0
	result := v<<1 | carryIn
	c.reg.setFlag(flagZ, result == 0)
	c.reg.setFlag(flagN, false)
	c.reg.setFlag(flagH, false)
	c.reg.setFlag(flagC, carryOut)
	return result
}

func (c *CPU) rr(v uint8) uint8 {
	var carryIn uint8
	if c.reg.flag(flagC) {
		carryIn = 1
	}
	carryOut := v&0x01 != 0
	result := v>>1 | carryIn<<7
	c.reg.setFlag(flagZ, result == 0)
	c.reg.setFlag(flagN, false)
	c.reg.setFlag(flagH, false)
	c.reg.setFlag(flagC, carryOut)
	return result
}

func (c *CPU) sla(v uint8) uint8 {
	carry := v&0x80 != 0
	result := v << 1
	c.reg.setFlag(flagZ, result == 0)
	c.reg.setFlag(flagN, false)
	c.reg.setFlag(flagH, false)
	c.reg.setFlag(flagC, carry)
	return result
}

func (c *CPU) sra(v uint8) uint8 {
	carry := v&0x01 != 0
	result := (v & 0x80) | (v >> 1)
	c.reg.setFlag(flagZ, result == 0)
	c.reg.setFlag(flagN, false)
	c.reg.setFlag(flagH, false)
	c.reg.setFlag(flagC, carry)
	return result
}

func (c *CPU) srl(v uint8) uint8 {
	carry := v&0x01 != 0
	result := v >> 1
	c.reg.setFlag(flagZ, result == 0)
	c.reg.setFlag(flagN, false)
	c.reg.setFlag(flagH, false)
	c.reg.setFlag(flagC, carry)
	return result
}

func (c *CPU) swap(v uint8) uint8 {
	result := v<<4 | v>>4
	c.reg.setFlag(flagZ, result == 0)
	c.reg.setFlag(flagN, false)
	c.reg.setFlag(flagH, false)
	c.reg.setFlag(flagC, false)
	return result
}

func (c *CPU) bitTest(index uint8, v uint8) {
	c.reg.setFlag(flagZ, v&(1<<index) == 0)
	c.reg.setFlag(flagN, false)
	c.reg.setFlag(flagH, true)
}

func setBit(index uint8, v uint8) uint8 { return v | (1 << index) }
func resBit(index uint8, v uint8) uint8 { return v &^ (1 << index) }

// daa adjusts A into packed BCD after an add or subtract, per the previous
// operation's N/H/C flags.
func (c *CPU) daa() {
	a := c.reg.a
	var adjust uint8
	carry := c.reg.flag(flagC)

	if c.reg.flag(flagN) {
		if c.reg.flag(flagH) {
			adjust += 0x06
		}
		if carry {
			adjust += 0x60
		}
		a -= adjust
	} else {
		if c.reg.flag(flagH) || a&0xF > 9 {
			adjust += 0x06
		}
		if carry || a > 0x99 {
			adjust += 0x60
			carry = true
		}
		a += adjust
	}

	c.reg.a = a
	c.reg.setFlag(flagZ, a == 0)
	c.reg.setFlag(flagH, false)
	c.reg.setFlag(flagC, carry)
}

func (c *CPU) cpl() {
	c.reg.a = ^c.reg.a
	c.reg.setFlag(flagN, true)
	c.reg.setFlag(flagH, true)
}

func (c *CPU) scf() {
	c.reg.setFlag(flagN, false)
	c.reg.setFlag(flagH, false)
	c.reg.setFlag(flagC, true)
}

func (c *CPU) ccf() {
	c.reg.setFlag(flagN, false)
	c.reg.setFlag(flagH, false)
	c.reg.setFlag(flagC, !c.reg.flag(flagC))
}

func (c *CPU) jrIf(cond bool) int {
	offset := c.fetch8()
	if cond {
		c.reg.pc += uint16(int16(int8(offset)))
		return 12
	}
	return 8
}

func (c *CPU) jpIf(cond bool) int {
	target := c.fetch16()
	if cond {
		c.reg.pc = target
		return 16
	}
	return 12
}

func (c *CPU) callIf(cond bool) int {
	target := c.fetch16()
	if cond {
		c.pushStack(c.reg.pc)
		c.reg.pc = target
		return 24
	}
	return 12
}

func (c *CPU) retIf(cond bool) int {
	if cond {
		c.reg.pc = c.popStack()
		return 20
	}
	return 8
}

func (c *CPU) rst(target uint16) {
	c.pushStack(c.reg.pc)
	c.reg.pc = target
}
