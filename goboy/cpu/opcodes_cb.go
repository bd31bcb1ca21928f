package cpu

// execCB executes one CB-prefixed opcode and returns its full T-cycle cost,
// which already includes the 4 cycles of the 0xCB prefix fetch (8 for
// BIT 0,B); Step returns this value as is and adds nothing for the prefix.
func execCB(c *CPU, opcode uint8) int {
	reg := opcode & 0x7
	isHL := reg == 6

	group := opcode >> 6
	bitIndex := (opcode >> 3) & 0x7

	if group == 0 {
		v := c.getR8(reg)
		var result uint8
		switch bitIndex {
		case 0:
			result = c.rlc(v)
		case 1:
			result = c.rrc(v)
		case 2:
			result = c.rl(v)
		case 3:
			result = c.rr(v)
		case 4:
			result = c.sla(v)
		case 5:
			result = c.sra(v)
		case 6:
			result = c.swap(v)
		case 7:
			result = c.srl(v)
		}
		c.setR8(reg, result)
		if isHL {
			return 16
		}
		return 8
	}

	switch group {
	case 1: // BIT b,r
		c.bitTest(bitIndex, c.getR8(reg))
		if isHL {
			return 12
		}
		return 8
	case 2: // RES b,r
		c.setR8(reg, resBit(bitIndex, c.getR8(reg)))
		if isHL {
			return 16
		}
		return 8
	default: // 3: SET b,r
		c.setR8(reg, setBit(bitIndex, c.getR8(reg)))
		if isHL {
			return 16
		}
		return 8
	}
}
