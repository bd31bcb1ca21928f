package audio

import "github.com/kjhall/go-dmgboy/goboy/addr"

// ReadRegister reads one of the APU's hardware registers (0xFF10-0xFF3F).
func (a *APU) ReadRegister(address uint16) uint8 {
	switch address {
	case addr.NR10:
		return a.nr10 | 0x80
	case addr.NR11:
		return a.nr11 | 0x3F
	case addr.NR12:
		return a.nr12
	case addr.NR13:
		return 0xFF
	case addr.NR14:
		return a.nr14 | 0xBF

	case addr.NR21:
		return a.nr21 | 0x3F
	case addr.NR22:
		return a.nr22
	case addr.NR23:
		return 0xFF
	case addr.NR24:
		return a.nr24 | 0xBF

	case addr.NR30:
		return a.nr30 | 0x7F
	case addr.NR31:
		return 0xFF
	case addr.NR32:
		return a.nr32 | 0x9F
	case addr.NR33:
		return 0xFF
	case addr.NR34:
		return a.nr34 | 0xBF

	case addr.NR41:
		return 0xFF
	case addr.NR42:
		return a.nr42
	case addr.NR43:
		return a.nr43
	case addr.NR44:
		return a.nr44 | 0xBF

	case addr.NR50:
		return a.nr50
	case addr.NR51:
		return a.nr51
	case addr.NR52:
		return a.statusByte()

	default:
		if address >= addr.WaveRAMStart && address <= addr.WaveRAMEnd {
			return a.ch3.ram[address-addr.WaveRAMStart]
		}
		return 0xFF
	}
}

func (a *APU) statusByte() uint8 {
	v := uint8(0x70)
	if a.powerOn {
		v |= 0x80
	}
	if a.ch1.enabled {
		v |= 0x01
	}
	if a.ch2.enabled {
		v |= 0x02
	}
	if a.ch3.enabled {
		v |= 0x04
	}
	if a.ch4.enabled {
		v |= 0x08
	}
	return v
}

// WriteRegister writes one of the APU's hardware registers. While powered
// off, all writes except to NR52 (power) and wave RAM are ignored, as on
// real hardware.
func (a *APU) WriteRegister(address uint16, value uint8) {
	if address >= addr.WaveRAMStart && address <= addr.WaveRAMEnd {
		a.ch3.ram[address-addr.WaveRAMStart] = value
		return
	}

	if !a.powerOn && address != addr.NR52 {
		return
	}

	switch address {
	case addr.NR10:
		a.nr10 = value
		a.ch1.sweepPeriod = (value >> 4) & 0x7
		a.ch1.sweepDown = value&0x08 != 0
		a.ch1.sweepShift = value & 0x7
	case addr.NR11:
		a.nr11 = value
		a.ch1.duty = value >> 6
		a.ch1.length = 64 - int(value&0x3F)
	case addr.NR12:
		a.nr12 = value
		a.ch1.dacEnabled = value&0xF8 != 0
		a.ch1.envelopeUp = value&0x08 != 0
		a.ch1.envelopePeriod = value & 0x7
		a.ch1.volumeFromRegister = value >> 4
		if !a.ch1.dacEnabled {
			a.ch1.enabled = false
		}
	case addr.NR13:
		a.nr13 = value
		a.ch1.freq = (a.ch1.freq & 0x700) | uint16(value)
	case addr.NR14:
		a.nr14 = value
		a.ch1.freq = (a.ch1.freq & 0xFF) | (uint16(value&0x7) << 8)
		a.ch1.lengthEnable = value&0x40 != 0
		if value&0x80 != 0 {
			a.triggerPulse(&a.ch1, true)
		}

	case addr.NR21:
		a.nr21 = value
		a.ch2.duty = value >> 6
		a.ch2.length = 64 - int(value&0x3F)
	case addr.NR22:
		a.nr22 = value
		a.ch2.dacEnabled = value&0xF8 != 0
		a.ch2.envelopeUp = value&0x08 != 0
		a.ch2.envelopePeriod = value & 0x7
		a.ch2.volumeFromRegister = value >> 4
		if !a.ch2.dacEnabled {
			a.ch2.enabled = false
		}
	case addr.NR23:
		a.nr23 = value
		a.ch2.freq = (a.ch2.freq & 0x700) | uint16(value)
	case addr.NR24:
		a.nr24 = value
		a.ch2.freq = (a.ch2.freq & 0xFF) | (uint16(value&0x7) << 8)
		a.ch2.lengthEnable = value&0x40 != 0
		if value&0x80 != 0 {
			a.triggerPulse(&a.ch2, false)
		}

	case addr.NR30:
		a.nr30 = value
		a.ch3.dacEnabled = value&0x80 != 0
		if !a.ch3.dacEnabled {
			a.ch3.enabled = false
		}
	case addr.NR31:
		a.nr31 = value
		a.ch3.length = 256 - int(value)
	case addr.NR32:
		a.nr32 = value
		a.ch3.outputLevel = (value >> 5) & 0x3
	case addr.NR33:
		a.nr33 = value
		a.ch3.freq = (a.ch3.freq & 0x700) | uint16(value)
	case addr.NR34:
		a.nr34 = value
		a.ch3.freq = (a.ch3.freq & 0xFF) | (uint16(value&0x7) << 8)
		a.ch3.lengthEnable = value&0x40 != 0
		if value&0x80 != 0 {
			a.triggerWave()
		}

	case addr.NR41:
		a.nr41 = value
		a.ch4.length = 64 - int(value&0x3F)
	case addr.NR42:
		a.nr42 = value
		a.ch4.dacEnabled = value&0xF8 != 0
		a.ch4.envelopeUp = value&0x08 != 0
		a.ch4.envelopePeriod = value & 0x7
		a.ch4.volumeFromRegister = value >> 4
		if !a.ch4.dacEnabled {
			a.ch4.enabled = false
		}
	case addr.NR43:
		a.nr43 = value
		a.ch4.shiftClock = value >> 4
		a.ch4.widthMode = value&0x08 != 0
		a.ch4.divisorCode = value & 0x7
	case addr.NR44:
		a.nr44 = value
		a.ch4.lengthEnable = value&0x40 != 0
		if value&0x80 != 0 {
			a.triggerNoise()
		}

	case addr.NR50:
		a.nr50 = value
	case addr.NR51:
		a.nr51 = value
		a.ch1.left, a.ch1.right = value&0x10 != 0, value&0x01 != 0
		a.ch2.left, a.ch2.right = value&0x20 != 0, value&0x02 != 0
		a.ch3.left, a.ch3.right = value&0x40 != 0, value&0x04 != 0
		a.ch4.left, a.ch4.right = value&0x80 != 0, value&0x08 != 0
	case addr.NR52:
		wasOn := a.powerOn
		a.powerOn = value&0x80 != 0
		if wasOn && !a.powerOn {
			a.powerOff()
		}
	}
}

func (a *APU) powerOff() {
	a.ch1 = pulseChannel{}
	a.ch2 = pulseChannel{}
	ram := a.ch3.ram
	a.ch3 = waveChannel{ram: ram}
	a.ch4 = noiseChannel{}
	a.nr10, a.nr11, a.nr12, a.nr13, a.nr14 = 0, 0, 0, 0, 0
	a.nr21, a.nr22, a.nr23, a.nr24 = 0, 0, 0, 0
	a.nr30, a.nr31, a.nr32, a.nr33, a.nr34 = 0, 0, 0, 0, 0
	a.nr41, a.nr42, a.nr43, a.nr44 = 0, 0, 0, 0
	a.nr50, a.nr51 = 0, 0
}

func (a *APU) triggerPulse(c *pulseChannel, hasSweep bool) {
	c.enabled = c.dacEnabled
	if c.length == 0 {
		c.length = 64
	}
	c.freqTimer = periodFromFreq(c.freq)
	c.envelopeCounter = c.envelopePeriod
	c.volume = c.volumeFromRegister

	if hasSweep {
		c.shadowFreq = c.freq
		c.sweepTimer = sweepPeriodOrEight(c.sweepPeriod)
		c.sweepEnabled = c.sweepPeriod != 0 || c.sweepShift != 0
		if c.sweepShift != 0 {
			if _, overflow := sweepCalc(c.shadowFreq, c.sweepShift, c.sweepDown); overflow {
				c.enabled = false
			}
		}
	}
}

func (a *APU) triggerWave() {
	a.ch3.enabled = a.ch3.dacEnabled
	if a.ch3.length == 0 {
		a.ch3.length = 256
	}
	a.ch3.freqTimer = 2 * (2048 - int(a.ch3.freq))
	a.ch3.position = 0
}

func (a *APU) triggerNoise() {
	a.ch4.enabled = a.ch4.dacEnabled
	if a.ch4.length == 0 {
		a.ch4.length = 64
	}
	a.ch4.lfsr = 0x7FFF
	a.ch4.envelopeCounter = a.ch4.envelopePeriod
	a.ch4.volume = a.ch4.volumeFromRegister
	divisors := [8]int{8, 16, 32, 48, 64, 80, 96, 112}
	a.ch4.freqTimer = divisors[a.ch4.divisorCode] << a.ch4.shiftClock
}
