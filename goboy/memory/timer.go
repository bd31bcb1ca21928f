package memory

import (
	"github.com/kjhall/go-dmgboy/goboy/addr"
	"github.com/kjhall/go-dmgboy/goboy/irq"
)

// Timer models DIV/TIMA/TMA/TAC. DIV increments every 256 T-cycles; TIMA
// increments at the frequency TAC selects and, on overflow, reloads from
// TMA and requests a Timer interrupt.
type Timer struct {
	div  uint8
	tima uint8
	tma  uint8
	tac  uint8

	divPrescaler  uint16
	timaPrescaler uint16
}

// divisors maps TAC's low two bits to the T-cycle period per TIMA tick.
var divisors = [4]uint16{1024, 16, 64, 256}

// NewTimer returns a Timer with all registers cleared.
func NewTimer() *Timer {
	return &Timer{}
}

// Step advances the timer by n T-cycles, the cost of the instruction the
// CPU just executed, and requests a Timer interrupt on irqCtl when TIMA
// overflows.
func (t *Timer) Step(n int, irqCtl *irq.Controller) {
	t.divPrescaler += uint16(n)
	for t.divPrescaler >= 256 {
		t.divPrescaler -= 256
		t.div++
	}

	if t.tac&0x04 == 0 {
		return
	}

	period := divisors[t.tac&0x03]
	t.timaPrescaler += uint16(n)
	for t.timaPrescaler >= period {
		t.timaPrescaler -= period
		if t.tima == 0xFF {
			t.tima = t.tma
			irqCtl.RequestTimer()
		} else {
			t.tima++
		}
	}
}

// Read dispatches a read to one of the four timer registers.
func (t *Timer) Read(address uint16) uint8 {
	switch address {
	case addr.DIV:
		return t.div
	case addr.TIMA:
		return t.tima
	case addr.TMA:
		return t.tma
	case addr.TAC:
		return t.tac
	default:
		return 0xFF
	}
}

// Write dispatches a write to one of the four timer registers. Writing to
// DIV resets both the visible register and the internal prescaler to 0.
func (t *Timer) Write(address uint16, value uint8) {
	switch address {
	case addr.DIV:
		t.div = 0
		t.divPrescaler = 0
	case addr.TIMA:
		t.tima = value
	case addr.TMA:
		t.tma = value
	case addr.TAC:
		t.tac = value
	}
}
