package memory

import (
	"github.com/kjhall/go-dmgboy/goboy/bit"
	"github.com/kjhall/go-dmgboy/goboy/irq"
)

// Button identifies one of the eight Game Boy buttons.
type Button uint8

const (
	ButtonRight Button = iota
	ButtonLeft
	ButtonUp
	ButtonDown
	ButtonA
	ButtonB
	ButtonSelect
	ButtonStart
)

// Joypad models the P1 register: a row-selected button matrix. Both
// nibbles are pressed-low (a pressed button clears its bit); reading P1
// returns the low nibble of whichever row selection bits (4-5) choose.
type Joypad struct {
	dirs     uint8 // low nibble: right,left,up,down
	actions  uint8 // low nibble: A,B,select,start
	selector uint8 // raw bits 4-5 as last written
}

// NewJoypad returns a Joypad with no buttons pressed.
func NewJoypad() *Joypad {
	return &Joypad{dirs: 0x0F, actions: 0x0F}
}

// directionBit/actionBit map a Button to its bit index within its nibble.
func directionBit(b Button) (uint8, bool) {
	switch b {
	case ButtonRight:
		return 0, true
	case ButtonLeft:
		return 1, true
	case ButtonUp:
		return 2, true
	case ButtonDown:
		return 3, true
	default:
		return 0, false
	}
}

func actionBit(b Button) (uint8, bool) {
	switch b {
	case ButtonA:
		return 0, true
	case ButtonB:
		return 1, true
	case ButtonSelect:
		return 2, true
	case ButtonStart:
		return 3, true
	default:
		return 0, false
	}
}

// Press clears the button's bit (pressed-low) and requests a Joypad
// interrupt.
func (j *Joypad) Press(b Button, irqCtl *irq.Controller) {
	if idx, ok := directionBit(b); ok {
		j.dirs = bit.Reset(idx, j.dirs)
	} else if idx, ok := actionBit(b); ok {
		j.actions = bit.Reset(idx, j.actions)
	}
	irqCtl.RequestJoypad()
}

// Release sets the button's bit back to released.
func (j *Joypad) Release(b Button) {
	if idx, ok := directionBit(b); ok {
		j.dirs = bit.Set(idx, j.dirs)
	} else if idx, ok := actionBit(b); ok {
		j.actions = bit.Set(idx, j.actions)
	}
}

// WriteSelect applies a write to P1: only bits 4-5 (the row selectors) are
// writable.
func (j *Joypad) WriteSelect(value uint8) {
	j.selector = value & 0b0011_0000
}

// Read returns the current P1 value: bits 6-7 always read 1, bits 4-5
// reflect the last selection write, and bits 0-3 are the selected row (or
// 0xF if neither row is selected).
func (j *Joypad) Read() uint8 {
	selectActions := !bit.IsSet(5, j.selector)
	selectDirs := !bit.IsSet(4, j.selector)

	var low uint8
	switch {
	case selectActions && selectDirs:
		low = j.actions & j.dirs
	case selectActions:
		low = j.actions
	case selectDirs:
		low = j.dirs
	default:
		low = 0x0F
	}

	return 0b1100_0000 | j.selector | (low & 0x0F)
}
