// Package irq models the DMG interrupt controller: a pending-interrupt
// flag byte (IF) and an enable byte (IE), both addressable by the MMU.
// The master enable bit (IME) is CPU-private and lives in the cpu package.
package irq

import "github.com/kjhall/go-dmgboy/goboy/addr"

// Controller holds the IF and IE registers. It has no back-references and
// raises nothing itself; peripherals call the Request* setters on the
// *Controller passed to their Step or Press methods.
type Controller struct {
	flags  uint8 // IF
	enable uint8 // IE
}

// New returns a Controller with both registers cleared.
func New() *Controller {
	return &Controller{}
}

// RequestVBlank sets the VBlank pending bit.
func (c *Controller) RequestVBlank() { c.set(addr.VBlankInterrupt) }

// RequestLCDStat sets the LCD-STAT pending bit.
func (c *Controller) RequestLCDStat() { c.set(addr.LCDStatInterrupt) }

// RequestTimer sets the Timer pending bit.
func (c *Controller) RequestTimer() { c.set(addr.TimerInterrupt) }

// RequestSerial sets the Serial pending bit.
func (c *Controller) RequestSerial() { c.set(addr.SerialInterrupt) }

// RequestJoypad sets the Joypad pending bit.
func (c *Controller) RequestJoypad() { c.set(addr.JoypadInterrupt) }

func (c *Controller) set(i addr.Interrupt) {
	c.flags |= i.Bit()
}

// Flags returns the raw IF byte.
func (c *Controller) Flags() uint8 { return c.flags }

// SetFlags overwrites the raw IF byte (used by the MMU on a direct write,
// and by the CPU to clear a bit when it services an interrupt).
func (c *Controller) SetFlags(value uint8) { c.flags = value }

// Enable returns the raw IE byte.
func (c *Controller) Enable() uint8 { return c.enable }

// SetEnable overwrites the raw IE byte.
func (c *Controller) SetEnable(value uint8) { c.enable = value }

// Pending returns the bitmask of interrupts that are both requested and
// enabled, regardless of IME.
func (c *Controller) Pending() uint8 {
	return c.flags & c.enable & 0x1F
}
