package cpu

import "github.com/kjhall/go-dmgboy/goboy/bit"

// Flag is one of the four bits of the F register.
type Flag uint8

const (
	flagZ Flag = 0x80
	flagN Flag = 0x40
	flagH Flag = 0x20
	flagC Flag = 0x10
)

// registers holds the eight 8-bit registers plus SP/PC. F's low nibble is
// always zero; every write to f is masked.
type registers struct {
	a, b, c, d, e, h, l, f uint8
	sp, pc                 uint16
}

func (r *registers) af() uint16 { return bit.Combine(r.a, r.f) }
func (r *registers) bc() uint16 { return bit.Combine(r.b, r.c) }
func (r *registers) de() uint16 { return bit.Combine(r.d, r.e) }
func (r *registers) hl() uint16 { return bit.Combine(r.h, r.l) }

func (r *registers) setAF(v uint16) {
	r.a = bit.High(v)
	r.f = bit.Low(v) & 0xF0
}
func (r *registers) setBC(v uint16) { r.b, r.c = bit.High(v), bit.Low(v) }
func (r *registers) setDE(v uint16) { r.d, r.e = bit.High(v), bit.Low(v) }
func (r *registers) setHL(v uint16) { r.h, r.l = bit.High(v), bit.Low(v) }

func (r *registers) flag(f Flag) bool { return r.f&uint8(f) != 0 }

func (r *registers) setFlag(f Flag, on bool) {
	if on {
		r.f |= uint8(f)
	} else {
		r.f &^= uint8(f)
	}
}
