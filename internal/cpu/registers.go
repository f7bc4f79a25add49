package cpu

// Register is a single 8-bit register.
type Register = uint8

// Flag bits within F, the low nibble of which is always zero.
const (
	FlagZero      uint8 = 1 << 7
	FlagSubtract  uint8 = 1 << 6
	FlagHalfCarry uint8 = 1 << 5
	FlagCarry     uint8 = 1 << 4
)

// RegisterPair addresses two 8-bit registers as one 16-bit value, high
// byte first (BC, DE, HL, AF).
type RegisterPair struct {
	High, Low *uint8
}

func (p *RegisterPair) Uint16() uint16 {
	return uint16(*p.High)<<8 | uint16(*p.Low)
}

func (p *RegisterPair) SetUint16(v uint16) {
	*p.High = uint8(v >> 8)
	*p.Low = uint8(v)
}

// Registers holds the CPU's eight 8-bit registers and the register-pair
// views over them.
type Registers struct {
	A, F uint8
	B, C uint8
	D, E uint8
	H, L uint8

	AF, BC, DE, HL *RegisterPair
}

func (r *Registers) init() {
	r.AF = &RegisterPair{&r.A, &r.F}
	r.BC = &RegisterPair{&r.B, &r.C}
	r.DE = &RegisterPair{&r.D, &r.E}
	r.HL = &RegisterPair{&r.H, &r.L}
}

func (r *Registers) setFlag(f uint8)   { r.F |= f }
func (r *Registers) clearFlag(f uint8) { r.F &^= f }
func (r *Registers) isFlagSet(f uint8) bool { return r.F&f != 0 }

func (r *Registers) setFlagIf(cond bool, f uint8) {
	if cond {
		r.setFlag(f)
	} else {
		r.clearFlag(f)
	}
}
