package cpu

// The ALU helpers below implement the eight A,r/A,d8 operations and the
// 8-/16-bit INC/DEC family. Flag semantics follow the ISA table: INC/DEC
// never touch the carry flag; half-carry is computed on bit 3 for 8-bit
// arithmetic and bit 11 for 16-bit ADD HL,rr.

func (c *CPU) add8(v uint8) {
	sum := uint16(c.A) + uint16(v)
	c.setFlagIf((c.A&0xF)+(v&0xF) > 0xF, FlagHalfCarry)
	c.setFlagIf(sum > 0xFF, FlagCarry)
	c.A = uint8(sum)
	c.clearFlag(FlagSubtract)
	c.setFlagIf(c.A == 0, FlagZero)
}

func (c *CPU) adc8(v uint8) {
	carry := uint16(0)
	if c.isFlagSet(FlagCarry) {
		carry = 1
	}
	sum := uint16(c.A) + uint16(v) + carry
	c.setFlagIf((c.A&0xF)+(v&0xF)+uint8(carry) > 0xF, FlagHalfCarry)
	c.setFlagIf(sum > 0xFF, FlagCarry)
	c.A = uint8(sum)
	c.clearFlag(FlagSubtract)
	c.setFlagIf(c.A == 0, FlagZero)
}

func (c *CPU) sub8(v uint8) {
	c.setFlagIf(c.A&0xF < v&0xF, FlagHalfCarry)
	c.setFlagIf(uint16(c.A) < uint16(v), FlagCarry)
	c.A -= v
	c.setFlag(FlagSubtract)
	c.setFlagIf(c.A == 0, FlagZero)
}

func (c *CPU) sbc8(v uint8) {
	carry := uint8(0)
	if c.isFlagSet(FlagCarry) {
		carry = 1
	}
	result := int16(c.A) - int16(v) - int16(carry)
	c.setFlagIf(int16(c.A&0xF)-int16(v&0xF)-int16(carry) < 0, FlagHalfCarry)
	c.setFlagIf(result < 0, FlagCarry)
	c.A = uint8(result)
	c.setFlag(FlagSubtract)
	c.setFlagIf(c.A == 0, FlagZero)
}

func (c *CPU) and8(v uint8) {
	c.A &= v
	c.F = 0
	c.setFlagIf(c.A == 0, FlagZero)
	c.setFlag(FlagHalfCarry)
}

func (c *CPU) xor8(v uint8) {
	c.A ^= v
	c.F = 0
	c.setFlagIf(c.A == 0, FlagZero)
}

func (c *CPU) or8(v uint8) {
	c.A |= v
	c.F = 0
	c.setFlagIf(c.A == 0, FlagZero)
}

func (c *CPU) cp8(v uint8) {
	c.setFlagIf(c.A&0xF < v&0xF, FlagHalfCarry)
	c.setFlagIf(uint16(c.A) < uint16(v), FlagCarry)
	c.setFlagIf(c.A == v, FlagZero)
	c.setFlag(FlagSubtract)
}

// aluOp is one of the eight A,x operations, shared by the A,r grid
// (0x80-0xBF), the A,d8 immediate grid (0xC6+8i), and any caller that has
// already resolved its operand byte.
type aluOp func(c *CPU, v uint8)

var aluOps = [8]aluOp{
	func(c *CPU, v uint8) { c.add8(v) },
	func(c *CPU, v uint8) { c.adc8(v) },
	func(c *CPU, v uint8) { c.sub8(v) },
	func(c *CPU, v uint8) { c.sbc8(v) },
	func(c *CPU, v uint8) { c.and8(v) },
	func(c *CPU, v uint8) { c.xor8(v) },
	func(c *CPU, v uint8) { c.or8(v) },
	func(c *CPU, v uint8) { c.cp8(v) },
}

var aluNames = [8]string{"ADD", "ADC", "SUB", "SBC", "AND", "XOR", "OR", "CP"}

func (c *CPU) inc8(v uint8) uint8 {
	r := v + 1
	c.setFlagIf(r == 0, FlagZero)
	c.clearFlag(FlagSubtract)
	c.setFlagIf(v&0xF == 0xF, FlagHalfCarry)
	return r
}

func (c *CPU) dec8(v uint8) uint8 {
	r := v - 1
	c.setFlagIf(r == 0, FlagZero)
	c.setFlag(FlagSubtract)
	c.setFlagIf(v&0xF == 0, FlagHalfCarry)
	return r
}

func (c *CPU) addHL(v uint16) {
	hl := c.HL.Uint16()
	sum := uint32(hl) + uint32(v)
	c.setFlagIf((hl&0xFFF)+(v&0xFFF) > 0xFFF, FlagHalfCarry)
	c.setFlagIf(sum > 0xFFFF, FlagCarry)
	c.clearFlag(FlagSubtract)
	c.HL.SetUint16(uint16(sum))
}

// addSPSigned implements both ADD SP,e and the operand half of LD HL,SP+e:
// a signed 8-bit displacement added to SP, flags computed as unsigned
// byte arithmetic on SP's low byte (matching hardware, not the signed
// 16-bit sum one might expect).
func (c *CPU) addSPSigned(e int8) uint16 {
	sp := c.SP
	offset := uint16(int16(e))
	result := sp + offset
	c.F = 0
	c.setFlagIf((sp&0xF)+(offset&0xF) > 0xF, FlagHalfCarry)
	c.setFlagIf((sp&0xFF)+(offset&0xFF) > 0xFF, FlagCarry)
	return result
}

// daa re-encodes A as two BCD digits after an 8-bit add/subtract, using N,
// H, and C to pick the correction. Grounded on the standard LR35902
// correction table: add 0x06/0x60 on a half/full low-to-high carry when
// adding, subtract the same when N is set.
func (c *CPU) daa() {
	subtract := c.isFlagSet(FlagSubtract)
	var correction uint8

	if c.isFlagSet(FlagHalfCarry) || (!subtract && c.A&0xF > 0x9) {
		correction |= 0x06
	}
	carryOut := c.isFlagSet(FlagCarry)
	if c.isFlagSet(FlagCarry) || (!subtract && c.A > 0x99) {
		correction |= 0x60
		carryOut = true
	}

	if subtract {
		c.A -= correction
	} else {
		c.A += correction
	}

	c.clearFlag(FlagHalfCarry)
	c.setFlagIf(carryOut, FlagCarry)
	c.setFlagIf(c.A == 0, FlagZero)
}
