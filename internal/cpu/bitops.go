package cpu

import "fmt"

// The eight CB-prefixed rotate/shift operations, in opcode-grid order:
// RLC, RRC, RL, RR, SLA, SRA, SWAP, SRL. Each returns the result and the
// carry-out bit; the caller (the CB grid below) sets Z/N/H/C uniformly.
type shiftOp func(c *CPU, v uint8) (result uint8, carryOut bool)

func rlc(c *CPU, v uint8) (uint8, bool) {
	carryOut := v&0x80 != 0
	result := v<<1 | v>>7
	return result, carryOut
}

func rrc(c *CPU, v uint8) (uint8, bool) {
	carryOut := v&1 != 0
	result := v>>1 | v<<7
	return result, carryOut
}

func rl(c *CPU, v uint8) (uint8, bool) {
	in := uint8(0)
	if c.isFlagSet(FlagCarry) {
		in = 1
	}
	carryOut := v&0x80 != 0
	return v<<1 | in, carryOut
}

func rr(c *CPU, v uint8) (uint8, bool) {
	in := uint8(0)
	if c.isFlagSet(FlagCarry) {
		in = 0x80
	}
	carryOut := v&1 != 0
	return v>>1 | in, carryOut
}

func sla(c *CPU, v uint8) (uint8, bool) {
	return v << 1, v&0x80 != 0
}

func sra(c *CPU, v uint8) (uint8, bool) {
	return v>>1 | v&0x80, v&1 != 0
}

func swap(c *CPU, v uint8) (uint8, bool) {
	return v<<4 | v>>4, false
}

func srl(c *CPU, v uint8) (uint8, bool) {
	return v >> 1, v&1 != 0
}

var shiftOps = [8]shiftOp{rlc, rrc, rl, rr, sla, sra, swap, srl}
var shiftNames = [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SWAP", "SRL"}

// init populates the CB-prefixed table: the eight shift/rotate ops over
// all eight operands, then BIT/RES/SET over all eight bits and operands.
func init() {
	for opIndex := uint8(0); opIndex < 8; opIndex++ {
		op := shiftOps[opIndex]
		name := shiftNames[opIndex]
		for r := uint8(0); r < 8; r++ {
			opcode := opIndex*8 + r
			reg := r
			DefineInstructionCB(opcode, fmt.Sprintf("%s %s", name, regNames[reg]), func(c *CPU) {
				result, carryOut := op(c, reg8Get(c, reg))
				reg8Set(c, reg, result)
				c.F = 0
				c.setFlagIf(result == 0, FlagZero)
				c.setFlagIf(carryOut, FlagCarry)
			})
		}
	}

	for bit := uint8(0); bit < 8; bit++ {
		for r := uint8(0); r < 8; r++ {
			b, reg := bit, r

			DefineInstructionCB(0x40+b*8+reg, fmt.Sprintf("BIT %d,%s", b, regNames[reg]), func(c *CPU) {
				v := reg8Get(c, reg)
				c.setFlagIf(v&(1<<b) == 0, FlagZero)
				c.clearFlag(FlagSubtract)
				c.setFlag(FlagHalfCarry)
			})

			DefineInstructionCB(0x80+b*8+reg, fmt.Sprintf("RES %d,%s", b, regNames[reg]), func(c *CPU) {
				reg8Set(c, reg, reg8Get(c, reg)&^(1<<b))
			})

			DefineInstructionCB(0xC0+b*8+reg, fmt.Sprintf("SET %d,%s", b, regNames[reg]), func(c *CPU) {
				reg8Set(c, reg, reg8Get(c, reg)|1<<b)
			})
		}
	}
}
