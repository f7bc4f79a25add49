package cpu

import "fmt"

var regNames = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}
var pairNamesSP = [4]string{"BC", "DE", "HL", "SP"}

// init populates the regular ALU instruction families: the A,r grid
// (0x80-0xBF), the A,d8 immediates (0xC6 + 8*op), 8-bit INC/DEC (the r*8+4
// / r*8+5 grid), 16-bit INC/DEC, and ADD HL,rr. Each family is a uniform
// grid over the same eight-register or four-pair index, so it is
// generated once here instead of written out eighty-odd times by hand.
func init() {
	for opIndex := uint8(0); opIndex < 8; opIndex++ {
		op := aluOps[opIndex]
		name := aluNames[opIndex]

		for srcIndex := uint8(0); srcIndex < 8; srcIndex++ {
			opcode := 0x80 + opIndex*8 + srcIndex
			src := srcIndex
			DefineInstruction(opcode, fmt.Sprintf("%s A,%s", name, regNames[src]), func(c *CPU) {
				op(c, reg8Get(c, src))
			})
		}

		immOpcode := 0xC6 + opIndex*8
		DefineInstruction(immOpcode, fmt.Sprintf("%s A,d8", name), func(c *CPU) {
			op(c, c.fetch())
		})
	}

	for r := uint8(0); r < 8; r++ {
		reg := r
		DefineInstruction(r*8+0x04, fmt.Sprintf("INC %s", regNames[reg]), func(c *CPU) {
			reg8Set(c, reg, c.inc8(reg8Get(c, reg)))
		})
		DefineInstruction(r*8+0x05, fmt.Sprintf("DEC %s", regNames[reg]), func(c *CPU) {
			reg8Set(c, reg, c.dec8(reg8Get(c, reg)))
		})
	}

	for p := uint8(0); p < 4; p++ {
		pair := pairTableSP[p]
		DefineInstruction(p*16+0x03, fmt.Sprintf("INC %s", pairNamesSP[p]), func(c *CPU) {
			pair.set(c, pair.get(c)+1)
			c.tick()
		})
		DefineInstruction(p*16+0x0B, fmt.Sprintf("DEC %s", pairNamesSP[p]), func(c *CPU) {
			pair.set(c, pair.get(c)-1)
			c.tick()
		})
		DefineInstruction(p*16+0x09, fmt.Sprintf("ADD HL,%s", pairNamesSP[p]), func(c *CPU) {
			c.addHL(pair.get(c))
			c.tick()
		})
	}
}
