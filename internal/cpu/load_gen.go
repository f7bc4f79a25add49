package cpu

import "fmt"

// init populates the LD r,r' grid (0x40-0x7F, with 0x76 reserved for
// HALT), LD r,d8, LD rr,d16, and PUSH/POP — the other uniform grids in
// the unprefixed table.
func init() {
	for dst := uint8(0); dst < 8; dst++ {
		for src := uint8(0); src < 8; src++ {
			opcode := 0x40 + dst*8 + src
			if opcode == 0x76 {
				continue // HALT, defined in misc.go
			}
			d, s := dst, src
			DefineInstruction(opcode, fmt.Sprintf("LD %s,%s", regNames[d], regNames[s]), func(c *CPU) {
				reg8Set(c, d, reg8Get(c, s))
			})
		}

		d := dst
		DefineInstruction(dst*8+0x06, fmt.Sprintf("LD %s,d8", regNames[d]), func(c *CPU) {
			reg8Set(c, d, c.fetch())
		})
	}

	for p := uint8(0); p < 4; p++ {
		pairSP := pairTableSP[p]
		pairAF := pairTableAF[p]
		DefineInstruction(p*16+0x01, fmt.Sprintf("LD %s,d16", pairNamesSP[p]), func(c *CPU) {
			pairSP.set(c, c.fetch16())
		})
		DefineInstruction(0xC1+p*16, fmt.Sprintf("POP %s", pushPopName(p)), func(c *CPU) {
			pairAF.set(c, c.pop())
		})
		DefineInstruction(0xC5+p*16, fmt.Sprintf("PUSH %s", pushPopName(p)), func(c *CPU) {
			c.tick()
			c.push(pairAF.get(c))
		})
	}
}

func pushPopName(p uint8) string {
	if p == 3 {
		return "AF"
	}
	return pairNamesSP[p]
}
