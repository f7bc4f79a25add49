package cpu

import "fmt"

// condition evaluates one of the four branch conditions used by JR, JP,
// CALL, and RET: NZ, Z, NC, C, selected by the 2-bit field at (op>>3)&3.
func (c *CPU) condition(i uint8) bool {
	switch i {
	case 0:
		return !c.isFlagSet(FlagZero)
	case 1:
		return c.isFlagSet(FlagZero)
	case 2:
		return !c.isFlagSet(FlagCarry)
	default:
		return c.isFlagSet(FlagCarry)
	}
}

var condNames = [4]string{"NZ", "Z", "NC", "C"}

func init() {
	DefineInstruction(0x18, "JR e", func(c *CPU) {
		e := int8(c.fetch())
		c.PC = uint16(int32(c.PC) + int32(e))
		c.tick()
	})

	DefineInstruction(0xC3, "JP a16", func(c *CPU) {
		addr := c.fetch16()
		c.PC = addr
		c.tick()
	})

	DefineInstruction(0xE9, "JP (HL)", func(c *CPU) {
		c.PC = c.HL.Uint16()
	})

	DefineInstruction(0xCD, "CALL a16", func(c *CPU) {
		addr := c.fetch16()
		c.tick()
		c.push(c.PC)
		c.PC = addr
	})

	DefineInstruction(0xC9, "RET", func(c *CPU) {
		c.PC = c.pop()
		c.tick()
	})

	DefineInstruction(0xD9, "RETI", func(c *CPU) {
		c.PC = c.pop()
		c.tick()
		c.IME = true
		c.pendingEI = 0
	})

	for cc := uint8(0); cc < 4; cc++ {
		cond := cc

		DefineInstruction(0x20+cc*8, fmt.Sprintf("JR %s,e", condNames[cond]), func(c *CPU) {
			e := int8(c.fetch())
			if c.condition(cond) {
				c.PC = uint16(int32(c.PC) + int32(e))
				c.tick()
			}
		})

		DefineInstruction(0xC2+cc*8, fmt.Sprintf("JP %s,a16", condNames[cond]), func(c *CPU) {
			addr := c.fetch16()
			if c.condition(cond) {
				c.PC = addr
				c.tick()
			}
		})

		DefineInstruction(0xC4+cc*8, fmt.Sprintf("CALL %s,a16", condNames[cond]), func(c *CPU) {
			addr := c.fetch16()
			if c.condition(cond) {
				c.tick()
				c.push(c.PC)
				c.PC = addr
			}
		})

		DefineInstruction(0xC0+cc*8, fmt.Sprintf("RET %s", condNames[cond]), func(c *CPU) {
			c.tick()
			if c.condition(cond) {
				c.PC = c.pop()
				c.tick()
			}
		})
	}

	for i := uint8(0); i < 8; i++ {
		vector := uint16(i) * 8
		DefineInstruction(0xC7+i*8, fmt.Sprintf("RST %02Xh", vector), func(c *CPU) {
			c.tick()
			c.push(c.PC)
			c.PC = vector
		})
	}
}
