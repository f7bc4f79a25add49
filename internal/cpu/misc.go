package cpu

// The instructions below don't fit a uniform grid — control-flow setup,
// flag-only ops, and the handful of irregular loads — so they're defined
// by hand rather than generated.

func init() {
	DefineInstruction(0x00, "NOP", func(c *CPU) {})

	DefineInstruction(0x10, "STOP", func(c *CPU) {
		c.fetch() // STOP is followed by a padding byte real hardware also fetches
		c.mode = modeStop
	})

	DefineInstruction(0x76, "HALT", func(c *CPU) {
		if !c.IME && c.irq.Pending() {
			c.mode = modeHaltBug
			return
		}
		c.mode = modeHalt
	})

	DefineInstruction(0xF3, "DI", func(c *CPU) {
		c.IME = false
		c.pendingEI = 0
	})

	DefineInstruction(0xFB, "EI", func(c *CPU) {
		c.pendingEI = 2
	})

	DefineInstruction(0x27, "DAA", func(c *CPU) { c.daa() })

	DefineInstruction(0x2F, "CPL", func(c *CPU) {
		c.A = ^c.A
		c.setFlag(FlagSubtract)
		c.setFlag(FlagHalfCarry)
	})

	DefineInstruction(0x37, "SCF", func(c *CPU) {
		c.clearFlag(FlagSubtract)
		c.clearFlag(FlagHalfCarry)
		c.setFlag(FlagCarry)
	})

	DefineInstruction(0x3F, "CCF", func(c *CPU) {
		c.clearFlag(FlagSubtract)
		c.clearFlag(FlagHalfCarry)
		c.setFlagIf(!c.isFlagSet(FlagCarry), FlagCarry)
	})

	DefineInstruction(0x07, "RLCA", func(c *CPU) {
		result, carryOut := rlc(c, c.A)
		c.A = result
		c.F = 0
		c.setFlagIf(carryOut, FlagCarry)
	})

	DefineInstruction(0x0F, "RRCA", func(c *CPU) {
		result, carryOut := rrc(c, c.A)
		c.A = result
		c.F = 0
		c.setFlagIf(carryOut, FlagCarry)
	})

	DefineInstruction(0x17, "RLA", func(c *CPU) {
		result, carryOut := rl(c, c.A)
		c.A = result
		c.F = 0
		c.setFlagIf(carryOut, FlagCarry)
	})

	DefineInstruction(0x1F, "RRA", func(c *CPU) {
		result, carryOut := rr(c, c.A)
		c.A = result
		c.F = 0
		c.setFlagIf(carryOut, FlagCarry)
	})

	DefineInstruction(0x08, "LD (a16),SP", func(c *CPU) {
		addr := c.fetch16()
		c.writeByte(addr, uint8(c.SP))
		c.writeByte(addr+1, uint8(c.SP>>8))
	})

	DefineInstruction(0x02, "LD (BC),A", func(c *CPU) { c.writeByte(c.BC.Uint16(), c.A) })
	DefineInstruction(0x0A, "LD A,(BC)", func(c *CPU) { c.A = c.readByte(c.BC.Uint16()) })
	DefineInstruction(0x12, "LD (DE),A", func(c *CPU) { c.writeByte(c.DE.Uint16(), c.A) })
	DefineInstruction(0x1A, "LD A,(DE)", func(c *CPU) { c.A = c.readByte(c.DE.Uint16()) })

	DefineInstruction(0x22, "LD (HL+),A", func(c *CPU) {
		c.writeByte(c.HL.Uint16(), c.A)
		c.HL.SetUint16(c.HL.Uint16() + 1)
	})
	DefineInstruction(0x2A, "LD A,(HL+)", func(c *CPU) {
		c.A = c.readByte(c.HL.Uint16())
		c.HL.SetUint16(c.HL.Uint16() + 1)
	})
	DefineInstruction(0x32, "LD (HL-),A", func(c *CPU) {
		c.writeByte(c.HL.Uint16(), c.A)
		c.HL.SetUint16(c.HL.Uint16() - 1)
	})
	DefineInstruction(0x3A, "LD A,(HL-)", func(c *CPU) {
		c.A = c.readByte(c.HL.Uint16())
		c.HL.SetUint16(c.HL.Uint16() - 1)
	})

	DefineInstruction(0xE0, "LDH (a8),A", func(c *CPU) {
		addr := 0xFF00 | uint16(c.fetch())
		c.writeByte(addr, c.A)
	})
	DefineInstruction(0xF0, "LDH A,(a8)", func(c *CPU) {
		addr := 0xFF00 | uint16(c.fetch())
		c.A = c.readByte(addr)
	})
	DefineInstruction(0xE2, "LD (C),A", func(c *CPU) { c.writeByte(0xFF00|uint16(c.C), c.A) })
	DefineInstruction(0xF2, "LD A,(C)", func(c *CPU) { c.A = c.readByte(0xFF00 | uint16(c.C)) })

	DefineInstruction(0xEA, "LD (a16),A", func(c *CPU) { c.writeByte(c.fetch16(), c.A) })
	DefineInstruction(0xFA, "LD A,(a16)", func(c *CPU) { c.A = c.readByte(c.fetch16()) })

	DefineInstruction(0xE8, "ADD SP,e", func(c *CPU) {
		e := int8(c.fetch())
		c.SP = c.addSPSigned(e)
		c.tick()
		c.tick()
	})
	DefineInstruction(0xF8, "LD HL,SP+e", func(c *CPU) {
		e := int8(c.fetch())
		c.HL.SetUint16(c.addSPSigned(e))
		c.tick()
	})
	DefineInstruction(0xF9, "LD SP,HL", func(c *CPU) {
		c.SP = c.HL.Uint16()
		c.tick()
	})

	DefineInstruction(0xCB, "PREFIX CB", func(c *CPU) {
		_ = c.runCB(c.fetch())
	})

	// D3, DB, DD, E3, E4, EB, EC, ED, F4, FC, FD are left unset: run()
	// reports them as a FaultError rather than dispatching a closure.
}
