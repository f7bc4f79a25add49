package cpu

// Instruction pairs a mnemonic (used only for tracing/debugging) with the
// closure that executes it.
type Instruction struct {
	name string
	fn   func(c *CPU)
}

// InstructionSet and InstructionSetCB are populated by DefineInstruction
// and DefineInstructionCB during package init, table-of-closures style.
var InstructionSet [256]Instruction
var InstructionSetCB [256]Instruction

func DefineInstruction(opcode uint8, name string, fn func(c *CPU)) {
	InstructionSet[opcode] = Instruction{name, fn}
}

func DefineInstructionCB(opcode uint8, name string, fn func(c *CPU)) {
	InstructionSetCB[opcode] = Instruction{name, fn}
}

// register8 reads and writes one of the eight operands addressable by a
// 3-bit field in the unprefixed and CB-prefixed tables: B C D E H L (HL) A.
// Index 6, (HL), costs an extra memory access each time it is touched.
type register8 struct {
	get func(c *CPU) uint8
	set func(c *CPU, v uint8)
}

var registerTable = [8]register8{
	{func(c *CPU) uint8 { return c.B }, func(c *CPU, v uint8) { c.B = v }},
	{func(c *CPU) uint8 { return c.C }, func(c *CPU, v uint8) { c.C = v }},
	{func(c *CPU) uint8 { return c.D }, func(c *CPU, v uint8) { c.D = v }},
	{func(c *CPU) uint8 { return c.E }, func(c *CPU, v uint8) { c.E = v }},
	{func(c *CPU) uint8 { return c.H }, func(c *CPU, v uint8) { c.H = v }},
	{func(c *CPU) uint8 { return c.L }, func(c *CPU, v uint8) { c.L = v }},
	{func(c *CPU) uint8 { return c.readByte(c.HL.Uint16()) }, func(c *CPU, v uint8) { c.writeByte(c.HL.Uint16(), v) }},
	{func(c *CPU) uint8 { return c.A }, func(c *CPU, v uint8) { c.A = v }},
}

func reg8Get(c *CPU, i uint8) uint8        { return registerTable[i].get(c) }
func reg8Set(c *CPU, i uint8, v uint8)     { registerTable[i].set(c, v) }

// register16 addresses the four pairs used by the 16-bit table (the SP
// variant for PUSH/POP swaps AF in for SP, handled by the caller).
type register16 struct {
	get func(c *CPU) uint16
	set func(c *CPU, v uint16)
}

var pairTableSP = [4]register16{
	{func(c *CPU) uint16 { return c.BC.Uint16() }, func(c *CPU, v uint16) { c.BC.SetUint16(v) }},
	{func(c *CPU) uint16 { return c.DE.Uint16() }, func(c *CPU, v uint16) { c.DE.SetUint16(v) }},
	{func(c *CPU) uint16 { return c.HL.Uint16() }, func(c *CPU, v uint16) { c.HL.SetUint16(v) }},
	{func(c *CPU) uint16 { return c.SP }, func(c *CPU, v uint16) { c.SP = v }},
}

var pairTableAF = [4]register16{
	{func(c *CPU) uint16 { return c.BC.Uint16() }, func(c *CPU, v uint16) { c.BC.SetUint16(v) }},
	{func(c *CPU) uint16 { return c.DE.Uint16() }, func(c *CPU, v uint16) { c.DE.SetUint16(v) }},
	{func(c *CPU) uint16 { return c.HL.Uint16() }, func(c *CPU, v uint16) { c.HL.SetUint16(v) }},
	{func(c *CPU) uint16 { return c.AF.Uint16() & 0xFFF0 }, func(c *CPU, v uint16) { c.AF.SetUint16(v & 0xFFF0) }},
}
