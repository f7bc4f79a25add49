// Package cpu implements the Sharp LR35902: registers, the unprefixed and
// CB-prefixed opcode tables, and the fetch/decode/execute/interrupt loop.
// The CPU never ticks peripherals itself; Step reports the T-cycles it
// consumed and the frame driver advances the PPU, timer, and serial
// controller by that count.
package cpu

import (
	"fmt"

	"github.com/pixelfault/dmgboy/internal/interrupts"
	"github.com/pixelfault/dmgboy/internal/mmu"
)

// mode is the CPU's execution state.
type mode uint8

const (
	modeNormal mode = iota
	modeHalt
	modeStop
	modeHaltBug
)

// CPU is the Sharp LR35902 core.
type CPU struct {
	Registers

	PC, SP uint16

	IME        bool
	pendingEI  uint8 // EI delay counter, per spec: 2 -> 1 -> 0 enables IME
	mode       mode

	mmu *mmu.MMU
	irq *interrupts.Controller

	cycles uint8 // T-cycles consumed by the instruction/dispatch in flight
}

// New returns a CPU wired to the given bus and interrupt controller, with
// registers at their post-boot-ROM values.
func New(m *mmu.MMU, irq *interrupts.Controller) *CPU {
	c := &CPU{mmu: m, irq: irq}
	c.Registers.init()
	return c
}

// Reset sets registers to their values immediately after the DMG boot ROM
// hands off control, for running without a boot ROM image.
func (c *CPU) Reset() {
	c.A, c.F = 0x01, 0xB0
	c.B, c.C = 0x00, 0x13
	c.D, c.E = 0x00, 0xD8
	c.H, c.L = 0x01, 0x4D
	c.SP = 0xFFFE
	c.PC = 0x0100
	c.IME = false
	c.pendingEI = 0
	c.mode = modeNormal
}

// tick advances elapsed cycle accounting by one M-cycle (4 T-cycles). It
// has no side effects on peripherals; the frame driver ticks those
// separately once Step returns.
func (c *CPU) tick() {
	c.cycles += 4
}

func (c *CPU) readByte(addr uint16) uint8 {
	v := c.mmu.Read(addr)
	c.tick()
	return v
}

func (c *CPU) writeByte(addr uint16, v uint8) {
	c.mmu.Write(addr, v)
	c.tick()
}

func (c *CPU) fetch() uint8 {
	v := c.readByte(c.PC)
	c.PC++
	return v
}

func (c *CPU) fetch16() uint16 {
	lo := uint16(c.fetch())
	hi := uint16(c.fetch())
	return hi<<8 | lo
}

func (c *CPU) push(v uint16) {
	c.SP--
	c.writeByte(c.SP, uint8(v>>8))
	c.SP--
	c.writeByte(c.SP, uint8(v))
}

func (c *CPU) pop() uint16 {
	lo := uint16(c.readByte(c.SP))
	c.SP++
	hi := uint16(c.readByte(c.SP))
	c.SP++
	return hi<<8 | lo
}

// Step executes one instruction, one HALT/STOP idle quantum, or one
// interrupt dispatch, and returns the number of T-cycles it consumed. If
// the opcode decoded is one of the Game Boy's locking opcodes, Step
// returns a non-nil FaultError and leaves the machine state as it was at
// the moment of the fault (PC pointing just past the offending opcode),
// so the caller can decide whether to halt, trace, or reset.
func (c *CPU) Step() (uint8, error) {
	c.cycles = 0

	if c.pendingEI > 0 {
		c.pendingEI--
		if c.pendingEI == 0 {
			c.IME = true
		}
	}

	switch c.mode {
	case modeHalt, modeStop:
		c.tick()
		if c.irq.Pending() {
			c.mode = modeNormal
			if c.IME {
				c.dispatchInterrupt()
			}
		}
		return c.cycles, nil
	case modeHaltBug:
		c.mode = modeNormal
		op := c.fetch()
		c.PC--
		if err := c.run(op); err != nil {
			return c.cycles, err
		}
		return c.cycles, nil
	}

	if c.IME && c.irq.Pending() {
		c.dispatchInterrupt()
		return c.cycles, nil
	}

	op := c.fetch()
	if err := c.run(op); err != nil {
		return c.cycles, err
	}
	return c.cycles, nil
}

// dispatchInterrupt pushes PC, clears IME, and jumps to the
// highest-priority pending vector. Real hardware spends 5 M-cycles (20
// T-cycles) on this: two idle cycles, two push writes, and the jump.
func (c *CPU) dispatchInterrupt() {
	c.tick()
	c.tick()
	c.push(c.PC)
	vector, ok := c.irq.Vector()
	c.tick()
	if !ok {
		// Pending() was true but one of the two push writes above
		// landed on IE (0xFFFF) or IF (0xFF0F) and cleared every
		// pending request; land back at the instruction we were about
		// to run.
		return
	}
	c.IME = false
	c.PC = vector
}

// run executes the instruction whose opcode is op, having already been
// fetched (PC points at its first operand byte, if any). An unset table
// entry means op is one of the Game Boy's locking opcodes.
func (c *CPU) run(op uint8) error {
	instr := InstructionSet[op]
	if instr.fn == nil {
		return FaultError(op)
	}
	instr.fn(c)
	return nil
}

// runCB is unreachable with a non-nil error: the CB-prefixed space has
// no unused opcodes, every one of the 256 entries is populated.
func (c *CPU) runCB(op uint8) error {
	instr := InstructionSetCB[op]
	if instr.fn == nil {
		return FaultError(op)
	}
	instr.fn(c)
	return nil
}

// FaultError reports one of the Game Boy's unused/locking opcodes (D3,
// DB, DD, E3, E4, EB, EC, ED, F4, FC, FD). Step returns this directly
// instead of panicking, so a host can catch the fault and decide how to
// present it rather than crashing.
type FaultError uint8

func (o FaultError) Error() string {
	return fmt.Sprintf("cpu: illegal opcode %#02x", uint8(o))
}

// State is the serialized form of the CPU, used by savestates.
type State struct {
	A, F uint8
	B, C uint8
	D, E uint8
	H, L uint8
	PC, SP uint16
	IME       bool
	PendingEI uint8
	Mode      uint8
}

func (c *CPU) Save() State {
	return State{
		A: c.A, F: c.F, B: c.B, C: c.C, D: c.D, E: c.E, H: c.H, L: c.L,
		PC: c.PC, SP: c.SP,
		IME: c.IME, PendingEI: c.pendingEI, Mode: uint8(c.mode),
	}
}

func (c *CPU) Restore(s State) {
	c.A, c.F, c.B, c.C, c.D, c.E, c.H, c.L = s.A, s.F, s.B, s.C, s.D, s.E, s.H, s.L
	c.PC, c.SP = s.PC, s.SP
	c.IME, c.pendingEI, c.mode = s.IME, s.PendingEI, mode(s.Mode)
}
