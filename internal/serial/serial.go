// Package serial implements a loopback-only stub of the Game Boy serial
// port. spec.md excludes serial link communication beyond a stub; this is
// that stub; it is just enough to satisfy test ROMs (e.g. Blargg's
// cpu_instrs/instr_timing) that print their result one byte at a time
// over SB/SC with no link cable attached.
package serial

import "github.com/pixelfault/dmgboy/internal/interrupts"

// cyclesPerTransfer is the T-cycle cost of shifting out a full byte at
// the DMG's internal serial clock (8192 Hz = one bit per 512 T-cycles).
const cyclesPerTransfer = 512 * 8

// Controller is the SB/SC register pair. With nothing plugged into the
// link port, a transfer always shifts in all-1 bits, so SB settles to
// 0xFF once a transfer completes; the byte written just before the
// transfer started is what a listening host/test-harness cares about,
// and is recorded in Output.
type Controller struct {
	sb uint8
	sc uint8

	transferring bool
	remaining    uint16

	Output []byte // bytes written to SB immediately before a completed transfer

	irq *interrupts.Controller
}

// NewController returns an idle serial controller.
func NewController(irq *interrupts.Controller) *Controller {
	return &Controller{sc: 0x7E, irq: irq}
}

// ReadSB returns the current shift register contents.
func (c *Controller) ReadSB() uint8 { return c.sb }

// WriteSB loads the next byte to transmit.
func (c *Controller) WriteSB(v uint8) { c.sb = v }

// ReadSC returns SC; bits 1-6 are unused and always read back set.
func (c *Controller) ReadSC() uint8 { return c.sc | 0x7E }

// WriteSC writes SC. Setting bit 7 (transfer start) while bit 0
// (internal clock) is set begins a transfer; without an internal clock
// there is no link partner driving the shift, so nothing happens.
func (c *Controller) WriteSC(v uint8) {
	c.sc = v & 0x81
	if c.sc&0x81 == 0x81 && !c.transferring {
		c.Output = append(c.Output, c.sb)
		c.transferring = true
		c.remaining = cyclesPerTransfer
	}
}

// Step advances any in-flight transfer by the given number of T-cycles.
func (c *Controller) Step(cycles uint8) {
	if !c.transferring {
		return
	}
	if uint16(cycles) >= c.remaining {
		c.transferring = false
		c.remaining = 0
		c.sb = 0xFF
		c.sc &^= 0x80
		c.irq.Request(interrupts.Serial)
	} else {
		c.remaining -= uint16(cycles)
	}
}

// State is the serialized form of Controller.
type State struct {
	SB, SC       uint8
	Transferring bool
	Remaining    uint16
}

func (c *Controller) Save() State {
	return State{c.sb, c.sc, c.transferring, c.remaining}
}

func (c *Controller) Restore(s State) {
	c.sb, c.sc, c.transferring, c.remaining = s.SB, s.SC, s.Transferring, s.Remaining
}
