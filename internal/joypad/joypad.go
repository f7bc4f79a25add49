// Package joypad implements the Game Boy's P1/JOYP input matrix.
package joypad

import "github.com/pixelfault/dmgboy/internal/interrupts"

// Button identifies a physical key. The bit position matches the nibble
// layout described in spec: dpad bits 3..0 are Down/Up/Left/Right,
// buttons bits 3..0 are Start/Select/B/A.
type Button = uint8

const (
	ButtonRight Button = iota
	ButtonLeft
	ButtonUp
	ButtonDown
)

const (
	ButtonA Button = iota
	ButtonB
	ButtonSelect
	ButtonStart
)

// Controller tracks the dpad/buttons nibbles and the P1 select latch the
// CPU writes. A pressed key is encoded as a 0 bit, matching hardware.
type Controller struct {
	dpad    uint8 // bits 3..0: down,up,left,right pressed=0, else 1
	buttons uint8 // bits 3..0: start,select,b,a pressed=0, else 1
	selectN uint8 // last value written to P1 bits 5..4

	lastOutput uint8 // low nibble of the last value returned by Read, for edge detection

	irq *interrupts.Controller
}

// NewController returns a joypad with no keys pressed.
func NewController(irq *interrupts.Controller) *Controller {
	return &Controller{dpad: 0x0F, buttons: 0x0F, selectN: 0x30, lastOutput: 0x0F, irq: irq}
}

// SetKeys is the host -> core contract: each nibble has a pressed key
// encoded as 0, a released key as 1, matching the P1 convention directly.
func (c *Controller) SetKeys(dpad, buttons uint8) {
	c.dpad = dpad & 0x0F
	c.buttons = buttons & 0x0F
	c.refresh()
}

// PressButton/ReleaseButton operate on the Start/Select/B/A nibble.
func (c *Controller) PressButton(b Button) {
	c.buttons &^= 1 << b
	c.refresh()
}

func (c *Controller) ReleaseButton(b Button) {
	c.buttons |= 1 << b
	c.refresh()
}

// PressDpad/ReleaseDpad operate on the direction nibble. ButtonRight..
// ButtonDown and ButtonA..ButtonStart intentionally share bit values
// since they live in separate nibbles; callers pick the matching method.
func (c *Controller) PressDpad(b Button) {
	c.dpad &^= 1 << b
	c.refresh()
}

func (c *Controller) ReleaseDpad(b Button) {
	c.dpad |= 1 << b
	c.refresh()
}

// Read returns the current P1 register value: bits 5/4 echo the select
// latch, bits 3..0 are the AND of whichever nibble(s) are selected
// (0=selected), unselected bits read 1.
func (c *Controller) Read() uint8 {
	out := uint8(0x0F)
	if c.selectN&0x10 == 0 { // bit 4: select direction keys
		out &= c.dpad
	}
	if c.selectN&0x20 == 0 { // bit 5: select button keys
		out &= c.buttons
	}
	return 0xC0 | c.selectN&0x30 | out
}

// Write updates the select latch (bits 5..4 only; 3..0 are read-only).
func (c *Controller) Write(v uint8) {
	c.selectN = v & 0x30
	c.refresh()
}

// refresh recomputes the output nibble and raises the Joypad interrupt on
// any bit that transitions 1 -> 0.
func (c *Controller) refresh() {
	out := c.Read() & 0x0F
	fell := c.lastOutput &^ out
	if fell != 0 {
		c.irq.Request(interrupts.Joypad)
	}
	c.lastOutput = out
}

// State is the serialized form of Controller.
type State struct {
	Dpad, Buttons, SelectN, LastOutput uint8
}

func (c *Controller) Save() State {
	return State{c.dpad, c.buttons, c.selectN, c.lastOutput}
}

func (c *Controller) Restore(s State) {
	c.dpad, c.buttons, c.selectN, c.lastOutput = s.Dpad, s.Buttons, s.SelectN, s.LastOutput
}
