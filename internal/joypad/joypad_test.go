package joypad

import (
	"testing"

	"github.com/pixelfault/dmgboy/internal/interrupts"
)

func TestReadReflectsSelectedNibbleOnly(t *testing.T) {
	irq := interrupts.NewController()
	c := NewController(irq)
	c.PressDpad(ButtonRight)
	c.PressButton(ButtonA)

	c.Write(0x20) // select direction keys (bit 4 = 0)
	if c.Read()&0x0F != 0x0E {
		t.Errorf("dpad nibble = %#x, want 0x0E (right pressed)", c.Read()&0x0F)
	}

	c.Write(0x10) // select button keys (bit 5 = 0)
	if c.Read()&0x0F != 0x0E {
		t.Errorf("buttons nibble = %#x, want 0x0E (A pressed)", c.Read()&0x0F)
	}

	c.Write(0x30) // neither selected
	if c.Read()&0x0F != 0x0F {
		t.Errorf("unselected nibble = %#x, want 0x0F", c.Read()&0x0F)
	}
}

func TestPressTriggersJoypadInterruptOnFallingEdge(t *testing.T) {
	irq := interrupts.NewController()
	c := NewController(irq)
	c.Write(0x20) // direction keys selected, nothing pressed -> output nibble all 1s

	c.PressDpad(ButtonDown)
	if irq.Flag&interrupts.Joypad == 0 {
		t.Error("expected a Joypad interrupt request on a 1->0 transition")
	}
}

func TestReleaseDoesNotRequestInterrupt(t *testing.T) {
	irq := interrupts.NewController()
	c := NewController(irq)
	c.Write(0x20) // direction keys selected
	c.PressDpad(ButtonUp)
	irq.Flag = 0 // clear the press's own request

	c.ReleaseDpad(ButtonUp)
	if irq.Flag&interrupts.Joypad != 0 {
		t.Error("a 0->1 transition (release) must not request an interrupt")
	}
}

func TestSetKeysMasksToLowNibble(t *testing.T) {
	irq := interrupts.NewController()
	c := NewController(irq)
	c.SetKeys(0xF0|0x05, 0xF0|0x0A)
	if c.dpad != 0x05 || c.buttons != 0x0A {
		t.Errorf("dpad/buttons = %#x/%#x, want 0x05/0x0A", c.dpad, c.buttons)
	}
}

func TestSaveRestoreRoundTrip(t *testing.T) {
	irq := interrupts.NewController()
	c := NewController(irq)
	c.PressButton(ButtonStart)
	c.Write(0x20)
	s := c.Save()

	c2 := NewController(irq)
	c2.Restore(s)
	if c2.Read() != c.Read() {
		t.Errorf("restored Read() = %#x, want %#x", c2.Read(), c.Read())
	}
}
