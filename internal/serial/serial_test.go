package serial

import (
	"testing"

	"github.com/pixelfault/dmgboy/internal/interrupts"
)

// stepCycles advances c by n T-cycles; Step itself takes at most 255.
func stepCycles(c *Controller, n int) {
	for ; n > 0; n-- {
		c.Step(1)
	}
}

func TestTransferCapturesByteAndCompletesAfter4096Cycles(t *testing.T) {
	irq := interrupts.NewController()
	c := NewController(irq)

	c.WriteSB(0x42)
	c.WriteSC(0x81) // start + internal clock

	if len(c.Output) != 1 || c.Output[0] != 0x42 {
		t.Fatalf("Output = %v, want [0x42]", c.Output)
	}

	stepCycles(c, cyclesPerTransfer-1)
	if c.ReadSB() == 0xFF {
		t.Fatal("transfer completed one cycle too early")
	}
	if irq.Flag&interrupts.Serial != 0 {
		t.Fatal("Serial interrupt requested before the transfer finished")
	}

	c.Step(1)
	if c.ReadSB() != 0xFF {
		t.Errorf("SB after transfer = %#02x, want 0xFF (no link partner)", c.ReadSB())
	}
	if c.ReadSC()&0x80 != 0 {
		t.Error("SC's start bit must clear once the transfer completes")
	}
	if irq.Flag&interrupts.Serial == 0 {
		t.Error("expected a Serial interrupt request once the transfer completes")
	}
}

func TestWriteSCWithoutInternalClockDoesNotStartATransfer(t *testing.T) {
	irq := interrupts.NewController()
	c := NewController(irq)
	c.WriteSB(0x7F)
	c.WriteSC(0x80) // start bit set, internal clock bit clear

	stepCycles(c, cyclesPerTransfer)
	if c.ReadSB() != 0x7F {
		t.Errorf("SB = %#02x, want 0x7F (no transfer without an internal clock)", c.ReadSB())
	}
	if len(c.Output) != 0 {
		t.Errorf("Output = %v, want empty", c.Output)
	}
}

func TestReadSCUnusedBitsAlwaysSet(t *testing.T) {
	c := NewController(interrupts.NewController())
	c.WriteSC(0x01)
	if c.ReadSC() != 0x7F {
		t.Errorf("ReadSC() = %#02x, want 0x7F", c.ReadSC())
	}
}

func TestSaveRestoreRoundTrip(t *testing.T) {
	irq := interrupts.NewController()
	c := NewController(irq)
	c.WriteSB(0x11)
	c.WriteSC(0x81)
	c.Step(10)
	s := c.Save()

	c2 := NewController(irq)
	c2.Restore(s)
	if c2.ReadSB() != c.ReadSB() || c2.ReadSC() != c.ReadSC() {
		t.Error("restored SB/SC do not match saved state")
	}
}
