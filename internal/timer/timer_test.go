package timer

import (
	"testing"

	"github.com/pixelfault/dmgboy/internal/interrupts"
)

// enableBit0 selects DIV bit 9 (the slowest rate) with the timer enabled.
const enableBit0 = 0x04

// stepCycles advances c by n T-cycles; Step itself takes at most 255.
func stepCycles(c *Controller, n int) {
	for ; n > 0; n-- {
		c.Step(1)
	}
}

func TestWriteDIVResetsToZeroAndCanTriggerTIMAIncrement(t *testing.T) {
	c := NewController(interrupts.NewController())
	c.WriteTAC(enableBit0)
	stepCycles(c, 512) // div's bit 9 goes high; no falling edge yet

	if c.ReadDIV() == 0 {
		t.Fatal("DIV should be non-zero after 512 cycles")
	}
	if c.ReadTIMA() != 0 {
		t.Fatalf("TIMA = %d, want 0 before any falling edge", c.ReadTIMA())
	}

	c.WriteDIV()
	if c.ReadDIV() != 0 {
		t.Errorf("ReadDIV() after WriteDIV = %d, want 0", c.ReadDIV())
	}
	if c.ReadTIMA() != 1 {
		t.Errorf("TIMA = %d, want 1 (DIV reset forced bit 9's falling edge)", c.ReadTIMA())
	}
}

func TestTIMAReloadAbortedByWriteDuringOverflowWindow(t *testing.T) {
	irq := interrupts.NewController()
	c := NewController(irq)
	c.WriteTMA(0x55)
	c.WriteTAC(enableBit0)
	c.WriteTIMA(0xFF)

	stepCycles(c, 512)
	c.WriteDIV() // falling edge: TIMA 0xFF -> 0x00, overflow pending
	if c.ReadTIMA() != 0 {
		t.Fatalf("TIMA = %#02x, want 0x00 right after the overflow", c.ReadTIMA())
	}

	c.Step(2) // still inside the 4-cycle reload window
	c.WriteTIMA(0x10)
	c.Step(10) // run past where the reload would have landed

	if c.ReadTIMA() != 0x10 {
		t.Errorf("TIMA = %#02x, want 0x10 (the abort write must stick, not be reloaded from TMA)", c.ReadTIMA())
	}
	if irq.Flag&interrupts.Timer != 0 {
		t.Error("an aborted reload must not request a Timer interrupt")
	}
}

func TestTIMAOverflowReloadsFromTMAAfterFourCycles(t *testing.T) {
	irq := interrupts.NewController()
	c := NewController(irq)
	c.WriteTMA(0x55)
	c.WriteTAC(enableBit0)
	c.WriteTIMA(0xFF)

	stepCycles(c, 512)
	c.WriteDIV() // falling edge: overflow pending

	c.Step(3)
	if c.ReadTIMA() != 0 {
		t.Fatalf("TIMA = %#02x, want 0x00 one cycle before the reload lands", c.ReadTIMA())
	}
	if irq.Flag&interrupts.Timer != 0 {
		t.Fatal("Timer interrupt requested before the reload window elapsed")
	}

	c.Step(1)
	if c.ReadTIMA() != 0x55 {
		t.Errorf("TIMA = %#02x, want 0x55 (reloaded from TMA)", c.ReadTIMA())
	}
	if irq.Flag&interrupts.Timer == 0 {
		t.Error("expected a Timer interrupt request once the reload lands")
	}
}

func TestReadTACUnusedBitsAlwaysSet(t *testing.T) {
	c := NewController(interrupts.NewController())
	c.WriteTAC(0x01)
	if c.ReadTAC() != 0xF9 {
		t.Errorf("ReadTAC() = %#02x, want 0xF9", c.ReadTAC())
	}
}

func TestSaveRestoreRoundTrip(t *testing.T) {
	irq := interrupts.NewController()
	c := NewController(irq)
	c.WriteTAC(enableBit0)
	c.Step(100)
	c.WriteTMA(0x20)
	s := c.Save()

	c2 := NewController(irq)
	c2.Restore(s)
	if c2.ReadDIV() != c.ReadDIV() || c2.ReadTMA() != c.ReadTMA() || c2.ReadTAC() != c.ReadTAC() {
		t.Error("restored timer state does not match saved state")
	}
}
