package interrupts

import "testing"

func TestPendingRequiresBothFlagAndEnable(t *testing.T) {
	c := NewController()
	c.Request(Timer)
	if c.Pending() {
		t.Error("expected Pending to be false with IE clear")
	}
	c.Enable |= Timer
	if !c.Pending() {
		t.Error("expected Pending to be true once IE is set for a requested flag")
	}
}

func TestVectorPicksLowestBitFirst(t *testing.T) {
	c := NewController()
	c.Enable = 0x1F
	c.Request(Timer)
	c.Request(VBlank)

	addr, ok := c.Vector()
	if !ok {
		t.Fatal("expected Vector to report a pending interrupt")
	}
	if addr != 0x0040 {
		t.Errorf("addr = %#04x, want 0x0040 (VBlank, highest priority)", addr)
	}
	if c.Flag&VBlank != 0 {
		t.Error("expected VBlank's IF bit to be cleared after Vector")
	}
	if c.Flag&Timer == 0 {
		t.Error("Timer's IF bit must remain set; it wasn't serviced yet")
	}

	addr, ok = c.Vector()
	if !ok || addr != 0x0050 {
		t.Errorf("second Vector() = (%#04x, %v), want (0x0050, true)", addr, ok)
	}
}

func TestVectorReportsNoneWhenNothingPending(t *testing.T) {
	c := NewController()
	if _, ok := c.Vector(); ok {
		t.Error("expected ok=false with nothing requested")
	}
	c.Request(STAT) // requested but not enabled
	if _, ok := c.Vector(); ok {
		t.Error("expected ok=false when the requested flag isn't enabled")
	}
}

func TestReadIFUpperBitsAlwaysSet(t *testing.T) {
	c := NewController()
	c.WriteIF(0xFF)
	if c.ReadIF() != 0xFF {
		t.Errorf("ReadIF() = %#02x, want 0xFF", c.ReadIF())
	}
	c.WriteIF(0x00)
	if c.ReadIF() != 0xE0 {
		t.Errorf("ReadIF() = %#02x, want 0xE0 (upper 3 bits always set)", c.ReadIF())
	}
}

func TestSaveRestoreRoundTrip(t *testing.T) {
	c := NewController()
	c.Flag, c.Enable = 0x15, 0x1F
	s := c.Save()

	c2 := NewController()
	c2.Restore(s)
	if c2.Flag != 0x15 || c2.Enable != 0x1F {
		t.Errorf("restored Flag/Enable = %#02x/%#02x, want 0x15/0x1F", c2.Flag, c2.Enable)
	}
}
