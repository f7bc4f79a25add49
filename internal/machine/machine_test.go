package machine

import "testing"

func blankROM() []byte {
	rom := make([]byte, 32*1024)
	// an infinite JR -2 loop at the cartridge entry point so the machine
	// has something deterministic to run without a real test ROM.
	rom[0x0100] = 0x18
	rom[0x0101] = 0xFE
	return rom
}

func TestNewRunsWithoutBootROM(t *testing.T) {
	m, err := New(blankROM())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if m.CPU.PC != 0x0100 {
		t.Fatalf("PC = %#x, want 0x0100", m.CPU.PC)
	}
}

func TestStepFrameReturnsFullFramebuffer(t *testing.T) {
	m, err := New(blankROM())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	m.MMU.Write(0xFF40, 0x91) // LCD on
	fb, err := m.StepFrame()
	if err != nil {
		t.Fatalf("StepFrame: %v", err)
	}
	if len(fb) != 160*144 {
		t.Fatalf("framebuffer len = %d, want %d", len(fb), 160*144)
	}
}

func TestSaveLoadStateRoundTrip(t *testing.T) {
	m, err := New(blankROM())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := 0; i < 100; i++ {
		if _, err := m.StepInstruction(); err != nil {
			t.Fatalf("StepInstruction: %v", err)
		}
	}
	wantPC := m.CPU.PC

	blob, err := m.SaveState()
	if err != nil {
		t.Fatalf("SaveState: %v", err)
	}

	m2, err := New(blankROM())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := m2.LoadState(blob); err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if m2.CPU.PC != wantPC {
		t.Fatalf("PC after restore = %#x, want %#x", m2.CPU.PC, wantPC)
	}
}

func TestStepInstructionReportsIllegalOpcode(t *testing.T) {
	rom := blankROM()
	rom[0x0100] = 0xD3 // illegal/locking opcode
	m, err := New(rom)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := m.StepInstruction(); err == nil {
		t.Fatal("expected an error stepping onto an illegal opcode")
	}
}

func TestLoadStateRejectsGarbage(t *testing.T) {
	m, err := New(blankROM())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := m.LoadState([]byte("not a savestate")); err == nil {
		t.Fatal("expected an error loading a garbage blob")
	}
}
