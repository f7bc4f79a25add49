package cpu

import (
	"errors"
	"testing"

	"github.com/pixelfault/dmgboy/internal/boot"
	"github.com/pixelfault/dmgboy/internal/cartridge"
	"github.com/pixelfault/dmgboy/internal/interrupts"
	"github.com/pixelfault/dmgboy/internal/joypad"
	"github.com/pixelfault/dmgboy/internal/mmu"
	"github.com/pixelfault/dmgboy/internal/ppu"
	"github.com/pixelfault/dmgboy/internal/serial"
	"github.com/pixelfault/dmgboy/internal/timer"
	"github.com/sirupsen/logrus"
)

func newTestCPU(program []byte) (*CPU, *mmu.MMU) {
	rom := make([]byte, 32*1024)
	copy(rom[0x0100:], program)
	cart, err := cartridge.Load(rom, nil)
	if err != nil {
		panic(err)
	}
	irq := interrupts.NewController()
	p := ppu.NewController(irq)
	t := timer.NewController(irq)
	j := joypad.NewController(irq)
	s := serial.NewController(irq)
	var bootROM *boot.ROM
	m := mmu.New(cart, p, t, j, s, irq, bootROM, logrus.New())
	c := New(m, irq)
	c.Reset()
	c.PC = 0x0100
	return c, m
}

func step(t *testing.T, c *CPU, n int) {
	for i := 0; i < n; i++ {
		if _, err := c.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
}

func TestLDRR(t *testing.T) {
	c, _ := newTestCPU([]byte{0x3E, 0x42, 0x47}) // LD A,0x42; LD B,A
	step(t, c, 2)
	if c.B != 0x42 {
		t.Fatalf("B = %#x, want 0x42", c.B)
	}
}

func TestADDHalfCarry(t *testing.T) {
	c, _ := newTestCPU([]byte{0x3E, 0x0F, 0x06, 0x01, 0x80}) // LD A,0x0F; LD B,0x01; ADD A,B
	step(t, c, 3)
	if c.A != 0x10 {
		t.Fatalf("A = %#x, want 0x10", c.A)
	}
	if !c.isFlagSet(FlagHalfCarry) {
		t.Fatal("expected half-carry set")
	}
	if c.isFlagSet(FlagCarry) {
		t.Fatal("expected carry clear")
	}
}

func TestIncDecNeverTouchCarry(t *testing.T) {
	c, _ := newTestCPU([]byte{0x37, 0x3C, 0x3D}) // SCF; INC A; DEC A
	step(t, c, 3)
	if !c.isFlagSet(FlagCarry) {
		t.Fatal("INC/DEC must not clear a carry set by SCF")
	}
}

func TestIncHLMemorySetsHalfCarry(t *testing.T) {
	c, m := newTestCPU([]byte{0x21, 0x00, 0xC0, 0x34}) // LD HL,0xC000; INC (HL)
	step(t, c, 1)
	m.Write(0xC000, 0x0F)
	step(t, c, 1)
	if m.Read(0xC000) != 0x10 {
		t.Fatalf("(HL) = %#x, want 0x10", m.Read(0xC000))
	}
	if !c.isFlagSet(FlagHalfCarry) {
		t.Fatal("expected half-carry set")
	}
	if c.isFlagSet(FlagZero) {
		t.Fatal("expected zero clear")
	}
}

func TestPopAFMasksLowNibble(t *testing.T) {
	c, _ := newTestCPU([]byte{
		0x01, 0xCD, 0xAB, // LD BC,0xABCD
		0xC5,       // PUSH BC
		0xF1,       // POP AF
		0xF5,       // PUSH AF
		0xC1,       // POP BC
	})
	step(t, c, 4)
	if c.F&0x0F != 0 {
		t.Fatalf("F low nibble = %#x, want 0", c.F&0x0F)
	}
	step(t, c, 2)
	if c.BC.Uint16() != 0xABC0 {
		t.Fatalf("BC = %#x, want 0xABC0", c.BC.Uint16())
	}
}

func TestDAAAfterBCDAdd(t *testing.T) {
	c, _ := newTestCPU([]byte{0x3E, 0x45, 0x06, 0x38, 0x80, 0x27}) // LD A,0x45; LD B,0x38; ADD A,B; DAA
	step(t, c, 4)
	if c.A != 0x83 {
		t.Fatalf("A = %#x, want 0x83", c.A)
	}
	if c.isFlagSet(FlagCarry) {
		t.Fatal("expected carry clear for 0x45+0x38 in BCD")
	}
}

func TestJRRelativeBackward(t *testing.T) {
	c, _ := newTestCPU([]byte{0x00, 0x18, 0xFC}) // NOP; JR -4
	c.PC = 0x0101
	step(t, c, 1)
	if c.PC != 0x00FF {
		t.Fatalf("PC = %#x, want 0x00FF", c.PC)
	}
}

func TestEIDelaysIME(t *testing.T) {
	c, _ := newTestCPU([]byte{0xFB, 0x00, 0x00}) // EI; NOP; NOP
	step(t, c, 1)
	if c.IME {
		t.Fatal("IME must not be set immediately after EI")
	}
	step(t, c, 1)
	if c.IME {
		t.Fatal("IME must not be set after only one instruction boundary")
	}
	step(t, c, 1)
	if !c.IME {
		t.Fatal("IME must be set after the instruction following EI completes")
	}
}

func TestHaltBugDuplicatesNextFetch(t *testing.T) {
	c, m := newTestCPU([]byte{0x76, 0x3C, 0x3C}) // HALT; INC A; INC A
	m.Write(0xFFFF, interrupts.VBlank)
	c.irq.Request(interrupts.VBlank) // pending with IME=0 arms the HALT bug

	step(t, c, 1) // HALT: IME=0 and an interrupt is already pending
	if c.mode != modeHaltBug {
		t.Fatal("expected HALT bug to arm when IME=0 and an interrupt is pending")
	}

	step(t, c, 1) // the byte after HALT (INC A) is fetched without PC advancing
	if c.A != 0x02 {
		t.Fatalf("A = %#x, want 0x02 after the first INC A (Reset leaves A=0x01)", c.A)
	}
	if c.PC != 0x0101 {
		t.Fatalf("PC = %#x, want 0x0101 (re-reads the same INC A)", c.PC)
	}

	step(t, c, 1) // the duplicated fetch now runs INC A again
	if c.A != 0x03 {
		t.Fatalf("A = %#x, want 0x03 after the duplicated INC A", c.A)
	}
}

func TestStepReturnsFaultErrorOnIllegalOpcode(t *testing.T) {
	c, _ := newTestCPU([]byte{0xD3}) // unused opcode
	cycles, err := c.Step()
	var fault FaultError
	if !errors.As(err, &fault) {
		t.Fatalf("Step err = %v, want a FaultError", err)
	}
	if fault != 0xD3 {
		t.Fatalf("fault opcode = %#x, want 0xD3", uint8(fault))
	}
	if cycles == 0 {
		t.Fatal("expected the fetch itself to have consumed cycles")
	}
}
