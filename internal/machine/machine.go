// Package machine wires the CPU, MMU, PPU, timer, joypad, serial
// controller, and cartridge into a runnable DMG and drives them frame by
// frame. It owns the only tick loop in the module: the CPU reports how
// many T-cycles an instruction or interrupt dispatch consumed, and the
// driver here steps every peripheral by that count.
package machine

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/pixelfault/dmgboy/internal/boot"
	"github.com/pixelfault/dmgboy/internal/cartridge"
	"github.com/pixelfault/dmgboy/internal/cpu"
	"github.com/pixelfault/dmgboy/internal/interrupts"
	"github.com/pixelfault/dmgboy/internal/joypad"
	"github.com/pixelfault/dmgboy/internal/mmu"
	"github.com/pixelfault/dmgboy/internal/ppu"
	"github.com/pixelfault/dmgboy/internal/serial"
	"github.com/pixelfault/dmgboy/internal/timer"
)

// cyclesPerFrame is the number of T-cycles in one 59.7Hz DMG frame: 456
// dots/line * 154 lines.
const cyclesPerFrame = 456 * 154

// Machine is a complete, runnable Game Boy: one cartridge and the fixed
// set of components every DMG has.
type Machine struct {
	CPU  *cpu.CPU
	MMU  *mmu.MMU
	PPU  *ppu.Controller
	Timer   *timer.Controller
	Joypad  *joypad.Controller
	Serial  *serial.Controller
	IRQ     *interrupts.Controller
	cart cartridge.Cartridge

	log *logrus.Logger
}

// Option configures New.
type Option func(*config)

type config struct {
	bootROM []byte
	log     *logrus.Logger
}

// WithBootROM attaches a 256-byte DMG boot ROM image. Without it, the
// CPU starts directly at the cartridge's entry point with post-boot
// register values (Reset's defaults).
func WithBootROM(rom []byte) Option {
	return func(cfg *config) { cfg.bootROM = rom }
}

// WithLogger attaches a logger; New uses logrus's standard logger if
// this is never called.
func WithLogger(log *logrus.Logger) Option {
	return func(cfg *config) { cfg.log = log }
}

// New loads rom as a cartridge and wires a fresh machine around it.
func New(rom []byte, opts ...Option) (*Machine, error) {
	cfg := config{log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(&cfg)
	}

	cart, err := cartridge.Load(rom, cfg.log)
	if err != nil {
		return nil, fmt.Errorf("machine: %w", err)
	}

	var bootROM *boot.ROM
	if cfg.bootROM != nil {
		bootROM, err = boot.Load(cfg.bootROM)
		if err != nil {
			return nil, fmt.Errorf("machine: %w", err)
		}
	}

	irq := interrupts.NewController()
	p := ppu.NewController(irq)
	t := timer.NewController(irq)
	j := joypad.NewController(irq)
	s := serial.NewController(irq)
	bus := mmu.New(cart, p, t, j, s, irq, bootROM, cfg.log)
	c := cpu.New(bus, irq)
	if bootROM == nil {
		c.Reset()
	}

	return &Machine{
		CPU: c, MMU: bus, PPU: p, Timer: t, Joypad: j, Serial: s, IRQ: irq,
		cart: cart, log: cfg.log,
	}, nil
}

// SetKeys is the host -> core input contract: each nibble has a pressed
// key encoded as 0, a released key as 1, matching P1's convention.
func (m *Machine) SetKeys(dpad, buttons uint8) {
	m.Joypad.SetKeys(dpad, buttons)
}

// StepInstruction executes exactly one CPU step (one instruction, one
// HALT/STOP idle quantum, or one interrupt dispatch) and advances every
// peripheral by the T-cycles it consumed. It returns an error instead of
// crashing the host process if the CPU hits one of the Game Boy's
// unused/locking opcodes.
func (m *Machine) StepInstruction() (uint8, error) {
	cycles, err := m.CPU.Step()
	if err != nil {
		return cycles, fmt.Errorf("machine: %w", err)
	}
	m.PPU.Step(cycles)
	m.Timer.Step(cycles)
	m.Serial.Step(cycles)
	m.MMU.Step(cycles)
	return cycles, nil
}

// StepFrame runs the machine until the PPU completes a frame (or, as a
// safety backstop against a machine that never reaches VBlank, until two
// frames' worth of T-cycles have elapsed) and returns the framebuffer.
func (m *Machine) StepFrame() ([]uint8, error) {
	var elapsed int
	for !m.PPU.HasFrame() && elapsed < cyclesPerFrame*2 {
		cycles, err := m.StepInstruction()
		if err != nil {
			return nil, err
		}
		elapsed += int(cycles)
	}
	m.PPU.ConsumeFrame()
	return m.PPU.Framebuffer(), nil
}

// SaveRAM returns the cartridge's external RAM for persistence, or nil
// if the cartridge has no battery-backed RAM.
func (m *Machine) SaveRAM() []byte {
	if !m.cart.Battery() {
		return nil
	}
	return m.cart.RAM()
}

// LoadRAM restores external RAM saved by a previous SaveRAM call.
func (m *Machine) LoadRAM(data []byte) {
	m.cart.LoadRAM(data)
}

// CartridgeTitle reports the loaded cartridge's header title, for window
// titles and log lines.
func (m *Machine) CartridgeTitle() string {
	return m.cart.Title()
}
