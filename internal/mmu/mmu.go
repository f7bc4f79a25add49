// Package mmu implements the Game Boy's memory bus: address-range
// dispatch to the owning component, echo RAM, the unusable FEA0-FEFF
// region, OAM DMA, and the optional boot ROM overlay.
package mmu

import (
	"github.com/sirupsen/logrus"

	"github.com/pixelfault/dmgboy/internal/boot"
	"github.com/pixelfault/dmgboy/internal/cartridge"
	"github.com/pixelfault/dmgboy/internal/interrupts"
	"github.com/pixelfault/dmgboy/internal/joypad"
	"github.com/pixelfault/dmgboy/internal/ppu"
	"github.com/pixelfault/dmgboy/internal/serial"
	"github.com/pixelfault/dmgboy/internal/timer"
)

// MMU is the memory bus. The CPU is its only caller; every other
// component it owns is reached through Read/Write, never directly.
type MMU struct {
	cart   cartridge.Cartridge
	ppu    *ppu.Controller
	timer  *timer.Controller
	joypad *joypad.Controller
	serial *serial.Controller
	irq    *interrupts.Controller

	wram wram
	hram [0x7F]uint8

	bootROM     *boot.ROM
	bootROMDone bool

	dma oamDMA

	log *logrus.Logger
}

// New wires an MMU to its peripherals. boot may be nil, in which case the
// machine behaves as though the boot ROM already ran.
func New(cart cartridge.Cartridge, p *ppu.Controller, t *timer.Controller, j *joypad.Controller, s *serial.Controller, irq *interrupts.Controller, bootROM *boot.ROM, log *logrus.Logger) *MMU {
	return &MMU{
		cart: cart, ppu: p, timer: t, joypad: j, serial: s, irq: irq,
		bootROM: bootROM, bootROMDone: bootROM == nil,
		log: log,
	}
}

// Step advances OAM DMA by the given number of T-cycles. The PPU, timer,
// and serial controller are stepped separately by the frame driver.
func (m *MMU) Step(cycles uint8) { m.stepDMA(cycles) }

// DMAActive reports whether an OAM DMA transfer is in flight.
func (m *MMU) DMAActive() bool { return m.dma.active }

// Read dispatches a CPU-visible read. During an active OAM DMA, every
// address outside HRAM returns 0xFF.
func (m *MMU) Read(address uint16) uint8 {
	if m.dma.active && !(address >= 0xFF80 && address <= 0xFFFE) {
		return 0xFF
	}
	return m.readRaw(address)
}

// readRaw bypasses DMA gating; OAM DMA's own source-side reads use this,
// and it backs the gated Read above.
func (m *MMU) readRaw(address uint16) uint8 {
	switch {
	case address < 0x8000:
		if m.bootROM != nil && !m.bootROMDone && address < 0x100 {
			return m.bootROM.Read(address)
		}
		return m.cart.Read(address)
	case address < 0xA000:
		return m.ppu.ReadVRAM(address)
	case address < 0xC000:
		return m.cart.Read(address)
	case address < 0xFE00:
		return m.wram.Read(address)
	case address < 0xFEA0:
		return m.ppu.ReadOAM(address)
	case address < 0xFF00:
		return 0xFF
	case address < 0xFF80:
		return m.readIO(address)
	case address < 0xFFFF:
		return m.hram[address-0xFF80]
	default:
		return m.irq.Enable
	}
}

// Write dispatches a CPU-visible write. During an active OAM DMA, writes
// outside HRAM and the DMA trigger register itself are ignored.
func (m *MMU) Write(address uint16, value uint8) {
	if m.dma.active && !(address >= 0xFF80 && address <= 0xFFFE) && address != 0xFF46 {
		return
	}
	switch {
	case address < 0x8000:
		m.cart.Write(address, value)
	case address < 0xA000:
		m.ppu.WriteVRAM(address, value)
	case address < 0xC000:
		m.cart.Write(address, value)
	case address < 0xFE00:
		m.wram.Write(address, value)
	case address < 0xFEA0:
		m.ppu.WriteOAM(address, value)
	case address < 0xFF00:
		// unusable, writes are no-ops
	case address < 0xFF80:
		m.writeIO(address, value)
	case address < 0xFFFF:
		m.hram[address-0xFF80] = value
	default:
		m.irq.Enable = value
	}
}

func (m *MMU) readIO(address uint16) uint8 {
	switch address {
	case 0xFF00:
		return m.joypad.Read()
	case 0xFF01:
		return m.serial.ReadSB()
	case 0xFF02:
		return m.serial.ReadSC()
	case 0xFF04:
		return m.timer.ReadDIV()
	case 0xFF05:
		return m.timer.ReadTIMA()
	case 0xFF06:
		return m.timer.ReadTMA()
	case 0xFF07:
		return m.timer.ReadTAC()
	case 0xFF0F:
		return m.irq.ReadIF()
	case 0xFF40:
		return m.ppu.ReadLCDC()
	case 0xFF41:
		return m.ppu.ReadSTAT()
	case 0xFF42:
		return m.ppu.ReadSCY()
	case 0xFF43:
		return m.ppu.ReadSCX()
	case 0xFF44:
		return m.ppu.ReadLY()
	case 0xFF45:
		return m.ppu.ReadLYC()
	case 0xFF46:
		return 0xFF // DMA register is write-only in effect
	case 0xFF47:
		return m.ppu.ReadBGP()
	case 0xFF48:
		return m.ppu.ReadOBP0()
	case 0xFF49:
		return m.ppu.ReadOBP1()
	case 0xFF4A:
		return m.ppu.ReadWY()
	case 0xFF4B:
		return m.ppu.ReadWX()
	case 0xFF50:
		if m.bootROMDone {
			return 0xFF
		}
		return 0xFE
	default:
		return 0xFF
	}
}

func (m *MMU) writeIO(address uint16, value uint8) {
	switch address {
	case 0xFF00:
		m.joypad.Write(value)
	case 0xFF01:
		m.serial.WriteSB(value)
	case 0xFF02:
		m.serial.WriteSC(value)
	case 0xFF04:
		m.timer.WriteDIV()
	case 0xFF05:
		m.timer.WriteTIMA(value)
	case 0xFF06:
		m.timer.WriteTMA(value)
	case 0xFF07:
		m.timer.WriteTAC(value)
	case 0xFF0F:
		m.irq.WriteIF(value)
	case 0xFF40:
		m.ppu.WriteLCDC(value)
	case 0xFF41:
		m.ppu.WriteSTAT(value)
	case 0xFF42:
		m.ppu.WriteSCY(value)
	case 0xFF43:
		m.ppu.WriteSCX(value)
	case 0xFF45:
		m.ppu.WriteLYC(value)
	case 0xFF46:
		m.dma.start(value)
	case 0xFF47:
		m.ppu.WriteBGP(value)
	case 0xFF48:
		m.ppu.WriteOBP0(value)
	case 0xFF49:
		m.ppu.WriteOBP1(value)
	case 0xFF4A:
		m.ppu.WriteWY(value)
	case 0xFF4B:
		m.ppu.WriteWX(value)
	case 0xFF50:
		if value != 0 {
			m.bootROMDone = true
		}
	}
}

// State is the serialized form of the memory regions the MMU itself
// owns: WRAM, HRAM, boot ROM overlay state, and in-flight DMA.
type State struct {
	WRAM        [0x2000]uint8
	HRAM        [0x7F]uint8
	BootROMDone bool
	DMAActive   bool
	DMASrc      uint16
	DMARemain   uint16
}

func (m *MMU) Save() State {
	return State{
		WRAM: m.wram.raw, HRAM: m.hram, BootROMDone: m.bootROMDone,
		DMAActive: m.dma.active, DMASrc: m.dma.src, DMARemain: m.dma.remaining,
	}
}

func (m *MMU) Restore(s State) {
	m.wram.raw, m.hram, m.bootROMDone = s.WRAM, s.HRAM, s.BootROMDone
	m.dma.active, m.dma.src, m.dma.remaining = s.DMAActive, s.DMASrc, s.DMARemain
}
