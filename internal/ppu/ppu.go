// Package ppu implements the Game Boy's pixel-processing unit: a
// scanline-at-a-time renderer (explicitly not pixel-FIFO accurate) that
// produces a 160x144 framebuffer of 2-bit color indices and drives the
// VBlank/STAT interrupt lines.
package ppu

import (
	"github.com/cespare/xxhash"

	"github.com/pixelfault/dmgboy/internal/bits"
	"github.com/pixelfault/dmgboy/internal/interrupts"
)

const (
	ScreenWidth  = 160
	ScreenHeight = 144

	dotsPerLine   = 456
	linesPerFrame = 154
	mode2Dots     = 80
	mode3Dots     = 172 // simplified, fixed-length approximation of mode 3
)

// Mode is one of the four PPU states exposed in STAT bits 1-0.
type Mode uint8

const (
	ModeHBlank Mode = 0
	ModeVBlank Mode = 1
	ModeOAM    Mode = 2
	ModeDraw   Mode = 3
)

// Controller is the PPU: VRAM, OAM, the LCDC/STAT register family, and the
// framebuffer it renders into.
type Controller struct {
	vram [0x2000]uint8
	oam  [0xA0]uint8

	lcdc, stat      uint8
	scy, scx        uint8
	ly, lyc         uint8
	bgp, obp0, obp1 uint8
	wy, wx          uint8

	dot  uint16
	mode Mode

	statLine   bool // previous value of the STAT interrupt OR, for edge detection
	windowLine uint8

	frame      [ScreenWidth * ScreenHeight]uint8
	frameReady bool

	irq *interrupts.Controller
}

// NewController returns a PPU with the LCD on and mode 2, matching
// post-boot-ROM hardware state.
func NewController(irq *interrupts.Controller) *Controller {
	return &Controller{lcdc: 0x91, stat: 0x85, bgp: 0xFC, mode: ModeOAM, irq: irq}
}

// ---- register access ----

func (p *Controller) ReadVRAM(address uint16) uint8 {
	if p.mode == ModeDraw && p.lcdOn() {
		return 0xFF
	}
	return p.vram[address&0x1FFF]
}

func (p *Controller) WriteVRAM(address uint16, value uint8) {
	if p.mode == ModeDraw && p.lcdOn() {
		return
	}
	p.vram[address&0x1FFF] = value
}

func (p *Controller) ReadOAM(address uint16) uint8 {
	if (p.mode == ModeOAM || p.mode == ModeDraw) && p.lcdOn() {
		return 0xFF
	}
	return p.oam[address&0xFF]
}

func (p *Controller) WriteOAM(address uint16, value uint8) {
	if (p.mode == ModeOAM || p.mode == ModeDraw) && p.lcdOn() {
		return
	}
	p.oam[address&0xFF] = value
}

// WriteOAMRaw bypasses mode-gating; OAM DMA's destination-side write
// happens regardless of the PPU's current mode.
func (p *Controller) WriteOAMRaw(offset uint8, value uint8) {
	p.oam[offset] = value
}

func (p *Controller) ReadLCDC() uint8 { return p.lcdc }
func (p *Controller) WriteLCDC(v uint8) {
	wasOn := p.lcdOn()
	p.lcdc = v
	if wasOn && !p.lcdOn() {
		p.ly = 0
		p.dot = 0
		p.mode = ModeHBlank
		p.windowLine = 0
		for i := range p.frame {
			p.frame[i] = 0
		}
		p.evaluateSTAT()
	}
}

func (p *Controller) lcdOn() bool { return bits.Test(p.lcdc, 7) }

// ReadSTAT returns STAT; bit 7 always reads set, the mode and coincidence
// bits are read-only outputs of the PPU state machine.
func (p *Controller) ReadSTAT() uint8 {
	v := p.stat&0x78 | uint8(p.mode)&0x03
	if p.ly == p.lyc {
		v |= bits.Bit2
	}
	return v | bits.Bit7
}

// WriteSTAT writes only the four interrupt-source enable bits (6..3); the
// coincidence flag and mode bits are outputs, not inputs.
func (p *Controller) WriteSTAT(v uint8) {
	p.stat = v & 0x78
	p.evaluateSTAT()
}

func (p *Controller) ReadLY() uint8 { return p.ly }

func (p *Controller) ReadLYC() uint8   { return p.lyc }
func (p *Controller) WriteLYC(v uint8) { p.lyc = v; p.evaluateSTAT() }

func (p *Controller) ReadSCY() uint8   { return p.scy }
func (p *Controller) WriteSCY(v uint8) { p.scy = v }
func (p *Controller) ReadSCX() uint8   { return p.scx }
func (p *Controller) WriteSCX(v uint8) { p.scx = v }
func (p *Controller) ReadWY() uint8    { return p.wy }
func (p *Controller) WriteWY(v uint8)  { p.wy = v }
func (p *Controller) ReadWX() uint8    { return p.wx }
func (p *Controller) WriteWX(v uint8)  { p.wx = v }

func (p *Controller) ReadBGP() uint8    { return p.bgp }
func (p *Controller) WriteBGP(v uint8)  { p.bgp = v }
func (p *Controller) ReadOBP0() uint8   { return p.obp0 }
func (p *Controller) WriteOBP0(v uint8) { p.obp0 = v }
func (p *Controller) ReadOBP1() uint8   { return p.obp1 }
func (p *Controller) WriteOBP1(v uint8) { p.obp1 = v }

// Framebuffer returns the last fully rendered frame as 2-bit color
// indices, row-major.
func (p *Controller) Framebuffer() []uint8 { return p.frame[:] }

// FramebufferHash returns an xxhash64 digest of the current framebuffer,
// for comparing a rendered frame against a known-good reference without
// checking in a full image fixture.
func (p *Controller) FramebufferHash() uint64 { return xxhash.Sum64(p.frame[:]) }

// HasFrame reports whether a frame completed since the last call to
// ConsumeFrame, i.e. LY wrapped from 153 to 0.
func (p *Controller) HasFrame() bool { return p.frameReady }

// ConsumeFrame clears the frame-ready flag; the driver calls this after
// handing the framebuffer to the host.
func (p *Controller) ConsumeFrame() { p.frameReady = false }

// ---- stepping ----

// Step advances the PPU by the given number of T-cycles.
func (p *Controller) Step(cycles uint8) {
	if !p.lcdOn() {
		return
	}
	remaining := uint16(cycles)
	for remaining > 0 {
		remaining--
		p.tick()
	}
}

func (p *Controller) tick() {
	p.dot++

	if p.ly < ScreenHeight {
		switch {
		case p.dot == mode2Dots:
			p.mode = ModeDraw
		case p.dot == mode2Dots+mode3Dots:
			p.renderScanline()
			p.mode = ModeHBlank
		}
	}

	if p.dot >= dotsPerLine {
		p.dot = 0
		p.ly++

		if p.ly == ScreenHeight {
			p.mode = ModeVBlank
			p.irq.Request(interrupts.VBlank)
		} else if p.ly == linesPerFrame {
			p.ly = 0
			p.windowLine = 0
			p.mode = ModeOAM
			p.frameReady = true
		} else if p.ly < ScreenHeight {
			p.mode = ModeOAM
		}
	}

	p.evaluateSTAT()
}

// evaluateSTAT recomputes the STAT interrupt OR line and requests the
// STAT interrupt only on its rising edge (STAT blocking).
func (p *Controller) evaluateSTAT() {
	line := (p.ly == p.lyc && bits.Test(p.stat, 6)) ||
		(p.mode == ModeHBlank && bits.Test(p.stat, 3)) ||
		(p.mode == ModeVBlank && bits.Test(p.stat, 4)) ||
		(p.mode == ModeOAM && bits.Test(p.stat, 5))

	if line && !p.statLine {
		p.irq.Request(interrupts.STAT)
	}
	p.statLine = line
}

// State is the serialized form of Controller.
type State struct {
	VRAM                          [0x2000]uint8
	OAM                           [0xA0]uint8
	LCDC, STAT, SCY, SCX, LY, LYC uint8
	BGP, OBP0, OBP1, WY, WX       uint8
	Dot                           uint16
	Mode                          Mode
	StatLine                      bool
	WindowLine                    uint8
	Frame                         [ScreenWidth * ScreenHeight]uint8
	FrameReady                    bool
}

func (p *Controller) Save() State {
	return State{
		VRAM: p.vram, OAM: p.oam,
		LCDC: p.lcdc, STAT: p.stat, SCY: p.scy, SCX: p.scx, LY: p.ly, LYC: p.lyc,
		BGP: p.bgp, OBP0: p.obp0, OBP1: p.obp1, WY: p.wy, WX: p.wx,
		Dot: p.dot, Mode: p.mode, StatLine: p.statLine, WindowLine: p.windowLine,
		Frame: p.frame, FrameReady: p.frameReady,
	}
}

func (p *Controller) Restore(s State) {
	p.vram, p.oam = s.VRAM, s.OAM
	p.lcdc, p.stat, p.scy, p.scx, p.ly, p.lyc = s.LCDC, s.STAT, s.SCY, s.SCX, s.LY, s.LYC
	p.bgp, p.obp0, p.obp1, p.wy, p.wx = s.BGP, s.OBP0, s.OBP1, s.WY, s.WX
	p.dot, p.mode, p.statLine, p.windowLine = s.Dot, s.Mode, s.StatLine, s.WindowLine
	p.frame, p.frameReady = s.Frame, s.FrameReady
}
