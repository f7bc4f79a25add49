package ppu

import (
	"sort"

	"github.com/pixelfault/dmgboy/internal/bits"
)

// renderScanline renders the current LY into the framebuffer in one shot:
// background, then window, then objects. Called at the mode 3 -> mode 0
// transition.
func (p *Controller) renderScanline() {
	if !p.lcdOn() {
		return
	}
	row := int(p.ly) * ScreenWidth

	p.renderBackground(row)
	p.renderWindow(row)
	p.renderObjects(row)
}

func (p *Controller) renderBackground(row int) {
	if !bits.Test(p.lcdc, 0) {
		for x := 0; x < ScreenWidth; x++ {
			p.frame[row+x] = 0
		}
		return
	}
	tilemap := uint16(0x9800)
	if bits.Test(p.lcdc, 3) {
		tilemap = 0x9C00
	}
	y := uint16(p.scy) + uint16(p.ly)
	for x := 0; x < ScreenWidth; x++ {
		xs := (uint16(p.scx) + uint16(x)) & 0xFF
		ys := y & 0xFF
		p.frame[row+x] = p.tilePixel(tilemap, xs, ys)
	}
}

func (p *Controller) renderWindow(row int) {
	if !bits.Test(p.lcdc, 5) || p.wy > p.ly || p.wx > 166 {
		return
	}
	tilemap := uint16(0x9800)
	if bits.Test(p.lcdc, 6) {
		tilemap = 0x9C00
	}
	startX := int(p.wx) - 7
	drawn := false
	for x := 0; x < ScreenWidth; x++ {
		if x < startX {
			continue
		}
		wx := uint16(x - startX)
		wy := uint16(p.windowLine)
		p.frame[row+x] = p.tilePixel(tilemap, wx, wy)
		drawn = true
	}
	if drawn {
		p.windowLine++
	}
}

// tilePixel resolves one background/window pixel at tile-space coordinate
// (x,y) through the given tilemap, translated through BGP.
func (p *Controller) tilePixel(tilemap uint16, x, y uint16) uint8 {
	tileCol := x / 8
	tileRow := y / 8
	mapIdx := tilemap + tileRow*32 + tileCol
	tileID := p.vram[mapIdx&0x1FFF]

	var addr uint16
	if bits.Test(p.lcdc, 4) {
		addr = 0x8000 + uint16(tileID)*16
	} else {
		addr = uint16(0x9000 + int(int8(tileID))*16)
	}
	line := (y % 8) * 2
	lo := p.vram[(addr+line)&0x1FFF]
	hi := p.vram[(addr+line+1)&0x1FFF]

	bit := 7 - (x % 8)
	colorNum := (lo>>bit)&1 | ((hi>>bit)&1)<<1
	return applyPalette(p.bgp, colorNum)
}

// object is one OAM entry, decoded once per scanline for the 10-sprite
// scan.
type object struct {
	y, x, tile, attr uint8
	oamIndex         int
}

func (p *Controller) renderObjects(row int) {
	if !bits.Test(p.lcdc, 1) {
		return
	}
	tall := bits.Test(p.lcdc, 2)
	height := uint8(8)
	if tall {
		height = 16
	}

	var visible []object
	for i := 0; i < 40 && len(visible) < 10; i++ {
		base := i * 4
		oy := p.oam[base]
		spriteY := int(oy) - 16
		if int(p.ly) < spriteY || int(p.ly) >= spriteY+int(height) {
			continue
		}
		visible = append(visible, object{
			y: oy, x: p.oam[base+1], tile: p.oam[base+2], attr: p.oam[base+3], oamIndex: i,
		})
	}

	// sorted highest priority first: lowest X, ties broken by lower OAM
	// index. The loop below draws them in reverse of this order, so a
	// higher-priority sprite is painted last and its opaque pixels win
	// over a lower-priority sprite's.
	sort.SliceStable(visible, func(a, b int) bool {
		if visible[a].x != visible[b].x {
			return visible[a].x < visible[b].x
		}
		return visible[a].oamIndex < visible[b].oamIndex
	})

	// behindBG (OBJ-to-BG priority, attr bit 7) hides a sprite pixel behind
	// a non-zero *background/window* pixel, never behind another sprite's
	// pixel. Captured once before any sprite is drawn, so a lower-priority
	// sprite drawn first (to get overwrite order right) can't poison this
	// check for a higher-priority sprite drawn after it.
	bgRow := make([]uint8, ScreenWidth)
	copy(bgRow, p.frame[row:row+ScreenWidth])

	for i := len(visible) - 1; i >= 0; i-- {
		p.renderObject(row, bgRow, visible[i], height)
	}
}

func (p *Controller) renderObject(row int, bgRow []uint8, o object, height uint8) {
	spriteY := int(o.y) - 16
	spriteX := int(o.x) - 8

	line := uint8(int(p.ly) - spriteY)
	if o.attr&0x40 != 0 { // Y flip
		line = height - 1 - line
	}

	tile := o.tile
	if height == 16 {
		tile &^= 0x01
	}
	addr := 0x8000 + uint16(tile)*16 + uint16(line)*2
	lo := p.vram[addr&0x1FFF]
	hi := p.vram[(addr+1)&0x1FFF]

	palette := p.obp0
	if o.attr&0x10 != 0 {
		palette = p.obp1
	}
	behindBG := o.attr&0x80 != 0

	for px := 0; px < 8; px++ {
		x := spriteX + px
		if x < 0 || x >= ScreenWidth {
			continue
		}
		bit := uint8(px)
		if o.attr&0x20 == 0 { // no X flip: MSB is leftmost pixel
			bit = 7 - bit
		}
		colorNum := (lo>>bit)&1 | ((hi>>bit)&1)<<1
		if colorNum == 0 {
			continue
		}
		if behindBG && bgRow[x] != 0 {
			continue
		}
		p.frame[row+x] = applyPalette(palette, colorNum)
	}
}

func applyPalette(p uint8, colorNum uint8) uint8 {
	return (p >> (colorNum * 2)) & 0x03
}
