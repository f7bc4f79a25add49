// Package palette resolves the PPU's 2-bit framebuffer color indices to
// RGB at present time, decoupling the core from any particular display
// color scheme.
package palette

// Palette maps the four 2-bit shade indices a Game Boy screen can produce
// to RGB888.
type Palette struct {
	Colors [4][3]uint8
}

// Named palettes, selectable by the host frontend. Greyscale approximates
// a generic LCD; Green approximates the original DMG's greenish panel.
const (
	Greyscale = iota
	Green
	Red
	Yellow
)

var presets = []Palette{
	Greyscale: {Colors: [4][3]uint8{
		{0xFF, 0xFF, 0xFF}, {0xCC, 0xCC, 0xCC}, {0x77, 0x77, 0x77}, {0x00, 0x00, 0x00},
	}},
	Green: {Colors: [4][3]uint8{
		{0x9B, 0xBC, 0x0F}, {0x8B, 0xAC, 0x0F}, {0x30, 0x62, 0x30}, {0x0F, 0x38, 0x0F},
	}},
	Red: {Colors: [4][3]uint8{
		{0xFF, 0x00, 0x00}, {0xCC, 0x00, 0x00}, {0x77, 0x00, 0x00}, {0x00, 0x00, 0x00},
	}},
	Yellow: {Colors: [4][3]uint8{
		{0xFF, 0xFF, 0x00}, {0xCC, 0xCC, 0x00}, {0x77, 0x77, 0x00}, {0x00, 0x00, 0x00},
	}},
}

// Named returns one of the built-in palettes.
func Named(id int) Palette {
	if id < 0 || id >= len(presets) {
		return presets[Greyscale]
	}
	return presets[id]
}

// Resolve converts a slice of 2-bit color indices (as produced by the
// PPU's framebuffer) into a flat RGB888 byte slice, 3 bytes per pixel.
func (p Palette) Resolve(indices []uint8) []byte {
	out := make([]byte, 0, len(indices)*3)
	for _, idx := range indices {
		c := p.Colors[idx&0x03]
		out = append(out, c[0], c[1], c[2])
	}
	return out
}

// ResolveRGBA is Resolve with an opaque alpha channel appended to each
// pixel, for consumers (the remote framebuffer stream) that need a
// format browsers decode directly into a canvas ImageData.
func (p Palette) ResolveRGBA(indices []uint8) []byte {
	out := make([]byte, 0, len(indices)*4)
	for _, idx := range indices {
		c := p.Colors[idx&0x03]
		out = append(out, c[0], c[1], c[2], 0xFF)
	}
	return out
}
