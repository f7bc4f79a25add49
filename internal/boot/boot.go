// Package boot implements an optional 256-byte DMG boot ROM mapped at
// 0x0000-0x00FF until the cartridge disables it via a write to BDIS
// (0xFF50).
package boot

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
)

// ROM is a loaded DMG boot ROM image.
type ROM struct {
	raw      []byte
	checksum string
}

// Load validates and wraps a boot ROM image. It returns an error rather
// than panicking on the wrong length, since an optional component should
// never be able to bring the whole machine down.
func Load(b []byte) (*ROM, error) {
	if len(b) != 256 {
		return nil, fmt.Errorf("boot: boot ROM must be 256 bytes, got %d", len(b))
	}
	sum := md5.Sum(b)
	return &ROM{raw: b, checksum: hex.EncodeToString(sum[:])}, nil
}

// Read returns the byte at the given address, 0..0xFF.
func (r *ROM) Read(addr uint16) uint8 { return r.raw[addr&0xFF] }

// Checksum returns the MD5 checksum of the boot ROM's bytes.
func (r *ROM) Checksum() string { return r.checksum }

// Model identifies the boot ROM by its checksum against known DMG-family
// dumps, or "unknown" if it doesn't match one.
func (r *ROM) Model() string {
	if model, ok := knownChecksums[r.checksum]; ok {
		return model
	}
	return "unknown"
}

var knownChecksums = map[string]string{
	dmg0: "Game Boy (DMG-0)",
	dmg:  "Game Boy (DMG-01)",
	mgb:  "Game Boy Pocket",
}

const (
	dmg0 = "a8f84a0ac44da5d3f0ee19f9cea80a8c"
	dmg  = "32fbbd84168d3482956eb3c5051637f5"
	mgb  = "71a378e71ff30b2d8a1f02bf5c7896aa"
)
