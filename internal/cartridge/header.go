package cartridge

import "fmt"

// Type identifies the cartridge's memory bank controller, from header
// byte 0x147.
type Type uint8

const (
	ROM               Type = 0x00
	MBC1              Type = 0x01
	MBC1RAM           Type = 0x02
	MBC1RAMBATT       Type = 0x03
	MBC2              Type = 0x05
	MBC2BATT          Type = 0x06
	ROMRAM            Type = 0x08
	ROMRAMBATT        Type = 0x09
	MBC3TIMERBATT     Type = 0x0F
	MBC3TIMERRAMBATT  Type = 0x10
	MBC3              Type = 0x11
	MBC3RAM           Type = 0x12
	MBC3RAMBATT       Type = 0x13
	MBC5              Type = 0x19
	MBC5RAM           Type = 0x1A
	MBC5RAMBATT       Type = 0x1B
	MBC5RUMBLE        Type = 0x1C
	MBC5RUMBLERAM     Type = 0x1D
	MBC5RUMBLERAMBATT Type = 0x1E
)

// ramSizes maps header byte 0x149 to a RAM size in bytes.
var ramSizes = map[uint8]uint{
	0x00: 0,
	0x01: 2 * 1024,
	0x02: 8 * 1024,
	0x03: 32 * 1024,
	0x04: 128 * 1024,
	0x05: 64 * 1024,
}

// Header is the parsed form of the cartridge header at 0x0100-0x014F.
type Header struct {
	Title           string
	CartridgeType   Type
	ROMSize         uint
	RAMSize         uint
	OldLicenseeCode uint8
	HeaderChecksum  uint8
	GlobalChecksum  uint16
}

// Battery reports whether this cartridge type has battery-backed RAM.
func (h Header) Battery() bool {
	switch h.CartridgeType {
	case MBC1RAMBATT, MBC2BATT, ROMRAMBATT, MBC3TIMERBATT, MBC3TIMERRAMBATT,
		MBC3RAMBATT, MBC5RAMBATT, MBC5RUMBLERAMBATT:
		return true
	}
	return false
}

func (h Header) String() string {
	return fmt.Sprintf("%s (type %02X, ROM %dKiB, RAM %dKiB)", h.Title, h.CartridgeType, h.ROMSize/1024, h.RAMSize/1024)
}

// parseHeader parses the 0x50-byte header region (0x100-0x14F) of a ROM
// image. It returns an error instead of panicking on a truncated or
// internally inconsistent header (spec.md §7 category "malformed ROM").
func parseHeader(rom []byte) (Header, error) {
	if len(rom) < 0x150 {
		return Header{}, fmt.Errorf("cartridge: truncated header: ROM is %d bytes, need at least 0x150", len(rom))
	}

	h := Header{}
	header := rom[0x100:0x150]

	// title occupies 0x134-0x143; trim trailing NULs.
	title := header[0x34:0x44]
	end := len(title)
	for end > 0 && title[end-1] == 0 {
		end--
	}
	h.Title = string(title[:end])

	h.CartridgeType = Type(header[0x47])
	if _, ok := mbcConstructors[h.CartridgeType]; !ok {
		return Header{}, fmt.Errorf("cartridge: unknown cartridge type byte 0x147=%02X", h.CartridgeType)
	}

	if header[0x48] > 8 {
		return Header{}, fmt.Errorf("cartridge: invalid ROM size byte 0x148=%02X", header[0x48])
	}
	h.ROMSize = (32 * 1024) << header[0x48]

	ramSize, ok := ramSizes[header[0x49]]
	if !ok {
		return Header{}, fmt.Errorf("cartridge: invalid RAM size byte 0x149=%02X", header[0x49])
	}
	h.RAMSize = ramSize
	if h.RAMSize > 0 && h.CartridgeType == ROM {
		return Header{}, fmt.Errorf("cartridge: ROM-only cartridge declares non-zero RAM size")
	}

	h.OldLicenseeCode = header[0x4B]
	h.HeaderChecksum = header[0x4D]
	h.GlobalChecksum = uint16(header[0x4E])<<8 | uint16(header[0x4F])

	if uint(len(rom)) < h.ROMSize {
		return Header{}, fmt.Errorf("cartridge: ROM file is %d bytes, header declares %d", len(rom), h.ROMSize)
	}

	return h, nil
}
