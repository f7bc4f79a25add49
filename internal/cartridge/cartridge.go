// Package cartridge parses Game Boy ROM headers and implements the
// memory bank controllers (MBCs) cartridges use to map more than 32KiB
// of ROM or 8KiB of RAM into the CPU's 16-bit address space.
package cartridge

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Cartridge is the MMU-facing contract every MBC implementation
// satisfies: ROM/RAM reads and writes over 0000-7FFF and A000-BFFF.
type Cartridge interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)

	Header() Header
	Title() string

	// Battery reports whether this cartridge persists RAM.
	Battery() bool
	// RAM returns the external RAM for save_ram(); nil if there is none.
	RAM() []byte
	// LoadRAM restores external RAM from a previous save_ram() call.
	LoadRAM(data []byte)
}

// mbcConstructors dispatches header byte 0x147 to the MBC that
// implements it. A type absent from this map is an unknown/unsupported
// cartridge type, which Load reports as a malformed-ROM error.
var mbcConstructors = map[Type]func(rom []byte, h Header) Cartridge{
	ROM:               func(rom []byte, h Header) Cartridge { return newROMOnly(rom, h) },
	ROMRAM:            func(rom []byte, h Header) Cartridge { return newROMRAM(rom, h) },
	ROMRAMBATT:        func(rom []byte, h Header) Cartridge { return newROMRAM(rom, h) },
	MBC1:              func(rom []byte, h Header) Cartridge { return newMBC1(rom, h) },
	MBC1RAM:           func(rom []byte, h Header) Cartridge { return newMBC1(rom, h) },
	MBC1RAMBATT:       func(rom []byte, h Header) Cartridge { return newMBC1(rom, h) },
	MBC2:              func(rom []byte, h Header) Cartridge { return newMBC2(rom, h) },
	MBC2BATT:          func(rom []byte, h Header) Cartridge { return newMBC2(rom, h) },
	MBC3:              func(rom []byte, h Header) Cartridge { return newMBC3(rom, h, time.Now) },
	MBC3RAM:           func(rom []byte, h Header) Cartridge { return newMBC3(rom, h, time.Now) },
	MBC3RAMBATT:       func(rom []byte, h Header) Cartridge { return newMBC3(rom, h, time.Now) },
	MBC3TIMERBATT:     func(rom []byte, h Header) Cartridge { return newMBC3(rom, h, time.Now) },
	MBC3TIMERRAMBATT:  func(rom []byte, h Header) Cartridge { return newMBC3(rom, h, time.Now) },
	MBC5:              func(rom []byte, h Header) Cartridge { return newMBC5(rom, h) },
	MBC5RAM:           func(rom []byte, h Header) Cartridge { return newMBC5(rom, h) },
	MBC5RAMBATT:       func(rom []byte, h Header) Cartridge { return newMBC5(rom, h) },
	MBC5RUMBLE:        func(rom []byte, h Header) Cartridge { return newMBC5(rom, h) },
	MBC5RUMBLERAM:     func(rom []byte, h Header) Cartridge { return newMBC5(rom, h) },
	MBC5RUMBLERAMBATT: func(rom []byte, h Header) Cartridge { return newMBC5(rom, h) },
}

// Load parses rom's header and constructs the matching Cartridge. It
// returns an error for a truncated header, an unknown MBC byte, an
// invalid ROM or RAM size byte, a file shorter than its declared ROM
// size, or a ROM-only cartridge (type 0x00) that declares external RAM;
// the core is never instantiated on failure. No other RAM-size/MBC-type
// combination is checked: every other type is accepted with whatever RAM
// size its header declares.
func Load(rom []byte, log *logrus.Logger) (Cartridge, error) {
	header, err := parseHeader(rom)
	if err != nil {
		return nil, err
	}
	if log != nil {
		log.Debugf("cartridge: loaded %s", header.String())
	}
	return mbcConstructors[header.CartridgeType](rom, header), nil
}
