package cartridge

// mbcBase holds the state common to every banked cartridge: the full ROM
// image, external RAM, and the RAM-enable latch every MBC exposes at
// 0000-1FFF.
type mbcBase struct {
	rom, ram []byte
	header   Header

	ramEnabled bool
}

func newMBCBase(rom []byte, h Header) mbcBase {
	return mbcBase{rom: rom, ram: make([]byte, h.RAMSize), header: h}
}

func (m *mbcBase) Header() Header { return m.header }
func (m *mbcBase) Title() string  { return m.header.Title }
func (m *mbcBase) Battery() bool  { return m.header.Battery() }
func (m *mbcBase) RAM() []byte    { return m.ram }

func (m *mbcBase) LoadRAM(data []byte) {
	n := copy(m.ram, data)
	for i := n; i < len(m.ram); i++ {
		m.ram[i] = 0
	}
}

// romBankCount is the number of 16KiB banks in the ROM image.
func (m *mbcBase) romBankCount() uint {
	return uint(len(m.rom)) / 0x4000
}

// ramBankCount is the number of 8KiB banks of external RAM.
func (m *mbcBase) ramBankCount() uint {
	if len(m.ram) == 0 {
		return 0
	}
	return uint(len(m.ram)) / 0x2000
}

// wrapROMBank reduces bank against the ROM's actual bank count, matching
// hardware's behaviour of ignoring unimplemented high address lines rather
// than faulting.
func wrapROMBank(bank, count uint) uint {
	if count == 0 {
		return 0
	}
	return bank % count
}

// readROMBank reads a byte at offset within the given 16KiB bank, clamped
// to the ROM's actual size.
func (m *mbcBase) readROMBank(bank uint, offset uint16) uint8 {
	count := m.romBankCount()
	if count == 0 {
		return 0xFF
	}
	bank = wrapROMBank(bank, count)
	addr := bank*0x4000 + uint(offset)
	if addr >= uint(len(m.rom)) {
		return 0xFF
	}
	return m.rom[addr]
}
