package machine

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/cespare/xxhash"
	"github.com/google/brotli/go/cbrotli"

	"github.com/pixelfault/dmgboy/internal/cpu"
	"github.com/pixelfault/dmgboy/internal/interrupts"
	"github.com/pixelfault/dmgboy/internal/joypad"
	"github.com/pixelfault/dmgboy/internal/mmu"
	"github.com/pixelfault/dmgboy/internal/ppu"
	"github.com/pixelfault/dmgboy/internal/serial"
	"github.com/pixelfault/dmgboy/internal/timer"
)

// stateMagic tags a savestate blob so LoadState can reject anything that
// didn't come from SaveState before touching the live machine.
const stateMagic = "dmgboy-state-1"

// snapshot is the aggregate of every component's own State value. Each
// component owns its serialization; this just bundles them.
type snapshot struct {
	Magic string

	CPU    cpu.State
	MMU    mmu.State
	PPU    ppu.State
	Timer  timer.State
	Joypad joypad.State
	Serial serial.State
	IRQ    interrupts.State

	RAM []byte // cartridge external RAM, nil if the cartridge has none

	Checksum uint64
}

// SaveState serializes the machine's full state: every component's State
// struct, gob-encoded and brotli-compressed, with an xxhash checksum of
// the uncompressed payload for LoadState to verify.
func (m *Machine) SaveState() ([]byte, error) {
	s := snapshot{
		Magic:  stateMagic,
		CPU:    m.CPU.Save(),
		MMU:    m.MMU.Save(),
		PPU:    m.PPU.Save(),
		Timer:  m.Timer.Save(),
		Joypad: m.Joypad.Save(),
		Serial: m.Serial.Save(),
		IRQ:    m.IRQ.Save(),
		RAM:    m.cart.RAM(),
	}

	var raw bytes.Buffer
	if err := gob.NewEncoder(&raw).Encode(&s); err != nil {
		return nil, fmt.Errorf("machine: encode savestate: %w", err)
	}
	s.Checksum = xxhash.Sum64(raw.Bytes())

	var final bytes.Buffer
	if err := gob.NewEncoder(&final).Encode(&s); err != nil {
		return nil, fmt.Errorf("machine: encode savestate: %w", err)
	}

	return cbrotli.Encode(final.Bytes(), cbrotli.WriterOptions{Quality: 9})
}

// LoadState reverses SaveState. A blob that fails to decompress, decode,
// or checksum-verify is rejected without mutating the live machine.
func (m *Machine) LoadState(blob []byte) error {
	decoded, err := cbrotli.Decode(blob)
	if err != nil {
		return fmt.Errorf("machine: decompress savestate: %w", err)
	}

	var s snapshot
	if err := gob.NewDecoder(bytes.NewReader(decoded)).Decode(&s); err != nil {
		return fmt.Errorf("machine: decode savestate: %w", err)
	}
	if s.Magic != stateMagic {
		return fmt.Errorf("machine: savestate has wrong magic %q", s.Magic)
	}

	wantChecksum := s.Checksum
	s.Checksum = 0
	var raw bytes.Buffer
	if err := gob.NewEncoder(&raw).Encode(&s); err != nil {
		return fmt.Errorf("machine: re-encode savestate for verification: %w", err)
	}
	if xxhash.Sum64(raw.Bytes()) != wantChecksum {
		return fmt.Errorf("machine: savestate checksum mismatch")
	}

	m.CPU.Restore(s.CPU)
	m.MMU.Restore(s.MMU)
	m.PPU.Restore(s.PPU)
	m.Timer.Restore(s.Timer)
	m.Joypad.Restore(s.Joypad)
	m.Serial.Restore(s.Serial)
	m.IRQ.Restore(s.IRQ)
	if s.RAM != nil {
		m.cart.LoadRAM(s.RAM)
	}
	return nil
}
