package cartridge

import "time"

// rtc is the MBC3 real-time clock: seconds/minutes/hours/day-counter
// registers that advance from wall-clock time elapsed since the last
// update, plus a latched snapshot that 0xA000-0xBFFF actually exposes
// while the RTC register select is active.
type rtc struct {
	seconds, minutes, hours uint8
	daysLower                uint8
	daysHigherAndControl     uint8 // bit0: day MSB, bit6: halt, bit7: day overflow

	latchedSeconds, latchedMinutes, latchedHours uint8
	latchedDaysLower, latchedDaysHigherAndControl uint8

	register   uint8 // not written by mbc3, which keeps the selected RTC register in its ramBank field
	latchState uint8 // last byte written to 6000-7FFF, for the 0x00-then-0x01 latch sequence
	lastUpdate time.Time

	now func() time.Time
}

func newRTC(now func() time.Time) *rtc {
	return &rtc{now: now, lastUpdate: now()}
}

// update advances the clock registers by the wall-clock time elapsed
// since the last call, unless the halt bit is set.
func (r *rtc) update() {
	if r.daysHigherAndControl&0x40 != 0 {
		return
	}
	now := r.now()
	delta := now.Sub(r.lastUpdate)
	if delta < time.Second {
		return
	}
	r.lastUpdate = now

	seconds := int64(delta.Seconds())

	total := int64(r.seconds) + seconds
	r.seconds = uint8(total % 60)
	total /= 60

	total += int64(r.minutes)
	r.minutes = uint8(total % 60)
	total /= 60

	total += int64(r.hours)
	r.hours = uint8(total % 24)
	total /= 24

	days := total + int64(r.daysLower) + int64(r.daysHigherAndControl&0x01)<<8
	if days >= 512 {
		days %= 512
		r.daysHigherAndControl ^= 0x80
	}
	r.daysLower = uint8(days & 0xFF)
	r.daysHigherAndControl = r.daysHigherAndControl&0xFE | uint8(days>>8&0x01)
}

func (r *rtc) latch() {
	r.update()
	r.latchedSeconds = r.seconds
	r.latchedMinutes = r.minutes
	r.latchedHours = r.hours
	r.latchedDaysLower = r.daysLower
	r.latchedDaysHigherAndControl = r.daysHigherAndControl
}

func (r *rtc) readLatched(reg uint8) uint8 {
	switch reg {
	case 0x08:
		return r.latchedSeconds
	case 0x09:
		return r.latchedMinutes
	case 0x0A:
		return r.latchedHours
	case 0x0B:
		return r.latchedDaysLower
	case 0x0C:
		return r.latchedDaysHigherAndControl
	}
	return 0xFF
}

func (r *rtc) write(reg, value uint8) {
	switch reg {
	case 0x08:
		r.seconds = value & 0x3F
	case 0x09:
		r.minutes = value & 0x3F
	case 0x0A:
		r.hours = value & 0x1F
	case 0x0B:
		r.daysLower = value
	case 0x0C:
		r.daysHigherAndControl = value & 0xC1
	}
}

// mbc3 implements the MBC3 controller: a 7-bit ROM bank register, up to 4
// RAM banks, and an optional real-time clock exposed at RAM-bank select
// values 0x08-0x0C.
type mbc3 struct {
	mbcBase

	romBank uint
	ramBank uint8 // RAM bank 0-3, or an RTC register select 0x08-0x0C
	rtcMode bool

	hasRTC bool
	rtc    *rtc
}

func newMBC3(rom []byte, h Header, now func() time.Time) Cartridge {
	hasRTC := h.CartridgeType == MBC3TIMERBATT || h.CartridgeType == MBC3TIMERRAMBATT
	m := &mbc3{mbcBase: newMBCBase(rom, h), romBank: 1, hasRTC: hasRTC}
	if hasRTC {
		m.rtc = newRTC(now)
	}
	return m
}

func (m *mbc3) Read(address uint16) uint8 {
	switch {
	case address < 0x4000:
		return m.readROMBank(0, address)
	case address < 0x8000:
		return m.readROMBank(m.romBank, address-0x4000)
	case address >= 0xA000 && address < 0xC000:
		if m.rtcMode {
			if m.hasRTC && m.ramEnabled {
				return m.rtc.readLatched(m.ramBank)
			}
			return 0xFF
		}
		if !m.ramEnabled || len(m.ram) == 0 {
			return 0xFF
		}
		offset := uint(m.ramBank)*0x2000 + uint(address&0x1FFF)
		if offset >= uint(len(m.ram)) {
			return 0xFF
		}
		return m.ram[offset]
	}
	return 0xFF
}

func (m *mbc3) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x4000:
		bank := uint(value & 0x7F)
		if bank == 0 {
			bank = 1
		}
		m.romBank = bank
	case address < 0x6000:
		if value >= 0x08 && value <= 0x0C {
			m.ramBank = value
			m.rtcMode = true
		} else if value <= 0x03 {
			m.ramBank = value & 0x03
			m.rtcMode = false
		}
	case address < 0x8000:
		if m.hasRTC {
			if m.rtc.latchState == 0x00 && value == 0x01 {
				m.rtc.latch()
			}
			m.rtc.latchState = value
		}
	case address >= 0xA000 && address < 0xC000:
		if m.rtcMode {
			if m.hasRTC && m.ramEnabled {
				m.rtc.write(m.ramBank, value)
			}
			return
		}
		if !m.ramEnabled || len(m.ram) == 0 {
			return
		}
		offset := uint(m.ramBank)*0x2000 + uint(address&0x1FFF)
		if offset < uint(len(m.ram)) {
			m.ram[offset] = value
		}
	}
}
