package nes

import "github.com/golang/glog"

type mapper0 struct {
	prgROM      []byte
	chrROM      []byte
	prgMask     uint16
	writableCHR bool
}

// Mapper0: https://www.nesdev.org/wiki/NROM

func newMapper0(prgROM []byte, chrROM []byte, writableCHR bool) *mapper0 {
	// CPU $C000-$FFFF: Last 16 KB of ROM (NROM-256) or mirror of $8000-$BFFF (NROM-128).
	var mask uint16 = 0x3FFF
	if len(prgROM) > prgROMSizeUnit {
		mask = 0x7FFF
	}
	return &mapper0{prgROM: prgROM, chrROM: chrROM, prgMask: mask, writableCHR: writableCHR}
}

func (m *mapper0) ReadFromCPU(address uint16) (byte, bool) {
	if 0x8000 <= address {
		return m.prgROM[address&m.prgMask], true
	}
	return 0, false
}

func (m *mapper0) WriteFromCPU(address uint16, data byte) bool {
	if 0x8000 <= address {
		glog.V(2).Infof("Ignored write to PRG-ROM: address=0x%04x, data=0x%02x", address, data)
	}
	return false
}

func (m *mapper0) ReadFromPPU(address uint16) (byte, bool) {
	if address < 0x2000 {
		return m.chrROM[address], true
	}
	return 0, false
}

func (m *mapper0) WriteFromPPU(address uint16, data byte) bool {
	if address < 0x2000 && m.writableCHR {
		m.chrROM[address] = data
		return true
	}
	return false
}
