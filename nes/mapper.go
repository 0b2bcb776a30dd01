package nes

import "fmt"

// Mapper translates bus addresses into cartridge memory. Each method reports
// whether the address belongs to the cartridge.
type Mapper interface {
	ReadFromCPU(uint16) (byte, bool)
	WriteFromCPU(uint16, byte) bool
	ReadFromPPU(uint16) (byte, bool)
	WriteFromPPU(uint16, byte) bool
}

func newMapper(number byte, prgROM []byte, chrROM []byte, writableCHR bool) (Mapper, error) {
	switch number {
	case 0:
		return newMapper0(prgROM, chrROM, writableCHR), nil
	}
	return nil, fmt.Errorf("mapper %d: %w", number, ErrUnsupportedMapper)
}
