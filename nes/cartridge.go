package nes

import (
	"errors"
	"fmt"

	"github.com/golang/glog"
)

const (
	chrROMSizeUnit      int  = 0x2000 // 8KB
	prgROMSizeUnit      int  = 0x4000 // 16KB
	trainerSizeBytes    int  = 512
	inesHeaderSizeBytes int  = 16 // The valid INES header has 16 bytes
	msDOSEOF            byte = 0x1A
)

var (
	// ErrInvalidFormat is returned when the image is not a complete iNES file.
	ErrInvalidFormat = errors.New("invalid iNES image")
	// ErrUnsupportedMapper is returned for any board other than NROM.
	ErrUnsupportedMapper = errors.New("unsupported mapper")
)

// Mirroring is how the two physical nametables fill the four logical ones.
type Mirroring int

const (
	Horizontal Mirroring = iota
	Vertical
)

func (m Mirroring) String() string {
	if m == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// header is the 16 byte iNES header.
// https://www.nesdev.org/wiki/INES
type header struct {
	prgBanks byte
	chrBanks byte
	flags6   byte // https://www.nesdev.org/wiki/INES#Flags_6
	flags7   byte // https://www.nesdev.org/wiki/INES#Flags_7
	prgRAM   byte // https://www.nesdev.org/wiki/INES#Flags_8
	flags9   byte // https://www.nesdev.org/wiki/INES#Flags_9
	flags10  byte // https://www.nesdev.org/wiki/INES#Flags_10
}

func (h header) mapperNumber() byte {
	return h.flags7&0xF0 | h.flags6>>4
}

func (h header) hasTrainer() bool {
	return h.flags6&0x04 != 0
}

// mirroring reads bit0 as vertical and bit1 as horizontal, anything ambiguous
// falls back to horizontal.
func (h header) mirroring() Mirroring {
	vertical := h.flags6&0x01 != 0
	horizontal := h.flags6&0x02 != 0
	if vertical && horizontal {
		glog.Warningf("Both mirroring bits are set in flags6=0x%02x, using horizontal", h.flags6)
	}
	if vertical && !horizontal {
		return Vertical
	}
	return Horizontal
}

// Cartridge is a loaded ROM image, immutable after LoadCartridge except for
// CHR-RAM contents.
type Cartridge struct {
	header    header
	prgROM    []byte
	chrROM    []byte
	mapper    Mapper
	mirroring Mirroring
}

// isValid checks whether the data starts with the INES magic.
func isValid(data []byte) bool {
	return len(data) >= inesHeaderSizeBytes &&
		data[0] == byte('N') &&
		data[1] == byte('E') &&
		data[2] == byte('S') &&
		data[3] == msDOSEOF
}

// LoadCartridge parses an iNES image. Nothing is returned on error.
func LoadCartridge(data []byte) (*Cartridge, error) {
	if !isValid(data) {
		return nil, fmt.Errorf("the buffer does not start with the NES magic: %w", ErrInvalidFormat)
	}
	h := header{
		prgBanks: data[4],
		chrBanks: data[5],
		flags6:   data[6],
		flags7:   data[7],
		prgRAM:   data[8],
		flags9:   data[9],
		flags10:  data[10],
	}
	if h.prgBanks == 0 {
		return nil, fmt.Errorf("the image declares no PRG banks: %w", ErrInvalidFormat)
	}
	offset := inesHeaderSizeBytes
	if h.hasTrainer() {
		offset += trainerSizeBytes
	}
	prgSize := int(h.prgBanks) * prgROMSizeUnit
	chrSize := int(h.chrBanks) * chrROMSizeUnit
	if len(data) < offset+prgSize+chrSize {
		return nil, fmt.Errorf("the image is truncated: want %d bytes, got %d: %w",
			offset+prgSize+chrSize, len(data), ErrInvalidFormat)
	}
	prgROM := make([]byte, prgSize)
	copy(prgROM, data[offset:offset+prgSize])
	var chrROM []byte
	writableCHR := chrSize == 0
	if writableCHR {
		// The board carries CHR-RAM instead.
		chrROM = make([]byte, chrROMSizeUnit)
	} else {
		chrROM = make([]byte, chrSize)
		copy(chrROM, data[offset+prgSize:offset+prgSize+chrSize])
	}
	mapper, err := newMapper(h.mapperNumber(), prgROM, chrROM, writableCHR)
	if err != nil {
		return nil, err
	}
	c := &Cartridge{
		header:    h,
		prgROM:    prgROM,
		chrROM:    chrROM,
		mapper:    mapper,
		mirroring: h.mirroring(),
	}
	glog.Infof("Cartridge loaded: mapper=%d, PRG=%dx16KB, CHR=%dx8KB, mirroring=%v, trainer=%v",
		h.mapperNumber(), h.prgBanks, h.chrBanks, c.mirroring, h.hasTrainer())
	return c, nil
}

// ReadCPU reads from the CPU side of the cartridge, false if nothing is mapped.
func (c *Cartridge) ReadCPU(address uint16) (byte, bool) {
	return c.mapper.ReadFromCPU(address)
}

// WriteCPU writes to the CPU side of the cartridge, false if not handled.
func (c *Cartridge) WriteCPU(address uint16, data byte) bool {
	return c.mapper.WriteFromCPU(address, data)
}

// ReadPPU reads pattern data, false if the address is not the cartridge's.
func (c *Cartridge) ReadPPU(address uint16) (byte, bool) {
	return c.mapper.ReadFromPPU(address)
}

// WritePPU writes pattern data, false if not handled.
func (c *Cartridge) WritePPU(address uint16, data byte) bool {
	return c.mapper.WriteFromPPU(address, data)
}

func (c *Cartridge) Mirroring() Mirroring {
	return c.mirroring
}

func (c *Cartridge) MapperNumber() byte {
	return c.header.mapperNumber()
}

func (c *Cartridge) PRGBanks() int {
	return int(c.header.prgBanks)
}

func (c *Cartridge) CHRBanks() int {
	return int(c.header.chrBanks)
}
