package nes

// ppuBus is the PPU address space. The cartridge is asked first through the
// Bus hook, whatever it declines lands in the PPU's own memory.
//
// Address        Size	  Description
// -------------------------------------
// $0000-$0FFF	  $1000	  Pattern table 0
// $1000-$1FFF	  $1000	  Pattern table 1
// $2000-$23FF	  $0400	  Nametable 0
// $2400-$27FF	  $0400	  Nametable 1
// $2800-$2BFF	  $0400	  Nametable 2
// $2C00-$2FFF	  $0400	  Nametable 3
// $3000-$3EFF	  $0F00	  Mirrors of $2000-$2EFF
// $3F00-$3F1F	  $0020	  Palette RAM indexes
// $3F20-$3FFF	  $00E0	  Mirrors of $3F00-$3F1F
// Reference: https://www.nesdev.org/wiki/PPU_memory_map
type ppuBus struct {
	bus        *Bus
	patterns   [2][0x1000]byte
	nametables [2][0x0400]byte
	palette    [32]byte
}

// nametableIndex picks the physical nametable for a logical one.
// Reference: https://www.nesdev.org/wiki/Mirroring#Nametable_Mirroring
func (b *ppuBus) nametableIndex(address uint16) int {
	table := (address & 0x0FFF) / 0x0400
	if b.mirroring() == Vertical {
		return int(table & 1)
	}
	return int(table >> 1 & 1)
}

func (b *ppuBus) mirroring() Mirroring {
	if b.bus == nil {
		return Horizontal
	}
	return b.bus.mirroring()
}

// paletteIndex folds the sprite backdrop entries 0x10/0x14/0x18/0x1C onto the
// background ones.
func paletteIndex(address uint16) uint16 {
	address &= 0x1F
	if address&0x13 == 0x10 {
		address &^= 0x10
	}
	return address
}

func (b *ppuBus) read(address uint16) byte {
	address &= 0x3FFF
	if b.bus != nil {
		if data, ok := b.bus.ppuRead(address); ok {
			return data
		}
	}
	switch {
	case address < 0x2000:
		return b.patterns[address>>12][address&0x0FFF]
	case address < 0x3F00:
		return b.nametables[b.nametableIndex(address)][address&0x03FF]
	default:
		return b.palette[paletteIndex(address)]
	}
}

func (b *ppuBus) write(address uint16, data byte) {
	address &= 0x3FFF
	if b.bus != nil && b.bus.ppuWrite(address, data) {
		return
	}
	switch {
	case address < 0x2000:
		b.patterns[address>>12][address&0x0FFF] = data
	case address < 0x3F00:
		b.nametables[b.nametableIndex(address)][address&0x03FF] = data
	default:
		b.palette[paletteIndex(address)] = data
	}
}
