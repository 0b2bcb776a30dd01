package nes

// PPUCTRL $2000
const (
	ctrlNametable       byte = 0x03
	ctrlIncrement32     byte = 0x04
	ctrlSpriteTable     byte = 0x08
	ctrlBackgroundTable byte = 0x10
	ctrlSpriteSize16    byte = 0x20
	ctrlNMI             byte = 0x80
)

// PPUMASK $2001
const (
	maskGrayscale          byte = 0x01
	maskShowBackgroundLeft byte = 0x02
	maskShowSpritesLeft    byte = 0x04
	maskShowBackground     byte = 0x08
	maskShowSprites        byte = 0x10
	maskEmphasizeRed       byte = 0x20
	maskEmphasizeGreen     byte = 0x40
	maskEmphasizeBlue      byte = 0x80
)

// PPUSTATUS $2002
const (
	statusSpriteOverflow byte = 0x20
	statusSpriteZeroHit  byte = 0x40
	statusVBlank         byte = 0x80
)

// loopy is the 15 bit VRAM address register.
//
//	yyy NN YYYYY XXXXX
//	||| || ||||| +++++-- coarse X scroll
//	||| || +++++-------- coarse Y scroll
//	||| ++-------------- nametable select
//	+++----------------- fine Y scroll
//
// Reference: https://www.nesdev.org/wiki/PPU_scrolling
type loopy uint16

func (l loopy) coarseX() uint16    { return uint16(l) & 0x001F }
func (l loopy) coarseY() uint16    { return uint16(l) >> 5 & 0x001F }
func (l loopy) nametableX() uint16 { return uint16(l) >> 10 & 0x0001 }
func (l loopy) nametableY() uint16 { return uint16(l) >> 11 & 0x0001 }
func (l loopy) fineY() uint16      { return uint16(l) >> 12 & 0x0007 }

func (l *loopy) setCoarseX(v uint16) {
	*l = *l&^0x001F | loopy(v&0x1F)
}

func (l *loopy) setCoarseY(v uint16) {
	*l = *l&^0x03E0 | loopy(v&0x1F)<<5
}

func (l *loopy) setNametableX(v uint16) {
	*l = *l&^0x0400 | loopy(v&1)<<10
}

func (l *loopy) setNametableY(v uint16) {
	*l = *l&^0x0800 | loopy(v&1)<<11
}

func (l *loopy) setFineY(v uint16) {
	*l = *l&^0x7000 | loopy(v&7)<<12
}

// readRegister reads one of the eight registers at $2000-$2007.
// Reference: https://www.nesdev.org/wiki/PPU_registers
func (p *PPU) readRegister(address uint16) byte {
	switch address {
	case 0x0002:
		return p.readPPUSTATUS()
	case 0x0004:
		return p.oam[p.oamAddr]
	case 0x0007:
		return p.readPPUDATA()
	}
	// Write only registers.
	return 0
}

// writeRegister writes one of the eight registers at $2000-$2007.
func (p *PPU) writeRegister(address uint16, data byte) {
	switch address {
	case 0x0000:
		p.ctrl = data
		p.t.setNametableX(uint16(data))
		p.t.setNametableY(uint16(data >> 1))
	case 0x0001:
		p.mask = data
	case 0x0003:
		p.oamAddr = data
	case 0x0004:
		p.oam[p.oamAddr] = data
		p.oamAddr++
	case 0x0005:
		p.writePPUSCROLL(data)
	case 0x0006:
		p.writePPUADDR(data)
	case 0x0007:
		p.writePPUDATA(data)
	}
}

// readPPUSTATUS reads PPUSTATUS ($2002), it clears vblank and the write toggle.
func (p *PPU) readPPUSTATUS() byte {
	data := p.status
	p.status &^= statusVBlank
	p.w = false
	return data
}

// writePPUSCROLL writes PPUSCROLL ($2005), X first then Y.
func (p *PPU) writePPUSCROLL(data byte) {
	if !p.w {
		p.fineX = data & 0x07
		p.t.setCoarseX(uint16(data >> 3))
		p.w = true
	} else {
		p.t.setFineY(uint16(data & 0x07))
		p.t.setCoarseY(uint16(data >> 3))
		p.w = false
	}
}

// writePPUADDR writes PPUADDR ($2006), high byte first.
func (p *PPU) writePPUADDR(data byte) {
	if !p.w { // high
		p.t = p.t&0x00FF | loopy(data&0x3F)<<8
		p.w = true
	} else { // low
		p.t = p.t&0xFF00 | loopy(data)
		p.v = p.t
		p.w = false
	}
}

func (p *PPU) increment() {
	if p.ctrl&ctrlIncrement32 != 0 {
		p.v += 32
	} else {
		p.v++
	}
	p.v &= 0x7FFF
}

// writePPUDATA writes PPUDATA ($2007).
func (p *PPU) writePPUDATA(data byte) {
	p.mem.write(uint16(p.v), data)
	p.increment()
}

// readPPUDATA reads PPUDATA ($2007).
func (p *PPU) readPPUDATA() byte {
	data := p.buffer
	p.buffer = p.mem.read(uint16(p.v))
	// Palette reads are not delayed.
	if uint16(p.v)&0x3FFF >= 0x3F00 {
		data = p.buffer
	}
	p.increment()
	return data
}

// oamDMA copies the 256 byte page into OAM starting at OAMADDR.
// Reference: https://www.nesdev.org/wiki/PPU_registers#OAMDMA
func (p *PPU) oamDMA(page byte) {
	base := uint16(page) << 8
	for i := 0; i < 256; i++ {
		p.oam[p.oamAddr+byte(i)] = p.bus.Read(base | uint16(i))
	}
}
