package nes

import "fmt"

// NES PPU generates 256x240 pixels.
const (
	width  = 256
	height = 240
)

const (
	dotsPerScanline   = 341
	preRenderScanline = -1
	vblankScanline    = 241
	lastScanline      = 260
	maxSpritesPerLine = 8
)

// spriteEntry is one OAM entry copied into the secondary buffer.
type spriteEntry struct {
	y         byte
	id        byte
	attribute byte
	x         byte
}

// PPU stands for Picture Processing Unit, renders 256px x 240px image for a screen.
// PPU is 3x faster than CPU and rendering 1 frame requires 341x262=89342 cycles (Each cycles writes a dot).
//
// This PPU implementation includes PPU regsters as well.
// References:
//   https://www.nesdev.org/wiki/PPU
//   https://www.nesdev.org/wiki/PPU_rendering
//   https://pgate1.at-ninja.jp/NES_on_FPGA/nes_ppu.htm (In Japanese)
type PPU struct {
	bus      *Bus
	mem      *ppuBus
	renderer Renderer

	// Registers for PPU.
	// Reference:
	//   https://www.nesdev.org/wiki/PPU_registers
	//   https://www.nesdev.org/wiki/PPU_scrolling
	ctrl    byte
	mask    byte
	status  byte
	oamAddr byte
	v       loopy // Current VRAM address (15bit)
	t       loopy // Temporary VRAM address (15bit)
	fineX   byte  // Fine X scroll (3bit)
	w       bool  // First or second write toggle for $2005 and $2006
	buffer  byte  // buffer for PPUDATA $2007

	oam [256]byte

	// Background fetches and shifters.
	nextTileID         byte
	nextTileAttribute  byte
	nextTileLow        byte
	nextTileHigh       byte
	shifterPatternLow  uint16
	shifterPatternHigh uint16
	shifterAttrLow     uint16
	shifterAttrHigh    uint16

	// Sprites for the next scanline.
	sprites            [maxSpritesPerLine]spriteEntry
	spriteCount        int
	spritePatternLow   [maxSpritesPerLine]byte
	spritePatternHigh  [maxSpritesPerLine]byte
	spriteZeroPossible bool
	spriteZeroRendered bool

	// dot, scanline indicates which pixel is processing.
	dot      int
	scanline int
	frame    uint64
}

// NewPPU creates a PPU. It reaches memory once a Bus connects to it.
func NewPPU() *PPU {
	p := &PPU{mem: &ppuBus{}}
	p.Reset()
	return p
}

func (p *PPU) connect(bus *Bus) {
	p.bus = bus
	p.mem.bus = bus
}

// SetRenderer sets where pixels go, nil drops them.
func (p *PPU) SetRenderer(r Renderer) {
	p.renderer = r
}

// Reset puts the registers into their power-up state at the top of the frame.
func (p *PPU) Reset() {
	p.ctrl = 0
	p.mask = 0
	p.status = 0
	p.oamAddr = 0
	p.v = 0
	p.t = 0
	p.fineX = 0
	p.w = false
	p.buffer = 0
	p.shifterPatternLow = 0
	p.shifterPatternHigh = 0
	p.shifterAttrLow = 0
	p.shifterAttrHigh = 0
	p.spriteCount = 0
	p.spriteZeroPossible = false
	p.spriteZeroRendered = false
	p.dot = 0
	p.scanline = 0
}

// Scanline returns the current scanline, -1 is the pre-render line.
func (p *PPU) Scanline() int {
	return p.scanline
}

// Dot returns the current dot in the scanline.
func (p *PPU) Dot() int {
	return p.dot
}

// Frame returns how many frames have been completed.
func (p *PPU) Frame() uint64 {
	return p.frame
}

func (p *PPU) String() string {
	return fmt.Sprintf("scanline=%d, dot=%d, frame=%d, ctrl=0x%02x, mask=0x%02x, status=0x%02x, v=0x%04x, t=0x%04x, x=%d, w=%v",
		p.scanline, p.dot, p.frame, p.ctrl, p.mask, p.status, uint16(p.v), uint16(p.t), p.fineX, p.w)
}

func (p *PPU) renderingEnabled() bool {
	return p.mask&(maskShowBackground|maskShowSprites) != 0
}

// incrementScrollX moves v to the next tile, wrapping into the horizontal
// neighbour nametable.
// Reference: https://www.nesdev.org/wiki/PPU_scrolling#Coarse_X_increment
func (p *PPU) incrementScrollX() {
	if !p.renderingEnabled() {
		return
	}
	if p.v.coarseX() == 31 {
		p.v.setCoarseX(0)
		p.v.setNametableX(^p.v.nametableX())
	} else {
		p.v.setCoarseX(p.v.coarseX() + 1)
	}
}

// incrementScrollY moves v to the next pixel row. Row 29 is the last row of
// tiles, 30 and 31 are attribute memory and wrap without switching nametables.
// Reference: https://www.nesdev.org/wiki/PPU_scrolling#Y_increment
func (p *PPU) incrementScrollY() {
	if !p.renderingEnabled() {
		return
	}
	if p.v.fineY() < 7 {
		p.v.setFineY(p.v.fineY() + 1)
		return
	}
	p.v.setFineY(0)
	switch p.v.coarseY() {
	case 29:
		p.v.setCoarseY(0)
		p.v.setNametableY(^p.v.nametableY())
	case 31:
		p.v.setCoarseY(0)
	default:
		p.v.setCoarseY(p.v.coarseY() + 1)
	}
}

// transferAddressX copies the horizontal bits of t into v.
func (p *PPU) transferAddressX() {
	if !p.renderingEnabled() {
		return
	}
	p.v.setNametableX(p.t.nametableX())
	p.v.setCoarseX(p.t.coarseX())
}

// transferAddressY copies the vertical bits of t into v.
func (p *PPU) transferAddressY() {
	if !p.renderingEnabled() {
		return
	}
	p.v.setFineY(p.t.fineY())
	p.v.setNametableY(p.t.nametableY())
	p.v.setCoarseY(p.t.coarseY())
}

// loadBackgroundShifters puts the fetched tile in the low byte of the shifters.
func (p *PPU) loadBackgroundShifters() {
	p.shifterPatternLow = p.shifterPatternLow&0xFF00 | uint16(p.nextTileLow)
	p.shifterPatternHigh = p.shifterPatternHigh&0xFF00 | uint16(p.nextTileHigh)
	// The palette is the same for the whole tile so its bits are spread to 8.
	if p.nextTileAttribute&0x01 != 0 {
		p.shifterAttrLow = p.shifterAttrLow&0xFF00 | 0x00FF
	} else {
		p.shifterAttrLow &= 0xFF00
	}
	if p.nextTileAttribute&0x02 != 0 {
		p.shifterAttrHigh = p.shifterAttrHigh&0xFF00 | 0x00FF
	} else {
		p.shifterAttrHigh &= 0xFF00
	}
}

func (p *PPU) updateShifters() {
	if p.mask&maskShowBackground != 0 {
		p.shifterPatternLow <<= 1
		p.shifterPatternHigh <<= 1
		p.shifterAttrLow <<= 1
		p.shifterAttrHigh <<= 1
	}
	if p.mask&maskShowSprites != 0 && 1 <= p.dot && p.dot < 258 {
		for i := 0; i < p.spriteCount; i++ {
			if p.sprites[i].x > 0 {
				p.sprites[i].x--
			} else {
				p.spritePatternLow[i] <<= 1
				p.spritePatternHigh[i] <<= 1
			}
		}
	}
}

// fetchBackground runs one step of the 8 dot fetch sequence.
func (p *PPU) fetchBackground() {
	switch (p.dot - 1) % 8 {
	case 0:
		// Dots 9, 17, ...: reloading here, ahead of the nametable fetch, is
		// the same as reloading on the last dot of the previous tile.
		p.loadBackgroundShifters()
		p.nextTileID = p.mem.read(0x2000 | uint16(p.v)&0x0FFF)
	case 2:
		address := 0x23C0 | p.v.nametableY()<<11 | p.v.nametableX()<<10 |
			p.v.coarseY()>>2<<3 | p.v.coarseX()>>2
		attribute := p.mem.read(address)
		// Each attribute byte covers 4x4 tiles, 2 bits per 2x2 quadrant.
		if p.v.coarseY()&0x02 != 0 {
			attribute >>= 4
		}
		if p.v.coarseX()&0x02 != 0 {
			attribute >>= 2
		}
		p.nextTileAttribute = attribute & 0x03
	case 4:
		p.nextTileLow = p.mem.read(p.backgroundTable() + uint16(p.nextTileID)<<4 + p.v.fineY())
	case 6:
		p.nextTileHigh = p.mem.read(p.backgroundTable() + uint16(p.nextTileID)<<4 + p.v.fineY() + 8)
	case 7:
		p.incrementScrollX()
	}
}

func (p *PPU) backgroundTable() uint16 {
	if p.ctrl&ctrlBackgroundTable != 0 {
		return 0x1000
	}
	return 0
}

func (p *PPU) spriteHeight() int {
	if p.ctrl&ctrlSpriteSize16 != 0 {
		return 16
	}
	return 8
}

// evaluateSprites selects up to 8 sprites from OAM for the next scanline and
// loads their pattern bytes. A sprite covers the lines [Y, Y+height).
// Reference: https://www.nesdev.org/wiki/PPU_sprite_evaluation
func (p *PPU) evaluateSprites() {
	p.spriteCount = 0
	p.spriteZeroPossible = false
	for i := range p.sprites {
		p.sprites[i] = spriteEntry{0xFF, 0xFF, 0xFF, 0xFF}
		p.spritePatternLow[i] = 0
		p.spritePatternHigh[i] = 0
	}
	found := 0
	h := p.spriteHeight()
	next := p.scanline + 1
	for n := 0; n < 64 && found <= maxSpritesPerLine; n++ {
		diff := next - int(p.oam[n*4])
		if diff < 0 || diff >= h {
			continue
		}
		if found < maxSpritesPerLine {
			if n == 0 {
				p.spriteZeroPossible = true
			}
			p.sprites[found] = spriteEntry{
				y:         p.oam[n*4],
				id:        p.oam[n*4+1],
				attribute: p.oam[n*4+2],
				x:         p.oam[n*4+3],
			}
		}
		found++
	}
	if found > maxSpritesPerLine {
		p.status |= statusSpriteOverflow
		found = maxSpritesPerLine
	}
	p.spriteCount = found
	for i := 0; i < p.spriteCount; i++ {
		address := p.spritePatternAddress(p.sprites[i])
		low := p.mem.read(address)
		high := p.mem.read(address + 8)
		if p.sprites[i].attribute&0x40 != 0 {
			low = flipByte(low)
			high = flipByte(high)
		}
		p.spritePatternLow[i] = low
		p.spritePatternHigh[i] = high
	}
}

// spritePatternAddress returns the address of the low plane row of the sprite
// for the next scanline, with vertical flip and 8x16 halves applied.
func (p *PPU) spritePatternAddress(s spriteEntry) uint16 {
	row := uint16(p.scanline + 1 - int(s.y))
	flipped := s.attribute&0x80 != 0
	if p.ctrl&ctrlSpriteSize16 == 0 {
		var table uint16
		if p.ctrl&ctrlSpriteTable != 0 {
			table = 0x1000
		}
		if flipped {
			row = 7 - row
		}
		return table | uint16(s.id)<<4 | row&0x07
	}
	// 8x16 sprites pick the table with bit 0 of the tile id.
	table := uint16(s.id&0x01) << 12
	tile := uint16(s.id & 0xFE)
	if flipped {
		row = 15 - row
	}
	if row >= 8 {
		tile++
	}
	return table | tile<<4 | row&0x07
}

func flipByte(b byte) byte {
	b = b&0xF0>>4 | b&0x0F<<4
	b = b&0xCC>>2 | b&0x33<<2
	b = b&0xAA>>1 | b&0x55<<1
	return b
}

// Clock emulates a dot of PPU. Each visible dot produces one pixel, right to
// left and top to bottom, while the PPU actually walks a 341x262 area.
// Reference:
//   https://www.nesdev.org/wiki/PPU_rendering
//   https://www.nesdev.org/wiki/File:Ntsc_timing.png
func (p *PPU) Clock() {
	if preRenderScanline <= p.scanline && p.scanline < height {
		if p.scanline == preRenderScanline && p.dot == 1 {
			p.status &^= statusVBlank | statusSpriteZeroHit | statusSpriteOverflow
			for i := range p.spritePatternLow {
				p.spritePatternLow[i] = 0
				p.spritePatternHigh[i] = 0
			}
		}
		if (2 <= p.dot && p.dot < 258) || (321 <= p.dot && p.dot < 338) {
			p.updateShifters()
			p.fetchBackground()
		}
		switch p.dot {
		case 256:
			p.incrementScrollY()
		case 257:
			p.transferAddressX()
			if p.scanline < height-1 && p.renderingEnabled() {
				p.evaluateSprites()
			}
		case 338, 340:
			// Unused nametable fetches.
			p.nextTileID = p.mem.read(0x2000 | uint16(p.v)&0x0FFF)
		}
		if p.scanline == preRenderScanline && 280 <= p.dot && p.dot < 305 {
			p.transferAddressY()
		}
	}

	if p.scanline == vblankScanline && p.dot == 1 {
		p.status |= statusVBlank
		if p.ctrl&ctrlNMI != 0 && p.bus != nil {
			p.bus.cpu.NMI()
		}
	}

	if 0 <= p.scanline && p.scanline < height && 1 <= p.dot && p.dot <= width {
		p.renderPixel()
	}

	p.dot++
	if p.dot >= dotsPerScanline {
		p.dot = 0
		p.scanline++
		if p.scanline > lastScanline {
			p.scanline = preRenderScanline
			p.frame++
		}
	}
}

// renderPixel composes the background and sprite pixel at the current dot.
func (p *PPU) renderPixel() {
	var bgPixel, bgPalette byte
	if p.mask&maskShowBackground != 0 && (p.mask&maskShowBackgroundLeft != 0 || p.dot >= 9) {
		mux := uint16(0x8000) >> p.fineX
		bgPixel = bit(p.shifterPatternHigh&mux != 0)<<1 | bit(p.shifterPatternLow&mux != 0)
		bgPalette = bit(p.shifterAttrHigh&mux != 0)<<1 | bit(p.shifterAttrLow&mux != 0)
	}

	var fgPixel, fgPalette byte
	var fgPriority bool
	p.spriteZeroRendered = false
	if p.mask&maskShowSprites != 0 && (p.mask&maskShowSpritesLeft != 0 || p.dot >= 9) {
		for i := 0; i < p.spriteCount; i++ {
			if p.sprites[i].x != 0 {
				continue
			}
			fgPixel = bit(p.spritePatternHigh[i]&0x80 != 0)<<1 | bit(p.spritePatternLow[i]&0x80 != 0)
			fgPalette = p.sprites[i].attribute&0x03 + 0x04
			fgPriority = p.sprites[i].attribute&0x20 == 0
			if fgPixel != 0 {
				if i == 0 {
					p.spriteZeroRendered = true
				}
				break
			}
		}
	}

	var pixel, palette byte
	switch {
	case bgPixel == 0 && fgPixel == 0:
	case bgPixel == 0:
		pixel, palette = fgPixel, fgPalette
	case fgPixel == 0:
		pixel, palette = bgPixel, bgPalette
	default:
		if fgPriority {
			pixel, palette = fgPixel, fgPalette
		} else {
			pixel, palette = bgPixel, bgPalette
		}
		if p.spriteZeroHit() {
			p.status |= statusSpriteZeroHit
		}
	}

	if p.renderer != nil {
		value := p.mem.read(0x3F00 + uint16(palette)<<2 + uint16(pixel))
		p.renderer.SetPixel(p.dot-1, p.scanline, resolveColor(value, p.mask))
	}
}

// spriteZeroHit reports whether an opaque sprite 0 pixel over an opaque
// background pixel counts as a hit at this dot.
// Reference: https://www.nesdev.org/wiki/PPU_OAM#Sprite_zero_hits
func (p *PPU) spriteZeroHit() bool {
	if !p.spriteZeroPossible || !p.spriteZeroRendered {
		return false
	}
	if p.mask&maskShowBackground == 0 || p.mask&maskShowSprites == 0 {
		return false
	}
	// Never at x=255.
	if p.dot == width {
		return false
	}
	leftClipped := p.mask&(maskShowBackgroundLeft|maskShowSpritesLeft) != maskShowBackgroundLeft|maskShowSpritesLeft
	if leftClipped && p.dot < 9 {
		return false
	}
	return true
}

func bit(b bool) byte {
	if b {
		return 1
	}
	return 0
}
