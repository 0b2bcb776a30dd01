package nes

import "github.com/golang/glog"

// Bus is the CPU-side memory arbiter. It owns the work RAM and the controller
// latches, holds handles to the CPU, PPU, APU and cartridge, and drives the
// clock.
//
// CPU memory map
// 0x0000 - 0x07FF	WRAM
// 0x0800 - 0x1FFF	WRAM Mirror
// 0x2000 - 0x2007	PPU Registers
// 0x2008 - 0x3FFF	PPU Registers Mirror
// 0x4000 - 0x4013	APU
// 0x4014		OAMDMA
// 0x4015		APU
// 0x4016 - 0x4017	Controllers
// 0x4020 - 0xFFFF	Cartridge
type Bus struct {
	wram        *RAM
	cpu         *CPU
	ppu         *PPU
	apu         *APU
	cartridge   *Cartridge
	controllers [2]*Controller
	clocks      uint64
}

// NewBus creates a Bus and hands the CPU and PPU a handle back to it.
func NewBus(cpu *CPU, ppu *PPU, apu *APU) *Bus {
	b := &Bus{
		wram:        NewRAM(),
		cpu:         cpu,
		ppu:         ppu,
		apu:         apu,
		controllers: [2]*Controller{NewController(), NewController()},
	}
	cpu.connect(b)
	ppu.connect(b)
	return b
}

// AttachCartridge inserts a cartridge.
func (b *Bus) AttachCartridge(cartridge *Cartridge) {
	b.cartridge = cartridge
}

// Controller returns the controller plugged into port 0 or 1.
func (b *Bus) Controller(port int) *Controller {
	return b.controllers[port&1]
}

// SetController stores the state byte of a controller, bit7=A ... bit0=Right.
func (b *Bus) SetController(port int, state byte) {
	b.controllers[port&1].SetState(state)
}

// Read reads a byte.
func (b *Bus) Read(address uint16) byte {
	switch {
	case address < 0x2000:
		return b.wram.read(address)
	case address < 0x4000:
		return b.ppu.readRegister(address & 0x0007)
	case address == 0x4014:
		return 0
	case address == 0x4016 || address == 0x4017:
		return b.controllers[address&1].read()
	case 0x4020 <= address:
		if b.cartridge != nil {
			if data, ok := b.cartridge.ReadCPU(address); ok {
				return data
			}
		}
	}
	glog.V(2).Infof("Unmapped CPU bus read: address=0x%04x", address)
	return 0
}

// Write writes a byte.
func (b *Bus) Write(address uint16, data byte) {
	switch {
	case address < 0x2000:
		b.wram.write(address, data)
		return
	case address < 0x4000:
		b.ppu.writeRegister(address&0x0007, data)
		return
	case address == 0x4014:
		b.ppu.oamDMA(data)
		// https://www.nesdev.org/wiki/DMA#OAM_DMA
		stall := 513
		if b.cpu.cycles%2 == 1 {
			stall++
		}
		b.cpu.stallDMA(stall)
		return
	case address == 0x4016:
		// Strobe reaches both ports.
		b.controllers[0].write()
		b.controllers[1].write()
		return
	case address == 0x4017:
		b.controllers[1].write()
		return
	case address < 0x4014 || address == 0x4015:
		if b.apu != nil {
			b.apu.writeRegister(address, data)
		}
		return
	case 0x4020 <= address:
		if b.cartridge != nil && b.cartridge.WriteCPU(address, data) {
			return
		}
	}
	glog.V(2).Infof("Unmapped CPU bus write: address=0x%04x, data=0x%02x", address, data)
}

// peek reads RAM and cartridge without side effects, for tracing.
func (b *Bus) peek(address uint16) byte {
	switch {
	case address < 0x2000:
		return b.wram.read(address)
	case 0x4020 <= address && b.cartridge != nil:
		data, _ := b.cartridge.ReadCPU(address)
		return data
	}
	return 0
}

// ppuRead is the cartridge hook the PPU reads pattern memory through.
func (b *Bus) ppuRead(address uint16) (byte, bool) {
	if b.cartridge == nil {
		return 0, false
	}
	return b.cartridge.ReadPPU(address)
}

func (b *Bus) ppuWrite(address uint16, data byte) bool {
	if b.cartridge == nil {
		return false
	}
	return b.cartridge.WritePPU(address, data)
}

func (b *Bus) mirroring() Mirroring {
	if b.cartridge == nil {
		return Horizontal
	}
	return b.cartridge.Mirroring()
}

// Clock advances the CPU by one cycle and the PPU by three dots.
func (b *Bus) Clock() {
	b.cpu.Clock()
	for i := 0; i < 3; i++ {
		b.ppu.Clock()
	}
	if b.apu != nil {
		b.apu.Clock()
	}
	b.clocks++
}

// Clocks returns the number of bus clocks since reset.
func (b *Bus) Clocks() uint64 {
	return b.clocks
}

// Reset resets the CPU and the PPU.
func (b *Bus) Reset() {
	glog.Infoln("Bus reset")
	b.cpu.Reset()
	b.ppu.Reset()
	b.clocks = 0
}
