package nes

import (
	"fmt"
	"image"

	"github.com/golang/glog"
)

// Console owns every component of one emulation session. The CPU, PPU and Bus
// only hold handles to each other, the Console outlives all of them.
type Console struct {
	CPU       *CPU
	PPU       *PPU
	APU       *APU
	Bus       *Bus
	Cartridge *Cartridge

	frameBuffer *FrameBuffer
}

// NewConsole loads an iNES image and powers the console on.
func NewConsole(buf []byte) (*Console, error) {
	cartridge, err := LoadCartridge(buf)
	if err != nil {
		return nil, fmt.Errorf("failed to load the cartridge: %w", err)
	}
	cpu := NewCPU()
	ppu := NewPPU()
	apu := NewAPU()
	bus := NewBus(cpu, ppu, apu)
	bus.AttachCartridge(cartridge)
	frameBuffer := NewFrameBuffer()
	ppu.SetRenderer(frameBuffer)
	c := &Console{
		CPU:         cpu,
		PPU:         ppu,
		APU:         apu,
		Bus:         bus,
		Cartridge:   cartridge,
		frameBuffer: frameBuffer,
	}
	c.Reset()
	return c, nil
}

// Reset presses the reset button.
func (c *Console) Reset() {
	c.Bus.Reset()
	glog.Infof("Console reset: pc=0x%04x", c.CPU.PC())
}

// Step runs one CPU cycle, which is three PPU dots.
func (c *Console) Step() {
	frame := c.PPU.Frame()
	c.Bus.Clock()
	if c.PPU.Frame() != frame {
		c.frameBuffer.swap()
	}
}

// StepInstruction runs until the CPU finishes its current instruction and
// returns the CPU cycles it took.
func (c *Console) StepInstruction() int {
	start := c.CPU.Cycles()
	c.Step()
	for !c.CPU.Complete() {
		c.Step()
	}
	return int(c.CPU.Cycles() - start)
}

// StepFrame runs until the PPU completes a frame.
func (c *Console) StepFrame() {
	frame := c.PPU.Frame()
	for c.PPU.Frame() == frame {
		c.Step()
	}
}

// SetButtons sets the pressed buttons of the controller on port 0 or 1, in
// ButtonA ... ButtonRight order.
func (c *Console) SetButtons(port int, buttons [8]bool) {
	c.Bus.Controller(port).Set(buttons)
}

// Frame returns a copy of the last completed frame.
func (c *Console) Frame() *image.RGBA {
	return c.frameBuffer.Frame()
}

// SetAudioOut sets the channel the APU streams samples to.
func (c *Console) SetAudioOut(out chan float32) {
	c.APU.SetAudioOut(out)
}
