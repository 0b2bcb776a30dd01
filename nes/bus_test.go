package nes

import "testing"

func TestRAMMirroring(t *testing.T) {
	c := newTestConsole(t, nil)
	for _, base := range []uint16{0x0000, 0x0123, 0x07FF} {
		for i, alias := range []uint16{0x0000, 0x0800, 0x1000, 0x1800} {
			data := byte(base) + byte(i) + 1
			c.Bus.Write(base+alias, data)
			for _, other := range []uint16{0x0000, 0x0800, 0x1000, 0x1800} {
				if got := c.Bus.Read(base + other); got != data {
					t.Errorf("write 0x%04x, read 0x%04x want=0x%02x, got=0x%02x",
						base+alias, base+other, data, got)
				}
			}
		}
	}
}

func TestPPURegisterMirroring(t *testing.T) {
	for _, address := range []uint16{0x2006, 0x200E, 0x2406, 0x3FF6, 0x3FFE} {
		c := newTestConsole(t, nil)
		c.Bus.Write(address, 0x21)
		c.Bus.Write(address, 0x08)
		if got := uint16(c.PPU.v); got != 0x2108 {
			t.Errorf("0x%04x selects PPUADDR, v want=0x2108, got=0x%04x", address, got)
		}
		if address&0x2007 != 0x2006 {
			t.Errorf("0x%04x&0x2007 want=0x2006", address)
		}
	}
}

func TestUnmapped(t *testing.T) {
	c := newTestConsole(t, nil)
	for _, address := range []uint16{0x4014, 0x4015, 0x4018, 0x401F, 0x4020, 0x5000, 0x7FFF} {
		c.Bus.Write(address, 0xAB)
		if got := c.Bus.Read(address); got != 0 {
			t.Errorf("0x%04x want=0, got=0x%02x", address, got)
		}
	}
}

func TestControllerShift(t *testing.T) {
	c := newTestConsole(t, nil)
	var buttons [8]bool
	buttons[ButtonA] = true
	buttons[ButtonStart] = true
	buttons[ButtonRight] = true
	c.SetButtons(0, buttons)
	c.Bus.SetController(1, 0x40) // B
	if got := c.Bus.Controller(0).State(); got != 0x91 {
		t.Errorf("port 0 state want=0x91, got=0x%02x", got)
	}
	c.Bus.Write(0x4016, 1)
	want0 := []byte{1, 0, 0, 1, 0, 0, 0, 1, 0, 0}
	for i, want := range want0 {
		if got := c.Bus.Read(0x4016); got != want {
			t.Errorf("port 0 read %d want=%d, got=%d", i, want, got)
		}
	}
	want1 := []byte{0, 1, 0, 0, 0, 0, 0, 0}
	for i, want := range want1 {
		if got := c.Bus.Read(0x4017); got != want {
			t.Errorf("port 1 read %d want=%d, got=%d", i, want, got)
		}
	}
	// 0x4017 reloads port 1 only.
	c.Bus.Write(0x4017, 1)
	if got := c.Bus.Read(0x4017); got != 0 {
		t.Errorf("port 1 after reload want=0, got=%d", got)
	}
	if got := c.Bus.Read(0x4017); got != 1 {
		t.Errorf("port 1 after reload want=1, got=%d", got)
	}
	if got := c.Bus.Read(0x4016); got != 0 {
		t.Errorf("port 0 not reloaded want=0, got=%d", got)
	}
}

func TestOAMDMA(t *testing.T) {
	c := newTestConsole(t, nil)
	for i := 0; i < 256; i++ {
		c.Bus.Write(0x0200+uint16(i), byte(i))
	}
	c.Bus.Write(0x2003, 0x10) // OAMADDR
	c.Bus.Write(0x4014, 0x02)
	for i := 0; i < 256; i++ {
		if got, want := c.PPU.oam[byte(0x10+i)], byte(i); got != want {
			t.Errorf("oam[0x%02x] want=0x%02x, got=0x%02x", byte(0x10+i), want, got)
		}
	}
	wantStall := 513
	if c.CPU.Cycles()%2 == 1 {
		wantStall++
	}
	if c.CPU.stall != wantStall {
		t.Errorf("stall want=%d, got=%d", wantStall, c.CPU.stall)
	}
	if c.CPU.Complete() {
		t.Errorf("Complete() during DMA want=false")
	}
	if got := c.StepInstruction(); got != wantStall {
		t.Errorf("stalled cycles want=%d, got=%d", wantStall, got)
	}
}

func TestClockRatio(t *testing.T) {
	c := newTestConsole(t, nil)
	cycles := c.CPU.Cycles()
	scanline, dot := c.PPU.Scanline(), c.PPU.Dot()
	for i := 0; i < 100; i++ {
		c.Bus.Clock()
	}
	if got := c.CPU.Cycles() - cycles; got != 100 {
		t.Errorf("CPU cycles want=100, got=%d", got)
	}
	dots := (c.PPU.Scanline()-scanline)*dotsPerScanline + c.PPU.Dot() - dot
	if dots != 300 {
		t.Errorf("PPU dots want=300, got=%d", dots)
	}
	if got := c.Bus.Clocks(); got != resetCycles+100 {
		t.Errorf("bus clocks want=%d, got=%d", resetCycles+100, got)
	}
	c.Bus.Reset()
	if got := c.Bus.Clocks(); got != 0 {
		t.Errorf("bus clocks after reset want=0, got=%d", got)
	}
}
