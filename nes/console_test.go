package nes

import (
	"errors"
	"image/color"
	"strings"
	"testing"
)

func TestNewConsoleError(t *testing.T) {
	c, err := NewConsole(buildROM(1, 1, 0x10, 0, nil, 0))
	if !errors.Is(err, ErrUnsupportedMapper) {
		t.Errorf("error want=%v, got=%v", ErrUnsupportedMapper, err)
	}
	if c != nil {
		t.Errorf("console want=nil")
	}
}

func TestTrace(t *testing.T) {
	c := newTestConsole(t, []byte{0x4C, 0xF5, 0xC5, 0xBD, 0x00, 0x02, 0x04, 0xA9})
	want := "8000  4C F5 C5  JMP $C5F5                       A:00 X:00 Y:00 P:20 SP:FD PPU:  0, 24 CYC:8"
	if got := c.Trace(); got != want {
		t.Errorf("Trace()\nwant=%q\ngot= %q", want, got)
	}
	c.CPU.SetPC(0x8003)
	if got := c.Trace(); !strings.HasPrefix(got, "8003  BD 00 02  LDA $0200,X ") {
		t.Errorf("Trace() got=%q", got)
	}
	c.CPU.SetPC(0x8006)
	if got := c.Trace(); !strings.HasPrefix(got, "8006  04 A9    *NOP $A9 ") {
		t.Errorf("Trace() got=%q", got)
	}
}

func TestStepFrame(t *testing.T) {
	// JMP $8000
	c := newTestConsole(t, []byte{0x4C, 0x00, 0x80})
	c.Bus.Write(0x2001, maskShowBackground|maskShowBackgroundLeft)
	c.Bus.Write(0x2006, 0x3F)
	c.Bus.Write(0x2006, 0x00)
	c.Bus.Write(0x2007, 0x16)
	frame := c.PPU.Frame()
	c.StepFrame()
	c.StepFrame()
	if c.PPU.Frame() != frame+2 {
		t.Errorf("frame want=%d, got=%d", frame+2, c.PPU.Frame())
	}
	img := c.Frame()
	if img.Rect.Dx() != width || img.Rect.Dy() != height {
		t.Fatalf("frame size want=256x240, got=%v", img.Rect)
	}
	if got := img.RGBAAt(128, 120); got != colors[0x16] {
		t.Errorf("backdrop want=%v, got=%v", colors[0x16], got)
	}
	// The copy is the caller's.
	img.SetRGBA(0, 0, color.RGBA{1, 2, 3, 4})
	if got := c.Frame().RGBAAt(0, 0); got == (color.RGBA{1, 2, 3, 4}) {
		t.Errorf("Frame() returned a shared image")
	}
}

func TestStepInstruction(t *testing.T) {
	c := newTestConsole(t, []byte{0xA9, 0x01, 0x8D, 0x00, 0x02, 0xEA})
	want := []int{2, 4, 2}
	for i, w := range want {
		if got := c.StepInstruction(); got != w {
			t.Errorf("instruction %d, cycles want=%d, got=%d", i, w, got)
		}
	}
	if got := c.Bus.Read(0x0200); got != 0x01 {
		t.Errorf("0x0200 want=0x01, got=0x%02x", got)
	}
}

func TestConsoleReset(t *testing.T) {
	c := newTestConsole(t, []byte{0xA9, 0x01, 0xEA})
	c.StepInstruction()
	c.Reset()
	if c.CPU.PC() != 0x8000 || c.CPU.Registers().A != 0 {
		t.Errorf("after reset want PC=0x8000 A=0, got %+v", c.CPU.Registers())
	}
	if c.StepInstruction() != resetCycles {
		t.Errorf("reset sequence want %d cycles", resetCycles)
	}
}

func TestNMIHandler(t *testing.T) {
	program := make([]byte, 0x1000)
	copy(program, []byte{
		0xA9, 0x80,       // LDA #$80
		0x8D, 0x00, 0x20, // STA $2000
		0x4C, 0x05, 0x80, // JMP $8005
	})
	// NMI handler at 0x8100: INC $10, RTI
	copy(program[0x100:], []byte{0xE6, 0x10, 0x40})
	c, err := NewConsole(buildROM(1, 1, 0, 0, program, 0x8100))
	if err != nil {
		t.Fatalf("NewConsole() failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		c.StepFrame()
	}
	if got := c.Bus.Read(0x0010); got != 3 {
		t.Errorf("NMIs handled want=3, got=%d", got)
	}
}
