package integration

import (
	"image/color"
	"testing"

	"github.com/jyane/famicom/nes"
)

// helloWorldROM draws tile 1, a solid block, at the top left corner on a black
// backdrop and spins.
func helloWorldROM() []byte {
	program := []byte{
		0xA9, 0x3F, 0x8D, 0x06, 0x20, // LDA #$3F, STA $2006
		0xA9, 0x00, 0x8D, 0x06, 0x20, // LDA #$00, STA $2006
		0xA9, 0x0F, 0x8D, 0x07, 0x20, // LDA #$0F, STA $2007 ; backdrop
		0xA9, 0x30, 0x8D, 0x07, 0x20, // LDA #$30, STA $2007 ; color 1
		0xA9, 0x20, 0x8D, 0x06, 0x20, // LDA #$20, STA $2006
		0xA9, 0x00, 0x8D, 0x06, 0x20, // LDA #$00, STA $2006
		0xA9, 0x01, 0x8D, 0x07, 0x20, // LDA #$01, STA $2007 ; tile (0, 0)
		0xA9, 0x00, 0x8D, 0x00, 0x20, // LDA #$00, STA $2000
		0x8D, 0x05, 0x20,             // STA $2005
		0x8D, 0x05, 0x20,             // STA $2005
		0xA9, 0x0A, 0x8D, 0x01, 0x20, // LDA #$0A, STA $2001 ; background on
		0x4C, 0x33, 0x80,             // JMP $8033
	}
	rom := []byte{'N', 'E', 'S', 0x1A, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	prg := make([]byte, 0x4000)
	copy(prg, program)
	prg[0x3FFC] = 0x00
	prg[0x3FFD] = 0x80
	chr := make([]byte, 0x2000)
	for i := 0x10; i < 0x18; i++ {
		chr[i] = 0xFF
	}
	rom = append(rom, prg...)
	return append(rom, chr...)
}

func TestHelloWorld(t *testing.T) {
	console, err := nes.NewConsole(helloWorldROM())
	if err != nil {
		t.Fatalf("NewConsole() failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		console.StepFrame()
	}
	got := console.Frame()
	white := color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
	black := color.RGBA{0x00, 0x00, 0x00, 0xFF}
	for y := 0; y < got.Rect.Max.Y; y++ {
		for x := 0; x < got.Rect.Max.X; x++ {
			want := black
			if x < 8 && y < 8 {
				want = white
			}
			if c := got.RGBAAt(x, y); c != want {
				t.Fatalf("Got a rendered color at (%d, %d) = %v, want %v", x, y, c, want)
			}
		}
	}
}
