package nes

import "testing"

func TestAPUDirectLoad(t *testing.T) {
	tests := []struct {
		data byte
		want float32
	}{
		{0x00, 0},
		{0x7F, 1},
		{0xFF, 1}, // bit 7 is not part of the level
	}
	for _, test := range tests {
		a := NewAPU()
		a.writeRegister(0x4011, test.data)
		if got := a.Level(); got != test.want {
			t.Errorf("%v, level want=%v, got=%v", test, test.want, got)
		}
	}
}

func TestAPUSamples(t *testing.T) {
	a := NewAPU()
	out := make(chan float32, 4)
	a.SetAudioOut(out)
	a.writeRegister(0x4011, 0x7F)
	// A sample is due every 40.58 CPU cycles.
	for i := 0; i < 41; i++ {
		a.Clock()
	}
	if len(out) != 2 {
		t.Fatalf("samples want=2 (l, r), got=%d", len(out))
	}
	if got := <-out; got != 1 {
		t.Errorf("sample want=1, got=%v", got)
	}
	// A full channel never blocks the emulation.
	for i := 0; i < 406; i++ {
		a.Clock()
	}
	if a.samples != 11 {
		t.Errorf("samples want=11, got=%d", a.samples)
	}
}

func TestAPUWritesThroughBus(t *testing.T) {
	c := newTestConsole(t, nil)
	c.Bus.Write(0x4000, 0x3F)
	c.Bus.Write(0x4011, 0x40)
	c.Bus.Write(0x4015, 0x0F)
	if c.APU.registers[0x00] != 0x3F || c.APU.registers[0x15] != 0x0F {
		t.Errorf("registers want 0x4000=0x3f 0x4015=0x0f, got %v", c.APU.registers)
	}
	if got, want := c.APU.Level(), float32(0x40)/127; got != want {
		t.Errorf("level want=%v, got=%v", want, got)
	}
}
