package nes

import "testing"

// buildROM builds an iNES image in memory. program is placed at the start of
// PRG (0x8000), the reset vector points at it and the NMI vector at nmi.
func buildROM(prgBanks, chrBanks int, flags6, flags7 byte, program []byte, nmi uint16) []byte {
	rom := []byte{'N', 'E', 'S', msDOSEOF, byte(prgBanks), byte(chrBanks), flags6, flags7,
		0, 0, 0, 0, 0, 0, 0, 0}
	if flags6&0x04 != 0 {
		trainer := make([]byte, trainerSizeBytes)
		for i := range trainer {
			trainer[i] = 0xEE
		}
		rom = append(rom, trainer...)
	}
	prg := make([]byte, prgBanks*prgROMSizeUnit)
	copy(prg, program)
	if len(prg) > 0 {
		end := len(prg)
		prg[end-6] = byte(nmi)
		prg[end-5] = byte(nmi >> 8)
		prg[end-4] = 0x00 // reset -> 0x8000
		prg[end-3] = 0x80
	}
	rom = append(rom, prg...)
	rom = append(rom, make([]byte, chrBanks*chrROMSizeUnit)...)
	return rom
}

// newTestConsole loads program in an NROM-128 image and runs the reset
// sequence, so the next instruction is the first one of program.
func newTestConsole(t *testing.T, program []byte) *Console {
	t.Helper()
	c, err := NewConsole(buildROM(1, 1, 0, 0, program, 0x8000))
	if err != nil {
		t.Fatalf("NewConsole() failed: %v", err)
	}
	if got := c.StepInstruction(); got != resetCycles {
		t.Fatalf("reset cycles want=%d, got=%d", resetCycles, got)
	}
	return c
}

// flatMemory is 64KB of RAM with no mirroring, for testing the CPU alone.
type flatMemory [0x10000]byte

func (m *flatMemory) Read(address uint16) byte {
	return m[address]
}

func (m *flatMemory) Write(address uint16, data byte) {
	m[address] = data
}

// newTestCPU connects a CPU to flat memory holding program at pc and leaves it
// at the instruction boundary.
func newTestCPU(pc uint16, program ...byte) (*CPU, *flatMemory) {
	m := &flatMemory{}
	copy(m[pc:], program)
	m[resetVector] = byte(pc)
	m[resetVector+1] = byte(pc >> 8)
	c := NewCPU()
	c.connect(m)
	c.Reset()
	runInstruction(c)
	return c, m
}

// runInstruction clocks the CPU through one instruction and returns its cycles.
func runInstruction(c *CPU) int {
	n := 0
	for {
		c.Clock()
		n++
		if c.Complete() {
			return n
		}
	}
}
