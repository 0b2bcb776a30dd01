package nes

// CPU emulates NES CPU - is custom 6502 made by RICOH.
// The CPU is stepped one clock at a time: an instruction does all its work on
// its first cycle and then idles for the rest of its cycle count.
// References:
//   https://en.wikipedia.org/wiki/MOS_Technology_6502
//   http://www.6502.org/tutorials/6502opcodes.html
//   https://www.nesdev.org/wiki/CPU_unofficial_opcodes
//   http://hp.vector.co.jp/authors/VA042397/nes/6502.html (In Japanese)

const CPUFrequency = 1789773

const (
	stackBase    uint16 = 0x0100
	nmiVector    uint16 = 0xFFFA
	resetVector  uint16 = 0xFFFC
	irqVector    uint16 = 0xFFFE
	resetCycles         = 8
	nmiCycles           = 8
	irqCycles           = 7
	powerOnStack byte   = 0xFD
)

type addressingMode int

const (
	implied addressingMode = iota
	accumulator
	immediate
	zeropage
	zeropageX
	zeropageY
	relative
	absolute
	absoluteX
	absoluteY
	indirect
	indirectX
	indirectY
)

// Status flag bits as they appear in the encoded byte.
const (
	flagC byte = 1 << iota
	flagZ
	flagI
	flagD
	flagB
	flagU
	flagV
	flagN
)

type status struct {
	c bool // carry
	z bool // zero
	i bool // IRQ disable
	d bool // decimal - no effect on NES
	b bool // break
	r bool // reserved - unused
	v bool // overflow
	n bool // negative
}

// encode encodes the status to a byte.
func (s *status) encode() byte {
	var res byte
	if s.c {
		res |= flagC
	}
	if s.z {
		res |= flagZ
	}
	if s.i {
		res |= flagI
	}
	if s.d {
		res |= flagD
	}
	if s.b {
		res |= flagB
	}
	if s.r {
		res |= flagU
	}
	if s.v {
		res |= flagV
	}
	if s.n {
		res |= flagN
	}
	return res
}

// decodeFrom decodes a byte to the status.
func (s *status) decodeFrom(data byte) {
	s.c = data&flagC != 0
	s.z = data&flagZ != 0
	s.i = data&flagI != 0
	s.d = data&flagD != 0
	s.b = data&flagB != 0
	s.r = data&flagU != 0
	s.v = data&flagV != 0
	s.n = data&flagN != 0
}

// memory is what the CPU reads and writes through, the Bus in a console.
type memory interface {
	Read(address uint16) byte
	Write(address uint16, data byte)
}

type instruction struct {
	mnemonic string
	mode     addressingMode
	execute  func() byte
	cycles   int
}

// Registers is a snapshot of the programmer visible CPU state.
type Registers struct {
	PC uint16
	A  byte
	X  byte
	Y  byte
	S  byte
	P  byte
}

type CPU struct {
	p  *status // Processor status flag bits
	a  byte    // Accumulator register
	x  byte    // Index register
	y  byte    // Index register
	pc uint16  // Program counter
	s  byte    // Stack pointer

	bus          memory
	instructions [256]instruction

	remaining int    // cycles left for the instruction in flight
	cycles    uint64 // total cycles since reset
	stall     int    // OAM DMA stall cycles

	opcode  byte
	mode    addressingMode
	addrAbs uint16
	addrRel uint16
	fetched byte

	nmiPending bool
	irqPending bool
}

func (c *CPU) createInstructions() [256]instruction {
	return [256]instruction{
		{"BRK", implied, c.brk, 7},     // 0x00
		{"ORA", indirectX, c.ora, 6},   // 0x01
		{"*KIL", implied, c.xxx, 2},    // 0x02
		{"*SLO", indirectX, c.xxx, 8},  // 0x03
		{"*NOP", zeropage, c.nop, 3},   // 0x04
		{"ORA", zeropage, c.ora, 3},    // 0x05
		{"ASL", zeropage, c.asl, 5},    // 0x06
		{"*SLO", zeropage, c.xxx, 5},   // 0x07
		{"PHP", implied, c.php, 3},     // 0x08
		{"ORA", immediate, c.ora, 2},   // 0x09
		{"ASL", accumulator, c.asl, 2}, // 0x0A
		{"*ANC", immediate, c.xxx, 2},  // 0x0B
		{"*NOP", absolute, c.nop, 4},   // 0x0C
		{"ORA", absolute, c.ora, 4},    // 0x0D
		{"ASL", absolute, c.asl, 6},    // 0x0E
		{"*SLO", absolute, c.xxx, 6},   // 0x0F
		{"BPL", relative, c.bpl, 2},    // 0x10
		{"ORA", indirectY, c.ora, 5},   // 0x11
		{"*KIL", implied, c.xxx, 2},    // 0x12
		{"*SLO", indirectY, c.xxx, 8},  // 0x13
		{"*NOP", zeropageX, c.nop, 4},  // 0x14
		{"ORA", zeropageX, c.ora, 4},   // 0x15
		{"ASL", zeropageX, c.asl, 6},   // 0x16
		{"*SLO", zeropageX, c.xxx, 6},  // 0x17
		{"CLC", implied, c.clc, 2},     // 0x18
		{"ORA", absoluteY, c.ora, 4},   // 0x19
		{"*NOP", implied, c.nop, 2},    // 0x1A
		{"*SLO", absoluteY, c.xxx, 7},  // 0x1B
		{"*NOP", absoluteX, c.nop, 4},  // 0x1C
		{"ORA", absoluteX, c.ora, 4},   // 0x1D
		{"ASL", absoluteX, c.asl, 7},   // 0x1E
		{"*SLO", absoluteX, c.xxx, 7},  // 0x1F
		{"JSR", absolute, c.jsr, 6},    // 0x20
		{"AND", indirectX, c.and, 6},   // 0x21
		{"*KIL", implied, c.xxx, 2},    // 0x22
		{"*RLA", indirectX, c.xxx, 8},  // 0x23
		{"BIT", zeropage, c.bit, 3},    // 0x24
		{"AND", zeropage, c.and, 3},    // 0x25
		{"ROL", zeropage, c.rol, 5},    // 0x26
		{"*RLA", zeropage, c.xxx, 5},   // 0x27
		{"PLP", implied, c.plp, 4},     // 0x28
		{"AND", immediate, c.and, 2},   // 0x29
		{"ROL", accumulator, c.rol, 2}, // 0x2A
		{"*ANC", immediate, c.xxx, 2},  // 0x2B
		{"BIT", absolute, c.bit, 4},    // 0x2C
		{"AND", absolute, c.and, 4},    // 0x2D
		{"ROL", absolute, c.rol, 6},    // 0x2E
		{"*RLA", absolute, c.xxx, 6},   // 0x2F
		{"BMI", relative, c.bmi, 2},    // 0x30
		{"AND", indirectY, c.and, 5},   // 0x31
		{"*KIL", implied, c.xxx, 2},    // 0x32
		{"*RLA", indirectY, c.xxx, 8},  // 0x33
		{"*NOP", zeropageX, c.nop, 4},  // 0x34
		{"AND", zeropageX, c.and, 4},   // 0x35
		{"ROL", zeropageX, c.rol, 6},   // 0x36
		{"*RLA", zeropageX, c.xxx, 6},  // 0x37
		{"SEC", implied, c.sec, 2},     // 0x38
		{"AND", absoluteY, c.and, 4},   // 0x39
		{"*NOP", implied, c.nop, 2},    // 0x3A
		{"*RLA", absoluteY, c.xxx, 7},  // 0x3B
		{"*NOP", absoluteX, c.nop, 4},  // 0x3C
		{"AND", absoluteX, c.and, 4},   // 0x3D
		{"ROL", absoluteX, c.rol, 7},   // 0x3E
		{"*RLA", absoluteX, c.xxx, 7},  // 0x3F
		{"RTI", implied, c.rti, 6},     // 0x40
		{"EOR", indirectX, c.eor, 6},   // 0x41
		{"*KIL", implied, c.xxx, 2},    // 0x42
		{"*SRE", indirectX, c.xxx, 8},  // 0x43
		{"*NOP", zeropage, c.nop, 3},   // 0x44
		{"EOR", zeropage, c.eor, 3},    // 0x45
		{"LSR", zeropage, c.lsr, 5},    // 0x46
		{"*SRE", zeropage, c.xxx, 5},   // 0x47
		{"PHA", implied, c.pha, 3},     // 0x48
		{"EOR", immediate, c.eor, 2},   // 0x49
		{"LSR", accumulator, c.lsr, 2}, // 0x4A
		{"*ALR", immediate, c.xxx, 2},  // 0x4B
		{"JMP", absolute, c.jmp, 3},    // 0x4C
		{"EOR", absolute, c.eor, 4},    // 0x4D
		{"LSR", absolute, c.lsr, 6},    // 0x4E
		{"*SRE", absolute, c.xxx, 6},   // 0x4F
		{"BVC", relative, c.bvc, 2},    // 0x50
		{"EOR", indirectY, c.eor, 5},   // 0x51
		{"*KIL", implied, c.xxx, 2},    // 0x52
		{"*SRE", indirectY, c.xxx, 8},  // 0x53
		{"*NOP", zeropageX, c.nop, 4},  // 0x54
		{"EOR", zeropageX, c.eor, 4},   // 0x55
		{"LSR", zeropageX, c.lsr, 6},   // 0x56
		{"*SRE", zeropageX, c.xxx, 6},  // 0x57
		{"CLI", implied, c.cli, 2},     // 0x58
		{"EOR", absoluteY, c.eor, 4},   // 0x59
		{"*NOP", implied, c.nop, 2},    // 0x5A
		{"*SRE", absoluteY, c.xxx, 7},  // 0x5B
		{"*NOP", absoluteX, c.nop, 4},  // 0x5C
		{"EOR", absoluteX, c.eor, 4},   // 0x5D
		{"LSR", absoluteX, c.lsr, 7},   // 0x5E
		{"*SRE", absoluteX, c.xxx, 7},  // 0x5F
		{"RTS", implied, c.rts, 6},     // 0x60
		{"ADC", indirectX, c.adc, 6},   // 0x61
		{"*KIL", implied, c.xxx, 2},    // 0x62
		{"*RRA", indirectX, c.xxx, 8},  // 0x63
		{"*NOP", zeropage, c.nop, 3},   // 0x64
		{"ADC", zeropage, c.adc, 3},    // 0x65
		{"ROR", zeropage, c.ror, 5},    // 0x66
		{"*RRA", zeropage, c.xxx, 5},   // 0x67
		{"PLA", implied, c.pla, 4},     // 0x68
		{"ADC", immediate, c.adc, 2},   // 0x69
		{"ROR", accumulator, c.ror, 2}, // 0x6A
		{"*ARR", immediate, c.xxx, 2},  // 0x6B
		{"JMP", indirect, c.jmp, 5},    // 0x6C
		{"ADC", absolute, c.adc, 4},    // 0x6D
		{"ROR", absolute, c.ror, 6},    // 0x6E
		{"*RRA", absolute, c.xxx, 6},   // 0x6F
		{"BVS", relative, c.bvs, 2},    // 0x70
		{"ADC", indirectY, c.adc, 5},   // 0x71
		{"*KIL", implied, c.xxx, 2},    // 0x72
		{"*RRA", indirectY, c.xxx, 8},  // 0x73
		{"*NOP", zeropageX, c.nop, 4},  // 0x74
		{"ADC", zeropageX, c.adc, 4},   // 0x75
		{"ROR", zeropageX, c.ror, 6},   // 0x76
		{"*RRA", zeropageX, c.xxx, 6},  // 0x77
		{"SEI", implied, c.sei, 2},     // 0x78
		{"ADC", absoluteY, c.adc, 4},   // 0x79
		{"*NOP", implied, c.nop, 2},    // 0x7A
		{"*RRA", absoluteY, c.xxx, 7},  // 0x7B
		{"*NOP", absoluteX, c.nop, 4},  // 0x7C
		{"ADC", absoluteX, c.adc, 4},   // 0x7D
		{"ROR", absoluteX, c.ror, 7},   // 0x7E
		{"*RRA", absoluteX, c.xxx, 7},  // 0x7F
		{"*NOP", immediate, c.nop, 2},  // 0x80
		{"STA", indirectX, c.sta, 6},   // 0x81
		{"*NOP", immediate, c.nop, 2},  // 0x82
		{"*SAX", indirectX, c.xxx, 6},  // 0x83
		{"STY", zeropage, c.sty, 3},    // 0x84
		{"STA", zeropage, c.sta, 3},    // 0x85
		{"STX", zeropage, c.stx, 3},    // 0x86
		{"*SAX", zeropage, c.xxx, 3},   // 0x87
		{"DEY", implied, c.dey, 2},     // 0x88
		{"*NOP", immediate, c.nop, 2},  // 0x89
		{"TXA", implied, c.txa, 2},     // 0x8A
		{"*XAA", immediate, c.xxx, 2},  // 0x8B
		{"STY", absolute, c.sty, 4},    // 0x8C
		{"STA", absolute, c.sta, 4},    // 0x8D
		{"STX", absolute, c.stx, 4},    // 0x8E
		{"*SAX", absolute, c.xxx, 4},   // 0x8F
		{"BCC", relative, c.bcc, 2},    // 0x90
		{"STA", indirectY, c.sta, 6},   // 0x91
		{"*KIL", implied, c.xxx, 2},    // 0x92
		{"*AHX", indirectY, c.xxx, 6},  // 0x93
		{"STY", zeropageX, c.sty, 4},   // 0x94
		{"STA", zeropageX, c.sta, 4},   // 0x95
		{"STX", zeropageY, c.stx, 4},   // 0x96
		{"*SAX", zeropageY, c.xxx, 4},  // 0x97
		{"TYA", implied, c.tya, 2},     // 0x98
		{"STA", absoluteY, c.sta, 5},   // 0x99
		{"TXS", implied, c.txs, 2},     // 0x9A
		{"*TAS", absoluteY, c.xxx, 5},  // 0x9B
		{"*SHY", absoluteX, c.xxx, 5},  // 0x9C
		{"STA", absoluteX, c.sta, 5},   // 0x9D
		{"*SHX", absoluteY, c.xxx, 5},  // 0x9E
		{"*AHX", absoluteY, c.xxx, 5},  // 0x9F
		{"LDY", immediate, c.ldy, 2},   // 0xA0
		{"LDA", indirectX, c.lda, 6},   // 0xA1
		{"LDX", immediate, c.ldx, 2},   // 0xA2
		{"*LAX", indirectX, c.xxx, 6},  // 0xA3
		{"LDY", zeropage, c.ldy, 3},    // 0xA4
		{"LDA", zeropage, c.lda, 3},    // 0xA5
		{"LDX", zeropage, c.ldx, 3},    // 0xA6
		{"*LAX", zeropage, c.xxx, 3},   // 0xA7
		{"TAY", implied, c.tay, 2},     // 0xA8
		{"LDA", immediate, c.lda, 2},   // 0xA9
		{"TAX", implied, c.tax, 2},     // 0xAA
		{"*LAX", immediate, c.xxx, 2},  // 0xAB
		{"LDY", absolute, c.ldy, 4},    // 0xAC
		{"LDA", absolute, c.lda, 4},    // 0xAD
		{"LDX", absolute, c.ldx, 4},    // 0xAE
		{"*LAX", absolute, c.xxx, 4},   // 0xAF
		{"BCS", relative, c.bcs, 2},    // 0xB0
		{"LDA", indirectY, c.lda, 5},   // 0xB1
		{"*KIL", implied, c.xxx, 2},    // 0xB2
		{"*LAX", indirectY, c.xxx, 5},  // 0xB3
		{"LDY", zeropageX, c.ldy, 4},   // 0xB4
		{"LDA", zeropageX, c.lda, 4},   // 0xB5
		{"LDX", zeropageY, c.ldx, 4},   // 0xB6
		{"*LAX", zeropageY, c.xxx, 4},  // 0xB7
		{"CLV", implied, c.clv, 2},     // 0xB8
		{"LDA", absoluteY, c.lda, 4},   // 0xB9
		{"TSX", implied, c.tsx, 2},     // 0xBA
		{"*LAS", absoluteY, c.xxx, 4},  // 0xBB
		{"LDY", absoluteX, c.ldy, 4},   // 0xBC
		{"LDA", absoluteX, c.lda, 4},   // 0xBD
		{"LDX", absoluteY, c.ldx, 4},   // 0xBE
		{"*LAX", absoluteY, c.xxx, 4},  // 0xBF
		{"CPY", immediate, c.cpy, 2},   // 0xC0
		{"CMP", indirectX, c.cmp, 6},   // 0xC1
		{"*NOP", immediate, c.nop, 2},  // 0xC2
		{"*DCP", indirectX, c.xxx, 8},  // 0xC3
		{"CPY", zeropage, c.cpy, 3},    // 0xC4
		{"CMP", zeropage, c.cmp, 3},    // 0xC5
		{"DEC", zeropage, c.dec, 5},    // 0xC6
		{"*DCP", zeropage, c.xxx, 5},   // 0xC7
		{"INY", implied, c.iny, 2},     // 0xC8
		{"CMP", immediate, c.cmp, 2},   // 0xC9
		{"DEX", implied, c.dex, 2},     // 0xCA
		{"*AXS", immediate, c.xxx, 2},  // 0xCB
		{"CPY", absolute, c.cpy, 4},    // 0xCC
		{"CMP", absolute, c.cmp, 4},    // 0xCD
		{"DEC", absolute, c.dec, 6},    // 0xCE
		{"*DCP", absolute, c.xxx, 6},   // 0xCF
		{"BNE", relative, c.bne, 2},    // 0xD0
		{"CMP", indirectY, c.cmp, 5},   // 0xD1
		{"*KIL", implied, c.xxx, 2},    // 0xD2
		{"*DCP", indirectY, c.xxx, 8},  // 0xD3
		{"*NOP", zeropageX, c.nop, 4},  // 0xD4
		{"CMP", zeropageX, c.cmp, 4},   // 0xD5
		{"DEC", zeropageX, c.dec, 6},   // 0xD6
		{"*DCP", zeropageX, c.xxx, 6},  // 0xD7
		{"CLD", implied, c.cld, 2},     // 0xD8
		{"CMP", absoluteY, c.cmp, 4},   // 0xD9
		{"*NOP", implied, c.nop, 2},    // 0xDA
		{"*DCP", absoluteY, c.xxx, 7},  // 0xDB
		{"*NOP", absoluteX, c.nop, 4},  // 0xDC
		{"CMP", absoluteX, c.cmp, 4},   // 0xDD
		{"DEC", absoluteX, c.dec, 7},   // 0xDE
		{"*DCP", absoluteX, c.xxx, 7},  // 0xDF
		{"CPX", immediate, c.cpx, 2},   // 0xE0
		{"SBC", indirectX, c.sbc, 6},   // 0xE1
		{"*NOP", immediate, c.nop, 2},  // 0xE2
		{"*ISB", indirectX, c.xxx, 8},  // 0xE3
		{"CPX", zeropage, c.cpx, 3},    // 0xE4
		{"SBC", zeropage, c.sbc, 3},    // 0xE5
		{"INC", zeropage, c.inc, 5},    // 0xE6
		{"*ISB", zeropage, c.xxx, 5},   // 0xE7
		{"INX", implied, c.inx, 2},     // 0xE8
		{"SBC", immediate, c.sbc, 2},   // 0xE9
		{"NOP", implied, c.nop, 2},     // 0xEA
		{"*SBC", immediate, c.xxx, 2},  // 0xEB
		{"CPX", absolute, c.cpx, 4},    // 0xEC
		{"SBC", absolute, c.sbc, 4},    // 0xED
		{"INC", absolute, c.inc, 6},    // 0xEE
		{"*ISB", absolute, c.xxx, 6},   // 0xEF
		{"BEQ", relative, c.beq, 2},    // 0xF0
		{"SBC", indirectY, c.sbc, 5},   // 0xF1
		{"*KIL", implied, c.xxx, 2},    // 0xF2
		{"*ISB", indirectY, c.xxx, 8},  // 0xF3
		{"*NOP", zeropageX, c.nop, 4},  // 0xF4
		{"SBC", zeropageX, c.sbc, 4},   // 0xF5
		{"INC", zeropageX, c.inc, 6},   // 0xF6
		{"*ISB", zeropageX, c.xxx, 6},  // 0xF7
		{"SED", implied, c.sed, 2},     // 0xF8
		{"SBC", absoluteY, c.sbc, 4},   // 0xF9
		{"*NOP", implied, c.nop, 2},    // 0xFA
		{"*ISB", absoluteY, c.xxx, 7},  // 0xFB
		{"*NOP", absoluteX, c.nop, 4},  // 0xFC
		{"SBC", absoluteX, c.sbc, 4},   // 0xFD
		{"INC", absoluteX, c.inc, 7},   // 0xFE
		{"*ISB", absoluteX, c.xxx, 7},  // 0xFF
	}
}

// NewCPU creates a new NES CPU. It has no memory until a Bus connects to it.
func NewCPU() *CPU {
	c := &CPU{
		p: &status{r: true},
		s: powerOnStack,
	}
	c.instructions = c.createInstructions()
	return c
}

// connect gives the CPU its handle to memory.
func (c *CPU) connect(bus memory) {
	c.bus = bus
}

func (c *CPU) read(address uint16) byte {
	return c.bus.Read(address)
}

func (c *CPU) write(address uint16, data byte) {
	c.bus.Write(address, data)
}

// read16 reads a little endian word.
func (c *CPU) read16(address uint16) uint16 {
	l := uint16(c.read(address))
	h := uint16(c.read(address + 1))
	return h<<8 | l
}

// read16Wrap reads a word whose high byte comes from the same page, which is how
// the 6502 fetches indirect pointers.
func (c *CPU) read16Wrap(address uint16) uint16 {
	l := uint16(c.read(address))
	h := uint16(c.read(address&0xFF00 | uint16(byte(address)+1)))
	return h<<8 | l
}

// Reset loads the reset vector and puts the registers in their power-on state.
func (c *CPU) Reset() {
	c.pc = c.read16(resetVector)
	c.a = 0
	c.x = 0
	c.y = 0
	c.s = powerOnStack
	c.p.decodeFrom(flagU)
	c.addrAbs = 0
	c.addrRel = 0
	c.fetched = 0
	c.stall = 0
	c.nmiPending = false
	c.irqPending = false
	c.cycles = 0
	c.remaining = resetCycles
}

// NMI requests a non-maskable interrupt, taken at the next instruction boundary.
func (c *CPU) NMI() {
	c.nmiPending = true
}

// IRQ requests an interrupt, taken at the next instruction boundary. The
// request is dropped when the I flag is set, now or at that boundary.
func (c *CPU) IRQ() {
	if c.p.i {
		return
	}
	c.irqPending = true
}

// interrupt pushes PC and status with B clear and jumps through vector.
func (c *CPU) interrupt(vector uint16) {
	c.push(byte(c.pc >> 8))
	c.push(byte(c.pc))
	c.push(c.p.encode()&^flagB | flagU)
	c.p.i = true
	c.pc = c.read16(vector)
}

// nmi services the non-maskable interrupt.
func (c *CPU) nmi() {
	c.interrupt(nmiVector)
	c.remaining = nmiCycles
}

// irq services the maskable interrupt, it does nothing while I is set.
func (c *CPU) irq() {
	if c.p.i {
		return
	}
	c.interrupt(irqVector)
	c.remaining = irqCycles
}

// stallDMA suspends instruction fetch while OAM DMA owns the bus.
func (c *CPU) stallDMA(cycles int) {
	c.stall += cycles
}

// Clock runs one CPU cycle.
func (c *CPU) Clock() {
	if c.remaining == 0 {
		if c.stall > 0 {
			c.stall--
			c.cycles++
			return
		}
		switch {
		case c.nmiPending:
			c.nmiPending = false
			c.nmi()
		case c.irqPending && !c.p.i:
			c.irqPending = false
			c.irq()
		default:
			// An IRQ masked by then is dropped.
			c.irqPending = false
			c.opcode = c.read(c.pc)
			c.pc++
			c.p.r = true
			instruction := &c.instructions[c.opcode]
			c.mode = instruction.mode
			c.remaining = instruction.cycles
			// Both sides have to agree the extra cycle is due.
			addressExtra := c.address(instruction.mode)
			executeExtra := instruction.execute()
			c.remaining += int(addressExtra & executeExtra)
			c.p.r = true
		}
	}
	c.remaining--
	c.cycles++
}

// address runs the addressing mode: it leaves the effective address in
// c.addrAbs (or the branch offset in c.addrRel) and returns 1 when indexing
// crossed a page.
func (c *CPU) address(mode addressingMode) byte {
	switch mode {
	case implied, accumulator:
		c.fetched = c.a
	case immediate:
		c.addrAbs = c.pc
		c.pc++
	case zeropage:
		c.addrAbs = uint16(c.read(c.pc))
		c.pc++
	case zeropageX:
		// If the address exceeds 0xFF (page crossed), back to 0x00
		c.addrAbs = uint16(c.read(c.pc) + c.x)
		c.pc++
	case zeropageY:
		c.addrAbs = uint16(c.read(c.pc) + c.y)
		c.pc++
	case relative:
		c.addrRel = uint16(c.read(c.pc))
		c.pc++
		// Relative will look up a signed value
		if c.addrRel&0x80 != 0 {
			c.addrRel |= 0xFF00
		}
	case absolute:
		c.addrAbs = c.read16(c.pc)
		c.pc += 2
	case absoluteX:
		base := c.read16(c.pc)
		c.pc += 2
		c.addrAbs = base + uint16(c.x)
		return pageCrossed(base, c.addrAbs)
	case absoluteY:
		base := c.read16(c.pc)
		c.pc += 2
		c.addrAbs = base + uint16(c.y)
		return pageCrossed(base, c.addrAbs)
	case indirect:
		p := c.read16(c.pc)
		c.pc += 2
		// The high byte is fetched from the same page when p ends in 0xFF.
		c.addrAbs = c.read16Wrap(p)
	case indirectX:
		p := c.read(c.pc)
		c.pc++
		c.addrAbs = c.read16Wrap(uint16(p + c.x))
	case indirectY:
		p := c.read(c.pc)
		c.pc++
		base := c.read16Wrap(uint16(p))
		c.addrAbs = base + uint16(c.y)
		return pageCrossed(base, c.addrAbs)
	}
	return 0
}

func pageCrossed(a, b uint16) byte {
	if a&0xFF00 != b&0xFF00 {
		return 1
	}
	return 0
}

// fetch loads the operand, the accumulator for implied and accumulator modes.
func (c *CPU) fetch() byte {
	if c.mode != implied && c.mode != accumulator {
		c.fetched = c.read(c.addrAbs)
	}
	return c.fetched
}

// PC returns the program counter.
func (c *CPU) PC() uint16 {
	return c.pc
}

// SetPC forces the program counter, for harnesses entering at a fixed address.
func (c *CPU) SetPC(pc uint16) {
	c.pc = pc
}

// Cycles returns the number of cycles run since reset.
func (c *CPU) Cycles() uint64 {
	return c.cycles
}

// SetCycles overrides the cycle counter.
func (c *CPU) SetCycles(cycles uint64) {
	c.cycles = cycles
}

// Complete reports whether the CPU sits between instructions with no DMA
// stall left.
func (c *CPU) Complete() bool {
	return c.remaining == 0 && c.stall == 0
}

// Registers returns a snapshot of the registers.
func (c *CPU) Registers() Registers {
	return Registers{PC: c.pc, A: c.a, X: c.x, Y: c.y, S: c.s, P: c.p.encode()}
}
