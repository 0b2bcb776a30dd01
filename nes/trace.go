package nes

import (
	"fmt"
	"strings"
)

// instructionLength returns the size in bytes of an instruction for the mode.
func instructionLength(mode addressingMode) uint16 {
	switch mode {
	case implied, accumulator:
		return 1
	case absolute, absoluteX, absoluteY, indirect:
		return 3
	}
	return 2
}

// disassemble decodes the instruction at pc, returning its bytes and assembly.
func (c *CPU) disassemble(peek func(uint16) byte, pc uint16) (string, string) {
	opcode := peek(pc)
	in := c.instructions[opcode]
	n := instructionLength(in.mode)
	raw := make([]string, 0, n)
	for i := uint16(0); i < n; i++ {
		raw = append(raw, fmt.Sprintf("%02X", peek(pc+i)))
	}
	lo := uint16(peek(pc + 1))
	word := uint16(peek(pc+2))<<8 | lo
	var operand string
	switch in.mode {
	case accumulator:
		operand = "A"
	case immediate:
		operand = fmt.Sprintf("#$%02X", lo)
	case zeropage:
		operand = fmt.Sprintf("$%02X", lo)
	case zeropageX:
		operand = fmt.Sprintf("$%02X,X", lo)
	case zeropageY:
		operand = fmt.Sprintf("$%02X,Y", lo)
	case relative:
		operand = fmt.Sprintf("$%04X", pc+2+uint16(int8(lo)))
	case absolute:
		operand = fmt.Sprintf("$%04X", word)
	case absoluteX:
		operand = fmt.Sprintf("$%04X,X", word)
	case absoluteY:
		operand = fmt.Sprintf("$%04X,Y", word)
	case indirect:
		operand = fmt.Sprintf("($%04X)", word)
	case indirectX:
		operand = fmt.Sprintf("($%02X,X)", lo)
	case indirectY:
		operand = fmt.Sprintf("($%02X),Y", lo)
	}
	return strings.Join(raw, " "), strings.TrimSpace(fmt.Sprintf("%4s %s", in.mnemonic, operand))
}

// Trace formats the state at the current instruction boundary the way
// nestest.log does.
// C000  4C F5 C5  JMP $C5F5                       A:00 X:00 Y:00 P:24 SP:FD PPU:  0, 21 CYC:7
func (c *Console) Trace() string {
	r := c.CPU.Registers()
	raw, asm := c.CPU.disassemble(c.Bus.peek, r.PC)
	if !strings.HasPrefix(asm, "*") {
		asm = " " + asm
	}
	return fmt.Sprintf("%04X  %-8s %-32s A:%02X X:%02X Y:%02X P:%02X SP:%02X PPU:%3d,%3d CYC:%d",
		r.PC, raw, asm, r.A, r.X, r.Y, r.P, r.S, c.PPU.Scanline(), c.PPU.Dot(), c.CPU.Cycles())
}
