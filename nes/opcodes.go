package nes

// Operations. Each returns 1 when the instruction pays an extra cycle for a
// page crossing, the caller ANDs that with the addressing mode's answer.

func (c *CPU) setZN(v byte) {
	c.p.z = v == 0
	c.p.n = v&0x80 != 0
}

func (c *CPU) push(data byte) {
	c.write(stackBase|uint16(c.s), data)
	c.s--
}

func (c *CPU) pull() byte {
	c.s++
	return c.read(stackBase | uint16(c.s))
}

func (c *CPU) push16(data uint16) {
	c.push(byte(data >> 8))
	c.push(byte(data))
}

func (c *CPU) pull16() uint16 {
	l := uint16(c.pull())
	h := uint16(c.pull())
	return h<<8 | l
}

// branch takes the jump when cond holds: one more cycle, and another when the
// target is on a different page.
func (c *CPU) branch(cond bool) byte {
	if cond {
		c.remaining++
		c.addrAbs = c.pc + c.addrRel
		if c.addrAbs&0xFF00 != c.pc&0xFF00 {
			c.remaining++
		}
		c.pc = c.addrAbs
	}
	return 0
}

func (c *CPU) addWithCarry(m byte) {
	var carry uint16
	if c.p.c {
		carry = 1
	}
	sum := uint16(c.a) + uint16(m) + carry
	r := byte(sum)
	c.p.c = sum > 0xFF
	c.p.v = ^(c.a^m)&(c.a^r)&0x80 != 0
	c.a = r
	c.setZN(c.a)
}

func (c *CPU) compare(r, m byte) {
	c.p.c = r >= m
	c.setZN(r - m)
}

// writeBack stores a read-modify-write result to A or memory.
func (c *CPU) writeBack(v byte) {
	if c.mode == accumulator {
		c.a = v
	} else {
		c.write(c.addrAbs, v)
	}
}

// adc adds with carry.
func (c *CPU) adc() byte {
	c.addWithCarry(c.fetch())
	return 1
}

// sbc subtracts with borrow, which is adding the one's complement.
func (c *CPU) sbc() byte {
	c.addWithCarry(c.fetch() ^ 0xFF)
	return 1
}

func (c *CPU) and() byte {
	c.a &= c.fetch()
	c.setZN(c.a)
	return 1
}

func (c *CPU) ora() byte {
	c.a |= c.fetch()
	c.setZN(c.a)
	return 1
}

func (c *CPU) eor() byte {
	c.a ^= c.fetch()
	c.setZN(c.a)
	return 1
}

// asl shifts left one bit.
func (c *CPU) asl() byte {
	m := c.fetch()
	c.p.c = m&0x80 != 0
	m <<= 1
	c.setZN(m)
	c.writeBack(m)
	return 0
}

// lsr shifts right one bit.
func (c *CPU) lsr() byte {
	m := c.fetch()
	c.p.c = m&0x01 != 0
	m >>= 1
	c.setZN(m)
	c.writeBack(m)
	return 0
}

// rol rotates left through carry.
func (c *CPU) rol() byte {
	m := c.fetch()
	var carry byte
	if c.p.c {
		carry = 1
	}
	c.p.c = m&0x80 != 0
	m = m<<1 | carry
	c.setZN(m)
	c.writeBack(m)
	return 0
}

// ror rotates right through carry.
func (c *CPU) ror() byte {
	m := c.fetch()
	var carry byte
	if c.p.c {
		carry = 0x80
	}
	c.p.c = m&0x01 != 0
	m = m>>1 | carry
	c.setZN(m)
	c.writeBack(m)
	return 0
}

func (c *CPU) bcc() byte { return c.branch(!c.p.c) }
func (c *CPU) bcs() byte { return c.branch(c.p.c) }
func (c *CPU) beq() byte { return c.branch(c.p.z) }
func (c *CPU) bne() byte { return c.branch(!c.p.z) }
func (c *CPU) bmi() byte { return c.branch(c.p.n) }
func (c *CPU) bpl() byte { return c.branch(!c.p.n) }
func (c *CPU) bvc() byte { return c.branch(!c.p.v) }
func (c *CPU) bvs() byte { return c.branch(c.p.v) }

// bit tests bits in memory with the accumulator.
func (c *CPU) bit() byte {
	m := c.fetch()
	c.p.z = c.a&m == 0
	c.p.v = m&0x40 != 0
	c.p.n = m&0x80 != 0
	return 0
}

// brk forces an interrupt. The pushed PC skips the padding byte after BRK.
func (c *CPU) brk() byte {
	c.pc++
	c.push16(c.pc)
	c.push(c.p.encode() | flagB | flagU)
	c.p.i = true
	c.pc = c.read16(irqVector)
	return 0
}

func (c *CPU) clc() byte { c.p.c = false; return 0 }
func (c *CPU) cld() byte { c.p.d = false; return 0 }
func (c *CPU) cli() byte { c.p.i = false; return 0 }
func (c *CPU) clv() byte { c.p.v = false; return 0 }
func (c *CPU) sec() byte { c.p.c = true; return 0 }
func (c *CPU) sed() byte { c.p.d = true; return 0 }
func (c *CPU) sei() byte { c.p.i = true; return 0 }

func (c *CPU) cmp() byte {
	c.compare(c.a, c.fetch())
	return 1
}

func (c *CPU) cpx() byte {
	c.compare(c.x, c.fetch())
	return 0
}

func (c *CPU) cpy() byte {
	c.compare(c.y, c.fetch())
	return 0
}

func (c *CPU) dec() byte {
	m := c.fetch() - 1
	c.write(c.addrAbs, m)
	c.setZN(m)
	return 0
}

func (c *CPU) dex() byte {
	c.x--
	c.setZN(c.x)
	return 0
}

func (c *CPU) dey() byte {
	c.y--
	c.setZN(c.y)
	return 0
}

func (c *CPU) inc() byte {
	m := c.fetch() + 1
	c.write(c.addrAbs, m)
	c.setZN(m)
	return 0
}

func (c *CPU) inx() byte {
	c.x++
	c.setZN(c.x)
	return 0
}

func (c *CPU) iny() byte {
	c.y++
	c.setZN(c.y)
	return 0
}

func (c *CPU) jmp() byte {
	c.pc = c.addrAbs
	return 0
}

// jsr pushes the address of its own last byte.
func (c *CPU) jsr() byte {
	c.push16(c.pc - 1)
	c.pc = c.addrAbs
	return 0
}

func (c *CPU) lda() byte {
	c.a = c.fetch()
	c.setZN(c.a)
	return 1
}

func (c *CPU) ldx() byte {
	c.x = c.fetch()
	c.setZN(c.x)
	return 1
}

func (c *CPU) ldy() byte {
	c.y = c.fetch()
	c.setZN(c.y)
	return 1
}

// nop does nothing. The unofficial absolute,X forms still pay for a page cross.
func (c *CPU) nop() byte {
	if c.mode == absoluteX {
		return 1
	}
	return 0
}

func (c *CPU) pha() byte {
	c.push(c.a)
	return 0
}

// php pushes the status with B and U set.
func (c *CPU) php() byte {
	c.push(c.p.encode() | flagB | flagU)
	return 0
}

func (c *CPU) pla() byte {
	c.a = c.pull()
	c.setZN(c.a)
	return 0
}

// plp pulls the status, B does not exist in the register.
func (c *CPU) plp() byte {
	c.p.decodeFrom(c.pull())
	c.p.b = false
	c.p.r = true
	return 0
}

func (c *CPU) rti() byte {
	c.p.decodeFrom(c.pull())
	c.p.b = false
	c.p.r = true
	c.pc = c.pull16()
	return 0
}

func (c *CPU) rts() byte {
	c.pc = c.pull16() + 1
	return 0
}

func (c *CPU) sta() byte {
	c.write(c.addrAbs, c.a)
	return 0
}

func (c *CPU) stx() byte {
	c.write(c.addrAbs, c.x)
	return 0
}

func (c *CPU) sty() byte {
	c.write(c.addrAbs, c.y)
	return 0
}

func (c *CPU) tax() byte {
	c.x = c.a
	c.setZN(c.x)
	return 0
}

func (c *CPU) tay() byte {
	c.y = c.a
	c.setZN(c.y)
	return 0
}

func (c *CPU) tsx() byte {
	c.x = c.s
	c.setZN(c.x)
	return 0
}

func (c *CPU) txa() byte {
	c.a = c.x
	c.setZN(c.a)
	return 0
}

// txs does not touch the flags.
func (c *CPU) txs() byte {
	c.s = c.x
	return 0
}

func (c *CPU) tya() byte {
	c.a = c.y
	c.setZN(c.a)
	return 0
}

// xxx is every unofficial opcode other than the NOPs, it only burns cycles.
func (c *CPU) xxx() byte {
	return 0
}
