package nes

const ramSize = 0x0800

// RAM is the 2KB work RAM. Addresses are folded into it, so every 2KB alias of
// 0x0000-0x1FFF hits the same byte.
type RAM struct {
	data [ramSize]byte
}

// NewRAM creates a cleared RAM.
func NewRAM() *RAM {
	return &RAM{}
}

// read reads data
func (r *RAM) read(address uint16) byte {
	return r.data[address&(ramSize-1)]
}

// write writes data
func (r *RAM) write(address uint16, x byte) {
	r.data[address&(ramSize-1)] = x
}
