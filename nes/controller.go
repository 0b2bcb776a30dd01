package nes

// Reference:
//   http://hp.vector.co.jp/authors/VA042397/nes/joypad.html (In Japanese)
//   https://www.nesdev.org/wiki/Controller_reading
//   https://www.nesdev.org/wiki/Standard_controller

type button int

// Controller bit assignments, 1 means pressed otherwise 0.
// bit    7 6      5     4  3    2    1     0
// button A B Select Start Up Down Left Right
const (
	ButtonA button = iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

// Controller holds the state byte written by the input collaborator and the
// shift latch the CPU reads serially.
type Controller struct {
	state byte
	latch byte
}

func NewController() *Controller {
	return &Controller{}
}

// Set packs pressed buttons, indexed by ButtonA..ButtonRight, into the state byte.
func (c *Controller) Set(buttons [8]bool) {
	var state byte
	for i, pressed := range buttons {
		if pressed {
			state |= 0x80 >> i
		}
	}
	c.state = state
}

// SetState stores a raw state byte, bit7=A ... bit0=Right.
func (c *Controller) SetState(state byte) {
	c.state = state
}

// State returns the state byte, bit7=A ... bit0=Right.
func (c *Controller) State() byte {
	return c.state
}

// read shifts out one button, MSB first, as bit 0.
func (c *Controller) read() byte {
	ret := (c.latch >> 7) & 1
	c.latch <<= 1
	return ret
}

// write latches the current state.
func (c *Controller) write() {
	c.latch = c.state
}
