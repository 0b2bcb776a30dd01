package nes

import "github.com/golang/glog"

const (
	sampleRate      = 44100
	cyclesPerSample = float64(CPUFrequency) / sampleRate
)

// APU keeps the audio registers and streams a sample level at 44.1kHz.
// Only the DMC direct load ($4011) drives the level, the channels are not
// synthesized.
// Reference: https://www.nesdev.org/wiki/APU
type APU struct {
	registers [0x18]byte
	level     float32
	out       chan float32
	cycle     float64
	samples   uint64
}

func NewAPU() *APU {
	return &APU{}
}

// SetAudioOut sets the channel samples are sent to, two per sample (l, r).
func (a *APU) SetAudioOut(c chan float32) {
	a.out = c
}

// Level returns the current output level in [0, 1].
func (a *APU) Level() float32 {
	return a.level
}

// writeRegister stores a write to $4000-$4013 or $4015.
func (a *APU) writeRegister(address uint16, data byte) {
	a.registers[address-0x4000] = data
	switch address {
	case 0x4011:
		// https://www.nesdev.org/wiki/APU_DMC#Direct_load
		a.level = float32(data&0x7F) / 127
	}
	glog.V(3).Infof("APU write: address=0x%04x, data=0x%02x", address, data)
}

// Clock runs once per CPU cycle.
func (a *APU) Clock() {
	a.cycle++
	if a.cycle < cyclesPerSample {
		return
	}
	a.cycle -= cyclesPerSample
	a.samples++
	if a.out == nil {
		return
	}
	select {
	case a.out <- a.level: // l
	default:
	}
	select {
	case a.out <- a.level: // r
	default:
	}
}
