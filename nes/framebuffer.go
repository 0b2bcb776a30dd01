package nes

import (
	"image"
	"image/color"
	"sync"
)

// FrameBuffer is a double buffered Renderer. The PPU draws into the back
// image, a completed frame is swapped to the front where readers copy it.
type FrameBuffer struct {
	mu    sync.Mutex
	back  *image.RGBA
	front *image.RGBA
}

func NewFrameBuffer() *FrameBuffer {
	return &FrameBuffer{
		back:  image.NewRGBA(image.Rect(0, 0, width, height)),
		front: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

func (f *FrameBuffer) SetPixel(x, y int, c color.RGBA) {
	f.back.SetRGBA(x, y, c)
}

// swap publishes the back image.
func (f *FrameBuffer) swap() {
	f.mu.Lock()
	f.back, f.front = f.front, f.back
	f.mu.Unlock()
}

// Frame returns a copy of the last completed frame.
func (f *FrameBuffer) Frame() *image.RGBA {
	f.mu.Lock()
	defer f.mu.Unlock()
	img := image.NewRGBA(f.front.Rect)
	copy(img.Pix, f.front.Pix)
	return img
}
