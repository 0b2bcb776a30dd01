package main

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/golang/glog"
	"golang.org/x/image/draw"

	"github.com/jyane/famicom/nes"
)

// runHeadless runs frames without a window and optionally writes the last one
// as a PNG, scaled with nearest neighbour so pixels stay sharp.
func runHeadless(console *nes.Console, frames int, screenshot string, scale int) error {
	for i := 0; i < frames; i++ {
		console.StepFrame()
	}
	glog.Infof("Ran %d frames, %d CPU cycles", frames, console.CPU.Cycles())
	if screenshot == "" {
		return nil
	}
	return writeScreenshot(console.Frame(), screenshot, scale)
}

func writeScreenshot(frame *image.RGBA, path string, scale int) error {
	if scale < 1 {
		scale = 1
	}
	b := frame.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), frame, b, draw.Src, nil)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := png.Encode(f, dst); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	glog.Infof("Screenshot written to %s", path)
	return nil
}
