package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteScreenshot(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 256, 240))
	frame.SetRGBA(1, 0, color.RGBA{0xFF, 0x00, 0x00, 0xFF})
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := writeScreenshot(frame, path, 2); err != nil {
		t.Fatalf("writeScreenshot() failed: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if got := img.Bounds(); got != image.Rect(0, 0, 512, 480) {
		t.Errorf("bounds want=(512, 480), got=%v", got)
	}
	for _, p := range []image.Point{{2, 0}, {3, 0}, {2, 1}, {3, 1}} {
		r, g, b, _ := img.At(p.X, p.Y).RGBA()
		if r != 0xFFFF || g != 0 || b != 0 {
			t.Errorf("pixel %v want red, got=(%d, %d, %d)", p, r, g, b)
		}
	}
	if r, _, _, _ := img.At(0, 0).RGBA(); r != 0 {
		t.Errorf("pixel (0, 0) want black, got r=%d", r)
	}
}

func TestWriteScreenshotError(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 256, 240))
	if err := writeScreenshot(frame, filepath.Join(t.TempDir(), "missing", "frame.png"), 1); err == nil {
		t.Errorf("writeScreenshot() want error for a missing directory")
	}
}
