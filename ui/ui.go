package ui

import (
	"time"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/golang/glog"

	"github.com/jyane/famicom/nes"
)

const (
	screenWidth  = 256
	screenHeight = 240
	framesPerSec = 60
)

func mainLoop(window *glfw.Window, console *nes.Console, s *screen) {
	ticker := time.NewTicker(time.Second / framesPerSec)
	defer ticker.Stop()
	for range ticker.C {
		if window.ShouldClose() {
			return
		}
		glfw.PollEvents()
		console.SetButtons(0, getKeys(window))
		console.StepFrame()
		s.updateTexture(console.Frame())
		s.draw()
		window.SwapBuffers()
	}
}

// Start is the main entrypoint. It opens a window scale times the NES screen
// and runs the console at 60 frames per second until the window is closed.
func Start(console *nes.Console, scale int) {
	if err := glfw.Init(); err != nil {
		glog.Fatalln(err)
	}
	defer glfw.Terminate()
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	window, err := glfw.CreateWindow(screenWidth*scale, screenHeight*scale, "famicom", nil, nil)
	if err != nil {
		glog.Fatalln(err)
	}
	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		glog.Fatalln(err)
	}
	glog.Infof("OpenGL version: %s", gl.GoStr(gl.GetString(gl.VERSION)))
	s, err := newProgram()
	if err != nil {
		glog.Fatalln(err)
	}
	defer s.delete()
	a := newAudio()
	if err := a.start(); err != nil {
		glog.Warningf("Audio disabled: %v", err)
	} else {
		console.SetAudioOut(a.channel)
		defer a.terminate()
	}
	mainLoop(window, console, s)
}
