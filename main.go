package main

import (
	"flag"
	"io/ioutil"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/golang/glog"

	"github.com/jyane/famicom/nes"
	"github.com/jyane/famicom/statsview"
	"github.com/jyane/famicom/ui"
)

var (
	path       = flag.String("path", "./rom/sample1.nes", "path to NES ROM file")
	scale      = flag.Int("scale", 4, "window and screenshot scale")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	debug      = flag.Bool("debug", false, "run as debug mode")
	headless   = flag.Int("headless", 0, "run this many frames without a window")
	screenshot = flag.String("screenshot", "", "write the last headless frame to this PNG file")
	stats      = flag.Bool("statsview", false, "serve runtime statistics on "+statsview.Address)
)

// readFile reads file as bytes
func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	b, err := ioutil.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func init() {
	runtime.LockOSThread()
}

func main() {
	flag.Parse()
	defer glog.Flush()
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			glog.Fatal("Failed to create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			glog.Fatal("Failed to start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}
	if *stats {
		s := statsview.Start()
		defer s.Stop()
	}
	buf, err := readFile(*path)
	if err != nil {
		glog.Exitf("Failed to read %s: %v", *path, err)
	}
	console, err := nes.NewConsole(buf)
	if err != nil {
		glog.Exitf("Failed to initiate Console: %v", err)
	}
	switch {
	case *debug:
		if err := nes.NewDebugConsole(console).Run(); err != nil {
			glog.Errorf("Debugger stopped: %v", err)
		}
	case *headless > 0:
		if err := runHeadless(console, *headless, *screenshot, *scale); err != nil {
			glog.Errorf("Headless run failed: %v", err)
		}
	default:
		ui.Start(console, *scale)
	}
}
