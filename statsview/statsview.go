// Package statsview charts the emulator's Go runtime (heap, goroutines, GC)
// in a browser while a session runs.
package statsview

import (
	"errors"
	"net/http"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/golang/glog"
)

// Address is where the charts are served, under /debug/statsview.
const Address = "localhost:12600"

// sampleIntervalMillis is how often the runtime is sampled.
const sampleIntervalMillis = 1000

// Server is a running stats page.
type Server struct {
	manager *statsview.ViewManager
}

// Start serves the charts in the background until Stop.
func Start() *Server {
	viewer.SetConfiguration(
		viewer.WithAddr(Address),
		viewer.WithInterval(sampleIntervalMillis),
		viewer.WithTheme(viewer.ThemeWesteros),
	)
	s := &Server{manager: statsview.New()}
	go func() {
		if err := s.manager.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			glog.Errorf("Stats server stopped: %v", err)
		}
	}()
	glog.Infof("Runtime stats at http://%s/debug/statsview", Address)
	return s
}

// Stop shuts the server down.
func (s *Server) Stop() {
	s.manager.Stop()
}
