package capture

import (
	"image"
	"log/slog"

	"github.com/vova616/screenshot"
	"gocv.io/x/gocv"
)

// grabFunc captures a screen rectangle; an empty rectangle means full screen.
type grabFunc func(r image.Rectangle) (*image.RGBA, error)

func grabScreen(r image.Rectangle) (*image.RGBA, error) {
	if r.Empty() {
		return screenshot.CaptureScreen()
	}
	return screenshot.CaptureRect(r)
}

// ScreenSource captures a region of the desktop, e.g. a window showing a
// phone camera stream.
type ScreenSource struct {
	rect   image.Rectangle
	grab   grabFunc
	logger *slog.Logger
}

// NewScreenSource returns a source for rect. An empty rect captures the
// full screen.
func NewScreenSource(rect image.Rectangle, logger *slog.Logger) *ScreenSource {
	return &ScreenSource{rect: rect, grab: grabScreen, logger: logger}
}

// Read captures the region and converts it to BGR into dst.
func (s *ScreenSource) Read(dst *gocv.Mat) bool {
	img, err := s.grab(s.rect)
	if err != nil || img == nil {
		if s.logger != nil {
			s.logger.Error("capture screen", "error", err, "rect", s.rect.String())
		}
		return false
	}
	m, err := gocv.ImageToMatRGB(img)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("convert screen frame", "error", err)
		}
		return false
	}
	defer m.Close()
	m.CopyTo(dst)
	return !dst.Empty()
}

// Close is a no-op; screen capture holds no device.
func (s *ScreenSource) Close() error { return nil }
