package display

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"gocv.io/x/gocv"

	"github.com/soocke/steer-bot-go/domain/steering"
	"github.com/soocke/steer-bot-go/domain/tracking"
)

// Status is the steering overlay for one frame.
type Status struct {
	State    steering.KeyState
	Angle    float64
	Band     string
	HasAngle bool
}

// Display renders annotated frames and reports quit requests.
type Display interface {
	Render(frame *gocv.Mat, dets []tracking.Detection, st Status) (quit bool)
	Close() error
}

var (
	yellow = color.RGBA{R: 255, G: 255, B: 0, A: 0}
	green  = color.RGBA{R: 0, G: 255, B: 0, A: 0}
	white  = color.RGBA{R: 255, G: 255, B: 255, A: 0}
)

func outlineColor(band string) color.RGBA {
	if band == tracking.BandRose {
		return yellow
	}
	return green
}

// Annotate draws an outline circle per detection and the steering status.
func Annotate(frame *gocv.Mat, dets []tracking.Detection, st Status) {
	if frame == nil || frame.Empty() {
		return
	}
	for _, d := range dets {
		c := image.Pt(int(math.Round(d.Center.X)), int(math.Round(d.Center.Y)))
		gocv.Circle(frame, c, int(d.Radius), outlineColor(d.Band), 2)
	}
	line := st.State.String()
	if st.HasAngle {
		line = fmt.Sprintf("%s %.1f deg (%s)", line, st.Angle, st.Band)
	}
	gocv.PutText(frame, line, image.Pt(10, 24), gocv.FontHersheySimplex, 0.6, white, 2)
}

// Window shows frames in a native window; pressing q requests quit.
type Window struct {
	w *gocv.Window
}

// NewWindow opens a window titled title.
func NewWindow(title string) *Window { return &Window{w: gocv.NewWindow(title)} }

func (w *Window) Render(frame *gocv.Mat, dets []tracking.Detection, st Status) bool {
	Annotate(frame, dets, st)
	w.w.IMShow(*frame)
	return w.w.WaitKey(1)&0xFF == 'q'
}

func (w *Window) Close() error { return w.w.Close() }

// Headless discards frames and never requests quit.
type Headless struct{}

func (Headless) Render(*gocv.Mat, []tracking.Detection, Status) bool { return false }
func (Headless) Close() error                                        { return nil }
