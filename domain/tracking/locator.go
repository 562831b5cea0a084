package tracking

import (
	"image"
	"log/slog"

	"gocv.io/x/gocv"
)

const (
	// morphIterations is the number of erode and dilate passes per mask.
	morphIterations = 2
	kernelSize      = 3
)

// Locator finds the colored markers in a BGR frame.
// Not safe for concurrent use; call Locate from the frame loop goroutine.
type Locator struct {
	bands  []Band
	kernel gocv.Mat
	hsv    gocv.Mat
	mask   gocv.Mat
	logger *slog.Logger
}

// NewLocator returns a locator for the given bands, in detection order.
// A nil or empty band list selects DefaultBands. Call Close to release
// the native buffers.
func NewLocator(bands []Band, logger *slog.Logger) *Locator {
	if len(bands) == 0 {
		bands = DefaultBands()
	}
	if len(bands) > 2 {
		bands = bands[:2]
	}
	return &Locator{
		bands:  append([]Band(nil), bands...),
		kernel: gocv.GetStructuringElement(gocv.MorphRect, image.Pt(kernelSize, kernelSize)),
		hsv:    gocv.NewMat(),
		mask:   gocv.NewMat(),
		logger: logger,
	}
}

// Locate returns this frame's marker pair and the detections behind it.
// When nothing is detected the previous pair is returned unchanged.
func (l *Locator) Locate(frame gocv.Mat, previous MarkerPair) (MarkerPair, []Detection) {
	if frame.Empty() {
		return previous, nil
	}
	gocv.CvtColor(frame, &l.hsv, gocv.ColorBGRToHSV)

	var pts []Point
	var dets []Detection
	for _, b := range l.bands {
		d, ok := l.locateBand(b)
		if !ok {
			continue
		}
		pts = append(pts, d.Center)
		dets = append(dets, d)
	}
	if len(pts) == 0 {
		if l.logger != nil {
			l.logger.Debug("no markers detected, keeping previous", "previous", previous.Len())
		}
		return previous, nil
	}
	return NewMarkerPair(pts...), dets
}

func (l *Locator) locateBand(b Band) (Detection, bool) {
	gocv.InRangeWithScalar(l.hsv, b.Range.lowerScalar(), b.Range.upperScalar(), &l.mask)
	for i := 0; i < morphIterations; i++ {
		gocv.Erode(l.mask, &l.mask, l.kernel)
	}
	for i := 0; i < morphIterations; i++ {
		gocv.Dilate(l.mask, &l.mask, l.kernel)
	}

	contours := gocv.FindContours(l.mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()
	if contours.Size() == 0 {
		return Detection{}, false
	}

	best, bestArea := 0, -1.0
	for i := 0; i < contours.Size(); i++ {
		if a := gocv.ContourArea(contours.At(i)); a > bestArea {
			best, bestArea = i, a
		}
	}
	x, y, r := gocv.MinEnclosingCircle(contours.At(best))
	return Detection{
		Band:   b.Name,
		Center: Point{X: float64(x), Y: float64(y)},
		Radius: float64(r),
	}, true
}

// Close releases the native buffers held by the locator.
func (l *Locator) Close() error {
	l.kernel.Close()
	l.hsv.Close()
	l.mask.Close()
	return nil
}
