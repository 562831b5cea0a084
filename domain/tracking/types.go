package tracking

import "gocv.io/x/gocv"

// Point is a marker centroid in image-pixel coordinates.
type Point struct {
	X, Y float64
}

// MarkerPair holds up to two marker centroids in detection order.
// The zero value is an empty pair.
type MarkerPair struct {
	pts [2]Point
	n   int
}

// NewMarkerPair builds a pair from at most two points; extra points are dropped.
func NewMarkerPair(pts ...Point) MarkerPair {
	var p MarkerPair
	for _, pt := range pts {
		if p.n == len(p.pts) {
			break
		}
		p.pts[p.n] = pt
		p.n++
	}
	return p
}

// Len reports the number of points (0, 1 or 2).
func (p MarkerPair) Len() int { return p.n }

// Points returns a copy of the held points.
func (p MarkerPair) Points() []Point {
	out := make([]Point, p.n)
	copy(out, p.pts[:p.n])
	return out
}

// Both returns the two points when the pair is complete.
func (p MarkerPair) Both() (Point, Point, bool) {
	if p.n != 2 {
		return Point{}, Point{}, false
	}
	return p.pts[0], p.pts[1], true
}

// HSVRange is a closed range over OpenCV HSV channels (H 0..180, S/V 0..255).
type HSVRange struct {
	Lower [3]uint8
	Upper [3]uint8
}

// Valid reports whether every lower bound is at or below its upper bound
// and the hue stays on the OpenCV 0..180 scale.
func (r HSVRange) Valid() bool {
	for i := range r.Lower {
		if r.Lower[i] > r.Upper[i] {
			return false
		}
	}
	return r.Upper[0] <= 180
}

func (r HSVRange) lowerScalar() gocv.Scalar {
	return gocv.NewScalar(float64(r.Lower[0]), float64(r.Lower[1]), float64(r.Lower[2]), 0)
}

func (r HSVRange) upperScalar() gocv.Scalar {
	return gocv.NewScalar(float64(r.Upper[0]), float64(r.Upper[1]), float64(r.Upper[2]), 0)
}

// Band names one marker color.
type Band struct {
	Name  string
	Range HSVRange
}

// Detection is a located blob, kept for visualization only.
type Detection struct {
	Band   string
	Center Point
	Radius float64
}

// Default band names.
const (
	BandRose  = "rose"
	BandGreen = "green"
)

// DefaultBands returns the rose and green bands in detection order.
func DefaultBands() []Band {
	return []Band{
		{Name: BandRose, Range: HSVRange{Lower: [3]uint8{160, 100, 100}, Upper: [3]uint8{180, 255, 255}}},
		{Name: BandGreen, Range: HSVRange{Lower: [3]uint8{40, 100, 100}, Upper: [3]uint8{70, 255, 255}}},
	}
}
