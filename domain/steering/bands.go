package steering

import (
	"math"
	"time"

	"github.com/soocke/steer-bot-go/domain/tracking"
)

// Angle returns the direction from p1 to p2 in degrees, in (-180, 180].
// Coincident points yield 0.
func Angle(p1, p2 tracking.Point) float64 {
	deg := math.Atan2(p2.Y-p1.Y, p2.X-p1.X) * 180 / math.Pi
	if deg <= -180 {
		deg += 360
	}
	return deg
}

// Tier ranks how far a band sits from center; it selects the entry burst.
type Tier int

const (
	TierCenter Tier = iota
	TierSmall
	TierMedium
	TierMediumLarge
	TierLarge
)

// Band is one row of the steering table. Bounds are open when the matching
// flag is set.
type Band struct {
	Name     string
	Min, Max float64
	MinOpen  bool
	MaxOpen  bool
	Side     Side
	Tier     Tier
}

// Contains reports whether angle lies inside the band.
func (b Band) Contains(angle float64) bool {
	if b.MinOpen && angle <= b.Min || !b.MinOpen && angle < b.Min {
		return false
	}
	if b.MaxOpen && angle >= b.Max || !b.MaxOpen && angle > b.Max {
		return false
	}
	return true
}

var inf = math.Inf(1)

// Bands lists the steering table in evaluation order. Negative angles steer
// right, positive angles steer left.
var Bands = []Band{
	{Name: "center", Min: -10, Max: 10, Side: Neutral, Tier: TierCenter},
	{Name: "right-small", Min: -20, Max: -10, MaxOpen: true, Side: Right, Tier: TierSmall},
	{Name: "right-medium", Min: -30, Max: -20, MaxOpen: true, Side: Right, Tier: TierMedium},
	{Name: "right-medium-large", Min: -50, Max: -30, MaxOpen: true, Side: Right, Tier: TierMediumLarge},
	{Name: "right-large", Min: -inf, Max: -50, MinOpen: true, MaxOpen: true, Side: Right, Tier: TierLarge},
	{Name: "left-small", Min: 10, Max: 20, MinOpen: true, Side: Left, Tier: TierSmall},
	{Name: "left-medium", Min: 20, Max: 30, MinOpen: true, Side: Left, Tier: TierMedium},
	{Name: "left-medium-large", Min: 30, Max: 50, MinOpen: true, Side: Left, Tier: TierMediumLarge},
	{Name: "left-large", Min: 50, Max: inf, MinOpen: true, MaxOpen: true, Side: Left, Tier: TierLarge},
}

// Classify returns the first band containing angle. NaN falls into center.
func Classify(angle float64) Band {
	for _, b := range Bands {
		if b.Contains(angle) {
			return b
		}
	}
	return Bands[0]
}

// Intensity configures the bursts fired on entering a side.
type Intensity struct {
	TapDelay    time.Duration // pause between down and up of the small-angle tap
	Medium      int           // asserts for the medium bands
	MediumLarge int           // asserts for the medium-large bands
	Large       int           // asserts for the large bands
}

// DefaultIntensity returns the stock burst table.
func DefaultIntensity() Intensity {
	return Intensity{TapDelay: 5 * time.Millisecond, Medium: 2, MediumLarge: 3, Large: 1}
}

func (in Intensity) asserts(t Tier) int {
	n := 1
	switch t {
	case TierMedium:
		n = in.Medium
	case TierMediumLarge:
		n = in.MediumLarge
	case TierLarge:
		n = in.Large
	}
	if n < 1 {
		n = 1
	}
	return n
}

// burst returns the key actions asserting band's side.
func (in Intensity) burst(b Band) []Action {
	k := b.Side.key()
	if b.Tier == TierSmall {
		return []Action{down(k), pause(in.TapDelay), up(k)}
	}
	n := in.asserts(b.Tier)
	out := make([]Action, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, down(k))
	}
	return out
}

// Next maps angle onto the table and returns the new state, the actions to
// inject and the matched band. Actions are only produced when the logical
// side changes.
func Next(angle float64, state KeyState, in Intensity) (KeyState, []Action, Band) {
	b := Classify(angle)
	if b.Side == state.Side() {
		return state, nil, b
	}
	var acts []Action
	if state != Idle {
		acts = append(acts, up(state.Side().key()))
	}
	if b.Side != Neutral {
		acts = append(acts, in.burst(b)...)
	}
	return b.Side.State(), acts, b
}
