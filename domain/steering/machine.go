package steering

import (
	"log/slog"

	"github.com/soocke/steer-bot-go/domain/tracking"
)

// Machine maps marker pairs onto the held steering key.
// Not safe for concurrent use; drive it from the frame loop goroutine.
type Machine struct {
	state     KeyState
	intensity Intensity
	logger    *slog.Logger
	listeners []StateListener
	lastBand  string
	lastAngle float64
}

// NewMachine returns a machine in the Idle state.
func NewMachine(in Intensity, logger *slog.Logger) *Machine {
	return &Machine{state: Idle, intensity: in, logger: logger}
}

// AddListener registers l for state changes.
func (m *Machine) AddListener(l StateListener) { m.listeners = append(m.listeners, l) }

// Current returns the current key state.
func (m *Machine) Current() KeyState { return m.state }

// LastAngle returns the most recent angle and band name, if any step ran.
func (m *Machine) LastAngle() (float64, string) { return m.lastAngle, m.lastBand }

// Step advances the machine with this frame's markers. Pairs with fewer than
// two points leave the state untouched and produce no actions.
func (m *Machine) Step(pair tracking.MarkerPair) (KeyState, []Action) {
	p1, p2, ok := pair.Both()
	if !ok {
		return m.state, nil
	}
	angle := Angle(p1, p2)
	next, acts, band := Next(angle, m.state, m.intensity)
	m.lastAngle, m.lastBand = angle, band.Name
	if m.logger != nil {
		m.logger.Debug("steering angle", "angle", angle, "band", band.Name, "state", m.state.String())
	}
	m.transition(next)
	return m.state, acts
}

// Reset returns the machine to Idle and yields the release for any held key.
func (m *Machine) Reset() []Action {
	if m.state == Idle {
		return nil
	}
	acts := []Action{up(m.state.Side().key())}
	m.transition(Idle)
	return acts
}

func (m *Machine) transition(next KeyState) {
	prev := m.state
	if prev == next {
		return
	}
	m.state = next
	if m.logger != nil {
		m.logger.Info("steering state transition", "from", prev.String(), "to", next.String(), "band", m.lastBand)
	}
	for _, l := range m.listeners {
		l(prev, next)
	}
}
