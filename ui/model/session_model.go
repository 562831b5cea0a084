package model

import (
	"time"
)

// SessionModel tracks how long both markers have been visible in the current
// stretch and in total, and how many times tracking was lost.
// Presenters poll Values(); the zero value is ready to use.
type SessionModel struct {
	active     bool
	trackStart time.Time
	lastStreak time.Duration
	accum      time.Duration
	losses     int
}

// NewSessionModel returns a pointer to a ready-to-use SessionModel.
func NewSessionModel() *SessionModel { return &SessionModel{} }

// OnTick updates the model with whether both markers were seen this frame.
func (m *SessionModel) OnTick(tracking bool, now time.Time) {
	if m == nil {
		return
	}
	if tracking {
		if !m.active { // lost -> tracking
			m.active = true
			m.trackStart = now
			m.lastStreak = 0
		}
		m.lastStreak = now.Sub(m.trackStart)
	} else if m.active { // tracking -> lost
		m.lastStreak = now.Sub(m.trackStart)
		m.accum += m.lastStreak
		m.active = false
		m.losses++
	}
}

// Values returns the current streak, the total tracked time including an
// ongoing streak, and the number of tracking losses.
func (m *SessionModel) Values() (streak, total time.Duration, losses int) {
	if m == nil {
		return 0, 0, 0
	}
	streak = m.lastStreak
	total = m.accum
	if m.active {
		total += streak
	}
	return streak, total, m.losses
}
