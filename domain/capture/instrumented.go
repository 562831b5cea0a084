package capture

import (
	"log/slog"
	"sync/atomic"
	"time"

	"gocv.io/x/gocv"
)

const captureStatsLogInterval = 5 * time.Second

// InstrumentedSource wraps a FrameSource with capture counters.
// Stats may be read from any goroutine.
type InstrumentedSource struct {
	src          FrameSource
	logger       *slog.Logger
	captures     atomic.Uint64
	failures     atomic.Uint64
	captureNanos atomic.Uint64
	sequence     atomic.Uint64
	last         atomic.Int64 // unix nanos of last good frame
	lastLog      time.Time
	now          func() time.Time
}

// Instrument wraps src.
func Instrument(src FrameSource, logger *slog.Logger) *InstrumentedSource {
	return &InstrumentedSource{src: src, logger: logger, now: time.Now}
}

// Read forwards to the wrapped source and records timing.
func (s *InstrumentedSource) Read(dst *gocv.Mat) bool {
	start := s.now()
	ok := s.src.Read(dst)
	if !ok {
		s.failures.Add(1)
		return false
	}
	end := s.now()
	s.captureNanos.Add(uint64(end.Sub(start).Nanoseconds()))
	s.captures.Add(1)
	s.sequence.Add(1)
	s.last.Store(end.UnixNano())
	if end.Sub(s.lastLog) >= captureStatsLogInterval {
		s.lastLog = end
		s.logStats()
	}
	return true
}

// Close closes the wrapped source.
func (s *InstrumentedSource) Close() error { return s.src.Close() }

// Stats returns a snapshot of the counters.
func (s *InstrumentedSource) Stats() CaptureStats {
	captures := s.captures.Load()
	total := s.captureNanos.Load()
	var avg time.Duration
	avgMicros := 0.0
	if captures > 0 && total > 0 {
		avg = time.Duration(total / captures)
		avgMicros = float64(avg) / float64(time.Microsecond)
	}
	var last time.Time
	if n := s.last.Load(); n != 0 {
		last = time.Unix(0, n)
	}
	return CaptureStats{
		Captures:         captures,
		Failures:         s.failures.Load(),
		AvgCapture:       avg,
		AvgCaptureMicros: avgMicros,
		LastCapture:      last,
		Sequence:         s.sequence.Load(),
	}
}

func (s *InstrumentedSource) logStats() {
	if s.logger == nil {
		return
	}
	stats := s.Stats()
	s.logger.Debug("capture.stats",
		"captures", stats.Captures,
		"failures", stats.Failures,
		"avg_capture", stats.AvgCapture,
	)
}
