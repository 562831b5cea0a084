package app

import (
	"context"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"github.com/soocke/steer-bot-go/domain/action"
	"github.com/soocke/steer-bot-go/domain/steering"
	"github.com/soocke/steer-bot-go/domain/tracking"
	"github.com/soocke/steer-bot-go/ui/display"
)

var discardLogger = slog.New(slog.NewTextHandler(&discardWriter{}, nil))

type discardWriter struct{}

func (d *discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// fakeSource yields n frames, then fails.
type fakeSource struct {
	n      int
	reads  int
	closed bool
}

func (s *fakeSource) Read(dst *gocv.Mat) bool {
	s.reads++
	return s.reads <= s.n
}

func (s *fakeSource) Close() error { s.closed = true; return nil }

// scriptLocator returns one scripted angle per frame; NaN means no markers.
type scriptLocator struct {
	angles []float64
	i      int
	closed bool
}

func (l *scriptLocator) Locate(_ gocv.Mat, prev tracking.MarkerPair) (tracking.MarkerPair, []tracking.Detection) {
	if l.i >= len(l.angles) {
		return prev, nil
	}
	deg := l.angles[l.i]
	l.i++
	if math.IsNaN(deg) {
		return prev, nil
	}
	r := deg * math.Pi / 180
	p1, p2 := tracking.Point{}, tracking.Point{X: 100 * math.Cos(r), Y: 100 * math.Sin(r)}
	return tracking.NewMarkerPair(p1, p2), []tracking.Detection{{Center: p1}, {Center: p2}}
}

func (l *scriptLocator) Close() error { l.closed = true; return nil }

type recorder struct{ calls []string }

func (r *recorder) KeyDown(key string) { r.calls = append(r.calls, "down:"+key) }
func (r *recorder) KeyUp(key string)   { r.calls = append(r.calls, "up:"+key) }

// quitAfter requests quit on the n-th render.
type quitAfter struct {
	n, renders int
	states     []steering.KeyState
}

func (q *quitAfter) Render(_ *gocv.Mat, _ []tracking.Detection, st display.Status) bool {
	q.renders++
	q.states = append(q.states, st.State)
	return q.n > 0 && q.renders >= q.n
}

func (q *quitAfter) Close() error { return nil }

type harness struct {
	app   *App
	src   *fakeSource
	loc   *scriptLocator
	rec   *recorder
	guard *action.KeyGuard
	disp  *quitAfter
}

func newHarness(frames int, angles []float64, quitAt int, throttle string) *harness {
	h := &harness{
		src:  &fakeSource{n: frames},
		loc:  &scriptLocator{angles: angles},
		rec:  &recorder{},
		disp: &quitAfter{n: quitAt},
	}
	h.guard = action.NewKeyGuard(h.rec, discardLogger)
	exec := action.NewExecutor(h.guard, action.DefaultBindings(), discardLogger)
	exec.SetSleep(func(time.Duration) {})
	h.app = New(Deps{
		Logger:      discardLogger,
		Source:      h.src,
		Locator:     h.loc,
		Machine:     steering.NewMachine(steering.DefaultIntensity(), discardLogger),
		Guard:       h.guard,
		Executor:    exec,
		Display:     h.disp,
		ThrottleKey: throttle,
	})
	return h
}

func TestRun_CaptureFailureOnFirstFrame(t *testing.T) {
	h := newHarness(0, nil, 0, "")
	err := h.app.Run(context.Background())
	require.ErrorIs(t, err, ErrCaptureFailed)
	assert.Equal(t, uint64(0), h.app.Frames())
	assert.Equal(t, 1, h.src.reads)
	assert.Empty(t, h.rec.calls)
	assert.Equal(t, 0, h.disp.renders)
}

func TestRun_LeftSequence(t *testing.T) {
	h := newHarness(4, []float64{0, 15, 25, -5}, 0, "")
	err := h.app.Run(context.Background())
	require.ErrorIs(t, err, ErrCaptureFailed)
	assert.Equal(t, uint64(4), h.app.Frames())
	assert.Equal(t, []string{"down:A", "up:A", "up:A"}, h.rec.calls)
	assert.Equal(t, []steering.KeyState{steering.Idle, steering.HoldLeft, steering.HoldLeft, steering.Idle}, h.disp.states)
	assert.Empty(t, h.guard.Held())
}

func TestRun_QuitReleasesHeldKeys(t *testing.T) {
	h := newHarness(10, []float64{-40, -45}, 2, "W")
	require.NoError(t, h.app.Run(context.Background()))
	assert.Equal(t, uint64(2), h.app.Frames())
	assert.Equal(t, []string{"down:W", "down:D", "down:D", "down:D", "up:D", "up:W"}, h.rec.calls)
	assert.Empty(t, h.guard.Held())
}

func TestRun_CaptureFailureReleasesHeldKeys(t *testing.T) {
	h := newHarness(1, []float64{70}, 0, "")
	require.ErrorIs(t, h.app.Run(context.Background()), ErrCaptureFailed)
	assert.Equal(t, []string{"down:A", "up:A"}, h.rec.calls)
	assert.Empty(t, h.guard.Held())
}

func TestRun_DropoutHoldsState(t *testing.T) {
	nan := math.NaN()
	h := newHarness(4, []float64{-70, nan, nan, nan}, 0, "")
	require.ErrorIs(t, h.app.Run(context.Background()), ErrCaptureFailed)
	assert.Equal(t, []steering.KeyState{steering.HoldRight, steering.HoldRight, steering.HoldRight, steering.HoldRight}, h.disp.states)
	// one assert on entry, one release at exit
	assert.Equal(t, []string{"down:D", "up:D"}, h.rec.calls)
}

func TestRun_ContextCancelled(t *testing.T) {
	h := newHarness(10, nil, 0, "W")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, h.app.Run(ctx))
	assert.Equal(t, uint64(0), h.app.Frames())
	assert.Equal(t, []string{"down:W", "up:W"}, h.rec.calls)
}

func TestClose_ClosesCollaborators(t *testing.T) {
	h := newHarness(0, nil, 0, "")
	require.NoError(t, h.app.Close())
	assert.True(t, h.src.closed)
	assert.True(t, h.loc.closed)
}
