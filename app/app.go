package app

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"gocv.io/x/gocv"

	"github.com/soocke/steer-bot-go/domain/action"
	"github.com/soocke/steer-bot-go/domain/capture"
	"github.com/soocke/steer-bot-go/domain/steering"
	"github.com/soocke/steer-bot-go/domain/tracking"
	"github.com/soocke/steer-bot-go/ui/display"
	"github.com/soocke/steer-bot-go/ui/model"
)

// ErrCaptureFailed is returned by Run when the frame source stops producing frames.
var ErrCaptureFailed = errors.New("failed to capture frame")

// MarkerLocator finds the marker pair in a frame, falling back to previous.
type MarkerLocator interface {
	Locate(frame gocv.Mat, previous tracking.MarkerPair) (tracking.MarkerPair, []tracking.Detection)
	Close() error
}

// Deps are the collaborators of the frame loop.
type Deps struct {
	Logger      *slog.Logger
	Source      capture.FrameSource
	Locator     MarkerLocator
	Machine     *steering.Machine
	Guard       *action.KeyGuard
	Executor    *action.Executor
	Display     display.Display
	Session     *model.SessionModel
	ThrottleKey string
}

// App runs the capture -> locate -> steer -> display loop on one goroutine.
type App struct {
	Deps
	frames atomic.Uint64
	now    func() time.Time
}

// New returns an App. Nil Display and Session default to headless and a
// fresh session model.
func New(d Deps) *App {
	if d.Display == nil {
		d.Display = display.Headless{}
	}
	if d.Session == nil {
		d.Session = model.NewSessionModel()
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	return &App{Deps: d, now: time.Now}
}

// Frames returns the number of frames fully processed.
func (a *App) Frames() uint64 { return a.frames.Load() }

// Run processes frames until ctx is done, the display requests quit or the
// source fails (ErrCaptureFailed). Every held key is released before Run
// returns, including on panic.
func (a *App) Run(ctx context.Context) error {
	frame := gocv.NewMat()
	defer frame.Close()
	defer a.releaseKeys()

	if a.ThrottleKey != "" {
		a.Guard.Down(a.ThrottleKey)
	}

	var pair tracking.MarkerPair
	for {
		select {
		case <-ctx.Done():
			a.Logger.Info("steering loop stopped", "reason", ctx.Err().Error())
			return nil
		default:
		}

		if !a.Source.Read(&frame) {
			a.Logger.Error("failed to capture frame", "frames", a.Frames())
			return ErrCaptureFailed
		}

		var dets []tracking.Detection
		pair, dets = a.Locator.Locate(frame, pair)
		state, acts := a.Machine.Step(pair)
		a.Executor.Apply(acts)
		a.Session.OnTick(len(dets) == 2, a.now())
		a.frames.Add(1)

		angle, band := a.Machine.LastAngle()
		st := display.Status{State: state, Angle: angle, Band: band, HasAngle: band != ""}
		if a.Display.Render(&frame, dets, st) {
			a.Logger.Info("quit requested", "frames", a.Frames())
			return nil
		}
	}
}

func (a *App) releaseKeys() {
	a.Executor.Apply(a.Machine.Reset())
	a.Guard.ReleaseAll()
	streak, total, losses := a.Session.Values()
	a.Logger.Info("steering session ended",
		"frames", a.Frames(),
		"tracked", total.String(),
		"last_streak", streak.String(),
		"tracking_losses", losses,
	)
}

// Close releases the source, locator and display.
func (a *App) Close() error {
	return errors.Join(a.Display.Close(), a.Locator.Close(), a.Source.Close())
}
