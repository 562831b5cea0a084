package app

import (
	"fmt"
	"log/slog"

	"github.com/soocke/steer-bot-go/config"
	"github.com/soocke/steer-bot-go/domain/action"
	"github.com/soocke/steer-bot-go/domain/capture"
	"github.com/soocke/steer-bot-go/domain/steering"
	"github.com/soocke/steer-bot-go/domain/tracking"
	"github.com/soocke/steer-bot-go/ui/display"
	"github.com/soocke/steer-bot-go/ui/model"
)

// AppContainer assembles services and the frame loop.
type AppContainer struct {
	Config  *config.Config
	Logger  *slog.Logger
	Capture *capture.InstrumentedSource
	Locator *tracking.Locator
	Machine *steering.Machine
	Guard   *action.KeyGuard
	Session *model.SessionModel
	App     *App
}

// BuildContainer constructs all components. Opening the camera is the only
// side effect.
func BuildContainer(cfg *config.Config, logger *slog.Logger) (*AppContainer, error) {
	c := &AppContainer{Config: cfg, Logger: logger}

	src, err := openSource(cfg, logger)
	if err != nil {
		return nil, err
	}
	c.Capture = capture.Instrument(src, logger)
	c.Locator = tracking.NewLocator(cfg.TrackingBands(), logger)
	c.Machine = steering.NewMachine(cfg.Intensity(), logger)

	var inj action.Injector
	if cfg.DryRun {
		inj = action.LogInjector{Logger: logger}
	} else {
		inj = action.NewPlatformInjector(logger)
	}
	c.Guard = action.NewKeyGuard(inj, logger)
	c.Session = model.NewSessionModel()

	var disp display.Display = display.Headless{}
	if !cfg.Headless {
		disp = display.NewWindow("Steer Bot")
	}

	c.App = New(Deps{
		Logger:      logger,
		Source:      c.Capture,
		Locator:     c.Locator,
		Machine:     c.Machine,
		Guard:       c.Guard,
		Executor:    action.NewExecutor(c.Guard, cfg.Bindings(), logger),
		Display:     disp,
		Session:     c.Session,
		ThrottleKey: cfg.ThrottleKey,
	})
	return c, nil
}

func openSource(cfg *config.Config, logger *slog.Logger) (capture.FrameSource, error) {
	switch capture.Kind(cfg.Source) {
	case capture.KindScreen:
		return capture.NewScreenSource(cfg.Selection(), logger), nil
	case capture.KindCamera:
		cam, err := capture.OpenCamera(cfg.CameraDevice, logger)
		if err != nil {
			return nil, fmt.Errorf("could not open camera: %w", err)
		}
		return cam, nil
	default:
		return nil, fmt.Errorf("unknown frame source %q", cfg.Source)
	}
}
