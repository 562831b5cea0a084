package action

import (
	"log/slog"
	"time"

	"github.com/soocke/steer-bot-go/domain/steering"
)

// Bindings maps the logical steering keys to injector key tokens.
type Bindings struct {
	Left  string
	Right string
}

// DefaultBindings steers with A and D.
func DefaultBindings() Bindings { return Bindings{Left: "A", Right: "D"} }

func (b Bindings) token(k steering.Key) string {
	if k == steering.KeyLeft {
		return b.Left
	}
	return b.Right
}

// Executor plays steering actions through a KeyGuard.
type Executor struct {
	guard  *KeyGuard
	keys   Bindings
	sleep  func(time.Duration)
	logger *slog.Logger
}

// NewExecutor returns an executor that sleeps with time.Sleep.
func NewExecutor(guard *KeyGuard, keys Bindings, logger *slog.Logger) *Executor {
	return &Executor{guard: guard, keys: keys, sleep: time.Sleep, logger: logger}
}

// SetSleep replaces the pause implementation (tests).
func (e *Executor) SetSleep(fn func(time.Duration)) {
	if fn != nil {
		e.sleep = fn
	}
}

// Apply runs acts in order.
func (e *Executor) Apply(acts []steering.Action) {
	for _, a := range acts {
		switch a.Kind {
		case steering.ActionKeyDown:
			e.guard.Down(e.keys.token(a.Key))
		case steering.ActionKeyUp:
			e.guard.Up(e.keys.token(a.Key))
		case steering.ActionPause:
			if a.Delay > 0 {
				e.sleep(a.Delay)
			}
		}
	}
	if len(acts) > 0 && e.logger != nil {
		e.logger.Debug("key actions applied", "count", len(acts))
	}
}
