package action

import (
	"log/slog"
	"sort"
	"strings"
	"sync"
)

// Injector emits OS key events. Calls are fire and forget.
type Injector interface {
	KeyDown(key string)
	KeyUp(key string)
}

// KeyGuard tracks which keys an Injector currently holds so they can be
// released on every exit path. Safe for concurrent use.
type KeyGuard struct {
	mu     sync.Mutex
	inj    Injector
	held   map[string]bool
	logger *slog.Logger
}

// NewKeyGuard wraps inj.
func NewKeyGuard(inj Injector, logger *slog.Logger) *KeyGuard {
	return &KeyGuard{inj: inj, held: make(map[string]bool), logger: logger}
}

// Down presses key and records it as held.
func (g *KeyGuard) Down(key string) {
	key = normalizeKey(key)
	if key == "" {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.inj.KeyDown(key)
	g.held[key] = true
}

// Up releases key. Releasing a key that is not held is forwarded anyway;
// injectors treat it as a no-op.
func (g *KeyGuard) Up(key string) {
	key = normalizeKey(key)
	if key == "" {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.inj.KeyUp(key)
	delete(g.held, key)
}

// Held returns the held keys in sorted order.
func (g *KeyGuard) Held() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]string, 0, len(g.held))
	for k := range g.held {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ReleaseAll releases every held key.
func (g *KeyGuard) ReleaseAll() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.held) == 0 {
		return
	}
	keys := make([]string, 0, len(g.held))
	for k := range g.held {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		g.inj.KeyUp(k)
		delete(g.held, k)
	}
	if g.logger != nil {
		g.logger.Info("released held keys", "keys", keys)
	}
}

func normalizeKey(key string) string { return strings.ToUpper(strings.TrimSpace(key)) }

// LogInjector records key events in the log instead of sending them.
// Used where no OS injector exists and for dry runs.
type LogInjector struct {
	Logger *slog.Logger
}

func (l LogInjector) KeyDown(key string) {
	if l.Logger != nil {
		l.Logger.Info("key down", "key", key)
	}
}

func (l LogInjector) KeyUp(key string) {
	if l.Logger != nil {
		l.Logger.Info("key up", "key", key)
	}
}
