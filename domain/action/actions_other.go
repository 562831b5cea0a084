//go:build !windows

package action

import "log/slog"

// NewPlatformInjector returns a LogInjector; key injection is Windows only.
func NewPlatformInjector(logger *slog.Logger) Injector {
	if logger != nil {
		logger.Warn("no OS key injector on this platform, logging key events only")
	}
	return LogInjector{Logger: logger}
}
