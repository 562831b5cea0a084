//go:build windows

package action

import (
	"log/slog"

	"golang.org/x/sys/windows"
)

const (
	keyeventfKeyUp = 0x0002
	mapvkVKToVSC   = 0
)

// KeybdInjector sends key events with keybd_event, including the hardware
// scan code so games reading DirectInput see them.
type KeybdInjector struct {
	keybdEvent    *windows.LazyProc
	mapVirtualKey *windows.LazyProc
	logger        *slog.Logger
}

// NewPlatformInjector returns the Win32 key injector.
func NewPlatformInjector(logger *slog.Logger) Injector {
	user32 := windows.NewLazySystemDLL("user32.dll")
	return &KeybdInjector{
		keybdEvent:    user32.NewProc("keybd_event"),
		mapVirtualKey: user32.NewProc("MapVirtualKeyW"),
		logger:        logger,
	}
}

func (k *KeybdInjector) send(key string, flags uintptr) {
	vk := ParseVK(key)
	if vk == 0 {
		if k.logger != nil {
			k.logger.Warn("unknown key token", "key", key)
		}
		return
	}
	scan, _, _ := k.mapVirtualKey.Call(uintptr(vk), mapvkVKToVSC)
	_, _, _ = k.keybdEvent.Call(uintptr(vk), scan, flags, 0)
}

// KeyDown presses key.
func (k *KeybdInjector) KeyDown(key string) { k.send(key, 0) }

// KeyUp releases key.
func (k *KeybdInjector) KeyUp(key string) { k.send(key, keyeventfKeyUp) }
