package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/soocke/steer-bot-go/domain/action"
	"github.com/soocke/steer-bot-go/domain/steering"
	"github.com/soocke/steer-bot-go/domain/tracking"
)

// EnvPrefix prefixes environment overrides, e.g. STEER_CAMERA_DEVICE=1.
const EnvPrefix = "STEER"

// BandConfig is one marker color range on the OpenCV HSV scale.
type BandConfig struct {
	Name  string   `json:"name" mapstructure:"name"`
	Lower [3]uint8 `json:"lower" mapstructure:"lower"`
	Upper [3]uint8 `json:"upper" mapstructure:"upper"`
}

// Config holds runtime configuration for tracking, steering and app behavior.
// Fields may be loaded from a JSON file and overridden by environment
// variables and command-line flags.
type Config struct {
	Debug    bool   `json:"debug" mapstructure:"debug"`
	LogLevel string `json:"log_level" mapstructure:"log_level"`

	// Frame source
	Source       string `json:"source" mapstructure:"source"` // camera | screen
	CameraDevice int    `json:"camera_device" mapstructure:"camera_device"`
	SelectionX   int    `json:"selection_x" mapstructure:"selection_x"`
	SelectionY   int    `json:"selection_y" mapstructure:"selection_y"`
	SelectionW   int    `json:"selection_w" mapstructure:"selection_w"`
	SelectionH   int    `json:"selection_h" mapstructure:"selection_h"`
	Headless     bool   `json:"headless" mapstructure:"headless"`

	// Marker bands, rose first
	Bands []BandConfig `json:"bands" mapstructure:"bands"`

	// Keys
	LeftKey     string `json:"left_key" mapstructure:"left_key"`
	RightKey    string `json:"right_key" mapstructure:"right_key"`
	ThrottleKey string `json:"throttle_key" mapstructure:"throttle_key"` // empty disables
	DryRun      bool   `json:"dry_run" mapstructure:"dry_run"`

	// Burst intensity
	TapDelayMS         int `json:"tap_delay_ms" mapstructure:"tap_delay_ms"`
	MediumAsserts      int `json:"medium_asserts" mapstructure:"medium_asserts"`
	MediumLargeAsserts int `json:"medium_large_asserts" mapstructure:"medium_large_asserts"`
	LargeAsserts       int `json:"large_asserts" mapstructure:"large_asserts"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	cfg := &Config{
		Debug:              false,
		LogLevel:           "info",
		Source:             "camera",
		CameraDevice:       0,
		LeftKey:            "A",
		RightKey:           "D",
		ThrottleKey:        "W",
		TapDelayMS:         5,
		MediumAsserts:      2,
		MediumLargeAsserts: 3,
		LargeAsserts:       1,
	}
	for _, b := range tracking.DefaultBands() {
		cfg.Bands = append(cfg.Bands, BandConfig{Name: b.Name, Lower: b.Range.Lower, Upper: b.Range.Upper})
	}
	return cfg
}

// Validate clamps/normalizes values to safe ranges. It returns an error only
// for values that cannot be repaired.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
		c.LogLevel = strings.ToLower(c.LogLevel)
	default:
		c.LogLevel = "info"
	}
	c.Source = strings.ToLower(strings.TrimSpace(c.Source))
	if c.Source != "camera" && c.Source != "screen" {
		c.Source = "camera"
	}
	if c.CameraDevice < 0 {
		c.CameraDevice = 0
	}
	if c.SelectionW < 0 || c.SelectionH < 0 {
		c.SelectionW, c.SelectionH = 0, 0
	}
	if len(c.Bands) == 0 {
		c.Bands = DefaultConfig().Bands
	}
	if len(c.Bands) != 2 {
		return fmt.Errorf("expected 2 marker bands, got %d", len(c.Bands))
	}
	for i, b := range c.Bands {
		if !(tracking.HSVRange{Lower: b.Lower, Upper: b.Upper}).Valid() {
			return fmt.Errorf("band %d (%s): invalid hsv range %v..%v", i, b.Name, b.Lower, b.Upper)
		}
	}
	if strings.TrimSpace(c.LeftKey) == "" {
		c.LeftKey = "A"
	}
	if strings.TrimSpace(c.RightKey) == "" {
		c.RightKey = "D"
	}
	if strings.EqualFold(c.LeftKey, c.RightKey) {
		return errors.New("left_key and right_key must differ")
	}
	if c.TapDelayMS < 0 || c.TapDelayMS > 100 {
		c.TapDelayMS = 5
	}
	if c.MediumAsserts <= 0 {
		c.MediumAsserts = 2
	}
	if c.MediumLargeAsserts <= 0 {
		c.MediumLargeAsserts = 3
	}
	if c.LargeAsserts <= 0 {
		c.LargeAsserts = 1
	}
	return nil
}

// TrackingBands converts the configured bands for the locator.
func (c *Config) TrackingBands() []tracking.Band {
	out := make([]tracking.Band, 0, len(c.Bands))
	for _, b := range c.Bands {
		out = append(out, tracking.Band{Name: b.Name, Range: tracking.HSVRange{Lower: b.Lower, Upper: b.Upper}})
	}
	return out
}

// Intensity returns the steering burst table.
func (c *Config) Intensity() steering.Intensity {
	return steering.Intensity{
		TapDelay:    time.Duration(c.TapDelayMS) * time.Millisecond,
		Medium:      c.MediumAsserts,
		MediumLarge: c.MediumLargeAsserts,
		Large:       c.LargeAsserts,
	}
}

// Bindings returns the steering key tokens.
func (c *Config) Bindings() action.Bindings {
	return action.Bindings{Left: c.LeftKey, Right: c.RightKey}
}

// Selection returns the screen capture rectangle; empty means full screen.
func (c *Config) Selection() image.Rectangle {
	if c.SelectionW <= 0 || c.SelectionH <= 0 {
		return image.Rectangle{}
	}
	return image.Rect(c.SelectionX, c.SelectionY, c.SelectionX+c.SelectionW, c.SelectionY+c.SelectionH)
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("debug", d.Debug)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("source", d.Source)
	v.SetDefault("camera_device", d.CameraDevice)
	v.SetDefault("selection_x", d.SelectionX)
	v.SetDefault("selection_y", d.SelectionY)
	v.SetDefault("selection_w", d.SelectionW)
	v.SetDefault("selection_h", d.SelectionH)
	v.SetDefault("headless", d.Headless)
	v.SetDefault("left_key", d.LeftKey)
	v.SetDefault("right_key", d.RightKey)
	v.SetDefault("throttle_key", d.ThrottleKey)
	v.SetDefault("dry_run", d.DryRun)
	v.SetDefault("tap_delay_ms", d.TapDelayMS)
	v.SetDefault("medium_asserts", d.MediumAsserts)
	v.SetDefault("medium_large_asserts", d.MediumLargeAsserts)
	v.SetDefault("large_asserts", d.LargeAsserts)
}

// Load reads configuration from the given JSON file path with STEER_*
// environment overrides. If the file does not exist it returns the defaults
// (still subject to environment overrides).
func Load(path string) (*Config, error) {
	v := viper.New()
	def := DefaultConfig()
	setDefaults(v, def)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetConfigType("json")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
				return def, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	cfg := DefaultConfig()
	cfg.Bands = nil
	if err := v.Unmarshal(cfg); err != nil {
		return def, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return def, err
	}
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
