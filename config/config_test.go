package config

import (
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "steer.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	path := writeConfig(t, `{
		"debug": true,
		"source": "screen",
		"selection_x": 10, "selection_y": 20, "selection_w": 300, "selection_h": 200,
		"left_key": "LEFT", "right_key": "RIGHT", "throttle_key": "",
		"medium_asserts": 4,
		"bands": [
			{"name": "red",  "lower": [0, 120, 120],  "upper": [10, 255, 255]},
			{"name": "blue", "lower": [100, 120, 120], "upper": [130, 255, 255]}
		]
	}`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, "screen", cfg.Source)
	assert.Equal(t, image.Rect(10, 20, 310, 220), cfg.Selection())
	assert.Equal(t, "LEFT", cfg.Bindings().Left)
	assert.Equal(t, "", cfg.ThrottleKey)
	assert.Equal(t, 4, cfg.Intensity().Medium)
	assert.Equal(t, 3, cfg.Intensity().MediumLarge)
	assert.Equal(t, 5*time.Millisecond, cfg.Intensity().TapDelay)

	bands := cfg.TrackingBands()
	require.Len(t, bands, 2)
	assert.Equal(t, "red", bands[0].Name)
	assert.Equal(t, [3]uint8{100, 120, 120}, bands[1].Range.Lower)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("STEER_CAMERA_DEVICE", "2")
	t.Setenv("STEER_DRY_RUN", "true")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.CameraDevice)
	assert.True(t, cfg.DryRun)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := writeConfig(t, `{"debug": `)
	cfg, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_RejectsBadBands(t *testing.T) {
	path := writeConfig(t, `{"bands": [{"name": "x", "lower": [70, 0, 0], "upper": [40, 255, 255]}, {"name": "y", "lower": [0,0,0], "upper": [10,255,255]}]}`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid hsv range")
}

func TestValidate_Clamps(t *testing.T) {
	cfg := &Config{
		LogLevel:      "LOUD",
		Source:        "Webcam",
		CameraDevice:  -1,
		TapDelayMS:    -4,
		MediumAsserts: 0,
		SelectionW:    -5,
	}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "camera", cfg.Source)
	assert.Equal(t, 0, cfg.CameraDevice)
	assert.Equal(t, 5, cfg.TapDelayMS)
	assert.Equal(t, 2, cfg.MediumAsserts)
	assert.Equal(t, 3, cfg.MediumLargeAsserts)
	assert.Equal(t, 1, cfg.LargeAsserts)
	assert.Equal(t, "A", cfg.LeftKey)
	assert.Equal(t, "D", cfg.RightKey)
	assert.Len(t, cfg.Bands, 2)
	assert.True(t, cfg.Selection().Empty())
}

func TestValidate_SameKeys(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RightKey = "a"
	require.Error(t, cfg.Validate())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	cfg := DefaultConfig()
	cfg.CameraDevice = 3
	cfg.Headless = true
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
