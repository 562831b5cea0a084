package capture

import (
	"fmt"
	"log/slog"

	"gocv.io/x/gocv"
)

// CameraSource reads frames from a video capture device.
type CameraSource struct {
	device int
	vc     *gocv.VideoCapture
	logger *slog.Logger
}

// OpenCamera opens the capture device with the given index.
func OpenCamera(device int, logger *slog.Logger) (*CameraSource, error) {
	vc, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("open camera %d: %w", device, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("open camera %d: device not opened", device)
	}
	if logger != nil {
		logger.Info("camera opened", "device", device)
	}
	return &CameraSource{device: device, vc: vc, logger: logger}, nil
}

// Read grabs the next frame into dst.
func (c *CameraSource) Read(dst *gocv.Mat) bool {
	if ok := c.vc.Read(dst); !ok || dst.Empty() {
		if c.logger != nil {
			c.logger.Error("camera read failed", "device", c.device)
		}
		return false
	}
	return true
}

// Close releases the device.
func (c *CameraSource) Close() error {
	return c.vc.Close()
}
