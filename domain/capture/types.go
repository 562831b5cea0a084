package capture

import "gocv.io/x/gocv"

// FrameSource yields BGR frames, one per Read. Read blocks until a frame is
// available and reports false when the source failed; callers treat that
// as fatal.
type FrameSource interface {
	Read(dst *gocv.Mat) bool
	Close() error
}

// Kind names a frame source implementation.
type Kind string

const (
	KindCamera Kind = "camera"
	KindScreen Kind = "screen"
)
