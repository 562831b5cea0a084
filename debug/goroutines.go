package debug

// Debug loop metrics logger. Started only when config.Debug is true.
// Emits goroutine count, stack usage and the frame loop rate at a fixed interval.

import (
	"context"
	"log/slog"
	"runtime"
	"runtime/metrics"
	"time"
)

// StartLoopLogger launches a ticker that logs goroutine count, stack memory
// and frames per second computed from frames. It stops when ctx is done.
func StartLoopLogger(ctx context.Context, interval time.Duration, logger *slog.Logger, frames func() uint64) {
	if interval <= 0 {
		interval = time.Second
	}

	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		samples := []metrics.Sample{{Name: "/sched/goroutines:goroutines"}}
		var lastFrames uint64
		last := time.Now()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-t.C:
				metrics.Read(samples)
				var ms runtime.MemStats
				runtime.ReadMemStats(&ms)
				var fps float64
				if frames != nil {
					n := frames()
					fps = framesPerSecond(n-lastFrames, now.Sub(last))
					lastFrames = n
				}
				last = now
				logger.Info("loop-stats",
					slog.Uint64("goroutines", samples[0].Value.Uint64()),
					slog.Uint64("stack_inuse", ms.StackInuse),
					slog.Uint64("heap_alloc", ms.HeapAlloc),
					slog.Float64("fps", fps),
				)
			}
		}
	}()
}

func framesPerSecond(frames uint64, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(frames) / elapsed.Seconds()
}
