package logging

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// TruncateIfNeeded truncates file if it exceeds maxSize.
// Reports whether the file was truncated; a missing file is not an error.
func TruncateIfNeeded(path string, maxSize int64) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if info.Size() <= maxSize {
		return false
	}
	if err := os.Truncate(path, 0); err != nil {
		slog.Warn("Failed to truncate log file", "path", path, "error", err)
		return false
	}
	slog.Info("Truncated log file", "path", path, "prev_size", info.Size())
	return true
}

// StartRotation checks the files once, then every interval until ctx is done.
// The returned channel is closed when the rotation goroutine exits.
func (l *Logger) StartRotation(ctx context.Context, paths []string, maxSize int64, interval time.Duration) <-chan struct{} {
	done := make(chan struct{})
	rotate := func() {
		for _, path := range paths {
			TruncateIfNeeded(path, maxSize)
		}
	}

	rotate()
	ticker := time.NewTicker(interval)
	go func() {
		defer close(done)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rotate()
			}
		}
	}()
	return done
}
