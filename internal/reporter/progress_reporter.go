package reporter

import (
	"log/slog"
	"time"

	"sparsemv/internal/mover"
)

// ProgressReporter logs move progress instead of drawing it, for runs
// without a terminal. Updates are throttled to one per interval.
type ProgressReporter struct {
	logger       *slog.Logger
	interval     time.Duration
	lastReported time.Duration
}

// NewProgressReporter creates a reporter that logs at most once per interval
func NewProgressReporter(logger *slog.Logger, interval time.Duration) *ProgressReporter {
	return &ProgressReporter{
		logger:   logger,
		interval: interval,
	}
}

// OnProgress logs the update if the interval has elapsed since the last one
func (pr *ProgressReporter) OnProgress(progress mover.Progress) {
	if progress.Logical < progress.Total && progress.Elapsed-pr.lastReported < pr.interval {
		return
	}
	pr.lastReported = progress.Elapsed

	pr.logger.Info("Progress",
		"moved", progress.Moved,
		"skipped", progress.Skipped,
		"position", progress.Logical,
		"total", progress.Total,
		"percent", progress.Percentage())
}

// OnComplete logs the final counters
func (pr *ProgressReporter) OnComplete(stats mover.Stats) {
	pr.logger.Info("Transfer complete",
		"moved", stats.Moved,
		"skipped", stats.Skipped,
		"chunks", stats.Chunks,
		"elapsed", stats.Elapsed)
}

// OnError logs the failure
func (pr *ProgressReporter) OnError(err error) {
	pr.logger.Error("Transfer failed", "error", err)
}
