package ui

import (
	"fmt"
	"io"
	"time"

	"sparsemv/internal/mover"

	"github.com/schollz/progressbar/v3"
)

// ProgressUI handles progress display for moves
type ProgressUI struct {
	bar *progressbar.ProgressBar
	out io.Writer
}

// NewProgressUI creates a new progress UI writing to out
func NewProgressUI(out io.Writer) *ProgressUI {
	return &ProgressUI{out: out}
}

// startProgress initializes the progress bar for a move
func (p *ProgressUI) startProgress(totalBytes int64) {
	p.bar = progressbar.NewOptions64(totalBytes,
		progressbar.OptionSetDescription("Moving"),
		progressbar.OptionSetWriter(p.out),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(50),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionShowCount(),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionFullWidth(),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(false),
	)
}

// OnProgress updates the progress bar with the current cursor position.
// Skipped holes count towards the bar as they are part of the range.
func (p *ProgressUI) OnProgress(update mover.Progress) {
	if p.bar == nil {
		p.startProgress(update.Total)
	}

	_ = p.bar.Set64(update.Logical)

	throughput := 0.0
	if update.Elapsed > 0 {
		throughput = float64(update.Moved) / update.Elapsed.Seconds() / (1024 * 1024)
	}
	p.bar.Describe(fmt.Sprintf("Moving (%.1f%% - %.2f MB/s)", update.Percentage(), throughput))
}

// OnComplete marks the progress as complete
func (p *ProgressUI) OnComplete(stats mover.Stats) {
	if p.bar == nil {
		return
	}
	_ = p.bar.Finish()
	fmt.Fprintln(p.out)
	p.bar = nil
}

// OnError stops drawing so the error is not mixed with the bar
func (p *ProgressUI) OnError(err error) {
	if p.bar == nil {
		return
	}
	_ = p.bar.Exit()
	fmt.Fprintln(p.out)
	p.bar = nil
}
