package app

import (
	"io"
	"log/slog"

	"sparsemv/internal/config"
	"sparsemv/internal/mover"
	"sparsemv/internal/sparse"
	"sparsemv/pkg/types"
)

// fakeUI records what the applications show
type fakeUI struct {
	messages  []string
	summaries []types.MoveSummary
	progress  []mover.Progress
	completed *mover.Stats
	failed    error

	extentsPath string
	size        int64
	allocated   int64
	extents     []sparse.Extent
}

func (f *fakeUI) OnProgress(p mover.Progress) { f.progress = append(f.progress, p) }

func (f *fakeUI) OnComplete(s mover.Stats) { f.completed = &s }

func (f *fakeUI) OnError(err error) { f.failed = err }

func (f *fakeUI) ShowMessage(message string) { f.messages = append(f.messages, message) }

func (f *fakeUI) ShowSummary(s types.MoveSummary) { f.summaries = append(f.summaries, s) }

func (f *fakeUI) ShowExtents(path string, size, allocated int64, extents []sparse.Extent) {
	f.extentsPath = path
	f.size = size
	f.allocated = allocated
	f.extents = extents
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(progress bool) *config.Config {
	cfg := config.NewDefaultConfig()
	cfg.Transfer.ChunkSize = 256 * 1024
	cfg.Transfer.Progress = progress
	return cfg
}
