package app

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"sparsemv/internal/config"
	"sparsemv/internal/file"
	"sparsemv/internal/mover"
	"sparsemv/internal/reporter"
	"sparsemv/internal/ui"
	"sparsemv/pkg/types"
	"sparsemv/pkg/utils"
)

// progressLogInterval throttles progress lines when no bar is drawn
const progressLogInterval = 5 * time.Second

// MoverOptions configures a move. Length is negative when the move should
// run to the end of the input.
type MoverOptions struct {
	Input        string
	InputOffset  int64
	Output       string
	OutputOffset int64
	Length       int64
}

var _ Mover = (*MoverApp)(nil)

// MoverApp implements the move application logic
type MoverApp struct {
	config      *config.Config
	fileService file.FileService
	ui          ui.InteractiveUI
	logger      *slog.Logger
}

// NewMoverApp creates a new move application
func NewMoverApp(cfg *config.Config, fileService file.FileService, ui ui.InteractiveUI, logger *slog.Logger) *MoverApp {
	return &MoverApp{
		config:      cfg,
		fileService: fileService,
		ui:          ui,
		logger:      logger,
	}
}

// Validate checks the options before any file is touched
func (o *MoverOptions) Validate() error {
	if o.Input == "" {
		return mover.ConfigError("input", errors.New("input file is required"))
	}
	if o.Output == "" {
		return mover.ConfigError("output", errors.New("output file is required"))
	}
	if o.InputOffset < 0 {
		return mover.ConfigError("input-offset", fmt.Errorf("must not be negative, got %d", o.InputOffset))
	}
	if o.OutputOffset < 0 {
		return mover.ConfigError("output-offset", fmt.Errorf("must not be negative, got %d", o.OutputOffset))
	}
	if err := utils.ValidateOutputPath(o.Output); err != nil {
		return mover.ConfigError("output", err)
	}
	return nil
}

// Run opens both files, clamps the length to what the input holds and
// moves the range.
func (a *MoverApp) Run(opts *MoverOptions) (summary *types.MoveSummary, err error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	src, size, err := a.fileService.OpenSource(opts.Input)
	if err != nil {
		return nil, mover.OpenError(mover.OpOpenInput, opts.Input, err)
	}
	defer src.Close()

	dst, err := a.fileService.CreateDestination(opts.Output)
	if err != nil {
		return nil, mover.OpenError(mover.OpOpenOutput, opts.Output, err)
	}
	defer func() {
		if cerr := dst.Close(); cerr != nil && err == nil {
			err = mover.IOError("close output", opts.Output, cerr)
		}
	}()

	length := mover.ClampLength(size, opts.InputOffset, opts.Length)
	if opts.Length >= 0 && length < opts.Length {
		a.logger.Warn("Length exceeds input, clamping",
			"requested", opts.Length, "available", length)
	}

	if utils.SamePath(opts.Input, opts.Output) && rangesOverlap(opts.InputOffset, opts.OutputOffset, length) {
		return nil, mover.ConfigError("output", errors.New("input and output ranges overlap in the same file"))
	}

	a.ui.ShowMessage(fmt.Sprintf("Moving %s from %s at %d to %s at %d",
		utils.FormatFileSize(length), opts.Input, opts.InputOffset, opts.Output, opts.OutputOffset))

	before, err := src.Allocated()
	if err != nil {
		return nil, mover.IOError(mover.OpStatInput, opts.Input, err)
	}

	var progress mover.ProgressReporter = a.ui
	if !a.config.Transfer.Progress {
		progress = reporter.NewProgressReporter(a.logger, progressLogInterval)
	}

	m := mover.New(int(a.config.Transfer.ChunkSize.Bytes()),
		mover.WithLogger(a.logger),
		mover.WithReporter(progress))

	stats, err := m.Move(mover.TransferRequest{
		Source:            src,
		SourceOffset:      opts.InputOffset,
		Destination:       dst,
		DestinationOffset: opts.OutputOffset,
		Length:            length,
	})
	if err != nil {
		return nil, err
	}

	after, err := src.Allocated()
	if err != nil {
		return nil, mover.IOError(mover.OpStatInput, opts.Input, err)
	}

	summary = &types.MoveSummary{
		Input:                opts.Input,
		Output:               opts.Output,
		Length:               length,
		Moved:                stats.Moved,
		Skipped:              stats.Skipped,
		Chunks:               stats.Chunks,
		Elapsed:              stats.Elapsed,
		InputAllocatedBefore: before,
		InputAllocatedAfter:  after,
	}
	a.ui.ShowSummary(*summary)
	return summary, nil
}

// rangesOverlap reports whether [a, a+n) and [b, b+n) intersect
func rangesOverlap(a, b, n int64) bool {
	if n == 0 {
		return false
	}
	return a < b+n && b < a+n
}
