package ui

import (
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"
	"time"

	"sparsemv/internal/sparse"
	"sparsemv/pkg/types"
	"sparsemv/pkg/utils"

	"github.com/fatih/color"
)

// ConsoleUI implements console-based output with progress tracking
type ConsoleUI struct {
	*ProgressUI
	out    io.Writer
	logger *slog.Logger
}

// NewConsoleUI creates a new console UI. Progress is drawn on progressOut
// and everything else is printed to out.
func NewConsoleUI(out, progressOut io.Writer, logger *slog.Logger) *ConsoleUI {
	return &ConsoleUI{
		ProgressUI: NewProgressUI(progressOut),
		out:        out,
		logger:     logger,
	}
}

// ShowMessage displays a message to the user
func (c *ConsoleUI) ShowMessage(message string) {
	c.logger.Info(message)
}

// ShowSummary displays a summary of the completed move
func (c *ConsoleUI) ShowSummary(s types.MoveSummary) {
	title := color.New(color.FgGreen, color.Bold)
	label := color.New(color.FgCyan)

	fmt.Fprintf(c.out, "=============================================\n")
	title.Fprintf(c.out, "Move completed successfully!\n")
	label.Fprintf(c.out, "+ From: ")
	fmt.Fprintf(c.out, "%s\n", s.Input)
	label.Fprintf(c.out, "+ To: ")
	fmt.Fprintf(c.out, "%s\n", s.Output)
	label.Fprintf(c.out, "+ Range: ")
	fmt.Fprintf(c.out, "%s\n", utils.FormatFileSize(s.Length))
	label.Fprintf(c.out, "+ Data moved: ")
	fmt.Fprintf(c.out, "%s in %d chunks\n", utils.FormatFileSize(s.Moved), s.Chunks)
	label.Fprintf(c.out, "+ Holes skipped: ")
	fmt.Fprintf(c.out, "%s\n", utils.FormatFileSize(s.Skipped))
	label.Fprintf(c.out, "+ Input storage reclaimed: ")
	fmt.Fprintf(c.out, "%s\n", utils.FormatFileSize(s.Reclaimed()))
	label.Fprintf(c.out, "+ Time: ")
	fmt.Fprintf(c.out, "%s (%.2f MB/s)\n", s.Elapsed.Round(time.Millisecond), s.Throughput())
	fmt.Fprintf(c.out, "=============================================\n")
}

// ShowExtents prints one line per extent followed by totals
func (c *ConsoleUI) ShowExtents(path string, size, allocated int64, extents []sparse.Extent) {
	dataColor := color.New(color.FgGreen)
	holeColor := color.New(color.Faint)

	fmt.Fprintf(c.out, "%s: size %s, allocated %s\n", path, utils.FormatFileSize(size), utils.FormatFileSize(allocated))

	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "OFFSET\tEND\tLENGTH\tTYPE\t")

	var data, holes int64
	for _, e := range extents {
		kind := holeColor.Sprint("hole")
		if e.Data {
			kind = dataColor.Sprint("data")
			data += e.Length
		} else {
			holes += e.Length
		}
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t\n", e.Offset, e.End(), utils.FormatFileSize(e.Length), kind)
	}
	tw.Flush()

	fmt.Fprintf(c.out, "Data:  %s\nHoles: %s\n", utils.FormatFileSize(data), utils.FormatFileSize(holes))
}
