package types

import "time"

// MoveSummary describes a finished move for display
type MoveSummary struct {
	Input   string
	Output  string
	Length  int64 // requested, after clamping
	Moved   int64 // data bytes copied and punched
	Skipped int64 // hole bytes that needed no copy
	Chunks  int
	Elapsed time.Duration

	// Storage backing the input before and after the move
	InputAllocatedBefore int64
	InputAllocatedAfter  int64
}

// Reclaimed returns how much input storage the move released
func (s MoveSummary) Reclaimed() int64 {
	return s.InputAllocatedBefore - s.InputAllocatedAfter
}

// Throughput returns the average data rate in MB/s
func (s MoveSummary) Throughput() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Moved) / s.Elapsed.Seconds() / (1024 * 1024)
}
