package mover

import "time"

// Progress is reported after every chunk
type Progress struct {
	Moved   int64 // bytes copied and punched so far
	Skipped int64 // hole bytes skipped so far
	Logical int64 // position within the requested range
	Total   int64 // requested length
	Elapsed time.Duration
}

// Percentage returns how much of the requested range has been covered
func (p Progress) Percentage() float64 {
	if p.Total == 0 {
		return 100.0
	}
	return float64(p.Logical) / float64(p.Total) * 100.0
}

// Stats summarizes a finished move
type Stats struct {
	Moved   int64
	Skipped int64
	Chunks  int
	Elapsed time.Duration
}

// ProgressReporter receives callbacks while a move runs
type ProgressReporter interface {
	OnProgress(progress Progress)
	OnComplete(stats Stats)
	OnError(err error)
}
