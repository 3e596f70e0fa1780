// Package mover relocates a byte range between two files while punching
// the copied ranges out of the source, so that no more than one chunk of
// extra storage is held at any time.
package mover

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"sparsemv/internal/sparse"
)

// DefaultChunkSize is the size of the buffer used to stage each chunk
const DefaultChunkSize = 1024 * 1024

// Mover runs hole-aware moves. A Mover owns its chunk buffer and must not
// be used by more than one goroutine at a time.
type Mover struct {
	buf      []byte
	logger   *slog.Logger
	reporter ProgressReporter
}

// Option configures a Mover
type Option func(*Mover)

// WithLogger sets the logger used for run and chunk events
func WithLogger(logger *slog.Logger) Option {
	return func(m *Mover) {
		m.logger = logger
	}
}

// WithReporter sets a reporter notified after every chunk
func WithReporter(reporter ProgressReporter) Option {
	return func(m *Mover) {
		m.reporter = reporter
	}
}

// New creates a Mover with a chunk buffer of chunkSize bytes. A
// non-positive chunkSize selects DefaultChunkSize.
func New(chunkSize int, opts ...Option) *Mover {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	m := &Mover{
		buf:    make([]byte, chunkSize),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ChunkSize returns the capacity of the chunk buffer
func (m *Mover) ChunkSize() int {
	return len(m.buf)
}

// Move transfers req.Length bytes from the source to the destination,
// skipping source holes and punching every chunk out of the source right
// after it has been written. The first failure aborts the move; nothing
// that was already moved is rolled back.
func (m *Mover) Move(req TransferRequest) (Stats, error) {
	stats, err := m.move(req)
	if m.reporter != nil {
		if err != nil {
			m.reporter.OnError(err)
		} else {
			m.reporter.OnComplete(stats)
		}
	}
	return stats, err
}

func (m *Mover) move(req TransferRequest) (Stats, error) {
	var stats Stats
	if err := req.Validate(); err != nil {
		return stats, err
	}
	if req.Length == 0 {
		return stats, nil
	}

	src, dst := req.Source, req.Destination
	startTime := time.Now()
	m.logger.Info("Starting move",
		"input", src.Name(), "input_offset", req.SourceOffset,
		"output", dst.Name(), "output_offset", req.DestinationOffset,
		"length", req.Length, "chunk_size", len(m.buf))

	if err := dst.PunchHole(req.DestinationOffset, req.Length); err != nil {
		return stats, newError(ErrUnsupportedFilesystem, OpReserveOutput, dst.Name(), err)
	}

	cur := newCursor(req.Length)
	for cur.Remaining > 0 {
		pos, err := src.SeekData(req.SourceOffset + cur.Logical)
		if errors.Is(err, sparse.ErrNoData) {
			m.logger.Debug("No data left in range", "logical", cur.Logical)
			break
		}
		if err != nil {
			return stats, newError(ErrIO, OpSeekInput, src.Name(), err)
		}

		logical := pos - req.SourceOffset
		if logical < cur.Logical {
			return stats, newError(ErrIO, OpSeekInput, src.Name(),
				fmt.Errorf("data offset %d is before requested offset %d", pos, req.SourceOffset+cur.Logical))
		}
		if logical >= req.Length {
			break
		}
		stats.Skipped += logical - cur.Logical
		cur.jump(logical, req.Length)

		size := cur.Remaining
		if size > int64(len(m.buf)) {
			size = int64(len(m.buf))
		}

		n, err := src.Read(m.buf[:size])
		if err != nil && !errors.Is(err, io.EOF) {
			return stats, newError(ErrIO, OpReadInput, src.Name(), err)
		}
		if n == 0 {
			// the source shrank underneath us
			m.logger.Warn("Unexpected end of input", "logical", cur.Logical, "remaining", cur.Remaining)
			break
		}

		if _, err := dst.Seek(req.DestinationOffset+cur.Logical, io.SeekStart); err != nil {
			return stats, newError(ErrIO, OpSeekOutput, dst.Name(), err)
		}
		written, err := dst.Write(m.buf[:n])
		if err == nil && written < n {
			err = io.ErrShortWrite
		}
		if err != nil {
			return stats, newError(ErrIO, OpWriteOutput, dst.Name(), err)
		}

		if err := src.PunchHole(req.SourceOffset+cur.Logical, int64(written)); err != nil {
			return stats, newError(ErrIO, OpPunchInput, src.Name(), err)
		}

		m.logger.Debug("Chunk moved", "logical", cur.Logical, "bytes", written)
		cur.advance(int64(written))
		stats.Moved += int64(written)
		stats.Chunks++

		if m.reporter != nil {
			m.reporter.OnProgress(Progress{
				Moved:   stats.Moved,
				Skipped: stats.Skipped,
				Logical: cur.Logical,
				Total:   req.Length,
				Elapsed: time.Since(startTime),
			})
		}
	}

	// whatever is left of the range is a hole
	stats.Skipped += req.Length - cur.Logical
	stats.Elapsed = time.Since(startTime)
	m.logger.Info("Move completed",
		"moved", stats.Moved, "skipped", stats.Skipped, "chunks", stats.Chunks, "elapsed", stats.Elapsed)
	return stats, nil
}
