package mover

import (
	"errors"
	"fmt"
	"io"
)

// Source is the file data is moved out of. It must be open read-write
// since punching holes needs write access.
type Source interface {
	io.Reader
	// SeekData positions the file at the next data byte at or after off.
	// It returns sparse.ErrNoData when only holes remain.
	SeekData(off int64) (int64, error)
	PunchHole(off, length int64) error
	Name() string
}

// Destination is the file data is moved into.
type Destination interface {
	io.WriteSeeker
	PunchHole(off, length int64) error
	Name() string
}

// TransferRequest is a fully resolved move. Length is fixed before the move
// starts and never recomputed.
type TransferRequest struct {
	Source            Source
	SourceOffset      int64
	Destination       Destination
	DestinationOffset int64
	Length            int64
}

// Validate checks the request is usable. It does not check the length
// against the source size; callers clamp it beforehand.
func (r TransferRequest) Validate() error {
	if r.Source == nil {
		return ConfigError(OpValidateRequest, errors.New("source is not set"))
	}
	if r.Destination == nil {
		return ConfigError(OpValidateRequest, errors.New("destination is not set"))
	}
	if r.SourceOffset < 0 || r.DestinationOffset < 0 || r.Length < 0 {
		return ConfigError(OpValidateRequest, fmt.Errorf("negative offset or length (source %d, destination %d, length %d)",
			r.SourceOffset, r.DestinationOffset, r.Length))
	}
	return nil
}

// ClampLength returns the number of bytes actually available for a move of
// requested bytes starting at offset in a file of size bytes. A negative
// requested length means "up to the end of the file".
func ClampLength(size, offset, requested int64) int64 {
	available := size - offset
	if available < 0 {
		available = 0
	}
	if requested < 0 || requested > available {
		return available
	}
	return requested
}

// Cursor tracks the progress of a single move, relative to the start of
// the requested range.
type Cursor struct {
	Logical   int64
	Remaining int64
}

func newCursor(length int64) *Cursor {
	return &Cursor{Remaining: length}
}

// jump moves the cursor to a new logical offset found by seeking
func (c *Cursor) jump(logical, length int64) {
	c.Logical = logical
	c.Remaining = length - logical
}

func (c *Cursor) advance(n int64) {
	c.Logical += n
	c.Remaining -= n
}
