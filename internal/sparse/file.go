// Package sparse wraps the filesystem primitives needed to work with sparse
// files: hole punching, data/hole seeking and allocation queries.
package sparse

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrNoData is returned by SeekData when no data exists at or after the
// requested offset.
var ErrNoData = errors.New("no data after offset")

// File is an open file with sparse-aware operations
type File struct {
	*os.File
}

// NewFile wraps an already open file
func NewFile(f *os.File) *File {
	return &File{File: f}
}

// Open opens path with the given flags and wraps the result
func Open(path string, flag int, perm os.FileMode) (*File, error) {
	f, err := os.OpenFile(path, flag, perm)
	if err != nil {
		return nil, err
	}
	return NewFile(f), nil
}

// Size returns the logical size of the file
func (f *File) Size() (int64, error) {
	stat, err := f.Stat()
	if err != nil {
		return 0, fmt.Errorf("failed to stat %s: %w", f.Name(), err)
	}
	return stat.Size(), nil
}

// PunchHole deallocates [off, off+length) without changing the file size.
func (f *File) PunchHole(off, length int64) error {
	return punchHole(f.File, off, length)
}

// SeekData positions the file at the first data byte at or after off and
// returns that position. ErrNoData is returned past the last data region.
func (f *File) SeekData(off int64) (int64, error) {
	return seekData(f.File, off)
}

// SeekHole positions the file at the first hole at or after off. The end
// of the file always counts as a hole.
func (f *File) SeekHole(off int64) (int64, error) {
	return seekHole(f.File, off)
}

// Allocated returns the number of bytes of storage backing the file
func (f *File) Allocated() (int64, error) {
	return allocated(f.File)
}

// Extent is a maximal run of bytes that is either all data or all hole
type Extent struct {
	Offset int64
	Length int64
	Data   bool
}

// End returns the offset one past the extent
func (e Extent) End() int64 {
	return e.Offset + e.Length
}

// Extents maps [off, end) into alternating data and hole extents. The file
// position is restored to the start afterwards.
func (f *File) Extents(off, end int64) ([]Extent, error) {
	if off < 0 || end < off {
		return nil, fmt.Errorf("invalid extent range [%d, %d)", off, end)
	}

	var extents []Extent
	pos := off
	for pos < end {
		data, err := f.SeekData(pos)
		if errors.Is(err, ErrNoData) {
			data = end
		} else if err != nil {
			return nil, err
		}
		if data > end {
			data = end
		}
		if data > pos {
			extents = append(extents, Extent{Offset: pos, Length: data - pos})
			pos = data
		}
		if pos >= end {
			break
		}

		hole, err := f.SeekHole(pos)
		if err != nil {
			return nil, err
		}
		if hole > end {
			hole = end
		}
		extents = append(extents, Extent{Offset: pos, Length: hole - pos, Data: true})
		pos = hole
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind %s: %w", f.Name(), err)
	}
	return extents, nil
}
