//go:build !linux

package sparse

import (
	"errors"
	"io"
	"os"
)

// Without SEEK_DATA the whole file is treated as data and nothing can be
// punched.

func punchHole(f *os.File, off, length int64) error {
	return &os.PathError{Op: "fallocate", Path: f.Name(), Err: errors.ErrUnsupported}
}

func seekData(f *os.File, off int64) (int64, error) {
	stat, err := f.Stat()
	if err != nil {
		return 0, err
	}
	if off >= stat.Size() {
		return 0, ErrNoData
	}
	return f.Seek(off, io.SeekStart)
}

func seekHole(f *os.File, off int64) (int64, error) {
	stat, err := f.Stat()
	if err != nil {
		return 0, err
	}
	return f.Seek(stat.Size(), io.SeekStart)
}

func allocated(f *os.File) (int64, error) {
	stat, err := f.Stat()
	if err != nil {
		return 0, err
	}
	return stat.Size(), nil
}
