// Package sparsetest provides helpers for tests that need real sparse files.
package sparsetest

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"sparsemv/internal/sparse"

	"github.com/stretchr/testify/require"
)

const MiB = 1024 * 1024

// Region is a data range written into a sparse test file
type Region struct {
	Offset int64
	Data   []byte
}

// Pattern returns n bytes of a pattern seeded by seed, so that different
// regions are distinguishable.
func Pattern(seed byte, n int) []byte {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = seed + byte(i%251)
	}
	return buf
}

// RequireSupport skips the test unless the filesystem backing dir can
// punch holes and report them through SEEK_DATA.
func RequireSupport(t *testing.T, dir string) {
	t.Helper()

	f, err := sparse.Open(filepath.Join(dir, ".probe"), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	require.NoError(t, err)
	defer func() {
		f.Close()
		os.Remove(f.Name())
	}()

	require.NoError(t, f.Truncate(MiB))
	if _, err := f.SeekData(0); !errors.Is(err, sparse.ErrNoData) {
		t.Skipf("filesystem does not report holes via SEEK_DATA (got %v)", err)
	}

	_, err = f.WriteAt(Pattern(1, MiB), 0)
	require.NoError(t, err)
	require.NoError(t, f.Sync())
	if err := f.PunchHole(0, MiB); err != nil {
		t.Skipf("filesystem does not support hole punching: %v", err)
	}
	if _, err := f.SeekData(0); !errors.Is(err, sparse.ErrNoData) {
		t.Skipf("punched range still reported as data (got %v)", err)
	}
}

// Create writes a file of the given size containing only the regions as
// data; everything else is a hole.
func Create(t *testing.T, path string, size int64, regions ...Region) {
	t.Helper()

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, f.Truncate(size))
	for _, r := range regions {
		_, err := f.WriteAt(r.Data, r.Offset)
		require.NoError(t, err)
	}
	require.NoError(t, f.Sync())
}

// ReadRange reads length bytes of path at off
func ReadRange(t *testing.T, path string, off, length int64) []byte {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	buf := make([]byte, length)
	n, err := f.ReadAt(buf, off)
	require.NoError(t, err)
	require.Equal(t, len(buf), n)
	return buf
}

// Allocated returns the bytes of storage backing path
func Allocated(t *testing.T, path string) int64 {
	t.Helper()

	f, err := sparse.Open(path, os.O_RDONLY, 0)
	require.NoError(t, err)
	defer f.Close()

	n, err := f.Allocated()
	require.NoError(t, err)
	return n
}

// DataExtents returns the data extents of path
func DataExtents(t *testing.T, path string) []sparse.Extent {
	t.Helper()

	f, err := sparse.Open(path, os.O_RDONLY, 0)
	require.NoError(t, err)
	defer f.Close()

	size, err := f.Size()
	require.NoError(t, err)
	extents, err := f.Extents(0, size)
	require.NoError(t, err)

	var data []sparse.Extent
	for _, e := range extents {
		if e.Data {
			data = append(data, e)
		}
	}
	return data
}

// IsZero reports whether buf holds only zero bytes
func IsZero(buf []byte) bool {
	return len(bytes.Trim(buf, "\x00")) == 0
}
