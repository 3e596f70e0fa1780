//go:build linux

package mover_test

import (
	"os"
	"path/filepath"
	"testing"

	"sparsemv/internal/mover"
	"sparsemv/internal/sparse"
	"sparsemv/internal/sparse/sparsetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const MiB = sparsetest.MiB

func openFile(t *testing.T, path string, flag int) *sparse.File {
	t.Helper()
	f, err := sparse.Open(path, flag, 0644)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestMoveFile_TwoDataRegions(t *testing.T) {
	dir := t.TempDir()
	sparsetest.RequireSupport(t, dir)

	first := sparsetest.Pattern(1, MiB)
	second := sparsetest.Pattern(2, MiB)
	srcPath := filepath.Join(dir, "src")
	dstPath := filepath.Join(dir, "dst")
	sparsetest.Create(t, srcPath, 10*MiB,
		sparsetest.Region{Offset: 0, Data: first},
		sparsetest.Region{Offset: 5 * MiB, Data: second})

	src := openFile(t, srcPath, os.O_RDWR)
	dst := openFile(t, dstPath, os.O_WRONLY|os.O_CREATE)

	var allocations []int64
	rep := &hookReporter{onProgress: func(mover.Progress) {
		n, err := src.Allocated()
		require.NoError(t, err)
		allocations = append(allocations, n)
	}}
	before, err := src.Allocated()
	require.NoError(t, err)

	stats, err := newTestMover(256*1024, rep).Move(mover.TransferRequest{
		Source: src, Destination: dst, Length: 10 * MiB,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2*MiB), stats.Moved)
	assert.Equal(t, int64(8*MiB), stats.Skipped)
	assert.Equal(t, 8, stats.Chunks)

	// source storage shrinks after every chunk, not just at the end
	require.Len(t, allocations, 8)
	assert.Less(t, allocations[0], before)
	for i := 1; i < len(allocations); i++ {
		assert.Less(t, allocations[i], allocations[i-1], "chunk %d", i)
	}
	assert.Empty(t, sparsetest.DataExtents(t, srcPath), "source fully punched")

	assert.Equal(t, first, sparsetest.ReadRange(t, dstPath, 0, MiB))
	assert.True(t, sparsetest.IsZero(sparsetest.ReadRange(t, dstPath, MiB, 4*MiB)))
	assert.Equal(t, second, sparsetest.ReadRange(t, dstPath, 5*MiB, MiB))

	assert.Equal(t, []sparse.Extent{
		{Offset: 0, Length: MiB, Data: true},
		{Offset: 5 * MiB, Length: MiB, Data: true},
	}, sparsetest.DataExtents(t, dstPath), "source holes stay holes in the destination")

	// the source keeps its logical size
	info, err := os.Stat(srcPath)
	require.NoError(t, err)
	assert.Equal(t, int64(10*MiB), info.Size())
}

func TestMoveFile_Offsets(t *testing.T) {
	dir := t.TempDir()
	sparsetest.RequireSupport(t, dir)

	data := sparsetest.Pattern(3, MiB)
	srcPath := filepath.Join(dir, "src")
	dstPath := filepath.Join(dir, "dst")
	sparsetest.Create(t, srcPath, 4*MiB,
		sparsetest.Region{Offset: 0, Data: sparsetest.Pattern(9, MiB)},
		sparsetest.Region{Offset: 3 * MiB, Data: data})

	src := openFile(t, srcPath, os.O_RDWR)
	dst := openFile(t, dstPath, os.O_WRONLY|os.O_CREATE)

	_, err := newTestMover(MiB, nil).Move(mover.TransferRequest{
		Source:            src,
		SourceOffset:      2 * MiB,
		Destination:       dst,
		DestinationOffset: 8 * MiB,
		Length:            2 * MiB,
	})
	require.NoError(t, err)

	assert.Equal(t, data, sparsetest.ReadRange(t, dstPath, 9*MiB, MiB))
	assert.Equal(t, []sparse.Extent{{Offset: 9 * MiB, Length: MiB, Data: true}}, sparsetest.DataExtents(t, dstPath))

	// data before the requested range stays in the source
	assert.Equal(t, []sparse.Extent{{Offset: 0, Length: MiB, Data: true}}, sparsetest.DataExtents(t, srcPath))
	assert.Equal(t, sparsetest.Pattern(9, MiB), sparsetest.ReadRange(t, srcPath, 0, MiB))
}

func TestMoveFile_ExistingDestination(t *testing.T) {
	dir := t.TempDir()
	sparsetest.RequireSupport(t, dir)

	data := sparsetest.Pattern(4, 512*1024)
	old := sparsetest.Pattern(5, 4*MiB)
	srcPath := filepath.Join(dir, "src")
	dstPath := filepath.Join(dir, "dst")
	sparsetest.Create(t, srcPath, 2*MiB, sparsetest.Region{Offset: 0, Data: data})
	sparsetest.Create(t, dstPath, 4*MiB, sparsetest.Region{Offset: 0, Data: old})

	src := openFile(t, srcPath, os.O_RDWR)
	dst := openFile(t, dstPath, os.O_WRONLY|os.O_CREATE)

	_, err := newTestMover(MiB, nil).Move(mover.TransferRequest{
		Source: src, Destination: dst, DestinationOffset: MiB, Length: 2 * MiB,
	})
	require.NoError(t, err)

	// outside the range the destination is untouched
	assert.Equal(t, old[:MiB], sparsetest.ReadRange(t, dstPath, 0, MiB))
	assert.Equal(t, old[3*MiB:], sparsetest.ReadRange(t, dstPath, 3*MiB, MiB))

	// inside it, source holes read back as zeros since the range was
	// punched before anything was written
	assert.Equal(t, data, sparsetest.ReadRange(t, dstPath, MiB, 512*1024))
	assert.True(t, sparsetest.IsZero(sparsetest.ReadRange(t, dstPath, MiB+512*1024, MiB+512*1024)))

	info, err := os.Stat(dstPath)
	require.NoError(t, err)
	assert.Equal(t, int64(4*MiB), info.Size(), "destination is never truncated")
}

func TestMoveFile_ReadOnlyDestination(t *testing.T) {
	dir := t.TempDir()
	sparsetest.RequireSupport(t, dir)

	data := sparsetest.Pattern(6, 2*MiB)
	srcPath := filepath.Join(dir, "src")
	dstPath := filepath.Join(dir, "dst")
	sparsetest.Create(t, srcPath, 4*MiB, sparsetest.Region{Offset: MiB, Data: data})
	sparsetest.Create(t, dstPath, 0)

	src := openFile(t, srcPath, os.O_RDWR)
	dst := openFile(t, dstPath, os.O_RDONLY)

	allocatedBefore := sparsetest.Allocated(t, srcPath)
	extentsBefore := sparsetest.DataExtents(t, srcPath)

	stats, err := newTestMover(MiB, nil).Move(mover.TransferRequest{
		Source: src, Destination: dst, Length: 4 * MiB,
	})
	require.ErrorIs(t, err, mover.ErrUnsupportedFilesystem)
	assert.Equal(t, mover.Stats{}, stats)

	var moveErr *mover.MoveError
	require.ErrorAs(t, err, &moveErr)
	assert.Equal(t, mover.OpReserveOutput, moveErr.Op)
	assert.Equal(t, dstPath, moveErr.Path)

	assert.Equal(t, allocatedBefore, sparsetest.Allocated(t, srcPath))
	assert.Equal(t, extentsBefore, sparsetest.DataExtents(t, srcPath))
	assert.Equal(t, data, sparsetest.ReadRange(t, srcPath, MiB, 2*MiB))
}
