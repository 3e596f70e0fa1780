// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package file

import (
	"sparsemv/internal/sparse"
)

// FileService handles opening the two ends of a move
type FileService interface {
	// OpenSource opens a regular file read-write and returns its size
	OpenSource(filePath string) (*sparse.File, int64, error)

	// CreateDestination opens a file for writing, creating it if needed.
	// Existing content is kept.
	CreateDestination(dstPath string) (*sparse.File, error)

	// GetFileInfo returns information about a file
	GetFileInfo(filePath string) (FileInfo, error)
}

// FileInfo contains file metadata
type FileInfo interface {
	// Name returns the file name
	Name() string

	// Size returns the logical file size in bytes
	Size() int64

	// Path returns the full file path
	Path() string

	// Allocated returns the bytes of storage backing the file
	Allocated() int64
}
