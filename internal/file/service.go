// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"sparsemv/internal/sparse"
)

// ErrNotRegular is returned for sources that are not regular files
var ErrNotRegular = errors.New("not a regular file")

// fileService implements FileService interface
type fileService struct{}

// NewFileService creates a new file service
func NewFileService() FileService {
	return &fileService{}
}

// OpenSource opens a file for reading and hole punching
func (f *fileService) OpenSource(filePath string) (*sparse.File, int64, error) {
	file, err := sparse.Open(filePath, os.O_RDWR, 0)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, 0, fmt.Errorf("failed to get file info: %w", err)
	}
	if !stat.Mode().IsRegular() {
		file.Close()
		return nil, 0, fmt.Errorf("%s: %w", filePath, ErrNotRegular)
	}

	return file, stat.Size(), nil
}

// CreateDestination creates or opens a file for writing
func (f *fileService) CreateDestination(dstPath string) (*sparse.File, error) {
	// Create directory if it doesn't exist
	dir := filepath.Dir(dstPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := sparse.Open(dstPath, os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	return file, nil
}

// GetFileInfo returns information about a file
func (f *fileService) GetFileInfo(filePath string) (FileInfo, error) {
	file, err := sparse.Open(filePath, os.O_RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	allocated, err := file.Allocated()
	if err != nil {
		return nil, fmt.Errorf("failed to get allocation: %w", err)
	}

	return &fileInfo{
		name:      stat.Name(),
		size:      stat.Size(),
		path:      filePath,
		allocated: allocated,
	}, nil
}

// fileInfo contains file metadata
type fileInfo struct {
	name      string
	size      int64
	path      string
	allocated int64
}

func (f *fileInfo) Name() string {
	return f.name
}

func (f *fileInfo) Size() int64 {
	return f.size
}

func (f *fileInfo) Path() string {
	return f.path
}

func (f *fileInfo) Allocated() int64 {
	return f.allocated
}
