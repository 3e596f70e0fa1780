package app

import (
	"fmt"
	"os"

	"sparsemv/internal/sparse"
	"sparsemv/internal/ui"
)

var _ Mapper = (*MapApp)(nil)

// MapApp prints the extent layout of a file
type MapApp struct {
	ui ui.InteractiveUI
}

// NewMapApp creates a new map application
func NewMapApp(ui ui.InteractiveUI) *MapApp {
	return &MapApp{ui: ui}
}

// Run prints the data and hole extents of path
func (a *MapApp) Run(path string) error {
	f, err := sparse.Open(path, os.O_RDONLY, 0)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	size, err := f.Size()
	if err != nil {
		return err
	}
	allocated, err := f.Allocated()
	if err != nil {
		return fmt.Errorf("failed to get allocation: %w", err)
	}
	extents, err := f.Extents(0, size)
	if err != nil {
		return fmt.Errorf("failed to map extents: %w", err)
	}

	a.ui.ShowExtents(path, size, allocated, extents)
	return nil
}
