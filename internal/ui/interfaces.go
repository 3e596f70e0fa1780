// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ui

import (
	"sparsemv/internal/mover"
	"sparsemv/internal/sparse"
	"sparsemv/pkg/types"
)

// InteractiveUI defines the interface for user-facing output
type InteractiveUI interface {
	mover.ProgressReporter

	// ShowMessage displays a message to the user
	ShowMessage(message string)

	// ShowSummary displays the result of a finished move
	ShowSummary(summary types.MoveSummary)

	// ShowExtents displays the data/hole layout of a file
	ShowExtents(path string, size, allocated int64, extents []sparse.Extent)
}
