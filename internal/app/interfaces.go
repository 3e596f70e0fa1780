// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package app

import "sparsemv/pkg/types"

// Mover defines the interface for the move application logic
type Mover interface {
	// Run moves the range described by opts
	Run(opts *MoverOptions) (*types.MoveSummary, error)
}

// Mapper defines the interface for the extent map application logic
type Mapper interface {
	// Run prints the data/hole layout of a file
	Run(path string) error
}
