// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package spatial

import (
	"fmt"

	"github.com/uber/h3-go/v4"
)

// Resolutions stored for every catalogued site, coarse to fine.
const (
	MinCellResolution = 1
	MaxCellResolution = 8
)

// Cells returns the H3 cell of the point at each resolution in
// [MinCellResolution, MaxCellResolution], indexed by resolution-1.
func Cells(p Point) ([MaxCellResolution]uint64, error) {
	var ret [MaxCellResolution]uint64

	latLng := h3.NewLatLng(p.Lat, p.Lng)
	for res := MinCellResolution; res <= MaxCellResolution; res++ {
		cell, err := h3.LatLngToCell(latLng, res)
		if err != nil {
			return ret, fmt.Errorf("error converting to h3 cell at res %d: %w", res, err)
		}

		ret[res-1] = uint64(cell)
	}

	return ret, nil
}

// CellID returns the hexadecimal H3 index of the point at one resolution.
func CellID(p Point, res int) (string, error) {
	cell, err := h3.LatLngToCell(h3.NewLatLng(p.Lat, p.Lng), res)
	if err != nil {
		return "", fmt.Errorf("error converting to h3 cell at res %d: %w", res, err)
	}

	return cell.String(), nil
}

// CellString formats a cell index as returned by Cells.
func CellString(cell uint64) string {
	return h3.Cell(cell).String()
}

// ParseCell parses a hexadecimal H3 index and returns it with its
// resolution, which must be one of the stored ones.
func ParseCell(s string) (uint64, int, error) {
	cell := h3.Cell(h3.IndexFromString(s))
	if !cell.IsValid() {
		return 0, 0, fmt.Errorf("invalid h3 cell %q", s)
	}

	res := cell.Resolution()
	if res < MinCellResolution || res > MaxCellResolution {
		return 0, 0, fmt.Errorf("h3 cell %q has resolution %d, want %d..%d",
			s, res, MinCellResolution, MaxCellResolution)
	}

	return uint64(cell), res, nil
}
