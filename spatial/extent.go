// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package spatial

import (
	"fmt"
	"slices"
	"strings"
)

// Extent is a latitude/longitude bounding box.
type Extent struct {
	Name   string  `json:"name"`
	LatMin float64 `json:"lat_min"`
	LatMax float64 `json:"lat_max"`
	LonMin float64 `json:"lon_min"`
	LonMax float64 `json:"lon_max"`
}

// Bounds is an Extent projected to Web Mercator meters.
type Bounds struct {
	Min XY `json:"min"`
	Max XY `json:"max"`
}

var (
	// ContiguousUS frames the lower 48 states.
	ContiguousUS = Extent{Name: "us", LatMin: 24, LatMax: 50, LonMin: -125, LonMax: -66}
	// Alaska frames Alaska, west of the 130th meridian.
	Alaska = Extent{Name: "alaska", LatMin: 51, LatMax: 71, LonMin: -180, LonMax: -130}
	// UnitedStates covers the lower 48, Alaska and Hawaii.
	UnitedStates = Extent{Name: "usa", LatMin: 18, LatMax: 71, LonMin: -180, LonMax: -66}
	// World is the whole projectable world.
	World = Extent{Name: "world", LatMin: -MaxMercatorLatitude, LatMax: MaxMercatorLatitude, LonMin: -180, LonMax: 180}
)

var extents = []Extent{ContiguousUS, Alaska, UnitedStates, World}

// ExtentByName returns one of the named extents.
func ExtentByName(name string) (Extent, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, e := range extents {
		if e.Name == name {
			return e, nil
		}
	}

	return Extent{}, fmt.Errorf("unknown extent %q (known: %s)", name, strings.Join(ExtentNames(), ", "))
}

// ExtentNames lists the named extents, sorted.
func ExtentNames() []string {
	ret := make([]string, 0, len(extents))
	for _, e := range extents {
		ret = append(ret, e.Name)
	}

	slices.Sort(ret)

	return ret
}

// Contains reports whether the point lies within the extent, borders included.
func (e Extent) Contains(p Point) bool {
	return p.Lat >= e.LatMin && p.Lat <= e.LatMax &&
		p.Lng >= e.LonMin && p.Lng <= e.LonMax
}

// Projected returns the Web Mercator bounds of the extent.
func (e Extent) Projected() (Bounds, error) {
	lower, err := Project(e.LatMin, e.LonMin)
	if err != nil {
		return Bounds{}, fmt.Errorf("extent %s: %w", e.Name, err)
	}

	upper, err := Project(e.LatMax, e.LonMax)
	if err != nil {
		return Bounds{}, fmt.Errorf("extent %s: %w", e.Name, err)
	}

	return Bounds{Min: lower, Max: upper}, nil
}
