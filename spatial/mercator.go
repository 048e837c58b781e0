// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package spatial

import (
	"errors"
	"fmt"
	"math"
)

// EarthRadiusMeters is the sphere radius of EPSG:3857 (WGS-84 semi-major axis).
const EarthRadiusMeters = 6378137.0

// MaxMercatorLatitude is the latitude at which the Web Mercator square
// world ends. Beyond it tiles do not exist and the projection diverges
// towards infinity at the poles.
const MaxMercatorLatitude = 85.05112878

// ErrOutOfRange is matched by every *CoordinateError.
var ErrOutOfRange = errors.New("coordinate out of range")

// CoordinateError reports a latitude/longitude that cannot be projected.
type CoordinateError struct {
	Lat    float64
	Lon    float64
	Reason string
}

func (e *CoordinateError) Error() string {
	return fmt.Sprintf("invalid coordinate (%v, %v): %s", e.Lat, e.Lon, e.Reason)
}

// Is makes errors.Is(err, ErrOutOfRange) true for coordinate errors.
func (e *CoordinateError) Is(target error) bool {
	return target == ErrOutOfRange
}

// XY is a planar position in Web Mercator meters.
type XY struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ToWebMercator converts degrees to spherical Web Mercator meters.
//
//	x = R·λ
//	y = R·ln(tan(π/4 + φ/2))
//
// It applies the raw formula and does not validate its input: at ±90° the
// result is ±Inf and NaN input yields NaN. Use Project when the input is
// not known to be valid.
func ToWebMercator(lat, lon float64) (float64, float64) {
	latRad := lat * math.Pi / 180
	lonRad := lon * math.Pi / 180

	x := EarthRadiusMeters * lonRad
	y := EarthRadiusMeters * math.Log(math.Tan(math.Pi/4+latRad/2))

	return x, y
}

// FromWebMercator is the inverse of ToWebMercator, returning degrees.
func FromWebMercator(x, y float64) (float64, float64) {
	lon := x / EarthRadiusMeters * 180 / math.Pi
	lat := (2*math.Atan(math.Exp(y/EarthRadiusMeters)) - math.Pi/2) * 180 / math.Pi

	return lat, lon
}

// ValidateLatLon checks that a coordinate can be projected to Web Mercator.
func ValidateLatLon(lat, lon float64) error {
	switch {
	case math.IsNaN(lat) || math.IsNaN(lon):
		return &CoordinateError{Lat: lat, Lon: lon, Reason: "not a number"}
	case math.IsInf(lat, 0) || math.IsInf(lon, 0):
		return &CoordinateError{Lat: lat, Lon: lon, Reason: "infinite"}
	case lat < -90 || lat > 90:
		return &CoordinateError{Lat: lat, Lon: lon, Reason: "latitude must be between -90 and 90"}
	case lon < -180 || lon > 180:
		return &CoordinateError{Lat: lat, Lon: lon, Reason: "longitude must be between -180 and 180"}
	case lat < -MaxMercatorLatitude || lat > MaxMercatorLatitude:
		return &CoordinateError{
			Lat:    lat,
			Lon:    lon,
			Reason: fmt.Sprintf("latitude beyond the Web Mercator limit of ±%v", MaxMercatorLatitude),
		}
	}

	return nil
}

// Project validates and converts a single coordinate.
func Project(lat, lon float64) (XY, error) {
	if err := ValidateLatLon(lat, lon); err != nil {
		return XY{}, err
	}

	x, y := ToWebMercator(lat, lon)

	return XY{X: x, Y: y}, nil
}

// Project converts the point to Web Mercator meters.
func (p Point) Project() (XY, error) {
	return Project(p.Lat, p.Lng)
}

// ProjectAll converts every point, failing on the first invalid one. The
// result has the same length and order as the input.
func ProjectAll(points []Point) ([]XY, error) {
	ret := make([]XY, len(points))

	for i, p := range points {
		xy, err := p.Project()
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}

		ret[i] = xy
	}

	return ret, nil
}
