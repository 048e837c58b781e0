// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package spatial

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToWebMercator(t *testing.T) {
	tests := []struct {
		name  string
		lat   float64
		lon   float64
		wantX float64
		wantY float64
		tol   float64
	}{
		{
			name: "origin",
			lat:  0,
			lon:  0,
			tol:  1e-9,
		},
		{
			name:  "minnesota",
			lat:   45,
			lon:   -93,
			wantX: EarthRadiusMeters * -93 * math.Pi / 180,
			wantY: 5621521.486,
			tol:   1,
		},
		{
			name:  "antimeridian on the equator",
			lat:   0,
			lon:   180,
			wantX: 20037508.342789244,
			tol:   1e-6,
		},
		{
			name:  "southern hemisphere is mirrored",
			lat:   -45,
			lon:   93,
			wantX: EarthRadiusMeters * 93 * math.Pi / 180,
			wantY: -5621521.486,
			tol:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := ToWebMercator(tt.lat, tt.lon)
			assert.InDelta(t, tt.wantX, x, tt.tol)
			assert.InDelta(t, tt.wantY, y, tt.tol)
		})
	}
}

func TestToWebMercatorDeterministic(t *testing.T) {
	x1, y1 := ToWebMercator(61.2181, -149.9003)
	x2, y2 := ToWebMercator(61.2181, -149.9003)

	if x1 != x2 || y1 != y2 {
		t.Errorf("ToWebMercator() not deterministic: (%v, %v) != (%v, %v)", x1, y1, x2, y2)
	}
}

func TestWebMercatorRoundTrip(t *testing.T) {
	for lat := -85.0; lat <= 85.0; lat += 8.5 {
		for lon := -180.0; lon <= 180.0; lon += 22.5 {
			x, y := ToWebMercator(lat, lon)
			gotLat, gotLon := FromWebMercator(x, y)

			if math.Abs(gotLat-lat) > 1e-6 || math.Abs(gotLon-lon) > 1e-6 {
				t.Errorf("round trip (%v, %v) -> (%v, %v)", lat, lon, gotLat, gotLon)
			}
		}
	}
}

func TestToWebMercatorMonotonic(t *testing.T) {
	_, prev := ToWebMercator(-85, 0)
	for lat := -84.0; lat <= 85; lat++ {
		_, y := ToWebMercator(lat, 0)
		if y <= prev {
			t.Fatalf("y not increasing at lat %v: %v <= %v", lat, y, prev)
		}

		prev = y
	}
}

func TestValidateLatLon(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64
		lon     float64
		wantErr bool
	}{
		{name: "anchorage", lat: 61.2181, lon: -149.9003},
		{name: "origin", lat: 0, lon: 0},
		{name: "mercator north limit", lat: MaxMercatorLatitude, lon: 0},
		{name: "mercator south limit", lat: -MaxMercatorLatitude, lon: 0},
		{name: "antimeridian", lat: 10, lon: -180},
		{name: "north pole", lat: 90, lon: 0, wantErr: true},
		{name: "south pole", lat: -90, lon: 0, wantErr: true},
		{name: "beyond mercator limit", lat: 86, lon: 0, wantErr: true},
		{name: "latitude too high", lat: 91, lon: 0, wantErr: true},
		{name: "longitude too low", lat: 0, lon: -181, wantErr: true},
		{name: "nan", lat: math.NaN(), lon: 0, wantErr: true},
		{name: "infinite", lat: 0, lon: math.Inf(1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLatLon(tt.lat, tt.lon)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLatLon(%v, %v) error = %v, wantErr %v", tt.lat, tt.lon, err, tt.wantErr)
			}

			if err != nil && !errors.Is(err, ErrOutOfRange) {
				t.Errorf("ValidateLatLon() error %v does not match ErrOutOfRange", err)
			}
		})
	}
}

func TestProject(t *testing.T) {
	xy, err := Project(45, -93)
	require.NoError(t, err)
	assert.InDelta(t, 5621521.486, xy.Y, 1)

	_, err = Project(90, 0)
	require.Error(t, err)

	var coordErr *CoordinateError
	require.ErrorAs(t, err, &coordErr)
	assert.InDelta(t, 90.0, coordErr.Lat, 0)
}

func TestProjectAll(t *testing.T) {
	points := []Point{{Lat: 0, Lng: 0}, {Lat: 45, Lng: -93}, {Lat: 61.2, Lng: -149.9}}

	got, err := ProjectAll(points)
	require.NoError(t, err)
	require.Len(t, got, len(points))

	for i, p := range points {
		x, y := ToWebMercator(p.Lat, p.Lng)
		assert.Equal(t, XY{X: x, Y: y}, got[i], "point %d", i)
	}

	_, err = ProjectAll([]Point{{Lat: 0, Lng: 0}, {Lat: 90, Lng: 0}})
	require.ErrorIs(t, err, ErrOutOfRange)
	assert.Contains(t, err.Error(), "point 1")
}

func TestProjectAllEmpty(t *testing.T) {
	got, err := ProjectAll(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
