// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package sites

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadGeoJSON(t *testing.T) {
	const data = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "geometry": {"type": "Point", "coordinates": [-164.85, 65.02]},
      "properties": {"Name": "Graphite Creek", "Element": "Graphite", "Deposit Type": "Disseminated Flake", "Status": "Development", "year": 2024}
    },
    {
      "type": "Feature",
      "geometry": {"type": "LineString", "coordinates": [[0, 0], [1, 1]]},
      "properties": {"name": "Road"}
    },
    {
      "type": "Feature",
      "geometry": {"type": "Point", "coordinates": [0, 89]},
      "properties": {"name": "Too North"}
    },
    {
      "type": "Feature",
      "geometry": {"type": "Point", "coordinates": [-112.25, 34.45]},
      "properties": {"site": "Iron King Mine", "contaminants": ["As", "Cu"], "type": "Superfund", "status": "Remediation"}
    }
  ]
}`

	got, rejected, err := ReadGeoJSON(strings.NewReader(data), "sites.geojson")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Len(t, rejected, 2)

	assert.Equal(t, "Graphite Creek", got[0].Name)
	assert.Equal(t, "Graphite", got[0].Category)
	assert.Equal(t, "Disseminated Flake", got[0].Kind)
	assert.InDelta(t, 65.02, got[0].Point.Lat, 0)
	assert.InDelta(t, -164.85, got[0].Point.Lng, 0)
	assert.Equal(t, 1, got[0].Line)

	assert.Equal(t, "As, Cu", got[1].Category)
	assert.True(t, got[1].IsContamination())

	assert.Equal(t, 2, rejected[0].Line)
	assert.Equal(t, 3, rejected[1].Line)
	assert.True(t, IsInvalidCoordinate(rejected[1]))
}

func TestReadGeoJSONMalformed(t *testing.T) {
	for _, data := range []string{`{"type": "FeatureCollection", "features": [`, `{"type": "Feature"}`} {
		_, _, err := ReadGeoJSON(strings.NewReader(data), "bad.geojson")
		require.Error(t, err)
		assert.Equal(t, ErrorTypeMalformed, errorType(err))
	}
}
