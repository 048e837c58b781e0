// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package mapdef

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBuiltin(t *testing.T) {
	def, err := Load("critical-minerals")
	require.NoError(t, err)

	assert.Equal(t, "critical_minerals_usa.html", def.Output)
	assert.Equal(t, CartoLightTiles, def.TileURL)
	assert.Len(t, def.Tabs, 4)
	assert.InDelta(t, 0.8, def.Tabs[0].Layers[0].Opacity(), 0)
	assert.Equal(t, "Name", def.Tabs[0].Layers[0].Labels.Name)
	assert.Equal(t, "Site", def.Tabs[1].Layers[0].Labels.Name)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("MINERALMAP_OUTPUT", "/tmp/out.html")
	t.Setenv("MINERALMAP_TILE_URL", OpenStreetMapTiles)
	t.Setenv("MINERALMAP_WIDTH", "1600")

	def, err := Load("contamination")
	require.NoError(t, err)

	assert.Equal(t, "/tmp/out.html", def.Output)
	assert.Equal(t, OpenStreetMapTiles, def.TileURL)
	assert.Equal(t, OpenStreetMapAttribution, def.Attribution)
	assert.Equal(t, 1600, def.Width)
	assert.Equal(t, 650, def.Height)
}

func TestLoadFileWithBase(t *testing.T) {
	def, err := Load(filepath.Join("testdata", "alaska.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "critical-minerals", def.Name)
	assert.Equal(t, "Alaska Antimony", def.Title)
	assert.Equal(t, "alaska.html", def.Output)
	assert.Equal(t, CartoLightTiles, def.TileURL, "inherited from the base")
	assert.Equal(t, CartoAttribution, def.Attribution)

	require.Len(t, def.Tabs, 1, "tabs replace the base tabs")

	layer := def.Tabs[0].Layers[0]
	assert.Equal(t, "category:antimony;extent:alaska", layer.Filter)
	assert.Equal(t, []string{"Antimony", "Gold"}, layer.Legend)
	assert.Equal(t, "Development stage", layer.StatusLegend)
	assert.Equal(t, "Elements", layer.Labels.Category)
}

func TestLoadFileOverridesScalars(t *testing.T) {
	def, err := Load(filepath.Join("testdata", "override.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "inventory-2025.html", def.Output)
	assert.Equal(t, 1600, def.Width)
	assert.Equal(t, 650, def.Height)
	assert.Len(t, def.Tabs, 4)
}

func TestLoadPlainFile(t *testing.T) {
	def, err := Load(filepath.Join("testdata", "plain.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "plain", def.Name)
	assert.Equal(t, OpenStreetMapTiles, def.TileURL)
	assert.Equal(t, "us", def.Tabs[0].Extent)
	assert.Equal(t, "elements", def.Tabs[0].Layers[0].Palette)
	assert.Equal(t, "status", def.Tabs[0].Layers[0].Sizes)
	assert.InDelta(t, DefaultAlpha, def.Tabs[0].Layers[0].Opacity(), 0)

	outline := def.Tabs[0].Layers[1]
	require.NotNil(t, outline.Alpha)
	assert.Zero(t, outline.Opacity(), "an explicit zero alpha is kept")
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "invalid.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid map definition")
	assert.Contains(t, err.Error(), `unknown extent "mars"`)

	_, err = Load(filepath.Join("testdata", "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.yaml")
}
