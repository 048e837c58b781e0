// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package style

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimaryCategory(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Tungsten, Antimony, Gold", "Tungsten"},
		{"Tungsten", "Tungsten"},
		{"  Tin ,Tungsten", "Tin"},
		{"Tungsten/Antimony", "Tungsten/Antimony"},
		{", Gold", ""},
		{"", ""},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, PrimaryCategory(tc.input))
		})
	}
}

func TestPaletteFallback(t *testing.T) {
	assert.Equal(t, "#E63946", Elements.Color("Tungsten"))
	assert.Equal(t, MultiElementGray, Elements.Color("Unobtainium"))
	assert.Equal(t, MultiElementGray, Elements.Color("tungsten"), "lookup is case sensitive")
	assert.Equal(t, MultiElementGray, Elements.Color(""))
	assert.Equal(t, ContaminationRed, Superfund.Color("anything"))
	assert.Equal(t, "", Palette{}.Color("x"))
}

func TestSizeAndShapeFallback(t *testing.T) {
	assert.Equal(t, 18, StatusSizes.Size("Operating"))
	assert.Equal(t, DefaultMarkerSize, StatusSizes.Size("Dormant"))
	assert.Equal(t, 10, DetailedStatusSizes.Size("Historic"))
	assert.Equal(t, 10, DetailedStatusSizes.Size("Unknown"))
	assert.Equal(t, Diamond, StatusShapes.Shape("Development"))
	assert.Equal(t, Circle, StatusShapes.Shape("Dormant"))
	assert.Equal(t, Circle, ShapeTable{}.Shape("Historic"))
}

func TestResolve(t *testing.T) {
	r := Resolver{Palette: Elements, Sizes: StatusSizes, Shapes: StatusShapes}

	tests := []struct {
		name     string
		category string
		status   string
		want     Style
	}{
		{
			name:     "known category and status",
			category: "Antimony",
			status:   "Development",
			want:     Style{Color: "#F4A261", Size: 15, Shape: Diamond},
		},
		{
			name:     "multi category uses the first token",
			category: "Tungsten, Antimony, Gold",
			status:   "Operating",
			want:     Style{Color: "#E63946", Size: 18, Shape: Circle},
		},
		{
			name:     "unknown everything",
			category: "Kryptonite",
			status:   "Imaginary",
			want:     Style{Color: MultiElementGray, Size: DefaultMarkerSize, Shape: Circle},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Resolve(tt.category, tt.status)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
			}

			if again := r.Resolve(tt.category, tt.status); again != got {
				t.Errorf("Resolve() not deterministic: %+v != %+v", again, got)
			}
		})
	}

	assert.Equal(t, r.Resolve("Tungsten", ""), r.Resolve("Tungsten, Antimony, Gold", ""))
}

func TestRegistry(t *testing.T) {
	p, err := PaletteByName("commodities")
	require.NoError(t, err)
	assert.Equal(t, "#9b59b6", p.Color("Tungsten/Antimony"))

	_, err = PaletteByName("rainbow")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "elements")

	s, err := SizeTableByName("contamination")
	require.NoError(t, err)
	assert.Equal(t, 16, s.Size("Superfund"))

	_, err = SizeTableByName("huge")
	require.Error(t, err)

	assert.Equal(t, []string{"commodities", "contaminants", "elements", "ree", "superfund"}, PaletteNames())
	assert.Equal(t, []string{"contamination", "ree", "remediation", "status", "status-detailed"}, SizeTableNames())
}

func TestREETables(t *testing.T) {
	r := Resolver{Palette: REE, Sizes: REESizes}

	assert.Equal(t, Style{Color: "#e67e22", Size: 20, Shape: Circle}, r.Resolve("Coal Ash", "Disaster"))
	assert.Equal(t, Style{Color: "#16a085", Size: 16, Shape: Circle}, r.Resolve("Mine Tailings", "High"))
	assert.Equal(t, Style{Color: DefaultMineralGray, Size: 12, Shape: Circle}, r.Resolve("Lithium", "Moderate"))
}

func TestFixedPalette(t *testing.T) {
	p := Fixed("#c0392b")
	assert.Equal(t, "#c0392b", p.Color("Coal Ash"))
	assert.Equal(t, "#c0392b", p.Color(""))

	for c, want := range map[string]bool{
		"#c0392b": true, "#FFF": true, "c0392b": false, "#c0392": false, "red": false, "": false,
	} {
		assert.Equal(t, want, ValidColor(c), c)
	}
}

func TestElementLabel(t *testing.T) {
	assert.Equal(t, "Cerium (CE)", ElementLabel("CE_PPM"))
	assert.Equal(t, "Neodymium (ND)", ElementLabel("Nd"))
	assert.Equal(t, "Total REE Oxides (REO)", ElementLabel("REO_PPM"))
	assert.Equal(t, "Tungsten", ElementLabel("Tungsten"))
}

func TestLegendFor(t *testing.T) {
	r := Resolver{Palette: Elements, Sizes: StatusSizes, Shapes: StatusShapes}
	long := "Porphyry Copper Gold and Porphyry Copper Molybdenum"

	got := LegendFor("Element", r, []string{"Tungsten", "Kryptonite", "Tungsten", " ", long, "CE_PPM"})
	require.Len(t, got.Entries, 4)
	assert.Equal(t, "Element", got.Title)

	assert.Equal(t, "Tungsten", got.Entries[0].Label)
	assert.Equal(t, "#E63946", got.Entries[0].Color)
	assert.Equal(t, MultiElementGray, got.Entries[1].Color)
	assert.Equal(t, long, got.Entries[2].Key)
	assert.Equal(t, "Porphyry Copper Gold and Porphyry C...", got.Entries[2].Label)
	assert.Equal(t, MaxLabelRunes+3, len([]rune(got.Entries[2].Label)))
	assert.Equal(t, "CE_PPM", got.Entries[3].Key)
	assert.Equal(t, "Cerium (CE)", got.Entries[3].Label)

	for _, e := range got.Entries {
		assert.True(t, strings.HasPrefix(e.Swatch, "<svg"), e.Swatch)
		assert.Contains(t, e.Swatch, "fill:"+e.Color)
	}
}

func TestStatusLegend(t *testing.T) {
	r := Resolver{Palette: Elements, Sizes: StatusSizes, Shapes: StatusShapes}

	got := StatusLegend("Status", r, []string{"Operating", "Development", "Exploration", "Historic", "Resource"})
	require.Len(t, got.Entries, 5)

	want := []Shape{Circle, Diamond, Triangle, Square, Hex}
	for i, e := range got.Entries {
		assert.Equal(t, want[i], e.Shape)
	}

	assert.Equal(t, 18, got.Entries[0].Size)
	assert.Contains(t, got.Entries[0].Swatch, "<circle")
	assert.Contains(t, got.Entries[1].Swatch, "<polygon")
	assert.Contains(t, got.Entries[3].Swatch, "<rect")
}

func TestSwatchHasNoProlog(t *testing.T) {
	s := Swatch(Circle, "#E63946", 2)
	assert.True(t, strings.HasPrefix(s, "<svg"))
	assert.NotContains(t, s, "<?xml")
	assert.True(t, strings.HasSuffix(s, "</svg>"))
}
