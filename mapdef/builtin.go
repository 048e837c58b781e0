// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package mapdef

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/jcodagnone/mineralmap/sites"
	"github.com/jcodagnone/mineralmap/spatial"
	"github.com/jcodagnone/mineralmap/style"
)

// Padding around the contiguous United States views, in meters.
const (
	usPadX = 500_000
	usPadY = 200_000
)

const criticalMineralsInfo = `<h3>US Critical Minerals Map</h3>
<p><strong>Elements mapped:</strong> Arsenic, Antimony, Bismuth, Chromium, Fluorine, Gallium,
Germanium, Graphite, Indium, Manganese, Magnesium, Niobium, Scandium, Tantalum, Tin, Tungsten, Yttrium</p>
<p><strong>Data sources:</strong> USGS USMIN database, USGS Earth MRI, EPA Superfund, state geological surveys</p>
<p><strong>Notes:</strong> Many elements (Ga, Ge, In, Bi) are recovered as byproducts from zinc/copper processing.
Contamination sites primarily show arsenic and heavy metal pollution from historic mining and smelting.</p>`

var elementLegend = []string{
	"Tungsten", "Antimony", "Graphite", "Chromium", "Manganese",
	"Gallium", "Germanium", "Niobium", "Tantalum", "Tin",
	"Scandium", "Yttrium", "Magnesium", "Fluorine", "Bismuth",
}

var contaminationLabels = Labels{Name: "Site", Category: "Contaminants", Kind: "Source"}

func depositsLayer() Layer {
	return Layer{
		Name:         "Mineral Deposits",
		Filter:       "minerals",
		Palette:      style.Elements.Name,
		Sizes:        style.StatusSizes.Name,
		LegendTitle:  "Primary Element",
		Legend:       slices.Clone(elementLegend),
		StatusLegend: "Status",
	}
}

func contaminationLayer() Layer {
	return Layer{
		Name:    "Contamination Sites",
		Filter:  "contamination",
		Palette: style.Superfund.Name,
		Sizes:   style.ContaminationSizes.Name,
		Shape:   string(style.Cross),
		Labels:  contaminationLabels,
	}
}

// CriticalMinerals maps deposits by primary element next to mining and
// smelting contamination sites.
func CriticalMinerals() *Definition {
	alaska := depositsLayer()
	alaska.Filter = "minerals;extent:" + spatial.Alaska.Name

	return &Definition{
		Name:          "critical-minerals",
		Title:         "US Critical Minerals Map",
		Output:        "critical_minerals_usa.html",
		TileURL:       CartoLightTiles,
		Attribution:   CartoAttribution,
		Width:         1200,
		Height:        700,
		InfoHTML:      criticalMineralsInfo,
		ClusterMeters: 100,
		Tabs: []Tab{
			{
				Title:   "Mineral Deposits",
				Heading: "Critical Mineral Deposits in the United States",
				Extent:  spatial.ContiguousUS.Name,
				PadX:    usPadX,
				PadY:    usPadY,
				Layers:  []Layer{depositsLayer()},
			},
			{
				Title:   "Contamination Sites",
				Heading: "Mining & Industrial Contamination Sites (Arsenic, Chromium, Heavy Metals)",
				Extent:  spatial.ContiguousUS.Name,
				PadX:    usPadX,
				PadY:    usPadY,
				Layers:  []Layer{contaminationLayer()},
			},
			{
				Title:   "Combined View",
				Heading: "All Critical Mineral Sites: Deposits and Contamination",
				Extent:  spatial.ContiguousUS.Name,
				PadX:    usPadX,
				PadY:    usPadY,
				Layers:  []Layer{depositsLayer(), contaminationLayer()},
			},
			{
				Title:   "Alaska Focus",
				Heading: "Critical Mineral Deposits in Alaska",
				Extent:  spatial.Alaska.Name,
				Layers:  []Layer{alaska},
			},
		},
	}
}

// Inventory maps deposit inventories keyed by element group
// ("Tungsten/Antimony"), sized by lifecycle stage.
func Inventory() *Definition {
	deposits := Layer{
		Name:        "Critical Minerals",
		Filter:      "minerals",
		Palette:     style.Commodities.Name,
		Sizes:       style.DetailedStatusSizes.Name,
		LegendTitle: "Element",
		Legend: []string{
			"Tungsten", "Tungsten/Antimony", "Tungsten/Molybdenum", "Antimony", "Graphite",
			"Chromium/PGM", "Manganese", "Gallium/Germanium", "Niobium/REE", "Scandium/REE",
			"Tantalum", "Tin", "Tantalum/Tin", "Fluorine", "Fluorine/Beryllium",
		},
	}

	contamination := Layer{
		Name:        "Contamination Sites",
		Filter:      "contamination",
		Palette:     style.Contaminants.Name,
		Sizes:       style.RemediationSizes.Name,
		LegendTitle: "Contaminants",
		Legend:      []string{"As/Pb/Zn", "As/Cu", "As/Cu/Zn", "Pb/Zn"},
		Labels:      contaminationLabels,
	}

	alaska := deposits
	alaska.Filter = "minerals;extent:" + spatial.Alaska.Name

	return &Definition{
		Name:        "inventory",
		Title:       "Critical Minerals of the United States",
		Output:      "critical_minerals_map.html",
		TileURL:     OpenStreetMapTiles,
		Attribution: OpenStreetMapAttribution,
		Width:       1200,
		Height:      650,
		Tabs: []Tab{
			{Title: "Critical Minerals", Extent: spatial.ContiguousUS.Name, Layers: []Layer{deposits}},
			{Title: "Alaska Focus", Extent: spatial.Alaska.Name, Layers: []Layer{alaska}},
			{Title: "Contamination Sites", Extent: spatial.ContiguousUS.Name, Layers: []Layer{contamination}},
			{Title: "Combined View", Extent: spatial.ContiguousUS.Name, Layers: []Layer{deposits, contamination}},
		},
	}
}

// Contamination maps only contamination and remediation sites.
func Contamination() *Definition {
	layer := contaminationLayer()
	layer.Palette = style.Contaminants.Name
	layer.Shape = ""
	layer.LegendTitle = "Contaminants"
	layer.Legend = []string{"As/Pb/Zn", "As/Cu", "As/Cu/Zn", "Pb/Zn"}

	return &Definition{
		Name:        "contamination",
		Title:       "Mining & Industrial Contamination Sites",
		Output:      "contamination_sites.html",
		TileURL:     OpenStreetMapTiles,
		Attribution: OpenStreetMapAttribution,
		Width:       1200,
		Height:      650,
		Tabs: []Tab{
			{Title: "Contamination Sites", Extent: spatial.UnitedStates.Name, Layers: []Layer{layer}},
		},
	}
}

const reeInfo = `<h3>REE Recovery Sites</h3>
<p><strong>REE Deposits:</strong> US deposits in red, international deposits in gray for context.
Carbonatite, alkaline complex and IOA-type deposits.</p>
<p><strong>Coal Ash Sites:</strong> Appalachian Basin impoundments with documented REE content.
Spill and Superfund sites are drawn larger and darker.</p>
<p><strong>Mine Tailings:</strong> tailings facilities with recoverable REE content. High content means
more than 500 ppm or monazite.</p>
<p><em>Data sources: USGS SIR 2010-5220, Taggart et al. 2016, DOE Critical Minerals Reports, EPA Coal Ash Database</em></p>`

// usRegions selects the contiguous states and Alaska.
const usRegions = "extent:us|alaska"

var (
	reeDepositLabels = Labels{Name: "Deposit", Category: "Commodity", Kind: "Type", Grade: "Grade"}
	reeSiteLabels    = Labels{Name: "Site", Category: "Source", Kind: "Type", Grade: "REE Content"}
)

// reeLayer draws one class of REE source in a fixed color, with a single
// legend entry named label.
func reeLayer(name, filter, color, legendTitle, category, label string, labels Labels) Layer {
	return Layer{
		Name:         name,
		Filter:       filter,
		Palette:      style.REE.Name,
		Sizes:        style.REESizes.Name,
		Shape:        string(style.Circle),
		Color:        color,
		LegendTitle:  legendTitle,
		Legend:       []string{category},
		LegendLabels: map[string]string{category: label},
		Labels:       labels,
	}
}

// REE maps rare earth recovery opportunities: primary deposits next to
// coal ash impoundments and mine tailings.
func REE() *Definition {
	alpha := 0.7

	combined := Layer{
		Name:        "REE Recovery Sources",
		Filter:      "category:REE|Coal Ash|Mine Tailings",
		Palette:     style.REE.Name,
		Sizes:       style.REESizes.Name,
		Shape:       string(style.Circle),
		Alpha:       &alpha,
		LegendTitle: "Source",
		Legend:      []string{"REE", "Coal Ash", "Mine Tailings"},
		LegendLabels: map[string]string{
			"REE":           "REE Deposits",
			"Coal Ash":      "Coal Ash Sites",
			"Mine Tailings": "Mine Tailings",
		},
		Labels: Labels{Name: "Site", Category: "Source", Kind: "Type", Grade: "REE"},
	}

	return &Definition{
		Name:        "ree",
		Title:       "REE Recovery Sites",
		Output:      "ree_recovery_sites.html",
		TileURL:     OpenStreetMapTiles,
		Attribution: OpenStreetMapAttribution,
		Width:       1200,
		Height:      650,
		InfoHTML:    reeInfo,
		Sample:      sites.REESample,
		Tabs: []Tab{
			{
				Title:   "REE Deposits",
				Heading: "REE Deposits: Primary and Secondary Sources",
				Extent:  spatial.ContiguousUS.Name,
				Layers: []Layer{
					reeLayer("US REE Deposits", "category:REE;"+usRegions, "#e74c3c",
						"Deposit Location", "REE", "US REE Deposit", reeDepositLabels),
					reeLayer("International REE Deposits", "category:REE;!"+usRegions, style.DefaultMineralGray,
						"Deposit Location", "REE", "International REE", reeDepositLabels),
				},
			},
			{
				Title:   "Coal Ash Sites",
				Heading: "Coal Ash Sites with REE Content (Appalachian Basin)",
				Extent:  spatial.ContiguousUS.Name,
				Layers: []Layer{
					reeLayer("Spill and Superfund Sites", "category:Coal Ash;status:Superfund|Disaster", "#c0392b",
						"Site Type", "Coal Ash", "Superfund/Disaster Site", reeSiteLabels),
					reeLayer("Coal Ash Facilities", "category:Coal Ash;!status:Superfund|Disaster", "#e67e22",
						"Site Type", "Coal Ash", "Operating Coal Ash Facility", reeSiteLabels),
				},
			},
			{
				Title:   "Mine Tailings",
				Heading: "Mine Tailings with REE Content",
				Extent:  spatial.ContiguousUS.Name,
				Layers: []Layer{
					reeLayer("High REE Tailings", "category:Mine Tailings;status:High", "#16a085",
						"REE Content", "Mine Tailings", "High REE (>500 ppm or monazite)", reeSiteLabels),
					reeLayer("Moderate REE Tailings", "category:Mine Tailings;!status:High", "#1abc9c",
						"REE Content", "Mine Tailings", "Moderate REE (<500 ppm)", reeSiteLabels),
				},
			},
			{
				Title:   "Combined View",
				Heading: "All REE Recovery Opportunities",
				Extent:  spatial.ContiguousUS.Name,
				Layers:  []Layer{combined},
			},
		},
	}
}

var builtins = map[string]func() *Definition{
	"critical-minerals": CriticalMinerals,
	"inventory":         Inventory,
	"contamination":     Contamination,
	"ree":               REE,
}

// Builtin returns a fresh copy of a built-in definition with defaults applied.
func Builtin(name string) (*Definition, error) {
	f, ok := builtins[strings.TrimSpace(name)]
	if !ok {
		return nil, fmt.Errorf("unknown map definition %q (known: %s)", name, strings.Join(BuiltinNames(), ", "))
	}

	def := f()
	def.applyDefaults(nil)

	return def, nil
}

// BuiltinNames lists the built-in definitions, sorted.
func BuiltinNames() []string {
	return slices.Sorted(maps.Keys(builtins))
}
