// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package style

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"
)

// Default colors and sizes.
const (
	MultiElementGray   = "#6C757D"
	ContaminationRed   = "#DC2F02"
	DefaultMarkerSize  = 12
	DefaultMineralGray = "#95a5a6"
)

// Elements colors single critical elements.
var Elements = Palette{
	Name: "elements",
	Colors: map[string]string{
		"Tungsten":      "#E63946",
		"Antimony":      "#F4A261",
		"Graphite":      "#2A2A2A",
		"Chromium":      "#457B9D",
		"Manganese":     "#9B2335",
		"Gallium":       "#7209B7",
		"Germanium":     "#3A0CA3",
		"Niobium":       "#4361EE",
		"Tantalum":      "#4CC9F0",
		"Tin":           "#90BE6D",
		"Scandium":      "#F72585",
		"Yttrium":       "#B5179E",
		"Magnesium":     "#06D6A0",
		"Fluorine":      "#FFD166",
		"Bismuth":       "#118AB2",
		"Arsenic":       "#DC2F02",
		"Multi-element": MultiElementGray,
	},
	Default: MultiElementGray,
}

// Commodities colors element groups as they are written in deposit
// inventories ("Tungsten/Antimony").
var Commodities = Palette{
	Name: "commodities",
	Colors: map[string]string{
		"Tungsten":            "#8e44ad",
		"Tungsten/Antimony":   "#9b59b6",
		"Tungsten/Molybdenum": "#6c3483",
		"Antimony":            "#e74c3c",
		"Graphite":            "#34495e",
		"Chromium/PGM":        "#16a085",
		"Manganese":           "#1abc9c",
		"Gallium/Germanium":   "#f39c12",
		"Niobium/REE":         "#d35400",
		"Scandium/REE":        "#e67e22",
		"Tantalum":            "#c0392b",
		"Tin/Tungsten":        "#8e44ad",
		"Tin":                 "#95a5a6",
		"Tantalum/Tin":        "#7f8c8d",
		"Fluorine":            "#3498db",
		"Fluorine/Beryllium":  "#2980b9",
	},
	Default: DefaultMineralGray,
}

// Contaminants colors contaminant groups of remediation sites.
var Contaminants = Palette{
	Name: "contaminants",
	Colors: map[string]string{
		"As/Pb/Zn":      "#e74c3c",
		"As/Cu":         "#c0392b",
		"As/Cu/Zn":      "#a93226",
		"Pb/Zn":         "#922b21",
		"Arsenic":       "#e74c3c",
		"Lead":          "#922b21",
		"Coal Ash":      "#e67e22",
		"Mine Tailings": "#16a085",
	},
	Default: "#e74c3c",
}

// REE colors the sources of a rare earth recovery survey: primary
// deposits and the waste streams REE can be recovered from.
var REE = Palette{
	Name: "ree",
	Colors: map[string]string{
		"REE":           "#e74c3c",
		"Coal Ash":      "#e67e22",
		"Mine Tailings": "#16a085",
	},
	Default: DefaultMineralGray,
}

// Superfund paints every site in the same red.
var Superfund = Palette{
	Name:    "superfund",
	Default: ContaminationRed,
}

// StatusSizes sizes markers by operational status.
var StatusSizes = SizeTable{
	Name: "status",
	Sizes: map[string]int{
		"Operating":   18,
		"Development": 15,
	},
	Default: DefaultMarkerSize,
}

// DetailedStatusSizes grades every lifecycle stage, remediation largest.
var DetailedStatusSizes = SizeTable{
	Name: "status-detailed",
	Sizes: map[string]int{
		"Operating":   16,
		"Development": 14,
		"Exploration": 12,
		"Historic":    10,
		"Remediation": 18,
	},
	Default: 10,
}

// RemediationSizes grades like DetailedStatusSizes but defaults to the
// remediation size, for layers made only of contamination sites.
var RemediationSizes = SizeTable{
	Name:    "remediation",
	Sizes:   DetailedStatusSizes.Sizes,
	Default: 18,
}

// ContaminationSizes enlarges National Priorities List sites.
var ContaminationSizes = SizeTable{
	Name: "contamination",
	Sizes: map[string]int{
		"Superfund":        16,
		"Superfund NPL":    16,
		"Active Superfund": 16,
		"NPL":              16,
		"Remediation":      18,
	},
	Default: DefaultMarkerSize,
}

// REESizes enlarges defined resources, spill sites and high grade tailings.
var REESizes = SizeTable{
	Name: "ree",
	Sizes: map[string]int{
		"Operating": 18,
		"Resource":  18,
		"Disaster":  20,
		"Superfund": 20,
		"High":      16,
	},
	Default: DefaultMarkerSize,
}

// StatusShapes shapes markers by status.
var StatusShapes = ShapeTable{
	Shapes: map[string]Shape{
		"Operating":   Circle,
		"Development": Diamond,
		"Exploration": Triangle,
		"Historic":    Square,
		"Resource":    Hex,
	},
	Default: Circle,
}

var colorPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidColor reports whether c is a #rgb or #rrggbb hex color.
func ValidColor(c string) bool {
	return colorPattern.MatchString(c)
}

// Fixed returns a palette painting every label in one color.
func Fixed(color string) Palette {
	return Palette{Name: color, Default: color}
}

var (
	palettes   = map[string]Palette{}
	sizeTables = map[string]SizeTable{}
)

func init() {
	for _, p := range []Palette{Elements, Commodities, Contaminants, REE, Superfund} {
		palettes[p.Name] = p
	}

	for _, t := range []SizeTable{StatusSizes, DetailedStatusSizes, RemediationSizes, ContaminationSizes, REESizes} {
		sizeTables[t.Name] = t
	}
}

// PaletteByName returns a built-in palette.
func PaletteByName(name string) (Palette, error) {
	p, ok := palettes[strings.TrimSpace(name)]
	if !ok {
		return Palette{}, fmt.Errorf("unknown palette %q (known: %s)", name, strings.Join(PaletteNames(), ", "))
	}

	return p, nil
}

// PaletteNames lists the built-in palettes, sorted.
func PaletteNames() []string {
	return slices.Sorted(maps.Keys(palettes))
}

// SizeTableByName returns a built-in size table.
func SizeTableByName(name string) (SizeTable, error) {
	t, ok := sizeTables[strings.TrimSpace(name)]
	if !ok {
		return SizeTable{}, fmt.Errorf("unknown size table %q (known: %s)", name, strings.Join(SizeTableNames(), ", "))
	}

	return t, nil
}

// SizeTableNames lists the built-in size tables, sorted.
func SizeTableNames() []string {
	return slices.Sorted(maps.Keys(sizeTables))
}

var elementNames = map[string]string{
	"CE": "Cerium",
	"LA": "Lanthanum",
	"ND": "Neodymium",
	"Y":  "Yttrium",
	"PR": "Praseodymium",
	"DY": "Dysprosium",
	"SM": "Samarium",
	"GD": "Gadolinium",
	"ER": "Erbium",
	"EU": "Europium",
	"CU": "Copper",
	"AU": "Gold",
	"MO": "Molybdenum",
	"AG": "Silver",
	"AS": "Arsenic",
	"TE": "Tellurium",
	"SE": "Selenium",
	"RE": "Rhenium",
}

// ElementLabel expands an assay column code ("CE_PPM", "Nd") into a
// display label such as "Cerium (CE)". Unknown codes are returned as is.
func ElementLabel(code string) string {
	c := strings.ToUpper(strings.TrimSuffix(strings.TrimSpace(code), "_PPM"))
	if c == "REO" {
		return "Total REE Oxides (REO)"
	}

	if name, ok := elementNames[c]; ok {
		return name + " (" + c + ")"
	}

	return code
}
