// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

// Package mapdef describes the maps the tool renders: title, output file,
// tile source and the tabs and layers of the page.
package mapdef

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/jcodagnone/mineralmap/sites"
	"github.com/jcodagnone/mineralmap/spatial"
	"github.com/jcodagnone/mineralmap/style"
	"github.com/jcodagnone/mineralmap/utils/htmlutils"
)

// Tile sources.
const (
	OpenStreetMapTiles       = "https://tile.openstreetmap.org/{z}/{x}/{y}.png"
	OpenStreetMapAttribution = "© OpenStreetMap contributors"
	CartoLightTiles          = "https://cartodb-basemaps-a.global.ssl.fastly.net/light_all/{z}/{x}/{y}.png"
	CartoAttribution         = "© OpenStreetMap contributors © CARTO"
)

// Definition is a complete map page.
type Definition struct {
	// Base names a built-in definition whose values fill the unset fields.
	Base        string `koanf:"base" json:"base,omitempty"`
	Name        string `koanf:"name" json:"name"`
	Title       string `koanf:"title" json:"title"`
	Output      string `koanf:"output" json:"output"`
	TileURL     string `koanf:"tile_url" json:"tile_url"`
	Attribution string `koanf:"attribution" json:"attribution"`
	Width       int    `koanf:"width" json:"width"`
	Height      int    `koanf:"height" json:"height"`
	// InfoHTML is a static HTML snippet shown above the tabs.
	InfoHTML string `koanf:"info_html" json:"info_html,omitempty"`
	// ClusterMeters is the distance under which sites are listed together
	// in tooltips. Zero disables grouping.
	ClusterMeters float64 `koanf:"cluster_meters" json:"cluster_meters"`
	// Sample names the embedded sample set loaded by --sample.
	Sample string `koanf:"sample" json:"sample,omitempty"`
	Tabs   []Tab  `koanf:"tabs" json:"tabs"`
}

// Tab is one panel of the page, framed on a named extent.
type Tab struct {
	Title   string `koanf:"title" json:"title"`
	Heading string `koanf:"heading" json:"heading,omitempty"`
	Extent  string `koanf:"extent" json:"extent"`
	// PadX and PadY widen the initial view, in projected meters.
	PadX   float64 `koanf:"pad_x" json:"pad_x,omitempty"`
	PadY   float64 `koanf:"pad_y" json:"pad_y,omitempty"`
	Layers []Layer `koanf:"layers" json:"layers"`
}

// Layer draws the sites selected by Filter with one style resolver.
type Layer struct {
	Name    string `koanf:"name" json:"name"`
	Filter  string `koanf:"filter" json:"filter"`
	Palette string `koanf:"palette" json:"palette"`
	Sizes   string `koanf:"sizes" json:"sizes"`
	// Shape fixes the marker shape; markers follow the status when empty.
	Shape string `koanf:"shape" json:"shape,omitempty"`
	// Color fixes the marker color (#rrggbb) instead of the palette.
	Color string `koanf:"color" json:"color,omitempty"`
	// Alpha is the marker opacity; DefaultAlpha when unset.
	Alpha       *float64 `koanf:"alpha" json:"alpha,omitempty"`
	LegendTitle string   `koanf:"legend_title" json:"legend_title,omitempty"`
	Legend      []string `koanf:"legend" json:"legend,omitempty"`
	// LegendLabels renames legend entries, keyed by category or status.
	LegendLabels map[string]string `koanf:"legend_labels" json:"legend_labels,omitempty"`
	// StatusLegend titles a second legend explaining marker size and
	// shape by status. No such legend is drawn when empty.
	StatusLegend string `koanf:"status_legend" json:"status_legend,omitempty"`
	Labels       Labels `koanf:"labels" json:"labels"`
}

// Labels are the tooltip captions of a layer.
type Labels struct {
	Name     string `koanf:"name" json:"name"`
	Category string `koanf:"category" json:"category"`
	Kind     string `koanf:"kind" json:"kind"`
}

// DefaultAlpha is the marker opacity of layers that do not set one.
const DefaultAlpha = 0.8

// Opacity returns the marker opacity of the layer.
func (l Layer) Opacity() float64 {
	if l.Alpha == nil {
		return DefaultAlpha
	}

	return *l.Alpha
}

var defaultLabels = Labels{Name: "Name", Category: "Elements", Kind: "Type"}

var shapes = map[string]style.Shape{
	"":         "",
	"circle":   style.Circle,
	"square":   style.Square,
	"diamond":  style.Diamond,
	"triangle": style.Triangle,
	"hex":      style.Hex,
	"x":        style.Cross,
}

// Resolver builds the style resolver of the layer.
func (l Layer) Resolver() (style.Resolver, error) {
	palette, err := style.PaletteByName(l.Palette)
	if err != nil {
		return style.Resolver{}, err
	}

	sizes, err := style.SizeTableByName(l.Sizes)
	if err != nil {
		return style.Resolver{}, err
	}

	if l.Color != "" {
		palette = style.Fixed(l.Color)
	}

	shapeTable := style.StatusShapes
	if l.Shape != "" {
		shapeTable = style.ShapeTable{Default: style.Shape(l.Shape)}
	}

	return style.Resolver{Palette: palette, Sizes: sizes, Shapes: shapeTable}, nil
}

// Selector parses the layer filter.
func (l Layer) Selector() (sites.Filter, error) {
	return sites.ParseFilter(l.Filter)
}

// ExtentOf resolves the named extent of the tab.
func (t Tab) ExtentOf() (spatial.Extent, error) {
	return spatial.ExtentByName(t.Extent)
}

// ApplyDefaults fills the unset fields of a hand-built definition.
func (d *Definition) ApplyDefaults() {
	d.applyDefaults(nil)
}

// applyDefaults fills the fields left empty with the values of base.
func (d *Definition) applyDefaults(base *Definition) {
	if base == nil {
		base = &Definition{}
	}

	setString := func(dst *string, values ...string) {
		for _, v := range values {
			if *dst != "" {
				return
			}

			*dst = v
		}
	}

	setString(&d.Name, base.Name)
	setString(&d.Title, base.Title)
	setString(&d.Output, base.Output)

	if d.TileURL == "" {
		d.TileURL = base.TileURL
		setString(&d.Attribution, base.Attribution)
	}

	setString(&d.TileURL, OpenStreetMapTiles)

	switch d.TileURL {
	case OpenStreetMapTiles:
		setString(&d.Attribution, OpenStreetMapAttribution)
	case CartoLightTiles:
		setString(&d.Attribution, CartoAttribution)
	}

	setString(&d.InfoHTML, base.InfoHTML)

	if d.Width == 0 {
		d.Width = cmpOr(base.Width, 1200)
	}

	if d.Height == 0 {
		d.Height = cmpOr(base.Height, 650)
	}

	if d.ClusterMeters == 0 {
		d.ClusterMeters = base.ClusterMeters
	}

	setString(&d.Sample, base.Sample)

	if len(d.Tabs) == 0 {
		d.Tabs = append([]Tab(nil), base.Tabs...)
	}

	for i := range d.Tabs {
		tab := &d.Tabs[i]
		setString(&tab.Extent, spatial.ContiguousUS.Name)

		for j := range tab.Layers {
			layer := &tab.Layers[j]
			setString(&layer.Filter, "all")
			setString(&layer.Palette, style.Elements.Name)
			setString(&layer.Sizes, style.StatusSizes.Name)
			setString(&layer.Labels.Name, defaultLabels.Name)
			setString(&layer.Labels.Category, defaultLabels.Category)
			setString(&layer.Labels.Kind, defaultLabels.Kind)
			setString(&layer.Labels.Grade, defaultLabels.Grade)

			if layer.Alpha == nil {
				alpha := DefaultAlpha
				layer.Alpha = &alpha
			}
		}
	}
}

func cmpOr(values ...int) int {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}

	return 0
}

// Validate reports every problem of the definition at once.
func (d *Definition) Validate() error {
	var errs []error

	if strings.TrimSpace(d.Output) == "" {
		errs = append(errs, errors.New("output must not be empty"))
	}

	for _, p := range []string{"{z}", "{x}", "{y}"} {
		if !strings.Contains(d.TileURL, p) {
			errs = append(errs, fmt.Errorf("tile_url %q lacks the %s placeholder", d.TileURL, p))
		}
	}

	if d.Width <= 0 || d.Height <= 0 {
		errs = append(errs, fmt.Errorf("width and height must be positive (got %dx%d)", d.Width, d.Height))
	}

	if d.ClusterMeters < 0 {
		errs = append(errs, fmt.Errorf("cluster_meters must not be negative (got %v)", d.ClusterMeters))
	}

	if d.Sample != "" && !slices.Contains(sites.SampleNames(), d.Sample) {
		errs = append(errs, fmt.Errorf("unknown sample %q (known: %s)", d.Sample, strings.Join(sites.SampleNames(), ", ")))
	}

	if err := htmlutils.CheckFragment(d.InfoHTML); err != nil {
		errs = append(errs, fmt.Errorf("info_html: %w", err))
	}

	if len(d.Tabs) == 0 {
		errs = append(errs, errors.New("at least one tab is required"))
	}

	titles := make(map[string]bool, len(d.Tabs))

	for i, tab := range d.Tabs {
		prefix := fmt.Sprintf("tab %d (%s)", i+1, tab.Title)

		if strings.TrimSpace(tab.Title) == "" {
			errs = append(errs, fmt.Errorf("%s: title must not be empty", prefix))
		} else if titles[tab.Title] {
			errs = append(errs, fmt.Errorf("%s: duplicate title", prefix))
		}

		titles[tab.Title] = true

		if _, err := tab.ExtentOf(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", prefix, err))
		}

		if len(tab.Layers) == 0 {
			errs = append(errs, fmt.Errorf("%s: at least one layer is required", prefix))
		}

		for j, layer := range tab.Layers {
			lprefix := fmt.Sprintf("%s layer %d (%s)", prefix, j+1, layer.Name)

			if _, err := layer.Resolver(); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", lprefix, err))
			}

			if _, err := layer.Selector(); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", lprefix, err))
			}

			if layer.Color != "" && !style.ValidColor(layer.Color) {
				errs = append(errs, fmt.Errorf("%s: color %q is not a #rrggbb color", lprefix, layer.Color))
			}

			if _, ok := shapes[layer.Shape]; !ok {
				errs = append(errs, fmt.Errorf("%s: unknown shape %q", lprefix, layer.Shape))
			}

			if alpha := layer.Opacity(); alpha < 0 || alpha > 1 {
				errs = append(errs, fmt.Errorf("%s: alpha must be between 0 and 1 (got %v)", lprefix, alpha))
			}
		}
	}

	return errors.Join(errs...)
}
