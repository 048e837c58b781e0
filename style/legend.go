// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package style

import (
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/jcodagnone/mineralmap/utils"
)

// MaxLabelRunes is the longest legend label shown before truncation.
const MaxLabelRunes = 35

// Entry is one row of a legend.
type Entry struct {
	// Label is the display text, truncated to MaxLabelRunes.
	Label string `json:"label"`
	// Key is the full category or status the entry stands for.
	Key    string `json:"key"`
	Color  string `json:"color"`
	Size   int    `json:"size"`
	Shape  Shape  `json:"shape"`
	Swatch string `json:"-"`
}

// Legend is a titled, ordered list of entries.
type Legend struct {
	Title string `json:"title"`
	// Status is set when entries stand for statuses rather than categories.
	Status bool `json:"status,omitempty"`
	// Continued is set when the legend carries on the one drawn just
	// before it under the same title.
	Continued bool    `json:"continued,omitempty"`
	Entries   []Entry `json:"entries"`
}

// LegendFor builds a category legend in the given order. Blank and
// repeated labels are skipped. Entries use the default marker size and
// element codes are spelled out.
func LegendFor(title string, r Resolver, labels []string) Legend {
	ret := Legend{Title: title}
	seen := make(map[string]bool, len(labels))

	for _, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" || seen[label] {
			continue
		}

		seen[label] = true
		e := newEntry(label, r.Palette.Color(PrimaryCategory(label)), r.Sizes.Default, Circle)
		e.Label = utils.Ellipsis(ElementLabel(label), MaxLabelRunes)
		ret.Entries = append(ret.Entries, e)
	}

	return ret
}

// StatusLegend builds a legend explaining marker size and shape by status.
func StatusLegend(title string, r Resolver, statuses []string) Legend {
	ret := Legend{Title: title, Status: true}
	seen := make(map[string]bool, len(statuses))

	for _, status := range statuses {
		if status == "" || seen[status] {
			continue
		}

		seen[status] = true
		ret.Entries = append(ret.Entries,
			newEntry(status, "#ffffff", r.Sizes.Size(status), r.Shapes.Shape(status)))
	}

	return ret
}

func newEntry(key, color string, size int, shape Shape) Entry {
	return Entry{
		Label:  utils.Ellipsis(key, MaxLabelRunes),
		Key:    key,
		Color:  color,
		Size:   size,
		Shape:  shape,
		Swatch: Swatch(shape, color, size),
	}
}

// Swatch draws a marker as a standalone inline SVG element.
func Swatch(shape Shape, color string, size int) string {
	if size < 4 {
		size = 4
	}

	side := size + 2
	c := side / 2
	r := size / 2
	fill := "fill:" + color + ";stroke:black;stroke-width:1"

	sb := strings.Builder{}
	canvas := svg.New(&sb)
	canvas.Start(side, side, `class="swatch"`)

	switch shape {
	case Square:
		canvas.Rect(c-r, c-r, 2*r, 2*r, fill)
	case Diamond:
		canvas.Polygon([]int{c, c + r, c, c - r}, []int{c - r, c, c + r, c}, fill)
	case Triangle:
		canvas.Polygon([]int{c, c + r, c - r}, []int{c - r, c + r, c + r}, fill)
	case Hex:
		xs, ys := make([]int, 6), make([]int, 6)
		for i := range 6 {
			a := math.Pi / 3 * float64(i)
			xs[i] = c + int(math.Round(float64(r)*math.Cos(a)))
			ys[i] = c + int(math.Round(float64(r)*math.Sin(a)))
		}

		canvas.Polygon(xs, ys, fill)
	case Cross:
		stroke := "stroke:" + color + ";stroke-width:3"
		canvas.Line(c-r, c-r, c+r, c+r, stroke)
		canvas.Line(c-r, c+r, c+r, c-r, stroke)
	default:
		canvas.Circle(c, c, r, fill)
	}

	canvas.End()

	// inline SVG in HTML takes no XML prolog
	out := sb.String()
	if i := strings.Index(out, "<svg"); i > 0 {
		out = out[i:]
	}

	return strings.TrimSpace(out)
}
