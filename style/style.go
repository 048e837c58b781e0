// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

// Package style derives the visual encoding of a site (color, marker size
// and marker shape) from its categorical fields.
//
// Every lookup is an exact, case-sensitive match against a static table
// and unknown labels resolve to the table default. Resolution never fails,
// so incomplete datasets still render.
package style

import (
	"strings"
)

// Shape is a marker shape understood by the renderer.
type Shape string

// Marker shapes.
const (
	Circle   Shape = "circle"
	Square   Shape = "square"
	Diamond  Shape = "diamond"
	Triangle Shape = "triangle"
	Hex      Shape = "hex"
	Cross    Shape = "x"
)

// Palette maps a category label to a CSS color.
type Palette struct {
	Name    string            `json:"name"`
	Colors  map[string]string `json:"colors"`
	Default string            `json:"default"`
}

// Color returns the color of label, or the palette default.
func (p Palette) Color(label string) string {
	if c, ok := p.Colors[label]; ok {
		return c
	}

	return p.Default
}

// SizeTable maps a status label to a marker size in screen pixels.
type SizeTable struct {
	Name    string         `json:"name"`
	Sizes   map[string]int `json:"sizes"`
	Default int            `json:"default"`
}

// Size returns the size of status, or the table default.
func (t SizeTable) Size(status string) int {
	if s, ok := t.Sizes[status]; ok {
		return s
	}

	return t.Default
}

// ShapeTable maps a status label to a marker shape.
type ShapeTable struct {
	Shapes  map[string]Shape `json:"shapes"`
	Default Shape            `json:"default"`
}

// Shape returns the shape of status, or the table default (Circle when unset).
func (t ShapeTable) Shape(status string) Shape {
	if s, ok := t.Shapes[status]; ok {
		return s
	}

	if t.Default == "" {
		return Circle
	}

	return t.Default
}

// PrimaryCategory returns the first token of a comma separated category
// list, trimmed. The remaining tokens do not take part in styling.
func PrimaryCategory(category string) string {
	first, _, _ := strings.Cut(category, ",")

	return strings.TrimSpace(first)
}

// Style is the resolved visual encoding of one site.
type Style struct {
	Color string `json:"color"`
	Size  int    `json:"size"`
	Shape Shape  `json:"shape"`
}

// Resolver resolves a category and a status into a Style.
type Resolver struct {
	Palette Palette
	Sizes   SizeTable
	Shapes  ShapeTable
}

// Resolve colors by the primary category and sizes and shapes by status.
func (r Resolver) Resolve(category, status string) Style {
	return Style{
		Color: r.Palette.Color(PrimaryCategory(category)),
		Size:  r.Sizes.Size(status),
		Shape: r.Shapes.Shape(status),
	}
}
