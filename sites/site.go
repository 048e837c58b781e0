// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

// Package sites loads mineral deposit and contamination site records from
// local files and selects the subsets each map layer shows.
package sites

import (
	"strings"

	"github.com/jcodagnone/mineralmap/spatial"
	"github.com/jcodagnone/mineralmap/style"
	"github.com/jcodagnone/mineralmap/utils"
)

// Site is one mapped location. Names are not unique: the same deposit is
// often listed once per element.
type Site struct {
	Name string `json:"name"`
	// Category holds one or more comma separated labels (elements or
	// contaminants); the first one drives the color.
	Category string `json:"category"`
	// Kind is the deposit type or the site type ("Skarn", "Superfund").
	Kind   string `json:"kind,omitempty"`
	Status string `json:"status,omitempty"`
	Notes  string `json:"notes,omitempty"`
	State  string `json:"state,omitempty"`
	// Grade is a free text measure of the site's content, shown as is
	// ("7.98% REO", "591 ppm").
	Grade string        `json:"grade,omitempty"`
	Point spatial.Point `json:"point"`
	// Source is the file the record came from.
	Source string `json:"source,omitempty"`
	Line   int    `json:"-"`
}

// PrimaryCategory returns the label that styles the site.
func (s Site) PrimaryCategory() string {
	return style.PrimaryCategory(s.Category)
}

// Categories returns every category label of the site.
func (s Site) Categories() []string {
	return utils.SplitList(s.Category)
}

// IsContamination reports whether the site is a contamination or
// remediation site rather than a mineral occurrence.
func (s Site) IsContamination() bool {
	if strings.EqualFold(strings.TrimSpace(s.Kind), "Superfund") {
		return true
	}

	status := utils.LowerASCIIFolding(s.Status)
	for _, marker := range []string{"superfund", "cleanup", "remediation"} {
		if strings.Contains(status, marker) {
			return true
		}
	}

	return false
}
