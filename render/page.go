// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

// Package render turns a map definition and a set of sites into a
// self-contained HTML page. It is the only package that knows about the
// browser side mapping library.
package render

import (
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/jcodagnone/mineralmap/mapdef"
	"github.com/jcodagnone/mineralmap/observability"
	"github.com/jcodagnone/mineralmap/sites"
	"github.com/jcodagnone/mineralmap/spatial"
	"github.com/jcodagnone/mineralmap/style"
	"github.com/jcodagnone/mineralmap/utils"
)

// Feature is a styled, projected site.
type Feature struct {
	X        float64     `json:"x"`
	Y        float64     `json:"y"`
	Name     string      `json:"name"`
	Category string      `json:"category"`
	Primary  string      `json:"primary"`
	Kind     string      `json:"kind,omitempty"`
	Status   string      `json:"status,omitempty"`
	Notes    string      `json:"notes,omitempty"`
	State    string      `json:"state,omitempty"`
	Grade    string      `json:"grade,omitempty"`
	Style    style.Style `json:"style"`
	// Siblings names the other sites drawn at the same place.
	Siblings []string `json:"siblings,omitempty"`
}

// Layer is a group of features sharing a resolver and tooltip captions.
type Layer struct {
	Name     string         `json:"name"`
	Alpha    float64        `json:"alpha"`
	Labels   mapdef.Labels  `json:"labels"`
	Features []Feature      `json:"features"`
	Legends  []style.Legend `json:"legends,omitempty"`
}

// Tab is one map panel.
type Tab struct {
	ID      string         `json:"id"`
	Title   string         `json:"title"`
	Heading string         `json:"heading,omitempty"`
	Bounds  spatial.Bounds `json:"bounds"`
	Layers  []Layer        `json:"layers"`
}

// Features counts the features of every layer.
func (t Tab) Features() int {
	n := 0
	for _, l := range t.Layers {
		n += len(l.Features)
	}

	return n
}

// Rejection is a site left out of the page.
type Rejection struct {
	Site   string `json:"site"`
	Source string `json:"source,omitempty"`
	Line   int    `json:"line,omitempty"`
	Reason string `json:"reason"`
}

// Page is everything the HTML template needs.
type Page struct {
	Title       string      `json:"title"`
	TileURL     string      `json:"tile_url"`
	Attribution string      `json:"attribution"`
	Width       int         `json:"width"`
	Height      int         `json:"height"`
	InfoHTML    string      `json:"-"`
	Tabs        []Tab       `json:"tabs"`
	Rejected    []Rejection `json:"rejected,omitempty"`
	Sites       int         `json:"sites"`
	GeneratedAt time.Time   `json:"generated_at"`
}

// Tab returns the tab with the given ID or title.
func (p *Page) Tab(key string) (*Tab, bool) {
	for i := range p.Tabs {
		if p.Tabs[i].ID == key || p.Tabs[i].Title == key {
			return &p.Tabs[i], true
		}
	}

	return nil, false
}

// Builder builds pages. The zero value is not usable; use NewBuilder.
type Builder struct {
	clock   clockwork.Clock
	metrics *observability.Metrics
}

// NewBuilder returns a Builder stamping pages with the wall clock.
func NewBuilder() *Builder {
	return &Builder{clock: clockwork.NewRealClock()}
}

// WithClock sets the clock used for the generation timestamp.
func (b *Builder) WithClock(c clockwork.Clock) *Builder {
	b.clock = c

	return b
}

// WithMetrics records built features and durations.
func (b *Builder) WithMetrics(m *observability.Metrics) *Builder {
	b.metrics = m

	return b
}

// Build lays out the sites as the definition describes. Each layer keeps
// the sites its filter selects, in input order. Sites that cannot be
// projected are reported in Page.Rejected instead of failing the page.
func (b *Builder) Build(def *mapdef.Definition, all []sites.Site) (*Page, error) {
	if len(all) == 0 {
		return nil, sites.ErrNoSites
	}

	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("invalid map definition %s: %w", def.Name, err)
	}

	start := b.clock.Now()

	page := &Page{
		Title:       def.Title,
		TileURL:     def.TileURL,
		Attribution: def.Attribution,
		Width:       def.Width,
		Height:      def.Height,
		InfoHTML:    def.InfoHTML,
		Sites:       len(all),
		GeneratedAt: start,
	}

	rejected := make(map[int]bool)

	for i, t := range def.Tabs {
		tab, err := b.buildTab(def, t, all, rejected, page)
		if err != nil {
			return nil, fmt.Errorf("tab %q: %w", t.Title, err)
		}

		tab.ID = fmt.Sprintf("tab-%d", i+1)
		page.Tabs = append(page.Tabs, tab)

		if b.metrics != nil {
			b.metrics.FeaturesRendered.WithLabelValues(tab.Title).Add(float64(tab.Features()))
		}
	}

	if b.metrics != nil {
		b.metrics.RenderDuration.Observe(b.clock.Since(start).Seconds())
	}

	return page, nil
}

func (b *Builder) buildTab(
	def *mapdef.Definition, t mapdef.Tab, all []sites.Site, rejected map[int]bool, page *Page,
) (Tab, error) {
	extent, err := t.ExtentOf()
	if err != nil {
		return Tab{}, err
	}

	bounds, err := extent.Projected()
	if err != nil {
		return Tab{}, err
	}

	bounds.Min.X -= t.PadX
	bounds.Min.Y -= t.PadY
	bounds.Max.X += t.PadX
	bounds.Max.Y += t.PadY

	tab := Tab{Title: t.Title, Heading: t.Heading, Bounds: bounds}
	lastTitle := ""

	for _, l := range t.Layers {
		resolver, err := l.Resolver()
		if err != nil {
			return Tab{}, err
		}

		selector, err := l.Selector()
		if err != nil {
			return Tab{}, err
		}

		layer := Layer{Name: l.Name, Alpha: l.Opacity(), Labels: l.Labels, Features: []Feature{}}

		var selected []sites.Site

		for i, s := range all {
			if !selector(s) {
				continue
			}

			xy, err := s.Point.Project()
			if err != nil {
				if !rejected[i] {
					rejected[i] = true
					page.Rejected = append(page.Rejected, rejection(s, err))
				}

				continue
			}

			selected = append(selected, s)
			layer.Features = append(layer.Features, Feature{
				X:        xy.X,
				Y:        xy.Y,
				Name:     s.Name,
				Category: s.Category,
				Primary:  s.PrimaryCategory(),
				Kind:     s.Kind,
				Status:   s.Status,
				Notes:    s.Notes,
				State:    s.State,
				Grade:    s.Grade,
				Style:    resolver.Resolve(s.Category, s.Status),
			})
		}

		if def.ClusterMeters > 0 {
			for i, siblings := range sites.Siblings(selected, def.ClusterMeters) {
				for _, j := range siblings {
					layer.Features[i].Siblings = append(layer.Features[i].Siblings,
						selected[j].Name+" ("+selected[j].Category+")")
				}
			}
		}

		layer.Legends = legendsFor(l, resolver, layer.Features)

		// Layers splitting one legend share its heading.
		for i := range layer.Legends {
			layer.Legends[i].Continued = layer.Legends[i].Title == lastTitle
			lastTitle = layer.Legends[i].Title
		}

		tab.Layers = append(tab.Layers, layer)
	}

	return tab, nil
}

// legendsFor returns the category legend and, when asked for, the status
// legend of a layer. The category legend uses the declared order; without
// one, a titled layer lists the primary categories present, in order of
// appearance. Statuses are listed in order of appearance. Entries named in
// the layer's legend labels are renamed.
func legendsFor(l mapdef.Layer, r style.Resolver, features []Feature) []style.Legend {
	var ret []style.Legend

	labels := l.Legend
	if len(labels) == 0 && l.LegendTitle != "" {
		for _, f := range features {
			labels = append(labels, f.Primary)
		}
	}

	if len(labels) > 0 {
		title := l.LegendTitle
		if title == "" {
			title = l.Name
		}

		ret = append(ret, style.LegendFor(title, r, labels))
	}

	if l.StatusLegend != "" {
		statuses := make([]string, 0, len(features))
		for _, f := range features {
			statuses = append(statuses, f.Status)
		}

		if legend := style.StatusLegend(l.StatusLegend, r, statuses); len(legend.Entries) > 0 {
			ret = append(ret, legend)
		}
	}

	for _, legend := range ret {
		for i, e := range legend.Entries {
			if label, ok := l.LegendLabels[e.Key]; ok {
				legend.Entries[i].Label = utils.Ellipsis(label, style.MaxLabelRunes)
			}
		}
	}

	return ret
}

func rejection(s sites.Site, err error) Rejection {
	var coordErr *spatial.CoordinateError
	reason := err.Error()

	if errors.As(err, &coordErr) {
		reason = coordErr.Reason
	}

	return Rejection{Site: s.Name, Source: s.Source, Line: s.Line, Reason: reason}
}

// BuildResult builds a page from loaded files. Rows the loader rejected are
// listed in Page.Rejected ahead of the sites that could not be projected.
func (b *Builder) BuildResult(def *mapdef.Definition, res *sites.Result) (*Page, error) {
	page, err := b.Build(def, res.Sites)
	if err != nil {
		return nil, err
	}

	rejected := make([]Rejection, 0, len(res.Rejected)+len(page.Rejected))
	for _, r := range res.Rejected {
		reason := r.Reason
		if r.Err != nil {
			reason += ": " + r.Err.Error()
		}

		rejected = append(rejected, Rejection{Source: r.Path, Line: r.Line, Reason: reason})
	}

	page.Rejected = append(rejected, page.Rejected...)

	return page, nil
}

// Build lays out the sites with a wall clock Builder.
func Build(def *mapdef.Definition, all []sites.Site) (*Page, error) {
	return NewBuilder().Build(def, all)
}
