// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package sites

import (
	"fmt"
	"strings"

	"github.com/jcodagnone/mineralmap/spatial"
	"github.com/jcodagnone/mineralmap/utils"
)

// Filter selects sites.
type Filter func(Site) bool

// All accepts every site.
func All(Site) bool { return true }

// Minerals accepts mineral occurrences.
func Minerals(s Site) bool { return !s.IsContamination() }

// Contamination accepts contamination and remediation sites.
func Contamination(s Site) bool { return s.IsContamination() }

// Within accepts sites inside the extent.
func Within(e spatial.Extent) Filter {
	return func(s Site) bool { return e.Contains(s.Point) }
}

// KindIs matches the site kind, ignoring case and accents.
func KindIs(kind string) Filter {
	kind = utils.LowerASCIIFolding(kind)

	return func(s Site) bool { return utils.LowerASCIIFolding(s.Kind) == kind }
}

// HasCategory matches any of the site categories, ignoring case and accents.
func HasCategory(category string) Filter {
	category = utils.LowerASCIIFolding(category)

	return func(s Site) bool {
		for _, c := range s.Categories() {
			if utils.LowerASCIIFolding(c) == category {
				return true
			}
		}

		return false
	}
}

// StateIs matches the site state, ignoring case and accents.
func StateIs(state string) Filter {
	state = utils.LowerASCIIFolding(state)

	return func(s Site) bool { return utils.LowerASCIIFolding(s.State) == state }
}

// StatusIs matches the site status, ignoring case and accents.
func StatusIs(status string) Filter {
	status = utils.LowerASCIIFolding(status)

	return func(s Site) bool { return utils.LowerASCIIFolding(s.Status) == status }
}

// And accepts sites accepted by every filter.
func And(filters ...Filter) Filter {
	return func(s Site) bool {
		for _, f := range filters {
			if !f(s) {
				return false
			}
		}

		return true
	}
}

// Or accepts sites accepted by any filter.
func Or(filters ...Filter) Filter {
	return func(s Site) bool {
		for _, f := range filters {
			if f(s) {
				return true
			}
		}

		return false
	}
}

// Not accepts the sites f rejects.
func Not(f Filter) Filter {
	return func(s Site) bool { return !f(s) }
}

var valueFilters = map[string]func(string) Filter{
	"kind":     KindIs,
	"category": HasCategory,
	"state":    StateIs,
	"status":   StatusIs,
}

// ParseFilter parses a filter expression: terms separated by ";" that must
// all match. Terms are "all", "minerals", "contamination", "kind:<v>",
// "category:<v>", "state:<v>", "status:<v>" and "extent:<name>". A value
// may list alternatives separated by "|" ("extent:us|alaska") and a term
// prefixed with "!" is negated.
func ParseFilter(expr string) (Filter, error) {
	var filters []Filter

	for _, term := range strings.Split(expr, ";") {
		term = strings.TrimSpace(term)

		f, err := parseTerm(term)
		if err != nil {
			return nil, err
		}

		filters = append(filters, f)
	}

	if len(filters) == 1 {
		return filters[0], nil
	}

	return And(filters...), nil
}

func parseTerm(term string) (Filter, error) {
	body, negated := strings.CutPrefix(term, "!")

	key, value, hasValue := strings.Cut(body, ":")
	key = strings.ToLower(strings.TrimSpace(key))
	value = strings.TrimSpace(value)

	if hasValue && value == "" {
		return nil, fmt.Errorf("filter term %q has no value", term)
	}

	var f Filter

	switch {
	case !hasValue && (key == "" || key == "all"):
		if negated {
			return nil, fmt.Errorf("filter term %q matches nothing", term)
		}

		f = All
	case !hasValue && key == "minerals":
		f = Minerals
	case !hasValue && key == "contamination":
		f = Contamination
	case hasValue && (valueFilters[key] != nil || key == "extent"):
		var alternatives []Filter

		for _, v := range strings.Split(value, "|") {
			v = strings.TrimSpace(v)
			if v == "" {
				return nil, fmt.Errorf("filter term %q has an empty alternative", term)
			}

			if key != "extent" {
				alternatives = append(alternatives, valueFilters[key](v))

				continue
			}

			e, err := spatial.ExtentByName(v)
			if err != nil {
				return nil, fmt.Errorf("filter term %q: %w", term, err)
			}

			alternatives = append(alternatives, Within(e))
		}

		f = alternatives[0]
		if len(alternatives) > 1 {
			f = Or(alternatives...)
		}
	default:
		return nil, fmt.Errorf("unknown filter term %q", term)
	}

	if negated {
		return Not(f), nil
	}

	return f, nil
}

// Select returns the sites accepted by f, in input order.
func Select(sites []Site, f Filter) []Site {
	var ret []Site

	for _, s := range sites {
		if f(s) {
			ret = append(ret, s)
		}
	}

	return ret
}

// Partition splits sites into mineral occurrences and contamination sites.
func Partition(sites []Site) ([]Site, []Site) {
	var minerals, contamination []Site

	for _, s := range sites {
		if s.IsContamination() {
			contamination = append(contamination, s)
		} else {
			minerals = append(minerals, s)
		}
	}

	return minerals, contamination
}
