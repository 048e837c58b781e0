// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package sites

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"
)

type geoJSONCollection struct {
	Type     string           `json:"type"`
	Features []geoJSONFeature `json:"features"`
}

type geoJSONFeature struct {
	Geometry *struct {
		Type        string    `json:"type"`
		Coordinates []float64 `json:"coordinates"`
	} `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

// LoadGeoJSON reads sites from a GeoJSON FeatureCollection of points.
func LoadGeoJSON(path string) ([]Site, []*RowError, error) {
	f, err := os.Open(path) // #nosec G304 - path is provided by the user
	if err != nil {
		return nil, nil, &LoadError{Type: ErrorTypeMissingFile, Path: path, Message: "opening file", Err: err}
	}
	defer f.Close()

	return ReadGeoJSON(f, path)
}

// ReadGeoJSON reads sites from GeoJSON data. Feature properties use the
// same names as CSV headers; latitude and longitude come from the point
// geometry. Non-point features are rejected.
func ReadGeoJSON(r io.Reader, source string) ([]Site, []*RowError, error) {
	var fc geoJSONCollection
	if err := json.NewDecoder(r).Decode(&fc); err != nil {
		return nil, nil, &LoadError{Type: ErrorTypeMalformed, Path: source, Message: "parsing GeoJSON", Err: err}
	}

	if fc.Type != "FeatureCollection" {
		return nil, nil, &LoadError{
			Type:    ErrorTypeMalformed,
			Path:    source,
			Message: fmt.Sprintf("expected a FeatureCollection, got %q", fc.Type),
		}
	}

	var (
		ret      []Site
		rejected []*RowError
	)

	for i, feature := range fc.Features {
		line := i + 1

		if feature.Geometry == nil || feature.Geometry.Type != "Point" || len(feature.Geometry.Coordinates) < 2 {
			rejected = append(rejected, &RowError{
				Type: ErrorTypeInvalidCoordinate, Path: source, Line: line, Reason: "feature is not a point",
			})

			continue
		}

		props := make(map[column]string, len(feature.Properties))
		for _, k := range slices.Sorted(maps.Keys(feature.Properties)) {
			if c, ok := headerAliases[foldHeader(k)]; ok {
				if _, seen := props[c]; !seen {
					props[c] = sanitizeField(propertyString(feature.Properties[k]))
				}
			}
		}

		lon, lat := feature.Geometry.Coordinates[0], feature.Geometry.Coordinates[1]
		props[colLat] = strconv.FormatFloat(lat, 'f', -1, 64)
		props[colLon] = strconv.FormatFloat(lon, 'f', -1, 64)

		site, rowErr := newSite(func(c column) string { return props[c] }, source, line)
		if rowErr != nil {
			rejected = append(rejected, rowErr)

			continue
		}

		ret = append(ret, site)
	}

	return ret, rejected, nil
}

func propertyString(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case []any:
		parts := make([]string, 0, len(v))
		for _, e := range v {
			parts = append(parts, propertyString(e))
		}

		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(v)
	}
}
