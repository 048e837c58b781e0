// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package sites

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jcodagnone/mineralmap/spatial"
)

const (
	maxNameRunes  = 500
	maxNotesRunes = 1000
	maxGradeRunes = 100
)

// parseCoordinate parses a decimal degree, tolerating surrounding spaces.
func parseCoordinate(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}

	return strconv.ParseFloat(s, 64)
}

// validateSite checks that a site can be styled and projected.
func validateSite(s *Site) (ErrorType, error) {
	if strings.TrimSpace(s.Name) == "" {
		return ErrorTypeInvalidField, fmt.Errorf("name cannot be empty")
	}

	if utf8.RuneCountInString(s.Name) > maxNameRunes {
		return ErrorTypeInvalidField, fmt.Errorf("name too long (max %d characters)", maxNameRunes)
	}

	if utf8.RuneCountInString(s.Notes) > maxNotesRunes {
		return ErrorTypeInvalidField, fmt.Errorf("notes too long (max %d characters)", maxNotesRunes)
	}

	if utf8.RuneCountInString(s.Grade) > maxGradeRunes {
		return ErrorTypeInvalidField, fmt.Errorf("grade too long (max %d characters)", maxGradeRunes)
	}

	if err := spatial.ValidateLatLon(s.Point.Lat, s.Point.Lng); err != nil {
		return ErrorTypeInvalidCoordinate, err
	}

	return ErrorTypeUnknown, nil
}

// sanitizeField trims spaces and collapses inner runs of whitespace.
func sanitizeField(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
