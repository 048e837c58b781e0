// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package sites

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jcodagnone/mineralmap/utils"
)

type column int

const (
	colName column = iota
	colLat
	colLon
	colCategory
	colKind
	colStatus
	colNotes
	colState
	colGrade
	numColumns
)

var columnNames = [numColumns]string{"name", "latitude", "longitude", "category", "kind", "status", "notes", "state", "grade"}

// headerAliases maps folded header names to columns. Inventories name the
// same concept differently ("Mine Name", "Deposit_Type", "Contaminants").
var headerAliases = map[string]column{
	"name":                   colName,
	"mine name":              colName,
	"site":                   colName,
	"site name":              colName,
	"deposit":                colName,
	"latitude":               colLat,
	"lat":                    colLat,
	"longitude":              colLon,
	"lon":                    colLon,
	"lng":                    colLon,
	"long":                   colLon,
	"element":                colCategory,
	"elements":               colCategory,
	"category":               colCategory,
	"contaminant":            colCategory,
	"contaminants":           colCategory,
	"commodity":              colCategory,
	"main product commodity": colCategory,
	"deposit type":           colKind,
	"type":                   colKind,
	"site type":              colKind,
	"kind":                   colKind,
	"status":                 colStatus,
	"notes":                  colNotes,
	"note":                   colNotes,
	"description":            colNotes,
	"state":                  colState,
	"state/region":           colState,
	"grade":                  colGrade,
	"ore grade":              colGrade,
	"ree content":            colGrade,
	"ree ppm":                colGrade,
	"resource":               colGrade,
}

// foldHeader normalizes a column header: accents, case, underscores and
// repeated spaces are ignored.
func foldHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.NewReplacer("_", " ", "-", " ").Replace(utils.LowerASCIIFolding(h))

	return strings.Join(strings.Fields(h), " ")
}

// mapColumns returns the record index of every known column, -1 when absent.
// The first header matching a column wins.
func mapColumns(header []string) [numColumns]int {
	var idx [numColumns]int
	for i := range idx {
		idx[i] = -1
	}

	for i, h := range header {
		if c, ok := headerAliases[foldHeader(h)]; ok && idx[c] == -1 {
			idx[c] = i
		}
	}

	return idx
}

// LoadCSV reads sites from a CSV file with a header row.
func LoadCSV(path string) ([]Site, []*RowError, error) {
	f, err := os.Open(path) // #nosec G304 - path is provided by the user
	if err != nil {
		return nil, nil, &LoadError{Type: ErrorTypeMissingFile, Path: path, Message: "opening file", Err: err}
	}
	defer f.Close()

	return ReadCSV(f, path)
}

// ReadCSV reads sites from CSV data. Name, latitude and longitude columns
// are required; the others default to empty. Rows that fail validation are
// returned as RowErrors and skipped.
func ReadCSV(r io.Reader, source string) ([]Site, []*RowError, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, &LoadError{Type: ErrorTypeMalformed, Path: source, Message: "empty file"}
	} else if err != nil {
		return nil, nil, &LoadError{Type: ErrorTypeMalformed, Path: source, Message: "reading header", Err: err}
	}

	idx := mapColumns(header)
	for _, c := range []column{colName, colLat, colLon} {
		if idx[c] == -1 {
			return nil, nil, &LoadError{
				Type:    ErrorTypeMissingColumn,
				Path:    source,
				Message: fmt.Sprintf("missing required column %q (header: %s)", columnNames[c], strings.Join(header, ",")),
			}
		}
	}

	var (
		ret      []Site
		rejected []*RowError
	)

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		line, _ := reader.FieldPos(0)

		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				rejected = append(rejected, &RowError{
					Type: ErrorTypeMalformed, Path: source, Line: parseErr.Line, Reason: "malformed row", Err: err,
				})

				continue
			}

			return nil, nil, &LoadError{Type: ErrorTypeMalformed, Path: source, Message: "reading rows", Err: err}
		}

		field := func(c column) string {
			if idx[c] == -1 || idx[c] >= len(record) {
				return ""
			}

			return sanitizeField(record[idx[c]])
		}

		site, rowErr := newSite(field, source, line)
		if rowErr != nil {
			rejected = append(rejected, rowErr)

			continue
		}

		ret = append(ret, site)
	}

	return ret, rejected, nil
}

// newSite builds and validates a site from a field accessor.
func newSite(field func(column) string, source string, line int) (Site, *RowError) {
	site := Site{
		Name:     field(colName),
		Category: field(colCategory),
		Kind:     field(colKind),
		Status:   field(colStatus),
		Notes:    field(colNotes),
		State:    field(colState),
		Grade:    field(colGrade),
		Source:   source,
		Line:     line,
	}

	lat, err := parseCoordinate(field(colLat))
	if err != nil {
		return Site{}, &RowError{
			Type: ErrorTypeInvalidCoordinate, Path: source, Line: line, Reason: "parsing latitude", Err: err,
		}
	}

	lon, err := parseCoordinate(field(colLon))
	if err != nil {
		return Site{}, &RowError{
			Type: ErrorTypeInvalidCoordinate, Path: source, Line: line, Reason: "parsing longitude", Err: err,
		}
	}

	site.Point.Lat, site.Point.Lng = lat, lon

	if typ, err := validateSite(&site); err != nil {
		return Site{}, &RowError{Type: typ, Path: source, Line: line, Reason: fmt.Sprintf("invalid site %q", site.Name), Err: err}
	}

	return site, nil
}
