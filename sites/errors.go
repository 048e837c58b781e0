// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package sites

import (
	"errors"
	"fmt"
)

// ErrNoSites is returned when every input was skipped or empty.
var ErrNoSites = errors.New("no sites to render")

// ErrorType classifies loading failures.
type ErrorType int

const (
	// ErrorTypeUnknown is an unclassified failure.
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeMissingFile means the input could not be opened.
	ErrorTypeMissingFile
	// ErrorTypeMalformed means the input could not be parsed at all.
	ErrorTypeMalformed
	// ErrorTypeMissingColumn means a required column is absent.
	ErrorTypeMissingColumn
	// ErrorTypeUnsupportedFormat means the file extension is not known.
	ErrorTypeUnsupportedFormat
	// ErrorTypeInvalidCoordinate means a row carries unusable coordinates.
	ErrorTypeInvalidCoordinate
	// ErrorTypeInvalidField means a row has an empty or oversized field.
	ErrorTypeInvalidField
)

var errorTypeNames = map[ErrorType]string{
	ErrorTypeUnknown:           "unknown",
	ErrorTypeMissingFile:       "missing_file",
	ErrorTypeMalformed:         "malformed",
	ErrorTypeMissingColumn:     "missing_column",
	ErrorTypeUnsupportedFormat: "unsupported_format",
	ErrorTypeInvalidCoordinate: "invalid_coordinate",
	ErrorTypeInvalidField:      "invalid_field",
}

func (t ErrorType) String() string {
	if s, ok := errorTypeNames[t]; ok {
		return s
	}

	return fmt.Sprintf("ErrorType(%d)", int(t))
}

// LoadError is a failure that prevents a whole file from loading.
type LoadError struct {
	Type    ErrorType
	Path    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Message, e.Err)
	}

	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// RowError rejects a single record. Loading continues with the next row.
type RowError struct {
	Type ErrorType
	Path string
	// Line is 1-based and counts the header (CSV) or is the feature
	// index (GeoJSON).
	Line   int
	Reason string
	Err    error
}

func (e *RowError) Error() string {
	msg := fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// errorType extracts the ErrorType of a LoadError or RowError.
func errorType(err error) ErrorType {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Type
	}

	var rowErr *RowError
	if errors.As(err, &rowErr) {
		return rowErr.Type
	}

	return ErrorTypeUnknown
}

// IsMissingFile reports whether err is due to an input that could not be opened.
func IsMissingFile(err error) bool {
	return errorType(err) == ErrorTypeMissingFile
}

// IsInvalidCoordinate reports whether err rejected a row for its coordinates.
func IsInvalidCoordinate(err error) bool {
	return errorType(err) == ErrorTypeInvalidCoordinate
}
