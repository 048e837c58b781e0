// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package sites

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jcodagnone/mineralmap/observability"
)

// StdinPath names standard input as a CSV source.
const StdinPath = "-"

// LoadWarning reports an input file that was skipped.
type LoadWarning struct {
	Path string
	Err  error
}

func (w LoadWarning) String() string {
	return fmt.Sprintf("could not load %s: %v", w.Path, w.Err)
}

// Result is the combined outcome of loading several files.
type Result struct {
	Sites    []Site
	Warnings []LoadWarning
	Rejected []*RowError
	// Loaded counts the files that were read, even when empty.
	Loaded int
}

// Require returns ErrNoSites when nothing was loaded.
func (r *Result) Require() error {
	if len(r.Sites) == 0 {
		if len(r.Warnings) > 0 {
			return fmt.Errorf("%w: %d input file(s) skipped", ErrNoSites, len(r.Warnings))
		}

		return ErrNoSites
	}

	return nil
}

// Loader reads site files. The zero value is ready to use.
type Loader struct {
	// Metrics is optional.
	Metrics *observability.Metrics
	// Progress is called after every file with the number of sites it added.
	Progress func(path string, loaded int)
	// Stdin is read when a path is StdinPath; os.Stdin when nil.
	Stdin io.Reader
}

// Format returns the input format of a path, judged by its extension.
func Format(path string) (string, error) {
	if path == StdinPath {
		return "csv", nil
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv", ".txt":
		return "csv", nil
	case ".geojson", ".json":
		return "geojson", nil
	default:
		return "", &LoadError{
			Type:    ErrorTypeUnsupportedFormat,
			Path:    path,
			Message: fmt.Sprintf("unsupported file extension %q (want .csv or .geojson)", ext),
		}
	}
}

// Load reads one file, choosing the parser by extension.
func (l *Loader) Load(path string) ([]Site, []*RowError, error) {
	format, err := Format(path)
	if err != nil {
		return nil, nil, err
	}

	switch {
	case path == StdinPath:
		in := l.Stdin
		if in == nil {
			in = os.Stdin
		}

		return ReadCSV(in, "stdin")
	case format == "geojson":
		return LoadGeoJSON(path)
	default:
		return LoadCSV(path)
	}
}

// LoadAll loads every path independently. A file that cannot be read or
// parsed becomes a warning and the remaining files are still loaded; rows
// with invalid data are rejected one by one. Sites keep input order.
func (l *Loader) LoadAll(paths []string) *Result {
	ret := &Result{}

	for _, path := range paths {
		loaded, rejected, err := l.Load(path)
		if err != nil {
			ret.Warnings = append(ret.Warnings, LoadWarning{Path: path, Err: err})

			if l.Metrics != nil {
				l.Metrics.FilesSkipped.Inc()
			}

			if l.Progress != nil {
				l.Progress(path, 0)
			}

			continue
		}

		ret.Loaded++
		ret.Sites = append(ret.Sites, loaded...)
		ret.Rejected = append(ret.Rejected, rejected...)

		if l.Metrics != nil {
			format, _ := Format(path)
			l.Metrics.SitesLoaded.WithLabelValues(format).Add(float64(len(loaded)))

			for _, r := range rejected {
				l.Metrics.RowsRejected.WithLabelValues(r.Type.String()).Inc()
			}
		}

		if l.Progress != nil {
			l.Progress(path, len(loaded))
		}
	}

	return ret
}

// LoadAll loads paths with a zero Loader.
func LoadAll(paths []string) *Result {
	return (&Loader{}).LoadAll(paths)
}
