// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package sites

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcodagnone/mineralmap/observability"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadAllSkipsBadFiles(t *testing.T) {
	dir := t.TempDir()
	tungsten := writeFile(t, dir, "tungsten.csv",
		"Name,Latitude,Longitude,Element,Deposit_Type,Status,Notes\nPine Creek Mine,37.42,-118.73,Tungsten,Skarn,Historic,CA\nPolar,90,0,Tungsten,,,\n")
	broken := writeFile(t, dir, "broken.csv", "Name,Element\nx,y\n")
	contamination := writeFile(t, dir, "contamination.geojson",
		`{"type":"FeatureCollection","features":[{"type":"Feature","geometry":{"type":"Point","coordinates":[-94.85,36.98]},"properties":{"Name":"Tar Creek","Element":"Pb/Zn","Deposit_Type":"Superfund","Status":"Remediation"}}]}`)
	unknown := writeFile(t, dir, "notes.xlsx", "")
	missing := filepath.Join(dir, "missing.csv")

	m, _ := observability.NewMetricsForTesting()

	var progress []string

	l := &Loader{
		Metrics:  m,
		Progress: func(path string, _ int) { progress = append(progress, filepath.Base(path)) },
	}

	res := l.LoadAll([]string{tungsten, missing, broken, contamination, unknown})

	require.Len(t, res.Sites, 2)
	assert.Equal(t, "Pine Creek Mine", res.Sites[0].Name)
	assert.Equal(t, "Tar Creek", res.Sites[1].Name)
	assert.Equal(t, 2, res.Loaded)
	require.Len(t, res.Rejected, 1)
	assert.Equal(t, 3, res.Rejected[0].Line)

	require.Len(t, res.Warnings, 3)
	assert.Equal(t, missing, res.Warnings[0].Path)
	assert.True(t, IsMissingFile(res.Warnings[0].Err))
	assert.Equal(t, ErrorTypeMissingColumn, errorType(res.Warnings[1].Err))
	assert.Equal(t, ErrorTypeUnsupportedFormat, errorType(res.Warnings[2].Err))
	assert.Contains(t, res.Warnings[0].String(), "missing.csv")

	require.NoError(t, res.Require())
	assert.Equal(t, []string{"tungsten.csv", "missing.csv", "broken.csv", "contamination.geojson", "notes.xlsx"}, progress)

	assert.InDelta(t, 1.0, testutil.ToFloat64(m.SitesLoaded.WithLabelValues("csv")), 0)
	assert.InDelta(t, 1.0, testutil.ToFloat64(m.SitesLoaded.WithLabelValues("geojson")), 0)
	assert.InDelta(t, 3.0, testutil.ToFloat64(m.FilesSkipped), 0)
	assert.InDelta(t, 1.0, testutil.ToFloat64(m.RowsRejected.WithLabelValues("invalid_coordinate")), 0)
}

func TestLoadAllNothing(t *testing.T) {
	res := LoadAll([]string{filepath.Join(t.TempDir(), "nope.csv")})
	assert.Empty(t, res.Sites)

	err := res.Require()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoSites))
	assert.Contains(t, err.Error(), "1 input file(s) skipped")

	require.ErrorIs(t, LoadAll(nil).Require(), ErrNoSites)
}

func TestLoadStdin(t *testing.T) {
	l := &Loader{Stdin: strings.NewReader("Name,Lat,Lon\nA,1,2\n")}

	res := l.LoadAll([]string{StdinPath})
	require.Len(t, res.Sites, 1)
	assert.Equal(t, "stdin", res.Sites[0].Source)
}

func TestFormat(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"a.csv", "csv", false},
		{"A.CSV", "csv", false},
		{"a.geojson", "geojson", false},
		{"a.json", "geojson", false},
		{StdinPath, "csv", false},
		{"a.xlsx", "", true},
		{"noext", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := Format(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("Format(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}

			if got != tt.want {
				t.Errorf("Format(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
