// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package sites

import (
	"bytes"
	_ "embed"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Embedded sample sets.
const (
	MineralsSample = "minerals"
	REESample      = "ree"
)

var (
	//go:embed sample.csv
	sampleCSV []byte

	//go:embed ree_sample.csv
	reeSampleCSV []byte
)

var samples = map[string]struct {
	file string
	data []byte
}{
	MineralsSample: {"sample.csv", sampleCSV},
	REESample:      {"ree_sample.csv", reeSampleCSV},
}

// Sample returns a small built-in inventory of critical mineral deposits
// and contamination sites, used to seed the catalog and for previews.
func Sample() ([]Site, error) {
	return LoadSample(MineralsSample)
}

// LoadSample returns an embedded sample set. The REE set holds rare earth
// deposits, coal ash impoundments and mine tailings with their grades.
func LoadSample(name string) ([]Site, error) {
	s, ok := samples[strings.TrimSpace(name)]
	if !ok {
		return nil, fmt.Errorf("unknown sample %q (known: %s)", name, strings.Join(SampleNames(), ", "))
	}

	ret, rejected, err := ReadCSV(bytes.NewReader(s.data), s.file)
	if err != nil {
		return nil, err
	}

	if len(rejected) > 0 {
		return nil, fmt.Errorf("sample data: %w", rejected[0])
	}

	return ret, nil
}

// SampleNames lists the embedded sample sets, sorted.
func SampleNames() []string {
	return slices.Sorted(maps.Keys(samples))
}
