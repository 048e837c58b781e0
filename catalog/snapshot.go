// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jcodagnone/mineralmap/sites"
)

// Snapshot is the version controlled form of a catalog.
type Snapshot struct {
	Sites []sites.Site `json:"sites"`
}

// ExportJSON writes every site, sorted to minimize diffs, as indented JSON.
func ExportJSON(repo SiteRepository, w io.Writer) (int, error) {
	all, err := repo.AllSorted()
	if err != nil {
		return 0, fmt.Errorf("error listing sites: %w", err)
	}

	if all == nil {
		all = []sites.Site{}
	}

	data, err := json.MarshalIndent(Snapshot{Sites: all}, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("error marshaling sites: %w", err)
	}

	if _, err := w.Write(append(data, '\n')); err != nil {
		return 0, fmt.Errorf("error writing snapshot: %w", err)
	}

	return len(all), nil
}

// ImportJSON loads a snapshot written by ExportJSON. Unless replace is set
// the catalog must be empty.
func ImportJSON(repo SiteRepository, r io.Reader, replace bool) (int, error) {
	var snapshot Snapshot
	if err := json.NewDecoder(r).Decode(&snapshot); err != nil {
		return 0, fmt.Errorf("error parsing snapshot: %w", err)
	}

	if err := prepare(repo, replace); err != nil {
		return 0, err
	}

	if err := repo.BulkInsert(snapshot.Sites); err != nil {
		return 0, fmt.Errorf("error importing sites: %w", err)
	}

	return len(snapshot.Sites), nil
}

// Import stores already loaded sites. Unless replace is set the catalog
// must be empty.
func Import(repo SiteRepository, all []sites.Site, replace bool) error {
	if err := prepare(repo, replace); err != nil {
		return err
	}

	if err := repo.BulkInsert(all); err != nil {
		return fmt.Errorf("error importing sites: %w", err)
	}

	return nil
}

func prepare(repo SiteRepository, replace bool) error {
	if replace {
		if err := repo.DeleteAll(); err != nil {
			return fmt.Errorf("error clearing catalog: %w", err)
		}

		return nil
	}

	n, err := repo.Count()
	if err != nil {
		return fmt.Errorf("error counting sites: %w", err)
	}

	if n > 0 {
		return fmt.Errorf("%w: it holds %d sites", ErrNotEmpty, n)
	}

	return nil
}
