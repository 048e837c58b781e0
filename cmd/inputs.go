// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"cmp"
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/duckdb/duckdb-go/v2" // register duckdb driver
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/jcodagnone/mineralmap/catalog"
	"github.com/jcodagnone/mineralmap/sites"
	"github.com/jcodagnone/mineralmap/utils"
)

// inputOptions select where sites come from. Files, the embedded sample
// and a catalog can be combined.
type inputOptions struct {
	sample bool
	// sampleSet names the embedded sample set; the minerals set when empty.
	sampleSet   string
	catalogPath string
}

func (o *inputOptions) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.sample, "sample", false, "include the embedded sample sites")
	cmd.Flags().StringVar(&o.catalogPath, "catalog", "", "include every site of a DuckDB catalog")
}

func (o *inputOptions) empty(paths []string) bool {
	return len(paths) == 0 && !o.sample && o.catalogPath == ""
}

func openCatalog(path string) (*sql.DB, catalog.SiteRepository, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}

	repo := catalog.NewSiteRepository(db)
	if err := repo.CreateSchema(); err != nil {
		db.Close()

		return nil, nil, fmt.Errorf("creating table: %w", err)
	}

	return db, repo, nil
}

// loadFiles loads paths, drawing a progress bar on terminals.
func loadFiles(paths []string) *sites.Result {
	loader := &sites.Loader{Metrics: metrics}

	var bar *progressbar.ProgressBar
	if isatty.IsTerminal(os.Stderr.Fd()) && len(paths) > 1 {
		bar = progressbar.NewOptions(len(paths),
			progressbar.OptionSetDescription("Loading sites"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	loader.Progress = func(path string, loaded int) {
		if bar != nil {
			_ = bar.Add(1)

			return
		}

		log.Printf("Loaded %s sites from %s", utils.FormatInt(int64(loaded)), path)
	}

	res := loader.LoadAll(paths)
	if bar != nil {
		_ = bar.Finish()
	}

	for _, w := range res.Warnings {
		log.Printf("⚠️ %s", w)
	}

	for _, r := range res.Rejected {
		log.Printf("⚠️ rejected %s", r)
	}

	return res
}

// loadSites gathers the sites of every selected input.
func loadSites(paths []string, opts *inputOptions) (*sites.Result, error) {
	res := loadFiles(paths)

	if opts.sample {
		sample, err := sites.LoadSample(cmp.Or(opts.sampleSet, sites.MineralsSample))
		if err != nil {
			return nil, fmt.Errorf("loading sample: %w", err)
		}

		res.Sites = append(res.Sites, sample...)
		res.Loaded++
	}

	if opts.catalogPath != "" {
		db, repo, err := openCatalog(opts.catalogPath)
		if err != nil {
			return nil, err
		}
		defer db.Close()

		stored, err := repo.AllSorted()
		if err != nil {
			return nil, fmt.Errorf("reading catalog: %w", err)
		}

		res.Sites = append(res.Sites, stored...)
		res.Loaded++
	}

	log.Printf("📍 %s sites from %d source(s), %d row(s) rejected, %d file(s) skipped",
		utils.FormatInt(int64(len(res.Sites))), res.Loaded, len(res.Rejected), len(res.Warnings))

	return res, nil
}
