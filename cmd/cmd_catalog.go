// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jcodagnone/mineralmap/catalog"
	"github.com/jcodagnone/mineralmap/sites"
	"github.com/jcodagnone/mineralmap/utils"
)

const snapshotFile = "catalog.json"

var catalogOptions = struct {
	path    string
	file    string
	replace bool
	sample  bool
	set     string
	query   catalog.Query
	filter  string
	res     int
	asJSON  bool
}{}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage a local DuckDB catalog of sites",
}

var catalogImportCmd = &cobra.Command{
	Use:   "import [files...]",
	Short: "Load site files into the catalog",
	Long: `Loads sites from CSV and GeoJSON files (and optionally the embedded
sample) and stores them in the catalog. The catalog must be empty unless
--replace is given.`,
	RunE: func(_ *cobra.Command, args []string) error {
		if len(args) == 0 && !catalogOptions.sample {
			return errors.New("no input: pass files or --sample")
		}

		res, err := loadSites(args, &inputOptions{sample: catalogOptions.sample, sampleSet: catalogOptions.set})
		if err != nil {
			return err
		}

		if err := res.Require(); err != nil {
			return err
		}

		db, repo, err := openCatalog(catalogOptions.path)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := catalog.Import(repo, res.Sites, catalogOptions.replace); err != nil {
			return err
		}

		log.Printf("✅ Imported %s sites into %s", utils.FormatInt(int64(len(res.Sites))), catalogOptions.path)

		return nil
	},
}

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog to a JSON file",
	Long: `Exports every site of the catalog to a local JSON file. The file is
sorted to minimize diffs when checking into version control.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		db, repo, err := openCatalog(catalogOptions.path)
		if err != nil {
			return err
		}
		defer db.Close()

		var buf bytes.Buffer

		n, err := catalog.ExportJSON(repo, &buf)
		if err != nil {
			return err
		}

		if err := os.WriteFile(catalogOptions.file, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", catalogOptions.file, err)
		}

		fmt.Printf("✅ Exported %s sites to %s\n", utils.FormatInt(int64(n)), catalogOptions.file)

		return nil
	},
}

var catalogRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Load a JSON file written by export into the catalog",
	RunE: func(_ *cobra.Command, _ []string) error {
		f, err := os.Open(catalogOptions.file)
		if err != nil {
			return fmt.Errorf("opening %s: %w", catalogOptions.file, err)
		}
		defer f.Close()

		db, repo, err := openCatalog(catalogOptions.path)
		if err != nil {
			return err
		}
		defer db.Close()

		n, err := catalog.ImportJSON(repo, f, catalogOptions.replace)
		if err != nil {
			return err
		}

		log.Printf("✅ Imported %s sites from %s", utils.FormatInt(int64(n)), catalogOptions.file)

		return nil
	},
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalogued sites",
	RunE: func(_ *cobra.Command, _ []string) error {
		filter, err := sites.ParseFilter(catalogOptions.filter)
		if err != nil {
			return err
		}

		db, repo, err := openCatalog(catalogOptions.path)
		if err != nil {
			return err
		}
		defer db.Close()

		q := catalogOptions.query
		q.Match = filter

		found, err := repo.List(q)
		if err != nil {
			return fmt.Errorf("listing sites: %w", err)
		}

		if catalogOptions.asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")

			return enc.Encode(found)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tCATEGORY\tKIND\tSTATUS\tPOINT")

		for _, s := range found {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				utils.Ellipsis(s.Name, 40), utils.Ellipsis(s.Category, 30), s.Kind, s.Status, s.Point)
		}

		if err := w.Flush(); err != nil {
			return err
		}

		fmt.Fprintf(os.Stderr, "%s site(s)\n", utils.FormatInt(int64(len(found))))

		return nil
	},
}

var catalogDensityCmd = &cobra.Command{
	Use:   "density",
	Short: "Count catalogued sites per H3 cell",
	RunE: func(_ *cobra.Command, _ []string) error {
		db, repo, err := openCatalog(catalogOptions.path)
		if err != nil {
			return err
		}
		defer db.Close()

		cells, err := repo.Density(catalogOptions.res)
		if err != nil {
			return err
		}

		for _, c := range cells {
			fmt.Printf("%s\t%d\n", c.Cell, c.Count)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogImportCmd)
	catalogCmd.AddCommand(catalogExportCmd)
	catalogCmd.AddCommand(catalogRestoreCmd)
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogDensityCmd)

	catalogCmd.PersistentFlags().StringVar(&catalogOptions.path, "db", "mineralmap.duckdb", "catalog database file")

	catalogImportCmd.Flags().BoolVar(&catalogOptions.sample, "sample", false, "include the embedded sample sites")
	catalogImportCmd.Flags().StringVar(&catalogOptions.set, "sample-set", sites.MineralsSample,
		"embedded sample set ("+strings.Join(sites.SampleNames(), ", ")+")")

	for _, c := range []*cobra.Command{catalogImportCmd, catalogRestoreCmd} {
		c.Flags().BoolVar(&catalogOptions.replace, "replace", false, "delete the current sites first")
	}

	for _, c := range []*cobra.Command{catalogExportCmd, catalogRestoreCmd} {
		c.Flags().StringVarP(&catalogOptions.file, "file", "f", snapshotFile, "snapshot file")
	}

	catalogListCmd.Flags().StringVarP(&catalogOptions.query.Name, "query", "q", "", "name substring, accents ignored")
	catalogListCmd.Flags().StringVar(&catalogOptions.query.Kind, "kind", "", "site kind")
	catalogListCmd.Flags().StringVar(&catalogOptions.query.State, "state", "", "state code")
	catalogListCmd.Flags().StringVar(&catalogOptions.query.Cell, "cell", "", "H3 cell (resolution 1 to 8)")
	catalogListCmd.Flags().IntVar(&catalogOptions.query.Limit, "limit", 0, "maximum number of sites")
	catalogListCmd.Flags().IntVar(&catalogOptions.query.Offset, "offset", 0, "sites to skip")
	catalogListCmd.Flags().StringVar(&catalogOptions.filter, "filter", "", `filter expression, e.g. "minerals;extent:alaska"`)
	catalogListCmd.Flags().BoolVar(&catalogOptions.asJSON, "json", false, "print JSON")

	catalogDensityCmd.Flags().IntVar(&catalogOptions.res, "res", 4, "H3 resolution")
}
