// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jcodagnone/mineralmap/mapdef"
	"github.com/jcodagnone/mineralmap/render"
)

var renderOptions = struct {
	inputOptions
	def string
	out string
}{}

var renderCmd = &cobra.Command{
	Use:   "render [files...]",
	Short: "Render a map definition to a standalone HTML file",
	Long: `Loads sites from CSV and GeoJSON files ("-" reads CSV from stdin), the
embedded sample or a catalog, and writes the HTML map described by a
definition. The definition is either a built-in name (` + strings.Join(mapdef.BuiltinNames(), ", ") + `)
or a YAML file; MINERALMAP_* environment variables override its values.

Files that cannot be read are skipped with a warning. Rows with invalid
coordinates are listed at the bottom of the page.

Examples:
  mineralmap render --sample
  mineralmap render --def ree --sample
  mineralmap render --def inventory --out docs/index.html deposits.csv superfund.geojson`,
	RunE: func(_ *cobra.Command, args []string) error {
		if renderOptions.empty(args) {
			return errors.New("no input: pass files, --sample or --catalog")
		}

		def, err := mapdef.Load(renderOptions.def)
		if err != nil {
			return err
		}

		if renderOptions.out != "" {
			def.Output = renderOptions.out
		}

		renderOptions.sampleSet = def.Sample

		res, err := loadSites(args, &renderOptions.inputOptions)
		if err != nil {
			return err
		}

		if err := res.Require(); err != nil {
			return err
		}

		page, err := render.NewBuilder().WithMetrics(metrics).BuildResult(def, res)
		if err != nil {
			return fmt.Errorf("building map: %w", err)
		}

		if err := render.WriteFile(def.Output, page); err != nil {
			return err
		}

		features := 0
		for _, tab := range page.Tabs {
			features += tab.Features()
		}

		log.Printf("✅ Wrote %s: %d tab(s), %d feature(s), %d rejected", def.Output, len(page.Tabs), features, len(page.Rejected))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderOptions.register(renderCmd)
	renderCmd.Flags().StringVarP(&renderOptions.def, "def", "d", "critical-minerals", "built-in definition name or YAML file")
	renderCmd.Flags().StringVarP(&renderOptions.out, "out", "o", "", "output file (defaults to the definition's output)")
}
