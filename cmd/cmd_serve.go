// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"errors"
	"fmt"
	"log"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/jcodagnone/mineralmap/mapdef"
	"github.com/jcodagnone/mineralmap/render"
	"github.com/jcodagnone/mineralmap/server"
)

var serveOptions = struct {
	inputOptions
	def  string
	addr string
}{}

var serveCmd = &cobra.Command{
	Use:   "serve [files...]",
	Short: "Preview a map in the browser",
	Long: `Starts a local web server that renders the map on every request.

With --catalog alone the page reflects the catalog as it is when the page
is requested; files and --sample are loaded once at startup.`,
	RunE: func(_ *cobra.Command, args []string) error {
		if serveOptions.empty(args) {
			return errors.New("no input: pass files, --sample or --catalog")
		}

		def, err := mapdef.Load(serveOptions.def)
		if err != nil {
			return err
		}

		serveOptions.sampleSet = def.Sample

		var source server.Source

		if len(args) == 0 && !serveOptions.sample {
			db, repo, err := openCatalog(serveOptions.catalogPath)
			if err != nil {
				return err
			}
			defer db.Close()

			source = server.Catalog{Repo: repo}
		} else {
			res, err := loadSites(args, &serveOptions.inputOptions)
			if err != nil {
				return err
			}

			if err := res.Require(); err != nil {
				return err
			}

			source = server.Static(res.Sites)
		}

		builder := render.NewBuilder().WithMetrics(metrics)
		s := server.NewServer(def, source, builder, metrics, prometheus.DefaultGatherer)

		log.Printf("🌐 Serving %s on http://%s", def.Title, serveOptions.addr)

		if err := s.Run(serveOptions.addr); err != nil {
			return fmt.Errorf("serving: %w", err)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveOptions.register(serveCmd)
	serveCmd.Flags().StringVarP(&serveOptions.def, "def", "d", "critical-minerals", "built-in definition name or YAML file")
	serveCmd.Flags().StringVar(&serveOptions.addr, "addr", server.DefaultAddr, "listen address")
}
