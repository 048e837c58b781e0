// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jcodagnone/mineralmap/observability"
)

type logWriter struct {
	writer io.Writer
}

func (w *logWriter) Write(bytes []byte) (int, error) {
	return fmt.Fprintf(w.writer, "%s %s", time.Now().Format("2006-01-02 15:04:05"), string(bytes))
}

func init() {
	log.SetFlags(0)
	log.SetOutput(&logWriter{writer: os.Stderr})
}

var rootCmd = &cobra.Command{
	Use:   "mineralmap",
	Short: "interactive maps of critical mineral deposits and contamination sites",
	Long: `
mineralmap reads mineral deposit and contamination site records from CSV or
GeoJSON files and renders them as self-contained HTML maps, one tab per view,
with a legend and per-site tooltips.
`,
	SilenceUsage: true,
}

var (
	Version = "dev"
	metrics = observability.NewMetrics()
)

func Execute(version string) {
	Version = version
	rootCmd.Version = version

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
