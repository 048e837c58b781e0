// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/jcodagnone/mineralmap/utils/htmlutils"
)

var debugInfoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Check an info panel HTML snippet",
	Long: `Reads an HTML snippet meant for a definition's info_html from a file or
from stdin, reports whether it would be accepted and prints its text.

Examples:
  mineralmap debug info panel.html
  echo '<p>Data: <a href="https://mrdata.usgs.gov">USGS</a></p>' | mineralmap debug info`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		var r io.Reader = os.Stdin

		if len(args) > 0 {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("error opening file: %w", err)
			}
			defer f.Close()

			r = f
		} else if isatty.IsTerminal(os.Stdin.Fd()) {
			fmt.Fprintln(os.Stderr, "Reading from stdin. Paste HTML and press Ctrl+D to finish.")
		}

		data, err := io.ReadAll(r)
		if err != nil {
			return fmt.Errorf("error reading html: %w", err)
		}

		if err := htmlutils.CheckFragment(string(data)); err != nil {
			return err
		}

		nodes, err := htmlutils.ParseFragment(string(data))
		if err != nil {
			return err
		}

		for _, n := range nodes {
			if text := htmlutils.Text(n); text != "" {
				fmt.Println(text)
			}
		}

		fmt.Fprintln(os.Stderr, "✅ snippet accepted")

		return nil
	},
}
