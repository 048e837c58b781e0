// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/jcodagnone/mineralmap/mapdef"
	"github.com/jcodagnone/mineralmap/sites"
	"github.com/jcodagnone/mineralmap/spatial"
	"github.com/jcodagnone/mineralmap/style"
)

var debugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Dev tools",
}

var debugProjectCmd = &cobra.Command{
	Use:   "project [lat lon]",
	Short: "Convert coordinates to Web Mercator meters",
	Long: `Prints the Web Mercator x and y, and the finest stored H3 cell, of a
coordinate given as arguments or of one "lat lon" (or "lat,lon") pair per
line of stdin.

$ mineralmap debug project -- 45 -93`,
	Args: cobra.MatchAll(cobra.MaximumNArgs(2), func(_ *cobra.Command, args []string) error {
		if len(args) == 1 {
			return fmt.Errorf("want both lat and lon, got %q", args[0])
		}

		return nil
	}),
	RunE: func(_ *cobra.Command, args []string) error {
		if len(args) == 2 {
			return projectLine(args[0] + " " + args[1])
		}

		if isatty.IsTerminal(os.Stdin.Fd()) {
			fmt.Fprintln(os.Stderr, "Enter one coordinate per line…")
		}

		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if strings.TrimSpace(scanner.Text()) == "" {
				continue
			}

			if err := projectLine(scanner.Text()); err != nil {
				fmt.Printf("%s\t%q\n", scanner.Text(), err)
			}
		}

		return scanner.Err()
	},
}

func projectLine(line string) error {
	fields := strings.FieldsFunc(line, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
	if len(fields) != 2 {
		return fmt.Errorf("want \"lat lon\", got %q", line)
	}

	lat, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return fmt.Errorf("latitude: %w", err)
	}

	lon, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return fmt.Errorf("longitude: %w", err)
	}

	xy, err := spatial.Project(lat, lon)
	if err != nil {
		return err
	}

	cell, err := spatial.CellID(spatial.Point{Lat: lat, Lng: lon}, spatial.MaxCellResolution)
	if err != nil {
		return err
	}

	fmt.Printf("%v\t%v\t%.2f\t%.2f\t%s\n", lat, lon, xy.X, xy.Y, cell)

	return nil
}

var debugStyleOptions = struct {
	palette string
	sizes   string
}{}

var debugStyleCmd = &cobra.Command{
	Use:   "style <category> [status]",
	Short: "Show the marker style a category and status resolve to",
	Long: `Resolves a category (the first comma separated label picks the color)
and an optional status against a palette and a size table.

Palettes: ` + strings.Join(style.PaletteNames(), ", ") + `
Size tables: ` + strings.Join(style.SizeTableNames(), ", "),
	Args: cobra.RangeArgs(1, 2),
	RunE: func(_ *cobra.Command, args []string) error {
		palette, err := style.PaletteByName(debugStyleOptions.palette)
		if err != nil {
			return err
		}

		sizes, err := style.SizeTableByName(debugStyleOptions.sizes)
		if err != nil {
			return err
		}

		var status string
		if len(args) > 1 {
			status = args[1]
		}

		r := style.Resolver{Palette: palette, Sizes: sizes, Shapes: style.StatusShapes}
		s := r.Resolve(args[0], status)

		out, err := json.Marshal(struct {
			Primary string `json:"primary"`
			style.Style
		}{style.PrimaryCategory(args[0]), s})
		if err != nil {
			return err
		}

		fmt.Println(string(out))

		return nil
	},
}

var debugClustersOptions = struct {
	inputOptions
	meters float64
}{}

var debugClustersCmd = &cobra.Command{
	Use:   "clusters [files...]",
	Short: "List sites close enough to share a tooltip",
	RunE: func(_ *cobra.Command, args []string) error {
		opts := &debugClustersOptions.inputOptions
		if opts.empty(args) {
			opts.sample = true
		}

		res, err := loadSites(args, opts)
		if err != nil {
			return err
		}

		for _, cluster := range sites.Cluster(res.Sites, debugClustersOptions.meters) {
			if len(cluster) < 2 {
				continue
			}

			fmt.Printf("%s\n", res.Sites[cluster[0]].Point)

			for _, i := range cluster {
				s := res.Sites[i]
				fmt.Printf("\t%s (%s)\n", s.Name, s.Category)
			}
		}

		return nil
	},
}

var debugDefinitionCmd = &cobra.Command{
	Use:   "definition <name or file>",
	Short: "Print a map definition after defaults and overrides",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		def, err := mapdef.Load(args[0])
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(def, "", "  ")
		if err != nil {
			return fmt.Errorf("error marshalling json: %w", err)
		}

		fmt.Println(string(out))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(debugCmd)
	debugCmd.AddCommand(debugProjectCmd)
	debugCmd.AddCommand(debugStyleCmd)
	debugCmd.AddCommand(debugClustersCmd)
	debugCmd.AddCommand(debugDefinitionCmd)
	debugCmd.AddCommand(debugInfoCmd)

	debugStyleCmd.Flags().StringVar(&debugStyleOptions.palette, "palette", "elements", "palette name")
	debugStyleCmd.Flags().StringVar(&debugStyleOptions.sizes, "sizes", "status", "size table name")

	debugClustersOptions.register(debugClustersCmd)
	debugClustersCmd.Flags().Float64Var(&debugClustersOptions.meters, "meters", 100, "grouping distance")
}
