// Copyright 2026 The CoordKit Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coordkit/coordkit/parse"
)

var jsonFlag bool

var parseCmd = &cobra.Command{
	Use:   "parse <coordinate>",
	Short: "Decode a single coordinate string",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		order, err := parseOrder()
		if err != nil {
			return err
		}

		// Several shell words are one coordinate: "40°42'46\"N 74°0'21.6\"W"
		// rarely survives quoting intact.
		text := strings.Join(args, " ")

		res, err := newParser().Parse(text, parse.Options{Order: order})
		if err != nil {
			return err
		}

		if jsonFlag {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")

			return enc.Encode(res)
		}

		fmt.Printf("%-10s %.7f, %.7f\n", res.Format, res.Point.Lat, res.Point.Lng)
		fmt.Printf("%-10s %s\n", "crs", res.CRS)

		if res.Footprint != nil {
			fmt.Printf("%-10s %s\n", "footprint", res.Footprint)
		}

		return nil
	},
}

func init() {
	parseCmd.Flags().BoolVar(&jsonFlag, "json", false, "emit the result as JSON")
	rootCmd.AddCommand(parseCmd)
}
