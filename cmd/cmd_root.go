// Copyright 2026 The CoordKit Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/coordkit/coordkit/parse"
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
	Use:   "coordkit",
	Short: "recognize and decode geographic coordinates in any common notation",
	Long: `
coordkit takes free-form text and figures out which coordinate notation it is
written in (WKT, GeoJSON, WKB, MGRS, UTM, Plus Codes, geohash, degrees and
friends), then decodes it to a WGS84 position.
`,
}

var (
	orderFlag string
	noH3Flag  bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&orderFlag, "order", "lat,lon",
		"axis order for ambiguous numeric input: lat,lon or lon,lat")
	rootCmd.PersistentFlags().BoolVar(&noH3Flag, "no-h3", false,
		"disable the H3 cell index codec")
}

func parseOrder() (parse.Order, error) {
	switch orderFlag {
	case "lat,lon":
		return parse.OrderLatLon, nil
	case "lon,lat":
		return parse.OrderLonLat, nil
	default:
		return 0, fmt.Errorf("invalid --order %q: must be lat,lon or lon,lat", orderFlag)
	}
}

func newParser() *parse.Parser {
	cfg := parse.DefaultConfig()
	if noH3Flag {
		cfg.H3 = false
	}

	return parse.New(cfg)
}

var Version = "dev"

func Execute(version string) {
	Version = version

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
