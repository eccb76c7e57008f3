// Copyright 2026 The CoordKit Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/coordkit/coordkit/server"
)

var addrFlag string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the parser over HTTP",
	RunE: func(_ *cobra.Command, _ []string) error {
		log.Printf("Serving on %s", addrFlag)

		return server.NewServer(newParser()).Run(addrFlag)
	},
}

func init() {
	serveCmd.Flags().StringVar(&addrFlag, "addr", ":8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}
