// Copyright 2026 The CoordKit Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the registered coordinate formats in evaluation order",
	RunE: func(_ *cobra.Command, _ []string) error {
		p := newParser()
		names := p.Formats()
		tiers := p.Tiers()

		fmt.Printf("%-4s %s\n", "Tier", "Format")

		for i, name := range names {
			fmt.Printf("%-4d %s\n", tiers[i], name)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}
