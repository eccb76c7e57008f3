// Copyright 2026 The CoordKit Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"database/sql"
	"fmt"
	"os"
	"sort"

	_ "github.com/duckdb/duckdb-go/v2" // register duckdb driver
	"github.com/spf13/cobra"

	"github.com/coordkit/coordkit/batch"
	"github.com/coordkit/coordkit/store"
)

var (
	dbPathFlag   string
	maxProcsFlag int
)

var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Decode a file of coordinates, one per line; - reads stdin",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		order, err := parseOrder()
		if err != nil {
			return err
		}

		var repo store.ResultRepository

		if dbPathFlag != "" {
			db, err := sql.Open("duckdb", dbPathFlag)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer db.Close()

			repo, err = store.NewSQLResultRepository(db)
			if err != nil {
				return fmt.Errorf("initializing repository: %w", err)
			}

			if err := repo.CreateSchema(); err != nil {
				return fmt.Errorf("creating schema: %w", err)
			}
		}

		runner := batch.NewRunner(newParser(), repo, batch.Options{
			Order:    order,
			MaxProcs: maxProcsFlag,
		})

		var metrics *batch.Metrics

		if args[0] == "-" {
			metrics, err = runner.RunReader("stdin", os.Stdin)
		} else {
			metrics, err = runner.RunFile(args[0])
		}

		if err != nil {
			return err
		}

		fmt.Printf("%d lines: %d decoded, %d failed\n", metrics.Lines, metrics.Decoded, metrics.Failed)

		type countTable struct {
			title string
			data  map[string]int
		}

		counts := []countTable{
			{"by format", metrics.ByFormat},
			{"by error", metrics.ByError},
		}

		// With a database the store holds every batch run so far; report
		// the cumulative totals too.
		if repo != nil {
			stored, err := repo.CountByFormat()
			if err != nil {
				return fmt.Errorf("counting stored results: %w", err)
			}

			failures, err := repo.CountFailures()
			if err != nil {
				return fmt.Errorf("counting stored failures: %w", err)
			}

			counts = append(counts,
				countTable{"stored by format", stored},
				countTable{"stored by error", failures},
			)
		}

		for _, count := range counts {
			if len(count.data) == 0 {
				continue
			}

			keys := make([]string, 0, len(count.data))
			for k := range count.data {
				keys = append(keys, k)
			}

			sort.Strings(keys)
			fmt.Printf("%s:\n", count.title)

			for _, k := range keys {
				fmt.Printf("  %-24s %d\n", k, count.data[k])
			}
		}

		return nil
	},
}

func init() {
	batchCmd.Flags().StringVar(&dbPathFlag, "db", "", "DuckDB file to persist results into")
	batchCmd.Flags().IntVar(&maxProcsFlag, "max-procs", 0, "decoding concurrency (0 = number of CPUs)")
	rootCmd.AddCommand(batchCmd)
}
