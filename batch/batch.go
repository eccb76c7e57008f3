// Copyright 2026 The CoordKit Authors
// SPDX-License-Identifier: Apache-2.0

// Package batch decodes files of coordinate strings, one per line, and
// persists the outcome per line.
package batch

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"github.com/coordkit/coordkit/parse"
	"github.com/coordkit/coordkit/store"
)

// Options configures a batch run.
type Options struct {
	// Order is the axis-order preference applied to every ambiguous line.
	Order parse.Order
	// MaxProcs caps the decoding goroutines; 0 means NumCPU.
	MaxProcs int
}

// Metrics summarizes a finished run.
type Metrics struct {
	Lines    int
	Decoded  int
	Failed   int
	ByFormat map[string]int
	ByError  map[string]int
}

// Runner decodes inputs with a shared parser and saves them through the
// repository.
type Runner struct {
	parser  *parse.Parser
	repo    store.ResultRepository
	options Options
}

func NewRunner(parser *parse.Parser, repo store.ResultRepository, options Options) *Runner {
	return &Runner{parser: parser, repo: repo, options: options}
}

// RunFile decodes every non-empty line of the file. The stored results
// replace any earlier run of the same file.
func (r *Runner) RunFile(path string) (*Metrics, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("opening input file: %w", err)
	}
	defer f.Close()

	return r.run(filepath.Base(path), f)
}

// RunReader decodes every non-empty line of the reader, stored under the
// given source name.
func (r *Runner) RunReader(source string, input io.Reader) (*Metrics, error) {
	return r.run(source, input)
}

func (r *Runner) run(source string, input io.Reader) (*Metrics, error) {
	var lines []string

	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	n := len(lines)

	maxProcs := r.options.MaxProcs
	if maxProcs == 0 {
		maxProcs = runtime.NumCPU()
	}

	var bar *progressbar.ProgressBar
	if isatty.IsTerminal(os.Stderr.Fd()) {
		bar = progressbar.NewOptions(n,
			progressbar.OptionSetDescription("Decoding "+source),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	var wg sync.WaitGroup

	semaphore := make(chan struct{}, maxProcs)
	records := make([]*store.Record, n)

	for i, line := range lines {
		wg.Add(1)

		go func(i int, line string) {
			defer wg.Done()
			semaphore <- struct{}{}

			defer func() { <-semaphore }()

			records[i] = r.decodeLine(i+1, line)

			if bar != nil {
				if err := bar.Add(1); err != nil {
					log.Printf("updating progress bar: %v", err)
				}
			}
		}(i, line)
	}

	wg.Wait()

	metrics := &Metrics{
		ByFormat: make(map[string]int),
		ByError:  make(map[string]int),
	}

	saved := records[:0]

	for _, record := range records {
		if record == nil {
			continue
		}

		saved = append(saved, record)
		metrics.Lines++

		if record.ErrKind == "" {
			metrics.Decoded++
			metrics.ByFormat[record.Format]++
		} else {
			metrics.Failed++
			metrics.ByError[record.ErrKind]++
		}
	}

	if r.repo != nil {
		if err := r.repo.SaveResults(source, saved); err != nil {
			return metrics, fmt.Errorf("saving results: %w", err)
		}
	}

	log.Printf(
		"Batch complete - %d lines, %d decoded, %d failed.",
		metrics.Lines, metrics.Decoded, metrics.Failed,
	)

	return metrics, nil
}

// decodeLine turns one input line into a record. Blank lines produce nil.
func (r *Runner) decodeLine(line int, text string) *store.Record {
	if text == "" {
		return nil
	}

	record := &store.Record{Line: line, Input: text}

	res, err := r.parser.Parse(text, parse.Options{Order: r.options.Order})
	if err != nil {
		var perr *parse.Error
		if errors.As(err, &perr) {
			record.ErrKind = perr.Kind.String()
		} else {
			record.ErrKind = parse.KindUnknown.String()
		}

		record.ErrMessage = err.Error()

		return record
	}

	record.Format = res.Format
	record.CRS = res.CRS
	record.Point = &res.Point
	record.Footprint = res.Footprint

	return record
}
