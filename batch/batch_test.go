// Copyright 2026 The CoordKit Authors
// SPDX-License-Identifier: Apache-2.0

package batch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coordkit/coordkit/parse"
	"github.com/coordkit/coordkit/store"
)

// captureRepository records what the runner saves without a database.
type captureRepository struct {
	source  string
	records []*store.Record
}

func (r *captureRepository) CreateSchema() error { return nil }

func (r *captureRepository) SaveResults(source string, records []*store.Record) error {
	r.source = source
	r.records = records

	return nil
}

func (r *captureRepository) CountByFormat() (map[string]int, error) { return nil, nil }
func (r *captureRepository) CountFailures() (map[string]int, error) { return nil, nil }

func writeInput(t *testing.T, lines string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "coords.txt")
	require.NoError(t, os.WriteFile(path, []byte(lines), 0o600))

	return path
}

func TestRunFile(t *testing.T) {
	repo := &captureRepository{}
	runner := NewRunner(parse.New(parse.DefaultConfig()), repo, Options{})

	path := writeInput(t, "POINT(30.5 50.45)\n"+
		"\n"+
		"40.7128, -74.0060\n"+
		"not a coordinate\n")

	metrics, err := runner.RunFile(path)
	require.NoError(t, err)

	// The blank line is skipped entirely.
	assert.Equal(t, 3, metrics.Lines)
	assert.Equal(t, 2, metrics.Decoded)
	assert.Equal(t, 1, metrics.Failed)
	assert.Equal(t, map[string]int{"WKT": 1, "decimal degrees": 1}, metrics.ByFormat)
	assert.Equal(t, map[string]int{"no_candidate": 1}, metrics.ByError)

	assert.Equal(t, "coords.txt", repo.source)
	require.Len(t, repo.records, 3)

	// Line numbers refer to the input file, not the record index.
	assert.Equal(t, 1, repo.records[0].Line)
	assert.Equal(t, 3, repo.records[1].Line)
	assert.Equal(t, 4, repo.records[2].Line)

	first := repo.records[0]
	assert.Equal(t, "WKT", first.Format)
	require.NotNil(t, first.Point)
	assert.InDelta(t, 50.45, first.Point.Lat, 1e-9)
	assert.InDelta(t, 30.5, first.Point.Lng, 1e-9)

	failed := repo.records[2]
	assert.Empty(t, failed.Format)
	assert.Nil(t, failed.Point)
	assert.Equal(t, "no_candidate", failed.ErrKind)
	assert.NotEmpty(t, failed.ErrMessage)
}

func TestRunFileWithoutRepository(t *testing.T) {
	runner := NewRunner(parse.New(parse.DefaultConfig()), nil, Options{})

	path := writeInput(t, "JN58TD\n18TWL8040944131\n")

	metrics, err := runner.RunFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, metrics.Decoded)
	assert.Zero(t, metrics.Failed)
}

func TestRunFileAppliesOrder(t *testing.T) {
	repo := &captureRepository{}
	runner := NewRunner(parse.New(parse.DefaultConfig()), repo, Options{Order: parse.OrderLonLat})

	path := writeInput(t, "30.5, 50.45\n")

	_, err := runner.RunFile(path)
	require.NoError(t, err)
	require.Len(t, repo.records, 1)
	require.NotNil(t, repo.records[0].Point)
	assert.InDelta(t, 50.45, repo.records[0].Point.Lat, 1e-9)
	assert.InDelta(t, 30.5, repo.records[0].Point.Lng, 1e-9)
}

func TestRunReader(t *testing.T) {
	repo := &captureRepository{}
	runner := NewRunner(parse.New(parse.DefaultConfig()), repo, Options{})

	metrics, err := runner.RunReader("stdin", strings.NewReader("POINT(30.5 50.45)\n6PH57VP3+PR\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, metrics.Decoded)
	assert.Equal(t, "stdin", repo.source)
}

func TestRunFileMissing(t *testing.T) {
	runner := NewRunner(parse.New(parse.DefaultConfig()), nil, Options{})

	_, err := runner.RunFile(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}
