// Copyright 2026 The CoordKit Authors
// SPDX-License-Identifier: Apache-2.0

// Package store persists batch decoding results in DuckDB.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/coordkit/coordkit/spatial"
)

// Record is one decoded (or failed) input line.
type Record struct {
	Line   int
	Input  string
	Format string
	CRS    string
	// Point is nil when decoding failed.
	Point     *spatial.Point
	Footprint *spatial.BoundingBox
	// ErrKind and ErrMessage describe the failure; empty on success.
	ErrKind    string
	ErrMessage string
}

// ResultRepository defines the database operations of the batch runner.
type ResultRepository interface {
	// CreateSchema creates the database schema.
	CreateSchema() error
	// SaveResults saves one batch of decoded results.
	SaveResults(source string, records []*Record) error
	// CountByFormat returns how many stored results each format decoded.
	CountByFormat() (map[string]int, error)
	// CountFailures returns how many stored results failed, by error kind.
	CountFailures() (map[string]int, error)
}

type sqlResultRepository struct {
	db *sql.DB
}

func NewSQLResultRepository(db *sql.DB) (ResultRepository, error) {
	// DuckDB needs to load the spatial extension
	_, err := db.Exec(`INSTALL spatial; LOAD spatial;`)
	if err != nil {
		return nil, err
	}

	return &sqlResultRepository{db: db}, nil
}

func (r *sqlResultRepository) CreateSchema() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS results (
			source VARCHAR NOT NULL,
			line INTEGER NOT NULL,
			input VARCHAR NOT NULL,
			format VARCHAR,
			crs VARCHAR,
			point POINT_2D,
			fp_min_lat DOUBLE,
			fp_min_lng DOUBLE,
			fp_max_lat DOUBLE,
			fp_max_lng DOUBLE,
			error_kind VARCHAR,
			error VARCHAR
		);
	`)

	return err
}

func nve(v string) any {
	var ret any
	if len(v) == 0 {
		ret = nil
	} else {
		ret = v
	}

	return ret
}

// SaveResults replaces any previous run over the same source in one
// transaction, so re-running a file never duplicates rows.
func (r *sqlResultRepository) SaveResults(source string, records []*Record) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction for %s: %w", source, err)
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			log.Printf("failed to rollback transaction for %s: %v", source, err)
		}
	}()

	if _, err := tx.Exec("DELETE FROM results WHERE source = ?", source); err != nil {
		return fmt.Errorf("deleting records for %s: %w", source, err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO results (
			source, line, input, format, crs, point,
			fp_min_lat, fp_min_lng, fp_max_lat, fp_max_lng,
			error_kind, error
		) VALUES (?, ?, ?, ?, ?, ST_Point(?, ?), ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, record := range records {
		var lng, lat any
		if record.Point != nil {
			lng = record.Point.Lng
			lat = record.Point.Lat
		}

		var minLat, minLng, maxLat, maxLng any
		if record.Footprint != nil {
			minLat = record.Footprint.MinLat
			minLng = record.Footprint.MinLng
			maxLat = record.Footprint.MaxLat
			maxLng = record.Footprint.MaxLng
		}

		_, err := stmt.Exec(
			source,
			record.Line,
			record.Input,
			nve(record.Format),
			nve(record.CRS),
			lng,
			lat,
			minLat,
			minLng,
			maxLat,
			maxLng,
			nve(record.ErrKind),
			nve(record.ErrMessage),
		)
		if err != nil {
			return fmt.Errorf("inserting record for %s line %d: %w", source, record.Line, err)
		}
	}

	return tx.Commit()
}

func (r *sqlResultRepository) CountByFormat() (map[string]int, error) {
	return r.countBy("format")
}

func (r *sqlResultRepository) CountFailures() (map[string]int, error) {
	return r.countBy("error_kind")
}

func (r *sqlResultRepository) countBy(column string) (map[string]int, error) {
	rows, err := r.db.Query(fmt.Sprintf(`
		SELECT %s, COUNT(*)
		FROM results
		WHERE %s IS NOT NULL
		GROUP BY %s
	`, column, column, column))
	if err != nil {
		return nil, fmt.Errorf("counting results by %s: %w", column, err)
	}
	defer rows.Close()

	counts := make(map[string]int)

	for rows.Next() {
		var key string

		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, fmt.Errorf("scanning count: %w", err)
		}

		counts[key] = n
	}

	return counts, rows.Err()
}
