// Copyright 2026 The CoordKit Authors
// SPDX-License-Identifier: Apache-2.0

package parse

import (
	"testing"
)

func TestMGRSGridLetters(t *testing.T) {
	// Zone 18 uses the S-Z column set and the even-zone row cycle.
	easting, northing, cellSize, err := mgrsGrid(18, 'T', 'W', 'L', "8040944131")
	if err != nil {
		t.Fatalf("mgrsGrid() error: %v", err)
	}

	if easting != 580409 {
		t.Errorf("easting = %g, want 580409", easting)
	}

	if northing != 4544131 {
		t.Errorf("northing = %g, want 4544131", northing)
	}

	if cellSize != 1 {
		t.Errorf("cellSize = %g, want 1 m for 10 digits", cellSize)
	}
}

func TestMGRSCellSizes(t *testing.T) {
	tests := []struct {
		digits string
		want   float64
	}{
		{"", 100000},
		{"84", 10000},
		{"8044", 1000},
		{"804441", 100},
		{"80404413", 10},
		{"8040944131", 1},
	}

	for _, tt := range tests {
		t.Run(tt.digits, func(t *testing.T) {
			_, _, cellSize, err := mgrsGrid(18, 'T', 'W', 'L', tt.digits)
			if err != nil {
				t.Fatalf("mgrsGrid() error: %v", err)
			}

			if cellSize != tt.want {
				t.Errorf("cellSize = %g, want %g", cellSize, tt.want)
			}
		})
	}
}

func TestMGRSRejects(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"odd digit count", "18TWL804094413"},
		{"too many digits", "18TWL804094413112"},
		{"column letter from wrong set", "18TAL8040944131"},
		{"zone zero", "0TWL8040944131"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.text, Options{}); err == nil {
				t.Fatalf("Parse(%q) succeeded, want failure", tt.text)
			}
		})
	}
}

func TestGeorefMinutes(t *testing.T) {
	tests := []struct {
		digits string
		want   float64
	}{
		{"00", 0},
		{"54", 54},
		{"543", 54.3},
		{"5432", 54.32},
	}

	for _, tt := range tests {
		t.Run(tt.digits, func(t *testing.T) {
			got, err := georefMinutes(tt.digits)
			if err != nil {
				t.Fatalf("georefMinutes() error: %v", err)
			}

			if got != tt.want {
				t.Errorf("georefMinutes(%q) = %g, want %g", tt.digits, got, tt.want)
			}
		})
	}
}

func TestGeorefRejectsMinutesOver60(t *testing.T) {
	if _, err := Parse("GJPJ6154", Options{}); err == nil {
		t.Fatal("Parse succeeded, want rejection of 61 minutes")
	}
}

func TestMaidenheadExtendedSquare(t *testing.T) {
	res := mustParse(t, "JN58TD21", Options{})

	assertNear(t, res.Point.Lat, 48.13125, 1e-5, "Lat")
	assertNear(t, res.Point.Lng, 11.60417, 1e-5, "Lng")

	if res.Footprint == nil {
		t.Fatal("Footprint = nil")
	}

	// An extended square is 30 by 15 seconds of arc.
	if width := res.Footprint.MaxLng - res.Footprint.MinLng; width > 0.009 {
		t.Errorf("footprint width = %g, want an extended square cell", width)
	}
}

func TestUPSGridWindow(t *testing.T) {
	for _, text := range []string{
		"N 700000 2000000",
		"N 2000000 3300000",
	} {
		t.Run(text, func(t *testing.T) {
			if _, err := Parse(text, Options{}); err == nil {
				t.Fatalf("Parse(%q) succeeded, want grid window rejection", text)
			}
		})
	}
}

func TestUPSSouthPole(t *testing.T) {
	res := mustParse(t, "A 2000000 2000000", Options{})

	if res.CRS != "EPSG:5042" {
		t.Errorf("CRS = %q, want EPSG:5042", res.CRS)
	}

	assertNear(t, res.Point.Lat, -90, 1e-6, "Lat")
}

func TestUTMVariants(t *testing.T) {
	for _, text := range []string{
		"33N 315428 5741324",
		"315428mE 5741324mN 33N",
		"315428,5741324,33,N",
	} {
		t.Run(text, func(t *testing.T) {
			res := mustParse(t, text, Options{})

			if res.Format != "UTM" {
				t.Fatalf("Format = %q, want UTM", res.Format)
			}

			if res.CRS != "EPSG:32633" {
				t.Errorf("CRS = %q, want EPSG:32633", res.CRS)
			}

			assertNear(t, res.Point.Lat, 51.8, 0.5, "Lat")
			assertNear(t, res.Point.Lng, 12.3, 0.5, "Lng")
		})
	}
}

func TestUTMRejectsBadZone(t *testing.T) {
	if _, err := Parse("61N 315428 5741324", Options{}); err == nil {
		t.Fatal("Parse succeeded, want rejection of zone 61")
	}
}
