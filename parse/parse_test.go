// Copyright 2026 The CoordKit Authors
// SPDX-License-Identifier: Apache-2.0

package parse

import (
	"errors"
	"math"
	"testing"

	"github.com/coordkit/coordkit/spatial"
)

func mustParse(t *testing.T, text string, opt Options) *Result {
	t.Helper()

	res, err := Parse(text, opt)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", text, err)
	}

	return res
}

func assertNear(t *testing.T, got, want, tol float64, what string) {
	t.Helper()

	if math.Abs(got-want) > tol {
		t.Errorf("%s = %g, want %g ± %g", what, got, want, tol)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		format  string
		crs     string
		lat     float64
		lng     float64
		tol     float64
		hasCell bool
	}{
		{
			name:   "WKT point",
			text:   "POINT(-58.4370894 -34.6075616)",
			format: "WKT",
			crs:    "EPSG:4326",
			lat:    -34.6075616,
			lng:    -58.4370894,
			tol:    1e-9,
		},
		{
			name:   "WKT point with Z",
			text:   "POINT Z (30.5 50.45 120)",
			format: "WKT",
			crs:    "EPSG:4326",
			lat:    50.45,
			lng:    30.5,
			tol:    1e-9,
		},
		{
			name:   "EWKT with geographic SRID",
			text:   "SRID=4326;POINT(30.5 50.45)",
			format: "EWKT",
			crs:    "EPSG:4326",
			lat:    50.45,
			lng:    30.5,
			tol:    1e-9,
		},
		{
			name:   "EWKT with UTM SRID reprojects",
			text:   "SRID=32633;POINT(315428 5741324)",
			format: "EWKT",
			crs:    "EPSG:32633",
			lat:    51.8,
			lng:    12.3,
			tol:    0.5,
		},
		{
			name:   "WKB hex little endian",
			text:   "01010000000000000000000040000000000000804840",
			format: "WKB",
			crs:    "EPSG:4326",
			lat:    49,
			lng:    2,
			tol:    1e-9,
		},
		{
			name:   "WKB hex with SRID flag",
			text:   "0101000020E61000000000000000000040000000000000804840",
			format: "WKB",
			crs:    "EPSG:4326",
			lat:    49,
			lng:    2,
			tol:    1e-9,
		},
		{
			name:   "GeoJSON geometry",
			text:   `{"type":"Point","coordinates":[30.5,50.45]}`,
			format: "GeoJSON",
			crs:    "EPSG:4326",
			lat:    50.45,
			lng:    30.5,
			tol:    1e-9,
		},
		{
			name:   "GeoJSON feature",
			text:   `{"type":"Feature","geometry":{"type":"Point","coordinates":[-58.4370894,-34.6075616]},"properties":{}}`,
			format: "GeoJSON",
			crs:    "EPSG:4326",
			lat:    -34.6075616,
			lng:    -58.4370894,
			tol:    1e-9,
		},
		{
			name:    "MGRS one meter cell",
			text:    "18TWL8040944131",
			format:  "MGRS",
			crs:     "EPSG:32618",
			lat:     41.0,
			lng:     -74.0,
			tol:     0.2,
			hasCell: true,
		},
		{
			name:   "UTM standard form",
			text:   "33N 315428 5741324",
			format: "UTM",
			crs:    "EPSG:32633",
			lat:    51.8,
			lng:    12.3,
			tol:    0.5,
		},
		{
			name:   "UTM suffixed form",
			text:   "315428mE 5741324mN 33N",
			format: "UTM",
			crs:    "EPSG:32633",
			lat:    51.8,
			lng:    12.3,
			tol:    0.5,
		},
		{
			name:   "UPS north pole",
			text:   "N 2000000 2000000",
			format: "UPS",
			crs:    "EPSG:5041",
			lat:    90,
			lng:    0,
			tol:    1e-6,
		},
		{
			name:   "UPS north polar offset",
			text:   "Z 2000000 2100000",
			format: "UPS",
			crs:    "EPSG:5041",
			lat:    89.1,
			lng:    180,
			tol:    0.1,
		},
		{
			name:    "Plus Code full",
			text:    "6PH57VP3+PR",
			format:  "Plus Codes",
			crs:     "EPSG:4326",
			lat:     10.787,
			lng:     106.703,
			tol:     0.01,
			hasCell: true,
		},
		{
			name:    "Maidenhead subsquare",
			text:    "JN58TD",
			format:  "Maidenhead",
			crs:     "EPSG:4326",
			lat:     48.1458,
			lng:     11.625,
			tol:     0.001,
			hasCell: true,
		},
		{
			name:    "GEOREF minute precision",
			text:    "GJPJ0054",
			format:  "GEOREF",
			crs:     "EPSG:4326",
			lat:     38.908,
			lng:     -76.99,
			tol:     0.02,
			hasCell: true,
		},
		{
			name:    "geohash",
			text:    "dr5regw3",
			format:  "Geohash",
			crs:     "EPSG:4326",
			lat:     40.7128,
			lng:     -74.006,
			tol:     0.005,
			hasCell: true,
		},
		{
			name:    "H3 cell index",
			text:    "8a2a1072b59ffff",
			format:  "H3",
			crs:     "EPSG:4326",
			lat:     40.69,
			lng:     -74.04,
			tol:     0.05,
			hasCell: true,
		},
		{
			name:   "DMS with hemisphere letters",
			text:   `40°42'46"N 74°0'21.6"W`,
			format: "DMS",
			crs:    "EPSG:4326",
			lat:    40.7127778,
			lng:    -74.006,
			tol:    1e-6,
		},
		{
			name:   "decimal pair",
			text:   "40.7128, -74.0060",
			format: "decimal degrees",
			crs:    "EPSG:4326",
			lat:    40.7128,
			lng:    -74.006,
			tol:    1e-9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := mustParse(t, tt.text, Options{})

			if res.Format != tt.format {
				t.Errorf("Format = %q, want %q", res.Format, tt.format)
			}

			if res.CRS != tt.crs {
				t.Errorf("CRS = %q, want %q", res.CRS, tt.crs)
			}

			assertNear(t, res.Point.Lat, tt.lat, tt.tol, "Lat")
			assertNear(t, res.Point.Lng, tt.lng, tt.tol, "Lng")

			if tt.hasCell {
				if res.Footprint == nil {
					t.Fatal("Footprint = nil, want cell bounds")
				}

				if !res.Footprint.Contains(res.Point) {
					t.Errorf("Footprint %v does not contain %v", res.Footprint, res.Point)
				}
			}
		})
	}
}

// The source zone of a projected input survives into the result, so the
// caller can tell a reprojected UTM fix from a native geographic one.
func TestParseUTMSouthernZone(t *testing.T) {
	res := mustParse(t, "56S 334786 6252080", Options{})

	if res.CRS != "EPSG:32756" {
		t.Errorf("CRS = %q, want EPSG:32756", res.CRS)
	}

	// Sydney-ish.
	assertNear(t, res.Point.Lat, -33.9, 0.5, "Lat")
	assertNear(t, res.Point.Lng, 151.2, 0.5, "Lng")
}

func TestParseMGRSFootprintSize(t *testing.T) {
	res := mustParse(t, "18TWL8040944131", Options{})

	if res.Footprint == nil {
		t.Fatal("Footprint = nil")
	}

	// 10 digits means a one meter cell, roughly 1e-5 degrees.
	if height := res.Footprint.MaxLat - res.Footprint.MinLat; height > 3e-5 {
		t.Errorf("footprint height = %g degrees, want a ~1m cell", height)
	}
}

func TestParseUTMRejectsElevation(t *testing.T) {
	for _, text := range []string{
		"33N 315428 5741324 1234",
		"33N 315428 5741324 1234M",
		"315428mE 5741324mN 33N 1234",
	} {
		t.Run(text, func(t *testing.T) {
			_, err := Parse(text, Options{})
			if err == nil {
				t.Fatal("Parse succeeded, want rejection of the trailing elevation token")
			}

			if !IsAllCandidatesFailed(err) {
				t.Errorf("error = %v, want all-candidates-failed", err)
			}
		})
	}
}

func TestParseOrderPreference(t *testing.T) {
	// Both orders are range-valid, so the preference decides.
	latLon := mustParse(t, "40.7128, -74.0060", Options{Order: OrderLatLon})
	assertNear(t, latLon.Point.Lat, 40.7128, 1e-9, "Lat")
	assertNear(t, latLon.Point.Lng, -74.006, 1e-9, "Lng")

	lonLat := mustParse(t, "40.7128, -74.0060", Options{Order: OrderLonLat})
	assertNear(t, lonLat.Point.Lat, -74.006, 1e-9, "Lat")
	assertNear(t, lonLat.Point.Lng, 40.7128, 1e-9, "Lng")
}

func TestParseOrderFallback(t *testing.T) {
	// 91 cannot be a latitude, so the preferred order loses to the only
	// valid assignment.
	res := mustParse(t, "91.0, 45.0", Options{Order: OrderLatLon})
	assertNear(t, res.Point.Lat, 45, 1e-9, "Lat")
	assertNear(t, res.Point.Lng, 91, 1e-9, "Lng")
}

// Self-describing formats never consult the order preference.
func TestParseStructuredIgnoresOrder(t *testing.T) {
	for _, order := range []Order{OrderLatLon, OrderLonLat} {
		res := mustParse(t, "POINT(30.5 50.45)", Options{Order: order})

		assertNear(t, res.Point.Lat, 50.45, 1e-9, "Lat")
		assertNear(t, res.Point.Lng, 30.5, 1e-9, "Lng")
	}
}

func TestParseFailureTaxonomy(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		check func(error) bool
	}{
		{"empty input", "", IsNoCandidate},
		{"whitespace only", "   \t ", IsNoCandidate},
		{"prose", "hello world", IsNoCandidate},
		{"disallowed characters", "位置: 東京", IsNoCandidate},
		{"out of range both orders", "91.0, 179.0", IsOutOfRange},
		{"projected magnitudes", "315428, 5741324", IsAllCandidatesFailed},
		{"short plus code without reference", "7VP3+PR", IsAllCandidatesFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text, Options{})
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want failure", tt.text)
			}

			if !tt.check(err) {
				t.Errorf("Parse(%q) error = %v, wrong kind", tt.text, err)
			}
		})
	}
}

func TestParseShortPlusCodeWithReference(t *testing.T) {
	ref := &spatial.Point{Lat: 10.77, Lng: 106.7}

	res := mustParse(t, "7VP3+PR", Options{Reference: ref})

	if res.Format != "Plus Codes" {
		t.Fatalf("Format = %q, want Plus Codes", res.Format)
	}

	assertNear(t, res.Point.Lat, 10.787, 0.01, "Lat")
	assertNear(t, res.Point.Lng, 106.703, 0.01, "Lng")
}

func TestParseH3Disabled(t *testing.T) {
	p := New(Config{H3: false})

	_, err := p.Parse("8a2a1072b59ffff", Options{})
	if err == nil {
		t.Fatal("Parse succeeded with the H3 codec disabled")
	}

	if !IsUnsupportedOptional(err) {
		t.Errorf("error = %v, want unsupported-optional", err)
	}
}

func TestParseAttemptedDiagnostics(t *testing.T) {
	_, err := Parse("33N 315428 5741324 1234", Options{})

	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("error = %T, want *Error", err)
	}

	if len(perr.Attempted) == 0 {
		t.Fatal("Attempted is empty, want the UTM codec listed")
	}

	if perr.Attempted[0] != "UTM" {
		t.Errorf("Attempted[0] = %q, want UTM", perr.Attempted[0])
	}
}

func TestFormatsEvaluationOrder(t *testing.T) {
	p := New(DefaultConfig())
	tiers := p.Tiers()

	for i := 1; i < len(tiers); i++ {
		if tiers[i] < tiers[i-1] {
			t.Fatalf("tier order violated at %d: %v", i, tiers)
		}
	}

	names := p.Formats()
	if len(names) == 0 || names[len(names)-1] != "decimal degrees" {
		t.Errorf("Formats() = %v, want decimal degrees last", names)
	}
}
