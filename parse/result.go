// Copyright 2026 The CoordKit Authors
// SPDX-License-Identifier: Apache-2.0

// Package parse recognizes and decodes geographic coordinates supplied as
// free-form text. A single entry point accepts one opaque string, figures
// out which of the supported notations it is written in (WKT, EWKT, WKB,
// GeoJSON, MGRS, UTM, UPS, Plus Codes, GEOREF, Maidenhead, H3, Geohash,
// DMS or decimal degrees) and decodes it to a WGS84 point, optionally with
// the cell footprint implied by the format's precision.
package parse

import (
	"fmt"

	"github.com/coordkit/coordkit/spatial"
)

// CRSWGS84 identifies the geographic WGS84 reference system. Almost every
// decoded result is expressed in it; UTM and UPS inputs report the
// originating projected zone instead.
const CRSWGS84 = "EPSG:4326"

// Order is the caller's axis-order preference for inputs whose notation
// does not say which numeric token is latitude and which is longitude.
// Unambiguous formats never consult it.
type Order int

const (
	// OrderLatLon treats the first bare numeric token as latitude.
	OrderLatLon Order = iota
	// OrderLonLat treats the first bare numeric token as longitude.
	OrderLonLat
)

func (o Order) String() string {
	if o == OrderLonLat {
		return "lon,lat"
	}

	return "lat,lon"
}

// Options carries per-call configuration.
type Options struct {
	// Order resolves axis ambiguity for decimal and DMS inputs without
	// hemisphere letters.
	Order Order
	// Reference enables recovery of short Plus Codes (e.g. "CWC8+R9").
	// Without it short codes are rejected, as the code alone does not
	// identify a place anywhere on Earth.
	Reference *spatial.Point
}

// Result is a decoded coordinate. It is created fresh per call and never
// mutated afterwards.
type Result struct {
	// Point is the decoded position in WGS84 degrees.
	Point spatial.Point `json:"point"`
	// Footprint is the cell implied by the format's precision, for grid
	// and hash notations. Nil for exact-point formats. When present it
	// always contains Point.
	Footprint *spatial.BoundingBox `json:"footprint,omitempty"`
	// CRS identifies the reference system the input was expressed in,
	// e.g. "EPSG:4326" or "EPSG:32718" for a southern UTM zone 18 input.
	CRS string `json:"crs"`
	// Format names the codec that decoded the input.
	Format string `json:"format"`
}

// utmEPSG returns the EPSG id of a UTM zone.
func utmEPSG(zone int, north bool) string {
	code := 32700 + zone
	if north {
		code = 32600 + zone
	}

	return fmt.Sprintf("EPSG:%d", code)
}

// upsEPSG returns the EPSG id of a polar UPS projection.
func upsEPSG(north bool) string {
	if north {
		return "EPSG:5041"
	}

	return "EPSG:5042"
}
