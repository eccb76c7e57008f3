// Copyright 2026 The CoordKit Authors
// SPDX-License-Identifier: Apache-2.0

package parse

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/im7mortal/UTM"

	"github.com/coordkit/coordkit/spatial"
)

var (
	reEWKT        = regexp.MustCompile(`(?i)^SRID=(\d+);(.+)$`)
	rePointBody   = regexp.MustCompile(`(?i)\bPOINT\s*Z?\s*M?\s*\(\s*([-+0-9.eE\s]+?)\s*\)`)
	reMultiPoint  = regexp.MustCompile(`(?i)\bMULTIPOINT\s*\(\s*\(?\s*([-+0-9.eE\s]+?)\s*\)`)
	rePolygonRing = regexp.MustCompile(`(?i)\bPOLYGON\s*\(\s*\(\s*([-+0-9.eE\s,]+?)\s*\)`)
	reNumber      = regexp.MustCompile(`[-+]?\d*\.?\d+(?:[eE][-+]?\d+)?`)
)

// wktCodec decodes Well-Known Text geometries. Points are taken directly,
// a MULTIPOINT contributes its first member and a POLYGON its outer-ring
// centroid. WKT axis order is POINT(longitude latitude) by definition and
// never consults the caller's preference.
type wktCodec struct{}

func (wktCodec) id() codecID { return idWKT }
func (wktCodec) name() string { return "WKT" }
func (wktCodec) tier() int { return TierStructured }

func (wktCodec) recognizes(text string) bool {
	return reWKTAnchor.MatchString(text)
}

func (wktCodec) decode(text string, _ Options) (*Result, error) {
	x, y, err := wktPoint(text)
	if err != nil {
		return nil, err
	}

	lon, lat := correctGeographicOrder(x, y)

	return &Result{
		Point:  spatial.Point{Lat: lat, Lng: lon},
		CRS:    CRSWGS84,
		Format: "WKT",
	}, nil
}

// wktPoint extracts a single x/y pair from a WKT body.
func wktPoint(text string) (float64, float64, error) {
	if !balancedParens(text) {
		return 0, 0, errors.New("unbalanced parentheses in WKT")
	}

	if m := rePointBody.FindStringSubmatch(text); m != nil {
		coords := parseFloats(m[1])
		// Z and M ordinates are read and discarded.
		if len(coords) >= 2 {
			return coords[0], coords[1], nil
		}

		return 0, 0, fmt.Errorf("POINT carries %d ordinates, need at least 2", len(coords))
	}

	if m := reMultiPoint.FindStringSubmatch(text); m != nil {
		coords := parseFloats(m[1])
		if len(coords) >= 2 {
			return coords[0], coords[1], nil
		}

		return 0, 0, errors.New("MULTIPOINT carries no complete coordinate pair")
	}

	if m := rePolygonRing.FindStringSubmatch(text); m != nil {
		return ringCentroid(m[1])
	}

	return 0, 0, errors.New("no decodable WKT geometry found")
}

func balancedParens(text string) bool {
	open := strings.Count(text, "(")

	return open > 0 && open == strings.Count(text, ")")
}

func parseFloats(s string) []float64 {
	var out []float64

	for _, field := range reNumber.FindAllString(s, -1) {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			continue
		}

		out = append(out, v)
	}

	return out
}

// ringCentroid computes the area-weighted centroid of a closed ring given
// as comma-separated "x y" vertices. Degenerate rings fall back to the
// vertex mean.
func ringCentroid(ring string) (float64, float64, error) {
	var xs, ys []float64

	for vertex := range strings.SplitSeq(ring, ",") {
		coords := parseFloats(vertex)
		if len(coords) < 2 {
			return 0, 0, fmt.Errorf("polygon vertex %q is not an x/y pair", strings.TrimSpace(vertex))
		}

		xs = append(xs, coords[0])
		ys = append(ys, coords[1])
	}

	if len(xs) < 3 {
		return 0, 0, errors.New("polygon ring has fewer than 3 vertices")
	}

	// Drop the closing vertex when the ring is explicitly closed.
	n := len(xs)
	if xs[0] == xs[n-1] && ys[0] == ys[n-1] {
		n--
	}

	var area, cx, cy float64

	for i := range n {
		j := (i + 1) % n
		cross := xs[i]*ys[j] - xs[j]*ys[i]
		area += cross
		cx += (xs[i] + xs[j]) * cross
		cy += (ys[i] + ys[j]) * cross
	}

	if area == 0 {
		var sx, sy float64
		for i := range n {
			sx += xs[i]
			sy += ys[i]
		}

		return sx / float64(n), sy / float64(n), nil
	}

	return cx / (3 * area), cy / (3 * area), nil
}

// correctGeographicOrder applies the standard POINT(lon lat) reading and
// swaps the axes only when the standard reading is out of geographic range
// while the flipped one is valid. The caller's order preference is never
// consulted for structured formats.
func correctGeographicOrder(x, y float64) (float64, float64) {
	standardValid := validGeographic(y, x)
	flippedValid := validGeographic(x, y)

	if !standardValid && flippedValid {
		return y, x
	}

	return x, y
}

// ewktCodec decodes PostGIS extended WKT: an "SRID=n;" prefix followed by
// a WKT body. The SRID becomes the result's source reference system; UTM
// SRIDs are reprojected to WGS84, anything else is passed through when the
// ordinates already are range-valid geographic values.
type ewktCodec struct{}

func (ewktCodec) id() codecID { return idEWKT }
func (ewktCodec) name() string { return "EWKT" }
func (ewktCodec) tier() int { return TierStructured }

func (ewktCodec) recognizes(text string) bool {
	return reEWKT.MatchString(text)
}

func (ewktCodec) decode(text string, _ Options) (*Result, error) {
	m := reEWKT.FindStringSubmatch(text)
	if m == nil {
		return nil, errors.New("missing SRID prefix")
	}

	srid, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, fmt.Errorf("parsing SRID: %w", err)
	}

	x, y, err := wktPoint(m[2])
	if err != nil {
		return nil, err
	}

	return pointInSRID(x, y, srid, "EWKT")
}

// pointInSRID interprets an x/y pair expressed in the given EPSG reference
// system. Shared by the EWKT and WKB codecs.
func pointInSRID(x, y float64, srid int, format string) (*Result, error) {
	crs := fmt.Sprintf("EPSG:%d", srid)

	switch {
	case srid == 0 || srid == 4326:
		lon, lat := correctGeographicOrder(x, y)

		return &Result{
			Point:  spatial.Point{Lat: lat, Lng: lon},
			CRS:    CRSWGS84,
			Format: format,
		}, nil
	case srid >= 32601 && srid <= 32660:
		return utmZoneResult(x, y, srid-32600, true, crs, format)
	case srid >= 32701 && srid <= 32760:
		return utmZoneResult(x, y, srid-32700, false, crs, format)
	default:
		// No reprojection engine for arbitrary systems: accept values
		// that are already geographic and report the declared system.
		lon, lat := correctGeographicOrder(x, y)
		if !validGeographic(lat, lon) {
			return nil, fmt.Errorf("%w: cannot reproject %s ordinates (%g, %g)", errOutOfRange, crs, x, y)
		}

		return &Result{
			Point:  spatial.Point{Lat: lat, Lng: lon},
			CRS:    crs,
			Format: format,
		}, nil
	}
}

func utmZoneResult(easting, northing float64, zone int, north bool, crs, format string) (*Result, error) {
	lat, lon, err := UTM.ToLatLon(easting, northing, zone, "", north)
	if err != nil {
		return nil, fmt.Errorf("reprojecting %s: %w", crs, err)
	}

	return &Result{
		Point:  spatial.Point{Lat: lat, Lng: lon},
		CRS:    crs,
		Format: format,
	}, nil
}
