// Copyright 2026 The CoordKit Authors
// SPDX-License-Identifier: Apache-2.0

package parse

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/coordkit/coordkit/spatial"
)

// GEOREF letter tables: 15° quadrangles worldwide, then 1° cells within a
// quadrangle. I and O are skipped in both.
const (
	georefLonQuads = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	georefLatQuads = "ABCDEFGHJKLM"
	georefDegrees  = "ABCDEFGHJKLMNPQ"
)

var reGeoref = regexp.MustCompile(`^[A-HJ-NP-Z][A-HJ-M][A-HJ-NPQ]{2}\d{4,8}$`)

// georefCodec decodes World Geographic Reference System references: two
// quadrangle letters, two 1° cell letters, then an even run of digits
// giving minutes east and north of the cell corner (2 digits each = whole
// minutes, more digits add decimal precision).
type georefCodec struct{}

func (georefCodec) id() codecID { return idGeoref }
func (georefCodec) name() string { return "GEOREF" }
func (georefCodec) tier() int { return TierHash }

func (georefCodec) recognizes(text string) bool {
	s := strings.ToUpper(spaceless(text))
	if !reGeoref.MatchString(s) {
		return false
	}

	return (len(s)-4)%2 == 0
}

func (georefCodec) decode(text string, _ Options) (*Result, error) {
	s := strings.ToUpper(spaceless(text))
	if !reGeoref.MatchString(s) || (len(s)-4)%2 != 0 {
		return nil, fmt.Errorf("not a GEOREF reference: %q", text)
	}

	lonQuad := strings.IndexByte(georefLonQuads, s[0])
	latQuad := strings.IndexByte(georefLatQuads, s[1])
	lonDeg := strings.IndexByte(georefDegrees, s[2])
	latDeg := strings.IndexByte(georefDegrees, s[3])

	if lonQuad < 0 || latQuad < 0 || lonDeg < 0 || latDeg < 0 {
		return nil, fmt.Errorf("invalid GEOREF letters %q", s[:4])
	}

	lon := float64(lonQuad)*15 - 180 + float64(lonDeg)
	lat := float64(latQuad)*15 - 90 + float64(latDeg)

	digits := s[4:]
	half := len(digits) / 2

	lonMin, err := georefMinutes(digits[:half])
	if err != nil {
		return nil, err
	}

	latMin, err := georefMinutes(digits[half:])
	if err != nil {
		return nil, err
	}

	if lonMin >= 60 || latMin >= 60 {
		return nil, fmt.Errorf("GEOREF minutes (%g, %g) must be below 60", lonMin, latMin)
	}

	lon += lonMin / 60
	lat += latMin / 60

	// Cell size in degrees from the digit precision; the point is the
	// cell center.
	cell := math.Pow(10, float64(2-half)) / 60

	footprint := spatial.NewBoundingBox(lat, lon, lat+cell, lon+cell)

	return &Result{
		Point:     spatial.Point{Lat: lat + cell/2, Lng: lon + cell/2},
		Footprint: &footprint,
		CRS:       CRSWGS84,
		Format:    "GEOREF",
	}, nil
}

// georefMinutes reads a digit run as minutes: the first two digits are
// whole minutes, the rest are the decimal fraction.
func georefMinutes(digits string) (float64, error) {
	whole, err := strconv.Atoi(digits[:2])
	if err != nil {
		return 0, fmt.Errorf("parsing GEOREF minutes %q: %w", digits, err)
	}

	minutes := float64(whole)
	if len(digits) > 2 {
		frac, err := strconv.Atoi(digits[2:])
		if err != nil {
			return 0, fmt.Errorf("parsing GEOREF minutes %q: %w", digits, err)
		}

		minutes += float64(frac) / math.Pow(10, float64(len(digits)-2))
	}

	return minutes, nil
}
