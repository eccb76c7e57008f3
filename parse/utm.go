// Copyright 2026 The CoordKit Authors
// SPDX-License-Identifier: Apache-2.0

package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/im7mortal/UTM"

	"github.com/coordkit/coordkit/spatial"
)

var (
	// "33N 315428 5741324" and the same with a trailing elevation token,
	// which is recognized so it can be rejected explicitly instead of
	// leaking into the degree parsers as a third coordinate.
	reUTMStandard = regexp.MustCompile(`^(\d{1,2})\s*([NS])\s+(\d+\.?\d*)\s+(\d+\.?\d*)((?:\s+\d+\.?\d*M?)*)$`)
	// "315428mE 5741324mN 33N" / "315428,5741324,33,N" variants.
	reUTMSuffixed = regexp.MustCompile(`^(\d+\.?\d*)\s*M?\s*E\s*,?\s*(\d+\.?\d*)\s*M?\s*N\s*,?\s*(\d{1,2})\s*,?\s*([NS])((?:\s*,?\s*\d+\.?\d*\s*M?)*)$`)
	reUTMCommas   = regexp.MustCompile(`^(\d+\.?\d*)\s*,\s*(\d+\.?\d*)\s*,\s*(\d{1,2})\s*,?\s*([NS])$`)
)

// utmCodec decodes Universal Transverse Mercator coordinates and reports
// the originating projected zone as the source reference system. A fourth
// bare numeric token (elevation) is a structural failure: absorbing it
// would let the string be misread as a lat/lon/elevation triple.
type utmCodec struct{}

func (utmCodec) id() codecID { return idUTM }
func (utmCodec) name() string { return "UTM" }
func (utmCodec) tier() int { return TierGrid }

func (utmCodec) recognizes(text string) bool {
	upper := strings.ToUpper(text)

	return reUTMStandard.MatchString(upper) ||
		reUTMSuffixed.MatchString(upper) ||
		reUTMCommas.MatchString(upper)
}

func (utmCodec) decode(text string, _ Options) (*Result, error) {
	zone, north, easting, northing, err := utmFields(strings.ToUpper(text))
	if err != nil {
		return nil, err
	}

	lat, lon, err := UTM.ToLatLon(easting, northing, zone, "", north)
	if err != nil {
		return nil, fmt.Errorf("converting UTM %d easting=%g northing=%g: %w", zone, easting, northing, err)
	}

	return &Result{
		Point:  spatial.Point{Lat: lat, Lng: lon},
		CRS:    utmEPSG(zone, north),
		Format: "UTM",
	}, nil
}

func utmFields(upper string) (zone int, north bool, easting, northing float64, err error) {
	var m []string

	switch {
	case reUTMStandard.MatchString(upper):
		g := reUTMStandard.FindStringSubmatch(upper)
		if strings.TrimSpace(g[5]) != "" {
			return 0, false, 0, 0, fmt.Errorf("trailing token %q after easting/northing: elevation is not part of a UTM coordinate", strings.TrimSpace(g[5]))
		}

		m = []string{g[1], g[2], g[3], g[4]}
	case reUTMSuffixed.MatchString(upper):
		g := reUTMSuffixed.FindStringSubmatch(upper)
		if strings.TrimSpace(g[5]) != "" {
			return 0, false, 0, 0, fmt.Errorf("trailing token %q after zone: elevation is not part of a UTM coordinate", strings.TrimSpace(g[5]))
		}

		m = []string{g[3], g[4], g[1], g[2]}
	case reUTMCommas.MatchString(upper):
		g := reUTMCommas.FindStringSubmatch(upper)
		m = []string{g[3], g[4], g[1], g[2]}
	default:
		return 0, false, 0, 0, fmt.Errorf("not a UTM coordinate: %q", upper)
	}

	zone, err = strconv.Atoi(m[0])
	if err != nil || zone < 1 || zone > 60 {
		return 0, false, 0, 0, fmt.Errorf("invalid UTM zone %q", m[0])
	}

	easting, err = strconv.ParseFloat(m[2], 64)
	if err != nil {
		return 0, false, 0, 0, fmt.Errorf("parsing easting: %w", err)
	}

	northing, err = strconv.ParseFloat(m[3], 64)
	if err != nil {
		return 0, false, 0, 0, fmt.Errorf("parsing northing: %w", err)
	}

	return zone, m[1] == "N", easting, northing, nil
}
