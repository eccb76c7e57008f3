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

// UPS (Universal Polar Stereographic) constants: WGS84 ellipsoid, scale
// factor at the pole, 2,000 km false easting/northing.
const (
	upsScale        = 0.994
	upsFalseEasting = 2000000.0
	wgs84A          = 6378137.0
	wgs84F          = 1 / 298.257223563

	// Grid values outside this window are not valid UPS coordinates;
	// notably every UTM easting/northing falls outside or inside other
	// windows, so the check keeps the two systems from shadowing each
	// other.
	upsGridMin = 800000.0
	upsGridMax = 3200000.0
)

// "Z 2426773 1530125", "N 2426773 1530125"; A/B are the southern MGRS
// polar zones, Y/Z the northern ones.
var reUPS = regexp.MustCompile(`^([NSABYZ])\s+(\d+\.?\d*)\s+(\d+\.?\d*)$`)

// upsCodec decodes polar coordinates in the Universal Polar Stereographic
// grid, used above 84°N and below 80°S where UTM zones are undefined.
type upsCodec struct{}

func (upsCodec) id() codecID { return idUPS }
func (upsCodec) name() string { return "UPS" }
func (upsCodec) tier() int { return TierGrid }

func (upsCodec) recognizes(text string) bool {
	return reUPS.MatchString(strings.ToUpper(text))
}

func (upsCodec) decode(text string, _ Options) (*Result, error) {
	m := reUPS.FindStringSubmatch(strings.ToUpper(text))
	if m == nil {
		return nil, fmt.Errorf("not a UPS coordinate: %q", text)
	}

	north := m[1] == "N" || m[1] == "Y" || m[1] == "Z"

	easting, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return nil, fmt.Errorf("parsing easting: %w", err)
	}

	northing, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return nil, fmt.Errorf("parsing northing: %w", err)
	}

	if easting < upsGridMin || easting > upsGridMax || northing < upsGridMin || northing > upsGridMax {
		return nil, fmt.Errorf("easting/northing (%g, %g) outside the valid UPS window [%g, %g]",
			easting, northing, upsGridMin, upsGridMax)
	}

	lat, lon := upsToLatLon(easting, northing, north)

	return &Result{
		Point:  spatial.Point{Lat: lat, Lng: lon},
		CRS:    upsEPSG(north),
		Format: "UPS",
	}, nil
}

// upsToLatLon is the inverse polar stereographic projection (Snyder,
// "Map Projections: A Working Manual", eq. 21-39/3-5).
func upsToLatLon(easting, northing float64, north bool) (float64, float64) {
	e2 := wgs84F * (2 - wgs84F)
	e := math.Sqrt(e2)
	e4 := e2 * e2
	e6 := e4 * e2
	e8 := e6 * e2

	x := easting - upsFalseEasting
	y := northing - upsFalseEasting

	rho := math.Hypot(x, y)
	if rho == 0 {
		if north {
			return 90, 0
		}

		return -90, 0
	}

	t := rho * math.Sqrt(math.Pow(1+e, 1+e)*math.Pow(1-e, 1-e)) / (2 * wgs84A * upsScale)
	chi := math.Pi/2 - 2*math.Atan(t)

	phi := chi +
		(e2/2+5*e4/24+e6/12+13*e8/360)*math.Sin(2*chi) +
		(7*e4/48+29*e6/240+811*e8/11520)*math.Sin(4*chi) +
		(7*e6/120+81*e8/1120)*math.Sin(6*chi) +
		(4279*e8/161280)*math.Sin(8*chi)

	lat := phi * 180 / math.Pi

	var lon float64
	if north {
		lon = math.Atan2(x, -y) * 180 / math.Pi
	} else {
		lat = -lat
		lon = math.Atan2(x, y) * 180 / math.Pi
	}

	return lat, lon
}
