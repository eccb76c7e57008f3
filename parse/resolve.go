// Copyright 2026 The CoordKit Authors
// SPDX-License-Identifier: Apache-2.0

package parse

import (
	"fmt"
)

// hemisphere is the cardinal letter attached to a numeric token, or 0 when
// the token carries none.
type hemisphere byte

func (h hemisphere) latitude() bool {
	return h == 'N' || h == 'S'
}

func (h hemisphere) longitude() bool {
	return h == 'E' || h == 'W'
}

func (h hemisphere) negative() bool {
	return h == 'S' || h == 'W'
}

func validGeographic(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// resolveAxes assigns two bare numeric values to latitude and longitude.
//
// Hemisphere letters win over everything: a token marked N/S is latitude
// and one marked E/W is longitude, regardless of position or preference.
// Without letters the caller's order preference assigns the axes; if that
// assignment is out of geographic range the opposite order is tried. When
// both orders are range-valid the preference stands uncorrected.
func resolveAxes(a, b float64, ha, hb hemisphere, order Order) (float64, float64, error) {
	if ha != 0 || hb != 0 {
		return resolveByHemisphere(a, b, ha, hb)
	}

	latLonValid := validGeographic(a, b)
	lonLatValid := validGeographic(b, a)

	// Both orders plausible: the preference decides, no second-guessing.
	if latLonValid && lonLatValid {
		if order == OrderLatLon {
			return a, b, nil
		}

		return b, a, nil
	}

	if order == OrderLatLon && latLonValid {
		return a, b, nil
	}

	if order == OrderLonLat && lonLatValid {
		return b, a, nil
	}

	// Preferred order failed range validation: try the opposite one.
	if latLonValid {
		return a, b, nil
	}

	if lonLatValid {
		return b, a, nil
	}

	return 0, 0, fmt.Errorf("%w in both lat/lon and lon/lat orders (%g, %g)", errOutOfRange, a, b)
}

func resolveByHemisphere(a, b float64, ha, hb hemisphere) (float64, float64, error) {
	if ha != 0 && hb != 0 && ha.latitude() == hb.latitude() {
		return 0, 0, fmt.Errorf("hemisphere letters %c and %c name the same axis", ha, hb)
	}

	var lat, lon float64

	switch {
	case ha.latitude(), hb.longitude():
		lat, lon = a, b
		if ha.negative() {
			lat = -lat
		}

		if hb.negative() {
			lon = -lon
		}
	default:
		lat, lon = b, a
		if hb.negative() {
			lat = -lat
		}

		if ha.negative() {
			lon = -lon
		}
	}

	if !validGeographic(lat, lon) {
		return 0, 0, fmt.Errorf("%w: lat=%g lon=%g", errOutOfRange, lat, lon)
	}

	return lat, lon, nil
}
