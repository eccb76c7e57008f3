// Copyright 2026 The CoordKit Authors
// SPDX-License-Identifier: Apache-2.0

package parse

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/coordkit/coordkit/spatial"
)

var (
	// Something sexagesimal about the input: a degree/minute/second mark, a
	// lowercase unit letter run, or a cardinal letter attached to a number.
	reDMSIndicator = regexp.MustCompile(`(?i)\d\s*[°'"]|\d\s*d\s*\d|(^|[\s,;:])[NSEW]\s*[-+]?\d|\d\s*[NSEW]([\s,;:]|$)`)

	// Trailing "1234m" style elevation token; bare trailing numbers are
	// handled after grouping instead, where coordinate structure is known.
	reDMSElevation = regexp.MustCompile(`[\s,;]+[-+]?\d+(?:\.\d+)?\s*[mM]$`)

	// Lowercase d/m/s unit letters rewritten to the symbol forms. Uppercase
	// letters stay untouched: S and W are hemisphere letters.
	reUnitDeg = regexp.MustCompile(`(\d)\s*d`)
	reUnitMin = regexp.MustCompile(`(\d)\s*m`)
	reUnitSec = regexp.MustCompile(`(\d)\s*s`)

	reDMSToken = regexp.MustCompile(`([-+]?\d+(?:\.\d+)?)\s*([°'"])?|([NSEWnsew])|([,;])`)

	reDecimalPair = regexp.MustCompile(`^([-+]?\d+(?:\.\d+)?)\s*[,;\s]\s*([-+]?\d+(?:\.\d+)?)$`)
)

// dmsCodec parses sexagesimal degree notation in its many spellings:
// symbols (40°42'46"N), colons (40:42:46), lowercase unit letters
// (40d42m46s) and cardinal letters before or after the numbers. Hemisphere
// letters pin the axes; otherwise the caller's order preference applies.
type dmsCodec struct{}

func (dmsCodec) id() codecID { return idDMS }
func (dmsCodec) name() string { return "DMS" }
func (dmsCodec) tier() int { return TierDegrees }

func (dmsCodec) recognizes(text string) bool {
	return reDMSIndicator.MatchString(text)
}

// dmsGroup is one coordinate: up to three sexagesimal numbers and an
// optional hemisphere letter.
type dmsGroup struct {
	nums []float64
	card hemisphere
}

func (g dmsGroup) value() (float64, error) {
	if len(g.nums) == 0 || len(g.nums) > 3 {
		return 0, fmt.Errorf("coordinate has %d numeric parts, want 1 to 3", len(g.nums))
	}

	deg := g.nums[0]

	sign := 1.0
	if math.Signbit(deg) {
		sign, deg = -1, -deg
	}

	v := deg

	if len(g.nums) > 1 {
		m := g.nums[1]
		if m < 0 || m >= 60 {
			return 0, fmt.Errorf("minutes value %g outside [0, 60)", m)
		}

		v += m / 60
	}

	if len(g.nums) > 2 {
		s := g.nums[2]
		if s < 0 || s >= 60 {
			return 0, fmt.Errorf("seconds value %g outside [0, 60)", s)
		}

		v += s / 3600
	}

	return sign * v, nil
}

func (dmsCodec) decode(text string, opt Options) (*Result, error) {
	groups, err := dmsGroupText(text)
	if err != nil {
		return nil, err
	}

	// A bare single-number trailing group after two complete coordinates
	// is an elevation; drop it.
	if len(groups) == 3 && groups[2].card == 0 && len(groups[2].nums) == 1 {
		groups = groups[:2]
	}

	if len(groups) != 2 {
		return nil, fmt.Errorf("found %d coordinate groups, want 2", len(groups))
	}

	a, err := groups[0].value()
	if err != nil {
		return nil, err
	}

	b, err := groups[1].value()
	if err != nil {
		return nil, err
	}

	lat, lon, err := resolveAxes(a, b, groups[0].card, groups[1].card, opt.Order)
	if err != nil {
		return nil, err
	}

	return &Result{
		Point:  spatial.Point{Lat: lat, Lng: lon},
		CRS:    CRSWGS84,
		Format: "DMS",
	}, nil
}

// dmsGroupText tokenizes the text into numbers, unit marks and cardinal
// letters, and gathers them into coordinate groups. A degree mark or a
// list separator starts a new group; a cardinal letter closes one.
func dmsGroupText(text string) ([]dmsGroup, error) {
	work := reDMSElevation.ReplaceAllString(text, "")
	work = reUnitDeg.ReplaceAllString(work, "$1°")
	work = reUnitMin.ReplaceAllString(work, "$1'")
	work = reUnitSec.ReplaceAllString(work, `$1"`)

	var (
		groups []dmsGroup
		cur    dmsGroup
	)

	flush := func() {
		if len(cur.nums) > 0 || cur.card != 0 {
			groups = append(groups, cur)
			cur = dmsGroup{}
		}
	}

	for _, m := range reDMSToken.FindAllStringSubmatch(work, -1) {
		switch {
		case m[3] != "":
			card := hemisphere(m[3][0] &^ 0x20)
			if len(cur.nums) > 0 && cur.card == 0 {
				cur.card = card
				flush()
			} else {
				flush()

				cur.card = card
			}
		case m[4] != "":
			flush()
		case m[1] != "":
			v, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				return nil, fmt.Errorf("parsing %q: %w", m[1], err)
			}

			// A degree mark opens a new coordinate; minutes and seconds
			// extend the current one.
			if m[2] == "°" && len(cur.nums) > 0 {
				flush()
			} else if len(cur.nums) >= 3 {
				flush()
			}

			cur.nums = append(cur.nums, v)
		}
	}

	flush()

	return groups, nil
}

// decimalCodec parses a plain signed decimal pair. It refuses pairs that
// look like projected easting/northing values so that a malformed grid
// coordinate fails loudly instead of decoding to a nonsense location.
type decimalCodec struct{}

func (decimalCodec) id() codecID { return idDecimal }
func (decimalCodec) name() string { return "decimal degrees" }
func (decimalCodec) tier() int { return TierDegrees }

func (decimalCodec) recognizes(text string) bool {
	return reDecimalPair.MatchString(text)
}

func (decimalCodec) decode(text string, opt Options) (*Result, error) {
	m := reDecimalPair.FindStringSubmatch(text)
	if m == nil {
		return nil, fmt.Errorf("not a decimal coordinate pair: %q", text)
	}

	a, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", m[1], err)
	}

	b, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", m[2], err)
	}

	if looksProjected(a, b) {
		return nil, errors.New("magnitudes look like projected easting/northing, not geographic degrees")
	}

	lat, lon, err := resolveAxes(a, b, 0, 0, opt.Order)
	if err != nil {
		return nil, err
	}

	return &Result{
		Point:  spatial.Point{Lat: lat, Lng: lon},
		CRS:    CRSWGS84,
		Format: "decimal degrees",
	}, nil
}

// looksProjected reports whether a bare numeric pair is better explained
// as projected grid values than as degrees: a six-digit easting next to a
// zone-sized integer, or magnitudes beyond 180 in both axis orders.
func looksProjected(a, b float64) bool {
	absA, absB := math.Abs(a), math.Abs(b)

	utmLike := (absA >= 100000 && absA <= 900000 && absB <= 10000000) ||
		(absB >= 100000 && absB <= 900000 && absA <= 10000000)
	if utmLike {
		for _, v := range []float64{absA, absB} {
			if v >= 1 && v <= 60 && v == math.Trunc(v) {
				return true
			}
		}
	}

	if absA > 180 || absB > 180 {
		return !validGeographic(a, b) && !validGeographic(b, a)
	}

	return false
}
