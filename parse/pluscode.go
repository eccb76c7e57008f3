// Copyright 2026 The CoordKit Authors
// SPDX-License-Identifier: Apache-2.0

package parse

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	olc "github.com/google/open-location-code/go"

	"github.com/coordkit/coordkit/spatial"
)

// Base-20 alphabet with the '+' separator after the 8th digit; shorter
// prefixes before '+' are short codes relative to some reference place.
var rePlusCode = regexp.MustCompile(`(?i)^[23456789CFGHJMPQRVWX0]{2,8}\+[23456789CFGHJMPQRVWX]*$`)

// plusCodeCodec decodes Open Location Codes. Full codes are globally
// unambiguous; short codes are only decodable against a caller-supplied
// reference location.
type plusCodeCodec struct{}

func (plusCodeCodec) id() codecID { return idPlusCode }
func (plusCodeCodec) name() string { return "Plus Codes" }
func (plusCodeCodec) tier() int { return TierGrid }

func (plusCodeCodec) recognizes(text string) bool {
	return rePlusCode.MatchString(spaceless(text))
}

func (plusCodeCodec) decode(text string, opt Options) (*Result, error) {
	code := strings.ToUpper(spaceless(text))

	if olc.CheckFull(code) != nil {
		if opt.Reference == nil {
			return nil, errors.New("short Plus Code needs a reference location to recover the full code")
		}

		full, err := olc.RecoverNearest(code, opt.Reference.Lat, opt.Reference.Lng)
		if err != nil {
			return nil, fmt.Errorf("recovering short Plus Code: %w", err)
		}

		code = full
	}

	area, err := olc.Decode(code)
	if err != nil {
		return nil, fmt.Errorf("decoding Plus Code: %w", err)
	}

	lat, lng := area.Center()
	footprint := spatial.NewBoundingBox(area.LatLo, area.LngLo, area.LatHi, area.LngHi)

	return &Result{
		Point:     spatial.Point{Lat: lat, Lng: lng},
		Footprint: &footprint,
		CRS:       CRSWGS84,
		Format:    "Plus Codes",
	}, nil
}
