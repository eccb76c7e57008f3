// Copyright 2026 The CoordKit Authors
// SPDX-License-Identifier: Apache-2.0

package parse

import (
	"fmt"
	"regexp"
	"strings"

	geohash "github.com/TomiHiltunen/geohash-golang"

	"github.com/coordkit/coordkit/spatial"
)

// Base-32 alphabet without a, i, l and o. Length 3 is the shortest hash
// worth decoding; shorter strings collide with far too much other input.
var reGeohash = regexp.MustCompile(`^[0123456789bcdefghjkmnpqrstuvwxyz]{3,12}$`)

// geohashCodec decodes base-32 geohashes to the cell center plus the cell
// bounds. Every geohash is also a plausible Maidenhead or MGRS fragment,
// so the codec stands aside whenever a stricter grid shape matches; tier
// ordering handles the rest.
type geohashCodec struct{}

func (geohashCodec) id() codecID { return idGeohash }
func (geohashCodec) name() string { return "Geohash" }
func (geohashCodec) tier() int { return TierHash }

func (geohashCodec) recognizes(text string) bool {
	lower := strings.ToLower(spaceless(text))
	if !reGeohash.MatchString(lower) {
		return false
	}

	upper := strings.ToUpper(lower)
	if reMGRS.MatchString(upper) || reGeoref.MatchString(upper) || reMaidenhead.MatchString(upper) {
		return false
	}

	return !reH3Shape.MatchString(lower)
}

func (geohashCodec) decode(text string, _ Options) (*Result, error) {
	hash := strings.ToLower(spaceless(text))
	if !reGeohash.MatchString(hash) {
		return nil, fmt.Errorf("not a geohash: %q", text)
	}

	box := geohash.Decode(hash)
	if box == nil {
		return nil, fmt.Errorf("decoding geohash %q", hash)
	}

	center := box.Center()
	sw := box.SouthWest()
	ne := box.NorthEast()

	footprint := spatial.NewBoundingBox(sw.Lat(), sw.Lng(), ne.Lat(), ne.Lng())

	return &Result{
		Point:     spatial.Point{Lat: center.Lat(), Lng: center.Lng()},
		Footprint: &footprint,
		CRS:       CRSWGS84,
		Format:    "Geohash",
	}, nil
}
