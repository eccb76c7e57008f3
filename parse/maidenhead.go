// Copyright 2026 The CoordKit Authors
// SPDX-License-Identifier: Apache-2.0

package parse

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/coordkit/coordkit/spatial"
)

// Field pair (A-R), square digits, optional subsquare letters (A-X) and
// optional extended square digits: "JJ00", "JN58td", "FN20xr21".
var reMaidenhead = regexp.MustCompile(`^[A-R]{2}\d{2}([A-X]{2}(\d{2})?)?$`)

// maidenheadCodec decodes amateur-radio Maidenhead grid locators. Each
// letter or digit pair refines the cell; the reported point is the cell
// center and the footprint covers the whole cell.
type maidenheadCodec struct{}

func (maidenheadCodec) id() codecID { return idMaidenhead }
func (maidenheadCodec) name() string { return "Maidenhead" }
func (maidenheadCodec) tier() int { return TierHash }

// Input casing is not significant; "jn58td" and "JN58TD" are the same
// locator.
func (maidenheadCodec) recognizes(text string) bool {
	return reMaidenhead.MatchString(strings.ToUpper(spaceless(text)))
}

func (maidenheadCodec) decode(text string, _ Options) (*Result, error) {
	loc := strings.ToUpper(spaceless(text))
	if !reMaidenhead.MatchString(loc) {
		return nil, fmt.Errorf("not a Maidenhead locator: %q", text)
	}

	lon, lat := -180.0, -90.0
	lonSize, latSize := 20.0, 10.0

	// Field: 18x18 cells of 20°x10°.
	lon += float64(loc[0]-'A') * lonSize
	lat += float64(loc[1]-'A') * latSize

	// Square: 10x10 cells of 2°x1°.
	lonSize, latSize = 2, 1
	lon += float64(loc[2]-'0') * lonSize
	lat += float64(loc[3]-'0') * latSize

	if len(loc) >= 6 {
		// Subsquare: 24x24 cells of 5'x2.5'.
		lonSize, latSize = 2.0/24, 1.0/24
		lon += float64(loc[4]-'A') * lonSize
		lat += float64(loc[5]-'A') * latSize
	}

	if len(loc) == 8 {
		// Extended square: 10x10 again.
		lonSize, latSize = lonSize/10, latSize/10
		lon += float64(loc[6]-'0') * lonSize
		lat += float64(loc[7]-'0') * latSize
	}

	footprint := spatial.NewBoundingBox(lat, lon, lat+latSize, lon+lonSize)

	return &Result{
		Point:     spatial.Point{Lat: lat + latSize/2, Lng: lon + lonSize/2},
		Footprint: &footprint,
		CRS:       CRSWGS84,
		Format:    "Maidenhead",
	}, nil
}
