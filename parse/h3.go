// Copyright 2026 The CoordKit Authors
// SPDX-License-Identifier: Apache-2.0

package parse

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/uber/h3-go/v4"

	"github.com/coordkit/coordkit/spatial"
)

// h3Available reports whether H3 decoding was compiled in. The codec
// depends on the cgo H3 bindings, so deployments that cannot carry them
// run with Config.H3 disabled and this reports the default.
const h3Available = true

// A 15-digit hex string whose leading digit limits the encoded resolution
// to the 16 H3 levels. Case-insensitive, like the reference encoder's
// output.
var reH3Shape = regexp.MustCompile(`^[0-9a-fA-F]{15}$`)

// h3Codec decodes H3 cell indexes to the cell center, with the cell's
// hexagonal boundary collapsed to its bounding box as the footprint.
type h3Codec struct{}

func (h3Codec) id() codecID { return idH3 }
func (h3Codec) name() string { return "H3" }
func (h3Codec) tier() int { return TierHash }

func (h3Codec) recognizes(text string) bool {
	return reH3Shape.MatchString(spaceless(text))
}

func (h3Codec) decode(text string, _ Options) (*Result, error) {
	cell := h3.Cell(h3.IndexFromString(strings.ToLower(spaceless(text))))
	if !cell.IsValid() {
		return nil, fmt.Errorf("%q is not a valid H3 cell index", text)
	}

	center, err := cell.LatLng()
	if err != nil {
		return nil, fmt.Errorf("locating H3 cell: %w", err)
	}

	boundary, err := cell.Boundary()
	if err != nil {
		return nil, fmt.Errorf("tracing H3 cell boundary: %w", err)
	}

	if len(boundary) == 0 {
		return nil, fmt.Errorf("H3 cell %s has an empty boundary", cell)
	}

	minLat, minLng := boundary[0].Lat, boundary[0].Lng
	maxLat, maxLng := minLat, minLng

	for _, v := range boundary[1:] {
		minLat = min(minLat, v.Lat)
		maxLat = max(maxLat, v.Lat)
		minLng = min(minLng, v.Lng)
		maxLng = max(maxLng, v.Lng)
	}

	footprint := spatial.NewBoundingBox(minLat, minLng, maxLat, maxLng)

	return &Result{
		Point:     spatial.Point{Lat: center.Lat, Lng: center.Lng},
		Footprint: &footprint,
		CRS:       CRSWGS84,
		Format:    "H3",
	}, nil
}
