// Copyright 2026 The CoordKit Authors
// SPDX-License-Identifier: Apache-2.0

package parse

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/coordkit/coordkit/spatial"
)

// geoJSONCodec decodes a GeoJSON Point supplied as a bare geometry, a
// Feature, or a single-feature FeatureCollection. Coordinates are
// [longitude, latitude] by RFC 7946; the order preference is never
// consulted.
type geoJSONCodec struct{}

func (geoJSONCodec) id() codecID { return idGeoJSON }
func (geoJSONCodec) name() string { return "GeoJSON" }
func (geoJSONCodec) tier() int { return TierStructured }

func (geoJSONCodec) recognizes(text string) bool {
	return strings.HasPrefix(text, "{") &&
		(strings.Contains(text, `"coordinates"`) || strings.Contains(text, `"Point"`))
}

type geoJSONGeometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

type geoJSONFeature struct {
	Type     string           `json:"type"`
	Geometry *geoJSONGeometry `json:"geometry"`
}

type geoJSONCollection struct {
	Type     string           `json:"type"`
	Features []geoJSONFeature `json:"features"`
}

func (geoJSONCodec) decode(text string, _ Options) (*Result, error) {
	geom, err := extractGeometry([]byte(text))
	if err != nil {
		return nil, err
	}

	if geom.Type != "Point" {
		return nil, fmt.Errorf("GeoJSON geometry type %q is not a Point", geom.Type)
	}

	// Position is [lon, lat] with an optional third elevation element.
	if len(geom.Coordinates) < 2 {
		return nil, fmt.Errorf("GeoJSON position has %d elements, need at least 2", len(geom.Coordinates))
	}

	lon, lat := correctGeographicOrder(geom.Coordinates[0], geom.Coordinates[1])

	return &Result{
		Point:  spatial.Point{Lat: lat, Lng: lon},
		CRS:    CRSWGS84,
		Format: "GeoJSON",
	}, nil
}

func extractGeometry(data []byte) (*geoJSONGeometry, error) {
	var probe struct {
		Type string `json:"type"`
	}

	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("parsing GeoJSON: %w", err)
	}

	switch probe.Type {
	case "Feature":
		var feat geoJSONFeature
		if err := json.Unmarshal(data, &feat); err != nil {
			return nil, fmt.Errorf("parsing GeoJSON feature: %w", err)
		}

		if feat.Geometry == nil {
			return nil, errors.New("GeoJSON feature has no geometry")
		}

		return feat.Geometry, nil
	case "FeatureCollection":
		var coll geoJSONCollection
		if err := json.Unmarshal(data, &coll); err != nil {
			return nil, fmt.Errorf("parsing GeoJSON collection: %w", err)
		}

		if len(coll.Features) != 1 || coll.Features[0].Geometry == nil {
			return nil, fmt.Errorf("GeoJSON collection must hold exactly one feature with a geometry, has %d", len(coll.Features))
		}

		return coll.Features[0].Geometry, nil
	default:
		var geom geoJSONGeometry
		if err := json.Unmarshal(data, &geom); err != nil {
			return nil, fmt.Errorf("parsing GeoJSON geometry: %w", err)
		}

		return &geom, nil
	}
}
