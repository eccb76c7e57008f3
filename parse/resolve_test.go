// Copyright 2026 The CoordKit Authors
// SPDX-License-Identifier: Apache-2.0

package parse

import (
	"testing"
)

func TestResolveAxes(t *testing.T) {
	tests := []struct {
		name    string
		a, b    float64
		ha, hb  hemisphere
		order   Order
		wantLat float64
		wantLng float64
		wantErr bool
	}{
		{
			name:  "both valid follows lat lon preference",
			a:     40.7128, b: -74.006,
			order:   OrderLatLon,
			wantLat: 40.7128, wantLng: -74.006,
		},
		{
			name:  "both valid follows lon lat preference",
			a:     40.7128, b: -74.006,
			order:   OrderLonLat,
			wantLat: -74.006, wantLng: 40.7128,
		},
		{
			name:  "preferred order invalid falls back",
			a:     91, b: 45,
			order:   OrderLatLon,
			wantLat: 45, wantLng: 91,
		},
		{
			name:  "preferred order valid stands",
			a:     45, b: 91,
			order:   OrderLatLon,
			wantLat: 45, wantLng: 91,
		},
		{
			name:  "letters override preference",
			a:     74.006, b: 40.7128,
			ha:    'W', hb: 'N',
			order:   OrderLatLon,
			wantLat: 40.7128, wantLng: -74.006,
		},
		{
			name:  "south and east negate",
			a:     34.6075616, b: 58.4370894,
			ha:    'S', hb: 'W',
			wantLat: -34.6075616, wantLng: -58.4370894,
		},
		{
			name:  "single letter pins its axis",
			a:     74.006, b: 40.7128,
			ha:    'E',
			wantLat: 40.7128, wantLng: 74.006,
		},
		{
			name:  "same axis letters conflict",
			a:     40, b: 50,
			ha:    'N', hb: 'S',
			wantErr: true,
		},
		{
			name:  "invalid in both orders",
			a:     91, b: 179,
			wantErr: true,
		},
		{
			name:  "letters cannot rescue out of range",
			a:     95, b: 40,
			ha:    'N', hb: 'E',
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lat, lng, err := resolveAxes(tt.a, tt.b, tt.ha, tt.hb, tt.order)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("resolveAxes() = (%g, %g), want error", lat, lng)
				}

				return
			}

			if err != nil {
				t.Fatalf("resolveAxes() error: %v", err)
			}

			if lat != tt.wantLat || lng != tt.wantLng {
				t.Errorf("resolveAxes() = (%g, %g), want (%g, %g)", lat, lng, tt.wantLat, tt.wantLng)
			}
		})
	}
}
