// Copyright 2026 The CoordKit Authors
// SPDX-License-Identifier: Apache-2.0

package parse

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/im7mortal/UTM"

	"github.com/coordkit/coordkit/spatial"
)

var reMGRS = regexp.MustCompile(`^(\d{1,2})([C-HJ-NP-X])([A-HJ-NP-Z])([A-HJ-NP-V])(\d+)$`)

// MGRS letter tables. I and O are never used; the 100 km column letters
// cycle every 3 zones and the row letters alternate between odd and even
// zones.
const (
	mgrsLatBands = "CDEFGHJKLMNPQRSTUVWX"
	mgrsRowsOdd  = "ABCDEFGHJKLMNPQRSTUV"
	mgrsRowsEven = "FGHJKLMNPQRSTUVABCDE"
)

var mgrsColumnSets = [3]string{"ABCDEFGH", "JKLMNPQR", "STUVWXYZ"}

// mgrsCodec decodes Military Grid Reference System cells: zone, latitude
// band, 100 km square letters and an even run of digits. The digit count
// sets the cell size (10 digits = 1 m, 4 digits = 1 km); the reported
// point is the cell center and the footprint is the full cell.
type mgrsCodec struct{}

func (mgrsCodec) id() codecID { return idMGRS }
func (mgrsCodec) name() string { return "MGRS" }
func (mgrsCodec) tier() int { return TierGrid }

func (mgrsCodec) recognizes(text string) bool {
	return reMGRS.MatchString(spaceless(strings.ToUpper(text)))
}

func (mgrsCodec) decode(text string, _ Options) (*Result, error) {
	m := reMGRS.FindStringSubmatch(spaceless(strings.ToUpper(text)))
	if m == nil {
		return nil, fmt.Errorf("not an MGRS reference: %q", text)
	}

	digits := m[5]
	if len(digits)%2 != 0 || len(digits) > 10 {
		return nil, fmt.Errorf("MGRS digit run must be an even count of at most 10, got %d", len(digits))
	}

	zone, err := strconv.Atoi(m[1])
	if err != nil || zone < 1 || zone > 60 {
		return nil, fmt.Errorf("invalid MGRS zone %q", m[1])
	}

	band := m[2][0]

	easting, northing, cellSize, err := mgrsGrid(zone, band, m[3][0], m[4][0], digits)
	if err != nil {
		return nil, err
	}

	// Cell center by convention; the corners bound the footprint.
	centerLat, centerLon, err := UTM.ToLatLon(easting+cellSize/2, northing+cellSize/2, zone, string(band))
	if err != nil {
		return nil, fmt.Errorf("converting MGRS cell: %w", err)
	}

	swLat, swLon, err := UTM.ToLatLon(easting, northing, zone, string(band))
	if err != nil {
		return nil, fmt.Errorf("converting MGRS cell corner: %w", err)
	}

	neLat, neLon, err := UTM.ToLatLon(easting+cellSize, northing+cellSize, zone, string(band))
	if err != nil {
		return nil, fmt.Errorf("converting MGRS cell corner: %w", err)
	}

	footprint := spatial.NewBoundingBox(swLat, swLon, neLat, neLon)
	north := strings.IndexByte(mgrsLatBands, band) >= strings.IndexByte(mgrsLatBands, 'N')

	return &Result{
		Point:     spatial.Point{Lat: centerLat, Lng: centerLon},
		Footprint: &footprint,
		CRS:       utmEPSG(zone, north),
		Format:    "MGRS",
	}, nil
}

// mgrsGrid resolves the 100 km square letters and the digit run into full
// UTM easting/northing of the cell's southwest corner, plus the cell size
// in meters.
func mgrsGrid(zone int, band, colLetter, rowLetter byte, digits string) (easting, northing, cellSize float64, err error) {
	colSet := mgrsColumnSets[(zone-1)%3]

	col := strings.IndexByte(colSet, colLetter)
	if col < 0 {
		return 0, 0, 0, fmt.Errorf("column letter %c is not valid in zone %d", colLetter, zone)
	}

	rows := mgrsRowsOdd
	if zone%2 == 0 {
		rows = mgrsRowsEven
	}

	row := strings.IndexByte(rows, rowLetter)
	if row < 0 {
		return 0, 0, 0, fmt.Errorf("row letter %c is not valid in zone %d", rowLetter, zone)
	}

	e100k := float64(col+1) * 100000
	n100k := float64(row) * 100000

	half := len(digits) / 2
	cellSize = math.Pow(10, float64(5-half))

	var eastOff, northOff float64

	if half > 0 {
		e, _ := strconv.Atoi(digits[:half])
		n, _ := strconv.Atoi(digits[half:])
		eastOff = float64(e) * cellSize
		northOff = float64(n) * cellSize
	}

	// The row letters repeat every 2,000 km; the latitude band picks the
	// repetition that lands inside it.
	bandIdx := strings.IndexByte(mgrsLatBands, band)
	if bandIdx < 0 {
		return 0, 0, 0, fmt.Errorf("invalid latitude band %c", band)
	}

	bandBottom := float64(bandIdx)*8 - 80
	zoneCenterLon := float64(zone-1)*6 - 180 + 3

	_, bandNorthing, _, _, err := UTM.FromLatLon(bandBottom, zoneCenterLon, bandBottom >= 0)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("locating latitude band %c: %w", band, err)
	}

	bandFloor := math.Floor(bandNorthing/100000) * 100000

	northing = n100k + northOff
	for northing < bandFloor {
		northing += 2000000
	}

	return e100k + eastOff, northing, cellSize, nil
}
