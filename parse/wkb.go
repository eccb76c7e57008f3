// Copyright 2026 The CoordKit Authors
// SPDX-License-Identifier: Apache-2.0

package parse

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
)

// Flag bits PostGIS sets in the WKB geometry-type word.
const (
	wkbSRIDFlag = 0x20000000
	wkbZFlag    = 0x80000000
	wkbMFlag    = 0x40000000

	wkbPointType = 1

	// 1 byte order + 4 type + two 8-byte ordinates.
	wkbMinPointLen = 21
)

// wkbCodec decodes hex-encoded Well-Known Binary points: both byte orders,
// 2D and 3D (Z) variants, and the optional embedded SRID. It accepts the
// PostGIS flag-bit encoding as well as the ISO type-code offsets, which
// general geometry stacks tend to reject.
type wkbCodec struct{}

func (wkbCodec) id() codecID { return idWKB }
func (wkbCodec) name() string { return "WKB" }
func (wkbCodec) tier() int { return TierStructured }

func (wkbCodec) recognizes(text string) bool {
	compact := spaceless(text)

	return len(compact) >= 20 && len(compact)%2 == 0 && reHexRun.MatchString(compact)
}

func (wkbCodec) decode(text string, _ Options) (*Result, error) {
	raw, err := hex.DecodeString(spaceless(text))
	if err != nil {
		return nil, fmt.Errorf("decoding hex: %w", err)
	}

	x, y, srid, err := wkbPoint(raw)
	if err != nil {
		return nil, err
	}

	return pointInSRID(x, y, srid, "WKB")
}

// wkbPoint walks the binary layout: byte-order marker, geometry-type word
// (with SRID/Z/M flags), optional SRID, then the ordinates.
func wkbPoint(raw []byte) (x, y float64, srid int, err error) {
	if len(raw) < wkbMinPointLen {
		return 0, 0, 0, fmt.Errorf("WKB too short: %d bytes, need at least %d", len(raw), wkbMinPointLen)
	}

	var order binary.ByteOrder

	switch raw[0] {
	case 0:
		order = binary.BigEndian
	case 1:
		order = binary.LittleEndian
	default:
		return 0, 0, 0, fmt.Errorf("invalid byte-order marker 0x%02X", raw[0])
	}

	geomType := order.Uint32(raw[1:5])

	hasSRID := geomType&wkbSRIDFlag != 0
	base := geomType &^ wkbSRIDFlag
	hasZ := base&wkbZFlag != 0
	hasM := base&wkbMFlag != 0
	base &^= wkbZFlag | wkbMFlag

	// ISO WKB encodes the extra dimensions as type-code offsets instead
	// of flag bits: 1001 = Point Z, 2001 = Point M, 3001 = Point ZM.
	switch {
	case base >= 3000:
		hasZ, hasM = true, true
		base -= 3000
	case base >= 2000:
		hasM = true
		base -= 2000
	case base >= 1000:
		hasZ = true
		base -= 1000
	}

	if base != wkbPointType {
		return 0, 0, 0, fmt.Errorf("geometry type %d is not a point", base)
	}

	offset := 5

	if hasSRID {
		if len(raw) < offset+4 {
			return 0, 0, 0, errors.New("WKB truncated before SRID")
		}

		srid = int(order.Uint32(raw[offset : offset+4]))
		offset += 4
	}

	need := 16
	if hasZ {
		need += 8
	}

	if hasM {
		need += 8
	}

	if len(raw) < offset+need {
		return 0, 0, 0, fmt.Errorf("WKB truncated: need %d ordinate bytes, have %d", need, len(raw)-offset)
	}

	x = math.Float64frombits(order.Uint64(raw[offset : offset+8]))
	y = math.Float64frombits(order.Uint64(raw[offset+8 : offset+16]))

	// Z and M, when present, are read past and discarded.

	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return 0, 0, 0, errors.New("WKB ordinates are not finite")
	}

	return x, y, srid, nil
}
