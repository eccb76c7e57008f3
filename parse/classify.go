// Copyright 2026 The CoordKit Authors
// SPDX-License-Identifier: Apache-2.0

package parse

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// codecID is the stable identity of a codec inside the registry.
type codecID uint8

const (
	idEWKT codecID = iota
	idGeoJSON
	idWKB
	idWKT
	idMGRS
	idUTM
	idUPS
	idPlusCode
	idGeoref
	idMaidenhead
	idH3
	idGeohash
	idDMS
	idDecimal
	numCodecs
)

// candidateSet is a bitmask of codecs still worth invoking for an input.
type candidateSet uint32

const allCandidates = candidateSet(1)<<numCodecs - 1

func bit(id codecID) candidateSet {
	return 1 << id
}

func (c candidateSet) has(id codecID) bool {
	return c&bit(id) != 0
}

var (
	reSRIDPrefix = regexp.MustCompile(`(?i)^SRID=\d+;`)
	reWKTAnchor  = regexp.MustCompile(`(?i)\b(POINT|MULTIPOINT|POLYGON)\s*Z?\s*M?\s*\(`)
	// Charset whitelist for everything that is not a structured geometry
	// encoding. Grid, hash and degree notations are plain ASCII plus the
	// degree/minute/second marks.
	reInvalidChars = regexp.MustCompile(`[^0-9a-zA-Z\s.,;:+\-°'"\[\]]`)
	reHexRun       = regexp.MustCompile(`^[0-9A-Fa-f]+$`)
)

// symbolFold maps typographic variants of the degree, minute and second
// marks onto the canonical ones before tokenizing. The masculine ordinal
// must be folded before NFKC, which would otherwise turn it into an "o".
var symbolFold = strings.NewReplacer(
	"º", "°",
	"˚", "°",
	"′", "'",
	"’", "'",
	"‘", "'",
	"″", `"`,
	"”", `"`,
	"“", `"`,
	"−", "-",
)

// normalizeInput trims the text and folds typographic symbol variants and
// compatibility characters (fullwidth digits, etc.) pasted from documents.
func normalizeInput(text string) string {
	return norm.NFKC.String(symbolFold.Replace(strings.TrimSpace(text)))
}

// spaceless drops every whitespace rune.
func spaceless(text string) string {
	return strings.Join(strings.Fields(text), "")
}

// classify performs the cheap structural triage that narrows the codec set
// before any decode attempt. It may over-admit candidates but never
// excludes the true match: correctness of disambiguation belongs to the
// registry, not here.
func classify(text string) candidateSet {
	if len(text) < 2 {
		return 0
	}

	// Strong anchors identify structured encodings outright. Their
	// payloads (SRID numbers, JSON property values, WKT bodies) are not
	// bound by the plain-text charset whitelist.
	if reSRIDPrefix.MatchString(text) {
		return bit(idEWKT)
	}

	if strings.HasPrefix(text, "{") {
		return bit(idGeoJSON)
	}

	if reWKTAnchor.MatchString(text) {
		return bit(idWKT)
	}

	if reInvalidChars.MatchString(text) {
		return 0
	}

	set := allCandidates &^ (bit(idEWKT) | bit(idGeoJSON) | bit(idWKT))

	// WKB and H3 need an unbroken hex run; WKB additionally an even
	// length (whole bytes) and a leading byte-order marker.
	compact := spaceless(text)
	if !reHexRun.MatchString(compact) {
		set &^= bit(idWKB) | bit(idH3)
	} else if len(compact)%2 != 0 || len(compact) < 20 ||
		(!strings.HasPrefix(compact, "00") && !strings.HasPrefix(compact, "01")) {
		set &^= bit(idWKB)
	}

	// A '+' at other than a leading sign position is the Plus Code
	// separator; no grid or hash format contains one.
	if strings.Contains(strings.TrimPrefix(text, "+"), "+") {
		set &= bit(idPlusCode) | bit(idDMS) | bit(idDecimal)
	}

	return set
}
