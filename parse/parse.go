// Copyright 2026 The CoordKit Authors
// SPDX-License-Identifier: Apache-2.0

package parse

import (
	"errors"
	"fmt"
	"sort"
)

// Tier groups codecs from least to most ambiguous. The registry exhausts a
// tier before moving to the next one, so a loose lower-priority format can
// never steal an input from a self-describing one.
const (
	// TierStructured holds self-describing geometry encodings (EWKT,
	// GeoJSON, WKB, WKT) whose axis order is fixed by their own spec.
	TierStructured = iota
	// TierGrid holds grid reference systems (MGRS, UTM, UPS, Plus Codes),
	// unambiguous once their pattern matches.
	TierGrid
	// TierHash holds hash/locator encodings (GEOREF, Maidenhead, H3,
	// Geohash) whose pattern space can overlap the grid systems.
	TierHash
	// TierDegrees holds degree notations (DMS, decimal), inherently
	// axis-ambiguous without hemisphere letters and always tried last.
	TierDegrees
)

// codec is the capability pair every format implements. recognizes must be
// cheap and side-effect free; it only exists to avoid invoking decode on
// inputs that cannot possibly match.
type codec interface {
	id() codecID
	name() string
	tier() int
	recognizes(text string) bool
	decode(text string, opt Options) (*Result, error)
}

// Config selects the optional codecs registered at construction time.
type Config struct {
	// H3 registers the H3 cell index codec. Its absence changes only the
	// candidate-set size, never another codec's behavior.
	H3 bool
}

// DefaultConfig enables every codec compiled into the binary.
func DefaultConfig() Config {
	return Config{H3: h3Available}
}

// Parser is the immutable codec registry. It is constructed once,
// holds no per-call state, and may be shared by any number of
// concurrent Parse calls without coordination.
type Parser struct {
	codecs []codec
	h3     bool
}

// New constructs a registry with the given optional-codec configuration.
func New(cfg Config) *Parser {
	codecs := []codec{
		ewktCodec{},
		geoJSONCodec{},
		wkbCodec{},
		wktCodec{},
		mgrsCodec{},
		utmCodec{},
		upsCodec{},
		plusCodeCodec{},
		georefCodec{},
		maidenheadCodec{},
	}

	if cfg.H3 && h3Available {
		codecs = append(codecs, h3Codec{})
	}

	codecs = append(codecs,
		geohashCodec{},
		dmsCodec{},
		decimalCodec{},
	)

	// Tier order first, registration order within a tier.
	sort.SliceStable(codecs, func(i, j int) bool {
		return codecs[i].tier() < codecs[j].tier()
	})

	return &Parser{codecs: codecs, h3: cfg.H3 && h3Available}
}

var defaultParser = New(DefaultConfig())

// Parse decodes text using the process-wide default registry.
func Parse(text string, opt Options) (*Result, error) {
	return defaultParser.Parse(text, opt)
}

// Formats returns the registered codec names in evaluation order.
func (p *Parser) Formats() []string {
	names := make([]string, 0, len(p.codecs))
	for _, c := range p.codecs {
		names = append(names, c.name())
	}

	return names
}

// Tiers returns the priority tier of each registered codec, aligned with
// Formats.
func (p *Parser) Tiers() []int {
	tiers := make([]int, 0, len(p.codecs))
	for _, c := range p.codecs {
		tiers = append(tiers, c.tier())
	}

	return tiers
}

// Parse decodes one coordinate string. The first codec that both
// recognizes the shape and decodes it structurally wins; structural
// failures are swallowed and iteration continues. A successful decode in
// an early tier is final: later, looser formats never get to second-guess
// it.
func (p *Parser) Parse(text string, opt Options) (*Result, error) {
	normalized := normalizeInput(text)
	if normalized == "" {
		return nil, &Error{Kind: KindNoCandidate, Message: "empty input"}
	}

	candidates := classify(normalized)

	var attempted []string

	var nearest error

	for _, c := range p.codecs {
		if !candidates.has(c.id()) || !c.recognizes(normalized) {
			continue
		}

		res, err := c.decode(normalized, opt)
		if err == nil {
			err = validateResult(res)
		}

		if err == nil {
			return res, nil
		}

		attempted = append(attempted, c.name())

		// The earliest recognized codec is the most specific match, so
		// its structural error is the best diagnostic we can offer.
		if nearest == nil {
			nearest = fmt.Errorf("%s: %w", c.name(), err)
		}
	}

	if len(attempted) == 0 {
		if !p.h3 && reH3Shape.MatchString(spaceless(normalized)) {
			return nil, &Error{
				Kind:    KindUnsupportedOptional,
				Message: "input matches the H3 cell index format but the H3 codec is not enabled",
			}
		}

		return nil, &Error{Kind: KindNoCandidate, Message: "no coordinate format recognized"}
	}

	kind := KindAllCandidatesFailed
	if errors.Is(nearest, errOutOfRange) {
		kind = KindOutOfRange
	}

	return nil, &Error{
		Kind:      kind,
		Message:   "no candidate decoded the input",
		Attempted: attempted,
		Err:       nearest,
	}
}

// validateResult is the final range and footprint check before a result is
// surfaced. A violation is a structural decode failure, not a separate
// error path.
func validateResult(res *Result) error {
	if !res.Point.Valid() {
		return fmt.Errorf("%w: lat=%g lon=%g", errOutOfRange, res.Point.Lat, res.Point.Lng)
	}

	if res.Footprint != nil {
		if !res.Footprint.Valid() {
			return fmt.Errorf("degenerate footprint %v", res.Footprint)
		}

		if !res.Footprint.Contains(res.Point) {
			return fmt.Errorf("footprint %v does not contain point %v", res.Footprint, res.Point)
		}
	}

	return nil
}
