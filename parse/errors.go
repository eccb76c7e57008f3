// Copyright 2026 The CoordKit Authors
// SPDX-License-Identifier: Apache-2.0

package parse

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies why an input could not be decoded.
type Kind int

const (
	// KindUnknown is an unclassified failure.
	KindUnknown Kind = iota
	// KindNoCandidate means no codec recognized the shape of the input.
	KindNoCandidate
	// KindAllCandidatesFailed means one or more codecs recognized the
	// shape but every structural decode attempt failed.
	KindAllCandidatesFailed
	// KindOutOfRange means the resolved point was numerically outside
	// geographic bounds after both axis-order attempts.
	KindOutOfRange
	// KindUnsupportedOptional means the input matches the shape of an
	// optional codec that is not available in this process.
	KindUnsupportedOptional
)

func (k Kind) String() string {
	switch k {
	case KindNoCandidate:
		return "no_candidate"
	case KindAllCandidatesFailed:
		return "all_candidates_failed"
	case KindOutOfRange:
		return "out_of_range"
	case KindUnsupportedOptional:
		return "unsupported_optional"
	default:
		return "unknown"
	}
}

// Error is the failure returned by Parse. It carries the ordered list of
// codecs that recognized the input so callers can present a specific
// diagnostic instead of a generic "could not parse".
type Error struct {
	Kind      Kind
	Message   string
	Attempted []string // codec names that recognized the input, in attempt order
	Err       error    // most specific structural error observed
}

func (e *Error) Error() string {
	msg := e.Message
	if len(e.Attempted) > 0 {
		msg = fmt.Sprintf("%s (tried %s)", msg, strings.Join(e.Attempted, ", "))
	}

	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}

	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// errOutOfRange marks a structural failure where a value survived format
// decoding but landed outside geographic bounds in every axis order.
var errOutOfRange = errors.New("coordinates out of valid range")

// IsNoCandidate reports whether the error means nothing recognized the input.
func IsNoCandidate(err error) bool {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Kind == KindNoCandidate
	}

	return false
}

// IsAllCandidatesFailed reports whether at least one codec recognized the
// input but every decode attempt failed structurally.
func IsAllCandidatesFailed(err error) bool {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Kind == KindAllCandidatesFailed
	}

	return false
}

// IsOutOfRange reports whether the decoded values were outside geographic
// bounds in both axis orders.
func IsOutOfRange(err error) bool {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Kind == KindOutOfRange
	}

	return false
}

// IsUnsupportedOptional reports whether the input matched the shape of an
// optional codec that is not registered in this process.
func IsUnsupportedOptional(err error) bool {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Kind == KindUnsupportedOptional
	}

	return false
}
