// Package regions implements the textual spacing-region grammar used
// to describe runs of evenly spaced rebars.
//
// A specification is one or more terms joined by '+'. Each term is
// either "N*S" (N bars at spacing S), a bare "S" (a single region of
// length S with spacing S), or "$*S" / "$" (an open region whose
// length is resolved later from the remaining path length). Exactly
// one open term must appear.
package regions

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrMalformedSpecification is returned when a region string fails the
// grammar or does not contain exactly one open term.
var ErrMalformedSpecification = errors.New("regions: malformed specification")

// Region describes a contiguous run of bars along the placement path.
// Length is the total extent of the region, zero for the open region
// until the layout step resolves it. Diameter is carried through for
// downstream cover calculations and is never reinterpreted here.
type Region struct {
	Length   float64
	Spacing  float64
	Diameter float64

	// Open marks the one region whose length is back-computed from
	// the placement path. It stays true after the layout step has
	// resolved the length.
	Open bool
}

// IsOpen reports whether the region is the open one.
func (r Region) IsOpen() bool {
	return r.Open || r.Length == 0
}

var specPattern = regexp.MustCompile(`^(\d+|\$)\*?(\d+(\.\d+)?)(\+(\d+|\$)\*?(\d+(\.\d+)?))*$`)

// Parse converts a region specification into an ordered region list.
// The order of the returned regions matches the left-to-right order of
// the terms and determines the placement order along the path.
func Parse(spec string, diameter float64) ([]Region, error) {
	if !specPattern.MatchString(spec) {
		return nil, fmt.Errorf("%w: %q does not match the region grammar", ErrMalformedSpecification, spec)
	}
	if n := strings.Count(spec, "$"); n != 1 {
		return nil, fmt.Errorf("%w: %q must contain exactly one open term, has %d", ErrMalformedSpecification, spec, n)
	}

	terms := strings.Split(spec, "+")
	out := make([]Region, 0, len(terms))
	for _, term := range terms {
		region, err := parseTerm(term, diameter)
		if err != nil {
			return nil, err
		}
		out = append(out, region)
	}
	return out, nil
}

func parseTerm(term string, diameter float64) (Region, error) {
	switch {
	case strings.Contains(term, "$"):
		// Open region: count unresolved, length stays zero.
		spacingStr := strings.TrimPrefix(term, "$")
		spacingStr = strings.TrimPrefix(spacingStr, "*")
		if spacingStr == "" {
			spacingStr = "1"
		}
		spacing, err := strconv.ParseFloat(spacingStr, 64)
		if err != nil {
			return Region{}, fmt.Errorf("%w: term %q: %v", ErrMalformedSpecification, term, err)
		}
		return Region{Length: 0, Spacing: spacing, Diameter: diameter, Open: true}, nil

	case strings.Contains(term, "*"):
		countStr, spacingStr, _ := strings.Cut(term, "*")
		count, err := strconv.Atoi(countStr)
		if err != nil {
			return Region{}, fmt.Errorf("%w: term %q: %v", ErrMalformedSpecification, term, err)
		}
		spacing, err := strconv.ParseFloat(spacingStr, 64)
		if err != nil {
			return Region{}, fmt.Errorf("%w: term %q: %v", ErrMalformedSpecification, term, err)
		}
		return Region{Length: float64(count) * spacing, Spacing: spacing, Diameter: diameter}, nil

	default:
		// Bare spacing: a single region of length == spacing.
		spacing, err := strconv.ParseFloat(term, 64)
		if err != nil {
			return Region{}, fmt.Errorf("%w: term %q: %v", ErrMalformedSpecification, term, err)
		}
		return Region{Length: spacing, Spacing: spacing, Diameter: diameter}, nil
	}
}
