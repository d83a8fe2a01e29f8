// Package placement implements the geometric placement engine: laying
// out spacing regions along a placement line, stamping bar-group
// placements from a baseline bending shape, partitioning a polygonal
// placement outline into elementary quadrilateral cells, and building
// per-cell placements with locally distorted shape instances.
//
// The package performs no I/O and keeps no state across calls; every
// operation is safe to invoke repeatedly with speculative input from a
// live preview loop.
package placement

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/bmarciniec/place-in-regions/pkg/geo"
	"github.com/bmarciniec/place-in-regions/pkg/shape"
)

// BarPlacement is the output unit of the engine: one group of evenly
// spaced bars. For polygonal placements the start and end shape
// instances differ (independently distorted); for linear placements
// the end instance is the start instance translated to the last bar.
// The two instances always own independent polyline buffers.
type BarPlacement struct {
	// Position is the mark number of the group, assigned sequentially
	// from the selected shape's own position number.
	Position int

	// BarCount is the number of bars in the group.
	BarCount int

	// Spacing is the center-to-center bar distance of the group.
	Spacing float64

	StartShape shape.BendingShape
	EndShape   shape.BendingShape
}

// Config carries the cover and reduction values that successive design
// iterations of the original tool hard-coded. They are configuration
// inputs here; the defaults match the historical constants.
type Config struct {
	// StartCover and EndCover are the concrete covers at the two ends
	// of the placement path, in model units.
	StartCover float64
	EndCover   float64

	// LegReduction shortens the measured target height of a distorted
	// stirrup to account for the bent leg, in model units.
	LegReduction float64
}

// DefaultConfig returns the historical defaults: 30 units of cover on
// both ends and a 60 unit stirrup leg reduction.
func DefaultConfig() Config {
	return Config{StartCover: 30, EndCover: 30, LegReduction: 60}
}

// projectOnto moves s so its defining plane passes through target. A
// polyline that spans no plane (a straight bar) has no out-of-plane
// direction of its own; the distribution direction serves as the plane
// normal instead.
func projectOnto(s *shape.BendingShape, target, fallbackNormal v3.Vec) {
	if err := s.ProjectOntoPoint(target); err == nil {
		return
	}
	if geo.IsZero(fallbackNormal.Length()) || s.Polyline.Count() == 0 {
		return
	}
	pl := geo.Plane{Point: s.Polyline.Points[0], Normal: fallbackNormal.Normalize()}
	s.Move(pl.OffsetTo(target))
}
