package placement

import (
	"errors"
	"fmt"
	"math"

	"github.com/bmarciniec/place-in-regions/pkg/geo"
	"github.com/bmarciniec/place-in-regions/pkg/regions"
	"github.com/bmarciniec/place-in-regions/pkg/shape"
)

// BuildLinear walks the region anchors and produces one bar-group
// placement per region. The baseline shape is projected once so its
// defining plane passes through the first region's start point; each
// subsequent region is reached by moving the working copy by the
// vector between consecutive start anchors, preserving any in-plane
// offset set by the first projection. Position marks increment by one
// per region starting at basePosition.
func BuildLinear(baseline shape.BendingShape, regs []regions.Region, anchors []Anchor, basePosition int) ([]BarPlacement, error) {
	if len(regs) != len(anchors) {
		return nil, fmt.Errorf("placement: %d regions but %d anchor pairs", len(regs), len(anchors))
	}
	if len(regs) == 0 {
		return nil, errors.New("placement: nothing to build")
	}

	moved := baseline.Copy()
	projectOnto(&moved, anchors[0].Start, anchors[0].End.Sub(anchors[0].Start))

	placements := make([]BarPlacement, 0, len(regs))
	for i, r := range regs {
		count := barCount(r)
		dir := anchors[i].End.Sub(anchors[i].Start)
		if !geo.IsZero(dir.Length()) {
			dir = dir.Normalize()
		}

		start := moved.Copy()
		end := moved.Copy()
		end.Move(dir.MulScalar(float64(count-1) * r.Spacing))

		placements = append(placements, BarPlacement{
			Position:   basePosition + i,
			BarCount:   count,
			Spacing:    r.Spacing,
			StartShape: start,
			EndShape:   end,
		})

		if i+1 < len(anchors) {
			moved.Move(anchors[i+1].Start.Sub(anchors[i].Start))
		}
	}
	return placements, nil
}

// barCount derives the number of bars in a resolved region. A closed
// region of length N*S holds N bars starting at the region start; the
// open region is filled until its resolved end.
func barCount(r regions.Region) int {
	if r.Spacing <= 0 {
		return 0
	}
	n := int(math.Floor(r.Length/r.Spacing + geo.Eps))
	if r.IsOpen() {
		// Resolved open region: a bar at the start plus one per full
		// spacing interval.
		return n + 1
	}
	if n < 1 {
		n = 1
	}
	return n
}
