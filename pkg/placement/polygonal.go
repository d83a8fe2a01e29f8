package placement

import (
	"errors"
	"fmt"
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/bmarciniec/place-in-regions/pkg/geo"
	"github.com/bmarciniec/place-in-regions/pkg/shape"
)

// ErrDegenerateCutAxis is returned when the cut line cannot split the
// bending shape into near and far vertex sets: its projection into the
// shape plane vanishes or runs parallel to the distortion direction,
// leaving the far side ambiguous. The user must pick a different cut
// line.
var ErrDegenerateCutAxis = errors.New("placement: cut axis does not define a far side of the shape")

// ErrNotPartitioned is returned when a polygonal build is attempted
// with a partition whose analysis result is not Valid.
var ErrNotPartitioned = errors.New("placement: placement outline was not successfully partitioned")

// crossBar is one probe result inside an elementary cell: the segment
// between the two boundary intersections of a vertical probe line.
type crossBar struct {
	bottom v2.Vec
	height float64
}

// BuildPolygonal builds one bar-group placement per elementary cell of
// a partitioned placement outline. The baseline shape is re-expressed
// in the placement-local frame, stepped along the local X axis at the
// given spacing, and each cell's first and last cross-bar positions
// receive an independently distorted shape instance matching the local
// cross-section height. Position marks increment by one per emitted
// cell starting at basePosition.
func BuildPolygonal(baseline shape.BendingShape, cutAxis geo.Line3, part Partition, spacing float64, basePosition int, cfg Config) ([]BarPlacement, error) {
	if part.Result != Valid {
		return nil, fmt.Errorf("%w: %s", ErrNotPartitioned, part.Result)
	}
	if spacing <= 0 {
		return nil, errors.New("placement: spacing must be positive")
	}

	// Work in the placement-local frame: X is the placement
	// direction, Y the distortion direction.
	local := baseline.Copy()
	local.Transform(part.WorldToLocal)
	projectOnto(&local, v3.Vec{}, v3.Vec{X: 1})

	farVertices, err := farSideVertices(local, cutAxis, part)
	if err != nil {
		return nil, err
	}
	distorter := shape.NewDistortionUtil(farVertices, v3.Vec{Y: 1})

	divisions := divisionPoints(cfg.StartCover, part.TotalLength-cfg.EndCover, spacing)

	placements := make([]BarPlacement, 0, len(part.Cells))
	position := basePosition
	for _, cell := range part.Cells {
		bars, ok := cellCrossBars(cell, part, divisions)
		if !ok || len(bars) == 0 {
			continue
		}

		start := local.Copy()
		start.Move(geo.To3D(bars[0].bottom))
		if err := distorter.Distort(&start, bars[0].height-cfg.LegReduction); err != nil {
			return nil, err
		}

		end := local.Copy()
		end.Move(geo.To3D(bars[len(bars)-1].bottom))
		if err := distorter.Distort(&end, bars[len(bars)-1].height-cfg.LegReduction); err != nil {
			return nil, err
		}

		start.Transform(part.LocalToWorld)
		end.Transform(part.LocalToWorld)

		placements = append(placements, BarPlacement{
			Position:   position,
			BarCount:   len(bars),
			Spacing:    spacing,
			StartShape: start,
			EndShape:   end,
		})
		position++
	}
	return placements, nil
}

// farSideVertices classifies the local-frame shape vertices against
// the cut axis. The shape lies in a plane perpendicular to local X, so
// the classification runs in the YZ plane; the axis is oriented so
// that "far" is consistently the +Y (upper) side.
func farSideVertices(local shape.BendingShape, cutAxis geo.Line3, part Partition) ([]int, error) {
	a := part.WorldToLocal.MulPosition(cutAxis.Start)
	b := part.WorldToLocal.MulPosition(cutAxis.End)

	// Project the axis into the shape plane (drop X).
	av := v2.Vec{X: a.Y, Y: a.Z}
	w := v2.Vec{X: b.Y - a.Y, Y: b.Z - a.Z}
	if geo.IsZero(w.Length()) {
		return nil, fmt.Errorf("%w: axis is parallel to the placement normal", ErrDegenerateCutAxis)
	}
	// The projection maps the distortion direction (local Y) onto the
	// first component. An axis parallel to it cannot separate an upper
	// from a lower region.
	if math.Abs(w.Y) <= parallelTol*w.Length() {
		return nil, fmt.Errorf("%w: axis is parallel to the distortion direction", ErrDegenerateCutAxis)
	}
	// Orient the axis so the far (+Y) side comes out positive.
	if w.Y > 0 {
		w = v2.Vec{X: -w.X, Y: -w.Y}
	}

	var far []int
	for i, p := range local.Polyline.Points {
		q := v2.Vec{X: p.Y, Y: p.Z}
		if geo.Cross2(w, q.Sub(av)) > geo.Eps {
			far = append(far, i)
		}
	}
	return far, nil
}

// divisionPoints generates the evenly spaced abscissas between start
// and end, inclusive of both ends within tolerance.
func divisionPoints(start, end, spacing float64) []float64 {
	var xs []float64
	for x := start; x <= end+geo.Eps; x += spacing {
		xs = append(xs, x)
	}
	return xs
}

// cellCrossBars probes one elementary cell at every division point
// inside its span. A probe qualifies when it crosses the cell boundary
// exactly twice; cells are expected to be convex quadrilaterals, so
// any other count marks the probe unusable.
func cellCrossBars(cell geo.Polygon3, part Partition, divisions []float64) ([]crossBar, bool) {
	c := cell.Copy()
	c.Transform(part.WorldToLocal)
	c.Flatten()
	c2, ok := c.To2D()
	if !ok {
		return nil, false
	}

	minX, maxX := c2.XSpan()
	var bars []crossBar
	for _, x := range divisions {
		if x < minX-geo.Eps || x > maxX+geo.Eps {
			continue
		}
		hits := c2.VerticalIntersections(x)
		if len(hits) != 2 {
			continue
		}
		bars = append(bars, crossBar{
			bottom: hits[0],
			height: hits[1].Y - hits[0].Y,
		})
	}
	return bars, true
}
