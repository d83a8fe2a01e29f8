package placement

import (
	"errors"
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/bmarciniec/place-in-regions/pkg/geo"
	"github.com/bmarciniec/place-in-regions/pkg/regions"
)

// ErrRegionOverflow is returned when the closed regions are longer
// than the usable placement path, leaving a negative length for the
// open region.
var ErrRegionOverflow = errors.New("placement: regions do not fit on the placement path")

// Anchor is the start/end point pair of one region on the placement
// segment. A region's end point is the next region's start point.
type Anchor struct {
	Start, End v3.Vec
}

// LayoutRegions resolves the open region's length and lays the regions
// out consecutively on the straight segment from pathStart to pathEnd,
// honoring the asymmetric start/end covers. It returns one anchor pair
// per region, in input order, alongside the region list with the open
// length resolved.
func LayoutRegions(regs []regions.Region, pathStart, pathEnd v3.Vec, startCover, endCover float64) ([]Anchor, []regions.Region, error) {
	if len(regs) == 0 {
		return nil, nil, errors.New("placement: no regions to lay out")
	}

	dir := pathEnd.Sub(pathStart)
	total := dir.Length()
	if geo.IsZero(total) {
		return nil, nil, errors.New("placement: zero-length placement path")
	}
	dir = dir.DivScalar(total)

	usable := total - startCover - endCover
	var closed float64
	for _, r := range regs {
		closed += r.Length
	}
	open := usable - closed
	if open < -geo.Eps {
		return nil, nil, fmt.Errorf("%w: usable length %.3f, regions need %.3f", ErrRegionOverflow, usable, closed)
	}

	resolved := make([]regions.Region, len(regs))
	copy(resolved, regs)
	for i := range resolved {
		if resolved[i].IsOpen() {
			resolved[i].Length = open
		}
	}

	anchors := make([]Anchor, len(resolved))
	cursor := startCover
	for i, r := range resolved {
		anchors[i] = Anchor{
			Start: pathStart.Add(dir.MulScalar(cursor)),
			End:   pathStart.Add(dir.MulScalar(cursor + r.Length)),
		}
		cursor += r.Length
	}
	return anchors, resolved, nil
}
