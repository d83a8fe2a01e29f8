package placement

import (
	"errors"

	"github.com/bmarciniec/place-in-regions/pkg/frame"
	"github.com/bmarciniec/place-in-regions/pkg/geo"
	"github.com/bmarciniec/place-in-regions/pkg/regions"
	"github.com/bmarciniec/place-in-regions/pkg/shape"
)

// Request is the tagged union of the two placement variants. The
// variants share only the region-spacing and positioning concerns, so
// dispatch happens here rather than through a type hierarchy.
type Request interface {
	isRequest()
}

// LinearRequest places bar groups along a straight line in regions
// described by a spacing specification string.
type LinearRequest struct {
	Line        geo.Line3
	RegionsSpec string
}

func (LinearRequest) isRequest() {}

// PolygonalRequest places bar groups inside a ladder-shaped outline,
// one group per elementary cell, with per-position shape distortion.
type PolygonalRequest struct {
	Outline geo.Polygon3
	CutAxis geo.Line3
	Spacing float64
}

func (PolygonalRequest) isRequest() {}

// Build dispatches a placement request to the matching builder.
// baseline is the world-space bending shape to stamp, view the
// reference view the placement input was made in.
func Build(baseline shape.BendingShape, req Request, view *frame.Transform, basePosition int, cfg Config) ([]BarPlacement, error) {
	switch r := req.(type) {
	case LinearRequest:
		regs, err := regions.Parse(r.RegionsSpec, baseline.Diameter)
		if err != nil {
			return nil, err
		}
		anchors, resolved, err := LayoutRegions(regs, r.Line.Start, r.Line.End, cfg.StartCover, cfg.EndCover)
		if err != nil {
			return nil, err
		}
		return BuildLinear(baseline, resolved, anchors, basePosition)

	case PolygonalRequest:
		part := Analyze(r.Outline, view, baseline.Normal())
		return BuildPolygonal(baseline, r.CutAxis, part, r.Spacing, basePosition, cfg)

	default:
		return nil, errUnknownRequest
	}
}

var errUnknownRequest = errors.New("placement: unknown request variant")
