package cli

import (
	"errors"
	"io"
	"math"

	svg "github.com/ajstarks/svgo/float"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/bmarciniec/place-in-regions/pkg/frame"
	"github.com/bmarciniec/place-in-regions/pkg/placement"
	"github.com/bmarciniec/place-in-regions/pkg/shape"
)

const (
	svgMargin = 50.0

	startStyle = "fill:none;stroke:#1a1a1a;stroke-width:3"
	endStyle   = "fill:none;stroke:#888888;stroke-width:3"
	spanStyle  = "stroke:#c04040;stroke-width:1;stroke-dasharray:6,4"
)

// renderElevation draws a 2D elevation of the placement groups into w.
// Every shape instance is projected onto the scene view plane; the
// start instance of each group draws dark, the end instance grey, with
// a dashed span line connecting the two.
func renderElevation(w io.Writer, view *frame.Transform, groups []placement.BarPlacement) error {
	if len(groups) == 0 {
		return errors.New("nothing to render")
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	each := func(s shape.BendingShape) {
		for _, p := range s.Polyline.Points {
			q := view.PointToReference(p)
			minX = math.Min(minX, q.X)
			maxX = math.Max(maxX, q.X)
			minY = math.Min(minY, q.Y)
			maxY = math.Max(maxY, q.Y)
		}
	}
	for _, g := range groups {
		each(g.StartShape)
		each(g.EndShape)
	}

	width := maxX - minX + 2*svgMargin
	height := maxY - minY + 2*svgMargin

	// SVG Y grows downward; model Y grows upward.
	tx := func(p v3.Vec) (float64, float64) {
		q := view.PointToReference(p)
		return q.X - minX + svgMargin, maxY - q.Y + svgMargin
	}

	canvas := svg.New(w)
	canvas.Start(width, height)

	for _, g := range groups {
		sx, sy := polylineCoords(g.StartShape, tx)
		ex, ey := polylineCoords(g.EndShape, tx)

		if len(sx) > 0 && len(ex) > 0 {
			canvas.Line(sx[0], sy[0], ex[0], ey[0], spanStyle)
		}
		canvas.Polyline(ex, ey, endStyle)
		canvas.Polyline(sx, sy, startStyle)
	}

	canvas.End()
	return nil
}

func polylineCoords(s shape.BendingShape, tx func(v3.Vec) (float64, float64)) ([]float64, []float64) {
	xs := make([]float64, 0, s.Polyline.Count())
	ys := make([]float64, 0, s.Polyline.Count())
	for _, p := range s.Polyline.Points {
		x, y := tx(p)
		xs = append(xs, x)
		ys = append(ys, y)
	}
	return xs, ys
}
