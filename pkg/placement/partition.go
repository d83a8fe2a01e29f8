package placement

import (
	"math"
	"sort"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/bmarciniec/place-in-regions/pkg/frame"
	"github.com/bmarciniec/place-in-regions/pkg/geo"
)

// AnalysisResult is the tri-state outcome of analyzing a placement
// outline. Invalid results are expected on every mouse move of a live
// input and drive preview coloring; they are values, never errors.
type AnalysisResult int

const (
	// InvalidForPreview marks an outline too degenerate even to draw.
	InvalidForPreview AnalysisResult = iota

	// InvalidForPlacement marks an outline that can be previewed but
	// not used as a polygonal placement.
	InvalidForPlacement

	// Valid marks an outline usable for polygonal placement.
	Valid
)

func (r AnalysisResult) String() string {
	switch r {
	case InvalidForPreview:
		return "invalid-for-preview"
	case InvalidForPlacement:
		return "invalid-for-placement"
	case Valid:
		return "valid"
	default:
		return "unknown"
	}
}

// parallelTol is the relative tolerance for classifying an outline
// edge as parallel to the distortion direction.
const parallelTol = 1e-6

// Partition is the result of analyzing and splitting a placement
// outline. Cells, transforms and length are only populated when
// Result is Valid.
type Partition struct {
	Result AnalysisResult

	// Cells are the elementary quadrilateral polygons in world space,
	// ordered along the placement direction: first cell, first bar group.
	Cells []geo.Polygon3

	// WorldToLocal maps world space into the placement-local frame:
	// X along the placement direction, Y along the distortion
	// direction, the outline's lower-left vertex at the origin.
	WorldToLocal sdf.M44

	// LocalToWorld is the inverse of WorldToLocal.
	LocalToWorld sdf.M44

	// TotalLength is the outline extent between the two end caps,
	// measured along the local X axis.
	TotalLength float64

	// View is the reference view the outline was drawn in.
	View *frame.Transform
}

func invalidPartition(r AnalysisResult, view *frame.Transform) Partition {
	return Partition{Result: r, View: view}
}

// Analyze validates a user-drawn placement outline and splits it into
// consecutive quadrilateral cells. The outline must resemble a ladder:
// two end-cap edges perpendicular to the placement direction and
// interior cross-bars. shapeNormal is the world-space plane normal of
// the bending shape to be placed; its projection into the outline
// plane fixes the placement direction.
//
// Analyze never fails: incomplete or broken input yields an invalid
// Result so a live input loop can call it on every mouse move.
func Analyze(raw geo.Polygon3, view *frame.Transform, shapeNormal v3.Vec) Partition {
	// Flatten the outline onto the view plane.
	poly := raw.Copy()
	poly.Transform(view.ToReference())
	poly.Flatten()

	p2, ok := poly.To2D()
	if !ok || !p2.IsValid() {
		return invalidPartition(InvalidForPreview, view)
	}
	if !p2.IsCCW() {
		p2.Reverse()
		if !p2.IsCCW() {
			return invalidPartition(InvalidForPreview, view)
		}
	}

	// Project the shape normal into the outline plane. A vanishing
	// projection means shape and outline are coplanar and the
	// distortion direction is undefined.
	localNv := geo.FlattenXY(view.DirToReference(shapeNormal))
	if geo.IsZero(localNv.Length()) {
		return invalidPartition(InvalidForPlacement, view)
	}

	// Align the projected normal with local X, so X is the placement
	// direction and Y the distortion direction. The rotation is built
	// about Z explicitly: it must stay inside the outline plane even
	// when the normal points along -X.
	rot := sdf.RotateZ(-math.Atan2(localNv.Y, localNv.X))
	p3 := p2.To3D()
	p3.Transform(rot)
	p2, _ = p3.To2D()

	// Put the lower-left vertex at the local origin.
	ll := p2.LowerLeft()
	p2.Move(v2.Vec{X: -ll.X, Y: -ll.Y})

	caps := capEdges(p2)
	if len(caps) != 2 {
		return invalidPartition(InvalidForPlacement, view)
	}
	capMin := math.Min(caps[0], caps[1])
	capMax := math.Max(caps[0], caps[1])

	// Cut abscissas: every vertex X strictly between the caps,
	// deduplicated within tolerance and sorted.
	cuts := cutAbscissas(p2, capMin, capMax)

	// Split sequentially; every piece must come out a quadrilateral.
	cells2 := make([]geo.Polygon2, 0, len(cuts)+1)
	work := p2
	for _, x := range cuts {
		left, rest := work.SplitAtX(x)
		if !left.IsQuad() {
			return invalidPartition(InvalidForPlacement, view)
		}
		cells2 = append(cells2, left)
		work = rest
	}
	if !work.IsQuad() {
		return invalidPartition(InvalidForPlacement, view)
	}
	cells2 = append(cells2, work)

	worldToLocal := sdf.Translate3d(geo.To3D(ll).Neg()).Mul(rot).Mul(view.ToReference())
	localToWorld := worldToLocal.Inverse()

	cells := make([]geo.Polygon3, 0, len(cells2))
	for _, c := range cells2 {
		c3 := c.To3D()
		c3.Transform(localToWorld)
		cells = append(cells, c3)
	}

	return Partition{
		Result:       Valid,
		Cells:        cells,
		WorldToLocal: worldToLocal,
		LocalToWorld: localToWorld,
		TotalLength:  capMax - capMin,
		View:         view,
	}
}

// capEdges returns the X positions of the outline edges parallel to
// the local Y axis, the candidate end caps.
func capEdges(p geo.Polygon2) []float64 {
	var xs []float64
	n := len(p.Points)
	for i := 0; i < n; i++ {
		a := p.Points[i]
		b := p.Points[(i+1)%n]
		length := b.Sub(a).Length()
		if geo.IsZero(length) {
			continue
		}
		if math.Abs(b.X-a.X) <= parallelTol*length {
			xs = append(xs, a.X)
		}
	}
	return xs
}

// cutAbscissas collects the vertex X coordinates strictly between the
// two cap positions, deduplicated and sorted ascending.
func cutAbscissas(p geo.Polygon2, capMin, capMax float64) []float64 {
	var xs []float64
	for _, pt := range p.Points {
		if pt.X <= capMin+geo.Eps || pt.X >= capMax-geo.Eps {
			continue
		}
		dup := false
		for _, x := range xs {
			if geo.EqualScalar(x, pt.X) {
				dup = true
				break
			}
		}
		if !dup {
			xs = append(xs, pt.X)
		}
	}
	sort.Float64s(xs)
	return xs
}
