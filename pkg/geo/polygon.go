package geo

import (
	"math"
	"sort"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Polygon3 is a closed polygon in 3D space. The vertex ring is stored
// open: the edge from the last vertex back to the first is implicit.
type Polygon3 struct {
	Points []v3.Vec
}

// NewPolygon3 builds a polygon from its vertices. A trailing vertex
// coinciding with the first is dropped.
func NewPolygon3(points ...v3.Vec) Polygon3 {
	if n := len(points); n > 1 && EqualV3(points[0], points[n-1]) {
		points = points[:n-1]
	}
	pts := make([]v3.Vec, len(points))
	copy(pts, points)
	return Polygon3{Points: pts}
}

// Copy returns a deep copy.
func (p Polygon3) Copy() Polygon3 {
	pts := make([]v3.Vec, len(p.Points))
	copy(pts, p.Points)
	return Polygon3{Points: pts}
}

// Transform applies an affine transform to every vertex, in place.
func (p Polygon3) Transform(m sdf.M44) {
	for i := range p.Points {
		p.Points[i] = m.MulPosition(p.Points[i])
	}
}

// Flatten drops the Z component of every vertex, in place.
func (p Polygon3) Flatten() {
	for i := range p.Points {
		p.Points[i] = FlattenXY(p.Points[i])
	}
}

// To2D converts a polygon lying in the Z=0 plane to its 2D
// representation. ok is false when any vertex is off the plane.
func (p Polygon3) To2D() (Polygon2, bool) {
	pts := make([]v2.Vec, len(p.Points))
	for i, pt := range p.Points {
		if !IsZero(pt.Z) {
			return Polygon2{}, false
		}
		pts[i] = To2D(pt)
	}
	return Polygon2{Points: pts}, true
}

// Polygon2 is a closed polygon in 2D space, stored as an open vertex ring.
type Polygon2 struct {
	Points []v2.Vec
}

// NewPolygon2 builds a polygon from its vertices. A trailing vertex
// coinciding with the first is dropped.
func NewPolygon2(points ...v2.Vec) Polygon2 {
	if n := len(points); n > 1 && EqualV2(points[0], points[n-1]) {
		points = points[:n-1]
	}
	pts := make([]v2.Vec, len(points))
	copy(pts, points)
	return Polygon2{Points: pts}
}

// To3D lifts the polygon into the Z=0 plane.
func (p Polygon2) To3D() Polygon3 {
	pts := make([]v3.Vec, len(p.Points))
	for i, pt := range p.Points {
		pts[i] = To3D(pt)
	}
	return Polygon3{Points: pts}
}

// SignedArea returns the shoelace area: positive for counter-clockwise
// winding, negative for clockwise.
func (p Polygon2) SignedArea() float64 {
	var area float64
	n := len(p.Points)
	for i := 0; i < n; i++ {
		a := p.Points[i]
		b := p.Points[(i+1)%n]
		area += Cross2(a, b)
	}
	return area / 2
}

// IsCCW reports whether the polygon winds counter-clockwise.
func (p Polygon2) IsCCW() bool {
	return p.SignedArea() > 0
}

// Reverse flips the winding, in place.
func (p Polygon2) Reverse() {
	for i, j := 0, len(p.Points)-1; i < j; i, j = i+1, j-1 {
		p.Points[i], p.Points[j] = p.Points[j], p.Points[i]
	}
}

// IsValid reports whether the polygon is usable at all: at least three
// distinct vertices, a non-vanishing area, and no self-intersection.
func (p Polygon2) IsValid() bool {
	if len(p.Points) < 3 {
		return false
	}
	if math.Abs(p.SignedArea()) < Eps {
		return false
	}
	return !p.selfIntersects()
}

// selfIntersects checks every non-adjacent edge pair for a proper
// crossing. Quadratic, but placement outlines have a handful of edges.
func (p Polygon2) selfIntersects() bool {
	n := len(p.Points)
	edge := func(i int) (v2.Vec, v2.Vec) {
		return p.Points[i], p.Points[(i+1)%n]
	}
	for i := 0; i < n; i++ {
		a1, a2 := edge(i)
		for j := i + 1; j < n; j++ {
			// Skip adjacent edges (shared vertex).
			if j == i || (j+1)%n == i || (i+1)%n == j {
				continue
			}
			b1, b2 := edge(j)
			if segmentsCross(a1, a2, b1, b2) {
				return true
			}
		}
	}
	return false
}

// segmentsCross reports a proper interior crossing of two segments.
func segmentsCross(a1, a2, b1, b2 v2.Vec) bool {
	d1 := Cross2(a2.Sub(a1), b1.Sub(a1))
	d2 := Cross2(a2.Sub(a1), b2.Sub(a1))
	d3 := Cross2(b2.Sub(b1), a1.Sub(b1))
	d4 := Cross2(b2.Sub(b1), a2.Sub(b1))
	return ((d1 > Eps && d2 < -Eps) || (d1 < -Eps && d2 > Eps)) &&
		((d3 > Eps && d4 < -Eps) || (d3 < -Eps && d4 > Eps))
}

// LowerLeft returns the lexicographically smallest vertex, by X then Y.
func (p Polygon2) LowerLeft() v2.Vec {
	ll := p.Points[0]
	for _, pt := range p.Points[1:] {
		if pt.X < ll.X-Eps || (EqualScalar(pt.X, ll.X) && pt.Y < ll.Y) {
			ll = pt
		}
	}
	return ll
}

// Move translates every vertex by v, in place.
func (p Polygon2) Move(v v2.Vec) {
	for i := range p.Points {
		p.Points[i] = p.Points[i].Add(v)
	}
}

// XSpan returns the polygon's extent along the X axis.
func (p Polygon2) XSpan() (min, max float64) {
	min, max = p.Points[0].X, p.Points[0].X
	for _, pt := range p.Points[1:] {
		min = math.Min(min, pt.X)
		max = math.Max(max, pt.X)
	}
	return min, max
}

// VerticalIntersections intersects the vertical line X=x with the
// polygon boundary and returns the crossing points ordered by
// ascending Y. Crossings at vertices are counted once.
func (p Polygon2) VerticalIntersections(x float64) []v2.Vec {
	var hits []v2.Vec
	n := len(p.Points)
	for i := 0; i < n; i++ {
		a := p.Points[i]
		b := p.Points[(i+1)%n]
		// Half-open rule so a crossing at a shared vertex is
		// reported by exactly one of the two incident edges.
		if (a.X <= x && b.X > x) || (b.X <= x && a.X > x) {
			t := (x - a.X) / (b.X - a.X)
			hits = append(hits, v2.Vec{X: x, Y: a.Y + t*(b.Y-a.Y)})
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].Y < hits[j].Y })
	return hits
}

// SplitAtX cuts the polygon with the vertical line X=x and returns the
// parts left and right of the line. Each part keeps the original
// winding. Vertices within Eps of the line belong to both parts.
func (p Polygon2) SplitAtX(x float64) (left, right Polygon2) {
	left = p.clipX(x, true)
	right = p.clipX(x, false)
	return left, right
}

// clipX is a Sutherland-Hodgman half-plane clip against X<=x (keepLeft)
// or X>=x.
func (p Polygon2) clipX(x float64, keepLeft bool) Polygon2 {
	inside := func(pt v2.Vec) bool {
		if keepLeft {
			return pt.X <= x+Eps
		}
		return pt.X >= x-Eps
	}
	var out []v2.Vec
	n := len(p.Points)
	for i := 0; i < n; i++ {
		a := p.Points[i]
		b := p.Points[(i+1)%n]
		aIn, bIn := inside(a), inside(b)
		if aIn {
			out = append(out, a)
		}
		if aIn != bIn {
			t := (x - a.X) / (b.X - a.X)
			out = append(out, v2.Vec{X: x, Y: a.Y + t*(b.Y-a.Y)})
		}
	}
	return dedupeRing(out)
}

// dedupeRing removes consecutive duplicate vertices (and a duplicate
// closing vertex) within Eps.
func dedupeRing(pts []v2.Vec) Polygon2 {
	var out []v2.Vec
	for _, pt := range pts {
		if len(out) > 0 && EqualV2(out[len(out)-1], pt) {
			continue
		}
		out = append(out, pt)
	}
	if len(out) > 1 && EqualV2(out[0], out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	return Polygon2{Points: out}
}

// IsQuad reports whether the polygon is a quadrilateral: exactly four
// distinct corners after merging vertices within tolerance.
func (p Polygon2) IsQuad() bool {
	return len(dedupeRing(p.Points).Points) == 4
}
