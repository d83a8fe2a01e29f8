package geo

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Polyline3 is an ordered open polyline in 3D space.
type Polyline3 struct {
	Points []v3.Vec
}

// NewPolyline3 builds a polyline from its vertices.
func NewPolyline3(points ...v3.Vec) Polyline3 {
	return Polyline3{Points: points}
}

// Copy returns a deep copy. The copy shares no buffer with the
// original, so mutating one never aliases the other.
func (p Polyline3) Copy() Polyline3 {
	pts := make([]v3.Vec, len(p.Points))
	copy(pts, p.Points)
	return Polyline3{Points: pts}
}

// Count returns the number of vertices.
func (p Polyline3) Count() int {
	return len(p.Points)
}

// SegmentCount returns the number of straight segments.
func (p Polyline3) SegmentCount() int {
	if len(p.Points) < 2 {
		return 0
	}
	return len(p.Points) - 1
}

// Length returns the total polyline length.
func (p Polyline3) Length() float64 {
	var total float64
	for i := 1; i < len(p.Points); i++ {
		total += p.Points[i].Sub(p.Points[i-1]).Length()
	}
	return total
}

// Move translates every vertex by v, in place.
func (p Polyline3) Move(v v3.Vec) {
	for i := range p.Points {
		p.Points[i] = p.Points[i].Add(v)
	}
}

// Transform applies an affine transform to every vertex, in place.
func (p Polyline3) Transform(m sdf.M44) {
	for i := range p.Points {
		p.Points[i] = m.MulPosition(p.Points[i])
	}
}

// Plane returns the plane the polyline lies in. The normal is computed
// with Newell's method over the closed vertex ring; ok is false when
// the vertices are colinear or any vertex is farther than Eps from the
// fitted plane.
func (p Polyline3) Plane() (Plane, bool) {
	if len(p.Points) < 3 {
		return Plane{}, false
	}
	var n v3.Vec
	for i := range p.Points {
		a := p.Points[i]
		b := p.Points[(i+1)%len(p.Points)]
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
	}
	if IsZero(n.Length()) {
		return Plane{}, false
	}
	plane := Plane{Point: p.Points[0], Normal: n.Normalize()}
	for _, pt := range p.Points {
		if math.Abs(plane.DistanceTo(pt)) > Eps {
			return Plane{}, false
		}
	}
	return plane, true
}
