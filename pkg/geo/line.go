package geo

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Line3 is a straight segment in 3D space.
type Line3 struct {
	Start, End v3.Vec
}

// Vector returns the segment vector from start to end.
func (l Line3) Vector() v3.Vec {
	return l.End.Sub(l.Start)
}

// Direction returns the unit direction of the segment. A zero segment
// yields the zero vector.
func (l Line3) Direction() v3.Vec {
	v := l.Vector()
	if IsZero(v.Length()) {
		return v3.Vec{}
	}
	return v.Normalize()
}

// Length returns the segment length.
func (l Line3) Length() float64 {
	return l.Vector().Length()
}

// PointAt returns the point at parameter distance d from the start,
// measured along the segment direction.
func (l Line3) PointAt(d float64) v3.Vec {
	return l.Start.Add(l.Direction().MulScalar(d))
}

// Line2 is a straight segment in 2D space.
type Line2 struct {
	Start, End v2.Vec
}

// Length returns the segment length.
func (l Line2) Length() float64 {
	return l.End.Sub(l.Start).Length()
}

// Side classifies a point against the infinite line through the
// segment: positive when p lies to the left of the start→end direction,
// negative to the right, zero within tolerance of the line.
func (l Line2) Side(p v2.Vec) float64 {
	s := Cross2(l.End.Sub(l.Start), p.Sub(l.Start))
	if IsZero(s) {
		return 0
	}
	return s
}
