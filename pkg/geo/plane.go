package geo

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Plane is a plane in 3D space given by a point on the plane and a unit
// normal.
type Plane struct {
	Point  v3.Vec
	Normal v3.Vec
}

// OffsetTo returns the out-of-plane component of the vector from the
// plane's reference point to target. Moving by the returned vector
// shifts the plane (and anything lying in it) onto a parallel plane
// through target without disturbing in-plane coordinates.
func (p Plane) OffsetTo(target v3.Vec) v3.Vec {
	v := target.Sub(p.Point)
	return p.Normal.MulScalar(v.Dot(p.Normal))
}

// DistanceTo returns the signed distance from the plane to a point,
// positive on the normal side.
func (p Plane) DistanceTo(pt v3.Vec) float64 {
	return pt.Sub(p.Point).Dot(p.Normal)
}
